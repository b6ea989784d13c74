package persistence

import (
	"strconv"

	"github.com/example/office-agenda/internal/domain"
)

// DefaultDatabase is the database descriptor used when none is stored.
func DefaultDatabase() domain.DatabaseDescriptor {
	return domain.DatabaseDescriptor{
		Host:     `localhost\SQLEXPRESS`,
		Port:     "1433",
		User:     "sa",
		Database: "SibukPMD",
		Provider: domain.DatabaseProviderSQLExpress,
	}
}

// DefaultSnapshot is the state of a fresh install: one admin identity, four
// division identities, one sample employee and no activities.
func DefaultSnapshot() domain.Snapshot {
	identities := []domain.Identity{{
		ID:       "u1",
		Name:     "Bagian Sekretariat",
		NIP:      domain.PlaceholderNIP,
		Position: "Sekretariat",
		Username: "Sekretariat",
		Password: "abis rokok",
		Role:     domain.RoleAdmin,
	}}
	for i, division := range []string{"PEMDES", "PED", "TTG", "KMD"} {
		identities = append(identities, domain.Identity{
			ID:       "u" + strconv.Itoa(i+2),
			Name:     "Bidang " + division,
			NIP:      domain.PlaceholderNIP,
			Position: "Bidang " + division,
			Username: division,
			Role:     domain.RoleUser,
		})
	}

	return domain.Snapshot{
		Identities: identities,
		Persons: []domain.Person{{
			ID:            "p1",
			Name:          "Contoh Pegawai 1",
			NIP:           "1980xxxx",
			Position:      "Staf",
			PositionClass: "7",
		}},
		Letterhead: domain.Letterhead{
			InstitutionLine1: "PEMERINTAH KABUPATEN MUSI BANYUASIN",
			InstitutionLine2: "DINAS PEMBERDAYAAN MASYARAKAT DAN DESA",
			Address:          "Jalan Kolonel Wahid Udin No. 234, Sekayu",
			Contact:          "Email: dpmd@mubakab.go.id",
			SigningCity:      "Sekayu",
		},
		Groups:   []domain.ActivityGroup{},
		Items:    []domain.ActivityItem{},
		Database: DefaultDatabase(),
	}
}

package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/example/office-agenda/internal/domain"
)

// snapshotRecord is the stored JSON document. Field names are shared with
// snapshots exported from earlier browser-based installs.
type snapshotRecord struct {
	CurrentUser  json.RawMessage `json:"currentUser,omitempty"`
	Users        []userRecord    `json:"users"`
	Pegawai      []pegawaiRecord `json:"pegawai"`
	KopDinas     kopRecord       `json:"kopDinas"`
	AgendaGroups []groupRecord   `json:"agendaGroups"`
	AgendaItems  []itemRecord    `json:"agendaItems"`
	SQLConfig    *sqlRecord      `json:"sqlConfig,omitempty"`
}

type userRecord struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	NIP                 string `json:"nip"`
	Jabatan             string `json:"jabatan"`
	Username            string `json:"username"`
	Password            string `json:"password,omitempty"`
	Role                string `json:"role"`
	TempAdminAccessDate string `json:"tempAdminAccessDate,omitempty"`
}

type pegawaiRecord struct {
	ID           string `json:"id"`
	Nama         string `json:"nama"`
	NIP          string `json:"nip"`
	Jabatan      string `json:"jabatan"`
	KelasJabatan string `json:"kelas_jabatan"`
}

type kopRecord struct {
	InstansiBaris1 string `json:"instansi_baris1"`
	InstansiBaris2 string `json:"instansi_baris2"`
	Alamat         string `json:"alamat"`
	Kontak         string `json:"kontak"`
	LogoBase64     string `json:"logoBase64"`
	KotaSurat      string `json:"kota_surat"`
}

type groupRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UserID    string `json:"userId"`
}

type itemRecord struct {
	ID               string   `json:"id"`
	GroupID          string   `json:"groupId"`
	Waktu            string   `json:"waktu"`
	Tempat           string   `json:"tempat"`
	Acara            string   `json:"acara"`
	ManualKeterangan string   `json:"manual_keterangan"`
	AttendeeIDs      []string `json:"attendeeIds"`
}

type sqlRecord struct {
	Host     string     `json:"host"`
	Port     flexString `json:"port"`
	User     string     `json:"user"`
	Password string     `json:"password"`
	Database string     `json:"database"`
	Provider string     `json:"provider"`
}

// flexString accepts both a JSON string and a JSON number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("port: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

// EncodeSnapshot serializes snapshot into the stored JSON document.
func EncodeSnapshot(snapshot domain.Snapshot) ([]byte, error) {
	data, err := json.Marshal(fromDomain(snapshot))
	if err != nil {
		return nil, fmt.Errorf("persistence: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a stored JSON document. Missing database settings
// fall back to the defaults and missing position classes become the
// placeholder; anything that is not a JSON object yields ErrCorruptSnapshot.
func DecodeSnapshot(data []byte) (domain.Snapshot, error) {
	var record snapshotRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return record.toDomain(), nil
}

func fromDomain(s domain.Snapshot) snapshotRecord {
	record := snapshotRecord{
		Users:        make([]userRecord, 0, len(s.Identities)),
		Pegawai:      make([]pegawaiRecord, 0, len(s.Persons)),
		AgendaGroups: make([]groupRecord, 0, len(s.Groups)),
		AgendaItems:  make([]itemRecord, 0, len(s.Items)),
		KopDinas: kopRecord{
			InstansiBaris1: s.Letterhead.InstitutionLine1,
			InstansiBaris2: s.Letterhead.InstitutionLine2,
			Alamat:         s.Letterhead.Address,
			Kontak:         s.Letterhead.Contact,
			LogoBase64:     s.Letterhead.LogoData,
			KotaSurat:      s.Letterhead.SigningCity,
		},
		SQLConfig: &sqlRecord{
			Host:     s.Database.Host,
			Port:     flexString(s.Database.Port),
			User:     s.Database.User,
			Password: s.Database.Password,
			Database: s.Database.Database,
			Provider: string(s.Database.Provider),
		},
	}
	for _, identity := range s.Identities {
		record.Users = append(record.Users, userRecord{
			ID:                  identity.ID,
			Name:                identity.Name,
			NIP:                 identity.NIP,
			Jabatan:             identity.Position,
			Username:            identity.Username,
			Password:            identity.Password,
			Role:                string(identity.Role),
			TempAdminAccessDate: identity.TempAdminAccessDate,
		})
	}
	for _, person := range s.Persons {
		record.Pegawai = append(record.Pegawai, pegawaiRecord{
			ID:           person.ID,
			Nama:         person.Name,
			NIP:          person.NIP,
			Jabatan:      person.Position,
			KelasJabatan: person.PositionClass,
		})
	}
	for _, group := range s.Groups {
		created := ""
		if !group.CreatedAt.IsZero() {
			created = group.CreatedAt.UTC().Format(time.RFC3339Nano)
		}
		record.AgendaGroups = append(record.AgendaGroups, groupRecord{
			ID:        group.ID,
			Title:     group.Date,
			CreatedAt: created,
			UserID:    group.CreatorID,
		})
	}
	for _, item := range s.Items {
		attendees := item.AttendeeIDs
		if attendees == nil {
			attendees = []string{}
		}
		record.AgendaItems = append(record.AgendaItems, itemRecord{
			ID:               item.ID,
			GroupID:          item.GroupID,
			Waktu:            item.Time,
			Tempat:           item.Place,
			Acara:            item.Title,
			ManualKeterangan: item.Notes,
			AttendeeIDs:      append([]string(nil), attendees...),
		})
	}
	return record
}

func (r snapshotRecord) toDomain() domain.Snapshot {
	s := domain.Snapshot{
		Identities: make([]domain.Identity, 0, len(r.Users)),
		Persons:    make([]domain.Person, 0, len(r.Pegawai)),
		Groups:     make([]domain.ActivityGroup, 0, len(r.AgendaGroups)),
		Items:      make([]domain.ActivityItem, 0, len(r.AgendaItems)),
		Letterhead: domain.Letterhead{
			InstitutionLine1: r.KopDinas.InstansiBaris1,
			InstitutionLine2: r.KopDinas.InstansiBaris2,
			Address:          r.KopDinas.Alamat,
			Contact:          r.KopDinas.Kontak,
			LogoData:         r.KopDinas.LogoBase64,
			SigningCity:      r.KopDinas.KotaSurat,
		},
		Database: DefaultDatabase(),
	}
	if r.SQLConfig != nil {
		s.Database = domain.DatabaseDescriptor{
			Host:     r.SQLConfig.Host,
			Port:     string(r.SQLConfig.Port),
			User:     r.SQLConfig.User,
			Password: r.SQLConfig.Password,
			Database: r.SQLConfig.Database,
			Provider: domain.DatabaseProvider(r.SQLConfig.Provider),
		}
	}
	for _, u := range r.Users {
		s.Identities = append(s.Identities, domain.Identity{
			ID:                  u.ID,
			Name:                u.Name,
			NIP:                 u.NIP,
			Position:            u.Jabatan,
			Username:            u.Username,
			Password:            u.Password,
			Role:                domain.Role(u.Role),
			TempAdminAccessDate: u.TempAdminAccessDate,
		})
	}
	for _, p := range r.Pegawai {
		class := p.KelasJabatan
		if class == "" {
			class = domain.PlaceholderPositionClass
		}
		s.Persons = append(s.Persons, domain.Person{
			ID:            p.ID,
			Name:          p.Nama,
			NIP:           p.NIP,
			Position:      p.Jabatan,
			PositionClass: class,
		})
	}
	for _, g := range r.AgendaGroups {
		s.Groups = append(s.Groups, domain.ActivityGroup{
			ID:        g.ID,
			Date:      g.Title,
			CreatedAt: parseCreatedAt(g.CreatedAt),
			CreatorID: g.UserID,
		})
	}
	for _, it := range r.AgendaItems {
		s.Items = append(s.Items, domain.ActivityItem{
			ID:          it.ID,
			GroupID:     it.GroupID,
			Time:        it.Waktu,
			Place:       it.Tempat,
			Title:       it.Acara,
			Notes:       it.ManualKeterangan,
			AttendeeIDs: append([]string{}, it.AttendeeIDs...),
		})
	}
	return s
}

// parseCreatedAt accepts RFC 3339 stamps and unix milliseconds. Anything else
// yields the zero time.
func parseCreatedAt(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC()
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}

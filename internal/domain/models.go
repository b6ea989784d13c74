// Package domain holds the entities shared by the aggregator, the renderer and the
// application services.
package domain

import (
	"strings"
	"time"
)

// Role tags an identity with its capability level.
type Role string

const (
	// RoleAdmin may always reach settings and roster editing.
	RoleAdmin Role = "admin"
	// RoleUser may reach settings only on a day it holds temporary access.
	RoleUser Role = "user"
)

// PlaceholderNIP marks an identity or person without a civil-service number.
const PlaceholderNIP = "-"

// PlaceholderPositionClass marks a person whose position class is unknown.
const PlaceholderPositionClass = "-"

// Person is an employee on the roster. Attendee lists reference persons by ID.
type Person struct {
	ID            string
	Name          string
	NIP           string
	Position      string
	PositionClass string
}

// ActivityGroup is the container for one day's activities. Date holds the
// calendar date as an ISO string and doubles as the group title.
type ActivityGroup struct {
	ID        string
	Date      string
	CreatedAt time.Time
	CreatorID string
}

// ActivityItem is a single scheduled activity within a group.
type ActivityItem struct {
	ID          string
	GroupID     string
	Time        string
	Place       string
	Title       string
	Notes       string
	AttendeeIDs []string
}

// Letterhead is the institutional header stamped on exported reports.
// LogoData carries the logo as a data URL or bare base64 text.
type Letterhead struct {
	InstitutionLine1 string
	InstitutionLine2 string
	Address          string
	Contact          string
	SigningCity      string
	LogoData         string
}

// Identity is a login identity. Password is only meaningful for admins.
// TempAdminAccessDate holds a YYYY-MM-DD stamp granting settings access for
// that calendar day.
type Identity struct {
	ID                  string
	Name                string
	NIP                 string
	Position            string
	Username            string
	Password            string
	Role                Role
	TempAdminAccessDate string
}

// DatabaseProvider names the target server flavour of the schema script.
type DatabaseProvider string

const (
	DatabaseProviderMySQL      DatabaseProvider = "mysql"
	DatabaseProviderSQLExpress DatabaseProvider = "sqlexpress"
)

// DatabaseDescriptor describes a database server. It is only used to render
// the schema script; nothing connects to it.
type DatabaseDescriptor struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Provider DatabaseProvider
}

// Snapshot is the aggregate root persisted as a whole.
type Snapshot struct {
	Identities []Identity
	Persons    []Person
	Letterhead Letterhead
	Groups     []ActivityGroup
	Items      []ActivityItem
	Database   DatabaseDescriptor
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Letterhead: s.Letterhead,
		Database:   s.Database,
	}
	if s.Identities != nil {
		out.Identities = append([]Identity(nil), s.Identities...)
	}
	if s.Persons != nil {
		out.Persons = append([]Person(nil), s.Persons...)
	}
	if s.Groups != nil {
		out.Groups = append([]ActivityGroup(nil), s.Groups...)
	}
	if s.Items != nil {
		out.Items = make([]ActivityItem, len(s.Items))
		for i, item := range s.Items {
			out.Items[i] = item.Clone()
		}
	}
	return out
}

// Clone returns a copy of the item that does not share its attendee slice.
func (i ActivityItem) Clone() ActivityItem {
	if i.AttendeeIDs != nil {
		i.AttendeeIDs = append([]string(nil), i.AttendeeIDs...)
	}
	return i
}

// FindIdentity returns the identity with the given ID.
func (s Snapshot) FindIdentity(id string) (Identity, bool) {
	for _, identity := range s.Identities {
		if identity.ID == id {
			return identity, true
		}
	}
	return Identity{}, false
}

// FindGroup returns the group with the given ID.
func (s Snapshot) FindGroup(id string) (ActivityGroup, bool) {
	for _, group := range s.Groups {
		if group.ID == id {
			return group, true
		}
	}
	return ActivityGroup{}, false
}

// HasNIP reports whether nip is set to something other than the placeholder.
func HasNIP(nip string) bool {
	nip = strings.TrimSpace(nip)
	return nip != "" && nip != PlaceholderNIP
}

package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/persistence"
)

var (
	personCounter   uint64
	identityCounter uint64
	groupCounter    uint64
	itemCounter     uint64
)

var location = time.FixedZone("WIB", 7*60*60)

// referenceTime is a Wednesday morning; its week runs 2026-01-05..2026-01-11.
var referenceTime = time.Date(2026, time.January, 7, 9, 30, 0, 0, location)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// Location returns the zone fixtures interpret calendar dates in.
func Location() *time.Location {
	return location
}

// ----------------------------- Person fixtures -----------------------------

// PersonOption configures a generated roster entry.
type PersonOption func(*domain.Person)

// NewPerson returns a deterministic roster entry with optional overrides.
func NewPerson(opts ...PersonOption) domain.Person {
	idx := atomic.AddUint64(&personCounter, 1)
	person := domain.Person{
		ID:            fmt.Sprintf("person-%03d", idx),
		Name:          fmt.Sprintf("Pegawai %03d", idx),
		NIP:           fmt.Sprintf("19800101200501%04d", idx),
		Position:      "Staf",
		PositionClass: "7",
	}
	for _, opt := range opts {
		opt(&person)
	}
	return person
}

// WithPersonID overrides the generated person ID.
func WithPersonID(id string) PersonOption {
	return func(p *domain.Person) { p.ID = id }
}

// WithPersonName overrides the generated name.
func WithPersonName(name string) PersonOption {
	return func(p *domain.Person) { p.Name = name }
}

// WithPersonNIP overrides the civil-service number.
func WithPersonNIP(nip string) PersonOption {
	return func(p *domain.Person) { p.NIP = nip }
}

// WithPersonPosition sets the position title and class.
func WithPersonPosition(position, class string) PersonOption {
	return func(p *domain.Person) {
		p.Position = position
		p.PositionClass = class
	}
}

// ---------------------------- Identity fixtures ----------------------------

// IdentityOption configures a generated login identity.
type IdentityOption func(*domain.Identity)

// NewIdentity returns a deterministic non-admin identity with optional
// overrides.
func NewIdentity(opts ...IdentityOption) domain.Identity {
	idx := atomic.AddUint64(&identityCounter, 1)
	identity := domain.Identity{
		ID:       fmt.Sprintf("user-%03d", idx),
		Name:     fmt.Sprintf("Bidang %03d", idx),
		NIP:      domain.PlaceholderNIP,
		Position: fmt.Sprintf("Bidang %03d", idx),
		Username: fmt.Sprintf("bidang%03d", idx),
		Role:     domain.RoleUser,
	}
	for _, opt := range opts {
		opt(&identity)
	}
	return identity
}

// WithIdentityID overrides the generated identity ID.
func WithIdentityID(id string) IdentityOption {
	return func(i *domain.Identity) { i.ID = id }
}

// WithIdentityName overrides the display name used in signature blocks.
func WithIdentityName(name string) IdentityOption {
	return func(i *domain.Identity) { i.Name = name }
}

// WithIdentityNIP overrides the civil-service number.
func WithIdentityNIP(nip string) IdentityOption {
	return func(i *domain.Identity) { i.NIP = nip }
}

// WithUsername overrides the login name.
func WithUsername(username string) IdentityOption {
	return func(i *domain.Identity) { i.Username = username }
}

// AsAdmin turns the identity into an admin guarded by password. An empty
// password leaves the admin unguarded.
func AsAdmin(password string) IdentityOption {
	return func(i *domain.Identity) {
		i.Role = domain.RoleAdmin
		i.Password = password
	}
}

// WithTemporaryAccess stamps the identity with settings access for date.
func WithTemporaryAccess(date string) IdentityOption {
	return func(i *domain.Identity) { i.TempAdminAccessDate = date }
}

// ----------------------------- Group fixtures ------------------------------

// GroupOption configures a generated activity group.
type GroupOption func(*domain.ActivityGroup)

// NewGroup returns a group for the YYYY-MM-DD date. It panics on a malformed
// date so broken fixtures fail loudly.
func NewGroup(date string, opts ...GroupOption) domain.ActivityGroup {
	idx := atomic.AddUint64(&groupCounter, 1)
	day, err := time.ParseInLocation("2006-01-02", date, location)
	if err != nil {
		panic(fmt.Sprintf("testfixtures: bad group date %q: %v", date, err))
	}
	group := domain.ActivityGroup{
		ID:        fmt.Sprintf("group-%03d", idx),
		Date:      date,
		CreatedAt: day,
		CreatorID: "u1",
	}
	for _, opt := range opts {
		opt(&group)
	}
	return group
}

// WithGroupID overrides the generated group ID.
func WithGroupID(id string) GroupOption {
	return func(g *domain.ActivityGroup) { g.ID = id }
}

// WithCreator overrides the identity recorded as the group's author.
func WithCreator(id string) GroupOption {
	return func(g *domain.ActivityGroup) { g.CreatorID = id }
}

// WithRawDate stores value verbatim, bypassing date formatting.
func WithRawDate(value string) GroupOption {
	return func(g *domain.ActivityGroup) { g.Date = value }
}

// ------------------------------ Item fixtures ------------------------------

// ItemOption configures a generated activity item.
type ItemOption func(*domain.ActivityItem)

// NewItem returns a deterministic activity belonging to groupID.
func NewItem(groupID string, opts ...ItemOption) domain.ActivityItem {
	idx := atomic.AddUint64(&itemCounter, 1)
	item := domain.ActivityItem{
		ID:          fmt.Sprintf("item-%03d", idx),
		GroupID:     groupID,
		Time:        "08:00",
		Place:       "Ruang Rapat",
		Title:       fmt.Sprintf("Rapat Koordinasi %03d", idx),
		AttendeeIDs: []string{},
	}
	for _, opt := range opts {
		opt(&item)
	}
	return item
}

// WithItemID overrides the generated item ID.
func WithItemID(id string) ItemOption {
	return func(i *domain.ActivityItem) { i.ID = id }
}

// WithItemTime overrides the time cell.
func WithItemTime(value string) ItemOption {
	return func(i *domain.ActivityItem) { i.Time = value }
}

// WithItemTitle overrides the activity title.
func WithItemTitle(title string) ItemOption {
	return func(i *domain.ActivityItem) { i.Title = title }
}

// WithItemNotes sets free-text notes.
func WithItemNotes(notes string) ItemOption {
	return func(i *domain.ActivityItem) { i.Notes = notes }
}

// WithAttendees sets the attendee IDs in order.
func WithAttendees(ids ...string) ItemOption {
	return func(i *domain.ActivityItem) { i.AttendeeIDs = append([]string{}, ids...) }
}

// ---------------------------- Snapshot builder -----------------------------

// SnapshotBuilder assembles a snapshot on top of the fresh-install defaults.
type SnapshotBuilder struct {
	snapshot domain.Snapshot
}

// NewSnapshot starts from the default snapshot.
func NewSnapshot() *SnapshotBuilder {
	return &SnapshotBuilder{snapshot: persistence.DefaultSnapshot()}
}

// WithIdentities appends identities.
func (b *SnapshotBuilder) WithIdentities(identities ...domain.Identity) *SnapshotBuilder {
	b.snapshot.Identities = append(b.snapshot.Identities, identities...)
	return b
}

// WithPersons appends roster entries.
func (b *SnapshotBuilder) WithPersons(persons ...domain.Person) *SnapshotBuilder {
	b.snapshot.Persons = append(b.snapshot.Persons, persons...)
	return b
}

// WithGroup appends a group together with its items.
func (b *SnapshotBuilder) WithGroup(group domain.ActivityGroup, items ...domain.ActivityItem) *SnapshotBuilder {
	b.snapshot.Groups = append(b.snapshot.Groups, group)
	b.snapshot.Items = append(b.snapshot.Items, items...)
	return b
}

// WithLetterhead replaces the letterhead.
func (b *SnapshotBuilder) WithLetterhead(letterhead domain.Letterhead) *SnapshotBuilder {
	b.snapshot.Letterhead = letterhead
	return b
}

// Build returns a copy of the assembled snapshot.
func (b *SnapshotBuilder) Build() domain.Snapshot {
	return b.snapshot.Clone()
}

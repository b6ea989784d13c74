package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/report"
	"github.com/example/office-agenda/internal/sqlscript"
)

// LetterheadInput carries the text fields of the letterhead. The logo is
// managed separately.
type LetterheadInput struct {
	InstitutionLine1 string
	InstitutionLine2 string
	Address          string
	Contact          string
	SigningCity      string
}

// SettingsService manages the letterhead, database descriptor and access
// control settings.
type SettingsService struct {
	store      *Store
	now        func() time.Time
	hashParams Argon2idParams
	logger     *slog.Logger
}

// NewSettingsService constructs a settings service with the provided dependencies.
func NewSettingsService(store *Store, now func() time.Time) *SettingsService {
	return NewSettingsServiceWithLogger(store, now, DefaultArgon2idParams, nil)
}

// NewSettingsServiceWithLogger constructs a settings service with explicit
// hashing parameters and logger.
func NewSettingsServiceWithLogger(store *Store, now func() time.Time, hashParams Argon2idParams, logger *slog.Logger) *SettingsService {
	if now == nil {
		now = time.Now
	}
	return &SettingsService{store: store, now: now, hashParams: hashParams, logger: defaultLogger(logger)}
}

func (s *SettingsService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SettingsService", operation, attrs...)
}

// Letterhead returns the current letterhead.
func (s *SettingsService) Letterhead() domain.Letterhead {
	return s.store.Snapshot().Letterhead
}

// Database returns the current database descriptor.
func (s *SettingsService) Database() domain.DatabaseDescriptor {
	return s.store.Snapshot().Database
}

// UpdateLetterhead replaces the text fields of the letterhead.
func (s *SettingsService) UpdateLetterhead(ctx context.Context, actor domain.Identity, input LetterheadInput) (err error) {
	logger := s.loggerWith(ctx, "UpdateLetterhead", "actor_id", actor.ID)
	defer logOutcome(ctx, logger, "letterhead updated", "failed to update letterhead", &err)

	if !domain.CanManageSettings(actor, s.now()) {
		return ErrUnauthorized
	}
	return s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		snapshot.Letterhead.InstitutionLine1 = strings.TrimSpace(input.InstitutionLine1)
		snapshot.Letterhead.InstitutionLine2 = strings.TrimSpace(input.InstitutionLine2)
		snapshot.Letterhead.Address = strings.TrimSpace(input.Address)
		snapshot.Letterhead.Contact = strings.TrimSpace(input.Contact)
		snapshot.Letterhead.SigningCity = strings.TrimSpace(input.SigningCity)
		return nil
	})
}

// UploadLogo reads a PNG or JPEG image and stores it as a data URL. The last
// upload wins.
func (s *SettingsService) UploadLogo(ctx context.Context, actor domain.Identity, r io.Reader) (err error) {
	logger := s.loggerWith(ctx, "UploadLogo", "actor_id", actor.ID)
	defer logOutcome(ctx, logger, "logo uploaded", "failed to upload logo", &err)

	if !domain.CanManageSettings(actor, s.now()) {
		return ErrUnauthorized
	}
	dataURL, err := report.EncodeLogo(r)
	if err != nil {
		vErr := &ValidationError{}
		vErr.add("logo", "logo must be a PNG or JPEG image")
		return fmt.Errorf("%w: %v", vErr, err)
	}
	return s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		snapshot.Letterhead.LogoData = dataURL
		return nil
	})
}

// RemoveLogo clears the letterhead logo.
func (s *SettingsService) RemoveLogo(ctx context.Context, actor domain.Identity) (err error) {
	logger := s.loggerWith(ctx, "RemoveLogo", "actor_id", actor.ID)
	defer logOutcome(ctx, logger, "logo removed", "failed to remove logo", &err)

	if !domain.CanManageSettings(actor, s.now()) {
		return ErrUnauthorized
	}
	return s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		snapshot.Letterhead.LogoData = ""
		return nil
	})
}

// UpdateDatabase replaces the database descriptor.
func (s *SettingsService) UpdateDatabase(ctx context.Context, actor domain.Identity, descriptor domain.DatabaseDescriptor) (err error) {
	logger := s.loggerWith(ctx, "UpdateDatabase", "actor_id", actor.ID)
	defer logOutcome(ctx, logger, "database settings updated", "failed to update database settings", &err)

	if !domain.CanManageSettings(actor, s.now()) {
		return ErrUnauthorized
	}
	descriptor = normalizeDescriptor(descriptor)
	if descriptor.Provider != domain.DatabaseProviderMySQL && descriptor.Provider != domain.DatabaseProviderSQLExpress {
		vErr := &ValidationError{}
		vErr.add("provider", "provider must be mysql or sqlexpress")
		return vErr
	}
	return s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		snapshot.Database = descriptor
		return nil
	})
}

// TestConnection checks that a descriptor names a host and a database. No
// connection is attempted.
func (s *SettingsService) TestConnection(descriptor domain.DatabaseDescriptor) error {
	descriptor = normalizeDescriptor(descriptor)
	vErr := &ValidationError{}
	if descriptor.Host == "" {
		vErr.add("host", "host is required")
	}
	if descriptor.Database == "" {
		vErr.add("database", "database name is required")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

// SQLScript renders the schema script for the stored descriptor.
func (s *SettingsService) SQLScript(actor domain.Identity) (string, error) {
	if !domain.CanManageSettings(actor, s.now()) {
		return "", ErrUnauthorized
	}
	return sqlscript.Generate(s.store.Snapshot().Database)
}

// ChangeAdminPassword sets the password of every admin identity. An empty
// password removes the check.
func (s *SettingsService) ChangeAdminPassword(ctx context.Context, actor domain.Identity, password string) (err error) {
	logger := s.loggerWith(ctx, "ChangeAdminPassword", "actor_id", actor.ID)
	defer logOutcome(ctx, logger, "admin password changed", "failed to change admin password", &err)

	if !domain.CanGrantAccess(actor) {
		return ErrUnauthorized
	}
	stored := ""
	if password != "" {
		if stored, err = CreatePasswordHash(password, s.hashParams); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
	}
	return s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		for i := range snapshot.Identities {
			if snapshot.Identities[i].IsAdmin() {
				snapshot.Identities[i].Password = stored
			}
		}
		return nil
	})
}

// SetTemporaryAccess grants (or revokes) settings access for today to a
// non-admin identity.
func (s *SettingsService) SetTemporaryAccess(ctx context.Context, actor domain.Identity, identityID string, grant bool) (err error) {
	logger := s.loggerWith(ctx, "SetTemporaryAccess", "actor_id", actor.ID, "identity_id", identityID, "grant", grant)
	defer logOutcome(ctx, logger, "temporary access updated", "failed to update temporary access", &err)

	if !domain.CanGrantAccess(actor) {
		return ErrUnauthorized
	}
	stamp := ""
	if grant {
		stamp = domain.FormatDate(s.now())
	}
	return s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		for i := range snapshot.Identities {
			if snapshot.Identities[i].ID != identityID {
				continue
			}
			if snapshot.Identities[i].IsAdmin() {
				vErr := &ValidationError{}
				vErr.add("identity", "admins already hold settings access")
				return vErr
			}
			snapshot.Identities[i].TempAdminAccessDate = stamp
			return nil
		}
		return fmt.Errorf("identity %s: %w", identityID, ErrNotFound)
	})
}

func normalizeDescriptor(d domain.DatabaseDescriptor) domain.DatabaseDescriptor {
	d.Host = strings.TrimSpace(d.Host)
	d.Port = strings.TrimSpace(d.Port)
	d.User = strings.TrimSpace(d.User)
	d.Database = strings.TrimSpace(d.Database)
	d.Provider = domain.DatabaseProvider(strings.ToLower(strings.TrimSpace(string(d.Provider))))
	return d
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/example/office-agenda/internal/application"
	"github.com/example/office-agenda/internal/config"
	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/i18n"
	"github.com/example/office-agenda/internal/idgen"
	"github.com/example/office-agenda/internal/logging"
	"github.com/example/office-agenda/internal/persistence/sqlite"
	"github.com/example/office-agenda/internal/report"
)

var errNoIdentity = errors.New("no identity selected: pass --as or set AGENDA_USER")

// app holds the services one command invocation works with.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	labels i18n.Translator
	now    func() time.Time

	storage   *sqlite.Storage
	store     *application.Store
	agenda    *application.AgendaService
	roster    *application.RosterService
	settings  *application.SettingsService
	auth      *application.AuthService
	exports   *application.ExportService
	snapshots *application.SnapshotService
}

func openApp(ctx context.Context, cfg config.Config, logOut io.Writer, now func() time.Time) (*app, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(logOut, level)
	if now == nil {
		now = time.Now
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	// Calendar-day checks such as temporary settings access follow loc, not
	// the process zone.
	clock := func() time.Time { return now().In(loc) }

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if err := storage.Migrate(ctx); err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	store, err := application.OpenStore(ctx, storage, logger)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	renderer := report.NewRenderer(report.Options{
		Locale:          cfg.Locale,
		InstitutionLine: cfg.InstitutionLine,
		Now:             clock,
		Location:        loc,
		Logger:          logger,
	})

	uuids := idgen.UUIDv7()
	return &app{
		cfg:       cfg,
		logger:    logger,
		labels:    i18n.New(cfg.Locale),
		now:       clock,
		storage:   storage,
		store:     store,
		agenda:    application.NewAgendaServiceWithLogger(store, idgen.Prefixed(idgen.GroupPrefix, uuids), idgen.Prefixed(idgen.ItemPrefix, uuids), clock, loc, logger),
		roster:    application.NewRosterServiceWithLogger(store, idgen.Prefixed(idgen.PersonPrefix, uuids), clock, logger),
		settings:  application.NewSettingsServiceWithLogger(store, clock, application.DefaultArgon2idParams, logger),
		auth:      application.NewAuthService(store, logger),
		exports:   application.NewExportService(store, renderer, loc, logger),
		snapshots: application.NewSnapshotService(store, logger),
	}, nil
}

// Close releases the storage.
func (a *app) Close() error {
	if a == nil || a.storage == nil {
		return nil
	}
	return a.storage.Close()
}

// login resolves the acting identity from ref, falling back to the
// configured default user.
func (a *app) login(ctx context.Context, ref, password string) (domain.Identity, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = a.cfg.User
	}
	if ref == "" {
		return domain.Identity{}, errNoIdentity
	}
	return a.auth.Login(ctx, ref, password)
}

// location is the zone calendar days are evaluated in.
func (a *app) location() *time.Location {
	if a.cfg.Location != nil {
		return a.cfg.Location
	}
	return time.Local
}

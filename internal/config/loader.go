package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/example/office-agenda/internal/i18n"
	"github.com/example/office-agenda/internal/logging"
)

// Config captures environment driven configuration values for the agenda tool.
type Config struct {
	SQLiteDSN       string `env:"AGENDA_SQLITE_DSN" envDefault:"file:agenda.db"`
	LogLevel        string `env:"AGENDA_LOG_LEVEL" envDefault:"info"`
	Locale          string `env:"AGENDA_LOCALE" envDefault:"id"`
	User            string `env:"AGENDA_USER"`
	InstitutionLine string `env:"AGENDA_INSTITUTION_LINE" envDefault:"Dinas PMD Kab. Muba"`
	OutputDir       string `env:"AGENDA_OUTPUT_DIR" envDefault:"."`
	// Timezone names the IANA zone used for calendar days. Empty means the
	// process local zone.
	Timezone string `env:"AGENDA_TIMEZONE"`

	Location *time.Location `env:"-"`
}

// Load parses configuration values from the current process environment.
//
// Defaults apply to unset variables. Values that fail validation are
// collected and reported together in one localized message.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		var aggregate env.AggregateError
		if errors.As(err, &aggregate) {
			keys := make([]string, 0, len(aggregate.Errors))
			for _, fieldErr := range aggregate.Errors {
				keys = append(keys, fieldErr.Error())
			}
			return Config{}, fmt.Errorf("nilai variabel lingkungan tidak valid: %s", strings.Join(keys, ", "))
		}
		return Config{}, fmt.Errorf("gagal membaca variabel lingkungan: %w", err)
	}

	cfg.SQLiteDSN = strings.TrimSpace(cfg.SQLiteDSN)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Locale = strings.TrimSpace(cfg.Locale)
	cfg.User = strings.TrimSpace(cfg.User)
	cfg.InstitutionLine = strings.TrimSpace(cfg.InstitutionLine)
	cfg.OutputDir = strings.TrimSpace(cfg.OutputDir)
	cfg.Timezone = strings.TrimSpace(cfg.Timezone)

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 3)

	if cfg.SQLiteDSN == "" {
		missing = append(missing, "AGENDA_SQLITE_DSN")
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		invalid = append(invalid, "AGENDA_LOG_LEVEL")
	}
	if !i18n.Supported(cfg.Locale) {
		invalid = append(invalid, "AGENDA_LOCALE")
	}
	if cfg.InstitutionLine == "" {
		missing = append(missing, "AGENDA_INSTITUTION_LINE")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	cfg.Location = time.Local
	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			invalid = append(invalid, "AGENDA_TIMEZONE")
		} else {
			cfg.Location = loc
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("variabel lingkungan wajib belum diisi: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("nilai variabel lingkungan tidak valid: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

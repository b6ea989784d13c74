package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// Config holds SQLite connection settings.
type Config struct {
	// DSN is a file path, a file: URI or ":memory:".
	DSN string

	BusyTimeout       time.Duration
	EnableForeignKeys bool
	JournalMode       string
	Synchronous       string
	// CacheSize is in pages, or KiB when negative. Zero keeps the default.
	CacheSize int

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns production settings for the database at dsn.
func DefaultConfig(dsn string) Config {
	return Config{
		DSN:               dsn,
		BusyTimeout:       10 * time.Second,
		EnableForeignKeys: true,
		JournalMode:       "WAL",
		Synchronous:       "NORMAL",
		MaxOpenConns:      4,
		MaxIdleConns:      2,
		ConnMaxLifetime:   5 * time.Minute,
	}
}

// InMemoryConfig returns settings for a private in-memory database. A single
// connection keeps every query on the same database.
func InMemoryConfig() Config {
	return Config{
		DSN:               ":memory:",
		BusyTimeout:       5 * time.Second,
		EnableForeignKeys: true,
		JournalMode:       "MEMORY",
		Synchronous:       "OFF",
		MaxOpenConns:      1,
		MaxIdleConns:      1,
	}
}

var (
	journalModes = map[string]bool{"DELETE": true, "TRUNCATE": true, "PERSIST": true, "MEMORY": true, "WAL": true, "OFF": true}
	syncModes    = map[string]bool{"OFF": true, "NORMAL": true, "FULL": true, "EXTRA": true}
)

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DSN) == "" {
		return fmt.Errorf("sqlite: DSN cannot be empty")
	}
	if c.BusyTimeout < 0 {
		return fmt.Errorf("sqlite: busy timeout cannot be negative")
	}
	if c.JournalMode != "" && !journalModes[strings.ToUpper(c.JournalMode)] {
		return fmt.Errorf("sqlite: invalid journal mode %q", c.JournalMode)
	}
	if c.Synchronous != "" && !syncModes[strings.ToUpper(c.Synchronous)] {
		return fmt.Errorf("sqlite: invalid synchronous mode %q", c.Synchronous)
	}
	if c.MaxOpenConns < 0 || c.MaxIdleConns < 0 || c.ConnMaxLifetime < 0 {
		return fmt.Errorf("sqlite: connection pool limits cannot be negative")
	}
	return nil
}

// path returns the filesystem path behind the DSN, or "" for in-memory
// databases.
func (c Config) path() string {
	dsn := strings.TrimPrefix(c.DSN, "file:")
	if i := strings.IndexByte(dsn, '?'); i >= 0 {
		dsn = dsn[:i]
	}
	if dsn == "" || dsn == ":memory:" || strings.Contains(c.DSN, "mode=memory") {
		return ""
	}
	return dsn
}

// pragmas returns the settings in modernc's name(value) form.
func (c Config) pragmas() []string {
	var pragmas []string
	if c.BusyTimeout > 0 {
		pragmas = append(pragmas, fmt.Sprintf("busy_timeout(%d)", c.BusyTimeout.Milliseconds()))
	}
	if c.JournalMode != "" {
		pragmas = append(pragmas, "journal_mode("+strings.ToUpper(c.JournalMode)+")")
	}
	if c.Synchronous != "" {
		pragmas = append(pragmas, "synchronous("+strings.ToUpper(c.Synchronous)+")")
	}
	if c.EnableForeignKeys {
		pragmas = append(pragmas, "foreign_keys(1)")
	}
	if c.CacheSize != 0 {
		pragmas = append(pragmas, fmt.Sprintf("cache_size(%d)", c.CacheSize))
	}
	return pragmas
}

// connectionDSN carries the pragmas as _pragma parameters so the driver
// applies them to every connection it opens.
func (c Config) connectionDSN() string {
	pragmas := c.pragmas()
	if len(pragmas) == 0 {
		return c.DSN
	}
	params := make([]string, len(pragmas))
	for i, pragma := range pragmas {
		params[i] = "_pragma=" + pragma
	}
	sep := "?"
	if strings.Contains(c.DSN, "?") {
		sep = "&"
	}
	return c.DSN + sep + strings.Join(params, "&")
}

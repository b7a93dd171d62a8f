// Package config provides configuration loading and management for lmsadmin.
package config

import (
	"errors"
	"fmt"
	"time"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level        string `mapstructure:"level"`         // debug, info, warn, error
	Format       string `mapstructure:"format"`        // text, json, pretty
	Output       string `mapstructure:"output"`        // stdout, stderr, or file path
	FilePath     string `mapstructure:"file_path"`     // path to log file (in addition to output)
	MaxSizeMB    int    `mapstructure:"max_size_mb"`   // max size in MB before rotation
	MaxBackups   int    `mapstructure:"max_backups"`   // max number of old log files to keep
	MaxAgeDays   int    `mapstructure:"max_age_days"`  // max days to retain old log files
	EnableCaller bool   `mapstructure:"enable_caller"` // include source file/line in logs
	NoColor      bool   `mapstructure:"no_color"`      // disable colored output (pretty format only)

	AuditPath       string   `mapstructure:"audit_path"`         // JSON journal of record changes, empty disables it
	AuditMaxAgeDays int      `mapstructure:"audit_max_age_days"` // max days to retain audit logs
	MaskFields      []string `mapstructure:"mask_fields"`        // field names whose values are partially masked
}

// DatabaseConfig holds storage layer configuration
type DatabaseConfig struct {
	// Path is the path to the SQLite database file.
	// Defaults to <data_dir>/lmsadmin.db
	Path string `mapstructure:"path"`

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int `mapstructure:"max_open_conns"`

	// BusyTimeout is how long a connection waits on a locked database
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`

	Migrations MigrationsConfig `mapstructure:"migrations"`

	Backup BackupConfig `mapstructure:"backup"`
}

// BackupConfig holds database backup settings
type BackupConfig struct {
	// Dir holds the backup files. Defaults to <database dir>/backups
	Dir string `mapstructure:"dir"`

	// MaxBackups is how many backups to keep, 0 keeps all
	MaxBackups int `mapstructure:"max_backups"`

	// Verify re-reads a new backup and checks its hash
	Verify bool `mapstructure:"verify"`

	// Compress stores new backups zstd compressed
	Compress bool `mapstructure:"compress"`
}

// MigrationsConfig holds schema migration settings
type MigrationsConfig struct {
	// VerifyChecksums compares applied migrations with the embedded files
	VerifyChecksums bool `mapstructure:"verify_checksums"`

	// OnChecksumMismatch is one of "fail", "warn" or "ignore"
	OnChecksumMismatch string `mapstructure:"on_checksum_mismatch"`

	// LockTimeout bounds how long a migration waits for the lock
	LockTimeout time.Duration `mapstructure:"lock_timeout"`
}

// TableConfig holds data table settings
type TableConfig struct {
	// ItemsPerPage is the initial page size of every table
	ItemsPerPage int `mapstructure:"items_per_page"`
}

// UIConfig holds terminal UI settings
type UIConfig struct {
	Theme     string `mapstructure:"theme"`  // dark, light, nord
	Locale    string `mapstructure:"locale"` // ar, en
	Mouse     bool   `mapstructure:"mouse"`
	AltScreen bool   `mapstructure:"alt_screen"`
}

// OutputConfig holds output formatting options for non-interactive commands
type OutputConfig struct {
	Format string `mapstructure:"format"` // table, json, yaml, quiet
	Color  bool   `mapstructure:"color"`
}

// Config is the complete configuration for lmsadmin
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Table    TableConfig    `mapstructure:"table"`
	UI       UIConfig       `mapstructure:"ui"`
	Output   OutputConfig   `mapstructure:"output"`
}

// Default returns sensible defaults
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			Output:     "stderr",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,

			AuditMaxAgeDays: 365,
			MaskFields:      []string{"email", "phone"},
		},
		Database: DatabaseConfig{
			Path:         "", // defaults to <data_dir>/lmsadmin.db
			MaxOpenConns: 4,
			BusyTimeout:  5 * time.Second,
			Migrations: MigrationsConfig{
				VerifyChecksums:    true,
				OnChecksumMismatch: "fail",
				LockTimeout:        15 * time.Second,
			},
			Backup: BackupConfig{
				MaxBackups: 7,
				Verify:     true,
				Compress:   true,
			},
		},
		Table: TableConfig{
			ItemsPerPage: 10,
		},
		UI: UIConfig{
			Theme:     "dark",
			Locale:    "ar",
			Mouse:     true,
			AltScreen: true,
		},
		Output: OutputConfig{
			Format: "table",
			Color:  true,
		},
	}
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

var (
	logLevels     = []string{"debug", "info", "warn", "warning", "error"}
	logFormats    = []string{"text", "json", "pretty"}
	outputFormats = []string{"table", "json", "yaml", "quiet"}
	mismatchModes = []string{"fail", "warn", "ignore"}
	locales       = []string{"ar", "en"}
)

// Validate checks the values that cannot be corrected at runtime.
func (c *Config) Validate() error {
	var errs []error
	check := func(field, value string, allowed []string) {
		if !contains(allowed, value) {
			errs = append(errs, fmt.Errorf("%w: %s %q, expected one of %v", ErrInvalidConfig, field, value, allowed))
		}
	}

	check("log.level", c.Log.Level, logLevels)
	check("log.format", c.Log.Format, logFormats)
	check("output.format", c.Output.Format, outputFormats)
	check("database.migrations.on_checksum_mismatch", c.Database.Migrations.OnChecksumMismatch, mismatchModes)
	check("ui.locale", c.UI.Locale, locales)

	if c.Table.ItemsPerPage <= 0 {
		errs = append(errs, fmt.Errorf("%w: table.items_per_page must be positive, got %d", ErrInvalidConfig, c.Table.ItemsPerPage))
	}
	if c.Database.MaxOpenConns < 0 {
		errs = append(errs, fmt.Errorf("%w: database.max_open_conns must not be negative", ErrInvalidConfig))
	}
	if c.Database.Backup.MaxBackups < 0 {
		errs = append(errs, fmt.Errorf("%w: database.backup.max_backups must not be negative", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

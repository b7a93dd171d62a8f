package storage

import (
	"fmt"
	"time"
)

// Config holds the storage configuration.
type Config struct {
	// Path is the SQLite database file. ":memory:" opens a private
	// in-memory database.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	MaxOpenConns int

	// BusyTimeout is how long a connection waits on a locked database.
	BusyTimeout time.Duration

	// Migrations configures schema migrations.
	Migrations MigrationsConfig

	// SkipMigrations opens the store without applying pending
	// migrations, for commands that inspect or change the schema.
	SkipMigrations bool
}

// MigrationsConfig holds migration configuration.
type MigrationsConfig struct {
	// VerifyChecksums compares applied migrations against the embedded files.
	VerifyChecksums bool

	// OnChecksumMismatch is "fail", "warn" or "ignore".
	OnChecksumMismatch string

	// LockTimeout bounds how long to wait for the migration lock.
	LockTimeout time.Duration
}

// DefaultMigrationsConfig returns the default migration configuration.
func DefaultMigrationsConfig() MigrationsConfig {
	return MigrationsConfig{
		VerifyChecksums:    true,
		OnChecksumMismatch: "fail",
		LockTimeout:        15 * time.Second,
	}
}

// DefaultConfig returns the default storage configuration for path.
func DefaultConfig(path string) Config {
	return Config{
		Path:         path,
		MaxOpenConns: 4,
		BusyTimeout:  5 * time.Second,
		Migrations:   DefaultMigrationsConfig(),
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("%w: database path is required", ErrInvalidInput)
	}
	if c.MaxOpenConns < 0 {
		return fmt.Errorf("%w: max open connections must not be negative", ErrInvalidInput)
	}
	if c.BusyTimeout < 0 {
		return fmt.Errorf("%w: busy timeout must not be negative", ErrInvalidInput)
	}
	switch c.Migrations.OnChecksumMismatch {
	case "", "fail", "warn", "ignore":
	default:
		return fmt.Errorf("%w: unknown checksum mismatch policy %q", ErrInvalidInput, c.Migrations.OnChecksumMismatch)
	}
	return nil
}

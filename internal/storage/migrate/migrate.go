// Package migrate applies the embedded SQL migrations with golang-migrate
// and guards applied ones with SHA-256 checksums.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// MigrationsTable is where golang-migrate records the schema version.
const MigrationsTable = "lmsadmin_schema_migrations"

// Mismatch policies of Config.OnChecksumMismatch.
const (
	MismatchFail   = "fail"
	MismatchWarn   = "warn"
	MismatchIgnore = "ignore"
)

// Config controls how migrations run.
type Config struct {
	VerifyChecksums    bool
	OnChecksumMismatch string        // MismatchFail, MismatchWarn or MismatchIgnore
	LockTimeout        time.Duration // zero keeps the golang-migrate default

	// Warn receives non-fatal problems. Nil discards them.
	Warn func(msg string, args ...any)
}

// DefaultConfig verifies checksums and fails on a mismatch.
func DefaultConfig() Config {
	return Config{
		VerifyChecksums:    true,
		OnChecksumMismatch: MismatchFail,
		LockTimeout:        15 * time.Second,
	}
}

// Manager runs the embedded migrations against one database.
type Manager struct {
	cfg   Config
	db    *sql.DB
	m     *migrate.Migrate
	files map[uint]migrationFile
}

// NewSQLiteManager creates a manager for a SQLite database. Closing the
// manager closes db.
func NewSQLiteManager(db *sql.DB, cfg Config) (*Manager, error) {
	files, err := readFiles(migrationsFS, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksums: %w", err)
	}

	target, err := sqlite.WithInstance(db, &sqlite.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	source, err := iofs.New(migrationsFS, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create source driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", target)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	if cfg.LockTimeout > 0 {
		m.LockTimeout = cfg.LockTimeout
	}
	return &Manager{cfg: cfg, db: db, m: m, files: files}, nil
}

// Up applies every pending migration after checking the applied ones
// against their files.
func (m *Manager) Up(ctx context.Context) error {
	if err := m.createChecksumTable(ctx); err != nil {
		return err
	}
	if m.cfg.VerifyChecksums {
		if err := m.checkApplied(ctx); err != nil {
			switch m.cfg.OnChecksumMismatch {
			case MismatchWarn:
				m.warn("checksum verification failed", "error", err)
			case MismatchIgnore:
			default:
				return fmt.Errorf("checksum verification failed: %w", err)
			}
		}
	}

	defer m.stopOnCancel(ctx)()
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	if err := m.recordApplied(ctx); err != nil {
		m.warn("failed to store checksums", "error", err)
	}
	return nil
}

// Down rolls back the newest applied migration.
func (m *Manager) Down(ctx context.Context) error {
	defer m.stopOnCancel(ctx)()

	version, _, err := m.m.Version()
	if err == nil {
		err = m.m.Steps(-1)
	}
	if err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}
	if err := m.forget(ctx, version); err != nil {
		m.warn("failed to drop checksum", "version", version, "error", err)
	}
	return nil
}

// stopOnCancel makes golang-migrate stop after the running migration
// once ctx is done. The returned func releases the watcher.
func (m *Manager) stopOnCancel(ctx context.Context) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-done:
		case <-ctx.Done():
			select {
			case m.m.GracefulStop <- true:
			default:
			}
		}
	}()
	return func() { close(done) }
}

// Version returns the schema version; zero when nothing is applied.
func (m *Manager) Version() (version uint, dirty bool, err error) {
	version, dirty, err = m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (m *Manager) warn(msg string, args ...any) {
	if m.cfg.Warn != nil {
		m.cfg.Warn(msg, args...)
	}
}

// Close closes the manager and the database.
func (m *Manager) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}

// MigrationInfo describes one embedded migration.
type MigrationInfo struct {
	Version     uint
	Description string
	Applied     bool
	Checksum    string
}

// List returns every embedded migration in version order.
func (m *Manager) List(ctx context.Context) ([]MigrationInfo, error) {
	current, dirty, err := m.Version()
	if err != nil {
		return nil, fmt.Errorf("failed to get version: %w", err)
	}

	infos := make([]MigrationInfo, 0, len(m.files))
	for version, f := range m.files {
		infos = append(infos, MigrationInfo{
			Version:     version,
			Description: describe(f.name),
			Applied:     version < current || (version == current && !dirty),
			Checksum:    f.checksum,
		})
	}
	slices.SortFunc(infos, func(a, b MigrationInfo) int { return int(a.Version) - int(b.Version) })
	return infos, nil
}

// describe turns "000001_initial_schema.up.sql" into "initial schema".
func describe(name string) string {
	desc := strings.TrimSuffix(name, ".up.sql")
	if _, rest, ok := strings.Cut(desc, "_"); ok {
		desc = rest
	}
	return strings.ReplaceAll(desc, "_", " ")
}

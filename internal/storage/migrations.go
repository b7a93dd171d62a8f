package storage

import (
	"context"
	"fmt"

	"lmsadmin/internal/storage/migrate"
)

func migrateConfig(cfg MigrationsConfig) migrate.Config {
	mc := migrate.DefaultConfig()
	mc.VerifyChecksums = cfg.VerifyChecksums
	if cfg.OnChecksumMismatch != "" {
		mc.OnChecksumMismatch = cfg.OnChecksumMismatch
	}
	if cfg.LockTimeout > 0 {
		mc.LockTimeout = cfg.LockTimeout
	}
	mc.Warn = func(msg string, args ...any) { Logger("migrations").Warn(msg, args...) }
	return mc
}

// RunMigrations applies all pending migrations to store.
func RunMigrations(ctx context.Context, store Store, cfg MigrationsConfig) error {
	db := store.DB()

	// A failed migration leaves its version dirty. Migrations run in a
	// transaction, so the version is rolled back to the previous one and
	// the migration retried.
	var version uint
	var dirty bool
	err := db.QueryRowContext(ctx, "SELECT version, dirty FROM "+migrate.MigrationsTable+" LIMIT 1").Scan(&version, &dirty)
	if err == nil && dirty {
		reset := "DELETE FROM " + migrate.MigrationsTable
		args := []any{}
		if version > 1 {
			reset = "UPDATE " + migrate.MigrationsTable + " SET dirty = 0, version = ?"
			args = append(args, int(version)-1)
		}
		if _, err := db.ExecContext(ctx, reset, args...); err != nil {
			return fmt.Errorf("%w: failed to clean dirty state: %v", ErrMigrationFailed, err)
		}
		Logger("migrations").Warn("cleaned dirty migration state", "version", version)
	}

	// The manager is not closed: closing it would close the store's pool.
	mgr, err := migrate.NewSQLiteManager(db, migrateConfig(cfg))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}
	if err := mgr.Up(ctx); err != nil {
		if migrate.IsChecksumMismatch(err) {
			return fmt.Errorf("%w: %v", ErrChecksumMismatch, err)
		}
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}
	return nil
}

// RollbackMigration rolls back the last applied migration.
func RollbackMigration(ctx context.Context, store Store, cfg MigrationsConfig) error {
	mc := migrateConfig(cfg)
	mc.VerifyChecksums = false

	mgr, err := migrate.NewSQLiteManager(store.DB(), mc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}
	if err := mgr.Down(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}
	return nil
}

// GetMigrationStatus returns the current schema version.
func GetMigrationStatus(ctx context.Context, store Store, cfg MigrationsConfig) (version uint, dirty bool, err error) {
	mgr, err := migrate.NewSQLiteManager(store.DB(), migrateConfig(cfg))
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}
	return mgr.Version()
}

// ListMigrations lists the embedded migrations and whether they are applied.
func ListMigrations(ctx context.Context, store Store, cfg MigrationsConfig) ([]migrate.MigrationInfo, error) {
	mgr, err := migrate.NewSQLiteManager(store.DB(), migrateConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}
	return mgr.List(ctx)
}

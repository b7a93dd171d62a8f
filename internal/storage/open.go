package storage

import (
	"context"
	"errors"
	"fmt"
)

// OpenSQLite is registered by the sqlite package, which imports this one.
var OpenSQLite func(ctx context.Context, cfg Config) (Store, error)

var errNoBackend = errors.New("SQLite backend not available; import lmsadmin/internal/storage/sqlite")

// Open validates cfg, opens the SQLite store and, unless
// cfg.SkipMigrations is set, applies the pending migrations. A program
// calling Open must import lmsadmin/internal/storage/sqlite.
func Open(ctx context.Context, cfg Config) (Store, error) {
	log := Logger("open").With("path", cfg.Path)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid storage config", "error", err)
		return nil, fmt.Errorf("invalid storage config: %w", err)
	}
	if OpenSQLite == nil {
		return nil, errNoBackend
	}

	store, err := OpenSQLite(ctx, cfg)
	if err != nil {
		log.Error("failed to create SQLite store", "error", err)
		return nil, fmt.Errorf("failed to create SQLite store: %w", err)
	}
	if cfg.SkipMigrations {
		log.Info("storage opened without migrations")
		return store, nil
	}

	mc := cfg.Migrations
	if mc.LockTimeout == 0 {
		mc = DefaultMigrationsConfig()
	}
	if err := RunMigrations(ctx, store, mc); err != nil {
		log.Error("failed to run migrations", "error", err)
		return nil, errors.Join(err, store.Close())
	}
	log.Info("storage opened")
	return store, nil
}

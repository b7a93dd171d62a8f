package migrate

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// ChecksumsTable records the checksum of every applied migration.
const ChecksumsTable = "lmsadmin_migration_checksums"

// ErrChecksumMismatch is returned when an applied migration differs from
// the embedded file.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// IsChecksumMismatch reports whether err is a checksum mismatch.
func IsChecksumMismatch(err error) bool {
	return errors.Is(err, ErrChecksumMismatch)
}

type migrationFile struct {
	name     string
	checksum string
}

// readFiles hashes the up migrations in dir by version.
func readFiles(fsys fs.FS, dir string) (map[uint]migrationFile, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	files := make(map[uint]migrationFile)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".up.sql") {
			continue
		}
		version, ok := parseVersion(e.Name())
		if !ok {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", e.Name(), err)
		}
		sum := sha256.Sum256(data)
		files[version] = migrationFile{name: e.Name(), checksum: hex.EncodeToString(sum[:])}
	}
	return files, nil
}

// parseVersion reads the numeric prefix of "000001_initial_schema.up.sql".
func parseVersion(name string) (uint, bool) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(prefix, 10, 32)
	return uint(v), err == nil
}

func (m *Manager) createChecksumTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+ChecksumsTable+` (
		version    INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		checksum   TEXT NOT NULL,
		applied_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create checksum table: %w", err)
	}
	return nil
}

// checkApplied compares the recorded checksums with the embedded files.
// A recorded migration without a file counts as changed.
func (m *Manager) checkApplied(ctx context.Context) error {
	rows, err := m.db.QueryContext(ctx, "SELECT version, name, checksum FROM "+ChecksumsTable)
	if err != nil {
		return fmt.Errorf("failed to read checksums: %w", err)
	}
	defer rows.Close()

	var changed []string
	for rows.Next() {
		var version uint
		var name, sum string
		if err := rows.Scan(&version, &name, &sum); err != nil {
			return fmt.Errorf("failed to scan checksum: %w", err)
		}
		if f, ok := m.files[version]; !ok || f.checksum != sum {
			changed = append(changed, name)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(changed) > 0 {
		return fmt.Errorf("%w: %s", ErrChecksumMismatch, strings.Join(changed, ", "))
	}
	return nil
}

// recordApplied stores the checksum of every migration up to the current
// version. Existing records are kept.
func (m *Manager) recordApplied(ctx context.Context) error {
	current, _, err := m.Version()
	if err != nil {
		return err
	}
	appliedAt := time.Now().UTC().Format(time.RFC3339)
	for version, f := range m.files {
		if version > current {
			continue
		}
		if _, err := m.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO "+ChecksumsTable+" (version, name, checksum, applied_at) VALUES (?, ?, ?, ?)",
			version, f.name, f.checksum, appliedAt); err != nil {
			return fmt.Errorf("failed to store checksum for %s: %w", f.name, err)
		}
	}
	return nil
}

func (m *Manager) forget(ctx context.Context, version uint) error {
	_, err := m.db.ExecContext(ctx, "DELETE FROM "+ChecksumsTable+" WHERE version = ?", version)
	return err
}

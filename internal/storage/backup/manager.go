package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"lmsadmin/internal/logger"
	"lmsadmin/internal/storage"
)

const metadataDir = ".metadata"

// ErrIntegrity is returned when a backup file does not match its hash.
var ErrIntegrity = errors.New("backup integrity check failed")

// Manager handles backup and restore operations of one SQLite database.
type Manager struct {
	cfg    Config
	dbPath string
	log    *logger.Logger
	now    func() time.Time
}

// NewManager creates a new backup manager for the database at dbPath.
func NewManager(cfg Config, dbPath string) (*Manager, error) {
	if dbPath == "" || dbPath == ":memory:" {
		return nil, fmt.Errorf("%w: backups need a database file", storage.ErrInvalidInput)
	}
	if cfg.Dir == "" {
		cfg.Dir = filepath.Join(filepath.Dir(dbPath), "backups")
	}
	if cfg.MaxBackups < 0 {
		return nil, fmt.Errorf("%w: max backups must not be negative", storage.ErrInvalidInput)
	}

	return &Manager{
		cfg:    cfg,
		dbPath: dbPath,
		log:    storage.Logger("backup"),
		now:    time.Now,
	}, nil
}

// Dir returns the backup directory.
func (m *Manager) Dir() string {
	return m.cfg.Dir
}

// Backup copies the database of store into a new backup file. The copy
// is taken with VACUUM INTO, so it is consistent while the store is in
// use. With Compress set the copy is replaced by a zstd stream and the
// hash covers the compressed file.
func (m *Manager) Backup(ctx context.Context, store storage.Store, notes string) (*Metadata, error) {
	if err := os.MkdirAll(m.cfg.Dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	timestamp := m.now().UTC()
	id := timestamp.Format("20060102-150405") + "-" + uuid.NewString()[:8]
	path := filepath.Join(m.cfg.Dir, "lmsadmin_"+id+".db")

	if _, err := store.DB().ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return nil, fmt.Errorf("backup failed: %w", err)
	}

	compression := CompressionNone
	if m.cfg.Compress {
		compressed := path + ".zst"
		if err := compressFile(path, compressed); err != nil {
			_ = os.Remove(compressed)
			_ = os.Remove(path)
			return nil, fmt.Errorf("failed to compress backup: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("failed to remove uncompressed copy: %w", err)
		}
		path, compression = compressed, CompressionZstd
	}

	version, _, err := storage.GetMigrationStatus(ctx, store, storage.DefaultMigrationsConfig())
	if err != nil {
		m.log.Warn("failed to read schema version", "error", err)
	}

	size, hash, err := fileInfo(path)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate file info: %w", err)
	}

	metadata := &Metadata{
		ID:            id,
		Timestamp:     timestamp,
		SchemaVersion: version,
		Size:          size,
		Path:          path,
		IntegrityHash: hash,
		Compression:   compression,
		Notes:         notes,
	}

	if m.cfg.Verify {
		if err := verify(metadata); err != nil {
			return nil, err
		}
	}
	if err := m.saveMetadata(metadata); err != nil {
		return nil, fmt.Errorf("failed to save metadata: %w", err)
	}

	if err := m.prune(); err != nil {
		m.log.Warn("failed to clean up old backups", "error", err)
	}

	m.log.Info("backup created", "id", id, "path", path, "size", size, "compression", compression)
	return metadata, nil
}

// Restore replaces the database file with a backup. The database must
// not be open while it runs.
func (m *Manager) Restore(ctx context.Context, opts RestoreOptions) (*Metadata, error) {
	metadata, err := m.Get(opts.BackupID)
	if err != nil {
		return nil, err
	}
	if opts.VerifyBefore {
		if err := verify(metadata); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Write next to the database and rename, so a failed copy leaves the
	// database untouched.
	tmp := m.dbPath + ".restore"
	if err := extractFile(metadata.Path, tmp, metadata.Compression); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("failed to copy backup: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(m.dbPath + suffix); err != nil && !os.IsNotExist(err) {
			_ = os.Remove(tmp)
			return nil, fmt.Errorf("failed to remove %s file: %w", suffix, err)
		}
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		return nil, fmt.Errorf("failed to replace database: %w", err)
	}

	m.log.Info("backup restored", "id", metadata.ID, "path", m.dbPath)
	return metadata, nil
}

// List returns the available backups, newest first.
func (m *Manager) List() ([]*Metadata, error) {
	entries, err := os.ReadDir(filepath.Join(m.cfg.Dir, metadataDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []*Metadata{}, nil
		}
		return nil, fmt.Errorf("failed to read metadata directory: %w", err)
	}

	backups := make([]*Metadata, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		metadata, err := m.loadMetadata(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			m.log.Debug("skipping invalid metadata", "file", entry.Name(), "error", err)
			continue
		}
		backups = append(backups, metadata)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// Get returns the metadata of one backup.
func (m *Manager) Get(id string) (*Metadata, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("%w: backup id %q", storage.ErrInvalidInput, id)
	}
	metadata, err := m.loadMetadata(id)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("backup %s: %w", id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load backup metadata: %w", err)
	}
	return metadata, nil
}

// Delete deletes a backup.
func (m *Manager) Delete(id string) error {
	metadata, err := m.Get(id)
	if err != nil {
		return err
	}
	if err := os.Remove(metadata.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete backup file: %w", err)
	}
	if err := os.Remove(m.metadataPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete metadata file: %w", err)
	}
	return nil
}

func (m *Manager) prune() error {
	if m.cfg.MaxBackups == 0 {
		return nil
	}
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := m.cfg.MaxBackups; i < len(backups); i++ {
		if err := m.Delete(backups[i].ID); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) metadataPath(id string) string {
	return filepath.Join(m.cfg.Dir, metadataDir, id+".json")
}

func (m *Manager) saveMetadata(metadata *Metadata) error {
	if err := os.MkdirAll(filepath.Join(m.cfg.Dir, metadataDir), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.metadataPath(metadata.ID), data, 0600)
}

func (m *Manager) loadMetadata(id string) (*Metadata, error) {
	data, err := os.ReadFile(m.metadataPath(id))
	if err != nil {
		return nil, err
	}
	var metadata Metadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, err
	}
	return &metadata, nil
}

func verify(metadata *Metadata) error {
	_, hash, err := fileInfo(metadata.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	if hash != metadata.IntegrityHash {
		return fmt.Errorf("%w: hash mismatch for %s", ErrIntegrity, metadata.ID)
	}
	return nil
}

func fileInfo(path string) (int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = f.Close() }()

	hash := sha256.New()
	size, err := io.Copy(hash, f)
	if err != nil {
		return 0, "", err
	}
	return size, hex.EncodeToString(hash.Sum(nil)), nil
}

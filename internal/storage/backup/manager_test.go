package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lmsadmin/internal/domain"
	"lmsadmin/internal/storage"
	_ "lmsadmin/internal/storage/sqlite"
)

func openStore(t *testing.T, path string) storage.Store {
	t.Helper()

	store, err := storage.Open(context.Background(), storage.DefaultConfig(path))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return store
}

func newTestManager(t *testing.T, maxBackups int) (*Manager, string) {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "lms.db")
	m, err := NewManager(Config{MaxBackups: maxBackups, Verify: true}, dbPath)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return m, dbPath
}

func TestNewManager(t *testing.T) {
	if _, err := NewManager(Config{}, ":memory:"); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected an in-memory database to be rejected, got %v", err)
	}

	m, err := NewManager(Config{}, "/var/lib/lms/lms.db")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if m.Dir() != "/var/lib/lms/backups" {
		t.Errorf("unexpected default dir %q", m.Dir())
	}
}

func TestManager_BackupAndRestore(t *testing.T) {
	ctx := context.Background()
	m, dbPath := newTestManager(t, 0)

	store := openStore(t, dbPath)
	if _, err := storage.Seed(ctx, store, nil, storage.SeedOptions{}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	meta, err := m.Backup(ctx, store, "before cleanup")
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if meta.Size == 0 || meta.IntegrityHash == "" || meta.SchemaVersion == 0 {
		t.Errorf("incomplete metadata: %+v", meta)
	}

	students, err := store.Students().List(ctx, storage.ListFilter{Limit: 1})
	if err != nil || len(students) != 1 {
		t.Fatalf("List failed: %v", err)
	}
	if err := store.Students().Delete(ctx, students[0].ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	store.Close()

	restored, err := m.Restore(ctx, RestoreOptions{BackupID: meta.ID, VerifyBefore: true})
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored.Notes != "before cleanup" {
		t.Errorf("unexpected notes %q", restored.Notes)
	}

	store = openStore(t, dbPath)
	defer store.Close()
	n, err := store.Students().Count(ctx, storage.ListFilter{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 12 {
		t.Errorf("expected 12 students after restore, got %d", n)
	}
}

func TestManager_CompressedBackup(t *testing.T) {
	ctx := context.Background()
	m, dbPath := newTestManager(t, 0)
	m.cfg.Compress = true

	store := openStore(t, dbPath)
	if _, err := storage.Seed(ctx, store, nil, storage.SeedOptions{}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	meta, err := m.Backup(ctx, store, "")
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if meta.Compression != CompressionZstd || filepath.Ext(meta.Path) != ".zst" {
		t.Errorf("expected a zstd backup, got %q at %s", meta.Compression, meta.Path)
	}
	if _, err := os.Stat(strings.TrimSuffix(meta.Path, ".zst")); !os.IsNotExist(err) {
		t.Errorf("expected the uncompressed copy to be removed, got %v", err)
	}

	if err := store.Students().Delete(ctx, mustFirstStudent(t, store)); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	store.Close()

	if _, err := m.Restore(ctx, RestoreOptions{BackupID: meta.ID, VerifyBefore: true}); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	store = openStore(t, dbPath)
	defer store.Close()
	n, err := store.Students().Count(ctx, storage.ListFilter{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 12 {
		t.Errorf("expected 12 students after restore, got %d", n)
	}
}

func mustFirstStudent(t *testing.T, store storage.Store) domain.StudentID {
	t.Helper()

	students, err := store.Students().List(context.Background(), storage.ListFilter{Limit: 1})
	if err != nil || len(students) != 1 {
		t.Fatalf("List failed: %v", err)
	}
	return students[0].ID
}

func TestManager_ListAndPrune(t *testing.T) {
	ctx := context.Background()
	m, dbPath := newTestManager(t, 2)

	store := openStore(t, dbPath)
	defer store.Close()

	var ids []string
	for i := 0; i < 3; i++ {
		meta, err := m.Backup(ctx, store, "")
		if err != nil {
			t.Fatalf("Backup %d failed: %v", i, err)
		}
		ids = append(ids, meta.ID)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups to be kept, got %d", len(backups))
	}
	if backups[0].ID != ids[2] || backups[1].ID != ids[1] {
		t.Errorf("expected the newest backups first, got %s, %s", backups[0].ID, backups[1].ID)
	}

	if _, err := m.Get(ids[0]); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected the oldest backup to be pruned, got %v", err)
	}
}

func TestManager_Verify(t *testing.T) {
	ctx := context.Background()
	m, dbPath := newTestManager(t, 0)

	store := openStore(t, dbPath)
	meta, err := m.Backup(ctx, store, "")
	store.Close()
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	if err := os.WriteFile(meta.Path, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Restore(ctx, RestoreOptions{BackupID: meta.ID, VerifyBefore: true}); !errors.Is(err, ErrIntegrity) {
		t.Errorf("expected ErrIntegrity, got %v", err)
	}
}

func TestManager_Get(t *testing.T) {
	m, _ := newTestManager(t, 0)

	tests := []struct {
		id   string
		want error
	}{
		{"", storage.ErrInvalidInput},
		{"../lms", storage.ErrInvalidInput},
		{"20260301-090000-abcdef12", storage.ErrNotFound},
	}
	for _, tt := range tests {
		if _, err := m.Get(tt.id); !errors.Is(err, tt.want) {
			t.Errorf("Get(%q) = %v, want %v", tt.id, err, tt.want)
		}
	}
	if err := m.Delete("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected Delete of a missing backup to fail with ErrNotFound, got %v", err)
	}
}

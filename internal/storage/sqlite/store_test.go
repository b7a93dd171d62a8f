package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"lmsadmin/internal/domain"
	"lmsadmin/internal/storage"
)

func setupTestStore(t *testing.T) storage.Store {
	t.Helper()

	cfg := storage.DefaultConfig(filepath.Join(t.TempDir(), "test.db"))
	store, err := storage.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seededStore(t *testing.T) storage.Store {
	t.Helper()

	store := setupTestStore(t)
	if _, err := storage.Seed(context.Background(), store, nil, storage.SeedOptions{}); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	return store
}

func TestStore_OpenMigrates(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	version, dirty, err := storage.GetMigrationStatus(ctx, store, storage.DefaultMigrationsConfig())
	if err != nil {
		t.Fatalf("GetMigrationStatus failed: %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("expected version 1 clean, got %d dirty=%v", version, dirty)
	}

	var fk int
	if err := store.DB().QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("failed to read pragma: %v", err)
	}
	if fk != 1 {
		t.Error("expected foreign keys to be enabled")
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	cfg := storage.DefaultConfig(filepath.Join(t.TempDir(), "test.db"))

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if _, err := storage.Seed(ctx, store, nil, storage.SeedOptions{}); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	store.Close()

	store, err = storage.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer store.Close()

	n, err := store.Students().Count(ctx, storage.ListFilter{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 12 {
		t.Errorf("expected 12 students after reopen, got %d", n)
	}
}

func TestStore_Close(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}

	_, err := store.Students().List(context.Background(), storage.ListFilter{})
	if !errors.Is(err, storage.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestStore_NewMemory(t *testing.T) {
	s, err := New(storage.DefaultConfig(":memory:"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	if err := storage.RunMigrations(context.Background(), s, storage.DefaultMigrationsConfig()); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	n, err := s.Courses().Count(context.Background(), storage.ListFilter{})
	if err != nil || n != 0 {
		t.Errorf("expected empty courses, got %d, %v", n, err)
	}
}

func TestStore_Stats(t *testing.T) {
	store := seededStore(t)

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.Students != 12 {
		t.Errorf("Students = %d, want 12", stats.Students)
	}
	if stats.Instructors != 3 || stats.MaleInstructors != 2 {
		t.Errorf("Instructors = %d (male %d), want 3 (male 2)", stats.Instructors, stats.MaleInstructors)
	}
	if stats.Courses != 4 {
		t.Errorf("Courses = %d, want 4", stats.Courses)
	}
	if stats.Exams != 3 || stats.PublishedExams != 1 {
		t.Errorf("Exams = %d (published %d), want 3 (published 1)", stats.Exams, stats.PublishedExams)
	}
	if stats.Questions != 3 {
		t.Errorf("Questions = %d, want 3", stats.Questions)
	}

	want := map[domain.RequestStatus]int{
		domain.RequestStatusPending:  5,
		domain.RequestStatusAccepted: 5,
		domain.RequestStatusRejected: 2,
	}
	for status, n := range want {
		if stats.StudentsByState[status] != n {
			t.Errorf("StudentsByState[%s] = %d, want %d", status, stats.StudentsByState[status], n)
		}
	}
}

func TestStore_SeedDuplicate(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	_, err := storage.Seed(ctx, store, nil, storage.SeedOptions{})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// The failed seed must not have written anything.
	n, err := store.Students().Count(ctx, storage.ListFilter{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 12 {
		t.Errorf("expected 12 students, got %d", n)
	}
}

func TestStore_SeedReset(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	if _, err := storage.Seed(ctx, store, nil, storage.SeedOptions{Reset: true}); err != nil {
		t.Fatalf("reset seed failed: %v", err)
	}

	n, err := store.Exams().Count(ctx, storage.ListFilter{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 exams after reset, got %d", n)
	}
}

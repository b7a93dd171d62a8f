// Package sqlite provides the SQLite implementation of the storage interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"lmsadmin/internal/domain"
	"lmsadmin/internal/logger"
	"lmsadmin/internal/storage"

	_ "modernc.org/sqlite"
)

// Store implements the storage.Store interface using SQLite.
type Store struct {
	db  *sql.DB
	cfg storage.Config
	log *logger.Logger

	students    *StudentRepository
	instructors *InstructorRepository
	courses     *CourseRepository
	exams       *ExamRepository
	questions   *QuestionRepository

	mu     sync.RWMutex
	closed bool
}

// New opens the SQLite database described by cfg. It does not run
// migrations; storage.Open does.
func New(cfg storage.Config) (*Store, error) {
	memory := cfg.Path == ":memory:"
	if !memory {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	switch {
	case memory:
		db.SetMaxOpenConns(1)
	case cfg.MaxOpenConns > 0:
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	default:
		db.SetMaxOpenConns(4)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{
		db:  db,
		cfg: cfg,
		log: storage.Logger("sqlite"),
	}
	s.students = &StudentRepository{store: s}
	s.instructors = &InstructorRepository{store: s}
	s.courses = &CourseRepository{store: s}
	s.exams = &ExamRepository{store: s}
	s.questions = &QuestionRepository{store: s}

	return s, nil
}

// dsn builds a modernc.org/sqlite data source name. Pragmas are given in
// the DSN so that every pooled connection gets them.
func dsn(cfg storage.Config) string {
	timeout := cfg.BusyTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", timeout.Milliseconds()))
	if cfg.Path != ":memory:" {
		params.Add("_pragma", "journal_mode(WAL)")
	}
	params.Set("_txlock", "immediate")
	return cfg.Path + "?" + params.Encode()
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Students returns the student repository.
func (s *Store) Students() storage.StudentRepository {
	return s.students
}

// Instructors returns the instructor repository.
func (s *Store) Instructors() storage.InstructorRepository {
	return s.instructors
}

// Courses returns the course repository.
func (s *Store) Courses() storage.CourseRepository {
	return s.courses
}

// Exams returns the exam repository.
func (s *Store) Exams() storage.ExamRepository {
	return s.exams
}

// Questions returns the question repository.
func (s *Store) Questions() storage.QuestionRepository {
	return s.questions
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.db.PingContext(ctx)
}

// DB returns the underlying database connection.
// Use with caution - prefer repository methods.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Stats returns record counts.
func (s *Store) Stats(ctx context.Context) (storage.Stats, error) {
	var stats storage.Stats
	counts := []struct {
		dst   *int
		query string
	}{
		{&stats.Students, "SELECT COUNT(*) FROM students"},
		{&stats.Instructors, "SELECT COUNT(*) FROM instructors"},
		{&stats.MaleInstructors, "SELECT COUNT(*) FROM instructors WHERE gender = 'M'"},
		{&stats.Courses, "SELECT COUNT(*) FROM courses"},
		{&stats.Exams, "SELECT COUNT(*) FROM exams"},
		{&stats.PublishedExams, "SELECT COUNT(*) FROM exams WHERE published = 1"},
		{&stats.Questions, "SELECT COUNT(*) FROM questions"},
	}
	for _, c := range counts {
		if err := s.queryRow(ctx, c.query).Scan(c.dst); err != nil {
			return stats, fmt.Errorf("failed to count: %w", err)
		}
	}

	// A course is active until the end of its end date, matching
	// domain.Course.Status.
	courses, err := s.courses.List(ctx, storage.ListFilter{})
	if err != nil {
		return stats, err
	}
	now := time.Now()
	for _, c := range courses {
		if c.Status(now) == domain.CourseStatusActive {
			stats.ActiveCourses++
		}
	}

	byState, err := s.students.CountByStatus(ctx)
	if err != nil {
		return stats, err
	}
	stats.StudentsByState = byState
	return stats, nil
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return storage.ErrClosed
	}
	return nil
}

// exec executes a statement and logs its duration at debug level.
func (s *Store) exec(ctx context.Context, q querier, table, query string, args ...any) (sql.Result, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	start := time.Now()
	result, err := q.ExecContext(ctx, query, args...)
	s.log.Debug("exec", "table", table, "duration", time.Since(start), "error", err)
	return result, err
}

// query runs a query and logs its duration at debug level.
func (s *Store) query(ctx context.Context, table, query string, args ...any) (*sql.Rows, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, query, args...)
	s.log.Debug("query", "table", table, "duration", time.Since(start), "error", err)
	return rows, err
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, query, args...)
}

// init registers the SQLite store factory with the storage package.
func init() {
	storage.OpenSQLite = func(ctx context.Context, cfg storage.Config) (storage.Store, error) {
		return New(cfg)
	}
}

// Ensure interface compliance
var _ storage.Store = (*Store)(nil)

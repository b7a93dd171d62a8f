package storage

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"lmsadmin/internal/domain"
)

//go:embed fixtures/default.yaml
var defaultFixture []byte

// Fixture is a set of records to seed a store with.
type Fixture struct {
	Instructors []domain.Instructor `yaml:"instructors"`
	Courses     []domain.Course     `yaml:"courses"`
	Students    []domain.Student    `yaml:"students"`
	Exams       []domain.Exam       `yaml:"exams"`
}

// SeedOptions controls how a fixture is written.
type SeedOptions struct {
	// Reset deletes every existing record first.
	Reset bool
}

// ParseFixture decodes a YAML fixture, fills in missing IDs, statuses and
// timestamps, and validates every record.
func ParseFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: decode fixture: %v", ErrInvalidInput, err)
	}
	if err := f.normalize(time.Now().UTC()); err != nil {
		return nil, err
	}
	return &f, nil
}

// DefaultFixture returns the embedded sample data.
func DefaultFixture() (*Fixture, error) {
	return ParseFixture(bytes.NewReader(defaultFixture))
}

func newID() string { return uuid.NewString() }

func (f *Fixture) normalize(now time.Time) error {
	instructors := make(map[domain.InstructorID]bool, len(f.Instructors))
	for i := range f.Instructors {
		in := &f.Instructors[i]
		if in.ID == "" {
			in.ID = domain.InstructorID(newID())
		}
		if in.JoinedAt.IsZero() {
			in.JoinedAt = now
		}
		if err := in.Validate(); err != nil {
			return fmt.Errorf("%w: instructor %q: %v", ErrInvalidInput, in.Name.Full(), err)
		}
		instructors[in.ID] = true
	}

	courses := make(map[domain.CourseID]bool, len(f.Courses))
	for i := range f.Courses {
		c := &f.Courses[i]
		if c.ID == "" {
			c.ID = domain.CourseID(newID())
		}
		for j := range c.Modules {
			m := &c.Modules[j]
			if m.ID == "" {
				m.ID = domain.ModuleID(newID())
			}
			for k := range m.Lectures {
				if m.Lectures[k].ID == "" {
					m.Lectures[k].ID = domain.LectureID(newID())
				}
			}
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%w: course %q: %v", ErrInvalidInput, c.Title, err)
		}
		if c.InstructorID != "" && !instructors[c.InstructorID] {
			return fmt.Errorf("%w: course %q: unknown instructor %q", ErrInvalidInput, c.Title, c.InstructorID)
		}
		courses[c.ID] = true
	}

	for i := range f.Students {
		s := &f.Students[i]
		if s.ID == "" {
			s.ID = domain.StudentID(newID())
		}
		if s.Status == "" {
			s.Status = domain.RequestStatusPending
		}
		if s.JoinedAt.IsZero() {
			s.JoinedAt = now
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: student %q: %v", ErrInvalidInput, s.Name.Full(), err)
		}
		if s.CourseID != "" && !courses[s.CourseID] {
			return fmt.Errorf("%w: student %q: unknown course %q", ErrInvalidInput, s.Name.Full(), s.CourseID)
		}
	}

	for i := range f.Exams {
		e := &f.Exams[i]
		if e.ID == "" {
			e.ID = domain.ExamID(newID())
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		for j := range e.Questions {
			q := &e.Questions[j]
			if q.ID == "" {
				q.ID = domain.QuestionID(newID())
			}
			q.ExamID = e.ID
			for k := range q.Answers {
				if q.Answers[k].ID == "" {
					q.Answers[k].ID = domain.AnswerID(newID())
				}
			}
		}
		if err := e.Validate(); err != nil {
			return fmt.Errorf("%w: exam %q: %v", ErrInvalidInput, e.Title, err)
		}
		if e.CourseID != "" && !courses[e.CourseID] {
			return fmt.Errorf("%w: exam %q: unknown course %q", ErrInvalidInput, e.Title, e.CourseID)
		}
	}
	return nil
}

// Seeder writes fixtures.
type Seeder interface {
	Seed(ctx context.Context, f *Fixture, opts SeedOptions) error
}

// Seed parses the fixture in r and writes it to s. A nil r seeds the
// embedded sample data.
func Seed(ctx context.Context, s Seeder, r io.Reader, opts SeedOptions) (*Fixture, error) {
	var (
		f   *Fixture
		err error
	)
	if r == nil {
		f, err = DefaultFixture()
	} else {
		f, err = ParseFixture(r)
	}
	if err != nil {
		return nil, err
	}

	seedLog := Logger("seed")
	seedLog.Debug("seeding",
		"instructors", len(f.Instructors),
		"courses", len(f.Courses),
		"students", len(f.Students),
		"exams", len(f.Exams),
		"reset", opts.Reset,
	)
	if err := s.Seed(ctx, f, opts); err != nil {
		return nil, err
	}
	seedLog.Info("seed complete")
	return f, nil
}

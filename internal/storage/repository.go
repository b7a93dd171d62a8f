package storage

import (
	"context"
	"database/sql"
	"io"

	"lmsadmin/internal/domain"
)

// Store is the main storage interface that provides access to all repositories.
type Store interface {
	io.Closer

	// Students returns the student repository.
	Students() StudentRepository

	// Instructors returns the instructor repository.
	Instructors() InstructorRepository

	// Courses returns the course repository.
	Courses() CourseRepository

	// Exams returns the exam repository.
	Exams() ExamRepository

	// Questions returns the question repository.
	Questions() QuestionRepository

	// Seed writes a fixture in a single transaction.
	Seed(ctx context.Context, f *Fixture, opts SeedOptions) error

	// Stats returns record counts.
	Stats(ctx context.Context) (Stats, error)

	// Ping checks database connectivity.
	Ping(ctx context.Context) error

	// DB returns the underlying connection pool, used by migrations.
	DB() *sql.DB
}

// ListFilter selects, orders and windows the rows of a list query.
type ListFilter struct {
	// Search matches a substring of the searchable text columns.
	Search string

	// OrderBy is a column key of the repository. Unknown keys are rejected
	// with ErrInvalidInput.
	OrderBy   string
	OrderDesc bool

	// Status restricts students to one request status.
	Status string

	// ParentID restricts questions to one exam.
	ParentID string

	Limit  int
	Offset int
}

// Stats contains record counts.
type Stats struct {
	Students        int
	StudentsByState map[domain.RequestStatus]int
	Instructors     int
	MaleInstructors int
	Courses         int
	ActiveCourses   int
	Exams           int
	PublishedExams  int
	Questions       int
}

// StudentRepository handles student persistence.
type StudentRepository interface {
	// Get retrieves a student by ID.
	Get(ctx context.Context, id domain.StudentID) (*domain.Student, error)

	// List retrieves students matching the filter.
	List(ctx context.Context, filter ListFilter) ([]*domain.Student, error)

	// Count returns the number of students matching the filter, ignoring
	// its limit and offset.
	Count(ctx context.Context, filter ListFilter) (int, error)

	// UpdateStatus sets the request status of a student.
	UpdateStatus(ctx context.Context, id domain.StudentID, status domain.RequestStatus) error

	// CountByStatus returns the number of students in each request status.
	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int, error)

	// Delete deletes a student and their enrollment.
	Delete(ctx context.Context, id domain.StudentID) error
}

// InstructorRepository handles instructor persistence.
type InstructorRepository interface {
	Get(ctx context.Context, id domain.InstructorID) (*domain.Instructor, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Instructor, error)
	Count(ctx context.Context, filter ListFilter) (int, error)

	// Delete deletes an instructor. Their courses become unassigned.
	Delete(ctx context.Context, id domain.InstructorID) error
}

// CourseRepository handles course persistence.
type CourseRepository interface {
	// Get retrieves a course with its modules and lectures.
	Get(ctx context.Context, id domain.CourseID) (*domain.Course, error)

	// List retrieves courses without their modules.
	List(ctx context.Context, filter ListFilter) ([]*domain.Course, error)
	Count(ctx context.Context, filter ListFilter) (int, error)

	// Delete deletes a course with its modules, lectures and enrollments.
	Delete(ctx context.Context, id domain.CourseID) error
}

// ExamRepository handles exam persistence.
type ExamRepository interface {
	// Get retrieves an exam with its questions and answers.
	Get(ctx context.Context, id domain.ExamID) (*domain.Exam, error)

	// List retrieves exams without their questions.
	List(ctx context.Context, filter ListFilter) ([]*domain.Exam, error)
	Count(ctx context.Context, filter ListFilter) (int, error)

	// SetPublished publishes or disables an exam.
	SetPublished(ctx context.Context, id domain.ExamID, published bool) error

	// Delete deletes an exam with its questions.
	Delete(ctx context.Context, id domain.ExamID) error
}

// QuestionRepository handles question persistence.
type QuestionRepository interface {
	Get(ctx context.Context, id domain.QuestionID) (*domain.Question, error)

	// List retrieves questions with their answers.
	List(ctx context.Context, filter ListFilter) ([]*domain.Question, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	Delete(ctx context.Context, id domain.QuestionID) error
}

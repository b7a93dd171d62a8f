package sqlite

import (
	"context"
	"fmt"

	"lmsadmin/internal/domain"
	"lmsadmin/internal/storage"
)

// StudentRepository implements storage.StudentRepository for SQLite.
type StudentRepository struct {
	store *Store
}

const studentSelect = `
	SELECT s.id, s.first_name, s.last_name, s.email, s.phone, s.gender, s.status, s.joined_at,
		COALESCE(e.course_id, ''), COALESCE(c.title, '')
	FROM students s
	LEFT JOIN enrollments e ON e.student_id = s.id
	LEFT JOIN courses c ON c.id = e.course_id`

var studentSort = sortColumns{
	"id":        "s.id",
	"name":      "s.first_name || ' ' || s.last_name",
	"email":     "s.email",
	"phone":     "s.phone",
	"gender":    "s.gender",
	"status":    "s.status",
	"joined_at": "s.joined_at",
	"course":    "COALESCE(c.title, '')",
}

// Get retrieves a student by ID.
func (r *StudentRepository) Get(ctx context.Context, id domain.StudentID) (*domain.Student, error) {
	if err := r.store.checkOpen(); err != nil {
		return nil, err
	}
	row := r.store.queryRow(ctx, studentSelect+" WHERE s.id = ?", string(id))
	s, err := scanStudent(row)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return s, nil
}

// List retrieves students matching the filter.
func (r *StudentRepository) List(ctx context.Context, filter storage.ListFilter) ([]*domain.Student, error) {
	where, args, err := r.where(filter)
	if err != nil {
		return nil, err
	}
	order, err := studentSort.orderBy(filter, "s.joined_at", "s.id")
	if err != nil {
		return nil, err
	}
	query, args := window(studentSelect+where+order, args, filter)

	rows, err := r.store.query(ctx, "students", query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []*domain.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Count returns the number of students matching the filter.
func (r *StudentRepository) Count(ctx context.Context, filter storage.ListFilter) (int, error) {
	if err := r.store.checkOpen(); err != nil {
		return 0, err
	}
	where, args, err := r.where(filter)
	if err != nil {
		return 0, err
	}
	query := `SELECT COUNT(*) FROM students s
		LEFT JOIN enrollments e ON e.student_id = s.id
		LEFT JOIN courses c ON c.id = e.course_id` + where

	var n int
	if err := r.store.queryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return n, nil
}

func (r *StudentRepository) where(filter storage.ListFilter) (string, []any, error) {
	where := " WHERE 1=1"
	var args []any

	if filter.Status != "" {
		status := domain.RequestStatus(filter.Status)
		if !status.IsValid() {
			return "", nil, fmt.Errorf("%w: unknown status %q", storage.ErrInvalidInput, filter.Status)
		}
		where += " AND s.status = ?"
		args = append(args, filter.Status)
	}

	clause, searchArgs := searchClause(filter.Search,
		"s.first_name", "s.last_name", "s.first_name || ' ' || s.last_name", "s.email", "s.phone")
	return where + clause, append(args, searchArgs...), nil
}

// UpdateStatus sets the request status of a student.
func (r *StudentRepository) UpdateStatus(ctx context.Context, id domain.StudentID, status domain.RequestStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %v", storage.ErrInvalidInput, domain.ErrInvalidRequestStatus)
	}
	result, err := r.store.exec(ctx, r.store.db, "students",
		"UPDATE students SET status = ? WHERE id = ?", string(status), string(id))
	if err != nil {
		return fmt.Errorf("failed to update student status: %w", err)
	}
	return expectAffected(result)
}

// CountByStatus returns the number of students in each request status.
func (r *StudentRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int, error) {
	rows, err := r.store.query(ctx, "students", "SELECT status, COUNT(*) FROM students GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count students by status: %w", err)
	}
	defer rows.Close()

	counts := map[domain.RequestStatus]int{
		domain.RequestStatusPending:  0,
		domain.RequestStatusAccepted: 0,
		domain.RequestStatusRejected: 0,
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[domain.RequestStatus(status)] = n
	}
	return counts, rows.Err()
}

// Delete deletes a student and their enrollment.
func (r *StudentRepository) Delete(ctx context.Context, id domain.StudentID) error {
	result, err := r.store.exec(ctx, r.store.db, "students", "DELETE FROM students WHERE id = ?", string(id))
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	return expectAffected(result)
}

func scanStudent(row scanner) (*domain.Student, error) {
	var (
		s        domain.Student
		id       string
		gender   string
		status   string
		joinedAt string
		courseID string
	)
	err := row.Scan(&id, &s.Name.First, &s.Name.Last, &s.Email, &s.Phone, &gender, &status, &joinedAt,
		&courseID, &s.CourseTitle)
	if err != nil {
		return nil, err
	}
	s.ID = domain.StudentID(id)
	s.Gender = domain.Gender(gender)
	s.Status = domain.RequestStatus(status)
	s.JoinedAt = parseTime(joinedAt)
	s.CourseID = domain.CourseID(courseID)
	return &s, nil
}

// Ensure interface compliance
var _ storage.StudentRepository = (*StudentRepository)(nil)

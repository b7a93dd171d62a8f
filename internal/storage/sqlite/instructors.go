package sqlite

import (
	"context"
	"fmt"
	"strings"

	"lmsadmin/internal/domain"
	"lmsadmin/internal/storage"
)

// InstructorRepository implements storage.InstructorRepository for SQLite.
type InstructorRepository struct {
	store *Store
}

// Course titles are joined with the unit separator, which never appears
// in a title.
const instructorSelect = `
	SELECT i.id, i.first_name, i.last_name, i.email, i.phone, i.gender, i.title, i.description, i.joined_at,
		COALESCE((SELECT group_concat(title, char(31)) FROM
			(SELECT c.title FROM courses c WHERE c.instructor_id = i.id ORDER BY c.start_date, c.id)), '')
	FROM instructors i`

var instructorSort = sortColumns{
	"id":        "i.id",
	"name":      "i.first_name || ' ' || i.last_name",
	"email":     "i.email",
	"phone":     "i.phone",
	"gender":    "i.gender",
	"joined_at": "i.joined_at",
}

// Get retrieves an instructor by ID.
func (r *InstructorRepository) Get(ctx context.Context, id domain.InstructorID) (*domain.Instructor, error) {
	if err := r.store.checkOpen(); err != nil {
		return nil, err
	}
	i, err := scanInstructor(r.store.queryRow(ctx, instructorSelect+" WHERE i.id = ?", string(id)))
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return i, nil
}

// List retrieves instructors matching the filter.
func (r *InstructorRepository) List(ctx context.Context, filter storage.ListFilter) ([]*domain.Instructor, error) {
	where, args := instructorWhere(filter)
	order, err := instructorSort.orderBy(filter, "i.joined_at", "i.id")
	if err != nil {
		return nil, err
	}
	query, args := window(instructorSelect+where+order, args, filter)

	rows, err := r.store.query(ctx, "instructors", query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructors: %w", err)
	}
	defer rows.Close()

	var instructors []*domain.Instructor
	for rows.Next() {
		i, err := scanInstructor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan instructor: %w", err)
		}
		instructors = append(instructors, i)
	}
	return instructors, rows.Err()
}

// Count returns the number of instructors matching the filter.
func (r *InstructorRepository) Count(ctx context.Context, filter storage.ListFilter) (int, error) {
	if err := r.store.checkOpen(); err != nil {
		return 0, err
	}
	where, args := instructorWhere(filter)
	var n int
	if err := r.store.queryRow(ctx, "SELECT COUNT(*) FROM instructors i"+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count instructors: %w", err)
	}
	return n, nil
}

func instructorWhere(filter storage.ListFilter) (string, []any) {
	clause, args := searchClause(filter.Search,
		"i.first_name", "i.last_name", "i.first_name || ' ' || i.last_name", "i.email", "i.phone", "i.title")
	return " WHERE 1=1" + clause, args
}

// Delete deletes an instructor. Their courses become unassigned.
func (r *InstructorRepository) Delete(ctx context.Context, id domain.InstructorID) error {
	result, err := r.store.exec(ctx, r.store.db, "instructors", "DELETE FROM instructors WHERE id = ?", string(id))
	if err != nil {
		return fmt.Errorf("failed to delete instructor: %w", err)
	}
	return expectAffected(result)
}

func scanInstructor(row scanner) (*domain.Instructor, error) {
	var (
		i        domain.Instructor
		id       string
		gender   string
		joinedAt string
		courses  string
	)
	err := row.Scan(&id, &i.Name.First, &i.Name.Last, &i.Email, &i.Phone, &gender, &i.Title, &i.Description,
		&joinedAt, &courses)
	if err != nil {
		return nil, err
	}
	i.ID = domain.InstructorID(id)
	i.Gender = domain.Gender(gender)
	i.JoinedAt = parseTime(joinedAt)
	if courses != "" {
		i.Courses = strings.Split(courses, "\x1f")
	}
	return &i, nil
}

// Ensure interface compliance
var _ storage.InstructorRepository = (*InstructorRepository)(nil)

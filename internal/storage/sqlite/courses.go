package sqlite

import (
	"context"
	"fmt"

	"lmsadmin/internal/domain"
	"lmsadmin/internal/storage"
)

// CourseRepository implements storage.CourseRepository for SQLite.
type CourseRepository struct {
	store *Store
}

const courseSelect = `
	SELECT c.id, c.title, c.description, c.start_date, c.end_date, c.price, c.type,
		COALESCE(c.instructor_id, ''), COALESCE(i.first_name || ' ' || i.last_name, '')
	FROM courses c
	LEFT JOIN instructors i ON i.id = c.instructor_id`

var courseSort = sortColumns{
	"id":          "c.id",
	"title":       "c.title",
	"description": "c.description",
	"instructor":  "COALESCE(i.first_name || ' ' || i.last_name, '')",
	"start_date":  "c.start_date",
	"end_date":    "c.end_date",
	"price":       "c.price",
}

// Get retrieves a course with its modules and lectures.
func (r *CourseRepository) Get(ctx context.Context, id domain.CourseID) (*domain.Course, error) {
	if err := r.store.checkOpen(); err != nil {
		return nil, err
	}
	c, err := scanCourse(r.store.queryRow(ctx, courseSelect+" WHERE c.id = ?", string(id)))
	if err != nil {
		return nil, wrapNotFound(err)
	}
	if c.Modules, err = r.modules(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) modules(ctx context.Context, id domain.CourseID) ([]domain.Module, error) {
	rows, err := r.store.query(ctx, "course_modules",
		"SELECT id, title, description FROM course_modules WHERE course_id = ? ORDER BY position", string(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	var modules []domain.Module
	index := make(map[domain.ModuleID]int)
	for rows.Next() {
		var m domain.Module
		var mid string
		if err := rows.Scan(&mid, &m.Title, &m.Description); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		m.ID = domain.ModuleID(mid)
		index[m.ID] = len(modules)
		modules = append(modules, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.store.query(ctx, "lectures",
		"SELECT id, module_id, title, scheduled_at FROM lectures WHERE course_id = ? ORDER BY module_id, position",
		string(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list lectures: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l domain.Lecture
		var lid, mid, scheduled string
		if err := rows.Scan(&lid, &mid, &l.Title, &scheduled); err != nil {
			return nil, fmt.Errorf("failed to scan lecture: %w", err)
		}
		l.ID = domain.LectureID(lid)
		l.ScheduledAt = parseTime(scheduled)
		if i, ok := index[domain.ModuleID(mid)]; ok {
			modules[i].Lectures = append(modules[i].Lectures, l)
		}
	}
	return modules, rows.Err()
}

// List retrieves courses without their modules.
func (r *CourseRepository) List(ctx context.Context, filter storage.ListFilter) ([]*domain.Course, error) {
	where, args := courseWhere(filter)
	order, err := courseSort.orderBy(filter, "c.start_date", "c.id")
	if err != nil {
		return nil, err
	}
	query, args := window(courseSelect+where+order, args, filter)

	rows, err := r.store.query(ctx, "courses", query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []*domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Count returns the number of courses matching the filter.
func (r *CourseRepository) Count(ctx context.Context, filter storage.ListFilter) (int, error) {
	if err := r.store.checkOpen(); err != nil {
		return 0, err
	}
	where, args := courseWhere(filter)
	query := "SELECT COUNT(*) FROM courses c LEFT JOIN instructors i ON i.id = c.instructor_id" + where
	var n int
	if err := r.store.queryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return n, nil
}

func courseWhere(filter storage.ListFilter) (string, []any) {
	clause, args := searchClause(filter.Search,
		"c.title", "c.description", "c.type", "i.first_name || ' ' || i.last_name")
	return " WHERE 1=1" + clause, args
}

// Delete deletes a course with its modules, lectures and enrollments.
func (r *CourseRepository) Delete(ctx context.Context, id domain.CourseID) error {
	result, err := r.store.exec(ctx, r.store.db, "courses", "DELETE FROM courses WHERE id = ?", string(id))
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return expectAffected(result)
}

func scanCourse(row scanner) (*domain.Course, error) {
	var (
		c            domain.Course
		id           string
		start, end   string
		instructorID string
	)
	err := row.Scan(&id, &c.Title, &c.Description, &start, &end, &c.Price, &c.Type,
		&instructorID, &c.InstructorName)
	if err != nil {
		return nil, err
	}
	c.ID = domain.CourseID(id)
	c.StartDate = parseTime(start)
	c.EndDate = parseTime(end)
	c.InstructorID = domain.InstructorID(instructorID)
	return &c, nil
}

// Ensure interface compliance
var _ storage.CourseRepository = (*CourseRepository)(nil)

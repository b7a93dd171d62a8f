package sqlite

import (
	"context"
	"fmt"

	"lmsadmin/internal/domain"
	"lmsadmin/internal/storage"
)

// ExamRepository implements storage.ExamRepository for SQLite.
type ExamRepository struct {
	store *Store
}

const examSelect = `
	SELECT x.id, x.title, COALESCE(x.course_id, ''), x.duration_minutes, x.start_date, x.created_at, x.published,
		COALESCE(c.title, ''), (SELECT COUNT(*) FROM questions q WHERE q.exam_id = x.id)
	FROM exams x
	LEFT JOIN courses c ON c.id = x.course_id`

var examSort = sortColumns{
	"id":         "x.id",
	"title":      "x.title",
	"course":     "COALESCE(c.title, '')",
	"duration":   "x.duration_minutes",
	"questions":  "(SELECT COUNT(*) FROM questions q WHERE q.exam_id = x.id)",
	"start_date": "x.start_date",
	"created_at": "x.created_at",
	"status":     "x.published",
}

// Get retrieves an exam with its questions and answers.
func (r *ExamRepository) Get(ctx context.Context, id domain.ExamID) (*domain.Exam, error) {
	if err := r.store.checkOpen(); err != nil {
		return nil, err
	}
	x, err := scanExam(r.store.queryRow(ctx, examSelect+" WHERE x.id = ?", string(id)))
	if err != nil {
		return nil, wrapNotFound(err)
	}
	questions, err := r.store.questions.List(ctx, storage.ListFilter{ParentID: string(id)})
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		x.Questions = append(x.Questions, *q)
	}
	return x, nil
}

// List retrieves exams without their questions.
func (r *ExamRepository) List(ctx context.Context, filter storage.ListFilter) ([]*domain.Exam, error) {
	where, args := examWhere(filter)
	order, err := examSort.orderBy(filter, "x.created_at", "x.id")
	if err != nil {
		return nil, err
	}
	query, args := window(examSelect+where+order, args, filter)

	rows, err := r.store.query(ctx, "exams", query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	defer rows.Close()

	var exams []*domain.Exam
	for rows.Next() {
		x, err := scanExam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exam: %w", err)
		}
		exams = append(exams, x)
	}
	return exams, rows.Err()
}

// Count returns the number of exams matching the filter.
func (r *ExamRepository) Count(ctx context.Context, filter storage.ListFilter) (int, error) {
	if err := r.store.checkOpen(); err != nil {
		return 0, err
	}
	where, args := examWhere(filter)
	query := "SELECT COUNT(*) FROM exams x LEFT JOIN courses c ON c.id = x.course_id" + where
	var n int
	if err := r.store.queryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count exams: %w", err)
	}
	return n, nil
}

func examWhere(filter storage.ListFilter) (string, []any) {
	clause, args := searchClause(filter.Search, "x.title", "c.title")
	return " WHERE 1=1" + clause, args
}

// SetPublished publishes or disables an exam.
func (r *ExamRepository) SetPublished(ctx context.Context, id domain.ExamID, published bool) error {
	result, err := r.store.exec(ctx, r.store.db, "exams",
		"UPDATE exams SET published = ? WHERE id = ?", boolToInt(published), string(id))
	if err != nil {
		return fmt.Errorf("failed to update exam: %w", err)
	}
	return expectAffected(result)
}

// Delete deletes an exam with its questions.
func (r *ExamRepository) Delete(ctx context.Context, id domain.ExamID) error {
	result, err := r.store.exec(ctx, r.store.db, "exams", "DELETE FROM exams WHERE id = ?", string(id))
	if err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}
	return expectAffected(result)
}

func scanExam(row scanner) (*domain.Exam, error) {
	var (
		x                domain.Exam
		id, courseID     string
		start, createdAt string
		published        int
	)
	err := row.Scan(&id, &x.Title, &courseID, &x.DurationMinutes, &start, &createdAt, &published,
		&x.CourseTitle, &x.QuestionCount)
	if err != nil {
		return nil, err
	}
	x.ID = domain.ExamID(id)
	x.CourseID = domain.CourseID(courseID)
	x.StartDate = parseTime(start)
	x.CreatedAt = parseTime(createdAt)
	x.Published = published != 0
	return &x, nil
}

// Ensure interface compliance
var _ storage.ExamRepository = (*ExamRepository)(nil)

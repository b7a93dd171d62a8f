package sqlite

import (
	"context"
	"fmt"
	"strings"

	"lmsadmin/internal/domain"
	"lmsadmin/internal/storage"
)

// QuestionRepository implements storage.QuestionRepository for SQLite.
type QuestionRepository struct {
	store *Store
}

const questionSelect = `
	SELECT q.id, q.exam_id, q.text, q.points, x.title
	FROM questions q
	JOIN exams x ON x.id = q.exam_id`

var questionSort = sortColumns{
	"id":      "q.id",
	"text":    "q.text",
	"exam":    "x.title",
	"points":  "q.points",
	"answers": "(SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id)",
}

// Get retrieves a question with its answers.
func (r *QuestionRepository) Get(ctx context.Context, id domain.QuestionID) (*domain.Question, error) {
	if err := r.store.checkOpen(); err != nil {
		return nil, err
	}
	q, err := scanQuestion(r.store.queryRow(ctx, questionSelect+" WHERE q.id = ?", string(id)))
	if err != nil {
		return nil, wrapNotFound(err)
	}
	if err := r.loadAnswers(ctx, []*domain.Question{q}); err != nil {
		return nil, err
	}
	return q, nil
}

// List retrieves questions with their answers. Questions of one exam keep
// their authored order unless another order is requested.
func (r *QuestionRepository) List(ctx context.Context, filter storage.ListFilter) ([]*domain.Question, error) {
	where, args := questionWhere(filter)
	order, err := questionSort.orderBy(filter, "x.title, q.position", "q.id")
	if err != nil {
		return nil, err
	}
	query, args := window(questionSelect+where+order, args, filter)

	rows, err := r.store.query(ctx, "questions", query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	var questions []*domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadAnswers(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// loadAnswers fills the answers of questions with a single query.
func (r *QuestionRepository) loadAnswers(ctx context.Context, questions []*domain.Question) error {
	if len(questions) == 0 {
		return nil
	}
	index := make(map[domain.QuestionID]*domain.Question, len(questions))
	args := make([]any, len(questions))
	for i, q := range questions {
		index[q.ID] = q
		args[i] = string(q.ID)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(questions)), ",")

	rows, err := r.store.query(ctx, "answers",
		"SELECT id, question_id, text, correct FROM answers WHERE question_id IN ("+placeholders+") ORDER BY question_id, position",
		args...)
	if err != nil {
		return fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Answer
		var id, questionID string
		var correct int
		if err := rows.Scan(&id, &questionID, &a.Text, &correct); err != nil {
			return fmt.Errorf("failed to scan answer: %w", err)
		}
		a.ID = domain.AnswerID(id)
		a.Correct = correct != 0
		if q, ok := index[domain.QuestionID(questionID)]; ok {
			q.Answers = append(q.Answers, a)
		}
	}
	return rows.Err()
}

// Count returns the number of questions matching the filter.
func (r *QuestionRepository) Count(ctx context.Context, filter storage.ListFilter) (int, error) {
	if err := r.store.checkOpen(); err != nil {
		return 0, err
	}
	where, args := questionWhere(filter)
	query := "SELECT COUNT(*) FROM questions q JOIN exams x ON x.id = q.exam_id" + where
	var n int
	if err := r.store.queryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return n, nil
}

func questionWhere(filter storage.ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	if filter.ParentID != "" {
		where += " AND q.exam_id = ?"
		args = append(args, filter.ParentID)
	}
	clause, searchArgs := searchClause(filter.Search, "q.text", "x.title")
	return where + clause, append(args, searchArgs...)
}

// Delete deletes a question and its answers.
func (r *QuestionRepository) Delete(ctx context.Context, id domain.QuestionID) error {
	result, err := r.store.exec(ctx, r.store.db, "questions", "DELETE FROM questions WHERE id = ?", string(id))
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return expectAffected(result)
}

func scanQuestion(row scanner) (*domain.Question, error) {
	var q domain.Question
	var id, examID string
	if err := row.Scan(&id, &examID, &q.Text, &q.Points, &q.ExamTitle); err != nil {
		return nil, err
	}
	q.ID = domain.QuestionID(id)
	q.ExamID = domain.ExamID(examID)
	return &q, nil
}

// Ensure interface compliance
var _ storage.QuestionRepository = (*QuestionRepository)(nil)

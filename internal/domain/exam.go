package domain

import (
	"fmt"
	"strings"
	"time"
)

// ExamID is a unique identifier for an exam.
type ExamID string

// String returns the string representation.
func (id ExamID) String() string {
	return string(id)
}

// QuestionID is a unique identifier for a question.
type QuestionID string

// String returns the string representation.
func (id QuestionID) String() string {
	return string(id)
}

// AnswerID is a unique identifier for an answer.
type AnswerID string

// ExamStatus is the publication state of an exam.
type ExamStatus string

const (
	ExamStatusPublished ExamStatus = "منشور"
	ExamStatusDisabled  ExamStatus = "معطل"
)

// Exam is a timed test attached to a course.
type Exam struct {
	ID              ExamID    `json:"id" yaml:"id"`
	Title           string    `json:"title" yaml:"title"`
	CourseID        CourseID  `json:"course_id,omitempty" yaml:"course_id,omitempty"`
	DurationMinutes int       `json:"duration_minutes" yaml:"duration_minutes"`
	StartDate       time.Time `json:"start_date" yaml:"start_date"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
	Published       bool      `json:"published" yaml:"published"`

	// CourseTitle and QuestionCount are filled in by storage.
	CourseTitle   string `json:"course_title,omitempty" yaml:"-"`
	QuestionCount int    `json:"question_count" yaml:"-"`

	Questions []Question `json:"questions,omitempty" yaml:"questions,omitempty"`
}

// Status returns the publication status.
func (e *Exam) Status() ExamStatus {
	if e.Published {
		return ExamStatusPublished
	}
	return ExamStatusDisabled
}

// Course returns the course title, or "غير محدد" when unassigned.
func (e *Exam) Course() string {
	if e.CourseTitle == "" {
		return "غير محدد"
	}
	return e.CourseTitle
}

// Validate validates the exam and its questions.
func (e *Exam) Validate() error {
	if e.ID == "" {
		return ErrInvalidExamID
	}
	if strings.TrimSpace(e.Title) == "" {
		return ErrInvalidExamTitle
	}
	if e.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	for i := range e.Questions {
		if err := e.Questions[i].Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// Question is one exam question with its answer choices.
type Question struct {
	ID      QuestionID `json:"id" yaml:"id"`
	ExamID  ExamID     `json:"exam_id" yaml:"-"`
	Text    string     `json:"text" yaml:"text"`
	Points  int        `json:"points" yaml:"points"`
	Answers []Answer   `json:"answers,omitempty" yaml:"answers,omitempty"`

	// ExamTitle is filled in by storage.
	ExamTitle string `json:"exam_title,omitempty" yaml:"-"`
}

// CorrectAnswers returns the number of answers marked correct.
func (q *Question) CorrectAnswers() int {
	n := 0
	for _, a := range q.Answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// Validate validates the question. A question with answers needs at least
// one correct answer.
func (q *Question) Validate() error {
	if q.ID == "" {
		return ErrInvalidQuestionID
	}
	if strings.TrimSpace(q.Text) == "" {
		return ErrInvalidQuestionText
	}
	if q.Points <= 0 {
		return ErrInvalidPoints
	}
	for i := range q.Answers {
		if strings.TrimSpace(q.Answers[i].Text) == "" {
			return fmt.Errorf("answer %d: %w", i+1, ErrInvalidAnswer)
		}
	}
	if len(q.Answers) > 0 && q.CorrectAnswers() == 0 {
		return ErrNoCorrectAnswer
	}
	return nil
}

// Answer is one answer choice.
type Answer struct {
	ID      AnswerID `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Correct bool     `json:"correct" yaml:"correct"`
}

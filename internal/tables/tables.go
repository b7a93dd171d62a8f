// Package tables defines the column sets of the record tables. The
// console pages and the list command render the same tables.
package tables

import (
	"strconv"
	"time"

	"lmsadmin/internal/datatable"
	"lmsadmin/internal/domain"
)

// Translator resolves column labels.
type Translator interface {
	T(key string, args ...any) string
}

// Names of the record tables.
const (
	Students    = "students"
	Instructors = "instructors"
	Courses     = "courses"
	Exams       = "exams"
	Questions   = "questions"
)

// Names lists the record tables in display order.
func Names() []string {
	return []string{Students, Instructors, Courses, Exams, Questions}
}

// Now returns the time course statuses are computed at.
var Now = time.Now

// StudentTable returns a table of enrollment requests.
func StudentTable(tr Translator) *datatable.Table[*domain.Student] {
	return datatable.New(func(s *domain.Student) string { return s.ID.String() }).
		WithColumns(
			datatable.Column[*domain.Student]{
				Key: "name", Label: tr.T("columns.name"), Sortable: true,
				Value: func(s *domain.Student) any { return s.Name.Full() },
			},
			datatable.Column[*domain.Student]{
				Key: "email", Label: tr.T("columns.email"), Sortable: true,
				Value: func(s *domain.Student) any { return s.Email },
			},
			datatable.Column[*domain.Student]{
				Key: "phone", Label: tr.T("columns.phone"), Sortable: true,
				Value: func(s *domain.Student) any { return s.Phone },
			},
			datatable.Column[*domain.Student]{
				Key: "gender", Label: tr.T("columns.gender"), Sortable: true,
				Value: func(s *domain.Student) any { return s.Gender.Label() },
			},
			datatable.Column[*domain.Student]{
				Key: "course", Label: tr.T("columns.course"), Sortable: true,
				Value: func(s *domain.Student) any { return orNone(s.CourseTitle) },
			},
			datatable.Column[*domain.Student]{
				Key: "joined_at", Label: tr.T("columns.joined_at"), Sortable: true,
				Value:  func(s *domain.Student) any { return s.JoinedAt },
				Render: func(s *domain.Student) string { return domain.FormatDate(s.JoinedAt) },
			},
			datatable.Column[*domain.Student]{
				Key: "status", Label: tr.T("columns.status"), Sortable: true, Status: true,
				Value: func(s *domain.Student) any { return s.Status.Label() },
			},
		)
}

// InstructorTable returns a table of instructors.
func InstructorTable(tr Translator) *datatable.Table[*domain.Instructor] {
	return datatable.New(func(i *domain.Instructor) string { return i.ID.String() }).
		WithColumns(
			datatable.Column[*domain.Instructor]{
				Key: "name", Label: tr.T("columns.name"), Sortable: true,
				Value: func(i *domain.Instructor) any { return i.Name.Full() },
			},
			datatable.Column[*domain.Instructor]{
				Key: "title", Label: tr.T("columns.job_title"),
				Value: func(i *domain.Instructor) any { return orNone(i.Title) },
			},
			datatable.Column[*domain.Instructor]{
				Key: "email", Label: tr.T("columns.email"), Sortable: true,
				Value: func(i *domain.Instructor) any { return orNone(i.Email) },
			},
			datatable.Column[*domain.Instructor]{
				Key: "phone", Label: tr.T("columns.phone"), Sortable: true,
				Value: func(i *domain.Instructor) any { return i.Phone },
			},
			datatable.Column[*domain.Instructor]{
				Key: "gender", Label: tr.T("columns.gender"), Sortable: true,
				Value: func(i *domain.Instructor) any { return i.Gender.Label() },
			},
			datatable.Column[*domain.Instructor]{
				Key: "courses", Label: tr.T("columns.courses"),
				Value: func(i *domain.Instructor) any { return i.CourseList() },
			},
			datatable.Column[*domain.Instructor]{
				Key: "joined_at", Label: tr.T("columns.joined_at"), Sortable: true,
				Value:  func(i *domain.Instructor) any { return i.JoinedAt },
				Render: func(i *domain.Instructor) string { return domain.FormatDate(i.JoinedAt) },
			},
		)
}

// CourseTable returns a table of courses. The status column is computed
// from the dates and cannot be sorted by the store.
func CourseTable(tr Translator) *datatable.Table[*domain.Course] {
	return datatable.New(func(c *domain.Course) string { return c.ID.String() }).
		WithColumns(
			datatable.Column[*domain.Course]{
				Key: "title", Label: tr.T("columns.title"), Sortable: true,
				Value: func(c *domain.Course) any { return c.Title },
			},
			datatable.Column[*domain.Course]{
				Key: "instructor", Label: tr.T("columns.instructor"), Sortable: true,
				Value: func(c *domain.Course) any { return c.Instructor() },
			},
			datatable.Column[*domain.Course]{
				Key: "start_date", Label: tr.T("columns.start_date"), Sortable: true,
				Value:  func(c *domain.Course) any { return c.StartDate },
				Render: func(c *domain.Course) string { return domain.FormatDate(c.StartDate) },
			},
			datatable.Column[*domain.Course]{
				Key: "end_date", Label: tr.T("columns.end_date"), Sortable: true,
				Value:  func(c *domain.Course) any { return c.EndDate },
				Render: func(c *domain.Course) string { return domain.FormatDate(c.EndDate) },
			},
			datatable.Column[*domain.Course]{
				Key: "price", Label: tr.T("columns.price"), Sortable: true, Align: datatable.AlignRight,
				Value:  func(c *domain.Course) any { return c.Price },
				Render: func(c *domain.Course) string { return c.FormatPrice() },
			},
			datatable.Column[*domain.Course]{
				Key: "status", Label: tr.T("columns.status"), Status: true,
				Value: func(c *domain.Course) any { return c.Status(Now()).Label() },
			},
		)
}

// ExamTable returns a table of exams.
func ExamTable(tr Translator) *datatable.Table[*domain.Exam] {
	return datatable.New(func(e *domain.Exam) string { return e.ID.String() }).
		WithColumns(
			datatable.Column[*domain.Exam]{
				Key: "title", Label: tr.T("columns.title"), Sortable: true,
				Value: func(e *domain.Exam) any { return e.Title },
			},
			datatable.Column[*domain.Exam]{
				Key: "course", Label: tr.T("columns.course"), Sortable: true,
				Value: func(e *domain.Exam) any { return e.Course() },
			},
			datatable.Column[*domain.Exam]{
				Key: "duration", Label: tr.T("columns.duration"), Sortable: true, Align: datatable.AlignRight,
				Value: func(e *domain.Exam) any { return e.DurationMinutes },
			},
			datatable.Column[*domain.Exam]{
				Key: "questions", Label: tr.T("columns.questions"), Sortable: true, Align: datatable.AlignRight,
				Value: func(e *domain.Exam) any { return e.QuestionCount },
			},
			datatable.Column[*domain.Exam]{
				Key: "start_date", Label: tr.T("columns.start_date"), Sortable: true,
				Value:  func(e *domain.Exam) any { return e.StartDate },
				Render: func(e *domain.Exam) string { return domain.FormatDate(e.StartDate) },
			},
			datatable.Column[*domain.Exam]{
				Key: "created_at", Label: tr.T("columns.created_at"), Sortable: true,
				Value:  func(e *domain.Exam) any { return e.CreatedAt },
				Render: func(e *domain.Exam) string { return domain.FormatDate(e.CreatedAt) },
			},
			datatable.Column[*domain.Exam]{
				Key: "status", Label: tr.T("columns.status"), Sortable: true, Status: true,
				Value: func(e *domain.Exam) any { return string(e.Status()) },
			},
		)
}

// QuestionTable returns a table of questions.
func QuestionTable(tr Translator) *datatable.Table[*domain.Question] {
	return datatable.New(func(q *domain.Question) string { return q.ID.String() }).
		WithColumns(
			datatable.Column[*domain.Question]{
				Key: "text", Label: tr.T("columns.text"), Sortable: true,
				Value: func(q *domain.Question) any { return q.Text },
			},
			datatable.Column[*domain.Question]{
				Key: "exam", Label: tr.T("columns.exam"), Sortable: true,
				Value: func(q *domain.Question) any { return orNone(q.ExamTitle) },
			},
			datatable.Column[*domain.Question]{
				Key: "points", Label: tr.T("columns.points"), Sortable: true, Align: datatable.AlignRight,
				Value: func(q *domain.Question) any { return q.Points },
			},
			datatable.Column[*domain.Question]{
				Key: "answers", Label: tr.T("columns.answers"), Sortable: true, Align: datatable.AlignRight,
				Value: func(q *domain.Question) any { return len(q.Answers) },
				Render: func(q *domain.Question) string {
					return strconv.Itoa(q.CorrectAnswers()) + "/" + strconv.Itoa(len(q.Answers))
				},
			},
		)
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

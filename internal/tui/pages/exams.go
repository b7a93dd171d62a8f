package pages

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"lmsadmin/internal/domain"
	"lmsadmin/internal/logger"
	"lmsadmin/internal/storage"
	"lmsadmin/internal/tables"
	"lmsadmin/internal/tui/app"
	"lmsadmin/internal/tui/themes"
)

// ExamsPage lists exams.
type ExamsPage struct {
	*TablePage[*domain.Exam]
}

// NewExamsPage creates the exams page.
func NewExamsPage(application *app.App) *ExamsPage {
	tr := application.I18n()
	provider := storage.NewProvider[*domain.Exam](application.Store().Exams())

	p := &ExamsPage{}
	p.TablePage = newTablePage(PageExams, tables.Exams, application,
		tables.ExamTable(tr), provider, examName,
		[]rowAction[*domain.Exam]{
			{
				label: "actions.publish", icon: themes.IconPublish, style: "success",
				audit: logger.AuditActionPublish, message: "messages.published",
				run: setPublished(true),
			},
			{
				label: "actions.unpublish", icon: themes.IconUnpublish, style: "warning",
				audit: logger.AuditActionUnpublish, message: "messages.unpublished",
				run: setPublished(false),
			},
			{
				label: "actions.view_questions", icon: themes.IconOpen,
				open: viewQuestions,
			},
			{
				label: "actions.delete", icon: themes.IconDelete, style: "danger",
				audit: logger.AuditActionDelete, message: "messages.deleted", confirm: true,
				run: func(ctx context.Context, store storage.Store, e *domain.Exam) error {
					return store.Exams().Delete(ctx, e.ID)
				},
			},
		})
	return p
}

func examName(e *domain.Exam) string { return e.Title }

func setPublished(published bool) func(context.Context, storage.Store, *domain.Exam) error {
	return func(ctx context.Context, store storage.Store, e *domain.Exam) error {
		return store.Exams().SetPublished(ctx, e.ID, published)
	}
}

// viewQuestions filters the questions page to e and switches to it.
func viewQuestions(e *domain.Exam) tea.Cmd {
	filter := ExamFilterMsg{ExamID: e.ID, Title: e.Title}
	return tea.Sequence(
		func() tea.Msg { return filter },
		app.Navigate(PageQuestions),
	)
}

// Update implements tea.Model.
func (p *ExamsPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return p, p.handle(msg)
}

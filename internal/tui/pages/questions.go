package pages

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"lmsadmin/internal/domain"
	"lmsadmin/internal/logger"
	"lmsadmin/internal/storage"
	"lmsadmin/internal/tables"
	"lmsadmin/internal/tui/app"
	"lmsadmin/internal/tui/component"
	"lmsadmin/internal/tui/themes"
)

// ExamFilterMsg restricts the questions page to one exam. An empty
// ExamID shows the questions of every exam.
type ExamFilterMsg struct {
	ExamID domain.ExamID
	Title  string
}

// Target implements app.Targeted.
func (ExamFilterMsg) Target() string { return PageQuestions }

// QuestionsPage lists exam questions.
type QuestionsPage struct {
	*TablePage[*domain.Question]

	provider *storage.Provider[*domain.Question]
	exam     ExamFilterMsg
}

// NewQuestionsPage creates the questions page.
func NewQuestionsPage(application *app.App) *QuestionsPage {
	tr := application.I18n()
	provider := storage.NewProvider[*domain.Question](application.Store().Questions())

	p := &QuestionsPage{provider: provider}
	p.TablePage = newTablePage(PageQuestions, tables.Questions, application,
		tables.QuestionTable(tr), provider, questionName,
		[]rowAction[*domain.Question]{
			{
				label: "actions.delete", icon: themes.IconDelete, style: "danger",
				audit: logger.AuditActionDelete, message: "messages.deleted", confirm: true,
				run: func(ctx context.Context, store storage.Store, q *domain.Question) error {
					return store.Questions().Delete(ctx, q.ID)
				},
			},
		})
	p.describe = func(q *domain.Question) string {
		return q.Text
	}
	p.info = p.filterInfo
	p.extraHelp = []app.KeyBinding{{Key: "f", Help: tr.T("help.filter")}}
	return p
}

func questionName(q *domain.Question) string {
	return component.Truncate(q.Text, 30)
}

// Exam returns the exam the page is filtered to.
func (p *QuestionsPage) Exam() ExamFilterMsg {
	return p.exam
}

func (p *QuestionsPage) setExam(exam ExamFilterMsg) tea.Cmd {
	p.exam = exam

	f := p.provider.Filter()
	f.ParentID = exam.ExamID.String()
	p.provider.SetFilter(f)

	p.table.ClearSelection()
	p.table.SetCurrentPage(1)
	p.log.Debug("exam filter changed", "exam", f.ParentID)
	return p.refresh()
}

func (p *QuestionsPage) filterInfo() string {
	if p.exam.ExamID == "" {
		return ""
	}
	return p.App().I18n().T("messages.exam_filter", "title", p.exam.Title)
}

// Update implements tea.Model.
func (p *QuestionsPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ExamFilterMsg:
		return p, p.setExam(msg)
	case tea.KeyMsg:
		if !p.CapturingInput() && msg.String() == "f" && p.exam.ExamID != "" {
			return p, p.setExam(ExamFilterMsg{})
		}
	}
	return p, p.handle(msg)
}

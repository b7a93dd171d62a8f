package pages

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lmsadmin/internal/domain"
	"lmsadmin/internal/tui/app"
	"lmsadmin/internal/tui/component"
)

// DashboardPage shows record counts.
type DashboardPage struct {
	*BasePage
}

// NewDashboardPage creates a new dashboard page.
func NewDashboardPage(application *app.App) *DashboardPage {
	return &DashboardPage{
		BasePage: NewBasePage(PageDashboard, application.I18n().T("tabs.dashboard"), application),
	}
}

// Init reloads the counts each time the page is shown.
func (p *DashboardPage) Init() tea.Cmd {
	return p.refresh()
}

// Update implements tea.Model.
func (p *DashboardPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "r" {
		return p, p.refresh()
	}
	return p, nil
}

func (p *DashboardPage) refresh() tea.Cmd {
	return p.App().State().LoadStats(p.App().Store())
}

// View implements tea.Model.
func (p *DashboardPage) View() string {
	theme := p.Theme()
	tr := p.App().I18n()
	state := p.App().State()

	var b strings.Builder
	b.WriteString(theme.Title.Render(tr.T("dashboard.title")))
	b.WriteString("\n\n")

	if !state.StatsLoaded {
		b.WriteString(theme.Muted.Render(tr.T("common.loading")))
		return b.String()
	}

	s := state.Stats
	card := func(title string, value int, footer string) string {
		c := component.NewStatCard(title, strconv.Itoa(value)).WithTheme(theme)
		if footer != "" {
			c.WithFooter(footer)
		}
		return c.ViewWidth(0)
	}
	pair := func(key string, n int) string {
		return tr.T(key) + ": " + strconv.Itoa(n)
	}

	pending := s.StudentsByState[domain.RequestStatusPending]
	students := component.NewStatCard(tr.T("dashboard.students"), strconv.Itoa(s.Students)).
		WithTheme(theme).
		WithFooter(strings.Join([]string{
			pair("dashboard.pending", pending),
			pair("dashboard.accepted", s.StudentsByState[domain.RequestStatusAccepted]),
			pair("dashboard.rejected", s.StudentsByState[domain.RequestStatusRejected]),
		}, "\n"))
	if pending > 0 {
		students.WithAccent(theme.Warning.Bold(true))
	}

	b.WriteString(component.CardGrid(p.ContentWidth(),
		students.ViewWidth(0),
		card(tr.T("dashboard.instructors"), s.Instructors, pair("dashboard.male_instructors", s.MaleInstructors)),
		card(tr.T("dashboard.courses"), s.Courses, pair("dashboard.active_courses", s.ActiveCourses)),
		card(tr.T("dashboard.exams"), s.Exams, pair("dashboard.published_exams", s.PublishedExams)),
		card(tr.T("dashboard.questions"), s.Questions, ""),
	))
	return b.String()
}

// ShortHelp implements app.Page.
func (p *DashboardPage) ShortHelp() []app.KeyBinding {
	return []app.KeyBinding{{Key: "r", Help: p.App().I18n().T("help.refresh")}}
}

// FullHelp implements app.Page.
func (p *DashboardPage) FullHelp() [][]app.KeyBinding {
	return [][]app.KeyBinding{p.ShortHelp()}
}

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

// CoursesPage lists courses.
type CoursesPage struct {
	*TablePage[*domain.Course]
}

// NewCoursesPage creates the courses page.
func NewCoursesPage(application *app.App) *CoursesPage {
	tr := application.I18n()
	provider := storage.NewProvider[*domain.Course](application.Store().Courses())

	p := &CoursesPage{}
	p.TablePage = newTablePage(PageCourses, tables.Courses, application,
		tables.CourseTable(tr), provider, courseName,
		[]rowAction[*domain.Course]{
			{
				label: "actions.delete", icon: themes.IconDelete, style: "danger",
				audit: logger.AuditActionDelete, message: "messages.deleted", confirm: true,
				run: func(ctx context.Context, store storage.Store, c *domain.Course) error {
					return store.Courses().Delete(ctx, c.ID)
				},
			},
		})
	p.describe = func(c *domain.Course) string {
		if c.Description == "" {
			return c.Title
		}
		return c.Title + " · " + c.Description
	}
	return p
}

func courseName(c *domain.Course) string { return c.Title }

// Update implements tea.Model.
func (p *CoursesPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return p, p.handle(msg)
}

package pages

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lmsadmin/internal/domain"
	"lmsadmin/internal/logger"
	"lmsadmin/internal/storage"
	"lmsadmin/internal/tables"
	"lmsadmin/internal/tui/app"
	"lmsadmin/internal/tui/themes"
)

// InstructorsPage lists instructors.
type InstructorsPage struct {
	*TablePage[*domain.Instructor]
}

// NewInstructorsPage creates the instructors page.
func NewInstructorsPage(application *app.App) *InstructorsPage {
	tr := application.I18n()
	provider := storage.NewProvider[*domain.Instructor](application.Store().Instructors())

	p := &InstructorsPage{}
	p.TablePage = newTablePage(PageInstructors, tables.Instructors, application,
		tables.InstructorTable(tr), provider, instructorName,
		[]rowAction[*domain.Instructor]{
			{
				label: "actions.delete", icon: themes.IconDelete, style: "danger",
				audit: logger.AuditActionDelete, message: "messages.deleted", confirm: true,
				run: func(ctx context.Context, store storage.Store, i *domain.Instructor) error {
					return store.Instructors().Delete(ctx, i.ID)
				},
			},
		})
	p.describe = func(i *domain.Instructor) string {
		parts := []string{i.Name.Full()}
		if i.Title != "" {
			parts = append(parts, i.Title)
		}
		if i.Description != "" {
			parts = append(parts, i.Description)
		}
		return strings.Join(parts, " · ")
	}
	return p
}

func instructorName(i *domain.Instructor) string { return i.Name.Full() }

// Update implements tea.Model.
func (p *InstructorsPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return p, p.handle(msg)
}

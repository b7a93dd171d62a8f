// Package pages provides the tabs of the lmsadmin console: the dashboard
// and one table page per record type.
package pages

import (
	tea "github.com/charmbracelet/bubbletea"

	"lmsadmin/internal/config"
	"lmsadmin/internal/tui/app"
	"lmsadmin/internal/tui/themes"
)

// BasePage holds the identity, theme and size shared by every page.
// Pages embed it and supply their own tea.Model and help methods.
type BasePage struct {
	app    *app.App
	id     string
	title  string
	theme  *themes.Theme
	width  int
	height int
}

// NewBasePage creates a page titled title, starting on the app's theme.
func NewBasePage(id, title string, application *app.App) *BasePage {
	return &BasePage{app: application, id: id, title: title, theme: application.Theme()}
}

func (p *BasePage) ID() string { return p.id }
func (p *BasePage) Title() string { return p.title }
func (p *BasePage) App() *app.App { return p.app }
func (p *BasePage) Theme() *themes.Theme { return p.theme }

// SetSize records the content area the router gives the page.
func (p *BasePage) SetSize(width, height int) {
	p.width, p.height = max(0, width), max(0, height)
}

// ContentWidth is the width of the content area, zero before the first
// window size.
func (p *BasePage) ContentWidth() int { return p.width }

// Reconfigure switches the page to theme.
func (p *BasePage) Reconfigure(_ *config.Config, theme *themes.Theme) tea.Cmd {
	p.theme = theme
	return nil
}

// Package component provides the reusable widgets of the admin console.
package component

import (
	tea "github.com/charmbracelet/bubbletea"

	"lmsadmin/internal/tui/i18n"
	"lmsadmin/internal/tui/themes"
)

// Widget is a focusable model that renders at a width chosen by its parent.
type Widget interface {
	tea.Model
	ViewWidth(width int) string
	Focus() tea.Cmd
	Blur()
	Focused() bool
}

var _ Widget = (*DataTable[struct{}])(nil)

// Base carries the theme, translations, size and focus of a widget. The
// zero value falls back to the global theme and translations.
type Base struct {
	theme   *themes.Theme
	tr      *i18n.I18n
	width   int
	height  int
	focused bool
}

func (b *Base) Theme() *themes.Theme {
	if b.theme == nil {
		b.theme = themes.Global().Active()
	}
	return b.theme
}

func (b *Base) SetTheme(theme *themes.Theme) { b.theme = theme }

func (b *Base) I18n() *i18n.I18n {
	if b.tr == nil {
		b.tr = i18n.Global()
	}
	return b.tr
}

func (b *Base) SetI18n(tr *i18n.I18n) { b.tr = tr }

// SetSize sets the size the widget renders at; a zero width means the
// parent picks one per call.
func (b *Base) SetSize(width, height int) {
	b.width, b.height = width, height
}

// Size returns the size set by SetSize.
func (b *Base) Size() (width, height int) { return b.width, b.height }

// Focused reports whether the widget receives keys.
func (b *Base) Focused() bool { return b.focused }

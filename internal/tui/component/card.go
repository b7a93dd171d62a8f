package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lmsadmin/internal/tui/themes"
)

// StatCard is a bordered box holding a title, a figure and an optional
// footer line
type StatCard struct {
	Base

	title  string
	value  string
	footer string
	accent *lipgloss.Style
}

// NewStatCard creates a card
func NewStatCard(title, value string) *StatCard {
	return &StatCard{title: title, value: value}
}

// WithFooter sets the line under the value
func (c *StatCard) WithFooter(footer string) *StatCard {
	c.footer = footer
	return c
}

// WithAccent renders the value with style instead of the theme's
func (c *StatCard) WithAccent(style lipgloss.Style) *StatCard {
	c.accent = &style
	return c
}

// WithTheme sets the theme
func (c *StatCard) WithTheme(theme *themes.Theme) *StatCard {
	c.SetTheme(theme)
	return c
}

// ViewWidth renders the card; zero keeps the theme's card width
func (c *StatCard) ViewWidth(width int) string {
	theme := c.Theme()

	value := theme.CardValue
	if c.accent != nil {
		value = *c.accent
	}

	var content strings.Builder
	content.WriteString(theme.CardTitle.Render(c.title))
	content.WriteString("\n")
	content.WriteString(value.Render(c.value))
	if c.footer != "" {
		content.WriteString("\n")
		content.WriteString(theme.Muted.Render(c.footer))
	}

	style := theme.Card
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(content.String())
}

// CardGrid lays cards out in rows that fit width
func CardGrid(width int, cards ...string) string {
	if len(cards) == 0 {
		return ""
	}

	var rows []string
	var row []string
	used := 0
	for _, card := range cards {
		w := lipgloss.Width(card)
		if len(row) > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, card)
		used += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

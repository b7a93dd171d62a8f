package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lmsadmin/internal/tui/themes"
)

// ContentTop is the first screen line below the tab bar.
const ContentTop = 2

// chromeLines is the height of the status line and the help bar.
const chromeLines = 2

func contentHeight(screen int) int {
	return max(0, screen-ContentTop-chromeLines)
}

func tabStyle(theme *themes.Theme, active bool) lipgloss.Style {
	if active {
		return theme.TabActive
	}
	return theme.TabInactive
}

// tabAt returns the index of the tab drawn at column x, or -1.
func (a *App) tabAt(x int) int {
	start := 0
	for i, page := range a.router.Pages() {
		w := lipgloss.Width(tabStyle(a.theme, i == a.router.CurrentIndex()).Render(page.Title()))
		if x >= start && x < start+w {
			return i
		}
		start += w + 1
	}
	return -1
}

// frame draws page between the tab bar and the status and help lines.
func (a *App) frame(page Page) string {
	content := page.View()
	if h := contentHeight(a.height); h > 0 {
		content = lipgloss.NewStyle().Height(h).MaxHeight(h).Render(content)
	}
	return strings.Join([]string{a.tabBar(), content, a.statusLine(), a.helpBar(page)}, "\n")
}

func (a *App) tabBar() string {
	pages := a.router.Pages()
	tabs := make([]string, len(pages))
	for i, page := range pages {
		tabs[i] = tabStyle(a.theme, i == a.router.CurrentIndex()).Render(page.Title())
	}
	return a.theme.TabBar.Width(a.width).Render(strings.Join(tabs, " "))
}

// statusLine shows the loading text while loading, else the last status.
func (a *App) statusLine() string {
	style := a.theme.StatusLine
	text := a.state.Status
	if a.state.Loading {
		text = a.state.LoadingMsg
	} else if a.state.StatusErr {
		style = style.Foreground(a.theme.Palette.Error)
	}
	return style.Width(a.width).MaxHeight(1).Render(text)
}

func (a *App) binding(b KeyBinding) string {
	return a.theme.HelpKey.Render(b.Key) + " " + a.theme.HelpDesc.Render(b.Help)
}

func (a *App) helpBar(page Page) string {
	bindings := append(page.ShortHelp(),
		KeyBinding{Key: "tab", Help: a.i18n.T("help.tabs")},
		KeyBinding{Key: "?", Help: a.i18n.T("help.help")},
		KeyBinding{Key: "q", Help: a.i18n.T("help.quit")},
	)
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = a.binding(b)
	}
	return a.theme.Help.Width(a.width).MaxHeight(1).Render(strings.Join(parts, "  "))
}

// fullHelpView lays out every binding group of page as a column.
func (a *App) fullHelpView(page Page) string {
	var columns []string
	for _, group := range page.FullHelp() {
		lines := make([]string, len(group))
		for i, b := range group {
			lines[i] = a.binding(b)
		}
		columns = append(columns, lipgloss.NewStyle().PaddingRight(4).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

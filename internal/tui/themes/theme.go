package themes

import (
	"maps"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"lmsadmin/internal/datatable"
)

// Theme is the set of styles the console draws with, derived from one
// palette.
type Theme struct {
	Name    string
	Palette ColorPalette

	Base, Title, Subtitle, Muted  lipgloss.Style
	Success, Error, Warning, Info lipgloss.Style

	Help, HelpKey, HelpDesc            lipgloss.Style
	TabActive, TabInactive, TabBar     lipgloss.Style
	StatusLine, SearchLabel            lipgloss.Style
	Card, CardTitle, CardValue         lipgloss.Style
	PageLink, PageCurrent, PageSummary lipgloss.Style

	TableHeader, TableHeaderSorted lipgloss.Style
	TableRow, TableRowAlt          lipgloss.Style
	TableRowCursor                 lipgloss.Style
	TableRowSelected               lipgloss.Style
	TableBorder, TableEmpty        lipgloss.Style

	// Action is the plain row action; the others match action styles.
	Action, ActionSuccess, ActionDanger, ActionWarning lipgloss.Style

	badges map[datatable.BadgeClass]lipgloss.Style
}

// Clone returns a copy of t that can be changed independently.
func (t *Theme) Clone() *Theme {
	clone := *t
	clone.badges = maps.Clone(t.badges)
	return &clone
}

// WithPalette returns a copy of t restyled from p.
func (t *Theme) WithPalette(p ColorPalette) *Theme {
	clone := t.Clone()
	clone.Palette = p
	clone.rebuildStyles()
	return clone
}

// Badge returns the style of a status badge class. Unknown classes get
// the secondary badge.
func (t *Theme) Badge(class datatable.BadgeClass) lipgloss.Style {
	if s, ok := t.badges[class]; ok {
		return s
	}
	return t.badges[datatable.BadgeSecondary]
}

// ActionStyle returns the style of a row action class: "success",
// "danger", "warning", or anything else for the plain style.
func (t *Theme) ActionStyle(class string) lipgloss.Style {
	if s, ok := map[string]lipgloss.Style{
		"success": t.ActionSuccess,
		"danger":  t.ActionDanger,
		"warning": t.ActionWarning,
	}[class]; ok {
		return s
	}
	return t.Action
}

// rebuildStyles derives every style from t.Palette.
func (t *Theme) rebuildStyles() {
	p := t.Palette
	fg := func(c lipgloss.AdaptiveColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	pill := func(text, fill lipgloss.AdaptiveColor) lipgloss.Style {
		return fg(text).Background(fill).Padding(0, 1)
	}

	t.Base, t.Muted = fg(p.Text), fg(p.TextMuted)
	t.Title, t.Subtitle = fg(p.Primary).Bold(true), fg(p.Secondary).Bold(true)
	t.Success = fg(p.Success).Bold(true)
	t.Error = fg(p.Error).Bold(true)
	t.Warning = fg(p.Warning).Bold(true)
	t.Info = fg(p.Info)

	t.Help, t.HelpKey, t.HelpDesc = fg(p.TextSubtle), fg(p.Primary).Bold(true), fg(p.TextMuted)

	t.TabActive = fg(p.Primary).Background(p.BackgroundAlt).Bold(true).Padding(0, 2)
	t.TabInactive = fg(p.TextMuted).Padding(0, 2)
	t.TabBar = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(p.Border)

	t.TableHeader = fg(p.Secondary).Bold(true)
	t.TableHeaderSorted = fg(p.Primary).Bold(true).Underline(true)
	t.TableRow = fg(p.Text)
	t.TableRowAlt = t.TableRow.Background(p.BackgroundAlt)
	t.TableRowCursor = t.TableRow.Background(p.Cursor).Bold(true)
	t.TableRowSelected = fg(p.Primary).Background(p.Selection)
	t.TableBorder = fg(p.Border)
	t.TableEmpty = fg(p.TextMuted).Italic(true)

	t.PageLink = fg(p.TextMuted).Padding(0, 1)
	t.PageCurrent = pill(p.TextOnFill, p.Primary).Bold(true)
	t.PageSummary = fg(p.TextMuted)

	t.Action = fg(p.Secondary)
	t.ActionSuccess, t.ActionDanger, t.ActionWarning = fg(p.Success), fg(p.Error), fg(p.Warning)
	t.SearchLabel = fg(p.TextMuted)

	t.Card = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 2).Width(24)
	t.CardTitle, t.CardValue = fg(p.TextMuted), fg(p.Primary).Bold(true)
	t.StatusLine = fg(p.TextMuted).Padding(0, 1)

	t.badges = map[datatable.BadgeClass]lipgloss.Style{
		datatable.BadgeWarning:   pill(p.TextOnFill, p.Warning),
		datatable.BadgeSuccess:   pill(p.TextOnFill, p.Success),
		datatable.BadgeDanger:    pill(p.TextOnFill, p.Error),
		datatable.BadgeSecondary: pill(p.Text, p.Neutral),
		datatable.BadgeInfo:      pill(p.TextOnFill, p.Info),
	}
}

// HuhTheme returns the huh form theme matching t.
func (t *Theme) HuhTheme() *huh.Theme {
	ht := huh.ThemeBase()
	p := t.Palette

	ht.Focused.Title = ht.Focused.Title.Foreground(p.Primary).Bold(true)
	ht.Focused.Description = ht.Focused.Description.Foreground(p.TextMuted)
	ht.Focused.Base = ht.Focused.Base.BorderForeground(p.Primary)
	ht.Focused.FocusedButton = ht.Focused.FocusedButton.Foreground(p.TextOnFill).Background(p.Primary)
	ht.Focused.BlurredButton = ht.Focused.BlurredButton.Foreground(p.Text).Background(p.BackgroundAlt)

	ht.Blurred.Title = ht.Blurred.Title.Foreground(p.TextMuted)
	ht.Blurred.Description = ht.Blurred.Description.Foreground(p.TextSubtle)

	return ht
}

func buildTheme(name PresetName, palette ColorPalette) *Theme {
	t := &Theme{Name: string(name), Palette: palette}
	t.rebuildStyles()
	return t
}

// DarkTheme is the default theme.
func DarkTheme() *Theme { return buildTheme(PresetDark, DarkPalette()) }

func LightTheme() *Theme { return buildTheme(PresetLight, LightPalette()) }

func NordTheme() *Theme { return buildTheme(PresetNord, NordPalette()) }

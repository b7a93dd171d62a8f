package themes

import "github.com/charmbracelet/lipgloss"

// ColorPalette is the colors a Theme is built from. Success, Warning,
// Error, Info and Neutral fill the status badges; TextOnFill is drawn
// on them.
type ColorPalette struct {
	Primary, Secondary                      lipgloss.AdaptiveColor
	Success, Warning, Error, Info, Neutral  lipgloss.AdaptiveColor
	Text, TextMuted, TextSubtle, TextOnFill lipgloss.AdaptiveColor
	Background, BackgroundAlt, Surface      lipgloss.AdaptiveColor
	Border, BorderFocus                     lipgloss.AdaptiveColor
	Selection, Cursor                       lipgloss.AdaptiveColor
}

// solid is a color that does not adapt to the terminal background.
func solid(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
}

// DarkPalette is the default palette. It adapts to light terminals.
func DarkPalette() ColorPalette {
	return ColorPalette{
		Primary:       lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"},
		Secondary:     lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#93C5FD"},
		Success:       lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"},
		Warning:       lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FACC15"},
		Error:         lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"},
		Info:          lipgloss.AdaptiveColor{Light: "#0369A1", Dark: "#38BDF8"},
		Neutral:       lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#64748B"},
		Text:          lipgloss.AdaptiveColor{Light: "#0F172A", Dark: "#F1F5F9"},
		TextMuted:     lipgloss.AdaptiveColor{Light: "#475569", Dark: "#94A3B8"},
		TextSubtle:    lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#475569"},
		TextOnFill:    lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0F172A"},
		Background:    lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0F172A"},
		BackgroundAlt: lipgloss.AdaptiveColor{Light: "#F1F5F9", Dark: "#1E293B"},
		Surface:       lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E293B"},
		Border:        lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#334155"},
		BorderFocus:   lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"},
		Selection:     lipgloss.AdaptiveColor{Light: "#CCFBF1", Dark: "#134E4A"},
		Cursor:        lipgloss.AdaptiveColor{Light: "#E2E8F0", Dark: "#334155"},
	}
}

// LightPalette is for light terminals.
func LightPalette() ColorPalette {
	return ColorPalette{
		Primary:       solid("#0F766E"),
		Secondary:     solid("#1D4ED8"),
		Success:       solid("#15803D"),
		Warning:       solid("#B45309"),
		Error:         solid("#B91C1C"),
		Info:          solid("#0369A1"),
		Neutral:       solid("#64748B"),
		Text:          solid("#0F172A"),
		TextMuted:     solid("#475569"),
		TextSubtle:    solid("#94A3B8"),
		TextOnFill:    solid("#FFFFFF"),
		Background:    solid("#FFFFFF"),
		BackgroundAlt: solid("#F1F5F9"),
		Surface:       solid("#FFFFFF"),
		Border:        solid("#CBD5E1"),
		BorderFocus:   solid("#0F766E"),
		Selection:     solid("#CCFBF1"),
		Cursor:        solid("#E2E8F0"),
	}
}

// NordPalette follows the Nord color scheme.
func NordPalette() ColorPalette {
	return ColorPalette{
		Primary:       solid("#88C0D0"),
		Secondary:     solid("#81A1C1"),
		Success:       solid("#A3BE8C"),
		Warning:       solid("#EBCB8B"),
		Error:         solid("#BF616A"),
		Info:          solid("#5E81AC"),
		Neutral:       solid("#4C566A"),
		Text:          solid("#ECEFF4"),
		TextMuted:     solid("#D8DEE9"),
		TextSubtle:    solid("#4C566A"),
		TextOnFill:    solid("#2E3440"),
		Background:    solid("#2E3440"),
		BackgroundAlt: solid("#3B4252"),
		Surface:       solid("#434C5E"),
		Border:        solid("#4C566A"),
		BorderFocus:   solid("#88C0D0"),
		Selection:     solid("#434C5E"),
		Cursor:        solid("#3B4252"),
	}
}

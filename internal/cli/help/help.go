// Package help renders command help for the lmsadmin CLI. Besides what
// cobra knows, a command can carry described examples, notes, related
// commands and keyboard shortcuts. Headings follow the active locale.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"lmsadmin/internal/tui/i18n"
	"lmsadmin/internal/tui/themes"
)

// Example is a described command line shown under Examples.
type Example struct {
	Description string
	Command     string
	Output      string
}

// KeyBinding is a key of an interactive command.
type KeyBinding struct {
	Key         string
	Description string
}

// CommandHelp is the help a command shows beyond what cobra knows.
type CommandHelp struct {
	Examples  []Example
	Notes     []string
	SeeAlso   []string
	Shortcuts []KeyBinding
}

// Registry maps command paths such as "lmsadmin db migrate" to their
// extra help.
type Registry struct {
	commands map[string]*CommandHelp
	theme    *themes.Theme
	tr       *i18n.I18n
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*CommandHelp)}
}

// Register replaces the help of path.
func (r *Registry) Register(path string, help *CommandHelp) { r.commands[path] = help }

// Get returns the help of path, or nil.
func (r *Registry) Get(path string) *CommandHelp { return r.commands[path] }

func (r *Registry) entry(path string) *CommandHelp {
	if r.commands[path] == nil {
		r.commands[path] = &CommandHelp{}
	}
	return r.commands[path]
}

// SetTheme sets the theme; the active global theme is used otherwise.
func (r *Registry) SetTheme(theme *themes.Theme) { r.theme = theme }

// SetI18n sets the translations of the headings.
func (r *Registry) SetI18n(tr *i18n.I18n) { r.tr = tr }

// page accumulates the rendered help of one command.
type page struct {
	strings.Builder
	tr      *i18n.I18n
	heading lipgloss.Style
}

func (p *page) section(key string, body func()) {
	p.WriteString(p.heading.Render(p.tr.T(key)))
	p.WriteByte('\n')
	body()
	p.WriteByte('\n')
}

func (p *page) line(s string) {
	p.WriteString(s)
	p.WriteByte('\n')
}

// columns writes pairs with the second column aligned by display width.
func (p *page) columns(left, right []string) {
	width := 0
	for _, l := range left {
		width = max(width, runewidth.StringWidth(l))
	}
	for i, l := range left {
		fmt.Fprintf(p, "  %s  %s\n", runewidth.FillRight(l, width), right[i])
	}
}

func (p *page) bullets(items []string) {
	for _, item := range items {
		p.line("  • " + item)
	}
}

// RenderHelp renders the help of cmd.
func (r *Registry) RenderHelp(cmd *cobra.Command) string {
	theme := r.theme
	if theme == nil {
		theme = themes.Global().Active()
	}
	tr := r.tr
	if tr == nil {
		tr = i18n.Global()
	}
	pal := theme.Palette
	p := &page{tr: tr, heading: lipgloss.NewStyle().Bold(true).Foreground(pal.Secondary)}

	p.line(lipgloss.NewStyle().Bold(true).Foreground(pal.Primary).Render(cmd.CommandPath()))
	if cmd.Short != "" {
		p.line(lipgloss.NewStyle().Foreground(pal.Text).Render(cmd.Short))
	}
	p.WriteByte('\n')
	if cmd.Long != "" {
		p.line(cmd.Long)
		p.WriteByte('\n')
	}

	p.section("cli.help.usage", func() { p.line("  " + cmd.UseLine()) })

	if cmd.HasAvailableSubCommands() {
		p.section("cli.help.commands", func() {
			var names, shorts []string
			for _, c := range cmd.Commands() {
				if c.IsAvailableCommand() {
					names = append(names, c.Name())
					shorts = append(shorts, c.Short)
				}
			}
			p.columns(names, shorts)
		})
	}
	if cmd.HasAvailableLocalFlags() {
		p.section("cli.help.flags", func() { p.WriteString(cmd.LocalFlags().FlagUsages()) })
	}
	if cmd.HasAvailableInheritedFlags() {
		p.section("cli.help.global_flags", func() { p.WriteString(cmd.InheritedFlags().FlagUsages()) })
	}

	if extra := r.commands[cmd.CommandPath()]; extra != nil {
		r.renderExtra(p, extra, pal)
	}

	if cmd.Example != "" {
		p.section("cli.help.examples", func() { p.line(cmd.Example) })
	}
	return p.String()
}

func (r *Registry) renderExtra(p *page, extra *CommandHelp, pal themes.ColorPalette) {
	if len(extra.Examples) > 0 {
		desc := lipgloss.NewStyle().Foreground(pal.TextMuted).Italic(true)
		line := lipgloss.NewStyle().Foreground(pal.Info)
		p.section("cli.help.examples", func() {
			for i, ex := range extra.Examples {
				if i > 0 {
					p.WriteByte('\n')
				}
				p.line("  " + desc.Render("# "+ex.Description))
				p.line("  " + line.Render("$ "+ex.Command))
				if ex.Output != "" {
					p.line("  " + ex.Output)
				}
			}
		})
	}
	if len(extra.Shortcuts) > 0 {
		p.section("cli.help.shortcuts", func() {
			keys := make([]string, len(extra.Shortcuts))
			descs := make([]string, len(extra.Shortcuts))
			for i, s := range extra.Shortcuts {
				keys[i], descs[i] = s.Key, s.Description
			}
			p.columns(keys, descs)
		})
	}
	if len(extra.Notes) > 0 {
		p.section("cli.help.notes", func() { p.bullets(extra.Notes) })
	}
	if len(extra.SeeAlso) > 0 {
		p.section("cli.help.see_also", func() { p.bullets(extra.SeeAlso) })
	}
}

// ApplyToCommand installs RenderHelp as the help of cmd and all its
// subcommands.
func (r *Registry) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		fmt.Fprintln(c.OutOrStdout(), r.RenderHelp(c))
	})
	for _, sub := range cmd.Commands() {
		r.ApplyToCommand(sub)
	}
}

var globalRegistry *Registry

// Global returns the registry the commands of lmsadmin register into.
func Global() *Registry {
	if globalRegistry == nil {
		globalRegistry = NewRegistry()
	}
	return globalRegistry
}

// RegisterExamples adds examples to the help of cmdPath.
func RegisterExamples(cmdPath string, examples ...Example) {
	h := Global().entry(cmdPath)
	h.Examples = append(h.Examples, examples...)
}

// RegisterShortcuts adds the keys of an interactive command.
func RegisterShortcuts(cmdPath string, shortcuts ...KeyBinding) {
	h := Global().entry(cmdPath)
	h.Shortcuts = append(h.Shortcuts, shortcuts...)
}

// RegisterNotes adds notes to the help of cmdPath.
func RegisterNotes(cmdPath string, notes ...string) {
	h := Global().entry(cmdPath)
	h.Notes = append(h.Notes, notes...)
}

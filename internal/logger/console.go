package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
	"golang.org/x/term"
)

// ConsoleHandlerOptions configures the console handler.
type ConsoleHandlerOptions struct {
	Level      slog.Leveler
	NoColor    bool
	TimeFormat string // defaults to 15:04:05
	ShowCaller bool
	Prefix     string
}

// ConsoleHandler is a slog.Handler that prints through charmbracelet/log
// for people reading a terminal. Groups are flattened into dotted keys.
type ConsoleHandler struct {
	out    *charmlog.Logger
	level  slog.Leveler
	prefix string // dotted group path, ending in "."
}

// NewConsoleHandler creates a console handler writing to w.
func NewConsoleHandler(w io.Writer, opts *ConsoleHandlerOptions) *ConsoleHandler {
	var o ConsoleHandlerOptions
	if opts != nil {
		o = *opts
	}
	if o.Level == nil {
		o.Level = slog.LevelInfo
	}
	if o.TimeFormat == "" {
		o.TimeFormat = "15:04:05"
	}

	out := charmlog.NewWithOptions(w, charmlog.Options{
		ReportCaller:    o.ShowCaller,
		ReportTimestamp: true,
		TimeFormat:      o.TimeFormat,
		Prefix:          o.Prefix,
		Level:           toCharmLevel(o.Level.Level()),
	})
	out.SetStyles(consoleStyles(!o.NoColor))

	return &ConsoleHandler{out: out, level: o.Level}
}

// Enabled implements slog.Handler.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	kv := make([]any, 0, r.NumAttrs()*2)
	r.Attrs(func(a slog.Attr) bool {
		kv = h.appendAttr(kv, h.prefix, a)
		return true
	})
	h.out.Log(toCharmLevel(r.Level), r.Message, kv...)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var kv []any
	for _, a := range attrs {
		kv = h.appendAttr(kv, h.prefix, a)
	}
	return &ConsoleHandler{out: h.out.With(kv...), level: h.level, prefix: h.prefix}
}

// WithGroup implements slog.Handler.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ConsoleHandler{out: h.out, level: h.level, prefix: h.prefix + name + "."}
}

func (h *ConsoleHandler) appendAttr(kv []any, prefix string, a slog.Attr) []any {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return kv
	}
	if a.Value.Kind() != slog.KindGroup {
		return append(kv, prefix+a.Key, displayValue(a.Value))
	}

	// An inline group (empty key) keeps the current prefix.
	if a.Key != "" {
		prefix += a.Key + "."
	}
	for _, ga := range a.Value.Group() {
		kv = h.appendAttr(kv, prefix, ga)
	}
	return kv
}

func displayValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		if s, ok := v.Any().(fmt.Stringer); ok {
			return s.String()
		}
	}
	return v.Any()
}

func toCharmLevel(level slog.Level) charmlog.Level {
	switch {
	case level >= slog.LevelError:
		return charmlog.ErrorLevel
	case level >= slog.LevelWarn:
		return charmlog.WarnLevel
	case level >= slog.LevelInfo:
		return charmlog.InfoLevel
	}
	return charmlog.DebugLevel
}

// levelColors holds the ANSI 256 color of each level label.
var levelColors = map[charmlog.Level]string{
	charmlog.DebugLevel: "63",
	charmlog.InfoLevel:  "42",
	charmlog.WarnLevel:  "214",
	charmlog.ErrorLevel: "196",
	charmlog.FatalLevel: "196",
}

func consoleStyles(color bool) *charmlog.Styles {
	styles := charmlog.DefaultStyles()
	fg := func(c string) lipgloss.Style {
		if !color {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	for level, c := range levelColors {
		label := strings.ToUpper(level.String())
		styles.Levels[level] = fg(c).Bold(true).SetString(fmt.Sprintf("%-5s", label))
	}
	styles.Key = fg("39").Bold(color)
	styles.Value = fg("252")
	styles.Separator = fg("240")
	styles.Timestamp = fg("243")
	styles.Caller = fg("139")
	styles.Message = fg("255")
	styles.Prefix = fg("37").Bold(true)
	return styles
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

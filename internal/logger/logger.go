// Package logger provides structured logging for lmsadmin using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lmsadmin/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger and owns the files it writes to.
type Logger struct {
	*slog.Logger
	cfg    config.LogConfig
	closer io.Closer
}

// Rotation defaults for log files.
const (
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

// New creates a Logger writing where cfg says.
func New(cfg config.LogConfig) (*Logger, error) {
	sinks, err := openSinks(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output: %w", err)
	}

	l, err := NewWithWriter(sinks.writer(), cfg)
	if err != nil {
		_ = sinks.Close()
		return nil, err
	}
	if len(sinks.files) > 0 {
		l.closer = sinks
	}
	return l, nil
}

// NewWithWriter creates a Logger that writes to w, ignoring the output
// settings of cfg.
func NewWithWriter(w io.Writer, cfg config.LogConfig) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: cfg.EnableCaller})
	case "pretty":
		h = NewConsoleHandler(w, &ConsoleHandlerOptions{
			Level:      level,
			NoColor:    cfg.NoColor || !isTerminal(w),
			ShowCaller: cfg.EnableCaller,
		})
	default:
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level, AddSource: cfg.EnableCaller})
	}
	if len(cfg.MaskFields) > 0 {
		h = NewMaskingHandler(h, cfg.MaskFields)
	}

	return &Logger{Logger: slog.New(h), cfg: cfg}, nil
}

// ForTUI returns a copy of cfg that writes to a file only, so log lines
// never reach the terminal the UI draws on. The file defaults to
// lmsadmin.log next to the database.
func ForTUI(cfg config.LogConfig, dataDir string) config.LogConfig {
	if cfg.FilePath == "" && !isConsole(cfg.Output) {
		cfg.FilePath = cfg.Output
	}
	if cfg.FilePath == "" {
		cfg.FilePath = filepath.Join(dataDir, "lmsadmin.log")
	}
	cfg.Output = ""
	if cfg.Format == "pretty" {
		cfg.Format = "text"
	}
	return cfg
}

// Close closes the log files owned by l. Derived loggers own nothing.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// With returns a Logger that adds attrs to every record.
func (l *Logger) With(attrs ...any) *Logger {
	return &Logger{Logger: l.Logger.With(attrs...), cfg: l.cfg}
}

// WithGroup returns a Logger that nests attributes under name.
func (l *Logger) WithGroup(name string) *Logger {
	return &Logger{Logger: l.Logger.WithGroup(name), cfg: l.cfg}
}

// ParseLevel converts a level name. The empty name means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
}

// Default returns a logger backed by slog.Default.
func Default() *Logger {
	return &Logger{Logger: slog.Default()}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func isConsole(output string) bool {
	switch strings.ToLower(output) {
	case "", "stdout", "stderr":
		return true
	}
	return false
}

// sinks is the set of destinations a Logger writes to.
type sinks struct {
	console io.Writer
	files   []*lumberjack.Logger
}

// openSinks resolves cfg.Output and cfg.FilePath. Output is stdout,
// stderr, empty for none, or a file path; FilePath adds a second file.
// With nothing configured the logger writes to stderr.
func openSinks(cfg config.LogConfig) (*sinks, error) {
	s := &sinks{}
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		s.console = os.Stdout
	case "stderr":
		s.console = os.Stderr
	case "":
	default:
		if err := s.addFile(cfg.Output, cfg); err != nil {
			return nil, err
		}
	}
	if cfg.FilePath != "" {
		if err := s.addFile(cfg.FilePath, cfg); err != nil {
			return nil, err
		}
	}
	if s.console == nil && len(s.files) == 0 {
		s.console = os.Stderr
	}
	return s, nil
}

func (s *sinks) addFile(path string, cfg config.LogConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	s.files = append(s.files, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    positiveOr(cfg.MaxSizeMB, defaultMaxSizeMB),
		MaxBackups: positiveOr(cfg.MaxBackups, defaultMaxBackups),
		MaxAge:     positiveOr(cfg.MaxAgeDays, defaultMaxAgeDays),
		Compress:   true,
	})
	return nil
}

func (s *sinks) writer() io.Writer {
	ws := make([]io.Writer, 0, len(s.files)+1)
	if s.console != nil {
		ws = append(ws, s.console)
	}
	for _, f := range s.files {
		ws = append(ws, f)
	}
	if len(ws) == 1 {
		return ws[0]
	}
	return io.MultiWriter(ws...)
}

// Close closes every file and reports all failures.
func (s *sinks) Close() error {
	var errs []error
	for _, f := range s.files {
		errs = append(errs, f.Close())
	}
	return errors.Join(errs...)
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

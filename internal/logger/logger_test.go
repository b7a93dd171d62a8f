package logger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lmsadmin/internal/config"

	"github.com/spf13/cobra"
)

// ==================== Logger Tests ====================

func TestNew_Defaults(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "info", Format: "text", Output: "stderr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer logger.Close()
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "verbose", Format: "text", Output: "stderr"})
	if err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewWithWriter(buf, config.LogConfig{Level: "debug", Format: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Debug("page fetched", "page", 2, "rows", 10)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "page fetched" || entry["page"] != float64(2) {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewWithWriter(buf, config.LogConfig{Level: "warn", Format: "text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn line missing")
	}
}

func TestNewWithWriter_Pretty(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewWithWriter(buf, config.LogConfig{Level: "info", Format: "pretty"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.With("component", "storage").Info("storage opened", "path", "/tmp/x.db")

	out := buf.String()
	for _, want := range []string{"INFO", "storage opened", "component", "/tmp/x.db"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output %q missing %q", out, want)
		}
	}
	// A buffer is not a terminal, so no escape codes
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected plain output, got %q", out)
	}
}

func TestConsoleHandler_Groups(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewConsoleHandler(buf, &ConsoleHandlerOptions{NoColor: true})
	log := slog.New(h).With("page", "students").WithGroup("query")

	log.Debug("hidden")
	log.Info("fetch", "page", 2, slog.Group("sort", "column", "name"), "err", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record passed an info handler: %q", out)
	}
	for _, want := range []string{"fetch", "page=students", "query.page=2", "query.sort.column=name", "query.err=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output %q missing %q", out, want)
		}
	}
}

func TestNew_FileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "test.log")

	logger, err := New(config.LogConfig{Level: "info", Format: "text", Output: logPath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("test message")
	logger.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if !strings.Contains(string(data), "test message") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestForTUI(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LogConfig
		wantFile string
	}{
		{"stderr", config.LogConfig{Output: "stderr", Format: "pretty"}, "/data/lmsadmin.log"},
		{"file output kept", config.LogConfig{Output: "/var/log/lms.log"}, "/var/log/lms.log"},
		{"file path kept", config.LogConfig{Output: "stdout", FilePath: "/tmp/a.log"}, "/tmp/a.log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForTUI(tt.cfg, "/data")
			if got.Output != "" {
				t.Errorf("Output = %q, want none", got.Output)
			}
			if got.FilePath != tt.wantFile {
				t.Errorf("FilePath = %q, want %q", got.FilePath, tt.wantFile)
			}
			if got.Format == "pretty" {
				t.Error("pretty format must not be used for the TUI log file")
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, _ := NewWithWriter(buf, config.LogConfig{Format: "text"})

	child := logger.With("component", "table")
	if child.closer != nil {
		t.Error("child logger must not own the closer")
	}
	child.Info("sorted")
	if !strings.Contains(buf.String(), "component=table") {
		t.Errorf("expected attribute in output, got %q", buf.String())
	}
}

func TestLogger_WithGroup(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, _ := NewWithWriter(buf, config.LogConfig{Format: "text"})

	logger.WithGroup("query").Info("fetch", "page", 3)
	if !strings.Contains(buf.String(), "query.page=3") {
		t.Errorf("expected grouped attribute, got %q", buf.String())
	}
}

func TestLogger_CloseNil(t *testing.T) {
	if err := Default().Close(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		hasError bool
	}{
		{"debug", slog.LevelDebug, false},
		{"DEBUG", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false}, // empty defaults to info
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"invalid", slog.LevelInfo, true},
		{"trace", slog.LevelInfo, true}, // not supported
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.hasError && err == nil {
				t.Error("expected error")
			}
			if !tt.hasError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.hasError && level != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, level)
			}
		})
	}
}

// ==================== Mask Tests ====================

func TestMask(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"ahmed@example.com", "a****@example.com"},
		{"a@b.co", "*@b.co"},
		{"أحمد@example.com", "أ***@example.com"},
		{"+966 550 000 001", "*************001"},
		{"12", "**"},
	}
	for _, tt := range tests {
		if got := Mask(tt.in); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskingHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewWithWriter(buf, config.LogConfig{
		Format:     "json",
		MaskFields: []string{"email", "Phone"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.With("email", "maha@example.com").Info("student updated",
		slog.Group("student", slog.String("phone", "+966 550 000 012"), slog.String("name", "مها")))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["email"] != "m***@example.com" {
		t.Errorf("email = %v", entry["email"])
	}
	student := entry["student"].(map[string]any)
	if student["phone"] != "*************012" {
		t.Errorf("phone = %v", student["phone"])
	}
	if student["name"] != "مها" {
		t.Errorf("name should not be masked, got %v", student["name"])
	}
}

// ==================== Context Tests ====================

func TestCommandContext(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	cc := NewCommandContext(cmd, []string{"students"})

	if cc.Command != "list" {
		t.Errorf("Command = %q", cc.Command)
	}
	if len(cc.RequestID) != 36 {
		t.Errorf("expected uuid request id, got %q", cc.RequestID)
	}

	ctx := WithCommandContext(context.Background(), cc)
	if CommandContextFrom(ctx) != cc {
		t.Error("CommandContextFrom did not return the stored context")
	}
	if CommandContextFrom(context.Background()) != nil {
		t.Error("expected nil without a stored context")
	}

	attrs := cc.LogAttrs()
	if len(attrs) != 4 || attrs[0].Key != "request_id" {
		t.Errorf("unexpected attrs %v", attrs)
	}
	var nilCC *CommandContext
	if nilCC.LogAttrs() != nil {
		t.Error("nil context should have no attrs")
	}
}

func TestLoggerFrom(t *testing.T) {
	if LoggerFrom(context.Background()) == nil {
		t.Fatal("expected default logger")
	}

	buf := &bytes.Buffer{}
	logger, _ := NewWithWriter(buf, config.LogConfig{Format: "text"})
	ctx := WithLogger(context.Background(), logger)
	if LoggerFrom(ctx) != logger {
		t.Error("LoggerFrom did not return the stored logger")
	}

	cc := &CommandContext{Command: "lmsadmin seed", RequestID: "req-1"}
	logger.WithCommand(cc).Info("seeding")
	if !strings.Contains(buf.String(), "request_id=req-1") {
		t.Errorf("expected request id, got %q", buf.String())
	}
}

// ==================== Audit Tests ====================

func TestAuditLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit", "audit.log")
	audit, err := NewAuditLogger(path, 0)
	if err != nil {
		t.Fatalf("NewAuditLogger failed: %v", err)
	}

	cc := &CommandContext{User: "admin", RequestID: "req-7"}
	ctx := WithAudit(WithCommandContext(context.Background(), cc), audit)

	AuditFrom(ctx).Record(ctx, AuditActionApprove, "student", "s-1", nil)
	AuditFrom(ctx).Record(ctx, AuditActionDelete, "course", "c-1", errors.New("not found"))
	audit.Close()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("audit file missing: %v", err)
	}
	defer f.Close()

	var events []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("invalid audit line: %v", err)
		}
		events = append(events, e)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0]["action"] != "approve" || events[0]["actor"] != "admin" || events[0]["request_id"] != "req-7" {
		t.Errorf("unexpected first event %v", events[0])
	}
	if events[1]["outcome"] != "failure" || events[1]["error"] != "not found" {
		t.Errorf("unexpected second event %v", events[1])
	}
}

func TestAuditLogger_Nil(t *testing.T) {
	var audit *AuditLogger
	audit.Record(context.Background(), AuditActionSeed, "fixture", "", nil)
	if err := audit.Close(); err != nil {
		t.Errorf("nil Close returned %v", err)
	}
	if AuditFrom(context.Background()) != nil {
		t.Error("expected nil audit logger without one stored")
	}
	if _, err := NewAuditLogger("", 0); err == nil {
		t.Error("expected error for empty path")
	}
}

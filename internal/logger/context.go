package logger

import (
	"context"
	"log/slog"
	"os/user"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type (
	commandKey struct{}
	loggerKey  struct{}
	auditKey   struct{}
)

// CommandContext describes one CLI invocation. Its request id ties log
// lines and audit events of the invocation together.
type CommandContext struct {
	Command   string    `json:"command"`
	Args      []string  `json:"args"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// NewCommandContext describes a run of cmd with args by the current OS user.
func NewCommandContext(cmd *cobra.Command, args []string) *CommandContext {
	var name string
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	return &CommandContext{
		Command:   cmd.CommandPath(),
		Args:      args,
		User:      name,
		Timestamp: time.Now(),
		RequestID: uuid.NewString(),
	}
}

// LogAttrs returns cc as slog attributes; args are left out when empty.
func (cc *CommandContext) LogAttrs() []slog.Attr {
	if cc == nil {
		return nil
	}
	attrs := make([]slog.Attr, 0, 4)
	attrs = append(attrs,
		slog.String("request_id", cc.RequestID),
		slog.String("command", cc.Command),
		slog.String("user", cc.User),
	)
	if len(cc.Args) > 0 {
		attrs = append(attrs, slog.Any("args", cc.Args))
	}
	return attrs
}

// WithCommand tags every line of the returned logger with the request id
// and path of cc.
func (l *Logger) WithCommand(cc *CommandContext) *Logger {
	if cc == nil {
		return l
	}
	return l.With("request_id", cc.RequestID, "command", cc.Command)
}

func WithCommandContext(ctx context.Context, cc *CommandContext) context.Context {
	return context.WithValue(ctx, commandKey{}, cc)
}

// CommandContextFrom returns the invocation stored in ctx, or nil.
func CommandContextFrom(ctx context.Context) *CommandContext {
	cc, _ := ctx.Value(commandKey{}).(*CommandContext)
	return cc
}

func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// LoggerFrom returns the logger stored in ctx, falling back to Default.
func LoggerFrom(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerKey{}).(*Logger); ok && l != nil {
		return l
	}
	return Default()
}

func WithAudit(ctx context.Context, a *AuditLogger) context.Context {
	return context.WithValue(ctx, auditKey{}, a)
}

// AuditFrom returns the audit trail stored in ctx. A nil result is valid
// and discards events.
func AuditFrom(ctx context.Context) *AuditLogger {
	a, _ := ctx.Value(auditKey{}).(*AuditLogger)
	return a
}

package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// AuditAction names a change to the records or the database.
type AuditAction string

const (
	AuditActionApprove   AuditAction = "approve"
	AuditActionReject    AuditAction = "reject"
	AuditActionDelete    AuditAction = "delete"
	AuditActionPublish   AuditAction = "publish"
	AuditActionUnpublish AuditAction = "unpublish"
	AuditActionSeed      AuditAction = "seed"
	AuditActionMigrate   AuditAction = "migrate"
	AuditActionRollback  AuditAction = "rollback"
	AuditActionBackup    AuditAction = "backup"
	AuditActionRestore   AuditAction = "restore"
)

// AuditOutcome is success or failure.
type AuditOutcome string

const (
	AuditOutcomeSuccess AuditOutcome = "success"
	AuditOutcomeFailure AuditOutcome = "failure"
)

// AuditEvent is one change made to the records.
type AuditEvent struct {
	Action    AuditAction    `json:"action"`
	Actor     string         `json:"actor"`
	Resource  string         `json:"resource"` // student, course, exam, ...
	ID        string         `json:"id,omitempty"`
	Outcome   AuditOutcome   `json:"outcome"`
	Error     string         `json:"error,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	RequestID string         `json:"request_id,omitempty"`
}

// AuditLogger writes audit events as JSON lines to a dedicated file. A
// nil *AuditLogger discards events.
type AuditLogger struct {
	logger *slog.Logger
	closer interface{ Close() error }
}

// NewAuditLogger creates an audit logger writing to path.
func NewAuditLogger(path string, maxAgeDays int) (*AuditLogger, error) {
	if path == "" {
		return nil, fmt.Errorf("audit path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}
	if maxAgeDays <= 0 {
		maxAgeDays = 365
	}

	// Rotated files are kept until they age out.
	lj := &lumberjack.Logger{
		Filename: path,
		MaxSize:  defaultMaxSizeMB,
		MaxAge:   maxAgeDays,
		Compress: true,
	}
	return &AuditLogger{
		logger: slog.New(slog.NewJSONHandler(lj, &slog.HandlerOptions{Level: slog.LevelInfo})),
		closer: lj,
	}, nil
}

// Log records event, filling the time, actor and request id from ctx
// when they are unset.
func (a *AuditLogger) Log(ctx context.Context, event AuditEvent) {
	if a == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	cc := CommandContextFrom(ctx)
	if cc != nil && event.RequestID == "" {
		event.RequestID = cc.RequestID
	}
	if cc != nil && event.Actor == "" {
		event.Actor = cc.User
	}
	if event.Actor == "" {
		event.Actor = "unknown"
	}
	a.logger.LogAttrs(ctx, slog.LevelInfo, "audit", event.attrs()...)
}

func (e AuditEvent) attrs() []slog.Attr {
	out := []slog.Attr{
		slog.String("action", string(e.Action)),
		slog.String("actor", e.Actor),
		slog.String("resource", e.Resource),
		slog.String("outcome", string(e.Outcome)),
		slog.Time("timestamp", e.Timestamp),
	}
	for _, opt := range [...]struct{ key, val string }{
		{"id", e.ID},
		{"error", e.Error},
		{"request_id", e.RequestID},
	} {
		if opt.val != "" {
			out = append(out, slog.String(opt.key, opt.val))
		}
	}
	if len(e.Metadata) > 0 {
		out = append(out, slog.Any("metadata", e.Metadata))
	}
	return out
}

// Record logs the outcome of action on one record. err decides the
// outcome.
func (a *AuditLogger) Record(ctx context.Context, action AuditAction, resource, id string, err error) {
	event := AuditEvent{
		Action:   action,
		Resource: resource,
		ID:       id,
		Outcome:  AuditOutcomeSuccess,
	}
	if err != nil {
		event.Outcome = AuditOutcomeFailure
		event.Error = err.Error()
	}
	a.Log(ctx, event)
}

// Close closes the audit logger.
func (a *AuditLogger) Close() error {
	if a != nil && a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

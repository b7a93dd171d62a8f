package logger

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// MaskingHandler wraps an slog.Handler and partially masks the values of
// personal fields such as email addresses and phone numbers.
type MaskingHandler struct {
	handler slog.Handler
	fields  map[string]struct{}
}

// NewMaskingHandler creates a handler that masks the given field names.
// Matching is case-insensitive on the last key segment.
func NewMaskingHandler(handler slog.Handler, fields []string) *MaskingHandler {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[strings.ToLower(f)] = struct{}{}
	}
	return &MaskingHandler{handler: handler, fields: set}
}

// Enabled implements slog.Handler.
func (h *MaskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *MaskingHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs implements slog.Handler.
func (h *MaskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.maskAttr(a)
	}
	return &MaskingHandler{handler: h.handler.WithAttrs(masked), fields: h.fields}
}

// WithGroup implements slog.Handler.
func (h *MaskingHandler) WithGroup(name string) slog.Handler {
	return &MaskingHandler{handler: h.handler.WithGroup(name), fields: h.fields}
}

func (h *MaskingHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		masked := make([]any, len(attrs))
		for i, ga := range attrs {
			masked[i] = h.maskAttr(ga)
		}
		return slog.Group(a.Key, masked...)
	}

	key := strings.ToLower(a.Key)
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		key = key[i+1:]
	}
	if _, ok := h.fields[key]; !ok {
		return a
	}
	return slog.String(a.Key, Mask(a.Value.String()))
}

// Mask hides the middle of a value. Emails keep the first character of
// the local part and the whole domain; other values keep their last
// three characters.
func Mask(s string) string {
	if s == "" {
		return s
	}
	if at := strings.LastIndexByte(s, '@'); at > 0 {
		first, size := utf8.DecodeRuneInString(s)
		if size >= at {
			return "*" + s[at:]
		}
		return string(first) + strings.Repeat("*", utf8.RuneCountInString(s[size:at])) + s[at:]
	}

	runes := []rune(s)
	if len(runes) <= 3 {
		return strings.Repeat("*", len(runes))
	}
	keep := runes[len(runes)-3:]
	return strings.Repeat("*", len(runes)-3) + string(keep)
}

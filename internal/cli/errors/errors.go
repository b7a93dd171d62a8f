// Package errors turns failures of lmsadmin commands into coded errors
// with hints on what to try next, rendered as a styled box on a terminal
// and as plain lines otherwise.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lmsadmin/internal/config"
	"lmsadmin/internal/storage"
	"lmsadmin/internal/storage/backup"
	"lmsadmin/internal/tui/themes"
)

// Code categorizes an error.
type Code string

const (
	CodeUnknown        Code = "UNKNOWN"
	CodeConfigNotFound Code = "CONFIG_NOT_FOUND"
	CodeConfigInvalid  Code = "CONFIG_INVALID"
	CodeConfigExists   Code = "CONFIG_EXISTS"
	CodeDatabase       Code = "DATABASE"
	CodeMigration      Code = "MIGRATION"
	CodeNotFound       Code = "NOT_FOUND"
	CodeAlreadyExists  Code = "ALREADY_EXISTS"
	CodeValidation     Code = "VALIDATION"
	CodeTimeout        Code = "TIMEOUT"
	CodeInternal       Code = "INTERNAL"
	CodeUserCancelled  Code = "USER_CANCELLED"
)

// Rich is an error carrying a code and hints for the user.
type Rich struct {
	Code    Code
	Message string

	// Details is technical context, such as the file involved.
	Details string

	// Suggestions are commands or checks the user can try.
	Suggestions []string

	Cause error
}

func (e *Rich) Error() string {
	msg := "[" + string(e.Code) + "] " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Rich) Unwrap() error {
	return e.Cause
}

// New creates a Rich error.
func New(code Code, message string) *Rich {
	return &Rich{Code: code, Message: message}
}

// Wrap creates a Rich error caused by err.
func Wrap(err error, code Code, message string) *Rich {
	return &Rich{Code: code, Message: message, Cause: err}
}

// WithDetails sets the technical details.
func (e *Rich) WithDetails(details string) *Rich {
	e.Details = details
	return e
}

// WithSuggestions replaces the suggestions.
func (e *Rich) WithSuggestions(suggestions ...string) *Rich {
	e.Suggestions = suggestions
	return e
}

// WithCause sets the underlying error.
func (e *Rich) WithCause(cause error) *Rich {
	e.Cause = cause
	return e
}

// AsRich returns the first Rich error in the chain of err, or nil.
func AsRich(err error) *Rich {
	var rich *Rich
	if errors.As(err, &rich) {
		return rich
	}
	return nil
}

// Display renders err in a rounded box styled with theme; nil uses the
// active theme.
func Display(err error, theme *themes.Theme) string {
	if theme == nil {
		theme = themes.Global().Active()
	}
	rich := Classify(err)

	muted := lipgloss.NewStyle().Foreground(theme.Palette.TextMuted)
	heading := lipgloss.NewStyle().Foreground(theme.Palette.Error).Bold(true)

	lines := []string{
		heading.Render("✗ "+rich.Message) + " " + muted.Render("["+string(rich.Code)+"]"),
	}
	if rich.Details != "" {
		lines = append(lines, "", muted.Render(rich.Details))
	}
	if rich.Cause != nil && rich.Cause.Error() != rich.Message {
		lines = append(lines, "", muted.Render("Caused by: "+rich.Cause.Error()))
	}
	if len(rich.Suggestions) > 0 {
		lines = append(lines, "", theme.Info.Render("Try:"))
		for _, s := range rich.Suggestions {
			lines = append(lines, "  • "+s)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Palette.Error).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// DisplaySimple renders err as plain text for logs and pipes.
func DisplaySimple(err error) string {
	rich := AsRich(err)
	if rich == nil {
		return "Error: " + err.Error()
	}

	lines := []string{fmt.Sprintf("Error [%s]: %s", rich.Code, rich.Message)}
	if rich.Details != "" {
		lines = append(lines, "  "+rich.Details)
	}
	if rich.Cause != nil {
		lines = append(lines, "  Caused by: "+rich.Cause.Error())
	}
	for _, s := range rich.Suggestions {
		lines = append(lines, "  Try: "+s)
	}
	return strings.Join(lines, "\n") + "\n"
}

// Classify wraps err in a Rich error whose code matches the storage or
// config sentinel it carries. Rich errors are returned unchanged.
func Classify(err error) *Rich {
	if err == nil {
		return nil
	}
	if rich := AsRich(err); rich != nil {
		return rich
	}

	switch {
	case errors.Is(err, backup.ErrIntegrity):
		return Wrap(err, CodeDatabase, "Backup is damaged").
			WithSuggestions("Run 'lmsadmin db backups' to pick another backup")
	case errors.Is(err, storage.ErrNotFound):
		return Wrap(err, CodeNotFound, "Record not found").
			WithSuggestions("Use 'lmsadmin list <table>' to see available records")
	case errors.Is(err, storage.ErrAlreadyExists):
		return Wrap(err, CodeAlreadyExists, "Record already exists")
	case errors.Is(err, storage.ErrInvalidInput):
		return Wrap(err, CodeValidation, "Invalid input")
	case errors.Is(err, storage.ErrMigrationFailed), errors.Is(err, storage.ErrChecksumMismatch):
		return Wrap(err, CodeMigration, "Database migration failed").
			WithSuggestions(
				"Run 'lmsadmin db status' to inspect the schema version",
				"Run 'lmsadmin db rollback' to undo the last migration",
			)
	case errors.Is(err, storage.ErrClosed):
		return Wrap(err, CodeDatabase, "Database is closed")
	case errors.Is(err, config.ErrInvalidConfig):
		return Wrap(err, CodeConfigInvalid, "Configuration is invalid").
			WithSuggestions("Run 'lmsadmin config show' to see the effective values")
	case errors.Is(err, config.ErrConfigExists):
		return Wrap(err, CodeConfigExists, "Configuration file already exists").
			WithSuggestions("Use '--force' to overwrite it")
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, CodeTimeout, "Operation timed out")
	}
	return Wrap(err, CodeUnknown, err.Error())
}

// ConfigNotFound reports an explicit config file that does not exist.
func ConfigNotFound(path string) *Rich {
	return New(CodeConfigNotFound, "Configuration file not found").
		WithDetails("File: " + path).
		WithSuggestions(
			"Run 'lmsadmin config init' to write the defaults",
			"Drop '--config' to use the search paths",
		)
}

// ConfigInvalid reports a config file that cannot be loaded.
func ConfigInvalid(path string, cause error) *Rich {
	rich := Wrap(cause, CodeConfigInvalid, "Configuration is invalid").
		WithSuggestions("Run 'lmsadmin config show' to see the effective values")
	if path != "" {
		rich.WithDetails("File: " + path)
	}
	return rich
}

// DatabaseFailed reports a database that cannot be opened.
func DatabaseFailed(path string, cause error) *Rich {
	return Wrap(cause, CodeDatabase, "Failed to open the database").
		WithDetails("Path: " + path).
		WithSuggestions(
			"Check that the directory exists and is writable",
			"Use '--db' to pick another database file",
			"Run 'lmsadmin db status' to inspect the schema",
		)
}

// UnknownTable reports a table name the CLI does not know.
func UnknownTable(name string, known []string) *Rich {
	return New(CodeNotFound, "Unknown table: "+name).
		WithSuggestions("Use one of: " + strings.Join(known, ", "))
}

// NotFound reports a missing record of table.
func NotFound(table, id string) *Rich {
	return New(CodeNotFound, fmt.Sprintf("No %s record with id %s", table, id)).
		WithSuggestions(fmt.Sprintf("Run 'lmsadmin list %s' to see the ids", table))
}

// UserCancelled reports a prompt the user declined.
func UserCancelled() *Rich {
	return New(CodeUserCancelled, "Cancelled")
}

// Timeout reports an operation that ran out of time.
func Timeout(operation string, after string) *Rich {
	return New(CodeTimeout, operation+" timed out").
		WithDetails("Gave up after " + after).
		WithSuggestions("Check that no other process holds the database lock")
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lmsadmin/internal/storage"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// sortColumns maps a public sort key to the SQL expression it orders by.
type sortColumns map[string]string

// orderBy renders the ORDER BY clause for filter. The fallback orders
// unsorted lists; tiebreak keeps paging stable.
func (c sortColumns) orderBy(filter storage.ListFilter, fallback, tiebreak string) (string, error) {
	expr := fallback
	if filter.OrderBy != "" {
		var ok bool
		expr, ok = c[filter.OrderBy]
		if !ok {
			return "", fmt.Errorf("%w: unknown sort key %q", storage.ErrInvalidInput, filter.OrderBy)
		}
	}
	dir := "ASC"
	if filter.OrderDesc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, %s ASC", expr, dir, tiebreak), nil
}

// window appends LIMIT and OFFSET.
func window(query string, args []any, filter storage.ListFilter) (string, []any) {
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}
	return query, args
}

// searchClause matches term against every column with LIKE.
func searchClause(term string, columns ...string) (string, []any) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", nil
	}
	pattern := "%" + escapeLike(term) + "%"
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		parts[i] = col + ` LIKE ? ESCAPE '\'`
		args[i] = pattern
	}
	return " AND (" + strings.Join(parts, " OR ") + ")", args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// isConstraintError checks if the error is a constraint violation.
func isConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint") ||
		strings.Contains(err.Error(), "PRIMARY KEY constraint") ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint")
}

// wrapNotFound wraps sql.ErrNoRows as storage.ErrNotFound.
func wrapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

// expectAffected returns storage.ErrNotFound when result touched no rows.
func expectAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

package datatable

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Query describes the page a table wants from its data source.
type Query struct {
	Search string
	Sort   Sort
	Sorted bool

	// Page is 1-based. PerPage <= 0 asks for every matching row.
	Page    int
	PerPage int
}

// Offset returns the index of the first row of the page.
func (q Query) Offset() int {
	if q.PerPage <= 0 || q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}

// Page is one page of rows and the number of rows matching the query.
type Page[R any] struct {
	Rows  []R
	Total int
}

// DataProvider fetches pages of rows for a table.
type DataProvider[R any] interface {
	FetchPage(ctx context.Context, q Query) (Page[R], error)
}

// ProviderFunc adapts a function to DataProvider.
type ProviderFunc[R any] func(ctx context.Context, q Query) (Page[R], error)

// FetchPage calls f.
func (f ProviderFunc[R]) FetchPage(ctx context.Context, q Query) (Page[R], error) {
	return f(ctx, q)
}

// SliceProvider serves pages out of an in-memory slice. Sorting uses the
// accessor of the column named by the query.
type SliceProvider[R any] struct {
	rows    []R
	columns []Column[R]
	match   func(row R, term string) bool
}

// NewSliceProvider creates a provider over rows. match decides whether a
// row satisfies a non-empty search term; nil matches every row.
func NewSliceProvider[R any](rows []R, columns []Column[R], match func(R, string) bool) *SliceProvider[R] {
	return &SliceProvider[R]{rows: rows, columns: columns, match: match}
}

// SetRows replaces the backing rows.
func (p *SliceProvider[R]) SetRows(rows []R) { p.rows = rows }

// FetchPage implements DataProvider. The backing slice is never reordered.
func (p *SliceProvider[R]) FetchPage(ctx context.Context, q Query) (Page[R], error) {
	if err := ctx.Err(); err != nil {
		return Page[R]{}, err
	}

	filtered := make([]R, 0, len(p.rows))
	for _, row := range p.rows {
		if q.Search == "" || p.match == nil || p.match(row, q.Search) {
			filtered = append(filtered, row)
		}
	}

	if q.Sorted {
		col, ok := p.column(q.Sort.Column)
		if !ok {
			return Page[R]{}, fmt.Errorf("unknown sort column %q", q.Sort.Column)
		}
		slices.SortStableFunc(filtered, func(a, b R) int {
			c := CompareValues(CellValue(a, col), CellValue(b, col))
			if q.Sort.Direction == Desc {
				return -c
			}
			return c
		})
	}

	page := Page[R]{Total: len(filtered)}
	if q.PerPage <= 0 {
		page.Rows = filtered
		return page, nil
	}
	page.Rows = Slice(filtered, q.Page, q.PerPage)
	return page, nil
}

func (p *SliceProvider[R]) column(key string) (Column[R], bool) {
	for _, c := range p.columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[R]{}, false
}

// ContainsFold reports whether any of fields contains term, ignoring case.
func ContainsFold(term string, fields ...string) bool {
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// CompareValues orders two cell values. Strings, integers, floats, bools
// and times compare naturally; nil sorts first; mixed or unknown types
// compare by their formatted text.
func CompareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return cmp.Compare(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	}

	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

package datatable

import (
	"context"
	"fmt"
)

// Controller keeps a Table filled from a DataProvider. It listens to the
// table's search, sort and page intents and marks the table stale; the
// owner then calls Load, or runs Query/FetchPage/Apply itself when the
// fetch has to happen off the event loop.
type Controller[R any] struct {
	table    *Table[R]
	provider DataProvider[R]

	stale   bool
	onStale []func()
}

// NewController binds table to provider. The table starts stale.
func NewController[R any](table *Table[R], provider DataProvider[R]) *Controller[R] {
	c := &Controller[R]{table: table, provider: provider, stale: true}

	table.OnSearchChange(func(string) {
		table.SetCurrentPage(1)
		c.markStale()
	})
	table.OnSortChange(func(Sort) { c.markStale() })
	table.OnPageChange(func(int) { c.markStale() })

	return c
}

// Table returns the bound table.
func (c *Controller[R]) Table() *Table[R] { return c.table }

// Provider returns the bound provider.
func (c *Controller[R]) Provider() DataProvider[R] { return c.provider }

// Stale reports whether the table rows no longer match its state.
func (c *Controller[R]) Stale() bool { return c.stale }

// Invalidate marks the table stale, for example after the underlying
// records changed.
func (c *Controller[R]) Invalidate() { c.markStale() }

// OnStale registers fn to run whenever the table becomes stale.
func (c *Controller[R]) OnStale(fn func()) { c.onStale = append(c.onStale, fn) }

func (c *Controller[R]) markStale() {
	c.stale = true
	for _, fn := range c.onStale {
		fn()
	}
}

// Query builds the provider query from the current table state.
func (c *Controller[R]) Query() Query {
	q := Query{
		Search:  c.table.SearchTerm(),
		Page:    max(1, c.table.CurrentPage()),
		PerPage: c.table.ItemsPerPage(),
	}
	q.Sort, q.Sorted = c.table.ActiveSort()
	return q
}

// Current reports whether q still describes the table state. Results of a
// query that is no longer current should be dropped.
func (c *Controller[R]) Current(q Query) bool { return q == c.Query() }

// Apply stores a page fetched for q. When q asked for a page past the
// last one, the table moves to the last page, nothing is stored and Apply
// returns true: the caller should fetch again.
func (c *Controller[R]) Apply(q Query, page Page[R]) (refetch bool) {
	if last := TotalPages(page.Total, q.PerPage); len(page.Rows) == 0 && last > 0 && q.Page > last {
		c.table.SetCurrentPage(last)
		return true
	}
	c.store(q, page)
	return false
}

func (c *Controller[R]) store(q Query, page Page[R]) {
	if page.Total == 0 {
		c.table.SetCurrentPage(1)
	} else {
		c.table.SetCurrentPage(q.Page)
	}
	c.table.SetPage(page.Rows, page.Total)
	c.stale = false
}

// Load fetches the current page and stores it. A page past the end is
// retried once on the last page.
func (c *Controller[R]) Load(ctx context.Context) error {
	q := c.Query()
	page, err := c.provider.FetchPage(ctx, q)
	if err != nil {
		return fmt.Errorf("fetch page %d: %w", q.Page, err)
	}
	if !c.Apply(q, page) {
		return nil
	}

	q = c.Query()
	page, err = c.provider.FetchPage(ctx, q)
	if err != nil {
		return fmt.Errorf("fetch page %d: %w", q.Page, err)
	}
	c.store(q, page)
	return nil
}

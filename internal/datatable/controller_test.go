package datatable

import (
	"context"
	"errors"
	"testing"
)

type recordingProvider struct {
	inner   DataProvider[row]
	queries []Query
	err     error
}

func (p *recordingProvider) FetchPage(ctx context.Context, q Query) (Page[row], error) {
	p.queries = append(p.queries, q)
	if p.err != nil {
		return Page[row]{}, p.err
	}
	return p.inner.FetchPage(ctx, q)
}

func newTestController(rows []row) (*Controller[row], *recordingProvider) {
	cols := []Column[row]{nameColumn, ageColumn}
	p := &recordingProvider{inner: NewSliceProvider(rows, cols, matchName)}
	tbl := New(rowKey).WithColumns(cols...).WithItemsPerPage(10)
	return NewController[row](tbl, p), p
}

func TestController_Load(t *testing.T) {
	c, p := newTestController(makeRows(23))
	if !c.Stale() {
		t.Fatal("expected new controller to be stale")
	}

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	tbl := c.Table()
	if c.Stale() || !tbl.Windowed() {
		t.Error("expected fresh windowed table after Load")
	}
	if len(tbl.PageRows()) != 10 || tbl.DisplayTotal() != 23 || tbl.TotalPages() != 3 {
		t.Errorf("unexpected table state: rows=%d total=%d pages=%d", len(tbl.PageRows()), tbl.DisplayTotal(), tbl.TotalPages())
	}
	if len(p.queries) != 1 || p.queries[0].Page != 1 || p.queries[0].PerPage != 10 {
		t.Errorf("unexpected queries %v", p.queries)
	}
}

func TestController_IntentsMarkStale(t *testing.T) {
	c, _ := newTestController(makeRows(23))
	ctx := context.Background()
	var notified int
	c.OnStale(func() { notified++ })

	_ = c.Load(ctx)
	c.Table().GoToPage(3)
	if !c.Stale() || c.Query().Page != 3 {
		t.Fatalf("expected stale query for page 3, got %+v", c.Query())
	}
	_ = c.Load(ctx)
	if got := c.Table().PageRows()[0].ID; got != "r20" {
		t.Errorf("expected page 3 to start at r20, got %s", got)
	}

	c.Table().RequestSort(ageColumn)
	q := c.Query()
	if !q.Sorted || q.Sort.Column != "age" || q.Sort.Direction != Asc {
		t.Errorf("expected age sort in query, got %+v", q)
	}

	if notified != 2 {
		t.Errorf("expected 2 stale notifications, got %d", notified)
	}
}

func TestController_SearchResetsPage(t *testing.T) {
	c, _ := newTestController(makeRows(23))
	ctx := context.Background()
	_ = c.Load(ctx)
	c.Table().GoToPage(2)
	_ = c.Load(ctx)

	c.Table().SearchChange("name 2")
	if c.Table().CurrentPage() != 1 {
		t.Fatalf("expected page reset to 1, got %d", c.Table().CurrentPage())
	}
	if err := c.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Table().DisplayTotal() != 3 {
		t.Errorf("expected 3 matches, got %d", c.Table().DisplayTotal())
	}
}

func TestController_ClampsPastLastPage(t *testing.T) {
	rows := makeRows(23)
	c, p := newTestController(rows)
	ctx := context.Background()
	_ = c.Load(ctx)
	c.Table().GoToPage(3)
	_ = c.Load(ctx)

	// The data shrinks underneath the table.
	p.inner = NewSliceProvider(rows[:12], []Column[row]{nameColumn, ageColumn}, nil)
	c.Invalidate()
	p.queries = nil

	if err := c.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(p.queries) != 2 || p.queries[0].Page != 3 || p.queries[1].Page != 2 {
		t.Fatalf("expected fetch of page 3 then page 2, got %v", p.queries)
	}
	tbl := c.Table()
	if tbl.CurrentPage() != 2 || len(tbl.PageRows()) != 2 {
		t.Errorf("expected last page with 2 rows, got page %d with %d rows", tbl.CurrentPage(), len(tbl.PageRows()))
	}
}

func TestController_EmptyResult(t *testing.T) {
	c, _ := newTestController(makeRows(5))
	c.Table().SearchChange("nothing matches")

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	tbl := c.Table()
	if tbl.TotalPages() != 0 || len(tbl.PageRows()) != 0 || tbl.CurrentPage() != 1 {
		t.Errorf("unexpected empty state: pages=%d rows=%d page=%d", tbl.TotalPages(), len(tbl.PageRows()), tbl.CurrentPage())
	}
}

func TestController_ProviderError(t *testing.T) {
	c, p := newTestController(makeRows(5))
	boom := errors.New("boom")
	p.err = boom

	err := c.Load(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
	if !c.Stale() {
		t.Error("expected table to stay stale after a failed load")
	}
}

func TestController_QueryAndApply(t *testing.T) {
	c, p := newTestController(makeRows(23))
	ctx := context.Background()

	q := c.Query()
	page, _ := p.FetchPage(ctx, q)
	c.Table().SearchChange("name 0")
	if c.Current(q) {
		t.Error("expected query to be outdated after a search")
	}

	if c.Apply(q, page) {
		t.Error("expected in-range page to apply without refetch")
	}
	if c.Stale() {
		t.Error("expected Apply to clear the stale flag")
	}
}

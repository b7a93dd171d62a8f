package datatable

import (
	"slices"
	"testing"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, perPage, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{23, 10, 3},
		{120, 10, 12},
		{5, 0, 0},
		{-3, 10, 0},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.perPage); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name           string
		current, total int
		want           []int
	}{
		{"middle", 5, 12, []int{3, 4, 5, 6, 7}},
		{"first", 1, 12, []int{1, 2, 3, 4, 5}},
		{"second", 2, 12, []int{1, 2, 3, 4, 5}},
		{"last", 12, 12, []int{8, 9, 10, 11, 12}},
		{"near end", 11, 12, []int{8, 9, 10, 11, 12}},
		{"few pages", 2, 3, []int{1, 2, 3}},
		{"single page", 1, 1, []int{1}},
		{"no pages", 1, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageWindow(tt.current, tt.total, WindowSize)
			if !slices.Equal(got, tt.want) {
				t.Errorf("PageWindow(%d, %d) = %v, want %v", tt.current, tt.total, got, tt.want)
			}
		})
	}
}

func TestPageWindow_LengthProperty(t *testing.T) {
	for total := 0; total <= 20; total++ {
		for current := 1; current <= max(1, total); current++ {
			got := PageWindow(current, total, WindowSize)
			if len(got) != min(WindowSize, total) {
				t.Fatalf("PageWindow(%d, %d) has %d pages, want %d", current, total, len(got), min(WindowSize, total))
			}
			if total > 0 && !slices.Contains(got, current) {
				t.Fatalf("PageWindow(%d, %d) = %v does not contain current page", current, total, got)
			}
		}
	}
}

func TestSlice(t *testing.T) {
	rows := makeRows(23)

	page := Slice(rows, 2, 10)
	if len(page) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(page))
	}
	if page[0].ID != "r10" || page[9].ID != "r19" {
		t.Errorf("expected rows r10..r19, got %s..%s", page[0].ID, page[9].ID)
	}

	last := Slice(rows, 3, 10)
	if len(last) != 3 || last[0].ID != "r20" {
		t.Errorf("expected 3 rows from r20, got %d", len(last))
	}

	if got := Slice(rows, 4, 10); len(got) != 0 {
		t.Errorf("expected empty slice past the end, got %d rows", len(got))
	}
	if got := Slice(rows, 0, 10); len(got) != 0 {
		t.Errorf("expected empty slice for page 0, got %d rows", len(got))
	}
}

func TestSlice_LengthProperty(t *testing.T) {
	rows := makeRows(37)
	for perPage := 1; perPage <= 12; perPage++ {
		for page := 1; page <= TotalPages(len(rows), perPage); page++ {
			got := Slice(rows, page, perPage)
			if len(got) > perPage {
				t.Fatalf("page %d/%d: %d rows exceeds page size", page, perPage, len(got))
			}
			start := (page - 1) * perPage
			for i, r := range got {
				if r.ID != rows[start+i].ID {
					t.Fatalf("page %d/%d: row %d is %s, want %s", page, perPage, i, r.ID, rows[start+i].ID)
				}
			}
		}
	}
}

func TestSlice_DoesNotAliasAppends(t *testing.T) {
	rows := makeRows(5)
	page := Slice(rows, 1, 2)
	_ = append(page, row{ID: "x"})

	if rows[2].ID != "r02" {
		t.Error("expected append to the page not to overwrite the source")
	}
}

func TestDisplayRange(t *testing.T) {
	start, end := DisplayRange(2, 10, 23)
	if start != 11 || end != 20 {
		t.Errorf("expected 11-20, got %d-%d", start, end)
	}
	start, end = DisplayRange(3, 10, 23)
	if start != 21 || end != 23 {
		t.Errorf("expected 21-23, got %d-%d", start, end)
	}
}

func TestPager_GoTo(t *testing.T) {
	p := NewPager(10)

	if p.GoTo(0, 23) {
		t.Error("expected page 0 to be rejected")
	}
	if p.GoTo(4, 23) {
		t.Error("expected page past the end to be rejected")
	}
	if p.CurrentPage != 1 {
		t.Errorf("expected current page unchanged, got %d", p.CurrentPage)
	}
	if !p.GoTo(3, 23) || p.CurrentPage != 3 {
		t.Errorf("expected move to page 3, got %d", p.CurrentPage)
	}
}

func TestPager_TotalItemsOverride(t *testing.T) {
	p := NewPager(10)
	if got := p.TotalPages(5); got != 1 {
		t.Errorf("expected 1 page from data length, got %d", got)
	}
	p.TotalItems = 95
	if got := p.TotalPages(5); got != 10 {
		t.Errorf("expected 10 pages from override, got %d", got)
	}
}

func TestNewPager_DefaultPageSize(t *testing.T) {
	if p := NewPager(0); p.ItemsPerPage != DefaultItemsPerPage {
		t.Errorf("expected default page size, got %d", p.ItemsPerPage)
	}
}

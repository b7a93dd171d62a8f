package component

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lmsadmin/internal/datatable"
	"lmsadmin/internal/tui/i18n"
	"lmsadmin/internal/tui/themes"
)

type course struct {
	ID     string
	Title  string
	Status string
}

type recorder struct {
	rowClicks []string
	sorts     []datatable.Sort
	pages     []int
	searches  []string
	events    []string
}

func newTestTable(n int) (*DataTable[course], *recorder) {
	rows := make([]course, n)
	for i := range rows {
		rows[i] = course{
			ID:     fmt.Sprintf("c%02d", i+1),
			Title:  fmt.Sprintf("Course %02d", i+1),
			Status: "مقبول",
		}
	}

	rec := &recorder{}
	table := datatable.New(func(c course) string { return c.ID }).
		WithColumns(
			datatable.Column[course]{Key: "title", Label: "Title", Sortable: true, Value: func(c course) any { return c.Title }},
			datatable.Column[course]{Key: "status", Label: "Status", Status: true, Value: func(c course) any { return c.Status }},
		).
		WithActions(
			datatable.Action[course]{Label: "Approve", Style: "success", Handler: func(c course) {
				rec.events = append(rec.events, "approve handler "+c.ID)
			}},
			datatable.Action[course]{Label: "Delete", Style: "danger", Handler: func(c course) {
				rec.events = append(rec.events, "delete handler "+c.ID)
			}},
		)
	table.SetData(rows)
	table.SetCurrentPage(1)

	table.OnRowClick(func(c course) { rec.rowClicks = append(rec.rowClicks, c.ID) })
	table.OnSortChange(func(s datatable.Sort) { rec.sorts = append(rec.sorts, s) })
	table.OnPageChange(func(p int) { rec.pages = append(rec.pages, p) })
	table.OnSearchChange(func(s string) { rec.searches = append(rec.searches, s) })
	table.OnActionClick(func(ev datatable.ActionEvent[course]) {
		rec.events = append(rec.events, "event "+ev.Action.Label+" "+ev.Row.ID)
	})

	dt := NewDataTable(table).
		WithI18n(i18n.New(i18n.WithLocale("en"))).
		WithTheme(themes.DarkTheme())
	dt.SetSize(100, 20)
	dt.Focus()
	return dt, rec
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDataTable_HeaderClickSorts(t *testing.T) {
	dt, rec := newTestTable(5)
	lay := dt.layout(dt.renderWidth())

	dt.Click(lay.columns[0].start, headerLine)
	dt.Click(lay.columns[0].end-1, headerLine)
	dt.Click(lay.columns[1].start, headerLine)

	want := []datatable.Sort{
		{Column: "title", Direction: datatable.Asc},
		{Column: "title", Direction: datatable.Desc},
	}
	if len(rec.sorts) != len(want) {
		t.Fatalf("expected %d sort intents, got %v", len(want), rec.sorts)
	}
	for i := range want {
		if rec.sorts[i] != want[i] {
			t.Errorf("sort %d = %+v, want %+v", i, rec.sorts[i], want[i])
		}
	}
}

func TestDataTable_HeaderCheckboxTogglesAll(t *testing.T) {
	dt, _ := newTestTable(3)

	dt.Click(0, headerLine)
	if !dt.Table().AllSelected() {
		t.Fatal("expected every row selected")
	}
	dt.Click(2, headerLine)
	if len(dt.Table().SelectedRows()) != 0 {
		t.Errorf("expected selection cleared, got %d rows", len(dt.Table().SelectedRows()))
	}
}

func TestDataTable_RowRegions(t *testing.T) {
	dt, rec := newTestTable(5)
	lay := dt.layout(dt.renderWidth())

	// Checkbox
	dt.Click(1, firstRowLine)
	if !dt.Table().IsRowSelected(course{ID: "c01"}) {
		t.Error("checkbox click should select the row")
	}
	if len(rec.rowClicks) != 0 {
		t.Errorf("checkbox click emitted a row click: %v", rec.rowClicks)
	}

	// Second action on the second row
	dt.Click(lay.actionSpans[1].start, firstRowLine+1)
	wantEvents := []string{"event Delete c02", "delete handler c02"}
	if strings.Join(rec.events, "|") != strings.Join(wantEvents, "|") {
		t.Errorf("events = %v, want %v", rec.events, wantEvents)
	}
	if len(rec.rowClicks) != 0 {
		t.Errorf("action click emitted a row click: %v", rec.rowClicks)
	}

	// Gap between action labels is still the actions region
	dt.Click(lay.actionSpans[0].end, firstRowLine+1)
	if len(rec.rowClicks) != 0 {
		t.Errorf("click between actions emitted a row click: %v", rec.rowClicks)
	}
	if len(rec.events) != 2 {
		t.Errorf("click between actions ran an action: %v", rec.events)
	}

	// Body
	dt.Click(lay.columns[0].start, firstRowLine+2)
	if len(rec.rowClicks) != 1 || rec.rowClicks[0] != "c03" {
		t.Errorf("row clicks = %v, want [c03]", rec.rowClicks)
	}
	if dt.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", dt.Cursor())
	}

	// Below the last row
	dt.Click(lay.columns[0].start, firstRowLine+5)
	if len(rec.rowClicks) != 1 {
		t.Errorf("click below the rows emitted a row click: %v", rec.rowClicks)
	}
}

func TestDataTable_FooterPageLinks(t *testing.T) {
	dt, rec := newTestTable(23)
	lay := dt.layout(dt.renderWidth())

	links := dt.pageLinks()
	if len(links) != 5 {
		t.Fatalf("expected prev, 3 pages and next, got %d links", len(links))
	}

	// Prev on the first page is out of range
	dt.Click(links[0].span.start, lay.footerLine)
	if len(rec.pages) != 0 {
		t.Errorf("prev on page 1 emitted %v", rec.pages)
	}

	dt.Click(links[3].span.start+1, lay.footerLine)
	if dt.Table().CurrentPage() != 3 {
		t.Errorf("current page = %d, want 3", dt.Table().CurrentPage())
	}
	if len(rec.pages) != 1 || rec.pages[0] != 3 {
		t.Errorf("page events = %v, want [3]", rec.pages)
	}

	links = dt.pageLinks()
	if !links[3].current {
		t.Error("page 3 should be marked current")
	}
	dt.Click(links[len(links)-1].span.start, dt.layout(dt.renderWidth()).footerLine)
	if len(rec.pages) != 1 {
		t.Errorf("next on the last page emitted %v", rec.pages)
	}
}

func TestDataTable_SinglePageHasNoLinks(t *testing.T) {
	dt, _ := newTestTable(4)
	if links := dt.pageLinks(); links != nil {
		t.Errorf("expected no page links, got %d", len(links))
	}
}

func TestDataTable_MouseUpdate(t *testing.T) {
	dt, rec := newTestTable(5)
	dt.SetOrigin(2, 4)
	lay := dt.layout(dt.renderWidth())

	press := tea.MouseMsg{X: 2 + lay.columns[0].start, Y: 4 + firstRowLine, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	dt.Update(press)
	if len(rec.rowClicks) != 0 {
		t.Fatal("mouse press should not count as a click")
	}

	release := press
	release.Action = tea.MouseActionRelease
	dt.Update(release)
	if len(rec.rowClicks) != 1 || rec.rowClicks[0] != "c01" {
		t.Errorf("row clicks = %v, want [c01]", rec.rowClicks)
	}

	dt.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if dt.Cursor() != 1 {
		t.Errorf("wheel down should move the cursor, got %d", dt.Cursor())
	}
}

func TestDataTable_Keys(t *testing.T) {
	dt, rec := newTestTable(23)
	table := dt.Table()

	dt.Update(runes("j"))
	dt.Update(runes("x"))
	if !table.IsRowSelected(course{ID: "c02"}) {
		t.Error("x should select the row under the cursor")
	}

	dt.Update(runes("a"))
	if !table.AllSelected() {
		t.Error("a should select every row")
	}
	dt.Update(runes("c"))
	if len(table.SelectedRows()) != 0 {
		t.Error("c should clear the selection")
	}

	dt.Update(runes("s"))
	if len(rec.sorts) != 1 || rec.sorts[0].Column != "title" {
		t.Errorf("sort intents = %v", rec.sorts)
	}

	dt.Update(runes("n"))
	dt.Update(runes("n"))
	dt.Update(runes("n"))
	if table.CurrentPage() != 3 {
		t.Errorf("current page = %d, want 3", table.CurrentPage())
	}
	dt.Update(runes("p"))
	if got := fmt.Sprint(rec.pages); got != "[2 3 2]" {
		t.Errorf("page events = %s, want [2 3 2]", got)
	}

	dt.SetCursor(0)
	dt.Update(runes("1"))
	if len(rec.events) != 2 || rec.events[1] != "approve handler c11" {
		t.Errorf("events = %v", rec.events)
	}
	dt.Update(runes("9"))
	if len(rec.events) != 2 {
		t.Errorf("an action key without an action ran something: %v", rec.events)
	}

	dt.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(rec.rowClicks) != 1 || rec.rowClicks[0] != "c11" {
		t.Errorf("row clicks = %v, want [c11]", rec.rowClicks)
	}
}

func TestDataTable_UnfocusedIgnoresInput(t *testing.T) {
	dt, rec := newTestTable(5)
	dt.Blur()

	dt.Update(runes("a"))
	dt.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(dt.Table().SelectedRows()) != 0 || len(rec.rowClicks) != 0 {
		t.Error("a blurred table should ignore keys")
	}
}

func TestDataTable_Search(t *testing.T) {
	dt, rec := newTestTable(5)

	dt.Update(runes("/"))
	if !dt.Searching() {
		t.Fatal("/ should open the search box")
	}
	dt.Update(runes("a"))
	dt.Update(runes("b"))
	dt.Update(runes("x"))
	if len(dt.Table().SelectedRows()) != 0 {
		t.Error("typing in the search box must not reach the table keys")
	}

	dt.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if dt.Searching() {
		t.Error("enter should close the search box")
	}
	if dt.Table().SearchTerm() != "abx" {
		t.Errorf("search term = %q, want abx", dt.Table().SearchTerm())
	}

	dt.Update(runes("/"))
	dt.Update(tea.KeyMsg{Type: tea.KeyEsc})
	want := []string{"a", "ab", "abx", ""}
	if strings.Join(rec.searches, ",") != strings.Join(want, ",") {
		t.Errorf("search events = %q, want %q", rec.searches, want)
	}
}

func TestDataTable_View(t *testing.T) {
	dt, _ := newTestTable(23)
	dt.Table().ToggleRowSelection(course{ID: "c01"})

	view := dt.View()
	for _, want := range []string{
		"Title " + themes.IconSortNone,
		"Status",
		"Actions",
		"Course 01",
		"مقبول",
		"1 Approve",
		"Showing 1–10 of 23",
		"1 row selected",
		themes.IconBoxChecked,
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
	if strings.Contains(view, "Course 11") {
		t.Error("view shows a row of the second page")
	}

	lines := strings.Split(view, "\n")
	if len(lines) != dt.layout(dt.renderWidth()).footerLine+1 {
		t.Errorf("view has %d lines, footer expected at %d", len(lines), dt.layout(dt.renderWidth()).footerLine)
	}

	dt.Table().RequestSort(dt.Table().Columns()[0])
	if !strings.Contains(dt.View(), "Title "+themes.IconSortAsc) {
		t.Error("sorted column should show the ascending icon")
	}
}

func TestDataTable_ViewEmpty(t *testing.T) {
	dt, _ := newTestTable(0)

	view := dt.View()
	if !strings.Contains(view, "No data") {
		t.Error("empty table should show the empty message")
	}
	if got := dt.layout(dt.renderWidth()).footerLine; got != firstRowLine+2 {
		t.Errorf("footer line = %d, want %d", got, firstRowLine+2)
	}
	if _, ok := dt.CursorRow(); ok {
		t.Error("empty table has no cursor row")
	}
}

func TestDataTable_LayoutFitsWidth(t *testing.T) {
	dt, _ := newTestTable(3)
	dt.Table().SetColumns(append(dt.Table().Columns(), datatable.Column[course]{
		Key:   "long",
		Label: "Long",
		Value: func(course) any { return strings.Repeat("w", 60) },
	}))

	lay := dt.layout(60)
	last := lay.actions.end
	if last > 60 {
		t.Errorf("layout ends at %d, wider than 60", last)
	}
	if lay.widths[2] >= maxColumnWidth {
		t.Errorf("long column should have been narrowed, width %d", lay.widths[2])
	}
}

func TestShrink(t *testing.T) {
	widths := []int{10, 20, 5}
	shrink(widths, 25)
	if got := fmt.Sprint(widths); got != "[10 10 5]" {
		t.Errorf("widths = %s, want [10 10 5]", got)
	}

	widths = []int{5, 5}
	shrink(widths, 2)
	if got := fmt.Sprint(widths); got != "[4 4]" {
		t.Errorf("widths = %s, want [4 4]", got)
	}

	shrink(nil, -1)
}

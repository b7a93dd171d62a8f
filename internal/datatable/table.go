package datatable

// Table is the façade screens interact with. It composes the selection,
// the sorter and the pager, passes search terms through, and dispatches
// row actions. All methods run synchronously on the caller's goroutine and
// notify subscribers before returning.
type Table[R any] struct {
	key Key[R]

	data     []R
	windowed bool
	columns  []Column[R]
	actions  []Action[R]

	searchTerm string
	selection  *Selection[R]
	sorter     Sorter
	pager      Pager

	rowClick    []func(R)
	actionClick []func(ActionEvent[R])
	search      []func(string)
	page        []func(int)
	selected    []func([]R)
	sort        []func(Sort)
}

// New creates a table whose rows are identified by key.
func New[R any](key Key[R]) *Table[R] {
	return &Table[R]{
		key:       key,
		selection: NewSelection(key),
		pager:     NewPager(DefaultItemsPerPage),
	}
}

// WithColumns sets the columns.
func (t *Table[R]) WithColumns(columns ...Column[R]) *Table[R] {
	t.SetColumns(columns)
	return t
}

// WithActions sets the row actions.
func (t *Table[R]) WithActions(actions ...Action[R]) *Table[R] {
	t.SetActions(actions)
	return t
}

// WithItemsPerPage sets the page size.
func (t *Table[R]) WithItemsPerPage(n int) *Table[R] {
	t.SetItemsPerPage(n)
	return t
}

// SetData replaces the locally paginated rows. The selection is kept and
// takes the new values of rows it holds. A total set by SetPage is
// dropped; one set by SetTotalItems is not.
func (t *Table[R]) SetData(data []R) {
	if t.windowed {
		t.pager.TotalItems = 0
	}
	t.data = data
	t.windowed = false
	t.selection.Refresh(data)
}

// SetPage replaces the rows with a page that has already been cut by a
// data source. PageRows returns these rows as-is and total becomes the
// item count.
func (t *Table[R]) SetPage(rows []R, total int) {
	t.data = rows
	t.windowed = true
	t.pager.TotalItems = total
	t.selection.Refresh(rows)
}

// Data returns the rows as supplied.
func (t *Table[R]) Data() []R { return t.data }

// Windowed reports whether the rows were supplied through SetPage.
func (t *Table[R]) Windowed() bool { return t.windowed }

func (t *Table[R]) SetColumns(columns []Column[R]) { t.columns = columns }
func (t *Table[R]) Columns() []Column[R] { return t.columns }
func (t *Table[R]) SetActions(actions []Action[R]) { t.actions = actions }
func (t *Table[R]) Actions() []Action[R] { return t.actions }

// SetTotalItems overrides the item count; zero falls back to len(data).
func (t *Table[R]) SetTotalItems(n int) { t.pager.TotalItems = max(0, n) }

// SetItemsPerPage sets the page size; non-positive values reset it to the
// default.
func (t *Table[R]) SetItemsPerPage(n int) {
	if n <= 0 {
		n = DefaultItemsPerPage
	}
	t.pager.ItemsPerPage = n
}

func (t *Table[R]) ItemsPerPage() int { return t.pager.ItemsPerPage }

// SetCurrentPage sets the page without validation or notification, the way
// a parent binds the current page.
func (t *Table[R]) SetCurrentPage(page int) { t.pager.CurrentPage = page }

func (t *Table[R]) CurrentPage() int { return t.pager.CurrentPage }

// Key returns the identity of row.
func (t *Table[R]) Key(row R) string { return t.key(row) }

// Subscriptions. Handlers run in subscription order.

func (t *Table[R]) OnRowClick(fn func(R)) { t.rowClick = append(t.rowClick, fn) }
func (t *Table[R]) OnActionClick(fn func(ActionEvent[R])) { t.actionClick = append(t.actionClick, fn) }
func (t *Table[R]) OnSearchChange(fn func(string)) { t.search = append(t.search, fn) }
func (t *Table[R]) OnPageChange(fn func(int)) { t.page = append(t.page, fn) }
func (t *Table[R]) OnSelectionChange(fn func([]R)) { t.selected = append(t.selected, fn) }
func (t *Table[R]) OnSortChange(fn func(Sort)) { t.sort = append(t.sort, fn) }

// RowClick emits row unless the click landed in the checkbox or actions
// region of the row.
func (t *Table[R]) RowClick(row R, region Region) {
	if region.Interactive() {
		return
	}
	for _, fn := range t.rowClick {
		fn(row)
	}
}

// ActionClick emits the action event and then calls the action handler.
// A panicking handler is not recovered.
func (t *Table[R]) ActionClick(action Action[R], row R) {
	ev := ActionEvent[R]{Action: action, Row: row}
	for _, fn := range t.actionClick {
		fn(ev)
	}
	if action.Handler != nil {
		action.Handler(row)
	}
}

// SearchChange stores term and emits it verbatim. No filtering happens here.
func (t *Table[R]) SearchChange(term string) {
	t.searchTerm = term
	for _, fn := range t.search {
		fn(term)
	}
}

func (t *Table[R]) SearchTerm() string { return t.searchTerm }

// ToggleSelectAll selects every row of Data, or clears the selection when
// they are all selected already. Empty data is a no-op.
func (t *Table[R]) ToggleSelectAll() {
	if !t.selection.ToggleAll(t.data) {
		return
	}
	t.emitSelection()
}

// ToggleRowSelection flips the selection of one row.
func (t *Table[R]) ToggleRowSelection(row R) {
	t.selection.Toggle(row)
	t.emitSelection()
}

// ClearSelection drops every selected row and emits the empty selection.
func (t *Table[R]) ClearSelection() {
	if t.selection.Len() == 0 {
		return
	}
	t.selection.Clear()
	t.emitSelection()
}

func (t *Table[R]) IsRowSelected(row R) bool { return t.selection.Contains(row) }
func (t *Table[R]) AllSelected() bool { return t.selection.AllSelected(t.data) }
func (t *Table[R]) SelectedRows() []R { return t.selection.Rows() }

func (t *Table[R]) emitSelection() {
	rows := t.selection.Rows()
	for _, fn := range t.selected {
		fn(rows)
	}
}

// RequestSort records a header click on col and emits the resulting sort
// intent. Non-sortable columns are ignored.
func (t *Table[R]) RequestSort(col Column[R]) {
	s, ok := t.sorter.Request(col.Key, col.Sortable)
	if !ok {
		return
	}
	for _, fn := range t.sort {
		fn(s)
	}
}

// ActiveSort returns the current sort intent, if any.
func (t *Table[R]) ActiveSort() (Sort, bool) { return t.sorter.Active() }

// GoToPage moves to page and emits it when 1 <= page <= TotalPages.
func (t *Table[R]) GoToPage(page int) {
	if !t.pager.GoTo(page, len(t.data)) {
		return
	}
	for _, fn := range t.page {
		fn(page)
	}
}

// PageRows returns the rows visible on the current page.
func (t *Table[R]) PageRows() []R {
	if t.windowed {
		return t.data
	}
	return Slice(t.data, t.pager.CurrentPage, t.pager.ItemsPerPage)
}

func (t *Table[R]) TotalPages() int { return t.pager.TotalPages(len(t.data)) }
func (t *Table[R]) PageNumbers() []int { return t.pager.Window(len(t.data)) }

func (t *Table[R]) DisplayStart() int {
	start, _ := DisplayRange(t.pager.CurrentPage, t.pager.ItemsPerPage, t.DisplayTotal())
	return start
}

func (t *Table[R]) DisplayEnd() int {
	_, end := DisplayRange(t.pager.CurrentPage, t.pager.ItemsPerPage, t.DisplayTotal())
	return end
}

func (t *Table[R]) DisplayTotal() int { return t.pager.Effective(len(t.data)) }

// CellValue returns the value of col for row.
func (t *Table[R]) CellValue(row R, col Column[R]) any { return CellValue(row, col) }

// CellText returns the display text of a cell.
func (t *Table[R]) CellText(row R, col Column[R]) string { return CellText(row, col) }

// StatusBadgeClass maps a status label to its badge class.
func (t *Table[R]) StatusBadgeClass(status string) BadgeClass { return StatusBadgeClass(status) }

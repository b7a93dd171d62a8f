package component

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lmsadmin/internal/datatable"
	"lmsadmin/internal/tui/i18n"
	"lmsadmin/internal/tui/themes"
)

// Lines of a rendered DataTable, relative to its origin
const (
	searchLine   = 0
	headerLine   = 1
	firstRowLine = 3
)

const (
	checkboxWidth  = 3
	minColumnWidth = 4
	maxColumnWidth = 40
	cellSep        = "│"
)

type span struct{ start, end int }

func (s span) contains(x int) bool { return x >= s.start && x < s.end }

// tableLayout is the horizontal geometry of one render
type tableLayout struct {
	checkbox     span
	columns      []span
	widths       []int
	actions      span
	actionsWidth int
	actionSpans  []span
	footerLine   int
}

func (l tableLayout) region(x int) datatable.Region {
	switch {
	case l.checkbox.contains(x):
		return datatable.RegionCheckbox
	case l.actionsWidth > 0 && l.actions.contains(x):
		return datatable.RegionActions
	default:
		return datatable.RegionBody
	}
}

func (l tableLayout) actionAt(x int) int {
	for i, s := range l.actionSpans {
		if s.contains(x) {
			return i
		}
	}
	return -1
}

type pageLink struct {
	label   string
	page    int
	current bool
	span    span
}

// DataTable renders a datatable.Table and turns keys and mouse clicks into
// calls on it. Fetching rows is left to the owner, which listens to the
// table's intents.
type DataTable[R any] struct {
	Base

	table     *datatable.Table[R]
	keys      TableKeyMap
	help      help.Model
	search    textinput.Model
	searching bool

	cursor  int
	column  int
	originX int
	originY int
}

// NewDataTable creates a component over table
func NewDataTable[R any](table *datatable.Table[R]) *DataTable[R] {
	t := &DataTable[R]{
		table: table,
		help:  help.New(),
	}
	t.search = textinput.New()
	t.search.Prompt = ""
	t.search.CharLimit = 100
	t.search.Width = 30
	t.applyLocale()
	t.applyTheme()
	return t
}

// WithTheme sets the theme
func (t *DataTable[R]) WithTheme(theme *themes.Theme) *DataTable[R] {
	t.SetTheme(theme)
	t.applyTheme()
	return t
}

// WithI18n sets the translations
func (t *DataTable[R]) WithI18n(tr *i18n.I18n) *DataTable[R] {
	t.SetI18n(tr)
	t.applyLocale()
	return t
}

func (t *DataTable[R]) applyLocale() {
	tr := t.I18n()
	t.keys = NewTableKeyMap(tr)
	t.search.Placeholder = tr.T("table.search_placeholder")
}

func (t *DataTable[R]) applyTheme() {
	theme := t.Theme()
	t.help.Styles.ShortKey = theme.HelpKey
	t.help.Styles.ShortDesc = theme.HelpDesc
	t.help.Styles.ShortSeparator = theme.Help
	t.help.Styles.FullKey = theme.HelpKey
	t.help.Styles.FullDesc = theme.HelpDesc
	t.help.Styles.FullSeparator = theme.Help
	t.search.TextStyle = theme.Base
	t.search.PlaceholderStyle = theme.Muted
}

// SetOrigin sets the screen position of the top-left cell, used to map
// mouse coordinates
func (t *DataTable[R]) SetOrigin(x, y int) {
	t.originX = x
	t.originY = y
}

// Table returns the underlying table
func (t *DataTable[R]) Table() *datatable.Table[R] { return t.table }

// Keys returns the key bindings
func (t *DataTable[R]) Keys() TableKeyMap { return t.keys }

// Searching reports whether the search box has the keyboard
func (t *DataTable[R]) Searching() bool { return t.searching }

// Cursor returns the index of the highlighted row on the page
func (t *DataTable[R]) Cursor() int { return t.cursor }

// SetCursor moves the highlight to index, clamped to the page
func (t *DataTable[R]) SetCursor(index int) {
	t.cursor = clamp(index, 0, len(t.table.PageRows())-1)
}

// CursorRow returns the highlighted row
func (t *DataTable[R]) CursorRow() (R, bool) {
	rows := t.table.PageRows()
	if len(rows) == 0 {
		var zero R
		return zero, false
	}
	return rows[clamp(t.cursor, 0, len(rows)-1)], true
}

// Focus implements Widget
func (t *DataTable[R]) Focus() tea.Cmd {
	t.focused = true
	return nil
}

// Blur implements Widget
func (t *DataTable[R]) Blur() {
	t.focused = false
	t.searching = false
	t.search.Blur()
}

// HelpView renders the key bindings
func (t *DataTable[R]) HelpView(full bool) string {
	t.help.ShowAll = full
	t.help.Width = t.renderWidth()
	return t.help.View(t.keys)
}

// Init implements tea.Model
func (t *DataTable[R]) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (t *DataTable[R]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !t.Focused() {
		return t, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if t.searching {
			return t, t.updateSearch(msg)
		}
		return t, t.handleKey(msg)

	case tea.MouseMsg:
		return t, t.handleMouse(msg)
	}

	return t, nil
}

func (t *DataTable[R]) handleKey(msg tea.KeyMsg) tea.Cmd {
	rows := t.table.PageRows()
	cols := t.table.Columns()

	switch {
	case key.Matches(msg, t.keys.Up):
		t.SetCursor(t.cursor - 1)

	case key.Matches(msg, t.keys.Down):
		t.SetCursor(t.cursor + 1)

	case key.Matches(msg, t.keys.PrevColumn):
		t.column = clamp(t.column-1, 0, len(cols)-1)

	case key.Matches(msg, t.keys.NextColumn):
		t.column = clamp(t.column+1, 0, len(cols)-1)

	case key.Matches(msg, t.keys.Sort):
		if t.column < len(cols) {
			t.table.RequestSort(cols[t.column])
		}

	case key.Matches(msg, t.keys.Select):
		if row, ok := t.CursorRow(); ok {
			t.table.ToggleRowSelection(row)
		}

	case key.Matches(msg, t.keys.SelectAll):
		t.table.ToggleSelectAll()

	case key.Matches(msg, t.keys.Clear):
		t.table.ClearSelection()

	case key.Matches(msg, t.keys.PrevPage):
		t.table.GoToPage(t.table.CurrentPage() - 1)

	case key.Matches(msg, t.keys.NextPage):
		t.table.GoToPage(t.table.CurrentPage() + 1)

	case key.Matches(msg, t.keys.Search):
		t.searching = true
		return t.search.Focus()

	case key.Matches(msg, t.keys.Open):
		if len(rows) > 0 {
			row, _ := t.CursorRow()
			t.table.RowClick(row, datatable.RegionBody)
		}

	case key.Matches(msg, t.keys.Action):
		actions := t.table.Actions()
		n := int(msg.String()[0] - '1')
		if row, ok := t.CursorRow(); ok && n < len(actions) {
			t.table.ActionClick(actions[n], row)
		}
	}

	return nil
}

// updateSearch feeds a key to the search box. Enter keeps the term, Esc
// clears it; both hand the keyboard back to the table.
func (t *DataTable[R]) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		t.searching = false
		t.search.Blur()
		return nil
	case tea.KeyEsc:
		t.searching = false
		t.search.Blur()
		if t.search.Value() != "" {
			t.search.SetValue("")
			t.table.SearchChange("")
			t.cursor = 0
		}
		return nil
	}

	prev := t.search.Value()
	var cmd tea.Cmd
	t.search, cmd = t.search.Update(msg)
	if v := t.search.Value(); v != prev {
		t.table.SearchChange(v)
		t.cursor = 0
	}
	return cmd
}

func (t *DataTable[R]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		t.SetCursor(t.cursor - 1)
	case msg.Button == tea.MouseButtonWheelDown:
		t.SetCursor(t.cursor + 1)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease:
		return t.Click(msg.X-t.originX, msg.Y-t.originY)
	}
	return nil
}

// Click handles a left click at x, y relative to the origin. A click on a
// row's checkbox or actions is reported to the table with that region, so
// it never counts as a row click.
func (t *DataTable[R]) Click(x, y int) tea.Cmd {
	if x < 0 || y < 0 {
		return nil
	}

	lay := t.layout(t.renderWidth())
	rows := t.table.PageRows()
	cols := t.table.Columns()

	switch {
	case y == searchLine:
		t.searching = true
		return t.search.Focus()

	case y == headerLine:
		if lay.checkbox.contains(x) {
			t.table.ToggleSelectAll()
			return nil
		}
		for i, s := range lay.columns {
			if s.contains(x) {
				t.column = i
				t.table.RequestSort(cols[i])
				return nil
			}
		}

	case y >= firstRowLine && y < firstRowLine+len(rows):
		idx := y - firstRowLine
		row := rows[idx]
		t.cursor = idx

		region := lay.region(x)
		switch region {
		case datatable.RegionCheckbox:
			t.table.ToggleRowSelection(row)
		case datatable.RegionActions:
			if i := lay.actionAt(x); i >= 0 {
				t.table.ActionClick(t.table.Actions()[i], row)
			}
		}
		t.table.RowClick(row, region)

	case y == lay.footerLine:
		for _, link := range t.pageLinks() {
			if link.span.contains(x) {
				t.table.GoToPage(link.page)
				return nil
			}
		}
	}

	return nil
}

func (t *DataTable[R]) renderWidth() int {
	if t.width > 0 {
		return t.width
	}
	return 80
}

func (t *DataTable[R]) headerLabel(col datatable.Column[R]) string {
	if !col.Sortable {
		return col.Label
	}
	icon := themes.IconSortNone
	if s, ok := t.table.ActiveSort(); ok && s.Column == col.Key {
		icon = themes.IconSortAsc
		if s.Direction == datatable.Desc {
			icon = themes.IconSortDesc
		}
	}
	return col.Label + " " + icon
}

func (t *DataTable[R]) actionLabels() []string {
	actions := t.table.Actions()
	labels := make([]string, len(actions))
	for i, a := range actions {
		label := a.Label
		if a.Icon != "" {
			label = a.Icon + " " + label
		}
		labels[i] = fmt.Sprintf("%d %s", i+1, label)
	}
	return labels
}

func (t *DataTable[R]) layout(width int) tableLayout {
	cols := t.table.Columns()
	rows := t.table.PageRows()

	lay := tableLayout{widths: make([]int, len(cols))}
	for i, col := range cols {
		if col.Width > 0 {
			lay.widths[i] = col.Width
			continue
		}
		w := Width(t.headerLabel(col))
		for _, row := range rows {
			cw := Width(t.table.CellText(row, col))
			if col.Status {
				cw += 2
			}
			w = max(w, cw)
		}
		lay.widths[i] = min(w, maxColumnWidth)
	}

	labels := t.actionLabels()
	if len(labels) > 0 {
		total := len(labels) - 1
		for _, l := range labels {
			total += Width(l)
		}
		lay.actionsWidth = max(total, Width(t.I18n().T("table.actions")))
	}

	avail := width - checkboxWidth - len(cols)
	if lay.actionsWidth > 0 {
		avail -= lay.actionsWidth + 1
	}
	shrink(lay.widths, avail)

	lay.checkbox = span{0, checkboxWidth}
	x := checkboxWidth + 1
	lay.columns = make([]span, len(cols))
	for i, w := range lay.widths {
		lay.columns[i] = span{x, x + w}
		x += w + 1
	}
	if lay.actionsWidth > 0 {
		lay.actions = span{x, x + lay.actionsWidth}
		for _, l := range labels {
			lw := Width(l)
			lay.actionSpans = append(lay.actionSpans, span{x, x + lw})
			x += lw + 1
		}
	}

	lay.footerLine = firstRowLine + max(1, len(rows)) + 1
	return lay
}

// shrink narrows the widest columns until the widths fit avail
func shrink(widths []int, avail int) {
	if len(widths) == 0 {
		return
	}
	total := 0
	for _, w := range widths {
		total += w
	}
	for total > avail {
		idx := 0
		for i, w := range widths {
			if w > widths[idx] {
				idx = i
			}
		}
		if widths[idx] <= minColumnWidth {
			return
		}
		widths[idx]--
		total--
	}
}

func (t *DataTable[R]) pageLinks() []pageLink {
	pages := t.table.TotalPages()
	if pages <= 1 {
		return nil
	}

	current := t.table.CurrentPage()
	links := []pageLink{{label: themes.IconPagePrev, page: current - 1}}
	for _, n := range t.table.PageNumbers() {
		links = append(links, pageLink{label: fmt.Sprint(n), page: n, current: n == current})
	}
	links = append(links, pageLink{label: themes.IconPageNext, page: current + 1})

	x := 0
	for i := range links {
		w := Width(links[i].label) + 2
		links[i].span = span{x, x + w}
		x += w
	}
	return links
}

func position(a datatable.Align) lipgloss.Position {
	switch a {
	case datatable.AlignCenter:
		return lipgloss.Center
	case datatable.AlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

// View implements tea.Model
func (t *DataTable[R]) View() string {
	return t.ViewWidth(t.renderWidth())
}

// ViewWidth renders the table at a specific width
func (t *DataTable[R]) ViewWidth(width int) string {
	if width <= 0 {
		width = t.renderWidth()
	}

	theme := t.Theme()
	tr := t.I18n()
	rows := t.table.PageRows()
	cols := t.table.Columns()
	lay := t.layout(width)
	t.cursor = clamp(t.cursor, 0, len(rows)-1)
	sep := theme.TableBorder.Render(cellSep)

	lines := make([]string, 0, lay.footerLine+1)

	label := theme.SearchLabel
	if t.searching {
		label = theme.HelpKey
	}
	lines = append(lines, label.Render(tr.T("table.search")+": ")+t.search.View())

	// Header
	box := themes.IconBoxEmpty
	switch {
	case t.table.AllSelected():
		box = themes.IconBoxChecked
	case len(t.table.SelectedRows()) > 0:
		box = themes.IconBoxPartial
	}
	header := []string{theme.TableHeader.Render(Fit(box, checkboxWidth, lipgloss.Left))}
	active, sorted := t.table.ActiveSort()
	for i, col := range cols {
		style := theme.TableHeader
		if sorted && active.Column == col.Key {
			style = theme.TableHeaderSorted
		}
		if t.Focused() && i == t.column {
			style = style.Reverse(true)
		}
		header = append(header, style.Render(Fit(t.headerLabel(col), lay.widths[i], position(col.Align))))
	}
	if lay.actionsWidth > 0 {
		header = append(header, theme.TableHeader.Render(Fit(tr.T("table.actions"), lay.actionsWidth, lipgloss.Left)))
	}
	lines = append(lines, strings.Join(header, sep))

	rule := []string{strings.Repeat("─", checkboxWidth)}
	for _, w := range lay.widths {
		rule = append(rule, strings.Repeat("─", w))
	}
	if lay.actionsWidth > 0 {
		rule = append(rule, strings.Repeat("─", lay.actionsWidth))
	}
	ruleLine := theme.TableBorder.Render(strings.Join(rule, "┼"))
	lines = append(lines, ruleLine)

	// Body
	if len(rows) == 0 {
		lines = append(lines, theme.TableEmpty.Render(PadCenter(tr.T("table.empty"), width)))
	}
	labels := t.actionLabels()
	for idx, row := range rows {
		lines = append(lines, t.renderRow(idx, row, lay, labels))
	}

	lines = append(lines, ruleLine)
	lines = append(lines, t.renderFooter())

	return strings.Join(lines, "\n")
}

func (t *DataTable[R]) renderRow(idx int, row R, lay tableLayout, labels []string) string {
	theme := t.Theme()
	cols := t.table.Columns()
	actions := t.table.Actions()

	style := theme.TableRow
	if idx%2 == 1 {
		style = theme.TableRowAlt
	}
	selected := t.table.IsRowSelected(row)
	if selected {
		style = theme.TableRowSelected
	}
	if idx == t.cursor {
		style = theme.TableRowCursor
	}

	box := themes.IconBoxEmpty
	if selected {
		box = themes.IconBoxChecked
	}
	cells := []string{style.Render(Fit(box, checkboxWidth, lipgloss.Left))}

	for i, col := range cols {
		w := lay.widths[i]
		text := t.table.CellText(row, col)
		if col.Status && text != "" {
			badge := theme.Badge(t.table.StatusBadgeClass(text)).Render(Truncate(text, w-2))
			cells = append(cells, badge+style.Render(strings.Repeat(" ", max(0, w-Width(badge)))))
			continue
		}
		cells = append(cells, style.Render(Fit(text, w, position(col.Align))))
	}

	if lay.actionsWidth > 0 {
		var b strings.Builder
		used := 0
		for i, label := range labels {
			if i > 0 {
				b.WriteString(style.Render(" "))
				used++
			}
			b.WriteString(theme.ActionStyle(actions[i].Style).Render(label))
			used += Width(label)
		}
		if gap := lay.actionsWidth - used; gap > 0 {
			b.WriteString(style.Render(strings.Repeat(" ", gap)))
		}
		cells = append(cells, b.String())
	}

	return strings.Join(cells, theme.TableBorder.Render(cellSep))
}

func (t *DataTable[R]) renderFooter() string {
	theme := t.Theme()
	tr := t.I18n()

	var b strings.Builder
	links := t.pageLinks()
	for _, link := range links {
		style := theme.PageLink
		if link.current {
			style = theme.PageCurrent
		}
		b.WriteString(style.Render(link.label))
	}
	if len(links) > 0 {
		b.WriteString("  ")
	}

	b.WriteString(theme.PageSummary.Render(tr.T("table.showing", map[string]any{
		"start": t.table.DisplayStart(),
		"end":   t.table.DisplayEnd(),
		"total": t.table.DisplayTotal(),
	})))

	if n := len(t.table.SelectedRows()); n > 0 {
		b.WriteString("  ")
		b.WriteString(theme.Info.Render(tr.TPlural("table.selected", n)))
	}

	return b.String()
}

package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lmsadmin/internal/config"
	"lmsadmin/internal/datatable"
	"lmsadmin/internal/logger"
	"lmsadmin/internal/storage"
	"lmsadmin/internal/tui/app"
	"lmsadmin/internal/tui/component"
	"lmsadmin/internal/tui/themes"
)

const (
	fetchTimeout  = 10 * time.Second
	actionTimeout = 30 * time.Second

	// defaultWidth is used before the first window size arrives.
	defaultWidth = 80
)

// rowAction describes an action button of a table page. Exactly one of
// run and open is set: run changes records in the store, open only
// returns a command.
type rowAction[R any] struct {
	label   string
	icon    string
	style   string
	audit   logger.AuditAction
	message string
	confirm bool

	run  func(ctx context.Context, store storage.Store, row R) error
	open func(row R) tea.Cmd
}

// pageLoadedMsg carries the result of a fetch back to the page that
// started it.
type pageLoadedMsg[R any] struct {
	target string
	gen    int
	query  datatable.Query
	page   datatable.Page[R]
	err    error
}

func (m pageLoadedMsg[R]) Target() string { return m.target }

// actionDoneMsg reports a finished row action.
type actionDoneMsg struct {
	target string
	text   string
	bulk   bool
	err    error
}

func (m actionDoneMsg) Target() string { return m.target }

// TablePage is a page showing one record type in a data table. Concrete
// pages embed it and call handle from their Update.
type TablePage[R any] struct {
	*BasePage

	resource string
	table    *datatable.Table[R]
	view     *component.DataTable[R]
	ctrl     *datatable.Controller[R]
	log      *logger.Logger

	// name labels a row in status messages; describe fills the detail
	// line when a row is opened.
	name     func(R) string
	describe func(R) string

	// info returns the filter description shown next to the title.
	info func() string

	extraHelp []app.KeyBinding

	detail   string
	armed    string
	queued   []tea.Cmd
	gen      int
	fetching bool
}

func newTablePage[R any](
	id, resource string,
	application *app.App,
	table *datatable.Table[R],
	provider datatable.DataProvider[R],
	name func(R) string,
	actions []rowAction[R],
) *TablePage[R] {
	tr := application.I18n()
	p := &TablePage[R]{
		BasePage: NewBasePage(id, tr.T("tabs."+id), application),
		resource: resource,
		table:    table,
		ctrl:     datatable.NewController(table, provider),
		log:      application.Logger().With("page", id),
		name:     name,
	}

	table.SetItemsPerPage(application.ItemsPerPage())
	table.SetActions(p.bindActions(actions))

	p.view = component.NewDataTable(table).
		WithTheme(p.Theme()).
		WithI18n(tr)
	p.view.SetOrigin(0, app.ContentTop+1)
	p.view.Focus()

	table.OnRowClick(func(row R) {
		if p.describe != nil {
			p.detail = p.describe(row)
		} else {
			p.detail = name(row)
		}
	})
	table.OnSearchChange(func(term string) {
		p.log.Debug("search changed", "term", term)
	})
	table.OnSortChange(func(s datatable.Sort) {
		p.log.Debug("sort requested", "column", s.Column, "direction", s.Direction)
	})
	table.OnPageChange(func(page int) {
		p.log.Debug("page changed", "page", page)
	})
	table.OnSelectionChange(func(rows []R) {
		p.log.Debug("selection changed", "count", len(rows))
	})

	return p
}

func (p *TablePage[R]) bindActions(actions []rowAction[R]) []datatable.Action[R] {
	tr := p.App().I18n()
	bound := make([]datatable.Action[R], len(actions))
	for i, ra := range actions {
		label := tr.T(ra.label)
		bound[i] = datatable.Action[R]{
			Label: label,
			Icon:  ra.icon,
			Style: ra.style,
			Handler: func(row R) {
				p.dispatch(i+1, ra, row)
			},
		}
	}
	return bound
}

// dispatch queues the command of action n for row. A confirmed action
// runs only when it is triggered twice in a row on the same row.
func (p *TablePage[R]) dispatch(n int, ra rowAction[R], row R) {
	if ra.open != nil {
		p.armed = ""
		p.queued = append(p.queued, ra.open(row))
		return
	}

	if ra.confirm {
		token := fmt.Sprintf("%d:%s", n, p.table.Key(row))
		if p.armed != token {
			p.armed = token
			p.queued = append(p.queued, app.Status(p.App().I18n().T("messages.confirm_delete",
				"key", n,
				"name", p.name(row),
			)))
			return
		}
	}
	p.armed = ""
	p.queued = append(p.queued, p.runAction(ra, p.targets(row)))
}

// targets returns the rows an action on row applies to: the whole
// selection when row is part of a selection of several rows.
func (p *TablePage[R]) targets(row R) []R {
	selected := p.table.SelectedRows()
	if len(selected) > 1 && p.table.IsRowSelected(row) {
		return selected
	}
	return []R{row}
}

func (p *TablePage[R]) runAction(ra rowAction[R], rows []R) tea.Cmd {
	store := p.App().Store()
	audit := p.App().Audit()
	tr := p.App().I18n()
	log := p.log
	target, resource := p.ID(), p.resource
	key, name := p.table.Key, p.name

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		for _, row := range rows {
			err := ra.run(ctx, store, row)
			audit.Record(ctx, ra.audit, resource, key(row), err)
			if err != nil {
				log.Error("action failed", "action", ra.audit, "id", key(row), "error", err)
				return actionDoneMsg{
					target: target,
					text:   tr.T("messages.action_failed", "error", err),
					err:    err,
				}
			}
			log.Info("action applied", "action", ra.audit, "id", key(row))
		}

		if len(rows) == 1 {
			return actionDoneMsg{target: target, text: tr.T(ra.message, "name", name(rows[0]))}
		}
		return actionDoneMsg{
			target: target,
			text:   tr.TPlural("messages.bulk_done", len(rows)),
			bulk:   true,
		}
	}
}

// refresh drops any fetch in flight and loads the current page again.
func (p *TablePage[R]) refresh() tea.Cmd {
	p.gen++
	p.ctrl.Invalidate()
	return p.fetch()
}

// fetch starts loading the current page when the table is stale and no
// fetch is running.
func (p *TablePage[R]) fetch() tea.Cmd {
	if p.fetching || !p.ctrl.Stale() {
		return nil
	}
	p.fetching = true

	q := p.ctrl.Query()
	gen := p.gen
	provider := p.ctrl.Provider()
	target := p.ID()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		page, err := provider.FetchPage(ctx, q)
		return pageLoadedMsg[R]{target: target, gen: gen, query: q, page: page, err: err}
	}
}

func (p *TablePage[R]) loaded(msg pageLoadedMsg[R]) tea.Cmd {
	p.fetching = false

	if msg.gen != p.gen || !p.ctrl.Current(msg.query) {
		return p.fetch()
	}
	if msg.err != nil {
		p.log.Error("failed to load page", "page", msg.query.Page, "error", msg.err)
		return app.Fail(p.App().I18n().T("messages.load_failed", "error", msg.err), msg.err)
	}
	if p.ctrl.Apply(msg.query, msg.page) {
		return p.fetch()
	}
	p.view.SetCursor(p.view.Cursor())
	return nil
}

// handle runs the shared message handling of table pages.
func (p *TablePage[R]) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pageLoadedMsg[R]:
		return p.loaded(msg)

	case actionDoneMsg:
		var status tea.Cmd
		if msg.err != nil {
			status = app.Fail(msg.text, msg.err)
		} else {
			status = app.Status(msg.text)
			if msg.bulk {
				p.table.ClearSelection()
			}
		}
		return tea.Batch(status, p.refresh())

	case tea.KeyMsg, tea.MouseMsg:
		_, cmd := p.view.Update(msg)
		cmds := append([]tea.Cmd{cmd}, p.queued...)
		p.queued = nil
		cmds = append(cmds, p.fetch())
		return tea.Batch(cmds...)
	}
	return nil
}

// Init loads the page each time it is shown.
func (p *TablePage[R]) Init() tea.Cmd {
	return p.refresh()
}

// Update implements tea.Model.
func (p *TablePage[R]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return p, p.handle(msg)
}

// CapturingInput reports whether the search box holds the keyboard.
func (p *TablePage[R]) CapturingInput() bool {
	return p.view.Searching()
}

// Reconfigure applies a reloaded theme and page size.
func (p *TablePage[R]) Reconfigure(cfg *config.Config, theme *themes.Theme) tea.Cmd {
	p.BasePage.Reconfigure(cfg, theme)
	p.view.WithTheme(theme)

	if n := cfg.Table.ItemsPerPage; n > 0 && n != p.table.ItemsPerPage() {
		p.table.SetItemsPerPage(n)
		p.table.SetCurrentPage(1)
		return p.refresh()
	}
	return nil
}

// SetSize updates the page and table dimensions.
func (p *TablePage[R]) SetSize(width, height int) {
	p.BasePage.SetSize(width, height)
	p.view.SetSize(width, max(0, height-1))
}

// Table returns the table of the page.
func (p *TablePage[R]) Table() *datatable.Table[R] {
	return p.table
}

// View implements tea.Model.
func (p *TablePage[R]) View() string {
	theme := p.Theme()
	width := p.ContentWidth()
	if width == 0 {
		width = defaultWidth
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(p.Title()))
	if p.info != nil {
		if info := p.info(); info != "" {
			b.WriteString("  ")
			b.WriteString(theme.Info.Render(info))
		}
	}
	b.WriteString("\n")
	b.WriteString(p.view.ViewWidth(width))
	if p.detail != "" {
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render(component.Truncate(p.detail, width)))
	}
	return b.String()
}

// ShortHelp implements app.Page.
func (p *TablePage[R]) ShortHelp() []app.KeyBinding {
	bindings := make([]app.KeyBinding, 0, 8)
	for _, b := range p.view.Keys().ShortHelp() {
		bindings = append(bindings, app.KeyBinding{Key: b.Help().Key, Help: b.Help().Desc})
	}
	return append(bindings, p.extraHelp...)
}

// FullHelp implements app.Page.
func (p *TablePage[R]) FullHelp() [][]app.KeyBinding {
	var groups [][]app.KeyBinding
	for _, group := range p.view.Keys().FullHelp() {
		bindings := make([]app.KeyBinding, len(group))
		for i, b := range group {
			bindings[i] = app.KeyBinding{Key: b.Help().Key, Help: b.Help().Desc}
		}
		groups = append(groups, bindings)
	}
	if len(p.extraHelp) > 0 {
		groups = append(groups, p.extraHelp)
	}
	return groups
}

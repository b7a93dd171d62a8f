package pages

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"lmsadmin/internal/domain"
	"lmsadmin/internal/logger"
	"lmsadmin/internal/storage"
	"lmsadmin/internal/tables"
	"lmsadmin/internal/tui/app"
	"lmsadmin/internal/tui/themes"
)

// statusFilters is the cycle of the request status filter; the empty
// status shows every request.
var statusFilters = []domain.RequestStatus{
	"",
	domain.RequestStatusPending,
	domain.RequestStatusAccepted,
	domain.RequestStatusRejected,
}

// RequestsPage lists student enrollment requests.
type RequestsPage struct {
	*TablePage[*domain.Student]

	provider *storage.Provider[*domain.Student]
	filter   int
}

// NewRequestsPage creates the requests page.
func NewRequestsPage(application *app.App) *RequestsPage {
	tr := application.I18n()
	provider := storage.NewProvider[*domain.Student](application.Store().Students())

	p := &RequestsPage{provider: provider}
	p.TablePage = newTablePage(PageRequests, tables.Students, application,
		tables.StudentTable(tr), provider, studentName,
		[]rowAction[*domain.Student]{
			{
				label: "actions.approve", icon: themes.IconCheck, style: "success",
				audit: logger.AuditActionApprove, message: "messages.approved",
				run: setStatus(domain.RequestStatusAccepted),
			},
			{
				label: "actions.reject", icon: themes.IconCross, style: "warning",
				audit: logger.AuditActionReject, message: "messages.rejected",
				run: setStatus(domain.RequestStatusRejected),
			},
			{
				label: "actions.delete", icon: themes.IconDelete, style: "danger",
				audit: logger.AuditActionDelete, message: "messages.deleted", confirm: true,
				run: func(ctx context.Context, store storage.Store, s *domain.Student) error {
					return store.Students().Delete(ctx, s.ID)
				},
			},
		})
	p.describe = func(s *domain.Student) string {
		return s.Name.Full() + " · " + s.Email + " · " + s.Phone
	}
	p.info = p.filterInfo
	p.extraHelp = []app.KeyBinding{{Key: "f", Help: tr.T("help.filter")}}
	return p
}

func studentName(s *domain.Student) string { return s.Name.Full() }

func setStatus(status domain.RequestStatus) func(context.Context, storage.Store, *domain.Student) error {
	return func(ctx context.Context, store storage.Store, s *domain.Student) error {
		return store.Students().UpdateStatus(ctx, s.ID, status)
	}
}

// Status returns the active status filter; empty when showing all.
func (p *RequestsPage) Status() domain.RequestStatus {
	return statusFilters[p.filter]
}

// cycleStatus moves to the next status filter and reloads from page one.
// The selection is dropped so actions never reach rows the filter hides.
func (p *RequestsPage) cycleStatus() tea.Cmd {
	p.filter = (p.filter + 1) % len(statusFilters)

	f := p.provider.Filter()
	f.Status = string(p.Status())
	p.provider.SetFilter(f)

	p.table.ClearSelection()
	p.table.SetCurrentPage(1)
	p.log.Debug("status filter changed", "status", f.Status)
	return p.refresh()
}

func (p *RequestsPage) filterInfo() string {
	tr := p.App().I18n()
	if p.Status() == "" {
		return tr.T("messages.status_filter", "status", tr.T("common.all"))
	}
	return tr.T("messages.status_filter", "status", p.Status().Label())
}

// Update implements tea.Model.
func (p *RequestsPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !p.CapturingInput() && key.String() == "f" {
		return p, p.cycleStatus()
	}
	return p, p.handle(msg)
}

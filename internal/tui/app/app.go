// Package app is the full-screen console of lmsadmin: a tab per record
// type of the learning platform, a status line and a help bar.
//
//	a := app.New(app.WithConfig(cfg), app.WithStore(store))
//	a.Router().RegisterPages(pages.AllPages(a)...)
//	_, err := tea.NewProgram(a, tea.WithAltScreen()).Run()
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"lmsadmin/internal/config"
	"lmsadmin/internal/logger"
	"lmsadmin/internal/storage"
	"lmsadmin/internal/tui/i18n"
	"lmsadmin/internal/tui/themes"
)

// App is the root tea.Model. It owns the global keys, the chrome around
// the pages and the reaction to configuration reloads.
type App struct {
	config *config.Config
	theme  *themes.Theme
	i18n   *i18n.I18n

	store storage.Store
	log   *logger.Logger
	audit *logger.AuditLogger

	state  *State
	router *Router

	width, height int

	ready    bool // a window size has arrived
	fullHelp bool
	quitting bool
}

// Option configures the App.
type Option func(*App)

func WithConfig(cfg *config.Config) Option { return func(a *App) { a.config = cfg } }

func WithStore(store storage.Store) Option { return func(a *App) { a.store = store } }

func WithLogger(l *logger.Logger) Option { return func(a *App) { a.log = l } }

// WithAudit sets the trail row actions are recorded to.
func WithAudit(audit *logger.AuditLogger) Option { return func(a *App) { a.audit = audit } }

func WithTheme(theme *themes.Theme) Option { return func(a *App) { a.theme = theme } }

func WithI18n(tr *i18n.I18n) Option { return func(a *App) { a.i18n = tr } }

// New creates an App. Unset options fall back to the global theme and
// translations, the default configuration and a discarding logger.
func New(opts ...Option) *App {
	a := &App{theme: themes.Global().Active(), i18n: i18n.Global()}
	for _, opt := range opts {
		opt(a)
	}
	if a.config == nil {
		a.config = config.Default()
	}
	if a.log == nil {
		a.log = logger.Discard()
	}
	a.log = a.log.With("component", "tui")
	a.state = NewState(a.config)
	a.router = NewRouter()
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.router.Init(), a.state.LoadStats(a.store))
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := a.globalKey(msg.String()); handled {
			return a, cmd
		}

	case tea.MouseMsg:
		if msg.Y < ContentTop {
			if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
				return a, a.router.NavigateToIndex(a.tabAt(msg.X))
			}
			return a, nil
		}

	case tea.WindowSizeMsg:
		a.width, a.height, a.ready = msg.Width, msg.Height, true
		a.router.SetSize(msg.Width, contentHeight(msg.Height))
		return a, nil

	case StateMsg:
		a.state.HandleMsg(msg)
		if msg.Type == StateMsgConfigReloaded {
			return a, a.reconfigure(msg.Config)
		}
		if msg.Type == StateMsgError {
			a.log.Warn("tui error", "status", a.state.Status)
		}

	case NavigateMsg:
		return a, a.router.NavigateTo(msg.PageID)
	}

	_, cmd := a.router.Update(msg)
	return a, cmd
}

// globalKey applies the keys that work on every page. ctrl+c always
// quits; the others yield to a page that captures input.
func (a *App) globalKey(key string) (tea.Cmd, bool) {
	if key != "ctrl+c" && a.router.Capturing() {
		return nil, false
	}
	switch key {
	case "ctrl+c", "q":
		a.quitting = true
		return tea.Quit, true
	case "?":
		a.fullHelp = !a.fullHelp
		return nil, true
	}
	return nil, false
}

// reconfigure applies a reloaded configuration to the theme and pages.
func (a *App) reconfigure(cfg *config.Config) tea.Cmd {
	if cfg == nil {
		return nil
	}
	a.config = cfg

	if err := themes.Global().SetActive(themes.PresetName(cfg.UI.Theme)); err != nil {
		a.log.Warn("unknown theme in reloaded config", "theme", cfg.UI.Theme)
	} else {
		a.theme = themes.Global().Active()
	}

	a.log.Info("configuration reloaded", "theme", cfg.UI.Theme, "items_per_page", cfg.Table.ItemsPerPage)
	return tea.Batch(
		a.router.Reconfigure(cfg, a.theme),
		Status(a.i18n.T("messages.config_reloaded")),
	)
}

// View implements tea.Model.
func (a *App) View() string {
	switch {
	case a.quitting:
		return ""
	case !a.ready:
		return a.i18n.T("common.loading")
	}

	page := a.router.CurrentPage()
	if page == nil {
		return ""
	}
	view := a.frame(page)
	if a.fullHelp {
		view += "\n" + a.fullHelpView(page)
	}
	return view
}

func (a *App) Router() *Router { return a.router }
func (a *App) State() *State { return a.state }
func (a *App) Config() *config.Config { return a.config }
func (a *App) Theme() *themes.Theme { return a.theme }
func (a *App) I18n() *i18n.I18n { return a.i18n }
func (a *App) Logger() *logger.Logger { return a.log }

// Store returns the record store. It may be nil in tests.
func (a *App) Store() storage.Store { return a.store }

// Audit returns the audit trail. A nil trail records nothing.
func (a *App) Audit() *logger.AuditLogger { return a.audit }

// ItemsPerPage returns the table page size of the active configuration.
func (a *App) ItemsPerPage() int { return a.config.Table.ItemsPerPage }

// Quitting reports whether the app is shutting down.
func (a *App) Quitting() bool { return a.quitting }

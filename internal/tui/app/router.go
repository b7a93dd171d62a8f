package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"lmsadmin/internal/config"
	"lmsadmin/internal/tui/themes"
)

// Page is one tab of the console.
type Page interface {
	tea.Model
	ID() string
	Title() string

	// ShortHelp feeds the help bar, FullHelp the ? overlay.
	ShortHelp() []KeyBinding
	FullHelp() [][]KeyBinding

	// SetSize gives the page the area between the tab bar and the
	// status lines.
	SetSize(width, height int)
}

// InputCapturer is implemented by pages that can hold the keyboard, such
// as a page with an open search box. Global keys are not applied while
// a page captures input.
type InputCapturer interface {
	CapturingInput() bool
}

// Reconfigurable is implemented by pages that follow a reloaded
// configuration.
type Reconfigurable interface {
	Reconfigure(cfg *config.Config, theme *themes.Theme) tea.Cmd
}

// KeyBinding is a key and what it does, for help display.
type KeyBinding struct {
	Key  string
	Help string
}

// Router holds the pages in tab order and which one is showing.
type Router struct {
	pages   []Page
	current int
}

func NewRouter() *Router {
	return &Router{}
}

func (r *Router) RegisterPage(page Page) {
	r.pages = append(r.pages, page)
}

func (r *Router) RegisterPages(pages ...Page) {
	r.pages = append(r.pages, pages...)
}

func (r *Router) Pages() []Page { return r.pages }

// CurrentPage returns the showing page, or nil before any is registered.
func (r *Router) CurrentPage() Page {
	if r.current < len(r.pages) {
		return r.pages[r.current]
	}
	return nil
}

func (r *Router) CurrentIndex() int { return r.current }

// Page looks a page up by id. The index is -1 when there is none.
func (r *Router) Page(id string) (Page, int) {
	for i, page := range r.pages {
		if page.ID() == id {
			return page, i
		}
	}
	return nil, -1
}

// NavigateTo shows the page id; unknown ids are ignored.
func (r *Router) NavigateTo(id string) tea.Cmd {
	_, i := r.Page(id)
	return r.NavigateToIndex(i)
}

// NavigateToIndex shows page index and returns its Init command.
func (r *Router) NavigateToIndex(index int) tea.Cmd {
	if index < 0 || index >= len(r.pages) {
		return nil
	}
	r.current = index
	return r.pages[index].Init()
}

// Next and Previous move through the tabs, wrapping at the ends.
func (r *Router) Next() tea.Cmd { return r.step(1) }

func (r *Router) Previous() tea.Cmd { return r.step(-1) }

func (r *Router) step(delta int) tea.Cmd {
	n := len(r.pages)
	if n == 0 {
		return nil
	}
	return r.NavigateToIndex(((r.current+delta)%n + n) % n)
}

// Capturing reports whether the current page holds the keyboard.
func (r *Router) Capturing() bool {
	c, ok := r.CurrentPage().(InputCapturer)
	return ok && c.CapturingInput()
}

// SetSize passes the content area to every page.
func (r *Router) SetSize(width, height int) {
	for _, page := range r.pages {
		page.SetSize(width, height)
	}
}

// Reconfigure passes a reloaded configuration to every page.
func (r *Router) Reconfigure(cfg *config.Config, theme *themes.Theme) tea.Cmd {
	var cmds []tea.Cmd
	for _, page := range r.pages {
		if rp, ok := page.(Reconfigurable); ok {
			cmds = append(cmds, rp.Reconfigure(cfg, theme))
		}
	}
	return tea.Batch(cmds...)
}

// Init implements tea.Model.
func (r *Router) Init() tea.Cmd {
	if page := r.CurrentPage(); page != nil {
		return page.Init()
	}
	return nil
}

// Update implements tea.Model. Targeted messages go to their page,
// everything else to the showing one.
func (r *Router) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if t, ok := msg.(Targeted); ok {
		_, i := r.Page(t.Target())
		return r, r.deliver(i, msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok && !r.Capturing() {
		switch key.String() {
		case "tab":
			return r, r.Next()
		case "shift+tab":
			return r, r.Previous()
		}
	}
	return r, r.deliver(r.current, msg)
}

func (r *Router) deliver(i int, msg tea.Msg) tea.Cmd {
	if i < 0 || i >= len(r.pages) {
		return nil
	}
	updated, cmd := r.pages[i].Update(msg)
	r.pages[i] = updated.(Page)
	return cmd
}

// View renders the showing page without any chrome.
func (r *Router) View() string {
	if page := r.CurrentPage(); page != nil {
		return page.View()
	}
	return ""
}

package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lmsadmin/internal/config"
	"lmsadmin/internal/storage"
)

// queryTimeout bounds every storage call made from the event loop.
const queryTimeout = 10 * time.Second

// State holds the application-wide state.
type State struct {
	// Configuration
	Config *config.Config

	// Record counts for the dashboard
	Stats       storage.Stats
	StatsLoaded bool

	// Status line
	Status    string
	StatusErr bool

	// Loading states
	Loading    bool
	LoadingMsg string
}

// NewState creates a new application state.
func NewState(cfg *config.Config) *State {
	if cfg == nil {
		cfg = config.Default()
	}
	return &State{Config: cfg}
}

// LoadStats reads the record counts from store.
func (s *State) LoadStats(store storage.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		stats, err := store.Stats(ctx)
		if err != nil {
			return StateMsg{Type: StateMsgError, Error: err}
		}
		return StateMsg{Type: StateMsgStatsLoaded, Stats: stats}
	}
}

// HandleMsg processes state-related messages.
func (s *State) HandleMsg(msg StateMsg) {
	switch msg.Type {
	case StateMsgStatsLoaded:
		s.Stats = msg.Stats
		s.StatsLoaded = true
	case StateMsgStatus:
		s.Status = msg.Text
		s.StatusErr = false
	case StateMsgError:
		s.StatusErr = true
		if msg.Text != "" {
			s.Status = msg.Text
		} else if msg.Error != nil {
			s.Status = msg.Error.Error()
		}
	case StateMsgConfigReloaded:
		if msg.Config != nil {
			s.Config = msg.Config
		}
	case StateMsgLoading:
		s.Loading = true
		s.LoadingMsg = msg.Text
	case StateMsgLoadingDone:
		s.Loading = false
		s.LoadingMsg = ""
	}
}

// StateMsgType identifies the type of state message.
type StateMsgType int

const (
	StateMsgStatsLoaded StateMsgType = iota
	StateMsgStatus
	StateMsgError
	StateMsgConfigReloaded
	StateMsgLoading
	StateMsgLoadingDone
)

// StateMsg carries state updates.
type StateMsg struct {
	Type StateMsgType

	// Status line text, or the loading message
	Text string

	Stats  storage.Stats
	Config *config.Config
	Error  error
}

// Targeted is implemented by messages meant for one page. The router
// delivers them to that page whether or not it is showing.
type Targeted interface {
	Target() string
}

// NavigateMsg requests navigation to a page.
type NavigateMsg struct {
	PageID string
}

// Navigate returns a command to navigate to a page.
func Navigate(pageID string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{PageID: pageID}
	}
}

// Status returns a command that shows text on the status line.
func Status(text string) tea.Cmd {
	return func() tea.Msg {
		return StateMsg{Type: StateMsgStatus, Text: text}
	}
}

// Fail returns a command that shows text as an error on the status line.
func Fail(text string, err error) tea.Cmd {
	return func() tea.Msg {
		return StateMsg{Type: StateMsgError, Text: text, Error: err}
	}
}

// ConfigReloaded wraps a reloaded configuration for tea.Program.Send.
func ConfigReloaded(cfg *config.Config) tea.Msg {
	return StateMsg{Type: StateMsgConfigReloaded, Config: cfg}
}

package component

import (
	"github.com/charmbracelet/bubbles/key"

	"lmsadmin/internal/tui/i18n"
)

// TableKeyMap holds the key bindings of a DataTable
type TableKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevColumn key.Binding
	NextColumn key.Binding
	Sort       key.Binding
	Select     key.Binding
	SelectAll  key.Binding
	Clear      key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Search     key.Binding
	Open       key.Binding
	Action     key.Binding
}

// NewTableKeyMap builds the bindings with help text from tr
func NewTableKeyMap(tr *i18n.I18n) TableKeyMap {
	return TableKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", tr.T("help.up"))),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", tr.T("help.down"))),
		PrevColumn: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", tr.T("help.prev_column"))),
		NextColumn: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", tr.T("help.next_column"))),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", tr.T("help.sort"))),
		Select:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", tr.T("help.select"))),
		SelectAll:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", tr.T("help.select_all"))),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", tr.T("help.clear"))),
		PrevPage:   key.NewBinding(key.WithKeys("pgup", "p"), key.WithHelp("p", tr.T("help.prev_page"))),
		NextPage:   key.NewBinding(key.WithKeys("pgdown", "n"), key.WithHelp("n", tr.T("help.next_page"))),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", tr.T("help.search"))),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", tr.T("help.open"))),
		Action:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", tr.T("help.action"))),
	}
}

// ShortHelp implements help.KeyMap
func (k TableKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Sort, k.Search, k.Action}
}

// FullHelp implements help.KeyMap
func (k TableKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevColumn, k.NextColumn},
		{k.Select, k.SelectAll, k.Clear, k.Open},
		{k.Sort, k.PrevPage, k.NextPage, k.Search, k.Action},
	}
}

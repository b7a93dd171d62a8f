package datatable

import "fmt"

// Align is the horizontal alignment of a column.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// String returns the alignment name.
func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Column describes one column of a table over rows of type R.
type Column[R any] struct {
	// Key identifies the column in sort intents. Unique within a column set.
	Key   string
	Label string

	Sortable bool
	Align    Align

	// Width is a display width hint in cells; 0 lets the renderer decide.
	Width int

	// Value reads the cell value from a row.
	Value func(R) any

	// Render, when set, replaces the default string conversion of Value.
	Render func(R) string

	// Status marks the column as holding status labels drawn as badges.
	Status bool
}

// CellValue returns the value of col for row, or nil if the column has no
// accessor.
func CellValue[R any](row R, col Column[R]) any {
	if col.Value == nil {
		return nil
	}
	return col.Value(row)
}

// CellText returns the display text of col for row: the Render result
// when set, otherwise the value formatted with fmt. A missing value is
// empty.
func CellText[R any](row R, col Column[R]) string {
	if col.Render != nil {
		return col.Render(row)
	}
	switch v := CellValue(row, col).(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Action is an operation that can be invoked against a single row.
type Action[R any] struct {
	Label string
	Icon  string
	Style string

	// Handler must not panic; the table does not recover.
	Handler func(R)
}

// ActionEvent is emitted when an action is clicked.
type ActionEvent[R any] struct {
	Action Action[R]
	Row    R
}

// Region identifies where inside a row a click landed.
type Region int

const (
	RegionBody Region = iota
	RegionCheckbox
	RegionActions
)

// Interactive reports whether the region hosts its own control.
func (r Region) Interactive() bool {
	return r == RegionCheckbox || r == RegionActions
}

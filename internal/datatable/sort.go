package datatable

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// Sort is a sort intent: the column key and direction the user asked for.
type Sort struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// Sorter tracks the active sort column. It starts with no column active
// and can never return to that state once a sort has been requested.
type Sorter struct {
	active Sort
	set    bool
}

// Active returns the current sort intent and whether one exists.
func (s *Sorter) Active() (Sort, bool) {
	return s.active, s.set
}

// Request applies a header click on a column with the given key. Requests
// on non-sortable columns are ignored and report false. Requesting the
// active column flips its direction; any other column becomes active in
// ascending order.
func (s *Sorter) Request(key string, sortable bool) (Sort, bool) {
	if !sortable {
		return Sort{}, false
	}
	if s.set && s.active.Column == key {
		s.active.Direction = s.active.Direction.Flip()
	} else {
		s.active = Sort{Column: key, Direction: Asc}
		s.set = true
	}
	return s.active, true
}

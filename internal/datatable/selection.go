package datatable

// Key extracts a stable identity from a row.
type Key[R any] func(R) string

// Selection tracks selected rows by identity key. Iteration order is the
// order in which rows were first selected.
type Selection[R any] struct {
	key   Key[R]
	order []string
	rows  map[string]R
}

// NewSelection creates an empty selection keyed by key.
func NewSelection[R any](key Key[R]) *Selection[R] {
	return &Selection[R]{
		key:  key,
		rows: make(map[string]R),
	}
}

// Contains reports whether row is selected.
func (s *Selection[R]) Contains(row R) bool {
	_, ok := s.rows[s.key(row)]
	return ok
}

// Len returns the number of selected rows.
func (s *Selection[R]) Len() int {
	return len(s.order)
}

// Toggle removes row if it is selected and adds it otherwise.
func (s *Selection[R]) Toggle(row R) {
	k := s.key(row)
	if _, ok := s.rows[k]; ok {
		s.remove(k)
		return
	}
	s.add(k, row)
}

// AllSelected reports whether data is non-empty and every row of data is
// selected. Rows selected outside data do not count.
func (s *Selection[R]) AllSelected(data []R) bool {
	if len(data) == 0 {
		return false
	}
	for _, row := range data {
		if !s.Contains(row) {
			return false
		}
	}
	return true
}

// ToggleAll clears the selection when every row of data is selected and
// otherwise adds every row of data. Previously selected rows that are not
// in data are kept when adding. It reports whether anything was done; an
// empty data set is a no-op.
func (s *Selection[R]) ToggleAll(data []R) bool {
	if len(data) == 0 {
		return false
	}
	if s.AllSelected(data) {
		s.Clear()
		return true
	}
	for _, row := range data {
		k := s.key(row)
		if _, ok := s.rows[k]; !ok {
			s.add(k, row)
		}
	}
	return true
}

// Refresh replaces the stored value of every selected row that appears
// in data. Membership and order do not change.
func (s *Selection[R]) Refresh(data []R) {
	for _, row := range data {
		k := s.key(row)
		if _, ok := s.rows[k]; ok {
			s.rows[k] = row
		}
	}
}

// Clear removes every row.
func (s *Selection[R]) Clear() {
	s.order = nil
	s.rows = make(map[string]R)
}

// Rows returns the selected rows in selection order.
func (s *Selection[R]) Rows() []R {
	out := make([]R, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.rows[k])
	}
	return out
}

func (s *Selection[R]) add(k string, row R) {
	s.order = append(s.order, k)
	s.rows[k] = row
}

func (s *Selection[R]) remove(k string) {
	delete(s.rows, k)
	for i, existing := range s.order {
		if existing == k {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			return
		}
	}
}

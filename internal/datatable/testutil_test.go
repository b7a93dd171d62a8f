package datatable

import (
	"fmt"
	"time"
)

type row struct {
	ID     string
	Name   string
	Age    int
	Joined time.Time
	Status string
}

func rowKey(r row) string { return r.ID }

func makeRows(n int) []row {
	rows := make([]row, n)
	for i := range rows {
		rows[i] = row{ID: fmt.Sprintf("r%02d", i), Name: fmt.Sprintf("name %02d", i), Age: 20 + i%7}
	}
	return rows
}

var (
	nameColumn = Column[row]{Key: "name", Label: "Name", Sortable: true, Value: func(r row) any { return r.Name }}
	ageColumn  = Column[row]{Key: "age", Label: "Age", Sortable: true, Align: AlignRight, Value: func(r row) any { return r.Age }}
	noteColumn = Column[row]{Key: "note", Label: "Note"}
)

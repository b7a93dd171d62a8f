package output

import (
	"bytes"
	"strings"
	"testing"

	"lmsadmin/internal/datatable"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
		{"quiet", FormatQuiet},
		{"q", FormatQuiet},
		{"table", FormatTable},
		{"", FormatTable},
		{"unknown", FormatTable},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func render(t *testing.T, format Format, data any) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewWriter(format).WithOutput(&buf).Write(data); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return buf.String()
}

func TestWriter_Table(t *testing.T) {
	table := NewTable("name", "points").
		AddRow("Ada", "5").
		AddRow("Grace Hopper", "12")
	table.Align = []datatable.Align{datatable.AlignLeft, datatable.AlignRight}

	got := render(t, FormatTable, table)
	want := "" +
		"NAME          POINTS\n" +
		"Ada                5\n" +
		"Grace Hopper      12\n"
	if got != want {
		t.Errorf("unexpected table:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriter_TableWideCharacters(t *testing.T) {
	table := NewTable("name", "status").
		AddRow("سارة", "pending").
		AddRow("田中", "ok")

	lines := strings.Split(strings.TrimSpace(render(t, FormatTable, table)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	// 田中 takes four cells, so the second column starts at the same
	// offset on every line.
	if !strings.HasPrefix(lines[2], "田中  ok") {
		t.Errorf("unexpected padding of wide characters: %q", lines[2])
	}
	if !strings.HasPrefix(lines[0], "NAME  STATUS") {
		t.Errorf("unexpected header: %q", lines[0])
	}
}

func TestWriter_TableFooter(t *testing.T) {
	table := NewTable("id").AddRow("1")
	table.Footer = "Showing 1–1 of 1"

	got := render(t, FormatTable, table)
	if !strings.HasSuffix(got, "\nShowing 1–1 of 1\n") {
		t.Errorf("expected the footer at the end, got %q", got)
	}
}

func TestWriter_JSON(t *testing.T) {
	got := render(t, FormatJSON, map[string]any{"id": "s-1"})
	if !strings.Contains(got, `"id": "s-1"`) {
		t.Errorf("unexpected JSON %q", got)
	}
}

func TestWriter_YAML(t *testing.T) {
	got := render(t, FormatYAML, map[string]any{"id": "s-1"})
	if got != "id: s-1\n" {
		t.Errorf("unexpected YAML %q", got)
	}
}

type keys []string

func (k keys) Keys() []string { return k }

func TestWriter_Quiet(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"keyed", keys{"a", "b"}, "a\nb\n"},
		{"strings", []string{"c"}, "c\n"},
		{"fallback", map[string]int{"n": 1}, "{\n  \"n\": 1\n}\n"},
	}
	for _, tt := range tests {
		if got := render(t, FormatQuiet, tt.data); got != tt.want {
			t.Errorf("%s: unexpected quiet output %q", tt.name, got)
		}
	}
}

type course struct {
	title string
	price float64
}

func TestFromTable(t *testing.T) {
	dt := datatable.New[course](func(c course) string { return c.title }).
		WithColumns(
			datatable.Column[course]{Key: "title", Label: "Title", Value: func(c course) any { return c.title }},
			datatable.Column[course]{
				Key: "price", Label: "Price", Align: datatable.AlignRight,
				Value: func(c course) any { return c.price },
			},
		)
	dt.SetData([]course{{"Go", 10}, {"SQL", 7.5}})

	table := FromTable(dt, "footer")
	if len(table.Headers) != 2 || table.Headers[1] != "Price" {
		t.Fatalf("unexpected headers %v", table.Headers)
	}
	if table.Align[1] != datatable.AlignRight {
		t.Error("expected the column alignment to carry over")
	}
	if len(table.Rows) != 2 || table.Rows[1][0] != "SQL" || table.Rows[1][1] != "7.5" {
		t.Errorf("unexpected rows %v", table.Rows)
	}
	if table.Footer != "footer" {
		t.Errorf("unexpected footer %q", table.Footer)
	}
}

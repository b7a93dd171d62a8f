// Package output writes command results as aligned tables, JSON, YAML or
// bare keys, selected with the global -o flag.
//
// Tables are padded by display width, so columns holding Arabic or
// wide characters still line up.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"lmsadmin/internal/datatable"
)

// columnGap separates table columns.
const columnGap = "  "

// Format is an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatQuiet Format = "quiet"
)

// ParseFormat maps a flag value to a Format; unknown values give
// FormatTable.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	case "quiet", "q":
		return FormatQuiet
	}
	return FormatTable
}

// Keyed is implemented by results that print one key per line in quiet
// mode.
type Keyed interface {
	Keys() []string
}

// Writer writes results in one format.
type Writer struct {
	format Format
	out    io.Writer
	err    io.Writer
	header *lipgloss.Style
}

// NewWriter returns a Writer for format on stdout and stderr.
func NewWriter(format Format) *Writer {
	return &Writer{format: format, out: os.Stdout, err: os.Stderr}
}

// WithOutput redirects results.
func (w *Writer) WithOutput(out io.Writer) *Writer {
	w.out = out
	return w
}

// WithError redirects warnings.
func (w *Writer) WithError(err io.Writer) *Writer {
	w.err = err
	return w
}

// WithHeaderStyle styles the header line of tables.
func (w *Writer) WithHeaderStyle(style lipgloss.Style) *Writer {
	w.header = &style
	return w
}

// Format returns the format of w.
func (w *Writer) Format() Format {
	return w.format
}

// Write prints data in the format of w. In table format, values other
// than *Table and strings are printed as JSON; in quiet format, values
// that are neither keys nor Keyed are too.
func (w *Writer) Write(data any) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	case FormatQuiet:
		if keys, ok := quietKeys(data); ok {
			return w.lines(keys)
		}
	default:
		switch v := data.(type) {
		case *Table:
			return w.table(v)
		case string:
			return w.lines([]string{v})
		}
	}
	return NewWriter(FormatJSON).WithOutput(w.out).Write(data)
}

func quietKeys(data any) ([]string, bool) {
	switch v := data.(type) {
	case string:
		return []string{v}, true
	case []string:
		return v, true
	case Keyed:
		return v.Keys(), true
	case fmt.Stringer:
		return []string{v.String()}, true
	}
	return nil, false
}

func (w *Writer) lines(lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w.out, l); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) table(t *Table) error {
	if t == nil || len(t.Headers) == 0 {
		return nil
	}

	header := make([]string, len(t.Headers))
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = strings.ToUpper(h)
		widths[i] = runewidth.StringWidth(header[i])
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	first := t.format(header, widths)
	if w.header != nil {
		first = w.header.Render(first)
	}
	lines := make([]string, 0, len(t.Rows)+3)
	lines = append(lines, first)
	for _, row := range t.Rows {
		lines = append(lines, t.format(row, widths))
	}
	if t.Footer != "" {
		lines = append(lines, "", t.Footer)
	}
	return w.lines(lines)
}

// Println writes a line to the results.
func (w *Writer) Println(a ...any) {
	fmt.Fprintln(w.out, a...)
}

// Printf writes formatted text to the results.
func (w *Writer) Printf(format string, a ...any) {
	fmt.Fprintf(w.out, format, a...)
}

// Success writes a success line to the results.
func (w *Writer) Success(message string) {
	fmt.Fprintln(w.out, "✓ "+message)
}

// Info writes an informational line to the results.
func (w *Writer) Info(message string) {
	fmt.Fprintln(w.out, "ℹ "+message)
}

// Warn writes a warning to the error stream, so it stays out of piped
// results.
func (w *Writer) Warn(message string) {
	fmt.Fprintln(w.err, "⚠ "+message)
}

// Table is a result printed as aligned columns.
type Table struct {
	Headers []string
	Rows    [][]string

	// Align holds per-column alignment; missing entries align left.
	Align []datatable.Align

	// Footer is printed below the rows when set.
	Footer string
}

// NewTable returns an empty table with headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers, Rows: [][]string{}}
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) *Table {
	t.Rows = append(t.Rows, cells)
	return t
}

// FromTable converts the current page of a data table to a Table. Cells
// use the same text as the console.
func FromTable[R any](t *datatable.Table[R], footer string) *Table {
	columns := t.Columns()
	out := &Table{
		Headers: make([]string, len(columns)),
		Align:   make([]datatable.Align, len(columns)),
		Rows:    make([][]string, 0, len(t.PageRows())),
		Footer:  footer,
	}
	for i, col := range columns {
		out.Headers[i] = col.Label
		out.Align[i] = col.Align
	}
	for _, row := range t.PageRows() {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = t.CellText(row, col)
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

func (t *Table) align(i int) datatable.Align {
	if i < len(t.Align) {
		return t.Align[i]
	}
	return datatable.AlignLeft
}

// format pads cells to widths. The last left-aligned cell is not padded,
// so lines carry no trailing blanks.
func (t *Table) format(cells []string, widths []int) string {
	var b strings.Builder
	for i, width := range widths {
		if i > 0 {
			b.WriteString(columnGap)
		}
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		switch t.align(i) {
		case datatable.AlignRight:
			b.WriteString(runewidth.FillLeft(cell, width))
		case datatable.AlignCenter:
			pad := width - runewidth.StringWidth(cell)
			b.WriteString(strings.Repeat(" ", pad/2) + cell + strings.Repeat(" ", pad-pad/2))
		default:
			if i == len(widths)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(runewidth.FillRight(cell, width))
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}

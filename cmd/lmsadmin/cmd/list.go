package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	clierrors "lmsadmin/internal/cli/errors"
	"lmsadmin/internal/cli/help"
	"lmsadmin/internal/cli/i18n"
	"lmsadmin/internal/cli/output"
	"lmsadmin/internal/datatable"
	"lmsadmin/internal/domain"
	"lmsadmin/internal/storage"
	"lmsadmin/internal/tables"
	tuii18n "lmsadmin/internal/tui/i18n"
)

var (
	listPage    int
	listPerPage int
	listSearch  string
	listSort    string
	listDesc    bool
	listStatus  string
	listExam    string
)

// listCmd prints one page of a record table
var listCmd = &cobra.Command{
	Use:         "list <table>",
	Short:       "list.short",
	Annotations: i18n.MarkForTranslation(),
	Args:        cobra.ExactArgs(1),
	ValidArgs:   tables.Names(),
	RunE:        runList,
}

func init() {
	flags := listCmd.Flags()
	flags.IntVar(&listPage, "page", 1, "page number")
	flags.IntVar(&listPerPage, "per-page", 0, "rows per page (default table.items_per_page)")
	flags.StringVarP(&listSearch, "search", "s", "", "search term")
	flags.StringVar(&listSort, "sort", "", "column key to sort by")
	flags.BoolVar(&listDesc, "desc", false, "sort in descending order")
	flags.StringVar(&listStatus, "status", "", "students only: pending, accepted or rejected")
	flags.StringVar(&listExam, "exam", "", "questions only: exam ID")
	rootCmd.AddCommand(listCmd)

	help.RegisterExamples("lmsadmin list",
		help.Example{Description: "Pending enrollment requests", Command: "lmsadmin list students --status pending"},
		help.Example{Description: "Most expensive courses first", Command: "lmsadmin list courses --sort price --desc"},
		help.Example{Description: "Questions of one exam as JSON", Command: "lmsadmin list questions --exam exam-go-mid -o json"},
	)
	help.RegisterNotes("lmsadmin list",
		"A page past the last one shows the last page",
		"An unknown --sort column lists the sortable ones",
	)
}

// listResult is the machine-readable form of a listed page.
type listResult[R any] struct {
	Table   string `json:"table" yaml:"table"`
	Page    int    `json:"page" yaml:"page"`
	Pages   int    `json:"pages" yaml:"pages"`
	PerPage int    `json:"per_page" yaml:"per_page"`
	Total   int    `json:"total" yaml:"total"`
	Rows    []R    `json:"rows" yaml:"rows"`
}

func runList(cmd *cobra.Command, args []string) error {
	name := args[0]
	if listStatus != "" && !domain.RequestStatus(listStatus).IsValid() {
		return clierrors.New(clierrors.CodeValidation, fmt.Sprintf("Unknown status: %s", listStatus)).
			WithSuggestions("Use one of: pending, accepted, rejected")
	}

	store, err := openStore(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer store.Close()

	tr := tuii18n.Global()
	switch name {
	case tables.Students:
		provider := storage.NewProvider[*domain.Student](store.Students()).
			WithFilter(storage.ListFilter{Status: listStatus})
		return listTable(cmd, name, tables.StudentTable(tr), provider)
	case tables.Instructors:
		return listTable(cmd, name, tables.InstructorTable(tr), storage.NewProvider[*domain.Instructor](store.Instructors()))
	case tables.Courses:
		return listTable(cmd, name, tables.CourseTable(tr), storage.NewProvider[*domain.Course](store.Courses()))
	case tables.Exams:
		return listTable(cmd, name, tables.ExamTable(tr), storage.NewProvider[*domain.Exam](store.Exams()))
	case tables.Questions:
		provider := storage.NewProvider[*domain.Question](store.Questions()).
			WithFilter(storage.ListFilter{ParentID: listExam})
		return listTable(cmd, name, tables.QuestionTable(tr), provider)
	default:
		return clierrors.UnknownTable(name, tables.Names())
	}
}

// listTable loads the requested page of table from provider and writes it.
func listTable[R any](cmd *cobra.Command, name string, table *datatable.Table[R], provider datatable.DataProvider[R]) error {
	perPage := listPerPage
	if perPage <= 0 {
		perPage = cfg.Table.ItemsPerPage
	}
	table.SetItemsPerPage(perPage)
	table.SetCurrentPage(max(1, listPage))
	if listSearch != "" {
		table.SearchChange(listSearch)
	}
	if listSort != "" {
		col, ok := findColumn(table.Columns(), listSort)
		if !ok || !col.Sortable {
			return clierrors.New(clierrors.CodeValidation, fmt.Sprintf("Cannot sort %s by %s", name, listSort)).
				WithSuggestions("Use one of: " + strings.Join(sortKeys(table.Columns()), ", "))
		}
		table.RequestSort(col)
		if listDesc {
			table.RequestSort(col)
		}
	}

	ctrl := datatable.NewController(table, provider)
	if err := ctrl.Load(cmd.Context()); err != nil {
		return err
	}

	w := newWriter(cmd)
	switch w.Format() {
	case output.FormatJSON, output.FormatYAML:
		return w.Write(listResult[R]{
			Table:   name,
			Page:    table.CurrentPage(),
			Pages:   table.TotalPages(),
			PerPage: table.ItemsPerPage(),
			Total:   table.DisplayTotal(),
			Rows:    table.PageRows(),
		})
	case output.FormatQuiet:
		keys := make([]string, 0, len(table.PageRows()))
		for _, row := range table.PageRows() {
			keys = append(keys, table.Key(row))
		}
		return w.Write(keys)
	}

	tr := tuii18n.Global()
	if table.DisplayTotal() == 0 {
		w.Println(tr.T("table.empty"))
		return nil
	}
	footer := tr.T("table.showing",
		"start", table.DisplayStart(),
		"end", table.DisplayEnd(),
		"total", table.DisplayTotal(),
	) + " · " + tr.T("table.page", "page", table.CurrentPage(), "pages", table.TotalPages())
	return w.Write(output.FromTable(table, footer))
}

func findColumn[R any](columns []datatable.Column[R], key string) (datatable.Column[R], bool) {
	for _, col := range columns {
		if col.Key == key {
			return col, true
		}
	}
	return datatable.Column[R]{}, false
}

func sortKeys[R any](columns []datatable.Column[R]) []string {
	var keys []string
	for _, col := range columns {
		if col.Sortable {
			keys = append(keys, col.Key)
		}
	}
	return keys
}

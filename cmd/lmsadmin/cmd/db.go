package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lmsadmin/internal/cli/i18n"
	"lmsadmin/internal/cli/output"
	"lmsadmin/internal/logger"
	"lmsadmin/internal/storage"
	"lmsadmin/internal/tables"
	tuii18n "lmsadmin/internal/tui/i18n"
)

var dbRollbackYes bool

// dbCmd groups the database maintenance commands
var dbCmd = &cobra.Command{
	Use:         "db",
	Short:       "db.short",
	Annotations: i18n.MarkForTranslation(),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var dbStatusCmd = &cobra.Command{
	Use:         "status",
	Short:       "db.status.short",
	Annotations: i18n.MarkForTranslation(),
	Args:        cobra.NoArgs,
	RunE:        runDBStatus,
}

var dbMigrateCmd = &cobra.Command{
	Use:         "migrate",
	Short:       "db.migrate.short",
	Annotations: i18n.MarkForTranslation(),
	Args:        cobra.NoArgs,
	RunE:        runDBMigrate,
}

var dbRollbackCmd = &cobra.Command{
	Use:         "rollback",
	Short:       "db.rollback.short",
	Annotations: i18n.MarkForTranslation(),
	Args:        cobra.NoArgs,
	RunE:        runDBRollback,
}

func init() {
	dbRollbackCmd.Flags().BoolVarP(&dbRollbackYes, "yes", "y", false, "do not ask for confirmation")

	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbRollbackCmd)
}

// dbStatus is the machine-readable form of db status.
type dbStatus struct {
	Path       string          `json:"path" yaml:"path"`
	Version    uint            `json:"version" yaml:"version"`
	Dirty      bool            `json:"dirty" yaml:"dirty"`
	Migrations []migrationInfo `json:"migrations" yaml:"migrations"`
	Counts     map[string]int  `json:"counts,omitempty" yaml:"counts,omitempty"`
}

type migrationInfo struct {
	Version     uint   `json:"version" yaml:"version"`
	Description string `json:"description" yaml:"description"`
	Applied     bool   `json:"applied" yaml:"applied"`
}

func runDBStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr := tuii18n.Global()
	out := newWriter(cmd)

	store, err := openStore(ctx, true)
	if err != nil {
		return err
	}
	defer store.Close()

	migrations := storageConfig(cfg).Migrations
	version, dirty, err := storage.GetMigrationStatus(ctx, store, migrations)
	if err != nil {
		return err
	}
	list, err := storage.ListMigrations(ctx, store, migrations)
	if err != nil {
		return err
	}

	status := dbStatus{Path: cfg.Database.Path, Version: version, Dirty: dirty}
	for _, m := range list {
		status.Migrations = append(status.Migrations, migrationInfo{
			Version:     m.Version,
			Description: m.Description,
			Applied:     m.Applied,
		})
	}

	var stats *storage.Stats
	if version > 0 && !dirty {
		s, err := store.Stats(ctx)
		if err != nil {
			logger.LoggerFrom(ctx).Warn("failed to count records", "error", err)
		} else {
			stats = &s
			status.Counts = counts(s)
		}
	}

	if out.Format() != output.FormatTable {
		return out.Write(status)
	}

	out.Println(cfg.Database.Path)
	out.Println(tr.T("cli.schema_version", "version", version))
	if dirty {
		out.Warn(tr.T("cli.schema_dirty"))
	}
	out.Println()

	mt := output.NewTable("version", "description", "applied")
	for _, m := range status.Migrations {
		mt.AddRow(strconv.FormatUint(uint64(m.Version), 10), m.Description, strconv.FormatBool(m.Applied))
	}
	if err := out.Write(mt); err != nil {
		return err
	}

	if stats != nil {
		out.Println()
		return out.Write(countsTable(tr, *stats))
	}
	return nil
}

func runDBMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr := tuii18n.Global()

	store, err := openStore(ctx, true)
	if err != nil {
		return err
	}
	defer store.Close()

	migrations := storageConfig(cfg).Migrations
	err = storage.RunMigrations(ctx, store, migrations)
	logger.AuditFrom(ctx).Record(ctx, logger.AuditActionMigrate, "database", "", err)
	if err != nil {
		return err
	}

	version, _, err := storage.GetMigrationStatus(ctx, store, migrations)
	if err != nil {
		return err
	}
	logger.LoggerFrom(ctx).Info("migrations applied", "version", version)
	newWriter(cmd).Success(tr.T("cli.migrated", "version", version))
	return nil
}

func runDBRollback(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr := tuii18n.Global()
	out := newWriter(cmd)

	if err := confirm(cmd.InOrStdin(), tr.T("cmd.db.rollback.short")+"?", cfg.Database.Path, dbRollbackYes); err != nil {
		if isCancelled(err) {
			out.Warn(tr.T("cli.cancelled"))
			return nil
		}
		return err
	}

	store, err := openStore(ctx, true)
	if err != nil {
		return err
	}
	defer store.Close()

	migrations := storageConfig(cfg).Migrations
	err = storage.RollbackMigration(ctx, store, migrations)
	logger.AuditFrom(ctx).Record(ctx, logger.AuditActionRollback, "database", "", err)
	if err != nil {
		return err
	}

	version, _, err := storage.GetMigrationStatus(ctx, store, migrations)
	if err != nil {
		return err
	}
	logger.LoggerFrom(ctx).Info("migration rolled back", "version", version)
	out.Success(tr.T("cli.rolled_back", "version", version))
	return nil
}

// counts returns the record count of every table.
func counts(s storage.Stats) map[string]int {
	return map[string]int{
		tables.Students:    s.Students,
		tables.Instructors: s.Instructors,
		tables.Courses:     s.Courses,
		tables.Exams:       s.Exams,
		tables.Questions:   s.Questions,
	}
}

// countsTable renders the record counts in table order.
func countsTable(tr *tuii18n.I18n, s storage.Stats) *output.Table {
	c := counts(s)
	t := output.NewTable(tr.T("cli.col_table"), tr.T("cli.col_records"))
	for _, name := range tables.Names() {
		t.AddRow(tr.T("tabs."+tabName(name)), fmt.Sprint(c[name]))
	}
	return t
}

// tabName maps a table name to its console tab; students are listed as
// enrollment requests.
func tabName(table string) string {
	if table == tables.Students {
		return "requests"
	}
	return table
}

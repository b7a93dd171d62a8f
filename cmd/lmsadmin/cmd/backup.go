package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lmsadmin/internal/cli/help"
	"lmsadmin/internal/cli/i18n"
	"lmsadmin/internal/cli/output"
	"lmsadmin/internal/datatable"
	"lmsadmin/internal/logger"
	"lmsadmin/internal/storage/backup"
	tuii18n "lmsadmin/internal/tui/i18n"
)

var (
	backupNote string
	restoreYes bool
)

var dbBackupCmd = &cobra.Command{
	Use:         "backup",
	Short:       "db.backup.short",
	Annotations: i18n.MarkForTranslation(),
	Args:        cobra.NoArgs,
	RunE:        runDBBackup,
}

var dbBackupsCmd = &cobra.Command{
	Use:         "backups",
	Short:       "db.backups.short",
	Annotations: i18n.MarkForTranslation(),
	Args:        cobra.NoArgs,
	RunE:        runDBBackups,
}

var dbRestoreCmd = &cobra.Command{
	Use:         "restore <id>",
	Short:       "db.restore.short",
	Annotations: i18n.MarkForTranslation(),
	Args:        cobra.ExactArgs(1),
	RunE:        runDBRestore,
}

func init() {
	dbBackupCmd.Flags().StringVar(&backupNote, "note", "", "note stored with the backup")
	dbRestoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "do not ask for confirmation")

	dbCmd.AddCommand(dbBackupCmd)
	dbCmd.AddCommand(dbBackupsCmd)
	dbCmd.AddCommand(dbRestoreCmd)

	help.RegisterExamples("lmsadmin db restore",
		help.Example{Description: "Pick the newest backup", Command: "lmsadmin db backups -o quiet | head -1"},
		help.Example{Description: "Restore without asking", Command: "lmsadmin db restore 20260301-090000-1a2b3c4d --yes"},
	)
}

func backupManager() (*backup.Manager, error) {
	return backup.NewManager(backup.Config{
		Dir:        cfg.Database.Backup.Dir,
		MaxBackups: cfg.Database.Backup.MaxBackups,
		Verify:     cfg.Database.Backup.Verify,
		Compress:   cfg.Database.Backup.Compress,
	}, cfg.Database.Path)
}

func runDBBackup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr := tuii18n.Global()
	out := newWriter(cmd)

	m, err := backupManager()
	if err != nil {
		return err
	}
	store, err := openStore(ctx, false)
	if err != nil {
		return err
	}
	defer store.Close()

	meta, err := m.Backup(ctx, store, backupNote)
	id := ""
	if meta != nil {
		id = meta.ID
	}
	logger.AuditFrom(ctx).Record(ctx, logger.AuditActionBackup, "database", id, err)
	if err != nil {
		return err
	}

	switch out.Format() {
	case output.FormatTable:
		out.Success(tr.T("cli.backup_created", "id", meta.ID, "path", meta.Path))
		return nil
	case output.FormatQuiet:
		out.Println(meta.ID)
		return nil
	}
	return out.Write(meta)
}

func runDBBackups(cmd *cobra.Command, args []string) error {
	tr := tuii18n.Global()
	out := newWriter(cmd)

	m, err := backupManager()
	if err != nil {
		return err
	}
	backups, err := m.List()
	if err != nil {
		return err
	}

	switch out.Format() {
	case output.FormatQuiet:
		for _, b := range backups {
			out.Println(b.ID)
		}
		return nil
	case output.FormatTable:
	default:
		return out.Write(backups)
	}

	if len(backups) == 0 {
		out.Info(tr.T("cli.no_backups", "dir", m.Dir()))
		return nil
	}
	t := output.NewTable("id", "created", "schema", "size", "notes")
	t.Align = []datatable.Align{datatable.AlignLeft, datatable.AlignLeft, datatable.AlignRight, datatable.AlignRight}
	for _, b := range backups {
		t.AddRow(b.ID, b.Timestamp.Local().Format("2006-01-02 15:04"), fmt.Sprint(b.SchemaVersion), humanSize(b.Size), b.Notes)
	}
	return out.Write(t)
}

func runDBRestore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr := tuii18n.Global()
	out := newWriter(cmd)
	id := args[0]

	m, err := backupManager()
	if err != nil {
		return err
	}
	if _, err := m.Get(id); err != nil {
		return err
	}

	if err := confirm(cmd.InOrStdin(), tr.T("cli.confirm_restore", "id", id), cfg.Database.Path, restoreYes); err != nil {
		if isCancelled(err) {
			out.Warn(tr.T("cli.cancelled"))
			return nil
		}
		return err
	}

	_, err = m.Restore(ctx, backup.RestoreOptions{BackupID: id, VerifyBefore: true})
	logger.AuditFrom(ctx).Record(ctx, logger.AuditActionRestore, "database", id, err)
	if err != nil {
		return err
	}
	out.Success(tr.T("cli.restored", "id", id))
	return nil
}

// humanSize formats a byte count with a binary unit.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

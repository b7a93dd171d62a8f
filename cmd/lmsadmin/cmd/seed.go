package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lmsadmin/internal/cli/help"
	"lmsadmin/internal/cli/i18n"
	"lmsadmin/internal/cli/output"
	"lmsadmin/internal/logger"
	"lmsadmin/internal/storage"
	tuii18n "lmsadmin/internal/tui/i18n"
)

var (
	seedFile  string
	seedReset bool
	seedYes   bool
)

// seedCmd fills the database with sample records
var seedCmd = &cobra.Command{
	Use:         "seed",
	Short:       "seed.short",
	Annotations: i18n.MarkForTranslation(),
	Args:        cobra.NoArgs,
	RunE:        runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML fixture to load instead of the sample data")
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "delete every existing record first")
	seedCmd.Flags().BoolVarP(&seedYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(seedCmd)

	help.RegisterExamples("lmsadmin seed",
		help.Example{Description: "Load the sample data", Command: "lmsadmin seed"},
		help.Example{Description: "Replace every record with a fixture", Command: "lmsadmin seed --reset --file fixture.yaml"},
	)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr := tuii18n.Global()
	out := newWriter(cmd)

	if seedReset {
		if err := confirm(cmd.InOrStdin(), tr.T("cli.confirm_seed_reset"), cfg.Database.Path, seedYes); err != nil {
			if isCancelled(err) {
				out.Warn(tr.T("cli.cancelled"))
				return nil
			}
			return err
		}
	}

	var fixture io.Reader
	if seedFile != "" {
		f, err := os.Open(seedFile)
		if err != nil {
			return fmt.Errorf("failed to open fixture: %w", err)
		}
		defer f.Close()
		fixture = f
	}

	store, err := openStore(ctx, false)
	if err != nil {
		return err
	}
	defer store.Close()

	seeded, err := storage.Seed(ctx, store, fixture, storage.SeedOptions{Reset: seedReset})
	logger.AuditFrom(ctx).Log(ctx, seedEvent(seeded, err))
	if err != nil {
		return err
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	logger.LoggerFrom(ctx).Info("database seeded",
		"students", stats.Students,
		"courses", stats.Courses,
		"reset", seedReset,
	)
	if out.Format() != output.FormatTable {
		return out.Write(counts(stats))
	}
	out.Success(tr.T("cli.seeded"))
	return out.Write(countsTable(tr, stats))
}

func seedEvent(f *storage.Fixture, err error) logger.AuditEvent {
	event := logger.AuditEvent{
		Action:   logger.AuditActionSeed,
		Resource: "database",
		Outcome:  logger.AuditOutcomeSuccess,
		Metadata: map[string]any{"reset": seedReset, "file": seedFile},
	}
	if f != nil {
		event.Metadata["students"] = len(f.Students)
		event.Metadata["courses"] = len(f.Courses)
		event.Metadata["exams"] = len(f.Exams)
	}
	if err != nil {
		event.Outcome = logger.AuditOutcomeFailure
		event.Error = err.Error()
	}
	return event
}

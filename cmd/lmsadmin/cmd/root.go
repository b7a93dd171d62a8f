// Package cmd implements the lmsadmin command tree.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	clierrors "lmsadmin/internal/cli/errors"
	"lmsadmin/internal/cli/help"
	"lmsadmin/internal/cli/i18n"
	"lmsadmin/internal/cli/middleware"
	"lmsadmin/internal/cli/output"
	"lmsadmin/internal/config"
	"lmsadmin/internal/logger"
	"lmsadmin/internal/storage"
	_ "lmsadmin/internal/storage/sqlite"
	tuii18n "lmsadmin/internal/tui/i18n"
	"lmsadmin/internal/tui/themes"
)

var (
	// cfgFile is the path to the config file (set via --config flag)
	cfgFile string

	// cfg holds the loaded configuration
	cfg *config.Config

	// log is the logger instance
	log *logger.Logger

	// auditLog is the audit logger instance; nil discards events
	auditLog *logger.AuditLogger

	// Global flags
	dbPath       string
	logLevel     string
	outputFormat string
	localeFlag   string
	verboseMode  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:         "lmsadmin",
	Short:       "root.short",
	Annotations: i18n.MarkForTranslation(),
	// Allow flags before or after subcommand
	TraverseChildren: true,
	SilenceUsage:     true,
	SilenceErrors:    true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			// config init must be able to replace a broken file
			if cmd != configInitCmd {
				return err
			}
			cfg = config.Default()
		}

		logCfg := cfg.Log
		if cmd.Name() == "tui" {
			logCfg = logger.ForTUI(logCfg, filepath.Dir(cfg.Database.Path))
		}

		var err error
		log, err = logger.New(logCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		storage.SetLogger(log)

		if cfg.Log.AuditPath != "" {
			auditLog, err = logger.NewAuditLogger(cfg.Log.AuditPath, cfg.Log.AuditMaxAgeDays)
			if err != nil {
				log.Warn("failed to initialize audit logger", "error", err)
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if auditLog != nil {
			auditLog.Close()
		}
		if log != nil {
			log.Close()
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	prepare(os.Args[1:])

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/lmsadmin/config.yaml)")
	flags.StringVar(&dbPath, "db", "", "database file (overrides database.path)")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVarP(&outputFormat, "output", "o", "", "output format (table, json, yaml, quiet)")
	flags.StringVar(&localeFlag, "locale", "", "interface language (ar, en)")
	flags.BoolVarP(&verboseMode, "verbose", "v", false, "print the duration of each command")

	// Bind flags to viper
	viper.BindPFlag("output.format", flags.Lookup("output"))
}

var prepareOnce sync.Once

// prepare resolves the locale before cobra parses the command line, so
// that help output is already translated, then finishes the command tree.
// Only the first call has an effect.
func prepare(args []string) {
	prepareOnce.Do(func() { finishTree(args) })
}

func finishTree(args []string) {
	early := pflag.NewFlagSet("early", pflag.ContinueOnError)
	early.ParseErrorsWhitelist.UnknownFlags = true
	early.SetOutput(io.Discard)
	early.Usage = func() {}
	file := early.String("config", "", "")
	locale := early.String("locale", "", "")
	_ = early.Parse(args)

	var configured, theme string
	if c, err := config.Load(*file); err == nil {
		configured, theme = c.UI.Locale, c.UI.Theme
	}

	tr := tuii18n.New(tuii18n.WithLocale(tuii18n.ResolveLocale(*locale, configured)))
	tuii18n.SetGlobal(tr)
	if theme != "" {
		_ = themes.Global().SetActive(themes.PresetName(theme))
	}

	i18n.TranslateCommands(rootCmd, tr)
	help.Global().SetI18n(tr)
	help.Global().ApplyToCommand(rootCmd)
	middleware.ApplyRecursive(rootCmd,
		middleware.Logging(middleware.LoggingOptions{
			Logger:       Log,
			Audit:        AuditLog,
			SkipCommands: []string{"version"},
		}),
		middleware.Timing(&verboseMode),
	)
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		if cfgFile != "" {
			if _, statErr := os.Stat(cfgFile); os.IsNotExist(statErr) {
				return clierrors.ConfigNotFound(cfgFile)
			}
		}
		return clierrors.ConfigInvalid(config.ConfigFileUsed(), err)
	}

	if cmd.Flags().Changed("db") {
		// Backups follow the database unless their directory is set.
		if cfg.Database.Backup.Dir == filepath.Join(filepath.Dir(cfg.Database.Path), "backups") {
			cfg.Database.Backup.Dir = filepath.Join(filepath.Dir(dbPath), "backups")
		}
		cfg.Database.Path = dbPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Format = viper.GetString("output.format")
	}
	if cmd.Flags().Changed("locale") {
		cfg.UI.Locale = localeFlag
	}
	return nil
}

// renderError formats a command error for the terminal.
func renderError(err error) string {
	rich := clierrors.Classify(err)
	if isTerminal(os.Stderr) {
		return clierrors.Display(rich, themes.Global().Active()) + "\n"
	}
	return clierrors.DisplaySimple(rich)
}

// storageConfig maps the database settings to the storage layer.
func storageConfig(c *config.Config) storage.Config {
	return storage.Config{
		Path:         c.Database.Path,
		MaxOpenConns: c.Database.MaxOpenConns,
		BusyTimeout:  c.Database.BusyTimeout,
		Migrations: storage.MigrationsConfig{
			VerifyChecksums:    c.Database.Migrations.VerifyChecksums,
			OnChecksumMismatch: c.Database.Migrations.OnChecksumMismatch,
			LockTimeout:        c.Database.Migrations.LockTimeout,
		},
	}
}

// openStore opens the configured database. Pending migrations are applied
// unless skipMigrations is set.
func openStore(ctx context.Context, skipMigrations bool) (storage.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0750); err != nil {
		return nil, clierrors.DatabaseFailed(cfg.Database.Path, err)
	}

	sc := storageConfig(cfg)
	sc.SkipMigrations = skipMigrations
	store, err := storage.Open(ctx, sc)
	if err != nil {
		if rich := clierrors.Classify(err); rich.Code != clierrors.CodeUnknown {
			return nil, rich
		}
		return nil, clierrors.DatabaseFailed(cfg.Database.Path, err)
	}
	return store, nil
}

// newWriter returns an output writer for the configured format.
func newWriter(cmd *cobra.Command) *output.Writer {
	w := output.NewWriter(output.ParseFormat(cfg.Output.Format)).
		WithOutput(cmd.OutOrStdout()).
		WithError(cmd.ErrOrStderr())
	if cfg.Output.Color && isTerminal(cmd.OutOrStdout()) {
		w = w.WithHeaderStyle(themes.Global().Active().TableHeader)
	}
	return w
}

// Config returns the current configuration (for use by subcommands)
func Config() *config.Config {
	return cfg
}

// ConfigFile returns the config file path (for use by subcommands)
func ConfigFile() string {
	return cfgFile
}

// Log returns the logger instance (for use by subcommands)
func Log() *logger.Logger {
	return log
}

// AuditLog returns the audit logger instance (for use by subcommands)
func AuditLog() *logger.AuditLogger {
	return auditLog
}

package cmd

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"lmsadmin/internal/cli/help"
	"lmsadmin/internal/cli/i18n"
	"lmsadmin/internal/config"
	"lmsadmin/internal/logger"
	"lmsadmin/internal/tui/app"
	tuii18n "lmsadmin/internal/tui/i18n"
	"lmsadmin/internal/tui/pages"
	"lmsadmin/internal/tui/themes"
)

var (
	tuiTheme   string
	tuiNoMouse bool
	tuiASCII   bool
)

// tuiCmd opens the interactive console
var tuiCmd = &cobra.Command{
	Use:         "tui",
	Short:       "tui.short",
	Annotations: i18n.MarkForTranslation(),
	Args:        cobra.NoArgs,
	RunE:        runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiTheme, "theme", "t", "", "color theme (dark, light, nord, auto)")
	tuiCmd.Flags().BoolVar(&tuiNoMouse, "no-mouse", false, "disable mouse support")
	tuiCmd.Flags().BoolVar(&tuiASCII, "ascii", false, "draw icons with ASCII characters")
	rootCmd.AddCommand(tuiCmd)

	help.RegisterShortcuts("lmsadmin tui",
		help.KeyBinding{Key: "tab / shift+tab", Description: "switch tabs"},
		help.KeyBinding{Key: "↑ ↓ / k j", Description: "move the cursor"},
		help.KeyBinding{Key: "← → / h l", Description: "choose a column"},
		help.KeyBinding{Key: "s", Description: "sort by the chosen column"},
		help.KeyBinding{Key: "space / a / c", Description: "select a row, all rows, clear"},
		help.KeyBinding{Key: "n / p", Description: "next / previous page"},
		help.KeyBinding{Key: "/", Description: "search"},
		help.KeyBinding{Key: "enter", Description: "show row details"},
		help.KeyBinding{Key: "1-9", Description: "run a row action; delete asks for a second press"},
		help.KeyBinding{Key: "f", Description: "cycle the filter"},
		help.KeyBinding{Key: "?", Description: "full help"},
		help.KeyBinding{Key: "q", Description: "quit"},
	)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.LoggerFrom(ctx)

	theme := cfg.UI.Theme
	if tuiTheme != "" {
		theme = tuiTheme
		cfg.UI.Theme = tuiTheme
	}
	if err := themes.Global().SetActive(themes.PresetName(theme)); err != nil {
		log.Warn("unknown theme, keeping the default", "theme", theme)
	}
	if tuiASCII || !themes.DetectUnicode() {
		themes.UseASCIIIcons()
	}
	if tuiNoMouse {
		cfg.UI.Mouse = false
	}

	tr := tuii18n.New(tuii18n.WithLocale(tuii18n.ResolveLocale(cfg.UI.Locale, "")))

	store, err := openStore(ctx, false)
	if err != nil {
		return err
	}
	defer store.Close()

	console := app.New(
		app.WithConfig(cfg),
		app.WithStore(store),
		app.WithLogger(log),
		app.WithAudit(auditLog),
		app.WithTheme(themes.Global().Active()),
		app.WithI18n(tr),
	)
	console.Router().RegisterPages(pages.AllPages(console)...)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(console, opts...)

	watcher, err := config.NewWatcher(cfgFile)
	switch {
	case errors.Is(err, config.ErrNoConfigFile):
		log.Debug("no config file, reload disabled")
	case err != nil:
		log.Warn("config reload disabled", "error", err)
	default:
		watcher.OnChange(func(c *config.Config) {
			if cmd.Flags().Changed("db") {
				c.Database.Path = cfg.Database.Path
			}
			program.Send(app.ConfigReloaded(c))
		})
		watcher.OnError(func(err error) {
			log.Warn("config reload failed", "error", err)
		})
		if err := watcher.Start(); err != nil {
			log.Warn("config reload disabled", "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	log.Info("console started", "locale", tr.Locale(), "theme", theme)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

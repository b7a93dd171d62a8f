package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lmsadmin/internal/cli/i18n"
	"lmsadmin/internal/config"
	tuii18n "lmsadmin/internal/tui/i18n"
)

var (
	configInitForce  bool
	configInitFormat string
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "config.short",
	Annotations: i18n.MarkForTranslation(),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// configShowCmd shows current configuration
var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "config.show.short",
	Annotations: i18n.MarkForTranslation(),
	Args:        cobra.NoArgs,
	RunE:        runConfigShow,
}

// configPathCmd shows config file path
var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "config.path.short",
	Annotations: i18n.MarkForTranslation(),
	Args:        cobra.NoArgs,
	RunE:        runConfigPath,
}

// configInitCmd writes a default configuration file
var configInitCmd = &cobra.Command{
	Use:         "init [path]",
	Short:       "config.init.short",
	Annotations: i18n.MarkForTranslation(),
	Args:        cobra.MaximumNArgs(1),
	RunE:        runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite existing configuration")
	configInitCmd.Flags().StringVar(&configInitFormat, "format", "yaml", "file format (yaml, json, toml)")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

// shownConfig is the configuration as printed by config show.
type shownConfig struct {
	File   string         `json:"file,omitempty" yaml:"file,omitempty"`
	Config map[string]any `json:"config" yaml:"config"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	v := config.NewViperFromConfig(cfg)
	return newWriter(cmd).Write(shownConfig{
		File:   configPath(),
		Config: v.AllSettings(),
	})
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := newWriter(cmd)
	if path := configPath(); path != "" {
		return out.Write(path)
	}

	dir, err := config.UserConfigDir()
	if err != nil {
		return err
	}
	out.Info(filepath.Join(dir, "config.yaml") + " (not created)")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	tr := tuii18n.Global()
	out := newWriter(cmd)

	path := cfgFile
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		dir, err := config.UserConfigDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config."+configInitFormat)
	}

	overwrite := configInitForce
	if _, err := os.Stat(path); err == nil && !overwrite {
		if !isTerminal(cmd.InOrStdin()) {
			return fmt.Errorf("%w: %s", config.ErrConfigExists, path)
		}
		if err := confirm(cmd.InOrStdin(), tr.T("cli.confirm_overwrite", "path", path), "", false); err != nil {
			if isCancelled(err) {
				out.Warn(tr.T("cli.cancelled"))
				return nil
			}
			return err
		}
		overwrite = true
	}

	if err := config.GenerateConfigAt(path, configInitFormat, overwrite); err != nil {
		return err
	}
	out.Success(tr.T("cli.config_written", "path", path))
	return nil
}

// configPath returns the file the configuration was loaded from.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.ConfigFileUsed()
}

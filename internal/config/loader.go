package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// AppName names the config directory and the environment prefix.
const AppName = "lmsadmin"

// configSearchPaths returns the paths to search for config files in order of precedence
// (later paths have higher priority in Viper)
func configSearchPaths() []string {
	paths := []string{}

	// System-wide (lowest priority)
	paths = append(paths, filepath.Join("/etc", AppName))

	// User-specific
	if dir, err := UserConfigDir(); err == nil {
		paths = append(paths, dir)
	}

	// Current directory (highest priority for files)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, cwd)
	}

	return paths
}

// newViper creates and configures a new Viper instance
func newViper() *viper.Viper {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml") // default, but will auto-detect

	for _, path := range configSearchPaths() {
		v.AddConfigPath(path)
	}

	// LMSADMIN_TABLE_ITEMS_PER_PAGE overrides table.items_per_page
	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load loads the configuration. An explicit cfgFile must exist; without
// one a missing config file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := newViper()
	setViperDefaults(v, Default())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; use defaults + env vars
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := resolvePaths(&cfg); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// settings flattens cfg into viper keys.
func settings(c *Config) map[string]any {
	return map[string]any{
		"log.level":         c.Log.Level,
		"log.format":        c.Log.Format,
		"log.output":        c.Log.Output,
		"log.file_path":     c.Log.FilePath,
		"log.max_size_mb":   c.Log.MaxSizeMB,
		"log.max_backups":   c.Log.MaxBackups,
		"log.max_age_days":  c.Log.MaxAgeDays,
		"log.enable_caller": c.Log.EnableCaller,
		"log.no_color":      c.Log.NoColor,

		"log.audit_path":         c.Log.AuditPath,
		"log.audit_max_age_days": c.Log.AuditMaxAgeDays,
		"log.mask_fields":        c.Log.MaskFields,

		"database.path":                            c.Database.Path,
		"database.max_open_conns":                  c.Database.MaxOpenConns,
		"database.busy_timeout":                    c.Database.BusyTimeout.String(),
		"database.migrations.verify_checksums":     c.Database.Migrations.VerifyChecksums,
		"database.migrations.on_checksum_mismatch": c.Database.Migrations.OnChecksumMismatch,
		"database.migrations.lock_timeout":         c.Database.Migrations.LockTimeout.String(),
		"database.backup.dir":                      c.Database.Backup.Dir,
		"database.backup.max_backups":              c.Database.Backup.MaxBackups,
		"database.backup.verify":                   c.Database.Backup.Verify,
		"database.backup.compress":                 c.Database.Backup.Compress,

		"table.items_per_page": c.Table.ItemsPerPage,

		"ui.theme":      c.UI.Theme,
		"ui.locale":     c.UI.Locale,
		"ui.mouse":      c.UI.Mouse,
		"ui.alt_screen": c.UI.AltScreen,

		"output.format": c.Output.Format,
		"output.color":  c.Output.Color,
	}
}

// setViperDefaults sets default values in Viper from a config struct
func setViperDefaults(v *viper.Viper, cfg *Config) {
	for key, value := range settings(cfg) {
		v.SetDefault(key, value)
	}
}

// ConfigFileUsed returns the config file path that would be loaded, if any
func ConfigFileUsed() string {
	v := newViper()
	_ = v.ReadInConfig()
	return v.ConfigFileUsed()
}

// NewViperFromConfig creates a viper instance populated with values from a config struct
func NewViperFromConfig(cfg *Config) *viper.Viper {
	v := viper.New()
	for key, value := range settings(cfg) {
		v.Set(key, value)
	}
	return v
}

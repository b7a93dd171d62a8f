package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UserConfigDir returns the user-specific config directory
func UserConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DataDir returns the directory holding the database, honoring
// XDG_DATA_HOME.
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", AppName), nil
}

// expandPath expands a leading ~ and environment variables.
func expandPath(p string) (string, error) {
	if p == "" || p == ":memory:" {
		return p, nil
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to expand %q: %w", p, err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p, nil
}

// resolvePaths expands the file paths of cfg and fills in the default
// database location.
func resolvePaths(cfg *Config) error {
	var err error
	if cfg.Database.Path == "" {
		dir, err := DataDir()
		if err != nil {
			return err
		}
		cfg.Database.Path = filepath.Join(dir, AppName+".db")
	}
	if cfg.Database.Path, err = expandPath(cfg.Database.Path); err != nil {
		return err
	}
	if cfg.Database.Backup.Dir == "" && cfg.Database.Path != ":memory:" {
		cfg.Database.Backup.Dir = filepath.Join(filepath.Dir(cfg.Database.Path), "backups")
	}
	if cfg.Database.Backup.Dir, err = expandPath(cfg.Database.Backup.Dir); err != nil {
		return err
	}
	if cfg.Log.FilePath, err = expandPath(cfg.Log.FilePath); err != nil {
		return err
	}
	if cfg.Log.AuditPath, err = expandPath(cfg.Log.AuditPath); err != nil {
		return err
	}
	switch cfg.Log.Output {
	case "", "stdout", "stderr":
	default:
		if cfg.Log.Output, err = expandPath(cfg.Log.Output); err != nil {
			return err
		}
	}
	return nil
}

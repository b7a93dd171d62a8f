package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// SupportedFormats are the file formats a config can be written in.
var SupportedFormats = []string{"yaml", "toml", "json"}

// ErrConfigExists is returned when generating over an existing file.
var ErrConfigExists = errors.New("config file already exists")

func fileName(format string) string { return "config." + format }

// GenerateConfig writes the defaults to config.<format> in the user
// config directory and returns the path.
func GenerateConfig(format string) (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fileName(format))
	return path, GenerateConfigAt(path, format, false)
}

// GenerateConfigAt writes the defaults to path. An existing file is only
// replaced when overwrite is set.
func GenerateConfigAt(path, format string, overwrite bool) error {
	if !slices.Contains(SupportedFormats, format) {
		return fmt.Errorf("unsupported format %q, supported: %v", format, SupportedFormats)
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := NewViperFromConfig(Default())
	v.SetConfigType(format)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateConfigIfNotExists returns the config file of the user config
// directory in any supported format, writing one in format when there is
// none. created reports whether a file was written.
func GenerateConfigIfNotExists(format string) (path string, created bool, err error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", false, err
	}
	for _, f := range SupportedFormats {
		p := filepath.Join(dir, fileName(f))
		if _, err := os.Stat(p); err == nil {
			return p, false, nil
		}
	}

	if path, err = GenerateConfig(format); err != nil {
		return "", false, err
	}
	return path, true, nil
}

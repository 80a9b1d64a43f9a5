package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfig names a config file that takes precedence over the search path.
	EnvConfig = "HEIGHTVIEW_CONFIG"

	fileName = "config.yaml"
	appDir   = "heightview"
)

// Load merges defaults, the config file and flag overrides, in that order,
// and validates the result. f may be nil.
func Load(f *Flags) (*Config, error) {
	cfg := Default()

	path := f.ConfigPath()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	if err := f.apply(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config in the working directory
// or ConfigDir, or "".
func findConfigFile() string {
	for _, path := range []string{fileName, DefaultPath()} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir is the per-user config directory: XDG_CONFIG_HOME or ~/.config
// on Linux, Application Support on macOS, %AppData% on Windows. It falls
// back to the working directory when the OS reports none.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		if base, err = filepath.Abs("."); err != nil {
			return appDir
		}
	}
	return filepath.Join(base, appDir)
}

// DefaultPath is the config file inside ConfigDir.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), fileName)
}

// loadFromFile decodes YAML over cfg. Unknown keys are errors.
func loadFromFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	return nil
}

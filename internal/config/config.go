// Package config loads the worklog configuration file.
//
// The file lives at <data dir>/config.yaml and is optional; a missing
// file yields the defaults. The core never resolves paths on its own:
// whatever directory comes out of here (or the --dir flag) is passed
// down explicitly.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDirName is the data directory created under the user's home.
const DefaultDirName = ".worklog"

// FileName is the name of the config file inside the data directory.
const FileName = "config.yaml"

// Config holds user-tunable settings.
type Config struct {
	// Dir is the data directory holding the action log. Empty means the
	// default under the user's home.
	Dir string `yaml:"dir,omitempty"`

	// Color toggles styled terminal output.
	Color bool `yaml:"color"`
}

// Default returns the built-in configuration: data under ~/.worklog,
// color on. Falls back to the current directory when no home directory
// can be determined.
func Default() Config {
	base, err := os.UserHomeDir()
	if err != nil {
		base = "."
	}
	return Config{
		Dir:   filepath.Join(base, DefaultDirName),
		Color: true,
	}
}

// Load reads the config file at path, layering it over the defaults.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Dir == "" {
		cfg.Dir = Default().Dir
	}
	return cfg, nil
}

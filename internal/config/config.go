// Package config resolves the interminai directory and loads the optional
// YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable defaults.
type Config struct {
	// DefaultSize is the terminal size used when start is given no --size,
	// e.g. "80x24". When set, it takes precedence over the invoking
	// terminal's size.
	DefaultSize string `yaml:"default_size"`

	// TabRowThreshold is the deepest row an inverse cluster still
	// classifies as a tab.
	TabRowThreshold *int `yaml:"tab_row_threshold"`

	// ActivityLog enables the JSONL daemon event log at the given path.
	// Empty disables logging.
	ActivityLog string `yaml:"activity_log"`
}

const configFile = "config.yaml"

var (
	resolvedDir string
	resolveOnce sync.Once

	loaded   *Config
	loadErr  error
	loadOnce sync.Once
)

// Dir returns the interminai directory: INTERMINAI_DIR if set, else
// ~/.interminai. The result is cached for the process lifetime.
func Dir() string {
	resolveOnce.Do(func() {
		if dir := os.Getenv("INTERMINAI_DIR"); dir != "" {
			resolvedDir = dir
			return
		}
		home, err := os.UserHomeDir()
		if err != nil {
			resolvedDir = ".interminai"
			return
		}
		resolvedDir = filepath.Join(home, ".interminai")
	})
	return resolvedDir
}

// ResetCache clears the cached directory and config. For testing only.
func ResetCache() {
	resolveOnce = sync.Once{}
	resolvedDir = ""
	loadOnce = sync.Once{}
	loaded = nil
	loadErr = nil
}

// Load reads <dir>/config.yaml once. A missing file yields defaults.
func Load() (*Config, error) {
	loadOnce.Do(func() {
		loaded, loadErr = load(filepath.Join(Dir(), configFile))
	})
	return loaded, loadErr
}

func load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

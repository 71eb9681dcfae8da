package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configFileName = "obsidian-sync.toml"

// ErrNotFound means no config file exists at any of the search paths. The
// hook treats this as "sync not set up" and exits quietly.
var ErrNotFound = errors.New("no obsidian-sync config found")

// Config is the fully-merged hook configuration. It is loaded once per
// process invocation and immutable afterwards.
type Config struct {
	VaultPath          string
	BaseFolder         string
	ObservationsFolder string
	SummariesFolder    string
	SyncObservations   bool
	SyncSummaries      bool
	Enabled            bool
	TrackedTools       []string
	LogLevel           string
}

// tomlConfig mirrors the on-disk file. Optional booleans are pointers so an
// absent key can be told apart from an explicit false.
type tomlConfig struct {
	VaultPath          string   `toml:"vault_path"`
	BaseFolder         string   `toml:"base_folder"`
	ObservationsFolder string   `toml:"observations_folder"`
	SummariesFolder    string   `toml:"summaries_folder"`
	SyncObservations   *bool    `toml:"sync_observations"`
	SyncSummaries      *bool    `toml:"sync_summaries"`
	Enabled            *bool    `toml:"enabled"`
	TrackedTools       []string `toml:"tracked_tools"`
	LogLevel           string   `toml:"log_level"`
}

// Default returns the configuration applied for keys the file leaves unset.
func Default() Config {
	return Config{
		BaseFolder:       "ClaudeCode",
		SyncObservations: true,
		SyncSummaries:    true,
		Enabled:          true,
		TrackedTools:     []string{"Edit", "Write", "Bash"},
		LogLevel:         "info",
	}
}

// searchPaths returns candidate config locations, project level first so it
// overrides the user level.
func searchPaths(cwd string) []string {
	paths := []string{filepath.Join(cwd, ".claude", configFileName)}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".claude", configFileName))
	}
	return paths
}

// Load reads the first config file found under <cwd>/.claude or ~/.claude,
// merges defaults, and validates that a vault path is set. Returns
// ErrNotFound when no file exists.
func Load(cwd string) (*Config, error) {
	for _, path := range searchPaths(cwd) {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		var tc tomlConfig
		if _, err := toml.DecodeFile(path, &tc); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		cfg := merge(tc)
		if cfg.VaultPath == "" {
			return nil, fmt.Errorf("config %s: vault_path is required", path)
		}
		return &cfg, nil
	}

	return nil, ErrNotFound
}

func merge(tc tomlConfig) Config {
	cfg := Default()
	cfg.VaultPath = tc.VaultPath
	if tc.BaseFolder != "" {
		cfg.BaseFolder = tc.BaseFolder
	}
	cfg.ObservationsFolder = tc.ObservationsFolder
	cfg.SummariesFolder = tc.SummariesFolder
	if tc.SyncObservations != nil {
		cfg.SyncObservations = *tc.SyncObservations
	}
	if tc.SyncSummaries != nil {
		cfg.SyncSummaries = *tc.SyncSummaries
	}
	if tc.Enabled != nil {
		cfg.Enabled = *tc.Enabled
	}
	if tc.TrackedTools != nil {
		cfg.TrackedTools = tc.TrackedTools
	}
	if tc.LogLevel != "" {
		cfg.LogLevel = tc.LogLevel
	}
	return cfg
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.config/taskdeck/taskdeck.toml or ~/.taskdeck.toml)
// 3. Project config file (.taskdeck.toml in the current directory)
// 4. Environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	for _, path := range []string{findUserConfigFile(), findProjectConfigFile()} {
		if path == "" {
			continue
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	// Expand ~ in paths after all sources have had their say.
	cfg.TodoFile = expandPath(cfg.TodoFile)
	cfg.BackupDir = expandPath(cfg.BackupDir)

	return cfg, nil
}

// findUserConfigFile returns the first existing user-level config file.
func findUserConfigFile() string {
	var candidates []string
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "taskdeck", "taskdeck.toml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".taskdeck.toml"))
	}
	for _, path := range candidates {
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path
		}
	}
	return ""
}

// findProjectConfigFile returns the project-local config file, if any.
func findProjectConfigFile() string {
	path := ".taskdeck.toml"
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return path
	}
	return ""
}

// loadFromEnv overrides config from TASKDECK_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKDECK_TODO_FILE"); v != "" {
		cfg.TodoFile = v
	}
	if v := os.Getenv("TASKDECK_BACKUP_DIR"); v != "" {
		cfg.BackupDir = v
	}
	if v := os.Getenv("TASKDECK_DEFAULT_PRIORITY"); v != "" {
		cfg.Behavior.DefaultPriority = v
	}
	if v := os.Getenv("TASKDECK_MERGE_STRATEGY"); v != "" {
		cfg.Behavior.MergeStrategy = v
	}
	if v := os.Getenv("TASKDECK_OVERDUE_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			cfg.Behavior.OverdueThresholdDays = days
		}
	}
}

// expandPath expands a leading ~ and any environment variables in a path.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return expanded
	}
	if strings.HasPrefix(expanded, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, expanded[2:])
		}
	}
	return expanded
}

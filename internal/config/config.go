// Package config handles configuration loading and defaults.
package config

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/avikram/taskdeck/internal/task"
)

// Default values.
const (
	DefaultTodoFile       = "~/.taskdeck/tasks.json"
	DefaultBackupDir      = "~/.taskdeck/backups"
	DefaultDateFormat     = "2006-01-02 15:04"
	DefaultPriority       = "medium"
	DefaultMergeStrategy  = "append"
	DefaultOverdueDays    = 7
	DefaultShowTimestamps = true
)

// Config holds the full configuration for taskdeck.
type Config struct {
	// Paths
	TodoFile  string `toml:"todo_file"`
	BackupDir string `toml:"backup_dir"`

	Display  DisplayConfig  `toml:"display"`
	Behavior BehaviorConfig `toml:"behavior"`
}

// DisplayConfig controls how tasks are rendered.
type DisplayConfig struct {
	DateFormat     string      `toml:"date_format"` // Go time layout
	ShowTimestamps bool        `toml:"show_timestamps"`
	Colors         ColorConfig `toml:"colors"`
}

// ColorConfig maps priorities to terminal colors (ANSI codes or hex,
// anything lipgloss accepts).
type ColorConfig struct {
	Low    string `toml:"low"`
	Medium string `toml:"medium"`
	High   string `toml:"high"`
}

// BehaviorConfig controls command behavior.
type BehaviorConfig struct {
	DefaultPriority      string `toml:"default_priority"`
	ConfirmDelete        bool   `toml:"confirm_delete"`
	MergeStrategy        string `toml:"merge_strategy"`
	OverdueThresholdDays int    `toml:"overdue_threshold_days"`
}

// setDefaults fills cfg with the built-in defaults.
func setDefaults(cfg *Config) {
	cfg.TodoFile = DefaultTodoFile
	cfg.BackupDir = DefaultBackupDir
	cfg.Display = DisplayConfig{
		DateFormat:     DefaultDateFormat,
		ShowTimestamps: DefaultShowTimestamps,
		Colors: ColorConfig{
			Low:    "2", // green
			Medium: "3", // yellow
			High:   "1", // red
		},
	}
	cfg.Behavior = BehaviorConfig{
		DefaultPriority:      DefaultPriority,
		MergeStrategy:        DefaultMergeStrategy,
		OverdueThresholdDays: DefaultOverdueDays,
	}
}

// PriorityColor returns the configured color for a priority level.
func (c *Config) PriorityColor(p task.Priority) string {
	switch p {
	case task.PriorityLow:
		return c.Display.Colors.Low
	case task.PriorityHigh:
		return c.Display.Colors.High
	default:
		return c.Display.Colors.Medium
	}
}

// DefaultTaskPriority returns the configured default priority, falling back
// to medium for unknown values.
func (c *Config) DefaultTaskPriority() task.Priority {
	p := task.Priority(c.Behavior.DefaultPriority)
	if !p.Valid() {
		return task.PriorityMedium
	}
	return p
}

// Write renders the effective configuration as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

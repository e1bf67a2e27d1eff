package interchange

import (
	"strings"

	"github.com/avikram/taskdeck/internal/task"
)

// Strategy selects how an incoming task list combines with an existing one.
type Strategy string

const (
	// StrategyAppend concatenates incoming after existing, as-is. No id
	// renumbering, no duplicate detection. The default.
	StrategyAppend Strategy = "append"
	// StrategyReplace discards the existing list entirely.
	StrategyReplace Strategy = "replace"
	// StrategySkipDuplicates appends only incoming tasks whose description
	// is not already present, compared case-insensitively.
	StrategySkipDuplicates Strategy = "skip_duplicates"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyAppend, StrategyReplace, StrategySkipDuplicates:
		return true
	}
	return false
}

// Merge combines incoming with existing under the given strategy and
// returns a fresh list; neither input is mutated. An unknown strategy
// behaves as append.
func Merge(existing, incoming task.List, strategy Strategy) task.List {
	switch strategy {
	case StrategyReplace:
		merged := make(task.List, len(incoming))
		copy(merged, incoming)
		return merged

	case StrategySkipDuplicates:
		merged := make(task.List, len(existing), len(existing)+len(incoming))
		copy(merged, existing)
		seen := make(map[string]bool, len(existing))
		for _, t := range existing {
			seen[strings.ToLower(t.Text)] = true
		}
		for _, t := range incoming {
			key := strings.ToLower(t.Text)
			if seen[key] {
				continue
			}
			merged = append(merged, t)
			seen[key] = true
		}
		return merged

	default:
		merged := make(task.List, 0, len(existing)+len(incoming))
		merged = append(merged, existing...)
		merged = append(merged, incoming...)
		return merged
	}
}

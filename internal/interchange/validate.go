package interchange

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avikram/taskdeck/internal/task"
)

// Validate turns candidate records into tasks, repairing what it can and
// rejecting what it cannot. Processing is positional, 1-based, in input
// order. Only two defects reject a record: a non-record shape and a missing
// or empty description. Everything else is coerced, some coercions with a
// warning. Warnings are returned, never raised, and never abort the batch.
func Validate(candidates []any) (task.List, []string) {
	valid := task.List{}
	warnings := []string{}

	for i, candidate := range candidates {
		pos := i + 1

		record, ok := candidate.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("Task %d: Not a valid dictionary", pos))
			continue
		}

		text, ok := record["task"].(string)
		if !ok || strings.TrimSpace(text) == "" {
			warnings = append(warnings, fmt.Sprintf("Task %d: Missing or empty 'task' field", pos))
			continue
		}

		t := task.Task{Text: text}

		priority := task.PriorityMedium
		if raw, ok := record["priority"]; ok {
			if p, isString := raw.(string); isString && task.Priority(p).Valid() {
				priority = task.Priority(p)
			} else {
				warnings = append(warnings, fmt.Sprintf("Task %d: Invalid priority '%v', using 'medium'", pos, raw))
			}
		}
		t.Priority = priority

		// Non-boolean completed flags coerce to false without a warning.
		if completed, ok := record["completed"].(bool); ok {
			t.Completed = completed
		}

		// A missing or non-integer id takes the record's position.
		if id, ok := toInt(record["id"]); ok {
			t.ID = id
		} else {
			t.ID = pos
		}

		if raw, ok := record["created_at"]; !ok {
			t.CreatedAt = task.Now()
		} else if s, isString := raw.(string); isString && parseable(s) {
			t.CreatedAt = s
		} else {
			warnings = append(warnings, fmt.Sprintf("Task %d: Invalid date format, using current time", pos))
			t.CreatedAt = task.Now()
		}

		valid = append(valid, t)
	}

	return valid, warnings
}

// toInt accepts the integer shapes candidates arrive in: native ints from
// the line decoders and json.Number from the record decoder. Floats are not
// integers, matching the positional-replacement rule.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

func parseable(s string) bool {
	_, err := task.ParseTimestamp(s)
	return err == nil
}

package interchange

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/avikram/taskdeck/internal/task"
)

// Decoders return candidate records: loose []any values, record-shaped ones
// being map[string]any. Shape and field defects deliberately survive to
// Validate, which owns all coercion and rejection policy. Decoders only fail
// on malformed input as a whole.

// Decode dispatches raw input to the decoder for the given format.
// The document format has no decoder.
func Decode(data []byte, f Format) ([]any, error) {
	switch f {
	case FormatRecord:
		return DecodeRecord(data)
	case FormatTable:
		return DecodeTable(data)
	case FormatChecklist:
		return DecodeChecklist(data)
	case FormatText:
		return DecodeText(data)
	case FormatDocument:
		return nil, fmt.Errorf("format %q cannot be decoded", f)
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
}

// DecodeRecord parses a structured JSON value. A top-level array is the
// candidate list itself; a top-level object must carry the list under
// "tasks" or "task_list". Numbers are kept as json.Number so Validate can
// tell integers from floats.
func DecodeRecord(data []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse record document: %w", err)
	}

	switch doc := v.(type) {
	case []any:
		return doc, nil
	case map[string]any:
		for _, key := range []string{"tasks", "task_list"} {
			if raw, ok := doc[key]; ok {
				list, ok := raw.([]any)
				if !ok {
					return nil, fmt.Errorf("%q is not a list", key)
				}
				return list, nil
			}
		}
		return nil, fmt.Errorf("no task list found in record document")
	default:
		return nil, fmt.Errorf("record document is not a list or mapping")
	}
}

// DecodeTable parses CSV input: a header row naming the columns, then one
// row per task. Columns are matched by header name; a missing column takes
// the field default, while a present-but-empty cell flows through to
// Validate as-is. Input with no data rows is a failure, mirroring the table
// encoder's refusal to emit an empty table.
func DecodeTable(data []byte) ([]any, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse table: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no tasks found in table input")
	}

	cols := map[string]int{}
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	cell := func(row []string, name string) (string, bool) {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return row[i], true
	}

	candidates := make([]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		id := 0
		if v, ok := cell(row, "id"); ok && isDigits(v) {
			id, _ = strconv.Atoi(v)
		}
		text, _ := cell(row, "task")
		priority, ok := cell(row, "priority")
		if !ok {
			priority = string(task.PriorityMedium)
		}
		completedCell, _ := cell(row, "completed")
		created, ok := cell(row, "created_at")
		if !ok {
			created = task.Now()
		}

		candidates = append(candidates, map[string]any{
			"id":         id,
			"task":       text,
			"priority":   priority,
			"completed":  isTruthy(completedCell),
			"created_at": created,
		})
	}
	return candidates, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// completedPrefixes mark a text-format line as done.
var completedPrefixes = []string{"x ", "X ", "✓ ", "[x]", "[X]"}

// completedCutset is trimmed off the front of a line once a completed
// prefix matched. It is a character set, not a string match, so text that
// happens to start with one of these runes is consumed too. That quirk is
// part of the format.
const completedCutset = "xX✓ []"

// DecodeText parses the line-oriented plain text format. Blank lines and
// `#` comment lines are skipped. A leading `[tag]` sets the priority when
// the tag is low/medium/high (and is stripped either way); a completion
// prefix then marks the task done. Whatever remains, even nothing, is the
// description. IDs are assigned sequentially in file order and created_at
// is stamped at decode time.
func DecodeText(data []byte) ([]any, error) {
	var candidates []any

	id := 1
	for _, line := range strings.Split(string(data), "\n") {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}

		priority := string(task.PriorityMedium)
		if strings.HasPrefix(s, "[") {
			if end := strings.Index(s, "]"); end != -1 {
				tag := strings.ToLower(strings.TrimSpace(s[1:end]))
				if task.Priority(tag).Valid() {
					priority = tag
				}
				s = strings.TrimSpace(s[end+1:])
			}
		}

		completed := false
		for _, prefix := range completedPrefixes {
			if strings.HasPrefix(s, prefix) {
				completed = true
				s = strings.TrimSpace(strings.TrimLeft(s, completedCutset))
				break
			}
		}

		candidates = append(candidates, map[string]any{
			"id":         id,
			"task":       s,
			"priority":   priority,
			"completed":  completed,
			"created_at": task.Now(),
		})
		id++
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no tasks found in text input")
	}
	return candidates, nil
}

// emphasisMarkers are removed from checklist descriptions as literal
// substrings, not as matched pairs.
var emphasisMarkers = []string{"**", "*", "__", "_"}

// descDelimiters truncate a checklist description at trailing annotations
// such as the exported date. Tried in this order; only the first hit cuts.
var descDelimiters = []string{" (", " [", " _"}

// DecodeChecklist parses the heading-grouped markdown checkbox format.
// `##` headings set the carried priority context (substring match on
// high/low/medium); `- [ ]` / `- [x]` lines become tasks under the current
// context. Descriptions that come out empty after stripping emphasis and
// annotations are dropped, unlike the text decoder which keeps them.
func DecodeChecklist(data []byte) ([]any, error) {
	var candidates []any

	id := 1
	current := string(task.PriorityMedium)
	for _, line := range strings.Split(string(data), "\n") {
		s := strings.TrimSpace(line)

		if strings.HasPrefix(s, "##") {
			header := strings.ToLower(strings.TrimSpace(strings.TrimLeft(s, "#")))
			switch {
			case strings.Contains(header, "high"):
				current = string(task.PriorityHigh)
			case strings.Contains(header, "low"):
				current = string(task.PriorityLow)
			case strings.Contains(header, "medium"):
				current = string(task.PriorityMedium)
			}
			continue
		}

		if !strings.HasPrefix(s, "- [") || len(s) < 4 {
			continue
		}
		completed := s[3] == 'x' || s[3] == 'X'

		text := ""
		if len(s) > 6 {
			text = strings.TrimSpace(s[6:])
		}
		for _, marker := range emphasisMarkers {
			text = strings.ReplaceAll(text, marker, "")
		}
		if strings.ContainsAny(text, "([") {
			for _, delim := range descDelimiters {
				if i := strings.Index(text, delim); i != -1 {
					text = strings.TrimSpace(text[:i])
					break
				}
			}
		}
		if text == "" {
			continue
		}

		candidates = append(candidates, map[string]any{
			"id":         id,
			"task":       text,
			"priority":   current,
			"completed":  completed,
			"created_at": task.Now(),
		})
		id++
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no tasks found in checklist input")
	}
	return candidates, nil
}

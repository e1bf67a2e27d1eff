// Package task defines the task record model and the working list.
package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Priority represents a task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Weight returns the numeric weight used for priority ordering and scoring.
// Unknown priorities weigh the same as medium.
func (p Priority) Weight() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityHigh:
		return 3
	default:
		return 2
	}
}

// Task represents a single task in the list.
//
// CreatedAt is kept as the serialized timestamp string rather than a
// time.Time: foreign files may carry values we cannot parse, and encoders
// must echo the stored value back out unchanged. Use ParseTimestamp to
// interpret it.
type Task struct {
	ID        int      `json:"id"`
	Text      string   `json:"task"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
	CreatedAt string   `json:"created_at"`
}

// List is an ordered collection of tasks. Insertion order is significant:
// encoders emit tasks in list order.
type List []Task

// TimeLayout is the layout tasks are stamped with.
const TimeLayout = "2006-01-02T15:04:05"

// timeLayouts are the accepted created_at layouts, tried in order.
var timeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	TimeLayout,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Now returns the current local time in the canonical timestamp format.
func Now() string {
	return time.Now().Format(TimeLayout)
}

// ParseTimestamp parses a stored created_at value. It accepts the canonical
// layout plus a few common ISO-8601 variants (fractional seconds, space
// separator, date only).
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// New creates a task with the given id, stamped with the current time.
func New(id int, text string, priority Priority) Task {
	if !priority.Valid() {
		priority = PriorityMedium
	}
	return Task{
		ID:        id,
		Text:      text,
		Priority:  priority,
		CreatedAt: Now(),
	}
}

// Age returns the task age in whole days, or -1 if created_at cannot be
// parsed.
func (t Task) Age() int {
	created, err := ParseTimestamp(t.CreatedAt)
	if err != nil {
		return -1
	}
	return int(time.Since(created).Hours() / 24)
}

// Overdue reports whether a pending task is at least threshold days old.
// Completed tasks are never overdue.
func (t Task) Overdue(thresholdDays int) bool {
	if t.Completed {
		return false
	}
	age := t.Age()
	return age >= 0 && age >= thresholdDays
}

// NextID returns one more than the highest id in the list, or 1 for an
// empty list.
func (l List) NextID() int {
	max := 0
	for _, t := range l {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// Get returns a pointer to the task with the given id, or nil.
func (l List) Get(id int) *Task {
	for i := range l {
		if l[i].ID == id {
			return &l[i]
		}
	}
	return nil
}

// Complete marks the task with the given id as completed.
func (l List) Complete(id int) error {
	t := l.Get(id)
	if t == nil {
		return fmt.Errorf("task %d not found", id)
	}
	t.Completed = true
	return nil
}

// Remove deletes the task with the given id and returns the new list.
func (l List) Remove(id int) (List, error) {
	for i := range l {
		if l[i].ID == id {
			return append(l[:i:i], l[i+1:]...), nil
		}
	}
	return l, fmt.Errorf("task %d not found", id)
}

// ClearCompleted drops completed tasks and returns the new list and the
// number of tasks removed.
func (l List) ClearCompleted() (List, int) {
	kept := make(List, 0, len(l))
	for _, t := range l {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	return kept, len(l) - len(kept)
}

// Reindex renumbers tasks 1..n in list order.
func (l List) Reindex() {
	for i := range l {
		l[i].ID = i + 1
	}
}

// Load reads the working list from path. A missing file is an empty list,
// not an error.
func Load(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return List{}, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	return l, nil
}

// Save writes the working list to path with 2-space indentation, creating
// the parent directory if needed.
func (l List) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task list: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create task dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}

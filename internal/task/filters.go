package task

import (
	"sort"
	"strings"
	"time"
)

// ByPriority returns the tasks with the given priority, in list order.
func (l List) ByPriority(p Priority) List {
	out := List{}
	for _, t := range l {
		if t.Priority == p {
			out = append(out, t)
		}
	}
	return out
}

// ByStatus returns the tasks whose completed flag matches.
func (l List) ByStatus(completed bool) List {
	out := List{}
	for _, t := range l {
		if t.Completed == completed {
			out = append(out, t)
		}
	}
	return out
}

// Search returns the tasks whose description contains keyword,
// case-insensitively. An empty keyword matches everything.
func (l List) Search(keyword string) List {
	if keyword == "" {
		return l
	}
	keyword = strings.ToLower(keyword)
	out := List{}
	for _, t := range l {
		if strings.Contains(strings.ToLower(t.Text), keyword) {
			out = append(out, t)
		}
	}
	return out
}

// ByDateRange returns the tasks created within [start, end]. A nil bound is
// open. Tasks with unparseable timestamps are excluded.
func (l List) ByDateRange(start, end *time.Time) List {
	out := List{}
	for _, t := range l {
		created, err := ParseTimestamp(t.CreatedAt)
		if err != nil {
			continue
		}
		if start != nil && created.Before(*start) {
			continue
		}
		if end != nil && created.After(*end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Overdue returns the pending tasks at least thresholdDays old.
func (l List) Overdue(thresholdDays int) List {
	out := List{}
	for _, t := range l.ByStatus(false) {
		if t.Overdue(thresholdDays) {
			out = append(out, t)
		}
	}
	return out
}

// SortBy returns a copy of the list ordered by the given key: "priority",
// "created_at", "task", or "id" (the default for unknown keys). The sort is
// stable so equal elements keep their list order.
func (l List) SortBy(key string, reverse bool) List {
	out := make(List, len(l))
	copy(out, l)

	var less func(a, b Task) bool
	switch key {
	case "priority":
		less = func(a, b Task) bool { return a.Priority.Weight() < b.Priority.Weight() }
	case "created_at":
		less = func(a, b Task) bool { return a.CreatedAt < b.CreatedAt }
	case "task":
		less = func(a, b Task) bool {
			return strings.ToLower(a.Text) < strings.ToLower(b.Text)
		}
	default:
		less = func(a, b Task) bool { return a.ID < b.ID }
	}

	sort.SliceStable(out, func(i, j int) bool {
		if reverse {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Filter narrows a list by several criteria at once. Zero-valued fields are
// ignored.
type Filter struct {
	Priority  Priority // empty means any
	Completed *bool    // nil means any
	Keyword   string   // empty means any
}

// Apply runs the combined filter over the list.
func (f Filter) Apply(l List) List {
	out := l
	if f.Priority != "" {
		out = out.ByPriority(f.Priority)
	}
	if f.Completed != nil {
		out = out.ByStatus(*f.Completed)
	}
	if f.Keyword != "" {
		out = out.Search(f.Keyword)
	}
	return out
}

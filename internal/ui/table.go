// Package ui provides terminal rendering for task lists: a styled table
// and stats panel for one-shot commands, and an interactive viewer.
package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/avikram/taskdeck/internal/config"
	"github.com/avikram/taskdeck/internal/task"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	cellStyle   = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pendStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 2)
)

// RenderTable renders the task list as a styled table. Column colors come
// from the configuration; the created column is omitted when timestamps are
// turned off.
func RenderTable(l task.List, cfg *config.Config) string {
	if len(l) == 0 {
		return "No tasks found. Add one with 'taskdeck add <task>'\n"
	}

	headers := []string{"ID", "Task", "Priority", "Status"}
	if cfg.Display.ShowTimestamps {
		headers = append(headers, "Created")
	}

	var rows [][]string
	for _, t := range l {
		status := "○ Pending"
		if t.Completed {
			status = "✓ Done"
		}
		row := []string{
			strconv.Itoa(t.ID),
			t.Text,
			strings.ToUpper(string(t.Priority)),
			status,
		}
		if cfg.Display.ShowTimestamps {
			row = append(row, formatCreated(t.CreatedAt, cfg.Display.DateFormat))
		}
		rows = append(rows, row)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Inherit(headerStyle)
			}
			switch col {
			case 0:
				return cellStyle.Inherit(idStyle)
			case 2:
				color := cfg.PriorityColor(l[row].Priority)
				return cellStyle.Foreground(lipgloss.Color(color))
			case 3:
				if l[row].Completed {
					return cellStyle.Inherit(doneStyle)
				}
				return cellStyle.Inherit(pendStyle)
			default:
				return cellStyle
			}
		})

	return titleStyle.Render("📋 Your Todo List") + "\n" + tbl.String() + "\n"
}

// RenderStats renders the statistics panel.
func RenderStats(s task.Stats, productivity float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Tasks: %d\n", s.Total)
	fmt.Fprintf(&b, "%s %d\n", doneStyle.Render("✓ Completed:"), s.Completed)
	fmt.Fprintf(&b, "%s %d\n", pendStyle.Render("○ Pending:"), s.Pending)
	fmt.Fprintf(&b, "Completion Rate: %.2f%%\n", s.CompletionRate)
	fmt.Fprintf(&b, "By Priority: high %d / medium %d / low %d\n",
		s.ByPriority[task.PriorityHigh], s.ByPriority[task.PriorityMedium], s.ByPriority[task.PriorityLow])
	fmt.Fprintf(&b, "High Priority Pending: %d\n", s.HighPriorityPending)
	fmt.Fprintf(&b, "Avg Age: %.1f days (oldest pending: %d days)\n", s.AvgAgeDays, s.OldestPendingDays)
	fmt.Fprintf(&b, "Productivity Score: %.2f", productivity)

	title := titleStyle.Render("📊 Todo Statistics")
	return title + "\n" + panelStyle.Render(b.String()) + "\n"
}

// formatCreated renders a stored timestamp with the configured layout,
// passing the raw value through when it does not parse.
func formatCreated(created, layout string) string {
	t, err := task.ParseTimestamp(created)
	if err != nil {
		return created
	}
	return t.Format(layout)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}

package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avikram/taskdeck/internal/config"
	"github.com/avikram/taskdeck/internal/task"
)

// RunTUI starts the interactive task viewer over the working list at path.
func RunTUI(ctx context.Context, cfg *config.Config, path string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(cfg, path)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	cfg      *config.Config
	path     string
	tasks    task.List
	loadErr  error
	filter   task.Priority // empty means all priorities
	hideDone bool
	showHelp bool
}

func newTUIModel(cfg *config.Config, path string) *tuiModel {
	return &tuiModel{cfg: cfg, path: path}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "d":
			m.hideDone = !m.hideDone
		case "h", "?":
			m.showHelp = !m.showHelp
		case "1":
			m.filter = task.PriorityHigh
		case "2":
			m.filter = task.PriorityMedium
		case "3":
			m.filter = task.PriorityLow
		case "0":
			m.filter = ""
		}
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("taskdeck") + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}

	if m.filter != "" || m.hideDone {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filterLabel()))
	}

	visible := m.visibleTasks()
	b.WriteString(RenderTable(visible, m.cfg))

	stats := task.Statistics(m.tasks)
	fmt.Fprintf(&b, "\n%d total, %d done, %d pending (%d shown)\n",
		stats.Total, stats.Completed, stats.Pending, len(visible))

	writeFooter(&b)
	return b.String()
}

func (m *tuiModel) refresh() {
	tasks, err := task.Load(m.path)
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		return
	}
	m.loadErr = nil
	m.tasks = tasks
}

func (m *tuiModel) visibleTasks() task.List {
	f := task.Filter{Priority: m.filter}
	if m.hideDone {
		pending := false
		f.Completed = &pending
	}
	return f.Apply(m.tasks)
}

func (m *tuiModel) filterLabel() string {
	parts := []string{}
	if m.filter != "" {
		parts = append(parts, string(m.filter))
	}
	if m.hideDone {
		parts = append(parts, "pending only")
	}
	return strings.Join(parts, ", ")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keys:\n")
	b.WriteString("  1/2/3  filter by high/medium/low priority\n")
	b.WriteString("  0      clear priority filter\n")
	b.WriteString("  d      toggle completed tasks\n")
	b.WriteString("  r      reload the task file\n")
	b.WriteString("  h/?    toggle this help\n")
	b.WriteString("  q      quit\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("\n[q]uit [r]eload [d]one [1/2/3]priority [h]elp\n")
}

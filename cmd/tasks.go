package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/avikram/taskdeck/internal/config"
	"github.com/avikram/taskdeck/internal/task"
	"github.com/avikram/taskdeck/internal/ui"
)

// addCommand adds a new task to the working list.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck add", flag.ContinueOnError)
	priority := fs.String("priority", string(cfg.DefaultTaskPriority()), "Task priority (low|medium|high)")
	fs.StringVar(priority, "p", *priority, "Task priority (low|medium|high)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		return fmt.Errorf("usage: taskdeck add [-p priority] <task>")
	}
	p := task.Priority(strings.ToLower(*priority))
	if !p.Valid() {
		return fmt.Errorf("invalid priority %q (expected low|medium|high)", *priority)
	}

	tasks, err := task.Load(cfg.TodoFile)
	if err != nil {
		return err
	}
	t := task.New(tasks.NextID(), text, p)
	tasks = append(tasks, t)
	if err := tasks.Save(cfg.TodoFile); err != nil {
		return err
	}

	logger.Debug("task added", "id", t.ID, "file", cfg.TodoFile)
	fmt.Printf("✓ Added task: %s (Priority: %s)\n", t.Text, t.Priority)
	return nil
}

// listCommand prints the working list as a table, optionally filtered.
func listCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck list", flag.ContinueOnError)
	priority := fs.String("priority", "", "Only show tasks with this priority")
	pending := fs.Bool("pending", false, "Only show pending tasks")
	completed := fs.Bool("completed", false, "Only show completed tasks")
	search := fs.String("search", "", "Only show tasks containing this keyword")
	sortKey := fs.String("sort", "id", "Sort by id|priority|created_at|task")
	reverse := fs.Bool("reverse", false, "Reverse the sort order")
	overdue := fs.Bool("overdue", false, "Only show overdue pending tasks")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tasks, err := task.Load(cfg.TodoFile)
	if err != nil {
		return err
	}

	f := task.Filter{Priority: task.Priority(strings.ToLower(*priority)), Keyword: *search}
	if *pending {
		v := false
		f.Completed = &v
	} else if *completed {
		v := true
		f.Completed = &v
	}
	tasks = f.Apply(tasks)
	if *overdue {
		tasks = tasks.Overdue(cfg.Behavior.OverdueThresholdDays)
	}
	tasks = tasks.SortBy(*sortKey, *reverse)

	logger.Debug("listing tasks", "count", len(tasks), "file", cfg.TodoFile)
	fmt.Print(ui.RenderTable(tasks, cfg))
	return nil
}

// doneCommand marks a task as completed.
func doneCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	id, err := parseID(args, "done")
	if err != nil {
		return err
	}

	tasks, err := task.Load(cfg.TodoFile)
	if err != nil {
		return err
	}
	if err := tasks.Complete(id); err != nil {
		return err
	}
	if err := tasks.Save(cfg.TodoFile); err != nil {
		return err
	}
	fmt.Printf("✓ Marked task %d as completed\n", id)
	return nil
}

// deleteCommand removes a task, asking first when the config says so.
func deleteCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck rm", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	fs.BoolVar(yes, "y", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := parseID(fs.Args(), "rm")
	if err != nil {
		return err
	}

	tasks, err := task.Load(cfg.TodoFile)
	if err != nil {
		return err
	}
	t := tasks.Get(id)
	if t == nil {
		return fmt.Errorf("task %d not found", id)
	}

	if cfg.Behavior.ConfirmDelete && !*yes {
		if !confirm(fmt.Sprintf("Delete task %d (%s)?", id, t.Text)) {
			fmt.Println("Aborted")
			return nil
		}
	}

	removed := t.Text
	tasks, err = tasks.Remove(id)
	if err != nil {
		return err
	}
	if err := tasks.Save(cfg.TodoFile); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted task: %s\n", removed)
	return nil
}

// clearCommand drops every completed task.
func clearCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	tasks, err := task.Load(cfg.TodoFile)
	if err != nil {
		return err
	}
	tasks, cleared := tasks.ClearCompleted()
	if err := tasks.Save(cfg.TodoFile); err != nil {
		return err
	}
	if cleared > 0 {
		fmt.Printf("✓ Cleared %d completed task(s)\n", cleared)
	} else {
		fmt.Println("No completed tasks to clear")
	}
	return nil
}

// statsCommand prints the statistics panel.
func statsCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	tasks, err := task.Load(cfg.TodoFile)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}
	fmt.Print(ui.RenderStats(task.Statistics(tasks), task.ProductivityScore(tasks)))
	return nil
}

// tuiCommand launches the interactive viewer.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	return ui.RunTUI(ctx, cfg, cfg.TodoFile)
}

// configCommand prints the effective configuration as TOML.
func configCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskdeck config", flag.ContinueOnError)
	initFile := fs.Bool("init", false, "Write the effective config to ~/.taskdeck.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *initFile {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		path := filepath.Join(home, ".taskdeck.toml")
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			return fmt.Errorf("creating config file: %w", err)
		}
		defer f.Close()
		if err := cfg.Write(f); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote config to %s\n", path)
		return nil
	}

	return cfg.Write(os.Stdout)
}

func parseID(args []string, command string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: taskdeck %s <id>", command)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", args[0])
	}
	return id, nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// Package cmd implements the CLI command structure for taskdeck.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/avikram/taskdeck/internal/config"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskdeck CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskdeck", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")
	verbose := fs.Bool("verbose", false, "Enable debug logging")
	file := fs.String("file", "", "Task file to operate on (overrides config)")
	fs.StringVar(file, "f", "", "Task file to operate on (overrides config)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *file != "" {
		cfg.TodoFile = *file
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	subcommand := "list"
	remaining := fs.Args()
	if len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
		subcommand = remaining[0]
		remaining = remaining[1:]
	}

	switch subcommand {
	case "add":
		return addCommand(cfg, logger, remaining)
	case "list", "ls":
		return listCommand(cfg, logger, remaining)
	case "done", "complete":
		return doneCommand(cfg, logger, remaining)
	case "rm", "delete":
		return deleteCommand(cfg, logger, remaining)
	case "clear":
		return clearCommand(cfg, logger, remaining)
	case "stats":
		return statsCommand(cfg, logger, remaining)
	case "export":
		return exportCommand(cfg, logger, remaining)
	case "import":
		return importCommand(cfg, logger, remaining)
	case "backup":
		return backupCommand(cfg, logger, remaining)
	case "restore":
		return restoreCommand(cfg, logger, remaining)
	case "config":
		return configCommand(cfg, remaining)
	case "tui":
		return tuiCommand(ctx, cfg, remaining)
	case "version", "--version":
		return versionCommand()
	case "help", "--help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func versionCommand() error {
	fmt.Printf("taskdeck version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskdeck - A personal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskdeck [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <task>       Add a new task")
	fmt.Fprintln(w, "  list             List tasks (default command)")
	fmt.Fprintln(w, "  done <id>        Mark a task as completed")
	fmt.Fprintln(w, "  rm <id>          Delete a task")
	fmt.Fprintln(w, "  clear            Remove all completed tasks")
	fmt.Fprintln(w, "  stats            Show task statistics")
	fmt.Fprintln(w, "  export <file>    Export tasks (json, csv, md, html, txt)")
	fmt.Fprintln(w, "  import <file>    Import tasks from a file")
	fmt.Fprintln(w, "  backup           Write a timestamped backup")
	fmt.Fprintln(w, "  restore <file>   Restore tasks from a backup")
	fmt.Fprintln(w, "  config           Show the effective configuration")
	fmt.Fprintln(w, "  tui              Launch the interactive viewer")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

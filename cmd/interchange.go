package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/avikram/taskdeck/internal/config"
	"github.com/avikram/taskdeck/internal/interchange"
	"github.com/avikram/taskdeck/internal/task"
)

// exportCommand writes the working list to a file in one of the
// interchange formats, picked from --format or the file extension.
func exportCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck export", flag.ContinueOnError)
	format := fs.String("format", "", "Output format (json|csv|md|html|txt); default from extension")
	compact := fs.Bool("compact", false, "Write compact JSON (record format only)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) != 1 {
		return fmt.Errorf("usage: taskdeck export [--format f] <file>")
	}
	path := fs.Args()[0]

	f, err := interchange.ResolveFormat(path, *format)
	if err != nil {
		return err
	}

	tasks, err := task.Load(cfg.TodoFile)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer out.Close()

	if f == interchange.FormatRecord {
		err = interchange.EncodeRecord(out, tasks, !*compact)
	} else {
		err = interchange.Encode(out, tasks, f)
	}
	if err != nil {
		return err
	}

	logger.Debug("exported tasks", "format", f, "count", len(tasks), "path", path)
	fmt.Printf("✓ Exported %d task(s) to %s (%s)\n", len(tasks), path, f)
	return nil
}

// importCommand decodes a foreign file, validates it, and merges the result
// into the working list.
func importCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck import", flag.ContinueOnError)
	format := fs.String("format", "", "Input format (json|csv|md|txt); default from extension")
	merge := fs.String("merge", cfg.Behavior.MergeStrategy, "Merge strategy (append|replace|skip_duplicates)")
	strict := fs.Bool("strict", false, "Validate record-format input against the JSON Schema first")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) != 1 {
		return fmt.Errorf("usage: taskdeck import [--format f] [--merge strategy] <file>")
	}
	path := fs.Args()[0]

	strategy := interchange.Strategy(*merge)
	if !strategy.Valid() {
		return fmt.Errorf("unknown merge strategy %q", *merge)
	}

	f, err := interchange.ResolveFormat(path, *format)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	if *strict && f == interchange.FormatRecord {
		violations, err := interchange.CheckSchema(data)
		if err != nil {
			return err
		}
		if len(violations) > 0 {
			for _, v := range violations {
				logger.Error(v)
			}
			return fmt.Errorf("schema validation failed with %d violation(s)", len(violations))
		}
	}

	candidates, err := interchange.Decode(data, f)
	if err != nil {
		return err
	}

	incoming, warnings := interchange.Validate(candidates)
	for _, w := range warnings {
		logger.Warn(w)
	}

	existing, err := task.Load(cfg.TodoFile)
	if err != nil {
		return err
	}
	merged := interchange.Merge(existing, incoming, strategy)
	if err := merged.Save(cfg.TodoFile); err != nil {
		return err
	}

	fmt.Printf("✓ Imported %d task(s) from %s (%s, %s): %d total\n",
		len(incoming), path, f, strategy, len(merged))
	return nil
}

// backupCommand snapshots the working list into the backup directory.
func backupCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck backup", flag.ContinueOnError)
	dir := fs.String("dir", cfg.BackupDir, "Backup directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tasks, err := task.Load(cfg.TodoFile)
	if err != nil {
		return err
	}

	path, err := interchange.Backup(tasks, *dir)
	if err != nil {
		return err
	}
	logger.Debug("backup written", "path", path, "count", len(tasks))
	fmt.Printf("✓ Backup written to %s\n", path)
	return nil
}

// restoreCommand replaces the working list with a validated backup.
func restoreCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskdeck restore <file>")
	}
	path := args[0]

	candidates, err := interchange.Restore(path)
	if err != nil {
		return err
	}
	tasks, warnings := interchange.Validate(candidates)
	for _, w := range warnings {
		logger.Warn(w)
	}

	if err := tasks.Save(cfg.TodoFile); err != nil {
		return err
	}
	fmt.Printf("✓ Restored %d task(s) from %s\n", len(tasks), path)
	return nil
}

package interchange

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avikram/taskdeck/internal/task"
)

// backupStamp is the timestamp layout embedded in backup filenames.
const backupStamp = "20060102_150405"

// DefaultBackupDir returns the fallback backup directory under the user's
// home, or the current directory if home cannot be determined.
func DefaultBackupDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskdeck_backups"
	}
	return filepath.Join(home, ".taskdeck", "backups")
}

// Backup writes a timestamped snapshot of the list in the record format
// under dir (DefaultBackupDir when empty), creating the directory if
// needed, and returns the path of the file it wrote.
func Backup(l task.List, dir string) (string, error) {
	if dir == "" {
		dir = DefaultBackupDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("task_backup_%s.json", time.Now().Format(backupStamp)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	defer f.Close()

	if err := EncodeRecord(f, l, true); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}

// Restore reads a backup file back into candidate records. It is exactly a
// record decode of the given path; callers run the result through Validate.
func Restore(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup file: %w", err)
	}
	return DecodeRecord(data)
}

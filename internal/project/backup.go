package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// BackupDir is created next to the project file.
const BackupDir = ".backups"

// backupStamp sorts lexically in time order.
const backupStamp = "20060102T150405.000000000"

// BackupProject copies the project at path into BackupDir under a
// timestamped name and keeps only the newest keep backups of that project.
// keep <= 0 disables pruning. It returns the backup path.
func BackupProject(path string, keep int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read project: %w", err)
	}

	dir := filepath.Join(filepath.Dir(path), BackupDir)
	base, ext := splitExt(filepath.Base(path))
	name := fmt.Sprintf("%s-%s%s", base, time.Now().UTC().Format(backupStamp), ext)
	target := filepath.Join(dir, name)

	if err := writeFile(target, data); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if keep > 0 {
		if err := PruneBackups(path, keep); err != nil {
			return target, err
		}
	}
	return target, nil
}

// ListBackups returns the backups of the project at path, oldest first.
func ListBackups(path string) ([]string, error) {
	dir := filepath.Join(filepath.Dir(path), BackupDir)
	base, ext := splitExt(filepath.Base(path))

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups []string
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || !strings.HasPrefix(n, base+"-") || !strings.HasSuffix(n, ext) {
			continue
		}
		backups = append(backups, filepath.Join(dir, n))
	}
	sort.Strings(backups)
	return backups, nil
}

// PruneBackups deletes all but the newest keep backups of the project.
func PruneBackups(path string, keep int) error {
	backups, err := ListBackups(path)
	if err != nil {
		return err
	}
	for len(backups) > keep {
		if err := os.Remove(backups[0]); err != nil {
			return fmt.Errorf("failed to prune backup: %w", err)
		}
		backups = backups[1:]
	}
	return nil
}

func splitExt(name string) (string, string) {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

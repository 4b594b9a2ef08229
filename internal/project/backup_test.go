package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBackupProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shelf.json")
	if err := SaveProject(path, sampleProject()); err != nil {
		t.Fatal(err)
	}

	backup, err := BackupProject(path, 0)
	if err != nil {
		t.Fatalf("BackupProject failed: %v", err)
	}
	if filepath.Dir(backup) != filepath.Join(dir, BackupDir) {
		t.Errorf("backup written to unexpected dir: %s", backup)
	}
	name := filepath.Base(backup)
	if !strings.HasPrefix(name, "shelf-") || !strings.HasSuffix(name, ".json") {
		t.Errorf("unexpected backup name %s", name)
	}

	original, _ := os.ReadFile(path)
	copied, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("backup not readable: %v", err)
	}
	if string(original) != string(copied) {
		t.Error("backup content differs from the project")
	}

	p, err := LoadProject(backup)
	if err != nil || p.Name != "Bookshelf" {
		t.Errorf("backup does not load as a project: %v", err)
	}
}

func TestBackupProjectPrunesOldest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shelf.yaml")
	if err := SaveProjectYAML(path, sampleProject()); err != nil {
		t.Fatal(err)
	}

	var made []string
	for i := 0; i < 5; i++ {
		b, err := BackupProject(path, 3)
		if err != nil {
			t.Fatalf("BackupProject failed: %v", err)
		}
		made = append(made, b)
	}

	backups, err := ListBackups(path)
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d: %v", len(backups), backups)
	}
	if backups[2] != made[4] {
		t.Errorf("newest backup should survive: got %v", backups)
	}
}

func TestListBackupsIgnoresOtherProjects(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	for _, p := range []string{a, b} {
		if err := SaveProject(p, sampleProject()); err != nil {
			t.Fatal(err)
		}
		if _, err := BackupProject(p, 0); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := ListBackups(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 || !strings.HasPrefix(filepath.Base(backups[0]), "a-") {
		t.Errorf("expected only a's backup, got %v", backups)
	}
}

func TestListBackupsNoDir(t *testing.T) {
	backups, err := ListBackups(filepath.Join(t.TempDir(), "none.json"))
	if err != nil || len(backups) != 0 {
		t.Errorf("expected no backups and no error, got %v, %v", backups, err)
	}
}

func TestBackupProjectMissingFile(t *testing.T) {
	if _, err := BackupProject(filepath.Join(t.TempDir(), "missing.json"), 3); err == nil {
		t.Fatal("expected error for missing project")
	}
}

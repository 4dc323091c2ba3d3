package backup

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pairrename/internal/pair"
)

func setupPair(t *testing.T) *pair.Pair {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"foo.h":   "#ifndef FOO_H_\n#define FOO_H_\n#endif\n",
		"foo.cpp": "#include \"foo.h\"\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
	p, err := pair.NewLocator(nil, nil).Locate(filepath.Join(dir, "foo.h"))
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	return p
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestBackupPaths(t *testing.T) {
	p := setupPair(t)
	m := NewManager(p, "")

	set := m.Set()
	if set.Header.BackupPath != filepath.Join(p.Folder(), ".BACKUP.h") {
		t.Errorf("header backup = %q", set.Header.BackupPath)
	}
	if set.Source.BackupPath != filepath.Join(p.Folder(), ".BACKUP.cpp") {
		t.Errorf("source backup = %q", set.Source.BackupPath)
	}

	custom := NewManager(p, ".orig").Set()
	if filepath.Base(custom.Header.BackupPath) != ".orig.h" {
		t.Errorf("custom marker backup = %q", custom.Header.BackupPath)
	}
}

func TestBackupCopiesAndOverwrites(t *testing.T) {
	p := setupPair(t)
	m := NewManager(p, "")

	if m.IsBackedUp() {
		t.Fatal("IsBackedUp true before Backup")
	}

	stale := filepath.Join(p.Folder(), ".BACKUP.h")
	if err := os.WriteFile(stale, []byte("stale"), 0644); err != nil {
		t.Fatalf("Failed to write stale backup: %v", err)
	}

	set, err := m.Backup()
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if !m.IsBackedUp() {
		t.Fatal("IsBackedUp false after Backup")
	}

	for _, e := range set.Entries() {
		if readFile(t, e.BackupPath) != readFile(t, e.OriginalPath) {
			t.Errorf("backup %s differs from original", e.BackupPath)
		}
		if e.Identity == nil {
			t.Errorf("no identity recorded for %s", e.OriginalPath)
			continue
		}
		if ok, err := e.Identity.Matches(e.BackupPath); err != nil || !ok {
			t.Errorf("backup %s does not match recorded identity", e.BackupPath)
		}
	}
}

func TestRestore(t *testing.T) {
	p := setupPair(t)
	m := NewManager(p, "")
	original := readFile(t, p.HeaderPath)

	if _, err := m.Backup(); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if err := os.WriteFile(p.HeaderPath, []byte("changed"), 0644); err != nil {
		t.Fatalf("Failed to modify header: %v", err)
	}

	restored, err := m.Restore()
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if !restored {
		t.Fatal("Restore reported nothing restored")
	}
	if got := readFile(t, p.HeaderPath); got != original {
		t.Errorf("header = %q, want %q", got, original)
	}
}

func TestRestoreRefusesModifiedBackup(t *testing.T) {
	p := setupPair(t)
	m := NewManager(p, "")

	if _, err := m.Backup(); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if err := os.WriteFile(m.Set().Source.BackupPath, []byte("tampered"), 0644); err != nil {
		t.Fatalf("Failed to modify backup: %v", err)
	}
	if err := os.WriteFile(p.HeaderPath, []byte("changed"), 0644); err != nil {
		t.Fatalf("Failed to modify header: %v", err)
	}

	if _, err := m.Restore(); err == nil {
		t.Fatal("expected error restoring a modified backup")
	}
	if got := readFile(t, p.HeaderPath); got != "changed" {
		t.Errorf("header restored despite a modified backup: %q", got)
	}
}

func TestRestoreWithoutBothBackupsIsNoop(t *testing.T) {
	p := setupPair(t)
	m := NewManager(p, "")

	if _, err := m.Backup(); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if err := os.Remove(m.Set().Source.BackupPath); err != nil {
		t.Fatalf("Failed to remove backup: %v", err)
	}
	if err := os.WriteFile(p.HeaderPath, []byte("changed"), 0644); err != nil {
		t.Fatalf("Failed to modify header: %v", err)
	}

	restored, err := m.Restore()
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored {
		t.Error("Restore should be a no-op with one backup missing")
	}
	if got := readFile(t, p.HeaderPath); got != "changed" {
		t.Errorf("header was modified by no-op restore: %q", got)
	}
}

func TestDelete(t *testing.T) {
	p := setupPair(t)
	m := NewManager(p, "")

	if _, err := m.Backup(); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if err := m.Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	for _, e := range m.Set().Entries() {
		if _, err := os.Stat(e.BackupPath); !os.IsNotExist(err) {
			t.Errorf("backup %s still exists", e.BackupPath)
		}
	}
	if err := m.Delete(); err != nil {
		t.Errorf("second Delete failed: %v", err)
	}
}

func TestDiff(t *testing.T) {
	p := setupPair(t)
	m := NewManager(p, "")

	if _, err := m.Backup(); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}
	if err := os.WriteFile(p.SourcePath, []byte("#include \"bar.h\"\n"), 0644); err != nil {
		t.Fatalf("Failed to modify source: %v", err)
	}

	var out bytes.Buffer
	if err := m.Diff(&out, p.HeaderPath, p.SourcePath); err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	diff := out.String()
	if !strings.Contains(diff, "-#include \"foo.h\"") || !strings.Contains(diff, "+#include \"bar.h\"") {
		t.Errorf("diff missing include change:\n%s", diff)
	}
	if strings.Contains(diff, "FOO_H_") {
		t.Errorf("unchanged header should produce no hunk:\n%s", diff)
	}
}

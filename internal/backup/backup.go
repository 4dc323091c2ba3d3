// Package backup copies a header/source pair aside before it is modified
// and can restore or discard those copies.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"pairrename/internal/journal"
	"pairrename/internal/pair"
)

// DefaultMarker names backup files: foo.h is backed up as .BACKUP.h.
const DefaultMarker = ".BACKUP"

// Entry tracks one backed up file.
type Entry struct {
	OriginalPath string
	BackupPath   string
	Identity     *journal.FileIdentity // content of the original when it was copied
}

// Set is the pair of backups taken for one rename.
type Set struct {
	Header Entry
	Source Entry
}

// Entries returns the header and source entries in that order.
func (s *Set) Entries() []Entry {
	return []Entry{s.Header, s.Source}
}

// Manager owns the backups of a single pair.
type Manager struct {
	set *Set
}

// NewManager creates a Manager for p. An empty marker uses DefaultMarker.
func NewManager(p *pair.Pair, marker string) *Manager {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Manager{
		set: &Set{
			Header: Entry{OriginalPath: p.HeaderPath, BackupPath: backupPath(p.HeaderPath, p.HeaderExtension, marker)},
			Source: Entry{OriginalPath: p.SourcePath, BackupPath: backupPath(p.SourcePath, p.SourceExtension, marker)},
		},
	}
}

// backupPath returns <folder>/<marker><ext>.
func backupPath(original, ext, marker string) string {
	return filepath.Join(filepath.Dir(original), marker+ext)
}

// Set returns the backup locations, with identities once Backup has run.
func (m *Manager) Set() *Set {
	return m.set
}

// Backup copies both files to their backup paths, silently replacing
// any backup left from an earlier run.
func (m *Manager) Backup() (*Set, error) {
	for _, e := range []*Entry{&m.set.Header, &m.set.Source} {
		id, err := journal.CaptureIdentity(e.OriginalPath)
		if err != nil {
			return nil, err
		}
		if err := copyFile(e.OriginalPath, e.BackupPath); err != nil {
			return nil, err
		}
		e.Identity = id
	}
	return m.set, nil
}

// IsBackedUp returns true if both backup files exist.
func (m *Manager) IsBackedUp() bool {
	return isFile(m.set.Header.BackupPath) && isFile(m.set.Source.BackupPath)
}

// Restore copies the backups over the original paths.
// It does nothing and returns false unless both backups exist, and fails
// without copying anything if a backup no longer matches the original it was taken from.
func (m *Manager) Restore() (bool, error) {
	if !m.IsBackedUp() {
		return false, nil
	}
	for _, e := range m.set.Entries() {
		if e.Identity == nil {
			continue
		}
		ok, err := e.Identity.Matches(e.BackupPath)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, fmt.Errorf("backup %s was modified since it was taken", e.BackupPath)
		}
	}
	for _, e := range m.set.Entries() {
		if err := copyFile(e.BackupPath, e.OriginalPath); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Delete removes both backup files. A backup that is already gone is not an error.
func (m *Manager) Delete() error {
	for _, e := range m.set.Entries() {
		if err := os.Remove(e.BackupPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete backup: %w", err)
		}
	}
	return nil
}

// Diff writes a unified diff of the source backup against currentSource,
// then of the header backup against currentHeader. It is advisory output only.
func (m *Manager) Diff(w io.Writer, currentHeader, currentSource string) error {
	pairs := []struct {
		backup  string
		current string
	}{
		{m.set.Source.BackupPath, currentSource},
		{m.set.Header.BackupPath, currentHeader},
	}
	for _, p := range pairs {
		if err := diffFiles(w, p.backup, p.current); err != nil {
			return err
		}
	}
	return nil
}

func diffFiles(w io.Writer, from, to string) error {
	a, err := os.ReadFile(from)
	if err != nil {
		return err
	}
	b, err := os.ReadFile(to)
	if err != nil {
		return err
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: from,
		ToFile:   to,
		Context:  1,
	}
	return difflib.WriteUnifiedDiff(w, diff)
}

// copyFile copies src to dst, creating or truncating dst and keeping src's permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}
	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

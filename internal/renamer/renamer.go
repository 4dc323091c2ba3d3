// Package renamer renames a C++ header/source pair. This means changing:
//   - the include guard in the header file
//   - the include of the header in the source file
//   - the names of both files, keeping their extensions
//
// For a pair test.h/test.cpp renamed to new_name:
//
//	#ifndef ... TEST_H_   -> #ifndef ... NEW_NAME_H_
//	#include "test.h"     -> #include "new_name.h"
//	test.h                -> new_name.h
//	test.cpp              -> new_name.cpp
package renamer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"pairrename/internal/backup"
	"pairrename/internal/journal"
	"pairrename/internal/output"
	"pairrename/internal/pair"
	"pairrename/internal/rewrite"
	"pairrename/internal/watch"
)

// DefaultGuardSuffix ends every include guard token.
const DefaultGuardSuffix = "_H_"

// OperationErrorType represents the type of rename failure.
type OperationErrorType string

const (
	// InvalidPair indicates the header or source file is missing.
	InvalidPair OperationErrorType = "INVALID_PAIR"
	// InvalidName indicates the new base name cannot be used as a file name.
	InvalidName OperationErrorType = "INVALID_NAME"
	// DestinationExists indicates a file with the new name is already present.
	DestinationExists OperationErrorType = "DESTINATION_EXISTS"
	// BackupFailed indicates the pair could not be copied aside.
	BackupFailed OperationErrorType = "BACKUP_FAILED"
	// RewriteFailed indicates the guard or include could not be rewritten.
	RewriteFailed OperationErrorType = "REWRITE_FAILED"
	// RenameFailed indicates a file could not be renamed.
	RenameFailed OperationErrorType = "RENAME_FAILED"
	// RestoreFailed indicates the pair could not be put back after a "no" answer.
	RestoreFailed OperationErrorType = "RESTORE_FAILED"
	// JournalFailed indicates the journal could not be written.
	JournalFailed OperationErrorType = "JOURNAL_FAILED"
)

// OperationError represents an error that occurred during a rename.
type OperationError struct {
	Type OperationErrorType
	Path string
	Err  error
}

func (e *OperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(question string) (bool, error)

// Options configures a Renamer. The zero value renames with _H_ guards,
// .BACKUP backups, no confirmation, no journal and no output.
type Options struct {
	GuardSuffix  string
	BackupMarker string

	// Confirm, when set, shows a diff after renaming and reverts the
	// rename on a "no" answer. Backups are deleted either way.
	Confirm ConfirmFunc

	Output     *output.Output
	Journal    *journal.Writer
	AppVersion string
}

// Result describes a completed rename.
type Result struct {
	Original       pair.Pair
	HeaderPath     string
	SourcePath     string
	GuardRewrite   *rewrite.Result
	IncludeRewrite *rewrite.Result
	Backups        *backup.Set

	// Confirmed is false when the user rejected the changes and the pair was restored.
	Confirmed bool
	// ExternalChanges lists modifications made by other processes while the user was asked.
	ExternalChanges []watch.Change
	RunID           journal.RunID
}

// Renamer renames one pair.
type Renamer struct {
	pair        *pair.Pair
	newBaseName string
	opts        Options
	backups     *backup.Manager
	out         *output.Output
	runID       journal.RunID
}

// New creates a Renamer for p. It fails with an InvalidPair OperationError
// if either file of p is missing, and with InvalidName if newBaseName
// cannot name a file or would collide with the backups.
func New(p *pair.Pair, newBaseName string, opts Options) (*Renamer, error) {
	if err := p.Validate(); err != nil {
		return nil, &OperationError{Type: InvalidPair, Path: p.HeaderPath, Err: err}
	}
	if err := ValidateName(newBaseName); err != nil {
		return nil, &OperationError{Type: InvalidName, Path: newBaseName, Err: err}
	}

	if opts.GuardSuffix == "" {
		opts.GuardSuffix = DefaultGuardSuffix
	}
	out := opts.Output
	if out == nil {
		out = output.New(output.Config{Writer: io.Discard, ErrWriter: io.Discard})
	}

	r := &Renamer{
		pair:        p,
		newBaseName: newBaseName,
		opts:        opts,
		backups:     backup.NewManager(p, opts.BackupMarker),
		out:         out,
	}
	if err := r.checkBackupCollision(); err != nil {
		return nil, err
	}
	return r, nil
}

// checkBackupCollision refuses a new name that would rename a file onto
// its own backup. Names are compared without case so the check holds on
// case-insensitive filesystems too.
func (r *Renamer) checkBackupCollision() error {
	for _, target := range []string{r.NewHeaderPath(), r.NewSourcePath()} {
		for _, e := range r.backups.Set().Entries() {
			if strings.EqualFold(target, e.BackupPath) {
				return &OperationError{
					Type: InvalidName,
					Path: r.newBaseName,
					Err:  fmt.Errorf("%s is used for backups", filepath.Base(e.BackupPath)),
				}
			}
		}
	}
	return nil
}

// ValidateName reports why name cannot be used as a base name.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("new name is empty")
	case name == "." || name == "..":
		return fmt.Errorf("new name %q is not a file name", name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, os.PathSeparator):
		return fmt.Errorf("new name %q contains a path separator", name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("new name contains a NUL byte")
	}
	return nil
}

// GuardPattern matches any run of non-whitespace ending in suffix. It is
// not preprocessor aware and also matches the token in comments.
func GuardPattern(suffix string) *regexp.Regexp {
	return regexp.MustCompile(`\S*.` + regexp.QuoteMeta(suffix))
}

// Guard returns the include guard token for baseName.
func Guard(baseName, suffix string) string {
	return strings.ToUpper(baseName + suffix)
}

// IncludeDirective returns the quoted include line for fileName.
func IncludeDirective(fileName string) string {
	return `#include "` + fileName + `"`
}

// NewHeaderPath returns where the header will be after the rename.
func (r *Renamer) NewHeaderPath() string {
	return filepath.Join(r.pair.Folder(), r.newBaseName+r.pair.HeaderExtension)
}

// NewSourcePath returns where the source will be after the rename.
func (r *Renamer) NewSourcePath() string {
	return filepath.Join(filepath.Dir(r.pair.SourcePath), r.newBaseName+r.pair.SourceExtension)
}

// Rename backs up the pair, rewrites the include guard and the include
// directive, and renames both files. Nothing is rolled back if a step fails;
// the backups stay on disk for manual recovery.
func (r *Renamer) Rename() (res *Result, err error) {
	if err := r.checkDestinations(); err != nil {
		return nil, err
	}

	if err := r.startJournal(); err != nil {
		return nil, err
	}
	defer func() {
		err = r.endJournal(res, err)
	}()

	res = &Result{Original: *r.pair, RunID: r.runID}

	set, err := r.backups.Backup()
	if err != nil {
		return nil, &OperationError{Type: BackupFailed, Path: r.pair.Folder(), Err: err}
	}
	res.Backups = set
	r.out.Status("BACKED UP FILES")
	for _, e := range set.Entries() {
		if err := r.record(journal.Event{
			EventType:       journal.EventBackup,
			SourcePath:      e.OriginalPath,
			DestinationPath: e.BackupPath,
			FileIdentity:    e.Identity,
		}); err != nil {
			return nil, err
		}
	}

	if res.GuardRewrite, err = r.renameIncludeGuard(); err != nil {
		return nil, err
	}
	if res.IncludeRewrite, err = r.renameInclude(); err != nil {
		return nil, err
	}

	if res.HeaderPath, err = r.renameFile(r.pair.HeaderPath, r.NewHeaderPath()); err != nil {
		return nil, err
	}
	if res.SourcePath, err = r.renameFile(r.pair.SourcePath, r.NewSourcePath()); err != nil {
		return nil, err
	}

	res.Confirmed = true
	if r.opts.Confirm != nil {
		if err := r.askIfKeepChanges(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// checkDestinations refuses to overwrite an unrelated file with the new name.
func (r *Renamer) checkDestinations() error {
	for _, mv := range [][2]string{
		{r.pair.HeaderPath, r.NewHeaderPath()},
		{r.pair.SourcePath, r.NewSourcePath()},
	} {
		existing, err := os.Stat(mv[1])
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return &OperationError{Type: DestinationExists, Path: mv[1], Err: err}
		}
		// Same file, e.g. a case-only rename on a case-insensitive filesystem.
		if current, err := os.Stat(mv[0]); err == nil && os.SameFile(existing, current) {
			continue
		}
		return &OperationError{Type: DestinationExists, Path: mv[1]}
	}
	return nil
}

func (r *Renamer) renameIncludeGuard() (*rewrite.Result, error) {
	guard := Guard(r.newBaseName, r.opts.GuardSuffix)
	result, err := rewrite.File(r.pair.HeaderPath, GuardPattern(r.opts.GuardSuffix), guard)
	if err != nil {
		return nil, &OperationError{Type: RewriteFailed, Path: r.pair.HeaderPath, Err: err}
	}
	r.out.Verbose("Include guard -> %s (%d replacements in %s)", guard, result.Replacements, r.pair.HeaderName())
	return result, r.record(journal.Event{
		EventType:  journal.EventRewriteGuard,
		SourcePath: r.pair.HeaderPath,
		Metadata: map[string]string{
			"guard":        guard,
			"replacements": fmt.Sprintf("%d", result.Replacements),
		},
	})
}

func (r *Renamer) renameInclude() (*rewrite.Result, error) {
	from := IncludeDirective(r.pair.HeaderName())
	to := IncludeDirective(r.newBaseName + r.pair.HeaderExtension)
	pattern := regexp.MustCompile(regexp.QuoteMeta(from))

	result, err := rewrite.File(r.pair.SourcePath, pattern, to)
	if err != nil {
		return nil, &OperationError{Type: RewriteFailed, Path: r.pair.SourcePath, Err: err}
	}
	r.out.Verbose("%s -> %s (%d replacements in %s)", from, to, result.Replacements, filepath.Base(r.pair.SourcePath))
	return result, r.record(journal.Event{
		EventType:  journal.EventRewriteInclude,
		SourcePath: r.pair.SourcePath,
		Metadata: map[string]string{
			"include":      to,
			"replacements": fmt.Sprintf("%d", result.Replacements),
		},
	})
}

func (r *Renamer) renameFile(from, to string) (string, error) {
	if err := os.Rename(from, to); err != nil {
		return "", &OperationError{Type: RenameFailed, Path: from, Err: err}
	}
	r.out.Verbose("%s -> %s", filepath.Base(from), filepath.Base(to))

	id, err := journal.CaptureIdentity(to)
	if err != nil {
		return "", &OperationError{Type: RenameFailed, Path: to, Err: err}
	}
	return to, r.record(journal.Event{
		EventType:       journal.EventRename,
		SourcePath:      from,
		DestinationPath: to,
		FileIdentity:    id,
	})
}

package renamer

import (
	"path/filepath"

	"pairrename/internal/journal"
	"pairrename/internal/watch"
)

// askIfKeepChanges shows what changed and asks whether to keep it. On "no"
// the files get their old names back and the backups are copied over them.
// The backups are deleted in both cases.
func (r *Renamer) askIfKeepChanges(res *Result) error {
	if err := r.backups.Diff(r.out.Writer(), res.HeaderPath, res.SourcePath); err != nil {
		r.out.Warn("could not show changes: %v", err)
	}

	monitor, err := watch.Start([]string{res.HeaderPath, res.SourcePath})
	if err != nil {
		r.out.Verbose("not watching for external changes: %v", err)
	}

	keep, err := r.opts.Confirm("Keep these changes?")

	if monitor != nil {
		res.ExternalChanges = monitor.Stop()
		r.reportExternalChanges(res.ExternalChanges, monitor.Errors())
	}
	if err != nil {
		return err
	}

	if !keep {
		if err := r.revert(res); err != nil {
			return err
		}
		res.Confirmed = false
	}

	if err := r.backups.Delete(); err != nil {
		return err
	}
	for _, e := range res.Backups.Entries() {
		if err := r.record(journal.Event{
			EventType:  journal.EventBackupDeleted,
			SourcePath: e.BackupPath,
		}); err != nil {
			return err
		}
	}
	return nil
}

// reportExternalChanges warns about every change seen while waiting on the
// user, and about watcher errors that may have hidden others.
func (r *Renamer) reportExternalChanges(changes []watch.Change, errs []error) {
	for _, c := range changes {
		r.out.Warn("%s was modified by another process (%s) while waiting for confirmation", filepath.Base(c.Path), c.Op)
	}
	for _, err := range errs {
		r.out.Warn("watching for external changes: %v", err)
	}
}

// revert undoes both renames and restores the original contents from the backups.
func (r *Renamer) revert(res *Result) error {
	for _, mv := range [][2]string{
		{res.HeaderPath, r.pair.HeaderPath},
		{res.SourcePath, r.pair.SourcePath},
	} {
		if _, err := r.renameFile(mv[0], mv[1]); err != nil {
			return &OperationError{Type: RestoreFailed, Path: mv[0], Err: err}
		}
	}

	restored, err := r.backups.Restore()
	if err != nil {
		return &OperationError{Type: RestoreFailed, Path: r.pair.Folder(), Err: err}
	}
	if !restored {
		return &OperationError{Type: RestoreFailed, Path: r.pair.Folder()}
	}
	res.HeaderPath = r.pair.HeaderPath
	res.SourcePath = r.pair.SourcePath
	r.out.Status("FILES RESTORED")

	for _, e := range res.Backups.Entries() {
		if err := r.record(journal.Event{
			EventType:       journal.EventRestore,
			SourcePath:      e.BackupPath,
			DestinationPath: e.OriginalPath,
			FileIdentity:    e.Identity,
		}); err != nil {
			return err
		}
	}
	return nil
}

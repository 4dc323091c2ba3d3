package renamer

import (
	"errors"

	"pairrename/internal/journal"
)

func (r *Renamer) startJournal() error {
	if r.opts.Journal == nil {
		return nil
	}
	runID, err := r.opts.Journal.StartRun(r.opts.AppVersion, map[string]string{
		"header":  r.pair.HeaderPath,
		"source":  r.pair.SourcePath,
		"newName": r.newBaseName,
	})
	if err != nil {
		return &OperationError{Type: JournalFailed, Path: r.opts.Journal.Path(), Err: err}
	}
	r.runID = runID
	return nil
}

// record writes event for the current run. It is a no-op without a journal.
func (r *Renamer) record(event journal.Event) error {
	if r.opts.Journal == nil {
		return nil
	}
	event.RunID = r.runID
	if event.Status == "" {
		event.Status = journal.StatusSuccess
	}
	if err := r.opts.Journal.WriteEvent(event); err != nil {
		return &OperationError{Type: JournalFailed, Path: r.opts.Journal.Path(), Err: err}
	}
	return nil
}

// endJournal closes the run with a status derived from res and runErr,
// recording runErr first. It returns runErr, or the journal error if
// the run itself succeeded.
func (r *Renamer) endJournal(res *Result, runErr error) error {
	if r.opts.Journal == nil {
		return runErr
	}

	status := journal.RunStatusCompleted
	if runErr != nil {
		status = journal.RunStatusFailed
		var opErr *OperationError
		operation := "rename"
		if errors.As(runErr, &opErr) {
			operation = string(opErr.Type)
		}
		// A journal that cannot be written will not take the error event either.
		if opErr == nil || opErr.Type != JournalFailed {
			_ = r.record(journal.Event{
				EventType: journal.EventError,
				Status:    journal.StatusFailure,
				ErrorDetails: &journal.ErrorDetails{
					ErrorMessage: runErr.Error(),
					Operation:    operation,
				},
			})
		}
	} else if res != nil && !res.Confirmed {
		status = journal.RunStatusReverted
	}

	if err := r.opts.Journal.EndRun(r.runID, status); err != nil && runErr == nil {
		return &OperationError{Type: JournalFailed, Path: r.opts.Journal.Path(), Err: err}
	}
	return runErr
}

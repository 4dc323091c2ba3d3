// Package journal records rename runs in an append-only JSON Lines log.
// Each run is bracketed by RUN_START and RUN_END events so a reader can
// reconstruct which files were renamed, from where, and with what content.
package journal

import "time"

// LogFileName is the name of the journal file inside the journal directory.
const LogFileName = "pairrename-journal.jsonl"

// RunID is a unique identifier for each program execution.
// It uses UUID v4 format: "xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx"
type RunID string

// EventType represents the type of journal event.
type EventType string

const (
	// Run lifecycle events
	EventRunStart EventType = "RUN_START"
	EventRunEnd   EventType = "RUN_END"

	// Rename steps
	EventBackup         EventType = "BACKUP"
	EventRewriteGuard   EventType = "REWRITE_GUARD"
	EventRewriteInclude EventType = "REWRITE_INCLUDE"
	EventRename         EventType = "RENAME"

	// Confirmation gate
	EventRestore       EventType = "RESTORE"
	EventBackupDeleted EventType = "BACKUP_DELETED"

	EventError EventType = "ERROR"
)

// Status represents the outcome of an operation.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailure Status = "FAILURE"
)

// RunStatus represents how a run ended.
type RunStatus string

const (
	RunStatusCompleted RunStatus = "COMPLETED"
	RunStatusReverted  RunStatus = "REVERTED"
	RunStatusFailed    RunStatus = "FAILED"
)

// FileIdentity captures the content of a file at a point in time.
type FileIdentity struct {
	ContentHash string    `json:"contentHash"` // SHA-256 hex string
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"modTime"`
}

// ErrorDetails contains detailed information about an error.
type ErrorDetails struct {
	ErrorMessage string `json:"errorMessage"`
	Operation    string `json:"operation"`
}

// Event represents a single journal record.
type Event struct {
	Timestamp       time.Time
	RunID           RunID
	EventType       EventType
	Status          Status
	SourcePath      string
	DestinationPath string
	FileIdentity    *FileIdentity
	ErrorDetails    *ErrorDetails
	Metadata        map[string]string
}

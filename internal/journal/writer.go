package journal

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Writer appends events to the journal. Every event is flushed and
// synced before the call returns; a failed write is reported immediately.
type Writer struct {
	mu      sync.Mutex
	file    *os.File
	writer  *bufio.Writer
	logPath string
	now     func() time.Time
}

// NewWriter opens (or creates) the journal inside dir.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	logPath := filepath.Join(dir, LogFileName)
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	return &Writer{
		file:    file,
		writer:  bufio.NewWriter(file),
		logPath: logPath,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Path returns the journal file path.
func (w *Writer) Path() string {
	return w.logPath
}

// GenerateRunID generates a new UUID v4 format Run ID.
func GenerateRunID() (RunID, error) {
	uuid := make([]byte, 16)
	if _, err := rand.Read(uuid); err != nil {
		return "", fmt.Errorf("failed to generate UUID: %w", err)
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x40 // Version 4
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // Variant RFC 4122

	return RunID(fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		uuid[0:4],
		uuid[4:6],
		uuid[6:8],
		uuid[8:10],
		uuid[10:16],
	)), nil
}

// StartRun writes the RUN_START event for a new run and returns its ID.
func (w *Writer) StartRun(appVersion string, metadata map[string]string) (RunID, error) {
	runID, err := GenerateRunID()
	if err != nil {
		return "", err
	}

	meta := map[string]string{"appVersion": appVersion}
	for k, v := range metadata {
		meta[k] = v
	}

	event := Event{
		RunID:     runID,
		EventType: EventRunStart,
		Status:    StatusSuccess,
		Metadata:  meta,
	}
	if err := w.WriteEvent(event); err != nil {
		return "", fmt.Errorf("failed to write RUN_START event: %w", err)
	}
	return runID, nil
}

// EndRun writes the RUN_END event for runID.
func (w *Writer) EndRun(runID RunID, status RunStatus) error {
	event := Event{
		RunID:     runID,
		EventType: EventRunEnd,
		Status:    StatusSuccess,
		Metadata:  map[string]string{"status": string(status)},
	}
	if status == RunStatusFailed {
		event.Status = StatusFailure
	}
	if err := w.WriteEvent(event); err != nil {
		return fmt.Errorf("failed to write RUN_END event: %w", err)
	}
	return nil
}

// WriteEvent appends a single event. A zero Timestamp is set to the current time.
func (w *Writer) WriteEvent(event Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = w.now()
	}

	data, err := event.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := w.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush event: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync event to disk: %w", err)
	}
	return nil
}

// Close flushes any buffered data and closes the journal file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush on close: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close journal: %w", err)
	}
	return nil
}

package journal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReadEvents reads every event from the journal in dir, in file order.
// Blank lines are skipped; a malformed line is reported with its line number.
func ReadEvents(dir string) ([]Event, error) {
	file, err := os.Open(filepath.Join(dir, LogFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer file.Close()

	var events []Event
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("invalid journal entry on line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return events, nil
}

// FilterRun returns the events belonging to runID.
func FilterRun(events []Event, runID RunID) []Event {
	var out []Event
	for _, e := range events {
		if e.RunID == runID {
			out = append(out, e)
		}
	}
	return out
}

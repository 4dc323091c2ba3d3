// Package watch reports modifications made to a set of files by other
// processes while the renamer is waiting on the user.
package watch

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Change records what happened to a watched file.
type Change struct {
	Path string
	Op   fsnotify.Op
}

// Monitor watches the folders of a set of files and records events on those files only.
type Monitor struct {
	fsWatcher *fsnotify.Watcher
	files     map[string]bool
	done      chan struct{}
	wg        sync.WaitGroup

	mu      sync.Mutex
	changes map[string]fsnotify.Op
	errs    []error
}

// Start begins watching paths. Each path's folder is watched because
// editors often replace a file rather than write it in place.
func Start(paths []string) (*Monitor, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	m := &Monitor{
		fsWatcher: fsWatcher,
		files:     make(map[string]bool),
		done:      make(chan struct{}),
		changes:   make(map[string]fsnotify.Op),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsWatcher.Close()
			return nil, err
		}
		m.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}

	m.wg.Add(1)
	go m.processEvents()

	return m, nil
}

func (m *Monitor) processEvents() {
	defer m.wg.Done()

	for {
		select {
		case <-m.done:
			return
		case event, ok := <-m.fsWatcher.Events:
			if !ok {
				return
			}
			// Permission and timestamp changes leave content intact.
			if event.Op == fsnotify.Chmod {
				continue
			}
			name := filepath.Clean(event.Name)
			if !m.files[name] {
				continue
			}
			m.mu.Lock()
			m.changes[name] |= event.Op
			m.mu.Unlock()
		case err, ok := <-m.fsWatcher.Errors:
			if !ok {
				return
			}
			m.mu.Lock()
			m.errs = append(m.errs, err)
			m.mu.Unlock()
		}
	}
}

// Changes returns the changes seen so far, sorted by path.
func (m *Monitor) Changes() []Change {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Change, 0, len(m.changes))
	for path, op := range m.changes {
		out = append(out, Change{Path: path, Op: op})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Errors returns watcher errors reported so far.
func (m *Monitor) Errors() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]error(nil), m.errs...)
}

// Stop shuts the monitor down and returns every change it saw.
func (m *Monitor) Stop() []Change {
	close(m.done)
	m.wg.Wait()
	m.fsWatcher.Close()
	return m.Changes()
}

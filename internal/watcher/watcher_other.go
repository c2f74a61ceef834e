//go:build !darwin && !windows

package watcher

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/lumipallolabs/filesearch/internal/logging"
)

// Watcher watches directories for removals using fsnotify (inotify on Linux)
type Watcher struct {
	fs      *fsnotify.Watcher
	eventCh chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// New creates a new filesystem watcher
func New() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fs:      fw,
		eventCh: make(chan Event, 100),
		done:    make(chan struct{}),
	}, nil
}

// Events returns the channel for receiving filesystem events
func (w *Watcher) Events() <-chan Event {
	return w.eventCh
}

// Add watches the given directories (not their subdirectories). Directories
// that can't be watched are logged and skipped.
func (w *Watcher) Add(dirs ...string) error {
	for _, dir := range dirs {
		if err := w.fs.Add(dir); err != nil {
			logging.Debug.Printf("Watcher: cannot watch %s: %v", dir, err)
		}
	}
	return nil
}

// Start begins watching for events
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// A move to the trash shows up as a rename
			if !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			select {
			case w.eventCh <- Event{Type: EventDeleted, Path: event.Name}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Debug.Printf("Watcher: %v", err)
		}
	}
}

// Stop stops the watcher and closes the event channel
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	close(w.eventCh)
	return err
}

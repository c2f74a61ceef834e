//go:build windows

package watcher

import (
	"path/filepath"
	"sync"
	"unsafe"

	"github.com/lumipallolabs/filesearch/internal/logging"
	"golang.org/x/sys/windows"
)

// Watcher watches directories using ReadDirectoryChangesW, one handle and
// goroutine per directory
type Watcher struct {
	dirs    []dirHandle
	eventCh chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

type dirHandle struct {
	handle windows.Handle
	path   string
}

func New() (*Watcher, error) {
	return &Watcher{
		eventCh: make(chan Event, 100),
		done:    make(chan struct{}),
	}, nil
}

func (w *Watcher) Events() <-chan Event {
	return w.eventCh
}

// Add opens a handle for each directory. Directories that can't be opened
// are logged and skipped.
func (w *Watcher) Add(dirs ...string) error {
	for _, dir := range dirs {
		pathPtr, err := windows.UTF16PtrFromString(dir)
		if err != nil {
			return err
		}

		handle, err := windows.CreateFile(
			pathPtr,
			windows.FILE_LIST_DIRECTORY,
			windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
			nil,
			windows.OPEN_EXISTING,
			windows.FILE_FLAG_BACKUP_SEMANTICS,
			0,
		)
		if err != nil {
			logging.Debug.Printf("Watcher: cannot watch %s: %v", dir, err)
			continue
		}
		w.dirs = append(w.dirs, dirHandle{handle: handle, path: dir})
	}
	return nil
}

func (w *Watcher) Start() {
	for _, d := range w.dirs {
		w.wg.Add(1)
		go w.run(d)
	}
}

const notifyFilter = windows.FILE_NOTIFY_CHANGE_FILE_NAME | windows.FILE_NOTIFY_CHANGE_DIR_NAME

func (w *Watcher) run(d dirHandle) {
	defer w.wg.Done()
	buf := make([]byte, 64*1024)

	for {
		select {
		case <-w.done:
			return
		default:
		}

		var bytesReturned uint32
		err := windows.ReadDirectoryChanges(
			d.handle,
			&buf[0],
			uint32(len(buf)),
			false,
			notifyFilter,
			&bytesReturned,
			nil,
			0,
		)
		if err != nil {
			return
		}

		if bytesReturned > 0 {
			w.processEvents(d.path, buf[:bytesReturned])
		}
	}
}

const (
	fileActionRemoved        = 2
	fileActionRenamedOldName = 4
)

func (w *Watcher) processEvents(root string, buf []byte) {
	for len(buf) >= 12 {
		nextOffset := *(*uint32)(unsafe.Pointer(&buf[0]))
		action := *(*uint32)(unsafe.Pointer(&buf[4]))
		nameLen := *(*uint32)(unsafe.Pointer(&buf[8]))

		if len(buf) >= 12+int(nameLen) && (action == fileActionRemoved || action == fileActionRenamedOldName) {
			name := windows.UTF16ToString((*[1 << 15]uint16)(unsafe.Pointer(&buf[12]))[:nameLen/2])
			select {
			case w.eventCh <- Event{Type: EventDeleted, Path: filepath.Join(root, name)}:
			default:
			}
		}

		if nextOffset == 0 {
			break
		}
		buf = buf[nextOffset:]
	}
}

func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	for _, d := range w.dirs {
		// Unblock the pending ReadDirectoryChanges before closing
		_ = windows.CancelIoEx(d.handle, nil)
		windows.CloseHandle(d.handle)
	}
	w.wg.Wait()
	close(w.eventCh)
	return nil
}

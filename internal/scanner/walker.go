package scanner

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// Walker implements breadth-first directory traversal. It is single-threaded
// so that visit order, and with it match order, is reproducible.
type Walker struct {
	skip    *SkipPolicy
	readDir func(name string) ([]fs.DirEntry, error)
	onError func(path string, err error)
}

// WalkerOption configures a Walker
type WalkerOption func(*Walker)

// WithErrorHandler observes directories that could not be read. The walk
// treats them as empty either way.
func WithErrorHandler(fn func(path string, err error)) WalkerOption {
	return func(w *Walker) {
		if fn != nil {
			w.onError = fn
		}
	}
}

// withReadDir swaps the directory reader, for tests
func withReadDir(fn func(name string) ([]fs.DirEntry, error)) WalkerOption {
	return func(w *Walker) {
		w.readDir = fn
	}
}

// NewWalker creates a walker that prunes directories matched by skip
func NewWalker(skip *SkipPolicy, opts ...WalkerOption) *Walker {
	w := &Walker{
		skip:    skip,
		readDir: os.ReadDir,
		onError: func(string, error) {},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk returns a lazy sequence of directory entries below root, level by
// level. Each call starts a fresh walk; stopping the range loop ends it.
//
// Symlinks (and junctions on Windows) are reported as files and never
// followed. Unreadable directories are dropped and the walk continues.
func (w *Walker) Walk(root string) iter.Seq[DirectoryEntry] {
	return func(yield func(DirectoryEntry) bool) {
		queue := []string{root}

		for len(queue) > 0 {
			current := queue[0]
			queue[0] = ""
			queue = queue[1:]

			if w.skip.ShouldSkip(current) {
				continue
			}

			entries, err := w.readDir(current)
			if err != nil {
				w.onError(current, err)
				continue
			}

			entry := DirectoryEntry{Path: current}
			for _, e := range entries {
				// Type bits come from the directory listing itself, so a
				// symlink to a directory is not a directory here
				if e.IsDir() {
					entry.Dirs = append(entry.Dirs, filepath.Join(current, e.Name()))
				} else {
					entry.Files = append(entry.Files, e.Name())
				}
			}

			if !yield(entry) {
				return
			}
			queue = append(queue, entry.Dirs...)
		}
	}
}

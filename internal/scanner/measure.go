package scanner

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// Usage summarizes the contents of a folder
type Usage struct {
	Files int64
	Dirs  int64
	Bytes int64 // allocated size on disk
}

// Measure totals the size of everything below path. It runs outside of any
// scan and visit order doesn't matter, so it walks in parallel with fastwalk.
// Directories on other filesystems and those matched by skip are left out.
func Measure(ctx context.Context, path string, skip *SkipPolicy) (Usage, error) {
	absRoot, err := filepath.Abs(path)
	if err != nil {
		return Usage{}, err
	}

	// Get platform-specific root info for mount point detection
	rootInfo := getPlatformRootInfo(absRoot)

	// Track seen inodes for hard link deduplication
	var seenItems sync.Map
	var files, dirs, bytes atomic.Int64

	conf := &fastwalk.Config{
		Follow: false,
	}

	walkErr := fastwalk.Walk(conf, absRoot, func(p string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil // Skip entries with errors
		}
		if p == absRoot {
			return nil
		}

		if d.IsDir() {
			if skip.ShouldSkip(p) || shouldSkipDir(p, d, rootInfo, &seenItems) {
				return fs.SkipDir
			}
			dirs.Add(1)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		size := getFileSize(info, &seenItems)
		if size < 0 {
			// Already counted hard link
			return nil
		}
		files.Add(1)
		bytes.Add(size)
		return nil
	})

	usage := Usage{
		Files: files.Load(),
		Dirs:  dirs.Load(),
		Bytes: bytes.Load(),
	}

	if walkErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(walkErr, ctxErr) {
			return usage, ctxErr
		}
		return usage, walkErr
	}
	return usage, nil
}

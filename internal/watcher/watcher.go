// Package watcher reports deletions in a set of directories. It is used to
// notice matches removed outside filesearch after a scan has finished.
package watcher

import (
	"path/filepath"
	"slices"
)

// EventType represents the type of filesystem event
type EventType int

const (
	EventDeleted EventType = iota
	EventCreated
	EventModified
)

// Event represents a filesystem change event
type Event struct {
	Type EventType
	Path string
}

// MaxDirs caps how many directories one watcher follows. inotify watches are
// a limited per-user resource.
const MaxDirs = 512

// ParentDirs returns the distinct parent directories of paths, in first-seen
// order, capped at MaxDirs
func ParentDirs(paths []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range paths {
		dir := filepath.Dir(p)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
		if len(dirs) == MaxDirs {
			break
		}
	}
	return slices.Clip(dirs)
}

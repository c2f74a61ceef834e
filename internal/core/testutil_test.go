package core

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lumipallolabs/filesearch/internal/model"
	"github.com/lumipallolabs/filesearch/internal/scanner"
	"github.com/stretchr/testify/require"
)

// makeTree creates files under root; a trailing "/" creates an empty directory
func makeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(p), 0644))
	}
}

func volumeAt(path string) model.Volume {
	return model.Volume{ID: filepath.Base(path), Path: path, Label: filepath.Base(path)}
}

// drain collects every event until the channel closes
func drain(h *Handle) []Event {
	var events []Event
	for ev := range h.Events() {
		events = append(events, ev)
	}
	return events
}

func matchPaths(set *ResultSet) []string {
	return set.Paths()
}

// cancellingTree cancels a scan after a fixed number of directories
type cancellingTree struct {
	inner  scanner.Tree
	after  int
	cancel context.CancelFunc
}

func (c *cancellingTree) Walk(root string) iter.Seq[scanner.DirectoryEntry] {
	return func(yield func(scanner.DirectoryEntry) bool) {
		n := 0
		for entry := range c.inner.Walk(root) {
			if !yield(entry) {
				return
			}
			n++
			if n == c.after {
				c.cancel()
			}
		}
	}
}

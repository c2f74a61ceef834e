package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeTree creates files (and their parent dirs) below root. Entries ending
// in "/" create empty directories.
func makeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if p[len(p)-1] == '/' {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("data:"+p), 0644))
	}
}

func collect(w *Walker, root string) []DirectoryEntry {
	var entries []DirectoryEntry
	for entry := range w.Walk(root) {
		entries = append(entries, entry)
	}
	return entries
}

func entryPaths(entries []DirectoryEntry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths
}

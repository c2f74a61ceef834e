//go:build !darwin && !windows

package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsRemoval(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Add(dir, filepath.Join(dir, "missing")))
	w.Start()
	defer w.Stop()

	require.NoError(t, os.Remove(target))

	select {
	case ev := <-w.Events():
		assert.Equal(t, EventDeleted, ev.Type)
		assert.Equal(t, target, ev.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for removed file")
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	w.Start()
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	_, ok := <-w.Events()
	assert.False(t, ok)
}

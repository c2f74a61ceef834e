package deletion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lumipallolabs/filesearch/internal/core"
	"github.com/lumipallolabs/filesearch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRemover records every path it is asked to remove
type countingRemover struct {
	calls []string
	err   error
}

func (r *countingRemover) Remove(path string) error {
	r.calls = append(r.calls, path)
	if r.err != nil {
		return r.err
	}
	return os.Remove(path)
}

func writeFiles(t *testing.T, dir string, names ...string) *core.ResultSet {
	t.Helper()
	set := &core.ResultSet{State: core.StateCompleted}
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0644))
		set.Matches = append(set.Matches, model.Match{Path: p, Kind: model.KindFile})
	}
	return set
}

func always(answer bool) func(string) bool {
	return func(string) bool { return answer }
}

func TestDeleteOutOfRangeNeverTouchesDisk(t *testing.T) {
	set := writeFiles(t, t.TempDir(), "a.txt", "b.txt")
	remover := &countingRemover{}
	g := NewGate(WithRemover(remover))

	for _, index := range []int{0, -1, set.Len() + 1} {
		confirmed := false
		err := g.Delete(set, index, func(string) bool {
			confirmed = true
			return true
		})

		assert.ErrorIs(t, err, ErrInvalidSelection, "index %d", index)
		var sel *InvalidSelectionError
		require.ErrorAs(t, err, &sel)
		assert.Equal(t, index, sel.Index)
		assert.Equal(t, 2, sel.Count)
		assert.False(t, confirmed, "confirm must not be asked for index %d", index)
	}

	assert.Empty(t, remover.calls)
	for _, m := range set.Matches {
		assert.FileExists(t, m.Path)
	}
}

func TestDeleteNilSet(t *testing.T) {
	err := NewGate().Delete(nil, 1, always(true))
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Contains(t, err.Error(), "no matches")
}

func TestDeleteDeclinedKeepsFile(t *testing.T) {
	set := writeFiles(t, t.TempDir(), "keep.txt")
	remover := &countingRemover{}

	calls := 0
	err := NewGate(WithRemover(remover)).Delete(set, 1, func(path string) bool {
		calls++
		assert.Equal(t, set.Matches[0].Path, path)
		return false
	})

	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, 1, calls)
	assert.Empty(t, remover.calls)
	assert.FileExists(t, set.Matches[0].Path)
}

func TestDeleteFirstMatchRemovesOnlyIt(t *testing.T) {
	set := writeFiles(t, t.TempDir(), "one.txt", "two.txt", "three.txt")

	require.NoError(t, NewGate().Delete(set, 1, always(true)))

	assert.NoFileExists(t, set.Matches[0].Path)
	assert.FileExists(t, set.Matches[1].Path)
	assert.FileExists(t, set.Matches[2].Path)
}

func TestDeleteFailureCarriesCause(t *testing.T) {
	set := writeFiles(t, t.TempDir(), "locked.txt")
	cause := errors.New("access is denied")
	remover := &countingRemover{err: cause}

	err := NewGate(WithRemover(remover)).Delete(set, 1, always(true))

	assert.ErrorIs(t, err, ErrDeleteFailed)
	assert.ErrorIs(t, err, cause)
	var failed *DeleteFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, set.Matches[0].Path, failed.Path)
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Len(t, remover.calls, 1)
}

func TestDeleteFolderMatches(t *testing.T) {
	root := t.TempDir()
	empty := filepath.Join(root, "empty-logs")
	full := filepath.Join(root, "logs")
	require.NoError(t, os.Mkdir(empty, 0755))
	require.NoError(t, os.Mkdir(full, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(full, "app.log"), []byte("x"), 0644))

	set := &core.ResultSet{Matches: []model.Match{
		{Path: empty, Kind: model.KindFolder},
		{Path: full, Kind: model.KindFolder},
	}}
	g := NewGate()

	require.NoError(t, g.Delete(set, 1, always(true)))
	assert.NoDirExists(t, empty)

	err := g.Delete(set, 2, always(true))
	assert.ErrorIs(t, err, ErrDeleteFailed)
	assert.FileExists(t, filepath.Join(full, "app.log"), "never recursive")
}

func TestDeletePath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "old report.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

	var asked string
	err := NewGate().DeletePath(`  "`+target+`" `, func(path string) bool {
		asked = path
		return true
	})

	require.NoError(t, err)
	assert.Equal(t, target, asked)
	assert.NoFileExists(t, target)
}

func TestDeletePathRejects(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		is   error
	}{
		{"directory", dir, ErrNotRegularFile},
		{"missing", filepath.Join(dir, "nope.txt"), os.ErrNotExist},
		{"blank", "  ", ErrNotRegularFile},
		{"empty quotes", `""`, ErrNotRegularFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remover := &countingRemover{}
			err := NewGate(WithRemover(remover)).DeletePath(tt.path, always(true))

			assert.ErrorIs(t, err, ErrInvalidSelection)
			assert.ErrorIs(t, err, tt.is)
			assert.Empty(t, remover.calls)
		})
	}
	assert.DirExists(t, dir)
}

func TestCleanPath(t *testing.T) {
	assert.Equal(t, `C:\Users\me\a.txt`, cleanPath(` "C:\Users\me\a.txt" `))
	assert.Equal(t, "/tmp/a b.txt", cleanPath(`'/tmp/a b.txt'`))
	assert.Equal(t, `"half`, cleanPath(`"half`))
}

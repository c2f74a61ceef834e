package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/lumipallolabs/filesearch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkBreadthFirst(t *testing.T) {
	tmp := t.TempDir()
	makeTree(t, tmp,
		"a/deep/inner.txt",
		"b/b.txt",
		"top.txt",
	)

	entries := collect(NewWalker(nil), tmp)

	assert.Equal(t, []string{
		tmp,
		filepath.Join(tmp, "a"),
		filepath.Join(tmp, "b"),
		filepath.Join(tmp, "a", "deep"),
	}, entryPaths(entries))

	assert.Equal(t, []string{"top.txt"}, entries[0].Files)
	assert.Equal(t, []string{filepath.Join(tmp, "a"), filepath.Join(tmp, "b")}, entries[0].Dirs)
	assert.Equal(t, []string{"inner.txt"}, entries[3].Files)
}

func TestWalkRestartable(t *testing.T) {
	tmp := t.TempDir()
	makeTree(t, tmp, "x/y/z.txt")

	w := NewWalker(nil)
	first := entryPaths(collect(w, tmp))
	second := entryPaths(collect(w, tmp))
	assert.Equal(t, first, second)
}

func TestWalkSkipPolicyPrunesSubtree(t *testing.T) {
	tmp := t.TempDir()
	makeTree(t, tmp,
		"keep/k.txt",
		"skip/s.txt",
		"skip/nested/n.txt",
		"skipper/p.txt",
	)

	skip := NewSkipPolicy(filepath.Join(tmp, "skip"))
	entries := collect(NewWalker(skip), tmp)

	for _, e := range entries {
		assert.False(t, skip.ShouldSkip(e.Path), "yielded skipped dir %s", e.Path)
	}
	assert.Equal(t, []string{
		tmp,
		filepath.Join(tmp, "keep"),
		filepath.Join(tmp, "skipper"),
	}, entryPaths(entries))

	// The raw child list is not filtered; pruning happens on dequeue
	assert.Contains(t, entries[0].Dirs, filepath.Join(tmp, "skip"))
}

func TestWalkSkippedRoot(t *testing.T) {
	tmp := t.TempDir()
	makeTree(t, tmp, "a.txt")

	entries := collect(NewWalker(NewSkipPolicy(tmp)), tmp)
	assert.Empty(t, entries)
}

func TestWalkUnreadableDirectoryIsSwallowed(t *testing.T) {
	tmp := t.TempDir()
	makeTree(t, tmp,
		"broken/hidden.txt",
		"fine/f.txt",
	)

	broken := filepath.Join(tmp, "broken")
	var reported []string
	w := NewWalker(nil,
		withReadDir(func(name string) ([]fs.DirEntry, error) {
			if name == broken {
				return nil, fs.ErrPermission
			}
			return os.ReadDir(name)
		}),
		WithErrorHandler(func(path string, err error) {
			assert.True(t, errors.Is(err, fs.ErrPermission))
			reported = append(reported, path)
		}),
	)

	entries := collect(w, tmp)
	assert.Equal(t, []string{tmp, filepath.Join(tmp, "fine")}, entryPaths(entries))
	assert.Equal(t, []string{broken}, reported)
}

func TestWalkMissingRoot(t *testing.T) {
	entries := collect(NewWalker(nil), filepath.Join(t.TempDir(), "gone"))
	assert.Empty(t, entries)
}

func TestWalkDoesNotFollowSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}

	tmp := t.TempDir()
	makeTree(t, tmp, "real/r.txt")
	require.NoError(t, os.Symlink(filepath.Join(tmp, "real"), filepath.Join(tmp, "link")))
	// A cycle back to the root must not make the walk loop
	require.NoError(t, os.Symlink(tmp, filepath.Join(tmp, "real", "loop")))

	entries := collect(NewWalker(nil), tmp)
	assert.Equal(t, []string{tmp, filepath.Join(tmp, "real")}, entryPaths(entries))
	assert.Contains(t, entries[0].Files, "link")
	assert.Contains(t, entries[1].Files, "loop")
}

func TestWalkStopsWhenConsumerStops(t *testing.T) {
	tmp := t.TempDir()
	makeTree(t, tmp, "a/1.txt", "b/2.txt", "c/3.txt")

	reads := 0
	w := NewWalker(nil, withReadDir(func(name string) ([]fs.DirEntry, error) {
		reads++
		return os.ReadDir(name)
	}))

	for range w.Walk(tmp) {
		break
	}
	assert.Equal(t, 1, reads)
}

// The file matches equal the brute-force set of files outside skip prefixes
func TestWalkMatchesBruteForce(t *testing.T) {
	tmp := t.TempDir()
	makeTree(t, tmp,
		"Report.TXT",
		"notes.md",
		"docs/report-2023.pdf",
		"docs/other.pdf",
		"docs/archive/old_REPORT.doc",
		"cache/report.tmp",
		"cache/deeper/report.bin",
		"misc/a/b/c/reportcard.png",
		"empty/",
	)
	skip := NewSkipPolicy(filepath.Join(tmp, "cache"))

	matcher := NewMatcher("report", model.KindFile)
	var got []string
	for entry := range NewWalker(skip).Walk(tmp) {
		for _, m := range matcher.Consider(entry) {
			got = append(got, m.Path)
		}
	}

	var want []string
	err := filepath.WalkDir(tmp, func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		if d.IsDir() {
			if skip.ShouldSkip(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.Contains(strings.ToLower(d.Name()), "report") {
			want = append(want, path)
		}
		return nil
	})
	require.NoError(t, err)

	sort.Strings(got)
	sort.Strings(want)
	assert.Equal(t, want, got)
	assert.Len(t, got, 4)
}

func TestScenarioFileMatchesWithSkip(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "A")
	makeTree(t, root,
		"x.txt",
		"sub/y.TXT",
		"sub/skip_me/z.txt",
	)

	skip := NewSkipPolicy(filepath.Join(root, "sub", "skip_me"))
	matcher := NewMatcher("t", model.KindFile)

	var got []string
	for entry := range NewWalker(skip).Walk(root) {
		for _, m := range matcher.Consider(entry) {
			got = append(got, m.Path)
		}
	}

	assert.Equal(t, []string{
		filepath.Join(root, "x.txt"),
		filepath.Join(root, "sub", "y.TXT"),
	}, got)
}

func TestScenarioFolderMatchesBreadthFirst(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "A")
	makeTree(t, root,
		"Logs/",
		"data/loggy/",
	)

	matcher := NewMatcher("log", model.KindFolder)
	var got []string
	for entry := range NewWalker(nil).Walk(root) {
		for _, m := range matcher.Consider(entry) {
			assert.Equal(t, model.KindFolder, m.Kind)
			got = append(got, m.Path)
		}
	}

	assert.Equal(t, []string{
		filepath.Join(root, "Logs"),
		filepath.Join(root, "data", "loggy"),
	}, got)
}

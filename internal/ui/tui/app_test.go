package tui

import (
	"iter"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumipallolabs/filesearch/internal/config"
	"github.com/lumipallolabs/filesearch/internal/core"
	"github.com/lumipallolabs/filesearch/internal/deletion"
	"github.com/lumipallolabs/filesearch/internal/model"
	"github.com/lumipallolabs/filesearch/internal/report"
	"github.com/lumipallolabs/filesearch/internal/scanner"
	"github.com/lumipallolabs/filesearch/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
}

func newTestApp(t *testing.T, root string, opts Options, extra ...core.Option) (App, *stats.Manager) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.SkipPrefixes = nil

	st := stats.NewManager(filepath.Join(t.TempDir(), "stats.json"))
	ctrlOpts := []core.Option{
		core.WithVolumes([]model.Volume{model.VolumeFromPath(root)}),
		core.WithDeleter(deletion.NewGate()),
		core.WithStats(st),
	}
	ctrl := core.NewController(cfg, append(ctrlOpts, extra...)...)
	t.Cleanup(ctrl.Stop)

	opts.Stats = st
	a := NewApp(ctrl, opts)
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	return a, st
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok, "Update returned %T", m)
	return next, cmd
}

func press(t *testing.T, a App, k string) App {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	a, _ = update(t, a, msg)
	return a
}

// pump feeds every event of the running scan back into the app
func pump(t *testing.T, a App) App {
	t.Helper()
	require.NotNil(t, a.handle)
	h := a.handle
	for ev := range h.Events() {
		a, _ = update(t, a, scanEventMsg{id: h.ID(), event: ev})
	}
	if a.scanning {
		a, _ = update(t, a, scanClosedMsg{id: h.ID()})
	}
	require.False(t, a.scanning)
	return a
}

func search(t *testing.T, a App, target string) App {
	t.Helper()
	a.form.SetValue(target)
	a = press(t, a, "enter")
	require.NoError(t, a.err)
	require.True(t, a.scanning)
	return pump(t, a)
}

func TestSearchShowsMatches(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "report.txt"))
	write(t, filepath.Join(root, "sub", "annual-report.pdf"))
	write(t, filepath.Join(root, "sub", "notes.txt"))

	a, st := newTestApp(t, root, Options{Kind: model.KindFile})
	a = search(t, a, "report")

	assert.Equal(t, 2, a.results.Len())
	assert.Contains(t, a.status, "2 match(es)")
	assert.False(t, a.form.Focused())
	assert.Equal(t, int64(1), st.Snapshot().ScansLifetime)

	m, index, ok := a.results.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, index)
	assert.Equal(t, filepath.Join(root, "report.txt"), m.Path)

	view := a.View()
	assert.Contains(t, view, "report.txt")
}

func TestSearchWithoutMatches(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "notes.txt"))

	a, _ := newTestApp(t, root, Options{Kind: model.KindFile})
	a = search(t, a, "invoice")

	assert.Equal(t, 0, a.results.Len())
	assert.Equal(t, "No matches found.", a.status)
}

func TestEmptyTargetShowsHint(t *testing.T) {
	a, _ := newTestApp(t, t.TempDir(), Options{Kind: model.KindFile})
	a = press(t, a, "enter")

	require.Error(t, a.err)
	assert.Equal(t, "type part of a name to search for", a.err.Error())
	assert.False(t, a.scanning)
	assert.Nil(t, a.handle)
}

func TestDeleteConfirmed(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "report.txt")
	write(t, target)

	a, st := newTestApp(t, root, Options{Kind: model.KindFile})
	a = search(t, a, "report")

	a = press(t, a, "d")
	require.True(t, a.confirm.IsVisible())
	assert.Contains(t, a.View(), "Delete match 1?")

	a = press(t, a, "y")
	assert.False(t, a.confirm.IsVisible())
	assert.NoError(t, a.err)
	assert.Equal(t, "File deleted successfully.", a.status)
	assert.True(t, a.results.IsGone(target))
	assert.NoFileExists(t, target)
	assert.Equal(t, int64(1), st.Snapshot().DeletedFiles)

	// A gone match cannot be deleted twice
	a = press(t, a, "d")
	assert.False(t, a.confirm.IsVisible())
	require.Error(t, a.err)
	assert.Contains(t, a.err.Error(), "already gone")
}

func TestDeleteDeclined(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "report.txt")
	write(t, target)

	a, _ := newTestApp(t, root, Options{Kind: model.KindFile})
	a = search(t, a, "report")

	a = press(t, a, "d")
	require.True(t, a.confirm.IsVisible())
	a = press(t, a, "n")

	assert.False(t, a.confirm.IsVisible())
	assert.Equal(t, "File not deleted.", a.status)
	assert.FileExists(t, target)
	assert.False(t, a.results.IsGone(target))
}

func TestFolderMatchesAreNotDeleted(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "reports", "q1.txt"))

	a, _ := newTestApp(t, root, Options{Kind: model.KindFolder})
	a = search(t, a, "reports")
	require.Equal(t, 1, a.results.Len())

	a = press(t, a, "d")
	assert.False(t, a.confirm.IsVisible())
	require.Error(t, a.err)
	assert.Equal(t, "only files can be deleted", a.err.Error())
	assert.DirExists(t, filepath.Join(root, "reports"))
}

// gatedTree yields the root, then waits for release before the next directory
type gatedTree struct {
	reached chan struct{}
	release chan struct{}
}

func (g *gatedTree) Walk(root string) iter.Seq[scanner.DirectoryEntry] {
	return func(yield func(scanner.DirectoryEntry) bool) {
		if !yield(scanner.DirectoryEntry{Path: root, Files: []string{"report-a.txt"}}) {
			return
		}
		close(g.reached)
		<-g.release
		yield(scanner.DirectoryEntry{Path: filepath.Join(root, "sub"), Files: []string{"report-b.txt"}})
	}
}

func TestEscCancelsScan(t *testing.T) {
	tree := &gatedTree{reached: make(chan struct{}), release: make(chan struct{})}
	a, _ := newTestApp(t, t.TempDir(), Options{Kind: model.KindFile}, core.WithTree(tree))

	a.form.SetValue("report")
	a = press(t, a, "enter")
	require.True(t, a.scanning)

	<-tree.reached
	a = press(t, a, "esc")
	assert.Equal(t, "Cancelling...", a.status)
	close(tree.release)

	a = pump(t, a)
	assert.Contains(t, a.status, "Scan cancelled")
	assert.Equal(t, core.StateCancelled, a.ctrl.Result().State)
}

func TestDeleteRefusedWhileScanning(t *testing.T) {
	tree := &gatedTree{reached: make(chan struct{}), release: make(chan struct{})}
	a, _ := newTestApp(t, t.TempDir(), Options{Kind: model.KindFile}, core.WithTree(tree))

	a.form.SetValue("report")
	a = press(t, a, "enter")
	<-tree.reached

	a = press(t, a, "d")
	assert.False(t, a.confirm.IsVisible())
	assert.Equal(t, "Wait for the scan to finish before deleting.", a.status)

	close(tree.release)
	pump(t, a)
}

func TestThemeToggleIsSaved(t *testing.T) {
	a, st := newTestApp(t, t.TempDir(), Options{Kind: model.KindFile, Theme: config.ThemeDark})
	a = press(t, a, "esc") // leave the search input
	require.False(t, a.form.Focused())

	a = press(t, a, "t")
	assert.Equal(t, config.ThemeLight, a.styles.Theme.Name)
	assert.Equal(t, config.ThemeLight, st.Theme())
	assert.Equal(t, "Theme: light", a.status)

	a = press(t, a, "t")
	assert.Equal(t, config.ThemeDark, a.styles.Theme.Name)
}

func TestSaveReport(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "report.txt"))
	store := report.New(t.TempDir())

	a, _ := newTestApp(t, root, Options{Kind: model.KindFile, Reports: store})
	a = search(t, a, "report")

	a = press(t, a, "w")
	require.NoError(t, a.err)
	assert.Contains(t, a.status, "Saved report")

	infos, err := store.List()
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestStartupOverlay(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "desktop.ini"))
	write(t, filepath.Join(dir, "sync.lnk"))

	a, _ := newTestApp(t, t.TempDir(), Options{Kind: model.KindFile, StartupDir: dir})
	a = press(t, a, "esc")

	a = press(t, a, "S")
	require.True(t, a.startup.IsVisible())
	view := a.View()
	assert.Contains(t, view, "Startup Folder Files")
	assert.Contains(t, view, "sync.lnk")
	assert.NotContains(t, view, "desktop.ini")

	a = press(t, a, "x")
	assert.False(t, a.startup.IsVisible())
}

func TestStartupOverlayMissingFolder(t *testing.T) {
	a, _ := newTestApp(t, t.TempDir(), Options{
		Kind:       model.KindFile,
		StartupDir: filepath.Join(t.TempDir(), "missing"),
	})
	a = press(t, a, "esc")
	a = press(t, a, "S")

	assert.Contains(t, a.View(), "Startup folder not found.")
}

func TestVolumeSelector(t *testing.T) {
	vols := []model.Volume{
		{ID: "C:", Path: `C:\`, Label: "System"},
		{ID: "D:", Path: `D:\`, Label: "Data"},
	}
	styles := NewStyles(ThemeByName(config.ThemeDark))

	v := NewVolumeSelector(styles, vols, nil)
	assert.True(t, v.AllSelected())
	assert.Equal(t, "all volumes", v.Summary())

	v = NewVolumeSelector(styles, vols, []string{"D:"})
	assert.False(t, v.AllSelected())
	require.Len(t, v.Selected(), 1)
	assert.Equal(t, "D:", v.Selected()[0].ID)

	// Row 0 toggles everything
	v.Toggle()
	assert.True(t, v.AllSelected())
	v.Toggle()
	assert.Empty(t, v.Selected())
	assert.Equal(t, "no volumes", v.Summary())

	v.MoveDown()
	v.Toggle()
	require.Len(t, v.Selected(), 1)
	assert.Equal(t, "C:", v.Selected()[0].ID)

	v.MoveDown()
	v.MoveDown() // stays on the last row
	v.Toggle()
	assert.True(t, v.AllSelected())

	// Unknown preselection falls back to everything
	v = NewVolumeSelector(styles, vols, []string{"Z:"})
	assert.True(t, v.AllSelected())
}

func TestNoVolumesSelectedHint(t *testing.T) {
	a, _ := newTestApp(t, t.TempDir(), Options{Kind: model.KindFile})
	a.volumes.Toggle() // row 0 clears every volume
	a.form.SetValue("report")

	a = press(t, a, "enter")
	require.Error(t, a.err)
	assert.Equal(t, "select at least one volume (ctrl+e)", a.err.Error())
}

func TestShortenPath(t *testing.T) {
	assert.Equal(t, "/a/b.txt", shortenPath("/a/b.txt", 20))
	got := shortenPath("/very/long/path/to/some/file.txt", 12)
	assert.Equal(t, 12, len([]rune(got)))
	assert.Contains(t, got, "…")
	assert.Equal(t, "", shortenPath("/a", 0))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512B", FormatSize(512))
	assert.Equal(t, "1.5KB", FormatSize(1536))
	assert.Equal(t, "2.0MB", FormatSize(2*1024*1024))
	assert.Equal(t, "1.0GB", FormatSize(1024*1024*1024))
}

package startup

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zoom.lnk", "desktop.ini", "Dropbox.lnk", "backup.desktop"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	names, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dropbox.lnk", "backup.desktop", "zoom.lnk"}, names)
}

func TestListEmpty(t *testing.T) {
	names, err := List(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestListMissing(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "Startup"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirXDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG layout")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "autostart"), dir)
}

func TestDirWindows(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("windows layout")
	}
	t.Setenv("APPDATA", `C:\Users\me\AppData\Roaming`)

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, `C:\Users\me\AppData\Roaming\Microsoft\Windows\Start Menu\Programs\Startup`, dir)
}

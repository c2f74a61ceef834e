package model

import (
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInfo struct {
	name string
	dir  bool
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return fs.ModeDir }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.dir }
func (f fakeInfo) Sys() any           { return nil }

func TestProbeDriveLettersOrder(t *testing.T) {
	present := map[string]bool{`D:\`: true, `C:\`: true, `Z:\`: true}
	stat := func(name string) (os.FileInfo, error) {
		if present[name] {
			return fakeInfo{name: name, dir: true}, nil
		}
		if name == `E:\` {
			// Exists but isn't a directory
			return fakeInfo{name: name}, nil
		}
		return nil, os.ErrNotExist
	}

	volumes := probeDriveLetters(stat)
	require.Len(t, volumes, 3)
	assert.Equal(t, "C", volumes[0].ID)
	assert.Equal(t, `C:\`, volumes[0].Path)
	assert.Equal(t, "D", volumes[1].ID)
	assert.Equal(t, "Z", volumes[2].ID)
}

func TestProbeDriveLettersNone(t *testing.T) {
	volumes := probeDriveLetters(func(string) (os.FileInfo, error) {
		return nil, os.ErrPermission
	})
	assert.Empty(t, volumes)
}

func TestParseMounts(t *testing.T) {
	data := strings.Join([]string{
		"sysfs /sys sysfs rw,nosuid 0 0",
		"proc /proc proc rw 0 0",
		"/dev/sda2 /home ext4 rw 0 0",
		"/dev/sda1 / ext4 rw 0 0",
		"tmpfs /run tmpfs rw 0 0",
		`/dev/sdb1 /media/usb\040stick vfat rw 0 0`,
		"/dev/sda1 / ext4 rw 0 0",
		"garbage",
	}, "\n")

	points := parseMounts(strings.NewReader(data))
	assert.Equal(t, []string{"/", "/home", "/media/usb stick"}, points)
}

func TestVolumeUsage(t *testing.T) {
	v := Volume{TotalBytes: 200, FreeBytes: 50}
	assert.Equal(t, int64(150), v.UsedBytes())
	assert.InDelta(t, 75.0, v.UsedPercent(), 0.001)
	assert.Zero(t, Volume{}.UsedPercent())
}

func TestFilterVolumes(t *testing.T) {
	all := []Volume{
		{ID: "/", Path: "/"},
		{ID: "/home", Path: "/home"},
		{ID: "/mnt/data", Path: "/mnt/data"},
	}

	assert.Equal(t, all, FilterVolumes(all, nil))

	got := FilterVolumes(all, []string{"/mnt/data/", "/"})
	require.Len(t, got, 2)
	assert.Equal(t, "/", got[0].Path, "enumeration order is kept")
	assert.Equal(t, "/mnt/data", got[1].Path)

	assert.Empty(t, FilterVolumes(all, []string{"/nope"}))
}

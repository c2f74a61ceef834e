//go:build !windows && !darwin

package model

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

func getPlatformVolumes() ([]Volume, error) {
	f, err := os.Open("/proc/self/mounts")
	if err != nil {
		// No procfs: fall back to the root filesystem only
		return []Volume{newUnixVolume("/")}, nil
	}
	defer f.Close()

	var volumes []Volume
	for _, point := range parseMounts(f) {
		if info, err := os.Stat(point); err != nil || !info.IsDir() {
			continue
		}
		volumes = append(volumes, newUnixVolume(point))
	}

	if len(volumes) == 0 {
		volumes = append(volumes, newUnixVolume("/"))
	}
	return volumes, nil
}

func newUnixVolume(path string) Volume {
	label := filepath.Base(path)
	if path == "/" {
		label = "root"
	}
	v := Volume{ID: path, Path: path, Label: label}
	v.TotalBytes, v.FreeBytes = getDiskSpace(path)
	return v
}

func getDiskSpace(path string) (total, free int64) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0
	}
	total = int64(stat.Blocks) * int64(stat.Bsize)
	free = int64(stat.Bavail) * int64(stat.Bsize)
	return total, free
}

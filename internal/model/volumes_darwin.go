//go:build darwin

package model

import (
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sys/unix"
)

// GetDiskSpace returns disk space information for a given path using statfs
func GetDiskSpace(path string) (total, free int64) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0
	}

	total = int64(stat.Blocks) * int64(stat.Bsize)
	free = int64(stat.Bavail) * int64(stat.Bsize)
	return total, free
}

func getPlatformVolumes() ([]Volume, error) {
	var volumes []Volume

	// Root filesystem first
	root := Volume{
		ID:    "Macintosh HD",
		Path:  "/",
		Label: "Macintosh HD",
	}
	root.TotalBytes, root.FreeBytes = GetDiskSpace("/")
	volumes = append(volumes, root)

	volumesDir := "/Volumes"
	entries, err := os.ReadDir(volumesDir)
	if err != nil {
		// If we can't read /Volumes, just return root
		return volumes, nil
	}

	// ReadDir is sorted by name, which keeps enumeration order stable
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		volumePath := filepath.Join(volumesDir, entry.Name())

		var stat unix.Statfs_t
		if err := unix.Statfs(volumePath, &stat); err != nil {
			continue
		}

		// The boot volume shows up again under /Volumes as a firmlink
		if unix.ByteSliceToString(stat.Mntonname[:]) == "/" {
			continue
		}

		fsType := unix.ByteSliceToString(stat.Fstypename[:])
		if isFilteredFilesystem(fsType) {
			continue
		}

		v := Volume{
			ID:    entry.Name(),
			Path:  volumePath,
			Label: entry.Name(),
		}
		v.TotalBytes, v.FreeBytes = GetDiskSpace(volumePath)

		if v.TotalBytes > 0 {
			volumes = append(volumes, v)
		}
	}

	return volumes, nil
}

var (
	networkFilesystems = []string{"smbfs", "nfs", "afpfs", "webdav", "cifs"}
	pseudoFilesystems  = []string{"devfs", "autofs", "mtmfs", "nullfs"}
)

// isFilteredFilesystem returns true if the filesystem type should be filtered out
func isFilteredFilesystem(fsType string) bool {
	return slices.Contains(networkFilesystems, fsType) || slices.Contains(pseudoFilesystems, fsType)
}

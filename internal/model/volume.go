package model

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Volume represents a mounted drive/volume that can be scanned
type Volume struct {
	ID         string // e.g., "C" or "Data"
	Path       string // e.g., "C:\\" or "/Volumes/Data"
	Label      string // volume label
	TotalBytes int64
	FreeBytes  int64
}

// UsedBytes returns bytes used on this volume
func (v Volume) UsedBytes() int64 {
	return v.TotalBytes - v.FreeBytes
}

// UsedPercent returns percentage of volume used
func (v Volume) UsedPercent() float64 {
	if v.TotalBytes == 0 {
		return 0
	}
	return float64(v.UsedBytes()) / float64(v.TotalBytes) * 100
}

// String returns the path, which is how volumes are shown to users
func (v Volume) String() string {
	return v.Path
}

// GetVolumes returns all available volumes on the system in enumeration order.
// Candidates that don't exist are left out, never reported as errors.
func GetVolumes() ([]Volume, error) {
	return getPlatformVolumes()
}

// VolumeFromPath builds a volume for an arbitrary directory, used when the
// user points a scan at a custom root instead of a discovered volume.
func VolumeFromPath(path string) Volume {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return Volume{
		ID:    abs,
		Path:  abs,
		Label: filepath.Base(abs),
	}
}

// FilterVolumes returns the volumes whose ID or Path matches one of ids,
// keeping enumeration order. An empty ids list selects everything.
func FilterVolumes(all []Volume, ids []string) []Volume {
	if len(ids) == 0 {
		return all
	}

	var selected []Volume
	for _, v := range all {
		for _, id := range ids {
			if sameVolumeID(v, id) {
				selected = append(selected, v)
				break
			}
		}
	}
	return selected
}

func sameVolumeID(v Volume, id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	if runtime.GOOS == "windows" {
		// Accept "c", "C:", "C:\" for drive C
		trimmed := strings.TrimRight(id, `:\/`)
		return strings.EqualFold(trimmed, v.ID) || strings.EqualFold(id, v.Path)
	}
	return id == v.ID || filepath.Clean(id) == filepath.Clean(v.Path)
}

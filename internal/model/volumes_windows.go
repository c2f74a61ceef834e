//go:build windows

package model

import (
	"os"

	"golang.org/x/sys/windows"
)

func getPlatformVolumes() ([]Volume, error) {
	volumes := probeDriveLetters(os.Stat)
	for i := range volumes {
		volumes[i].TotalBytes, volumes[i].FreeBytes = getDiskSpace(volumes[i].Path)
		if label := volumeLabel(volumes[i].Path); label != "" {
			volumes[i].Label = label
		}
	}
	return volumes, nil
}

func getDiskSpace(path string) (total, free int64) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0
	}

	var freeBytesAvailable, totalBytes, totalFreeBytes uint64
	if err := windows.GetDiskFreeSpaceEx(pathPtr, &freeBytesAvailable, &totalBytes, &totalFreeBytes); err != nil {
		return 0, 0
	}

	return int64(totalBytes), int64(freeBytesAvailable)
}

// volumeLabel returns the volume name (e.g. "Windows"), or "" if unavailable
func volumeLabel(path string) string {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return ""
	}

	name := make([]uint16, windows.MAX_PATH+1)
	if err := windows.GetVolumeInformation(pathPtr, &name[0], uint32(len(name)), nil, nil, nil, nil, 0); err != nil {
		return ""
	}
	return windows.UTF16ToString(name)
}

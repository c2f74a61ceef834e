//go:build windows

package tui

import (
	"os"
	"syscall"
	"time"
)

// getCreationTime returns the NTFS creation time
func getCreationTime(info os.FileInfo) time.Time {
	if data, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, data.CreationTime.Nanoseconds())
	}
	return time.Time{}
}

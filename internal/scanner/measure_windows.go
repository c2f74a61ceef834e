//go:build windows

package scanner

import (
	"io/fs"
	"sync"
	"syscall"

	"golang.org/x/sys/windows"
)

// platformRootInfo is empty on Windows: drives are separate roots already
type platformRootInfo struct{}

func getPlatformRootInfo(path string) platformRootInfo {
	return platformRootInfo{}
}

// shouldSkipDir skips reparse points (junctions, mounted folders) so a
// measurement never leaves the tree it was asked about
func shouldSkipDir(path string, d fs.DirEntry, rootInfo platformRootInfo, seenItems *sync.Map) bool {
	info, err := d.Info()
	if err != nil {
		return false
	}
	attrs, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return false
	}
	return attrs.FileAttributes&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0
}

// getFileSize returns the logical file size
func getFileSize(info fs.FileInfo, seenItems *sync.Map) int64 {
	return info.Size()
}

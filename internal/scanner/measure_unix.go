//go:build !windows

package scanner

import (
	"io/fs"
	"sync"
	"syscall"
)

// platformRootInfo identifies the filesystem a measurement started on
type platformRootInfo struct {
	dev uint64
}

func getPlatformRootInfo(path string) platformRootInfo {
	var stat syscall.Stat_t
	if err := syscall.Stat(path, &stat); err != nil {
		return platformRootInfo{}
	}
	return platformRootInfo{dev: uint64(stat.Dev)}
}

// shouldSkipDir keeps measurements on one filesystem and visits each
// directory inode once (firmlinks on macOS show the same tree twice)
func shouldSkipDir(path string, d fs.DirEntry, rootInfo platformRootInfo, seenItems *sync.Map) bool {
	info, err := d.Info()
	if err != nil {
		return false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}

	if rootInfo.dev != 0 && uint64(stat.Dev) != rootInfo.dev {
		return true
	}

	key := inodeKey{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}
	if _, exists := seenItems.LoadOrStore(key, true); exists {
		return true
	}

	return false
}

type inodeKey struct {
	dev uint64
	ino uint64
}

// getFileSize returns the allocated size of a file, or -1 if this inode was
// already counted through another hard link
func getFileSize(info fs.FileInfo, seenItems *sync.Map) int64 {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.Size()
	}

	if stat.Nlink > 1 {
		key := inodeKey{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}
		if _, exists := seenItems.LoadOrStore(key, true); exists {
			return -1
		}
	}

	// Blocks is in 512-byte units
	return stat.Blocks * 512
}

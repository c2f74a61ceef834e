//go:build !windows && !darwin

package tui

import (
	"os"
	"os/exec"
	"path/filepath"
)

// openInFileManager opens the folder holding path; freedesktop file
// managers have no common way to select an item
func openInFileManager(path string) error {
	dir := path
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		dir = filepath.Dir(path)
	}
	return exec.Command("xdg-open", dir).Start()
}

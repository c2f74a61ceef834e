//go:build windows

package tui

import "os/exec"

// openInFileManager reveals path in Explorer with the item selected
func openInFileManager(path string) error {
	return exec.Command("explorer", "/select,"+path).Start()
}

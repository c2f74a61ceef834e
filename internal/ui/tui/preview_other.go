//go:build !darwin && !windows

package tui

import "os/exec"

// previewInViewer opens path with the desktop's default application
func previewInViewer(path string) error {
	return exec.Command("xdg-open", path).Start()
}

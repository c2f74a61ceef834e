//go:build windows

package tui

import "os/exec"

// previewInViewer opens path with its associated program
func previewInViewer(path string) error {
	return exec.Command("cmd", "/c", "start", "", path).Start()
}

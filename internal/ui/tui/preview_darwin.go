//go:build darwin

package tui

import "os/exec"

// previewInViewer opens path in Quick Look
func previewInViewer(path string) error {
	return exec.Command("qlmanage", "-p", path).Start()
}

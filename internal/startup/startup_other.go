//go:build !darwin && !windows

package startup

import (
	"os"
	"path/filepath"
)

// platformDir returns the XDG autostart folder
func platformDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "autostart"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "autostart"), nil
}

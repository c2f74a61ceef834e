//go:build darwin

package startup

import (
	"os"
	"path/filepath"
)

func platformDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents"), nil
}

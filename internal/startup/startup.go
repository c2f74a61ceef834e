// Package startup lists the programs a user has set to launch at login.
package startup

import (
	"errors"
	"fmt"
	"os"
	"sort"
)

// ErrNotFound is returned when the startup folder does not exist
var ErrNotFound = errors.New("startup folder not found")

// Dir returns the current user's startup folder for this platform
func Dir() (string, error) {
	return platformDir()
}

// List returns the entry names in the startup folder at path, sorted.
// Hidden bookkeeping files such as desktop.ini are left out.
func List(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read startup folder: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if isBookkeeping(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func isBookkeeping(name string) bool {
	switch name {
	case "desktop.ini", ".DS_Store":
		return true
	}
	return false
}

package model

import (
	"fmt"
	"os"
)

// statFunc matches os.Stat so candidate probing can be faked in tests
type statFunc func(name string) (os.FileInfo, error)

// probeDriveLetters checks A:\ through Z:\ in alphabetical order and returns
// the ones that exist as directories.
func probeDriveLetters(stat statFunc) []Volume {
	var volumes []Volume

	for letter := 'A'; letter <= 'Z'; letter++ {
		path := fmt.Sprintf("%c:\\", letter)
		info, err := stat(path)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			continue
		}

		volumes = append(volumes, Volume{
			ID:    string(letter),
			Path:  path,
			Label: string(letter) + ":",
		})
	}

	return volumes
}

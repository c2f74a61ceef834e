//go:build !darwin && !windows

package tui

import (
	"os"
	"time"
)

// getCreationTime returns zero time; stat on these platforms has no birth time
func getCreationTime(info os.FileInfo) time.Time {
	return time.Time{}
}

package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/lumipallolabs/filesearch/internal/model"
)

// ResultSet is the frozen output of one scan session. Match positions never
// change once it is built; a new scan produces a new set with a new ID.
type ResultSet struct {
	ID       uuid.UUID
	Query    model.ScanQuery
	Matches  []model.Match
	State    SessionState
	Started  time.Time
	Finished time.Time
}

// Len returns the number of matches
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Matches)
}

// At returns the match at a 1-based selection index
func (r *ResultSet) At(index int) (model.Match, bool) {
	if index < 1 || index > r.Len() {
		return model.Match{}, false
	}
	return r.Matches[index-1], true
}

// IndexOf returns the 1-based index of path, or 0 when it isn't a match
func (r *ResultSet) IndexOf(path string) int {
	if r == nil {
		return 0
	}
	for i, m := range r.Matches {
		if m.Path == path {
			return i + 1
		}
	}
	return 0
}

// TotalSize sums the known sizes of all matches
func (r *ResultSet) TotalSize() int64 {
	var total int64
	if r == nil {
		return 0
	}
	for _, m := range r.Matches {
		total += m.Size
	}
	return total
}

// Paths returns every match path in order
func (r *ResultSet) Paths() []string {
	paths := make([]string, 0, r.Len())
	if r == nil {
		return paths
	}
	for _, m := range r.Matches {
		paths = append(paths, m.Path)
	}
	return paths
}

// Duration returns how long the scan took
func (r *ResultSet) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

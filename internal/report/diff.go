package report

import (
	"github.com/lumipallolabs/filesearch/internal/core"
	"github.com/lumipallolabs/filesearch/internal/model"
)

// Diff describes how the matches of two scans for the same query differ
type Diff struct {
	Added   []model.Match // in current, not in previous
	Removed []model.Match // in previous, gone from current
	Grew    []model.Match // current entries that got bigger
	Shrunk  []model.Match
}

// IsEmpty reports whether nothing changed
func (d Diff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Grew) == 0 && len(d.Shrunk) == 0
}

// Compare diffs current against previous, keeping each set's order.
// A nil previous makes every current match new.
func Compare(previous, current *core.ResultSet) Diff {
	var d Diff
	if current == nil {
		current = &core.ResultSet{}
	}
	if previous == nil {
		d.Added = append(d.Added, current.Matches...)
		return d
	}

	// Build lookup maps by path
	prevMap := make(map[string]model.Match, previous.Len())
	for _, m := range previous.Matches {
		prevMap[m.Path] = m
	}
	currMap := make(map[string]bool, current.Len())

	for _, m := range current.Matches {
		currMap[m.Path] = true
		prev, exists := prevMap[m.Path]
		switch {
		case !exists:
			d.Added = append(d.Added, m)
		case m.Size > prev.Size:
			d.Grew = append(d.Grew, m)
		case m.Size < prev.Size:
			d.Shrunk = append(d.Shrunk, m)
		}
	}

	for _, m := range previous.Matches {
		if !currMap[m.Path] {
			d.Removed = append(d.Removed, m)
		}
	}
	return d
}

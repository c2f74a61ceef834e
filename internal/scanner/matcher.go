package scanner

import (
	"path/filepath"
	"strings"

	"github.com/lumipallolabs/filesearch/internal/model"
	"golang.org/x/text/unicode/norm"
)

// Matcher tests entry names for case-insensitive containment of a target
type Matcher struct {
	target string
	kind   model.MatchKind
}

// NewMatcher creates a matcher for the given target and kind
func NewMatcher(target string, kind model.MatchKind) Matcher {
	return Matcher{
		target: foldName(strings.TrimSpace(target)),
		kind:   kind,
	}
}

// Kind returns the kind of entry this matcher reports
func (m Matcher) Kind() model.MatchKind {
	return m.kind
}

// MatchName reports whether name contains the target, ignoring case
func (m Matcher) MatchName(name string) bool {
	return strings.Contains(foldName(name), m.target)
}

// Consider returns the new matches found in entry, in listing order
func (m Matcher) Consider(entry DirectoryEntry) []model.Match {
	var matches []model.Match

	switch m.kind {
	case model.KindFile:
		for _, name := range entry.Files {
			if m.MatchName(name) {
				matches = append(matches, model.Match{
					Path: filepath.Join(entry.Path, name),
					Kind: model.KindFile,
				})
			}
		}
	case model.KindFolder:
		for _, dir := range entry.Dirs {
			if m.MatchName(filepath.Base(dir)) {
				matches = append(matches, model.Match{
					Path: dir,
					Kind: model.KindFolder,
				})
			}
		}
	}

	return matches
}

// foldName lowercases and NFC-normalizes a name. macOS hands out decomposed
// names, so "café" typed by the user must still match them.
func foldName(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}

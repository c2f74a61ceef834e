package model

import (
	"fmt"
	"strings"
)

// MatchKind selects whether a scan matches file names or folder names
type MatchKind int

const (
	KindFile MatchKind = iota
	KindFolder
)

// String returns the lowercase kind name used in flags and config
func (k MatchKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindFolder:
		return "folder"
	default:
		return fmt.Sprintf("MatchKind(%d)", int(k))
	}
}

// ParseMatchKind parses "file" or "folder" (case-insensitive)
func ParseMatchKind(s string) (MatchKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file", "files", "f":
		return KindFile, nil
	case "folder", "folders", "dir", "directory", "d":
		return KindFolder, nil
	}
	return KindFile, fmt.Errorf("unknown match kind %q (want file or folder)", s)
}

// Match is a discovered path whose name contains the search target
type Match struct {
	Path string
	Kind MatchKind
	Size int64 // bytes for file matches, 0 when unknown
}

// IsDir reports whether the match is a folder
func (m Match) IsDir() bool {
	return m.Kind == KindFolder
}

package scanner

import (
	"path/filepath"
	"runtime"
	"strings"
)

// SkipPolicy holds path prefixes that are pruned from traversal. A directory
// is skipped when its path equals a prefix or is nested under one.
type SkipPolicy struct {
	prefixes []string // normalized
	raw      []string
	fold     bool
	sep      byte
}

// NewSkipPolicy creates a policy using the host's path conventions
// (case-insensitive with backslashes on Windows).
func NewSkipPolicy(prefixes ...string) *SkipPolicy {
	return newSkipPolicy(runtime.GOOS == "windows", filepath.Separator, prefixes)
}

func newSkipPolicy(fold bool, sep byte, prefixes []string) *SkipPolicy {
	p := &SkipPolicy{fold: fold, sep: sep}
	for _, prefix := range prefixes {
		if strings.TrimSpace(prefix) == "" {
			continue
		}
		p.raw = append(p.raw, prefix)
		p.prefixes = append(p.prefixes, p.normalize(prefix))
	}
	return p
}

// Prefixes returns the configured prefixes as given
func (p *SkipPolicy) Prefixes() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.raw...)
}

// ShouldSkip reports whether path is one of the prefixes or below one.
// A nil policy skips nothing.
func (p *SkipPolicy) ShouldSkip(path string) bool {
	if p == nil || len(p.prefixes) == 0 {
		return false
	}

	n := p.normalize(path)
	for _, prefix := range p.prefixes {
		if n == prefix {
			return true
		}
		if !strings.HasPrefix(n, prefix) {
			continue
		}
		// Roots like "/" or "C:\" already end in a separator
		if prefix[len(prefix)-1] == p.sep || n[len(prefix)] == p.sep {
			return true
		}
	}
	return false
}

func (p *SkipPolicy) normalize(path string) string {
	path = strings.TrimSpace(path)
	if p.sep == '\\' {
		path = strings.ReplaceAll(path, "/", `\`)
	}
	if p.sep == filepath.Separator {
		path = filepath.Clean(path)
	}

	// Trailing separators don't change which directory is meant, except for
	// roots ("/" or "C:\")
	for len(path) > 1 && path[len(path)-1] == p.sep && !isVolumeRoot(path) {
		path = path[:len(path)-1]
	}

	if p.fold {
		path = strings.ToLower(path)
	}
	return path
}

func isVolumeRoot(path string) bool {
	return len(path) == 3 && path[1] == ':'
}

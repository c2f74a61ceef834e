// Package deletion removes a single, explicitly confirmed match. It never
// deletes recursively: a non-empty folder fails with the OS error.
package deletion

import (
	"os"
	"strings"

	"github.com/lumipallolabs/filesearch/internal/core"
	"github.com/lumipallolabs/filesearch/internal/logging"
)

// Remover deletes one filesystem entry
type Remover interface {
	Remove(path string) error
}

// RemoverFunc adapts a function to Remover
type RemoverFunc func(path string) error

func (f RemoverFunc) Remove(path string) error { return f(path) }

// Gate guards deletion behind selection checks and a confirmation step
type Gate struct {
	remover Remover
	stat    func(string) (os.FileInfo, error)
}

// Option configures a Gate
type Option func(*Gate)

// WithRemover replaces os.Remove
func WithRemover(r Remover) Option {
	return func(g *Gate) {
		g.remover = r
	}
}

// NewGate creates a gate that removes with os.Remove
func NewGate(opts ...Option) *Gate {
	g := &Gate{
		remover: RemoverFunc(os.Remove),
		stat:    os.Stat,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ core.Deleter = (*Gate)(nil)

// Delete removes match index (1-based) of set after confirm returns true.
// confirm is called exactly once, and only for a valid index.
func (g *Gate) Delete(set *core.ResultSet, index int, confirm func(path string) bool) error {
	m, ok := set.At(index)
	if !ok {
		return &InvalidSelectionError{Index: index, Count: set.Len()}
	}
	return g.confirmAndRemove(m.Path, confirm)
}

// DeletePath removes a regular file named by the user. Surrounding
// whitespace and quotes, as left by drag-and-drop or copy-paste, are ignored.
func (g *Gate) DeletePath(path string, confirm func(path string) bool) error {
	path = cleanPath(path)
	if path == "" {
		return &InvalidSelectionError{Reason: ErrNotRegularFile}
	}

	info, err := g.stat(path)
	if err != nil {
		return &InvalidSelectionError{Path: path, Reason: err}
	}
	if !info.Mode().IsRegular() {
		return &InvalidSelectionError{Path: path, Reason: ErrNotRegularFile}
	}

	return g.confirmAndRemove(path, confirm)
}

func (g *Gate) confirmAndRemove(path string, confirm func(path string) bool) error {
	if confirm == nil || !confirm(path) {
		logging.Deletion.Printf("declined %s", path)
		return ErrNotConfirmed
	}

	if err := g.remover.Remove(path); err != nil {
		logging.Deletion.Printf("failed %s: %v", path, err)
		return &DeleteFailedError{Path: path, Err: err}
	}

	logging.Deletion.Printf("deleted %s", path)
	return nil
}

func cleanPath(path string) string {
	path = strings.TrimSpace(path)
	for len(path) >= 2 {
		first, last := path[0], path[len(path)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			path = strings.TrimSpace(path[1 : len(path)-1])
			continue
		}
		break
	}
	return path
}

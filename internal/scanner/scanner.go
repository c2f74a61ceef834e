// Package scanner walks directory trees breadth-first, prunes configured
// prefixes and matches entry names against a search target.
package scanner

import "iter"

// DirectoryEntry is one visited directory with its immediate children.
// Dirs holds full paths, Files holds bare names.
type DirectoryEntry struct {
	Path  string
	Dirs  []string
	Files []string
}

// Tree produces the directory entries below a root in visit order
type Tree interface {
	Walk(root string) iter.Seq[DirectoryEntry]
}

// Ensure Walker implements Tree
var _ Tree = (*Walker)(nil)

package deletion

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection means the index or path does not name something
	// that may be deleted. Nothing on disk was touched.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrNotConfirmed means the user declined. Nothing was deleted.
	ErrNotConfirmed = errors.New("not confirmed")

	// ErrDeleteFailed means the remove call itself failed
	ErrDeleteFailed = errors.New("delete failed")

	// ErrNotRegularFile is the reason DeletePath rejects directories,
	// devices and missing paths
	ErrNotRegularFile = errors.New("not a regular file")
)

// InvalidSelectionError describes a rejected selection
type InvalidSelectionError struct {
	Index  int    // 1-based index, 0 for path selections
	Count  int    // number of matches available
	Path   string // set for path selections
	Reason error
}

func (e *InvalidSelectionError) Error() string {
	if e.Path != "" {
		if e.Reason != nil {
			return fmt.Sprintf("invalid selection %s: %v", e.Path, e.Reason)
		}
		return fmt.Sprintf("invalid selection %s", e.Path)
	}
	if e.Count == 0 {
		return fmt.Sprintf("invalid selection %d: there are no matches", e.Index)
	}
	return fmt.Sprintf("invalid selection %d: choose 1 to %d", e.Index, e.Count)
}

func (e *InvalidSelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}

func (e *InvalidSelectionError) Unwrap() error {
	return e.Reason
}

// DeleteFailedError carries the OS error of a failed remove
type DeleteFailedError struct {
	Path string
	Err  error
}

func (e *DeleteFailedError) Error() string {
	return fmt.Sprintf("delete %s: %v", e.Path, e.Err)
}

func (e *DeleteFailedError) Is(target error) bool {
	return target == ErrDeleteFailed
}

func (e *DeleteFailedError) Unwrap() error {
	return e.Err
}

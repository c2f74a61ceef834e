package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuery is returned when a scan is requested with an empty target
// or without any volume to scan
var ErrInvalidQuery = errors.New("invalid query")

// ScanQuery describes one scan request
type ScanQuery struct {
	Target  string
	Kind    MatchKind
	Volumes []Volume
}

// NewScanQuery builds a query with a trimmed target
func NewScanQuery(target string, kind MatchKind, volumes []Volume) ScanQuery {
	return ScanQuery{
		Target:  strings.TrimSpace(target),
		Kind:    kind,
		Volumes: volumes,
	}
}

// Validate checks the query before any traversal starts
func (q ScanQuery) Validate() error {
	if strings.TrimSpace(q.Target) == "" {
		return fmt.Errorf("%w: target must not be empty", ErrInvalidQuery)
	}
	if len(q.Volumes) == 0 {
		return fmt.Errorf("%w: no volumes selected", ErrInvalidQuery)
	}
	if q.Kind != KindFile && q.Kind != KindFolder {
		return fmt.Errorf("%w: %s", ErrInvalidQuery, q.Kind)
	}
	return nil
}

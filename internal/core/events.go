package core

import "github.com/lumipallolabs/filesearch/internal/model"

// Event represents a state change reported by a scan session or controller
type Event interface {
	isEvent()
}

// VolumeStartedEvent is emitted before a volume is walked
type VolumeStartedEvent struct {
	Volume model.Volume
	Index  int // 0-based position in the query's volume list
	Total  int
}

func (VolumeStartedEvent) isEvent() {}

// DirectoryVisitedEvent is emitted after each directory. It is dropped when
// the consumer is behind.
type DirectoryVisitedEvent struct {
	Path    string
	Matches int64 // matches so far
}

func (DirectoryVisitedEvent) isEvent() {}

// MatchFoundEvent is emitted for every match in discovery order
type MatchFoundEvent struct {
	Match model.Match
	Index int // 1-based selection index
}

func (MatchFoundEvent) isEvent() {}

// VolumeFinishedEvent is emitted once a volume has been fully walked
type VolumeFinishedEvent struct {
	Volume model.Volume
	Index  int
	Total  int
}

func (VolumeFinishedEvent) isEvent() {}

// ScanFinishedEvent is the last event of a session
type ScanFinishedEvent struct {
	Result *ResultSet
}

func (ScanFinishedEvent) isEvent() {}

// MatchGoneEvent is emitted when a match disappears after the scan
type MatchGoneEvent struct {
	Path  string
	Index int
}

func (MatchGoneEvent) isEvent() {}

// MatchDeletedEvent is emitted when a match was deleted through the controller
type MatchDeletedEvent struct {
	Path  string
	Index int
	Size  int64
}

func (MatchDeletedEvent) isEvent() {}

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}

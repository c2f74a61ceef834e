package core

import (
	"time"

	"github.com/lumipallolabs/filesearch/internal/model"
)

// SessionState is the lifecycle state of a scan session
type SessionState int32

const (
	StateIdle SessionState = iota
	StateRunning
	StateCompleted
	StateCancelled
)

// String returns a human-readable state name
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return ""
	}
}

// IsTerminal reports whether the session has finished, either way
func (s SessionState) IsTerminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// ScanState holds the controller's view of the current scan
type ScanState struct {
	State     SessionState
	StartTime time.Time
	Progress  model.ScanProgress
}

// IsScanning returns true while a session is running
func (s ScanState) IsScanning() bool {
	return s.State == StateRunning
}

// Elapsed returns time since scan started
func (s ScanState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime).Truncate(time.Second)
}

// AppState holds the complete controller state (read-only view)
type AppState struct {
	Volumes []model.Volume
	Scan    ScanState
	Result  *ResultSet
	Gone    map[string]bool // matches deleted since the scan
}

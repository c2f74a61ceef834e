package core

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/lumipallolabs/filesearch/internal/logging"
	"github.com/lumipallolabs/filesearch/internal/model"
	"github.com/lumipallolabs/filesearch/internal/scanner"
)

// DefaultEventBuffer is the event channel capacity when none is configured
const DefaultEventBuffer = 256

var (
	// ErrInvalidQuery is returned by Start for an empty target or volume set
	ErrInvalidQuery = model.ErrInvalidQuery

	// ErrSessionUsed is returned when Start is called on a session that has
	// already been started. Sessions are single-use.
	ErrSessionUsed = errors.New("scan session already started")
)

// SessionConfig configures a scan session
type SessionConfig struct {
	Skip        *scanner.SkipPolicy
	EventBuffer int

	// Tree overrides the directory walker, mainly for tests
	Tree scanner.Tree

	// OnFinish is called with the frozen result before ScanFinishedEvent
	// is sent
	OnFinish func(*ResultSet)
}

// Session runs one scan: every volume of a query is walked in order and its
// entries are fed to a matcher. A session moves Idle -> Running and then to
// Completed or Cancelled, and cannot be restarted.
type Session struct {
	cfg   SessionConfig
	state atomic.Int32
}

// NewSession creates an idle session
func NewSession(cfg SessionConfig) *Session {
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultEventBuffer
	}
	if cfg.Tree == nil {
		cfg.Tree = scanner.NewWalker(cfg.Skip, scanner.WithErrorHandler(func(path string, err error) {
			logging.Scanner.Printf("skipping unreadable %s: %v", path, err)
		}))
	}
	return &Session{cfg: cfg}
}

// State returns the session's current state
func (s *Session) State() SessionState {
	return SessionState(s.state.Load())
}

// Start validates the query and begins scanning in the background. An
// invalid query leaves the session idle.
func (s *Session) Start(ctx context.Context, query model.ScanQuery) (*Handle, error) {
	if s.State() != StateIdle {
		return nil, ErrSessionUsed
	}

	query = model.NewScanQuery(query.Target, query.Kind, query.Volumes)
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return nil, ErrSessionUsed
	}

	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		id:      uuid.New(),
		events:  make(chan Event, s.cfg.EventBuffer),
		done:    make(chan struct{}),
		cancel:  cancel,
		started: time.Now(),
	}
	h.volumesTotal.Store(int64(len(query.Volumes)))

	go s.run(ctx, h, query)

	return h, nil
}

// run executes the scan in a goroutine
func (s *Session) run(ctx context.Context, h *Handle, query model.ScanQuery) {
	defer close(h.done)
	defer close(h.events)
	defer h.cancel()

	logging.Debug.Printf("[Session %s] scanning for %q (%s) on %d volume(s)",
		h.id, query.Target, query.Kind, len(query.Volumes))

	matcher := scanner.NewMatcher(query.Target, query.Kind)
	total := len(query.Volumes)
	var matches []model.Match
	state := StateCompleted

volumes:
	for i, vol := range query.Volumes {
		if ctx.Err() != nil {
			state = StateCancelled
			break
		}

		h.send(ctx, VolumeStartedEvent{Volume: vol, Index: i, Total: total})

		for entry := range s.cfg.Tree.Walk(vol.Path) {
			for _, m := range matcher.Consider(entry) {
				if m.Kind == model.KindFile {
					if info, err := os.Lstat(m.Path); err == nil {
						m.Size = info.Size()
					}
				}
				matches = append(matches, m)
				h.matches.Add(1)
				h.send(ctx, MatchFoundEvent{Match: m, Index: len(matches)})
			}

			h.dirs.Add(1)
			h.current.Store(entry.Path)
			h.trySend(DirectoryVisitedEvent{Path: entry.Path, Matches: h.matches.Load()})

			// Cancellation is only observed between directories
			if ctx.Err() != nil {
				state = StateCancelled
				break volumes
			}
		}

		h.volumesDone.Add(1)
		h.send(ctx, VolumeFinishedEvent{Volume: vol, Index: i, Total: total})
	}

	result := &ResultSet{
		ID:       h.id,
		Query:    query,
		Matches:  matches,
		State:    state,
		Started:  h.started,
		Finished: time.Now(),
	}
	h.result.Store(result)
	s.state.Store(int32(state))
	if s.cfg.OnFinish != nil {
		s.cfg.OnFinish(result)
	}

	logging.Debug.Printf("[Session %s] %s with %d match(es) after %d dirs",
		h.id, state, len(matches), h.dirs.Load())

	h.send(ctx, ScanFinishedEvent{Result: result})
}

// Handle is the caller's side of a running session
type Handle struct {
	id      uuid.UUID
	events  chan Event
	done    chan struct{}
	cancel  context.CancelFunc
	started time.Time

	volumesDone  atomic.Int64
	volumesTotal atomic.Int64
	dirs         atomic.Int64
	matches      atomic.Int64
	current      atomic.Value // string
	result       atomic.Pointer[ResultSet]
}

// ID returns the identifier the result set will carry
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// Events returns the session's event stream. It is closed after
// ScanFinishedEvent. Volume, match and terminal events wait for room in the
// buffer, so a consumer must keep draining it or call Wait.
func (h *Handle) Events() <-chan Event {
	return h.events
}

// Progress returns a snapshot of the counters. Safe from any goroutine.
func (h *Handle) Progress() model.ScanProgress {
	current, _ := h.current.Load().(string)
	return model.ScanProgress{
		VolumesDone:  int(h.volumesDone.Load()),
		VolumesTotal: int(h.volumesTotal.Load()),
		DirsVisited:  h.dirs.Load(),
		Matches:      h.matches.Load(),
		CurrentDir:   current,
	}
}

// Cancel asks the session to stop after the current directory
func (h *Handle) Cancel() {
	h.cancel()
}

// Done is closed once the result set is frozen
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the session finishes and returns its result set.
// Events still queued are discarded, so Wait can be used on its own or
// after the stream was drained.
func (h *Handle) Wait() *ResultSet {
	for range h.events {
	}
	<-h.done
	return h.result.Load()
}

// send delivers an event, waiting for room unless ctx is done. Room in the
// buffer wins over a done ctx, so a cancelled scan still reports its end
// when the consumer is keeping up.
func (h *Handle) send(ctx context.Context, ev Event) bool {
	select {
	case h.events <- ev:
		return true
	default:
	}
	select {
	case h.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// trySend delivers an event only if there is room
func (h *Handle) trySend(ev Event) {
	select {
	case h.events <- ev:
	default:
	}
}

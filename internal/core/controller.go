package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lumipallolabs/filesearch/internal/config"
	"github.com/lumipallolabs/filesearch/internal/logging"
	"github.com/lumipallolabs/filesearch/internal/model"
	"github.com/lumipallolabs/filesearch/internal/scanner"
	"github.com/lumipallolabs/filesearch/internal/stats"
	"github.com/lumipallolabs/filesearch/internal/watcher"
)

// ErrNoResult is returned when a match is addressed before any scan finished
var ErrNoResult = errors.New("no scan results")

// ErrNoDeleter is returned when the controller was built without a deleter
var ErrNoDeleter = errors.New("deletion is not available")

// Deleter removes one selected match after confirmation
type Deleter interface {
	Delete(set *ResultSet, index int, confirm func(path string) bool) error
	DeletePath(path string, confirm func(path string) bool) error
}

// Controller manages the core application logic without UI dependencies.
// Both front ends drive scans and deletions through it.
type Controller struct {
	mu sync.RWMutex

	cfg     *config.Config
	skip    *scanner.SkipPolicy
	volumes []model.Volume

	scan   ScanState
	handle *Handle
	result *ResultSet
	gone   map[string]bool

	deleter      Deleter
	statsManager *stats.Manager
	watcher      *watcher.Watcher
	tree         scanner.Tree
}

// Option configures a Controller
type Option func(*Controller)

// WithVolumes replaces volume enumeration with a fixed list
func WithVolumes(volumes []model.Volume) Option {
	return func(c *Controller) {
		c.volumes = volumes
	}
}

// WithDeleter sets the deleter used by ConfirmAndDelete
func WithDeleter(d Deleter) Option {
	return func(c *Controller) {
		c.deleter = d
	}
}

// WithStats records scans and deletions in m
func WithStats(m *stats.Manager) Option {
	return func(c *Controller) {
		c.statsManager = m
	}
}

// WithTree overrides the directory walker for every scan
func WithTree(t scanner.Tree) Option {
	return func(c *Controller) {
		c.tree = t
	}
}

// NewController creates a new application controller. A nil cfg means
// the defaults.
func NewController(cfg *config.Config, opts ...Option) *Controller {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	c := &Controller{
		cfg:  cfg,
		skip: scanner.NewSkipPolicy(cfg.SkipPrefixes...),
		gone: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.volumes == nil {
		volumes, err := model.GetVolumes()
		if err != nil {
			logging.Debug.Printf("Failed to enumerate volumes: %v", err)
		}
		c.volumes = volumes
	}

	return c
}

// State returns a read-only snapshot of the current state
func (c *Controller) State() AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	gone := make(map[string]bool, len(c.gone))
	for p := range c.gone {
		gone[p] = true
	}

	scan := c.scan
	if c.handle != nil && scan.State == StateRunning {
		scan.Progress = c.handle.Progress()
	}

	return AppState{
		Volumes: c.volumes,
		Scan:    scan,
		Result:  c.result,
		Gone:    gone,
	}
}

// Config returns the configuration the controller was built with
func (c *Controller) Config() *config.Config {
	return c.cfg
}

// Volumes returns the available volumes
func (c *Controller) Volumes() []model.Volume {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.volumes
}

// Result returns the last frozen result set, nil before the first scan
func (c *Controller) Result() *ResultSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.result
}

// SetResult makes set the target of index-based deletion, for example a
// saved report
func (c *Controller) SetResult(set *ResultSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = set
	c.gone = make(map[string]bool)
}

// IsGone reports whether a match has disappeared since the scan
func (c *Controller) IsGone(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gone[path]
}

// StartScan begins scanning volumes for names containing target. An empty
// target or volume list fails with ErrInvalidQuery before anything runs.
// A running scan is cancelled first.
func (c *Controller) StartScan(ctx context.Context, target string, kind model.MatchKind, volumes []model.Volume) (*Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session := NewSession(SessionConfig{
		Skip:        c.skip,
		EventBuffer: c.cfg.EventBuffer,
		Tree:        c.tree,
		OnFinish:    c.finishScan,
	})

	h, err := session.Start(ctx, model.NewScanQuery(target, kind, volumes))
	if err != nil {
		return nil, err
	}

	if c.handle != nil {
		c.handle.Cancel()
	}
	c.stopWatcherLocked()

	c.handle = h
	c.scan = ScanState{
		State:     StateRunning,
		StartTime: h.started,
	}

	logging.Debug.Printf("[Controller] Started scan %s for %q", h.ID(), target)
	return h, nil
}

// finishScan runs on the session goroutine once its result is frozen
func (c *Controller) finishScan(set *ResultSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A newer scan may have replaced this one
	if c.handle == nil || c.handle.ID() != set.ID {
		return
	}

	c.scan.State = set.State
	c.scan.Progress = c.handle.Progress()
	c.result = set
	c.gone = make(map[string]bool)

	if c.statsManager != nil {
		ids := make([]string, 0, len(set.Query.Volumes))
		for _, v := range set.Query.Volumes {
			ids = append(ids, v.ID)
		}
		c.statsManager.RecordScan(ids)
	}

	logging.Debug.Printf("[Controller] Scan %s %s: %d match(es)", set.ID, set.State, set.Len())
}

// CancelScan asks the running scan, if any, to stop
func (c *Controller) CancelScan() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.handle != nil {
		c.handle.Cancel()
	}
}

// ConfirmAndDelete deletes match index (1-based) of the last result set
// once confirm agrees
func (c *Controller) ConfirmAndDelete(index int, confirm func(path string) bool) error {
	c.mu.RLock()
	set := c.result
	deleter := c.deleter
	c.mu.RUnlock()

	if deleter == nil {
		return ErrNoDeleter
	}
	if set == nil {
		return ErrNoResult
	}

	if err := deleter.Delete(set, index, confirm); err != nil {
		return err
	}

	m, _ := set.At(index)
	c.markDeleted(m.Path, m.Size)
	return nil
}

// ConfirmAndDeletePath deletes a single regular file named by the user
func (c *Controller) ConfirmAndDeletePath(path string, confirm func(path string) bool) error {
	c.mu.RLock()
	deleter := c.deleter
	c.mu.RUnlock()

	if deleter == nil {
		return ErrNoDeleter
	}
	if err := deleter.DeletePath(path, confirm); err != nil {
		return err
	}

	c.markDeleted(path, 0)
	return nil
}

func (c *Controller) markDeleted(path string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.result.IndexOf(path) > 0 {
		c.gone[path] = true
	}
	if c.statsManager != nil {
		c.statsManager.RecordDeletion(size)
	}
}

// Measure returns the on-disk usage of match index, walking folders
func (c *Controller) Measure(ctx context.Context, index int) (scanner.Usage, error) {
	set := c.Result()
	m, ok := set.At(index)
	if !ok {
		return scanner.Usage{}, fmt.Errorf("%w: no match %d", ErrNoResult, index)
	}
	return scanner.Measure(ctx, m.Path, c.skip)
}

// StartWatching watches the directories holding the current matches and
// reports matches that disappear
func (c *Controller) StartWatching() (<-chan Event, error) {
	c.mu.Lock()

	set := c.result
	if set == nil || set.Len() == 0 {
		c.mu.Unlock()
		return nil, nil
	}

	c.stopWatcherLocked()

	w, err := watcher.New()
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.watcher = w
	c.mu.Unlock()

	dirs := watcher.ParentDirs(set.Paths())
	if err := w.Add(dirs...); err != nil {
		logging.Debug.Printf("Failed to add watches: %v", err)
	}
	w.Start()
	logging.Debug.Printf("Watching %d director(ies) for %d match(es)", len(dirs), set.Len())

	eventCh := make(chan Event, 100)
	go c.watchLoop(w, set, eventCh)

	return eventCh, nil
}

// watchLoop turns filesystem deletions into MatchGoneEvents
func (c *Controller) watchLoop(w *watcher.Watcher, set *ResultSet, eventCh chan Event) {
	defer close(eventCh)

	for event := range w.Events() {
		if event.Type != watcher.EventDeleted {
			continue
		}
		index := set.IndexOf(event.Path)
		if index == 0 {
			continue
		}

		c.mu.Lock()
		already := c.gone[event.Path]
		if c.result == set {
			c.gone[event.Path] = true
		}
		c.mu.Unlock()

		if already {
			continue
		}
		logging.Debug.Printf("Watcher: match gone: %s", event.Path)
		eventCh <- MatchGoneEvent{Path: event.Path, Index: index}
	}
}

func (c *Controller) stopWatcherLocked() {
	if c.watcher != nil {
		_ = c.watcher.Stop()
		c.watcher = nil
	}
}

// Stop cancels any scan, waits for it to wind down and releases resources
func (c *Controller) Stop() {
	c.mu.Lock()
	h := c.handle
	c.stopWatcherLocked()
	c.mu.Unlock()

	// finishScan takes the lock, so the scan is awaited without it
	if h != nil {
		h.Cancel()
		h.Wait()
	}
	if c.statsManager != nil {
		_ = c.statsManager.Close()
	}
}

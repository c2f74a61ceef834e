package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/lumipallolabs/filesearch/internal/filelock"
)

// Stats holds persistent counters and preferences
type Stats struct {
	ScansLifetime int64    `json:"scans_lifetime"`
	DeletedFiles  int64    `json:"deleted_files"`
	DeletedBytes  int64    `json:"deleted_bytes"`
	LastVolumes   []string `json:"last_volumes,omitempty"` // volume IDs picked last time
	Theme         string   `json:"theme,omitempty"`
}

// Manager handles loading and saving stats. Several processes may share
// the file: a save merges this process's changes into what is on disk.
type Manager struct {
	path         string
	stats        Stats
	base         Stats // stats as last read from or written to disk
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
}

// NewManager creates a stats manager for the file at path.
// An empty path means the default location.
func NewManager(path string) *Manager {
	if path == "" {
		path = DefaultPath()
	}
	return &Manager{
		path:         path,
		saveDuration: 2 * time.Second, // Debounce saves
	}
}

// DefaultPath returns the default stats file path
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".filesearch-stats.json"
	}
	return filepath.Join(home, ".filesearch", "stats.json")
}

// Load loads stats from disk
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return filelock.With(m.path, func() error {
		disk, err := m.readLocked()
		if err != nil {
			return err
		}
		m.stats = disk
		m.base = disk
		return nil
	})
}

// readLocked reads the stats file; the caller holds the file lock
func (m *Manager) readLocked() (Stats, error) {
	var disk Stats
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No stats file yet, start fresh
			return disk, nil
		}
		return disk, fmt.Errorf("read stats: %w", err)
	}
	if err := json.Unmarshal(data, &disk); err != nil {
		return disk, fmt.Errorf("parse stats %s: %w", m.path, err)
	}
	return disk, nil
}

// Save saves stats to disk immediately
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveLocked()
}

// saveLocked merges into the file on disk and writes it back (caller must
// hold mu). Counters add what this process counted since its last read;
// preferences it changed overwrite the file's.
func (m *Manager) saveLocked() error {
	err := filelock.With(m.path, func() error {
		disk, err := m.readLocked()
		if err != nil {
			return err
		}

		merged := disk
		merged.ScansLifetime += m.stats.ScansLifetime - m.base.ScansLifetime
		merged.DeletedFiles += m.stats.DeletedFiles - m.base.DeletedFiles
		merged.DeletedBytes += m.stats.DeletedBytes - m.base.DeletedBytes
		if !slices.Equal(m.stats.LastVolumes, m.base.LastVolumes) {
			merged.LastVolumes = slices.Clone(m.stats.LastVolumes)
		}
		if m.stats.Theme != m.base.Theme {
			merged.Theme = m.stats.Theme
		}

		data, err := json.MarshalIndent(merged, "", "  ")
		if err != nil {
			return err
		}
		if err := filelock.AtomicWrite(m.path, data); err != nil {
			return err
		}

		m.stats = merged
		m.base = merged
		return nil
	})
	if err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	m.dirty = false
	return nil
}

// Snapshot returns a copy of the current stats
func (m *Manager) Snapshot() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.stats
	s.LastVolumes = slices.Clone(m.stats.LastVolumes)
	return s
}

// LastVolumes returns the volume IDs selected for the previous scan
func (m *Manager) LastVolumes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.stats.LastVolumes)
}

// Theme returns the saved theme, empty when none was chosen
func (m *Manager) Theme() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.Theme
}

// RecordScan counts a finished scan and remembers its volumes
func (m *Manager) RecordScan(volumeIDs []string) {
	m.update(func(s *Stats) bool {
		s.ScansLifetime++
		s.LastVolumes = slices.Clone(volumeIDs)
		return true
	})
}

// RecordDeletion counts a file or folder removed through the tool
func (m *Manager) RecordDeletion(bytes int64) {
	m.update(func(s *Stats) bool {
		s.DeletedFiles++
		s.DeletedBytes += bytes
		return true
	})
}

// SetTheme remembers the theme picked in the TUI
func (m *Manager) SetTheme(theme string) {
	m.update(func(s *Stats) bool {
		if s.Theme == theme {
			return false
		}
		s.Theme = theme
		return true
	})
}

// update applies fn and schedules a debounced save when it changed anything
func (m *Manager) update(fn func(*Stats) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !fn(&m.stats) {
		return
	}
	m.dirty = true

	// Cancel any pending save timer
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(m.saveDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			_ = m.saveLocked() // Ignore errors for background save
		}
	})
}

// Close ensures any pending saves are written
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}

	if m.dirty {
		return m.saveLocked()
	}
	return nil
}

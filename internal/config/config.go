package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lumipallolabs/filesearch/internal/model"
	"gopkg.in/yaml.v3"
)

// DirName is the per-user directory holding config, stats and reports
const DirName = ".filesearch"

// DefaultEventBuffer is the session event channel capacity
const DefaultEventBuffer = 256

// Themes accepted by the TUI
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config represents filesearch configuration options
type Config struct {
	// SkipPrefixes are directory trees pruned from every scan
	SkipPrefixes []string `yaml:"skip_prefixes"`

	// DefaultKind is "file" or "folder"
	DefaultKind string `yaml:"default_kind"`

	// EventBuffer is the capacity of a scan's event channel
	EventBuffer int `yaml:"event_buffer"`

	// Theme is "dark" or "light"; a theme saved from the TUI takes precedence
	Theme string `yaml:"theme"`

	// DebugLog enables debug logging to this file when set
	DebugLog string `yaml:"debug_log"`

	// StartupDir overrides the platform startup folder
	StartupDir string `yaml:"startup_dir"`

	// ReportDir is where saved result sets go
	ReportDir string `yaml:"report_dir"`

	// WatchMatches keeps an eye on matches after a scan and marks them gone
	// when they are deleted elsewhere
	WatchMatches bool `yaml:"watch_matches"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		SkipPrefixes: defaultSkipPrefixes(runtime.GOOS),
		DefaultKind:  model.KindFile.String(),
		EventBuffer:  DefaultEventBuffer,
		Theme:        ThemeDark,
		ReportDir:    filepath.Join(HomeDir(), "reports"),
		WatchMatches: true,
	}
}

// defaultSkipPrefixes lists trees that are huge, slow to read and never
// hold anything a user searches for
func defaultSkipPrefixes(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			`C:\Windows\WinSxS`,
			`C:\Windows\System32\DriverStore`,
			`C:\Windows\SoftwareDistribution`,
			`C:\ProgramData\Microsoft\Windows\Caches`,
		}
	case "darwin":
		return []string{
			"/System/Volumes",
			"/private/var/vm",
			"/dev",
		}
	default:
		return []string{
			"/proc",
			"/sys",
			"/dev",
			"/run",
		}
	}
}

// HomeDir returns ~/.filesearch, or .filesearch when there is no home
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// DefaultPath returns the config file location
func DefaultPath() string {
	return filepath.Join(HomeDir(), "config.yaml")
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// Keys present in the file replace the defaults; absent keys keep them.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the engine or the front ends cannot use
func (c *Config) Validate() error {
	if _, err := model.ParseMatchKind(c.DefaultKind); err != nil {
		return fmt.Errorf("default_kind: %w", err)
	}

	switch strings.ToLower(c.Theme) {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("theme: unknown theme %q (want dark or light)", c.Theme)
	}

	if c.EventBuffer < 0 {
		return fmt.Errorf("event_buffer: must not be negative, got %d", c.EventBuffer)
	}

	for _, p := range c.SkipPrefixes {
		if !filepath.IsAbs(p) {
			return fmt.Errorf("skip_prefixes: %q is not an absolute path", p)
		}
	}
	return nil
}

// Kind returns DefaultKind parsed, falling back to files
func (c *Config) Kind() model.MatchKind {
	kind, err := model.ParseMatchKind(c.DefaultKind)
	if err != nil {
		return model.KindFile
	}
	return kind
}

// MergeWithFlags applies command-line overrides. Empty values are ignored;
// extra skip prefixes are added to the configured ones.
func (c *Config) MergeWithFlags(kind string, skip []string) error {
	if kind != "" {
		k, err := model.ParseMatchKind(kind)
		if err != nil {
			return err
		}
		c.DefaultKind = k.String()
	}
	for _, p := range skip {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("skip prefix %q: %w", p, err)
		}
		c.SkipPrefixes = append(c.SkipPrefixes, abs)
	}
	return nil
}

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/filesearch/internal/config"
)

// Theme is a color palette. Dark is the neon palette, light trades it for
// darker inks that stay readable on a white terminal.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Success    lipgloss.Color
	Danger     lipgloss.Color
	Warning    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Bright     lipgloss.Color
	Dim        lipgloss.Color
	Dir        lipgloss.Color
	File       lipgloss.Color
	Gone       lipgloss.Color
	KeyBg      lipgloss.Color

	// Spinning border gradient
	Shades []string
}

var darkTheme = Theme{
	Name:       config.ThemeDark,
	Primary:    lipgloss.Color("#C084FC"), // soft violet
	Accent:     lipgloss.Color("#00FFFF"), // neon cyan
	Success:    lipgloss.Color("#39FF14"),
	Danger:     lipgloss.Color("#FF5555"),
	Warning:    lipgloss.Color("#FBBF24"),
	Muted:      lipgloss.Color("#4A5568"),
	Border:     lipgloss.Color("#4A5568"),
	Background: lipgloss.Color("#1F1F23"),
	Text:       lipgloss.Color("#E4E4E7"),
	Bright:     lipgloss.Color("#FFFFFF"),
	Dim:        lipgloss.Color("#9CA3AF"),
	Dir:        lipgloss.Color("#00FFFF"),
	File:       lipgloss.Color("#A0A0A0"),
	Gone:       lipgloss.Color("#6B7280"),
	KeyBg:      lipgloss.Color("#1E3A4C"),
	Shades: []string{
		"#00FFFF", "#30EBE0", "#5EEAD4", "#70E0D8", "#85D5E0", "#9AC5E8", "#A8B0F0", "#B89AF8",
		"#C084FC", "#C880F0", "#D080E8", "#D87CDE", "#E07CD4", "#F079CC", "#FF79C6", "#F079CC",
		"#E07CD4", "#D87CDE", "#D080E8", "#C880F0", "#C084FC", "#B89AF8", "#A8B0F0", "#9AC5E8",
		"#85D5E0", "#70E0D8", "#5EEAD4", "#30EBE0",
	},
}

var lightTheme = Theme{
	Name:       config.ThemeLight,
	Primary:    lipgloss.Color("#7C3AED"),
	Accent:     lipgloss.Color("#0E7490"),
	Success:    lipgloss.Color("#15803D"),
	Danger:     lipgloss.Color("#B91C1C"),
	Warning:    lipgloss.Color("#B45309"),
	Muted:      lipgloss.Color("#9CA3AF"),
	Border:     lipgloss.Color("#D1D5DB"),
	Background: lipgloss.Color("#F9FAFB"),
	Text:       lipgloss.Color("#1F2937"),
	Bright:     lipgloss.Color("#000000"),
	Dim:        lipgloss.Color("#6B7280"),
	Dir:        lipgloss.Color("#0E7490"),
	File:       lipgloss.Color("#374151"),
	Gone:       lipgloss.Color("#9CA3AF"),
	KeyBg:      lipgloss.Color("#E0F2FE"),
	Shades: []string{
		"#0E7490", "#0F766E", "#15803D", "#4D7C0F", "#A16207", "#B45309", "#C2410C", "#B91C1C",
		"#BE185D", "#A21CAF", "#7E22CE", "#6D28D9", "#4338CA", "#1D4ED8", "#0369A1", "#0E7490",
	},
}

// ThemeByName returns the palette for a config theme name, dark by default
func ThemeByName(name string) Theme {
	if name == config.ThemeLight {
		return lightTheme
	}
	return darkTheme
}

// Styles are the lipgloss styles derived from a theme. Components share one
// *Styles so a theme switch repaints everything.
type Styles struct {
	Theme Theme

	Panel                 lipgloss.Style
	ItemSelected          lipgloss.Style
	ItemSelectedUnfocused lipgloss.Style
	Label                 lipgloss.Style
	Value                 lipgloss.Style
	Dim                   lipgloss.Style
	Error                 lipgloss.Style
	Status                lipgloss.Style
	GoneBadge             lipgloss.Style
	SizeBar               lipgloss.Style

	// Help bar: dim text with bright key highlights
	HelpBar        lipgloss.Style
	HelpKey        lipgloss.Style
	KeyHint        lipgloss.Style
	HelpOverlayKey lipgloss.Style

	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
}

// NewStyles builds the styles for t
func NewStyles(t Theme) *Styles {
	s := &Styles{}
	s.apply(t)
	return s
}

// SetTheme switches every style to t in place
func (s *Styles) SetTheme(t Theme) {
	s.apply(t)
}

func (s *Styles) apply(t Theme) {
	s.Theme = t

	s.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	s.ItemSelected = lipgloss.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true)

	s.ItemSelectedUnfocused = lipgloss.NewStyle().
		Background(t.Muted).
		Foreground(lipgloss.Color("#FFFFFF"))

	s.Label = lipgloss.NewStyle().Foreground(t.Dim)
	s.Value = lipgloss.NewStyle().Foreground(t.Bright)
	s.Dim = lipgloss.NewStyle().Foreground(t.Dim)
	s.Error = lipgloss.NewStyle().Foreground(t.Danger).Padding(0, 1)
	s.Status = lipgloss.NewStyle().Foreground(t.Success).Padding(0, 1)

	s.GoneBadge = lipgloss.NewStyle().
		Background(t.Muted).
		Foreground(t.Dim).
		Padding(0, 1)

	s.SizeBar = lipgloss.NewStyle().Foreground(t.Primary)

	s.HelpBar = lipgloss.NewStyle().
		Foreground(t.Muted).
		Padding(0, 1)

	s.HelpKey = lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.KeyBg).
		Padding(0, 1)

	s.KeyHint = s.HelpKey

	s.HelpOverlayKey = lipgloss.NewStyle().
		Foreground(t.Accent).
		Padding(0, 1)

	s.Overlay = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2)

	s.OverlayTitle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		MarginBottom(1)
}

// FormatSize formats bytes to human readable string
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	negative := bytes < 0
	if negative {
		bytes = -bytes
	}

	var result string
	switch {
	case bytes >= TB:
		result = fmt.Sprintf("%.1fTB", float64(bytes)/TB)
	case bytes >= GB:
		result = fmt.Sprintf("%.1fGB", float64(bytes)/GB)
	case bytes >= MB:
		result = fmt.Sprintf("%.1fMB", float64(bytes)/MB)
	case bytes >= KB:
		result = fmt.Sprintf("%.1fKB", float64(bytes)/KB)
	default:
		result = fmt.Sprintf("%dB", bytes)
	}

	if negative {
		return "-" + result
	}
	return result
}

// FormatTime formats a time for display, using shorter format for current year
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Year() == time.Now().Year() {
		return t.Format("Jan 2 15:04")
	}
	return t.Format("Jan 2, 2006 15:04")
}

// shortenPath cuts the middle out of a path so it fits in width cells
func shortenPath(path string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(path) <= width {
		return path
	}
	runes := []rune(path)
	if width <= 3 {
		return string(runes[len(runes)-width:])
	}
	keep := width - 1
	head := keep / 3
	tail := keep - head
	if head+tail > len(runes) {
		return path
	}
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}

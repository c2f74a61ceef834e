package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/filesearch/internal/model"
	"github.com/lumipallolabs/filesearch/internal/stats"
)

// Header displays the query and lifetime stats (2 lines)
type Header struct {
	styles   *Styles
	version  string
	width    int
	target   string
	kind     model.MatchKind
	volumes  string
	scanning bool
	progress string
	stats    stats.Stats
}

// NewHeader creates a new header component
func NewHeader(styles *Styles, version string) Header {
	return Header{
		styles:  styles,
		version: version,
	}
}

// SetQuery sets the query shown on line 2
func (h *Header) SetQuery(target string, kind model.MatchKind, volumes string) {
	h.target = target
	h.kind = kind
	h.volumes = volumes
}

// SetScanning sets the scanning state
func (h *Header) SetScanning(scanning bool, progress string) {
	h.scanning = scanning
	h.progress = progress
}

// SetStats sets the lifetime statistics
func (h *Header) SetStats(s stats.Stats) {
	h.stats = s
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// View renders the header
// Line 1: FileSearch 1.0.0                 Scans: N  Deleted: N files (X)
// Line 2: Find: target [file] in C:, D:            scanning 3 matches
func (h Header) View() string {
	t := h.styles.Theme
	nameStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	labelStyle := h.styles.Label
	valueStyle := lipgloss.NewStyle().Foreground(t.Bright).Bold(true)

	appName := nameStyle.Render("FileSearch")
	if h.version != "" {
		appName += h.styles.Dim.Render(" " + h.version)
	}

	var statsText string
	if h.stats.ScansLifetime > 0 || h.stats.DeletedFiles > 0 {
		statsText = labelStyle.Render("Scans: ") + h.styles.Value.Render(fmt.Sprint(h.stats.ScansLifetime))
		if h.stats.DeletedFiles > 0 {
			deleted := fmt.Sprintf("%d files (%s)", h.stats.DeletedFiles, FormatSize(h.stats.DeletedBytes))
			statsText += labelStyle.Render("  Deleted: ") + lipgloss.NewStyle().Foreground(t.Success).Render(deleted)
		}
	}
	line1 := spread(appName, statsText, h.width)

	var query string
	if h.target != "" {
		query = labelStyle.Render("Find: ") + valueStyle.Render(h.target) +
			h.styles.Dim.Render(" ["+h.kind.String()+"]")
	} else {
		query = labelStyle.Render("Find: ") + h.styles.Dim.Render("["+h.kind.String()+"]")
	}
	if h.volumes != "" {
		query += labelStyle.Render(" in ") + h.styles.Value.Render(h.volumes)
	}

	// Add "e change" hint only if there's room
	hint := h.styles.Dim.Render("  ") + h.styles.KeyHint.Render("e") + h.styles.Dim.Render(" change")
	var progress string
	if h.scanning && h.progress != "" {
		progress = lipgloss.NewStyle().Foreground(t.Accent).Render(h.progress)
	}
	if h.width-lipgloss.Width(query)-lipgloss.Width(progress)-4 >= lipgloss.Width(hint) {
		query += hint
	}
	line2 := spread(query, progress, h.width)

	return lipgloss.JoinVertical(lipgloss.Left, line1, line2)
}

// spread places left and right at opposite ends of a line
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

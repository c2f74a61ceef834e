package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/filesearch/internal/model"
)

const resultsSizeBarWidth = 4 // Width of size proportion bar [████]

// ResultsPanel lists matches in discovery order, numbered by selection index
type ResultsPanel struct {
	styles  *Styles
	matches []model.Match
	sizes   map[string]int64 // measured folder sizes
	gone    map[string]bool
	cursor  int
	offset  int // scroll offset
	width   int
	height  int
	focused bool
}

// NewResultsPanel creates an empty results panel
func NewResultsPanel(styles *Styles) ResultsPanel {
	return ResultsPanel{
		styles: styles,
		sizes:  make(map[string]int64),
		gone:   make(map[string]bool),
	}
}

// Reset clears the panel for a new scan
func (r *ResultsPanel) Reset() {
	r.matches = nil
	r.sizes = make(map[string]int64)
	r.gone = make(map[string]bool)
	r.cursor = 0
	r.offset = 0
}

// SetMatches replaces the list, keeping the cursor in range
func (r *ResultsPanel) SetMatches(matches []model.Match) {
	r.matches = matches
	r.clampCursor()
}

// Append adds a match found by a running scan
func (r *ResultsPanel) Append(m model.Match) {
	r.matches = append(r.matches, m)
}

// Len returns the number of matches
func (r ResultsPanel) Len() int {
	return len(r.matches)
}

// SetSize sets the panel dimensions
func (r *ResultsPanel) SetSize(w, h int) {
	r.width = w
	r.height = h
	r.ensureVisible()
}

// SetFocused sets focus state
func (r *ResultsPanel) SetFocused(focused bool) {
	r.focused = focused
}

// SetMeasured records the measured size of a folder match
func (r *ResultsPanel) SetMeasured(path string, bytes int64) {
	r.sizes[path] = bytes
}

// MarkGone flags a match as deleted
func (r *ResultsPanel) MarkGone(path string) {
	r.gone[path] = true
}

// IsGone reports whether a match was flagged as deleted
func (r ResultsPanel) IsGone(path string) bool {
	return r.gone[path]
}

// SizeOf returns the known size of a match, 0 when unknown
func (r ResultsPanel) SizeOf(m model.Match) int64 {
	if m.IsDir() {
		return r.sizes[m.Path]
	}
	return m.Size
}

// Measured returns the measured size of a folder match
func (r ResultsPanel) Measured(path string) (int64, bool) {
	bytes, ok := r.sizes[path]
	return bytes, ok
}

// Entries returns the matches in treemap form
func (r ResultsPanel) Entries() []TreemapEntry {
	entries := make([]TreemapEntry, len(r.matches))
	for i, m := range r.matches {
		entries[i] = TreemapEntry{
			Index: i + 1,
			Match: m,
			Size:  r.SizeOf(m),
			Gone:  r.gone[m.Path],
		}
	}
	return entries
}

// Selected returns the match under the cursor and its 1-based index
func (r ResultsPanel) Selected() (model.Match, int, bool) {
	if r.cursor >= 0 && r.cursor < len(r.matches) {
		return r.matches[r.cursor], r.cursor + 1, true
	}
	return model.Match{}, 0, false
}

// SelectIndex moves the cursor to a 1-based match index
func (r *ResultsPanel) SelectIndex(index int) {
	if index >= 1 && index <= len(r.matches) {
		r.cursor = index - 1
		r.ensureVisible()
	}
}

// MoveUp moves cursor up
func (r *ResultsPanel) MoveUp() {
	if r.cursor > 0 {
		r.cursor--
		r.ensureVisible()
	}
}

// MoveDown moves cursor down
func (r *ResultsPanel) MoveDown() {
	if r.cursor < len(r.matches)-1 {
		r.cursor++
		r.ensureVisible()
	}
}

// PageUp moves cursor up by quarter page
func (r *ResultsPanel) PageUp() {
	r.cursor -= r.pageSize()
	r.clampCursor()
}

// PageDown moves cursor down by quarter page
func (r *ResultsPanel) PageDown() {
	r.cursor += r.pageSize()
	r.clampCursor()
}

// GoToTop moves to first item
func (r *ResultsPanel) GoToTop() {
	r.cursor = 0
	r.offset = 0
}

// GoToBottom moves to last item
func (r *ResultsPanel) GoToBottom() {
	r.cursor = len(r.matches) - 1
	r.clampCursor()
}

func (r ResultsPanel) pageSize() int {
	size := (r.height - 4) / 4
	if size < 1 {
		size = 1
	}
	return size
}

func (r *ResultsPanel) clampCursor() {
	if r.cursor >= len(r.matches) {
		r.cursor = len(r.matches) - 1
	}
	if r.cursor < 0 {
		r.cursor = 0
	}
	r.ensureVisible()
}

func (r *ResultsPanel) ensureVisible() {
	if r.cursor < r.offset {
		r.offset = r.cursor
	}
	maxVisible := r.height - 2 // account for borders
	if maxVisible < 1 {
		maxVisible = 1
	}
	if r.cursor >= r.offset+maxVisible {
		r.offset = r.cursor - maxVisible + 1
	}
}

// largest returns the biggest known size, for scaling the size bars
func (r ResultsPanel) largest() int64 {
	var biggest int64
	for _, m := range r.matches {
		if s := r.SizeOf(m); s > biggest {
			biggest = s
		}
	}
	return biggest
}

// buildLine renders the plain text for match i within width cells
func (r ResultsPanel) buildLine(i int, width int, largest int64) string {
	m := r.matches[i]
	number := fmt.Sprintf("%4d. ", i+1)

	var suffix string
	if size := r.SizeOf(m); size > 0 {
		suffix = " " + sizeBar(size, largest) + " " + FormatSize(size)
	}
	if r.gone[m.Path] {
		suffix = " GONE"
	}

	pathWidth := width - lipgloss.Width(number) - lipgloss.Width(suffix)
	return number + shortenPath(m.Path, pathWidth) + suffix
}

// sizeBar draws size relative to largest, rounding with a half block
func sizeBar(size, largest int64) string {
	if largest <= 0 {
		return ""
	}
	pct := float64(size) / float64(largest)
	filledFloat := pct * float64(resultsSizeBarWidth)
	filled := int(filledFloat)
	var bar strings.Builder
	for j := 0; j < resultsSizeBarWidth; j++ {
		switch {
		case j < filled:
			bar.WriteRune('█')
		case float64(j) < filledFloat+0.5 && filled < resultsSizeBarWidth:
			bar.WriteRune('▓')
		default:
			bar.WriteRune('░')
		}
	}
	return "[" + bar.String() + "]"
}

// View renders the list
func (r ResultsPanel) View() string {
	t := r.styles.Theme
	style := r.styles.Panel.Width(r.width).Height(r.height)
	if r.focused {
		style = style.BorderForeground(t.Primary)
	}

	if len(r.matches) == 0 {
		return style.Render(r.styles.Dim.Render("No matches"))
	}

	maxVisible := r.height - 2
	if maxVisible < 1 {
		maxVisible = 1
	}
	maxW := r.width - 2
	largest := r.largest()

	var lines []string
	for i := r.offset; i < len(r.matches) && len(lines) < maxVisible; i++ {
		m := r.matches[i]
		line := r.buildLine(i, maxW, largest)

		var itemStyle lipgloss.Style
		switch {
		case i == r.cursor && r.focused:
			itemStyle = r.styles.ItemSelected.Width(maxW).MaxWidth(maxW)
		case i == r.cursor:
			// Show dimmer selection when unfocused
			itemStyle = r.styles.ItemSelectedUnfocused.Width(maxW).MaxWidth(maxW)
		case r.gone[m.Path]:
			itemStyle = lipgloss.NewStyle().Foreground(t.Gone).Strikethrough(true).MaxWidth(maxW)
		case m.IsDir():
			itemStyle = lipgloss.NewStyle().Foreground(t.Dir).MaxWidth(maxW)
		default:
			itemStyle = lipgloss.NewStyle().Foreground(t.File).MaxWidth(maxW)
		}
		lines = append(lines, itemStyle.Render(line))
	}

	return style.Render(strings.Join(lines, "\n"))
}

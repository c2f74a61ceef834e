package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/filesearch/internal/model"
	"github.com/lumipallolabs/filesearch/internal/startup"
)

// ConfirmDialog asks before a match is deleted
type ConfirmDialog struct {
	styles  *Styles
	visible bool
	index   int
	match   model.Match
	width   int
	height  int
}

// NewConfirmDialog creates a hidden dialog
func NewConfirmDialog(styles *Styles) ConfirmDialog {
	return ConfirmDialog{styles: styles}
}

// Show opens the dialog for match index
func (c *ConfirmDialog) Show(index int, m model.Match) {
	c.visible = true
	c.index = index
	c.match = m
}

// Hide closes the dialog
func (c *ConfirmDialog) Hide() {
	c.visible = false
}

// IsVisible returns whether the dialog is open
func (c ConfirmDialog) IsVisible() bool {
	return c.visible
}

// Target returns the match index and path the dialog asks about
func (c ConfirmDialog) Target() (int, string) {
	return c.index, c.match.Path
}

// SetSize sets the dimensions for centering
func (c *ConfirmDialog) SetSize(w, h int) {
	c.width = w
	c.height = h
}

// View renders the dialog
func (c ConfirmDialog) View() string {
	if !c.visible {
		return ""
	}

	t := c.styles.Theme
	titleStyle := lipgloss.NewStyle().Foreground(t.Danger).Bold(true).MarginBottom(1)
	pathStyle := lipgloss.NewStyle().Foreground(t.Accent)

	maxPath := max(c.width-12, 20)

	var content strings.Builder
	content.WriteString(titleStyle.Render(fmt.Sprintf("Delete match %d?", c.index)))
	content.WriteString("\n")
	content.WriteString(pathStyle.Render(shortenPath(c.match.Path, maxPath)))
	content.WriteString("\n")
	if c.match.Size > 0 {
		content.WriteString(c.styles.Label.Render("Size: ") + c.styles.Value.Render(FormatSize(c.match.Size)))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(c.styles.Dim.Render("The file is removed permanently."))
	content.WriteString("\n\n")
	content.WriteString(c.styles.KeyHint.Render("y") + c.styles.Dim.Render(" delete   ") +
		c.styles.KeyHint.Render("n") + c.styles.Dim.Render(" keep"))

	box := c.styles.Overlay.BorderForeground(t.Danger).Render(content.String())
	return lipgloss.Place(c.width, c.height, lipgloss.Center, lipgloss.Center, box)
}

// StartupOverlay lists the user's startup folder
type StartupOverlay struct {
	styles  *Styles
	visible bool
	dir     string
	names   []string
	err     error
	width   int
	height  int
}

// NewStartupOverlay creates a hidden overlay for dir; empty means the
// platform's startup folder
func NewStartupOverlay(styles *Styles, dir string) StartupOverlay {
	return StartupOverlay{styles: styles, dir: dir}
}

// Open reads the folder and shows the overlay
func (s *StartupOverlay) Open() {
	s.visible = true
	s.names = nil
	s.err = nil

	dir := s.dir
	if dir == "" {
		d, err := startup.Dir()
		if err != nil {
			s.err = err
			return
		}
		dir = d
	}
	s.names, s.err = startup.List(dir)
}

// Close hides the overlay
func (s *StartupOverlay) Close() {
	s.visible = false
}

// IsVisible returns whether the overlay is open
func (s StartupOverlay) IsVisible() bool {
	return s.visible
}

// SetSize sets the dimensions for centering
func (s *StartupOverlay) SetSize(w, h int) {
	s.width = w
	s.height = h
}

// View renders the overlay
func (s StartupOverlay) View() string {
	if !s.visible {
		return ""
	}

	var content strings.Builder
	content.WriteString(s.styles.OverlayTitle.Render("Startup Folder Files"))
	content.WriteString("\n")

	switch {
	case errors.Is(s.err, startup.ErrNotFound):
		content.WriteString(s.styles.Dim.Render("Startup folder not found."))
	case s.err != nil:
		content.WriteString(lipgloss.NewStyle().Foreground(s.styles.Theme.Danger).Render(s.err.Error()))
	case len(s.names) == 0:
		content.WriteString(s.styles.Dim.Render("No startup files."))
	default:
		limit := max(s.height-10, 1)
		for i, name := range s.names {
			if i == limit {
				content.WriteString(s.styles.Dim.Render(fmt.Sprintf("… %d more", len(s.names)-limit)))
				break
			}
			content.WriteString("- " + name + "\n")
		}
	}

	content.WriteString("\n\n")
	content.WriteString(s.styles.Dim.Render("Press any key to close"))

	box := s.styles.Overlay.Render(strings.TrimRight(content.String(), "\n"))
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, box)
}

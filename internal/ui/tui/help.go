package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpKeyColumnWidth = 14 // Width for key column in help text (includes padding)

// HelpOverlay displays keyboard shortcuts in a centered overlay
type HelpOverlay struct {
	styles  *Styles
	visible bool
	width   int
	height  int
	version string
}

// NewHelpOverlay creates a new help overlay component
func NewHelpOverlay(styles *Styles, version string) HelpOverlay {
	return HelpOverlay{
		styles:  styles,
		version: version,
	}
}

// Toggle toggles the visibility of the help overlay
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// SetVisible sets the visibility of the help overlay
func (h *HelpOverlay) SetVisible(visible bool) {
	h.visible = visible
}

// IsVisible returns whether the help overlay is visible
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// SetSize sets the dimensions of the help overlay
func (h *HelpOverlay) SetSize(w, ht int) {
	h.width = w
	h.height = ht
}

// View renders the help overlay
func (h HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	t := h.styles.Theme
	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Dim).
		MarginTop(1)
	keyStyle := h.styles.HelpOverlayKey
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	var content strings.Builder

	nameStyle := lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)
	content.WriteString(nameStyle.Render("FileSearch"))
	if h.version != "" {
		content.WriteString(h.styles.Dim.Render(" " + h.version))
	}
	content.WriteString("\n")
	content.WriteString(h.styles.Dim.Render("Find files and folders by name on local volumes"))
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render("Search"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Enter", "Start search"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Tab", "File / folder (in the form)"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "/", "New search"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "f", "File / folder"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "e", "Choose volumes"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "r", "Rescan"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Esc", "Cancel scan"))

	content.WriteString(sectionStyle.Render("Results"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "↑↓←→ hjkl", "Navigate"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "PgUp/PgDn", "Scroll faster"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "g / G", "Top / Bottom"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Tab", "List / treemap"))

	content.WriteString(sectionStyle.Render("Actions"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "d", "Delete file"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "w", "Save report"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Space", "Preview file"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "o", "Open in file manager"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "S", "Startup files"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "t", "Light / dark theme"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "q", "Quit"))

	content.WriteString("\n")
	content.WriteString(h.styles.Dim.Render("Press any key to close"))

	box := h.styles.Overlay.Padding(1, 3).Render(content.String())
	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}

// formatHelpLine formats a single help line with key and description
func formatHelpLine(keyStyle, descStyle lipgloss.Style, key, desc string) string {
	return keyStyle.Width(helpKeyColumnWidth).Render(key) + descStyle.Render(desc) + "\n"
}

type hint struct {
	key  string
	desc string
}

// HelpBar renders a bottom help bar with key hints for the focused area
func HelpBar(styles *Styles, width int, inForm bool) string {
	descStyle := styles.Dim

	fullHints := []hint{
		{"/", "search"},
		{"f", "kind"},
		{"e", "volumes"},
		{"↑↓", "select"},
		{"Tab", "panel"},
		{"d", "delete"},
		{"w", "save"},
		{"o", "open"},
		{"?", "help"},
		{"q", "quit"},
	}
	if inForm {
		fullHints = []hint{
			{"Enter", "search"},
			{"Tab", "file/folder"},
			{"Esc", "results"},
			{"ctrl+c", "quit"},
		}
	}

	compactHints := []hint{
		{"/", "search"},
		{"d", "del"},
		{"?", "help"},
		{"q", "quit"},
	}

	minimalHints := []hint{
		{"?", "help"},
		{"q", "quit"},
	}

	var hints []hint
	switch {
	case width >= 100 || inForm:
		hints = fullHints
	case width >= 60:
		hints = compactHints
	default:
		hints = minimalHints
	}

	var parts []string
	for _, h := range hints {
		parts = append(parts, styles.HelpKey.Render(h.key)+" "+descStyle.Render(h.desc))
	}

	separator := "   "
	if width < 80 {
		separator = "  "
	}

	return styles.HelpBar.Width(width).MaxHeight(1).Render(strings.Join(parts, separator))
}

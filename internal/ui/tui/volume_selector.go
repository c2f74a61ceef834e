package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/filesearch/internal/model"
)

// VolumeSelector lets the user tick the volumes to scan. Row 0 is "All
// volumes", the volumes follow in enumeration order.
type VolumeSelector struct {
	styles  *Styles
	volumes []model.Volume
	checked map[string]bool
	cursor  int
	visible bool
	width   int
	height  int
}

// NewVolumeSelector creates a selector with the given volume IDs ticked.
// Nothing known ticked means every volume is.
func NewVolumeSelector(styles *Styles, volumes []model.Volume, preselected []string) VolumeSelector {
	v := VolumeSelector{
		styles:  styles,
		volumes: volumes,
		checked: make(map[string]bool),
	}
	if len(preselected) > 0 {
		for _, vol := range model.FilterVolumes(volumes, preselected) {
			v.checked[vol.ID] = true
		}
	}
	if len(v.checked) == 0 {
		v.setAll(true)
	}
	return v
}

// SetVisible sets visibility of the selector
func (v *VolumeSelector) SetVisible(visible bool) {
	v.visible = visible
}

// IsVisible returns whether the selector is visible
func (v VolumeSelector) IsVisible() bool {
	return v.visible
}

// SetSize sets the dimensions for centering
func (v *VolumeSelector) SetSize(w, h int) {
	v.width = w
	v.height = h
}

// MoveUp moves the cursor up
func (v *VolumeSelector) MoveUp() {
	if v.cursor > 0 {
		v.cursor--
	}
}

// MoveDown moves the cursor down
func (v *VolumeSelector) MoveDown() {
	if v.cursor < len(v.volumes) {
		v.cursor++
	}
}

// Toggle flips the row under the cursor
func (v *VolumeSelector) Toggle() {
	if v.cursor == 0 {
		v.setAll(!v.AllSelected())
		return
	}
	id := v.volumes[v.cursor-1].ID
	if v.checked[id] {
		delete(v.checked, id)
	} else {
		v.checked[id] = true
	}
}

func (v *VolumeSelector) setAll(on bool) {
	v.checked = make(map[string]bool)
	if !on {
		return
	}
	for _, vol := range v.volumes {
		v.checked[vol.ID] = true
	}
}

// AllSelected reports whether every volume is ticked
func (v VolumeSelector) AllSelected() bool {
	return len(v.volumes) > 0 && len(v.checked) == len(v.volumes)
}

// Selected returns the ticked volumes in enumeration order
func (v VolumeSelector) Selected() []model.Volume {
	var out []model.Volume
	for _, vol := range v.volumes {
		if v.checked[vol.ID] {
			out = append(out, vol)
		}
	}
	return out
}

// Summary describes the selection for the header
func (v VolumeSelector) Summary() string {
	if v.AllSelected() && len(v.volumes) > 1 {
		return "all volumes"
	}
	selected := v.Selected()
	if len(selected) == 0 {
		return "no volumes"
	}
	names := make([]string, len(selected))
	for i, vol := range selected {
		names[i] = vol.String()
	}
	return strings.Join(names, ", ")
}

// View renders the selector overlay
func (v VolumeSelector) View() string {
	if !v.visible {
		return ""
	}

	t := v.styles.Theme
	normalStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		PaddingLeft(1).
		PaddingRight(1)
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(t.Primary).
		Bold(true).
		PaddingLeft(1).
		PaddingRight(1)
	hintStyle := lipgloss.NewStyle().
		Foreground(t.Dim).
		MarginTop(1)

	var content strings.Builder
	content.WriteString(v.styles.OverlayTitle.Render("Select Volumes"))
	content.WriteString("\n")

	rows := make([]string, 0, len(v.volumes)+1)
	rows = append(rows, fmt.Sprintf("%s All volumes", checkbox(v.AllSelected())))
	for _, vol := range v.volumes {
		line := fmt.Sprintf("%s %s", checkbox(v.checked[vol.ID]), vol.Path)
		if vol.TotalBytes > 0 {
			line += fmt.Sprintf("  %s free / %s (%.0f%% used)",
				FormatSize(vol.FreeBytes), FormatSize(vol.TotalBytes), vol.UsedPercent())
		}
		rows = append(rows, line)
	}

	for i, row := range rows {
		if i == v.cursor {
			content.WriteString(selectedStyle.Render(row))
		} else {
			content.WriteString(normalStyle.Render(row))
		}
		content.WriteString("\n")
	}

	content.WriteString(hintStyle.Render("↑/↓ move  Space toggle  Enter done  Esc close"))

	box := v.styles.Overlay.Render(strings.TrimSuffix(content.String(), "\n"))
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, box)
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/filesearch/internal/model"
)

// SearchForm holds the target input and the file/folder toggle
type SearchForm struct {
	styles *Styles
	input  textinput.Model
	kind   model.MatchKind
}

// NewSearchForm creates a focused form
func NewSearchForm(styles *Styles, kind model.MatchKind) SearchForm {
	ti := textinput.New()
	ti.Placeholder = "part of a name, e.g. invoice"
	ti.Prompt = "› "
	ti.CharLimit = 255
	ti.Focus()

	f := SearchForm{styles: styles, input: ti, kind: kind}
	f.applyTheme()
	return f
}

func (f *SearchForm) applyTheme() {
	t := f.styles.Theme
	f.input.PromptStyle = lipgloss.NewStyle().Foreground(t.Primary)
	f.input.TextStyle = lipgloss.NewStyle().Foreground(t.Bright)
	f.input.PlaceholderStyle = lipgloss.NewStyle().Foreground(t.Muted)
	f.input.Cursor.Style = lipgloss.NewStyle().Foreground(t.Accent)
}

// Focus gives the input the keyboard
func (f *SearchForm) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur releases the keyboard
func (f *SearchForm) Blur() {
	f.input.Blur()
}

// Focused reports whether the input has the keyboard
func (f SearchForm) Focused() bool {
	return f.input.Focused()
}

// Value returns the target as typed
func (f SearchForm) Value() string {
	return f.input.Value()
}

// SetValue replaces the target
func (f *SearchForm) SetValue(s string) {
	f.input.SetValue(s)
}

// Kind returns the selected match kind
func (f SearchForm) Kind() model.MatchKind {
	return f.kind
}

// ToggleKind switches between file and folder matching
func (f *SearchForm) ToggleKind() {
	if f.kind == model.KindFile {
		f.kind = model.KindFolder
	} else {
		f.kind = model.KindFile
	}
}

// SetWidth sizes the input
func (f *SearchForm) SetWidth(w int) {
	f.input.Width = max(w-30, 10)
}

// Update forwards key presses to the input
func (f SearchForm) Update(msg tea.Msg) (SearchForm, tea.Cmd) {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// View renders the form on one line
func (f SearchForm) View(width int) string {
	f.applyTheme()
	t := f.styles.Theme

	on := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(t.Primary).Padding(0, 1)
	off := lipgloss.NewStyle().Foreground(t.Dim).Padding(0, 1)
	fileTab, folderTab := off.Render("file"), off.Render("folder")
	if f.kind == model.KindFile {
		fileTab = on.Render("file")
	} else {
		folderTab = on.Render("folder")
	}

	border := t.Border
	if f.Focused() {
		border = t.Primary
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(max(width-2, 10))

	return style.Render(f.input.View() + "  " + fileTab + folderTab)
}

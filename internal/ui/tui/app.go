package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/lumipallolabs/filesearch/internal/config"
	"github.com/lumipallolabs/filesearch/internal/core"
	"github.com/lumipallolabs/filesearch/internal/logging"
	"github.com/lumipallolabs/filesearch/internal/model"
	"github.com/lumipallolabs/filesearch/internal/report"
	"github.com/lumipallolabs/filesearch/internal/scanner"
	"github.com/lumipallolabs/filesearch/internal/stats"
)

// Options carries the presentation settings the TUI starts with
type Options struct {
	Version     string
	Theme       string // config.ThemeDark or config.ThemeLight
	Kind        model.MatchKind
	Volumes     []model.Volume // selectable volumes, the controller's when nil
	Preselected []string       // volume IDs ticked at start
	StartupDir  string         // empty means the platform's startup folder
	Watch       bool           // watch matches for outside deletion
	Stats       *stats.Manager
	Reports     *report.Store
}

// Panel identifies which panel is active
type Panel int

const (
	PanelResults Panel = iota
	PanelTreemap
)

// Message types for Bubble Tea
type (
	scanEventMsg struct {
		id    uuid.UUID
		event core.Event
	}
	scanClosedMsg struct{ id uuid.UUID }
	watchEventMsg struct{ event core.Event }
	measureDebounceMsg struct {
		version int
		index   int
	}
	measuredMsg struct {
		path  string
		usage scanner.Usage
		err   error
	}
)

// Timing constants
const (
	borderRotationSpeed    = 33 // milliseconds per frame
	measureDebounceTimeout = 300 * time.Millisecond
)

// Layout constants
const (
	headerHeight  = 2
	formHeight    = 3
	statusHeight  = 1
	helpBarHeight = 1
	infoBarHeight = 2
)

// App is the main TUI application model
type App struct {
	ctrl *core.Controller
	opts Options

	// UI Components
	styles   *Styles
	header   Header
	form     SearchForm
	results  ResultsPanel
	treemap  TreemapPanel
	help     HelpOverlay
	volumes  VolumeSelector
	confirm  ConfirmDialog
	startup  StartupOverlay
	spinner  spinner.Model
	progress progress.Model
	keys     KeyMap

	// UI state (TUI-specific)
	activePanel    Panel
	err            error
	status         string
	measureVersion int // for debouncing
	measuring      string
	measureCancel  context.CancelFunc
	usages         map[string]scanner.Usage

	// Scan state
	handle      *core.Handle
	scanning    bool
	scanStarted time.Time
	current     model.Volume
	lastQuery   model.ScanQuery

	watcherEventCh <-chan core.Event

	// Dimensions
	width           int
	height          int
	resultsWidth    int
	rightPanelWidth int
}

// NewApp creates a new application instance
func NewApp(ctrl *core.Controller, opts Options) App {
	if opts.Volumes == nil {
		opts.Volumes = ctrl.Volumes()
	}

	styles := NewStyles(ThemeByName(opts.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Theme.Accent).Bold(true)

	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithoutPercentage(),
		progress.WithWidth(20),
	)

	app := App{
		ctrl:        ctrl,
		opts:        opts,
		styles:      styles,
		header:      NewHeader(styles, opts.Version),
		form:        NewSearchForm(styles, opts.Kind),
		results:     NewResultsPanel(styles),
		treemap:     NewTreemapPanel(styles),
		help:        NewHelpOverlay(styles, opts.Version),
		volumes:     NewVolumeSelector(styles, opts.Volumes, opts.Preselected),
		confirm:     NewConfirmDialog(styles),
		startup:     NewStartupOverlay(styles, opts.StartupDir),
		spinner:     sp,
		progress:    bar,
		keys:        DefaultKeyMap(),
		activePanel: PanelResults,
		usages:      make(map[string]scanner.Usage),
	}

	app.header.SetQuery("", opts.Kind, app.volumes.Summary())
	app.refreshStats()
	if len(opts.Volumes) == 0 {
		app.err = errors.New("no volumes found")
	}

	return app
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case scanEventMsg:
		// Events of a replaced scan are dropped, its channel is left to close
		if a.handle == nil || msg.id != a.handle.ID() {
			return a, nil
		}
		return a.handleScanEvent(msg.event)

	case scanClosedMsg:
		// The finish event can be lost when a cancelled scan finds the buffer full
		if a.scanning && a.handle != nil && msg.id == a.handle.ID() {
			return a.finalizeScan(a.handle.Wait())
		}
		return a, nil

	case watchEventMsg:
		if e, ok := msg.event.(core.MatchGoneEvent); ok {
			logging.Debug.Printf("[TUI] match %d gone: %s", e.Index, e.Path)
			a.results.MarkGone(e.Path)
			a.refreshTreemap()
			a.status = fmt.Sprintf("Deleted outside: %s", e.Path)
		}
		return a, a.listenForWatcherEvents()

	case measureDebounceMsg:
		if msg.version == a.measureVersion && !a.scanning {
			return a, a.measure(msg.index)
		}
		return a, nil

	case measuredMsg:
		if a.measuring == msg.path {
			a.measuring = ""
		}
		if msg.err != nil {
			if !errors.Is(msg.err, context.Canceled) {
				logging.Debug.Printf("[TUI] measure %s: %v", msg.path, msg.err)
			}
			return a, nil
		}
		a.usages[msg.path] = msg.usage
		a.results.SetMeasured(msg.path, msg.usage.Bytes)
		a.refreshTreemap()
		return a, nil

	case spinner.TickMsg:
		if !a.scanning {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	if a.form.Focused() {
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleScanEvent processes scan events and continues listening
func (a App) handleScanEvent(event core.Event) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case core.VolumeStartedEvent:
		a.current = e.Volume
		a.header.SetScanning(true, fmt.Sprintf("volume %d of %d", e.Index+1, e.Total))

	case core.MatchFoundEvent:
		a.results.Append(e.Match)
		a.header.SetScanning(true, fmt.Sprintf("%d match(es)", e.Index))

	case core.ScanFinishedEvent:
		return a.finalizeScan(e.Result)

	case core.ErrorEvent:
		a.err = e.Err
	}
	return a, listenForScanEvents(a.handle)
}

// startScan begins a scan for the given query
func (a App) startScan(target string, kind model.MatchKind, volumes []model.Volume) (tea.Model, tea.Cmd) {
	h, err := a.ctrl.StartScan(context.Background(), target, kind, volumes)
	if err != nil {
		a.err = queryError(err, target, volumes)
		return a, nil
	}

	a.stopMeasure()
	a.handle = h
	a.scanning = true
	a.scanStarted = time.Now()
	a.lastQuery = model.NewScanQuery(target, kind, volumes)
	a.watcherEventCh = nil
	a.err = nil
	a.status = ""
	a.usages = make(map[string]scanner.Usage)
	a.results.Reset()
	a.treemap.SetEntries(nil)
	a.treemap.SetSelected(0)
	a.header.SetQuery(a.lastQuery.Target, kind, a.volumes.Summary())
	a.header.SetScanning(true, "")
	a.focusPanel(PanelResults)

	logging.Debug.Printf("[TUI] scan %s for %q on %d volume(s)", h.ID(), target, len(volumes))

	return a, tea.Batch(
		listenForScanEvents(h),
		a.spinner.Tick,
	)
}

// queryError turns an invalid query into a hint for the user
func queryError(err error, target string, volumes []model.Volume) error {
	if !errors.Is(err, core.ErrInvalidQuery) {
		return err
	}
	if strings.TrimSpace(target) == "" {
		return errors.New("type part of a name to search for")
	}
	if len(volumes) == 0 {
		return errors.New("select at least one volume (ctrl+e)")
	}
	return err
}

// listenForScanEvents creates a command that waits for the next scan event
func listenForScanEvents(h *core.Handle) tea.Cmd {
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-h.Events()
		if !ok {
			return scanClosedMsg{id: h.ID()}
		}
		return scanEventMsg{id: h.ID(), event: event}
	}
}

// finalizeScan shows the frozen result set
func (a App) finalizeScan(set *core.ResultSet) (tea.Model, tea.Cmd) {
	a.scanning = false
	a.header.SetScanning(false, "")
	a.results.SetMatches(set.Matches)
	a.refreshTreemap()
	a.refreshStats()

	switch {
	case set.State == core.StateCancelled:
		a.status = fmt.Sprintf("Scan cancelled: %d match(es) so far", set.Len())
	case set.Len() == 0:
		a.status = "No matches found."
	default:
		a.status = fmt.Sprintf("%d match(es) in %s", set.Len(), set.Duration().Round(time.Millisecond))
	}

	cmd := a.syncSelection()
	if a.opts.Watch {
		return a, tea.Batch(cmd, a.startWatcher())
	}
	return a, cmd
}

// startWatcher starts watching the matches for deletion
func (a *App) startWatcher() tea.Cmd {
	eventCh, err := a.ctrl.StartWatching()
	if err != nil {
		logging.Debug.Printf("[TUI] watcher: %v", err)
		return nil
	}
	if eventCh == nil {
		return nil
	}
	a.watcherEventCh = eventCh
	return a.listenForWatcherEvents()
}

// listenForWatcherEvents creates a command that listens for watcher events
func (a App) listenForWatcherEvents() tea.Cmd {
	if a.watcherEventCh == nil {
		return nil
	}
	eventCh := a.watcherEventCh
	return func() tea.Msg {
		event, ok := <-eventCh
		if !ok {
			return nil // Channel closed
		}
		return watchEventMsg{event: event}
	}
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		a.shutdown()
		return a, tea.Quit
	}

	// Help and startup overlays - any key closes them
	if a.help.IsVisible() {
		a.help.SetVisible(false)
		return a, nil
	}
	if a.startup.IsVisible() {
		a.startup.Close()
		return a, nil
	}

	if a.confirm.IsVisible() {
		switch {
		case key.Matches(msg, a.keys.Confirm):
			return a.deleteConfirmed()
		case key.Matches(msg, a.keys.Decline):
			a.confirm.Hide()
			a.status = "File not deleted."
		}
		return a, nil
	}

	if a.volumes.IsVisible() {
		switch {
		case key.Matches(msg, a.keys.Back), key.Matches(msg, a.keys.Enter):
			a.volumes.SetVisible(false)
			a.header.SetQuery(a.lastQuery.Target, a.form.Kind(), a.volumes.Summary())
		case key.Matches(msg, a.keys.Up):
			a.volumes.MoveUp()
		case key.Matches(msg, a.keys.Down):
			a.volumes.MoveDown()
		case key.Matches(msg, a.keys.Select):
			a.volumes.Toggle()
		}
		return a, nil
	}

	if a.form.Focused() {
		return a.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.shutdown()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()
		return a, nil

	case key.Matches(msg, a.keys.Back):
		if a.scanning {
			a.ctrl.CancelScan()
			a.status = "Cancelling..."
			return a, nil
		}
		if a.activePanel == PanelTreemap {
			a.focusPanel(PanelResults)
			return a, nil
		}
		return a, a.focusForm()

	case key.Matches(msg, a.keys.Search):
		return a, a.focusForm()

	case key.Matches(msg, a.keys.ToggleKind):
		a.form.ToggleKind()
		a.header.SetQuery(a.lastQuery.Target, a.form.Kind(), a.volumes.Summary())
		return a, nil

	case key.Matches(msg, a.keys.Volumes):
		a.volumes.SetVisible(true)
		return a, nil

	case key.Matches(msg, a.keys.Rescan):
		if !a.scanning && a.lastQuery.Target != "" {
			return a.startScan(a.lastQuery.Target, a.lastQuery.Kind, a.lastQuery.Volumes)
		}
		return a, nil

	case key.Matches(msg, a.keys.Tab):
		if a.activePanel == PanelResults && a.results.Len() > 0 {
			a.focusPanel(PanelTreemap)
			a.treemap.SelectFirst()
			a.results.SelectIndex(a.treemap.Selected())
		} else {
			a.focusPanel(PanelResults)
		}
		return a, a.syncSelection()

	case key.Matches(msg, a.keys.Up):
		if a.activePanel == PanelTreemap {
			return a, a.moveInTreemap(0, -1)
		}
		a.results.MoveUp()
		return a, a.syncSelection()

	case key.Matches(msg, a.keys.Down):
		if a.activePanel == PanelTreemap {
			return a, a.moveInTreemap(0, 1)
		}
		a.results.MoveDown()
		return a, a.syncSelection()

	case key.Matches(msg, a.keys.Left):
		if a.activePanel == PanelTreemap {
			return a, a.moveInTreemap(-1, 0)
		}
		return a, nil

	case key.Matches(msg, a.keys.Right):
		if a.activePanel == PanelTreemap {
			return a, a.moveInTreemap(1, 0)
		}
		return a, nil

	case key.Matches(msg, a.keys.Top):
		a.results.GoToTop()
		return a, a.syncSelection()

	case key.Matches(msg, a.keys.Bottom):
		a.results.GoToBottom()
		return a, a.syncSelection()

	case key.Matches(msg, a.keys.PageUp):
		a.results.PageUp()
		return a, a.syncSelection()

	case key.Matches(msg, a.keys.PageDown):
		a.results.PageDown()
		return a, a.syncSelection()

	case key.Matches(msg, a.keys.Delete):
		a.askDelete()
		return a, nil

	case key.Matches(msg, a.keys.Save):
		a.saveReport()
		return a, nil

	case key.Matches(msg, a.keys.Startup):
		a.startup.Open()
		return a, nil

	case key.Matches(msg, a.keys.Theme):
		a.toggleTheme()
		return a, nil

	case key.Matches(msg, a.keys.OpenExplorer):
		return a, a.openInExplorer()

	case key.Matches(msg, a.keys.Preview):
		return a, a.previewFile()
	}

	return a, nil
}

// handleFormKey handles keys while the search input has focus
func (a App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Enter):
		return a.startScan(a.form.Value(), a.form.Kind(), a.volumes.Selected())

	case key.Matches(msg, a.keys.Tab):
		a.form.ToggleKind()
		a.header.SetQuery(a.lastQuery.Target, a.form.Kind(), a.volumes.Summary())
		return a, nil

	case key.Matches(msg, a.keys.FormVolumes):
		a.volumes.SetVisible(true)
		return a, nil

	case key.Matches(msg, a.keys.Back):
		if a.scanning {
			a.ctrl.CancelScan()
			a.status = "Cancelling..."
			return a, nil
		}
		a.focusPanel(PanelResults)
		return a, nil
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	return a, cmd
}

// focusForm moves the keyboard to the search input
func (a *App) focusForm() tea.Cmd {
	a.results.SetFocused(false)
	a.treemap.SetFocused(false)
	return a.form.Focus()
}

// focusPanel moves the keyboard to the results list or the treemap
func (a *App) focusPanel(p Panel) {
	a.form.Blur()
	a.activePanel = p
	a.results.SetFocused(p == PanelResults)
	a.treemap.SetFocused(p == PanelTreemap)
}

// moveInTreemap moves the treemap selection and follows it in the list
func (a *App) moveInTreemap(dx, dy int) tea.Cmd {
	a.treemap.MoveToBlock(dx, dy)
	a.results.SelectIndex(a.treemap.Selected())
	return a.syncSelection()
}

// syncSelection mirrors the list selection in the treemap and schedules a
// size measurement for folder matches
func (a *App) syncSelection() tea.Cmd {
	m, index, ok := a.results.Selected()
	if !ok {
		return nil
	}
	a.treemap.SetSelected(index)

	if a.scanning || !m.IsDir() || a.results.IsGone(m.Path) {
		return nil
	}
	if _, done := a.results.Measured(m.Path); done {
		return nil
	}

	a.measureVersion++
	version := a.measureVersion
	return tea.Tick(measureDebounceTimeout, func(t time.Time) tea.Msg {
		return measureDebounceMsg{version: version, index: index}
	})
}

// measure sizes folder match index in the background
func (a *App) measure(index int) tea.Cmd {
	m, ok := a.ctrl.Result().At(index)
	if !ok {
		return nil
	}

	a.stopMeasure()
	ctx, cancel := context.WithCancel(context.Background())
	a.measureCancel = cancel
	a.measuring = m.Path

	ctrl := a.ctrl
	return func() tea.Msg {
		usage, err := ctrl.Measure(ctx, index)
		return measuredMsg{path: m.Path, usage: usage, err: err}
	}
}

func (a *App) stopMeasure() {
	if a.measureCancel != nil {
		a.measureCancel()
		a.measureCancel = nil
	}
	a.measuring = ""
}

// askDelete opens the confirmation for the selected file match
func (a *App) askDelete() {
	if a.scanning {
		a.status = "Wait for the scan to finish before deleting."
		return
	}
	m, index, ok := a.results.Selected()
	if !ok {
		return
	}
	switch {
	case a.results.IsGone(m.Path):
		a.err = fmt.Errorf("%s is already gone", m.Path)
	case m.IsDir():
		a.err = errors.New("only files can be deleted")
	default:
		a.err = nil
		a.confirm.Show(index, m)
	}
}

// deleteConfirmed deletes the match the dialog asked about
func (a App) deleteConfirmed() (tea.Model, tea.Cmd) {
	index, path := a.confirm.Target()
	a.confirm.Hide()

	// The gate asks again with the path it resolved; it must be the one shown
	err := a.ctrl.ConfirmAndDelete(index, func(p string) bool { return p == path })
	if err != nil {
		a.status = ""
		a.err = fmt.Errorf("failed to delete file: %w", err)
		return a, nil
	}

	a.err = nil
	a.status = "File deleted successfully."
	a.results.MarkGone(path)
	a.refreshTreemap()
	a.refreshStats()
	return a, nil
}

// saveReport writes the current result set to the report store
func (a *App) saveReport() {
	switch {
	case a.opts.Reports == nil:
		a.err = errors.New("reports are not available")
		return
	case a.scanning:
		a.status = "Wait for the scan to finish before saving."
		return
	}

	set := a.ctrl.Result()
	if set == nil {
		a.err = core.ErrNoResult
		return
	}
	if _, err := a.opts.Reports.Save(set); err != nil {
		a.err = fmt.Errorf("save report: %w", err)
		return
	}
	a.err = nil
	a.status = fmt.Sprintf("Saved report %s", set.ID)
}

// toggleTheme switches between light and dark and remembers the choice
func (a *App) toggleTheme() {
	next := config.ThemeLight
	if a.styles.Theme.Name == config.ThemeLight {
		next = config.ThemeDark
	}
	a.styles.SetTheme(ThemeByName(next))
	a.spinner.Style = lipgloss.NewStyle().Foreground(a.styles.Theme.Accent).Bold(true)
	a.treemap.InvalidateCache()
	if a.opts.Stats != nil {
		a.opts.Stats.SetTheme(next)
	}
	a.status = "Theme: " + next
}

func (a *App) refreshTreemap() {
	a.treemap.SetEntries(a.results.Entries())
}

func (a *App) refreshStats() {
	if a.opts.Stats != nil {
		a.header.SetStats(a.opts.Stats.Snapshot())
	}
}

// shutdown stops background work before quitting
func (a *App) shutdown() {
	a.stopMeasure()
	a.ctrl.Stop()
}

// openInExplorer reveals the selected match in the file manager
func (a *App) openInExplorer() tea.Cmd {
	m, _, ok := a.results.Selected()
	if !ok {
		return nil
	}
	logging.Debug.Printf("openInExplorer: revealing %s", m.Path)
	if err := openInFileManager(m.Path); err != nil {
		logging.Debug.Printf("openInExplorer: error: %v", err)
	}
	return nil
}

// previewFile opens the selected match with the system viewer
func (a *App) previewFile() tea.Cmd {
	m, _, ok := a.results.Selected()
	if !ok || a.results.IsGone(m.Path) {
		return nil
	}
	logging.Debug.Printf("previewFile: previewing %s", m.Path)
	if err := previewInViewer(m.Path); err != nil {
		logging.Debug.Printf("previewFile: error: %v", err)
	}
	return nil
}

// panelHeight is the height left for the results and right panels
func (a App) panelHeight() int {
	return max(a.height-headerHeight-formHeight-statusHeight-helpBarHeight, 1)
}

// updateLayout calculates component sizes
func (a *App) updateLayout() {
	panelHeight := a.panelHeight()

	a.resultsWidth = max(a.width/2, 30)
	if a.resultsWidth > a.width {
		a.resultsWidth = a.width
	}
	a.rightPanelWidth = a.width - a.resultsWidth

	a.header.SetWidth(a.width)
	a.form.SetWidth(a.width)
	a.results.SetSize(a.resultsWidth, panelHeight)
	a.treemap.SetSize(a.rightPanelWidth, panelHeight-infoBarHeight)
	a.help.SetSize(a.width, a.height)
	a.volumes.SetSize(a.width, a.height)
	a.confirm.SetSize(a.width, a.height)
	a.startup.SetSize(a.width, a.height)
}

// View implements tea.Model
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	// Overlays
	switch {
	case a.help.IsVisible():
		return a.renderOverlay(a.help.View())
	case a.volumes.IsVisible():
		return a.renderOverlay(a.volumes.View())
	case a.confirm.IsVisible():
		return a.renderOverlay(a.confirm.View())
	case a.startup.IsVisible():
		return a.renderOverlay(a.startup.View())
	}

	sections := []string{
		a.header.View(),
		a.form.View(a.width),
		a.statusLine(),
	}

	var right string
	switch {
	case a.scanning:
		right = a.renderScanningPanel(a.rightPanelWidth, a.panelHeight())
	case a.results.Len() == 0:
		right = a.renderWelcome(a.rightPanelWidth, a.panelHeight())
	default:
		right = a.renderDetails()
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, a.results.View(), right))

	sections = append(sections, HelpBar(a.styles, a.width, a.form.Focused()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// statusLine shows the last error, or the last status message
func (a App) statusLine() string {
	line := ""
	switch {
	case a.err != nil:
		line = a.styles.Error.Render(fmt.Sprintf("Error: %v", a.err))
	case a.status != "":
		line = a.styles.Status.Render(a.status)
	}
	return lipgloss.NewStyle().MaxWidth(a.width).Height(statusHeight).Render(line)
}

// renderOverlay renders an overlay centered on screen
func (a App) renderOverlay(overlay string) string {
	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Center,
		overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(a.styles.Theme.Background),
	)
}

// renderWelcome fills the right side before the first search
func (a App) renderWelcome(width, height int) string {
	t := a.styles.Theme
	title := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("Search by name")
	lines := []string{
		title,
		"",
		a.styles.Dim.Render("Type part of a file or folder name and press Enter."),
		a.styles.Dim.Render("Matching ignores case and finds the text anywhere in the name."),
		"",
		a.styles.KeyHint.Render("Tab") + a.styles.Dim.Render(" file / folder   ") +
			a.styles.KeyHint.Render("ctrl+e") + a.styles.Dim.Render(" volumes"),
	}
	box := lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderScanningPanel renders the scanning progress panel
func (a App) renderScanningPanel(width, height int) string {
	t := a.styles.Theme
	p := a.handle.Progress()

	textStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	labelStyle := a.styles.Label
	dirStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	matchStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	timeStyle := lipgloss.NewStyle().Foreground(t.Warning).Bold(true)

	boxWidth := min(max(width-4, 30), 60)
	innerWidth := boxWidth - 2

	volume := a.current.Path
	if volume == "" {
		volume = "..."
	}

	var logLines []string
	logLines = append(logLines, fmt.Sprintf("  %s %s", a.spinner.View(), textStyle.Render("Scanning "+volume)))
	if p.VolumesTotal > 1 {
		a.progress.Width = max(innerWidth-8, 10)
		logLines = append(logLines, "  "+a.progress.ViewAs(p.Fraction()))
	} else {
		logLines = append(logLines, "")
	}
	logLines = append(logLines, "")
	logLines = append(logLines, fmt.Sprintf("    %s    %s", labelStyle.Render("DIRS"), dirStyle.Render(fmt.Sprint(p.DirsVisited))))
	logLines = append(logLines, fmt.Sprintf("    %s %s", labelStyle.Render("MATCHES"), matchStyle.Render(fmt.Sprint(p.Matches))))
	logLines = append(logLines, fmt.Sprintf("    %s    %s", labelStyle.Render("TIME"), timeStyle.Render(time.Since(a.scanStarted).Round(100*time.Millisecond).String())))
	logLines = append(logLines, "    "+a.styles.Dim.Render(shortenPath(p.CurrentDir, innerWidth-6)))

	innerContent := lipgloss.NewStyle().Width(innerWidth).Render(strings.Join(logLines, "\n"))

	boxHeight := len(logLines) + 2
	scanningBox := renderSpinningBorder(t.Shades, innerContent, boxWidth, boxHeight, time.Now())

	hint := a.styles.Dim.Render("esc to cancel")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, scanningBox, hint))
}

// renderDetails renders the info bar plus the treemap or the file details
func (a App) renderDetails() string {
	m, index, ok := a.results.Selected()
	if !ok {
		return a.treemap.View()
	}

	var content string
	if a.activePanel == PanelResults && !m.IsDir() {
		content = a.fileDetailsPanel(m, index)
	} else {
		content = a.treemap.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.infoBar(m, index), content)
}

// infoBar creates the info bar showing metadata of the selected match
func (a App) infoBar(m model.Match, index int) string {
	t := a.styles.Theme
	borderColor := t.Border
	if a.activePanel == PanelTreemap {
		borderColor = t.Accent
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	content := " " + a.buildMatchInfo(m, index) + " "
	maxWidth := max(a.rightPanelWidth-2, 4)
	content = lipgloss.NewStyle().MaxWidth(maxWidth).Render(content)
	contentWidth := lipgloss.Width(content)

	topBorder := borderStyle.Render("╭" + strings.Repeat("─", contentWidth) + "╮")
	middleLine := borderStyle.Render("│") + content + borderStyle.Render("│")
	return topBorder + "\n" + middleLine
}

// buildMatchInfo creates the info string for a match
func (a App) buildMatchInfo(m model.Match, index int) string {
	t := a.styles.Theme
	dimStyle := a.styles.Dim
	nameStyle := lipgloss.NewStyle().Foreground(t.Bright)

	icon := "📄"
	if m.IsDir() {
		icon = "📁"
	}

	sep := dimStyle.Render(" │ ")
	parts := []string{icon, " ", nameStyle.Render(filepath.Base(m.Path)), sep,
		dimStyle.Render(fmt.Sprintf("#%d of %d", index, a.results.Len()))}

	if a.results.IsGone(m.Path) {
		parts = append(parts, sep, a.styles.GoneBadge.Render("GONE"))
		return strings.Join(parts, "")
	}

	if m.IsDir() {
		switch usage, ok := a.usages[m.Path]; {
		case ok:
			parts = append(parts, sep, dimStyle.Render(fmt.Sprintf("%d files, %s", usage.Files, FormatSize(usage.Bytes))))
		case a.measuring == m.Path:
			parts = append(parts, sep, dimStyle.Render("measuring..."))
		}
		if info, err := os.Stat(m.Path); err == nil {
			createTime := getCreationTime(info)
			if createTimeStr := FormatTime(createTime); createTimeStr != "" {
				parts = append(parts, sep, dimStyle.Render("C: "+createTimeStr))
			}
			if modTimeStr := FormatTime(info.ModTime()); modTimeStr != FormatTime(createTime) {
				parts = append(parts, sep, dimStyle.Render("M: "+modTimeStr))
			}
		}
	} else if m.Size > 0 {
		parts = append(parts, sep, dimStyle.Render(FormatSize(m.Size)))
	}

	return strings.Join(parts, "")
}

// fileDetailsPanel renders detailed file information
func (a App) fileDetailsPanel(m model.Match, index int) string {
	t := a.styles.Theme
	panelHeight := a.panelHeight() - infoBarHeight
	innerWidth := max(a.rightPanelWidth-2, 1)
	innerHeight := max(panelHeight-2, 0)

	labelStyle := a.styles.Label
	valueStyle := a.styles.Value
	pathStyle := lipgloss.NewStyle().Foreground(t.Accent)

	var contentLines []string
	if fileType := getFileType(m.Path); fileType != "" {
		contentLines = append(contentLines, labelStyle.Render("Type: ")+valueStyle.Render(fileType))
	}
	contentLines = append(contentLines, labelStyle.Render("Size: ")+valueStyle.Render(FormatSize(m.Size)))

	if info, err := os.Stat(m.Path); err == nil {
		if timeStr := FormatTime(getCreationTime(info)); timeStr != "" {
			contentLines = append(contentLines, labelStyle.Render("Created: ")+valueStyle.Render(timeStr))
		}
		contentLines = append(contentLines, labelStyle.Render("Modified: ")+valueStyle.Render(FormatTime(info.ModTime())))
		contentLines = append(contentLines, labelStyle.Render("Permissions: ")+valueStyle.Render(info.Mode().String()))
	} else {
		contentLines = append(contentLines, a.styles.GoneBadge.Render("GONE"))
	}

	contentLines = append(contentLines, "")
	contentLines = append(contentLines, labelStyle.Render("Path:"))
	contentLines = append(contentLines, pathStyle.Render(shortenPath(m.Path, innerWidth-2)))
	contentLines = append(contentLines, "")
	contentLines = append(contentLines,
		a.styles.KeyHint.Render("d")+a.styles.Dim.Render(fmt.Sprintf(" delete #%d  ", index))+
			a.styles.KeyHint.Render("Space")+a.styles.Dim.Render(" preview  ")+
			a.styles.KeyHint.Render("o")+a.styles.Dim.Render(" reveal"))

	borderStyle := lipgloss.NewStyle().Foreground(t.Border)

	var result strings.Builder
	result.WriteString(borderStyle.Render("╭" + strings.Repeat("─", innerWidth) + "╮"))
	result.WriteString("\n")

	for i := 0; i < innerHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = " " + contentLines[i]
		}
		line = lipgloss.NewStyle().MaxWidth(innerWidth).Render(line)
		if lineWidth := lipgloss.Width(line); lineWidth < innerWidth {
			line += strings.Repeat(" ", innerWidth-lineWidth)
		}
		result.WriteString(borderStyle.Render("│") + line + borderStyle.Render("│"))
		result.WriteString("\n")
	}

	result.WriteString(borderStyle.Render("╰" + strings.Repeat("─", innerWidth) + "╯"))
	return result.String()
}

// getFileType detects file type using magic numbers
func getFileType(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	if ext := mtype.Extension(); ext != "" {
		return strings.ToUpper(strings.TrimPrefix(ext, "."))
	}
	return mtype.String()
}

// renderSpinningBorder draws a box with spinning gradient border
func renderSpinningBorder(shades []string, content string, width, height int, t time.Time) string {
	innerW := width - 2
	innerH := height - 2
	perimeter := 2*innerW + 2*innerH + 4

	offset := int(t.UnixMilli()/borderRotationSpeed) % perimeter

	getColor := func(pos int) lipgloss.Style {
		adjustedPos := (pos - offset + perimeter) % perimeter
		shadeIdx := (adjustedPos * len(shades) / perimeter) % len(shades)
		return lipgloss.NewStyle().Foreground(lipgloss.Color(shades[shadeIdx]))
	}

	const (
		topLeft     = "╭"
		topRight    = "╮"
		bottomLeft  = "╰"
		bottomRight = "╯"
		horizontal  = "─"
		vertical    = "│"
	)

	var result strings.Builder
	pos := 0

	result.WriteString(getColor(pos).Render(topLeft))
	pos++
	for i := 0; i < innerW; i++ {
		result.WriteString(getColor(pos).Render(horizontal))
		pos++
	}
	result.WriteString(getColor(pos).Render(topRight))
	pos++
	result.WriteString("\n")

	contentLines := strings.Split(content, "\n")
	for i := 0; i < innerH; i++ {
		result.WriteString(getColor(perimeter - 1 - i).Render(vertical))

		line := ""
		if i < len(contentLines) {
			line = contentLines[i]
		}
		if lineWidth := lipgloss.Width(line); lineWidth < innerW {
			line += strings.Repeat(" ", innerW-lineWidth)
		}
		result.WriteString(line)

		result.WriteString(getColor(pos).Render(vertical))
		pos++
		result.WriteString("\n")
	}

	bottomStart := pos
	result.WriteString(getColor(perimeter - innerH - 1).Render(bottomLeft))
	for i := 0; i < innerW; i++ {
		result.WriteString(getColor(bottomStart + innerW - i).Render(horizontal))
	}
	result.WriteString(getColor(bottomStart).Render(bottomRight))

	return result.String()
}

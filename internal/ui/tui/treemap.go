package tui

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeffwilliams/squarify"
	"github.com/lumipallolabs/filesearch/internal/model"
)

// TreemapEntry is one match as the treemap sees it
type TreemapEntry struct {
	Index int // 1-based selection index
	Match model.Match
	Size  int64
	Gone  bool
}

// Block represents a rectangle in the treemap
type Block struct {
	Entry         *TreemapEntry
	X, Y          int
	Width, Height int
	// For grouped items (when Entry is nil)
	IsGrouped  bool
	GroupCount int
	GroupSize  int64
}

// TreemapPanel shows the matches as rectangles sized by bytes
type TreemapPanel struct {
	styles   *Styles
	entries  []TreemapEntry
	selected int // selection index, 0 for none
	blocks   []Block
	width    int
	height   int
	focused  bool

	// Render cache
	cachedView     string
	cacheValid     bool
	cachedSelected int
	cachedFocused  bool
	cachedTheme    string
}

// NewTreemapPanel creates a new treemap panel
func NewTreemapPanel(styles *Styles) TreemapPanel {
	return TreemapPanel{styles: styles}
}

// SetEntries replaces the displayed matches
func (t *TreemapPanel) SetEntries(entries []TreemapEntry) {
	t.entries = entries
	t.layout()
}

// SetSize sets the panel dimensions
func (t *TreemapPanel) SetSize(w, h int) {
	if t.width != w || t.height != h {
		t.width = w
		t.height = h
		t.layout()
	}
}

// SetFocused sets focus state
func (t *TreemapPanel) SetFocused(focused bool) {
	t.focused = focused
}

// InvalidateCache marks the render cache as invalid
func (t *TreemapPanel) InvalidateCache() {
	t.cacheValid = false
}

// SetSelected sets the selected match (for sync from the list)
func (t *TreemapPanel) SetSelected(index int) {
	t.selected = index
}

// Selected returns the selected match index, 0 when none
func (t TreemapPanel) Selected() int {
	return t.selected
}

// Blocks returns the laid out blocks
func (t TreemapPanel) Blocks() []Block {
	return t.blocks
}

// SelectFirst selects the first non-grouped block, unless the current
// selection is already on screen
func (t *TreemapPanel) SelectFirst() {
	if t.blockFor(t.selected) != nil {
		return
	}
	for i := range t.blocks {
		if !t.blocks[i].IsGrouped && t.blocks[i].Entry != nil {
			t.selected = t.blocks[i].Entry.Index
			return
		}
	}
}

func (t *TreemapPanel) blockFor(index int) *Block {
	if index == 0 {
		return nil
	}
	for i := range t.blocks {
		if !t.blocks[i].IsGrouped && t.blocks[i].Entry != nil && t.blocks[i].Entry.Index == index {
			return &t.blocks[i]
		}
	}
	return nil
}

// MoveToBlock moves selection to an adjacent block
func (t *TreemapPanel) MoveToBlock(dx, dy int) {
	if len(t.blocks) == 0 {
		return
	}

	currentBlock := t.blockFor(t.selected)
	if currentBlock == nil {
		t.SelectFirst()
		return
	}

	// Find center of current block
	cx := currentBlock.X + currentBlock.Width/2
	cy := currentBlock.Y + currentBlock.Height/2

	var bestBlock *Block
	bestDist := -1

	for i := range t.blocks {
		block := &t.blocks[i]
		if block.IsGrouped || block.Entry == nil || block.Entry.Index == t.selected {
			continue
		}

		bx := block.X + block.Width/2
		by := block.Y + block.Height/2

		// Check if block is in the right direction
		if dx > 0 && bx <= cx {
			continue
		}
		if dx < 0 && bx >= cx {
			continue
		}
		if dy > 0 && by <= cy {
			continue
		}
		if dy < 0 && by >= cy {
			continue
		}

		dist := abs(bx-cx) + abs(by-cy)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			bestBlock = block
		}
	}

	if bestBlock != nil {
		t.selected = bestBlock.Entry.Index
	}
}

// treemapItem wraps an entry for the squarify algorithm
type treemapItem struct {
	entry *TreemapEntry
	size  float64
	// Children for TreeSizer interface
	children []*treemapItem
}

// Size implements squarify.TreeSizer
func (t *treemapItem) Size() float64 {
	return t.size
}

// NumChildren implements squarify.TreeSizer
func (t *treemapItem) NumChildren() int {
	return len(t.children)
}

// Child implements squarify.TreeSizer
func (t *treemapItem) Child(i int) squarify.TreeSizer {
	return t.children[i]
}

const (
	minBlockWidth   = 8  // minimum width for any block (fits short label)
	minBlockHeight  = 3  // minimum height for any block (border + 1 line text)
	maxVisibleItems = 15 // max items before grouping remainder into "N more"

	treemapBorderH = 2 // margin for rightmost block borders
)

// layout calculates block positions using the squarify library
func (t *TreemapPanel) layout() {
	t.blocks = nil
	t.cacheValid = false

	if len(t.entries) == 0 || t.width <= 2 || t.height <= 2 {
		return
	}

	contentW := t.width - treemapBorderH
	contentH := t.height
	if contentW < 1 {
		contentW = 1
	}

	// Real sizes; unknown ones still get a sliver
	items := make([]*treemapItem, 0, len(t.entries))
	for i := range t.entries {
		size := float64(t.entries[i].Size)
		if size < 1 {
			size = 1
		}
		items = append(items, &treemapItem{entry: &t.entries[i], size: size})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].size > items[j].size
	})

	rect := squarify.Rect{
		X: 0,
		Y: 0,
		W: float64(contentW),
		H: float64(contentH),
	}

	var blocks []squarify.Block
	var metas []squarify.Meta

	maxVisible := min(len(items), maxVisibleItems)

	// Find the maximum items that fit with minimum dimensions
	for maxVisible >= 2 {
		mainRect := rect
		numVisible := min(maxVisible, len(items))

		// Don't show "1 more": with a single leftover, try to show it instead
		hasGroupedItems := len(items)-numVisible >= 2
		if hasGroupedItems {
			// Reserve bottom strip for "N more" block
			mainRect.H = float64(contentH - minBlockHeight)
			numVisible = min(maxVisible-1, len(items))
		}

		blocks, metas = squarify.Squarify(rootItem(items[:numVisible]), mainRect, squarify.Options{
			MaxDepth: 1,
			Sort:     true,
		})

		allFit := true
		for i, block := range blocks {
			if i >= len(metas) || metas[i].Depth != 0 {
				continue
			}
			w := int(math.Floor(block.X+block.W)) - int(math.Floor(block.X))
			h := int(math.Floor(block.Y+block.H)) - int(math.Floor(block.Y))
			if w < minBlockWidth || h < minBlockHeight {
				allFit = false
				break
			}
		}

		if allFit {
			if hasGroupedItems {
				t.blocks = append(t.blocks, groupBlock(items[numVisible:], contentW, contentH))
			}
			break
		}
		maxVisible--
	}

	// Only 1 item fits
	if maxVisible < 2 {
		mainRect := rect
		needsGrouped := len(items) > 2 // 1 shown + 2+ grouped
		if needsGrouped {
			mainRect.H = float64(contentH - minBlockHeight)
		}

		blocks, metas = squarify.Squarify(rootItem(items[:1]), mainRect, squarify.Options{
			MaxDepth: 1,
			Sort:     true,
		})

		if needsGrouped {
			t.blocks = append(t.blocks, groupBlock(items[1:], contentW, contentH))
		}
	}

	// Track where main blocks actually end (for placing "N more" without gaps)
	maxMainBlockEndY := 0

	for i, block := range blocks {
		item, ok := block.TreeSizer.(*treemapItem)
		if !ok {
			continue
		}
		// depth 0 = children of the synthetic root
		if i >= len(metas) || metas[i].Depth != 0 {
			continue
		}

		// Round all edges so adjacent blocks share boundaries
		x := int(math.Round(block.X))
		y := int(math.Round(block.Y))
		endX := int(math.Round(block.X + block.W))
		endY := int(math.Round(block.Y + block.H))
		w := endX - x
		h := endY - y

		if x < 0 {
			x = 0
		}
		if y < 0 {
			y = 0
		}
		if endX > contentW {
			w = contentW - x
		}
		if endY > contentH {
			h = contentH - y
		}
		if w < 1 || h < 1 || x >= contentW || y >= contentH {
			continue
		}

		if y+h > maxMainBlockEndY {
			maxMainBlockEndY = y + h
		}

		t.blocks = append(t.blocks, Block{
			Entry:  item.entry,
			X:      x,
			Y:      y,
			Width:  w,
			Height: h,
		})
	}

	// "N more" starts right after the main blocks and fills the rest
	for i := range t.blocks {
		if t.blocks[i].IsGrouped {
			t.blocks[i].Y = maxMainBlockEndY
			t.blocks[i].Height = max(contentH-maxMainBlockEndY, 1)
			break
		}
	}
}

func rootItem(children []*treemapItem) *treemapItem {
	root := &treemapItem{children: children}
	for _, child := range children {
		root.size += child.size
	}
	return root
}

func groupBlock(rest []*treemapItem, contentW, contentH int) Block {
	var groupSize int64
	for _, item := range rest {
		groupSize += item.entry.Size
	}
	return Block{
		X:          0,
		Y:          contentH - minBlockHeight,
		Width:      contentW,
		Height:     minBlockHeight,
		IsGrouped:  true,
		GroupCount: len(rest),
		GroupSize:  groupSize,
	}
}

// View renders the treemap
func (t *TreemapPanel) View() string {
	if len(t.entries) == 0 {
		return t.styles.Panel.Render("No matches")
	}

	if t.cacheValid &&
		t.cachedSelected == t.selected &&
		t.cachedFocused == t.focused &&
		t.cachedTheme == t.styles.Theme.Name {
		return t.cachedView
	}

	contentW := max(t.width-treemapBorderH, 1)
	contentH := max(t.height, 1)

	// Render each block completely using lipgloss, then composite line by line
	type renderedBlock struct {
		block Block
		lines []string
	}

	var rendered []renderedBlock
	for _, block := range t.blocks {
		if block.Width < 1 || block.Height < 1 {
			continue
		}
		lines := strings.Split(t.renderBlock(block), "\n")
		rendered = append(rendered, renderedBlock{block, lines})
	}

	type blockSegment struct {
		x     int
		width int
		line  string
	}

	var outputLines []string
	for y := 0; y < contentH; y++ {
		var segments []blockSegment
		for _, rb := range rendered {
			lineIdx := y - rb.block.Y
			if lineIdx >= 0 && lineIdx < len(rb.lines) && lineIdx < rb.block.Height {
				segments = append(segments, blockSegment{
					x:     rb.block.X,
					width: rb.block.Width,
					line:  rb.lines[lineIdx],
				})
			}
		}

		sort.Slice(segments, func(i, j int) bool {
			return segments[i].x < segments[j].x
		})

		var lineBuilder strings.Builder
		currentX := 0
		for _, seg := range segments {
			if seg.x >= contentW {
				break
			}
			if seg.x > currentX {
				lineBuilder.WriteString(strings.Repeat(" ", seg.x-currentX))
			}
			line := seg.line
			if seg.x+seg.width > contentW {
				line = lipgloss.NewStyle().MaxWidth(contentW - seg.x).Render(line)
			}
			lineBuilder.WriteString(line)
			currentX = seg.x + seg.width
		}
		outputLines = append(outputLines, lineBuilder.String())
	}

	style := lipgloss.NewStyle().Height(t.height).MaxHeight(t.height)

	t.cachedView = style.Render(strings.Join(outputLines, "\n"))
	t.cacheValid = true
	t.cachedSelected = t.selected
	t.cachedFocused = t.focused
	t.cachedTheme = t.styles.Theme.Name

	return t.cachedView
}

// renderBlock renders a complete block using lipgloss and returns the styled string
func (t TreemapPanel) renderBlock(block Block) string {
	theme := t.styles.Theme

	// Border color indicates type, no background fill
	var fgColor, borderColor lipgloss.Color
	switch {
	case block.IsGrouped:
		fgColor = theme.Gone
		borderColor = theme.Muted
	case block.Entry.Gone:
		fgColor = theme.Gone
		borderColor = theme.Muted
	case block.Entry.Match.IsDir():
		fgColor = theme.Dir
		borderColor = theme.Dir
	default:
		fgColor = theme.File
		borderColor = theme.Gone
	}

	isSelected := !block.IsGrouped && block.Entry.Index == t.selected
	if isSelected && t.focused {
		fgColor = theme.Bright
		borderColor = theme.Primary
	} else if isSelected {
		fgColor = theme.Text
		borderColor = theme.Muted
	}

	var label, sizeStr string
	if block.IsGrouped {
		label = fmt.Sprintf("%d more", block.GroupCount)
		sizeStr = FormatSize(block.GroupSize)
	} else {
		label = fmt.Sprintf("%d. %s", block.Entry.Index, filepath.Base(block.Entry.Match.Path))
		if block.Entry.Gone {
			sizeStr = "gone"
		} else if block.Entry.Size > 0 {
			sizeStr = FormatSize(block.Entry.Size)
		}
	}

	innerW := max(block.Width-2, 0)
	innerH := max(block.Height-2, 0)

	label = shortenPath(label, innerW)
	text := label
	if innerH > 1 && sizeStr != "" {
		text = label + "\n" + sizeStr
	}

	blockStyle := lipgloss.NewStyle().
		Width(innerW).
		Height(innerH).
		MaxWidth(block.Width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Foreground(fgColor)

	if isSelected {
		blockStyle = blockStyle.Bold(true)
	}

	return blockStyle.Render(text)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

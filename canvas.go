package main

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"mapterm/internal/layout"
)

// Canvas draws a set of node views into a grid of runes. Zoom stretches the
// horizontal distance of every node from the center; node boxes keep their
// size so titles stay readable.
type Canvas struct {
	nodes []layout.NodeView
	byID  map[int]layout.NodeView
}

// wideFiller marks a cell covered by the right half of a wide rune.
const wideFiller = '\x00'

// renderState is what the canvas needs from the UI beyond the nodes.
type renderState struct {
	selected   int // -1 for none
	editID     int // -1 when not editing
	editText   []rune
	editCursor int
}

func noRenderState() renderState {
	return renderState{selected: -1, editID: -1}
}

func NewCanvas(nodes map[int]layout.NodeView, zoom int) *Canvas {
	c := &Canvas{byID: make(map[int]layout.NodeView, len(nodes))}
	factor := zoomFactor(zoom)
	for _, n := range nodes {
		center := float64(n.X) + float64(n.Width)/2
		n.X = int(math.Round(center*factor - float64(n.Width)/2))
		c.byID[n.ID] = n
	}
	c.nodes = slices.SortedFunc(maps.Values(c.byID), func(a, b layout.NodeView) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return c
}

func zoomFactor(zoom int) float64 {
	return 1 + 0.25*float64(zoom)
}

// Bounds returns the cell extents of the scaled nodes.
func (c *Canvas) Bounds() (minX, minY, maxX, maxY int, ok bool) {
	return layout.Layout{Nodes: c.byID}.Bounds()
}

// Render draws the canvas into a width x height grid. originX, originY is the
// screen cell world (0, 0) lands on.
func (c *Canvas) Render(width, height, originX, originY int, state renderState) []string {
	if height < 1 {
		height = 1
	}
	if width < 1 {
		width = 1
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	// Connectors first so boxes are drawn over them.
	for _, n := range c.nodes {
		parent, ok := c.byID[n.Parent]
		if n.Parent == 0 || !ok {
			continue
		}
		c.drawConnector(grid, parent, n, originX, originY)
	}

	for _, n := range c.nodes {
		lines := strings.Split(n.Title, "\n")
		if n.ID == state.editID {
			// The editor box grows with its text and keeps a cell for the cursor.
			lines = strings.Split(string(state.editText), "\n")
			n.Height = max(n.Height, len(lines)+2)
			for _, line := range lines {
				n.Width = max(n.Width, runewidth.StringWidth(line)+3)
			}
		}
		c.drawBoxAt(grid, n, lines, n.ID == state.selected, n.X+originX, n.Y+originY)
	}

	if n, ok := c.byID[state.editID]; ok {
		x, y := editCursorPosition(state.editText, state.editCursor)
		x += n.X + originX + 1
		y += n.Y + originY + 1
		if isValidPos(grid, x, y) {
			grid[y][x] = '█'
		}
	}

	out := make([]string, height)
	for i, row := range grid {
		out[i] = strings.ReplaceAll(string(row), string(wideFiller), "")
	}
	return out
}

func (c *Canvas) drawBoxAt(grid [][]rune, n layout.NodeView, lines []string, isSelected bool, boxX, boxY int) {
	var corner, horizontal, vertical rune
	if isSelected {
		corner, horizontal, vertical = '#', '#', '#'
	} else {
		corner, horizontal, vertical = '+', '-', '|'
	}

	width, height := n.Width, n.Height
	for y := boxY; y < boxY+height; y++ {
		for x := boxX; x < boxX+width; x++ {
			if !isValidPos(grid, x, y) {
				continue
			}
			top := y == boxY || y == boxY+height-1
			side := x == boxX || x == boxX+width-1
			switch {
			case top && side:
				grid[y][x] = corner
			case top:
				grid[y][x] = horizontal
			case side:
				grid[y][x] = vertical
			default:
				grid[y][x] = ' '
			}
		}
	}

	for i, line := range lines {
		textY := boxY + 1 + i
		textX := boxX + 1
		line = runewidth.Truncate(line, width-2, "")
		for _, r := range line {
			if textX >= boxX+width-1 {
				break
			}
			w := max(runewidth.RuneWidth(r), 1)
			if isValidPos(grid, textX, textY) {
				grid[textY][textX] = r
			}
			// The terminal draws a wide rune over the following cell too.
			for i := 1; i < w; i++ {
				if isValidPos(grid, textX+i, textY) {
					grid[textY][textX+i] = wideFiller
				}
			}
			textX += w
		}
	}
}

// drawConnector joins parent to child with an elbow: out of the parent's
// facing edge, along the gap, then into the child's facing edge.
func (c *Canvas) drawConnector(grid [][]rune, parent, child layout.NodeView, originX, originY int) {
	fromY := parent.Y + parent.Height/2 + originY
	toY := child.Y + child.Height/2 + originY
	var fromX, toX int
	if child.X+child.Width/2 >= parent.X+parent.Width/2 {
		fromX = parent.X + parent.Width + originX
		toX = child.X - 1 + originX
	} else {
		fromX = parent.X - 1 + originX
		toX = child.X + child.Width + originX
	}
	midX := (fromX + toX) / 2

	c.drawHorizontal(grid, fromX, midX, fromY)
	c.drawVertical(grid, midX, fromY, toY)
	c.drawHorizontal(grid, midX, toX, toY)
	if fromY != toY && isValidPos(grid, midX, fromY) {
		grid[fromY][midX] = '+'
	}
	if fromY != toY && isValidPos(grid, midX, toY) {
		grid[toY][midX] = '+'
	}
}

func (c *Canvas) drawHorizontal(grid [][]rune, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		if isValidPos(grid, x, y) {
			grid[y][x] = '-'
		}
	}
}

func (c *Canvas) drawVertical(grid [][]rune, x, y1, y2 int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		if isValidPos(grid, x, y) {
			grid[y][x] = '|'
		}
	}
}

// editCursorPosition returns the cell offset of cursor inside a title,
// counting newlines as line breaks.
func editCursorPosition(text []rune, cursor int) (x, y int) {
	cursor = min(max(cursor, 0), len(text))
	for _, r := range text[:cursor] {
		if r == '\n' {
			x, y = 0, y+1
			continue
		}
		x += max(runewidth.RuneWidth(r), 1)
	}
	return x, y
}

func isValidPos(grid [][]rune, x, y int) bool {
	return y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y])
}

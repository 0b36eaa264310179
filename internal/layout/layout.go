// Package layout holds the visual snapshot of a mind map and the calculator
// that derives it from an idea tree.
package layout

import (
	"maps"
	"slices"
)

// NodeView is the visual record of one idea. Coordinates are in terminal cells.
type NodeView struct {
	ID     int
	Parent int // zero for the center node
	Level  int // distance from the center node
	X      int
	Y      int
	Width  int
	Height int
	Title  string
	Attrs  map[string]string
}

// Equal reports whether two views are structurally identical.
func (n NodeView) Equal(o NodeView) bool {
	return n.ID == o.ID &&
		n.Parent == o.Parent &&
		n.Level == o.Level &&
		n.X == o.X && n.Y == o.Y &&
		n.Width == o.Width && n.Height == o.Height &&
		n.Title == o.Title &&
		maps.Equal(n.Attrs, o.Attrs)
}

// Layout is a complete snapshot; successive layouts are never merged.
type Layout struct {
	Nodes map[int]NodeView
}

// IDs returns the node ids in ascending order.
func (l Layout) IDs() []int {
	return slices.Sorted(maps.Keys(l.Nodes))
}

// Has reports whether id is part of the layout.
func (l Layout) Has(id int) bool {
	_, ok := l.Nodes[id]
	return ok
}

// Bounds returns the cell extents covered by all nodes. ok is false for an
// empty layout.
func (l Layout) Bounds() (minX, minY, maxX, maxY int, ok bool) {
	for _, n := range l.Nodes {
		if !ok {
			minX, minY = n.X, n.Y
			maxX, maxY = n.X+n.Width, n.Y+n.Height
			ok = true
			continue
		}
		minX = min(minX, n.X)
		minY = min(minY, n.Y)
		maxX = max(maxX, n.X+n.Width)
		maxY = max(maxY, n.Y+n.Height)
	}
	return minX, minY, maxX, maxY, ok
}

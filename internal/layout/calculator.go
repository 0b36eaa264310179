package layout

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	minNodeWidth = 8
	defaultHGap  = 4
	defaultVGap  = 1
)

// Tree is the read-only view of an idea tree the calculator needs.
// Children maps rank to child id.
type Tree interface {
	RootID() int
	Title(id int) string
	Children(id int) map[int]int
}

// Calculator places the center node at the origin and grows each side outward.
// Positive ranks go right, negative ranks go left; within a side children are
// stacked top to bottom by ascending rank magnitude.
type Calculator struct {
	HorizontalGap int
	VerticalGap   int
}

// Calculate lays out tree with the default gaps.
func Calculate(tree Tree) Layout {
	return Calculator{HorizontalGap: defaultHGap, VerticalGap: defaultVGap}.Calculate(tree)
}

func (c Calculator) Calculate(tree Tree) Layout {
	out := Layout{Nodes: make(map[int]NodeView)}
	if tree == nil {
		return out
	}
	rootID := tree.RootID()
	root := box(rootID, tree.Title(rootID))
	root.X = -root.Width / 2
	root.Y = -root.Height / 2
	out.Nodes[rootID] = root

	var right, left []int
	children := tree.Children(rootID)
	for _, rank := range sortedRanks(children) {
		if rank > 0 {
			right = append(right, children[rank])
		} else {
			left = append(left, children[rank])
		}
	}
	c.placeChildren(tree, &out, root, right, 1)
	c.placeChildren(tree, &out, root, left, -1)
	return out
}

// placeChildren centers the stacked subtrees of children on parent's middle row.
func (c Calculator) placeChildren(tree Tree, out *Layout, parent NodeView, children []int, side int) {
	if len(children) == 0 {
		return
	}
	heights := make([]int, len(children))
	total := 0
	for i, id := range children {
		heights[i] = c.subtreeHeight(tree, id)
		total += heights[i]
		if i < len(children)-1 {
			total += c.VerticalGap
		}
	}

	currentY := parent.Y + parent.Height/2 - total/2
	for i, id := range children {
		node := box(id, tree.Title(id))
		node.Parent = parent.ID
		node.Level = parent.Level + 1
		if side > 0 {
			node.X = parent.X + parent.Width + c.HorizontalGap
		} else {
			node.X = parent.X - c.HorizontalGap - node.Width
		}
		node.Y = currentY + (heights[i]-node.Height)/2
		out.Nodes[id] = node

		c.placeChildren(tree, out, node, childIDs(tree, id), side)
		currentY += heights[i] + c.VerticalGap
	}
}

// subtreeHeight is the vertical space needed by a node and all its descendants.
func (c Calculator) subtreeHeight(tree Tree, id int) int {
	own := box(id, tree.Title(id)).Height
	children := childIDs(tree, id)
	if len(children) == 0 {
		return own
	}
	total := 0
	for i, child := range children {
		total += c.subtreeHeight(tree, child)
		if i < len(children)-1 {
			total += c.VerticalGap
		}
	}
	return max(total, own)
}

// box sizes a node to fit its title: two cells of padding and a border row
// above and below.
func box(id int, title string) NodeView {
	lines := strings.Split(title, "\n")
	width := minNodeWidth
	for _, line := range lines {
		width = max(width, runewidth.StringWidth(line)+2)
	}
	return NodeView{ID: id, Title: title, Width: width, Height: len(lines) + 2}
}

// childIDs lists children of a non-center node by ascending rank magnitude.
func childIDs(tree Tree, id int) []int {
	children := tree.Children(id)
	ids := make([]int, 0, len(children))
	for _, rank := range sortedRanks(children) {
		ids = append(ids, children[rank])
	}
	return ids
}

// sortedRanks orders ranks by magnitude, then by sign so that a positive and
// negative rank of equal magnitude keep a stable order.
func sortedRanks(children map[int]int) []int {
	ranks := make([]int, 0, len(children))
	for rank := range children {
		ranks = append(ranks, rank)
	}
	slices.SortFunc(ranks, func(a, b int) int {
		if d := abs(a) - abs(b); d != 0 {
			return d
		}
		return b - a
	})
	return ranks
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

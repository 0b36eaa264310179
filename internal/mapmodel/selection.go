package mapmodel

import (
	"slices"

	"mapterm/internal/events"
)

// SelectNode makes id the selected node. Selecting the current selection
// again publishes nothing.
func (m *MapModel) SelectNode(id int) {
	if m.hasSelection && m.selected == id {
		return
	}
	if m.hasSelection {
		events.Publish(&m.bus, NodeSelectionChanged, SelectionChange{ID: m.selected, Selected: false})
	}
	m.selected = id
	m.hasSelection = true
	events.Publish(&m.bus, NodeSelectionChanged, SelectionChange{ID: id, Selected: true})
}

func (m *MapModel) clearSelection() {
	if !m.hasSelection {
		return
	}
	previous := m.selected
	m.selected = 0
	m.hasSelection = false
	events.Publish(&m.bus, NodeSelectionChanged, SelectionChange{ID: previous, Selected: false})
}

// revalidateSelection moves a selection whose node left the layout to the
// nearest former ancestor still present, or clears it.
func (m *MapModel) revalidateSelection(formerParents map[int]int) {
	if !m.hasSelection || m.current.Has(m.selected) {
		return
	}
	id := m.selected
	for range len(formerParents) + 1 {
		parent, ok := formerParents[id]
		if !ok {
			break
		}
		if m.current.Has(parent) {
			m.SelectNode(parent)
			return
		}
		id = parent
	}
	m.clearSelection()
}

// SelectNodeRight moves toward the right side of the map.
func (m *MapModel) SelectNodeRight(source string) {
	m.analytic("selectNodeRight", source)
	m.selectHorizontal(1)
}

// SelectNodeLeft moves toward the left side of the map.
func (m *MapModel) SelectNodeLeft(source string) {
	m.analytic("selectNodeLeft", source)
	m.selectHorizontal(-1)
}

// SelectNodeUp selects the sibling one rank closer to the parent.
func (m *MapModel) SelectNodeUp(source string) {
	m.analytic("selectNodeUp", source)
	m.selectVertical(-1)
}

// SelectNodeDown selects the sibling one rank further from the parent.
func (m *MapModel) SelectNodeDown(source string) {
	m.analytic("selectNodeDown", source)
	m.selectVertical(1)
}

// selectHorizontal handles Right (dir 1) and Left (dir -1). From the center,
// or with nothing selected, it enters the requested side at its innermost
// child; from the opposite side it steps back to the parent. A node already
// on the requested side stays selected.
func (m *MapModel) selectHorizontal(dir int) {
	if m.idea == nil {
		return
	}
	root := m.idea.RootID()
	if !m.hasSelection || m.selected == root {
		if target, ok := innermost(m.idea.Children(root), dir); ok {
			m.SelectNode(target)
		}
		return
	}
	if m.side(m.selected) != -dir {
		return
	}
	if parent, ok := m.idea.ParentOf(m.selected); ok {
		m.SelectNode(parent)
	}
}

// selectVertical steps through siblings that share the selection's parent and
// side, ordered by rank magnitude.
func (m *MapModel) selectVertical(step int) {
	if m.idea == nil || !m.hasSelection {
		return
	}
	parent, ok := m.idea.ParentOf(m.selected)
	if !ok {
		return
	}
	rank, _ := m.idea.RankOf(m.selected)
	siblings := m.idea.Children(parent)

	ranks := make([]int, 0, len(siblings))
	for r := range siblings {
		if sign(r) == sign(rank) {
			ranks = append(ranks, r)
		}
	}
	slices.SortFunc(ranks, func(a, b int) int { return abs(a) - abs(b) })

	i := slices.Index(ranks, rank)
	j := i + step
	if i < 0 || j < 0 || j >= len(ranks) {
		return
	}
	m.SelectNode(siblings[ranks[j]])
}

// side returns the sign of the rank held by id's ancestor among the center's
// children: 1 for right, -1 for left, 0 for the center or an unknown node.
func (m *MapModel) side(id int) int {
	root := m.idea.RootID()
	for range len(m.parents) + 1 {
		parent, ok := m.idea.ParentOf(id)
		if !ok {
			return 0
		}
		if parent == root {
			rank, _ := m.idea.RankOf(id)
			return sign(rank)
		}
		id = parent
	}
	return 0
}

// innermost returns the child with the smallest rank magnitude on side dir.
func innermost(children map[int]int, dir int) (int, bool) {
	best, found := 0, false
	for r := range children {
		if sign(r) != dir {
			continue
		}
		if !found || abs(r) < abs(best) {
			best, found = r, true
		}
	}
	if !found {
		return 0, false
	}
	return children[best], true
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

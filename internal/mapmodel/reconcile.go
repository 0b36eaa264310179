package mapmodel

import (
	"log/slog"

	"mapterm/internal/events"
	"mapterm/internal/layout"
)

// layoutDiff lists node views by what happened to them, each group in
// ascending id order.
type layoutDiff struct {
	created []layout.NodeView
	moved   []layout.NodeView
	removed []layout.NodeView
}

// diffLayouts correlates two snapshots by node id only. Moved carries the new
// view, removed carries the old one.
func diffLayouts(before, after layout.Layout) layoutDiff {
	var d layoutDiff
	for _, id := range after.IDs() {
		next := after.Nodes[id]
		prev, existed := before.Nodes[id]
		switch {
		case !existed:
			d.created = append(d.created, next)
		case !prev.Equal(next):
			d.moved = append(d.moved, next)
		}
	}
	for _, id := range before.IDs() {
		if !after.Has(id) {
			d.removed = append(d.removed, before.Nodes[id])
		}
	}
	return d
}

// reconcile recomputes the layout, publishes the difference and re-validates
// the selection. It runs once per tree change notification.
func (m *MapModel) reconcile() {
	var next layout.Layout
	if m.calc != nil && m.idea != nil {
		next = m.calc(m.idea)
	}
	if next.Nodes == nil {
		next.Nodes = map[int]layout.NodeView{}
	}

	d := diffLayouts(m.current, next)
	formerParents := m.parents
	m.current = next
	m.parents = m.hierarchy()

	m.logger.Debug("reconciled layout",
		slog.Int("nodes", len(next.Nodes)),
		slog.Int("created", len(d.created)),
		slog.Int("moved", len(d.moved)),
		slog.Int("removed", len(d.removed)))

	for _, n := range d.created {
		events.Publish(&m.bus, NodeCreated, n)
	}
	for _, n := range d.moved {
		events.Publish(&m.bus, NodeMoved, n)
	}
	for _, n := range d.removed {
		events.Publish(&m.bus, NodeRemoved, n)
	}

	m.revalidateSelection(formerParents)
}

// hierarchy records the parent of every node reachable from the root.
func (m *MapModel) hierarchy() map[int]int {
	parents := map[int]int{}
	if m.idea == nil {
		return parents
	}
	root := m.idea.RootID()
	var walk func(id int)
	walk = func(id int) {
		for _, child := range m.idea.Children(id) {
			if _, seen := parents[child]; seen || child == root {
				continue
			}
			parents[child] = id
			walk(child)
		}
	}
	walk(root)
	return parents
}

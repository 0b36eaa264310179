package mapmodel

import (
	"math"

	"mapterm/internal/events"
)

// AddSubIdea adds a child to the selected node, or to the center when nothing
// is selected.
func (m *MapModel) AddSubIdea(source string) error {
	m.analytic("addSubIdea", source)
	if m.idea == nil {
		return ErrNoIdea
	}
	return m.idea.AddSubIdea(m.selectedOrRoot(), m.nextTitle())
}

// AddSiblingIdea adds a child to the selected node's parent. The center has no
// parent, so for it this is the same as AddSubIdea.
func (m *MapModel) AddSiblingIdea(source string) error {
	m.analytic("addSiblingIdea", source)
	if m.idea == nil {
		return ErrNoIdea
	}
	target := m.selectedOrRoot()
	if m.hasSelection {
		if parent, ok := m.idea.ParentOf(m.selected); ok {
			target = parent
		}
	}
	return m.idea.AddSubIdea(target, m.nextTitle())
}

// RemoveSubIdea removes the selected node. The selection moves to its parent
// once the resulting change has been reconciled.
func (m *MapModel) RemoveSubIdea(source string) error {
	m.analytic("removeSubIdea", source)
	if m.idea == nil {
		return ErrNoIdea
	}
	if !m.hasSelection {
		return nil
	}
	return m.idea.RemoveSubIdea(m.selected)
}

// UpdateTitle renames id in the idea tree.
func (m *MapModel) UpdateTitle(id int, title string) error {
	if m.idea == nil {
		return ErrNoIdea
	}
	return m.idea.UpdateTitle(id, title)
}

// EditNode asks the renderer of the selected node to start or stop editing.
func (m *MapModel) EditNode(source string, editing bool) {
	m.analytic("editNode", source)
	if !m.hasSelection {
		return
	}
	events.Publish(&m.bus, NodeEditRequested.For(m.selected), editing)
}

func (m *MapModel) ScaleUp(source string) {
	m.analytic("scaleUp", source)
	m.scale++
	events.Publish(&m.bus, MapScaleChanged, true)
}

func (m *MapModel) ScaleDown(source string) {
	m.analytic("scaleDown", source)
	m.scale--
	events.Publish(&m.bus, MapScaleChanged, false)
}

// SetInputEnabled records whether callers should accept user input. The model
// itself does not refuse commands while input is disabled.
func (m *MapModel) SetInputEnabled(enabled bool) {
	m.inputEnabled = enabled
	events.Publish(&m.bus, InputEnabledChanged, enabled)
}

func (m *MapModel) selectedOrRoot() int {
	if m.hasSelection {
		return m.selected
	}
	return m.idea.RootID()
}

func (m *MapModel) nextTitle() string {
	if len(m.titles) == 0 {
		return defaultTitle
	}
	i := int(math.Floor(m.random() * float64(len(m.titles))))
	return m.titles[min(max(i, 0), len(m.titles)-1)]
}

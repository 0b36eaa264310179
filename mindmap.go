package main

import (
	"mapterm/internal/events"
	"mapterm/internal/layout"
	"mapterm/internal/mapmodel"
)

// mapView is the renderer's copy of the map, built only from the events the
// map model publishes.
type mapView struct {
	nodes        map[int]layout.NodeView
	selected     int
	hasSelection bool
	zoom         int
	inputEnabled bool
	lastCreated  int
	editing      bool
	editID       int
	editUnsubs   map[int]func()
}

func newMapView(mm *mapmodel.MapModel) *mapView {
	v := &mapView{
		nodes:        make(map[int]layout.NodeView),
		inputEnabled: mm.InputEnabled(),
		editUnsubs:   make(map[int]func()),
	}
	bus := mm.Events()

	events.Subscribe(bus, mapmodel.NodeCreated, func(n layout.NodeView) {
		v.nodes[n.ID] = n
		v.lastCreated = n.ID
		v.watchEdits(bus, n.ID)
	})
	events.Subscribe(bus, mapmodel.NodeMoved, func(n layout.NodeView) {
		v.nodes[n.ID] = n
	})
	events.Subscribe(bus, mapmodel.NodeRemoved, func(n layout.NodeView) {
		delete(v.nodes, n.ID)
		if unsubscribe, ok := v.editUnsubs[n.ID]; ok {
			unsubscribe()
			delete(v.editUnsubs, n.ID)
		}
	})
	events.Subscribe(bus, mapmodel.NodeSelectionChanged, func(s mapmodel.SelectionChange) {
		if s.Selected {
			v.selected, v.hasSelection = s.ID, true
		} else if v.hasSelection && v.selected == s.ID {
			v.hasSelection = false
		}
	})
	events.Subscribe(bus, mapmodel.MapScaleChanged, func(up bool) {
		if up {
			v.zoom = min(v.zoom+1, maxZoom)
		} else {
			v.zoom = max(v.zoom-1, minZoom)
		}
	})
	events.Subscribe(bus, mapmodel.InputEnabledChanged, func(enabled bool) {
		v.inputEnabled = enabled
	})
	return v
}

// watchEdits listens for edit requests addressed to one node.
func (v *mapView) watchEdits(bus *events.Bus, id int) {
	if _, ok := v.editUnsubs[id]; ok {
		return
	}
	v.editUnsubs[id] = events.Subscribe(bus, mapmodel.NodeEditRequested.For(id), func(editing bool) {
		v.editing = editing
		v.editID = id
	})
}

// selectedNode returns the view of the selected node, if it is on the map.
func (v *mapView) selectedNode() (layout.NodeView, bool) {
	if !v.hasSelection {
		return layout.NodeView{}, false
	}
	n, ok := v.nodes[v.selected]
	return n, ok
}

// selectedOrCenter is where host-side additions such as paste attach.
func (m *model) selectedOrCenter() int {
	if id, ok := m.mapModel.Selected(); ok {
		return id
	}
	return m.content.RootID()
}

// addNode runs one of the model's add commands, then selects the new node and
// opens it for editing.
func (m *model) addNode(add func(source string) error) {
	m.view.lastCreated = 0
	if err := add(keyboardSource); err != nil {
		m.errorMessage = err.Error()
		return
	}
	if m.view.lastCreated == 0 {
		return
	}
	m.mapModel.SelectNode(m.view.lastCreated)
	m.startEditing()
}

// startEditing asks the model to open the selected node for editing; the
// node's own listener switches the UI into edit mode.
func (m *model) startEditing() {
	m.mapModel.EditNode(keyboardSource, true)
	if !m.view.editing {
		return
	}
	m.mode = ModeEditing
	m.editID = m.view.editID
	m.editText = []rune(m.content.Title(m.editID))
	m.editCursorPos = len(m.editText)
	m.mapModel.SetInputEnabled(false)
}

func (m *model) finishEditing(commit bool) {
	if commit {
		if err := m.mapModel.UpdateTitle(m.editID, string(m.editText)); err != nil {
			m.errorMessage = err.Error()
		}
	}
	m.mapModel.EditNode(keyboardSource, false)
	m.mapModel.SetInputEnabled(true)
	m.mode = ModeNormal
	m.editText = nil
	m.editCursorPos = 0
}

func (m *model) removeSelected() {
	if err := m.mapModel.RemoveSubIdea(keyboardSource); err != nil {
		m.errorMessage = err.Error()
	}
}

func (m *model) undo() {
	if !m.content.Undo() {
		m.errorMessage = "Nothing to undo"
	}
}

func (m *model) redo() {
	if !m.content.Redo() {
		m.errorMessage = "Nothing to redo"
	}
}

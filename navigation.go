package main

import "mapterm/internal/layout"

// handleNavigation moves the selection, or the view itself in pan mode.
func (m *model) handleNavigation(key string, speed int) {
	if m.zPanMode {
		m.handlePan(key, speed)
		return
	}
	m.handleSelectionMove(key)
}

func (m *model) handlePan(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.panX += speed
	case "l", "right", "L", "shift+right":
		m.panX -= speed
	case "k", "up", "K", "shift+up":
		m.panY += speed
	case "j", "down", "J", "shift+down":
		m.panY -= speed
	}
}

// handleSelectionMove steps the selection through the map.
func (m *model) handleSelectionMove(key string) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.mapModel.SelectNodeLeft(keyboardSource)
	case "l", "right", "L", "shift+right":
		m.mapModel.SelectNodeRight(keyboardSource)
	case "k", "up", "K", "shift+up":
		m.mapModel.SelectNodeUp(keyboardSource)
	case "j", "down", "J", "shift+down":
		m.mapModel.SelectNodeDown(keyboardSource)
	}
	m.ensureSelectionVisible()
}

// ensureSelectionVisible pans just enough to bring the selected node on screen.
func (m *model) ensureSelectionVisible() {
	n, ok := m.view.selectedNode()
	if !ok || m.width < 1 || m.height < 2 {
		return
	}
	canvas := NewCanvas(map[int]layout.NodeView{n.ID: n}, m.view.zoom)
	n = canvas.byID[n.ID]
	originX, originY := m.origin()
	left, top := n.X+originX, n.Y+originY
	right, bottom := left+n.Width, top+n.Height
	viewHeight := m.height - 1

	switch {
	case left < 0:
		m.panX -= left
	case right > m.width:
		m.panX -= min(right-m.width, left)
	}
	switch {
	case top < 0:
		m.panY -= top
	case bottom > viewHeight:
		m.panY -= min(bottom-viewHeight, top)
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 4
	default:
		return 1
	}
}

// origin is the screen cell the map's center lands on.
func (m *model) origin() (int, int) {
	return m.width/2 + m.panX, (m.height-1)/2 + m.panY
}

package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmRemoveNode ConfirmAction = iota
	ConfirmQuit
)

type ExportType int

const (
	ExportPNG ExportType = iota
	ExportVisualTXT
)

// keyboardSource tags analytics for commands issued from key bindings.
const keyboardSource = "keyboard"

const (
	minZoom = -3
	maxZoom = 4
)

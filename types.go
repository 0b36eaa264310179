package main

import (
	"mapterm/internal/idea"
	"mapterm/internal/mapmodel"
)

type model struct {
	width          int
	height         int
	panX           int
	panY           int
	zPanMode       bool
	mode           Mode
	help           bool
	helpScroll     int
	content        *idea.Content
	mapModel       *mapmodel.MapModel
	view           *mapView
	editID         int
	editText       []rune
	editCursorPos  int
	confirmAction  ConfirmAction
	confirmID      int
	errorMessage   string
	successMessage string
	config         *Config
}

package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"mapterm/internal/layout"
)

var errNothingToExport = errors.New("nothing to export")

const (
	charWidth     = 8.0
	charHeight    = 16.0
	exportPadding = 2
)

// ExportToPNG draws every node and connector at one character cell per
// charWidth x charHeight pixels.
func (c *Canvas) ExportToPNG(filename string) error {
	minX, minY, maxX, maxY, ok := c.Bounds()
	if !ok {
		return errNothingToExport
	}
	minX -= exportPadding
	minY -= exportPadding
	maxX += exportPadding
	maxY += exportPadding

	dc := gg.NewContext(int(float64(maxX-minX)*charWidth), int(float64(maxY-minY)*charHeight))
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	for _, n := range c.nodes {
		if parent, ok := c.byID[n.Parent]; ok && n.Parent != 0 {
			c.drawConnectorPNG(dc, parent, n, minX, minY)
		}
	}
	for _, n := range c.nodes {
		c.drawBoxPNG(dc, n, minX, minY)
	}
	return dc.SavePNG(filename)
}

func (c *Canvas) drawConnectorPNG(dc *gg.Context, parent, child layout.NodeView, minX, minY int) {
	px := func(x int) float64 { return float64(x-minX) * charWidth }
	py := func(y int) float64 { return float64(y-minY)*charHeight + charHeight/2 }

	fromY := parent.Y + parent.Height/2
	toY := child.Y + child.Height/2
	var fromX, toX int
	if child.X >= parent.X {
		fromX, toX = parent.X+parent.Width, child.X
	} else {
		fromX, toX = parent.X, child.X+child.Width
	}
	midX := (fromX + toX) / 2

	dc.SetLineWidth(1.0)
	dc.MoveTo(px(fromX), py(fromY))
	dc.LineTo(px(midX), py(fromY))
	dc.LineTo(px(midX), py(toY))
	dc.LineTo(px(toX), py(toY))
	dc.Stroke()
}

func (c *Canvas) drawBoxPNG(dc *gg.Context, n layout.NodeView, minX, minY int) {
	x := float64(n.X-minX) * charWidth
	y := float64(n.Y-minY) * charHeight
	width := float64(n.Width) * charWidth
	height := float64(n.Height) * charHeight

	dc.SetColor(color.White)
	dc.DrawRectangle(x, y, width, height)
	dc.Fill()
	dc.SetColor(color.Black)
	dc.SetLineWidth(1.0)
	if n.Level == 0 {
		dc.SetLineWidth(2.0)
	}
	dc.DrawRectangle(x, y, width, height)
	dc.Stroke()

	textY := y + charHeight
	for i, line := range strings.Split(n.Title, "\n") {
		dc.DrawString(line, x+charWidth, textY+float64(i)*charHeight)
	}
}

// ExportToTXT writes the whole map as it would be drawn on a terminal large
// enough to hold it, without selection or cursor.
func (c *Canvas) ExportToTXT(filename string) error {
	minX, minY, maxX, maxY, ok := c.Bounds()
	if !ok {
		return errNothingToExport
	}
	width := maxX - minX + 2*exportPadding
	height := maxY - minY + 2*exportPadding
	lines := c.Render(width, height, exportPadding-minX, exportPadding-minY, noRenderState())

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, line := range lines {
		if _, err := fmt.Fprintln(file, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// export writes the current map, named after the center title, into the
// configured export directory.
func (m *model) export(kind ExportType) {
	canvas := NewCanvas(m.view.nodes, m.view.zoom)
	name := exportBaseName(m.content.Title(m.content.RootID()))
	var path string
	var err error
	switch kind {
	case ExportPNG:
		path = m.config.GetExportPath(name + ".png")
		err = canvas.ExportToPNG(path)
	case ExportVisualTXT:
		path = m.config.GetExportPath(name + ".txt")
		err = canvas.ExportToTXT(path)
	}
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = "Exported " + path
}

// exportBaseName turns a title into a file name.
func exportBaseName(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "mindmap"
	}
	return b.String()
}

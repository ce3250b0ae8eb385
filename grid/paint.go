package grid

import (
	"image"

	"github.com/milk9111/leveleditor/layers"
	"github.com/milk9111/leveleditor/raster"
)

// CellPixels is the on-screen size of one cell at the current magnifier.
func (e *Engine) CellPixels() int {
	return int(layers.CellResolution * e.magnifier)
}

// CellAt maps a canvas pixel to the cell under it. The result may lie
// outside the document; use Contains to check.
func (e *Engine) CellAt(x, y int) (int, int) {
	size := e.CellPixels()
	return floorDiv(x-e.pad, size), floorDiv(y-e.pad, size)
}

// Contains reports whether the canvas pixel lies on the displayed document.
func (e *Engine) Contains(x, y int) bool {
	if e.doc == nil {
		return false
	}
	w, h := e.displayedSize()
	return e.pad <= x && x < e.pad+w && e.pad <= y && y < e.pad+h
}

// MoveCursor tracks the pointer. It only has an effect while a document and
// a brush are open and the pointer is over the document.
func (e *Engine) MoveCursor(x, y int) bool {
	if e.doc == nil || e.brush == nil || !e.Contains(x, y) {
		return false
	}
	cx, cy := e.CellAt(x, y)
	size := e.CellPixels()
	e.cursor = cursor{
		cell:   image.Pt(cx, cy),
		anchor: image.Pt(e.pad+cx*size, e.pad+(cy+1)*size),
		valid:  true,
	}
	return true
}

// Cursor returns the cell under the pointer and the canvas pixel of that
// cell's bottom-left corner.
func (e *Engine) Cursor() (cell, anchor image.Point, ok bool) {
	return e.cursor.cell, e.cursor.anchor, e.cursor.valid
}

// TopRow converts the bottom row of a brush placement into the top row the
// brush rasters are drawn from.
func (e *Engine) TopRow(cellY int) int {
	if e.brush == nil {
		return cellY
	}
	return cellY - e.brush.CellHeight + 1
}

// PaintAt stamps the brush with its top-left cell at (cellX, cellTopY) onto
// every enabled layer. It reports whether anything was painted.
func (e *Engine) PaintAt(cellX, cellTopY int) bool {
	if e.doc == nil || e.brush == nil {
		return false
	}
	e.stamp(cellX, cellTopY)
	e.afterPaint()
	return true
}

// FillFrom tiles the brush over the whole document. Tiles sit on a lattice
// anchored at cell (0,0) with the brush's cell size as step, so the result
// does not depend on which cell was clicked.
func (e *Engine) FillFrom(cellX, cellTopY int) bool {
	if e.doc == nil || e.brush == nil {
		return false
	}
	bw, bh := e.brush.CellWidth, e.brush.CellHeight
	if bw < 1 || bh < 1 {
		return false
	}

	firstX := cellX - floorMod(cellX, bw)
	for firstX > 0 {
		firstX -= bw
	}
	firstY := cellTopY - floorMod(cellTopY, bh)
	for firstY > 0 {
		firstY -= bh
	}
	lastX := firstX
	for lastX < e.doc.CellWidth {
		lastX += bw
	}
	lastY := firstY
	for lastY < e.doc.CellHeight {
		lastY += bh
	}

	stamps := 0
	for cx := firstX; cx < lastX; cx += bw {
		for cy := firstY; cy < lastY; cy += bh {
			e.stamp(cx, cy)
			stamps++
		}
	}
	e.logger.Debug("fill", "stamps", stamps, "brush", [2]int{bw, bh})
	e.afterPaint()
	return true
}

func (e *Engine) stamp(cellX, cellTopY int) {
	at := image.Pt(cellX*layers.CellResolution, cellTopY*layers.CellResolution)
	if e.enabled[layers.Background] {
		raster.Over(e.doc.Background, e.brush.Background, at)
	}
	if e.enabled[layers.Foreground] && e.doc.Foreground != nil && e.brush.Foreground != nil {
		raster.Over(e.doc.Foreground, e.brush.Foreground, at)
	}
	if e.enabled[layers.Behavior] {
		raster.Over(e.doc.Behavior, e.brush.Behavior, image.Pt(cellX, cellTopY))
	}
}

func (e *Engine) afterPaint() {
	e.displayed = nil
	e.notify(EventPaint)
}

// Press handles a pointer press at canvas pixel (x, y).
func (e *Engine) Press(x, y int, b Button) {
	if e.doc == nil || !e.Contains(x, y) {
		return
	}
	e.MoveCursor(x, y)
	switch b {
	case ButtonPrimary:
		switch e.tool {
		case ToolBrush:
			if e.brush == nil {
				return
			}
			e.PaintAt(e.cursor.cell.X, e.TopRow(e.cursor.cell.Y))
			e.lastStamp = e.cursor.anchor
			e.stamped = true
		case ToolFill:
			if e.brush == nil {
				return
			}
			e.FillFrom(e.cursor.cell.X, e.TopRow(e.cursor.cell.Y))
		case ToolZoom:
			e.ZoomIn()
		}
	case ButtonSecondary:
		if e.tool == ToolZoom {
			e.ZoomOut()
		}
	}
}

// Drag handles pointer motion with a button held. With the brush tool the
// brush is stamped again once the anchor has moved at least the drag
// distance, scaled by the magnifier, along either axis.
func (e *Engine) Drag(x, y int, b Button) {
	if b != ButtonPrimary || e.tool != ToolBrush || e.doc == nil || e.brush == nil {
		return
	}
	if !e.MoveCursor(x, y) {
		return
	}
	anchor := e.cursor.anchor
	if e.stamped {
		dx := float64(abs(anchor.X - e.lastStamp.X))
		dy := float64(abs(anchor.Y - e.lastStamp.Y))
		if dx < float64(e.dragX)*e.magnifier && dy < float64(e.dragY)*e.magnifier {
			return
		}
	}
	e.PaintAt(e.cursor.cell.X, e.TopRow(e.cursor.cell.Y))
	e.lastStamp = anchor
	e.stamped = true
}

// Move handles pointer motion with no button held.
func (e *Engine) Move(x, y int) {
	e.MoveCursor(x, y)
}

// Release ends a drag.
func (e *Engine) Release(b Button) {
	if b == ButtonPrimary {
		e.stamped = false
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

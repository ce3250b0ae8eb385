package grid

import (
	"image"
	"strconv"

	"github.com/milk9111/leveleditor/layers"
	"github.com/milk9111/leveleditor/raster"
)

// ZoomIn doubles the magnifier, up to MaxMagnifier.
func (e *Engine) ZoomIn() {
	e.setMagnifier(min(MaxMagnifier, e.magnifier*2))
}

// ZoomOut halves the magnifier, down to MinMagnifier.
func (e *Engine) ZoomOut() {
	e.setMagnifier(max(MinMagnifier, e.magnifier/2))
}

func (e *Engine) setMagnifier(m float64) {
	if m == e.magnifier {
		return
	}
	e.magnifier = m
	e.cursor.valid = false
	e.invalidate()
	e.notify(EventZoom)
}

func (e *Engine) invalidate() {
	e.displayed = nil
	e.displayedBrush = nil
}

// LayerScale is the factor from stored pixels to canvas pixels for layer l.
// Behavior rasters store one pixel per cell.
func (e *Engine) LayerScale(l layers.Layer) float64 {
	if l == layers.Behavior {
		return e.magnifier * layers.CellResolution
	}
	return e.magnifier
}

func (e *Engine) displayedSize() (int, int) {
	if e.doc == nil {
		return 0, 0
	}
	size := e.CellPixels()
	return e.doc.CellWidth * size, e.doc.CellHeight * size
}

// CanvasSize is the displayed document plus the pad on every side.
func (e *Engine) CanvasSize() (int, int) {
	w, h := e.displayedSize()
	return w + 2*e.pad, h + 2*e.pad
}

// Displayed returns the active layer of the document resampled to the
// magnifier. It is nil without a document or when the layer is missing.
func (e *Engine) Displayed() *image.NRGBA {
	if e.doc == nil {
		return nil
	}
	if e.displayed == nil {
		e.displayed = e.scaled(e.doc, e.active)
	}
	return e.displayed
}

// DisplayedBrush is Displayed for the selected brush.
func (e *Engine) DisplayedBrush() *image.NRGBA {
	if e.brush == nil {
		return nil
	}
	if e.displayedBrush == nil {
		e.displayedBrush = e.scaled(e.brush, e.active)
	}
	return e.displayedBrush
}

func (e *Engine) scaled(img *layers.Image, l layers.Layer) *image.NRGBA {
	src := img.Raster(l)
	if src == nil {
		return nil
	}
	f := e.LayerScale(l)
	return raster.Scale(src, f, f < 1)
}

// BrushOrigin is the canvas pixel where the displayed brush's top-left
// corner is drawn: its bottom-left corner sits on the cursor anchor.
func (e *Engine) BrushOrigin() (image.Point, bool) {
	if !e.cursor.valid || e.brush == nil {
		return image.Point{}, false
	}
	h := e.brush.CellHeight * e.CellPixels()
	return image.Pt(e.cursor.anchor.X, e.cursor.anchor.Y-h), true
}

// Segment is a grid line in canvas pixels.
type Segment struct {
	From, To image.Point
}

// Label is an axis label anchored at a canvas pixel.
type Label struct {
	Text string
	At   image.Point
}

// Overlay holds the grid lines and axis labels drawn over the document.
type Overlay struct {
	Lines  []Segment
	Labels []Label
}

// Overlay computes the grid for the open document. Rows are labelled from
// the bottom starting at 0; columns from the left.
func (e *Engine) Overlay() Overlay {
	var o Overlay
	if e.doc == nil {
		return o
	}
	p := e.pad
	w, h := e.displayedSize()
	size := e.CellPixels()
	rows, cols := e.doc.CellHeight, e.doc.CellWidth

	for i := 0; i <= rows; i++ {
		y := p + i*size
		o.Lines = append(o.Lines, Segment{image.Pt(p, y), image.Pt(p+w, y)})
		if i != 0 {
			text := strconv.Itoa(rows - i)
			o.Labels = append(o.Labels,
				Label{text, image.Pt(p/2, y)},
				Label{text, image.Pt(p+w+5, y)})
		}
	}
	for j := 0; j <= cols; j++ {
		x := p + j*size
		o.Lines = append(o.Lines, Segment{image.Pt(x, p), image.Pt(x, p+h)})
		if j != cols {
			text := strconv.Itoa(j)
			o.Labels = append(o.Labels,
				Label{text, image.Pt(x, p-5)},
				Label{text, image.Pt(x, p+p/2+h)})
		}
	}
	return o
}

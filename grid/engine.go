// Package grid is the painting engine behind the editor canvas. It owns the
// open document and the selected brush, maps pointer positions on the padded
// canvas to grid cells under a magnifier, and stamps or tiles the brush onto
// the document's rasters.
package grid

import (
	"errors"
	"fmt"
	"image"

	"github.com/charmbracelet/log"
	"github.com/milk9111/leveleditor/layers"
	"github.com/milk9111/leveleditor/lve"
)

const (
	DefaultPad      = 40
	DefaultMaxCells = 50
	DefaultDrag     = layers.CellResolution

	MinMagnifier = 0.125
	MaxMagnifier = 16.0
)

var (
	ErrNoDocument = errors.New("grid: no document open")
	ErrNoPath     = errors.New("grid: document has no file path")
	ErrDrag       = fmt.Errorf("grid: drag distance must be at least %d", layers.CellResolution)
)

// Options configures a new Engine. Zero fields take their defaults.
type Options struct {
	Pad       int
	MaxCellsX int
	MaxCellsY int
	DragX     int
	DragY     int
	Tool      Tool
	Magnifier float64
	Logger    *log.Logger
}

// Engine holds the editing state of one canvas. It is not safe for
// concurrent use; the UI drives it from a single goroutine.
type Engine struct {
	doc   *layers.Image
	path  string
	brush *layers.Image

	pad        int
	maxX, maxY int
	dragX      int
	dragY      int
	magnifier  float64
	tool       Tool
	active     layers.Layer
	enabled    [3]bool

	cursor    cursor
	lastStamp image.Point
	stamped   bool

	displayed      *image.NRGBA
	displayedBrush *image.NRGBA

	observers []func(Event)
	logger    *log.Logger
}

type cursor struct {
	cell   image.Point
	anchor image.Point
	valid  bool
}

// New creates an engine with no document and no brush.
func New(opts Options) *Engine {
	e := &Engine{
		pad:       opts.Pad,
		maxX:      opts.MaxCellsX,
		maxY:      opts.MaxCellsY,
		dragX:     DefaultDrag,
		dragY:     DefaultDrag,
		magnifier: 1,
		tool:      ToolBrush,
		active:    layers.Background,
		enabled:   [3]bool{true, true, true},
		logger:    opts.Logger,
	}
	if e.pad <= 0 {
		e.pad = DefaultPad
	}
	if e.maxX <= 0 {
		e.maxX = DefaultMaxCells
	}
	if e.maxY <= 0 {
		e.maxY = DefaultMaxCells
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	if opts.DragX > 0 || opts.DragY > 0 {
		x, y := opts.DragX, opts.DragY
		if x <= 0 {
			x = DefaultDrag
		}
		if y <= 0 {
			y = DefaultDrag
		}
		if err := e.SetDrag(x, y); err != nil {
			e.logger.Warn("ignoring drag option", "error", err)
		}
	}
	if opts.Tool != ToolNone {
		e.tool = opts.Tool
	}
	if ValidMagnifier(opts.Magnifier) {
		e.magnifier = opts.Magnifier
	}
	return e
}

// ValidMagnifier reports whether m is one of the zoom steps, a power of two
// between MinMagnifier and MaxMagnifier.
func ValidMagnifier(m float64) bool {
	for v := MinMagnifier; v <= MaxMagnifier; v *= 2 {
		if v == m {
			return true
		}
	}
	return false
}

// Document returns the open document, or nil.
func (e *Engine) Document() *layers.Image { return e.doc }

// Path returns the file the document was opened from or last saved to.
func (e *Engine) Path() string { return e.path }

// Brush returns the selected brush, or nil.
func (e *Engine) Brush() *layers.Image { return e.brush }

func (e *Engine) Tool() Tool { return e.tool }
func (e *Engine) ActiveLayer() layers.Layer { return e.active }
func (e *Engine) Magnifier() float64 { return e.magnifier }
func (e *Engine) Pad() int { return e.pad }
func (e *Engine) MaxCells() (int, int) { return e.maxX, e.maxY }
func (e *Engine) DragDistance() (int, int) { return e.dragX, e.dragY }

// LayerEnabled reports whether painting mutates layer l.
func (e *Engine) LayerEnabled(l layers.Layer) bool {
	if l < 0 || int(l) >= len(e.enabled) {
		return false
	}
	return e.enabled[l]
}

// NewDocument replaces the open document with a blank one of w x h cells.
// A size outside the engine bounds leaves the current document open.
func (e *Engine) NewDocument(w, h int) error {
	if w < 1 || w > e.maxX || h < 1 || h > e.maxY {
		return &layers.ValidationError{
			Rule:   "cell bounds",
			Detail: fmt.Sprintf("%dx%d outside 1..%dx1..%d", w, h, e.maxX, e.maxY),
		}
	}
	img, err := layers.Blank(w, h)
	if err != nil {
		return err
	}
	e.setDocument(img, "")
	return nil
}

// Open loads a document from disk. On any error the current document stays
// open.
func (e *Engine) Open(path string) error {
	img, err := lve.Load(path)
	if err != nil {
		return err
	}
	if err := img.Validate(e.maxX, e.maxY); err != nil {
		return err
	}
	if !img.HasForeground() {
		e.logger.Warn("foreground raster missing, opened without it", "path", path)
	}
	e.setDocument(img, path)
	e.logger.Info("opened document", "path", path, "cells", fmt.Sprintf("%dx%d", img.CellWidth, img.CellHeight))
	return nil
}

func (e *Engine) setDocument(img *layers.Image, path string) {
	e.doc = img
	e.path = path
	e.cursor = cursor{}
	e.stamped = false
	e.invalidate()
	e.notify(EventDocument)
}

// Save writes the document back to its path.
func (e *Engine) Save() error {
	if e.doc == nil {
		return ErrNoDocument
	}
	if e.path == "" {
		return ErrNoPath
	}
	if err := lve.Save(e.doc, e.path); err != nil {
		return err
	}
	e.logger.Info("saved document", "path", e.path)
	e.notify(EventSaved)
	return nil
}

// SaveAs writes the document to path and makes path the document's file.
func (e *Engine) SaveAs(path string) error {
	if e.doc == nil {
		return ErrNoDocument
	}
	if err := lve.Save(e.doc, path); err != nil {
		return err
	}
	e.path = path
	e.logger.Info("saved document", "path", path)
	e.notify(EventSaved)
	return nil
}

// SelectBrush makes img the stamp source. A nil brush deselects.
func (e *Engine) SelectBrush(img *layers.Image) {
	e.brush = img
	e.cursor.valid = false
	e.displayedBrush = nil
	e.notify(EventBrush)
}

func (e *Engine) SetTool(t Tool) error {
	if t < ToolNone || t > ToolZoom {
		return fmt.Errorf("grid: unknown tool %d", int(t))
	}
	if t == e.tool {
		return nil
	}
	e.tool = t
	e.notify(EventTool)
	return nil
}

// SetActiveLayer selects the raster shown on the canvas.
func (e *Engine) SetActiveLayer(l layers.Layer) error {
	if l < layers.Background || l > layers.Behavior {
		return fmt.Errorf("grid: unknown layer %d", int(l))
	}
	if l == e.active {
		return nil
	}
	e.active = l
	e.invalidate()
	e.notify(EventLayer)
	return nil
}

// SetLayerEnabled controls whether brush and fill write to layer l.
func (e *Engine) SetLayerEnabled(l layers.Layer, on bool) error {
	if l < layers.Background || l > layers.Behavior {
		return fmt.Errorf("grid: unknown layer %d", int(l))
	}
	e.enabled[l] = on
	e.notify(EventSettings)
	return nil
}

// SetDrag sets the minimum anchor displacement between drag stamps, in
// unmagnified pixels. Values are rounded down to whole cells.
func (e *Engine) SetDrag(x, y int) error {
	if x < layers.CellResolution || y < layers.CellResolution {
		return fmt.Errorf("%w, got %dx%d", ErrDrag, x, y)
	}
	e.dragX = x - x%layers.CellResolution
	e.dragY = y - y%layers.CellResolution
	e.notify(EventSettings)
	return nil
}

package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/leveleditor/grid"
)

var (
	gridColor   = color.RGBA{255, 255, 255, 90}
	labelColor  = color.RGBA{220, 220, 220, 255}
	cursorColor = color.RGBA{255, 200, 0, 220}
	docColor    = color.RGBA{60, 60, 66, 255}
)

// Canvas draws the engine's document with its grid overlay and brush ghost,
// and turns mouse input into engine pointer events.
type Canvas struct {
	engine *grid.Engine
	face   text.Face

	// scroll offset of the padded document inside the canvas area
	offsetX, offsetY float64
	panning          bool
	lastMX, lastMY   int

	leftDown bool

	layerImg   *ebiten.Image
	brushImg   *ebiten.Image
	dirtyLayer bool
	dirtyBrush bool
}

func NewCanvas(e *grid.Engine, face text.Face) *Canvas {
	c := &Canvas{engine: e, face: face, dirtyLayer: true, dirtyBrush: true}
	e.Subscribe(c.onEvent)
	return c
}

func (c *Canvas) onEvent(ev grid.Event) {
	switch ev.Kind {
	case grid.EventDocument:
		c.offsetX, c.offsetY = 0, 0
		c.leftDown = false
		c.dirtyLayer = true
	case grid.EventPaint:
		c.dirtyLayer = true
	case grid.EventLayer:
		c.dirtyLayer = true
		c.dirtyBrush = true
	case grid.EventBrush, grid.EventZoom:
		c.dirtyBrush = true
	}
}

// origin is the screen position of canvas pixel (0,0).
func (c *Canvas) origin(area image.Rectangle) (int, int) {
	return area.Min.X + int(c.offsetX), area.Min.Y + int(c.offsetY)
}

// Update feeds mouse input to the engine. blocked is true while a modal
// dialog covers the canvas.
func (c *Canvas) Update(area image.Rectangle, blocked bool) {
	mx, my := ebiten.CursorPosition()
	inside := image.Pt(mx, my).In(area)

	if inside && !blocked {
		c.updateScroll(mx, my)
	}
	c.updatePan(mx, my)

	ox, oy := c.origin(area)
	cx, cy := mx-ox, my-oy

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && c.leftDown {
		c.leftDown = false
		c.engine.Release(grid.ButtonPrimary)
	}
	if !inside || blocked {
		return
	}

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		c.leftDown = true
		c.engine.Press(cx, cy, grid.ButtonPrimary)
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		c.engine.Press(cx, cy, grid.ButtonSecondary)
	case c.leftDown && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		c.engine.Drag(cx, cy, grid.ButtonPrimary)
	default:
		c.engine.Move(cx, cy)
	}
}

// updateScroll scrolls with the wheel, or zooms while Ctrl is held.
func (c *Canvas) updateScroll(mx, my int) {
	wx, wy := ebiten.Wheel()
	if wx == 0 && wy == 0 {
		return
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta) {
		if wy > 0 {
			c.engine.ZoomIn()
		} else if wy < 0 {
			c.engine.ZoomOut()
		}
		return
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		wx, wy = wy, 0
	}
	c.offsetX += wx * 32
	c.offsetY += wy * 32
}

// updatePan drags the document with the middle button.
func (c *Canvas) updatePan(mx, my int) {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		c.panning = false
		return
	}
	if !c.panning {
		c.panning = true
		c.lastMX, c.lastMY = mx, my
		return
	}
	c.offsetX += float64(mx - c.lastMX)
	c.offsetY += float64(my - c.lastMY)
	c.lastMX, c.lastMY = mx, my
}

func (c *Canvas) refresh() {
	if c.dirtyLayer {
		c.dirtyLayer = false
		c.layerImg = replaceImage(c.layerImg, nil)
		if doc := c.engine.Document(); doc != nil {
			if r := doc.Raster(c.engine.ActiveLayer()); r != nil {
				c.layerImg = ebiten.NewImageFromImage(r)
			}
		}
	}
	if c.dirtyBrush {
		c.dirtyBrush = false
		c.brushImg = replaceImage(c.brushImg, nil)
		if b := c.engine.DisplayedBrush(); b != nil {
			c.brushImg = ebiten.NewImageFromImage(b)
		}
	}
}

func replaceImage(old, img *ebiten.Image) *ebiten.Image {
	if old != nil {
		old.Deallocate()
	}
	return img
}

func (c *Canvas) Draw(screen *ebiten.Image, area image.Rectangle) {
	c.refresh()
	dst := screen.SubImage(area).(*ebiten.Image)
	dst.Fill(canvasColor)

	doc := c.engine.Document()
	if doc == nil {
		return
	}
	ox, oy := c.origin(area)
	pad := c.engine.Pad()
	cw, ch := c.engine.CanvasSize()
	w, h := cw-2*pad, ch-2*pad
	vector.FillRect(dst, float32(ox+pad), float32(oy+pad), float32(w), float32(h), docColor, false)

	if c.layerImg != nil {
		scale := c.engine.LayerScale(c.engine.ActiveLayer())
		op := &ebiten.DrawImageOptions{}
		if scale < 1 {
			op.Filter = ebiten.FilterLinear
		}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(float64(ox+pad), float64(oy+pad))
		dst.DrawImage(c.layerImg, op)
	}

	overlay := c.engine.Overlay()
	for _, seg := range overlay.Lines {
		vector.StrokeLine(dst,
			float32(ox+seg.From.X), float32(oy+seg.From.Y),
			float32(ox+seg.To.X), float32(oy+seg.To.Y),
			1, gridColor, false)
	}
	for _, l := range overlay.Labels {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(ox+l.At.X), float64(oy+l.At.Y))
		op.ColorScale.ScaleWithColor(labelColor)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignEnd
		text.Draw(dst, l.Text, c.face, op)
	}

	_, anchor, ok := c.engine.Cursor()
	if !ok {
		return
	}
	if at, ok := c.engine.BrushOrigin(); ok && c.brushImg != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(ox+at.X), float64(oy+at.Y))
		op.ColorScale.ScaleAlpha(0.6)
		dst.DrawImage(c.brushImg, op)
		b := c.brushImg.Bounds()
		vector.StrokeRect(dst, float32(ox+at.X), float32(oy+at.Y), float32(b.Dx()), float32(b.Dy()), 2, cursorColor, false)
	} else {
		size := float32(c.engine.CellPixels())
		vector.StrokeRect(dst, float32(ox+anchor.X), float32(oy+anchor.Y)-size, size, size, 2, cursorColor, false)
	}
}

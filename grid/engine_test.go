package grid

import (
	"bytes"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/leveleditor/behavior"
	"github.com/milk9111/leveleditor/layers"
	"github.com/milk9111/leveleditor/lve"
	"github.com/milk9111/leveleditor/raster"
)

func newEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return New(opts)
}

// solidBrush builds a brush of w x h cells. A zero fg leaves the foreground
// out.
func solidBrush(t *testing.T, w, h int, bg, fg, beh uint32) *layers.Image {
	t.Helper()
	b, _ := raster.New(w*layers.CellResolution, h*layers.CellResolution)
	raster.Fill(b, bg)
	var f image.Image
	if fg != 0 {
		fr, _ := raster.New(w*layers.CellResolution, h*layers.CellResolution)
		raster.Fill(fr, fg)
		f = fr
	}
	bh, _ := raster.New(w, h)
	raster.Fill(bh, beh)
	img, err := layers.New(b, f, bh)
	if err != nil {
		t.Fatalf("layers.New: %v", err)
	}
	return img
}

// quadBrush is a 2x2 brush whose cells all differ.
func quadBrush(t *testing.T) *layers.Image {
	t.Helper()
	colors := [2][2]behavior.Color{
		{behavior.Wall, behavior.Door},
		{behavior.Water, behavior.Indoor},
	}
	bg, _ := raster.New(128, 128)
	beh, _ := raster.New(2, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			argb := colors[y][x].ARGB()
			raster.SetARGB(beh, x, y, argb)
			for py := 0; py < 64; py++ {
				for px := 0; px < 64; px++ {
					raster.SetARGB(bg, x*64+px, y*64+py, argb)
				}
			}
		}
	}
	img, err := layers.New(bg, nil, beh)
	if err != nil {
		t.Fatalf("layers.New: %v", err)
	}
	return img
}

func TestPaintBottomLeftCell(t *testing.T) {
	e := newEngine(t, Options{})
	if err := e.NewDocument(3, 2); err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	doc := e.Document()
	if doc.PixelWidth != 192 || doc.PixelHeight != 128 || doc.CellWidth != 3 || doc.CellHeight != 2 {
		t.Fatalf("unexpected blank geometry %+v", doc)
	}
	e.SelectBrush(solidBrush(t, 1, 1, 0xFF777777, 0, behavior.Wall.ARGB()))

	// Row 1 is the bottom row of a two-row raster.
	if !e.PaintAt(0, 1) {
		t.Fatalf("PaintAt should paint with a document and brush")
	}
	if got := raster.ARGB(doc.Behavior, 0, 1); got != behavior.Wall.ARGB() {
		t.Fatalf("behavior pixel (0,1) = %#08x", got)
	}
	if got := raster.ARGB(doc.Behavior, 0, 0); got != 0 {
		t.Fatalf("top-left behavior pixel should be untouched, got %#08x", got)
	}
	report := behavior.Classify(doc.Behavior)
	if !reflect.DeepEqual(report[behavior.Wall], []behavior.Cell{{Col: 0, Row: 0}}) {
		t.Fatalf("bottom-left cell should report as (0,0), got %v", report[behavior.Wall])
	}

	// The top row reports as row 1.
	e.PaintAt(0, 0)
	report = behavior.Classify(doc.Behavior)
	if !reflect.DeepEqual(report[behavior.Wall], []behavior.Cell{{Col: 0, Row: 1}, {Col: 0, Row: 0}}) {
		t.Fatalf("unexpected wall cells %v", report[behavior.Wall])
	}
	if got := raster.ARGB(doc.Background, 63, 127); got != 0xFF777777 {
		t.Fatalf("background not stamped at the bottom-left cell: %#08x", got)
	}
}

func TestPaintAtHonorsLayerToggles(t *testing.T) {
	cases := []struct {
		name     string
		disabled layers.Layer
	}{
		{"no_background", layers.Background},
		{"no_foreground", layers.Foreground},
		{"no_behavior", layers.Behavior},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newEngine(t, Options{})
			_ = e.NewDocument(2, 2)
			e.SelectBrush(solidBrush(t, 1, 1, 0xFF0000FF, 0xFFFF0000, behavior.Door.ARGB()))
			if err := e.SetLayerEnabled(c.disabled, false); err != nil {
				t.Fatal(err)
			}
			e.PaintAt(1, 1)

			doc := e.Document()
			painted := map[layers.Layer]bool{
				layers.Background: raster.ARGB(doc.Background, 64, 64) != 0,
				layers.Foreground: raster.ARGB(doc.Foreground, 64, 64) != 0,
				layers.Behavior:   raster.ARGB(doc.Behavior, 1, 1) != 0,
			}
			for l, got := range painted {
				if want := l != c.disabled; got != want {
					t.Fatalf("%v painted=%v, expected %v", l, got, want)
				}
			}
		})
	}
}

func TestPaintCompositesOver(t *testing.T) {
	e := newEngine(t, Options{})
	_ = e.NewDocument(1, 1)
	doc := e.Document()
	raster.Fill(doc.Background, 0xFF00FF00)

	brush := solidBrush(t, 1, 1, 0xFF0000FF, 0, behavior.Wall.ARGB())
	raster.SetARGB(brush.Background, 5, 5, 0x00000000)
	e.SelectBrush(brush)
	e.PaintAt(0, 0)

	if got := raster.ARGB(doc.Background, 5, 5); got != 0xFF00FF00 {
		t.Fatalf("transparent brush pixel replaced the document: %#08x", got)
	}
	if got := raster.ARGB(doc.Background, 6, 5); got != 0xFF0000FF {
		t.Fatalf("opaque brush pixel not painted: %#08x", got)
	}
	if got := raster.ARGB(doc.Foreground, 6, 5); got != 0 {
		t.Fatalf("brush without foreground changed the foreground: %#08x", got)
	}
}

func TestPaintWithoutBrushOrDocumentIsNoop(t *testing.T) {
	e := newEngine(t, Options{})
	if e.PaintAt(0, 0) || e.FillFrom(0, 0) {
		t.Fatalf("painting without a document should be a no-op")
	}
	_ = e.NewDocument(2, 2)
	if e.PaintAt(0, 0) || e.FillFrom(0, 0) {
		t.Fatalf("painting without a brush should be a no-op")
	}
	e.Press(50, 50, ButtonPrimary)
	if got := raster.ARGB(e.Document().Behavior, 0, 0); got != 0 {
		t.Fatalf("press without a brush painted %#08x", got)
	}
}

func TestFillIsIndependentOfAnchor(t *testing.T) {
	anchors := []image.Point{{0, 0}, {3, 1}, {4, -1}, {1, 2}, {2, 0}}
	var ref *layers.Image
	for _, a := range anchors {
		e := newEngine(t, Options{})
		if err := e.NewDocument(5, 3); err != nil {
			t.Fatal(err)
		}
		e.SelectBrush(quadBrush(t))
		if !e.FillFrom(a.X, a.Y) {
			t.Fatalf("FillFrom(%v) did nothing", a)
		}
		doc := e.Document()
		if ref == nil {
			ref = doc
			continue
		}
		if !raster.Equal(ref.Behavior, doc.Behavior) || !raster.Equal(ref.Background, doc.Background) {
			t.Fatalf("fill from %v differs from fill from %v", a, anchors[0])
		}
	}

	brush := quadBrush(t)
	for y := 0; y < ref.CellHeight; y++ {
		for x := 0; x < ref.CellWidth; x++ {
			want := raster.ARGB(brush.Behavior, x%2, y%2)
			if got := raster.ARGB(ref.Behavior, x, y); got != want {
				t.Fatalf("cell (%d,%d) = %#08x, expected lattice value %#08x", x, y, got, want)
			}
			if got := raster.ARGB(ref.Background, x*64+10, y*64+10); got != want {
				t.Fatalf("background at cell (%d,%d) = %#08x", x, y, got)
			}
		}
	}
}

func TestFillHonorsLayerToggles(t *testing.T) {
	e := newEngine(t, Options{})
	_ = e.NewDocument(3, 3)
	e.SelectBrush(solidBrush(t, 1, 1, 0xFF0000FF, 0xFFFF0000, behavior.Water.ARGB()))
	_ = e.SetLayerEnabled(layers.Background, false)
	e.FillFrom(1, 1)

	doc := e.Document()
	blank, _ := raster.New(doc.PixelWidth, doc.PixelHeight)
	if !raster.Equal(doc.Background, blank) {
		t.Fatalf("disabled background was filled")
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := raster.ARGB(doc.Behavior, x, y); got != behavior.Water.ARGB() {
				t.Fatalf("behavior cell (%d,%d) not filled: %#08x", x, y, got)
			}
		}
	}
	if got := raster.ARGB(doc.Foreground, 191, 191); got != 0xFFFF0000 {
		t.Fatalf("foreground not filled to the corner: %#08x", got)
	}
}

func TestMagnifierSaturates(t *testing.T) {
	e := newEngine(t, Options{})
	var ins []float64
	for i := 0; i < 5; i++ {
		e.ZoomIn()
		ins = append(ins, e.Magnifier())
	}
	if !reflect.DeepEqual(ins, []float64{2, 4, 8, 16, 16}) {
		t.Fatalf("zoom in sequence %v", ins)
	}

	e = newEngine(t, Options{})
	var outs []float64
	for i := 0; i < 4; i++ {
		e.ZoomOut()
		outs = append(outs, e.Magnifier())
	}
	if !reflect.DeepEqual(outs, []float64{0.5, 0.25, 0.125, 0.125}) {
		t.Fatalf("zoom out sequence %v", outs)
	}
}

func TestValidMagnifier(t *testing.T) {
	cases := []struct {
		m    float64
		want bool
	}{
		{0.125, true},
		{0.5, true},
		{1, true},
		{16, true},
		{0, false},
		{0.0625, false},
		{0.3, false},
		{3, false},
		{32, false},
		{-1, false},
	}
	for _, c := range cases {
		if got := ValidMagnifier(c.m); got != c.want {
			t.Errorf("ValidMagnifier(%g) = %v, expected %v", c.m, got, c.want)
		}
	}

	if m := newEngine(t, Options{Magnifier: 3}).Magnifier(); m != 1 {
		t.Fatalf("engine accepted magnifier 3, got %g", m)
	}
}

func TestZoomToolButtons(t *testing.T) {
	e := newEngine(t, Options{Tool: ToolZoom})
	_ = e.NewDocument(2, 2)
	e.Press(50, 50, ButtonPrimary)
	if e.Magnifier() != 2 {
		t.Fatalf("primary press should zoom in, got %v", e.Magnifier())
	}
	e.Press(50, 50, ButtonSecondary)
	e.Press(50, 50, ButtonSecondary)
	if e.Magnifier() != 0.5 {
		t.Fatalf("secondary press should zoom out, got %v", e.Magnifier())
	}
	e.Press(5, 5, ButtonPrimary)
	if e.Magnifier() != 0.5 {
		t.Fatalf("press on the pad should be ignored")
	}
}

func TestCellMapping(t *testing.T) {
	e := newEngine(t, Options{})
	_ = e.NewDocument(4, 3)
	cases := []struct {
		zoom     int
		x, y     int
		cx, cy   int
		contains bool
	}{
		{0, 40, 40, 0, 0, true},
		{0, 103, 103, 0, 0, true},
		{0, 104, 40, 1, 0, true},
		{0, 39, 40, -1, 0, false},
		{0, 40 + 256, 40, 4, 0, false},
		{1, 40 + 128, 40 + 255, 1, 1, true},
		{1, 40 + 511, 40 + 383, 3, 2, true},
	}
	for _, c := range cases {
		for e.Magnifier() < float64(int(1)<<c.zoom) {
			e.ZoomIn()
		}
		cx, cy := e.CellAt(c.x, c.y)
		if cx != c.cx || cy != c.cy {
			t.Fatalf("CellAt(%d,%d) at %vx = (%d,%d), expected (%d,%d)", c.x, c.y, e.Magnifier(), cx, cy, c.cx, c.cy)
		}
		if e.Contains(c.x, c.y) != c.contains {
			t.Fatalf("Contains(%d,%d) = %v", c.x, c.y, !c.contains)
		}
	}
}

func TestCursorAnchorAndTopRow(t *testing.T) {
	e := newEngine(t, Options{})
	_ = e.NewDocument(4, 4)
	if e.MoveCursor(50, 50) {
		t.Fatalf("cursor should not track without a brush")
	}
	e.SelectBrush(quadBrush(t))
	if !e.MoveCursor(40+64+10, 40+2*64+10) {
		t.Fatalf("cursor should track over the document")
	}
	cell, anchor, ok := e.Cursor()
	if !ok || cell != image.Pt(1, 2) || anchor != image.Pt(40+64, 40+3*64) {
		t.Fatalf("cell %v anchor %v ok %v", cell, anchor, ok)
	}
	if got := e.TopRow(cell.Y); got != 1 {
		t.Fatalf("TopRow(2) for a 2-cell brush = %d", got)
	}
	origin, ok := e.BrushOrigin()
	if !ok || origin != image.Pt(40+64, 40+64) {
		t.Fatalf("brush origin %v", origin)
	}

	// Pressing the brush tool stamps the brush so it ends on the clicked row.
	e.Press(40+64+10, 40+2*64+10, ButtonPrimary)
	beh := e.Document().Behavior
	if raster.ARGB(beh, 1, 1) != behavior.Wall.ARGB() || raster.ARGB(beh, 2, 2) != behavior.Indoor.ARGB() {
		t.Fatalf("brush not stamped above the anchor")
	}
}

func TestDragThrottling(t *testing.T) {
	e := newEngine(t, Options{})
	_ = e.NewDocument(10, 10)
	e.SelectBrush(solidBrush(t, 1, 1, 0xFF0000FF, 0, behavior.Wall.ARGB()))
	if err := e.SetDrag(130, 64); err != nil {
		t.Fatalf("SetDrag: %v", err)
	}
	if dx, dy := e.DragDistance(); dx != 128 || dy != 64 {
		t.Fatalf("drag snapped to %dx%d", dx, dy)
	}

	var anchors []image.Point
	e.Subscribe(func(ev Event) {
		if ev.Kind == EventPaint {
			_, a, _ := ev.Engine.Cursor()
			anchors = append(anchors, a)
		}
	})

	e.Press(41, 41, ButtonPrimary)
	for x := 41; x < 680; x += 10 {
		e.Drag(x, 41, ButtonPrimary)
	}
	e.Release(ButtonPrimary)

	if len(anchors) != 5 {
		t.Fatalf("expected 5 stamps, got %d at %v", len(anchors), anchors)
	}
	dragX, dragY := e.DragDistance()
	for i := 1; i < len(anchors); i++ {
		dx := abs(anchors[i].X - anchors[i-1].X)
		dy := abs(anchors[i].Y - anchors[i-1].Y)
		if dx < dragX && dy < dragY {
			t.Fatalf("stamps %v and %v closer than %dx%d", anchors[i-1], anchors[i], dragX, dragY)
		}
	}

	// Vertical motion uses the smaller Y threshold.
	anchors = nil
	e.Press(41, 41, ButtonPrimary)
	for y := 41; y < 41+64*3; y += 8 {
		e.Drag(41, y, ButtonPrimary)
	}
	if len(anchors) != 3 {
		t.Fatalf("expected a stamp per row, got %d", len(anchors))
	}
}

func TestDragScalesWithMagnifier(t *testing.T) {
	e := newEngine(t, Options{})
	_ = e.NewDocument(10, 2)
	e.SelectBrush(solidBrush(t, 1, 1, 0xFF0000FF, 0, behavior.Wall.ARGB()))
	e.ZoomOut() // cells are 32px, threshold 64*0.5 = 32px

	stamps := 0
	e.Subscribe(func(ev Event) {
		if ev.Kind == EventPaint {
			stamps++
		}
	})
	e.Press(41, 41, ButtonPrimary)
	for x := 41; x < 40+320; x += 4 {
		e.Drag(x, 41, ButtonPrimary)
	}
	if stamps != 10 {
		t.Fatalf("expected one stamp per cell at half zoom, got %d", stamps)
	}
}

func TestSetDragRejectsSmallValues(t *testing.T) {
	e := newEngine(t, Options{})
	if err := e.SetDrag(63, 64); !errors.Is(err, ErrDrag) {
		t.Fatalf("expected ErrDrag, got %v", err)
	}
	if dx, dy := e.DragDistance(); dx != 64 || dy != 64 {
		t.Fatalf("rejected drag changed settings to %dx%d", dx, dy)
	}
}

func TestNewDocumentKeepsPriorOnError(t *testing.T) {
	e := newEngine(t, Options{MaxCellsX: 5, MaxCellsY: 5})
	if err := e.NewDocument(3, 3); err != nil {
		t.Fatal(err)
	}
	prior := e.Document()
	for _, size := range [][2]int{{6, 1}, {0, 2}, {2, 6}} {
		err := e.NewDocument(size[0], size[1])
		var verr *layers.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("NewDocument(%v) expected a validation error, got %v", size, err)
		}
		if e.Document() != prior {
			t.Fatalf("failed NewDocument replaced the document")
		}
	}
}

func TestOpenSaveDocuments(t *testing.T) {
	dir := t.TempDir()
	big, _ := layers.Blank(4, 4)
	bigPath := filepath.Join(dir, "big.lve")
	if err := lve.Save(big, bigPath); err != nil {
		t.Fatal(err)
	}

	e := newEngine(t, Options{MaxCellsX: 3, MaxCellsY: 3})
	if err := e.Save(); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	_ = e.NewDocument(2, 2)
	prior := e.Document()

	var verr *layers.ValidationError
	if err := e.Open(bigPath); !errors.As(err, &verr) {
		t.Fatalf("oversized document should fail validation, got %v", err)
	}
	if err := e.Open(filepath.Join(dir, "missing.lve")); err == nil {
		t.Fatalf("expected an error opening a missing file")
	}
	if e.Document() != prior {
		t.Fatalf("failed open replaced the document")
	}

	if err := e.Save(); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}
	e.SelectBrush(solidBrush(t, 1, 1, 0xFF0000FF, 0, behavior.Outdoor.ARGB()))
	e.PaintAt(1, 0)
	path := filepath.Join(dir, "small.lve")
	if err := e.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if e.Path() != path {
		t.Fatalf("SaveAs should adopt the path, got %q", e.Path())
	}
	if err := e.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	other := newEngine(t, Options{})
	if err := other.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !raster.Equal(other.Document().Behavior, prior.Behavior) {
		t.Fatalf("reopened behavior differs")
	}
}

func TestOpenWarnsAboutMissingForeground(t *testing.T) {
	dir := t.TempDir()
	doc, _ := layers.Blank(2, 2)
	path := filepath.Join(dir, "bare.lve")
	if err := lve.Save(doc, path); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(dir, "foregrounds", "bare.png")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		level log.Level
		want  bool
	}{
		{"warn level", log.WarnLevel, true},
		{"error level", log.ErrorLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.New(&buf)
			logger.SetLevel(tt.level)
			e := newEngine(t, Options{Logger: logger})
			if err := e.Open(path); err != nil {
				t.Fatalf("Open: %v", err)
			}
			if e.Document().HasForeground() {
				t.Fatalf("expected a document without foreground")
			}
			if got := strings.Contains(buf.String(), "foreground raster missing"); got != tt.want {
				t.Fatalf("warning logged = %v, expected %v; log:\n%s", got, tt.want, buf.String())
			}
		})
	}
}

func TestObserversRunInOrder(t *testing.T) {
	e := newEngine(t, Options{})
	var got []string
	e.Subscribe(func(ev Event) { got = append(got, "a:"+ev.Kind.String()) })
	cancel := e.Subscribe(func(ev Event) { got = append(got, "b:"+ev.Kind.String()) })
	e.Subscribe(func(ev Event) { got = append(got, "c:"+ev.Kind.String()) })

	_ = e.SetTool(ToolFill)
	cancel()
	e.ZoomIn()

	expected := []string{"a:tool", "b:tool", "c:tool", "a:zoom", "c:zoom"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("notifications %v", got)
	}
}

func TestDisplayGeometry(t *testing.T) {
	e := newEngine(t, Options{})
	if w, h := e.CanvasSize(); w != 80 || h != 80 {
		t.Fatalf("empty canvas %dx%d", w, h)
	}
	_ = e.NewDocument(3, 2)
	e.ZoomIn()
	if w, h := raster.Size(e.Displayed()); w != 384 || h != 256 {
		t.Fatalf("displayed background %dx%d", w, h)
	}
	if w, h := e.CanvasSize(); w != 384+80 || h != 256+80 {
		t.Fatalf("canvas %dx%d", w, h)
	}

	_ = e.SetActiveLayer(layers.Behavior)
	raster.SetARGB(e.Document().Behavior, 2, 1, behavior.Door.ARGB())
	if e.PaintAt(0, 0) {
		t.Fatalf("painted without a brush")
	}
	e.SelectBrush(solidBrush(t, 1, 1, 0xFF0000FF, 0, behavior.Wall.ARGB()))
	e.PaintAt(0, 0)
	shown := e.Displayed()
	if w, h := raster.Size(shown); w != 384 || h != 256 {
		t.Fatalf("displayed behavior %dx%d", w, h)
	}
	if got := raster.ARGB(shown, 2*128+5, 128+5); got != behavior.Door.ARGB() {
		t.Fatalf("behavior cell not magnified: %#08x", got)
	}
	if got := raster.ARGB(shown, 127, 127); got != behavior.Wall.ARGB() {
		t.Fatalf("painted cell not shown: %#08x", got)
	}
	if w, h := raster.Size(e.DisplayedBrush()); w != 128 || h != 128 {
		t.Fatalf("displayed brush %dx%d", w, h)
	}
}

func TestOverlay(t *testing.T) {
	e := newEngine(t, Options{})
	if o := e.Overlay(); len(o.Lines) != 0 {
		t.Fatalf("overlay without a document")
	}
	_ = e.NewDocument(3, 2)
	o := e.Overlay()
	if len(o.Lines) != 3+4 {
		t.Fatalf("expected 7 grid lines, got %d", len(o.Lines))
	}
	if o.Lines[0] != (Segment{image.Pt(40, 40), image.Pt(232, 40)}) {
		t.Fatalf("first row line %v", o.Lines[0])
	}
	if o.Lines[3] != (Segment{image.Pt(40, 40), image.Pt(40, 168)}) {
		t.Fatalf("first column line %v", o.Lines[3])
	}
	var texts []string
	for _, l := range o.Labels {
		texts = append(texts, l.Text)
	}
	expected := []string{"1", "1", "0", "0", "0", "0", "1", "1", "2", "2"}
	if !reflect.DeepEqual(texts, expected) {
		t.Fatalf("labels %v", texts)
	}
	if o.Labels[0].At != image.Pt(20, 104) || o.Labels[5].At != image.Pt(40, 188) {
		t.Fatalf("label positions %v %v", o.Labels[0].At, o.Labels[5].At)
	}
}

func TestParseTool(t *testing.T) {
	for _, tool := range Tools() {
		got, err := ParseTool(tool.String())
		if err != nil || got != tool {
			t.Fatalf("ParseTool(%q) = %v, %v", tool.String(), got, err)
		}
	}
	if _, err := ParseTool("eraser"); err == nil {
		t.Fatalf("expected an error for an unknown tool")
	}
}

// Package layers holds the three-raster document model shared by brushes and
// open levels: a background and optional foreground painted at 64 pixels per
// cell, plus a behavior raster storing one pixel per cell.
package layers

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/milk9111/leveleditor/raster"
)

const (
	// CellResolution is the number of background/foreground pixels per cell side.
	CellResolution = 64
	// IconResolution is the side of the thumbnail icons in pixels.
	IconResolution = 64
	// IconGap separates the three thumbnails of the composed preview.
	IconGap = 5
)

// ErrMissingLayer is returned when a required raster is nil or empty.
var ErrMissingLayer = errors.New("layers: background and behavior are required")

// Layer identifies one of the three rasters.
type Layer int

const (
	Background Layer = iota
	Foreground
	Behavior
)

func (l Layer) String() string {
	switch l {
	case Background:
		return "Background"
	case Foreground:
		return "Foreground"
	case Behavior:
		return "Behavior"
	default:
		return "Unknown"
	}
}

// ParseLayer maps a case-insensitive layer name to a Layer.
func ParseLayer(s string) (Layer, error) {
	for _, l := range []Layer{Background, Foreground, Behavior} {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return Background, fmt.Errorf("layers: unknown layer %q", s)
}

// Image is a layered raster. Rasters are mutated in place by the painting
// code; the derived metrics and icons are computed once at construction.
type Image struct {
	Background *image.NRGBA
	Foreground *image.NRGBA // may be nil
	Behavior   *image.NRGBA

	PixelWidth  int
	PixelHeight int
	CellWidth   int
	CellHeight  int

	// Icon is a thumbnail of the background.
	Icon *image.NRGBA
	// Preview shows background, foreground and behavior thumbnails side by side.
	Preview *image.NRGBA

	valid bool
}

// New builds a layered image from the given rasters. The rasters are
// converted to NRGBA copies, so callers keep ownership of their inputs.
// Geometry problems do not fail construction; they are logged and reported
// by Valid.
func New(background, foreground, behavior image.Image) (*Image, error) {
	if isEmpty(background) || isEmpty(behavior) {
		return nil, ErrMissingLayer
	}
	bg, err := raster.FromImage(background)
	if err != nil {
		return nil, fmt.Errorf("layers: background: %w", err)
	}
	beh, err := raster.FromImage(behavior)
	if err != nil {
		return nil, fmt.Errorf("layers: behavior: %w", err)
	}
	var fg *image.NRGBA
	if !isEmpty(foreground) {
		if fg, err = raster.FromImage(foreground); err != nil {
			return nil, fmt.Errorf("layers: foreground: %w", err)
		}
	}
	return wrap(bg, fg, beh), nil
}

// wrap adopts the rasters without copying them.
func wrap(bg, fg, beh *image.NRGBA) *Image {
	img := &Image{Background: bg, Foreground: fg, Behavior: beh}
	img.PixelWidth, img.PixelHeight = raster.Size(bg)
	img.CellWidth, img.CellHeight = raster.Size(beh)
	img.Icon = raster.Resize(bg, IconResolution, IconResolution, true)
	img.Preview = composePreview(img)
	img.valid = img.validate(0, 0) == nil
	if !img.valid {
		log.Warn("layered image is not valid",
			"pixels", fmt.Sprintf("%dx%d", img.PixelWidth, img.PixelHeight),
			"cells", fmt.Sprintf("%dx%d", img.CellWidth, img.CellHeight))
	}
	return img
}

// Blank allocates a transparent document of cellsW x cellsH cells.
func Blank(cellsW, cellsH int) (*Image, error) {
	bg, err := raster.New(cellsW*CellResolution, cellsH*CellResolution)
	if err != nil {
		return nil, fmt.Errorf("layers: blank %dx%d: %w", cellsW, cellsH, err)
	}
	fg, _ := raster.New(cellsW*CellResolution, cellsH*CellResolution)
	beh, _ := raster.New(cellsW, cellsH)
	return wrap(bg, fg, beh), nil
}

// Clone returns a deep copy of img.
func (img *Image) Clone() *Image {
	bg, _ := raster.FromImage(img.Background)
	beh, _ := raster.FromImage(img.Behavior)
	var fg *image.NRGBA
	if img.Foreground != nil {
		fg, _ = raster.FromImage(img.Foreground)
	}
	return wrap(bg, fg, beh)
}

// Raster returns the raster backing layer l, which may be nil for Foreground.
func (img *Image) Raster(l Layer) *image.NRGBA {
	switch l {
	case Background:
		return img.Background
	case Foreground:
		return img.Foreground
	case Behavior:
		return img.Behavior
	}
	return nil
}

// HasForeground reports whether the optional foreground raster is present.
func (img *Image) HasForeground() bool { return img.Foreground != nil }

func isEmpty(img image.Image) bool {
	if img == nil {
		return true
	}
	if n, ok := img.(*image.NRGBA); ok && n == nil {
		return true
	}
	return img.Bounds().Empty()
}

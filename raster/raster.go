// Package raster wraps image.NRGBA with the handful of pixel operations the
// editor needs: ARGB access, source-over compositing, resampling and PNG I/O.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"
)

// ErrEmpty is returned when a raster would have a zero or negative dimension.
var ErrEmpty = errors.New("raster: empty image")

// New allocates a fully transparent w x h raster.
func New(w, h int) (*image.NRGBA, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmpty, w, h)
	}
	return image.NewNRGBA(image.Rect(0, 0, w, h)), nil
}

// FromImage copies img into a fresh NRGBA whose bounds start at (0,0).
func FromImage(img image.Image) (*image.NRGBA, error) {
	if img == nil {
		return nil, ErrEmpty
	}
	b := img.Bounds()
	dst, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	// Straight copy keeps translucent pixels exact; draw.Src would round-trip
	// them through premultiplied alpha.
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			si := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+4*b.Dx()], src.Pix[si:si+4*b.Dx()])
		}
		return dst, nil
	}
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst, nil
}

// Size returns the width and height of img, or 0,0 for a nil image.
func Size(img *image.NRGBA) (int, int) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// ARGB returns the pixel at (x,y) packed as 0xAARRGGBB. Out of range pixels
// read as fully transparent black.
func ARGB(img *image.NRGBA, x, y int) uint32 {
	p := image.Pt(x, y).Add(img.Rect.Min)
	if !p.In(img.Rect) {
		return 0
	}
	c := img.NRGBAAt(p.X, p.Y)
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// SetARGB stores a packed 0xAARRGGBB value at (x,y).
func SetARGB(img *image.NRGBA, x, y int, argb uint32) {
	p := image.Pt(x, y).Add(img.Rect.Min)
	img.SetNRGBA(p.X, p.Y, NRGBA(argb))
}

// NRGBA unpacks a 0xAARRGGBB value.
func NRGBA(argb uint32) color.NRGBA {
	return color.NRGBA{
		A: uint8(argb >> 24),
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
	}
}

// Fill paints every pixel of img with argb.
func Fill(img *image.NRGBA, argb uint32) {
	draw.Draw(img, img.Bounds(), image.NewUniform(NRGBA(argb)), image.Point{}, draw.Src)
}

// Over composites src onto dst with its top-left corner at `at`, using
// source-over blending. Pixels falling outside dst are clipped.
func Over(dst *image.NRGBA, src image.Image, at image.Point) {
	if dst == nil || src == nil {
		return
	}
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}.Add(dst.Rect.Min)
	draw.Draw(dst, r, src, sb.Min, draw.Over)
}

// Scale returns a resampled copy of src whose size is int(w*factor) by
// int(h*factor), never smaller than 1x1. Smooth selects Catmull-Rom
// filtering; otherwise pixels are replicated.
func Scale(src *image.NRGBA, factor float64, smooth bool) *image.NRGBA {
	if src == nil {
		return nil
	}
	if factor == 1 {
		dst, _ := FromImage(src)
		return dst
	}
	w, h := Size(src)
	return Resize(src, int(float64(w)*factor), int(float64(h)*factor), smooth)
}

// Resize returns src resampled to exactly w x h (clamped to at least 1x1).
func Resize(src *image.NRGBA, w, h int, smooth bool) *image.NRGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if src == nil {
		return dst
	}
	var s draw.Scaler = draw.NearestNeighbor
	if smooth {
		s = draw.CatmullRom
	}
	s.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Equal reports whether a and b have the same size and identical pixels.
func Equal(a, b *image.NRGBA) bool {
	if a == nil || b == nil {
		return a == b
	}
	aw, ah := Size(a)
	bw, bh := Size(b)
	if aw != bw || ah != bh {
		return false
	}
	for y := 0; y < ah; y++ {
		for x := 0; x < aw; x++ {
			if ARGB(a, x, y) != ARGB(b, x, y) {
				return false
			}
		}
	}
	return true
}

// Decode reads any registered image format (PNG, GIF, JPEG) into an NRGBA.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("raster: decode: %w", err)
	}
	return FromImage(img)
}

// Encode writes img as a lossless PNG.
func Encode(w io.Writer, img image.Image) error {
	if img == nil {
		return ErrEmpty
	}
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("raster: encode: %w", err)
	}
	return nil
}

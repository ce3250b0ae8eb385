package layers

import (
	"image"

	"github.com/milk9111/leveleditor/raster"
)

const checkerSquare = 8

// composePreview lays the background, foreground and behavior thumbnails out
// left to right with IconGap pixels between them.
func composePreview(img *Image) *image.NRGBA {
	fg := checkerIcon()
	if img.Foreground != nil {
		fg = raster.Resize(img.Foreground, IconResolution, IconResolution, true)
	}
	icons := []*image.NRGBA{
		img.Icon,
		fg,
		raster.Resize(img.Behavior, IconResolution, IconResolution, false),
	}

	w := len(icons)*IconResolution + (len(icons)-1)*IconGap
	h := 0
	for _, icon := range icons {
		if _, ih := raster.Size(icon); ih > h {
			h = ih
		}
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	x := 0
	for _, icon := range icons {
		iw, ih := raster.Size(icon)
		raster.Over(out, icon, image.Pt(x, (h-ih)/2))
		x += iw + IconGap
	}
	return out
}

// checkerIcon stands in for a missing foreground.
func checkerIcon() *image.NRGBA {
	icon := image.NewNRGBA(image.Rect(0, 0, IconResolution, IconResolution))
	for y := 0; y < IconResolution; y++ {
		for x := 0; x < IconResolution; x++ {
			argb := uint32(0xFFFFFFFF)
			if (x/checkerSquare+y/checkerSquare)%2 == 1 {
				argb = 0xFFCCCCCC
			}
			raster.SetARGB(icon, x, y, argb)
		}
	}
	return icon
}

package layers

import "fmt"

// ValidationError describes the first geometry rule a layered image breaks.
type ValidationError struct {
	Rule   string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("layers: invalid image: %s (%s)", e.Rule, e.Detail)
}

// Valid reports whether the rasters agree with each other: the foreground,
// when present, matches the background, and every cell covers exactly
// CellResolution pixels in both axes.
func (img *Image) Valid() bool { return img.valid }

// ValidWithin is Valid plus a bound on the cell grid: 1 <= cells <= max on
// each axis.
func (img *Image) ValidWithin(maxCellsX, maxCellsY int) bool {
	return img.Validate(maxCellsX, maxCellsY) == nil
}

// Validate returns a *ValidationError for the first broken rule, or nil. A
// non-positive bound disables the cell-count check on that axis.
func (img *Image) Validate(maxCellsX, maxCellsY int) error {
	if err := img.validate(maxCellsX, maxCellsY); err != nil {
		return err
	}
	return nil
}

func (img *Image) validate(maxCellsX, maxCellsY int) *ValidationError {
	if img.Foreground != nil {
		b, f := img.Background.Bounds(), img.Foreground.Bounds()
		if b.Dx() != f.Dx() || b.Dy() != f.Dy() {
			return &ValidationError{
				Rule:   "foreground size",
				Detail: fmt.Sprintf("foreground %dx%d, background %dx%d", f.Dx(), f.Dy(), b.Dx(), b.Dy()),
			}
		}
	}
	if img.CellWidth*CellResolution != img.PixelWidth || img.CellHeight*CellResolution != img.PixelHeight {
		return &ValidationError{
			Rule: "cell resolution",
			Detail: fmt.Sprintf("%dx%d cells do not cover %dx%d pixels",
				img.CellWidth, img.CellHeight, img.PixelWidth, img.PixelHeight),
		}
	}
	if maxCellsX > 0 && (img.CellWidth < 1 || img.CellWidth > maxCellsX) {
		return &ValidationError{
			Rule:   "cell bounds",
			Detail: fmt.Sprintf("width %d outside 1..%d", img.CellWidth, maxCellsX),
		}
	}
	if maxCellsY > 0 && (img.CellHeight < 1 || img.CellHeight > maxCellsY) {
		return &ValidationError{
			Rule:   "cell bounds",
			Detail: fmt.Sprintf("height %d outside 1..%d", img.CellHeight, maxCellsY),
		}
	}
	return nil
}

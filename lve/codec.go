package lve

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/milk9111/leveleditor/layers"
	"github.com/milk9111/leveleditor/raster"
)

// Save writes img as the document at path together with its three rasters.
// Either every file is replaced or, on failure, the previous files are left
// in place.
func Save(img *layers.Image, path string) error {
	if img == nil {
		return ErrNoImage
	}
	if !img.HasForeground() {
		return ErrNoForeground
	}
	if !HasExt(path) {
		return fmt.Errorf("%w: %s", ErrExtension, path)
	}

	dir := filepath.Dir(path)
	h := NewHeader(path, img)

	var header bytes.Buffer
	if _, err := h.WriteTo(&header); err != nil {
		return fmt.Errorf("lve: save %s: %w", path, err)
	}

	tx := &transaction{}
	for _, part := range []struct {
		rel string
		img image.Image
	}{
		{h.Background, img.Background},
		{h.Foreground, img.Foreground},
		{h.Behavior, img.Behavior},
	} {
		var buf bytes.Buffer
		if err := raster.Encode(&buf, part.img); err != nil {
			return fmt.Errorf("lve: save %s: %w", path, err)
		}
		tx.add(filepath.Join(dir, filepath.FromSlash(part.rel)), buf.Bytes())
	}
	// The header goes last so a reader never sees it before its rasters.
	tx.add(path, header.Bytes())

	if err := tx.commit(); err != nil {
		return fmt.Errorf("lve: save %s: %w", path, err)
	}
	return nil
}

// Load reads the document at path. A missing foreground raster is tolerated
// and yields an image without a foreground; callers check HasForeground.
func Load(path string) (*layers.Image, error) {
	if !HasExt(path) {
		return nil, fmt.Errorf("%w: %s", ErrExtension, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lve: load %s: %w", path, err)
	}
	h, err := ReadHeader(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("lve: load %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	bg, err := readRaster(dir, h.Background)
	if err != nil {
		return nil, fmt.Errorf("lve: load %s: background: %w", path, err)
	}
	beh, err := readRaster(dir, h.Behavior)
	if err != nil {
		return nil, fmt.Errorf("lve: load %s: behavior: %w", path, err)
	}
	var fg image.Image
	switch img, err := readRaster(dir, h.Foreground); {
	case err == nil:
		fg = img
	case errors.Is(err, fs.ErrNotExist):
		// loads without a foreground
	default:
		return nil, fmt.Errorf("lve: load %s: foreground: %w", path, err)
	}

	img, err := layers.New(bg, fg, beh)
	if err != nil {
		return nil, fmt.Errorf("lve: load %s: %w", path, err)
	}
	return img, nil
}

func readRaster(dir, rel string) (*image.NRGBA, error) {
	f, err := os.Open(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return raster.Decode(f)
}

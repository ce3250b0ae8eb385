// Package brushes loads the brush catalog: named layered images built from
// background/foreground/behavior asset triples and grouped into a dotted
// namespace tree for display.
package brushes

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/milk9111/leveleditor/assets"
	"github.com/milk9111/leveleditor/raster"
)

// Source resolves logical resource names to bytes. Names always use forward
// slashes.
type Source interface {
	Read(name string) ([]byte, error)
	ReadImage(name string) (image.Image, error)
}

// FSSource reads resources from an fs.FS such as the embedded asset tree.
type FSSource struct {
	FS fs.FS
}

func (s FSSource) Read(name string) ([]byte, error) {
	return fs.ReadFile(s.FS, cleanName(name))
}

func (s FSSource) ReadImage(name string) (image.Image, error) {
	return readImage(s, name)
}

// DirSource reads loose files below Root.
type DirSource struct {
	Root string
}

func (s DirSource) Read(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(cleanName(name))))
}

func (s DirSource) ReadImage(name string) (image.Image, error) {
	return readImage(s, name)
}

// Overlay tries each source in order and returns the first hit, so loose
// files on disk can shadow packaged ones.
type Overlay []Source

func (o Overlay) Read(name string) ([]byte, error) {
	var firstErr error
	for _, s := range o {
		data, err := s.Read(name)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("brushes: %s: %w", name, fs.ErrNotExist)
	}
	return nil, firstErr
}

func (o Overlay) ReadImage(name string) (image.Image, error) {
	return readImage(o, name)
}

// Embedded returns the packaged brush assets.
func Embedded() Source {
	return FSSource{FS: assets.FS()}
}

func readImage(s Source, name string) (image.Image, error) {
	data, err := s.Read(name)
	if err != nil {
		return nil, err
	}
	img, err := raster.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("brushes: %s: %w", name, err)
	}
	return img, nil
}

func cleanName(name string) string {
	return path.Clean(strings.TrimPrefix(assets.CleanPath(name), "/"))
}

var rasterExts = map[string]bool{
	"png":  true,
	"gif":  true,
	"jpg":  true,
	"jpeg": true,
	"bmp":  true,
}

// IsRaster reports whether name ends in a recognised raster extension.
func IsRaster(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	return rasterExts[ext]
}

// Key normalises an asset name into a catalog key: the lower-cased name
// without its raster extension.
func Key(name string) string {
	name = strings.ToLower(path.Base(filepath.ToSlash(name)))
	if IsRaster(name) {
		name = strings.TrimSuffix(name, path.Ext(name))
	}
	return name
}

// ErrNoBrushDirs means a brush root lacks its backgrounds or behaviors directory.
var ErrNoBrushDirs = errors.New("brushes: backgrounds and behaviors directories are required")

const (
	backgroundsDir = "backgrounds"
	foregroundsDir = "foregrounds"
	behaviorsDir   = "behaviors"
)

// Discover lists the brush triples stored below root in fsys. Every raster
// in backgrounds/ becomes an asset; the behavior raster of the same name is
// expected and a foreground raster of the same name is optional. Missing
// behaviors are left for Load to report.
func Discover(fsys fs.FS, root string) ([]Asset, error) {
	bgs, err := fs.ReadDir(fsys, path.Join(root, backgroundsDir))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoBrushDirs, err)
	}
	if _, err := fs.Stat(fsys, path.Join(root, behaviorsDir)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoBrushDirs, err)
	}

	var out []Asset
	for _, entry := range bgs {
		if entry.IsDir() || !IsRaster(entry.Name()) {
			continue
		}
		name := entry.Name()
		a := Asset{
			Name:       name,
			Background: path.Join(root, backgroundsDir, name),
			Behavior:   path.Join(root, behaviorsDir, name),
		}
		fg := path.Join(root, foregroundsDir, name)
		if _, err := fs.Stat(fsys, fg); err == nil {
			a.Foreground = fg
		}
		out = append(out, a)
	}
	sortAssets(out)
	return out, nil
}

package brushes

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/milk9111/leveleditor/layers"
)

// Asset names the three resources making up one brush. Foreground may be
// empty.
type Asset struct {
	Name       string
	Background string
	Foreground string
	Behavior   string
}

// Warning records a brush that could not be loaded. Warnings never stop the
// rest of the catalog from loading.
type Warning struct {
	Name string
	Err  error
}

func (w Warning) Error() string {
	return fmt.Sprintf("brushes: skipped %s: %v", w.Name, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

var (
	ErrDuplicate = errors.New("duplicate brush key")
	ErrInvalid   = errors.New("brush rasters do not line up")
	ErrNamespace = errors.New("brush name clashes with the namespace tree")
)

// Catalog maps normalised brush keys to their layered images.
type Catalog struct {
	brushes  map[string]*layers.Image
	names    []string
	tree     *Node
	warnings []Warning
}

// Load builds a catalog from assets read through src. Assets are processed
// in name order; anything that fails is logged and skipped.
func Load(src Source, list []Asset, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	sorted := append([]Asset(nil), list...)
	sortAssets(sorted)

	c := &Catalog{
		brushes: make(map[string]*layers.Image, len(sorted)),
		tree:    newNode(),
	}
	for _, a := range sorted {
		key := Key(a.Name)
		if _, dup := c.brushes[key]; dup {
			c.warn(logger, a.Name, fmt.Errorf("%w %q", ErrDuplicate, key))
			continue
		}
		img, err := loadAsset(src, a)
		if err != nil {
			c.warn(logger, a.Name, err)
			continue
		}
		if err := c.tree.insert(a.Name, key); err != nil {
			c.warn(logger, a.Name, err)
			continue
		}
		c.brushes[key] = img
		c.names = append(c.names, key)
	}
	sort.Strings(c.names)
	logger.Debug("brush catalog loaded", "brushes", len(c.names), "skipped", len(c.warnings))
	return c
}

func (c *Catalog) warn(logger *log.Logger, name string, err error) {
	logger.Warn("skipping brush", "name", name, "error", err)
	c.warnings = append(c.warnings, Warning{Name: name, Err: err})
}

func loadAsset(src Source, a Asset) (*layers.Image, error) {
	bg, err := src.ReadImage(a.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	beh, err := src.ReadImage(a.Behavior)
	if err != nil {
		return nil, fmt.Errorf("behavior: %w", err)
	}
	var fg image.Image
	if a.Foreground != "" {
		if fg, err = src.ReadImage(a.Foreground); err != nil {
			return nil, fmt.Errorf("foreground: %w", err)
		}
	}
	img, err := layers.New(bg, fg, beh)
	if err != nil {
		return nil, err
	}
	if err := img.Validate(0, 0); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return img, nil
}

func sortAssets(list []Asset) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
}

// Get returns the brush stored under key, which is matched after
// normalisation.
func (c *Catalog) Get(key string) (*layers.Image, bool) {
	img, ok := c.brushes[Key(key)]
	return img, ok
}

// Names returns the catalog keys in sorted order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *Catalog) Len() int { return len(c.names) }

// Tree returns the namespace tree built from the asset names.
func (c *Catalog) Tree() *Node { return c.tree }

func (c *Catalog) Warnings() []Warning {
	return append([]Warning(nil), c.warnings...)
}

// Package behavior maps the per-cell colors of a behavior raster to their
// semantic labels.
package behavior

import (
	"fmt"
	"image"
	"strings"

	"github.com/milk9111/leveleditor/raster"
)

// Color is one of the canonical behavior colors.
type Color int

const (
	Wall Color = iota
	Interact
	Door
	Indoor
	Outdoor
	Water
)

type colorInfo struct {
	label string
	argb  uint32
}

var table = [...]colorInfo{
	Wall:     {"Wall", 0xFF000000},
	Interact: {"Interact", 0xFFFFFF00},
	Door:     {"Door", 0xFFFF0000},
	Indoor:   {"Indoor", 0xFFFFFFFF},
	Outdoor:  {"Outdoor", 0xFF28A745},
	Water:    {"Water", 0xFF0000FF},
}

// Colors lists every canonical color in report order.
func Colors() []Color {
	return []Color{Wall, Interact, Door, Indoor, Outdoor, Water}
}

func (c Color) valid() bool { return c >= 0 && int(c) < len(table) }

func (c Color) Label() string {
	if !c.valid() {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return table[c].label
}

// ARGB is the opaque packed value stored in behavior rasters.
func (c Color) ARGB() uint32 {
	if !c.valid() {
		return 0
	}
	return table[c].argb
}

// HTML returns the lower-case RGB hex form, e.g. 0x28a745.
func (c Color) HTML() string {
	return fmt.Sprintf("0x%06x", c.ARGB()&0xFFFFFF)
}

// Int returns the ARGB value as a signed 32-bit integer.
func (c Color) Int() int32 { return int32(c.ARGB()) }

func (c Color) String() string { return c.Label() }

// Lookup finds a color by its case-insensitive label.
func Lookup(label string) (Color, bool) {
	for _, c := range Colors() {
		if strings.EqualFold(c.Label(), label) {
			return c, true
		}
	}
	return 0, false
}

// Match returns the canonical color with the given packed value.
func Match(argb uint32) (Color, bool) {
	for _, c := range Colors() {
		if c.ARGB() == argb {
			return c, true
		}
	}
	return 0, false
}

// Cell is a report coordinate. Row 0 is the bottom row of the raster.
type Cell struct {
	Col, Row int
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Col, c.Row) }

// Report lists, per color, the cells holding that color in raster scan order.
type Report map[Color][]Cell

// Classify scans beh row by row from the top and records every pixel that
// matches a canonical color. Rows are flipped so that the reported row counts
// upward from the bottom. Pixels matching no color are ignored.
func Classify(beh *image.NRGBA) Report {
	report := make(Report, len(table))
	if beh == nil {
		return report
	}
	w, h := raster.Size(beh)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if color, ok := Match(raster.ARGB(beh, c, r)); ok {
				report[color] = append(report[color], Cell{Col: c, Row: h - r - 1})
			}
		}
	}
	return report
}

// Lines renders one "Label: (c,r) (c,r) " line per color in report order.
// Every coordinate is followed by a single space.
func (r Report) Lines() []string {
	lines := make([]string, 0, len(table))
	for _, c := range Colors() {
		var b strings.Builder
		b.WriteString(c.Label())
		b.WriteString(": ")
		for _, cell := range r[c] {
			b.WriteString(cell.String())
			b.WriteByte(' ')
		}
		lines = append(lines, b.String())
	}
	return lines
}

// Count returns the number of classified cells.
func (r Report) Count() int {
	n := 0
	for _, cells := range r {
		n += len(cells)
	}
	return n
}

// Legend renders the label, HTML and integer value of every color as a
// fixed-width table.
func Legend() string {
	var b strings.Builder
	rule := strings.Repeat("-", 40)
	b.WriteString("Color Map:\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "  %-10s| %-9s| %s\n", "LABEL", "HTML", "Integer")
	b.WriteString(rule + "\n")
	for _, c := range Colors() {
		fmt.Fprintf(&b, "  %-10s| %-9s| %d\n", c.Label()+":", c.HTML(), c.Int())
	}
	return b.String()
}

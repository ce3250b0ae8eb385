// Package lve reads and writes level documents: a short text header naming
// three PNG rasters stored next to it, followed by a behavior report.
package lve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/milk9111/leveleditor/behavior"
	"github.com/milk9111/leveleditor/layers"
)

// Ext is the document file extension.
const Ext = ".lve"

const infoMarker = "Info:"

var (
	ErrExtension    = errors.New("lve: file is not .lve format")
	ErrShortHeader  = errors.New("lve: header has fewer than 4 lines")
	ErrNoImage      = errors.New("lve: no image to save")
	ErrNoForeground = errors.New("lve: image has no foreground")
)

// Header is the text part of a document. Raster paths are slash separated and
// relative to the document's directory.
type Header struct {
	Name       string
	Background string
	Foreground string
	Behavior   string
	// Info holds the behavior report lines. They are informational only and
	// never needed to load a document.
	Info []string
}

// NewHeader builds the header for saving img as path.
func NewHeader(path string, img *layers.Image) Header {
	name := filepath.Base(path)
	stem := Stem(path)
	h := Header{
		Name:       name,
		Background: "backgrounds/" + stem + ".png",
		Foreground: "foregrounds/" + stem + ".png",
		Behavior:   "behaviors/" + stem + ".png",
	}
	if img != nil {
		h.Info = behavior.Classify(img.Behavior).Lines()
	}
	return h
}

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// HasExt reports whether path ends in .lve, ignoring case.
func HasExt(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Ext)
}

// WriteTo writes the header lines, the Info marker and the report lines, each
// terminated by a newline.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	lines := append([]string{h.Name, h.Background, h.Foreground, h.Behavior, infoMarker}, h.Info...)
	for _, line := range lines {
		m, err := bw.WriteString(line + "\n")
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ReadHeader parses a document header. Only the first four lines are
// required.
func ReadHeader(r io.Reader) (Header, error) {
	sc := bufio.NewScanner(r)
	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return Header{}, fmt.Errorf("lve: read header: %w", err)
	}
	if len(lines) < 4 {
		return Header{}, fmt.Errorf("%w (got %d)", ErrShortHeader, len(lines))
	}
	h := Header{
		Name:       lines[0],
		Background: lines[1],
		Foreground: lines[2],
		Behavior:   lines[3],
	}
	if len(lines) > 4 && lines[4] == infoMarker {
		h.Info = lines[5:]
	}
	return h, nil
}

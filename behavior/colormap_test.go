package behavior

import (
	"image"
	"reflect"
	"strings"
	"testing"

	"github.com/milk9111/leveleditor/raster"
)

func TestCanonicalValues(t *testing.T) {
	cases := []struct {
		color Color
		label string
		html  string
		value int32
	}{
		{Wall, "Wall", "0x000000", -16777216},
		{Interact, "Interact", "0xffff00", -256},
		{Door, "Door", "0xff0000", -65536},
		{Indoor, "Indoor", "0xffffff", -1},
		{Outdoor, "Outdoor", "0x28a745", -14112955},
		{Water, "Water", "0x0000ff", -16776961},
	}
	for _, c := range cases {
		t.Run(c.label, func(t *testing.T) {
			if c.color.Label() != c.label {
				t.Fatalf("label %q", c.color.Label())
			}
			if c.color.HTML() != c.html {
				t.Fatalf("html %q, expected %q", c.color.HTML(), c.html)
			}
			if c.color.Int() != c.value {
				t.Fatalf("int %d, expected %d", c.color.Int(), c.value)
			}
			if got, ok := Lookup(strings.ToUpper(c.label)); !ok || got != c.color {
				t.Fatalf("Lookup(%q) = %v, %v", c.label, got, ok)
			}
		})
	}
	if _, ok := Lookup("lava"); ok {
		t.Fatalf("unknown label should not resolve")
	}
}

func TestClassifyFlipsRows(t *testing.T) {
	// 3x2 raster:
	//   row 0: Wall    Water   (unmatched)
	//   row 1: Wall    Outdoor Door
	beh := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	raster.SetARGB(beh, 0, 0, Wall.ARGB())
	raster.SetARGB(beh, 1, 0, Water.ARGB())
	raster.SetARGB(beh, 2, 0, 0xFF123456)
	raster.SetARGB(beh, 0, 1, Wall.ARGB())
	raster.SetARGB(beh, 1, 1, Outdoor.ARGB())
	raster.SetARGB(beh, 2, 1, Door.ARGB())

	report := Classify(beh)
	expected := Report{
		Wall:    {{0, 1}, {0, 0}},
		Water:   {{1, 1}},
		Outdoor: {{1, 0}},
		Door:    {{2, 0}},
	}
	if !reflect.DeepEqual(report, expected) {
		t.Fatalf("unexpected report %v", report)
	}
	if report.Count() != 5 {
		t.Fatalf("unmatched pixel should be omitted, counted %d", report.Count())
	}
}

func TestClassifyPartitionsCanonicalRaster(t *testing.T) {
	colors := Colors()
	beh := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			raster.SetARGB(beh, x, y, colors[(x+y*4)%len(colors)].ARGB())
		}
	}
	report := Classify(beh)
	if report.Count() != 12 {
		t.Fatalf("expected every cell classified once, got %d", report.Count())
	}
	seen := map[Cell]Color{}
	for color, cells := range report {
		for _, cell := range cells {
			if prev, dup := seen[cell]; dup {
				t.Fatalf("cell %v classified as %v and %v", cell, prev, color)
			}
			seen[cell] = color
			src := colors[(cell.Col+(3-cell.Row-1)*4)%len(colors)]
			if src != color {
				t.Fatalf("cell %v reported as %v, source holds %v", cell, color, src)
			}
		}
	}
}

func TestReportLines(t *testing.T) {
	beh := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	raster.SetARGB(beh, 0, 1, Wall.ARGB())
	raster.SetARGB(beh, 1, 1, Wall.ARGB())
	raster.SetARGB(beh, 1, 0, Interact.ARGB())

	expected := []string{
		"Wall: (0,0) (1,0) ",
		"Interact: (1,1) ",
		"Door: ",
		"Indoor: ",
		"Outdoor: ",
		"Water: ",
	}
	if got := Classify(beh).Lines(); !reflect.DeepEqual(got, expected) {
		t.Fatalf("unexpected lines %q", got)
	}
}

func TestLegendListsEveryColor(t *testing.T) {
	legend := Legend()
	for _, c := range Colors() {
		if !strings.Contains(legend, c.HTML()) || !strings.Contains(legend, c.Label()+":") {
			t.Fatalf("legend missing %v:\n%s", c, legend)
		}
	}
	if !strings.Contains(legend, "-14112955") {
		t.Fatalf("legend missing integer values:\n%s", legend)
	}
}

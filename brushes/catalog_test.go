package brushes

import (
	"bytes"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"
	"github.com/milk9111/leveleditor/raster"
)

func pngBytes(t *testing.T, w, h int, argb uint32) []byte {
	t.Helper()
	img, err := raster.New(w, h)
	if err != nil {
		t.Fatalf("raster.New: %v", err)
	}
	raster.Fill(img, argb)
	var buf bytes.Buffer
	if err := raster.Encode(&buf, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.Bytes()
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func brushFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"b/backgrounds/ground.grass.png":   {Data: pngBytes(t, 64, 64, 0xFF00FF00)},
		"b/behaviors/ground.grass.png":     {Data: pngBytes(t, 1, 1, 0xFF28A745)},
		"b/backgrounds/Building.House.png": {Data: pngBytes(t, 128, 128, 0xFF888888)},
		"b/foregrounds/Building.House.png": {Data: pngBytes(t, 128, 128, 0x00000000)},
		"b/behaviors/Building.House.png":   {Data: pngBytes(t, 2, 2, 0xFF000000)},
		"b/backgrounds/broken.png":         {Data: pngBytes(t, 100, 64, 0xFF888888)},
		"b/behaviors/broken.png":           {Data: pngBytes(t, 1, 1, 0xFF000000)},
		"b/backgrounds/orphan.png":         {Data: pngBytes(t, 64, 64, 0xFF888888)},
		"b/backgrounds/garbage.png":        {Data: []byte("not a png")},
		"b/behaviors/garbage.png":          {Data: pngBytes(t, 1, 1, 0xFF000000)},
		"b/backgrounds/readme.txt":         {Data: []byte("ignored")},
	}
}

func TestDiscoverPairsTriples(t *testing.T) {
	fsys := brushFS(t)
	list, err := Discover(fsys, "b")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.Name)
	}
	expected := []string{"Building.House.png", "broken.png", "garbage.png", "ground.grass.png", "orphan.png"}
	if !reflect.DeepEqual(names, expected) {
		t.Fatalf("unexpected assets %v", names)
	}
	if list[0].Foreground != "b/foregrounds/Building.House.png" {
		t.Fatalf("foreground not paired: %+v", list[0])
	}
	if list[3].Foreground != "" {
		t.Fatalf("grass has no foreground: %+v", list[3])
	}

	if _, err := Discover(fstest.MapFS{}, "b"); !errors.Is(err, ErrNoBrushDirs) {
		t.Fatalf("expected ErrNoBrushDirs, got %v", err)
	}
}

func TestLoadSkipsBadTriples(t *testing.T) {
	fsys := brushFS(t)
	list, err := Discover(fsys, "b")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	// Same key after case folding; the upper-case name sorts first and wins.
	list = append(list, Asset{
		Name:       "GROUND.GRASS.png",
		Background: "b/backgrounds/ground.grass.png",
		Behavior:   "b/behaviors/ground.grass.png",
	})

	cat := Load(FSSource{FS: fsys}, list, quietLogger())
	if got := cat.Names(); !reflect.DeepEqual(got, []string{"building.house", "ground.grass"}) {
		t.Fatalf("unexpected catalog names %v", got)
	}
	if cat.Len() != 2 {
		t.Fatalf("expected 2 brushes, got %d", cat.Len())
	}

	skipped := map[string]error{}
	for _, w := range cat.Warnings() {
		skipped[w.Name] = w
	}
	for _, name := range []string{"broken.png", "garbage.png", "orphan.png", "ground.grass.png"} {
		if _, ok := skipped[name]; !ok {
			t.Fatalf("expected a warning for %s, got %v", name, cat.Warnings())
		}
	}
	if !errors.Is(skipped["broken.png"], ErrInvalid) {
		t.Fatalf("broken.png should be reported invalid: %v", skipped["broken.png"])
	}
	if !errors.Is(skipped["ground.grass.png"], ErrDuplicate) {
		t.Fatalf("duplicate key should be reported: %v", skipped["ground.grass.png"])
	}

	house, ok := cat.Get("Building.House.png")
	if !ok {
		t.Fatalf("Get should normalise the key")
	}
	if house.CellWidth != 2 || house.CellHeight != 2 || !house.HasForeground() {
		t.Fatalf("unexpected house brush %dx%d fg=%v", house.CellWidth, house.CellHeight, house.HasForeground())
	}
	grass, _ := cat.Get("ground.grass")
	if grass.HasForeground() {
		t.Fatalf("grass should not have a foreground")
	}
}

func TestLoadIsOrderIndependent(t *testing.T) {
	fsys := brushFS(t)
	list, _ := Discover(fsys, "b")
	reversed := make([]Asset, len(list))
	for i, a := range list {
		reversed[len(list)-1-i] = a
	}
	a := Load(FSSource{FS: fsys}, list, quietLogger())
	b := Load(FSSource{FS: fsys}, reversed, quietLogger())
	if !reflect.DeepEqual(a.Names(), b.Names()) {
		t.Fatalf("names depend on input order: %v vs %v", a.Names(), b.Names())
	}
	if !reflect.DeepEqual(a.Tree().Leaves(), b.Tree().Leaves()) {
		t.Fatalf("tree depends on input order")
	}
}

func TestEmbeddedRegistryLoads(t *testing.T) {
	cat := Load(Embedded(), Registry, quietLogger())
	if len(cat.Warnings()) != 0 {
		t.Fatalf("packaged brushes should load cleanly: %v", cat.Warnings())
	}
	if cat.Len() != len(Registry) {
		t.Fatalf("expected %d brushes, got %d", len(Registry), cat.Len())
	}
	for i := 1; i < len(Registry); i++ {
		if Registry[i-1].Name >= Registry[i].Name {
			t.Fatalf("registry not sorted at %d", i)
		}
	}
}

func TestOverlayPrefersFirstSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "brushes", "behaviors"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "brushes", "behaviors", "ground.grass.png"), pngBytes(t, 1, 1, 0xFF0000FF), 0o644); err != nil {
		t.Fatal(err)
	}
	src := Overlay{DirSource{Root: dir}, Embedded()}

	img, err := src.ReadImage("brushes/behaviors/ground.grass.png")
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if got := raster.ARGB(img.(*image.NRGBA), 0, 0); got != 0xFF0000FF {
		t.Fatalf("disk file should shadow the packaged one, got %#08x", got)
	}
	if _, err := src.Read("brushes/backgrounds/ground.grass.png"); err != nil {
		t.Fatalf("packaged fallback failed: %v", err)
	}
	if _, err := src.Read("brushes/missing.png"); err == nil {
		t.Fatalf("expected an error for a missing resource")
	}
}

func TestKey(t *testing.T) {
	cases := map[string]string{
		"Ground.Grass.PNG":          "ground.grass",
		"brushes/x/props.chest.gif": "props.chest",
		"notes.txt":                 "notes.txt",
	}
	for in, want := range cases {
		if got := Key(in); got != want {
			t.Fatalf("Key(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestLoadSkipsNamespaceClash(t *testing.T) {
	fsys := fstest.MapFS{
		"bg.png":  {Data: pngBytes(t, 64, 64, 0xFF888888)},
		"beh.png": {Data: pngBytes(t, 1, 1, 0xFF000000)},
	}
	list := []Asset{
		{Name: "house", Background: "bg.png", Behavior: "beh.png"},
		{Name: "house.roof.png", Background: "bg.png", Behavior: "beh.png"},
	}

	cat := Load(FSSource{FS: fsys}, list, quietLogger())
	if got := cat.Names(); !reflect.DeepEqual(got, []string{"house"}) {
		t.Fatalf("unexpected catalog names %v", got)
	}
	if _, ok := cat.Get("house.roof"); ok {
		t.Fatalf("clashing brush should not be loaded")
	}
	warnings := cat.Warnings()
	if len(warnings) != 1 || warnings[0].Name != "house.roof.png" || !errors.Is(warnings[0], ErrNamespace) {
		t.Fatalf("expected one namespace warning, got %v", warnings)
	}
	if got := cat.Tree().Leaves(); !reflect.DeepEqual(got, []string{"house"}) {
		t.Fatalf("unexpected tree leaves %v", got)
	}
}

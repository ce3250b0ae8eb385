package brushes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/leveleditor/raster"
)

func writeTree(t *testing.T, root string, files map[string][]byte) {
	t.Helper()
	for name, data := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadDirsShadowsPackaged(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string][]byte{
		"backgrounds/ground.grass.png": pngBytes(t, 64, 64, 0xFF0000AA),
		"behaviors/ground.grass.png":   pngBytes(t, 1, 1, 0xFF0000FF),
		"backgrounds/custom.rock.png":  pngBytes(t, 64, 64, 0xFF555555),
		"behaviors/custom.rock.png":    pngBytes(t, 1, 1, 0xFF000000),
	})
	missing := filepath.Join(t.TempDir(), "nope")

	c := LoadDirs([]string{dir, missing}, quietLogger())
	if len(c.Warnings()) != 0 {
		t.Fatalf("unexpected warnings %v", c.Warnings())
	}
	if c.Len() != len(Registry)+1 {
		t.Fatalf("Len() = %d, want %d", c.Len(), len(Registry)+1)
	}

	grass, ok := c.Get("ground.grass")
	if !ok {
		t.Fatal("ground.grass missing")
	}
	if got := raster.ARGB(grass.Behavior, 0, 0); got != 0xFF0000FF {
		t.Fatalf("ground.grass not shadowed, behavior %#08x", got)
	}
	if _, ok := c.Get("custom.rock"); !ok {
		t.Fatal("custom.rock missing")
	}
	if _, ok := c.Tree().Child("custom"); !ok {
		t.Fatal("custom namespace missing from tree")
	}
}

func TestLoadMountsDuplicatesWithinMount(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string][]byte{
		"backgrounds/a.png": pngBytes(t, 64, 64, 0xFF111111),
		"behaviors/a.png":   pngBytes(t, 1, 1, 0xFF000000),
		"backgrounds/A.gif": pngBytes(t, 64, 64, 0xFF222222),
		"behaviors/A.gif":   pngBytes(t, 1, 1, 0xFF000000),
	})
	m, err := DirMount(dir)
	if err != nil {
		t.Fatalf("DirMount: %v", err)
	}
	c := LoadMounts([]Mount{m}, quietLogger())
	if c.Len() != 1 || len(c.Warnings()) != 1 {
		t.Fatalf("Len() = %d, warnings %v", c.Len(), c.Warnings())
	}
}

func TestMountSourceRejectsUnroutedNames(t *testing.T) {
	src := mountSource{Embedded()}
	for _, name := range []string{"brushes/backgrounds/ground.grass.png", "1:x.png", "x:y.png"} {
		if _, err := src.Read(name); err == nil {
			t.Errorf("Read(%q) succeeded", name)
		}
	}
	if _, err := src.Read("0:brushes/backgrounds/ground.grass.png"); err != nil {
		t.Errorf("routed read failed: %v", err)
	}
}

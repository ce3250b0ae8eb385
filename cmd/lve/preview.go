package main

import (
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"github.com/milk9111/leveleditor/layers"
	"github.com/milk9111/leveleditor/lve"
	"github.com/milk9111/leveleditor/raster"
)

var (
	flagPreviewLayer string
	flagPreviewScale float64
)

var previewCmd = &cobra.Command{
	Use:   "preview <file.lve|brush> <out.png>",
	Short: "Write a PNG preview of a level or brush",
	Long: `Write a PNG preview. Without --layer the three 64x64 layer icons are laid
out side by side. With --layer the full raster of that layer is written,
resampled by --scale.

Examples:
  lve preview building.house house.png
  lve preview town.lve town-behavior.png --layer behavior --scale 64`,
	Args: cobra.ExactArgs(2),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&flagPreviewLayer, "layer", "", "Write this layer instead of the icon strip")
	previewCmd.Flags().Float64Var(&flagPreviewScale, "scale", 1, "Scale factor for --layer")
}

func runPreview(cmd *cobra.Command, args []string) error {
	var img *layers.Image
	if lve.HasExt(args[0]) {
		e := newEngine()
		if err := e.Open(args[0]); err != nil {
			return err
		}
		img = e.Document()
	} else {
		b, ok := loadCatalog().Get(args[0])
		if !ok {
			return fmt.Errorf("unknown brush %q (see 'lve brushes')", args[0])
		}
		img = b
	}

	var out image.Image = img.Preview
	if flagPreviewLayer != "" {
		l, err := layers.ParseLayer(flagPreviewLayer)
		if err != nil {
			return err
		}
		src := img.Raster(l)
		if src == nil {
			return fmt.Errorf("%s has no %s layer", args[0], l)
		}
		if flagPreviewScale <= 0 {
			return fmt.Errorf("scale must be positive, got %g", flagPreviewScale)
		}
		out = raster.Scale(src, flagPreviewScale, flagPreviewScale < 1)
	}

	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	if err := raster.Encode(f, out); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	b := out.Bounds()
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", args[1], b.Dx(), b.Dy())
	return nil
}

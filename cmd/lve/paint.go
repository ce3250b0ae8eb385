package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/milk9111/leveleditor/grid"
	"github.com/milk9111/leveleditor/layers"
)

var (
	flagTopLeft bool
	flagOnly    []string
	flagOut     string
)

var paintCmd = &cobra.Command{
	Use:   "paint <file> <brush> <x> <y> [<x> <y>...]",
	Short: "Stamp a brush at one or more cells",
	Long: `Stamp a brush onto a level and save it.

Cells are given as column and row, counted from the top-left of the level.
By default the brush's bottom-left cell lands on the given cell, as when
clicking in the editor. With --top-left the brush's top-left cell does.

Examples:
  lve paint town.lve building.house 3 5
  lve paint town.lve ground.water 0 0 1 0 2 0 --only behavior`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 4 || len(args)%2 != 0 {
			return fmt.Errorf("expected a file, a brush and pairs of cell coordinates")
		}
		return nil
	},
	RunE: runPaint,
}

var fillCmd = &cobra.Command{
	Use:   "fill <file> <brush>",
	Short: "Tile a brush over the whole level",
	Args:  cobra.ExactArgs(2),
	RunE:  runFill,
}

func init() {
	for _, c := range []*cobra.Command{paintCmd, fillCmd} {
		c.Flags().StringSliceVar(&flagOnly, "only", nil, "Paint only these layers (background, foreground, behavior)")
		c.Flags().StringVarP(&flagOut, "output", "o", "", "Save to this file instead of overwriting the input")
	}
	paintCmd.Flags().BoolVar(&flagTopLeft, "top-left", false, "Anchor the brush at its top-left cell")
}

// openForPaint opens the level, selects the brush and applies --only.
func openForPaint(path, brush string) (*grid.Engine, error) {
	e := newEngine()
	if err := e.Open(path); err != nil {
		return nil, err
	}
	catalog := loadCatalog()
	img, ok := catalog.Get(brush)
	if !ok {
		return nil, fmt.Errorf("unknown brush %q (see 'lve brushes')", brush)
	}
	e.SelectBrush(img)

	if len(flagOnly) > 0 {
		enabled := map[layers.Layer]bool{}
		for _, name := range flagOnly {
			l, err := layers.ParseLayer(name)
			if err != nil {
				return nil, err
			}
			enabled[l] = true
		}
		for _, l := range []layers.Layer{layers.Background, layers.Foreground, layers.Behavior} {
			if err := e.SetLayerEnabled(l, enabled[l]); err != nil {
				return nil, err
			}
		}
	}
	return e, nil
}

func save(e *grid.Engine) error {
	var err error
	if flagOut != "" {
		err = e.SaveAs(flagOut)
	} else {
		err = e.Save()
	}
	if err != nil {
		return err
	}
	remember(e)
	return nil
}

func runPaint(cmd *cobra.Command, args []string) error {
	e, err := openForPaint(args[0], args[1])
	if err != nil {
		return err
	}

	coords := args[2:]
	stamps := 0
	for i := 0; i < len(coords); i += 2 {
		x, err := strconv.Atoi(coords[i])
		if err != nil {
			return fmt.Errorf("column %q: %w", coords[i], err)
		}
		y, err := strconv.Atoi(coords[i+1])
		if err != nil {
			return fmt.Errorf("row %q: %w", coords[i+1], err)
		}
		if !flagTopLeft {
			y = e.TopRow(y)
		}
		if e.PaintAt(x, y) {
			stamps++
		}
	}
	if err := save(e); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "painted %d stamp(s) of %s into %s\n", stamps, args[1], e.Path())
	return nil
}

func runFill(cmd *cobra.Command, args []string) error {
	e, err := openForPaint(args[0], args[1])
	if err != nil {
		return err
	}
	e.FillFrom(0, 0)
	if err := save(e); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "filled %s with %s\n", e.Path(), args[1])
	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milk9111/leveleditor/behavior"
	"github.com/milk9111/leveleditor/brushes"
)

var flagTree bool

var brushesCmd = &cobra.Command{
	Use:   "brushes",
	Short: "List the brush catalog",
	Long: `List every loadable brush with its size in cells. Brushes that failed to
load are reported as warnings on stderr.`,
	Args: cobra.NoArgs,
	RunE: runBrushes,
}

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Print the behavior color legend",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), behavior.Legend())
	},
}

func init() {
	brushesCmd.Flags().BoolVar(&flagTree, "tree", false, "Show the namespace tree")
}

func runBrushes(cmd *cobra.Command, _ []string) error {
	catalog := loadCatalog()
	out := cmd.OutOrStdout()

	if flagTree {
		catalog.Tree().Walk(func(path string, depth int, e brushes.Entry) bool {
			indent := strings.Repeat("  ", depth)
			switch v := e.(type) {
			case *brushes.Leaf:
				img, _ := catalog.Get(v.Key)
				fmt.Fprintf(out, "%s%s  %dx%d\n", indent, v.Key, img.CellWidth, img.CellHeight)
			case *brushes.Node:
				fmt.Fprintf(out, "%s%s/\n", indent, lastSegment(path))
			}
			return true
		})
	} else {
		fmt.Fprintf(out, "  %-24s  %-6s  %s\n", "Brush", "Cells", "Foreground")
		fmt.Fprintf(out, "  %-24s  %-6s  %s\n", "-----", "-----", "----------")
		for _, name := range catalog.Names() {
			img, _ := catalog.Get(name)
			fg := "no"
			if img.HasForeground() {
				fg = "yes"
			}
			fmt.Fprintf(out, "  %-24s  %-6s  %s\n", name, fmt.Sprintf("%dx%d", img.CellWidth, img.CellHeight), fg)
		}
	}

	if n := len(catalog.Warnings()); n > 0 {
		return fmt.Errorf("%d brush(es) could not be loaded", n)
	}
	return nil
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/milk9111/leveleditor/behavior"
	"github.com/milk9111/leveleditor/lve"
)

var newCmd = &cobra.Command{
	Use:   "new <file> <width> <height>",
	Short: "Create a blank level",
	Long: `Create a transparent level of width x height cells and save it.

Examples:
  lve new town.lve 20 12`,
	Args: cobra.ExactArgs(3),
	RunE: runNew,
}

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show a level's header, file sizes and behavior counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var classifyCmd = &cobra.Command{
	Use:   "classify <file>",
	Short: "Print the behavior report of a level",
	Long: `Print one line per behavior color listing the cells painted with it.
Rows count upward from the bottom of the level.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func runNew(cmd *cobra.Command, args []string) error {
	w, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("width: %w", err)
	}
	h, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("height: %w", err)
	}

	e := newEngine()
	if err := e.NewDocument(w, h); err != nil {
		return err
	}
	if err := e.SaveAs(args[0]); err != nil {
		return err
	}
	remember(e)
	fmt.Fprintf(cmd.OutOrStdout(), "created %s (%dx%d cells)\n", args[0], w, h)
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	hdr, err := lve.ReadHeader(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	e := newEngine()
	if err := e.Open(path); err != nil {
		return err
	}
	doc := e.Document()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Level:  %s\n", hdr.Name)
	fmt.Fprintf(out, "Cells:  %d x %d\n", doc.CellWidth, doc.CellHeight)
	fmt.Fprintf(out, "Pixels: %d x %d\n", doc.PixelWidth, doc.PixelHeight)
	fmt.Fprintln(out)

	files := []struct {
		label string
		rel   string
	}{
		{"Background", hdr.Background},
		{"Foreground", hdr.Foreground},
		{"Behavior", hdr.Behavior},
	}
	dir := filepath.Dir(path)
	for _, file := range files {
		size := "missing"
		if st, err := os.Stat(filepath.Join(dir, filepath.FromSlash(file.rel))); err == nil {
			size = humanize.Bytes(uint64(st.Size()))
		}
		fmt.Fprintf(out, "  %-10s  %-40s  %s\n", file.label, file.rel, size)
	}

	fmt.Fprintln(out)
	report := behavior.Classify(doc.Behavior)
	for _, c := range behavior.Colors() {
		fmt.Fprintf(out, "  %-8s  %s cells\n", c.Label(), humanize.Comma(int64(len(report[c]))))
	}
	return nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	e := newEngine()
	if err := e.Open(args[0]); err != nil {
		return err
	}
	for _, line := range behavior.Classify(e.Document().Behavior).Lines() {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

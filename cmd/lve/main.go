// lve is the headless companion of the level editor: it creates, inspects
// and paints .lve documents without opening a window.
//
// Usage:
//
//	lve new <file> <w> <h>              - Create a blank level
//	lve info <file>                     - Show header, sizes and behavior counts
//	lve classify <file>                 - Print the behavior report
//	lve paint <file> <brush> <x> <y>... - Stamp a brush at cells
//	lve fill <file> <brush>             - Tile a brush over the level
//	lve run-script <script>             - Run a tengo script against the editor
//	lve preview <file|brush> <out.png>  - Write a layer or brush preview
//	lve brushes                         - List the brush catalog
//	lve legend                          - Print the behavior color legend
//	lve recent                          - List recently opened levels
//
// Global flags:
//
//	--config <path>     - Editor config file
//	--log-level <lvl>   - debug, info, warn or error
//	--brushes <dir>     - Extra brush directory (repeatable)
//	--db <path>         - History database
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/leveleditor/brushes"
	"github.com/milk9111/leveleditor/config"
	"github.com/milk9111/leveleditor/grid"
	"github.com/milk9111/leveleditor/history"
)

var (
	flagConfig   string
	flagLogLevel string
	flagBrushes  []string
	flagDBPath   string
)

var (
	cfg    config.Editor
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lve",
	Short: "Create, inspect and paint .lve level files",
	Long: `lve works on the level files written by the level editor.

A level is a text header plus three PNG layers: background, foreground and
behavior. The behavior layer holds one pixel per grid cell.

Examples:
  lve new town.lve 20 12
  lve fill town.lve ground.grass
  lve paint town.lve building.house 3 5 8 5
  lve classify town.lve`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Editor config file (default: search ~/.leveleditor and ./configs)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides the config)")
	rootCmd.PersistentFlags().StringSliceVar(&flagBrushes, "brushes", nil, "Extra brush directory, searched before the packaged brushes")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the history database (overrides the config)")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(paintCmd)
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(brushesCmd)
	rootCmd.AddCommand(legendCmd)
	rootCmd.AddCommand(recentCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagDBPath != "" {
		cfg.HistoryDB = flagDBPath
	}
	cfg.BrushDirs = append(append([]string(nil), flagBrushes...), cfg.BrushDirs...)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lve",
		Level:           cfg.Level(),
	})
	return nil
}

func newEngine() *grid.Engine {
	return grid.New(cfg.EngineOptions(logger))
}

func loadCatalog() *brushes.Catalog {
	return brushes.LoadDirs(cfg.BrushDirs, logger)
}

// remember records path in the history database. Failures only warn.
func remember(e *grid.Engine) {
	doc := e.Document()
	if doc == nil || e.Path() == "" {
		return
	}
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		return
	}
	defer store.Close()
	if err := store.Touch(e.Path(), doc.CellWidth, doc.CellHeight); err != nil {
		logger.Warn("could not record history", "error", err)
	}
}

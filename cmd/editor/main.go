// editor is the windowed level editor. It paints layered brushes onto a grid
// of cells and saves the result as a .lve document.
//
// Usage:
//
//	editor [file.lve]
//
// Shortcuts:
//
//	Ctrl+N / Ctrl+O / Ctrl+S  - New, open, save (Shift for save as)
//	Ctrl+C                    - Copy the behavior report
//	1 / 2 / 3                 - Brush, fill and zoom tools
//	Q / W / E                 - Show background, foreground, behavior
//	+ / -                     - Zoom in and out
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"golang.design/x/clipboard"

	"github.com/milk9111/leveleditor/brushes"
	"github.com/milk9111/leveleditor/config"
	"github.com/milk9111/leveleditor/history"
)

var (
	flagConfig   string
	flagLogLevel string
	flagBrushes  []string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "editor [file.lve]",
	Short:        "Paint layered tile levels",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Editor config file (default: search ~/.leveleditor and ./configs)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides the config)")
	rootCmd.Flags().StringSliceVar(&flagBrushes, "brushes", nil, "Extra brush directory, watched for changes")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	cfg.BrushDirs = append(append([]string(nil), flagBrushes...), cfg.BrushDirs...)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "editor",
		Level:           cfg.Level(),
	})
	logger.Info("editor starting", "config", config.Path(flagConfig))

	clipOK := true
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "error", err)
		clipOK = false
	}

	catalog := brushes.LoadDirs(cfg.BrushDirs, logger)
	for _, w := range catalog.Warnings() {
		logger.Warn("brush skipped", "error", w)
	}
	logger.Info("brushes loaded", "count", catalog.Len())

	watcher, err := brushes.NewWatcher(cfg.BrushDirs...)
	if err != nil && !errors.Is(err, brushes.ErrNoBrushDirs) {
		logger.Warn("not watching brush directories", "error", err)
	}

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		logger.Warn("history disabled", "error", err)
		store = nil
	}

	g, err := NewEditor(EditorOptions{
		Config:    cfg,
		Catalog:   catalog,
		Watcher:   watcher,
		History:   store,
		Logger:    logger,
		Clipboard: clipOK,
	})
	if err != nil {
		if watcher != nil {
			_ = watcher.Close()
		}
		if store != nil {
			_ = store.Close()
		}
		return err
	}
	defer g.Close()

	if len(args) == 1 {
		g.open(args[0])
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	return nil
}

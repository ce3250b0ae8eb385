// Package config loads editor settings from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/milk9111/leveleditor/grid"
)

// Editor holds every tunable of the editor and the lve tool.
type Editor struct {
	MaxCellsX   int      `yaml:"max_cells_x"`
	MaxCellsY   int      `yaml:"max_cells_y"`
	Pad         int      `yaml:"pad"`
	DragX       int      `yaml:"drag_x"`
	DragY       int      `yaml:"drag_y"`
	DefaultTool string   `yaml:"default_tool"`
	Magnifier   float64  `yaml:"magnifier"`
	BrushDirs   []string `yaml:"brush_dirs"`
	HistoryDB   string   `yaml:"history_db"`
	LogLevel    string   `yaml:"log_level"`
	Window      Window   `yaml:"window"`
}

// Window is the initial size of the editor window.
type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Validate fills zero values from Default and rejects values the engine
// cannot honor.
func (c *Editor) Validate() error {
	def := Default()
	if c.MaxCellsX == 0 {
		c.MaxCellsX = def.MaxCellsX
	}
	if c.MaxCellsY == 0 {
		c.MaxCellsY = def.MaxCellsY
	}
	if c.Pad == 0 {
		c.Pad = def.Pad
	}
	if c.DragX == 0 {
		c.DragX = def.DragX
	}
	if c.DragY == 0 {
		c.DragY = def.DragY
	}
	if c.DefaultTool == "" {
		c.DefaultTool = def.DefaultTool
	}
	if c.Magnifier == 0 {
		c.Magnifier = def.Magnifier
	}
	if c.HistoryDB == "" {
		c.HistoryDB = def.HistoryDB
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Window.Width == 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height == 0 {
		c.Window.Height = def.Window.Height
	}

	if c.MaxCellsX < 1 || c.MaxCellsY < 1 {
		return fmt.Errorf("config: max cells must be positive, got %dx%d", c.MaxCellsX, c.MaxCellsY)
	}
	if c.Pad < 0 {
		return fmt.Errorf("config: pad must not be negative, got %d", c.Pad)
	}
	if c.DragX < grid.DefaultDrag || c.DragY < grid.DefaultDrag {
		return fmt.Errorf("config: drag must be at least %d, got %dx%d", grid.DefaultDrag, c.DragX, c.DragY)
	}
	if _, err := grid.ParseTool(c.DefaultTool); err != nil {
		return fmt.Errorf("config: default_tool: %w", err)
	}
	if !grid.ValidMagnifier(c.Magnifier) {
		return fmt.Errorf("config: magnifier %g must be a power of two in %g..%g", c.Magnifier, grid.MinMagnifier, grid.MaxMagnifier)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	if c.Window.Width < 1 || c.Window.Height < 1 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	for i, dir := range c.BrushDirs {
		expanded, err := ExpandHome(dir)
		if err != nil {
			return fmt.Errorf("config: brush_dirs: %w", err)
		}
		c.BrushDirs[i] = expanded
	}
	return nil
}

// EngineOptions converts the settings into grid engine options.
func (c Editor) EngineOptions(logger *log.Logger) grid.Options {
	tool, err := grid.ParseTool(c.DefaultTool)
	if err != nil {
		tool = grid.ToolBrush
	}
	return grid.Options{
		Pad:       c.Pad,
		MaxCellsX: c.MaxCellsX,
		MaxCellsY: c.MaxCellsY,
		DragX:     c.DragX,
		DragY:     c.DragY,
		Tool:      tool,
		Magnifier: c.Magnifier,
		Logger:    logger,
	}
}

// Level returns the parsed log level, or info when it does not parse.
func (c Editor) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], string(filepath.Separator))), nil
}

package config

import (
	_ "embed"
)

//go:embed defaults/editor.yaml
var defaultEditorYAML []byte

// Default returns the built-in editor settings.
func Default() Editor {
	return Editor{
		MaxCellsX:   50,
		MaxCellsY:   50,
		Pad:         40,
		DragX:       64,
		DragY:       64,
		DefaultTool: "brush",
		Magnifier:   1,
		HistoryDB:   "~/.leveleditor/history.db",
		LogLevel:    "info",
		Window: Window{
			Width:  1200,
			Height: 800,
		},
	}
}

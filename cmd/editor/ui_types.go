package main

import (
	"fmt"
	"strings"

	"github.com/ebitenui/ebitenui/widget"

	"github.com/milk9111/leveleditor/brushes"
	"github.com/milk9111/leveleditor/grid"
	"github.com/milk9111/leveleditor/history"
	"github.com/milk9111/leveleditor/layers"
)

// ToolBar contains the radio-group state for the tool buttons.
type ToolBar struct {
	group     *widget.RadioGroup
	buttons   []*widget.Button
	tools     []grid.Tool
	zoomLabel *widget.Text
	suppress  bool
}

func (tb *ToolBar) SetTool(t grid.Tool) {
	if tb == nil || tb.group == nil {
		return
	}
	for i, tool := range tb.tools {
		if tool == t {
			tb.suppress = true
			tb.group.SetActive(tb.buttons[i])
			tb.suppress = false
			return
		}
	}
}

func (tb *ToolBar) SetZoom(m float64) {
	if tb == nil || tb.zoomLabel == nil {
		return
	}
	tb.zoomLabel.Label = fmt.Sprintf("x%g", m)
}

// LayerPanel shows which layer is displayed and which layers the brush
// writes to.
type LayerPanel struct {
	showGroup   *widget.RadioGroup
	showButtons [3]*widget.Button
	paintBtns   [3]*widget.Button
	suppress    bool
}

func (lp *LayerPanel) SetActive(l layers.Layer) {
	if lp == nil || lp.showGroup == nil || int(l) >= len(lp.showButtons) {
		return
	}
	lp.suppress = true
	lp.showGroup.SetActive(lp.showButtons[l])
	lp.suppress = false
}

func (lp *LayerPanel) SetEnabled(l layers.Layer, on bool) {
	if lp == nil || int(l) >= len(lp.paintBtns) || lp.paintBtns[l] == nil {
		return
	}
	label := "Paint: Off"
	if on {
		label = "Paint: On"
	}
	if text := lp.paintBtns[l].Text(); text != nil {
		text.Label = label
	}
}

// BrushEntry is one row of the brush list: a namespace or a brush.
type BrushEntry struct {
	Key   string
	Label string
	Leaf  bool
}

// BrushPanel holds the brush list.
type BrushPanel struct {
	list     *widget.List
	entries  []any
	suppress bool
}

// SetCatalog rebuilds the list from the catalog's namespace tree.
func (bp *BrushPanel) SetCatalog(c *brushes.Catalog) {
	if bp == nil || bp.list == nil || c == nil {
		return
	}
	var entries []any
	c.Tree().Walk(func(path string, depth int, e brushes.Entry) bool {
		indent := strings.Repeat("  ", depth)
		switch v := e.(type) {
		case *brushes.Leaf:
			entries = append(entries, BrushEntry{Key: v.Key, Label: indent + v.Key, Leaf: true})
		case *brushes.Node:
			name := path
			if i := strings.LastIndex(path, "."); i >= 0 {
				name = path[i+1:]
			}
			entries = append(entries, BrushEntry{Label: indent + name + "/"})
		}
		return true
	})
	bp.suppress = true
	bp.entries = entries
	bp.list.SetEntries(entries)
	bp.suppress = false
}

// Select highlights the row of key without firing the selection handler.
func (bp *BrushPanel) Select(key string) {
	if bp == nil || bp.list == nil {
		return
	}
	for _, e := range bp.entries {
		if be, ok := e.(BrushEntry); ok && be.Leaf && be.Key == key {
			bp.suppress = true
			bp.list.SetSelectedEntry(e)
			bp.suppress = false
			return
		}
	}
}

// RecentPanel lists the history entries.
type RecentPanel struct {
	list     *widget.List
	suppress bool
}

func (rp *RecentPanel) SetEntries(list []history.Entry) {
	if rp == nil || rp.list == nil {
		return
	}
	entries := make([]any, len(list))
	for i, e := range list {
		entries[i] = e
	}
	rp.suppress = true
	rp.list.SetEntries(entries)
	rp.suppress = false
}

// LeftPanelUI is the composed left-panel widget and its stateful helpers.
type LeftPanelUI struct {
	Container  *widget.Container
	PathInput  *widget.TextInput
	Layers     *LayerPanel
	Recent     *RecentPanel
	StatusText *widget.Text
	CursorText *widget.Text
}

// RightPanelUI is the brush panel widget plus its list helper.
type RightPanelUI struct {
	Container *widget.Container
	Brushes   *BrushPanel
}

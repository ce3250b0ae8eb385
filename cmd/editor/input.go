package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/leveleditor/grid"
	"github.com/milk9111/leveleditor/layers"
)

// layerKeys shows which key displays each layer.
var layerKeys = [3]string{"Q", "W", "E"}

var layerShortcuts = [3]ebiten.Key{ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE}

var toolShortcuts = map[ebiten.Key]grid.Tool{
	ebiten.KeyDigit1: grid.ToolBrush,
	ebiten.KeyDigit2: grid.ToolFill,
	ebiten.KeyDigit3: grid.ToolZoom,
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func (g *Editor) handleKeys() {
	if g.ui.NewDialog.IsOpen() || g.ui.Left.PathInput.IsFocused() {
		return
	}

	if ctrlPressed() {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyN):
			g.promptNewDocument()
		case inpututil.IsKeyJustPressed(ebiten.KeyO):
			g.open("")
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			if ebiten.IsKeyPressed(ebiten.KeyShift) {
				g.saveAs("")
			} else {
				g.save()
			}
		case inpututil.IsKeyJustPressed(ebiten.KeyC):
			g.copyReport()
		}
		return
	}

	for key, tool := range toolShortcuts {
		if inpututil.IsKeyJustPressed(key) {
			if err := g.engine.SetTool(tool); err != nil {
				g.setStatus(err.Error())
			}
		}
	}
	for i, key := range layerShortcuts {
		if inpututil.IsKeyJustPressed(key) {
			_ = g.engine.SetActiveLayer(layers.Layer(i))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.engine.ZoomIn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.engine.ZoomOut()
	}
}

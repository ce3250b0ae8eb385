package main

import (
	"bytes"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/leveleditor/grid"
	"github.com/milk9111/leveleditor/layers"
)

const (
	leftPanelWidth  = 240
	rightPanelWidth = 240
	toolbarHeight   = 48
)

// uiActions are the editor operations the widgets trigger.
type uiActions struct {
	newDocument func()
	open        func(path string)
	save        func()
	saveAs      func(path string)
	copyReport  func()
	selectTool  func(t grid.Tool)
	zoom        func(in bool)
	showLayer   func(l layers.Layer)
	toggleLayer func(l layers.Layer)
	selectBrush func(key string)
	createDoc   func(w, h int) error
}

// EditorUI bundles the ebitenui tree and the widgets the editor updates.
type EditorUI struct {
	UI        *ebitenui.UI
	Face      text.Face
	ToolBar   *ToolBar
	Left      *LeftPanelUI
	Right     *RightPanelUI
	NewDialog *newDocumentDialog
}

func BuildEditorUI(actions *uiActions, initialTool grid.Tool, maxX, maxY int) (*EditorUI, error) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	left := buildLeftPanelUI(ui.PrimaryTheme, &fontFace, actions)
	right := buildRightPanelUI(&fontFace, actions.selectBrush)
	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, actions.selectTool, actions.zoom, initialTool)
	newDialog := newNewDocumentDialog(ui.PrimaryTheme, &fontFace, maxX, maxY, actions.createDoc)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	left.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	right.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(left.Container)
	root.AddChild(right.Container)
	root.AddChild(toolbarContainer)
	root.AddChild(newDialog.Overlay)
	ui.Container = root

	return &EditorUI{
		UI:        ui,
		Face:      fontFace,
		ToolBar:   toolBar,
		Left:      left,
		Right:     right,
		NewDialog: newDialog,
	}, nil
}

package main

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/leveleditor/history"
	"github.com/milk9111/leveleditor/layers"
)

func buildLeftPanelUI(theme *widget.Theme, fontFace *text.Face, actions *uiActions) *LeftPanelUI {
	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 8, Right: 8}),
			),
		),
	)

	pathInput := addFileSection(leftPanel, theme, fontFace, actions)
	layerPanel := addLayersSection(leftPanel, theme, fontFace, actions)

	leftPanel.AddChild(newButton(theme, fontFace, "Copy behavior report", actions.copyReport))

	recent := addRecentSection(leftPanel, fontFace, actions)

	status := newText("", fontFace, lightText)
	cursor := newText("", fontFace, lightText)
	leftPanel.AddChild(cursor)
	leftPanel.AddChild(status)

	return &LeftPanelUI{
		Container:  leftPanel,
		PathInput:  pathInput,
		Layers:     layerPanel,
		Recent:     recent,
		StatusText: status,
		CursorText: cursor,
	}
}

func addFileSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, actions *uiActions) *widget.TextInput {
	parent.AddChild(newText("File", fontFace, lightText))
	pathInput := newTextInput(fontFace, leftPanelWidth-16, func(path string) {
		if path != "" {
			actions.open(path)
		}
	})
	parent.AddChild(pathInput)

	row := newRow(6)
	row.AddChild(newButton(theme, fontFace, "New", actions.newDocument))
	row.AddChild(newButton(theme, fontFace, "Open", func() { actions.open(pathInput.GetText()) }))
	row.AddChild(newButton(theme, fontFace, "Save", actions.save))
	row.AddChild(newButton(theme, fontFace, "Save As", func() { actions.saveAs(pathInput.GetText()) }))
	parent.AddChild(row)
	return pathInput
}

func addLayersSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, actions *uiActions) *LayerPanel {
	parent.AddChild(newText("Layers", fontFace, lightText))

	buttonTextColor := &widget.ButtonTextColor{
		Idle:    color.Black,
		Hover:   color.Black,
		Pressed: color.RGBA{0, 0, 200, 255},
	}

	lp := &LayerPanel{}
	var elements []widget.RadioGroupElement
	for _, l := range []layers.Layer{layers.Background, layers.Foreground, layers.Behavior} {
		row := newRow(6)
		show := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(fmt.Sprintf("%s (%s)", l, layerKeys[l]), fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(120, 28),
			),
		)
		paint := newButton(theme, fontFace, "Paint: On", func() { actions.toggleLayer(l) })
		lp.showButtons[l] = show
		lp.paintBtns[l] = paint
		elements = append(elements, show)
		row.AddChild(show)
		row.AddChild(paint)
		parent.AddChild(row)
	}

	lp.showGroup = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if lp.suppress {
				return
			}
			for i, b := range lp.showButtons {
				if args.Active == b {
					actions.showLayer(layers.Layer(i))
					return
				}
			}
		}),
	)
	return lp
}

func addRecentSection(parent *widget.Container, fontFace *text.Face, actions *uiActions) *RecentPanel {
	parent.AddChild(newText("Recent", fontFace, lightText))
	rp := &RecentPanel{}
	rp.list = widget.NewList(
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth-16, 160),
		)),
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(history.Entry); ok {
				return fmt.Sprintf("%s (%dx%d)", filepath.Base(entry.Path), entry.CellWidth, entry.CellHeight)
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if rp.suppress {
				return
			}
			if entry, ok := args.Entry.(history.Entry); ok {
				actions.open(entry.Path)
			}
		}),
	)
	parent.AddChild(rp.list)
	return rp
}

package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// previewHeight is the space left under the brush list for the brush preview.
const previewHeight = 100

func buildRightPanelUI(fontFace *text.Face, onBrushSelected func(key string)) *RightPanelUI {
	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(rightPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: previewHeight, Left: 8, Right: 8}),
			),
		),
	)
	panel.AddChild(newText("Brushes", fontFace, lightText))

	bp := &BrushPanel{}
	bp.list = widget.NewList(
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(rightPanelWidth-16, 420),
		)),
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(BrushEntry); ok {
				return entry.Label
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if bp.suppress || onBrushSelected == nil {
				return
			}
			if entry, ok := args.Entry.(BrushEntry); ok && entry.Leaf {
				onBrushSelected(entry.Key)
			}
		}),
	)
	panel.AddChild(bp.list)

	return &RightPanelUI{Container: panel, Brushes: bp}
}

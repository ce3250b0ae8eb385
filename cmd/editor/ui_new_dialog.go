package main

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

type newDocumentDialog struct {
	Overlay *widget.Container
	Open    func(w, h int)
	IsOpen  func() bool
}

func newNewDocumentDialog(theme *widget.Theme, fontFace *text.Face, maxX, maxY int, onCreate func(w, h int) error) *newDocumentDialog {
	overlay := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{0, 0, 0, 160})),
	)
	overlay.GetWidget().Visibility = widget.Visibility_Hide

	dialog := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 180),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 220, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
			),
		),
	)

	hide := func() { overlay.GetWidget().Visibility = widget.Visibility_Hide }
	errText := newText("", fontFace, color.RGBA{160, 0, 0, 255})

	var widthInput, heightInput *widget.TextInput
	submit := func() {
		w, errW := strconv.Atoi(strings.TrimSpace(widthInput.GetText()))
		h, errH := strconv.Atoi(strings.TrimSpace(heightInput.GetText()))
		if errW != nil || errH != nil {
			errText.Label = "width and height must be numbers"
			return
		}
		if err := onCreate(w, h); err != nil {
			errText.Label = err.Error()
			return
		}
		hide()
	}
	widthInput = newTextInput(fontFace, 120, func(string) { submit() })
	heightInput = newTextInput(fontFace, 120, func(string) { submit() })

	dialog.AddChild(newText(fmt.Sprintf("New level (up to %dx%d cells)", maxX, maxY), fontFace, darkText))
	sizeRow := newRow(8)
	sizeRow.AddChild(newText("W", fontFace, darkText))
	sizeRow.AddChild(widthInput)
	sizeRow.AddChild(newText("H", fontFace, darkText))
	sizeRow.AddChild(heightInput)
	dialog.AddChild(sizeRow)
	dialog.AddChild(errText)

	buttonsRow := newRow(8)
	buttonsRow.AddChild(newButton(theme, fontFace, "OK", submit))
	buttonsRow.AddChild(newButton(theme, fontFace, "Cancel", hide))
	dialog.AddChild(buttonsRow)
	overlay.AddChild(dialog)

	open := func(w, h int) {
		widthInput.SetText(strconv.Itoa(w))
		heightInput.SetText(strconv.Itoa(h))
		errText.Label = ""
		widthInput.Focus(true)
		overlay.GetWidget().Visibility = widget.Visibility_Show
	}
	isOpen := func() bool {
		return overlay.GetWidget().Visibility == widget.Visibility_Show
	}

	return &newDocumentDialog{Overlay: overlay, Open: open, IsOpen: isOpen}
}

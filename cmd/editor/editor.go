package main

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"github.com/milk9111/leveleditor/behavior"
	"github.com/milk9111/leveleditor/brushes"
	"github.com/milk9111/leveleditor/config"
	"github.com/milk9111/leveleditor/grid"
	"github.com/milk9111/leveleditor/history"
	"github.com/milk9111/leveleditor/layers"
	"github.com/milk9111/leveleditor/lve"
)

const recentLimit = 8

// EditorOptions carries what main has set up for the editor.
type EditorOptions struct {
	Config    config.Editor
	Catalog   *brushes.Catalog
	Watcher   *brushes.Watcher
	History   *history.Store
	Logger    *log.Logger
	Clipboard bool
}

// Editor is the ebiten game driving one grid engine.
type Editor struct {
	cfg       config.Editor
	engine    *grid.Engine
	catalog   *brushes.Catalog
	watcher   *brushes.Watcher
	store     *history.Store
	logger    *log.Logger
	clipboard bool

	ui     *EditorUI
	canvas *Canvas

	brushKey   string
	previewImg *ebiten.Image

	width, height int
}

func NewEditor(opts EditorOptions) (*Editor, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	g := &Editor{
		cfg:       opts.Config,
		catalog:   opts.Catalog,
		watcher:   opts.Watcher,
		store:     opts.History,
		logger:    logger,
		clipboard: opts.Clipboard,
		width:     opts.Config.Window.Width,
		height:    opts.Config.Window.Height,
	}
	g.engine = grid.New(opts.Config.EngineOptions(logger))

	actions := &uiActions{
		newDocument: g.promptNewDocument,
		open:        g.open,
		save:        g.save,
		saveAs:      g.saveAs,
		copyReport:  g.copyReport,
		selectTool: func(t grid.Tool) {
			if err := g.engine.SetTool(t); err != nil {
				g.setStatus(err.Error())
			}
		},
		zoom: func(in bool) {
			if in {
				g.engine.ZoomIn()
			} else {
				g.engine.ZoomOut()
			}
		},
		showLayer: func(l layers.Layer) {
			if err := g.engine.SetActiveLayer(l); err != nil {
				g.setStatus(err.Error())
			}
		},
		toggleLayer: func(l layers.Layer) {
			if err := g.engine.SetLayerEnabled(l, !g.engine.LayerEnabled(l)); err != nil {
				g.setStatus(err.Error())
			}
		},
		selectBrush: g.selectBrush,
		createDoc:   g.createDocument,
	}

	maxX, maxY := g.engine.MaxCells()
	ui, err := BuildEditorUI(actions, g.engine.Tool(), maxX, maxY)
	if err != nil {
		return nil, err
	}
	g.ui = ui
	g.canvas = NewCanvas(g.engine, ui.Face)
	g.engine.Subscribe(g.onEngineEvent)

	g.ui.Right.Brushes.SetCatalog(g.catalog)
	g.ui.Left.Layers.SetActive(g.engine.ActiveLayer())
	g.ui.ToolBar.SetZoom(g.engine.Magnifier())
	g.refreshRecent()
	g.updateTitle()
	return g, nil
}

// onEngineEvent keeps the widgets in step with the engine.
func (g *Editor) onEngineEvent(ev grid.Event) {
	switch ev.Kind {
	case grid.EventTool:
		g.ui.ToolBar.SetTool(g.engine.Tool())
	case grid.EventZoom:
		g.ui.ToolBar.SetZoom(g.engine.Magnifier())
	case grid.EventLayer:
		g.ui.Left.Layers.SetActive(g.engine.ActiveLayer())
	case grid.EventSettings:
		for _, l := range []layers.Layer{layers.Background, layers.Foreground, layers.Behavior} {
			g.ui.Left.Layers.SetEnabled(l, g.engine.LayerEnabled(l))
		}
	case grid.EventDocument, grid.EventSaved:
		g.updateTitle()
		if p := g.engine.Path(); p != "" {
			g.ui.Left.PathInput.SetText(p)
			g.remember()
		}
	}
}

func (g *Editor) updateTitle() {
	title := "Level Editor"
	if doc := g.engine.Document(); doc != nil {
		name := "untitled"
		if p := g.engine.Path(); p != "" {
			name = filepath.Base(p)
		}
		title = fmt.Sprintf("%s - %s (%dx%d)", title, name, doc.CellWidth, doc.CellHeight)
	}
	ebiten.SetWindowTitle(title)
}

func (g *Editor) setStatus(msg string) {
	g.ui.Left.StatusText.Label = msg
}

func (g *Editor) promptNewDocument() {
	w, h := 16, 12
	if doc := g.engine.Document(); doc != nil {
		w, h = doc.CellWidth, doc.CellHeight
	}
	g.ui.NewDialog.Open(w, h)
}

func (g *Editor) createDocument(w, h int) error {
	if err := g.engine.NewDocument(w, h); err != nil {
		return err
	}
	g.setStatus(fmt.Sprintf("new %dx%d level", w, h))
	return nil
}

// open loads path, asking for one when it is empty. Failures land in the
// status line.
func (g *Editor) open(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		var ok bool
		var err error
		path, ok, err = openLevelDialog()
		if err != nil {
			g.setStatus(err.Error())
			return
		}
		if !ok {
			return
		}
	}
	if err := g.engine.Open(path); err != nil {
		g.logger.Warn("open failed", "path", path, "error", err)
		g.setStatus(err.Error())
		return
	}
	g.setStatus("opened " + filepath.Base(path))
}

func (g *Editor) save() {
	err := g.engine.Save()
	if errors.Is(err, grid.ErrNoPath) {
		g.saveAs(g.ui.Left.PathInput.GetText())
		return
	}
	if err != nil {
		g.logger.Warn("save failed", "error", err)
		g.setStatus(err.Error())
		return
	}
	g.setStatus("saved " + filepath.Base(g.engine.Path()))
}

func (g *Editor) saveAs(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		var ok bool
		var err error
		path, ok, err = saveLevelDialog()
		if err != nil {
			g.setStatus(err.Error())
			return
		}
		if !ok {
			return
		}
	}
	if !lve.HasExt(path) {
		path += lve.Ext
	}
	if err := g.engine.SaveAs(path); err != nil {
		g.logger.Warn("save failed", "path", path, "error", err)
		g.setStatus(err.Error())
		return
	}
	g.setStatus("saved " + filepath.Base(path))
}

func (g *Editor) copyReport() {
	doc := g.engine.Document()
	if doc == nil {
		g.setStatus(grid.ErrNoDocument.Error())
		return
	}
	report := behavior.Classify(doc.Behavior)
	if !g.clipboard {
		g.setStatus("clipboard unavailable")
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(strings.Join(report.Lines(), "\n")))
	g.setStatus(fmt.Sprintf("copied report (%d cells)", report.Count()))
}

func (g *Editor) selectBrush(key string) {
	img, ok := g.catalog.Get(key)
	if !ok {
		g.setStatus("unknown brush " + key)
		return
	}
	g.brushKey = key
	g.engine.SelectBrush(img)
	g.previewImg = replaceImage(g.previewImg, ebiten.NewImageFromImage(img.Preview))
}

func (g *Editor) reloadBrushes() {
	g.catalog = brushes.LoadDirs(g.cfg.BrushDirs, g.logger)
	g.ui.Right.Brushes.SetCatalog(g.catalog)
	if g.brushKey == "" {
		return
	}
	if _, ok := g.catalog.Get(g.brushKey); ok {
		g.selectBrush(g.brushKey)
		g.ui.Right.Brushes.Select(g.brushKey)
		return
	}
	g.brushKey = ""
	g.engine.SelectBrush(nil)
	g.previewImg = replaceImage(g.previewImg, nil)
}

// pollWatcher drains pending brush file changes and reloads the catalog once.
func (g *Editor) pollWatcher() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Debug("brush file changed", "file", name)
			reload = true
			continue
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("brush watcher", "error", err)
			}
			continue
		default:
		}
		break
	}
	if reload {
		g.reloadBrushes()
		g.setStatus(fmt.Sprintf("reloaded %d brushes", g.catalog.Len()))
	}
}

func (g *Editor) remember() {
	if g.store == nil {
		return
	}
	doc := g.engine.Document()
	if err := g.store.Touch(g.engine.Path(), doc.CellWidth, doc.CellHeight); err != nil {
		g.logger.Warn("could not record history", "error", err)
		return
	}
	g.refreshRecent()
}

func (g *Editor) refreshRecent() {
	if g.store == nil {
		return
	}
	entries, err := g.store.Recent(recentLimit)
	if err != nil {
		g.logger.Warn("could not read history", "error", err)
		return
	}
	g.ui.Left.Recent.SetEntries(entries)
}

func (g *Editor) canvasArea() image.Rectangle {
	return image.Rect(leftPanelWidth, toolbarHeight, max(leftPanelWidth, g.width-rightPanelWidth), g.height)
}

func (g *Editor) Update() error {
	g.ui.UI.Update()
	g.pollWatcher()
	g.handleKeys()
	g.canvas.Update(g.canvasArea(), g.ui.NewDialog.IsOpen())
	g.updateCursorText()
	return nil
}

func (g *Editor) updateCursorText() {
	cell, _, ok := g.engine.Cursor()
	doc := g.engine.Document()
	if !ok || doc == nil {
		g.ui.Left.CursorText.Label = ""
		return
	}
	// rows in the report count from the bottom
	g.ui.Left.CursorText.Label = fmt.Sprintf("cell %d,%d  report (%d,%d)", cell.X, cell.Y, cell.X, doc.CellHeight-cell.Y-1)
}

func (g *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(canvasColor)
	g.canvas.Draw(screen, g.canvasArea())
	g.ui.UI.Draw(screen)

	if g.previewImg != nil {
		b := g.previewImg.Bounds()
		op := &ebiten.DrawImageOptions{}
		scale := float64(rightPanelWidth-16) / float64(b.Dx())
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(float64(g.width-rightPanelWidth+8), float64(g.height-previewHeight+8))
		screen.DrawImage(g.previewImg, op)
	}
}

func (g *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close releases the watcher and history database.
func (g *Editor) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.store != nil {
		_ = g.store.Close()
	}
}

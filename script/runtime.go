// Package script drives a grid engine from tengo scripts, for batch and
// procedural level painting.
//
// A script sees one global, editor, holding the functions below. Cell rows
// count from the top of the document, like the canvas.
//
//	editor.new(w, h)            blank document of w x h cells
//	editor.open(path)           load a .lve file
//	editor.save([path])         save, or save as path
//	editor.brush(name)          select a brush; "" deselects
//	editor.brushes()            sorted brush keys
//	editor.tool(name)           brush, fill or zoom
//	editor.layer(name, on)      enable or disable painting on a layer
//	editor.show(name)           make a layer active
//	editor.paint(x, y)          stamp with the brush's bottom-left cell at (x, y)
//	editor.stamp(x, y)          stamp with the brush's top-left cell at (x, y)
//	editor.fill(x, y)           tile the brush over the document
//	editor.zoom_in()
//	editor.zoom_out()
//	editor.size()               [w, h] in cells, or [0, 0]
//	editor.report()             {label: [[col, row], ...]} of the behavior layer
//	editor.log(args...)
package script

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/leveleditor/behavior"
	"github.com/milk9111/leveleditor/grid"
	"github.com/milk9111/leveleditor/layers"
)

// Brushes resolves brush names for editor.brush.
type Brushes interface {
	Get(key string) (*layers.Image, bool)
	Names() []string
}

// Runtime binds an engine and a brush set to scripts.
type Runtime struct {
	engine  *grid.Engine
	brushes Brushes
	logger  *log.Logger
}

// New creates a runtime. brushes may be nil when scripts do not select
// brushes by name.
func New(e *grid.Engine, brushes Brushes, logger *log.Logger) *Runtime {
	if logger == nil {
		logger = log.Default()
	}
	return &Runtime{engine: e, brushes: brushes, logger: logger.WithPrefix("script")}
}

// Run compiles and runs src.
func (rt *Runtime) Run(ctx context.Context, name string, src []byte) error {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := s.Add("editor", rt.module()); err != nil {
		return fmt.Errorf("script: %s: %w", name, err)
	}
	if _, err := s.RunContext(ctx); err != nil {
		return fmt.Errorf("script: %s: %w", name, err)
	}
	return nil
}

// RunFile reads and runs the script at path.
func (rt *Runtime) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return rt.Run(ctx, path, src)
}

func (rt *Runtime) module() *tengo.ImmutableMap {
	e := rt.engine
	values := map[string]tengo.Object{}

	fn := func(name string, f tengo.CallableFunc) {
		values[name] = &tengo.UserFunction{Name: name, Value: f}
	}

	fn("new", func(args ...tengo.Object) (tengo.Object, error) {
		w, h, err := cellArgs(args)
		if err != nil {
			return nil, err
		}
		if err := e.NewDocument(w, h); err != nil {
			return nil, err
		}
		return tengo.UndefinedValue, nil
	})

	fn("open", func(args ...tengo.Object) (tengo.Object, error) {
		path, err := stringArg(args)
		if err != nil {
			return nil, err
		}
		if err := e.Open(path); err != nil {
			return nil, err
		}
		return tengo.UndefinedValue, nil
	})

	fn("save", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) == 0 {
			return tengo.UndefinedValue, e.Save()
		}
		path, err := stringArg(args)
		if err != nil {
			return nil, err
		}
		return tengo.UndefinedValue, e.SaveAs(path)
	})

	fn("brush", func(args ...tengo.Object) (tengo.Object, error) {
		name, err := stringArg(args)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(name) == "" {
			e.SelectBrush(nil)
			return tengo.TrueValue, nil
		}
		if rt.brushes == nil {
			return tengo.FalseValue, nil
		}
		img, ok := rt.brushes.Get(name)
		if !ok {
			rt.logger.Warn("unknown brush", "name", name)
			return tengo.FalseValue, nil
		}
		e.SelectBrush(img)
		return tengo.TrueValue, nil
	})

	fn("brushes", func(args ...tengo.Object) (tengo.Object, error) {
		arr := &tengo.Array{}
		if rt.brushes == nil {
			return arr, nil
		}
		for _, n := range rt.brushes.Names() {
			arr.Value = append(arr.Value, &tengo.String{Value: n})
		}
		return arr, nil
	})

	fn("tool", func(args ...tengo.Object) (tengo.Object, error) {
		name, err := stringArg(args)
		if err != nil {
			return nil, err
		}
		t, err := grid.ParseTool(name)
		if err != nil {
			return nil, err
		}
		return tengo.UndefinedValue, e.SetTool(t)
	})

	fn("layer", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		l, err := layerArg(args[0])
		if err != nil {
			return nil, err
		}
		return tengo.UndefinedValue, e.SetLayerEnabled(l, !args[1].IsFalsy())
	})

	fn("show", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		l, err := layerArg(args[0])
		if err != nil {
			return nil, err
		}
		return tengo.UndefinedValue, e.SetActiveLayer(l)
	})

	fn("paint", func(args ...tengo.Object) (tengo.Object, error) {
		x, y, err := cellArgs(args)
		if err != nil {
			return nil, err
		}
		return boolObject(e.PaintAt(x, e.TopRow(y))), nil
	})

	fn("stamp", func(args ...tengo.Object) (tengo.Object, error) {
		x, y, err := cellArgs(args)
		if err != nil {
			return nil, err
		}
		return boolObject(e.PaintAt(x, y)), nil
	})

	fn("fill", func(args ...tengo.Object) (tengo.Object, error) {
		x, y, err := cellArgs(args)
		if err != nil {
			return nil, err
		}
		return boolObject(e.FillFrom(x, e.TopRow(y))), nil
	})

	fn("zoom_in", func(args ...tengo.Object) (tengo.Object, error) {
		e.ZoomIn()
		return &tengo.Float{Value: e.Magnifier()}, nil
	})

	fn("zoom_out", func(args ...tengo.Object) (tengo.Object, error) {
		e.ZoomOut()
		return &tengo.Float{Value: e.Magnifier()}, nil
	})

	fn("size", func(args ...tengo.Object) (tengo.Object, error) {
		w, h := 0, 0
		if doc := e.Document(); doc != nil {
			w, h = doc.CellWidth, doc.CellHeight
		}
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Int{Value: int64(w)},
			&tengo.Int{Value: int64(h)},
		}}, nil
	})

	fn("report", func(args ...tengo.Object) (tengo.Object, error) {
		out := &tengo.Map{Value: map[string]tengo.Object{}}
		doc := e.Document()
		if doc == nil {
			return out, nil
		}
		for c, cells := range behavior.Classify(doc.Behavior) {
			arr := &tengo.Array{}
			for _, cell := range cells {
				arr.Value = append(arr.Value, &tengo.Array{Value: []tengo.Object{
					&tengo.Int{Value: int64(cell.Col)},
					&tengo.Int{Value: int64(cell.Row)},
				}})
			}
			out.Value[c.Label()] = arr
		}
		return out, nil
	})

	fn("log", func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		rt.logger.Info(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	})

	return &tengo.ImmutableMap{Value: values}
}

func cellArgs(args []tengo.Object) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, tengo.ErrWrongNumArguments
	}
	x, ok := tengo.ToInt(args[0])
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: "first", Expected: "int", Found: args[0].TypeName()}
	}
	y, ok := tengo.ToInt(args[1])
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: "second", Expected: "int", Found: args[1].TypeName()}
	}
	return x, y, nil
}

func stringArg(args []tengo.Object) (string, error) {
	if len(args) != 1 {
		return "", tengo.ErrWrongNumArguments
	}
	s, ok := args[0].(*tengo.String)
	if !ok {
		return "", tengo.ErrInvalidArgumentType{Name: "first", Expected: "string", Found: args[0].TypeName()}
	}
	return s.Value, nil
}

func layerArg(obj tengo.Object) (layers.Layer, error) {
	s, ok := obj.(*tengo.String)
	if !ok {
		return 0, tengo.ErrInvalidArgumentType{Name: "first", Expected: "string", Found: obj.TypeName()}
	}
	return layers.ParseLayer(s.Value)
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

// brushgen writes the packaged brush registry: the list of background,
// foreground and behavior triples found under the assets brush tree.
//
// Usage:
//
//	brushgen -assets ../assets -out registry_gen.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"text/template"

	"github.com/charmbracelet/log"
	"golang.org/x/tools/imports"

	"github.com/milk9111/leveleditor/brushes"
)

var registryTemplate = template.Must(template.New("registry").Parse(`// Code generated by brushgen; DO NOT EDIT.

package {{.Package}}

// Registry lists the packaged brush triples, sorted by name.
var Registry = []Asset{
{{- range .Assets}}
	{
		Name: {{printf "%q" .Name}},
		Background: {{printf "%q" .Background}},
		{{- if .Foreground}}
		Foreground: {{printf "%q" .Foreground}},
		{{- end}}
		Behavior: {{printf "%q" .Behavior}},
	},
{{- end}}
}
`))

func main() {
	assetsDir := flag.String("assets", "assets", "directory holding the brushes tree")
	root := flag.String("root", "brushes", "brush tree below the assets directory")
	out := flag.String("out", "registry_gen.go", "output file")
	pkg := flag.String("package", "brushes", "package name of the output")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "brushgen"})

	list, err := brushes.Discover(os.DirFS(*assetsDir), *root)
	if err != nil {
		logger.Fatal("discover brushes", "error", err)
	}
	src, err := generate(*pkg, *out, list)
	if err != nil {
		logger.Fatal("generate registry", "error", err)
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		logger.Fatal("write registry", "error", err)
	}
	logger.Info("wrote registry", "file", *out, "brushes", len(list))
}

// generate renders and formats the registry source for list.
func generate(pkg, filename string, list []brushes.Asset) ([]byte, error) {
	var buf bytes.Buffer
	err := registryTemplate.Execute(&buf, struct {
		Package string
		Assets  []brushes.Asset
	}{pkg, list})
	if err != nil {
		return nil, fmt.Errorf("brushgen: %w", err)
	}
	src, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("brushgen: format: %w", err)
	}
	return src, nil
}

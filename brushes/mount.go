package brushes

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Mount is a brush source together with the assets it provides.
type Mount struct {
	Source Source
	Assets []Asset
}

//go:generate go run ../cmd/brushgen -assets ../assets -out registry_gen.go

// Packaged mounts the embedded registry.
func Packaged() Mount {
	return Mount{Source: Embedded(), Assets: Registry}
}

// DirMount discovers the brush triples stored below dir.
func DirMount(dir string) (Mount, error) {
	list, err := Discover(os.DirFS(dir), ".")
	if err != nil {
		return Mount{}, fmt.Errorf("brushes: %s: %w", dir, err)
	}
	return Mount{Source: DirSource{Root: dir}, Assets: list}, nil
}

// LoadMounts builds one catalog from several mounts. A brush key provided by
// an earlier mount shadows the same key in later ones.
func LoadMounts(mounts []Mount, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	seen := map[string]bool{}
	src := make(mountSource, len(mounts))
	var list []Asset
	for i, m := range mounts {
		src[i] = m.Source
		var keys []string
		for _, a := range m.Assets {
			key := Key(a.Name)
			if seen[key] {
				logger.Debug("brush shadowed", "name", a.Name, "mount", i)
				continue
			}
			keys = append(keys, key)
			list = append(list, Asset{
				Name:       a.Name,
				Background: mountPath(i, a.Background),
				Foreground: mountPath(i, a.Foreground),
				Behavior:   mountPath(i, a.Behavior),
			})
		}
		for _, k := range keys {
			seen[k] = true
		}
	}
	return Load(src, list, logger)
}

// LoadDirs mounts each directory in order ahead of the packaged brushes.
// Directories that cannot be mounted are logged and skipped.
func LoadDirs(dirs []string, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	var mounts []Mount
	for _, dir := range dirs {
		m, err := DirMount(dir)
		if err != nil {
			logger.Warn("ignoring brush directory", "dir", dir, "error", err)
			continue
		}
		mounts = append(mounts, m)
	}
	return LoadMounts(append(mounts, Packaged()), logger)
}

func mountPath(i int, name string) string {
	if name == "" {
		return ""
	}
	return strconv.Itoa(i) + ":" + name
}

// mountSource routes "<index>:<name>" to the index-th source.
type mountSource []Source

func (m mountSource) Read(name string) ([]byte, error) {
	prefix, rest, ok := strings.Cut(name, ":")
	i, err := strconv.Atoi(prefix)
	if !ok || err != nil || i < 0 || i >= len(m) {
		return nil, fmt.Errorf("brushes: %s: %w", name, fs.ErrNotExist)
	}
	return m[i].Read(rest)
}

func (m mountSource) ReadImage(name string) (image.Image, error) {
	return readImage(m, name)
}

package assets

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed brushes
var assetsFS embed.FS

// FS exposes the embedded asset tree. Brush triples live under
// brushes/{backgrounds,foregrounds,behaviors}.
func FS() fs.FS {
	return assetsFS
}

// CleanPath turns an absolute or assets/-prefixed path into the slash
// separated form used as an embed key.
func CleanPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return strings.TrimPrefix(s, "./")
}

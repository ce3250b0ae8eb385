package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "editor.yaml"

// localDir is searched relative to the working directory.
var localDir = "configs"

// Load reads the editor settings.
// Search order: customPath -> ~/.leveleditor/editor.yaml -> ./configs/editor.yaml -> embedded default
func Load(customPath string) (Editor, error) {
	var cfg Editor

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(fileName), filepath.Join(localDir, fileName)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var c Editor
		if err := yaml.Unmarshal(data, &c); err != nil {
			continue
		}
		if err := c.Validate(); err != nil {
			continue
		}
		return c, nil
	}

	if err := yaml.Unmarshal(defaultEditorYAML, &cfg); err != nil {
		return Default(), nil
	}
	if err := cfg.Validate(); err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// userConfigPath returns the path under ~/.leveleditor, or "" without a home.
func userConfigPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".leveleditor", name)
}

// Path reports which file Load would read, or "" for the embedded default.
func Path(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range []string{userConfigPath(fileName), filepath.Join(localDir, fileName)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

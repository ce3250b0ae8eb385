//go:build dialog
// +build dialog

package main

import (
	"errors"

	"github.com/sqweek/dialog"
)

const nativeDialogs = true

// openLevelDialog asks for a level to open. ok is false when cancelled.
func openLevelDialog() (path string, ok bool, err error) {
	path, err = dialog.File().Filter("Level files", "lve").Title("Open level").Load()
	if errors.Is(err, dialog.Cancelled) {
		return "", false, nil
	}
	return path, err == nil, err
}

// saveLevelDialog asks where to save the level. ok is false when cancelled.
func saveLevelDialog() (path string, ok bool, err error) {
	path, err = dialog.File().Filter("Level files", "lve").Title("Save level").Save()
	if errors.Is(err, dialog.Cancelled) {
		return "", false, nil
	}
	return path, err == nil, err
}

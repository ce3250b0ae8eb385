//go:build !dialog
// +build !dialog

package main

import "errors"

const nativeDialogs = false

var errNoDialog = errors.New("native file dialog unavailable; type a path or build with -tags dialog")

func openLevelDialog() (string, bool, error) {
	return "", false, errNoDialog
}

func saveLevelDialog() (string, bool, error) {
	return "", false, errNoDialog
}

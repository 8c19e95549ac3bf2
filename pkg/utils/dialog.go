//go:build !test

package utils

import "github.com/sqweek/dialog"

// AskForFile shows an open dialog for an 8080 program image, starting
// in startingDir.
func AskForFile(title, startingDir string) (string, error) {
	return dialog.File().
		SetStartDir(startingDir).
		Title(title).
		Filter("8080 programs", "com", "bin", "rom").
		Filter("Archives", "gz", "zip", "7z", "rar").
		Load()
}

//go:build !test

package utils

import (
	"golang.design/x/clipboard"
)

// CopyText copies text to the system clipboard.
func CopyText(text string) error {
	if err := clipboard.Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

package views

import (
	"bytes"
	"image"
	"image/png"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// WindowedView gives a view access to the window it runs in, for
// dialogs.
type WindowedView struct {
	Window fyne.Window
}

// error shows err in a dialog. A nil err is ignored.
func (w *WindowedView) error(err error) {
	if err == nil || w.Window == nil {
		return
	}
	dialog.ShowError(err, w.Window)
}

// saveFile asks where to save b, suggesting name.
func (w *WindowedView) saveFile(b []byte, name string) {
	d := dialog.NewFileSave(func(closer fyne.URIWriteCloser, err error) {
		if err != nil {
			w.error(err)
			return
		}
		if closer == nil {
			return
		}
		defer closer.Close()
		_, err = closer.Write(b)
		w.error(err)
	}, w.Window)
	d.SetFileName(name)
	d.Show()
}

// savePNG encodes img and saves it like saveFile.
func (w *WindowedView) savePNG(img image.Image, name string) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		w.error(err)
		return
	}
	w.saveFile(buf.Bytes(), name)
}

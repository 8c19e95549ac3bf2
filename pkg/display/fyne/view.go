package fyne

import (
	"fyne.io/fyne/v2"
	"github.com/thelolagemann/go-8080/pkg/display/event"
)

// View defines the interface contract for a view.
type View interface {
	// Run populates window and returns. The view keeps updating
	// from events until the channel is closed or an event.Quit
	// arrives.
	Run(window fyne.Window, events <-chan event.Event) error
	// Title returns a unique title for the view.
	Title() string
}

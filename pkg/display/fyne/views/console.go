package views

import (
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/go-8080/pkg/display"
	"github.com/thelolagemann/go-8080/pkg/display/event"
)

// Console shows everything the program has written to its console.
type Console struct {
	Emulator display.Emulator
	WindowedView

	mu     sync.Mutex
	output strings.Builder
}

func (c *Console) Title() string {
	return "Console"
}

func (c *Console) Run(window fyne.Window, events <-chan event.Event) error {
	c.Window = window

	c.mu.Lock()
	c.output.Reset()
	c.output.WriteString(c.Emulator.Output())
	text := widget.NewTextGridFromString(c.output.String())
	c.mu.Unlock()

	scroll := container.NewScroll(text)
	save := widget.NewButton("Save", func() {
		c.mu.Lock()
		b := []byte(c.output.String())
		c.mu.Unlock()
		c.saveFile(b, "output.txt")
	})
	window.SetContent(container.NewBorder(nil, container.NewHBox(save), nil, nil, scroll))
	window.Resize(fyne.NewSize(640, 400))

	go func() {
		for e := range events {
			switch e.Type {
			case event.Quit:
				return
			case event.Output:
				data, ok := e.Data.([]byte)
				if !ok {
					continue
				}
				c.mu.Lock()
				c.output.Write(data)
				s := c.output.String()
				c.mu.Unlock()

				text.SetText(strings.ReplaceAll(s, "\r", ""))
				scroll.ScrollToBottom()
			}
		}
	}()

	return nil
}

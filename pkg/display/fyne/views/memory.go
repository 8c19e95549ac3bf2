package views

import (
	"fmt"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/go-8080/pkg/display"
	"github.com/thelolagemann/go-8080/pkg/display/event"
)

// Memory is a hex dump of the full 64K address space.
type Memory struct {
	Emulator display.Emulator

	mu   sync.Mutex
	data []byte
}

func (m *Memory) Title() string {
	return "Memory"
}

func (m *Memory) Run(window fyne.Window, events <-chan event.Event) error {
	m.snapshot()
	list := m.createHexList()
	window.SetContent(container.NewPadded(list))
	window.Resize(fyne.NewSize(720, 480))

	go func() {
		for e := range events {
			if e.Type == event.Quit {
				return
			}
			m.snapshot()
			list.Refresh()
		}
	}()

	return nil
}

func (m *Memory) snapshot() {
	data := m.Emulator.Dump(0x0000, 0xFFFF)
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
}

func (m *Memory) createHexList() *widget.List {
	return widget.NewList(
		func() int {
			return 0x10000 / 16
		},
		func() fyne.CanvasObject {
			fg := themeColor(theme.ColorNameForeground)
			hexLabels := make([]fyne.CanvasObject, 16)
			for i := range hexLabels {
				hexLabels[i] = mono("00", fg)
			}
			asciiLabels := make([]fyne.CanvasObject, 16)
			for i := range asciiLabels {
				asciiLabels[i] = mono(".", fg)
			}

			return container.NewHBox(
				mono("0000", fg),
				mono("  ", fg),
				container.NewHBox(hexLabels...),
				mono("  ", fg),
				container.NewHBox(asciiLabels...),
			)
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			m.mu.Lock()
			address, hexValues, asciiValues := formatRow(id*16, m.data)
			m.mu.Unlock()

			fg := themeColor(theme.ColorNameForeground)
			hbox := item.(*fyne.Container)
			hbox.Objects[0].(*canvas.Text).Text = address
			hbox.Objects[0].Refresh()

			hexContainer := hbox.Objects[2].(*fyne.Container)
			for i, hexText := range hexValues {
				hexLabel := hexContainer.Objects[i].(*canvas.Text)
				hexLabel.Text = hexText
				hexLabel.Color = dimmed(hexText == "00", fg)
				hexLabel.Refresh()
			}

			asciiContainer := hbox.Objects[4].(*fyne.Container)
			for i, asciiText := range asciiValues {
				asciiLabel := asciiContainer.Objects[i].(*canvas.Text)
				asciiLabel.Text = asciiText
				asciiLabel.Color = dimmed(asciiText == ".", fg)
				asciiLabel.Refresh()
			}
		},
	)
}

func dimmed(dim bool, fg color.Color) color.Color {
	if dim {
		return color.RGBA{0x7f, 0x7f, 0x7f, 255}
	}
	return fg
}

// formatRow formats the 16 bytes of data starting at offset.
func formatRow(offset int, data []byte) (string, []string, []string) {
	address := fmt.Sprintf("%04X", offset)

	hexValues := make([]string, 16)
	asciiValues := make([]string, 16)
	for i := 0; i < 16; i++ {
		if offset+i >= len(data) {
			hexValues[i], asciiValues[i] = "  ", " "
			continue
		}
		hexValues[i] = fmt.Sprintf("%02X", data[offset+i])
		asciiValues[i] = formatASCII(data[offset+i])
	}

	return address, hexValues, asciiValues
}

// formatASCII returns b as a printable character, or "." if it has
// none.
func formatASCII(b byte) string {
	if b < 0x20 || b > 0x7E {
		return "."
	}
	return string(rune(b))
}

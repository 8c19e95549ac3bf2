package views

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/go-8080/pkg/display"
	"github.com/thelolagemann/go-8080/pkg/display/event"
)

// disassemblyLines is the number of instructions shown.
const disassemblyLines = 32

// Disassembly lists the instructions around PC, or from an address
// entered by the user.
type Disassembly struct {
	Emulator display.Emulator
	WindowedView

	follow bool
	origin uint16
}

func (d *Disassembly) Title() string {
	return "Disassembly"
}

func (d *Disassembly) Run(window fyne.Window, events <-chan event.Event) error {
	d.Window = window
	d.follow = true

	text := widget.NewTextGrid()
	render := func() {
		origin := d.origin
		if d.follow {
			origin = d.Emulator.Registers().PC
		}
		pc := d.Emulator.Registers().PC

		var s string
		for _, line := range d.Emulator.Disassemble(origin, disassemblyLines) {
			marker := "  "
			if line.Address == pc {
				marker = "> "
			}
			s += marker + line.String() + "\n"
		}
		text.SetText(s)
	}

	address := widget.NewEntry()
	address.SetPlaceHolder("address (hex)")
	address.OnSubmitted = func(s string) {
		v, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			d.error(fmt.Errorf("invalid address %q", s))
			return
		}
		d.origin, d.follow = uint16(v), false
		render()
	}
	follow := widget.NewCheck("Follow PC", func(b bool) {
		d.follow = b
		render()
	})
	follow.SetChecked(true)

	window.SetContent(container.NewBorder(container.NewBorder(nil, nil, nil, follow, address), nil, nil, nil, text))
	render()

	go func() {
		for e := range events {
			if e.Type == event.Quit {
				return
			}
			render()
		}
	}()

	return nil
}

//go:build !test

package views

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"github.com/thelolagemann/go-8080/pkg/display"
	"github.com/thelolagemann/go-8080/pkg/display/event"
	"github.com/thelolagemann/go-8080/pkg/utils"
)

var (
	registerNames = []string{"A", "F", "B", "C", "D", "E", "H", "L", "SP", "PC"}
	flagNames     = []string{"S", "Z", "AC", "P", "CY"}
)

// CPU shows the registers and flags of the emulator. Tapping a
// register copies its value to the clipboard.
type CPU struct {
	WindowedView
	Emulator display.Emulator
}

func (c *CPU) Title() string {
	return "CPU"
}

func (c *CPU) Run(window fyne.Window, events <-chan event.Event) error {
	c.Window = window
	fg := themeColor(theme.ColorNameForeground)

	values := make(map[string]*canvas.Text, len(registerNames))
	registers := container.NewGridWithColumns(4)
	for _, name := range registerNames {
		value := mono("00", fg)
		values[name] = value
		registers.Add(bold(name))
		registers.Add(newWrappedTappable(func() {
			c.error(utils.CopyText(value.Text))
		}, value))
	}

	checks := make(map[string]*staticCheckbox, len(flagNames))
	flags := container.NewHBox()
	for _, name := range flagNames {
		checks[name] = newStaticCheckbox(name, false)
		flags.Add(checks[name])
	}

	status := mono("", fg)
	cycles := mono("", fg)

	window.SetContent(container.NewVBox(
		newCard("Registers", registers),
		newCard("Flags", flags),
		newCard("Machine", container.NewGridWithColumns(2, bold("Status"), status, bold("Cycles"), cycles)),
	))

	refresh := func() {
		r := c.Emulator.Registers()
		for name, v := range map[string]uint8{"A": r.A, "F": r.F, "B": r.B, "C": r.C, "D": r.D, "E": r.E, "H": r.H, "L": r.L} {
			values[name].Text = fmt.Sprintf("%02X", v)
		}
		values["SP"].Text = fmt.Sprintf("%04X", r.SP)
		values["PC"].Text = fmt.Sprintf("%04X", r.PC)
		for _, v := range values {
			v.Refresh()
		}
		for name, set := range c.Emulator.Flags() {
			if check, ok := checks[name]; ok {
				check.Checked = set
				check.Refresh()
			}
		}
		status.Text = c.Emulator.Status().String()
		status.Refresh()
		cycles.Text = fmt.Sprintf("%d", c.Emulator.Cycles())
		cycles.Refresh()
	}
	refresh()

	go func() {
		for e := range events {
			if e.Type == event.Quit {
				return
			}
			refresh()
		}
	}()

	return nil
}

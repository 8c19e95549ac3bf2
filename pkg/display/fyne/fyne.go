//go:build !test

// Package fyne is a debugger front end for the emulator. The main
// window shows the console of the running program; registers, memory,
// disassembly, performance and the log open as separate windows.
package fyne

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/thelolagemann/go-8080/pkg/display"
	"github.com/thelolagemann/go-8080/pkg/display/event"
	"github.com/thelolagemann/go-8080/pkg/display/fyne/themes"
	"github.com/thelolagemann/go-8080/pkg/display/fyne/views"
	"github.com/thelolagemann/go-8080/pkg/emulator"
	"github.com/thelolagemann/go-8080/pkg/log"
)

// speeds offered in the emulation menu, in MHz. 0 is unthrottled.
var speeds = []float64{0, 2, 3.1, 10, 25}

type fyneWindow struct {
	fyne.Window
	view   View
	events chan event.Event
}

// Application is the fyne display.Driver.
type Application struct {
	app        fyne.App
	emu        display.Emulator
	mainWindow fyne.Window

	mu sync.Mutex
	// Windows are the open view windows, the main window included
	Windows []*fyneWindow

	// Log collects log entries for the log view
	Log *views.Log

	open string // views to open on start
}

var (
	application = &Application{}

	_ display.Driver     = application
	_ display.LogWrapper = application
)

func init() {
	display.Install("fyne", application, []display.DriverOption{
		{
			Name:        "views",
			Default:     "",
			Value:       &application.open,
			Description: "comma separated views to open on start (cpu, memory, disassembly, performance, log)",
			Type:        "string",
		},
	})
}

func (a *Application) Initialize(emu display.Emulator) {
	a.emu = emu
	if a.Log == nil {
		a.Log = &views.Log{Next: log.New()}
	}
}

// WrapLogger keeps what the emulator logs for the log view, passing
// it on to next.
func (a *Application) WrapLogger(next log.Logger) log.Logger {
	a.Log = &views.Log{Next: next}
	return a.Log
}

// Start runs the application and blocks until the main window is
// closed or an event.Quit is received.
func (a *Application) Start(events <-chan event.Event) error {
	a.app = app.NewWithID("go-8080")
	a.app.Settings().SetTheme(themes.Default{})

	a.mainWindow = a.app.NewWindow("go-8080")
	a.mainWindow.SetMaster()
	if err := a.runView(a.mainWindow, &views.Console{Emulator: a.emu}); err != nil {
		return err
	}
	a.mainWindow.SetMainMenu(a.menu())
	a.mainWindow.Canvas().SetOnTypedKey(a.typedKey)

	for _, name := range strings.Split(a.open, ",") {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		view := a.view(name)
		if view == nil {
			a.Log.Errorf("fyne: unknown view %q", name)
			continue
		}
		a.openWindowIfNotOpen(view)
	}

	go a.dispatch(events)

	a.mainWindow.ShowAndRun()
	return nil
}

func (a *Application) Stop() error {
	if a.app != nil {
		a.app.Quit()
	}
	return nil
}

// dispatch forwards events to every open window until the channel
// closes or an event.Quit arrives.
func (a *Application) dispatch(events <-chan event.Event) {
	for e := range events {
		switch e.Type {
		case event.Quit:
			a.broadcast(e)
			a.app.Quit()
			return
		case event.Title:
			if title, ok := e.Data.(string); ok {
				a.mainWindow.SetTitle(title)
			}
		case event.Status:
			a.broadcast(e)
			a.mainWindow.SetMainMenu(a.menu())
		default:
			a.broadcast(e)
		}
	}
}

// broadcast sends e to every window, skipping those that are
// behind.
func (a *Application) broadcast(e event.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, w := range a.Windows {
		select {
		case w.events <- e:
		default:
		}
	}
}

// runView runs view in w and registers it for events.
func (a *Application) runView(w fyne.Window, view View) error {
	win := &fyneWindow{
		Window: w,
		view:   view,
		events: make(chan event.Event, 64),
	}

	a.mu.Lock()
	a.Windows = append(a.Windows, win)
	a.mu.Unlock()

	w.SetOnClosed(func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		close(win.events)
		for i, other := range a.Windows {
			if other == win {
				a.Windows = append(a.Windows[:i], a.Windows[i+1:]...)
				break
			}
		}
	})

	return view.Run(w, win.events)
}

func (a *Application) openWindowIfNotOpen(view View) {
	a.mu.Lock()
	for _, w := range a.Windows {
		if w.view.Title() == view.Title() {
			a.mu.Unlock()
			w.RequestFocus()
			return
		}
	}
	a.mu.Unlock()

	w := a.app.NewWindow(view.Title())
	if err := a.runView(w, view); err != nil {
		a.Log.Errorf("fyne: opening %s: %v", view.Title(), err)
		w.Close()
		return
	}
	w.Show()
}

// view returns a new view by its flag name.
func (a *Application) view(name string) View {
	switch strings.ToLower(name) {
	case "cpu":
		return &views.CPU{Emulator: a.emu}
	case "memory":
		return &views.Memory{Emulator: a.emu}
	case "disassembly":
		return &views.Disassembly{Emulator: a.emu}
	case "performance":
		return &views.Performance{}
	case "log":
		return a.Log
	}
	return nil
}

// command sends p to the emulator, reporting failures to the log,
// and refreshes every window.
func (a *Application) command(p emulator.CommandPacket) {
	if resp := a.emu.SendCommand(p); resp.Error != nil {
		a.Log.Errorf("fyne: %s: %v", p.Command, resp.Error)
	}
	a.broadcast(event.Event{Type: event.Status, Data: a.emu.Status()})
	a.mainWindow.SetMainMenu(a.menu())
}

func (a *Application) togglePause() {
	if a.emu.Status() == emulator.Paused {
		a.command(display.Resume)
	} else {
		a.command(display.Pause)
	}
}

func (a *Application) typedKey(e *fyne.KeyEvent) {
	switch e.Name {
	case fyne.KeyP:
		a.togglePause()
	case fyne.KeyN:
		if a.emu.Status() == emulator.Paused {
			a.command(display.Step)
		}
	case fyne.KeyR:
		a.command(display.Reset)
	}
}

func (a *Application) menu() *fyne.MainMenu {
	paused := a.emu.Status() == emulator.Paused

	speed := fyne.NewMenuItem("Speed", nil)
	speed.ChildMenu = fyne.NewMenu("")
	for _, mhz := range speeds {
		mhz := mhz
		label := "Unthrottled"
		if mhz > 0 {
			label = fmt.Sprintf("%g MHz", mhz)
		}
		speed.ChildMenu.Items = append(speed.ChildMenu.Items, NewCustomizedMenuItem(label, func() {}, Checked(a.emu.Speed() == mhz, func() {
			a.command(emulator.CommandPacket{Command: emulator.CommandSetSpeed, Data: []byte{uint8(mhz * 10)}})
		})))
	}

	emuMenu := fyne.NewMenu("Emulation",
		NewCustomizedMenuItem("Paused", func() {}, Checked(paused, a.togglePause)),
		NewCustomizedMenuItem("Step", func() { a.command(display.Step) }, Gated(!paused)),
		NewCustomizedMenuItem("Reset", func() { a.command(display.Reset) }),
		fyne.NewMenuItemSeparator(),
		speed,
	)

	debugMenu := fyne.NewMenu("Debug")
	for _, name := range []string{"CPU", "Memory", "Disassembly", "", "Performance", "Log"} {
		if name == "" {
			debugMenu.Items = append(debugMenu.Items, fyne.NewMenuItemSeparator())
			continue
		}
		name := name
		debugMenu.Items = append(debugMenu.Items, fyne.NewMenuItem(name, func() {
			a.openWindowIfNotOpen(a.view(name))
		}))
	}

	return fyne.NewMainMenu(emuMenu, debugMenu)
}

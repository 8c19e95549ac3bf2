package views

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/go-8080/pkg/display/event"
	"github.com/thelolagemann/go-8080/pkg/log"
)

// maxLogEntries is the number of entries kept on screen.
const maxLogEntries = 20

// Log is a log.Logger that keeps the entries for display and passes
// them on to Next.
type Log struct {
	sync.RWMutex
	Next log.Logger

	entries []string
}

func (l *Log) Title() string {
	return "Log"
}

func (l *Log) add(level, format string, args ...interface{}) {
	l.Lock()
	defer l.Unlock()

	l.entries = append(l.entries, level+" "+fmt.Sprintf(format, args...))
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
}

func (l *Log) Infof(format string, args ...interface{}) {
	l.add("[INFO]", format, args...)
	if l.Next != nil {
		l.Next.Infof(format, args...)
	}
}

func (l *Log) Errorf(format string, args ...interface{}) {
	l.add("[ERROR]", format, args...)
	if l.Next != nil {
		l.Next.Errorf(format, args...)
	}
}

func (l *Log) Debugf(format string, args ...interface{}) {
	l.add("[DEBUG]", format, args...)
	if l.Next != nil {
		l.Next.Debugf(format, args...)
	}
}

func (l *Log) Fatal(str string) {
	l.add("[FATAL]", "%s", str)
	if l.Next != nil {
		l.Next.Fatal(str)
	}
}

// Entries returns the retained entries, oldest first.
func (l *Log) Entries() []string {
	l.RLock()
	defer l.RUnlock()
	return append([]string(nil), l.entries...)
}

func (l *Log) Run(window fyne.Window, events <-chan event.Event) error {
	view := container.NewVBox()
	window.SetContent(container.NewVScroll(view))
	window.Resize(fyne.NewSize(640, 320))

	render := func() {
		view.Objects = view.Objects[:0]
		for _, entry := range l.Entries() {
			view.Add(widget.NewLabel(entry))
		}
		view.Refresh()
	}
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

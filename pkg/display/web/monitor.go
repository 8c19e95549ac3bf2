// Package web provides a display driver that serves the state of the
// emulator to websocket clients: registers, console output and memory
// pages, and accepts control commands from them.
package web

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/thelolagemann/go-8080/pkg/display"
	"github.com/thelolagemann/go-8080/pkg/display/event"
	"github.com/thelolagemann/go-8080/pkg/log"
)

// registerInterval is how often changed registers are broadcast.
const registerInterval = 100 * time.Millisecond

// Monitor is a display.Driver that exposes the emulator over a
// websocket.
type Monitor struct {
	addr        string
	compression bool
	level       float64

	hub    *hub
	server *http.Server
	ln     net.Listener
	ready  chan struct{}
	once   sync.Once

	Log log.Logger
}

var (
	monitor = &Monitor{}

	_ display.Driver     = monitor
	_ display.LogWrapper = monitor
)

func init() {
	display.Install("web", monitor, []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &monitor.addr,
			Description: "address the web monitor listens on",
			Type:        "string",
		},
		{
			Name:        "compression",
			Default:     true,
			Value:       &monitor.compression,
			Description: "compress memory pages with brotli",
			Type:        "bool",
		},
		{
			Name:        "compression-level",
			Default:     9.0,
			Value:       &monitor.level,
			Description: "brotli quality used for memory pages (0-11)",
			Type:        "float",
		},
	})
}

// NewMonitor returns a Monitor listening on addr.
func NewMonitor(addr string, compression bool, level int) *Monitor {
	return &Monitor{addr: addr, compression: compression, level: float64(level)}
}

// WrapLogger makes the monitor log through next, alongside the
// emulator.
func (m *Monitor) WrapLogger(next log.Logger) log.Logger {
	m.Log = next
	return next
}

func (m *Monitor) Initialize(emu display.Emulator) {
	m.hub = newHub(emu, m.compression, int(m.level))
	m.ready = make(chan struct{})
	if m.Log == nil {
		m.Log = log.New()
	}
}

// Addr blocks until the monitor is listening and returns its address.
func (m *Monitor) Addr() net.Addr {
	<-m.ready
	return m.ln.Addr()
}

func (m *Monitor) Start(events <-chan event.Event) error {
	ln, err := net.Listen("tcp", m.addr)
	if err != nil {
		return err
	}
	m.ln = ln
	m.server = &http.Server{Handler: m.hub.handler()}
	close(m.ready)

	go m.hub.run()
	go func() {
		if err := m.server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			m.Log.Errorf("web monitor: %v", err)
		}
	}()
	m.Log.Infof("web monitor listening on %s", ln.Addr())

	t := time.NewTicker(registerInterval)
	defer t.Stop()

	var last []byte
	for {
		select {
		case <-m.hub.done:
			return nil
		case e, ok := <-events:
			if !ok || e.Type == event.Quit {
				return m.Stop()
			}
			switch e.Type {
			case event.Output:
				if data, ok := e.Data.([]byte); ok {
					m.hub.send(append([]byte{Output}, data...))
				}
			case event.Status:
				last = m.hub.registers()
				m.hub.send(last)
			}
		case <-t.C:
			if msg := m.hub.registers(); !bytes.Equal(msg, last) {
				last = msg
				m.hub.send(msg)
			}
		}
	}
}

func (m *Monitor) Stop() error {
	var err error
	m.once.Do(func() {
		m.hub.close()
		if m.server == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		err = m.server.Shutdown(ctx)
	})
	return err
}

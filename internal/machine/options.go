package machine

import (
	goio "io"

	"github.com/thelolagemann/go-8080/internal/cpm"
	"github.com/thelolagemann/go-8080/internal/cpu"
	"github.com/thelolagemann/go-8080/internal/io"
	"github.com/thelolagemann/go-8080/pkg/log"
)

// Opt is a function that configures a Machine.
type Opt func(m *Machine)

// WithBase sets the address the program image is loaded at.
func WithBase(addr uint16) Opt {
	return func(m *Machine) {
		m.base = addr
	}
}

// WithEntry sets the address execution starts from.
func WithEntry(addr uint16) Opt {
	return func(m *Machine) {
		m.entry = addr
	}
}

// WithCPM loads the program as a CP/M .COM file: at the transient
// program area, started from its first byte, with the BDOS emulated.
func WithCPM(opts ...cpm.Opt) Opt {
	return func(m *Machine) {
		m.base, m.entry = cpm.TPA, cpm.TPA
		m.withCPM = true
		m.cpmOpts = append(m.cpmOpts, opts...)
	}
}

func WithLogger(l log.Logger) Opt {
	return func(m *Machine) {
		m.log = l
	}
}

// WithState restores a state saved with SaveState once the machine
// has been built.
func WithState(b []byte) Opt {
	return func(m *Machine) {
		m.state = b
	}
}

// Speed sets the clock speed in MHz. Zero, the default, runs as fast
// as possible.
func Speed(mhz float64) Opt {
	return func(m *Machine) {
		m.speed = mhz
	}
}

// WithMaxCycles stops Run with ErrCycleLimit once n cycles have run.
func WithMaxCycles(n uint64) Opt {
	return func(m *Machine) {
		m.maxCycles = n
	}
}

// WithUndocumented executes the undocumented opcodes as the
// instructions they alias.
func WithUndocumented() Opt {
	return func(m *Machine) {
		m.cpuOpts = append(m.cpuOpts, cpu.WithUndocumented())
	}
}

// WithObserver registers o to be called after every instruction.
func WithObserver(o Observer) Opt {
	return func(m *Machine) {
		m.observers = append(m.observers, o)
	}
}

// WithTrace writes a line for every executed instruction to w.
func WithTrace(w goio.Writer) Opt {
	return WithObserver(NewTracer(w).Observe)
}

// WithConsole configures the console attached to the bus.
func WithConsole(opts ...io.ConsoleOpt) Opt {
	return func(m *Machine) {
		m.consoleOpts = append(m.consoleOpts, opts...)
	}
}

type timerConfig struct {
	port   uint8
	period uint64
	opcode uint8
}

// WithTimer attaches an interval timer to port, raising RST vector
// every period cycles once the program enables it.
func WithTimer(port uint8, period uint64, vector uint8) Opt {
	return func(m *Machine) {
		m.timers = append(m.timers, timerConfig{port: port, period: period, opcode: io.RST(vector)})
	}
}

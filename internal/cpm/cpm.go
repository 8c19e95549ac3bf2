// Package cpm emulates the parts of the CP/M operating system that
// diagnostic programs such as TST8080.COM rely on.
//
// Programs call the BDOS by loading a function number into C and
// calling 0x0005. Instead of a real BDOS, a host hook is installed at
// that address over a RET, so the call returns straight to the
// program once the hook has done the work. A warm boot, a jump to
// 0x0000, lands on a HLT and ends the run.
package cpm

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/go-8080/internal/cpu"
	"github.com/thelolagemann/go-8080/internal/io"
	"github.com/thelolagemann/go-8080/pkg/log"
)

const (
	// WarmBoot is the address jumped to when a program exits.
	WarmBoot uint16 = 0x0000
	// Entry is the BDOS entry point.
	Entry uint16 = 0x0005
	// TPA is the start of the transient program area, where
	// programs are loaded and started.
	TPA uint16 = 0x0100

	// Version is reported by S_BDOSVER: CP/M 2.2.
	Version uint16 = 0x0022

	opcodeHLT = 0x76
	opcodeRET = 0xC9

	// maxString bounds C_WRITESTRING when no '$' terminator is found.
	maxString = 0x10000
)

// BDOS function numbers, passed in C.
const (
	TermCPM     uint8 = 0  // P_TERMCPM
	ConsoleIn   uint8 = 1  // C_READ
	ConsoleOut  uint8 = 2  // C_WRITE
	RawIO       uint8 = 6  // C_RAWIO
	WriteString uint8 = 9  // C_WRITESTRING
	Status      uint8 = 11 // C_STAT
	BDOSVersion uint8 = 12 // S_BDOSVER
)

// ErrUnsupportedCall is returned in strict mode for BDOS functions
// that are not emulated.
var ErrUnsupportedCall = errors.New("cpm: unsupported BDOS call")

// Console is the input side of the terminal the BDOS reads from.
// ReadInput reports false when no byte is waiting yet.
type Console interface {
	ReadInput() (uint8, bool)
	TryReadByte() (uint8, bool)
	Ready() bool
}

// Memory is the memory the BDOS reads strings from and installs its
// vectors into.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// BDOS is a host side emulation of the CP/M Basic Disk Operating
// System. Console output is written to port io.ConsolePort of the
// output bus, exactly as a program doing OUT would.
type BDOS struct {
	out     cpu.Bus
	console Console
	port    uint8
	strict  bool
	log     log.Logger

	calls map[uint8]uint64
}

// Opt configures a BDOS.
type Opt func(*BDOS)

// WithConsole sets the console input is read from. Without one
// input calls see end of file.
func WithConsole(c Console) Opt {
	return func(b *BDOS) {
		b.console = c
	}
}

// WithPort sets the port console output is written to.
func WithPort(port uint8) Opt {
	return func(b *BDOS) {
		b.port = port
	}
}

// Strict makes unknown BDOS functions an error. By default they are
// logged and ignored.
func Strict() Opt {
	return func(b *BDOS) {
		b.strict = true
	}
}

// WithLogger sets the logger used to report unknown calls.
func WithLogger(l log.Logger) Opt {
	return func(b *BDOS) {
		b.log = l
	}
}

// New returns a BDOS writing console output to out.
func New(out cpu.Bus, opts ...Opt) *BDOS {
	b := &BDOS{
		out:     out,
		console: noConsole{},
		port:    io.ConsolePort,
		log:     log.NewNullLogger(),
		calls:   make(map[uint8]uint64),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Install writes the warm boot HLT and the BDOS RET into mem and
// registers the BDOS hook on c.
func (b *BDOS) Install(c *cpu.CPU, mem Memory) {
	mem.Write(WarmBoot, opcodeHLT)
	mem.Write(Entry, opcodeRET)
	c.AddHook(Entry, b.Call)
}

// Calls returns how many times each BDOS function has been called.
func (b *BDOS) Calls() map[uint8]uint64 {
	calls := make(map[uint8]uint64, len(b.calls))
	for fn, n := range b.calls {
		calls[fn] = n
	}
	return calls
}

// Call performs the BDOS function selected by C. It is a
// cpu.HookFunc; results are returned in A and L, with H and B
// cleared, as CP/M does. C_READ with no input waiting returns
// cpu.ErrWouldBlock without touching the CPU.
func (b *BDOS) Call(c *cpu.CPU) error {
	r := c.Registers()

	switch r.C {
	case TermCPM:
		r.PC = WarmBoot
	case ConsoleIn:
		ch, ok := b.console.ReadInput()
		if !ok {
			return cpu.ErrWouldBlock
		}
		b.write(ch)
		setResult(&r, ch)
	case ConsoleOut:
		b.write(r.E)
	case RawIO:
		switch r.E {
		case 0xFF:
			ch, _ := b.console.TryReadByte()
			setResult(&r, ch)
		case 0xFE:
			setResult(&r, b.status())
		default:
			b.write(r.E)
		}
	case WriteString:
		if err := b.writeString(c.Memory(), r.DE()); err != nil {
			return err
		}
	case Status:
		setResult(&r, b.status())
	case BDOSVersion:
		r.H, r.B = uint8(Version>>8), uint8(Version>>8)
		r.L, r.A = uint8(Version), uint8(Version)
	default:
		if b.strict {
			return fmt.Errorf("%w: function %d", ErrUnsupportedCall, r.C)
		}
		b.log.Debugf("cpm: ignoring unsupported BDOS function %d", r.C)
	}

	b.calls[r.C]++
	c.SetRegisters(r)
	return nil
}

// writeString writes the '$' terminated string at addr.
func (b *BDOS) writeString(mem cpu.Memory, start uint16) error {
	addr := start
	for i := 0; i < maxString; i++ {
		ch := mem.Read(addr)
		if ch == '$' {
			return nil
		}
		b.write(ch)
		addr++
	}
	return fmt.Errorf("cpm: string at 0x%04X has no terminator", start)
}

func (b *BDOS) write(ch uint8) {
	b.out.Out(b.port, ch)
}

func (b *BDOS) status() uint8 {
	if b.console.Ready() {
		return 0xFF
	}
	return 0x00
}

func setResult(r *cpu.Registers, value uint8) {
	r.A, r.L = value, value
	r.H, r.B = 0, 0
}

// noConsole is used when no console has been attached.
type noConsole struct{}

func (noConsole) ReadInput() (uint8, bool)   { return io.EOF, true }
func (noConsole) TryReadByte() (uint8, bool) { return 0, false }
func (noConsole) Ready() bool                { return false }

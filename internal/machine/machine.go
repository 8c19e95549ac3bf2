// Package machine ties the 8080 CPU to its memory, I/O bus and
// devices, and runs it.
package machine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/go-8080/internal/cpm"
	"github.com/thelolagemann/go-8080/internal/cpu"
	"github.com/thelolagemann/go-8080/internal/io"
	"github.com/thelolagemann/go-8080/internal/memory"
	"github.com/thelolagemann/go-8080/internal/types"
	"github.com/thelolagemann/go-8080/pkg/emulator"
	"github.com/thelolagemann/go-8080/pkg/log"
)

const (
	// batchCycles is roughly how many cycles Run executes between
	// checks of its context, pause state and speed.
	batchCycles = 20000
)

// ErrCycleLimit is returned by Run when the cycle limit set with
// WithMaxCycles is reached before the program halts.
var ErrCycleLimit = errors.New("machine: cycle limit reached")

// ErrWaitingForInput is returned by Step when the program is blocked
// reading the console and no input is waiting.
var ErrWaitingForInput = errors.New("machine: waiting for console input")

// Observer is called after every instruction with the opcode and
// address of the instruction and the cycles it took. Observers run
// with the machine locked and must not call back into it; they may
// inspect the CPU they are given.
type Observer func(c *cpu.CPU, opcode uint8, pc uint16, cycles uint8)

// Machine is an 8080 system: the CPU, 64K of memory, the I/O bus with
// a console attached, and optionally a CP/M BDOS. All of its exported
// methods are safe to call from other goroutines while Run is active.
type Machine struct {
	mu sync.Mutex

	cpu         *cpu.CPU
	mem         *memory.Memory
	bus         *io.Bus
	console     *io.Console
	bdos        *cpm.BDOS
	peripherals []types.Peripheral
	staters     []types.Stater

	image []byte
	base  uint16
	entry uint16

	cycles       uint64
	instructions uint64
	maxCycles    uint64
	speed        float64 // MHz, 0 is unthrottled
	status       emulator.Status
	err          error
	resume       chan struct{}
	throttle     struct {
		start  time.Time
		cycles uint64
	}

	observers []Observer

	// configuration consumed by New
	cpuOpts     []cpu.Opt
	consoleOpts []io.ConsoleOpt
	cpmOpts     []cpm.Opt
	withCPM     bool
	timers      []timerConfig
	state       []byte

	log log.Logger
}

// New creates a Machine with image loaded at the base address and
// the program counter at the entry address, both 0x0000 unless
// configured otherwise.
func New(image []byte, opts ...Opt) (*Machine, error) {
	m := &Machine{
		image:  image,
		status: emulator.Running,
		log:    log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.mem = memory.New()
	m.bus = io.NewBus()
	m.console = io.NewConsole(m.consoleOpts...)
	m.bus.Attach(io.ConsolePort, m.console)
	m.bus.Attach(io.ConsoleStatusPort, m.console)

	m.cpu = cpu.New(m.mem, m.bus, append([]cpu.Opt{cpu.WithLogger(m.log)}, m.cpuOpts...)...)
	m.staters = []types.Stater{m.cpu, m.mem}

	if m.withCPM {
		m.bdos = cpm.New(m.bus, append([]cpm.Opt{cpm.WithConsole(m.console), cpm.WithLogger(m.log)}, m.cpmOpts...)...)
	}

	for _, cfg := range m.timers {
		timer := io.NewTimer(m.cpu, cfg.period, cfg.opcode)
		m.bus.Attach(cfg.port, timer)
		m.peripherals = append(m.peripherals, timer)
		m.staters = append(m.staters, timer)
	}

	if err := m.load(); err != nil {
		return nil, err
	}

	if m.state != nil {
		if err := m.LoadState(m.state); err != nil {
			return nil, fmt.Errorf("machine: restoring state: %w", err)
		}
		m.state = nil
	}

	return m, nil
}

// load puts the program and, if enabled, the BDOS into memory and
// points the CPU at the entry address.
func (m *Machine) load() error {
	if err := m.mem.LoadImage(m.base, m.image); err != nil {
		return fmt.Errorf("machine: loading program: %w", err)
	}
	if m.bdos != nil {
		m.bdos.Install(m.cpu, m.mem)
	}
	r := m.cpu.Registers()
	r.PC = m.entry
	m.cpu.SetRegisters(r)

	m.log.Debugf("loaded %d bytes at 0x%04X, entry 0x%04X", len(m.image), m.base, m.entry)
	return nil
}

// Run executes the program until it halts, an error occurs, the cycle
// limit is reached or ctx is done. A halted CPU with interrupts
// enabled and a device that can interrupt it keeps running, waiting
// for the interrupt. While the program waits for console input the
// machine is unlocked and the wait ends with ctx.
func (m *Machine) Run(ctx context.Context) error {
	m.mu.Lock()
	m.resetThrottle()
	m.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if wait := m.pauseChannel(); wait != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-wait:
			}
			continue
		}

		done, err := m.runBatch()
		if errors.Is(err, cpu.ErrWouldBlock) {
			if err := m.console.WaitInput(ctx); err != nil {
				return err
			}
			m.mu.Lock()
			m.resetThrottle()
			m.mu.Unlock()
			continue
		}
		if err != nil || done {
			return err
		}

		m.sleep(ctx)
	}
}

// runBatch executes instructions until batchCycles have elapsed or
// the run is over. It returns an error wrapping cpu.ErrWouldBlock,
// without failing the machine, when the program blocks on input.
func (m *Machine) runBatch() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status == emulator.Halted || m.status == emulator.Errored {
		return true, m.err
	}

	target := m.cycles + batchCycles
	for m.cycles < target {
		if m.idle() {
			m.status = emulator.Halted
			m.log.Debugf("halted at 0x%04X after %d cycles", m.cpu.PC(), m.cycles)
			return true, nil
		}
		if m.maxCycles > 0 && m.cycles >= m.maxCycles {
			return true, m.fail(fmt.Errorf("%w after %d cycles", ErrCycleLimit, m.cycles))
		}
		if err := m.step(); err != nil {
			if errors.Is(err, cpu.ErrWouldBlock) {
				return false, err
			}
			return true, m.fail(err)
		}
	}
	return false, nil
}

// idle reports whether the CPU is halted with no way of waking up.
func (m *Machine) idle() bool {
	if !m.cpu.Halted() {
		return false
	}
	if m.cpu.InterruptPending() && m.cpu.InterruptsEnabled() {
		return false
	}
	return !m.cpu.InterruptsEnabled() || len(m.peripherals) == 0
}

// step executes a single instruction and clocks the peripherals.
func (m *Machine) step() error {
	cycles, err := m.cpu.Step()
	if err != nil {
		return err
	}
	m.cycles += uint64(cycles)
	m.instructions++

	for _, p := range m.peripherals {
		p.Step(cycles)
	}
	if len(m.observers) > 0 {
		opcode, pc := m.cpu.LastInstruction()
		for _, o := range m.observers {
			o(m.cpu, opcode, pc, cycles)
		}
	}
	return nil
}

func (m *Machine) fail(err error) error {
	m.status = emulator.Errored
	m.err = err
	m.log.Errorf("%v", err)
	return err
}

// sleep throttles Run to the configured speed.
func (m *Machine) sleep(ctx context.Context) {
	m.mu.Lock()
	if m.speed <= 0 {
		m.mu.Unlock()
		return
	}
	ran := m.cycles - m.throttle.cycles
	expected := time.Duration(float64(ran) / (m.speed * 1e6) * float64(time.Second))
	wait := expected - time.Since(m.throttle.start)
	m.mu.Unlock()

	if wait <= 0 {
		return
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (m *Machine) resetThrottle() {
	m.throttle.start = time.Now()
	m.throttle.cycles = m.cycles
}

func (m *Machine) pauseChannel() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resume
}

// Step executes a single instruction. It can be used while paused to
// single step through a program.
func (m *Machine) Step() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == emulator.Errored {
		return m.err
	}
	if err := m.step(); err != nil {
		if errors.Is(err, cpu.ErrWouldBlock) {
			return ErrWaitingForInput
		}
		return m.fail(err)
	}
	if m.idle() {
		m.status = emulator.Halted
	}
	return nil
}

// Pause stops Run between two batches until Resume is called.
func (m *Machine) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resume == nil {
		m.resume = make(chan struct{})
	}
}

// Resume continues a paused Run.
func (m *Machine) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resume != nil {
		close(m.resume)
		m.resume = nil
		m.resetThrottle()
	}
}

// Paused reports whether the machine is paused.
func (m *Machine) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resume != nil
}

// Status returns the status of the machine.
func (m *Machine) Status() emulator.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resume != nil && m.status == emulator.Running {
		return emulator.Paused
	}
	return m.status
}

// Err returns the error that stopped the machine, if any.
func (m *Machine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// SetSpeed sets the clock speed in MHz. Zero runs unthrottled.
func (m *Machine) SetSpeed(mhz float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speed = mhz
	m.resetThrottle()
}

// Speed returns the clock speed in MHz, 0 when unthrottled.
func (m *Machine) Speed() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speed
}

// SendCommand applies a control command received from a display
// driver.
func (m *Machine) SendCommand(p emulator.CommandPacket) emulator.ResponsePacket {
	return p.Apply(m)
}

// Reset restores the machine to the state it was created in, with
// the program reloaded and the console cleared.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cpu.Reset()
	m.mem.Reset()
	for _, p := range m.peripherals {
		if r, ok := p.(types.Resettable); ok {
			r.Reset()
		}
	}
	m.console.Reset()
	m.cycles, m.instructions = 0, 0
	m.status, m.err = emulator.Running, nil
	m.resetThrottle()

	if err := m.load(); err != nil {
		m.fail(err)
	}
}

// Interrupt posts an interrupt request to the CPU.
func (m *Machine) Interrupt(opcode uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cpu.Interrupt(opcode)
	if m.status == emulator.Halted && m.cpu.InterruptsEnabled() {
		m.status = emulator.Running
	}
}

// Cycles returns the number of clock cycles executed so far.
func (m *Machine) Cycles() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cycles
}

// Instructions returns the number of instructions executed so far.
func (m *Machine) Instructions() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.instructions
}

// Registers returns a copy of the CPU registers.
func (m *Machine) Registers() cpu.Registers {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cpu.Registers()
}

// Flags returns the state of every condition flag.
func (m *Machine) Flags() map[string]bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]bool{
		"S":  m.cpu.Flag(cpu.FlagSign),
		"Z":  m.cpu.Flag(cpu.FlagZero),
		"AC": m.cpu.Flag(cpu.FlagAuxCarry),
		"P":  m.cpu.Flag(cpu.FlagParity),
		"CY": m.cpu.Flag(cpu.FlagCarry),
	}
}

// InterruptsEnabled reports whether the CPU accepts interrupts.
func (m *Machine) InterruptsEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cpu.InterruptsEnabled()
}

// Dump returns a copy of memory from one address to another,
// inclusive.
func (m *Machine) Dump(from, to uint16) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mem.Dump(from, to)
}

// Disassemble disassembles count instructions starting at addr.
func (m *Machine) Disassemble(addr uint16, count int) []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]Line, 0, count)
	for i := 0; i < count; i++ {
		text, length := cpu.Disassemble(m.mem, addr)
		lines = append(lines, Line{Address: addr, Text: text, Bytes: m.mem.Dump(addr, addr+uint16(length)-1)})
		addr += uint16(length)
	}
	return lines
}

// Line is a single disassembled instruction.
type Line struct {
	Address uint16
	Text    string
	Bytes   []byte
}

func (l Line) String() string {
	return fmt.Sprintf("%04X  % -9X %s", l.Address, l.Bytes, l.Text)
}

// Console returns the console attached to the I/O bus.
func (m *Machine) Console() *io.Console {
	return m.console
}

// Output returns everything the program has written to the console.
func (m *Machine) Output() string {
	return m.console.Output()
}

// BDOS returns the CP/M BDOS, or nil when CP/M emulation is off.
func (m *Machine) BDOS() *cpm.BDOS {
	return m.bdos
}

// ProgramDigest returns the xxhash of the loaded program image. It
// identifies the program a snapshot belongs to.
func (m *Machine) ProgramDigest() uint64 {
	return xxhash.Sum64(m.image)
}

// Overview is a summary of the machine that holds no references into
// it, for dumping with tools that walk the object graph.
type Overview struct {
	Registers    cpu.Registers
	Flags        map[string]bool
	Status       string
	Cycles       uint64
	Instructions uint64
	BDOSCalls    map[uint8]uint64
	Output       string
	Error        string
}

// Overview returns a summary of the current state.
func (m *Machine) Overview() *Overview {
	o := &Overview{
		Registers:    m.Registers(),
		Flags:        m.Flags(),
		Status:       m.Status().String(),
		Cycles:       m.Cycles(),
		Instructions: m.Instructions(),
		Output:       m.Output(),
	}
	if m.bdos != nil {
		m.mu.Lock()
		o.BDOSCalls = m.bdos.Calls()
		m.mu.Unlock()
	}
	if err := m.Err(); err != nil {
		o.Error = err.Error()
	}
	return o
}

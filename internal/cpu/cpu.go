// Package cpu implements the Intel 8080 microprocessor.
//
// The CPU owns its register file and borrows a Memory and an I/O Bus
// from its caller. Execution is driven one instruction at a time by
// Step, which reports the number of clock cycles the instruction took.
package cpu

import (
	"fmt"

	"github.com/thelolagemann/go-8080/internal/types"
	"github.com/thelolagemann/go-8080/pkg/log"
)

const (
	// ClockSpeed is the clock speed of a stock 8080A in Hz.
	ClockSpeed = 2000000

	// haltCycles is reported for each Step spent halted.
	haltCycles = 4
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HLT and left by an accepted interrupt.
	ModeHalt
	// ModeEnableInterrupts is entered by EI. Interrupts become
	// enabled once the following instruction has executed.
	ModeEnableInterrupts
)

// Memory is the address space the CPU executes from.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	ReadWord(address uint16) uint16
	WriteWord(address uint16, value uint16)
}

// Bus is the I/O port space used by the IN and OUT instructions.
type Bus interface {
	In(port uint8) uint8
	Out(port uint8, value uint8)
}

// HookFunc is a host function run when the program counter reaches the
// address it was registered for, before the instruction at that
// address is fetched. Hooks may inspect and modify the CPU. A returned
// error aborts the step; a hook returning ErrWouldBlock must leave the
// CPU untouched.
type HookFunc func(c *CPU) error

// registers holds the 8080 register file. The register pairs are
// views over the 8-bit registers and hold no data of their own.
type registers struct {
	A, B, C, D, E, H, L types.Register
	F                   types.Register

	PC uint16
	SP uint16

	BC *types.RegisterPair
	DE *types.RegisterPair
	HL *types.RegisterPair
}

// CPU represents the Intel 8080. It is responsible for executing
// instructions.
type CPU struct {
	r registers

	mem Memory
	bus Bus

	mode mode
	ime  bool
	irq  struct {
		pending bool
		opcode  uint8
	}

	set   *[256]Instruction
	hooks map[uint16]HookFunc

	// taken is set by conditional CALL and RET handlers when the
	// branch was taken, selecting the longer cycle count.
	taken bool

	lastOpcode uint8
	lastPC     uint16

	log log.Logger
}

// Opt is a function that configures a CPU.
type Opt func(c *CPU)

// WithLogger sets the logger used by the CPU.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// WithEntry sets the address execution starts from.
func WithEntry(pc uint16) Opt {
	return func(c *CPU) {
		c.r.PC = pc
	}
}

// WithUndocumented maps the 12 undocumented opcodes onto the
// instructions they alias on real silicon. Without it they fail
// with an UnimplementedOpcodeError.
func WithUndocumented() Opt {
	return func(c *CPU) {
		c.set = undocumentedInstructionSet()
	}
}

// New creates a new CPU bound to the given memory and I/O bus. All
// registers start at zero; a nil bus behaves as an open bus.
func New(mem Memory, bus Bus, opts ...Opt) *CPU {
	if bus == nil {
		bus = openBus{}
	}
	c := &CPU{
		mem:   mem,
		bus:   bus,
		set:   &InstructionSet,
		hooks: make(map[uint16]HookFunc),
		log:   log.NewNullLogger(),
	}
	c.r.F = flagsFixed

	// create register pairs
	c.r.BC = types.NewRegisterPair(&c.r.B, &c.r.C)
	c.r.DE = types.NewRegisterPair(&c.r.D, &c.r.E)
	c.r.HL = types.NewRegisterPair(&c.r.H, &c.r.L)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Step executes a single instruction and returns the number of clock
// cycles it took. A pending interrupt is accepted first when
// interrupts are enabled. While halted Step executes nothing.
//
// When the opcode at PC has no handler Step returns an
// *UnimplementedOpcodeError and leaves the CPU untouched.
func (c *CPU) Step() (uint8, error) {
	if c.irq.pending && c.ime {
		return c.acceptInterrupt()
	}

	if c.mode == ModeHalt {
		return haltCycles, nil
	}

	if hook, ok := c.hooks[c.r.PC]; ok {
		pc := c.r.PC
		if err := hook(c); err != nil {
			return 0, fmt.Errorf("hook at 0x%04X: %w", pc, err)
		}
	}

	opcode := c.mem.Read(c.r.PC)
	instruction := &c.set[opcode]
	if instruction.fn == nil {
		return 0, &UnimplementedOpcodeError{Opcode: opcode, PC: c.r.PC}
	}

	// EI takes effect after the next instruction; enabling before
	// executing lets a DI in that slot win
	if c.mode == ModeEnableInterrupts {
		c.mode = ModeNormal
		c.ime = true
	}

	c.lastOpcode, c.lastPC = opcode, c.r.PC
	c.r.PC++

	return c.execute(instruction), nil
}

// execute runs the handler of the given instruction and returns its
// cycle count.
func (c *CPU) execute(instruction *Instruction) uint8 {
	c.taken = false
	instruction.fn(c)
	if c.taken {
		return instruction.taken
	}
	return instruction.cycles
}

// readOperand reads the byte at PC and advances PC.
func (c *CPU) readOperand() uint8 {
	value := c.mem.Read(c.r.PC)
	c.r.PC++
	return value
}

// readOperand16 reads the little endian word at PC and advances PC.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	return c.mem.Read(addr)
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, val uint8) {
	c.mem.Write(addr, val)
}

// AddHook registers fn to run whenever PC reaches addr. A later
// registration for the same address replaces the earlier one.
func (c *CPU) AddHook(addr uint16, fn HookFunc) {
	c.hooks[addr] = fn
}

// RemoveHook removes the hook registered at addr, if any.
func (c *CPU) RemoveHook(addr uint16) {
	delete(c.hooks, addr)
}

// Reset returns the CPU to its power-on state: registers cleared,
// interrupts disabled, not halted, nothing pending. Hooks are kept.
func (c *CPU) Reset() {
	c.r.A, c.r.B, c.r.C, c.r.D, c.r.E, c.r.H, c.r.L = 0, 0, 0, 0, 0, 0, 0
	c.r.F = flagsFixed
	c.r.PC, c.r.SP = 0, 0
	c.mode = ModeNormal
	c.ime = false
	c.irq.pending = false
	c.irq.opcode = 0
}

// PC returns the program counter.
func (c *CPU) PC() uint16 {
	return c.r.PC
}

// SP returns the stack pointer.
func (c *CPU) SP() uint16 {
	return c.r.SP
}

// Halted reports whether the CPU is waiting in HLT.
func (c *CPU) Halted() bool {
	return c.mode == ModeHalt
}

// InterruptsEnabled reports whether interrupts are enabled.
func (c *CPU) InterruptsEnabled() bool {
	return c.ime
}

// LastInstruction returns the opcode and address of the most recently
// executed instruction.
func (c *CPU) LastInstruction() (opcode uint8, pc uint16) {
	return c.lastOpcode, c.lastPC
}

// Memory returns the memory the CPU is bound to.
func (c *CPU) Memory() Memory {
	return c.mem
}

// openBus is used when no bus is attached.
type openBus struct{}

func (openBus) In(uint8) uint8   { return 0xFF }
func (openBus) Out(uint8, uint8) {}

var _ types.Stater = (*CPU)(nil)

func (c *CPU) Load(s *types.State) {
	c.r.A = s.Read8()
	c.r.F = normaliseFlags(s.Read8())
	c.r.B = s.Read8()
	c.r.C = s.Read8()
	c.r.D = s.Read8()
	c.r.E = s.Read8()
	c.r.H = s.Read8()
	c.r.L = s.Read8()
	c.r.SP = s.Read16()
	c.r.PC = s.Read16()
	c.mode = s.Read8()
	c.ime = s.ReadBool()
	c.irq.pending = s.ReadBool()
	c.irq.opcode = s.Read8()
}

func (c *CPU) Save(s *types.State) {
	s.Write8(c.r.A)
	s.Write8(c.r.F)
	s.Write8(c.r.B)
	s.Write8(c.r.C)
	s.Write8(c.r.D)
	s.Write8(c.r.E)
	s.Write8(c.r.H)
	s.Write8(c.r.L)
	s.Write16(c.r.SP)
	s.Write16(c.r.PC)
	s.Write8(c.mode)
	s.WriteBool(c.ime)
	s.WriteBool(c.irq.pending)
	s.Write8(c.irq.opcode)
}

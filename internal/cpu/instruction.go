package cpu

import (
	"sync"
)

// Instruction describes a single opcode of the CPU.
type Instruction struct {
	name   string     // mnemonic, operands spelled as in the Intel manual
	length uint8      // length in bytes, including the opcode
	cycles uint8      // clock cycles, or cycles when a condition is not met
	taken  uint8      // clock cycles when a conditional CALL/RET is taken
	fn     func(*CPU) // fn called when executing the instruction
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string { return i.name }

// Length returns the encoded length of the instruction in bytes.
func (i Instruction) Length() uint8 { return i.length }

// Cycles returns the number of clock cycles the instruction takes
// when no conditional branch is taken.
func (i Instruction) Cycles() uint8 { return i.cycles }

// TakenCycles returns the number of clock cycles the instruction
// takes when its conditional branch is taken.
func (i Instruction) TakenCycles() uint8 { return i.taken }

// Implemented reports whether the instruction has a handler.
func (i Instruction) Implemented() bool { return i.fn != nil }

// InstructionOpt configures an Instruction when it is defined.
type InstructionOpt func(*Instruction)

// Length sets the encoded length of an instruction.
func Length(n uint8) InstructionOpt {
	return func(i *Instruction) { i.length = n }
}

// Cycles sets the cycle count of an instruction.
func Cycles(n uint8) InstructionOpt {
	return func(i *Instruction) { i.cycles = n }
}

// Taken sets the cycle count of a conditional instruction when its
// condition is met.
func Taken(n uint8) InstructionOpt {
	return func(i *Instruction) { i.taken = n }
}

// InstructionSet maps every opcode to its instruction. Opcodes without
// a handler are unimplemented; executing one is an error.
var InstructionSet [256]Instruction

// DefineInstruction defines the instruction for the given opcode in
// the InstructionSet. Instructions default to a length of 1 and 4
// cycles.
func DefineInstruction(opcode uint8, name string, fn func(*CPU), opts ...InstructionOpt) {
	InstructionSet[opcode] = newInstruction(name, fn, opts...)
}

func newInstruction(name string, fn func(*CPU), opts ...InstructionOpt) Instruction {
	instruction := Instruction{
		name:   name,
		length: 1,
		cycles: 4,
		fn:     fn,
	}
	for _, opt := range opts {
		opt(&instruction)
	}
	if instruction.taken == 0 {
		instruction.taken = instruction.cycles
	}
	return instruction
}

// undocumentedOpcodes lists the opcodes Intel left undefined, and the
// documented opcode each one behaves as on real silicon.
var undocumentedOpcodes = map[uint8]uint8{
	0x08: 0x00, 0x10: 0x00, 0x18: 0x00, 0x20: 0x00,
	0x28: 0x00, 0x30: 0x00, 0x38: 0x00, // NOP
	0xCB: 0xC3,                         // JMP
	0xD9: 0xC9,                         // RET
	0xDD: 0xCD, 0xED: 0xCD, 0xFD: 0xCD, // CALL
}

var (
	undocumentedOnce sync.Once
	undocumentedSet  [256]Instruction
)

// undocumentedInstructionSet returns the InstructionSet extended with
// the undocumented aliases.
func undocumentedInstructionSet() *[256]Instruction {
	undocumentedOnce.Do(func() {
		undocumentedSet = InstructionSet
		for opcode, alias := range undocumentedOpcodes {
			instruction := InstructionSet[alias]
			instruction.name = "*" + instruction.name
			undocumentedSet[opcode] = instruction
		}
	})
	return &undocumentedSet
}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	DefineInstruction(0x27, "DAA", func(c *CPU) { c.decimalAdjust() })
	DefineInstruction(0x2F, "CMA", func(c *CPU) { c.r.A = ^c.r.A })
	DefineInstruction(0x37, "STC", func(c *CPU) { c.setFlag(FlagCarry) })
	DefineInstruction(0x3F, "CMC", func(c *CPU) { c.setFlagTo(FlagCarry, !c.isFlagSet(FlagCarry)) })
	DefineInstruction(0x76, "HLT", func(c *CPU) { c.mode = ModeHalt }, Cycles(7))
	DefineInstruction(0xD3, "OUT d8", func(c *CPU) {
		c.bus.Out(c.readOperand(), c.r.A)
	}, Length(2), Cycles(10))
	DefineInstruction(0xDB, "IN d8", func(c *CPU) {
		c.r.A = c.bus.In(c.readOperand())
	}, Length(2), Cycles(10))
	DefineInstruction(0xF3, "DI", func(c *CPU) { c.ime = false })
	DefineInstruction(0xFB, "EI", func(c *CPU) { c.mode = ModeEnableInterrupts })
}

package cpu

import (
	"fmt"

	"github.com/thelolagemann/go-8080/internal/types"
)

// Registers is a point-in-time copy of the register file, used to
// inspect the CPU or to set it up before a run.
type Registers struct {
	A, B, C, D, E, H, L uint8
	F                   uint8 // flags, in PSW layout
	PC, SP              uint16
}

// BC returns the BC register pair.
func (r Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

// DE returns the DE register pair.
func (r Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

// HL returns the HL register pair.
func (r Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// PSW returns the processor status word, A in the high byte.
func (r Registers) PSW() uint16 { return uint16(r.A)<<8 | uint16(r.F) }

func (r Registers) String() string {
	return fmt.Sprintf("A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X",
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L, r.SP, r.PC)
}

// Registers returns a copy of the register file.
func (c *CPU) Registers() Registers {
	return Registers{
		A: c.r.A, B: c.r.B, C: c.r.C, D: c.r.D, E: c.r.E, H: c.r.H, L: c.r.L,
		F:  c.r.F,
		PC: c.r.PC,
		SP: c.r.SP,
	}
}

// SetRegisters overwrites the register file. It exists for test
// set-up and state restoration; instructions never go through it.
// Bits of F with no flag meaning are forced to their fixed values.
func (c *CPU) SetRegisters(r Registers) {
	c.r.A, c.r.B, c.r.C, c.r.D, c.r.E, c.r.H, c.r.L = r.A, r.B, r.C, r.D, r.E, r.H, r.L
	c.r.F = normaliseFlags(r.F)
	c.r.PC = r.PC
	c.r.SP = r.SP
}

// registerIndex returns a Register pointer for the 3-bit register
// field used by the 8080 encoding. Index 6 is M and has no register.
func (c *CPU) registerIndex(index uint8) *types.Register {
	switch index {
	case 0:
		return &c.r.B
	case 1:
		return &c.r.C
	case 2:
		return &c.r.D
	case 3:
		return &c.r.E
	case 4:
		return &c.r.H
	case 5:
		return &c.r.L
	case 7:
		return &c.r.A
	}
	panic(fmt.Sprintf("invalid register index: %d", index))
}

// readRegister returns the operand selected by index, reading memory
// at HL for M.
func (c *CPU) readRegister(index uint8) uint8 {
	if index == indexM {
		return c.readByte(c.r.HL.Uint16())
	}
	return *c.registerIndex(index)
}

// writeRegister stores value into the operand selected by index,
// writing memory at HL for M.
func (c *CPU) writeRegister(index uint8, value uint8) {
	if index == indexM {
		c.writeByte(c.r.HL.Uint16(), value)
		return
	}
	*c.registerIndex(index) = value
}

// indexM is the register field value naming the memory operand M.
const indexM = 6

// registerNames maps the 3-bit register field to its mnemonic.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

// pairIndex returns the register pair selected by the 2-bit pair
// field. Index 3 is SP or PSW depending on the instruction and is
// handled by the caller.
func (c *CPU) pairIndex(index uint8) *types.RegisterPair {
	switch index {
	case 0:
		return c.r.BC
	case 1:
		return c.r.DE
	case 2:
		return c.r.HL
	}
	panic(fmt.Sprintf("invalid register pair index: %d", index))
}

// pairNames maps the 2-bit pair field to its mnemonic, with SP in
// slot 3 (PSW is spelled out by PUSH and POP).
var pairNames = [4]string{"B", "D", "H", "SP"}

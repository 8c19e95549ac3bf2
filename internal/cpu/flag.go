package cpu

import (
	"math/bits"

	"github.com/thelolagemann/go-8080/internal/types"
)

// Flag is the bit position of a condition flag within the PSW flags
// byte.
type Flag = uint8

const (
	FlagCarry    Flag = 0
	FlagParity   Flag = 2
	FlagAuxCarry Flag = 4
	FlagZero     Flag = 6
	FlagSign     Flag = 7
)

const (
	// flagsFixed holds the bits of F that read as 1 regardless of
	// the flags: bit 1. Bits 3 and 5 always read as 0.
	flagsFixed = types.Bit1
	// flagsMask selects the five meaningful flag bits.
	flagsMask = types.Bit7 | types.Bit6 | types.Bit4 | types.Bit2 | types.Bit0
)

// normaliseFlags forces the unused bits of a flags byte to their
// fixed values.
func normaliseFlags(f uint8) uint8 {
	return f&flagsMask | flagsFixed
}

// Flag reports whether the given flag is set.
func (c *CPU) Flag(flag Flag) bool {
	return c.isFlagSet(flag)
}

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.r.F &^= 1 << flag
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.r.F |= 1 << flag
}

// setFlagTo sets or clears a flag according to value.
func (c *CPU) setFlagTo(flag Flag, value bool) {
	if value {
		c.setFlag(flag)
	} else {
		c.clearFlag(flag)
	}
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.r.F&(1<<flag) != 0
}

// setZSP sets the sign, zero and parity flags from result, leaving
// AC and CY alone.
func (c *CPU) setZSP(result uint8) {
	c.setFlagTo(FlagSign, result&types.Bit7 != 0)
	c.setFlagTo(FlagZero, result == 0)
	c.setFlagTo(FlagParity, parity(result))
}

// setFlags sets every flag: S, Z and P from result, AC and CY from
// the given values.
func (c *CPU) setFlags(result uint8, auxCarry, carry bool) {
	c.setZSP(result)
	c.setFlagTo(FlagAuxCarry, auxCarry)
	c.setFlagTo(FlagCarry, carry)
}

// parity returns true when b has an even number of set bits.
func parity(b uint8) bool {
	return bits.OnesCount8(b)%2 == 0
}

// condition evaluates the 3-bit condition field of Jcc, Ccc and Rcc.
//
//	0 NZ, 1 Z, 2 NC, 3 C, 4 PO, 5 PE, 6 P, 7 M
func (c *CPU) condition(cc uint8) bool {
	var set bool
	switch cc >> 1 {
	case 0:
		set = c.isFlagSet(FlagZero)
	case 1:
		set = c.isFlagSet(FlagCarry)
	case 2:
		set = c.isFlagSet(FlagParity)
	case 3:
		set = c.isFlagSet(FlagSign)
	}
	return set == (cc&1 == 1)
}

// conditionNames maps the condition field to its mnemonic suffix.
var conditionNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

package cpu

import (
	"fmt"
)

// pushStack pushes a 16 bit value onto the stack.
func (c *CPU) pushStack(value uint16) {
	c.r.SP -= 2
	c.mem.WriteWord(c.r.SP, value)
}

// popStack pops a 16 bit value off the stack.
func (c *CPU) popStack() uint16 {
	value := c.mem.ReadWord(c.r.SP)
	c.r.SP += 2
	return value
}

// psw returns the processor status word: A in the high byte, the
// flags in the low byte.
func (c *CPU) psw() uint16 {
	return uint16(c.r.A)<<8 | uint16(normaliseFlags(c.r.F))
}

// setPSW restores A and the flags from a processor status word.
func (c *CPU) setPSW(value uint16) {
	c.r.A = uint8(value >> 8)
	c.r.F = normaliseFlags(uint8(value))
}

// exchangeStack swaps HL with the word on top of the stack.
//
//	XTHL
func (c *CPU) exchangeStack() {
	top := c.mem.ReadWord(c.r.SP)
	c.mem.WriteWord(c.r.SP, c.r.HL.Uint16())
	c.r.HL.SetUint16(top)
}

func init() {
	for i := uint8(0); i < 3; i++ {
		index := i
		DefineInstruction(0xC5|index<<4, fmt.Sprintf("PUSH %s", pairNames[index]), func(c *CPU) {
			c.pushStack(c.pairIndex(index).Uint16())
		}, Cycles(11))
		DefineInstruction(0xC1|index<<4, fmt.Sprintf("POP %s", pairNames[index]), func(c *CPU) {
			c.pairIndex(index).SetUint16(c.popStack())
		}, Cycles(10))
	}

	DefineInstruction(0xF5, "PUSH PSW", func(c *CPU) { c.pushStack(c.psw()) }, Cycles(11))
	DefineInstruction(0xF1, "POP PSW", func(c *CPU) { c.setPSW(c.popStack()) }, Cycles(10))
	DefineInstruction(0xE3, "XTHL", func(c *CPU) { c.exchangeStack() }, Cycles(18))
	DefineInstruction(0xF9, "SPHL", func(c *CPU) { c.r.SP = c.r.HL.Uint16() }, Cycles(5))
}

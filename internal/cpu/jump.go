package cpu

import (
	"fmt"
)

// call pushes the address of the next instruction onto the stack and
// jumps to the given address.
//
//	CALL a16
func (c *CPU) call(address uint16) {
	c.pushStack(c.r.PC)
	c.r.PC = address
}

// callConditional reads the target address and calls it if the given
// condition is true. Taking the call costs extra cycles.
//
//	Ccc a16
//	cc = NZ, Z, NC, C, PO, PE, P, M
func (c *CPU) callConditional(condition bool) {
	address := c.readOperand16()
	if condition {
		c.call(address)
		c.taken = true
	}
}

// jumpAbsolute jumps to the given address.
//
//	JMP a16
func (c *CPU) jumpAbsolute(address uint16) {
	c.r.PC = address
}

// jumpAbsoluteConditional reads the target address and jumps to it if
// the given condition is true. Both outcomes take 10 cycles.
//
//	Jcc a16
//	cc = NZ, Z, NC, C, PO, PE, P, M
func (c *CPU) jumpAbsoluteConditional(condition bool) {
	address := c.readOperand16()
	if condition {
		c.jumpAbsolute(address)
	}
}

// ret pops the top two bytes off the stack and jumps to that address.
//
//	RET
func (c *CPU) ret() {
	c.r.PC = c.popStack()
}

// retConditional returns if the given condition is true. Taking the
// return costs extra cycles.
//
//	Rcc
//	cc = NZ, Z, NC, C, PO, PE, P, M
func (c *CPU) retConditional(condition bool) {
	if condition {
		c.ret()
		c.taken = true
	}
}

// restart calls the fixed address n*8. It is the usual opcode placed
// on the bus by an interrupting device.
//
//	RST n
//	n = 0 - 7
func (c *CPU) restart(n uint8) {
	c.call(uint16(n) << 3)
}

func init() {
	DefineInstruction(0xC3, "JMP a16", func(c *CPU) { c.jumpAbsolute(c.readOperand16()) }, Length(3), Cycles(10))
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) { c.call(c.readOperand16()) }, Length(3), Cycles(17))
	DefineInstruction(0xC9, "RET", func(c *CPU) { c.ret() }, Cycles(10))
	DefineInstruction(0xE9, "PCHL", func(c *CPU) { c.r.PC = c.r.HL.Uint16() }, Cycles(5))

	for i := uint8(0); i < 8; i++ {
		cc := i
		name := conditionNames[cc]

		DefineInstruction(0xC0|cc<<3, "R"+name, func(c *CPU) {
			c.retConditional(c.condition(cc))
		}, Cycles(5), Taken(11))
		DefineInstruction(0xC2|cc<<3, fmt.Sprintf("J%s a16", name), func(c *CPU) {
			c.jumpAbsoluteConditional(c.condition(cc))
		}, Length(3), Cycles(10))
		DefineInstruction(0xC4|cc<<3, fmt.Sprintf("C%s a16", name), func(c *CPU) {
			c.callConditional(c.condition(cc))
		}, Length(3), Cycles(11), Taken(17))
	}

	for i := uint8(0); i < 8; i++ {
		n := i
		DefineInstruction(0xC7|n<<3, fmt.Sprintf("RST %d", n), func(c *CPU) { c.restart(n) }, Cycles(11))
	}
}

package cpu

import (
	"fmt"
)

// compare compares n to the A Register by subtracting it and
// discarding the result. Flags are set exactly as SUB would set them.
//
//	CMP r, CPI d8
func (c *CPU) compare(n uint8) {
	c.subtract(n, false)
}

func init() {
	generateLogicInstructions()

	DefineInstruction(0xE6, "ANI d8", func(c *CPU) { c.and(c.readOperand()) }, Length(2), Cycles(7))
	DefineInstruction(0xEE, "XRI d8", func(c *CPU) { c.xor(c.readOperand()) }, Length(2), Cycles(7))
	DefineInstruction(0xF6, "ORI d8", func(c *CPU) { c.or(c.readOperand()) }, Length(2), Cycles(7))
	DefineInstruction(0xFE, "CPI d8", func(c *CPU) { c.compare(c.readOperand()) }, Length(2), Cycles(7))
}

// generateLogicInstructions generates the accumulator logic
// instructions for each register operand.
//
//	0xA0 - 0xA7 ANA r
//	0xA8 - 0xAF XRA r
//	0xB0 - 0xB7 ORA r
//	0xB8 - 0xBF CMP r
func generateLogicInstructions() {
	for i := uint8(0); i < 8; i++ {
		index := i
		cycles := uint8(4)
		if index == indexM {
			cycles = 7
		}
		name := registerNames[index]

		DefineInstruction(0xA0|index, fmt.Sprintf("ANA %s", name), func(c *CPU) {
			c.and(c.readRegister(index))
		}, Cycles(cycles))
		DefineInstruction(0xA8|index, fmt.Sprintf("XRA %s", name), func(c *CPU) {
			c.xor(c.readRegister(index))
		}, Cycles(cycles))
		DefineInstruction(0xB0|index, fmt.Sprintf("ORA %s", name), func(c *CPU) {
			c.or(c.readRegister(index))
		}, Cycles(cycles))
		DefineInstruction(0xB8|index, fmt.Sprintf("CMP %s", name), func(c *CPU) {
			c.compare(c.readRegister(index))
		}, Cycles(cycles))
	}
}

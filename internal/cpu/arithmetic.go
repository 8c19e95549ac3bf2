package cpu

import (
	"fmt"
)

// incrementPair increments the register pair selected by index, or
// SP for index 3. No flags are affected.
//
//	INX rp
//	rp = B, D, H, SP
func (c *CPU) incrementPair(index uint8) {
	if index == 3 {
		c.r.SP++
		return
	}
	pair := c.pairIndex(index)
	pair.SetUint16(pair.Uint16() + 1)
}

// decrementPair decrements the register pair selected by index, or
// SP for index 3. No flags are affected.
//
//	DCX rp
//	rp = B, D, H, SP
func (c *CPU) decrementPair(index uint8) {
	if index == 3 {
		c.r.SP--
		return
	}
	pair := c.pairIndex(index)
	pair.SetUint16(pair.Uint16() - 1)
}

// pairValue returns the register pair selected by index, or SP for
// index 3.
func (c *CPU) pairValue(index uint8) uint16 {
	if index == 3 {
		return c.r.SP
	}
	return c.pairIndex(index).Uint16()
}

func init() {
	for i := uint8(0); i < 8; i++ {
		index := i
		name := registerNames[index]
		cycles := uint8(5)
		if index == indexM {
			cycles = 10
		}

		// 0x04 - 0x3C INR r
		DefineInstruction(0x04+index<<3, "INR "+name, func(c *CPU) {
			c.writeRegister(index, c.increment(c.readRegister(index)))
		}, Cycles(cycles))
		// 0x05 - 0x3D DCR r
		DefineInstruction(0x05+index<<3, "DCR "+name, func(c *CPU) {
			c.writeRegister(index, c.decrement(c.readRegister(index)))
		}, Cycles(cycles))
	}

	for i := uint8(0); i < 4; i++ {
		index := i
		name := pairNames[index]

		// 0x03 - 0x33 INX rp
		DefineInstruction(0x03+index<<4, "INX "+name, func(c *CPU) { c.incrementPair(index) }, Cycles(5))
		// 0x0B - 0x3B DCX rp
		DefineInstruction(0x0B+index<<4, "DCX "+name, func(c *CPU) { c.decrementPair(index) }, Cycles(5))
		// 0x09 - 0x39 DAD rp
		DefineInstruction(0x09+index<<4, "DAD "+name, func(c *CPU) { c.addHL(c.pairValue(index)) }, Cycles(10))
	}

	generateArithmeticInstructions()

	DefineInstruction(0xC6, "ADI d8", func(c *CPU) { c.add(c.readOperand(), false) }, Length(2), Cycles(7))
	DefineInstruction(0xCE, "ACI d8", func(c *CPU) { c.add(c.readOperand(), true) }, Length(2), Cycles(7))
	DefineInstruction(0xD6, "SUI d8", func(c *CPU) { c.r.A = c.subtract(c.readOperand(), false) }, Length(2), Cycles(7))
	DefineInstruction(0xDE, "SBI d8", func(c *CPU) { c.r.A = c.subtract(c.readOperand(), true) }, Length(2), Cycles(7))
}

// generateArithmeticInstructions generates the accumulator arithmetic
// instructions for each register operand.
//
//	0x80 - 0x87 ADD r
//	0x88 - 0x8F ADC r
//	0x90 - 0x97 SUB r
//	0x98 - 0x9F SBB r
func generateArithmeticInstructions() {
	for i := uint8(0); i < 8; i++ {
		index := i
		cycles := uint8(4)
		if index == indexM {
			cycles = 7
		}
		name := registerNames[index]

		DefineInstruction(0x80|index, fmt.Sprintf("ADD %s", name), func(c *CPU) {
			c.add(c.readRegister(index), false)
		}, Cycles(cycles))
		DefineInstruction(0x88|index, fmt.Sprintf("ADC %s", name), func(c *CPU) {
			c.add(c.readRegister(index), true)
		}, Cycles(cycles))
		DefineInstruction(0x90|index, fmt.Sprintf("SUB %s", name), func(c *CPU) {
			c.r.A = c.subtract(c.readRegister(index), false)
		}, Cycles(cycles))
		DefineInstruction(0x98|index, fmt.Sprintf("SBB %s", name), func(c *CPU) {
			c.r.A = c.subtract(c.readRegister(index), true)
		}, Cycles(cycles))
	}
}

package cpu

import (
	"fmt"
)

// move copies the operand selected by from into the operand selected
// by to. Either may be M, but not both (that encoding is HLT).
//
//	MOV r1, r2
//	r1, r2 = B, C, D, E, H, L, M, A
func (c *CPU) move(to, from uint8) {
	c.writeRegister(to, c.readRegister(from))
}

// loadImmediate loads the next operand into the operand selected by
// index.
//
//	MVI r, d8
//	r = B, C, D, E, H, L, M, A
func (c *CPU) loadImmediate(index uint8) {
	c.writeRegister(index, c.readOperand())
}

// loadPairImmediate loads the next two operands into the register
// pair selected by index, or SP for index 3.
//
//	LXI rp, d16
//	rp = B, D, H, SP
func (c *CPU) loadPairImmediate(index uint8) {
	value := c.readOperand16()
	if index == 3 {
		c.r.SP = value
		return
	}
	c.pairIndex(index).SetUint16(value)
}

// exchange swaps the DE and HL register pairs.
//
//	XCHG
func (c *CPU) exchange() {
	de, hl := c.r.DE.Uint16(), c.r.HL.Uint16()
	c.r.DE.SetUint16(hl)
	c.r.HL.SetUint16(de)
}

func init() {
	generateMoveInstructions()

	for i := uint8(0); i < 8; i++ {
		index := i
		cycles := uint8(7)
		if index == indexM {
			cycles = 10
		}
		DefineInstruction(0x06+index<<3, fmt.Sprintf("MVI %s, d8", registerNames[index]), func(c *CPU) {
			c.loadImmediate(index)
		}, Length(2), Cycles(cycles))
	}

	for i := uint8(0); i < 4; i++ {
		index := i
		DefineInstruction(0x01+index<<4, fmt.Sprintf("LXI %s, d16", pairNames[index]), func(c *CPU) {
			c.loadPairImmediate(index)
		}, Length(3), Cycles(10))
	}

	DefineInstruction(0x02, "STAX B", func(c *CPU) { c.writeByte(c.r.BC.Uint16(), c.r.A) }, Cycles(7))
	DefineInstruction(0x12, "STAX D", func(c *CPU) { c.writeByte(c.r.DE.Uint16(), c.r.A) }, Cycles(7))
	DefineInstruction(0x0A, "LDAX B", func(c *CPU) { c.r.A = c.readByte(c.r.BC.Uint16()) }, Cycles(7))
	DefineInstruction(0x1A, "LDAX D", func(c *CPU) { c.r.A = c.readByte(c.r.DE.Uint16()) }, Cycles(7))
	DefineInstruction(0x22, "SHLD a16", func(c *CPU) {
		c.mem.WriteWord(c.readOperand16(), c.r.HL.Uint16())
	}, Length(3), Cycles(16))
	DefineInstruction(0x2A, "LHLD a16", func(c *CPU) {
		c.r.HL.SetUint16(c.mem.ReadWord(c.readOperand16()))
	}, Length(3), Cycles(16))
	DefineInstruction(0x32, "STA a16", func(c *CPU) {
		c.writeByte(c.readOperand16(), c.r.A)
	}, Length(3), Cycles(13))
	DefineInstruction(0x3A, "LDA a16", func(c *CPU) {
		c.r.A = c.readByte(c.readOperand16())
	}, Length(3), Cycles(13))
	DefineInstruction(0xEB, "XCHG", func(c *CPU) { c.exchange() })
}

// generateMoveInstructions generates the 63 register to register
// moves.
//
// The instructions are generated in the following format:
//
//	0x40 MOV B, B
//	0x41 MOV B, C
//	....
//	0x7F MOV A, A
//
// 0x76, which would be MOV M, M, is HLT.
func generateMoveInstructions() {
	for i := uint8(0); i < 8; i++ {
		for j := uint8(0); j < 8; j++ {
			if i == indexM && j == indexM {
				continue
			}

			// copies so each closure captures its own registers
			to, from := i, j
			cycles := uint8(5)
			if to == indexM || from == indexM {
				cycles = 7
			}
			DefineInstruction(0x40|to<<3|from, fmt.Sprintf("MOV %s, %s", registerNames[to], registerNames[from]), func(c *CPU) {
				c.move(to, from)
			}, Cycles(cycles))
		}
	}
}

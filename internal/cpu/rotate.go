package cpu

import "github.com/thelolagemann/go-8080/internal/types"

// rotateLeftCarry rotates A left by 1 bit. Bit 7 is copied to both the
// carry flag and bit 0.
//
//	RLC
//
// Flags affected:
//
//	CY - Contains old bit 7 data.
func (c *CPU) rotateLeftCarry() {
	carry := c.r.A & types.Bit7
	c.r.A = c.r.A<<1 | carry>>7
	c.setFlagTo(FlagCarry, carry != 0)
}

// rotateRightCarry rotates A right by 1 bit. Bit 0 is copied to both
// the carry flag and bit 7.
//
//	RRC
//
// Flags affected:
//
//	CY - Contains old bit 0 data.
func (c *CPU) rotateRightCarry() {
	carry := c.r.A & types.Bit0
	c.r.A = c.r.A>>1 | carry<<7
	c.setFlagTo(FlagCarry, carry != 0)
}

// rotateLeft rotates A left through the carry flag.
//
//	RAL
//
// Flags affected:
//
//	CY - Contains old bit 7 data.
func (c *CPU) rotateLeft() {
	var oldCarry uint8
	if c.isFlagSet(FlagCarry) {
		oldCarry = 1
	}
	c.setFlagTo(FlagCarry, c.r.A&types.Bit7 != 0)
	c.r.A = c.r.A<<1 | oldCarry
}

// rotateRight rotates A right through the carry flag.
//
//	RAR
//
// Flags affected:
//
//	CY - Contains old bit 0 data.
func (c *CPU) rotateRight() {
	var oldCarry uint8
	if c.isFlagSet(FlagCarry) {
		oldCarry = types.Bit7
	}
	c.setFlagTo(FlagCarry, c.r.A&types.Bit0 != 0)
	c.r.A = c.r.A>>1 | oldCarry
}

func init() {
	DefineInstruction(0x07, "RLC", func(c *CPU) { c.rotateLeftCarry() })
	DefineInstruction(0x0F, "RRC", func(c *CPU) { c.rotateRightCarry() })
	DefineInstruction(0x17, "RAL", func(c *CPU) { c.rotateLeft() })
	DefineInstruction(0x1F, "RAR", func(c *CPU) { c.rotateRight() })
}

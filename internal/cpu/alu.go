package cpu

import "github.com/thelolagemann/go-8080/internal/types"

// add adds n to the A Register, plus the carry flag when withCarry
// is set.
//
//	ADD r, ADC r, ADI d8, ACI d8
//	r = B, C, D, E, H, L, M, A
//
// Flags affected:
//
//	S, Z, P - From the result.
//	AC - Set if carry from bit 3.
//	CY - Set if carry from bit 7.
func (c *CPU) add(n uint8, withCarry bool) {
	var carry uint8
	if withCarry && c.isFlagSet(FlagCarry) {
		carry = 1
	}
	result := uint16(c.r.A) + uint16(n) + uint16(carry)
	auxCarry := types.LowNibble(c.r.A)+types.LowNibble(n)+carry > 0x0F

	c.r.A = uint8(result)
	c.setFlags(c.r.A, auxCarry, result > 0xFF)
}

// subtract computes A - n, less the carry flag when withBorrow is
// set, and returns the result without storing it. Like the 8080, the
// difference is formed by adding the one's complement of n, so AC is
// the carry out of bit 3 of that addition and CY is its inverted
// carry out of bit 7.
//
//	SUB r, SBB r, SUI d8, SBI d8, CMP r, CPI d8
//	r = B, C, D, E, H, L, M, A
//
// Flags affected:
//
//	S, Z, P - From the result.
//	AC - Set if carry from bit 3 of A + ^n + !borrow.
//	CY - Set if a borrow occurred.
func (c *CPU) subtract(n uint8, withBorrow bool) uint8 {
	var carry uint8 = 1
	if withBorrow && c.isFlagSet(FlagCarry) {
		carry = 0
	}
	result := uint16(c.r.A) + uint16(^n) + uint16(carry)
	auxCarry := types.LowNibble(c.r.A)+types.LowNibble(^n)+carry > 0x0F

	c.setFlags(uint8(result), auxCarry, result <= 0xFF)
	return uint8(result)
}

// and performs a bitwise AND operation on n and the A Register.
//
//	ANA r, ANI d8
//
// Flags affected:
//
//	S, Z, P - From the result.
//	AC - Set to bit 3 of (A | n).
//	CY - Reset.
func (c *CPU) and(n uint8) {
	auxCarry := (c.r.A|n)&types.Bit3 != 0
	c.r.A &= n
	c.setFlags(c.r.A, auxCarry, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	ORA r, ORI d8
//
// Flags affected:
//
//	S, Z, P - From the result.
//	AC, CY - Reset.
func (c *CPU) or(n uint8) {
	c.r.A |= n
	c.setFlags(c.r.A, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XRA r, XRI d8
//
// Flags affected:
//
//	S, Z, P - From the result.
//	AC, CY - Reset.
func (c *CPU) xor(n uint8) {
	c.r.A ^= n
	c.setFlags(c.r.A, false, false)
}

// increment returns value + 1.
//
//	INR r
//
// Flags affected:
//
//	S, Z, P - From the result.
//	AC - Set if carry from bit 3.
//	CY - Not affected.
func (c *CPU) increment(value uint8) uint8 {
	result := value + 1
	c.setZSP(result)
	c.setFlagTo(FlagAuxCarry, types.LowNibble(result) == 0)
	return result
}

// decrement returns value - 1.
//
//	DCR r
//
// Flags affected:
//
//	S, Z, P - From the result.
//	AC - Set unless the low nibble borrowed.
//	CY - Not affected.
func (c *CPU) decrement(value uint8) uint8 {
	result := value - 1
	c.setZSP(result)
	c.setFlagTo(FlagAuxCarry, types.LowNibble(result) != 0x0F)
	return result
}

// addHL adds value to the HL register pair.
//
//	DAD rp
//	rp = B, D, H, SP
//
// Flags affected:
//
//	CY - Set if carry from bit 15.
func (c *CPU) addHL(value uint16) {
	result := uint32(c.r.HL.Uint16()) + uint32(value)
	c.r.HL.SetUint16(uint16(result))
	c.setFlagTo(FlagCarry, result > 0xFFFF)
}

// decimalAdjust corrects A after a BCD addition. The low nibble is
// corrected first; the high nibble test sees the corrected value,
// including any carry out of the low nibble.
//
//	DAA
//
// Flags affected:
//
//	S, Z, P - From the result.
//	AC - Set if the low nibble correction carried from bit 3.
//	CY - Set if the high nibble was corrected, otherwise unchanged.
func (c *CPU) decimalAdjust() {
	value := uint16(c.r.A)
	auxCarry := false
	if types.LowNibble(c.r.A) > 9 || c.isFlagSet(FlagAuxCarry) {
		auxCarry = types.LowNibble(c.r.A)+6 > 0x0F
		value += 0x06
	}

	carry := c.isFlagSet(FlagCarry)
	if value>>4 > 9 || carry {
		value += 0x60
		carry = true
	}

	c.r.A = uint8(value)
	c.setFlags(c.r.A, auxCarry, carry)
}

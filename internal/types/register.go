package types

// Register represents an 8080 register which is used to hold an 8-bit
// value. The CPU has 7 general purpose registers: A, B, C, D, E, H
// and L, plus the flags register F.
type Register = uint8

// RegisterPair is a 16-bit view over two 8-bit registers. The 8080
// addresses B/C, D/E and H/L as pairs, with the first register of
// each pair holding the high byte. Reading or writing the pair always
// goes through the underlying registers, so the two views can never
// disagree.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// NewRegisterPair returns a RegisterPair viewing high and low.
func NewRegisterPair(high, low *Register) *RegisterPair {
	return &RegisterPair{High: high, Low: low}
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

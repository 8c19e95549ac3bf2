package types

const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000
	Bit7             // 0b1000_0000
)

// LowNibble returns the lower 4 bits of b.
func LowNibble(b uint8) uint8 {
	return b & 0x0F
}

// HighNibble returns the upper 4 bits of b, shifted down.
func HighNibble(b uint8) uint8 {
	return b >> 4
}

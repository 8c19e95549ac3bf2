package types

import "testing"

func TestRegisterPair(t *testing.T) {
	var high, low Register
	pair := NewRegisterPair(&high, &low)

	pair.SetUint16(0x1234)
	if high != 0x12 || low != 0x34 {
		t.Errorf("expected 0x12/0x34, got 0x%02X/0x%02X", high, low)
	}

	low = 0xFF
	if pair.Uint16() != 0x12FF {
		t.Errorf("expected pair to follow its registers, got 0x%04X", pair.Uint16())
	}
}

func TestNibbles(t *testing.T) {
	if LowNibble(0xA5) != 0x05 || HighNibble(0xA5) != 0x0A {
		t.Error("unexpected nibbles for 0xA5")
	}
}

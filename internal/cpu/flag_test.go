package cpu

import (
	"testing"

	"github.com/thelolagemann/go-8080/internal/memory"
)

func TestParity(t *testing.T) {
	for i := 0; i < 256; i++ {
		var ones int
		for b := i; b != 0; b >>= 1 {
			ones += b & 1
		}
		if parity(uint8(i)) != (ones%2 == 0) {
			t.Errorf("parity(0x%02X) = %t", i, parity(uint8(i)))
		}
	}
}

func TestNormaliseFlags(t *testing.T) {
	tests := map[uint8]uint8{
		0x00: 0x02,
		0xFF: 0xD7,
		0x28: 0x02,
		0x55: 0x57,
	}
	for in, want := range tests {
		if got := normaliseFlags(in); got != want {
			t.Errorf("normaliseFlags(0x%02X) = 0x%02X, expected 0x%02X", in, got, want)
		}
	}
}

func TestCPU_condition(t *testing.T) {
	tests := []struct {
		flags uint8
		want  [8]bool // NZ Z NC C PO PE P M
	}{
		{flags: 0x02, want: [8]bool{true, false, true, false, true, false, true, false}},
		{flags: 0x42, want: [8]bool{false, true, true, false, true, false, true, false}},
		{flags: 0x03, want: [8]bool{true, false, false, true, true, false, true, false}},
		{flags: 0x06, want: [8]bool{true, false, true, false, false, true, true, false}},
		{flags: 0x82, want: [8]bool{true, false, true, false, true, false, false, true}},
	}
	c := New(memory.New(), nil)
	for _, tt := range tests {
		c.r.F = tt.flags
		for cc := uint8(0); cc < 8; cc++ {
			if got := c.condition(cc); got != tt.want[cc] {
				t.Errorf("F=0x%02X %s: expected %t, got %t", tt.flags, conditionNames[cc], tt.want[cc], got)
			}
		}
	}
}

package cpu

import (
	"testing"

	"github.com/thelolagemann/go-8080/internal/memory"
)

func toBCD(n int) uint8 {
	return uint8(n/10<<4 | n%10)
}

func TestCPU_decimalAdjust(t *testing.T) {
	c := New(memory.New(), nil)
	for a := 0; a < 100; a++ {
		for b := 0; b < 100; b++ {
			c.r.F = flagsFixed
			c.r.A = toBCD(a)
			c.add(toBCD(b), false)
			c.decimalAdjust()

			sum := a + b
			if c.r.A != toBCD(sum%100) {
				t.Fatalf("%d+%d: expected 0x%02X, got 0x%02X", a, b, toBCD(sum%100), c.r.A)
			}
			if c.isFlagSet(FlagCarry) != (sum >= 100) {
				t.Fatalf("%d+%d: expected carry %t", a, b, sum >= 100)
			}
		}
	}
}

func TestCPU_decimalAdjustKeepsCarry(t *testing.T) {
	c := New(memory.New(), nil)
	c.r.A = 0x00
	c.setFlag(FlagCarry)
	c.decimalAdjust()
	if c.r.A != 0x60 || !c.isFlagSet(FlagCarry) {
		t.Errorf("expected A 0x60 with carry, got 0x%02X carry %t", c.r.A, c.isFlagSet(FlagCarry))
	}
}

func TestCPU_subtractFlags(t *testing.T) {
	tests := []struct {
		a, n     uint8
		borrow   bool
		want     uint8
		carry    bool
		auxCarry bool
	}{
		{a: 0x10, n: 0x01, want: 0x0F, carry: false, auxCarry: false},
		{a: 0x01, n: 0x02, want: 0xFF, carry: true, auxCarry: false},
		{a: 0x3E, n: 0x3E, want: 0x00, carry: false, auxCarry: true},
		{a: 0x00, n: 0x00, borrow: true, want: 0xFF, carry: true, auxCarry: false},
		{a: 0x05, n: 0x03, borrow: true, want: 0x01, carry: false, auxCarry: true},
	}
	for _, tt := range tests {
		c := New(memory.New(), nil)
		c.r.A = tt.a
		c.setFlagTo(FlagCarry, tt.borrow)
		got := c.subtract(tt.n, true)
		if got != tt.want {
			t.Errorf("0x%02X-0x%02X: expected 0x%02X, got 0x%02X", tt.a, tt.n, tt.want, got)
		}
		if c.isFlagSet(FlagCarry) != tt.carry {
			t.Errorf("0x%02X-0x%02X: expected carry %t", tt.a, tt.n, tt.carry)
		}
		if c.isFlagSet(FlagAuxCarry) != tt.auxCarry {
			t.Errorf("0x%02X-0x%02X: expected aux carry %t", tt.a, tt.n, tt.auxCarry)
		}
		if c.r.A != tt.a {
			t.Error("subtract must not store the result")
		}
	}
}

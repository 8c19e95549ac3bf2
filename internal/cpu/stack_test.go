package cpu

import "testing"

func TestCPU_PushPop(t *testing.T) {
	// LXI B; LXI D; LXI H; PUSH B; PUSH D; PUSH H; POP B; POP D; POP H
	c, mem, _ := newTestCPU(t,
		0x01, 0x34, 0x12,
		0x11, 0x78, 0x56,
		0x21, 0xBC, 0x9A,
		0xC5, 0xD5, 0xE5,
		0xC1, 0xD1, 0xE1,
	)
	for i := 0; i < 6; i++ {
		mustStep(t, c)
	}
	if c.SP() != 0xF000-6 {
		t.Fatalf("expected SP 0x%04X, got 0x%04X", 0xF000-6, c.SP())
	}
	if mem.Read(0xEFFF) != 0x12 || mem.Read(0xEFFE) != 0x34 {
		t.Error("expected B pushed high byte first")
	}
	for i := 0; i < 3; i++ {
		mustStep(t, c)
	}
	r := c.Registers()
	if r.BC() != 0x9ABC || r.DE() != 0x5678 || r.HL() != 0x1234 {
		t.Errorf("unexpected pairs after pops: %s", r)
	}
	if r.SP != 0xF000 {
		t.Errorf("expected SP restored, got 0x%04X", r.SP)
	}
}

func TestCPU_PushPopPSW(t *testing.T) {
	// PUSH PSW; POP PSW, with 0xFF under the flags slot
	c, mem, _ := newTestCPU(t, 0xF5, 0xF1)
	c.r.A, c.r.F = 0xAB, 0x83
	mustStep(t, c)
	if got := mem.ReadWord(c.SP()); got != 0xAB83 {
		t.Errorf("expected PSW 0xAB83, got 0x%04X", got)
	}

	mem.Write(c.SP(), 0xFF)
	mustStep(t, c)
	if c.r.A != 0xAB {
		t.Errorf("expected A 0xAB, got 0x%02X", c.r.A)
	}
	if c.r.F != 0xD7 {
		t.Errorf("expected F normalised to 0xD7, got 0x%02X", c.r.F)
	}
}

func TestCPU_XTHL(t *testing.T) {
	c, mem, _ := newTestCPU(t, 0xE3)
	c.r.H, c.r.L = 0x12, 0x34
	c.r.SP = 0x2000
	mem.WriteWord(0x2000, 0xBEEF)
	if cycles := mustStep(t, c); cycles != 18 {
		t.Errorf("expected 18 cycles, got %d", cycles)
	}
	if c.r.HL.Uint16() != 0xBEEF || mem.ReadWord(0x2000) != 0x1234 {
		t.Error("expected HL and top of stack swapped")
	}
	if c.SP() != 0x2000 {
		t.Error("expected SP unchanged")
	}
}

func TestCPU_SPHL(t *testing.T) {
	c, _, _ := newTestCPU(t, 0xF9)
	c.r.H, c.r.L = 0xC0, 0x00
	if cycles := mustStep(t, c); cycles != 5 {
		t.Errorf("expected 5 cycles, got %d", cycles)
	}
	if c.SP() != 0xC000 {
		t.Errorf("expected SP 0xC000, got 0x%04X", c.SP())
	}
}

func TestCPU_StackWraparound(t *testing.T) {
	// PUSH B with SP at 0x0001 writes 0xFFFF and 0x0000
	c, mem, _ := newTestCPU(t, 0xC5)
	c.r.SP = 0x0001
	c.r.B, c.r.C = 0xAA, 0x55
	mustStep(t, c)
	if c.SP() != 0xFFFF {
		t.Errorf("expected SP 0xFFFF, got 0x%04X", c.SP())
	}
	if mem.Read(0xFFFF) != 0x55 || mem.Read(0x0000) != 0xAA {
		t.Error("expected push to wrap around the address space")
	}
}

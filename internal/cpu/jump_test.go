package cpu

import "testing"

func TestCPU_ConditionalCycles(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		flags  uint8
		cycles uint8
		pc     uint16
	}{
		{"JZ not taken", 0xCA, 0x02, 10, testOrigin + 3},
		{"JZ taken", 0xCA, 0x42, 10, 0x2000},
		{"CNZ not taken", 0xC4, 0x42, 11, testOrigin + 3},
		{"CNZ taken", 0xC4, 0x02, 17, 0x2000},
		{"RC not taken", 0xD8, 0x02, 5, testOrigin + 1},
		{"RC taken", 0xD8, 0x03, 11, 0x3000},
		{"JPE taken", 0xEA, 0x06, 10, 0x2000},
		{"CM not taken", 0xFC, 0x02, 11, testOrigin + 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mem, _ := newTestCPU(t, tt.opcode, 0x00, 0x20)
			mem.WriteWord(0xF000, 0x3000)
			c.r.F = tt.flags
			if cycles := mustStep(t, c); cycles != tt.cycles {
				t.Errorf("expected %d cycles, got %d", tt.cycles, cycles)
			}
			if c.PC() != tt.pc {
				t.Errorf("expected PC 0x%04X, got 0x%04X", tt.pc, c.PC())
			}
		})
	}
}

func TestCPU_CallReturn(t *testing.T) {
	// CALL 0x0200; HLT ... 0x0200: RET
	c, mem, _ := newTestCPU(t, 0xCD, 0x00, 0x02, 0x76)
	mem.Write(0x0200, 0xC9)

	if cycles := mustStep(t, c); cycles != 17 {
		t.Errorf("expected CALL to take 17 cycles, got %d", cycles)
	}
	if c.PC() != 0x0200 || mem.ReadWord(c.SP()) != testOrigin+3 {
		t.Fatalf("expected call to 0x0200 returning to 0x%04X", testOrigin+3)
	}
	if cycles := mustStep(t, c); cycles != 10 {
		t.Errorf("expected RET to take 10 cycles, got %d", cycles)
	}
	if c.PC() != testOrigin+3 || c.SP() != 0xF000 {
		t.Errorf("expected return to 0x%04X, got 0x%04X", testOrigin+3, c.PC())
	}
}

func TestCPU_Restart(t *testing.T) {
	for n := uint8(0); n < 8; n++ {
		c, mem, _ := newTestCPU(t, 0xC7|n<<3)
		if cycles := mustStep(t, c); cycles != 11 {
			t.Errorf("RST %d: expected 11 cycles, got %d", n, cycles)
		}
		if c.PC() != uint16(n)*8 {
			t.Errorf("RST %d: expected PC 0x%04X, got 0x%04X", n, uint16(n)*8, c.PC())
		}
		if mem.ReadWord(c.SP()) != testOrigin+1 {
			t.Errorf("RST %d: wrong return address", n)
		}
	}
}

func TestCPU_PCHL(t *testing.T) {
	c, _, _ := newTestCPU(t, 0xE9)
	c.r.H, c.r.L = 0x43, 0x21
	if cycles := mustStep(t, c); cycles != 5 {
		t.Errorf("expected 5 cycles, got %d", cycles)
	}
	if c.PC() != 0x4321 {
		t.Errorf("expected PC 0x4321, got 0x%04X", c.PC())
	}
}

package cpu

import (
	"testing"

	"github.com/thelolagemann/go-8080/internal/memory"
)

func newMemoryWith(bytes map[uint16]uint8) *memory.Memory {
	mem := memory.New()
	for addr, value := range bytes {
		mem.Write(addr, value)
	}
	return mem
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		bytes  []uint8
		text   string
		length uint8
	}{
		{[]uint8{0x00}, "NOP", 1},
		{[]uint8{0x78}, "MOV A, B", 1},
		{[]uint8{0x3E, 0x42}, "MVI A, 0x42", 2},
		{[]uint8{0x21, 0x34, 0x12}, "LXI H, 0x1234", 3},
		{[]uint8{0xC3, 0x00, 0x01}, "JMP 0x0100", 3},
		{[]uint8{0xFA, 0xCD, 0xAB}, "JM 0xABCD", 3},
		{[]uint8{0xD3, 0x01}, "OUT 0x01", 2},
		{[]uint8{0xDF}, "RST 3", 1},
		{[]uint8{0xDD}, "DB 0xDD", 1},
	}
	for _, tt := range tests {
		mem := memory.New()
		if err := mem.LoadImage(0x0100, tt.bytes); err != nil {
			t.Fatal(err)
		}
		text, length := Disassemble(mem, 0x0100)
		if text != tt.text || length != tt.length {
			t.Errorf("expected %q (%d), got %q (%d)", tt.text, tt.length, text, length)
		}
	}
}

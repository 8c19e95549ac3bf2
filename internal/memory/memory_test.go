package memory

import (
	"errors"
	"testing"

	"github.com/thelolagemann/go-8080/internal/types"
)

func TestMemory_ReadWrite(t *testing.T) {
	m := New()
	for _, addr := range []uint16{0x0000, 0x0100, 0x7FFF, 0xFFFF} {
		m.Write(addr, 0xA5)
		if got := m.Read(addr); got != 0xA5 {
			t.Errorf("Read(0x%04X) = 0x%02X, want 0xA5", addr, got)
		}
	}
}

func TestMemory_Word(t *testing.T) {
	t.Run("little endian", func(t *testing.T) {
		m := New()
		m.WriteWord(0x1000, 0xBEEF)
		if m.Read(0x1000) != 0xEF || m.Read(0x1001) != 0xBE {
			t.Errorf("expected EF BE, got %02X %02X", m.Read(0x1000), m.Read(0x1001))
		}
		if got := m.ReadWord(0x1000); got != 0xBEEF {
			t.Errorf("ReadWord = 0x%04X, want 0xBEEF", got)
		}
	})
	t.Run("wraparound", func(t *testing.T) {
		m := New()
		m.WriteWord(0xFFFF, 0x1234)
		if got := m.ReadWord(0xFFFF); got != 0x1234 {
			t.Errorf("ReadWord(0xFFFF) = 0x%04X, want 0x1234", got)
		}
		if m.Read(0xFFFF) != 0x34 {
			t.Errorf("low byte at 0xFFFF = 0x%02X, want 0x34", m.Read(0xFFFF))
		}
		if m.Read(0x0000) != 0x12 {
			t.Errorf("high byte at 0x0000 = 0x%02X, want 0x12", m.Read(0x0000))
		}
	})
}

func TestMemory_LoadImage(t *testing.T) {
	m := New()
	if err := m.LoadImage(0x0100, []byte{0xC3, 0x00, 0x01}); err != nil {
		t.Fatal(err)
	}
	if got := m.Dump(0x0100, 0x0102); string(got) != string([]byte{0xC3, 0x00, 0x01}) {
		t.Errorf("Dump = % X", got)
	}

	err := m.LoadImage(0xFFFF, []byte{1, 2})
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("expected ErrImageTooLarge, got %v", err)
	}
	if m.Read(0xFFFF) != 0 || m.Read(0x0000) != 0 {
		t.Error("failed load must not modify memory")
	}
}

func TestMemory_State(t *testing.T) {
	m := New()
	m.Write(0x4242, 0x42)
	m.Write(0xFFFF, 0x99)

	s := types.NewState()
	m.Save(s)

	restored := New()
	restored.Load(types.StateFromBytes(s.Bytes()))
	if restored.Read(0x4242) != 0x42 || restored.Read(0xFFFF) != 0x99 {
		t.Error("state round trip lost data")
	}

	m.Reset()
	if m.Read(0x4242) != 0 {
		t.Error("Reset did not clear memory")
	}
}

package types

import (
	"errors"
	"testing"
)

func TestState(t *testing.T) {
	s := NewState()
	s.Write8(0xAB)
	s.Write16(0x1234)
	s.Write64(0x0102030405060708)
	s.WriteBool(true)
	s.WriteData([]byte("8080"))

	if got := s.Bytes()[1:3]; got[0] != 0x34 || got[1] != 0x12 {
		t.Errorf("expected little endian words, got % X", got)
	}

	r := StateFromBytes(s.Bytes())
	if r.Read8() != 0xAB || r.Read16() != 0x1234 || r.Read64() != 0x0102030405060708 || !r.ReadBool() {
		t.Fatal("values did not survive the round trip")
	}
	data := make([]byte, 4)
	r.ReadData(data)
	if string(data) != "8080" {
		t.Errorf("expected data 8080, got %q", data)
	}
	if r.Remaining() != 0 || r.Err() != nil {
		t.Errorf("expected fully consumed state, %d bytes left, err %v", r.Remaining(), r.Err())
	}

	r.ResetPosition()
	if r.Read8() != 0xAB {
		t.Error("expected ResetPosition to rewind")
	}
}

func TestState_Truncated(t *testing.T) {
	s := StateFromBytes([]byte{0x01})
	if s.Read16() != 0 {
		t.Error("expected zero value from a short read")
	}
	if s.Read8() != 0 {
		t.Error("expected reads after truncation to stay zero")
	}
	if !errors.Is(s.Err(), ErrStateTruncated) {
		t.Errorf("expected ErrStateTruncated, got %v", s.Err())
	}
}

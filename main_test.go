package main

import "testing"

func TestParseTimer(t *testing.T) {
	tests := []struct {
		in      string
		want    timerFlag
		wantErr bool
	}{
		{"0x10:33333:1", timerFlag{port: 0x10, period: 33333, vector: 1}, false},
		{"2:0x100:7", timerFlag{port: 2, period: 0x100, vector: 7}, false},
		{"2:100", timerFlag{}, true},
		{"0x100:100:1", timerFlag{}, true},
		{"2:0:1", timerFlag{}, true},
		{"2:100:8", timerFlag{}, true},
	}
	for _, tt := range tests {
		got, err := parseTimer(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTimer(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTimer(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseAddress(t *testing.T) {
	for in, want := range map[string]uint16{"0x0100": 0x0100, "256": 0x0100, "0xFFFF": 0xFFFF} {
		if got, err := parseAddress(in); err != nil || got != want {
			t.Errorf("parseAddress(%q) = 0x%04X, %v", in, got, err)
		}
	}
	if _, err := parseAddress("0x10000"); err == nil {
		t.Error("expected an address past 0xFFFF to be rejected")
	}
}

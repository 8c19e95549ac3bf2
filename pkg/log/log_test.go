package log

import (
	"bytes"
	"testing"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf))
	l.Infof("loaded %d bytes", 3)
	l.Debugf("hidden")
	l.Errorf("failed: %s", "boom")

	want := "[INFO]\tloaded 3 bytes\n[ERROR]\tfailed: boom\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}

	buf.Reset()
	New(WithOutput(&buf), WithDebug()).Debugf("pc=%04X", 0x100)
	if buf.String() != "[DEBUG]\tpc=0100\n" {
		t.Errorf("unexpected debug output %q", buf.String())
	}
}

//go:build !test

package fyne

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/thelolagemann/go-8080/internal/machine"
	"github.com/thelolagemann/go-8080/pkg/log"
)

func TestApplication_WrapLogger(t *testing.T) {
	var buf bytes.Buffer
	a := &Application{}
	logger := a.WrapLogger(log.New(log.WithOutput(&buf)))

	// an unimplemented opcode is logged by the machine
	m, err := machine.New([]byte{0x00, 0xED}, machine.WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Run(context.Background()); err == nil {
		t.Fatal("expected the run to fail")
	}

	entries := a.Log.Entries()
	if len(entries) == 0 || !strings.Contains(entries[len(entries)-1], "unimplemented opcode 0xED") {
		t.Errorf("expected the machine error in the log view, got %q", entries)
	}
	if !strings.Contains(buf.String(), "unimplemented opcode 0xED") {
		t.Errorf("expected the error to reach the wrapped logger, got %q", buf.String())
	}
}

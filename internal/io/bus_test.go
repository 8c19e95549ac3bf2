package io

import (
	"bytes"
	"context"
	"errors"
	goio "io"
	"strings"
	"testing"
	"time"
)

func TestBus(t *testing.T) {
	b := NewBus()
	if got := b.In(0x42); got != 0xFF {
		t.Errorf("expected unattached port to read 0xFF, got 0x%02X", got)
	}
	b.Out(0x42, 0x01) // discarded

	var written []uint8
	b.Attach(0x42, DeviceFunc{
		InFunc:  func(port uint8) uint8 { return port + 1 },
		OutFunc: func(_ uint8, value uint8) { written = append(written, value) },
	})
	if !b.Attached(0x42) {
		t.Fatal("expected port to be attached")
	}
	if got := b.In(0x42); got != 0x43 {
		t.Errorf("expected 0x43, got 0x%02X", got)
	}
	b.Out(0x42, 0x99)
	if len(written) != 1 || written[0] != 0x99 {
		t.Errorf("expected one write of 0x99, got %v", written)
	}

	b.Detach(0x42)
	if b.Attached(0x42) || b.In(0x42) != 0xFF {
		t.Error("expected port to be free after Detach")
	}
}

func TestBus_AttachTwice(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected attaching twice to panic")
		}
	}()
	b := NewBus()
	b.Attach(0, NewConsole())
	b.Attach(0, NewConsole())
}

func TestConsole_Output(t *testing.T) {
	var mirror bytes.Buffer
	c := NewConsole(WithMirror(&mirror), StripCarriageReturns(), StripFormFeeds())

	var seen int
	c.Subscribe(func(byte) { seen++ })

	for _, b := range []byte("\fOK\r\n") {
		c.Out(ConsolePort, b)
	}
	c.Out(ConsoleStatusPort, 'X')

	if c.Output() != "OK\n" {
		t.Errorf("expected captured %q, got %q", "OK\n", c.Output())
	}
	if mirror.String() != "\fOK\r\n" {
		t.Errorf("expected mirror %q, got %q", "\fOK\r\n", mirror.String())
	}
	if seen != 5 {
		t.Errorf("expected 5 subscriber calls, got %d", seen)
	}

	c.Reset()
	if c.Output() != "" {
		t.Error("expected Reset to clear the capture")
	}
}

func TestConsole_Input(t *testing.T) {
	c := NewConsole()
	if c.In(ConsoleStatusPort) != 0x00 {
		t.Error("expected status to report no input")
	}
	if b, ok := c.ReadInput(); !ok || b != EOF {
		t.Error("expected EOF from a console without input")
	}

	c.Feed([]byte("hi"))
	if c.In(ConsoleStatusPort) != 0xFF {
		t.Error("expected status to report input waiting")
	}
	if b, _ := c.ReadInput(); c.In(ConsolePort) != 'i' || b != 'h' {
		t.Error("expected input in order")
	}
	if _, ok := c.TryReadByte(); ok {
		t.Error("expected input to be drained")
	}
}

func TestConsole_Reader(t *testing.T) {
	c := NewConsole(WithInput(strings.NewReader("A")))
	for _, want := range []uint8{'A', EOF} {
		if err := c.WaitInput(context.Background()); err != nil {
			t.Fatal(err)
		}
		if got, ok := c.ReadInput(); !ok || got != want {
			t.Errorf("expected 0x%02X, got 0x%02X", want, got)
		}
	}
}

func TestConsole_WaitInput(t *testing.T) {
	r, w := goio.Pipe()
	defer w.Close()
	c := NewConsole(WithInput(r))

	if _, ok := c.ReadInput(); ok {
		t.Fatal("expected no input from an idle source")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := c.WaitInput(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected the wait to end with its context, got %v", err)
	}

	go w.Write([]byte("x"))
	if err := c.WaitInput(context.Background()); err != nil {
		t.Fatal(err)
	}
	if b, ok := c.ReadInput(); !ok || b != 'x' {
		t.Errorf("expected 'x', got 0x%02X", b)
	}
}

type interruptRecorder []uint8

func (r *interruptRecorder) Interrupt(opcode uint8) {
	*r = append(*r, opcode)
}

func TestTimer(t *testing.T) {
	var irq interruptRecorder
	timer := NewTimer(&irq, 100, RST(7))

	timer.Step(200)
	if len(irq) != 0 {
		t.Fatal("expected a disabled timer to stay silent")
	}

	timer.Out(0, 1)
	for i := 0; i < 25; i++ {
		timer.Step(10)
	}
	if len(irq) != 2 || irq[0] != 0xFF {
		t.Errorf("expected two RST 7 requests, got %v", irq)
	}
	if timer.In(0) != 2 {
		t.Errorf("expected fired count 2, got %d", timer.In(0))
	}

	timer.Out(0, 0)
	timer.Step(250)
	if len(irq) != 2 {
		t.Error("expected a disabled timer to stop firing")
	}
}

func TestRST(t *testing.T) {
	for n, want := range []uint8{0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF} {
		if got := RST(uint8(n)); got != want {
			t.Errorf("RST(%d) = 0x%02X, expected 0x%02X", n, got, want)
		}
	}
}

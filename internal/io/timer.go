package io

import (
	"github.com/thelolagemann/go-8080/internal/types"
)

// Timer is an interval timer. Once enabled it requests an interrupt
// every period clock cycles, like the vertical blank interrupt of an
// 8080 arcade board. It is clocked by the machine as a
// types.Peripheral and controlled through a port: writing a non zero
// value enables it, writing zero disables it, and reading returns the
// number of interrupts raised so far, modulo 256.
type Timer struct {
	period  uint64
	counter uint64
	opcode  uint8
	enabled bool
	fired   uint8

	irq Interrupter
}

// NewTimer returns a disabled Timer that raises opcode on irq every
// period cycles.
func NewTimer(irq Interrupter, period uint64, opcode uint8) *Timer {
	if period == 0 {
		period = 1
	}
	return &Timer{
		period: period,
		opcode: opcode,
		irq:    irq,
	}
}

var (
	_ types.Peripheral = (*Timer)(nil)
	_ types.Stater     = (*Timer)(nil)
	_ Device           = (*Timer)(nil)
)

// Enable starts the timer from zero.
func (t *Timer) Enable() {
	t.enabled = true
	t.counter = 0
}

// Disable stops the timer.
func (t *Timer) Disable() {
	t.enabled = false
}

// Enabled reports whether the timer is running.
func (t *Timer) Enabled() bool {
	return t.enabled
}

// Step advances the timer by the given number of cycles.
func (t *Timer) Step(cycles uint8) {
	if !t.enabled {
		return
	}
	t.counter += uint64(cycles)
	for t.counter >= t.period {
		t.counter -= t.period
		t.fired++
		t.irq.Interrupt(t.opcode)
	}
}

func (t *Timer) In(uint8) uint8 {
	return t.fired
}

func (t *Timer) Out(_ uint8, value uint8) {
	if value == 0 {
		t.Disable()
	} else {
		t.Enable()
	}
}

func (t *Timer) Reset() {
	t.counter = 0
	t.enabled = false
	t.fired = 0
}

func (t *Timer) Load(s *types.State) {
	t.counter = s.Read64()
	t.enabled = s.ReadBool()
	t.fired = s.Read8()
}

func (t *Timer) Save(s *types.State) {
	s.Write64(t.counter)
	s.WriteBool(t.enabled)
	s.Write8(t.fired)
}

// Package io provides the I/O port space of the 8080 and the devices
// that can be attached to it.
package io

import "fmt"

// Bus maps each of the 256 I/O ports to a Device. It is what the CPU
// calls into for IN and OUT.
type Bus struct {
	devices [256]Device
}

// NewBus returns a Bus with no devices attached. Every port reads
// 0xFF and discards writes until a Device is attached to it.
func NewBus() *Bus {
	b := &Bus{}
	for i := range b.devices {
		b.devices[i] = nullDevice{}
	}
	return b
}

// Attach attaches d to the given port. Attaching to a port that is
// already in use panics, as it is always a wiring mistake.
func (b *Bus) Attach(port uint8, d Device) {
	if _, ok := b.devices[port].(nullDevice); !ok {
		panic(fmt.Sprintf("port %02X has already been reserved", port))
	}
	b.devices[port] = d
}

// Detach removes whatever device is attached to port.
func (b *Bus) Detach(port uint8) {
	b.devices[port] = nullDevice{}
}

// Attached reports whether a device is attached to port.
func (b *Bus) Attached(port uint8) bool {
	_, ok := b.devices[port].(nullDevice)
	return !ok
}

// In reads a byte from the device attached to port.
func (b *Bus) In(port uint8) uint8 {
	return b.devices[port].In(port)
}

// Out writes value to the device attached to port.
func (b *Bus) Out(port uint8, value uint8) {
	b.devices[port].Out(port, value)
}

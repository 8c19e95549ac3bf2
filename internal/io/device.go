package io

// Device is a peripheral that can be attached to one or more ports
// of the Bus. The port is passed through so a single device can serve
// several ports, such as a data and a status port.
type Device interface {
	In(port uint8) uint8
	Out(port uint8, value uint8)
}

// nullDevice is an implementation of Device that reads as a floating
// data bus and ignores writes. It fills every port nothing has been
// attached to.
type nullDevice struct{}

// In always returns 0xFF.
func (nullDevice) In(uint8) uint8 { return 0xFF }

// Out does nothing.
func (nullDevice) Out(uint8, uint8) {}

// DeviceFunc adapts a pair of functions to a Device. Either may be
// nil, in which case the port behaves as if nothing were attached.
type DeviceFunc struct {
	InFunc  func(port uint8) uint8
	OutFunc func(port uint8, value uint8)
}

func (d DeviceFunc) In(port uint8) uint8 {
	if d.InFunc == nil {
		return 0xFF
	}
	return d.InFunc(port)
}

func (d DeviceFunc) Out(port uint8, value uint8) {
	if d.OutFunc != nil {
		d.OutFunc(port, value)
	}
}

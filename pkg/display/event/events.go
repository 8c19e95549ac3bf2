// Package event defines the various event types that can
// be sent to a display.Driver. This package is separate from
// the display package to avoid circular dependencies.
package event

// Type defines the various event types
// that can be sent to a display.Driver. The event type
// indicates to the display.Driver what action should be
// taken.
type Type int

const (
	// Quit is sent when the emulator is shutting down and the
	// display.Driver should close.
	Quit Type = iota
	// Output is sent for every batch of bytes the program writes
	// to its console. Data is a []byte.
	Output
	// Performance is periodically sent with the number of
	// clock cycles executed during the last second, as a
	// float64.
	Performance
	// Title is sent to the display.Driver to change the
	// title of the window. Data is a string.
	Title
	// Status is sent when the emulator status changes. Data
	// is an emulator.Status.
	Status
)

// Event is the data structure that is sent to the display.Driver
// to indicate an event has occurred. Data may or may not
// contain any data, depending on the event type.
type Event struct {
	// Type is the type of event
	Type Type
	// Data is the data of the event
	Data interface{}
}

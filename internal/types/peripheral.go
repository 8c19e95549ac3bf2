package types

// Peripheral is a device clocked alongside the CPU, such as an
// interval timer raising interrupts. After every instruction the
// machine calls Step with the number of cycles that instruction
// took, so the device can advance its own clock in lock step.
type Peripheral interface {
	// Step advances the peripheral device by the given number of cycles.
	Step(cycles uint8)
}

package cpu

// Interrupt requests an interrupt. The opcode is what the interrupting
// device places on the data bus, normally one of the RST instructions.
// The request is held until interrupts are enabled, then accepted at
// the start of the next Step. A later request replaces an earlier one
// that has not yet been accepted.
func (c *CPU) Interrupt(opcode uint8) {
	c.irq.pending = true
	c.irq.opcode = opcode
}

// InterruptPending reports whether an interrupt request is waiting to
// be accepted.
func (c *CPU) InterruptPending() bool {
	return c.irq.pending
}

// acceptInterrupt executes the requested opcode as if it had been
// fetched, without advancing PC, so a RST pushes the address of the
// instruction that would have run next (for a halted CPU, the one
// after HLT). Interrupts are disabled on acceptance.
func (c *CPU) acceptInterrupt() (uint8, error) {
	instruction := &c.set[c.irq.opcode]
	if instruction.fn == nil {
		return 0, &UnimplementedOpcodeError{Opcode: c.irq.opcode, PC: c.r.PC}
	}

	c.irq.pending = false
	c.ime = false
	c.mode = ModeNormal
	c.lastOpcode, c.lastPC = c.irq.opcode, c.r.PC

	return c.execute(instruction), nil
}

package cpu

import (
	"errors"
	"fmt"
)

// ErrUnimplementedOpcode matches every *UnimplementedOpcodeError with
// errors.Is.
var ErrUnimplementedOpcode = errors.New("unimplemented opcode")

// ErrWouldBlock is returned by a HookFunc that cannot complete yet,
// such as a console read with no input waiting. Step returns it
// wrapped and leaves the CPU as it was, so calling Step again runs the
// hook again.
var ErrWouldBlock = errors.New("hook would block")

// UnimplementedOpcodeError is returned by Step when the fetched byte
// has no handler. The CPU is left exactly as it was before the fetch.
type UnimplementedOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	return fmt.Sprintf("unimplemented opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

func (e *UnimplementedOpcodeError) Is(target error) bool {
	return target == ErrUnimplementedOpcode
}

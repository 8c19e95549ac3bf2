package io

import "fmt"

// Interrupter accepts interrupt requests from devices. The opcode is
// what the device places on the data bus when the CPU acknowledges
// the request.
type Interrupter interface {
	Interrupt(opcode uint8)
}

// RST returns the opcode of the restart instruction for vector n,
// the usual opcode an interrupting device supplies.
//
//	RST 0 = 0xC7, RST 1 = 0xCF, ..., RST 7 = 0xFF
func RST(n uint8) uint8 {
	if n > 7 {
		panic(fmt.Sprintf("invalid restart vector: %d", n))
	}
	return 0xC7 | n<<3
}

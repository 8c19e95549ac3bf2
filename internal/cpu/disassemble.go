package cpu

import (
	"fmt"
	"strings"
)

// Disassemble decodes the instruction at addr and returns its text,
// with any immediate operands filled in, and its length in bytes.
// Unimplemented opcodes are rendered as a DB directive.
func Disassemble(mem Memory, addr uint16) (string, uint8) {
	opcode := mem.Read(addr)
	instruction := InstructionSet[opcode]
	if !instruction.Implemented() {
		return fmt.Sprintf("DB 0x%02X", opcode), 1
	}

	text := instruction.name
	switch instruction.length {
	case 2:
		text = strings.Replace(text, "d8", fmt.Sprintf("0x%02X", mem.Read(addr+1)), 1)
	case 3:
		operand := fmt.Sprintf("0x%04X", mem.ReadWord(addr+1))
		text = strings.Replace(text, "d16", operand, 1)
		text = strings.Replace(text, "a16", operand, 1)
	}
	return text, instruction.length
}

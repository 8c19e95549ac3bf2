package machine

import (
	"fmt"
	"io"

	"github.com/thelolagemann/go-8080/internal/cpu"
)

// Tracer writes one line per executed instruction: its address, its
// disassembly, its cycles and the registers after it ran. Writes are
// unbuffered; wrap w in a bufio.Writer for long traces.
type Tracer struct {
	w io.Writer
}

// NewTracer returns a Tracer writing to w.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// Observe is a machine Observer.
func (t *Tracer) Observe(c *cpu.CPU, opcode uint8, pc uint16, cycles uint8) {
	text, _ := cpu.Disassemble(c.Memory(), pc)
	if c.Memory().Read(pc) != opcode {
		// an interrupt, executed from the data bus
		text = "INT " + cpu.InstructionSet[opcode].Name()
	}
	fmt.Fprintf(t.w, "%04X  %-16s %2d  %s\n", pc, text, cycles, c.Registers())
}

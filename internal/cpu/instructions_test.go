package cpu

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/thelolagemann/go-8080/internal/memory"
)

type instructionState struct {
	A   int      `json:"a"`
	B   int      `json:"b"`
	C   int      `json:"c"`
	D   int      `json:"d"`
	E   int      `json:"e"`
	H   int      `json:"h"`
	L   int      `json:"l"`
	F   int      `json:"f"`
	PC  int      `json:"pc"`
	SP  int      `json:"sp"`
	RAM [][2]int `json:"ram"`
}

func (s instructionState) registers() Registers {
	return Registers{
		A: uint8(s.A), B: uint8(s.B), C: uint8(s.C), D: uint8(s.D),
		E: uint8(s.E), H: uint8(s.H), L: uint8(s.L), F: uint8(s.F),
		PC: uint16(s.PC), SP: uint16(s.SP),
	}
}

type instructionTest struct {
	Name    string           `json:"name"`
	Bytes   []int            `json:"bytes"`
	Initial instructionState `json:"initial"`
	Final   instructionState `json:"final"`
	Cycles  int              `json:"cycles"`
}

func loadInstructionTests(t *testing.T, file string) []instructionTest {
	t.Helper()
	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	var tests []instructionTest
	if err := json.Unmarshal(b, &tests); err != nil {
		t.Fatal(err)
	}
	return tests
}

func runInstructionTest(t *testing.T, test instructionTest) {
	mem := memory.New()
	c := New(mem, nil)
	c.SetRegisters(test.Initial.registers())
	for _, ram := range test.Initial.RAM {
		mem.Write(uint16(ram[0]), uint8(ram[1]))
	}
	for i, b := range test.Bytes {
		mem.Write(uint16(test.Initial.PC+i), uint8(b))
	}

	cycles, err := c.Step()
	if err != nil {
		t.Fatal(err)
	}
	if int(cycles) != test.Cycles {
		t.Errorf("expected %d cycles, got %d", test.Cycles, cycles)
	}
	if got, want := c.Registers(), test.Final.registers(); got != want {
		t.Errorf("registers\nexpected %s\n     got %s", want, got)
	}
	for _, ram := range test.Final.RAM {
		if got := mem.Read(uint16(ram[0])); got != uint8(ram[1]) {
			t.Errorf("expected 0x%02X at 0x%04X, got 0x%02X", ram[1], ram[0], got)
		}
	}
}

func TestInstructions_Arithmetic(t *testing.T) {
	for _, test := range loadInstructionTests(t, "testdata/arithmetic.json") {
		t.Run(test.Name, func(t *testing.T) {
			runInstructionTest(t, test)
		})
	}
}

func TestInstructionSet(t *testing.T) {
	var implemented int
	for opcode, instruction := range InstructionSet {
		if !instruction.Implemented() {
			if _, ok := undocumentedOpcodes[uint8(opcode)]; !ok {
				t.Errorf("documented opcode 0x%02X has no handler", opcode)
			}
			continue
		}
		implemented++
		if instruction.Length() < 1 || instruction.Length() > 3 {
			t.Errorf("0x%02X %s: invalid length %d", opcode, instruction.Name(), instruction.Length())
		}
		if instruction.TakenCycles() < instruction.Cycles() {
			t.Errorf("0x%02X %s: taken cycles below base cycles", opcode, instruction.Name())
		}
	}
	if implemented != 244 {
		t.Errorf("expected 244 documented opcodes, got %d", implemented)
	}
}

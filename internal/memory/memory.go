// Package memory provides the flat 64KB address space of the 8080.
package memory

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/go-8080/internal/types"
)

// Size is the number of addressable bytes.
const Size = 0x10000

// ErrImageTooLarge is returned by LoadImage when an image does not fit
// between the base address and the top of memory.
var ErrImageTooLarge = errors.New("memory: image does not fit in address space")

var _ types.Stater = (*Memory)(nil)

// Memory is 65536 bytes of plain read/write storage. Every uint16 is
// a valid address, so no access can fail. Word accesses are little
// endian and wrap from 0xFFFF to 0x0000.
type Memory struct {
	data [Size]uint8
}

// New returns zeroed memory.
func New() *Memory {
	return &Memory{}
}

// Read returns the byte at address.
func (m *Memory) Read(address uint16) uint8 {
	return m.data[address]
}

// Write stores value at address.
func (m *Memory) Write(address uint16, value uint8) {
	m.data[address] = value
}

// ReadWord returns the little endian word at address.
func (m *Memory) ReadWord(address uint16) uint16 {
	return uint16(m.data[address]) | uint16(m.data[address+1])<<8
}

// WriteWord stores value little endian at address.
func (m *Memory) WriteWord(address uint16, value uint16) {
	m.data[address] = uint8(value)
	m.data[address+1] = uint8(value >> 8)
}

// LoadImage copies image into memory starting at base.
func (m *Memory) LoadImage(base uint16, image []byte) error {
	if int(base)+len(image) > Size {
		return fmt.Errorf("%w: %d bytes at 0x%04X", ErrImageTooLarge, len(image), base)
	}
	copy(m.data[base:], image)
	return nil
}

// Dump returns a copy of the bytes in [from, to]. The range wraps
// when to is below from.
func (m *Memory) Dump(from, to uint16) []byte {
	n := int(to-from) + 1
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = m.data[from+uint16(i)]
	}
	return out
}

// Reset clears all of memory.
func (m *Memory) Reset() {
	m.data = [Size]uint8{}
}

func (m *Memory) Load(s *types.State) {
	s.ReadData(m.data[:])
}

func (m *Memory) Save(s *types.State) {
	s.WriteData(m.data[:])
}

package machine

import (
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/go-8080/internal/types"
	"github.com/thelolagemann/go-8080/pkg/emu"
	"github.com/thelolagemann/go-8080/pkg/emulator"
)

// save writes the CPU, memory, device and counter state to s.
func (m *Machine) save(s *types.State) {
	for _, st := range m.staters {
		st.Save(s)
	}
	s.Write64(m.cycles)
	s.Write64(m.instructions)
}

// SaveState returns the complete state of the machine.
func (m *Machine) SaveState() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := types.NewState()
	m.save(s)
	return s.Bytes()
}

// LoadState restores a state returned by SaveState. The machine is
// left untouched if the state is truncated.
func (m *Machine) LoadState(b []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// the state must be at least as long as our own
	check := types.StateFromBytes(b)
	scratch := types.NewState()
	m.save(scratch)
	check.ReadData(make([]byte, len(scratch.Bytes())))
	if err := check.Err(); err != nil {
		return err
	}

	s := types.StateFromBytes(b)
	for _, st := range m.staters {
		st.Load(s)
	}
	m.cycles = s.Read64()
	m.instructions = s.Read64()
	if err := s.Err(); err != nil {
		return err
	}
	m.status, m.err = emulator.Running, nil
	if m.idle() {
		m.status = emulator.Halted
	}
	m.resetThrottle()
	return nil
}

// Digest returns the xxhash of the CPU and memory state. Two runs of
// the same program that end with the same digest ended in the same
// state.
func (m *Machine) Digest() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := types.NewState()
	m.cpu.Save(s)
	m.mem.Save(s)
	return xxhash.Sum64(s.Bytes())
}

// SaveSnapshot writes a compressed snapshot of the machine to folder.
func (m *Machine) SaveSnapshot(folder string) (*emu.Save, error) {
	return emu.WriteSave(folder, m.ProgramDigest(), m.SaveState())
}

// LoadLatestSnapshot restores the newest snapshot in folder taken of
// the same program.
func (m *Machine) LoadLatestSnapshot(folder string) error {
	saves, err := emu.LoadSaves(folder, m.ProgramDigest())
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		return fmt.Errorf("machine: no snapshots in %s", folder)
	}
	state, err := saves[0].Read()
	if err != nil {
		return err
	}
	return m.LoadState(state)
}

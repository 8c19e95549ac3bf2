package web

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"
	"github.com/thelolagemann/go-8080/internal/cpu"
	"github.com/thelolagemann/go-8080/internal/machine"
	"github.com/thelolagemann/go-8080/pkg/display/event"
	"github.com/thelolagemann/go-8080/pkg/emulator"
	"github.com/thelolagemann/go-8080/pkg/log"
)

type fakeEmulator struct {
	mu       sync.Mutex
	mem      [0x10000]byte
	regs     cpu.Registers
	status   emulator.Status
	commands []emulator.Command
}

func (f *fakeEmulator) SendCommand(p emulator.CommandPacket) emulator.ResponsePacket {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, p.Command)
	switch p.Command {
	case emulator.CommandPause:
		f.status = emulator.Paused
	case emulator.CommandStep:
		f.regs.PC++
	default:
		return emulator.ResponsePacket{Command: p.Command, Error: errors.New("unsupported")}
	}
	return emulator.ResponsePacket{Command: p.Command, Data: []byte(f.status.String())}
}

func (f *fakeEmulator) Speed() float64 { return 0 }

func (f *fakeEmulator) Status() emulator.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *fakeEmulator) Registers() cpu.Registers {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs
}

func (f *fakeEmulator) Flags() map[string]bool { return map[string]bool{} }
func (f *fakeEmulator) Cycles() uint64         { return 1234 }
func (f *fakeEmulator) Output() string         { return "" }

func (f *fakeEmulator) Dump(from, to uint16) []byte {
	out := make([]byte, int(to)-int(from)+1)
	copy(out, f.mem[from:int(to)+1])
	return out
}

func (f *fakeEmulator) Disassemble(addr uint16, count int) []machine.Line {
	lines := make([]machine.Line, count)
	for i := range lines {
		lines[i] = machine.Line{Address: addr + uint16(i), Text: "NOP", Bytes: []byte{0}}
	}
	return lines
}

// startMonitor starts a monitor on a free port and dials it.
func startMonitor(t *testing.T, emu *fakeEmulator, compression bool) (*Monitor, chan event.Event, *websocket.Conn) {
	t.Helper()
	m := NewMonitor("127.0.0.1:0", compression, 5)
	m.Log = log.NewNullLogger()
	m.Initialize(emu)

	events := make(chan event.Event)
	done := make(chan error, 1)
	go func() { done <- m.Start(events) }()
	t.Cleanup(func() {
		m.Stop()
		if err := <-done; err != nil {
			t.Errorf("unexpected error from Start: %v", err)
		}
	})

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+m.Addr().String()+"/", nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return m, events, conn
}

// readType reads messages until one of type typ arrives.
func readType(t *testing.T, conn *websocket.Conn, typ Type) []byte {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for message %d: %v", typ, err)
		}
		if len(msg) > 0 && msg[0] == typ {
			return msg
		}
	}
}

func TestMonitor_Connect(t *testing.T) {
	emu := &fakeEmulator{regs: cpu.Registers{A: 0x12, F: 0x02, PC: 0x0100, SP: 0xF000}}
	_, _, conn := startMonitor(t, emu, true)

	info := readType(t, conn, ClientInfo)
	if info[1] == 0 {
		t.Error("expected a client id")
	}
	if info[2]&0x01 == 0 {
		t.Error("expected compression to be reported")
	}
	if info[3] != 5 {
		t.Errorf("expected compression level 5, got %d", info[3])
	}

	regs := readType(t, conn, Registers)
	if regs[2] != 0x12 {
		t.Errorf("expected A 0x12, got 0x%02X", regs[2])
	}
	if sp := binary.LittleEndian.Uint16(regs[10:12]); sp != 0xF000 {
		t.Errorf("expected SP 0xF000, got 0x%04X", sp)
	}
	if pc := binary.LittleEndian.Uint16(regs[12:14]); pc != 0x0100 {
		t.Errorf("expected PC 0x0100, got 0x%04X", pc)
	}
	if cycles := binary.LittleEndian.Uint64(regs[14:]); cycles != 1234 {
		t.Errorf("expected 1234 cycles, got %d", cycles)
	}
}

func TestMonitor_Pages(t *testing.T) {
	for _, compression := range []bool{false, true} {
		emu := &fakeEmulator{}
		for i := 0; i < 0x100; i++ {
			emu.mem[0x0200+i] = uint8(i)
		}
		_, _, conn := startMonitor(t, emu, compression)
		readType(t, conn, ClientInfo)

		if err := conn.WriteMessage(websocket.BinaryMessage, []byte{RequestPage, 0x02}); err != nil {
			t.Fatal(err)
		}
		msg := readType(t, conn, Page)
		if msg[1] != 0x02 || msg[2] != 0 {
			t.Errorf("expected page 2 in slot 0, got page %d slot %d", msg[1], msg[2])
		}
		data := msg[4:]
		if compression {
			if msg[3] != 1 {
				t.Fatal("expected a compressed page")
			}
			var err error
			if data, err = cbrotli.Decode(data); err != nil {
				t.Fatal(err)
			}
		}
		if !bytes.Equal(data, emu.mem[0x0200:0x0300]) {
			t.Error("page contents differ")
		}

		// the same page again only references the slot
		if err := conn.WriteMessage(websocket.BinaryMessage, []byte{RequestPage, 0x02}); err != nil {
			t.Fatal(err)
		}
		if msg := readType(t, conn, PageCache); msg[1] != 0x02 || msg[2] != 0 {
			t.Errorf("expected page 2 cached in slot 0, got %v", msg[1:])
		}
	}
}

func TestMonitor_Command(t *testing.T) {
	emu := &fakeEmulator{}
	_, _, conn := startMonitor(t, emu, false)
	readType(t, conn, ClientInfo)

	tests := []struct {
		command emulator.Command
		failed  uint8
		text    string
	}{
		{emulator.CommandPause, 0, "Paused"},
		{emulator.CommandStep, 0, "Paused"},
		{emulator.CommandReset, 1, "unsupported"},
	}
	for _, tt := range tests {
		if err := conn.WriteMessage(websocket.BinaryMessage, []byte{RequestCommand, uint8(tt.command)}); err != nil {
			t.Fatal(err)
		}
		msg := readType(t, conn, CommandResponse)
		if emulator.Command(msg[1]) != tt.command || msg[2] != tt.failed || string(msg[3:]) != tt.text {
			t.Errorf("%s: unexpected response %v %q", tt.command, msg[1:3], msg[3:])
		}
	}
	if emu.Registers().PC != 1 {
		t.Error("expected the step command to reach the emulator")
	}
}

func TestMonitor_Disassembly(t *testing.T) {
	_, _, conn := startMonitor(t, &fakeEmulator{}, false)
	readType(t, conn, ClientInfo)

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{RequestDisassembly, 0x00, 0x01, 3}); err != nil {
		t.Fatal(err)
	}
	msg := readType(t, conn, Disassembly)
	lines := strings.Split(string(msg[1:]), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "0100") {
		t.Errorf("unexpected disassembly %q", msg[1:])
	}
}

func TestMonitor_Output(t *testing.T) {
	_, events, conn := startMonitor(t, &fakeEmulator{}, false)
	readType(t, conn, ClientInfo)
	readType(t, conn, Registers)

	events <- event.Event{Type: event.Output, Data: []byte("hello")}
	if msg := readType(t, conn, Output); string(msg[1:]) != "hello" {
		t.Errorf("expected hello, got %q", msg[1:])
	}
}

func TestCache(t *testing.T) {
	c := newCache(2)
	if c.index(1) != -1 {
		t.Error("expected empty cache")
	}
	if slot := c.add(1, []byte{1}); slot != 0 {
		t.Errorf("expected slot 0, got %d", slot)
	}
	c.add(2, []byte{2})
	c.add(3, []byte{3})
	if c.index(1) != -1 {
		t.Error("expected oldest entry to be evicted")
	}
	if c.index(3) != 0 || c.index(2) != 1 {
		t.Error("expected ring order")
	}
	c.enabled = false
	if c.index(3) != -1 {
		t.Error("expected disabled cache to miss")
	}
}

func TestMonitor_WrapLogger(t *testing.T) {
	var buf bytes.Buffer
	m := NewMonitor("127.0.0.1:0", false, 0)
	logger := m.WrapLogger(log.New(log.WithOutput(&buf)))
	m.Log.Infof("hello")
	if logger != m.Log || !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected the monitor to log through the wrapped logger, got %q", buf.String())
	}
}

package web

import (
	"encoding/binary"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/go-8080/internal/types"
	"github.com/thelolagemann/go-8080/pkg/display"
	"github.com/thelolagemann/go-8080/pkg/emulator"
	"golang.org/x/sys/unix"
)

type hub struct {
	emu display.Emulator

	clients              map[*Client]bool
	broadcast            chan []byte
	register, unregister chan *Client
	done                 chan struct{}
	closeOnce            sync.Once

	compression      bool
	compressionLevel int
	currentID        uint8

	mu sync.Mutex
}

func newHub(emu display.Emulator, compression bool, level int) *hub {
	return &hub{
		emu:              emu,
		clients:          make(map[*Client]bool),
		broadcast:        make(chan []byte, 64),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		done:             make(chan struct{}),
		compression:      compression,
		compressionLevel: level,
	}
}

// handler returns the http.Handler that upgrades client connections.
func (h *hub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.serveWS)
	return mux
}

func (h *hub) serveWS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// upgrade the connection to a websocket connection, the upgrader
	// replies with the error itself
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := h.newClient(conn, r)
	if c == nil {
		conn.Close()
		return
	}

	// spawn read/write pumps
	go c.ReadPump()
	go c.WritePump()

	// send initial data information
	h.mu.Lock()
	level := uint8(h.compressionLevel)
	h.mu.Unlock()
	c.send([]byte{ClientInfo, c.ID, h.info(), level})
	c.send(h.registers())
}

// run handles client registration and broadcasting until close is
// called.
func (h *hub) run() {
	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-h.done:
			for c := range h.clients {
				c.close()
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			// is this client still registered
			if _, ok := h.clients[c]; !ok {
				continue
			}
			delete(h.clients, c)
			c.close()

			// notify connected clients that this client has disconnected
			for cl := range h.clients {
				cl.send([]byte{ClientClosing, c.ID})
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				if !c.send(msg) {
					// too slow to keep up, drop it
					delete(h.clients, c)
					c.close()
				}
			}
		case <-t.C:
			data := []byte{ServerInfo}
			for c := range h.clients {
				data = append(data, c.ID)
				data = binary.LittleEndian.AppendUint16(data, uint16(c.avgLatency.Load()))
			}
			for c := range h.clients {
				c.send(data)
			}
		}
	}
}

// send queues msg for every client. It is dropped once the hub has
// been closed.
func (h *hub) send(msg []byte) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// leave unregisters c from the hub.
func (h *hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
		c.close()
	}
}

func (h *hub) close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// info returns a byte of information describing the hub and the
// emulator. The byte is constructed as follows:
//
//	Bit 0: Compression enabled
//	Bit 1: Paused
//	Bit 2: Halted
//	Bit 3: Errored
func (h *hub) info() byte {
	info := uint8(0)
	h.mu.Lock()
	if h.compression {
		info |= types.Bit0
	}
	h.mu.Unlock()

	switch h.emu.Status() {
	case emulator.Paused:
		info |= types.Bit1
	case emulator.Halted:
		info |= types.Bit2
	case emulator.Errored:
		info |= types.Bit3
	}

	return info
}

// registers builds a Registers message from the current CPU state.
func (h *hub) registers() []byte {
	r := h.emu.Registers()
	msg := []byte{Registers, uint8(h.emu.Status()), r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L}
	msg = binary.LittleEndian.AppendUint16(msg, r.SP)
	msg = binary.LittleEndian.AppendUint16(msg, r.PC)
	return binary.LittleEndian.AppendUint64(msg, h.emu.Cycles())
}

// newClient creates a new client and registers it to the hub. It
// returns nil if the hub has been closed.
func (h *hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	h.mu.Lock()
	h.currentID++
	id := h.currentID
	h.mu.Unlock()

	c := &Client{
		hub:   h,
		conn:  conn,
		Send:  make(chan []byte, 256),
		done:  make(chan struct{}),
		ID:    id,
		pages: newCache(pageCacheSize),
		Metadata: struct {
			RemoteAddr string
			UserAgent  string
		}{RemoteAddr: r.RemoteAddr, UserAgent: r.Header.Get("User-Agent")},
		connectedAt: time.Now(),
	}

	select {
	case h.register <- c:
		return c
	case <-h.done:
		return nil
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func tcpInfo(conn *net.TCPConn) (*unix.TCPInfo, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return nil, err
	}

	var info *unix.TCPInfo
	ctrlErr := raw.Control(func(fd uintptr) {
		info, err = unix.GetsockoptTCPInfo(int(fd), unix.IPPROTO_TCP, unix.TCP_INFO)
	})
	switch {
	case ctrlErr != nil:
		return nil, ctrlErr
	case err != nil:
		return nil, err
	}

	return info, nil
}

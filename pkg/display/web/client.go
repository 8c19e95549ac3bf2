package web

import (
	"encoding/binary"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"
	"github.com/thelolagemann/go-8080/pkg/emulator"
)

// pageCacheSize is the number of memory pages a client is expected to
// remember.
const pageCacheSize = 64

// maxDisassembly caps the lines returned for one request.
const maxDisassembly = 64

type Client struct {
	hub      *hub
	conn     *websocket.Conn
	Send     chan []byte
	ID       uint8
	Metadata struct {
		RemoteAddr string
		UserAgent  string
	}
	avgLatency  atomic.Uint32
	connectedAt time.Time

	// pages is only touched by ReadPump
	pages *cache

	done      chan struct{}
	closeOnce sync.Once
}

// send queues msg for the client, reporting false if the client is
// closed or its queue is full.
func (c *Client) send(msg []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (c *Client) ReadPump() {
	defer c.hub.leave(c)

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case RequestPage:
			if len(message) < 2 {
				continue
			}
			c.sendPage(message[1])
		case RequestCommand:
			if len(message) < 2 {
				continue
			}
			c.command(emulator.CommandPacket{Command: emulator.Command(message[1]), Data: message[2:]})
		case RequestDisassembly:
			if len(message) < 4 {
				continue
			}
			c.disassemble(binary.LittleEndian.Uint16(message[1:3]), int(message[3]))
		case Compression:
			if len(message) < 2 {
				continue
			}
			c.hub.mu.Lock()
			c.hub.compression = message[1] == 1
			c.hub.mu.Unlock()
		case CompressionLevel:
			if len(message) < 2 || message[1] > 11 {
				continue
			}
			c.hub.mu.Lock()
			c.hub.compressionLevel = int(message[1])
			c.hub.mu.Unlock()
		case Closing:
			return
		}
	}
}

// sendPage sends a 256 byte memory page, or its cache slot if the
// client already holds an identical page.
func (c *Client) sendPage(page uint8) {
	from := uint16(page) << 8
	data := c.hub.emu.Dump(from, from|0xFF)
	hash := xxhash.Sum64(data)
	if slot := c.pages.index(hash); slot >= 0 {
		c.send([]byte{PageCache, page, uint8(slot)})
		return
	}
	slot := c.pages.add(hash, data)

	c.hub.mu.Lock()
	compression, level := c.hub.compression, c.hub.compressionLevel
	c.hub.mu.Unlock()

	msg := []byte{Page, page, uint8(slot), 0}
	if compression {
		if compressed, err := cbrotli.Encode(data, cbrotli.WriterOptions{Quality: level}); err == nil {
			msg[3] = 1
			data = compressed
		}
	}
	c.send(append(msg, data...))
}

func (c *Client) command(p emulator.CommandPacket) {
	resp := c.hub.emu.SendCommand(p)
	msg := []byte{CommandResponse, uint8(p.Command), 0}
	if resp.Error != nil {
		msg[2] = 1
		msg = append(msg, resp.Error.Error()...)
	} else {
		msg = append(msg, resp.Data...)
	}
	c.send(msg)

	// every client sees the effect of the command
	c.hub.send(c.hub.registers())
}

func (c *Client) disassemble(addr uint16, count int) {
	if count > maxDisassembly {
		count = maxDisassembly
	}
	var b strings.Builder
	for i, line := range c.hub.emu.Disassemble(addr, count) {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line.String())
	}
	c.send(append([]byte{Disassembly}, b.String()...))
}

func (c *Client) WritePump() {
	for {
		select {
		case <-c.done:
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case message := <-c.Send:
			// try to write message to client
			if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				c.hub.leave(c)
				return
			}

			// update average latency
			tcp, ok := c.conn.UnderlyingConn().(*net.TCPConn)
			if !ok {
				continue
			}
			info, err := tcpInfo(tcp)
			if err != nil {
				continue
			}
			avg := c.avgLatency.Load()
			c.avgLatency.Store((avg*9 + info.Rtt/1000) / 10)
		}
	}
}

package io

import (
	"bytes"
	"context"
	"io"
	"sync"
)

const (
	// ConsolePort is the data port the console is conventionally
	// attached to.
	ConsolePort uint8 = 0x00
	// ConsoleStatusPort reports whether console input is waiting.
	ConsoleStatusPort uint8 = 0x01

	// EOF is returned by ReadInput once the input is exhausted. It is
	// the CP/M end of file marker, ^Z.
	EOF uint8 = 0x1A
)

// Console is a character terminal. Bytes written to its data port are
// captured, and optionally mirrored to a writer; bytes read from it
// come from an input reader. It is safe for concurrent use: the
// capture is read by monitors while the machine writes to it.
type Console struct {
	mu   sync.Mutex
	cond *sync.Cond

	output bytes.Buffer
	mirror io.Writer
	strip  [256]bool // bytes left out of the capture

	input    []byte
	inputEOF bool
	sourced  bool

	subscribers []func(b byte)
}

// ConsoleOpt configures a Console.
type ConsoleOpt func(c *Console)

// WithMirror copies every output byte to w as it is written.
func WithMirror(w io.Writer) ConsoleOpt {
	return func(c *Console) {
		c.mirror = w
	}
}

// StripCarriageReturns drops '\r' from the captured output. The
// mirror still receives them.
func StripCarriageReturns() ConsoleOpt {
	return func(c *Console) {
		c.strip['\r'] = true
	}
}

// StripFormFeeds drops '\f', the clear screen control, from the
// captured output. The mirror still receives them.
func StripFormFeeds() ConsoleOpt {
	return func(c *Console) {
		c.strip['\f'] = true
	}
}

// WithInput feeds the console from r until r is exhausted.
func WithInput(r io.Reader) ConsoleOpt {
	return func(c *Console) {
		c.sourced = true
		go c.pump(r)
	}
}

// NewConsole returns a new Console.
func NewConsole(opts ...ConsoleOpt) *Console {
	c := &Console{}
	c.cond = sync.NewCond(&c.mu)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// pump copies r into the input queue.
func (c *Console) pump(r io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			c.Feed(buf[:n])
		}
		if err != nil {
			c.mu.Lock()
			c.inputEOF = true
			c.cond.Broadcast()
			c.mu.Unlock()
			return
		}
	}
}

// Feed queues p as console input.
func (c *Console) Feed(p []byte) {
	c.mu.Lock()
	c.input = append(c.input, p...)
	c.cond.Broadcast()
	c.mu.Unlock()
}

// Ready reports whether a byte of input is waiting.
func (c *Console) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.input) > 0
}

// ReadInput returns the next input byte. It reports false when no
// byte is waiting but more may still arrive from the input source.
// Once the input is exhausted, or when the console has no source, it
// returns EOF.
func (c *Console) ReadInput() (uint8, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.readable() {
		return 0, false
	}
	return c.next(), true
}

// WaitInput blocks until ReadInput would return a byte, or ctx is
// done.
func (c *Console) WaitInput(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		c.cond.Broadcast()
		c.mu.Unlock()
	})
	defer stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	for !c.readable() {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.cond.Wait()
	}
	return nil
}

func (c *Console) readable() bool {
	return len(c.input) > 0 || c.inputEOF || !c.sourced
}

// TryReadByte returns the next input byte, or false if none is
// waiting.
func (c *Console) TryReadByte() (uint8, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.input) == 0 {
		return 0, false
	}
	return c.next(), true
}

func (c *Console) next() uint8 {
	if len(c.input) == 0 {
		return EOF
	}
	b := c.input[0]
	c.input = c.input[1:]
	return b
}

// WriteByte writes b to the console output.
func (c *Console) WriteByte(b byte) error {
	c.mu.Lock()
	if !c.strip[b] {
		c.output.WriteByte(b)
	}
	mirror, subscribers := c.mirror, c.subscribers
	c.mu.Unlock()

	for _, fn := range subscribers {
		fn(b)
	}
	if mirror != nil {
		if _, err := mirror.Write([]byte{b}); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe registers fn to be called with every output byte.
func (c *Console) Subscribe(fn func(b byte)) {
	c.mu.Lock()
	c.subscribers = append(c.subscribers, fn)
	c.mu.Unlock()
}

// Output returns everything written to the console so far.
func (c *Console) Output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.output.String()
}

// Reset discards the captured output.
func (c *Console) Reset() {
	c.mu.Lock()
	c.output.Reset()
	c.mu.Unlock()
}

// In implements Device. The data port returns the next input byte,
// or 0x00 if none is waiting; the status port returns 0xFF when
// input is waiting and 0x00 otherwise.
func (c *Console) In(port uint8) uint8 {
	if port == ConsoleStatusPort {
		if c.Ready() {
			return 0xFF
		}
		return 0x00
	}
	b, _ := c.TryReadByte()
	return b
}

// Out implements Device. Writes to the status port are ignored.
func (c *Console) Out(port uint8, value uint8) {
	if port == ConsoleStatusPort {
		return
	}
	_ = c.WriteByte(value)
}

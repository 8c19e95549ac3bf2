package web

// Request is the first byte of a message sent by a client.
type Request = uint8

const (
	_ Request = iota
	// RequestPage asks for a 256 byte memory page. The second byte
	// is the page number.
	RequestPage
	// RequestCommand carries an emulator command: the command
	// followed by its data.
	RequestCommand
	// RequestDisassembly asks for disassembled lines starting at
	// the little endian address in bytes 1-2, byte 3 is the count.
	RequestDisassembly
	// Compression toggles brotli compression of memory pages for
	// every client.
	Compression
	// CompressionLevel sets the brotli quality (0-11).
	CompressionLevel
	// Closing is sent by a client before it disconnects.
	Closing Request = 255
)

// Type is the first byte of a message sent to a client.
type Type = uint8

const (
	// ClientInfo is sent on connect: the client id, followed by the
	// hub info byte and the compression level.
	ClientInfo Type = iota
	// ServerInfo periodically lists every client id with its
	// smoothed round trip time in milliseconds (uint16 LE).
	ServerInfo
	// Registers carries the status, the registers in the order
	// A F B C D E H L, SP and PC (LE), and the cycle count (uint64 LE).
	Registers
	// Output carries bytes written to the console.
	Output
	// Page carries a memory page: page number, cache slot, a
	// compression flag and the page data.
	Page
	// PageCache tells the client that a page equals the one it
	// holds in a cache slot: page number, cache slot.
	PageCache
	// CommandResponse answers RequestCommand: command, an error
	// flag, then the status or error text.
	CommandResponse
	// Disassembly carries newline separated disassembled lines.
	Disassembly
	// ClientClosing is sent to the remaining clients when one
	// disconnects, followed by its id.
	ClientClosing
)

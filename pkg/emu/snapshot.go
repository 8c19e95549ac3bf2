// Package emu stores machine state snapshots on disk.
//
// A snapshot is a types.State stream, compressed with brotli and
// framed with a small header so that a corrupt or foreign file is
// rejected before anything is restored from it:
//
//	0x00 magic "8080SNAP"
//	0x08 version
//	0x09 xxhash64 of the uncompressed state, little endian
//	0x11 brotli compressed state
package emu

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
)

const (
	magic   = "8080SNAP"
	version = 1

	headerSize = len(magic) + 1 + 8
)

var (
	// ErrBadSnapshot is returned for data that is not a snapshot.
	ErrBadSnapshot = errors.New("emu: not a snapshot")
	// ErrChecksumMismatch is returned when a snapshot decodes to
	// data other than what was encoded.
	ErrChecksumMismatch = errors.New("emu: snapshot checksum mismatch")
)

// Encode compresses state into a snapshot.
func Encode(state []byte) ([]byte, error) {
	compressed, err := cbrotli.Encode(state, cbrotli.WriterOptions{
		Quality: 9,
	})
	if err != nil {
		return nil, fmt.Errorf("emu: compressing snapshot: %w", err)
	}

	out := make([]byte, headerSize, headerSize+len(compressed))
	copy(out, magic)
	out[len(magic)] = version
	binary.LittleEndian.PutUint64(out[len(magic)+1:], xxhash.Sum64(state))
	return append(out, compressed...), nil
}

// Decode returns the state held by a snapshot.
func Decode(snapshot []byte) ([]byte, error) {
	if len(snapshot) < headerSize || !bytes.Equal(snapshot[:len(magic)], []byte(magic)) {
		return nil, ErrBadSnapshot
	}
	if v := snapshot[len(magic)]; v != version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, v)
	}
	sum := binary.LittleEndian.Uint64(snapshot[len(magic)+1:])

	state, err := cbrotli.Decode(snapshot[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if xxhash.Sum64(state) != sum {
		return nil, ErrChecksumMismatch
	}
	return state, nil
}

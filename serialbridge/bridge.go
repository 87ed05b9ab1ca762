// Package serialbridge drives I2C transactions through a USB-serial bridge
// adapter, so an i2cmux.Switch can be operated from a host machine without
// a native I2C controller.
package serialbridge

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"go.bug.st/serial"

	"github.com/dikkadev/i2cmux"
)

var (
	// ErrNack reports that the adapter saw no acknowledge on the bus.
	ErrNack = errors.New("serialbridge: transaction not acknowledged")

	// ErrBadFrame reports a malformed response frame from the adapter.
	ErrBadFrame = errors.New("serialbridge: bad response frame")
)

// Bridge runs blocking I2C transactions over a serial byte pipe, one
// request/response frame exchange per transaction. Exchanges are locked so
// a Bridge may back several drivers at once.
type Bridge struct {
	mu   sync.Mutex
	rw   io.ReadWriter
	port serial.Port // nil when constructed over a plain ReadWriter
}

var _ i2cmux.Bus = (*Bridge)(nil)

// Open opens the serial port the adapter enumerates as.
func Open(portName string, baud int) (*Bridge, error) {
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("serialbridge: open %s: %w", portName, err)
	}
	return &Bridge{rw: port, port: port}, nil
}

// New wraps any byte pipe that speaks the bridge framing.
func New(rw io.ReadWriter) *Bridge {
	return &Bridge{rw: rw}
}

// Tx runs one I2C transaction on the adapter's bus: write w to addr, then
// read len(r) bytes into r.
func (b *Bridge) Tx(addr uint16, w, r []byte) error {
	if len(w) > 0xFF || len(r) > 0xFF {
		return fmt.Errorf("serialbridge: transfer too long: %d out, %d in", len(w), len(r))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	frame := Marshal(Request{Addr: addr, W: w, RLen: uint8(len(r))})
	if _, err := b.rw.Write(frame); err != nil {
		return fmt.Errorf("serialbridge: write request: %w", err)
	}

	var head [3]byte
	if _, err := io.ReadFull(b.rw, head[:]); err != nil {
		return fmt.Errorf("serialbridge: read response: %w", err)
	}
	if head[0] != Signature || head[1] != Signature {
		return ErrBadFrame
	}
	switch head[2] {
	case StatusOK:
	case StatusNack:
		return ErrNack
	default:
		return ErrBadFrame
	}

	if len(r) > 0 {
		if _, err := io.ReadFull(b.rw, r); err != nil {
			return fmt.Errorf("serialbridge: read payload: %w", err)
		}
	}
	return nil
}

// Close closes the underlying serial port, if any.
func (b *Bridge) Close() error {
	if b.port == nil {
		return nil
	}
	return b.port.Close()
}

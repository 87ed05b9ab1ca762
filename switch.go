package i2cmux

import (
	"fmt"
	"sync"
)

// Switch drives the control register of a TCA9548A or PCA9548A over the
// upstream bus. The two chips are register compatible, so one type covers
// both.
//
// The driver never caches the control register: every select is a real
// write and every status query a real read, because a sibling port or an
// external master may have changed the chip state in between.
type Switch struct {
	mu   sync.Mutex
	bus  Bus
	addr uint16
}

// New wraps an upstream bus and a chip address. No I/O is performed; the
// chip keeps whatever mask it had, 0x00 after power-on.
func New(bus Bus, addr uint16) *Switch {
	return &Switch{bus: bus, addr: addr}
}

// Select writes the channel mask to the control register. Bit i enables
// channel i; 0x00 disconnects all channels and 0xFF bridges all eight at
// once.
func (s *Switch) Select(mask uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLocked(mask)
}

func (s *Switch) selectLocked(mask uint8) error {
	if err := s.bus.Tx(s.addr, []byte{mask}, nil); err != nil {
		return fmt.Errorf("i2cmux: select channels 0x%02x: %w", mask, err)
	}
	return nil
}

// Channels reads the control register back and reports which channels are
// currently enabled.
func (s *Switch) Channels() (uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var reg [1]byte
	if err := s.bus.Tx(s.addr, nil, reg[:]); err != nil {
		return 0, fmt.Errorf("i2cmux: read channel status: %w", err)
	}
	return reg[0], nil
}

// Tx runs a transaction on the upstream bus as-is, without touching the
// control register. It lets the Switch stand in for a plain bus once
// channels have been enabled manually with Select.
func (s *Switch) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bus.Tx(addr, w, r)
}

// Release hands the upstream bus back to the caller. No I/O is performed;
// the chip keeps its last written mask. The Switch and any ports split
// from it must not be used afterwards.
func (s *Switch) Release() Bus {
	s.mu.Lock()
	defer s.mu.Unlock()
	bus := s.bus
	s.bus = nil
	return bus
}

package i2cmux

import "tinygo.org/x/drivers"

// Port is one downstream channel of the switch, usable as an independent
// I2C bus. Every transaction selects the port's channels first and then
// runs on the upstream bus; both steps happen under the shared Switch lock
// so a sibling port can never slip its own select in between.
//
// A failed transaction leaves the port's channels selected; the previous
// mask is not restored. Ports never skip the select either, even when the
// same port ran last, since the chip state may have changed in between.
type Port struct {
	sw   *Switch
	mask uint8
}

// Port returns a proxy for a single channel, 0 through 7.
func (s *Switch) Port(channel uint8) *Port {
	if channel > 7 {
		panic("i2cmux: channel out of range")
	}
	return &Port{sw: s, mask: 1 << channel}
}

// Group returns a proxy that bridges every channel set in mask at once.
func (s *Switch) Group(mask uint8) *Port {
	return &Port{sw: s, mask: mask}
}

// Split returns one port per channel, all sharing the Switch.
func (s *Switch) Split() [8]*Port {
	var ports [8]*Port
	for ch := range ports {
		ports[ch] = s.Port(uint8(ch))
	}
	return ports
}

// Mask reports the channel mask the port selects before each transaction.
func (p *Port) Mask() uint8 { return p.mask }

// Tx selects the port's channels and forwards the transaction to the
// upstream bus. If the select write fails the downstream device is never
// addressed; a downstream failure is returned unchanged.
func (p *Port) Tx(addr uint16, w, r []byte) error {
	p.sw.mu.Lock()
	defer p.sw.mu.Unlock()
	if err := p.sw.selectLocked(p.mask); err != nil {
		return err
	}
	return p.sw.bus.Tx(addr, w, r)
}

// Ports and the Switch passthrough satisfy the TinyGo driver bus contract,
// so existing device drivers can be handed either one unmodified.
var (
	_ drivers.I2C = (*Port)(nil)
	_ drivers.I2C = (*Switch)(nil)
	_ Bus         = (*Port)(nil)
)

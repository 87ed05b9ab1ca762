// Package i2cmux provides a driver for the TCA9548A and PCA9548A 8-channel
// I2C switches/multiplexers.
//
// The chip sits between one upstream I2C bus and eight downstream channel
// buses. A single control register selects which channels are bridged to
// the upstream side; any combination may be enabled at once. Downstream
// channels are typically used to resolve slave address conflicts, for
// example eight identical temperature sensors, one per channel.
//
// A Switch drives the control register directly, and its Port proxies
// expose each channel as an independent I2C bus: every transaction on a
// port first selects the port's channels and then runs on the upstream bus,
// both under one lock, so ports can be handed to unrelated device drivers
// and used from multiple goroutines.
//
// Datasheets:
//   - TCA9548A: https://www.ti.com/lit/ds/symlink/tca9548a.pdf
//   - PCA9548A: https://www.ti.com/lit/ds/symlink/pca9548a.pdf
package i2cmux

// Bus is the blocking upstream I2C bus the switch is wired to. machine.I2C
// and anything implementing tinygo.org/x/drivers.I2C satisfies it.
//
// Tx addresses the 7-bit device address addr and performs w then r as a
// single transaction: with both non-empty it is a write followed by a read
// with a repeated start, with r empty a plain write, with w empty a plain
// read.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

// DefaultAddress is the 7-bit chip address with the A2, A1 and A0 pins all
// tied low.
const DefaultAddress uint16 = 0x70

// Addr returns the 7-bit chip address for the given A2..A0 pin levels
// (0 through 7). Up to eight switches can share one upstream bus.
func Addr(pins uint8) uint16 {
	return DefaultAddress | uint16(pins&0x07)
}

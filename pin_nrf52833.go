//go:build nrf52833

package ws2812

import (
	"machine"
	"runtime/volatile"
	"unsafe"
)

// GPIO.PIN_CNF DRIVE field values (nRF52833 product specification). H0H1
// (value 3) is high drive on both levels — the naming follows Nordic's
// datasheet (S0S1, H0S1, S0H1, H0H1, D0S1, D0H1, S0D1, H0D1, D0D1).
const (
	gpioDriveH0H1 = 3
)

const (
	pinCNFDirPos   = 0
	pinCNFInputPos = 1
	pinCNFPullPos  = 2
	pinCNFDrivePos = 8
	pinCNFSensePos = 16

	pinCNFInputDisconnect = 1
	pinCNFDirOutput       = 1
)

// gpioHW mirrors the nRF52833 P0/P1 GPIO peripheral's PIN_CNF array, the
// one register machine.PinConfig doesn't expose a field for (drive
// strength). Grounded on the same hand-rolled-register-view technique the
// teacher uses in rp2-pio/piolib/dma.go for registers its device package
// doesn't index the way the driver needs.
type gpioHW struct {
	_       [intptrGap]volatile.Register32
	PIN_CNF [32]volatile.Register32
}

const (
	gpioP0Base uintptr = 0x50000000
	gpioP1Base uintptr = 0x50000300
	// PIN_CNF starts at offset 0x700 in both P0 and P1 GPIO blocks.
	pinCNFOffset = 0x700
	intptrGap    = pinCNFOffset / 4
)

// setHighDrive sets pin's DRIVE field to H0H1 (high drive strength on
// both levels) and disconnects the input buffer, matching §4.3's "push-
// pull output with high-drive strength on both levels, idling low".
// Pins 0-31 are on port P0; a higher pin number n is pin n-32 of port P1
// (see gpioPortIndex).
func setHighDrive(pin machine.Pin) {
	port, idx := gpioPortIndex(pin)
	reg := &port.PIN_CNF[idx]
	v := reg.Get()
	v |= pinCNFDirOutput << pinCNFDirPos
	v |= pinCNFInputDisconnect << pinCNFInputPos
	v = (v &^ (0x7 << pinCNFDrivePos)) | (gpioDriveH0H1 << pinCNFDrivePos)
	reg.Set(v)
}

func gpioPortIndex(pin machine.Pin) (*gpioHW, uint32) {
	n := uint32(pin)
	if n < 32 {
		return (*gpioHW)(unsafe.Pointer(gpioP0Base)), n
	}
	return (*gpioHW)(unsafe.Pointer(gpioP1Base)), n - 32
}

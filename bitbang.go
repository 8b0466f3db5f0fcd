//go:build nrf52833

package ws2812

import (
	"device"
	"image/color"
	"machine"
)

// loopCyclesPerIteration is the number of CPU cycles one spinCycles
// iteration costs: a compare, a branch, and one device.Asm("") placeholder
// instruction the optimizer cannot remove. This is the Go analogue of the
// Rust original's `nomem, nostack` asm! loop (original_source/src/lib.rs
// inlines the wait in write_byte via the injected DelayNs instead; the
// two nRF52 pio/drivers crate variants this spec describes hard-code
// 4x32 / 5x32 here — §9 calls that out as an open question). Rather than
// hard-coding either empirical divisor, the constant below is a starting
// point scaled by the measured CPU frequency at construction time.
const loopCyclesPerIteration = 4

// BitBangDevice is the CPU back-end (§4.4): it drives pin directly with a
// calibrated busy-wait, with no PWM peripheral or DMA involved. Ported
// from original_source/src/lib.rs's Ws2812<DELAY, PIN>.
type BitBangDevice struct {
	pin        machine.Pin
	delay      DelaySource
	resetGapNS uint32
	cpuHz      uint64 // machine.CPUFrequency(), cached at construction
}

// NewBitBang configures pin as a WS2812 data line driven by calibrated
// busy-waits and parks it low (§3 "the output pin idles low ... before
// first use"). The calibration divisor is derived from
// machine.CPUFrequency() rather than hard-coded per board (§9 "a clean
// re-implementation should derive this constant from a measurement").
func NewBitBang(pin machine.Pin, delay DelaySource) *BitBangDevice {
	configureOutputPin(pin)
	return &BitBangDevice{
		pin:        pin,
		delay:      delay,
		resetGapNS: ResetGapNS,
		cpuHz:      uint64(machine.CPUFrequency()),
	}
}

// spinCycles busy-waits for n iterations of a counted loop; wait converts
// a duration in nanoseconds to that iteration count. Every iteration executes device.Asm(""), a
// single real instruction the compiler cannot fuse away or hoist out of
// the loop, so the iteration count — not the optimizer — determines the
// elapsed time.
func spinCycles(n uint32) {
	for i := uint32(0); i < n; i++ {
		device.Asm("")
	}
}

func (d *BitBangDevice) wait(ns uint32) {
	cycles := uint64(ns) * d.cpuHz / 1_000_000_000
	iters := uint32(cycles / loopCyclesPerIteration)
	if iters == 0 {
		iters = 1
	}
	spinCycles(iters)
}

// writeBit drives one WS2812 bit per the §4.4 timing table.
func (d *BitBangDevice) writeBit(bit uint32) {
	d.pin.High()
	if bit != 0 {
		d.wait(t1h)
		d.pin.Low()
		d.wait(t1l)
	} else {
		d.wait(t0h)
		d.pin.Low()
		d.wait(t0l)
	}
}

func (d *BitBangDevice) writeWord(w uint32) {
	for i := 0; i < 24; i++ {
		d.writeBit((w >> uint(23-i)) & 1)
	}
}

// Write implements Strip (§4.4, §4.5). Interrupts must be disabled or
// bounded under ±150ns by the caller for the duration of this call — a
// preemption corrupts the in-flight bit and desynchronizes the chain from
// that LED onward (§4.4 "Constraints"); this driver does not mask
// interrupts itself (§5 "the caller is responsible for masking
// interrupts").
func (d *BitBangDevice) Write(colors []color.RGBA) error {
	for _, c := range colors {
		d.writeWord(wireWordFromColor(c))
		d.delay.DelayMicroseconds(d.resetGapNS / 1000)
	}
	return nil
}

var _ Strip = (*BitBangDevice)(nil)
var _ Strip = (*Device)(nil)

// Package ws2812 drives a chain of WS2812/WS2812B addressable RGB LEDs from
// an nRF52833, using the chip's PWM peripheral as a DMA-fed bit-serializer,
// or (via BitBangDevice) a calibrated CPU busy-wait when no PWM peripheral
// is available.
package ws2812

import "periph.io/x/periph/conn/physic"

// WS2812 nominal bit timings, all ±150ns tolerance per the datasheet.
const (
	t0h = 400 // ns, high time for a 0 bit
	t0l = 850 // ns, low time for a 0 bit
	t1h = 800 // ns, high time for a 1 bit
	t1l = 450 // ns, low time for a 1 bit
	bitPeriodNS = t0h + t0l // = t1h + t1l = 1250ns

	// ResetGapNS is the minimum inter-frame idle time WS2812 requires to
	// latch. The datasheet specifies >=50us; 60us gives margin.
	ResetGapNS = 60_000
)

// BitRate is the WS2812 line rate. New rejects any Options.BitRate that
// doesn't match it (§6 wire format: "800kHz bit rate" is not negotiable).
const BitRate physic.Frequency = 800 * physic.KiloHertz

// PWMClock is the nRF52 PWM peripheral clock used by the PWM back-end.
// Ticks run at 16MHz when PRESCALER selects divide-by-1.
const PWMClock physic.Frequency = 16 * physic.MegaHertz

// pwmClockMHz is PWMClock expressed in whole megahertz, derived from the
// typed constant above via physic.Hertz rather than an independent
// literal, so PWMClock stays the single source of truth for the tick
// conversion below (the way nrzled.NewStream derives its buffer sizing
// from opts.Freq instead of a parallel hard-coded constant).
const pwmClockMHz = uint64(PWMClock/physic.Hertz) / 1_000_000

// polarityInvert is the MSB of a PWM COMPARE value. Setting it inverts the
// channel's polarity so the pin idles low and goes high for the duty time,
// rather than the peripheral's power-on default of idling high.
const polarityInvert uint16 = 0x8000

// ticks converts a duration in nanoseconds to PWM clock ticks, truncating.
func ticks(ns uint32) uint16 {
	return uint16(uint64(ns) * pwmClockMHz / 1000)
}

// periodTicks is the PWM COUNTERTOP value: one full bit period.
var periodTicks = ticks(bitPeriodNS)

// BITS holds the two pulse descriptors the encoder looks up by bit value:
// BITS[0] for a zero bit, BITS[1] for a one bit. Each value's low 15 bits
// are the high-time in ticks; the MSB is the polarity-invert flag (§4.1).
var BITS = [2]uint16{
	ticks(t0h) | polarityInvert,
	ticks(t1h) | polarityInvert,
}

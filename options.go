package ws2812

import "periph.io/x/periph/conn/physic"

// BufferPolicy selects how the PWM back-end batches colors into DMA
// transactions (§4.3 "Per-color vs. per-frame buffer").
type BufferPolicy uint8

const (
	// PerColorBuffer issues one DMA transaction per color, with a full
	// reset gap after each (the baseline policy, §4.3 steps 1-5).
	PerColorBuffer BufferPolicy = iota
	// PerFrameBuffer packs up to MaxBufferedPixels colors into a single
	// contiguous DMA transaction with no inter-color gap, followed by one
	// trailing reset gap. Frames longer than MaxBufferedPixels fall back
	// to PerColorBuffer automatically.
	PerFrameBuffer
)

// MaxBufferedPixels bounds the static buffer used by PerFrameBuffer. It is
// sized for a typical strip; larger frames transparently fall back to
// PerColorBuffer rather than allocating an unbounded buffer on a
// microcontroller with limited SRAM.
const MaxBufferedPixels = 64

// Options configures a Device at construction. The zero value is not
// valid; use DefaultOptions and override fields as needed, mirroring the
// teacher's plain-struct-plus-default-constructor configuration pattern
// (as opposed to functional options).
type Options struct {
	// BitRate is the WS2812 line rate this driver targets. New rejects any
	// value other than the package BitRate constant (800kHz) with a
	// PwmFault, the same bounds-check role nrzled.NewStream's opts.Freq
	// check plays before it touches the peripheral.
	BitRate physic.Frequency
	// Buffering selects the DMA batching policy.
	Buffering BufferPolicy
	// ResetGapNS overrides the inter-frame idle time. Zero means
	// ResetGapNS (60us).
	ResetGapNS uint32
}

// DefaultOptions returns the baseline configuration: per-color DMA
// transactions and the datasheet-recommended 60us reset gap.
func DefaultOptions() Options {
	return Options{
		BitRate:    BitRate,
		Buffering:  PerColorBuffer,
		ResetGapNS: ResetGapNS,
	}
}

func (o Options) resetGapNS() uint32 {
	if o.ResetGapNS == 0 {
		return ResetGapNS
	}
	return o.ResetGapNS
}

package ws2812

import "image/color"

// DelaySource is the injected monotonic delay collaborator both back-ends
// use for the inter-frame reset gap (and, on the CPU back-end, nothing
// else — sub-bit timing there uses a calibrated spin instead, §4.1).
type DelaySource interface {
	DelayMicroseconds(us uint32)
}

// Strip is the write contract both back-ends implement (§9 "Two back-ends
// behind one contract"). A conforming implementation blocks until the
// complete sequence has been latched by the LED chain before returning.
type Strip interface {
	// Write transmits colors in order, MSB-first per word, G/R/B per word,
	// terminated by the mandatory reset gap. An empty slice is a no-op
	// that still leaves the pin low (§8 P5).
	Write(colors []color.RGBA) error
}

// WriteColors is a variadic convenience wrapper around Write.
func WriteColors(s Strip, colors ...color.RGBA) error {
	return s.Write(colors)
}

// WriteIter feeds colors from next to s one at a time until next reports
// exhaustion, without requiring the caller to materialize a slice — the
// "iterator of colors" contract of §3/§6. Each color is written through
// the same per-color dispatch a slice-based Write uses, one at a time, so
// an iterator-driven caller pays no more per-color overhead than a
// slice-driven one, only one Write call per color instead of one for the
// whole frame; backends needing per-frame DMA packing should prefer Write.
func WriteIter(s Strip, next func() (color.RGBA, bool)) error {
	for {
		c, ok := next()
		if !ok {
			return nil
		}
		if err := s.Write([]color.RGBA{c}); err != nil {
			return err
		}
	}
}

// wireWordFromColor applies the canonical RGB-triple conversion (§4.5 step
// 1) and the GRB channel reorder (§4.5 step 2) to a standard library color.
func wireWordFromColor(c color.RGBA) uint32 {
	return WireWord(c.R, c.G, c.B)
}

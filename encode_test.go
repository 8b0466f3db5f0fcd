package ws2812

import "testing"

func TestWireWordChannelOrder(t *testing.T) {
	cases := []struct {
		r, g, b uint8
		want    uint32
	}{
		{0, 0, 0, 0x000000},
		{255, 0, 0, 0x00FF00},
		{0, 255, 0, 0xFF0000},
		{0, 0, 255, 0x0000FF},
		{1, 2, 3, 0x020103},
	}
	for _, c := range cases {
		if got := WireWord(c.r, c.g, c.b); got != c.want {
			t.Errorf("WireWord(%d,%d,%d) = %#06x, want %#06x", c.r, c.g, c.b, got, c.want)
		}
	}
}

// TestEncodeWordBijection is property P1: for every word, EncodeWord
// produces 24 descriptors that, decoded by high-time, reproduce the word
// bit-for-bit MSB first.
func TestEncodeWordBijection(t *testing.T) {
	words := []uint32{
		0x000000,
		0xFFFFFF,
		0xAAAAAA,
		0x555555,
		0x020103,
		0x800000,
		0x000001,
	}
	for _, w := range words {
		var buf [24]uint16
		EncodeWord(w, &buf)

		var got uint32
		for i := 0; i < 24; i++ {
			highTime := buf[i] &^ polarityInvert
			var bit uint32
			switch highTime {
			case ticks(t0h):
				bit = 0
			case ticks(t1h):
				bit = 1
			default:
				t.Fatalf("word %#06x bit %d: high time %d ticks matches neither T0H nor T1H", w, i, highTime)
			}
			got = got<<1 | bit
		}
		if got != w {
			t.Errorf("EncodeWord(%#06x) round-trips to %#06x", w, got)
		}
	}
}

func TestEncodeWordLength(t *testing.T) {
	var buf [24]uint16
	EncodeWord(0x123456, &buf)
	if len(buf) != 24 {
		t.Fatalf("buf length = %d, want 24", len(buf))
	}
}

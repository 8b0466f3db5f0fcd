package ws2812

import "testing"

func TestTicks(t *testing.T) {
	cases := []struct {
		ns   uint32
		want uint16
	}{
		{400, 6},
		{800, 12},
		{1250, 20},
	}
	for _, c := range cases {
		if got := ticks(c.ns); got != c.want {
			t.Errorf("ticks(%d) = %d, want %d", c.ns, got, c.want)
		}
	}
}

func TestBitsPolarityFlag(t *testing.T) {
	for i, v := range BITS {
		if v&polarityInvert == 0 {
			t.Errorf("BITS[%d] = %#x, missing polarity-invert bit", i, v)
		}
	}
}

func TestBitsHighTime(t *testing.T) {
	if got := BITS[0] &^ polarityInvert; got != ticks(t0h) {
		t.Errorf("BITS[0] high time = %d ticks, want %d", got, ticks(t0h))
	}
	if got := BITS[1] &^ polarityInvert; got != ticks(t1h) {
		t.Errorf("BITS[1] high time = %d ticks, want %d", got, ticks(t1h))
	}
}

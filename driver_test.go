package ws2812

import (
	"errors"
	"image/color"
	"testing"
)

// fakeStrip records the words it was asked to transmit, standing in for a
// real back-end so driver-level dispatch can be tested without hardware.
type fakeStrip struct {
	words []uint32
	err   error
}

func (f *fakeStrip) Write(colors []color.RGBA) error {
	if f.err != nil {
		return f.err
	}
	for _, c := range colors {
		f.words = append(f.words, wireWordFromColor(c))
	}
	return nil
}

func TestWriteColorsChannelOrder(t *testing.T) {
	f := &fakeStrip{}
	if err := WriteColors(f, color.RGBA{R: 255, G: 0, B: 0, A: 255}, color.RGBA{R: 0, G: 255, B: 0, A: 255}); err != nil {
		t.Fatalf("WriteColors: %v", err)
	}
	want := []uint32{0x00FF00, 0xFF0000}
	if len(f.words) != len(want) {
		t.Fatalf("got %d words, want %d", len(f.words), len(want))
	}
	for i, w := range want {
		if f.words[i] != w {
			t.Errorf("word %d = %#06x, want %#06x", i, f.words[i], w)
		}
	}
}

func TestWriteColorsEmptyIsNoop(t *testing.T) {
	f := &fakeStrip{}
	if err := WriteColors(f); err != nil {
		t.Fatalf("WriteColors(): %v", err)
	}
	if len(f.words) != 0 {
		t.Errorf("expected no words recorded for an empty write, got %d", len(f.words))
	}
}

func TestWriteColorsPropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	f := &fakeStrip{err: wantErr}
	if err := WriteColors(f, color.RGBA{R: 1, G: 2, B: 3, A: 255}); err != wantErr {
		t.Errorf("WriteColors error = %v, want %v", err, wantErr)
	}
}

func TestWriteIter(t *testing.T) {
	f := &fakeStrip{}
	palette := []color.RGBA{
		{R: 1, G: 2, B: 3, A: 255},
		{R: 4, G: 5, B: 6, A: 255},
	}
	i := 0
	next := func() (color.RGBA, bool) {
		if i >= len(palette) {
			return color.RGBA{}, false
		}
		c := palette[i]
		i++
		return c, true
	}
	if err := WriteIter(f, next); err != nil {
		t.Fatalf("WriteIter: %v", err)
	}
	if len(f.words) != len(palette) {
		t.Fatalf("got %d words, want %d", len(f.words), len(palette))
	}
	for idx, c := range palette {
		want := WireWord(c.R, c.G, c.B)
		if f.words[idx] != want {
			t.Errorf("word %d = %#06x, want %#06x", idx, f.words[idx], want)
		}
	}
}

func TestWriteIterEmpty(t *testing.T) {
	f := &fakeStrip{}
	next := func() (color.RGBA, bool) { return color.RGBA{}, false }
	if err := WriteIter(f, next); err != nil {
		t.Fatalf("WriteIter on empty iterator: %v", err)
	}
	if len(f.words) != 0 {
		t.Errorf("expected no words, got %d", len(f.words))
	}
}

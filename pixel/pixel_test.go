package pixel

import (
	"image/color"
	"testing"
)

func TestRGB565Model(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want uint16
	}{
		{"black", color.RGBA{A: 0xff}, 0x0000},
		{"white", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, 0xffff},
		{"red", color.RGBA{R: 0xff, A: 0xff}, 0xf800},
		{"green", color.RGBA{G: 0xff, A: 0xff}, 0x07e0},
		{"blue", color.RGBA{B: 0xff, A: 0xff}, 0x001f},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGB565Model.Convert(tt.in).(RGB565)
			if got.V != tt.want {
				t.Errorf("expected %#04x, got %#04x", tt.want, got.V)
			}
		})
	}
}

func TestRGB565RoundTrip(t *testing.T) {
	c := RGB565{0xf800}
	r, g, b, a := c.RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("expected pure red, got %04x %04x %04x %04x", r, g, b, a)
	}
	if got := RGB565Model.Convert(c).(RGB565); got != c {
		t.Errorf("expected %v to convert to itself, got %v", c, got)
	}
}

func TestXRGB8888Model(t *testing.T) {
	got := XRGB8888Model.Convert(color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}).(XRGB8888)
	if got.V != 0x112233 {
		t.Errorf("expected 0x112233, got %#06x", got.V)
	}

	r, g, b, a := got.RGBA()
	if r != 0x1111 || g != 0x2222 || b != 0x3333 || a != 0xffff {
		t.Errorf("unexpected channels %04x %04x %04x %04x", r, g, b, a)
	}
}

func TestRGB565ImageSet(t *testing.T) {
	img := NewRGB565Image(4, 4)

	img.Set(1, 2, color.RGBA{R: 0xff, A: 0xff})

	// Little-endian on the wire: 0xf800 is stored 0x00, 0xf8.
	off := img.PixOffset(1, 2)
	if img.Pix[off] != 0x00 || img.Pix[off+1] != 0xf8 {
		t.Errorf("expected bytes 00 f8, got %02x %02x", img.Pix[off], img.Pix[off+1])
	}

	if got := img.At(1, 2).(RGB565); got.V != 0xf800 {
		t.Errorf("expected 0xf800, got %#04x", got.V)
	}
}

func TestXRGB8888ImageSet(t *testing.T) {
	img := NewXRGB8888Image(4, 4)

	img.Set(3, 0, color.RGBA{R: 0xff, A: 0xff})

	off := img.PixOffset(3, 0)
	want := [4]byte{0x00, 0x00, 0xff, 0x00} // B G R X
	for i, b := range want {
		if img.Pix[off+i] != b {
			t.Errorf("byte %d: expected %02x, got %02x", i, b, img.Pix[off+i])
		}
	}
}

func TestImageBounds(t *testing.T) {
	img := NewRGB565Image(8, 4)

	if got := img.At(8, 0); got != color.Transparent {
		t.Errorf("expected transparent outside bounds, got %v", got)
	}

	// Out-of-bounds writes are dropped.
	img.Set(-1, 0, color.White)
	img.Set(0, 4, color.White)
	for i, b := range img.Pix {
		if b != 0 {
			t.Fatalf("expected untouched buffer, byte %d is %02x", i, b)
		}
	}
}

func TestFillAndClear(t *testing.T) {
	img := NewXRGB8888Image(3, 3)
	img.Fill(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := img.At(x, y).(XRGB8888); got.V != 0xffffff {
				t.Fatalf("pixel (%d,%d): expected 0xffffff, got %#06x", x, y, got.V)
			}
		}
	}

	img.Clear()
	for i, b := range img.Pix {
		if b != 0 {
			t.Fatalf("expected cleared buffer, byte %d is %02x", i, b)
		}
	}
}

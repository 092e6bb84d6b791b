package pixel

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/pengutronix/platsch/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values. It can be backed by an ordinary byte
// slice or by a mapped scan-out buffer.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels, in the wire byte order (little-endian).
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func makeBuffer(w, h, stride int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, stride*h),
		Stride: stride,
	}
}

// RGB565Image is a 16-bit 5-6-5 RGB image, two bytes per pixel as scanned
// out for the RGB565 wire format.
type RGB565Image struct {
	Buffer
}

func NewRGB565Image(w, h int) *RGB565Image {
	return &RGB565Image{
		Buffer: makeBuffer(w, h, w*2),
	}
}

func (p *RGB565Image) ColorModel() color.Model {
	return RGB565Model
}

func (p *RGB565Image) PixOffset(x, y int) int {
	return y*p.Stride + x*2
}

func (p *RGB565Image) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(p.Rect) {
		return color.Transparent
	}
	return RGB565{binary.LittleEndian.Uint16(p.Pix[p.PixOffset(x, y):])}
}

func (p *RGB565Image) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}).In(p.Rect) {
		return
	}
	v := rgb565Model(c).(RGB565).V
	binary.LittleEndian.PutUint16(p.Pix[p.PixOffset(x, y):], v)
}

func (p *RGB565Image) Fill(c color.Color) {
	v := rgb565Model(c).(RGB565).V
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		row := y * p.Stride
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			binary.LittleEndian.PutUint16(p.Pix[row+x*2:], v)
		}
	}
}

// XRGB8888Image is a 32-bit RGB image, four bytes per pixel as scanned
// out for the XRGB8888 wire format.
type XRGB8888Image struct {
	Buffer
}

func NewXRGB8888Image(w, h int) *XRGB8888Image {
	return &XRGB8888Image{
		Buffer: makeBuffer(w, h, w*4),
	}
}

func (p *XRGB8888Image) ColorModel() color.Model {
	return XRGB8888Model
}

func (p *XRGB8888Image) PixOffset(x, y int) int {
	return y*p.Stride + x*4
}

func (p *XRGB8888Image) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(p.Rect) {
		return color.Transparent
	}
	return XRGB8888{binary.LittleEndian.Uint32(p.Pix[p.PixOffset(x, y):])}
}

func (p *XRGB8888Image) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}).In(p.Rect) {
		return
	}
	v := xrgb8888Model(c).(XRGB8888).V
	binary.LittleEndian.PutUint32(p.Pix[p.PixOffset(x, y):], v)
}

func (p *XRGB8888Image) Fill(c color.Color) {
	v := xrgb8888Model(c).(XRGB8888).V
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		row := y * p.Stride
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			binary.LittleEndian.PutUint32(p.Pix[row+x*4:], v)
		}
	}
}

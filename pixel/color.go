package pixel

import "image/color"

// Models for the supported wire formats.
var (
	RGB565Model   color.Model = color.ModelFunc(rgb565Model)
	XRGB8888Model color.Model = color.ModelFunc(xrgb8888Model)
)

// RGB565 represents a 16-bit 5-6-5 RGB color.
type RGB565 struct {
	// Red, 5, Green, 6, Blue, 5
	V uint16
}

func (c RGB565) RGBA() (r, g, b, a uint32) {
	// Build a 5- or 6-bit value at the top of the low byte of each component.
	red := (c.V & 0xF800) >> 8
	grn := (c.V & 0x07E0) >> 3
	blu := (c.V & 0x001F) << 3
	// Duplicate the high bits in the low bits.
	red |= red >> 5
	grn |= grn >> 6
	blu |= blu >> 5
	// Duplicate the whole value in the high byte.
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return uint32(red), uint32(grn), uint32(blu), 0xffff
}

func rgb565Model(c color.Color) color.Color {
	if c, ok := c.(RGB565); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	r = r & 0xF800
	g = (g & 0xFC00) >> 5
	b = (b & 0xF800) >> 11
	return RGB565{uint16(r | g | b)}
}

// XRGB8888 represents a 32-bit RGB color with the high byte unused.
type XRGB8888 struct {
	// X, 8, Red, 8, Green, 8, Blue, 8
	V uint32
}

func (c XRGB8888) RGBA() (r, g, b, a uint32) {
	red := (c.V >> 16) & 0xff
	grn := (c.V >> 8) & 0xff
	blu := c.V & 0xff
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return red, grn, blu, 0xffff
}

func xrgb8888Model(c color.Color) color.Color {
	if c, ok := c.(XRGB8888); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return XRGB8888{(r>>8)<<16 | (g>>8)<<8 | b>>8}
}

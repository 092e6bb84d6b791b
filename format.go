package platsch

import "github.com/pengutronix/platsch/drm"

// Format describes a supported pixel wire format.
type Format struct {
	// Name as used in splash file names and mode overrides, e.g. "RGB565".
	Name string

	// Code is the DRM fourcc code.
	Code uint32

	// BPP is the number of bits per pixel.
	BPP uint32
}

// The first entry is the default format.
var formats = []Format{
	{Name: "RGB565", Code: drm.FormatRGB565, BPP: 16},
	{Name: "XRGB8888", Code: drm.FormatXRGB8888, BPP: 32},
}

// DefaultFormat returns the format used when no override names one.
func DefaultFormat() Format {
	return formats[0]
}

// FormatByName looks up a format by its case-sensitive name.
func FormatByName(name string) (Format, bool) {
	for _, f := range formats {
		if f.Name == name {
			return f, true
		}
	}
	return Format{}, false
}

// Formats returns the supported formats, default first.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

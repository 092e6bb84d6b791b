package drm

// Pixel format codes from drm_fourcc.h, little-endian.
const (
	FormatRGB565   = 0x36314752 // 'RG16': 16-bit 5-6-5 RGB
	FormatXRGB8888 = 0x34325258 // 'XR24': 32-bit RGB, high byte unused
)

// fourcc packs a format code the way drm_fourcc.h does.
func fourcc(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// connectorTypeNames is indexed by the DRM_MODE_CONNECTOR_* type code.
var connectorTypeNames = []string{
	"Unknown",
	"VGA",
	"DVI-I",
	"DVI-D",
	"DVI-A",
	"Composite",
	"SVIDEO",
	"LVDS",
	"Component",
	"DIN",
	"DP",
	"HDMI-A",
	"HDMI-B",
	"TV",
	"eDP",
	"Virtual",
	"DSI",
	"DPI",
	"Writeback",
	"SPI",
	"USB",
}

// ConnectorTypeName returns the well-known name for a connector type
// code, or the empty string for codes this package does not know.
func ConnectorTypeName(t uint32) string {
	if int(t) < len(connectorTypeNames) {
		return connectorTypeNames[t]
	}
	return ""
}

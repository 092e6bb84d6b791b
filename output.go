package platsch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pengutronix/platsch/drm"
)

// ErrConnectorUnusable marks a connector that cannot display anything,
// because nothing is attached or because it reports no modes.
var ErrConnectorUnusable = errors.New("platsch: connector unusable")

const envPrefix = "platsch"

// Output is one display head prepared for scan-out.
type Output struct {
	ConnID uint32
	CrtcID uint32
	Mode   drm.ModeInfo

	Width  uint32
	Height uint32
	Format Format

	Stride uint32
	Size   uint32
	FB     uint32
	Pix    []byte

	handle  uint32
	setmode bool
}

// modeEnvKey derives the environment variable carrying the mode
// override for a connector, e.g. HDMI-A connector 1 is configured
// through platsch_hdmi_a1_mode. Returns false for connector types
// without a name.
func modeEnvKey(connType, typeID uint32) (string, bool) {
	name := drm.ConnectorTypeName(connType)
	if name == "" {
		return "", false
	}
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "-", "_")
	return fmt.Sprintf("%s_%s%d_mode", envPrefix, name, typeID), true
}

// parseModeSpec splits a "<width>x<height>[@<format>]" override into
// its parts. The format part may be empty.
func parseModeSpec(spec string) (width, height uint32, format string, err error) {
	dims := spec
	if at := strings.IndexByte(spec, '@'); at >= 0 {
		dims, format = spec[:at], spec[at+1:]
	}

	ws, hs, ok := strings.Cut(dims, "x")
	if !ok {
		return 0, 0, "", fmt.Errorf("platsch: invalid mode %q", spec)
	}
	w, err := strconv.ParseUint(ws, 10, 32)
	if err != nil {
		return 0, 0, "", fmt.Errorf("platsch: invalid mode %q", spec)
	}
	h, err := strconv.ParseUint(hs, 10, 32)
	if err != nil {
		return 0, 0, "", fmt.Errorf("platsch: invalid mode %q", spec)
	}
	return uint32(w), uint32(h), format, nil
}

// resolveOutput checks that the connector can display anything and
// picks its mode and format. Configuration problems never disable a
// connector; they fall back to the connector's preferred mode and the
// default format.
func (c *Context) resolveOutput(conn *drm.Connector) (*Output, error) {
	if conn.Connection != drm.Connected {
		debugf("ignoring unused connector #%d", conn.ID)
		return nil, fmt.Errorf("%w: connector #%d not connected", ErrConnectorUnusable, conn.ID)
	}
	if len(conn.Modes) == 0 {
		errorf("no valid mode for connector #%d", conn.ID)
		return nil, fmt.Errorf("%w: connector #%d has no modes", ErrConnectorUnusable, conn.ID)
	}

	out := &Output{ConnID: conn.ID}
	c.configureMode(conn, out)
	return out, nil
}

// configureMode selects the output's mode and format, honoring a
// per-connector environment override when one is set and valid.
func (c *Context) configureMode(conn *drm.Connector, out *Output) {
	out.Format = DefaultFormat()

	key, ok := modeEnvKey(conn.Type, conn.TypeID)
	if !ok {
		c.fallbackMode(conn, out)
		return
	}

	spec := c.getenv(key)
	if spec == "" {
		c.fallbackMode(conn, out)
		return
	}
	debugf("%s=%s", key, spec)

	w, h, fmtName, err := parseModeSpec(spec)
	if err != nil {
		errorf("ignoring %s: %v", key, err)
		c.fallbackMode(conn, out)
		return
	}

	var mode *drm.ModeInfo
	for i := range conn.Modes {
		m := &conn.Modes[i]
		if uint32(m.Hdisplay) == w && uint32(m.Vdisplay) == h {
			mode = m
			break
		}
	}
	if mode == nil {
		errorf("no %dx%d mode on connector #%d, using %s",
			w, h, conn.ID, conn.Modes[0].String())
		c.fallbackMode(conn, out)
		return
	}

	out.Mode = *mode
	out.Width = w
	out.Height = h

	if fmtName == "" {
		return
	}
	f, ok := FormatByName(fmtName)
	if !ok {
		errorf("unknown format %q on connector #%d, using %s",
			fmtName, conn.ID, out.Format.Name)
		return
	}
	out.Format = f
}

// fallbackMode selects the connector's preferred mode, which the kernel
// sorts first.
func (c *Context) fallbackMode(conn *drm.Connector, out *Output) {
	out.Mode = conn.Modes[0]
	out.Width = uint32(out.Mode.Hdisplay)
	out.Height = uint32(out.Mode.Vdisplay)
}

// Package platsch paints a splash image on every connected display of a
// DRM controller and keeps it on screen across the hand-over to the real
// init process.
//
// The usual sequence is [NewContext] (probe the device and prepare all
// usable connectors), [Context.Draw] (fill and present every output) and
// then either [Context.Close] or, on the boot-critical path,
// [Context.Handoff].
package platsch

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pengutronix/platsch/drm"
	"github.com/pengutronix/platsch/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("PLATSCH_DEBUG") != ""
}

func debugf(format string, args ...any) {
	if debug {
		log.Printf(format, args...)
	}
}

func errorf(format string, args ...any) {
	log.Printf(format, args...)
}

// Defaults used when no directory or basename is configured.
const (
	DefaultDir  = "/usr/share/platsch"
	DefaultBase = "splash"
)

// Device is the slice of the display controller interface the splash
// pipeline drives. It is implemented by [drm.Card].
type Device interface {
	Resources() (*drm.Resources, error)
	Connector(id uint32) (*drm.Connector, error)
	Encoder(id uint32) (*drm.Encoder, error)

	CreateDumb(width, height, bpp uint32) (*drm.DumbBuffer, error)
	DestroyDumb(handle uint32) error
	AddFB(width, height, format, handle, pitch uint32) (uint32, error)
	RemoveFB(id uint32) error
	MapDumb(handle uint32) (uint64, error)
	Mmap(offset uint64, size uint32) ([]byte, error)
	Munmap(b []byte) error

	SetCrtc(crtcID, fbID, connID uint32, mode *drm.ModeInfo) error
	PageFlip(crtcID, fbID uint32) error

	IsMaster() bool
	DropMaster() error
	File() *os.File
	Close() error
}

// DrawBuf describes one output's mapped scan-out buffer for a custom
// draw callback.
type DrawBuf struct {
	Width  uint32
	Height uint32
	Stride uint32 // row stride in bytes
	Size   uint32 // total buffer size in bytes
	Format uint32 // DRM fourcc code
	FB     uint32 // framebuffer object id
	Pix    []byte // the mapped pixels
}

// Image wraps the buffer in a [pixel.Image] matching its wire format.
func (b *DrawBuf) Image() (pixel.Image, error) {
	buf := pixel.Buffer{
		Rect:   image.Rect(0, 0, int(b.Width), int(b.Height)),
		Pix:    b.Pix,
		Stride: int(b.Stride),
	}
	switch b.Format {
	case drm.FormatRGB565:
		return &pixel.RGB565Image{Buffer: buf}, nil
	case drm.FormatXRGB8888:
		return &pixel.XRGB8888Image{Buffer: buf}, nil
	}
	return nil, fmt.Errorf("platsch: no image implementation for format %#08x", b.Format)
}

// DrawFunc fills one output's buffer instead of the built-in file
// loader. It must not write outside Pix; a returned error is reported
// and the output is committed with whatever the buffer holds.
type DrawFunc func(*DrawBuf) error

// Context owns one open display controller and the outputs prepared on
// it. Exactly one Context is active per process.
type Context struct {
	dev      Device
	dir      string
	base     string
	getenv   func(string) string
	outputs  []*Output
	drawFunc DrawFunc
}

// NewContext probes for a display controller and prepares every usable
// connector on it.
func NewContext(dir, base string) (*Context, error) {
	c, err := AllocContext(dir, base)
	if err != nil {
		return nil, err
	}
	if err := c.Init(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// AllocContext probes for a display controller but does not prepare any
// connector yet, so a draw callback can be registered before the first
// draw. Call [Context.Init] to prepare the outputs.
func AllocContext(dir, base string) (*Context, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if base == "" {
		base = DefaultBase
	}
	dev, err := probeCard()
	if err != nil {
		return nil, err
	}
	return &Context{
		dev:    dev,
		dir:    dir,
		base:   base,
		getenv: os.Getenv,
	}, nil
}

// Init enumerates the device's connectors and prepares an Output for
// every usable one. A connector that cannot be driven is reported and
// skipped; Init fails only if the resource enumeration itself fails.
func (c *Context) Init() error {
	res, err := c.dev.Resources()
	if err != nil {
		return fmt.Errorf("platsch: cannot retrieve display resources: %w", err)
	}
	debugf("found %d connectors", len(res.Connectors))

	for _, id := range res.Connectors {
		conn, err := c.dev.Connector(id)
		if err != nil {
			errorf("cannot retrieve connector #%d: %v", id, err)
			continue
		}

		out, err := c.resolveOutput(conn)
		if err != nil {
			continue
		}
		if err := c.pickCRTC(res, conn, out); err != nil {
			errorf("no valid crtc for connector #%d: %v", conn.ID, err)
			continue
		}
		if err := c.createFramebuffer(out); err != nil {
			errorf("cannot create framebuffer for connector #%d: %v", conn.ID, err)
			continue
		}

		c.outputs = append(c.outputs, out)
	}

	return nil
}

// SetDrawFunc registers fn as the draw strategy for all outputs,
// replacing the built-in file loader.
func (c *Context) SetDrawFunc(fn DrawFunc) {
	if c == nil {
		return
	}
	c.drawFunc = fn
}

// Outputs returns the prepared outputs in connector enumeration order.
func (c *Context) Outputs() []*Output {
	return c.outputs
}

// Draw fills every prepared output and commits it to the screen. The
// first commit on an output is a full mode set; later commits flip the
// buffer without touching timing. Per-output failures are reported and
// do not stop the remaining outputs.
func (c *Context) Draw() {
	for _, out := range c.outputs {
		// draw first, then set the mode
		c.drawOutput(out)
		c.commitOutput(out)
	}
}

func (c *Context) drawOutput(out *Output) {
	if c.drawFunc == nil {
		c.loadSplash(out)
		return
	}
	buf := &DrawBuf{
		Width:  out.Width,
		Height: out.Height,
		Stride: out.Stride,
		Size:   out.Size,
		Format: out.Format.Code,
		FB:     out.FB,
		Pix:    out.Pix,
	}
	if err := c.drawFunc(buf); err != nil {
		errorf("draw callback failed on connector #%d: %v", out.ConnID, err)
	}
}

// splashFilename locates the raw splash image for an output:
// <dir>/<base>-<width>x<height>-<format>.bin.
func splashFilename(dir, base string, out *Output) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%dx%d-%s.bin",
		base, out.Width, out.Height, out.Format.Name))
}

// loadSplash reads the raw splash file for out into its mapped buffer.
// The file holds raw pixels in the right format already, so no decoding
// happens here. A missing or short file is reported but leaves the
// remaining buffer black instead of failing the output.
func (c *Context) loadSplash(out *Output) {
	name := splashFilename(c.dir, c.base, out)

	f, err := os.Open(name)
	if err != nil {
		errorf("failed to open %s: %v", name, err)
		return
	}
	defer f.Close()

	n, err := io.ReadFull(f, out.Pix)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		errorf("could only read %d/%d bytes from %s", n, out.Size, name)
	default:
		errorf("failed to read from %s: %v", name, err)
	}
}

func (c *Context) commitOutput(out *Output) {
	if out.setmode {
		debugf("set crtc on connector #%d", out.ConnID)
		if err := c.dev.SetCrtc(out.CrtcID, out.FB, out.ConnID, &out.Mode); err != nil {
			errorf("cannot set CRTC for connector #%d: %v", out.ConnID, err)
		} else {
			out.setmode = false
		}
	} else {
		debugf("page flip on connector #%d", out.ConnID)
		if err := c.dev.PageFlip(out.CrtcID, out.FB); err != nil {
			errorf("page flip failed on connector #%d: %v", out.ConnID, err)
		}
	}
}

// DropMaster releases exclusive control over the display device so a
// later display server can acquire it without contention. The committed
// configuration stays on screen.
func (c *Context) DropMaster() error {
	return c.dev.DropMaster()
}

// Close releases display ownership and every output's buffer mapping,
// then closes the device handle. The kernel-side framebuffers are left
// alive on purpose: destroying them would blank the screen.
func (c *Context) Close() error {
	if c == nil || c.dev == nil {
		return nil
	}
	if c.dev.IsMaster() {
		if err := c.dev.DropMaster(); err != nil {
			errorf("failed to drop master on display device: %v", err)
		}
	}
	for _, out := range c.outputs {
		if out.Pix == nil {
			continue
		}
		if err := c.dev.Munmap(out.Pix); err != nil {
			errorf("failed to unmap buffer of connector #%d: %v", out.ConnID, err)
		}
		out.Pix = nil
	}
	return c.dev.Close()
}

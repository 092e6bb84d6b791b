package platsch

import (
	"errors"
	"fmt"

	"github.com/pengutronix/platsch/drm"
)

// ErrNoCrtc is returned when every CRTC a connector could use is
// already claimed by another output.
var ErrNoCrtc = errors.New("platsch: no free crtc")

func (c *Context) crtcClaimed(id uint32) bool {
	for _, out := range c.outputs {
		if out.CrtcID == id {
			return true
		}
	}
	return false
}

// pickCRTC assigns a CRTC to the output. A connector that is already
// routed keeps its active CRTC when possible and needs no mode set; a
// dormant connector gets the first compatible free CRTC and a full mode
// set on first commit.
func (c *Context) pickCRTC(res *drm.Resources, conn *drm.Connector, out *Output) error {
	var enc *drm.Encoder

	if conn.EncoderID != 0 {
		var err error
		enc, err = c.dev.Encoder(conn.EncoderID)
		if err != nil {
			errorf("cannot retrieve encoder #%d: %v", conn.EncoderID, err)
			enc = nil
		}
	} else {
		// The connector is dormant, so the first commit must program
		// the full mode.
		out.setmode = true
	}

	if enc != nil && enc.CrtcID != 0 && !c.crtcClaimed(enc.CrtcID) {
		out.CrtcID = enc.CrtcID
		return nil
	}

	for _, encID := range conn.Encoders {
		enc, err := c.dev.Encoder(encID)
		if err != nil {
			errorf("cannot retrieve encoder #%d: %v", encID, err)
			continue
		}
		for j, crtcID := range res.Crtcs {
			if enc.PossibleCrtcs&(1<<uint(j)) == 0 {
				continue
			}
			if c.crtcClaimed(crtcID) {
				continue
			}
			out.CrtcID = crtcID
			return nil
		}
	}

	return fmt.Errorf("%w for connector #%d", ErrNoCrtc, conn.ID)
}

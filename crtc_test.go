package platsch

import (
	"errors"
	"testing"

	"github.com/pengutronix/platsch/drm"
)

func TestPickCrtcKeepsActive(t *testing.T) {
	dev := twoHeadDevice()
	c := &Context{dev: dev}
	res, _ := dev.Resources()

	out := &Output{ConnID: 1}
	if err := c.pickCRTC(res, dev.connectors[1], out); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.CrtcID != 100 {
		t.Errorf("expected the active crtc 100, got %d", out.CrtcID)
	}
	if out.setmode {
		t.Error("expected no mode set for a routed connector")
	}
}

func TestPickCrtcAvoidsClaimed(t *testing.T) {
	dev := twoHeadDevice()
	c := &Context{dev: dev}
	res, _ := dev.Resources()

	c.outputs = []*Output{{ConnID: 1, CrtcID: 100}}

	out := &Output{ConnID: 2}
	if err := c.pickCRTC(res, dev.connectors[2], out); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.CrtcID != 101 {
		t.Errorf("expected the free crtc 101, got %d", out.CrtcID)
	}
}

func TestPickCrtcHonorsPossibleMask(t *testing.T) {
	dev := twoHeadDevice()
	dev.connectors[2].EncoderID = 0
	dev.encoders[11].CrtcID = 0
	dev.encoders[11].PossibleCrtcs = 0b10 // second crtc only
	c := &Context{dev: dev}
	res, _ := dev.Resources()

	out := &Output{ConnID: 2}
	if err := c.pickCRTC(res, dev.connectors[2], out); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.CrtcID != 101 {
		t.Errorf("expected crtc 101 per the possible mask, got %d", out.CrtcID)
	}
	if !out.setmode {
		t.Error("expected a mode set for a dormant connector")
	}
}

func TestPickCrtcExhausted(t *testing.T) {
	dev := twoHeadDevice()
	c := &Context{dev: dev}
	res, _ := dev.Resources()

	c.outputs = []*Output{
		{ConnID: 8, CrtcID: 100},
		{ConnID: 9, CrtcID: 101},
	}

	out := &Output{ConnID: 1}
	err := c.pickCRTC(res, dev.connectors[1], out)
	if !errors.Is(err, ErrNoCrtc) {
		t.Fatalf("expected ErrNoCrtc, got %v", err)
	}
}

func TestPickCrtcMissingEncoder(t *testing.T) {
	dev := twoHeadDevice()
	dev.connectors[1].EncoderID = 42 // stale reference
	c := &Context{dev: dev}
	res, _ := dev.Resources()

	out := &Output{ConnID: 1}
	if err := c.pickCRTC(res, dev.connectors[1], out); err != nil {
		t.Fatalf("expected fallback to the encoder list, got %v", err)
	}
	if out.CrtcID != 100 {
		t.Errorf("expected crtc 100, got %d", out.CrtcID)
	}
}

var _ Device = (*drm.Card)(nil)

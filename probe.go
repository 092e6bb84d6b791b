package platsch

import (
	"errors"
	"fmt"

	"github.com/pengutronix/platsch/drm"
)

// ErrNoDevice is returned when no usable display controller exists.
var ErrNoDevice = errors.New("platsch: no display controller found")

const maxProbe = 64

// probeCard opens the first DRM device that supports mode setting.
// Devices that cannot be opened or enumerated are skipped, so render
// nodes and permission gaps do not end the probe early.
func probeCard() (Device, error) {
	for i := 0; i < maxProbe; i++ {
		name := fmt.Sprintf("/dev/dri/card%d", i)

		card, err := drm.Open(name)
		if err != nil {
			debugf("cannot open %s: %v", name, err)
			continue
		}
		if _, err := card.Resources(); err != nil {
			debugf("%s has no display resources: %v", name, err)
			_ = card.Close()
			continue
		}

		debugf("using %s", name)
		return card, nil
	}
	return nil, ErrNoDevice
}

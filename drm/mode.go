package drm

import (
	"fmt"
	"unsafe"

	"github.com/pengutronix/platsch/internal/ioctl"
)

// Connection states reported by a connector.
const (
	Connected         = 1
	Disconnected      = 2
	UnknownConnection = 3
)

// ModeInfo mirrors struct drm_mode_modeinfo: one timing/resolution
// descriptor advertised by a connector.
type ModeInfo struct {
	Clock                                         uint32
	Hdisplay, HsyncStart, HsyncEnd, Htotal, Hskew uint16
	Vdisplay, VsyncStart, VsyncEnd, Vtotal, Vscan uint16

	Vrefresh uint32

	Flags uint32
	Type  uint32
	Name  [32]byte
}

func (m *ModeInfo) String() string {
	return fmt.Sprintf("%dx%d", m.Hdisplay, m.Vdisplay)
}

type (
	sysResources struct {
		fbIDPtr              uint64
		crtcIDPtr            uint64
		connectorIDPtr       uint64
		encoderIDPtr         uint64
		countFbs             uint32
		countCrtcs           uint32
		countConnectors      uint32
		countEncoders        uint32
		minWidth, maxWidth   uint32
		minHeight, maxHeight uint32
	}

	sysGetConnector struct {
		encodersPtr   uint64
		modesPtr      uint64
		propsPtr      uint64
		propValuesPtr uint64

		countModes    uint32
		countProps    uint32
		countEncoders uint32

		encoderID       uint32 // currently bound encoder
		id              uint32
		connectorType   uint32
		connectorTypeID uint32

		connection        uint32
		mmWidth, mmHeight uint32
		subpixel          uint32
		pad               uint32
	}

	sysGetEncoder struct {
		id     uint32
		typ    uint32
		crtcID uint32

		possibleCrtcs  uint32
		possibleClones uint32
	}

	sysCrtc struct {
		setConnectorsPtr uint64
		countConnectors  uint32

		id   uint32
		fbID uint32

		x, y uint32 // position on the framebuffer

		gammaSize uint32
		modeValid uint32
		mode      ModeInfo
	}

	sysPageFlip struct {
		crtcID   uint32
		fbID     uint32
		flags    uint32
		reserved uint32
		userData uint64
	}
)

var (
	cmdModeResources = ioctl.Encode(ioctl.Read|ioctl.Write,
		uint16(unsafe.Sizeof(sysResources{})), Base, 0xa0)

	cmdModeSetCrtc = ioctl.Encode(ioctl.Read|ioctl.Write,
		uint16(unsafe.Sizeof(sysCrtc{})), Base, 0xa2)

	cmdModeGetEncoder = ioctl.Encode(ioctl.Read|ioctl.Write,
		uint16(unsafe.Sizeof(sysGetEncoder{})), Base, 0xa6)

	cmdModeGetConnector = ioctl.Encode(ioctl.Read|ioctl.Write,
		uint16(unsafe.Sizeof(sysGetConnector{})), Base, 0xa7)

	cmdModePageFlip = ioctl.Encode(ioctl.Read|ioctl.Write,
		uint16(unsafe.Sizeof(sysPageFlip{})), Base, 0xb0)
)

// Resources is the device's mode-setting object inventory.
type Resources struct {
	Fbs        []uint32
	Crtcs      []uint32
	Connectors []uint32
	Encoders   []uint32

	MinWidth, MaxWidth   uint32
	MinHeight, MaxHeight uint32
}

// Connector describes one physical output port.
type Connector struct {
	ID         uint32
	EncoderID  uint32 // currently bound encoder, 0 if none
	Type       uint32
	TypeID     uint32 // instance index within Type
	Connection uint32

	Modes    []ModeInfo
	Encoders []uint32
}

// Encoder is the signal conversion stage between a CRTC and a connector.
type Encoder struct {
	ID     uint32
	Type   uint32
	CrtcID uint32 // currently bound CRTC, 0 if none

	// PossibleCrtcs is a bitmask over the index of the device's CRTC
	// list, not over CRTC ids.
	PossibleCrtcs  uint32
	PossibleClones uint32
}

// Resources enumerates the device's connectors, encoders, CRTCs and
// framebuffers. The ioctl is issued twice: once to learn the object
// counts, once more to fill the id arrays.
func (c *Card) Resources() (*Resources, error) {
	var res sysResources
	if err := c.ioctl(cmdModeResources, unsafe.Pointer(&res)); err != nil {
		return nil, err
	}

	var fbs, crtcs, connectors, encoders []uint32
	if res.countFbs > 0 {
		fbs = make([]uint32, res.countFbs)
		res.fbIDPtr = uint64(uintptr(unsafe.Pointer(&fbs[0])))
	}
	if res.countCrtcs > 0 {
		crtcs = make([]uint32, res.countCrtcs)
		res.crtcIDPtr = uint64(uintptr(unsafe.Pointer(&crtcs[0])))
	}
	if res.countConnectors > 0 {
		connectors = make([]uint32, res.countConnectors)
		res.connectorIDPtr = uint64(uintptr(unsafe.Pointer(&connectors[0])))
	}
	if res.countEncoders > 0 {
		encoders = make([]uint32, res.countEncoders)
		res.encoderIDPtr = uint64(uintptr(unsafe.Pointer(&encoders[0])))
	}

	if err := c.ioctl(cmdModeResources, unsafe.Pointer(&res)); err != nil {
		return nil, err
	}

	// The counts may shrink if objects disappeared between the calls.
	return &Resources{
		Fbs:        clampIDs(fbs, res.countFbs),
		Crtcs:      clampIDs(crtcs, res.countCrtcs),
		Connectors: clampIDs(connectors, res.countConnectors),
		Encoders:   clampIDs(encoders, res.countEncoders),
		MinWidth:   res.minWidth,
		MaxWidth:   res.maxWidth,
		MinHeight:  res.minHeight,
		MaxHeight:  res.maxHeight,
	}, nil
}

// Connector fetches the current state of one connector, including its
// probed mode list.
func (c *Card) Connector(id uint32) (*Connector, error) {
	conn := sysGetConnector{id: id}
	if err := c.ioctl(cmdModeGetConnector, unsafe.Pointer(&conn)); err != nil {
		return nil, err
	}

	// The kernel re-probes the mode list only when offered room for at
	// least one entry.
	countModes := conn.countModes
	if countModes == 0 {
		countModes = 1
	}
	modes := make([]ModeInfo, countModes)
	conn.modesPtr = uint64(uintptr(unsafe.Pointer(&modes[0])))

	var encoders []uint32
	if conn.countEncoders > 0 {
		encoders = make([]uint32, conn.countEncoders)
		conn.encodersPtr = uint64(uintptr(unsafe.Pointer(&encoders[0])))
	}
	conn.countProps = 0
	conn.propsPtr = 0
	conn.propValuesPtr = 0

	if err := c.ioctl(cmdModeGetConnector, unsafe.Pointer(&conn)); err != nil {
		return nil, err
	}

	n := int(conn.countModes)
	if n > len(modes) {
		n = len(modes)
	}
	return &Connector{
		ID:         conn.id,
		EncoderID:  conn.encoderID,
		Type:       conn.connectorType,
		TypeID:     conn.connectorTypeID,
		Connection: conn.connection,
		Modes:      modes[:n],
		Encoders:   clampIDs(encoders, conn.countEncoders),
	}, nil
}

// Encoder fetches the current state of one encoder.
func (c *Card) Encoder(id uint32) (*Encoder, error) {
	enc := sysGetEncoder{id: id}
	if err := c.ioctl(cmdModeGetEncoder, unsafe.Pointer(&enc)); err != nil {
		return nil, err
	}
	return &Encoder{
		ID:             enc.id,
		Type:           enc.typ,
		CrtcID:         enc.crtcID,
		PossibleCrtcs:  enc.possibleCrtcs,
		PossibleClones: enc.possibleClones,
	}, nil
}

// SetCrtc performs a full mode set: it binds fbID as the scan-out source
// of crtcID, routes it to connID and programs mode, at offset (0,0).
func (c *Card) SetCrtc(crtcID, fbID, connID uint32, mode *ModeInfo) error {
	req := sysCrtc{
		setConnectorsPtr: uint64(uintptr(unsafe.Pointer(&connID))),
		countConnectors:  1,
		id:               crtcID,
		fbID:             fbID,
	}
	if mode != nil {
		req.mode = *mode
		req.modeValid = 1
	}
	return c.ioctl(cmdModeSetCrtc, unsafe.Pointer(&req))
}

// PageFlip swaps the scan-out buffer of crtcID to fbID without touching
// the active timing.
func (c *Card) PageFlip(crtcID, fbID uint32) error {
	req := sysPageFlip{
		crtcID: crtcID,
		fbID:   fbID,
	}
	return c.ioctl(cmdModePageFlip, unsafe.Pointer(&req))
}

func clampIDs(ids []uint32, count uint32) []uint32 {
	if int(count) < len(ids) {
		return ids[:count]
	}
	return ids
}

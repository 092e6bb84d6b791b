package drm

import (
	"unsafe"

	"github.com/pengutronix/platsch/internal/ioctl"
)

type (
	sysCreateDumb struct {
		height, width uint32
		bpp           uint32
		flags         uint32

		// returned values
		handle uint32
		pitch  uint32
		size   uint64
	}

	sysMapDumb struct {
		handle uint32
		pad    uint32

		// fake offset for the subsequent mmap call
		offset uint64
	}

	sysDestroyDumb struct {
		handle uint32
	}

	sysFBCmd2 struct {
		fbID          uint32
		width, height uint32
		pixelFormat   uint32
		flags         uint32
		handles       [4]uint32
		pitches       [4]uint32
		offsets       [4]uint32
		modifier      [4]uint64
	}

	sysRmFB struct {
		handle uint32
	}
)

var (
	cmdModeRmFB = ioctl.Encode(ioctl.Read|ioctl.Write,
		uint16(unsafe.Sizeof(sysRmFB{})), Base, 0xaf)

	cmdModeCreateDumb = ioctl.Encode(ioctl.Read|ioctl.Write,
		uint16(unsafe.Sizeof(sysCreateDumb{})), Base, 0xb2)

	cmdModeMapDumb = ioctl.Encode(ioctl.Read|ioctl.Write,
		uint16(unsafe.Sizeof(sysMapDumb{})), Base, 0xb3)

	cmdModeDestroyDumb = ioctl.Encode(ioctl.Read|ioctl.Write,
		uint16(unsafe.Sizeof(sysDestroyDumb{})), Base, 0xb4)

	cmdModeAddFB2 = ioctl.Encode(ioctl.Read|ioctl.Write,
		uint16(unsafe.Sizeof(sysFBCmd2{})), Base, 0xb8)
)

// DumbBuffer is kernel-allocated, CPU-mappable pixel storage without
// acceleration semantics.
type DumbBuffer struct {
	Handle uint32
	Pitch  uint32 // row stride in bytes, chosen by the kernel
	Size   uint64 // total allocation in bytes
}

// CreateDumb allocates pixel storage for a width x height buffer at bpp
// bits per pixel.
func (c *Card) CreateDumb(width, height, bpp uint32) (*DumbBuffer, error) {
	req := sysCreateDumb{
		height: height,
		width:  width,
		bpp:    bpp,
	}
	if err := c.ioctl(cmdModeCreateDumb, unsafe.Pointer(&req)); err != nil {
		return nil, err
	}
	return &DumbBuffer{
		Handle: req.handle,
		Pitch:  req.pitch,
		Size:   req.size,
	}, nil
}

// DestroyDumb releases the storage behind handle.
func (c *Card) DestroyDumb(handle uint32) error {
	req := sysDestroyDumb{handle: handle}
	return c.ioctl(cmdModeDestroyDumb, unsafe.Pointer(&req))
}

// MapDumb requests the fake mmap offset for a dumb buffer.
func (c *Card) MapDumb(handle uint32) (uint64, error) {
	req := sysMapDumb{handle: handle}
	if err := c.ioctl(cmdModeMapDumb, unsafe.Pointer(&req)); err != nil {
		return 0, err
	}
	return req.offset, nil
}

// AddFB creates a framebuffer object binding a single-plane buffer, its
// row stride and pixel format for scan-out, and returns its id.
func (c *Card) AddFB(width, height, format, handle, pitch uint32) (uint32, error) {
	req := sysFBCmd2{
		width:       width,
		height:      height,
		pixelFormat: format,
	}
	req.handles[0] = handle
	req.pitches[0] = pitch
	if err := c.ioctl(cmdModeAddFB2, unsafe.Pointer(&req)); err != nil {
		return 0, err
	}
	return req.fbID, nil
}

// RemoveFB destroys a framebuffer object. The buffer storage behind it is
// not affected.
func (c *Card) RemoveFB(id uint32) error {
	req := sysRmFB{handle: id}
	return c.ioctl(cmdModeRmFB, unsafe.Pointer(&req))
}

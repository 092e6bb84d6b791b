// Package drm provides raw access to the kernel mode-setting interface
// of a DRM display controller. It covers the small slice of the API a
// splash renderer needs: resource enumeration, dumb buffers, framebuffer
// objects, mode sets, page flips and master handling.
package drm

import (
	"errors"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/pengutronix/platsch/internal/ioctl"
)

// Base is the ioctl request base shared by all DRM commands.
const Base = 'd'

// Card is an open DRM device node.
type Card struct {
	f  *os.File
	fd uintptr
}

// Open a DRM device node, typically /dev/dri/card[0..x], read-write.
func Open(name string) (*Card, error) {
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &Card{f: f, fd: f.Fd()}, nil
}

// File exposes the underlying device handle, e.g. for inheritance by a
// child process.
func (c *Card) File() *os.File {
	return c.f
}

// Close the device node. Closing the last handle to a device makes the
// kernel tear down any framebuffers this handle created.
func (c *Card) Close() error {
	return c.f.Close()
}

func (c *Card) ioctl(cmd ioctl.Command, arg unsafe.Pointer) error {
	return ioctl.Do(c.fd, cmd, arg)
}

type sysAuth struct {
	magic uint32
}

var (
	cmdSetMaster  = ioctl.Encode(ioctl.None, 0, Base, 0x1e)
	cmdDropMaster = ioctl.Encode(ioctl.None, 0, Base, 0x1f)
	cmdAuthMagic  = ioctl.Encode(ioctl.Read|ioctl.Write, uint16(unsafe.Sizeof(sysAuth{})), Base, 0x11)
)

// SetMaster acquires exclusive mode-setting rights on the device.
func (c *Card) SetMaster() error {
	return c.ioctl(cmdSetMaster, nil)
}

// DropMaster releases exclusive mode-setting rights so another process
// can acquire them without contention.
func (c *Card) DropMaster() error {
	return c.ioctl(cmdDropMaster, nil)
}

// IsMaster reports whether this process holds master on the device. The
// kernel refuses AUTH_MAGIC with EACCES for non-masters; any other
// outcome, including a rejected magic, means we are master.
func (c *Card) IsMaster() bool {
	var auth sysAuth
	err := c.ioctl(cmdAuthMagic, unsafe.Pointer(&auth))
	if err == nil {
		return true
	}
	return !errors.Is(err, unix.EACCES)
}

// Mmap maps size bytes of the device at offset into the process address
// space, read-write, shared.
func (c *Card) Mmap(offset uint64, size uint32) ([]byte, error) {
	return unix.Mmap(int(c.fd), int64(offset), int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

// Munmap releases a mapping obtained from Mmap.
func (c *Card) Munmap(b []byte) error {
	return unix.Munmap(b)
}

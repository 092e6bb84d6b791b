// Package ioctl encodes and issues Linux ioctl requests in the _IOC
// layout used by the DRM subsystem.
package ioctl

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Mode is the IOCTL data transfer direction.
type Mode uint8

// Modes
const (
	None Mode = iota
	Write
	Read
)

// Command is an encoded ioctl request.
type Command uintptr

func (c Command) String() string {
	var (
		mode = Mode(c >> 30 & 0x03)
		size = c >> 16 & 0x3fff
		base = c >> 8 & 0xff
		nr   = c & 0xff
		str  string
	)
	if mode&Write > 0 {
		str += " write"
	}
	if mode&Read > 0 {
		str += " read"
	}
	return fmt.Sprintf("ioctl%s (%d bytes) %c/0x%02x", str, size, rune(base), uintptr(nr))
}

// Encode an ioctl command: 2 direction bits, 14 size bits, 8 base bits
// and 8 request number bits.
func Encode(mode Mode, size uint16, base, nr uint8) Command {
	return Command(mode)<<30 | Command(size&0x3fff)<<16 | Command(base)<<8 | Command(nr)
}

// Do executes the ioctl call. arg points at the request structure, or is
// nil for requests without a payload.
func Do(fd uintptr, command Command, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(command), uintptr(arg)); errno != 0 {
		return &os.SyscallError{
			Syscall: command.String(),
			Err:     errno,
		}
	}
	return nil
}

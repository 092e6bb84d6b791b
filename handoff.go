package platsch

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// HoldEnv marks a process as the display holder child. A process
// started with this variable set must call [HoldDisplay] and nothing
// else.
const HoldEnv = "platsch_hold"

// DefaultInit is the init program executed when running as PID 1.
const DefaultInit = "/sbin/init"

// Handoff replaces the current process with the init program while a
// helper child keeps the display device open, so the kernel does not
// tear the splash configuration down. argv is passed through with its
// first element replaced by initPath. Handoff only returns on error.
func (c *Context) Handoff(initPath string, argv []string) error {
	if initPath == "" {
		initPath = DefaultInit
	}

	if c != nil && c.dev != nil {
		if err := c.spawnHolder(); err != nil {
			errorf("cannot keep display open across handoff: %v", err)
		}
	}

	args := append([]string{initPath}, argv[1:]...)
	if err := unix.Exec(initPath, args, os.Environ()); err != nil {
		return fmt.Errorf("platsch: cannot exec %s: %w", initPath, err)
	}
	return nil
}

// spawnHolder re-executes the running binary as a detached child that
// inherits the display device and blocks forever. The child recognizes
// itself through HoldEnv.
func (c *Context) spawnHolder() error {
	self, err := os.Executable()
	if err != nil {
		return err
	}

	cmd := exec.Command(self)
	cmd.Env = append(os.Environ(), HoldEnv+"=1")
	cmd.ExtraFiles = []*os.File{c.dev.File()}
	// Stdin, Stdout and Stderr stay nil so the child talks to /dev/null
	// and never blocks the console the init system is about to use.
	return cmd.Start()
}

// HoldDisplay detaches from the standard streams and sleeps forever,
// keeping every inherited display handle open. It never returns.
func HoldDisplay() {
	redirectStdio()
	select {}
}

// redirectStdio points fds 0 to 2 at /dev/null. With the console handed
// to the init program, anything we would print there is noise.
func redirectStdio() {
	devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		errorf("failed to open %s: %v", os.DevNull, err)
		return
	}
	fd := int(devnull.Fd())
	for _, target := range []int{0, 1, 2} {
		if err := unix.Dup2(fd, target); err != nil {
			errorf("failed to redirect fd %d: %v", target, err)
		}
	}
	if fd > 2 {
		devnull.Close()
	}
}

// Command platsch shows a splash image on every connected display.
//
// When run as PID 1 it then hands control to /sbin/init while keeping
// the splash on screen; otherwise it stays in the foreground until
// interrupted.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pengutronix/platsch"
)

func main() {
	// A child spawned to keep the display open across the init handoff
	// must never touch the hardware again.
	if os.Getenv(platsch.HoldEnv) != "" {
		platsch.HoldDisplay()
	}

	pid1 := os.Getpid() == 1

	dir := os.Getenv("platsch_directory")
	base := os.Getenv("platsch_basename")

	// The kernel passes boot parameters as arguments, so option parsing
	// is only available when not running as init.
	if !pid1 {
		flag.StringVar(&dir, "d", dir, "")
		flag.StringVar(&dir, "directory", dir, "Directory to load splash images from")
		flag.StringVar(&base, "b", base, "")
		flag.StringVar(&base, "basename", base, "Basename of the splash image files")
		flag.Usage = usage
		flag.Parse()
		if flag.NArg() > 0 {
			usage()
			os.Exit(2)
		}
	}

	ctx, err := platsch.NewContext(dir, base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "platsch: %v\n", err)
		if !pid1 {
			os.Exit(1)
		}
		// A boot stalled on a missing splash is worse than no splash,
		// so PID 1 still becomes init.
		ctx = nil
	}

	if ctx != nil {
		ctx.Draw()
		if err := ctx.DropMaster(); err != nil {
			fmt.Fprintf(os.Stderr, "platsch: failed to drop master: %v\n", err)
		}
	}

	if pid1 {
		err := ctx.Handoff(platsch.DefaultInit, os.Args)
		fmt.Fprintf(os.Stderr, "platsch: %v\n", err)
		os.Exit(1)
	}

	platsch.HoldDisplay()
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [OPTION]

Options:
  -d, --directory  Directory to load splash images from
  -b, --basename   Basename of the splash image files
`, os.Args[0])
}

package platsch

import "fmt"

// createFramebuffer allocates a dumb buffer matching the output's mode
// and format, wraps it in a framebuffer object and maps it into our
// address space. On failure everything allocated so far is torn down
// again.
func (c *Context) createFramebuffer(out *Output) error {
	dumb, err := c.dev.CreateDumb(out.Width, out.Height, out.Format.BPP)
	if err != nil {
		return fmt.Errorf("platsch: cannot create dumb buffer: %w", err)
	}
	out.handle = dumb.Handle
	out.Stride = dumb.Pitch
	out.Size = uint32(dumb.Size)

	fb, err := c.dev.AddFB(out.Width, out.Height, out.Format.Code, out.handle, out.Stride)
	if err != nil {
		if derr := c.dev.DestroyDumb(out.handle); derr != nil {
			errorf("cannot destroy dumb buffer: %v", derr)
		}
		return fmt.Errorf("platsch: cannot create framebuffer: %w", err)
	}
	out.FB = fb

	offset, err := c.dev.MapDumb(out.handle)
	if err != nil {
		c.undoFramebuffer(out)
		return fmt.Errorf("platsch: cannot prepare dumb buffer for mapping: %w", err)
	}

	pix, err := c.dev.Mmap(offset, out.Size)
	if err != nil {
		c.undoFramebuffer(out)
		return fmt.Errorf("platsch: cannot map dumb buffer: %w", err)
	}
	out.Pix = pix

	// Start out all black so stale memory never reaches the screen.
	for i := range out.Pix {
		out.Pix[i] = 0
	}

	return nil
}

func (c *Context) undoFramebuffer(out *Output) {
	if err := c.dev.RemoveFB(out.FB); err != nil {
		errorf("cannot remove framebuffer #%d: %v", out.FB, err)
	}
	out.FB = 0
	if err := c.dev.DestroyDumb(out.handle); err != nil {
		errorf("cannot destroy dumb buffer: %v", err)
	}
	out.handle = 0
}

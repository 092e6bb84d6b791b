// Command platsch-draw renders a test card with a text label instead of
// loading a splash file, exercising the draw callback hook.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/pengutronix/platsch"
	"github.com/pengutronix/platsch/draw"
)

func main() {
	text := flag.String("text", "platsch", "text to render on every display")
	flag.Parse()

	ctx, err := platsch.AllocContext("", "")
	if err != nil {
		fatal(err)
	}
	defer ctx.Close()

	ctx.SetDrawFunc(func(buf *platsch.DrawBuf) error {
		img, err := buf.Image()
		if err != nil {
			return err
		}
		img.Fill(color.RGBA{B: 0x80, A: 0xff})
		draw.Border(img, img.Bounds(), color.White)

		label := fmt.Sprintf("%s %dx%d", *text, buf.Width, buf.Height)
		pt := image.Pt(int(buf.Width)/8, int(buf.Height)/2)
		return draw.Label(img, pt, float64(buf.Height)/12, color.White, label)
	})

	if err := ctx.Init(); err != nil {
		fatal(err)
	}
	if len(ctx.Outputs()) == 0 {
		fatal(fmt.Errorf("no usable display found"))
	}

	ctx.Draw()
	if err := ctx.DropMaster(); err != nil {
		fatal(err)
	}

	fmt.Println("hit control-c to stop")
	select {}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "platsch-draw: %v\n", err)
	os.Exit(1)
}

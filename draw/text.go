package draw

import (
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	labelOnce sync.Once
	labelFont *truetype.Font
	labelErr  error
)

// Label renders text onto dst with the baseline origin at pt, using the
// bundled Go Regular face at the given point size.
func Label(dst Image, pt image.Point, size float64, c color.Color, text string) error {
	labelOnce.Do(func() {
		labelFont, labelErr = freetype.ParseFont(goregular.TTF)
	})
	if labelErr != nil {
		return labelErr
	}

	fc := freetype.NewContext()
	fc.SetDPI(72)
	fc.SetFont(labelFont)
	fc.SetFontSize(size)
	fc.SetClip(dst.Bounds())
	fc.SetDst(dst)
	fc.SetSrc(image.NewUniform(c))
	_, err := fc.DrawString(text, freetype.Pt(pt.X, pt.Y))
	return err
}

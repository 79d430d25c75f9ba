// Package legend renders a color legend to an image so it can be shown
// next to a toolpath preview or saved alongside it.
package legend

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/philipparndt/gcodeview/pkg/preview"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	rowHeight   = 18
	swatchSize  = 12
	padding     = 6
	labelOffset = padding + swatchSize + padding
)

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("legend has no entries")

// Render draws one row per entry: a color swatch followed by its label.
func Render(entries []preview.LegendEntry) (*image.RGBA, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	face := basicfont.Face7x13
	width := 0
	for _, e := range entries {
		width = max(width, font.MeasureString(face, e.Label).Ceil())
	}
	bounds := image.Rect(0, 0, labelOffset+width+padding, len(entries)*rowHeight+padding)

	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}

	for i, e := range entries {
		top := padding + i*rowHeight
		swatch := image.Rect(padding, top, padding+swatchSize, top+swatchSize)
		draw.Draw(img, swatch, image.NewUniform(RGBA(e.Color)), image.Point{}, draw.Src)

		drawer.Dot = fixed.P(labelOffset, top+swatchSize-1)
		drawer.DrawString(e.Label)
	}
	return img, nil
}

// WritePNG renders entries and encodes the result as PNG.
func WritePNG(w io.Writer, entries []preview.LegendEntry) error {
	img, err := Render(entries)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SwatchCenter returns the pixel at the middle of row i's swatch.
func SwatchCenter(i int) image.Point {
	return image.Pt(padding+swatchSize/2, padding+i*rowHeight+swatchSize/2)
}

// RGBA converts a preview color to 8-bit RGBA.
func RGBA(c preview.Color) color.RGBA {
	return color.RGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: channel(c.A),
	}
}

func channel(v float32) uint8 {
	return uint8(max(0, min(v, 1))*255 + 0.5)
}

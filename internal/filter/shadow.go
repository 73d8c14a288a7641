package filter

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// DropShadow is a blurred, offset, colorized silhouette of an image,
// drawn beneath the image itself.
type DropShadow struct {
	// Offset is the shadow displacement in pixels.
	Offset image.Point

	// Blur is the Gaussian sigma in pixels. Zero gives a hard shadow.
	Blur float64

	// Color tints the silhouette; its alpha scales the source alpha.
	Color color.NRGBA
}

// Margin returns how far the blurred silhouette extends past the source
// bounds on every side.
func (f DropShadow) Margin() int {
	if f.Blur <= 0 {
		return 0
	}
	return int(math.Ceil(f.Blur * 3))
}

// Render returns the shadow image and the point, relative to the source's
// top-left corner, where it must be drawn.
func (f DropShadow) Render(src image.Image) (*image.NRGBA, image.Point) {
	m := f.Margin()
	b := src.Bounds()
	sil := image.NewNRGBA(image.Rect(0, 0, b.Dx()+2*m, b.Dy()+2*m))

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			_, _, _, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if a == 0 {
				continue
			}
			i := sil.PixOffset(x+m, y+m)
			sil.Pix[i+0] = f.Color.R
			sil.Pix[i+1] = f.Color.G
			sil.Pix[i+2] = f.Color.B
			sil.Pix[i+3] = uint8(uint32(f.Color.A) * (a >> 8) / 255)
		}
	}

	if f.Blur > 0 {
		sil = imaging.Blur(sil, f.Blur)
	}
	return sil, image.Pt(f.Offset.X-m, f.Offset.Y-m)
}

// ExpandBounds returns the area covered by the source plus its shadow.
func (f DropShadow) ExpandBounds(r image.Rectangle) image.Rectangle {
	m := f.Margin()
	shadow := r.Add(f.Offset).Inset(-m)
	return r.Union(shadow)
}

package thumb

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/gogpu/compose/internal/shape"
)

// CleanEdges clears pixels with 0 < alpha < EdgeAlpha whose color
// channels are all below EdgeDark.
const (
	EdgeAlpha = 64
	EdgeDark  = 48
)

// CleanEdges makes near-black, nearly transparent pixels fully transparent
// and returns how many it cleared. Such pixels are fringe left by upstream
// assets and would show as a dark halo once the corners are rounded.
// Applying it twice has the same result as applying it once.
func CleanEdges(img *image.NRGBA) int {
	b := img.Bounds()
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			px := row[i : i+4 : i+4]
			if a := px[3]; a == 0 || a >= EdgeAlpha {
				continue
			}
			if max(px[0], px[1], px[2]) >= EdgeDark {
				continue
			}
			px[0], px[1], px[2], px[3] = 0, 0, 0, 0
			n++
		}
	}
	return n
}

// RoundCorners multiplies the alpha of img by a rounded-rectangle mask.
// The mask is rasterized at supersample times the image size and radius,
// then downsampled with a Catmull-Rom filter, which antialiases the
// corners.
func RoundCorners(img *image.NRGBA, radius float64, supersample int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || radius <= 0 {
		return
	}
	n := max(supersample, 1)
	big := shape.Mask(w*n, h*n, float32(radius*float64(n)), shape.AllCorners)
	mask := imaging.Resize(big, w, h, imaging.CatmullRom)

	for y := range h {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		mrow := mask.Pix[y*mask.Stride:]
		for x := range w {
			m := uint32(mrow[4*x+3])
			a := &row[4*x+3]
			*a = uint8((uint32(*a)*m + 127) / 255)
		}
	}
}

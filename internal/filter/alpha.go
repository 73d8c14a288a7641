package filter

import (
	"image"

	"github.com/disintegration/imaging"
)

// Opacity returns a copy of img with every alpha value multiplied by
// opacity (clamped to [0, 1]).
func Opacity(img image.Image, opacity float64) *image.NRGBA {
	out := imaging.Clone(img)
	opacity = clamp01(opacity)
	if opacity == 1 {
		return out
	}
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = uint8(float64(out.Pix[i])*opacity + 0.5)
	}
	return out
}

// FadeDown returns a copy of img whose alpha ramps linearly from fully kept
// at row start*h to zero at row end*h. Rows below end are transparent.
func FadeDown(img image.Image, start, end float64) *image.NRGBA {
	out := imaging.Clone(img)
	h := out.Bounds().Dy()
	start, end = clamp01(start), clamp01(end)
	if end <= start || h == 0 {
		return out
	}

	y0, y1 := start*float64(h), end*float64(h)
	for y := 0; y < h; y++ {
		fy := float64(y) + 0.5
		var k float64
		switch {
		case fy <= y0:
			continue
		case fy >= y1:
			k = 0
		default:
			k = 1 - (fy-y0)/(y1-y0)
		}
		row := out.Pix[y*out.Stride : y*out.Stride+out.Bounds().Dx()*4]
		for i := 3; i < len(row); i += 4 {
			row[i] = uint8(float64(row[i])*k + 0.5)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

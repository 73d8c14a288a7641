package text

import (
	"image"
	"image/draw"
	"unicode/utf8"
)

// monoFace advances every rune by a fixed width and counts measurements.
type monoFace struct {
	advance int
	calls   int
}

func (f *monoFace) Advance(s string) int {
	f.calls++
	return utf8.RuneCountInString(s) * f.advance
}

func (f *monoFace) Metrics() Metrics {
	return Metrics{Ascent: 8, Descent: 2, Height: 10}
}

func (f *monoFace) Size() float64 { return 10 }

func (f *monoFace) Draw(dst draw.Image, x, y int, s string, src image.Image) {
	for i := range utf8.RuneCountInString(s) {
		r := image.Rect(x+i*f.advance, y, x+(i+1)*f.advance-1, y+8)
		draw.Draw(dst, r, src, image.Point{}, draw.Over)
	}
}

var _ Face = (*monoFace)(nil)

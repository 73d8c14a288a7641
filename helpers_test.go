package compose

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"
	"unicode/utf8"

	"github.com/gogpu/compose/asset"
	"github.com/gogpu/compose/surface"
	"github.com/gogpu/compose/text"
)

// monoFace advances every rune by a fixed width and draws each glyph as a
// filled box.
type monoFace struct {
	advance int
	size    float64
}

func (f *monoFace) Advance(s string) int { return utf8.RuneCountInString(s) * f.advance }
func (f *monoFace) Metrics() text.Metrics {
	return text.Metrics{Ascent: 8, Descent: 2, Height: 10}
}
func (f *monoFace) Size() float64 { return f.size }
func (f *monoFace) Draw(dst draw.Image, x, y int, s string, src image.Image) {
	for i := range utf8.RuneCountInString(s) {
		r := image.Rect(x+i*f.advance+1, y, x+(i+1)*f.advance-1, y+8)
		draw.Draw(dst, r, src, image.Point{}, draw.Over)
	}
}

// monoFonts resolves every name except "missing" to a monoFace.
type monoFonts struct{ advance int }

func (m monoFonts) Face(name string, size float64) (text.Face, error) {
	if name == "missing" {
		return nil, &text.FontError{Name: name, Size: size, Err: &asset.NotFoundError{Path: name}}
	}
	return &monoFace{advance: m.advance, size: size}, nil
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithFonts(monoFonts{advance: 10}), WithWorkers(2)}, opts...)
	e, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func render(t *testing.T, e *Engine, root Widget) *image.RGBA {
	t.Helper()
	img, err := e.Render(context.Background(), root)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return img
}

// measure runs a layout pass with monospace fonts and no assets.
func measure(t *testing.T, w Widget) image.Point {
	t.Helper()
	l := newLayout(DefaultConfig(), monoFonts{advance: 10}, nil)
	size, err := l.content(w)
	if err != nil {
		t.Fatalf("content(%s) error = %v", PathOf(w), err)
	}
	return size
}

// recordBox returns a callback that stores the widget's absolute box.
func recordBox(dst *image.Rectangle) DrawFunc {
	return func(dc *DrawContext) error {
		s := dc.Surface
		*dst = image.Rectangle{Min: s.Origin(), Max: s.Origin().Add(s.Size())}
		return nil
	}
}

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// countingBackground counts Draw calls.
type countingBackground struct{ calls *int }

func (c countingBackground) Draw(*DrawContext) error {
	*c.calls++
	return nil
}

// leakyBackground pushes a region and never pops it.
type leakyBackground struct{}

func (leakyBackground) Draw(dc *DrawContext) error {
	dc.Surface.MoveRegion(image.Pt(1, 1), surface.Remainder)
	return nil
}

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
)

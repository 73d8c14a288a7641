package text

import (
	"image"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Measurer reports the pixel width of a string. Widths must be monotonic
// in prefix length; line fitting relies on it.
type Measurer interface {
	Advance(s string) int
}

// Face is a font at one pixel size.
// Face implementations must be safe for concurrent use.
type Face interface {
	Measurer

	// Metrics returns the line metrics at this face's size.
	Metrics() Metrics

	// Size returns the pixel size the face was created at.
	Size() float64

	// Draw renders s with its line box's top-left corner at (x, y),
	// filling glyph coverage with src.
	Draw(dst draw.Image, x, y int, s string, src image.Image)
}

// sfntFace wraps an x/image opentype face. The underlying face keeps
// per-call buffers, so every use is serialized by mu.
type sfntFace struct {
	source  *FontSource
	size    float64
	metrics Metrics

	mu   sync.Mutex
	face font.Face
}

func newSfntFace(s *FontSource, size float64) (*sfntFace, error) {
	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	m := face.Metrics()
	return &sfntFace{
		source: s,
		size:   size,
		face:   face,
		metrics: Metrics{
			Ascent:  m.Ascent.Ceil(),
			Descent: m.Descent.Ceil(),
			Height:  m.Height.Ceil(),
		},
	}, nil
}

// Metrics implements Face.
func (f *sfntFace) Metrics() Metrics { return f.metrics }

// Size implements Face.
func (f *sfntFace) Size() float64 { return f.size }

// Advance implements Measurer.
func (f *sfntFace) Advance(s string) int {
	if s == "" {
		return 0
	}
	if f.source.shaping {
		if adv, err := f.source.shapedAdvance(s, f.size); err == nil {
			return adv.Ceil()
		}
		// Fall through to the x/image measurement when go-text cannot
		// parse the font.
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return font.MeasureString(f.face, s).Ceil()
}

// Draw implements Face.
func (f *sfntFace) Draw(dst draw.Image, x, y int, s string, src image.Image) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: f.face,
		Dot:  fixed.P(x, y+f.metrics.Ascent),
	}
	d.DrawString(s)
}

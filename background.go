package compose

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/gogpu/compose/internal/filter"
	"github.com/gogpu/compose/internal/shape"
	"github.com/gogpu/compose/surface"
)

// Background is a decoration drawn behind a widget's content. Draw is
// called with the surface's current frame set to the widget's box
// (padding included, margin excluded). It must leave the region stack as
// it found it.
type Background interface {
	Draw(dc *DrawContext) error
}

// corners treats the zero value as "all corners".
func corners(c surface.Corners) surface.Corners {
	if c == surface.NoCorners {
		return surface.AllCorners
	}
	return c
}

// Fill paints the box with a solid color. A nil Color is an invalid
// configuration.
type Fill struct {
	Color color.Color
}

// Draw implements Background.
func (f Fill) Draw(dc *DrawContext) error {
	if f.Color == nil {
		return fmt.Errorf("%w: fill without a color", ErrInvalidConfiguration)
	}
	s := dc.Surface
	s.FillRect(s.Bounds(), f.Color)
	return nil
}

// RoundRect paints a rounded rectangle with an optional border. A zero
// Corners value rounds every corner.
type RoundRect struct {
	Color   color.Color
	Radius  float64
	Corners surface.Corners

	Stroke      color.Color
	StrokeWidth float64
}

// Draw implements Background.
func (r RoundRect) Draw(dc *DrawContext) error {
	s := dc.Surface
	c := corners(r.Corners)
	if r.Color != nil {
		s.FillRoundRect(s.Bounds(), r.Radius, c, r.Color)
	}
	if r.Stroke != nil && r.StrokeWidth > 0 {
		s.StrokeRoundRect(s.Bounds(), r.Radius, r.StrokeWidth, c, r.Stroke)
	}
	return nil
}

// Glass is a translucent rounded panel: whatever is already drawn beneath
// the box is blurred and tinted. A zero Corners value rounds every corner.
type Glass struct {
	Blur    float64
	Tint    color.NRGBA
	Radius  float64
	Corners surface.Corners

	Border      color.NRGBA
	BorderWidth float64
}

// Draw implements Background.
func (g Glass) Draw(dc *DrawContext) error {
	s := dc.Surface
	s.Glass(s.Bounds(), surface.GlassStyle{
		Blur:        g.Blur,
		Tint:        g.Tint,
		Radius:      g.Radius,
		Corners:     corners(g.Corners),
		Border:      g.Border,
		BorderWidth: g.BorderWidth,
	})
	return nil
}

// Gradient paints an axis-aligned two-stop gradient. A zero Corners value
// rounds every corner when Radius is positive.
type Gradient struct {
	From, To  color.NRGBA
	Direction surface.Direction
	Radius    float64
	Corners   surface.Corners
}

// Draw implements Background.
func (g Gradient) Draw(dc *DrawContext) error {
	s := dc.Surface
	s.FillGradient(s.Bounds(), surface.Gradient{
		From:      g.From,
		To:        g.To,
		Direction: g.Direction,
		Radius:    g.Radius,
		Corners:   corners(g.Corners),
	})
	return nil
}

// ImageBackground paints an image placed by Mode, optionally blurred,
// faded towards the bottom and made translucent.
type ImageBackground struct {
	Source ImageRef
	Mode   ImageMode

	// Blur is the Gaussian sigma applied to the placed image.
	Blur float64

	// FadeStart and FadeEnd, as fractions of the box height, ramp the
	// alpha from opaque to transparent. Equal values disable the fade.
	FadeStart, FadeEnd float64

	// Opacity scales the alpha. Zero is treated as fully opaque.
	Opacity float64

	Radius  float64
	Corners surface.Corners
}

// Assets implements AssetUser.
func (b ImageBackground) Assets() []Asset {
	return b.Source.assets()
}

// Draw implements Background.
func (b ImageBackground) Draw(dc *DrawContext) error {
	img, err := dc.Image(b.Source)
	if err != nil {
		return err
	}
	s := dc.Surface
	var layer image.Image = placeImage(img, s.Size(), b.Mode, Center, Center)
	if b.Blur > 0 {
		layer = imaging.Blur(layer, b.Blur)
	}
	if b.FadeEnd > b.FadeStart {
		layer = filter.FadeDown(layer, b.FadeStart, b.FadeEnd)
	}
	if b.Opacity > 0 && b.Opacity < 1 {
		layer = filter.Opacity(layer, b.Opacity)
	}
	radius, c := b.Radius, surface.NoCorners
	if radius > 0 {
		c = corners(b.Corners)
	}
	s.DrawImageRounded(layer, s.Bounds(), radius, c)
	return nil
}

// PatternKind selects a procedural pattern.
type PatternKind uint8

const (
	// Stripes draws diagonal stripes.
	Stripes PatternKind = iota

	// Dots draws one round dot per cell.
	Dots

	// Checker alternates cells of the two colors.
	Checker
)

// String returns the string representation of the pattern kind.
func (k PatternKind) String() string {
	switch k {
	case Stripes:
		return "stripes"
	case Dots:
		return "dots"
	case Checker:
		return "checker"
	default:
		return "unknown"
	}
}

// ParsePatternKind parses a pattern name.
func ParsePatternKind(s string) (PatternKind, error) {
	for k := Stripes; k <= Checker; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return Stripes, fmt.Errorf("%w: unknown pattern %q", ErrInvalidConfiguration, s)
}

// Pattern paints a repeating procedural pattern over an optional base
// color.
type Pattern struct {
	Kind PatternKind

	// Color draws the pattern and is required. Base, when set, fills the
	// box first.
	Color color.Color
	Base  color.Color

	// Cell is the pattern period in pixels (default 8). Mark is the stripe
	// width or dot diameter (default Cell/2).
	Cell int
	Mark int
}

// Draw implements Background.
func (p Pattern) Draw(dc *DrawContext) error {
	if p.Color == nil {
		return fmt.Errorf("%w: %s pattern without a color", ErrInvalidConfiguration, p.Kind)
	}
	s := dc.Surface
	size := s.Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}
	cell := p.Cell
	if cell <= 0 {
		cell = 8
	}
	mark := p.Mark
	if mark <= 0 {
		mark = max(cell/2, 1)
	}

	tile := p.tile(cell, mark)
	layer := image.NewNRGBA(image.Rectangle{Max: size})
	if p.Base != nil {
		draw.Draw(layer, layer.Bounds(), image.NewUniform(p.Base), image.Point{}, draw.Src)
	}
	tb := tile.Bounds()
	for y := 0; y < size.Y; y += tb.Dy() {
		for x := 0; x < size.X; x += tb.Dx() {
			draw.Draw(layer, tb.Add(image.Pt(x, y)), tile, image.Point{}, draw.Over)
		}
	}
	s.DrawImage(layer, s.Bounds())
	return nil
}

// tile renders one period of the pattern.
func (p Pattern) tile(cell, mark int) *image.NRGBA {
	fg := image.NewUniform(p.Color)
	switch p.Kind {
	case Dots:
		t := image.NewNRGBA(image.Rect(0, 0, cell, cell))
		d := min(mark, cell)
		at := (cell - d) / 2
		m := shape.Mask(d, d, float32(d)/2, shape.AllCorners)
		draw.DrawMask(t, image.Rect(at, at, at+d, at+d), fg, image.Point{}, m, image.Point{}, draw.Over)
		return t
	case Checker:
		t := image.NewNRGBA(image.Rect(0, 0, 2*cell, 2*cell))
		draw.Draw(t, image.Rect(0, 0, cell, cell), fg, image.Point{}, draw.Src)
		draw.Draw(t, image.Rect(cell, cell, 2*cell, 2*cell), fg, image.Point{}, draw.Src)
		return t
	default: // Stripes
		t := image.NewNRGBA(image.Rect(0, 0, cell, cell))
		c := color.NRGBAModel.Convert(p.Color).(color.NRGBA)
		for y := range cell {
			for x := range cell {
				if (x+y)%cell < mark {
					t.SetNRGBA(x, y, c)
				}
			}
		}
		return t
	}
}

// Layers draws several backgrounds in order, back to front.
type Layers []Background

// Assets implements AssetUser.
func (ls Layers) Assets() []Asset {
	var out []Asset
	for _, l := range ls {
		if u, ok := l.(AssetUser); ok {
			out = append(out, u.Assets()...)
		}
	}
	return out
}

// Draw implements Background.
func (ls Layers) Draw(dc *DrawContext) error {
	for _, l := range ls {
		if err := l.Draw(dc); err != nil {
			return err
		}
	}
	return nil
}

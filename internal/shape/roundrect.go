// Package shape builds rounded-rectangle outlines on the x/image vector
// rasterizer. It is shared by the drawing surface and the thumbnail
// compositor's supersampled corner mask.
package shape

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// Corners selects which corners of a rectangle are rounded.
type Corners uint8

const (
	TopLeft Corners = 1 << iota
	TopRight
	BottomRight
	BottomLeft

	// AllCorners rounds every corner.
	AllCorners = TopLeft | TopRight | BottomRight | BottomLeft
	// NoCorners draws a plain rectangle.
	NoCorners Corners = 0
)

// Has reports whether c includes corner k.
func (c Corners) Has(k Corners) bool { return c&k != 0 }

// kappa is the cubic Bézier control distance approximating a quarter circle.
const kappa = 0.5522847498

type pt struct{ x, y float32 }

type segment struct {
	cubic          bool
	p0, c1, c2, p3 pt
}

// outline returns the clockwise outline (y down) of the rectangle
// [x0,x1]×[y0,y1] with radius r on the selected corners.
func outline(x0, y0, x1, y1, r float32, c Corners) []segment {
	r = min(r, (x1-x0)/2, (y1-y0)/2)
	if r < 0 {
		r = 0
	}
	rad := func(k Corners) float32 {
		if c.Has(k) {
			return r
		}
		return 0
	}
	tl, tr, br, bl := rad(TopLeft), rad(TopRight), rad(BottomRight), rad(BottomLeft)

	arc := func(from, to, corner pt) segment {
		// Control points pull from each endpoint towards the corner.
		return segment{
			cubic: true,
			p0:    from,
			c1:    pt{from.x + (corner.x-from.x)*kappa, from.y + (corner.y-from.y)*kappa},
			c2:    pt{to.x + (corner.x-to.x)*kappa, to.y + (corner.y-to.y)*kappa},
			p3:    to,
		}
	}
	line := func(from, to pt) segment { return segment{p0: from, p3: to} }

	a := pt{x0 + tl, y0}
	b := pt{x1 - tr, y0}
	cc := pt{x1, y0 + tr}
	d := pt{x1, y1 - br}
	e := pt{x1 - br, y1}
	f := pt{x0 + bl, y1}
	g := pt{x0, y1 - bl}
	h := pt{x0, y0 + tl}

	return []segment{
		line(a, b),
		arc(b, cc, pt{x1, y0}),
		line(cc, d),
		arc(d, e, pt{x1, y1}),
		line(e, f),
		arc(f, g, pt{x0, y1}),
		line(g, h),
		arc(h, a, pt{x0, y0}),
	}
}

// AddRoundRect appends a closed clockwise rounded rectangle to z.
func AddRoundRect(z *vector.Rasterizer, x0, y0, x1, y1, r float32, c Corners) {
	segs := outline(x0, y0, x1, y1, r, c)
	z.MoveTo(segs[0].p0.x, segs[0].p0.y)
	for _, s := range segs {
		if s.cubic {
			z.CubeTo(s.c1.x, s.c1.y, s.c2.x, s.c2.y, s.p3.x, s.p3.y)
		} else {
			z.LineTo(s.p3.x, s.p3.y)
		}
	}
	z.ClosePath()
}

// AddRoundRectReverse appends the same outline counter-clockwise. Paired
// with a larger clockwise outline it cuts a hole, which is how strokes are
// drawn.
func AddRoundRectReverse(z *vector.Rasterizer, x0, y0, x1, y1, r float32, c Corners) {
	segs := outline(x0, y0, x1, y1, r, c)
	last := segs[len(segs)-1]
	z.MoveTo(last.p3.x, last.p3.y)
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		if s.cubic {
			z.CubeTo(s.c2.x, s.c2.y, s.c1.x, s.c1.y, s.p0.x, s.p0.y)
		} else {
			z.LineTo(s.p0.x, s.p0.y)
		}
	}
	z.ClosePath()
}

// Mask rasterizes a w×h rounded rectangle covering the whole mask.
func Mask(w, h int, r float32, c Corners) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return m
	}
	z := vector.NewRasterizer(w, h)
	AddRoundRect(z, 0, 0, float32(w), float32(h), r, c)
	z.Draw(m, m.Bounds(), image.Opaque, image.Point{})
	return m
}

// RingMask rasterizes the outline of a w×h rounded rectangle with the given
// stroke width drawn inside the bounds.
func RingMask(w, h int, r, width float32, c Corners) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 || width <= 0 {
		return m
	}
	z := vector.NewRasterizer(w, h)
	fw, fh := float32(w), float32(h)
	AddRoundRect(z, 0, 0, fw, fh, r, c)
	if 2*width < fw && 2*width < fh {
		AddRoundRectReverse(z, width, width, fw-width, fh-width, max(r-width, 0), c)
	}
	z.Draw(m, m.Bounds(), image.Opaque, image.Point{})
	return m
}

// Paint composites src through mask onto dst at r using Porter-Duff over.
func Paint(dst draw.Image, r image.Rectangle, src image.Image, sp image.Point, mask image.Image) {
	draw.DrawMask(dst, r, src, sp, mask, image.Point{}, draw.Over)
}

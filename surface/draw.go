// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/gogpu/compose/internal/filter"
	"github.com/gogpu/compose/internal/shape"
	"github.com/gogpu/compose/text"
)

// All primitives take rectangles and points in the current frame's local
// coordinates and are clipped to the current clip. A nil color draws
// nothing.

// Clear replaces every pixel of the current frame with c.
func (s *Surface) Clear(c color.Color) {
	if c == nil {
		return
	}
	draw.Draw(s.target(), s.abs(s.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect fills r with c.
func (s *Surface) FillRect(r image.Rectangle, c color.Color) {
	if r.Empty() || c == nil {
		return
	}
	draw.Draw(s.target(), s.abs(r), image.NewUniform(c), image.Point{}, draw.Over)
}

// StrokeRect draws a width-pixel border inside r.
func (s *Surface) StrokeRect(r image.Rectangle, width int, c color.Color) {
	if r.Empty() || width <= 0 {
		return
	}
	if 2*width >= r.Dx() || 2*width >= r.Dy() {
		s.FillRect(r, c)
		return
	}
	s.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	s.FillRect(image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	s.FillRect(image.Rect(r.Min.X, r.Min.Y+width, r.Min.X+width, r.Max.Y-width), c)
	s.FillRect(image.Rect(r.Max.X-width, r.Min.Y+width, r.Max.X, r.Max.Y-width), c)
}

// FillRoundRect fills r with c, rounding the selected corners by radius.
func (s *Surface) FillRoundRect(r image.Rectangle, radius float64, corners Corners, c color.Color) {
	if r.Empty() || c == nil {
		return
	}
	if radius <= 0 || corners == NoCorners {
		s.FillRect(r, c)
		return
	}
	m := shape.Mask(r.Dx(), r.Dy(), float32(radius), corners)
	shape.Paint(s.target(), s.abs(r), image.NewUniform(c), image.Point{}, m)
}

// StrokeRoundRect draws a width-pixel rounded border inside r.
func (s *Surface) StrokeRoundRect(r image.Rectangle, radius, width float64, corners Corners, c color.Color) {
	if r.Empty() || width <= 0 || c == nil {
		return
	}
	m := shape.RingMask(r.Dx(), r.Dy(), float32(radius), float32(width), corners)
	shape.Paint(s.target(), s.abs(r), image.NewUniform(c), image.Point{}, m)
}

// FillGradient fills r with a two-stop linear gradient.
func (s *Surface) FillGradient(r image.Rectangle, g Gradient) {
	if r.Empty() {
		return
	}
	w, h := r.Dx(), r.Dy()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	steps := w
	if g.Direction == Vertical {
		steps = h
	}
	for i := range steps {
		t := 0.0
		if steps > 1 {
			t = float64(i) / float64(steps-1)
		}
		c := g.at(t)
		if g.Direction == Vertical {
			for x := range w {
				img.SetNRGBA(x, i, c)
			}
		} else {
			for y := range h {
				img.SetNRGBA(i, y, c)
			}
		}
	}

	var mask image.Image
	if g.Radius > 0 && g.Corners != NoCorners {
		mask = shape.Mask(w, h, float32(g.Radius), g.Corners)
	}
	draw.DrawMask(s.target(), s.abs(r), img, image.Point{}, mask, image.Point{}, draw.Over)
}

// DrawImage draws img into r, resizing it with Lanczos resampling when the
// sizes differ.
func (s *Surface) DrawImage(img image.Image, r image.Rectangle) {
	s.DrawImageRounded(img, r, 0, NoCorners)
}

// DrawImageRounded draws img into r like DrawImage and masks the selected
// corners with radius.
func (s *Surface) DrawImageRounded(img image.Image, r image.Rectangle, radius float64, corners Corners) {
	if img == nil || r.Empty() {
		return
	}
	src := fit(img, r.Size())
	var mask image.Image
	if radius > 0 && corners != NoCorners {
		mask = shape.Mask(r.Dx(), r.Dy(), float32(radius), corners)
	}
	draw.DrawMask(s.target(), s.abs(r), src, src.Bounds().Min, mask, image.Point{}, draw.Over)
}

// BlendImage alpha-blends img with its top-left corner at at. The optional
// drop shadow is drawn first.
func (s *Surface) BlendImage(img image.Image, at image.Point, opts BlendOptions) {
	if img == nil {
		return
	}
	src := img
	if opts.Size.X > 0 && opts.Size.Y > 0 {
		src = fit(img, opts.Size)
	}
	r := s.abs(image.Rectangle{Min: at, Max: at.Add(src.Bounds().Size())})

	if opts.Shadow != nil {
		sh, off := opts.Shadow.filter().Render(src)
		draw.Draw(s.target(), sh.Bounds().Add(r.Min.Add(off)), sh, image.Point{}, draw.Over)
	}
	if opts.Opacity > 0 && opts.Opacity < 1 {
		src = filter.Opacity(src, opts.Opacity)
	}
	draw.Draw(s.target(), r, src, src.Bounds().Min, draw.Over)
}

// DrawText draws str with the top-left corner of its line box at at. A
// non-nil shadow is rendered from the glyph silhouette and drawn first.
func (s *Surface) DrawText(face text.Face, at image.Point, str string, c color.Color, shadow *Shadow) {
	if face == nil || str == "" || c == nil {
		return
	}
	p := at.Add(s.top().origin)
	src := image.NewUniform(c)
	if shadow == nil {
		face.Draw(s.target(), p.X, p.Y, str, src)
		return
	}

	// Glyphs may overhang their advance box; pad the layer so the
	// silhouette keeps them.
	m := face.Metrics()
	pad := m.Height/4 + 1
	layer := image.NewNRGBA(image.Rect(0, 0, face.Advance(str)+2*pad, m.Height+2*pad))
	face.Draw(layer, pad, pad, str, src)

	origin := p.Sub(image.Pt(pad, pad))
	sh, off := shadow.filter().Render(layer)
	draw.Draw(s.target(), sh.Bounds().Add(origin.Add(off)), sh, image.Point{}, draw.Over)
	draw.Draw(s.target(), layer.Bounds().Add(origin), layer, image.Point{}, draw.Over)
}

// Glass draws a translucent panel over r: the pixels already beneath r are
// blurred, tinted and written back through a rounded mask.
func (s *Surface) Glass(r image.Rectangle, style GlassStyle) {
	if r.Empty() {
		return
	}
	full := s.abs(r)
	area := full.Intersect(s.top().clip)
	if area.Empty() {
		return
	}

	sample := imaging.Clone(s.img.SubImage(area))
	if style.Blur > 0 {
		sample = imaging.Blur(sample, style.Blur)
	}
	if style.Tint.A > 0 {
		draw.Draw(sample, sample.Bounds(), image.NewUniform(style.Tint), image.Point{}, draw.Over)
	}

	var mask image.Image
	if style.Radius > 0 && style.Corners != NoCorners {
		mask = shape.Mask(r.Dx(), r.Dy(), float32(style.Radius), style.Corners)
	}
	draw.DrawMask(s.target(), area, sample, image.Point{}, mask, area.Min.Sub(full.Min), draw.Over)

	if style.BorderWidth > 0 {
		s.StrokeRoundRect(r, style.Radius, style.BorderWidth, style.Corners, style.Border)
	}
}

// fit resizes img to size unless it already has that size.
func fit(img image.Image, size image.Point) image.Image {
	if img.Bounds().Size() == size {
		return img
	}
	return imaging.Resize(img, size.X, size.Y, imaging.Lanczos)
}

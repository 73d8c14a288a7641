// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"image/draw"
)

// DefaultMaxPixels is the default pixel ceiling (4096×4096).
const DefaultMaxPixels = 4096 * 4096

// frame is one entry of the region stack. All fields are absolute.
type frame struct {
	origin image.Point
	size   image.Point
	clip   image.Rectangle
}

// Surface is a raster buffer with a stack of nested coordinate frames.
// The root frame covers the whole buffer and can never be popped.
//
// Surfaces are NOT thread-safe.
type Surface struct {
	img    *image.RGBA
	frames []frame
}

// Option configures New.
type Option func(*options)

type options struct {
	maxPixels  int
	background color.Color
}

func defaultOptions() options {
	return options{maxPixels: DefaultMaxPixels}
}

// WithMaxPixels sets the pixel ceiling. Non-positive values disable it.
func WithMaxPixels(n int) Option {
	return func(o *options) {
		o.maxPixels = n
	}
}

// WithBackground clears the new surface to c. The default is transparent.
func WithBackground(c color.Color) Option {
	return func(o *options) {
		o.background = c
	}
}

// New allocates a width×height surface. It fails with a *SizeError before
// allocating when a side is not positive or the pixel count exceeds the
// ceiling.
func New(width, height int, opts ...Option) (*Surface, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if width <= 0 || height <= 0 {
		return nil, &SizeError{Width: width, Height: height, Err: ErrEmptyCanvas}
	}
	// Divide instead of multiplying so huge sides cannot overflow.
	if o.maxPixels > 0 && width > o.maxPixels/height {
		return nil, &SizeError{Width: width, Height: height, Max: o.maxPixels, Err: ErrCanvasTooLarge}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if o.background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(o.background), image.Point{}, draw.Src)
	}
	return &Surface{
		img: img,
		frames: []frame{{
			size: image.Pt(width, height),
			clip: img.Bounds(),
		}},
	}, nil
}

// Image returns the backing bitmap. The surface keeps drawing into it.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Width returns the full surface width.
func (s *Surface) Width() int { return s.img.Rect.Dx() }

// Height returns the full surface height.
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Depth returns the number of frames above the root frame.
func (s *Surface) Depth() int {
	return len(s.frames) - 1
}

func (s *Surface) top() *frame {
	return &s.frames[len(s.frames)-1]
}

// Size returns the logical size of the current frame.
func (s *Surface) Size() image.Point {
	return s.top().size
}

// Bounds returns the current frame in local coordinates.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rectangle{Max: s.top().size}
}

// Origin returns the absolute position of the current frame.
func (s *Surface) Origin() image.Point {
	return s.top().origin
}

// Rest as a MoveRegion size component selects the remainder of the
// current frame along that axis.
const Rest = -1

// Remainder is the MoveRegion size covering the rest of the current frame
// on both axes.
var Remainder = image.Pt(Rest, Rest)

// MoveRegion pushes a frame whose top-left corner is at offset in the
// current frame's coordinates. A negative size component means the
// remainder of the current frame along that axis.
func (s *Surface) MoveRegion(offset, size image.Point) {
	cur := s.top().size
	if size.X < 0 {
		size.X = max(cur.X-offset.X, 0)
	}
	if size.Y < 0 {
		size.Y = max(cur.Y-offset.Y, 0)
	}
	s.push(offset, size)
}

// ShrinkRegion pushes a frame inset by dx on the left and right and by dy
// on the top and bottom of the current frame.
func (s *Surface) ShrinkRegion(dx, dy int) {
	cur := s.top().size
	s.push(image.Pt(dx, dy), image.Pt(max(cur.X-2*dx, 0), max(cur.Y-2*dy, 0)))
}

func (s *Surface) push(offset, size image.Point) {
	t := s.top()
	s.frames = append(s.frames, frame{
		origin: t.origin.Add(offset),
		size:   size,
		clip:   t.clip,
	})
}

// RestoreRegion pops n frames. Popping the root frame is refused with an
// *ImbalanceError and leaves the stack untouched.
func (s *Surface) RestoreRegion(n int) error {
	if n < 0 || n > s.Depth() {
		return &ImbalanceError{Depth: s.Depth(), Pop: n}
	}
	s.frames = s.frames[:len(s.frames)-n]
	return nil
}

// ClipRegion restricts drawing in the current frame, and in frames
// pushed on top of it, to the frame's own bounds.
func (s *Surface) ClipRegion() {
	t := s.top()
	t.clip = t.clip.Intersect(image.Rectangle{Min: t.origin, Max: t.origin.Add(t.size)})
}

// WithRegion pushes a frame at offset with size, runs fn, and pops the
// frame on every exit path, including panics.
func (s *Surface) WithRegion(offset, size image.Point, fn func() error) error {
	depth := s.Depth()
	s.MoveRegion(offset, size)
	defer func() {
		// Pops one frame only, so frames leaked by fn still show up in
		// the caller's depth check.
		if s.Depth() > depth {
			s.frames = s.frames[:len(s.frames)-1]
		}
	}()
	return fn()
}

// abs converts a local rectangle to absolute coordinates.
func (s *Surface) abs(r image.Rectangle) image.Rectangle {
	return r.Add(s.top().origin)
}

// target returns the buffer restricted to the current clip.
func (s *Surface) target() *image.RGBA {
	return s.img.SubImage(s.top().clip).(*image.RGBA)
}

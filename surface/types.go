// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"

	"github.com/gogpu/compose/internal/filter"
	"github.com/gogpu/compose/internal/shape"
)

// Corners selects which corners of a rounded rectangle are rounded.
type Corners = shape.Corners

// Corner selections.
const (
	TopLeft     = shape.TopLeft
	TopRight    = shape.TopRight
	BottomRight = shape.BottomRight
	BottomLeft  = shape.BottomLeft
	AllCorners  = shape.AllCorners
	NoCorners   = shape.NoCorners
)

// Shadow is a drop shadow: a blurred, offset, colorized silhouette drawn
// before the content that casts it.
type Shadow struct {
	// Offset is the displacement of the shadow from the content.
	Offset image.Point

	// Blur is the Gaussian sigma in pixels. Zero gives a hard shadow.
	Blur float64

	// Color is the shadow color.
	Color color.NRGBA
}

func (s Shadow) filter() filter.DropShadow {
	return filter.DropShadow{Offset: s.Offset, Blur: s.Blur, Color: s.Color}
}

// Direction is the axis of a linear gradient.
type Direction uint8

const (
	// Horizontal interpolates from the left edge to the right edge.
	Horizontal Direction = iota

	// Vertical interpolates from the top edge to the bottom edge.
	Vertical
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Gradient is an axis-aligned two-stop linear gradient.
type Gradient struct {
	From, To  color.NRGBA
	Direction Direction

	// Radius rounds the selected Corners when positive.
	Radius  float64
	Corners Corners
}

// at returns the gradient color at t in [0, 1].
func (g Gradient) at(t float64) color.NRGBA {
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return color.NRGBA{
		R: lerp(g.From.R, g.To.R),
		G: lerp(g.From.G, g.To.G),
		B: lerp(g.From.B, g.To.B),
		A: lerp(g.From.A, g.To.A),
	}
}

// BlendOptions controls BlendImage.
type BlendOptions struct {
	// Size resizes the image before blending. Zero keeps the source size.
	Size image.Point

	// Opacity scales the image alpha. Zero is treated as fully opaque.
	Opacity float64

	// Shadow, when set, is drawn beneath the image.
	Shadow *Shadow
}

// GlassStyle describes a translucent panel that blurs the pixels beneath
// it.
type GlassStyle struct {
	// Blur is the Gaussian sigma applied to the sampled pixels.
	Blur float64

	// Tint is composited over the blurred sample.
	Tint color.NRGBA

	Radius  float64
	Corners Corners

	// Border draws an outline of BorderWidth pixels when BorderWidth > 0.
	Border      color.NRGBA
	BorderWidth float64
}

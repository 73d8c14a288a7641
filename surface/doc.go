// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the drawing surface used by the layout engine.
//
// A Surface is an *image.RGBA plus a stack of nested coordinate frames
// ("regions"). Every primitive is interpreted relative to the topmost
// frame, so a widget draws in its own local coordinates without knowing
// where its parent placed it.
//
// # Region stack
//
// MoveRegion pushes a frame at an offset inside the current one,
// ShrinkRegion pushes a frame inset on both sides, and RestoreRegion pops
// frames. Code that pushes frames must pop the same number before it
// returns; Depth lets callers check this:
//
//	depth := s.Depth()
//	s.MoveRegion(image.Pt(10, 10), image.Pt(80, 20))
//	s.FillRect(s.Bounds(), color.White)
//	_ = s.RestoreRegion(1)
//	// s.Depth() == depth
//
// WithRegion wraps a push and its matching pop around a function.
//
// # Pixel ceiling
//
// New refuses to allocate surfaces larger than the configured pixel
// ceiling (see WithMaxPixels) and returns a *SizeError wrapping
// ErrCanvasTooLarge before any drawing happens.
//
// # Thread Safety
//
// A Surface is owned by a single build and is not safe for concurrent use.
package surface

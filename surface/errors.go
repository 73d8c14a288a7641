// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"strconv"
)

// Sentinel errors for surface package.
var (
	// ErrCanvasTooLarge is returned when the requested surface exceeds
	// the pixel ceiling.
	ErrCanvasTooLarge = errors.New("surface: canvas too large")

	// ErrEmptyCanvas is returned for surfaces with a non-positive side.
	ErrEmptyCanvas = errors.New("surface: canvas has no pixels")

	// ErrStackImbalance is returned when a pop would remove the root frame.
	ErrStackImbalance = errors.New("surface: region stack imbalance")
)

// SizeError describes a rejected surface allocation.
type SizeError struct {
	Width, Height int
	Max           int
	Err           error
}

func (e *SizeError) Error() string {
	s := e.Err.Error() + ": " + strconv.Itoa(e.Width) + "x" + strconv.Itoa(e.Height)
	if e.Max > 0 {
		s += " (max " + strconv.Itoa(e.Max) + " pixels)"
	}
	return s
}

func (e *SizeError) Unwrap() error { return e.Err }

// ImbalanceError reports a RestoreRegion call popping more frames than
// were pushed.
type ImbalanceError struct {
	Depth int // frames above the root
	Pop   int // frames requested
}

func (e *ImbalanceError) Error() string {
	return ErrStackImbalance.Error() + ": pop " + strconv.Itoa(e.Pop) +
		" at depth " + strconv.Itoa(e.Depth)
}

func (e *ImbalanceError) Unwrap() error { return ErrStackImbalance }

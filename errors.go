package compose

import (
	"errors"
	"strconv"

	"github.com/gogpu/compose/asset"
	"github.com/gogpu/compose/surface"
)

// Sentinel errors for compose package.
var (
	// ErrLayoutOverflow is returned when a widget's content exceeds its
	// explicit box and overflow is not allowed.
	ErrLayoutOverflow = errors.New("compose: layout overflow")

	// ErrAssetNotFound is returned when an image or font cannot be
	// resolved. It is the same value as asset.ErrNotFound.
	ErrAssetNotFound = asset.ErrNotFound

	// ErrInvalidConfiguration is returned for contradictory widget or
	// engine parameters.
	ErrInvalidConfiguration = errors.New("compose: invalid configuration")

	// ErrCanvasTooLarge is returned when the root widget needs more pixels
	// than the configured ceiling. It is the same value as
	// surface.ErrCanvasTooLarge.
	ErrCanvasTooLarge = surface.ErrCanvasTooLarge

	// ErrStackImbalance is returned when drawing leaves the region stack
	// or the builder scope unbalanced. It is always fatal for the build.
	ErrStackImbalance = surface.ErrStackImbalance
)

// LayoutError identifies the widget that failed during a build.
type LayoutError struct {
	Path   string // widget path, e.g. "Canvas/VSplit[1]/TextBox#title"
	Err    error
	Detail string
}

func (e *LayoutError) Error() string {
	s := "compose: " + e.Path + ": " + e.Err.Error()
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	return s
}

func (e *LayoutError) Unwrap() error { return e.Err }

// StackImbalanceError reports a widget whose draw left the region stack at
// a different depth than it found it.
type StackImbalanceError struct {
	Path   string
	Before int
	After  int
}

func (e *StackImbalanceError) Error() string {
	return "compose: " + e.Path + ": region stack depth " +
		strconv.Itoa(e.Before) + " before draw, " + strconv.Itoa(e.After) + " after"
}

func (e *StackImbalanceError) Unwrap() error { return ErrStackImbalance }

// ScopeError reports a Builder.Close call whose container is not the
// innermost open one.
type ScopeError struct {
	Want string // path of the container being closed
	Got  string // path of the innermost open container, empty if none
}

func (e *ScopeError) Error() string {
	got := e.Got
	if got == "" {
		got = "no open container"
	}
	return "compose: close " + e.Want + ": innermost scope is " + got
}

func (e *ScopeError) Unwrap() error { return ErrStackImbalance }

func invalidf(w Widget, detail string) error {
	return &LayoutError{Path: PathOf(w), Err: ErrInvalidConfiguration, Detail: detail}
}

package text

import (
	"errors"
	"strconv"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned for non-positive face sizes.
	ErrInvalidSize = errors.New("text: face size must be positive")
)

// FontError reports a font that could not be resolved.
type FontError struct {
	Name string
	Size float64
	Err  error
}

func (e *FontError) Error() string {
	return "text: font " + strconv.Quote(e.Name) + " at " +
		strconv.FormatFloat(e.Size, 'g', -1, 64) + "px: " + e.Err.Error()
}

func (e *FontError) Unwrap() error { return e.Err }

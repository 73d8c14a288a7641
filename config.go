package compose

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/compose/surface"
)

// Config holds the engine parameters supplied by the deployment. The
// engine only reads it; a Config is fixed for the lifetime of an Engine.
type Config struct {
	// MaxPixels is the canvas pixel ceiling. Zero disables the ceiling.
	MaxPixels int

	// Padding and Margin are applied to every widget created through a
	// Builder before its own setters run.
	Padding int
	Margin  int

	// Separator is the default gap between Split items and Grid cells.
	Separator int

	// Supersample is the oversampling factor for antialiased masks.
	Supersample int

	// Shadow is the default text and image drop shadow.
	Shadow surface.Shadow

	// AssetDir is the base directory for assets referenced without one.
	AssetDir string
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		MaxPixels:   surface.DefaultMaxPixels,
		Separator:   0,
		Supersample: 4,
		Shadow: surface.Shadow{
			Offset: image.Pt(2, 2),
			Blur:   2,
			Color:  color.NRGBA{A: 160},
		},
	}
}

// Validate reports contradictory or out-of-range values.
func (c Config) Validate() error {
	switch {
	case c.MaxPixels < 0:
		return fmt.Errorf("%w: max pixels %d is negative", ErrInvalidConfiguration, c.MaxPixels)
	case c.Padding < 0, c.Margin < 0, c.Separator < 0:
		return fmt.Errorf("%w: padding, margin and separator must not be negative", ErrInvalidConfiguration)
	case c.Supersample < 1 || c.Supersample > 16:
		return fmt.Errorf("%w: supersample %d outside [1, 16]", ErrInvalidConfiguration, c.Supersample)
	case c.Shadow.Blur < 0:
		return fmt.Errorf("%w: shadow blur %v is negative", ErrInvalidConfiguration, c.Shadow.Blur)
	}
	return nil
}

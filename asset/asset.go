// Package asset resolves images and raw files (fonts, offset tables) by
// base directory and relative path.
//
// The engine only depends on the Resolver interface; Store is the default
// fs.FS-backed implementation and Static serves in-memory images.
package asset

import (
	"context"
	"errors"
	"image"
	"path"
)

// ErrNotFound is returned when an asset does not exist.
var ErrNotFound = errors.New("asset: not found")

// NotFoundError identifies the missing asset.
type NotFoundError struct {
	Dir  string
	Path string
	Err  error // underlying cause, may be nil
}

func (e *NotFoundError) Error() string {
	return "asset: not found: " + Join(e.Dir, e.Path)
}

// Is reports ErrNotFound so callers can use errors.Is.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Unwrap returns the underlying cause.
func (e *NotFoundError) Unwrap() error { return e.Err }

// Resolver maps (base directory, relative path) to a decoded image.
// Implementations must be safe for concurrent use.
type Resolver interface {
	Image(ctx context.Context, dir, name string) (image.Image, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, dir, name string) (image.Image, error)

// Image implements Resolver.
func (f ResolverFunc) Image(ctx context.Context, dir, name string) (image.Image, error) {
	return f(ctx, dir, name)
}

// Join joins a base directory and a relative path using forward slashes.
func Join(dir, name string) string {
	if dir == "" {
		return path.Clean(name)
	}
	return path.Join(dir, name)
}

package asset

import (
	"context"
	"image"
	"sync"
)

// Static is an in-memory Resolver keyed by joined path. It is used for
// pre-rendered assets and in tests.
type Static struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewStatic creates a Static resolver from a map of path → image.
func NewStatic(images map[string]image.Image) *Static {
	s := &Static{images: make(map[string]image.Image, len(images))}
	for k, v := range images {
		s.images[Join("", k)] = v
	}
	return s
}

// Put adds or replaces an image.
func (s *Static) Put(p string, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[Join("", p)] = img
}

// Image implements Resolver.
func (s *Static) Image(ctx context.Context, dir, name string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	img, ok := s.images[Join(dir, name)]
	s.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{Dir: dir, Path: name}
	}
	return img, nil
}

package asset

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/compose/cache"
)

// Store reads assets from an fs.FS and caches decoded images.
//
// Store is safe for concurrent use. Cached images are shared and must not
// be modified by callers.
type Store struct {
	fsys   fs.FS
	images *cache.Cache[string, image.Image]
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	cacheCapacity int
}

// WithCacheCapacity sets the per-shard capacity of the decoded image cache.
func WithCacheCapacity(n int) StoreOption {
	return func(o *storeOptions) {
		o.cacheCapacity = n
	}
}

// NewStore creates a Store over fsys.
func NewStore(fsys fs.FS, opts ...StoreOption) *Store {
	o := storeOptions{cacheCapacity: cache.DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{
		fsys:   fsys,
		images: cache.NewString[image.Image](o.cacheCapacity),
	}
}

// DirStore creates a Store rooted at a directory on disk.
func DirStore(root string, opts ...StoreOption) *Store {
	return NewStore(os.DirFS(root), opts...)
}

// ReadFile returns the raw bytes of dir/name.
func (s *Store) ReadFile(dir, name string) ([]byte, error) {
	p, err := s.resolve(dir, name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		return nil, s.wrap(dir, name, err)
	}
	return data, nil
}

// Image implements Resolver. Decoded images are cached by path.
func (s *Store) Image(ctx context.Context, dir, name string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.resolve(dir, name)
	if err != nil {
		return nil, err
	}
	return s.images.GetOrLoad(p, func() (image.Image, error) {
		f, err := s.fsys.Open(p)
		if err != nil {
			return nil, s.wrap(dir, name, err)
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("asset: decode %s: %w", p, err)
		}
		return img, nil
	})
}

// CacheStats reports the decoded image cache counters.
func (s *Store) CacheStats() cache.Stats {
	return s.images.Stats()
}

func (s *Store) resolve(dir, name string) (string, error) {
	p := Join(dir, name)
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("asset: invalid path %q: %w", p, fs.ErrInvalid)
	}
	return p, nil
}

func (s *Store) wrap(dir, name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &NotFoundError{Dir: dir, Path: name, Err: err}
	}
	return fmt.Errorf("asset: read %s: %w", Join(dir, name), err)
}

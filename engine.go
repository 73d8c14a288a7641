package compose

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/compose/asset"
	"github.com/gogpu/compose/cache"
	"github.com/gogpu/compose/internal/parallel"
	"github.com/gogpu/compose/surface"
	"github.com/gogpu/compose/text"
)

// Engine renders widget trees to bitmaps. It holds the configuration and
// the collaborators shared by all builds; each build gets its own Builder,
// layout pass and Surface.
//
// Engine is safe for concurrent use.
type Engine struct {
	cfg    Config
	assets asset.Resolver
	fonts  text.Resolver
	pool   *parallel.Pool
	memo   *cache.Cache[string, *image.RGBA]
}

// New creates an engine. The configuration is validated once here.
func New(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	if o.assets == nil {
		o.assets = asset.NewStatic(nil)
	}
	if o.fonts == nil {
		o.fonts = text.NewLibrary()
	}
	return &Engine{
		cfg:    o.config,
		assets: o.assets,
		fonts:  o.fonts,
		pool:   parallel.New(o.workers),
		memo:   o.memo,
	}, nil
}

// Close stops the prefetch workers. Renders after Close fail when they
// need assets.
func (e *Engine) Close() {
	e.pool.Close()
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// NewBuilder returns a fresh construction scope seeded with the engine's
// default padding, margin and separator.
func (e *Engine) NewBuilder() *Builder {
	return newBuilder(e.cfg)
}

// Render runs one build: it resolves the tree's assets concurrently,
// measures the tree, allocates a surface of the root's size and draws the
// tree depth-first. The pixel ceiling is checked before anything is drawn.
func (e *Engine) Render(ctx context.Context, root Widget) (*image.RGBA, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root widget", ErrInvalidConfiguration)
	}

	images, err := e.prefetch(ctx, root)
	if err != nil {
		return nil, err
	}

	l := newLayout(e.cfg, e.fonts, images)
	size, err := l.outer(root)
	if err != nil {
		return nil, err
	}

	s, err := surface.New(size.X, size.Y, surface.WithMaxPixels(e.cfg.MaxPixels))
	if err != nil {
		return nil, fmt.Errorf("compose: %s: %w", PathOf(root), err)
	}
	Logger().Debug("compose: render",
		"root", PathOf(root), "width", size.X, "height", size.Y, "assets", len(images))

	if err := newDrawer(l, s).draw(root, image.Point{}); err != nil {
		return nil, err
	}
	return s.Image(), nil
}

// BuildFunc constructs a widget tree with the given builder and returns
// its root.
type BuildFunc func(b *Builder) (Widget, error)

// RenderKey builds and renders a tree, memoizing the bitmap under key when
// the engine has a render cache (see WithRenderCache). The engine never
// invalidates entries; callers choose keys that change with the content.
// Cached bitmaps are shared and must not be modified.
func (e *Engine) RenderKey(ctx context.Context, key string, build BuildFunc) (*image.RGBA, error) {
	render := func() (*image.RGBA, error) {
		b := e.NewBuilder()
		root, err := build(b)
		if err != nil {
			return nil, err
		}
		if n := b.Depth(); n != 0 {
			return nil, fmt.Errorf("%w: %d containers left open by build", ErrStackImbalance, n)
		}
		return e.Render(ctx, root)
	}
	if e.memo == nil || key == "" {
		return render()
	}
	if img, ok := e.memo.Get(key); ok {
		Logger().Debug("compose: render cache hit", "key", key)
		return img, nil
	}
	img, err := render()
	if err != nil {
		return nil, err
	}
	e.memo.Set(key, img)
	return img, nil
}

// RenderCacheStats reports render cache usage. It is zero without a cache.
func (e *Engine) RenderCacheStats() cache.Stats {
	if e.memo == nil {
		return cache.Stats{}
	}
	return e.memo.Stats()
}

// prefetch resolves every asset used by the tree on the worker pool.
func (e *Engine) prefetch(ctx context.Context, root Widget) (map[Asset]image.Image, error) {
	owners := make(map[Asset]Widget)
	var order []Asset
	collect := func(w Widget, v any) {
		u, ok := v.(AssetUser)
		if !ok {
			return
		}
		for _, a := range u.Assets() {
			a = e.cfg.withDefaultDir(a)
			if _, seen := owners[a]; !seen {
				owners[a] = w
				order = append(order, a)
			}
		}
	}
	walk(root, func(w Widget) {
		collect(w, w)
		collect(w, w.base().background)
	})

	images := make(map[Asset]image.Image, len(order))
	if len(order) == 0 {
		return images, nil
	}

	var mu sync.Mutex
	jobs := make([]parallel.Job, len(order))
	for i, a := range order {
		jobs[i] = func(ctx context.Context) error {
			img, err := e.assets.Image(ctx, a.Dir, a.Path)
			if err != nil {
				Logger().Warn("compose: asset fetch failed",
					"asset", a.String(), "widget", PathOf(owners[a]), "err", err)
				return &LayoutError{Path: PathOf(owners[a]), Err: err, Detail: "asset " + a.String()}
			}
			mu.Lock()
			images[a] = img
			mu.Unlock()
			return nil
		}
	}
	Logger().Debug("compose: prefetching assets", "count", len(jobs))
	if err := e.pool.Run(ctx, jobs); err != nil {
		return nil, err
	}
	return images, nil
}

// walk visits w and its descendants depth-first.
func walk(w Widget, fn func(Widget)) {
	fn(w)
	if c, ok := w.(Container); ok {
		for _, child := range c.Children() {
			walk(child, fn)
		}
	}
}

package compose

import (
	"image"

	"github.com/gogpu/compose/asset"
	"github.com/gogpu/compose/cache"
	"github.com/gogpu/compose/text"
)

// Option configures an Engine during creation.
//
// Example:
//
//	e, err := compose.New(
//	    compose.WithAssets(asset.DirStore("assets")),
//	    compose.WithRenderCache(128),
//	)
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	config  Config
	assets  asset.Resolver
	fonts   text.Resolver
	workers int
	memo    *cache.Cache[string, *image.RGBA]
}

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		config: DefaultConfig(),
		assets: nil, // Will be set to an empty asset.Static if nil
		fonts:  nil, // Will be set to text.NewLibrary() if nil
	}
}

// WithConfig replaces the default configuration.
func WithConfig(c Config) Option {
	return func(o *options) {
		o.config = c
	}
}

// WithAssets sets the asset-resolution collaborator used for image
// widgets and image backgrounds.
func WithAssets(r asset.Resolver) Option {
	return func(o *options) {
		o.assets = r
	}
}

// WithFonts sets the font-resolution collaborator.
func WithFonts(r text.Resolver) Option {
	return func(o *options) {
		o.fonts = r
	}
}

// WithWorkers sets the number of asset prefetch workers.
// If n <= 0, GOMAXPROCS is used.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithRenderCache enables RenderKey memoization of up to capacity bitmaps.
func WithRenderCache(capacity int) Option {
	return func(o *options) {
		o.memo = cache.NewString[*image.RGBA](capacity)
	}
}

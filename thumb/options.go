package thumb

import (
	"image/color"

	"github.com/gogpu/compose/text"
)

// Paths are the asset path patterns of the overlays. Patterns with a verb
// are expanded with fmt.Sprintf.
type Paths struct {
	Frame           string // %s: rarity token
	Attribute       string // %s: attribute name
	Rank            string // %d: training rank
	Star            string
	AnniversaryStar string
	Character       string // %s: character name, for PairBadge
}

// DefaultPaths returns the asset layout used when none is configured.
func DefaultPaths() Paths {
	return Paths{
		Frame:           "frame/rarity_%s.png",
		Attribute:       "attribute/%s.png",
		Rank:            "rank/%d.png",
		Star:            "star/normal.png",
		AnniversaryStar: "star/anniversary.png",
		Character:       "character/%s.png",
	}
}

// Option configures a Compositor.
type Option func(*options)

type options struct {
	size        int
	radius      float64
	supersample int
	dir         string
	paths       Paths
	face        text.Face
	band        color.NRGBA
	offsets     *OffsetTable
	workers     int
}

func defaultOptions() options {
	return options{
		size:        156,
		radius:      12,
		supersample: 4,
		paths:       DefaultPaths(),
		band:        color.NRGBA{A: 150},
		workers:     4,
	}
}

// WithSize sets the thumbnail side in pixels.
func WithSize(px int) Option {
	return func(o *options) {
		o.size = px
	}
}

// WithRadius sets the corner radius in pixels.
func WithRadius(r float64) Option {
	return func(o *options) {
		o.radius = r
	}
}

// WithSupersample sets the oversampling factor of the corner mask.
func WithSupersample(n int) Option {
	return func(o *options) {
		o.supersample = n
	}
}

// WithAssetDir sets the base directory passed to the resolver.
func WithAssetDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithPaths replaces the overlay path patterns.
func WithPaths(p Paths) Option {
	return func(o *options) {
		o.paths = p
	}
}

// WithCaptionFace sets the face of the caption text. Without one the
// caption band is drawn without text.
func WithCaptionFace(f text.Face) Option {
	return func(o *options) {
		o.face = f
	}
}

// WithBandColor sets the color of the caption band.
func WithBandColor(c color.NRGBA) Option {
	return func(o *options) {
		o.band = c
	}
}

// WithOffsets sets the per-character offsets used by PairBadge.
func WithOffsets(t *OffsetTable) Option {
	return func(o *options) {
		o.offsets = t
	}
}

// WithWorkers sets the number of concurrent asset fetches.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

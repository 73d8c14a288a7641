package thumb

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/asset"
	"github.com/gogpu/compose/internal/parallel"
	"github.com/gogpu/compose/surface"
	"github.com/gogpu/compose/text"
)

// Compositor renders card thumbnails. It is safe for concurrent use.
type Compositor struct {
	assets asset.Resolver
	opts   options
	pool   *parallel.Pool
}

// New creates a compositor resolving overlay images through assets.
func New(assets asset.Resolver, opts ...Option) (*Compositor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case assets == nil:
		return nil, fmt.Errorf("%w: nil asset resolver", ErrInvalidOption)
	case o.size <= 0:
		return nil, fmt.Errorf("%w: size %d", ErrInvalidOption, o.size)
	case o.radius < 0 || o.radius > float64(o.size)/2:
		return nil, fmt.Errorf("%w: radius %v", ErrInvalidOption, o.radius)
	case o.supersample < 1 || o.supersample > 16:
		return nil, fmt.Errorf("%w: supersample %d", ErrInvalidOption, o.supersample)
	}
	return &Compositor{assets: assets, opts: o, pool: parallel.New(o.workers)}, nil
}

// Close stops the fetch workers.
func (c *Compositor) Close() {
	c.pool.Close()
}

// Size returns the thumbnail side in pixels.
func (c *Compositor) Size() int {
	return c.opts.size
}

// Compose renders card.
func (c *Compositor) Compose(ctx context.Context, card Card) (*image.NRGBA, error) {
	layers, err := c.Plan(card)
	if err != nil {
		return nil, err
	}
	images, err := c.fetch(ctx, layers)
	if err != nil {
		return nil, err
	}

	s, err := surface.New(c.opts.size, c.opts.size)
	if err != nil {
		return nil, err
	}
	for _, l := range layers {
		if l.Kind == LayerCaption {
			c.caption(s, l)
			continue
		}
		s.DrawImage(place(images[l.Asset], l.Rect.Size(), l.Placement), l.Rect)
	}

	out := c.finish(s.Image())
	compose.Logger().Debug("thumb: composed",
		"base", card.Base, "layers", len(layers), "size", c.opts.size)
	return out, nil
}

// finish cleans the fringe of the flattened image and rounds its corners.
func (c *Compositor) finish(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	if n := CleanEdges(out); n > 0 {
		compose.Logger().Debug("thumb: cleared edge pixels", "count", n)
	}
	RoundCorners(out, c.opts.radius, c.opts.supersample)
	return out
}

// caption draws the translucent band and its centered text.
func (c *Compositor) caption(s *surface.Surface, l Layer) {
	s.FillRect(l.Rect, c.opts.band)
	face := c.opts.face
	if face == nil || l.Text == "" {
		return
	}
	pad := l.Rect.Dy() / 4
	str := text.FitWidthSuffix(face, l.Text, l.Rect.Dx()-2*pad, "...")
	x := l.Rect.Min.X + (l.Rect.Dx()-face.Advance(str))/2
	y := l.Rect.Min.Y + (l.Rect.Dy()-face.Metrics().Height)/2
	s.DrawText(face, image.Pt(x, y), str, color.White, nil)
}

// fetch resolves every distinct layer asset concurrently.
func (c *Compositor) fetch(ctx context.Context, layers []Layer) (map[string]image.Image, error) {
	images := make(map[string]image.Image)
	var (
		mu   sync.Mutex
		jobs []parallel.Job
	)
	seen := make(map[string]bool)
	for _, l := range layers {
		if l.Asset == "" || seen[l.Asset] {
			continue
		}
		seen[l.Asset] = true
		jobs = append(jobs, func(ctx context.Context) error {
			img, err := c.assets.Image(ctx, c.opts.dir, l.Asset)
			if err != nil {
				compose.Logger().Warn("thumb: asset fetch failed", "layer", l.Kind.String(), "asset", l.Asset, "err", err)
				return &LayerError{Kind: l.Kind, Asset: l.Asset, Err: err}
			}
			mu.Lock()
			images[l.Asset] = img
			mu.Unlock()
			return nil
		})
	}
	if err := c.pool.Run(ctx, jobs); err != nil {
		return nil, err
	}
	return images, nil
}

// place fits img into a size-sized layer.
func place(img image.Image, size image.Point, p Placement) image.Image {
	switch p {
	case Stretch:
		return img
	case Contain:
		b := img.Bounds()
		if b.Empty() {
			return img
		}
		k := math.Min(float64(size.X)/float64(b.Dx()), float64(size.Y)/float64(b.Dy()))
		w := max(int(math.Round(float64(b.Dx())*k)), 1)
		h := max(int(math.Round(float64(b.Dy())*k)), 1)
		fitted := imaging.Resize(img, w, h, imaging.Lanczos)
		return imaging.PasteCenter(imaging.New(size.X, size.Y, color.Transparent), fitted)
	default:
		return imaging.Fill(img, size.X, size.Y, imaging.Center, imaging.Lanczos)
	}
}

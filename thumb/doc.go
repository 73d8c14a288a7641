// Package thumb composites card thumbnails: a base image with a fixed
// stack of overlays (caption band, rarity frame, training-rank badge,
// attribute icon and rarity stars), finished with an antialiased rounded
// mask.
//
// Compositing is split in two steps. Plan is pure: it turns a Card into
// the ordered list of layers with their target rectangles, which makes the
// geometry testable without any assets. Compose resolves the layers'
// assets through an asset.Resolver, paints them back to front on a
// surface.Surface, removes dark low-alpha fringes with CleanEdges and
// applies the rounded mask last.
//
// Basic usage:
//
//	c, err := thumb.New(store, thumb.WithCaptionFace(face))
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	img, err := c.Compose(ctx, thumb.Card{
//		Base:   "cards/0412.png",
//		Rarity: "4",
//		Owned:  true,
//		Caption: "Lv. 60",
//	})
//
// Paired-character badges place two character icons on one badge. Their
// hand-tuned per-character displacements come from an OffsetTable loaded
// from TOML; nothing is derived from the icons themselves.
package thumb

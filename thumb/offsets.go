package thumb

import (
	"context"
	"fmt"
	"image"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/surface"
)

// Offset is a hand-tuned displacement in pixels of the thumbnail size the
// table was made for.
type Offset struct {
	X int `toml:"x"`
	Y int `toml:"y"`
}

// OffsetTable holds per-character displacements for paired badges. The
// values are looked up, never computed:
//
//	[characters.kasumi]
//	x = 3
//	y = -2
type OffsetTable struct {
	Characters map[string]Offset `toml:"characters"`
}

// ParseOffsetTable decodes a TOML offset table. Unknown keys are rejected
// so misspelled fields do not silently become zero.
func ParseOffsetTable(r io.Reader) (*OffsetTable, error) {
	var t OffsetTable
	md, err := toml.NewDecoder(r).Decode(&t)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOffsetTable, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidOffsetTable, strings.Join(keys, ", "))
	}
	return &t, nil
}

// Lookup returns the offset of a character.
func (t *OffsetTable) Lookup(name string) (image.Point, bool) {
	if t == nil {
		return image.Point{}, false
	}
	o, ok := t.Characters[name]
	return image.Pt(o.X, o.Y), ok
}

// pairScale is the icon side relative to the badge side.
const pairScale = 0.62

// PairBadge composes the icons of characters a and b on one badge: a at
// the bottom-left, b above it at the top-right, each displaced by its
// table offset. Characters missing from the table are not displaced.
func (c *Compositor) PairBadge(ctx context.Context, a, b string) (*image.NRGBA, error) {
	if a == "" || b == "" {
		return nil, fmt.Errorf("%w: paired badge needs two characters", ErrInvalidCard)
	}
	s := c.opts.size
	side := scale(s, pairScale)
	layers := []Layer{
		{Kind: LayerBase, Asset: fmt.Sprintf(c.opts.paths.Character, b), Rect: image.Rect(s-side, 0, s, side), Placement: Contain},
		{Kind: LayerBase, Asset: fmt.Sprintf(c.opts.paths.Character, a), Rect: image.Rect(0, s-side, side, s), Placement: Contain},
	}
	for i, name := range []string{b, a} {
		off, ok := c.opts.offsets.Lookup(name)
		if !ok {
			compose.Logger().Debug("thumb: no offset for character", "name", name)
		}
		layers[i].Rect = layers[i].Rect.Add(off)
	}

	images, err := c.fetch(ctx, layers)
	if err != nil {
		return nil, err
	}
	sf, err := surface.New(s, s)
	if err != nil {
		return nil, err
	}
	for _, l := range layers {
		sf.DrawImage(place(images[l.Asset], l.Rect.Size(), l.Placement), l.Rect)
	}
	return c.finish(sf.Image()), nil
}

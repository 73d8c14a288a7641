package thumb

import (
	"fmt"
	"image"
	"math"
	"strconv"
)

// LayerKind identifies an overlay. Kinds are declared in paint order.
type LayerKind uint8

const (
	LayerBase LayerKind = iota
	LayerCaption
	LayerFrame
	LayerRank
	LayerAttribute
	LayerStar
)

// String returns the string representation of the layer kind.
func (k LayerKind) String() string {
	switch k {
	case LayerBase:
		return "base"
	case LayerCaption:
		return "caption"
	case LayerFrame:
		return "frame"
	case LayerRank:
		return "rank"
	case LayerAttribute:
		return "attribute"
	case LayerStar:
		return "star"
	default:
		return "LayerKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Placement selects how a layer image is fitted into its rectangle.
type Placement uint8

const (
	// Cover scales the image to cover the rectangle and crops the excess.
	Cover Placement = iota

	// Stretch resizes the image to the rectangle.
	Stretch

	// Contain scales the image to fit inside the rectangle, centered.
	Contain
)

// Layer is one planned paint operation.
type Layer struct {
	Kind      LayerKind
	Asset     string // empty for the caption band
	Rect      image.Rectangle
	Placement Placement
	Text      string
}

// Overlay proportions relative to the thumbnail side.
const (
	rankScale       = 0.35
	attributeWScale = 0.22
	attributeHScale = 0.25
	starScale       = 0.16
	bandScale       = 1.0 / 6
)

// Plan returns the layers of card in paint order. It does not touch any
// asset.
func (c *Compositor) Plan(card Card) ([]Layer, error) {
	if card.Base == "" {
		return nil, fmt.Errorf("%w: missing base image", ErrInvalidCard)
	}
	if card.TrainingRank < 0 {
		return nil, fmt.Errorf("%w: training rank %d", ErrInvalidCard, card.TrainingRank)
	}
	var rarity Rarity
	if card.Rarity != "" {
		r, err := ParseRarity(card.Rarity)
		if err != nil {
			return nil, err
		}
		rarity = r
	}

	s := c.opts.size
	p := c.opts.paths
	full := image.Rect(0, 0, s, s)
	layers := []Layer{{Kind: LayerBase, Asset: card.Base, Rect: full, Placement: Cover}}

	bottom := s
	if card.Owned {
		band := scale(s, bandScale)
		layers = append(layers, Layer{
			Kind: LayerCaption,
			Rect: image.Rect(0, s-band, s, s),
			Text: card.Caption,
		})
		bottom -= band
	}

	if rarity.Stars > 0 {
		layers = append(layers, Layer{
			Kind:      LayerFrame,
			Asset:     fmt.Sprintf(p.Frame, rarity.Token()),
			Rect:      full,
			Placement: Stretch,
		})
	}

	right := s
	if card.TrainingRank > 0 {
		side := scale(s, rankScale)
		layers = append(layers, Layer{
			Kind:      LayerRank,
			Asset:     fmt.Sprintf(p.Rank, card.TrainingRank),
			Rect:      image.Rect(s-side, s-side, s, s),
			Placement: Contain,
		})
		right -= side
	}

	if card.Attribute != "" {
		layers = append(layers, Layer{
			Kind:      LayerAttribute,
			Asset:     fmt.Sprintf(p.Attribute, card.Attribute),
			Rect:      image.Rect(0, 0, scale(s, attributeWScale), scale(s, attributeHScale)),
			Placement: Contain,
		})
	}

	if rarity.Stars > 0 {
		star := p.Star
		if rarity.Anniversary {
			star = p.AnniversaryStar
		}
		layers = append(layers, starRow(star, rarity.Stars, scale(s, starScale), right, bottom)...)
	}
	return layers, nil
}

// starRow lays n square icons left to right from the bottom-left corner.
// The icons shrink when they would not fit in width pixels.
func starRow(asset string, n, side, width, bottom int) []Layer {
	if n*side > width {
		side = width / n
	}
	out := make([]Layer, n)
	for i := range out {
		out[i] = Layer{
			Kind:      LayerStar,
			Asset:     asset,
			Rect:      image.Rect(i*side, bottom-side, (i+1)*side, bottom),
			Placement: Contain,
		}
	}
	return out
}

func scale(side int, f float64) int {
	return int(math.Round(float64(side) * f))
}

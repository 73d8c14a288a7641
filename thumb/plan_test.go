package thumb

import (
	"errors"
	"image"
	"testing"
)

func TestParseRarity(t *testing.T) {
	tests := []struct {
		in   string
		want Rarity
	}{
		{"1", Rarity{Stars: 1}},
		{"4", Rarity{Stars: 4}},
		{"rarity_6", Rarity{Stars: 6}},
		{" Anniversary ", Rarity{Stars: 1, Anniversary: true}},
	}
	for _, tt := range tests {
		got, err := ParseRarity(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseRarity(%q) = %+v, %v; want %+v", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"0", "7", "legendary", "-1", ""} {
		if _, err := ParseRarity(bad); !errors.Is(err, ErrInvalidRarity) {
			t.Errorf("ParseRarity(%q) error = %v, want ErrInvalidRarity", bad, err)
		}
	}
}

func TestPlanOrder(t *testing.T) {
	c := newCompositor(t)
	layers, err := c.Plan(Card{
		Base:         "cards/base.png",
		Rarity:       "4",
		Attribute:    "cool",
		TrainingRank: 2,
		Owned:        true,
		Caption:      "Lv. 60",
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	want := []LayerKind{LayerBase, LayerCaption, LayerFrame, LayerRank, LayerAttribute, LayerStar, LayerStar, LayerStar, LayerStar}
	if len(layers) != len(want) {
		t.Fatalf("Plan() returned %d layers, want %d", len(layers), len(want))
	}
	for i, l := range layers {
		if l.Kind != want[i] {
			t.Errorf("layer %d = %v, want %v", i, l.Kind, want[i])
		}
	}

	// Proportions of the default 156 px thumbnail.
	if r := layers[3].Rect; r != image.Rect(101, 101, 156, 156) {
		t.Errorf("rank rect = %v", r)
	}
	if r := layers[4].Rect; r != image.Rect(0, 0, 34, 39) {
		t.Errorf("attribute rect = %v", r)
	}
	if r := layers[1].Rect; r != image.Rect(0, 130, 156, 156) {
		t.Errorf("caption rect = %v", r)
	}
	if layers[2].Asset != "frame/rarity_4.png" || layers[3].Asset != "rank/2.png" {
		t.Errorf("assets = %q, %q", layers[2].Asset, layers[3].Asset)
	}
}

func TestPlanStars(t *testing.T) {
	c := newCompositor(t)
	layers, err := c.Plan(Card{Base: "cards/base.png", Rarity: "4"})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	var stars []image.Rectangle
	for _, l := range layers {
		if l.Kind == LayerStar {
			stars = append(stars, l.Rect)
		}
	}
	if len(stars) != 4 {
		t.Fatalf("got %d stars, want 4", len(stars))
	}
	if stars[0].Min.X != 0 {
		t.Errorf("first star at x=%d, want left-aligned", stars[0].Min.X)
	}
	for i, r := range stars {
		if r.Max.Y != c.Size() {
			t.Errorf("star %d bottom = %d, want %d", i, r.Max.Y, c.Size())
		}
		if r.Min.Y < c.Size()/2 {
			t.Errorf("star %d starts at y=%d, want the bottom half", i, r.Min.Y)
		}
		for j := range i {
			if r.Overlaps(stars[j]) {
				t.Errorf("stars %d and %d overlap", j, i)
			}
		}
		if i > 0 && r.Min.X != stars[i-1].Max.X {
			t.Errorf("star %d starts at %d, want %d", i, r.Min.X, stars[i-1].Max.X)
		}
	}
}

func TestPlanAnniversary(t *testing.T) {
	c := newCompositor(t)
	layers, err := c.Plan(Card{Base: "cards/base.png", Rarity: "anniversary"})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	stars := 0
	for _, l := range layers {
		switch l.Kind {
		case LayerStar:
			stars++
			if l.Asset != "star/anniversary.png" {
				t.Errorf("star asset = %q", l.Asset)
			}
		case LayerFrame:
			if l.Asset != "frame/rarity_anniversary.png" {
				t.Errorf("frame asset = %q", l.Asset)
			}
		}
	}
	if stars != 1 {
		t.Errorf("got %d stars, want 1", stars)
	}
}

func TestPlanStarsShrinkBesideRank(t *testing.T) {
	c := newCompositor(t)
	layers, err := c.Plan(Card{Base: "cards/base.png", Rarity: "6", TrainingRank: 2, Owned: true})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	var rank image.Rectangle
	var last image.Rectangle
	for _, l := range layers {
		switch l.Kind {
		case LayerRank:
			rank = l.Rect
		case LayerStar:
			last = l.Rect
			if l.Rect.Max.Y != 130 {
				t.Errorf("star bottom = %d, want above the caption band", l.Rect.Max.Y)
			}
		}
	}
	if last.Max.X > rank.Min.X {
		t.Errorf("last star ends at %d, rank starts at %d", last.Max.X, rank.Min.X)
	}
}

func TestPlanErrors(t *testing.T) {
	c := newCompositor(t)
	tests := []struct {
		name string
		card Card
		want error
	}{
		{"no base", Card{Rarity: "3"}, ErrInvalidCard},
		{"negative rank", Card{Base: "b.png", TrainingRank: -1}, ErrInvalidCard},
		{"bad rarity", Card{Base: "b.png", Rarity: "9"}, ErrInvalidRarity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Plan(tt.card); !errors.Is(err, tt.want) {
				t.Errorf("Plan() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPlanBaseOnly(t *testing.T) {
	c := newCompositor(t, WithSize(64))
	layers, err := c.Plan(Card{Base: "cards/base.png"})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(layers) != 1 || layers[0].Rect != image.Rect(0, 0, 64, 64) {
		t.Errorf("Plan() = %+v", layers)
	}
}

package thumb

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxStars is the highest star count a rarity token may carry.
const MaxStars = 6

// Card describes one thumbnail.
type Card struct {
	// Base is the asset path of the base image. Required.
	Base string

	// Rarity is a star count ("1" to "6", optionally prefixed with
	// "rarity_") or "anniversary". Empty draws neither frame nor stars.
	Rarity string

	// Attribute names the attribute icon. Empty draws none.
	Attribute string

	// TrainingRank selects the rank badge. Zero draws none.
	TrainingRank int

	// Owned cards get a caption band carrying Caption.
	Owned   bool
	Caption string
}

// Rarity is a parsed rarity tier.
type Rarity struct {
	Stars       int
	Anniversary bool
}

// ParseRarity parses a rarity token.
func ParseRarity(s string) (Rarity, error) {
	tok := strings.ToLower(strings.TrimSpace(s))
	if tok == "anniversary" {
		return Rarity{Stars: 1, Anniversary: true}, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(tok, "rarity_"))
	if err != nil || n < 1 || n > MaxStars {
		return Rarity{}, fmt.Errorf("%w: %q", ErrInvalidRarity, s)
	}
	return Rarity{Stars: n}, nil
}

// Token returns the name used in asset paths: the star count or
// "anniversary".
func (r Rarity) Token() string {
	if r.Anniversary {
		return "anniversary"
	}
	return strconv.Itoa(r.Stars)
}

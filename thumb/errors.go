package thumb

import "errors"

// Sentinel errors for thumb package.
var (
	// ErrInvalidCard is returned when a card lacks its base image or has
	// an out-of-range field.
	ErrInvalidCard = errors.New("thumb: invalid card")

	// ErrInvalidRarity is returned for rarity tokens that are neither a
	// star count nor the anniversary tier.
	ErrInvalidRarity = errors.New("thumb: invalid rarity")

	// ErrInvalidOption is returned by New for out-of-range options.
	ErrInvalidOption = errors.New("thumb: invalid option")

	// ErrInvalidOffsetTable is returned when an offset table cannot be
	// decoded or carries unknown keys.
	ErrInvalidOffsetTable = errors.New("thumb: invalid offset table")
)

// LayerError identifies the layer whose asset failed to resolve.
type LayerError struct {
	Kind  LayerKind
	Asset string
	Err   error
}

func (e *LayerError) Error() string {
	return "thumb: " + e.Kind.String() + " layer " + e.Asset + ": " + e.Err.Error()
}

func (e *LayerError) Unwrap() error { return e.Err }

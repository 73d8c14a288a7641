package text

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontSource represents a loaded font file. One FontSource creates faces
// at any number of sizes.
//
// FontSource is safe for concurrent use.
type FontSource struct {
	data []byte
	font *opentype.Font
	name string

	shaping bool

	// go-text state, parsed lazily on first shaped measurement.
	gotextOnce sync.Once
	gotextFont *gotext.Font
	gotextErr  error
	shapers    sync.Pool
}

// SourceOption configures a FontSource.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	shaping bool
}

// WithShaping selects HarfBuzz shaping (go-text/typesetting) for width
// measurement of faces created from the source.
func WithShaping(enabled bool) SourceOption {
	return func(c *sourceConfig) {
		c.shaping = enabled
	}
}

// NewFontSource parses font data (TTF or OTF). The data slice is copied.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	var cfg sourceConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	s := &FontSource{
		data:    bytes.Clone(data),
		font:    f,
		shaping: cfg.shaping,
	}
	s.shapers.New = func() any { return &shaping.HarfbuzzShaper{} }
	s.name = fontName(f)
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- font file path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data, opts...)
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	return s.name
}

// Face creates a face at the given pixel size.
func (s *FontSource) Face(size float64) (Face, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	return newSfntFace(s, size)
}

func (s *FontSource) parsedGoText() (*gotext.Font, error) {
	s.gotextOnce.Do(func() {
		face, err := gotext.ParseTTF(bytes.NewReader(s.data))
		if err != nil {
			s.gotextErr = fmt.Errorf("text: go-text parse: %w", err)
			return
		}
		s.gotextFont = face.Font
	})
	return s.gotextFont, s.gotextErr
}

func fontName(f *opentype.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}

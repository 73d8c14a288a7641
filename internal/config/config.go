// Package config loads the composer configuration file. Files are YAML or
// TOML, chosen by extension, and are validated before use.
package config

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/compose"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor
// TOML.
var ErrUnsupportedFormat = errors.New("config: unsupported format")

// Format is a configuration file syntax.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf returns the format implied by a file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// File is the configuration file. Zero values keep the engine defaults.
type File struct {
	MaxPixels   int     `yaml:"max_pixels" toml:"max_pixels" validate:"min=0"`
	Padding     int     `yaml:"padding" toml:"padding" validate:"min=0"`
	Margin      int     `yaml:"margin" toml:"margin" validate:"min=0"`
	Separator   int     `yaml:"separator" toml:"separator" validate:"min=0"`
	Supersample int     `yaml:"supersample" toml:"supersample" validate:"omitempty,min=1,max=16"`
	Shadow      *Shadow `yaml:"shadow" toml:"shadow"`

	AssetDir    string `yaml:"asset_dir" toml:"asset_dir"`
	FontDir     string `yaml:"font_dir" toml:"font_dir"`
	Shaping     bool   `yaml:"shaping" toml:"shaping"`
	Workers     int    `yaml:"workers" toml:"workers" validate:"min=0"`
	RenderCache int    `yaml:"render_cache" toml:"render_cache" validate:"min=0"`

	Thumb Thumb `yaml:"thumb" toml:"thumb"`
}

// Shadow is the default drop shadow.
type Shadow struct {
	OffsetX int     `yaml:"offset_x" toml:"offset_x"`
	OffsetY int     `yaml:"offset_y" toml:"offset_y"`
	Blur    float64 `yaml:"blur" toml:"blur" validate:"gte=0"`
	Color   string  `yaml:"color" toml:"color"`
}

// Thumb configures the thumbnail compositor.
type Thumb struct {
	Size        int     `yaml:"size" toml:"size" validate:"min=0"`
	Radius      float64 `yaml:"radius" toml:"radius" validate:"gte=0"`
	Supersample int     `yaml:"supersample" toml:"supersample" validate:"omitempty,min=1,max=16"`
	Dir         string  `yaml:"dir" toml:"dir"`
	Offsets     string  `yaml:"offsets" toml:"offsets"`
}

// Load reads and validates the file at path.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads and validates a configuration in the given format.
// Unknown keys are errors in both formats.
func Decode(r io.Reader, format Format) (*File, error) {
	var cfg File
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", compose.ErrInvalidConfiguration, err)
		}
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", compose.ErrInvalidConfiguration, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("%w: unknown keys %s", compose.ErrInvalidConfiguration, strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := validatorInstance().Struct(&cfg); err != nil {
		return nil, convertValidationError(err)
	}
	return &cfg, nil
}

// Engine returns the engine configuration: DefaultConfig with the file's
// non-zero values applied.
func (f *File) Engine() (compose.Config, error) {
	c := compose.DefaultConfig()
	if f.MaxPixels > 0 {
		c.MaxPixels = f.MaxPixels
	}
	c.Padding, c.Margin, c.Separator = f.Padding, f.Margin, f.Separator
	if f.Supersample > 0 {
		c.Supersample = f.Supersample
	}
	c.AssetDir = f.AssetDir
	if s := f.Shadow; s != nil {
		c.Shadow.Offset = image.Pt(s.OffsetX, s.OffsetY)
		c.Shadow.Blur = s.Blur
		if s.Color != "" {
			col, err := compose.Hex(s.Color)
			if err != nil {
				return c, fmt.Errorf("config: shadow.color: %w", err)
			}
			c.Shadow.Color = col
		}
	}
	return c, c.Validate()
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			return name
		})
		validateInst = v
	})
	return validateInst
}

// convertValidationError reports the first failing field by its key.
func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		return fmt.Errorf("%w: %s failed validation for tag '%s'", compose.ErrInvalidConfiguration, field, fe.Tag())
	}
	return fmt.Errorf("%w: %w", compose.ErrInvalidConfiguration, err)
}

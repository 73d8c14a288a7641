package layoutdoc

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Document is a parsed layout document.
type Document struct {
	// Key memoizes the rendered bitmap when the engine has a render
	// cache. Empty disables memoization.
	Key    string `yaml:"key"`
	Canvas Canvas `yaml:"canvas"`
	Root   Node   `yaml:"root"`
}

// Canvas sizes the root. Omitted sides take the natural size.
type Canvas struct {
	Width      *int        `yaml:"width" validate:"omitempty,min=1"`
	Height     *int        `yaml:"height" validate:"omitempty,min=1"`
	Background *Background `yaml:"background"`
}

// Node is one widget. Which fields apply depends on Type.
type Node struct {
	Type string `yaml:"type" validate:"required,oneof=frame hsplit vsplit grid text image spacer"`
	ID   string `yaml:"id"`

	Width   *int  `yaml:"width" validate:"omitempty,min=0"`
	Height  *int  `yaml:"height" validate:"omitempty,min=0"`
	Margin  []int `yaml:"margin" validate:"max=2,dive,min=0"`
	Padding []int `yaml:"padding" validate:"max=2,dive,min=0"`

	// Align is "<h> <v>" or a single token for both axes. HAlign and
	// VAlign override one axis.
	Align  string `yaml:"align"`
	HAlign string `yaml:"halign"`
	VAlign string `yaml:"valign"`

	Offset   []int  `yaml:"offset" validate:"omitempty,len=2"`
	Anchor   string `yaml:"anchor"`
	Overflow bool   `yaml:"overflow"`

	Background *Background `yaml:"background"`

	// Containers.
	Children  []Node    `yaml:"children" validate:"dive"`
	Separator *int      `yaml:"separator" validate:"omitempty,min=0"`
	Mode      string    `yaml:"mode" validate:"omitempty,oneof=fixed expand"`
	Ratios    []float64 `yaml:"ratios" validate:"dive,gte=0"`
	ItemAlign []string  `yaml:"item_align"`
	Rows      int       `yaml:"rows" validate:"min=0"`
	Cols      int       `yaml:"cols" validate:"min=0"`
	Order     string    `yaml:"order" validate:"omitempty,oneof=row-major column-major"`

	// Text.
	Text        string     `yaml:"text"`
	Style       *TextStyle `yaml:"style"`
	WrapWidth   int        `yaml:"wrap_width" validate:"min=0"`
	MaxLines    int        `yaml:"max_lines" validate:"min=0"`
	Policy      string     `yaml:"overflow_policy" validate:"omitempty,oneof=shrink clip"`
	Suffix      string     `yaml:"suffix"`
	LineSpacing int        `yaml:"line_spacing"`
	Reserve     bool       `yaml:"reserve_lines"`

	// Image.
	Src     string   `yaml:"src"`
	Dir     string   `yaml:"dir"`
	Fit     string   `yaml:"fit" validate:"omitempty,oneof=fit fill stretch fixed repeat"`
	Radius  float64  `yaml:"radius" validate:"gte=0"`
	Corners []string `yaml:"corners" validate:"dive,oneof=top-left top-right bottom-right bottom-left all"`
	Opacity float64  `yaml:"opacity" validate:"gte=0,lte=1"`
	Shadow  bool     `yaml:"shadow"`
}

// TextStyle is the style of a text node.
type TextStyle struct {
	Font   string  `yaml:"font"`
	Size   float64 `yaml:"size" validate:"gt=0"`
	Color  string  `yaml:"color"`
	Shadow bool    `yaml:"shadow"`
}

// Background is a widget background. Layers stacks several.
type Background struct {
	Type string `yaml:"type" validate:"required,oneof=fill roundrect glass gradient image pattern layers"`

	Color       string   `yaml:"color"`
	Radius      float64  `yaml:"radius" validate:"gte=0"`
	Corners     []string `yaml:"corners" validate:"dive,oneof=top-left top-right bottom-right bottom-left all"`
	Stroke      string   `yaml:"stroke"`
	StrokeWidth float64  `yaml:"stroke_width" validate:"gte=0"`

	Blur        float64 `yaml:"blur" validate:"gte=0"`
	Tint        string  `yaml:"tint"`
	Border      string  `yaml:"border"`
	BorderWidth float64 `yaml:"border_width" validate:"gte=0"`

	From      string `yaml:"from"`
	To        string `yaml:"to"`
	Direction string `yaml:"direction" validate:"omitempty,oneof=horizontal vertical"`

	Src       string  `yaml:"src"`
	Dir       string  `yaml:"dir"`
	Fit       string  `yaml:"fit" validate:"omitempty,oneof=fit fill stretch fixed repeat"`
	FadeStart float64 `yaml:"fade_start" validate:"gte=0,lte=1"`
	FadeEnd   float64 `yaml:"fade_end" validate:"gte=0,lte=1"`
	Opacity   float64 `yaml:"opacity" validate:"gte=0,lte=1"`

	Pattern string `yaml:"pattern" validate:"omitempty,oneof=stripes dots checker"`
	Base    string `yaml:"base"`
	Cell    int    `yaml:"cell" validate:"min=0"`
	Mark    int    `yaml:"mark" validate:"min=0"`

	Layers []Background `yaml:"layers" validate:"dive"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared validator, which names fields by
// their YAML keys.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

// Parse decodes and validates a document. Unknown keys are errors.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fieldErrorf("document", "empty document")
		}
		return nil, &FieldError{Field: "document", Msg: err.Error(), Err: err}
	}
	if err := validatorInstance().Struct(&doc); err != nil {
		return nil, convertValidationError(err)
	}
	return &doc, nil
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

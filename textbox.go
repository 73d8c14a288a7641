package compose

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/compose/surface"
	"github.com/gogpu/compose/text"
)

// TextStyle describes how text is drawn.
type TextStyle struct {
	// Font is the logical font name passed to the font resolver. Empty
	// means the resolver's default.
	Font string

	// Size is the font size in pixels.
	Size float64

	// Color defaults to black.
	Color color.Color

	// Shadow, when set, is drawn beneath the glyphs.
	Shadow *surface.Shadow
}

// TextBox is a leaf widget drawing wrapped text. The wrap width is the
// explicit content width, or the WrapWidth when set. Each line is aligned
// horizontally by the box alignment and the block vertically.
type TextBox struct {
	Base[*TextBox]

	text        string
	style       TextStyle
	wrapWidth   int
	maxLines    int
	policy      text.Overflow
	suffix      string
	lineSpacing int
	reserve     bool
}

// textLayout is the measured text of a TextBox.
type textLayout struct {
	face       text.Face
	lines      text.Lines
	lineHeight int
}

// NewTextBox creates a text box.
func NewTextBox(b *Builder, s string, style TextStyle) *TextBox {
	t := &TextBox{text: s, style: style}
	t.init(t, "TextBox")
	b.attach(t)
	return t
}

// Text returns the unwrapped text.
func (t *TextBox) Text() string { return t.text }

// WrapWidth sets the line budget without fixing the box width.
func (t *TextBox) WrapWidth(px int) *TextBox {
	t.wrapWidth = px
	return t
}

// MaxLines caps the number of lines. Zero means unlimited.
func (t *TextBox) MaxLines(n int) *TextBox {
	t.maxLines = max(n, 0)
	return t
}

// Overflow sets the policy applied when text exceeds MaxLines.
func (t *TextBox) Overflow(o text.Overflow) *TextBox {
	t.policy = o
	return t
}

// Suffix replaces the default "..." shrink marker.
func (t *TextBox) Suffix(s string) *TextBox {
	t.suffix = s
	return t
}

// LineSpacing adds px between lines.
func (t *TextBox) LineSpacing(px int) *TextBox {
	t.lineSpacing = px
	return t
}

// ReserveLines sizes the box for MaxLines lines even when fewer are
// produced.
func (t *TextBox) ReserveLines(reserve bool) *TextBox {
	t.reserve = reserve
	return t
}

// Shadow sets the text shadow.
func (t *TextBox) Shadow(sh *surface.Shadow) *TextBox {
	t.style.Shadow = sh
	return t
}

func (t *TextBox) measure(l *layout) (image.Point, error) {
	if t.style.Size <= 0 {
		return image.Point{}, invalidf(t, "font size must be positive")
	}
	face, err := l.fonts.Face(t.style.Font, t.style.Size)
	if err != nil {
		return image.Point{}, &LayoutError{Path: PathOf(t), Err: err}
	}

	budget := t.wrapWidth
	if budget <= 0 && t.width >= 0 {
		budget = t.width
	}
	lines := text.Wrap(face, t.text, text.WrapOptions{
		MaxWidth: budget,
		MaxLines: t.maxLines,
		Overflow: t.policy,
		Suffix:   t.suffix,
	})
	tl := &textLayout{
		face:       face,
		lines:      lines,
		lineHeight: int(math.Ceil(t.style.Size)) + t.lineSpacing,
	}
	l.texts[t] = tl

	reserve := 0
	if t.reserve {
		reserve = t.maxLines
	}
	return lines.Size(tl.lineHeight, reserve), nil
}

func (t *TextBox) render(d *drawer, content image.Point) error {
	tl := d.l.texts[t]
	c := t.style.Color
	if c == nil {
		c = color.Black
	}
	block := tl.lines.Len() * tl.lineHeight
	y := t.alignV.place(content.Y, block)
	for i, line := range tl.lines.Lines {
		x := t.alignH.place(content.X, tl.lines.Widths[i])
		d.s.DrawText(tl.face, image.Pt(x, y), line, c, t.style.Shadow)
		y += tl.lineHeight
	}
	return nil
}

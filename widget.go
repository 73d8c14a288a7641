package compose

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Align positions content along one axis.
type Align uint8

const (
	// Leading aligns to the left or top edge.
	Leading Align = iota

	// Center splits the free space evenly; the odd pixel goes after.
	Center

	// Trailing aligns to the right or bottom edge.
	Trailing
)

// String returns the string representation of the alignment.
func (a Align) String() string {
	switch a {
	case Leading:
		return "leading"
	case Center:
		return "center"
	case Trailing:
		return "trailing"
	default:
		return "Align(" + strconv.Itoa(int(a)) + ")"
	}
}

// ParseAlign parses an alignment token. Besides the canonical names it
// accepts the edge names "left", "top", "start", "right", "bottom", "end"
// and "middle".
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leading", "start", "left", "top":
		return Leading, nil
	case "center", "centre", "middle":
		return Center, nil
	case "trailing", "end", "right", "bottom":
		return Trailing, nil
	}
	return Leading, fmt.Errorf("%w: unknown alignment %q", ErrInvalidConfiguration, s)
}

// place returns the offset of a size-long item inside a space-long span.
// Items larger than the span start at the leading edge.
func (a Align) place(space, size int) int {
	gap := space - size
	if gap <= 0 {
		return 0
	}
	switch a {
	case Center:
		return gap / 2
	case Trailing:
		return gap
	default:
		return 0
	}
}

// anchor returns the position of the anchor point along a size-long span.
func (a Align) anchor(size int) int {
	switch a {
	case Center:
		return size / 2
	case Trailing:
		return size
	default:
		return 0
	}
}

// DrawFunc is a post-draw callback. It runs after the widget's content
// with the surface's current frame set to the widget's box (inside the
// margin).
type DrawFunc func(dc *DrawContext) error

// Widget is a node of the layout tree. Widgets are created with the New*
// constructors and configured through their fluent setters.
type Widget interface {
	base() *params

	// measure returns the natural content size, before any explicit size.
	measure(l *layout) (image.Point, error)

	// render draws the content into the current frame, which has the
	// resolved content size.
	render(d *drawer, content image.Point) error
}

// params are the parameters shared by every widget.
type params struct {
	kind string
	id   string

	parent Widget
	index  int

	width, height int // content box; negative means unset

	marginX, marginY   int
	paddingX, paddingY int

	alignH, alignV Align

	background Background

	offset           image.Point
	anchorH, anchorV Align

	overflow bool
	after    []DrawFunc

	// err is a construction error reported when the tree is rendered.
	err error
}

func (p *params) base() *params { return p }

// inset returns the total size added around the content box.
func (p *params) inset() image.Point {
	return image.Pt(2*(p.paddingX+p.marginX), 2*(p.paddingY+p.marginY))
}

// Base carries the common widget parameters and their setters. Setters
// mutate the widget and return it so calls can be chained.
type Base[T any] struct {
	params
	self T
}

func (b *Base[T]) init(self T, kind string) {
	b.self = self
	b.kind = kind
	b.width, b.height = -1, -1
}

// ID names the widget in error paths.
func (b *Base[T]) ID(id string) T {
	b.id = id
	return b.self
}

// Size sets the explicit content width and height. Negative values unset
// them.
func (b *Base[T]) Size(w, h int) T {
	b.width, b.height = w, h
	return b.self
}

// Width sets the explicit content width. A negative value unsets it.
func (b *Base[T]) Width(w int) T {
	b.width = w
	return b.self
}

// Height sets the explicit content height. A negative value unsets it.
func (b *Base[T]) Height(h int) T {
	b.height = h
	return b.self
}

// Margin sets the transparent space around the widget on all sides.
func (b *Base[T]) Margin(m int) T {
	return b.MarginXY(m, m)
}

// MarginXY sets the horizontal and vertical margins.
func (b *Base[T]) MarginXY(x, y int) T {
	b.marginX, b.marginY = max(x, 0), max(y, 0)
	return b.self
}

// Padding sets the space between the background and the content.
func (b *Base[T]) Padding(p int) T {
	return b.PaddingXY(p, p)
}

// PaddingXY sets the horizontal and vertical padding.
func (b *Base[T]) PaddingXY(x, y int) T {
	b.paddingX, b.paddingY = max(x, 0), max(y, 0)
	return b.self
}

// Align sets the content alignment on both axes.
func (b *Base[T]) Align(h, v Align) T {
	b.alignH, b.alignV = h, v
	return b.self
}

// HAlign sets the horizontal content alignment.
func (b *Base[T]) HAlign(a Align) T {
	b.alignH = a
	return b.self
}

// VAlign sets the vertical content alignment.
func (b *Base[T]) VAlign(a Align) T {
	b.alignV = a
	return b.self
}

// Background sets the decoration drawn behind the content.
func (b *Base[T]) Background(bg Background) T {
	b.background = bg
	return b.self
}

// Offset displaces the drawn widget by (dx, dy) after layout. Siblings
// are not affected.
func (b *Base[T]) Offset(dx, dy int) T {
	b.offset = image.Pt(dx, dy)
	return b.self
}

// Anchor selects the point of the widget that is placed at the offset.
// The default (Leading, Leading) is the top-left corner, which makes the
// offset a plain displacement.
func (b *Base[T]) Anchor(h, v Align) T {
	b.anchorH, b.anchorV = h, v
	return b.self
}

// AllowOverflow lets content larger than the explicit size be clipped
// instead of failing the build.
func (b *Base[T]) AllowOverflow(allow bool) T {
	b.overflow = allow
	return b.self
}

// AfterDraw appends a post-draw callback.
func (b *Base[T]) AfterDraw(fn DrawFunc) T {
	if fn != nil {
		b.after = append(b.after, fn)
	}
	return b.self
}

// Parent returns the container holding the widget, or nil.
func (b *Base[T]) Parent() Widget {
	return b.parent
}

// PathOf returns the widget's path from the root, as used in errors. Each
// element is the widget kind followed by "#id" when an id is set or by
// "[index]" inside a container.
func PathOf(w Widget) string {
	if w == nil {
		return "<nil>"
	}
	var parts []string
	for cur := w; cur != nil; {
		p := cur.base()
		seg := p.kind
		switch {
		case p.id != "":
			seg += "#" + p.id
		case p.parent != nil:
			seg += "[" + strconv.Itoa(p.index) + "]"
		}
		parts = append(parts, seg)
		cur = p.parent
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

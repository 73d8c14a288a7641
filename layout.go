package compose

import (
	"fmt"
	"image"

	"github.com/gogpu/compose/text"
)

// sizing is the memoized measurement of one widget.
type sizing struct {
	natural image.Point // content size before explicit sizes apply
	content image.Point // resolved content box
	err     error
}

// layout is the measurement pass of one build. Results are memoized per
// widget, so each subtree is measured once however often its parent asks.
type layout struct {
	cfg    Config
	fonts  text.Resolver
	images map[Asset]image.Image

	sizes map[Widget]*sizing
	texts map[*TextBox]*textLayout
}

func newLayout(cfg Config, fonts text.Resolver, images map[Asset]image.Image) *layout {
	return &layout{
		cfg:    cfg,
		fonts:  fonts,
		images: images,
		sizes:  make(map[Widget]*sizing),
		texts:  make(map[*TextBox]*textLayout),
	}
}

// content returns the resolved content box of w: the explicit size where
// set, the natural size otherwise. Natural content larger than an explicit
// size is a LayoutError wrapping ErrLayoutOverflow unless w allows
// overflow.
func (l *layout) content(w Widget) (image.Point, error) {
	if s, ok := l.sizes[w]; ok {
		return s.content, s.err
	}
	s := l.resolve(w)
	l.sizes[w] = s
	return s.content, s.err
}

func (l *layout) resolve(w Widget) *sizing {
	p := w.base()
	if p.err != nil {
		return &sizing{err: &LayoutError{Path: PathOf(w), Err: p.err}}
	}
	natural, err := w.measure(l)
	if err != nil {
		return &sizing{err: err}
	}

	content := natural
	if p.width >= 0 {
		content.X = p.width
	}
	if p.height >= 0 {
		content.Y = p.height
	}
	if natural.X > content.X || natural.Y > content.Y {
		if !p.overflow {
			return &sizing{err: &LayoutError{
				Path:   PathOf(w),
				Err:    ErrLayoutOverflow,
				Detail: fmt.Sprintf("content %dx%d exceeds box %dx%d", natural.X, natural.Y, content.X, content.Y),
			}}
		}
		Logger().Debug("compose: clipping overflow",
			"path", PathOf(w), "natural", natural, "box", content)
	}
	return &sizing{natural: natural, content: content}
}

// outer returns the self size of w: its content box plus padding and
// margin on both sides.
func (l *layout) outer(w Widget) (image.Point, error) {
	c, err := l.content(w)
	if err != nil {
		return image.Point{}, err
	}
	return c.Add(w.base().inset()), nil
}

// outers measures every child and returns their self sizes.
func (l *layout) outers(children []Widget) ([]image.Point, error) {
	sizes := make([]image.Point, len(children))
	for i, c := range children {
		o, err := l.outer(c)
		if err != nil {
			return nil, err
		}
		sizes[i] = o
	}
	return sizes, nil
}

// overflows reports whether w's natural content exceeds its box. Only
// valid after w has been measured.
func (l *layout) overflows(w Widget) bool {
	s := l.sizes[w]
	return s.natural.X > s.content.X || s.natural.Y > s.content.Y
}

// axis selects the primary axis of a split.
type axis uint8

const (
	horizontal axis = iota
	vertical
)

// along returns the component of p on the axis.
func (a axis) along(p image.Point) int {
	if a == horizontal {
		return p.X
	}
	return p.Y
}

// across returns the component of p on the other axis.
func (a axis) across(p image.Point) int {
	if a == horizontal {
		return p.Y
	}
	return p.X
}

// point builds a point from primary and cross components.
func (a axis) point(primary, cross int) image.Point {
	if a == horizontal {
		return image.Pt(primary, cross)
	}
	return image.Pt(cross, primary)
}

// distribute splits total into len(weights) integer cells proportional to
// the weights. Boundaries are rounded cumulatively, so the cells always sum
// to total and differ from their exact share by less than one pixel. Zero
// total weight divides evenly.
func distribute(total int, weights []float64) []int {
	cells := make([]int, len(weights))
	if len(weights) == 0 || total <= 0 {
		return cells
	}
	var sum float64
	for _, w := range weights {
		sum += w
	}
	even := sum <= 0

	var acc float64
	prev := 0
	for i, w := range weights {
		if even {
			acc = float64(i + 1)
			sum = float64(len(weights))
		} else {
			acc += w
		}
		edge := int(float64(total)*acc/sum + 0.5)
		if i == len(weights)-1 {
			edge = total
		}
		cells[i] = edge - prev
		prev = edge
	}
	return cells
}

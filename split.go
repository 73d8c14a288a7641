package compose

import (
	"fmt"
	"image"
)

// SplitMode selects how a Split or Grid sizes its cells.
type SplitMode uint8

const (
	// Fixed gives every item its natural size.
	Fixed SplitMode = iota

	// Expand divides an explicit total size between the items.
	Expand
)

// String returns the string representation of the mode.
func (m SplitMode) String() string {
	switch m {
	case Fixed:
		return "fixed"
	case Expand:
		return "expand"
	default:
		return "unknown"
	}
}

// Split arranges its children sequentially along one axis: left to right
// for HSplit, top to bottom for VSplit.
//
// In Fixed mode every child gets a cell of its own size; the content size
// is the sum of the cells plus separators along the primary axis and the
// largest child across it. If the split is larger than that, the group is
// aligned along the primary axis.
//
// In Expand mode the split needs an explicit size along its primary axis.
// The space left after separators is divided by the item ratios (default:
// the natural sizes); boundaries are rounded cumulatively so the cells
// fill the space exactly. Children are aligned inside their cells.
type Split struct {
	Base[*Split]
	children []Widget

	axis      axis
	mode      SplitMode
	sep       int
	ratios    []float64
	itemAlign map[int]Align
}

// NewHSplit creates a horizontal split.
func NewHSplit(b *Builder) *Split {
	return newSplit(b, horizontal, "HSplit")
}

// NewVSplit creates a vertical split.
func NewVSplit(b *Builder) *Split {
	return newSplit(b, vertical, "VSplit")
}

func newSplit(b *Builder, a axis, kind string) *Split {
	s := &Split{axis: a, sep: b.separator()}
	s.init(s, kind)
	b.attach(s)
	return s
}

// Children implements Container.
func (s *Split) Children() []Widget { return s.children }

func (s *Split) add(w Widget) { adopt(s, &s.children, w) }

// Add appends detached widgets as children.
func (s *Split) Add(ws ...Widget) *Split {
	for _, w := range ws {
		s.add(w)
	}
	return s
}

// Mode sets the distribution mode.
func (s *Split) Mode(m SplitMode) *Split {
	s.mode = m
	return s
}

// Expand is shorthand for Mode(Expand).
func (s *Split) Expand() *Split {
	return s.Mode(Expand)
}

// Separator sets the gap between items in pixels.
func (s *Split) Separator(px int) *Split {
	s.sep = max(px, 0)
	return s
}

// Ratios sets the Expand-mode weights, one per item.
func (s *Split) Ratios(r ...float64) *Split {
	s.ratios = r
	return s
}

// ItemAlign overrides the cross-axis alignment of the i-th item.
func (s *Split) ItemAlign(i int, a Align) *Split {
	if s.itemAlign == nil {
		s.itemAlign = make(map[int]Align)
	}
	s.itemAlign[i] = a
	return s
}

// explicit returns the explicit primary size, or -1.
func (s *Split) explicit() int {
	if s.axis == horizontal {
		return s.width
	}
	return s.height
}

// aligns returns the primary and cross container alignments.
func (s *Split) aligns() (primary, cross Align) {
	if s.axis == horizontal {
		return s.alignH, s.alignV
	}
	return s.alignV, s.alignH
}

func (s *Split) separators() int {
	return s.sep * max(len(s.children)-1, 0)
}

// cells divides total primary space between the items.
func (s *Split) cells(total int, sizes []image.Point) []int {
	weights := s.ratios
	if len(weights) == 0 {
		weights = make([]float64, len(sizes))
		for i, o := range sizes {
			weights[i] = float64(s.axis.along(o))
		}
	}
	return distribute(max(total-s.separators(), 0), weights)
}

func (s *Split) measure(l *layout) (image.Point, error) {
	sizes, err := l.outers(s.children)
	if err != nil {
		return image.Point{}, err
	}
	var sum, cross int
	for _, o := range sizes {
		sum += s.axis.along(o)
		cross = max(cross, s.axis.across(o))
	}
	if s.mode != Expand {
		return s.axis.point(sum+s.separators(), cross), nil
	}

	total := s.explicit()
	if total < 0 {
		return image.Point{}, invalidf(s, "expand mode needs an explicit size along the split axis")
	}
	if len(s.ratios) > 0 && len(s.ratios) != len(s.children) {
		return image.Point{}, invalidf(s, fmt.Sprintf("%d ratios for %d items", len(s.ratios), len(s.children)))
	}
	for _, r := range s.ratios {
		if r < 0 {
			return image.Point{}, invalidf(s, fmt.Sprintf("negative ratio %v", r))
		}
	}
	for i, cell := range s.cells(total, sizes) {
		child := s.children[i]
		if need := s.axis.along(sizes[i]); need > cell && !child.base().overflow {
			return image.Point{}, &LayoutError{
				Path:   PathOf(child),
				Err:    ErrLayoutOverflow,
				Detail: fmt.Sprintf("needs %d px, cell has %d", need, cell),
			}
		}
	}
	return s.axis.point(total, cross), nil
}

func (s *Split) render(d *drawer, content image.Point) error {
	sizes, err := d.l.outers(s.children)
	if err != nil {
		return err
	}
	primary, cross := s.aligns()
	space := s.axis.along(content)

	var cells []int
	cursor := 0
	if s.mode == Expand {
		cells = s.cells(space, sizes)
	} else {
		cells = make([]int, len(sizes))
		total := s.separators()
		for i, o := range sizes {
			cells[i] = s.axis.along(o)
			total += cells[i]
		}
		cursor = primary.place(space, total)
	}

	for i, child := range s.children {
		o := sizes[i]
		along := 0
		if s.mode == Expand {
			along = primary.place(cells[i], s.axis.along(o))
		}
		ca := cross
		if a, ok := s.itemAlign[i]; ok {
			ca = a
		}
		at := s.axis.point(cursor+along, ca.place(s.axis.across(content), s.axis.across(o)))
		if s.mode == Expand {
			cell := image.Rectangle{
				Min: s.axis.point(cursor, 0),
				Max: s.axis.point(cursor+cells[i], s.axis.across(content)),
			}
			err = d.drawIn(child, cell, at, o)
		} else {
			err = d.draw(child, at)
		}
		if err != nil {
			return err
		}
		cursor += cells[i] + s.sep
	}
	return nil
}

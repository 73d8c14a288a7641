package compose

import (
	"fmt"
	"image"
)

// FillOrder selects how Grid items are assigned to cells.
type FillOrder uint8

const (
	// RowMajor fills each row left to right before the next row.
	RowMajor FillOrder = iota

	// ColumnMajor fills each column top to bottom before the next column.
	ColumnMajor
)

// String returns the string representation of the fill order.
func (o FillOrder) String() string {
	switch o {
	case RowMajor:
		return "row-major"
	case ColumnMajor:
		return "column-major"
	default:
		return "unknown"
	}
}

// Grid arranges its children in uniform cells. Exactly one of the row or
// column counts must be set; the other is derived as ceil(items/given).
//
// In Fixed mode every cell has the size of the largest child. In Expand
// mode the grid needs an explicit width and height, which are divided
// evenly between the columns and rows after separators.
type Grid struct {
	Base[*Grid]
	children []Widget

	rows, cols int
	order      FillOrder
	mode       SplitMode
	hsep, vsep int
}

// NewGrid creates a grid. Set its shape with Rows or Cols.
func NewGrid(b *Builder) *Grid {
	g := &Grid{}
	g.hsep, g.vsep = b.separator(), b.separator()
	g.init(g, "Grid")
	b.attach(g)
	return g
}

// Children implements Container.
func (g *Grid) Children() []Widget { return g.children }

func (g *Grid) add(w Widget) { adopt(g, &g.children, w) }

// Add appends detached widgets as children.
func (g *Grid) Add(ws ...Widget) *Grid {
	for _, w := range ws {
		g.add(w)
	}
	return g
}

// Rows sets the row count.
func (g *Grid) Rows(n int) *Grid {
	g.rows = n
	return g
}

// Cols sets the column count.
func (g *Grid) Cols(n int) *Grid {
	g.cols = n
	return g
}

// Order sets the fill order.
func (g *Grid) Order(o FillOrder) *Grid {
	g.order = o
	return g
}

// Mode sets the cell sizing mode.
func (g *Grid) Mode(m SplitMode) *Grid {
	g.mode = m
	return g
}

// Expand is shorthand for Mode(Expand).
func (g *Grid) Expand() *Grid {
	return g.Mode(Expand)
}

// Separator sets both gaps between cells.
func (g *Grid) Separator(px int) *Grid {
	return g.Gaps(px, px)
}

// Gaps sets the horizontal gap between columns and the vertical gap
// between rows.
func (g *Grid) Gaps(h, v int) *Grid {
	g.hsep, g.vsep = max(h, 0), max(v, 0)
	return g
}

// Dims returns the resolved row and column counts.
func (g *Grid) Dims() (rows, cols int, err error) {
	n := len(g.children)
	switch {
	case g.rows > 0 && g.cols > 0:
		return 0, 0, invalidf(g, "both row and column counts are set")
	case g.cols > 0:
		return ceilDiv(n, g.cols), g.cols, nil
	case g.rows > 0:
		return g.rows, ceilDiv(n, g.rows), nil
	default:
		return 0, 0, invalidf(g, "needs a positive row or column count")
	}
}

// Cell returns the row and column of the i-th item for a grid of the
// given shape.
func (g *Grid) Cell(i, rows, cols int) (row, col int) {
	if g.order == ColumnMajor {
		return i % rows, i / rows
	}
	return i / cols, i % cols
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// tracks returns the column widths and row heights.
func (g *Grid) tracks(l *layout, rows, cols int, content image.Point) (widths, heights []int, err error) {
	if g.mode == Expand {
		return evenSplit(content.X-g.hsep*max(cols-1, 0), cols),
			evenSplit(content.Y-g.vsep*max(rows-1, 0), rows), nil
	}
	cell, err := g.cellSize(l)
	if err != nil {
		return nil, nil, err
	}
	widths, heights = make([]int, cols), make([]int, rows)
	for i := range widths {
		widths[i] = cell.X
	}
	for i := range heights {
		heights[i] = cell.Y
	}
	return widths, heights, nil
}

// cellSize returns the largest child size.
func (g *Grid) cellSize(l *layout) (image.Point, error) {
	return overlaySize(l, g.children)
}

func evenSplit(total, n int) []int {
	weights := make([]float64, n)
	return distribute(max(total, 0), weights)
}

func (g *Grid) measure(l *layout) (image.Point, error) {
	rows, cols, err := g.Dims()
	if err != nil {
		return image.Point{}, err
	}
	if g.mode != Expand {
		cell, err := g.cellSize(l)
		if err != nil {
			return image.Point{}, err
		}
		return image.Pt(
			cols*cell.X+g.hsep*max(cols-1, 0),
			rows*cell.Y+g.vsep*max(rows-1, 0),
		), nil
	}

	if g.width < 0 || g.height < 0 {
		return image.Point{}, invalidf(g, "expand mode needs an explicit width and height")
	}
	content := image.Pt(g.width, g.height)
	widths, heights, _ := g.tracks(l, rows, cols, content)
	for i, child := range g.children {
		o, err := l.outer(child)
		if err != nil {
			return image.Point{}, err
		}
		r, c := g.Cell(i, rows, cols)
		if (o.X > widths[c] || o.Y > heights[r]) && !child.base().overflow {
			return image.Point{}, &LayoutError{
				Path:   PathOf(child),
				Err:    ErrLayoutOverflow,
				Detail: fmt.Sprintf("needs %dx%d, cell has %dx%d", o.X, o.Y, widths[c], heights[r]),
			}
		}
	}
	return content, nil
}

func (g *Grid) render(d *drawer, content image.Point) error {
	rows, cols, err := g.Dims()
	if err != nil {
		return err
	}
	widths, heights, err := g.tracks(d.l, rows, cols, content)
	if err != nil {
		return err
	}
	xs := offsets(widths, g.hsep)
	ys := offsets(heights, g.vsep)

	for i, child := range g.children {
		o, err := d.l.outer(child)
		if err != nil {
			return err
		}
		r, c := g.Cell(i, rows, cols)
		at := image.Pt(
			xs[c]+g.alignH.place(widths[c], o.X),
			ys[r]+g.alignV.place(heights[r], o.Y),
		)
		cell := image.Rect(xs[c], ys[r], xs[c]+widths[c], ys[r]+heights[r])
		if err := d.drawIn(child, cell, at, o); err != nil {
			return err
		}
	}
	return nil
}

// offsets returns the start of each track.
func offsets(sizes []int, sep int) []int {
	out := make([]int, len(sizes))
	pos := 0
	for i, s := range sizes {
		out[i] = pos
		pos += s + sep
	}
	return out
}

package layoutdoc

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/surface"
	"github.com/gogpu/compose/text"
)

// Render builds doc with a fresh builder from e and renders it, memoized
// under doc.Key when e has a render cache.
func Render(ctx context.Context, e *compose.Engine, doc *Document) (*image.RGBA, error) {
	return e.RenderKey(ctx, doc.Key, func(b *compose.Builder) (compose.Widget, error) {
		return Build(b, doc)
	})
}

// Build constructs the widget tree of doc with b and returns its Canvas
// root.
func Build(b *compose.Builder, doc *Document) (compose.Widget, error) {
	w, h := -1, -1
	if doc.Canvas.Width != nil {
		w = *doc.Canvas.Width
	}
	if doc.Canvas.Height != nil {
		h = *doc.Canvas.Height
	}
	canvas := compose.NewCanvas(b, w, h)
	if bg := doc.Canvas.Background; bg != nil {
		v, err := background(bg, "canvas.background")
		if err != nil {
			return nil, err
		}
		canvas.Background(v)
	}
	err := b.Within(canvas, func() error {
		return build(b, &doc.Root, "root")
	})
	if err != nil {
		return nil, err
	}
	compose.Logger().Debug("layoutdoc: built document", "key", doc.Key, "root", doc.Root.Type)
	return canvas, nil
}

// build creates the widget of n inside the builder's open container.
func build(b *compose.Builder, n *Node, path string) error {
	switch n.Type {
	case "frame":
		f := compose.NewFrame(b)
		if err := common(&f.Base, n, path); err != nil {
			return err
		}
		return children(b, f, n, path)

	case "hsplit", "vsplit":
		var s *compose.Split
		if n.Type == "hsplit" {
			s = compose.NewHSplit(b)
		} else {
			s = compose.NewVSplit(b)
		}
		if err := common(&s.Base, n, path); err != nil {
			return err
		}
		if n.Separator != nil {
			s.Separator(*n.Separator)
		}
		if n.Mode == "expand" {
			s.Expand()
		}
		if len(n.Ratios) > 0 {
			s.Ratios(n.Ratios...)
		}
		for i, tok := range n.ItemAlign {
			if tok == "" {
				continue
			}
			a, err := compose.ParseAlign(tok)
			if err != nil {
				return wrap(path+".item_align["+strconv.Itoa(i)+"]", err)
			}
			s.ItemAlign(i, a)
		}
		return children(b, s, n, path)

	case "grid":
		g := compose.NewGrid(b).Rows(n.Rows).Cols(n.Cols)
		if err := common(&g.Base, n, path); err != nil {
			return err
		}
		if n.Separator != nil {
			g.Separator(*n.Separator)
		}
		if n.Mode == "expand" {
			g.Expand()
		}
		if n.Order == "column-major" {
			g.Order(compose.ColumnMajor)
		}
		return children(b, g, n, path)

	case "text":
		if n.Style == nil {
			return fieldErrorf(path+".style", "text nodes need a style")
		}
		style, err := textStyle(b, n.Style, path+".style")
		if err != nil {
			return err
		}
		t := compose.NewTextBox(b, n.Text, style).
			WrapWidth(n.WrapWidth).
			MaxLines(n.MaxLines).
			Suffix(n.Suffix).
			LineSpacing(n.LineSpacing).
			ReserveLines(n.Reserve)
		if n.Policy == "clip" {
			t.Overflow(text.OverflowClip)
		}
		return common(&t.Base, n, path)

	case "image":
		if n.Src == "" {
			return fieldErrorf(path+".src", "image nodes need a source")
		}
		img := compose.NewImageBox(b, compose.FromAsset(n.Dir, n.Src)).Opacity(n.Opacity)
		if n.Fit != "" {
			m, err := compose.ParseImageMode(n.Fit)
			if err != nil {
				return wrap(path+".fit", err)
			}
			img.Mode(m)
		}
		if n.Radius > 0 {
			img.Rounded(n.Radius, corners(n.Corners))
		}
		if n.Shadow {
			img.Shadow(b.Shadow())
		}
		return common(&img.Base, n, path)

	case "spacer":
		s := compose.NewSpacer(b, 0, 0)
		return common(&s.Base, n, path)
	}
	return fieldErrorf(path+".type", "unknown node type %q", n.Type)
}

// children builds the child nodes inside c.
func children(b *compose.Builder, c compose.Container, n *Node, path string) error {
	if len(n.Children) == 0 {
		return nil
	}
	return b.Within(c, func() error {
		for i := range n.Children {
			if err := build(b, &n.Children[i], path+".children["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
		return nil
	})
}

// common applies the parameters shared by every node.
func common[T any](base *compose.Base[T], n *Node, path string) error {
	base.ID(n.ID)
	if n.Width != nil {
		base.Width(*n.Width)
	}
	if n.Height != nil {
		base.Height(*n.Height)
	}
	if x, y, ok := pair(n.Margin); ok {
		base.MarginXY(x, y)
	}
	if x, y, ok := pair(n.Padding); ok {
		base.PaddingXY(x, y)
	}

	h, v, err := alignPair(n.Align)
	if err != nil {
		return wrap(path+".align", err)
	}
	if n.HAlign != "" {
		if h, err = compose.ParseAlign(n.HAlign); err != nil {
			return wrap(path+".halign", err)
		}
	}
	if n.VAlign != "" {
		if v, err = compose.ParseAlign(n.VAlign); err != nil {
			return wrap(path+".valign", err)
		}
	}
	base.Align(h, v)

	if len(n.Offset) == 2 {
		base.Offset(n.Offset[0], n.Offset[1])
	}
	if n.Anchor != "" {
		ah, av, err := alignPair(n.Anchor)
		if err != nil {
			return wrap(path+".anchor", err)
		}
		base.Anchor(ah, av)
	}
	base.AllowOverflow(n.Overflow)

	if n.Background != nil {
		bg, err := background(n.Background, path+".background")
		if err != nil {
			return err
		}
		base.Background(bg)
	}
	return nil
}

// pair expands a one- or two-element list to x and y.
func pair(v []int) (x, y int, ok bool) {
	switch len(v) {
	case 1:
		return v[0], v[0], true
	case 2:
		return v[0], v[1], true
	}
	return 0, 0, false
}

// alignPair parses "<h> <v>" or a single token applied to both axes.
// Empty means leading on both.
func alignPair(s string) (h, v compose.Align, err error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return compose.Leading, compose.Leading, nil
	case 1:
		a, err := compose.ParseAlign(fields[0])
		return a, a, err
	case 2:
		if h, err = compose.ParseAlign(fields[0]); err != nil {
			return h, v, err
		}
		v, err = compose.ParseAlign(fields[1])
		return h, v, err
	}
	return h, v, fmt.Errorf("%w: alignment %q has more than two tokens", compose.ErrInvalidConfiguration, s)
}

func textStyle(b *compose.Builder, s *TextStyle, path string) (compose.TextStyle, error) {
	style := compose.TextStyle{Font: s.Font, Size: s.Size}
	if s.Color != "" {
		c, err := compose.Hex(s.Color)
		if err != nil {
			return style, wrap(path+".color", err)
		}
		style.Color = c
	}
	if s.Shadow {
		style.Shadow = b.Shadow()
	}
	return style, nil
}

func background(bg *Background, path string) (compose.Background, error) {
	var err error
	col := func(field, s string) color.NRGBA {
		if s == "" || err != nil {
			return color.NRGBA{}
		}
		c, cerr := compose.Hex(s)
		if cerr != nil {
			err = wrap(path+"."+field, cerr)
		}
		return c
	}
	opt := func(field, s string) color.Color {
		if s == "" {
			return nil
		}
		return col(field, s)
	}

	var out compose.Background
	switch bg.Type {
	case "fill":
		out = compose.Fill{Color: col("color", bg.Color)}
	case "roundrect":
		out = compose.RoundRect{
			Color:       opt("color", bg.Color),
			Radius:      bg.Radius,
			Corners:     corners(bg.Corners),
			Stroke:      opt("stroke", bg.Stroke),
			StrokeWidth: bg.StrokeWidth,
		}
	case "glass":
		out = compose.Glass{
			Blur:        bg.Blur,
			Tint:        col("tint", bg.Tint),
			Radius:      bg.Radius,
			Corners:     corners(bg.Corners),
			Border:      col("border", bg.Border),
			BorderWidth: bg.BorderWidth,
		}
	case "gradient":
		dir := surface.Horizontal
		if bg.Direction == "vertical" {
			dir = surface.Vertical
		}
		out = compose.Gradient{
			From:      col("from", bg.From),
			To:        col("to", bg.To),
			Direction: dir,
			Radius:    bg.Radius,
			Corners:   corners(bg.Corners),
		}
	case "image":
		if bg.Src == "" {
			return nil, fieldErrorf(path+".src", "image backgrounds need a source")
		}
		ib := compose.ImageBackground{
			Source:    compose.FromAsset(bg.Dir, bg.Src),
			Blur:      bg.Blur,
			FadeStart: bg.FadeStart,
			FadeEnd:   bg.FadeEnd,
			Opacity:   bg.Opacity,
			Radius:    bg.Radius,
			Corners:   corners(bg.Corners),
		}
		if bg.Fit != "" {
			m, merr := compose.ParseImageMode(bg.Fit)
			if merr != nil {
				return nil, wrap(path+".fit", merr)
			}
			ib.Mode = m
		}
		out = ib
	case "pattern":
		kind, kerr := compose.ParsePatternKind(bg.Pattern)
		if bg.Pattern == "" {
			kind, kerr = compose.Stripes, nil
		}
		if kerr != nil {
			return nil, wrap(path+".pattern", kerr)
		}
		out = compose.Pattern{
			Kind:  kind,
			Color: col("color", bg.Color),
			Base:  opt("base", bg.Base),
			Cell:  bg.Cell,
			Mark:  bg.Mark,
		}
	case "layers":
		layers := make(compose.Layers, 0, len(bg.Layers))
		for i := range bg.Layers {
			l, lerr := background(&bg.Layers[i], path+".layers["+strconv.Itoa(i)+"]")
			if lerr != nil {
				return nil, lerr
			}
			layers = append(layers, l)
		}
		out = layers
	default:
		return nil, fieldErrorf(path+".type", "unknown background %q", bg.Type)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// corners maps corner names to a selection. Empty selects all corners.
func corners(names []string) surface.Corners {
	var c surface.Corners
	for _, n := range names {
		switch n {
		case "top-left":
			c |= surface.TopLeft
		case "top-right":
			c |= surface.TopRight
		case "bottom-right":
			c |= surface.BottomRight
		case "bottom-left":
			c |= surface.BottomLeft
		case "all":
			c |= surface.AllCorners
		}
	}
	if c == surface.NoCorners {
		return surface.AllCorners
	}
	return c
}

// wrap attributes err to a document field.
func wrap(field string, err error) error {
	return &FieldError{Field: field, Msg: err.Error(), Err: err}
}

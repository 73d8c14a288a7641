package compose

import (
	"image"
	"image/color"
)

// Frame overlays its children. Its content size is the maximum of the
// children's sizes on both axes, and every child is aligned inside it by
// the frame's alignment.
type Frame struct {
	Base[*Frame]
	children []Widget
}

// NewFrame creates a frame and appends it to the builder's open container.
func NewFrame(b *Builder) *Frame {
	f := &Frame{}
	f.init(f, "Frame")
	b.attach(f)
	return f
}

// Children implements Container.
func (f *Frame) Children() []Widget { return f.children }

func (f *Frame) add(w Widget) { adopt(f, &f.children, w) }

// Add appends detached widgets as children.
func (f *Frame) Add(ws ...Widget) *Frame {
	for _, w := range ws {
		f.add(w)
	}
	return f
}

func (f *Frame) measure(l *layout) (image.Point, error) {
	return overlaySize(l, f.children)
}

func (f *Frame) render(d *drawer, content image.Point) error {
	return overlay(d, f.children, content, f.alignH, f.alignV)
}

// Canvas is the root frame of a build. It fixes the output size and
// clears it to a color.
type Canvas struct {
	Base[*Canvas]
	children []Widget
}

// NewCanvas creates a root frame of w×h content pixels. Negative sides
// take the natural size of the children.
func NewCanvas(b *Builder, w, h int) *Canvas {
	c := &Canvas{}
	c.init(c, "Canvas")
	c.width, c.height = w, h
	b.attach(c)
	return c
}

// Color fills the canvas with a solid color.
func (c *Canvas) Color(col color.Color) *Canvas {
	return c.Background(Fill{Color: col})
}

// Children implements Container.
func (c *Canvas) Children() []Widget { return c.children }

func (c *Canvas) add(w Widget) { adopt(c, &c.children, w) }

// Add appends detached widgets as children.
func (c *Canvas) Add(ws ...Widget) *Canvas {
	for _, w := range ws {
		c.add(w)
	}
	return c
}

func (c *Canvas) measure(l *layout) (image.Point, error) {
	return overlaySize(l, c.children)
}

func (c *Canvas) render(d *drawer, content image.Point) error {
	return overlay(d, c.children, content, c.alignH, c.alignV)
}

func overlaySize(l *layout, children []Widget) (image.Point, error) {
	sizes, err := l.outers(children)
	if err != nil {
		return image.Point{}, err
	}
	var size image.Point
	for _, s := range sizes {
		size.X = max(size.X, s.X)
		size.Y = max(size.Y, s.Y)
	}
	return size, nil
}

func overlay(d *drawer, children []Widget, content image.Point, h, v Align) error {
	for _, c := range children {
		o, err := d.l.outer(c)
		if err != nil {
			return err
		}
		at := image.Pt(h.place(content.X, o.X), v.place(content.Y, o.Y))
		if err := d.draw(c, at); err != nil {
			return err
		}
	}
	return nil
}

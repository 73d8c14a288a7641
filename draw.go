package compose

import (
	"errors"
	"image"

	"github.com/gogpu/compose/surface"
	"github.com/gogpu/compose/text"
)

// DrawContext gives backgrounds and post-draw callbacks access to the
// surface and to the resources resolved for the build.
type DrawContext struct {
	// Surface is the build's drawing surface. Its current frame is the
	// widget's box.
	Surface *surface.Surface

	l *layout
}

// Config returns the engine configuration of the build.
func (dc *DrawContext) Config() Config {
	return dc.l.cfg
}

// Image returns the image behind ref. Asset references must have been
// resolved by the build's prefetch pass.
func (dc *DrawContext) Image(ref ImageRef) (image.Image, error) {
	return dc.l.image(ref)
}

// Face resolves a font through the build's font collaborator.
func (dc *DrawContext) Face(name string, size float64) (text.Face, error) {
	return dc.l.fonts.Face(name, size)
}

// drawer is the depth-first drawing pass of one build.
type drawer struct {
	l  *layout
	s  *surface.Surface
	dc *DrawContext
}

func newDrawer(l *layout, s *surface.Surface) *drawer {
	return &drawer{l: l, s: s, dc: &DrawContext{Surface: s, l: l}}
}

// draw draws w with its outer box (margin included) at `at` in the current
// frame. The region stack depth is checked after every stage that runs
// foreign code; any difference aborts the build.
func (d *drawer) draw(w Widget, at image.Point) error {
	p := w.base()
	content, err := d.l.content(w)
	if err != nil {
		return err
	}

	pos := at.Add(image.Pt(p.marginX, p.marginY))
	if p.offset != (image.Point{}) || p.anchorH != Leading || p.anchorV != Leading {
		o := content.Add(p.inset())
		pos = pos.Add(p.offset).Sub(image.Pt(p.anchorH.anchor(o.X), p.anchorV.anchor(o.Y)))
	}
	box := content.Add(image.Pt(2*p.paddingX, 2*p.paddingY))

	before := d.s.Depth()
	d.s.MoveRegion(pos, box)

	if p.background != nil {
		if err := p.background.Draw(d.dc); err != nil {
			return widgetError(w, err, "background")
		}
		if err := d.check(w, before+1); err != nil {
			return err
		}
	}

	d.s.MoveRegion(image.Pt(p.paddingX, p.paddingY), content)
	if d.l.overflows(w) {
		d.s.ClipRegion()
	}
	if err := w.render(d, content); err != nil {
		return err
	}
	if err := d.check(w, before+2); err != nil {
		return err
	}
	if err := d.s.RestoreRegion(1); err != nil {
		return err
	}

	for _, fn := range p.after {
		if err := fn(d.dc); err != nil {
			return widgetError(w, err, "post-draw callback")
		}
		if err := d.check(w, before+1); err != nil {
			return err
		}
	}
	if err := d.s.RestoreRegion(1); err != nil {
		return err
	}
	return d.check(w, before)
}

// drawIn draws w at `at` like draw, but clips it to cell when its outer
// size does not fit the cell. Both are in the current frame.
func (d *drawer) drawIn(w Widget, cell image.Rectangle, at, outer image.Point) error {
	if outer.X <= cell.Dx() && outer.Y <= cell.Dy() {
		return d.draw(w, at)
	}
	before := d.s.Depth()
	d.s.MoveRegion(cell.Min, cell.Size())
	d.s.ClipRegion()
	if err := d.draw(w, at.Sub(cell.Min)); err != nil {
		return err
	}
	if err := d.s.RestoreRegion(1); err != nil {
		return err
	}
	return d.check(w, before)
}

func (d *drawer) check(w Widget, want int) error {
	if got := d.s.Depth(); got != want {
		return &StackImbalanceError{Path: PathOf(w), Before: want, After: got}
	}
	return nil
}

// widgetError attributes err to w unless it already names a widget.
func widgetError(w Widget, err error, detail string) error {
	var le *LayoutError
	var se *StackImbalanceError
	if errors.As(err, &le) || errors.As(err, &se) {
		return err
	}
	return &LayoutError{Path: PathOf(w), Err: err, Detail: detail}
}

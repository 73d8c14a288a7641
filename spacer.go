package compose

import "image"

// Spacer is an empty leaf. It occupies its explicit size (plus padding
// and margin) and draws nothing but its background.
type Spacer struct {
	Base[*Spacer]
}

// NewSpacer creates a spacer of w×h content pixels.
func NewSpacer(b *Builder, w, h int) *Spacer {
	s := &Spacer{}
	s.init(s, "Spacer")
	s.width, s.height = w, h
	b.attach(s)
	return s
}

func (s *Spacer) measure(*layout) (image.Point, error) {
	return image.Point{}, nil
}

func (s *Spacer) render(*drawer, image.Point) error {
	return nil
}

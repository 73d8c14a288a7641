package compose

import (
	"image"
	"image/draw"
	"math"

	"github.com/gogpu/compose/internal/shape"
	"github.com/gogpu/compose/surface"
)

// ImageBox is a leaf widget drawing an image. Without an explicit size it
// takes the image's size; with only one explicit side the other follows
// the aspect ratio. The image is placed in the box by Mode and the box
// alignment.
type ImageBox struct {
	Base[*ImageBox]

	src     ImageRef
	mode    ImageMode
	radius  float64
	corners surface.Corners
	opacity float64
	shadow  *surface.Shadow
}

// NewImageBox creates an image box.
func NewImageBox(b *Builder, src ImageRef) *ImageBox {
	i := &ImageBox{src: src}
	i.init(i, "ImageBox")
	b.attach(i)
	return i
}

// Mode sets how the image is placed in the box.
func (i *ImageBox) Mode(m ImageMode) *ImageBox {
	i.mode = m
	return i
}

// Rounded rounds the selected corners of the drawn image.
func (i *ImageBox) Rounded(radius float64, c surface.Corners) *ImageBox {
	i.radius, i.corners = radius, c
	return i
}

// Opacity scales the image alpha.
func (i *ImageBox) Opacity(o float64) *ImageBox {
	i.opacity = o
	return i
}

// Shadow sets the drop shadow drawn beneath the image.
func (i *ImageBox) Shadow(sh *surface.Shadow) *ImageBox {
	i.shadow = sh
	return i
}

// Assets implements AssetUser.
func (i *ImageBox) Assets() []Asset {
	return i.src.assets()
}

func (i *ImageBox) measure(l *layout) (image.Point, error) {
	img, err := l.image(i.src)
	if err != nil {
		return image.Point{}, &LayoutError{Path: PathOf(i), Err: err}
	}
	s := img.Bounds().Size()
	switch {
	case i.width >= 0 && i.height >= 0:
		return image.Pt(i.width, i.height), nil
	case i.width >= 0:
		return image.Pt(i.width, scaleSide(s.Y, i.width, s.X)), nil
	case i.height >= 0:
		return image.Pt(scaleSide(s.X, i.height, s.Y), i.height), nil
	default:
		return s, nil
	}
}

// scaleSide returns side·num/den rounded, or 0 when den is 0.
func scaleSide(side, num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(side) * float64(num) / float64(den)))
}

func (i *ImageBox) render(d *drawer, content image.Point) error {
	img, err := d.l.image(i.src)
	if err != nil {
		return &LayoutError{Path: PathOf(i), Err: err}
	}
	layer := placeImage(img, content, i.mode, i.alignH, i.alignV)
	if i.radius > 0 && i.corners != surface.NoCorners {
		layer = roundLayer(layer, i.radius, i.corners)
	}
	d.s.BlendImage(layer, image.Point{}, surface.BlendOptions{
		Opacity: i.opacity,
		Shadow:  i.shadow,
	})
	return nil
}

// roundLayer returns a copy of img with the selected corners masked out.
func roundLayer(img *image.NRGBA, radius float64, c surface.Corners) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	m := shape.Mask(b.Dx(), b.Dy(), float32(radius), c)
	draw.DrawMask(out, b, img, b.Min, m, image.Point{}, draw.Src)
	return out
}

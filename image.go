package compose

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"

	"github.com/gogpu/compose/asset"
)

// Asset identifies an image by base directory and relative path. An empty
// Dir means Config.AssetDir.
type Asset struct {
	Dir  string
	Path string
}

func (a Asset) String() string {
	return asset.Join(a.Dir, a.Path)
}

// AssetUser is implemented by widgets and backgrounds that draw asset
// images. The engine resolves the returned assets concurrently before
// layout starts.
type AssetUser interface {
	Assets() []Asset
}

// ImageRef is an image given either directly or as an asset reference.
type ImageRef struct {
	img   image.Image
	asset Asset
}

// FromImage references an in-memory image.
func FromImage(img image.Image) ImageRef {
	return ImageRef{img: img}
}

// FromAsset references an image resolved through the asset collaborator.
func FromAsset(dir, path string) ImageRef {
	return ImageRef{asset: Asset{Dir: dir, Path: path}}
}

// IsZero reports whether the reference is empty.
func (r ImageRef) IsZero() bool {
	return r.img == nil && r.asset.Path == ""
}

// Asset returns the referenced asset, if r is an asset reference.
func (r ImageRef) Asset() (Asset, bool) {
	return r.asset, r.img == nil && r.asset.Path != ""
}

func (r ImageRef) assets() []Asset {
	if a, ok := r.Asset(); ok {
		return []Asset{a}
	}
	return nil
}

// withDefaultDir fills in the configured asset directory.
func (c Config) withDefaultDir(a Asset) Asset {
	if a.Dir == "" {
		a.Dir = c.AssetDir
	}
	return a
}

// image returns the image behind ref from the prefetched set.
func (l *layout) image(ref ImageRef) (image.Image, error) {
	if ref.img != nil {
		return ref.img, nil
	}
	if ref.asset.Path == "" {
		return nil, fmt.Errorf("%w: empty image reference", ErrInvalidConfiguration)
	}
	key := l.cfg.withDefaultDir(ref.asset)
	img, ok := l.images[key]
	if !ok {
		return nil, &asset.NotFoundError{Dir: key.Dir, Path: key.Path}
	}
	return img, nil
}

// ImageMode selects how an image is placed in a box.
type ImageMode uint8

const (
	// ImageFit scales the image to fit inside the box, keeping its aspect
	// ratio. Free space is distributed by the alignment.
	ImageFit ImageMode = iota

	// ImageFill scales the image to cover the box and crops the excess.
	ImageFill

	// ImageStretch scales the image to the box, ignoring aspect ratio.
	ImageStretch

	// ImageFixed draws the image at its own size.
	ImageFixed

	// ImageRepeat tiles the image at its own size from the top-left.
	ImageRepeat
)

// String returns the string representation of the image mode.
func (m ImageMode) String() string {
	switch m {
	case ImageFit:
		return "fit"
	case ImageFill:
		return "fill"
	case ImageStretch:
		return "stretch"
	case ImageFixed:
		return "fixed"
	case ImageRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// ParseImageMode parses an image mode name.
func ParseImageMode(s string) (ImageMode, error) {
	for m := ImageFit; m <= ImageRepeat; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return ImageFit, fmt.Errorf("%w: unknown image mode %q", ErrInvalidConfiguration, s)
}

// placeImage renders img into a new layer of the given size according to
// mode and alignment.
func placeImage(img image.Image, size image.Point, mode ImageMode, h, v Align) *image.NRGBA {
	layer := image.NewNRGBA(image.Rectangle{Max: size})
	if size.X <= 0 || size.Y <= 0 {
		return layer
	}
	src := img.Bounds()

	switch mode {
	case ImageFill:
		filled := imaging.Fill(img, size.X, size.Y, anchorOf(h, v), imaging.Lanczos)
		draw.Draw(layer, layer.Bounds(), filled, image.Point{}, draw.Src)

	case ImageStretch:
		stretched := imaging.Resize(img, size.X, size.Y, imaging.Lanczos)
		draw.Draw(layer, layer.Bounds(), stretched, image.Point{}, draw.Src)

	case ImageFixed:
		at := image.Pt(h.place(size.X, src.Dx()), v.place(size.Y, src.Dy()))
		draw.Draw(layer, src.Sub(src.Min).Add(at), img, src.Min, draw.Src)

	case ImageRepeat:
		if src.Empty() {
			break
		}
		for y := 0; y < size.Y; y += src.Dy() {
			for x := 0; x < size.X; x += src.Dx() {
				draw.Draw(layer, src.Sub(src.Min).Add(image.Pt(x, y)), img, src.Min, draw.Src)
			}
		}

	default: // ImageFit
		if src.Empty() {
			break
		}
		scale := math.Min(float64(size.X)/float64(src.Dx()), float64(size.Y)/float64(src.Dy()))
		w := max(int(math.Round(float64(src.Dx())*scale)), 1)
		hh := max(int(math.Round(float64(src.Dy())*scale)), 1)
		fitted := imaging.Resize(img, w, hh, imaging.Lanczos)
		at := image.Pt(h.place(size.X, w), v.place(size.Y, hh))
		draw.Draw(layer, fitted.Bounds().Add(at), fitted, image.Point{}, draw.Src)
	}
	return layer
}

// anchorOf converts an alignment pair to an imaging crop anchor.
func anchorOf(h, v Align) imaging.Anchor {
	anchors := [3][3]imaging.Anchor{
		{imaging.TopLeft, imaging.Top, imaging.TopRight},
		{imaging.Left, imaging.Center, imaging.Right},
		{imaging.BottomLeft, imaging.Bottom, imaging.BottomRight},
	}
	return anchors[min(int(v), 2)][min(int(h), 2)]
}

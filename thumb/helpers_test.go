package thumb

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/gogpu/compose/asset"
)

var (
	white  = color.NRGBA{255, 255, 255, 255}
	yellow = color.NRGBA{255, 220, 0, 255}
	blue   = color.NRGBA{0, 0, 255, 255}
	purple = color.NRGBA{128, 0, 128, 255}
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// ring returns a transparent image with an opaque one-pixel border, like
// a rarity frame.
func ring(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	u := image.NewUniform(c)
	draw.Draw(img, image.Rect(0, 0, w, 1), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, h-1, w, h), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, 1, h), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(w-1, 0, w, h), u, image.Point{}, draw.Src)
	return img
}

// testAssets serves every default overlay for the card fixtures.
func testAssets() *asset.Static {
	return asset.NewStatic(map[string]image.Image{
		"cards/base.png":               solid(200, 200, white),
		"frame/rarity_4.png":           ring(64, 64, purple),
		"frame/rarity_anniversary.png": ring(64, 64, purple),
		"rank/2.png":                   solid(32, 32, blue),
		"attribute/cool.png":           solid(30, 30, blue),
		"star/normal.png":              solid(20, 20, yellow),
		"star/anniversary.png":         solid(20, 20, purple),
		"character/kasumi.png":         solid(40, 40, yellow),
		"character/arisa.png":          solid(40, 40, blue),
	})
}

func newCompositor(t *testing.T, opts ...Option) *Compositor {
	t.Helper()
	c, err := New(testAssets(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

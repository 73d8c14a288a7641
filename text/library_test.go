package text

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"testing/fstest"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/compose/asset"
)

func TestLibraryBundledFaces(t *testing.T) {
	lib := NewLibrary()

	for _, name := range []string{"", Regular, Bold} {
		face, err := lib.Face(name, 16)
		if err != nil {
			t.Fatalf("Face(%q) error = %v", name, err)
		}
		if face.Size() != 16 {
			t.Errorf("Size() = %v, want 16", face.Size())
		}
		m := face.Metrics()
		if m.Ascent <= 0 || m.Height < m.Ascent {
			t.Errorf("Face(%q).Metrics() = %+v", name, m)
		}
	}
}

func TestLibraryFaceIsCached(t *testing.T) {
	lib := NewLibrary()
	a, err := lib.Face(Regular, 12)
	if err != nil {
		t.Fatal(err)
	}
	b, err := lib.Face(Regular, 12)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Face(Regular, 12) returned different faces for the same key")
	}
}

func TestLibraryLoadsFromFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"fonts/custom.ttf": &fstest.MapFile{Data: goregular.TTF},
	}
	lib := NewLibrary(WithFontFiles(asset.NewStore(fsys), "fonts"))

	face, err := lib.Face("custom", 14)
	if err != nil {
		t.Fatalf("Face(custom) error = %v", err)
	}
	if face.Advance("abc") <= 0 {
		t.Error("Advance(abc) should be positive")
	}

	src, err := lib.Source("custom")
	if err != nil {
		t.Fatal(err)
	}
	if src.Name() != "Go" {
		t.Errorf("Name() = %q, want %q", src.Name(), "Go")
	}
}

func TestLibraryMissingFont(t *testing.T) {
	lib := NewLibrary(WithFontFiles(asset.NewStore(fstest.MapFS{}), "fonts"))

	_, err := lib.Face("missing", 14)
	if !errors.Is(err, asset.ErrNotFound) {
		t.Fatalf("Face(missing) error = %v, want asset.ErrNotFound", err)
	}
	var fe *FontError
	if !errors.As(err, &fe) || fe.Name != "missing" {
		t.Errorf("error = %v, want *FontError for %q", err, "missing")
	}

	// Without a file reader unknown names are also not found.
	if _, err := NewLibrary().Face("other", 10); !errors.Is(err, asset.ErrNotFound) {
		t.Errorf("Face(other) error = %v, want asset.ErrNotFound", err)
	}
}

func TestLibraryInvalidSize(t *testing.T) {
	_, err := NewLibrary().Face(Regular, 0)
	if !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Face(size 0) error = %v, want ErrInvalidSize", err)
	}
}

func TestNewFontSourceErrors(t *testing.T) {
	if _, err := NewFontSource(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewFontSource(nil) error = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewFontSource([]byte("not a font")); err == nil {
		t.Error("NewFontSource(garbage) should fail")
	}
}

func TestFaceAdvanceMonotonic(t *testing.T) {
	for _, shaping := range []bool{false, true} {
		src, err := NewFontSource(goregular.TTF, WithShaping(shaping))
		if err != nil {
			t.Fatal(err)
		}
		face, err := src.Face(18)
		if err != nil {
			t.Fatal(err)
		}
		if face.Advance("") != 0 {
			t.Errorf("shaping=%v: Advance(\"\") = %d, want 0", shaping, face.Advance(""))
		}
		s := "Hello, World"
		prev := 0
		for i := 1; i <= len(s); i++ {
			w := face.Advance(s[:i])
			if w < prev {
				t.Fatalf("shaping=%v: Advance(%q) = %d < %d", shaping, s[:i], w, prev)
			}
			prev = w
		}
	}
}

func TestShapedAdvanceCloseToMeasured(t *testing.T) {
	plain, _ := NewFontSource(goregular.TTF)
	shaped, _ := NewFontSource(goregular.TTF, WithShaping(true))
	pf, _ := plain.Face(20)
	sf, _ := shaped.Face(20)

	s := "The quick brown fox"
	a, b := pf.Advance(s), sf.Advance(s)
	if d := a - b; d < -4 || d > 4 {
		t.Errorf("measured %d vs shaped %d differ by more than 4px", a, b)
	}
}

func TestFaceDraw(t *testing.T) {
	face, err := NewLibrary().Face(Regular, 20)
	if err != nil {
		t.Fatal(err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, 100, 40))
	face.Draw(dst, 5, 5, "Hi", image.NewUniform(color.Black))

	painted := false
	for y := 0; y < 40 && !painted; y++ {
		for x := 0; x < 100; x++ {
			if dst.RGBAAt(x, y).A != 0 {
				painted = true
				if y < 5 {
					t.Errorf("pixel painted above line box at (%d, %d)", x, y)
				}
				break
			}
		}
	}
	if !painted {
		t.Error("Draw did not paint any pixel")
	}
}

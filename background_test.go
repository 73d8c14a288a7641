package compose

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/compose/surface"
)

// paint renders a single 40x40 canvas with the background.
func paint(t *testing.T, bg Background) *image.RGBA {
	t.Helper()
	return render(t, newTestEngine(t), NewCanvas(nil, 40, 40).Background(bg))
}

func TestRoundRectBackground(t *testing.T) {
	img := paint(t, RoundRect{Color: red, Radius: 10})
	if img.RGBAAt(0, 0).A != 0 {
		t.Error("corner should be transparent")
	}
	if img.RGBAAt(20, 20) != red {
		t.Errorf("center = %v, want red", img.RGBAAt(20, 20))
	}

	// Only the top corners are rounded.
	img = paint(t, RoundRect{Color: red, Radius: 10, Corners: surface.TopLeft | surface.TopRight})
	if img.RGBAAt(0, 0).A != 0 {
		t.Error("top-left corner should be transparent")
	}
	if img.RGBAAt(0, 39) != red {
		t.Errorf("bottom-left corner = %v, want red", img.RGBAAt(0, 39))
	}
}

func TestGradientBackground(t *testing.T) {
	from := color.NRGBA{0, 0, 0, 255}
	to := color.NRGBA{255, 255, 255, 255}
	img := paint(t, Gradient{From: from, To: to, Direction: surface.Vertical})
	top, bottom := img.RGBAAt(20, 0), img.RGBAAt(20, 39)
	if top.R > 10 || bottom.R < 245 {
		t.Errorf("gradient ends = %v, %v", top, bottom)
	}
	if mid := img.RGBAAt(20, 20); mid.R < 100 || mid.R > 160 {
		t.Errorf("gradient middle = %v", mid)
	}
}

func TestGlassBackground(t *testing.T) {
	tint := color.NRGBA{255, 255, 255, 128}
	root := NewCanvas(nil, 40, 40).Color(color.RGBA{0, 0, 0, 255}).Add(
		NewSpacer(nil, 20, 20).Background(Glass{Blur: 2, Tint: tint, Radius: 4}),
	)
	img := render(t, newTestEngine(t), root)
	if c := img.RGBAAt(10, 10); c.R < 100 || c.R > 160 {
		t.Errorf("glass pixel = %v, want a half tint over black", c)
	}
	if c := img.RGBAAt(30, 30); c.R != 0 {
		t.Errorf("pixel outside the panel = %v, want black", c)
	}
}

func TestImageBackgroundModes(t *testing.T) {
	src := solid(10, 10, red)
	tests := []struct {
		name  string
		bg    ImageBackground
		pt    image.Point
		alpha func(a uint8) bool
	}{
		{"stretch", ImageBackground{Source: FromImage(src), Mode: ImageStretch}, image.Pt(39, 39), func(a uint8) bool { return a == 255 }},
		{"fixed centered", ImageBackground{Source: FromImage(src), Mode: ImageFixed}, image.Pt(2, 2), func(a uint8) bool { return a == 0 }},
		{"repeat", ImageBackground{Source: FromImage(src), Mode: ImageRepeat}, image.Pt(35, 35), func(a uint8) bool { return a == 255 }},
		{"fade", ImageBackground{Source: FromImage(src), Mode: ImageStretch, FadeStart: 0.5, FadeEnd: 1}, image.Pt(20, 39), func(a uint8) bool { return a < 32 }},
		{"opacity", ImageBackground{Source: FromImage(src), Mode: ImageStretch, Opacity: 0.5}, image.Pt(20, 20), func(a uint8) bool { return a > 110 && a < 145 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := paint(t, tt.bg)
			if a := img.RGBAAt(tt.pt.X, tt.pt.Y).A; !tt.alpha(a) {
				t.Errorf("alpha at %v = %d", tt.pt, a)
			}
		})
	}
}

func TestImageBackgroundEmptyRef(t *testing.T) {
	_, err := newTestEngine(t).Render(t.Context(), NewCanvas(nil, 4, 4).Background(ImageBackground{}))
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Render() error = %v, want ErrInvalidConfiguration", err)
	}
	var le *LayoutError
	if !errors.As(err, &le) || le.Detail != "background" {
		t.Errorf("error = %v, want background LayoutError", err)
	}
}

func TestBackgroundWithoutColor(t *testing.T) {
	tests := []struct {
		name string
		bg   Background
	}{
		{"fill", Fill{}},
		{"dots", Pattern{Kind: Dots}},
		{"checker", Pattern{Kind: Checker, Base: green}},
		{"stripes in layers", Layers{Fill{Color: green}, Pattern{Kind: Stripes}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestEngine(t).Render(t.Context(), NewCanvas(nil, 10, 10).Background(tt.bg))
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("Render() error = %v, want ErrInvalidConfiguration", err)
			}
			var le *LayoutError
			if !errors.As(err, &le) || le.Path != "Canvas" || le.Detail != "background" {
				t.Errorf("error = %v, want background LayoutError at Canvas", err)
			}
		})
	}
}

// TestRoundRectWithoutColors tests that a RoundRect with neither fill nor
// stroke color draws nothing.
func TestRoundRectWithoutColors(t *testing.T) {
	img := paint(t, RoundRect{Radius: 4, StrokeWidth: 2})
	if img.RGBAAt(20, 20).A != 0 || img.RGBAAt(0, 20).A != 0 {
		t.Error("colorless RoundRect should leave the canvas transparent")
	}
}

func TestPatternBackground(t *testing.T) {
	img := paint(t, Pattern{Kind: Checker, Color: red, Base: green, Cell: 4})
	if img.RGBAAt(1, 1) != red {
		t.Errorf("first cell = %v, want red", img.RGBAAt(1, 1))
	}
	if img.RGBAAt(5, 1) != green {
		t.Errorf("second cell = %v, want green", img.RGBAAt(5, 1))
	}

	img = paint(t, Pattern{Kind: Dots, Color: red, Cell: 10, Mark: 6})
	if img.RGBAAt(5, 5).A == 0 {
		t.Error("dot center should be painted")
	}
	if img.RGBAAt(0, 0).A != 0 {
		t.Error("space between dots should be transparent")
	}

	img = paint(t, Pattern{Kind: Stripes, Color: red})
	if img.RGBAAt(0, 0) != red || img.RGBAAt(5, 0).A != 0 {
		t.Errorf("stripes = %v, %v", img.RGBAAt(0, 0), img.RGBAAt(5, 0))
	}
}

func TestParsePatternKind(t *testing.T) {
	for _, k := range []PatternKind{Stripes, Dots, Checker} {
		got, err := ParsePatternKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParsePatternKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParsePatternKind("plaid"); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("ParsePatternKind(plaid) error = %v", err)
	}
}

func TestLayers(t *testing.T) {
	calls := 0
	bg := Layers{Fill{Color: green}, countingBackground{calls: &calls}, Fill{Color: red}}
	img := paint(t, bg)
	if calls != 1 {
		t.Errorf("inner layer drawn %d times, want 1", calls)
	}
	if img.RGBAAt(0, 0) != red {
		t.Errorf("top layer = %v, want red", img.RGBAAt(0, 0))
	}

	refs := Layers{ImageBackground{Source: FromAsset("a", "b.png")}, Fill{}}.Assets()
	if len(refs) != 1 || refs[0] != (Asset{Dir: "a", Path: "b.png"}) {
		t.Errorf("Assets() = %v", refs)
	}
}

func TestBackgroundCoversPaddingNotMargin(t *testing.T) {
	sp := NewSpacer(nil, 10, 10).Padding(2).Margin(3).Background(Fill{Color: red})
	img := render(t, newTestEngine(t), sp)
	if got := img.Bounds().Size(); got != image.Pt(20, 20) {
		t.Fatalf("size = %v, want (20,20)", got)
	}
	if img.RGBAAt(2, 2).A != 0 {
		t.Error("margin should be transparent")
	}
	if img.RGBAAt(3, 3) != red || img.RGBAAt(16, 16) != red {
		t.Error("padding should carry the background")
	}
}

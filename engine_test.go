package compose

import (
	"context"
	"errors"
	"image"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gogpu/compose/asset"
	"github.com/gogpu/compose/cache"
	"github.com/gogpu/compose/internal/parallel"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(WithConfig(Config{Supersample: 0}))
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("New() error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestRenderNilRoot(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.Render(context.Background(), nil); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Render(nil) error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestRenderCanvasSize(t *testing.T) {
	e := newTestEngine(t)
	img := render(t, e, NewCanvas(nil, 64, 32).Color(red).Margin(2))
	if got := img.Bounds().Size(); got != image.Pt(68, 36) {
		t.Errorf("image size = %v, want (68,36)", got)
	}
	if img.RGBAAt(1, 1).A != 0 {
		t.Error("margin should stay transparent")
	}
	if img.RGBAAt(30, 16) != red {
		t.Errorf("canvas pixel = %v, want red", img.RGBAAt(30, 16))
	}
}

func TestRenderPixelCeiling(t *testing.T) {
	calls := 0
	e := newTestEngine(t, WithConfig(Config{MaxPixels: 100 * 100, Supersample: 4}))
	root := NewCanvas(nil, 200, 200).Background(countingBackground{calls: &calls})

	_, err := e.Render(context.Background(), root)
	if !errors.Is(err, ErrCanvasTooLarge) {
		t.Fatalf("Render() error = %v, want ErrCanvasTooLarge", err)
	}
	if calls != 0 {
		t.Errorf("background drawn %d times, want 0", calls)
	}

	// At the ceiling the build succeeds.
	render(t, e, NewCanvas(nil, 100, 100).Background(countingBackground{calls: &calls}))
	if calls != 1 {
		t.Errorf("background drawn %d times, want 1", calls)
	}
}

func TestRenderStackImbalance(t *testing.T) {
	e := newTestEngine(t)
	root := NewCanvas(nil, 50, 50).Add(
		NewVSplit(nil).Add(
			NewSpacer(nil, 10, 10),
			NewSpacer(nil, 10, 10).ID("leaky").Background(leakyBackground{}),
		),
	)
	_, err := e.Render(context.Background(), root)
	if !errors.Is(err, ErrStackImbalance) {
		t.Fatalf("Render() error = %v, want ErrStackImbalance", err)
	}
	var se *StackImbalanceError
	if !errors.As(err, &se) {
		t.Fatalf("error = %T, want *StackImbalanceError", err)
	}
	if se.Path != "Canvas/VSplit[0]/Spacer#leaky" {
		t.Errorf("Path = %q", se.Path)
	}
	if se.After != se.Before+1 {
		t.Errorf("depth %d, want %d", se.After, se.Before+1)
	}
}

func TestRenderCallbackLeak(t *testing.T) {
	e := newTestEngine(t)
	leak := func(dc *DrawContext) error {
		dc.Surface.MoveRegion(image.Point{}, image.Pt(1, 1))
		return nil
	}
	_, err := e.Render(context.Background(), NewCanvas(nil, 10, 10).AfterDraw(leak))
	if !errors.Is(err, ErrStackImbalance) {
		t.Errorf("Render() error = %v, want ErrStackImbalance", err)
	}
}

func TestCallbackDepth(t *testing.T) {
	e := newTestEngine(t)
	depths := make(map[string]int)
	rec := func(name string) DrawFunc {
		return func(dc *DrawContext) error {
			depths[name] = dc.Surface.Depth()
			return nil
		}
	}
	root := NewCanvas(nil, 40, 40).AfterDraw(rec("root")).Add(
		NewFrame(nil).AfterDraw(rec("frame")).Add(
			NewHSplit(nil).AfterDraw(rec("split")).Add(
				NewSpacer(nil, 5, 5).AfterDraw(rec("leaf")),
			),
		),
	)
	render(t, e, root)

	for name, level := range map[string]int{"root": 0, "frame": 1, "split": 2, "leaf": 3} {
		if got, want := depths[name], 2*level+1; got != want {
			t.Errorf("%s callback at depth %d, want %d", name, got, want)
		}
	}
}

func TestCallbackError(t *testing.T) {
	e := newTestEngine(t)
	boom := errors.New("boom")
	_, err := e.Render(context.Background(), NewCanvas(nil, 10, 10).ID("root").AfterDraw(func(*DrawContext) error {
		return boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("Render() error = %v, want boom", err)
	}
	var le *LayoutError
	if !errors.As(err, &le) || le.Path != "Canvas#root" || le.Detail != "post-draw callback" {
		t.Errorf("error = %v", err)
	}
}

func TestRenderDrawsText(t *testing.T) {
	e := newTestEngine(t)
	img := render(t, e, NewTextBox(nil, "ab", TextStyle{Size: 10, Color: red}))
	if got := img.Bounds().Size(); got != image.Pt(20, 10) {
		t.Fatalf("image size = %v, want (20,10)", got)
	}
	if img.RGBAAt(5, 4) != red {
		t.Errorf("glyph pixel = %v, want red", img.RGBAAt(5, 4))
	}
	if img.RGBAAt(10, 4).A != 0 {
		t.Error("gap between glyph boxes should be transparent")
	}
}

// countingResolver serves a fixed image set and counts fetches.
type countingResolver struct {
	asset.Resolver
	fetches atomic.Int32
}

func (c *countingResolver) Image(ctx context.Context, dir, name string) (image.Image, error) {
	c.fetches.Add(1)
	return c.Resolver.Image(ctx, dir, name)
}

func TestRenderAssets(t *testing.T) {
	res := &countingResolver{Resolver: asset.NewStatic(map[string]image.Image{
		"icons/a.png": solid(20, 10, green),
	})}
	cfg := DefaultConfig()
	cfg.AssetDir = "icons"
	e := newTestEngine(t, WithConfig(cfg), WithAssets(res))

	root := NewCanvas(nil, -1, -1).
		Background(ImageBackground{Source: FromAsset("icons", "a.png")}).
		Add(NewVSplit(nil).Add(
			NewImageBox(nil, FromAsset("", "a.png")).Width(40),
			NewImageBox(nil, FromAsset("", "a.png")),
		))
	img := render(t, e, root)

	if got := img.Bounds().Size(); got != image.Pt(40, 30) {
		t.Errorf("image size = %v, want (40,30)", got)
	}
	if n := res.fetches.Load(); n != 1 {
		t.Errorf("fetched %d times, want 1", n)
	}
	if c := img.RGBAAt(20, 10); c.G < 250 || c.A < 250 {
		t.Errorf("image pixel = %v, want green", c)
	}
}

func TestRenderMissingAsset(t *testing.T) {
	e := newTestEngine(t)
	root := NewCanvas(nil, 20, 20).Add(NewImageBox(nil, FromAsset("img", "nope.png")).ID("logo"))
	_, err := e.Render(context.Background(), root)
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("Render() error = %v, want ErrAssetNotFound", err)
	}
	var le *LayoutError
	if !errors.As(err, &le) || le.Path != "Canvas/ImageBox#logo" {
		t.Errorf("error = %v, want LayoutError at Canvas/ImageBox#logo", err)
	}
	if !strings.Contains(err.Error(), "img/nope.png") {
		t.Errorf("error %q should name the asset", err)
	}
}

func TestRenderMissingFont(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Render(context.Background(), NewTextBox(nil, "x", TextStyle{Font: "missing", Size: 10}))
	if !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("Render() error = %v, want ErrAssetNotFound", err)
	}
}

func TestRenderAfterClose(t *testing.T) {
	e := newTestEngine(t, WithAssets(asset.NewStatic(map[string]image.Image{"a.png": solid(2, 2, red)})))
	e.Close()
	_, err := e.Render(context.Background(), NewImageBox(nil, FromAsset("", "a.png")))
	if !errors.Is(err, parallel.ErrClosed) {
		t.Errorf("Render() error = %v, want parallel.ErrClosed", err)
	}
	// Trees without assets still render.
	render(t, e, NewSpacer(nil, 3, 3))
}

func TestRenderKey(t *testing.T) {
	e := newTestEngine(t, WithRenderCache(8))
	builds := 0
	build := func(b *Builder) (Widget, error) {
		builds++
		c := NewCanvas(b, 8, 8).Color(red)
		return c, nil
	}

	first, err := e.RenderKey(context.Background(), "card:1", build)
	if err != nil {
		t.Fatalf("RenderKey() error = %v", err)
	}
	second, err := e.RenderKey(context.Background(), "card:1", build)
	if err != nil {
		t.Fatalf("RenderKey() error = %v", err)
	}
	if builds != 1 {
		t.Errorf("build ran %d times, want 1", builds)
	}
	if first != second {
		t.Error("cached render should return the same bitmap")
	}
	if st := e.RenderCacheStats(); st.Hits != 1 || st.Len != 1 {
		t.Errorf("stats = %+v, want 1 hit and 1 entry", st)
	}

	// An empty key bypasses the cache.
	if _, err := e.RenderKey(context.Background(), "", build); err != nil || builds != 2 {
		t.Errorf("uncached RenderKey: err = %v, builds = %d", err, builds)
	}
}

func TestRenderKeyOpenScope(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.RenderKey(context.Background(), "k", func(b *Builder) (Widget, error) {
		c := NewCanvas(b, 4, 4)
		b.Open(c)
		return c, nil
	})
	if !errors.Is(err, ErrStackImbalance) {
		t.Errorf("RenderKey() error = %v, want ErrStackImbalance", err)
	}
	if st := e.RenderCacheStats(); st != (cache.Stats{}) {
		t.Errorf("stats without cache = %+v", st)
	}
}

func TestRenderCancelled(t *testing.T) {
	e := newTestEngine(t, WithAssets(asset.NewStatic(map[string]image.Image{"a.png": solid(2, 2, red)})))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Render(ctx, NewImageBox(nil, FromAsset("", "a.png")))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

// TestStackDepthDeepTree tests that every widget of a deep mixed tree sees
// the region stack at the depth its nesting implies, so no subtree leaks
// or over-pops frames into its siblings.
func TestStackDepthDeepTree(t *testing.T) {
	orders := [][]string{
		{"vsplit", "frame", "grid", "hsplit", "frame", "vsplit", "grid"},
		{"grid", "hsplit", "grid", "frame", "vsplit", "hsplit", "frame"},
	}
	for _, order := range orders {
		t.Run(strings.Join(order, "/"), func(t *testing.T) {
			calls := 0
			expect := func(level int, name string) DrawFunc {
				return func(dc *DrawContext) error {
					calls++
					if got, want := dc.Surface.Depth(), 2*level+1; got != want {
						t.Errorf("%s at level %d: depth %d, want %d", name, level, got, want)
					}
					return nil
				}
			}

			var container func(level int) Widget
			container = func(level int) Widget {
				children := []Widget{
					NewTextBox(nil, "ab", TextStyle{Size: 10}).Padding(1).AfterDraw(expect(level+1, "text")),
					NewSpacer(nil, 4, 3).Margin(1).Offset(2, -1).AfterDraw(expect(level+1, "spacer")),
				}
				if level < len(order) {
					children = append([]Widget{container(level + 1)}, children...)
				}
				kind := order[level-1]
				after := expect(level, kind)
				switch kind {
				case "vsplit":
					return NewVSplit(nil).Separator(2).Add(children...).AfterDraw(after)
				case "hsplit":
					return NewHSplit(nil).Separator(1).Padding(1).Add(children...).AfterDraw(after)
				case "grid":
					return NewGrid(nil).Cols(2).Separator(1).Add(children...).AfterDraw(after)
				default:
					return NewFrame(nil).Padding(2).Add(children...).AfterDraw(after)
				}
			}

			root := NewCanvas(nil, -1, -1).AfterDraw(expect(0, "canvas")).Add(container(1))
			render(t, newTestEngine(t), root)

			if want := 1 + 3*len(order); calls != want {
				t.Errorf("%d callbacks ran, want %d", calls, want)
			}
		})
	}
}

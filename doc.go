// Package compose builds raster images from a tree of layout widgets.
//
// # Overview
//
// A layout is a tree of widgets: frames, horizontal and vertical splits,
// grids, text boxes, image boxes and spacers. Every widget carries a box
// model (size, padding, margin, offset and anchor), an optional
// background, an optional drop shadow and optional draw callbacks. The
// [Engine] measures the tree bottom-up, places it top-down and paints it
// into an [image.RGBA] whose size is the root widget's outer size.
//
// # Quick Start
//
//	import "github.com/gogpu/compose"
//
//	e, err := compose.New(compose.WithAssets(asset.DirStore("assets")))
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	b := e.NewBuilder()
//	root := compose.NewCanvas(b, 400, 120).Color(compose.MustHex("#203040"))
//	err = b.Within(root, func() error {
//	    compose.NewTextBox(b, "Hello", compose.TextStyle{Size: 24, Color: color.White})
//	    return nil
//	})
//	if err != nil {
//	    return err
//	}
//	img, err := e.Render(ctx, root)
//
// # Building
//
// A [Builder] keeps a stack of open containers; widgets created with a
// builder attach to the innermost open container. [Builder.Within] opens
// a container, runs a function and closes it again even when the function
// fails or panics. Widgets created with a nil builder are detached and can
// be added to a container later.
//
// # Rendering
//
// Assets referenced by image boxes and image backgrounds are fetched
// concurrently before painting. Painting is single-threaded and visits
// widgets in tree order. [Engine.RenderKey] memoizes finished bitmaps by a
// caller-chosen key when the engine was created with [WithRenderCache].
//
// # Coordinate System
//
// Coordinates are integer pixels with the origin at the top-left corner
// of the canvas. X increases right and Y increases down.
//
// # Errors
//
// Layout failures are reported as [*LayoutError] values carrying the
// widget path (for example "Canvas/VSplit[1]/TextBox#title") and wrapping
// one of the package sentinels such as [ErrLayoutOverflow].
package compose

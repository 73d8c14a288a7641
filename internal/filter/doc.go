// Package filter provides the pixel effects the drawing surface and the
// thumbnail compositor layer on top of imaging:
//   - Drop shadow (alpha silhouette + blur + offset + colorize)
//   - Opacity scaling
//   - Vertical fade-out
//
// Filters never modify their input; each returns a new NRGBA image.
package filter

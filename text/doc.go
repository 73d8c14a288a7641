// Package text provides fonts and line fitting for compose.
//
// The pipeline follows the usual split between heavyweight and lightweight
// font objects:
//
//   - FontSource: a parsed TTF/OTF file, shared across sizes
//   - Face: a source at one pixel size, measurable and drawable
//   - Library: maps logical font names and sizes to faces (the
//     font-resolution collaborator used by widgets)
//
// Measurement uses golang.org/x/image/font by default. Sources created
// with WithShaping measure through go-text/typesetting's HarfBuzz shaper
// instead, which accounts for kerning and ligatures.
//
// Line fitting:
//
//	prefix := text.FitWidth(face, "Hello World", 80)
//	lines := text.Wrap(face, s, text.WrapOptions{MaxWidth: 300, MaxLines: 2})
package text

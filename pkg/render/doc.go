// Package render turns generated scenes into files.
//
// # Overview
//
// A [mark.Scene] is pure data. This package emits it as:
//
//   - SVG via [RenderSVG]: plain tag emission, byte-stable for a given scene
//   - PNG via [RenderPNG]: an in-process rasterizer built on fogleman/gg
//   - Thumbnails via [RenderThumbnail]: a small PNG preview
//   - JSON via [RenderJSON]: the scene itself, indented
//   - PDF via [ToPDF]: SVG conversion through the external rsvg-convert tool
//
// The [explain] subpackage renders generation traces with Graphviz.
//
// # Format Conversion
//
// [ToPDF] converts any SVG using rsvg-convert (from librsvg); check
// [HasConverter] first. [RenderPNG] does not need it.
//
//	svg := render.RenderSVG(scene)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.RenderPNG(scene, 3)
//
// [explain]: github.com/matzehuels/brandmark/pkg/render/explain
package render

// Package explain renders generation traces as Graphviz diagrams.
//
// A [mark.Trace] records how a scene was derived: the seed composite, its
// hash, the initial stream state, the two planning draws and every per-layer
// draw. [ToDOT] lays this out as a top-to-bottom chain of boxes, one per
// stage, and [RenderSVG] runs it through Graphviz in-process.
//
//	_, trace, err := mark.New().GenerateTrace(spec)
//	dot := explain.ToDOT(trace)
//	svg, err := explain.RenderSVG(ctx, dot)
//
// [Text] produces the same information as plain text for terminals.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// generation; no Graphviz installation is required.
package explain

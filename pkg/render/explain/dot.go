package explain

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/render"
)

// ToDOT converts a trace to Graphviz DOT source.
func ToDOT(t *mark.Trace) string {
	var buf bytes.Buffer
	buf.WriteString("digraph trace {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q];\n", "composite", "seed composite\n"+t.Composite)
	fmt.Fprintf(&buf, "  %q [label=%q];\n", "hash", "fnv-1a\n"+strconv.FormatUint(uint64(t.Hash), 10))

	stateAttrs := fmt.Sprintf("label=%q", "initial state\n"+strconv.FormatUint(uint64(t.InitialState), 10))
	if t.Coerced() {
		stateAttrs += ", fillcolor=lightyellow, style=\"rounded,filled,dashed\""
	}
	fmt.Fprintf(&buf, "  %q [%s];\n", "state", stateAttrs)

	fmt.Fprintf(&buf, "  %q [label=%q];\n", "plan", planLabel(t))

	nodes := []string{"composite", "hash", "state", "plan"}
	for i := range t.Decision.Layers {
		id := "layer" + strconv.Itoa(i)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, layerLabel(i, t.Layer(i)))
		nodes = append(nodes, id)
	}

	buf.WriteString("\n")
	for i := 1; i < len(nodes); i++ {
		fmt.Fprintf(&buf, "  %q -> %q;\n", nodes[i-1], nodes[i])
	}

	buf.WriteString("}\n")
	return buf.String()
}

func planLabel(t *mark.Trace) string {
	lines := []string{"plan"}
	for _, d := range t.Layer(-1) {
		lines = append(lines, fmt.Sprintf("%s %s", d.Stage, fmtValue(d.Value)))
	}
	d := t.Decision
	lines = append(lines, fmt.Sprintf("→ %s / %s / %d layers", d.Layout, d.Shape, d.Layers))
	return strings.Join(lines, "\n")
}

func layerLabel(i int, draws []mark.Draw) string {
	lines := []string{"layer " + strconv.Itoa(i)}
	for _, d := range draws {
		lines = append(lines, fmt.Sprintf("%s %s", d.Stage, fmtValue(d.Value)))
	}
	return strings.Join(lines, "\n")
}

func fmtValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root tag with a unitless one
// anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

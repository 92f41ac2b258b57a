package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/brandmark/pkg/mark"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	idSuffix string
	idSet    bool
}

// WithIDSuffix sets the suffix appended to gradient ids. It defaults to the
// scene seed so several marks can be inlined into one document.
func WithIDSuffix(s string) SVGOption {
	return func(r *svgRenderer) { r.idSuffix, r.idSet = s, true }
}

// RenderSVG emits the scene as a standalone SVG document.
func RenderSVG(scene mark.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.idSet {
		r.idSuffix = scene.Seed
	}
	w, h := mark.Num(scene.Canvas.Width), mark.Num(scene.Canvas.Height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg id="%s" xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		attr("svg-"+scene.Seed), w, h, w, h)

	buf.WriteString("  <defs>\n")
	for _, g := range scene.Gradients {
		fmt.Fprintf(&buf, `    <linearGradient id="%s" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
			attr(r.gradientID(g.ID)), mark.Num(g.X1), mark.Num(g.Y1), mark.Num(g.X2), mark.Num(g.Y2))
		for _, s := range g.Stops {
			fmt.Fprintf(&buf, `      <stop offset="%s" stop-color="%s"/>`+"\n", attr(s.Offset), attr(s.Color))
		}
		buf.WriteString("    </linearGradient>\n")
	}
	buf.WriteString("  </defs>\n")
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" fill="transparent"/>`+"\n", w, h)

	translate := fmt.Sprintf("translate(%s, %s)", mark.Num(scene.Offset.X), mark.Num(scene.Offset.Y))

	fmt.Fprintf(&buf, `  <g transform="%s">`+"\n", translate)
	for _, e := range scene.Elements {
		r.writeElement(&buf, e)
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, `  <g transform="%s">`+"\n", translate)
	for _, t := range scene.Text {
		writeText(&buf, t)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) gradientID(id string) string {
	if r.idSuffix == "" {
		return id
	}
	return id + "-" + r.idSuffix
}

func (r *svgRenderer) paint(ref string) string {
	if ref == mark.PaintNone || ref == "" {
		return mark.PaintNone
	}
	return "url(#" + r.gradientID(ref) + ")"
}

func (r *svgRenderer) writeElement(buf *bytes.Buffer, e mark.Element) {
	common := fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%s" stroke-linejoin="round" stroke-linecap="round" opacity="%s"`,
		attr(r.paint(e.Fill)), attr(r.paint(e.Stroke)), mark.Num(e.StrokeWidth), mark.Num(e.Opacity))

	switch e.Type {
	case mark.ElementCircle:
		c := e.Circle
		fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s" %s/>`+"\n",
			mark.Num(c.Center.X), mark.Num(c.Center.Y), mark.Num(c.R), common)
	case mark.ElementPolygon:
		p := e.Polygon
		transform := ""
		if p.Rotation != nil {
			transform = fmt.Sprintf(` transform="%s"`, p.Rotation.Transform())
		}
		fmt.Fprintf(buf, `    <polygon points="%s"%s %s/>`+"\n", p.PointsAttr(), transform, common)
	case mark.ElementPath:
		fmt.Fprintf(buf, `    <path d="%s" %s/>`+"\n", e.Path.D(), common)
	case mark.ElementLine:
		l := e.Line
		fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" %s/>`+"\n",
			mark.Num(l.From.X), mark.Num(l.From.Y), mark.Num(l.To.X), mark.Num(l.To.Y), common)
	}
}

func writeText(buf *bytes.Buffer, t mark.Text) {
	fmt.Fprintf(buf, `    <text x="%s" y="%s" font-family="%s" font-size="%s" font-weight="%d" fill="%s"`,
		mark.Num(t.X), mark.Num(t.Y), attr(t.FontFamily), mark.Num(t.FontSize), t.FontWeight, attr(t.Fill))
	if t.LetterSpacing != "" {
		fmt.Fprintf(buf, ` letter-spacing="%s"`, attr(t.LetterSpacing))
	}
	buf.WriteString(">")
	_ = xml.EscapeText(buf, []byte(t.Content))
	buf.WriteString("</text>\n")
}

func attr(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

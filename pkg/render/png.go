package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/palette"
)

// DefaultPixelRatio is the device pixel ratio used for PNG export.
const DefaultPixelRatio = 3.0

// RenderPNG rasterizes the scene at pixelRatio device pixels per canvas unit.
// pixelRatio <= 0 means [DefaultPixelRatio].
//
// Text is drawn with the embedded Go fonts; the scene's font family chain is
// a CSS hint that only browsers and rsvg-convert can honor.
func RenderPNG(scene mark.Scene, pixelRatio float64) ([]byte, error) {
	img, err := Rasterize(scene, pixelRatio)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := gg.NewContextForRGBA(img).EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Rasterize draws the scene into a new RGBA image with a transparent
// background.
func Rasterize(scene mark.Scene, pixelRatio float64) (*image.RGBA, error) {
	if pixelRatio <= 0 {
		pixelRatio = DefaultPixelRatio
	}
	w := int(math.Round(scene.Canvas.Width * pixelRatio))
	h := int(math.Round(scene.Canvas.Height * pixelRatio))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rasterize: empty canvas %vx%v", scene.Canvas.Width, scene.Canvas.Height)
	}

	r := &rasterizer{
		scene: scene,
		ratio: pixelRatio,
		dst:   image.NewRGBA(image.Rect(0, 0, w, h)),
		layer: gg.NewContext(w, h),
	}
	for _, e := range scene.Elements {
		if err := r.element(e); err != nil {
			return nil, err
		}
	}
	if err := r.text(); err != nil {
		return nil, err
	}
	return r.dst, nil
}

type rasterizer struct {
	scene mark.Scene
	ratio float64
	dst   *image.RGBA
	layer *gg.Context
}

// device maps a content-group point to pixel coordinates.
func (r *rasterizer) device(p mark.Point) mark.Point {
	return mark.Point{
		X: (p.X + r.scene.Offset.X) * r.ratio,
		Y: (p.Y + r.scene.Offset.Y) * r.ratio,
	}
}

// element draws e alone on the scratch layer and composites the layer at the
// element's opacity, so fill and stroke overlap the way SVG group opacity does.
func (r *rasterizer) element(e mark.Element) error {
	dc := r.layer
	dc.SetColor(color.Transparent)
	dc.Clear()
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.SetLineWidth(e.StrokeWidth * r.ratio)

	pts := r.outline(e)
	fill, err := r.pattern(e.Fill, pts)
	if err != nil {
		return err
	}
	stroke, err := r.pattern(e.Stroke, pts)
	if err != nil {
		return err
	}

	switch e.Type {
	case mark.ElementCircle:
		c := r.device(e.Circle.Center)
		dc.DrawCircle(c.X, c.Y, e.Circle.R*r.ratio)
	case mark.ElementPolygon:
		for i, p := range pts {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		}
		dc.ClosePath()
	case mark.ElementPath:
		p := e.Path
		s, c1, c2, end := r.device(p.Start), r.device(p.C1), r.device(p.C2), r.device(p.End)
		dc.MoveTo(s.X, s.Y)
		dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
	case mark.ElementLine:
		from, to := r.device(e.Line.From), r.device(e.Line.To)
		dc.DrawLine(from.X, from.Y, to.X, to.Y)
	default:
		return fmt.Errorf("rasterize: unknown element type %q", e.Type)
	}

	if fill != nil {
		dc.SetFillStyle(fill)
		dc.FillPreserve()
	}
	if stroke != nil {
		dc.SetStrokeStyle(stroke)
		dc.Stroke()
	}
	dc.ClearPath()

	alpha := uint8(math.Round(clamp01(e.Opacity) * 255))
	draw.DrawMask(r.dst, r.dst.Bounds(), dc.Image(), image.Point{}, image.NewUniform(color.Alpha{A: alpha}), image.Point{}, draw.Over)
	return nil
}

// outline returns the device-space points that bound e. Polygon rotation is
// applied here because gg patterns are evaluated in device space.
func (r *rasterizer) outline(e mark.Element) []mark.Point {
	switch e.Type {
	case mark.ElementCircle:
		c, rad := e.Circle.Center, e.Circle.R
		return r.devices(mark.Point{X: c.X - rad, Y: c.Y - rad}, mark.Point{X: c.X + rad, Y: c.Y + rad})
	case mark.ElementPolygon:
		pts := e.Polygon.Points
		if rot := e.Polygon.Rotation; rot != nil {
			pts = rotate(pts, rot.Angle, rot.Center)
		}
		return r.devices(pts...)
	case mark.ElementPath:
		p := e.Path
		return r.devices(p.Start, p.C1, p.C2, p.End)
	case mark.ElementLine:
		return r.devices(e.Line.From, e.Line.To)
	}
	return nil
}

func (r *rasterizer) devices(pts ...mark.Point) []mark.Point {
	out := make([]mark.Point, len(pts))
	for i, p := range pts {
		out[i] = r.device(p)
	}
	return out
}

// pattern resolves a paint reference to a gradient spanning the bounding box
// of pts. A nil pattern means no paint.
func (r *rasterizer) pattern(ref string, pts []mark.Point) (gg.Pattern, error) {
	if ref == "" || ref == mark.PaintNone {
		return nil, nil
	}
	g, ok := r.scene.Gradient(ref)
	if !ok {
		return nil, fmt.Errorf("rasterize: undefined gradient %q", ref)
	}

	minX, minY, maxX, maxY := bounds(pts)
	// Degenerate boxes (axis-aligned lines) get one pixel of extent so the
	// gradient still has a direction.
	bw, bh := math.Max(maxX-minX, 1), math.Max(maxY-minY, 1)

	lg := gg.NewLinearGradient(minX+g.X1*bw, minY+g.Y1*bh, minX+g.X2*bw, minY+g.Y2*bh)
	for _, s := range g.Stops {
		c, err := palette.Parse(s.Color)
		if err != nil {
			return nil, err
		}
		lg.AddColorStop(stopOffset(s.Offset), c.Clamped())
	}
	return lg, nil
}

func (r *rasterizer) text() error {
	dc := gg.NewContextForRGBA(r.dst)
	for _, t := range r.scene.Text {
		face, err := goFace(t.FontWeight >= 600, t.FontSize*r.ratio)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		dc.SetColor(cssColor(t.Fill))
		p := r.device(mark.Point{X: t.X, Y: t.Y})
		dc.DrawString(t.Content, p.X, p.Y)
	}
	return nil
}

var goFonts = sync.OnceValues(func() ([2]*truetype.Font, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return [2]*truetype.Font{}, fmt.Errorf("parse go regular: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return [2]*truetype.Font{}, fmt.Errorf("parse go bold: %w", err)
	}
	return [2]*truetype.Font{regular, bold}, nil
})

func goFace(bold bool, size float64) (font.Face, error) {
	fonts, err := goFonts()
	if err != nil {
		return nil, err
	}
	f := fonts[0]
	if bold {
		f = fonts[1]
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}

// cssColor reads the small set of CSS colors the composer emits: hex tokens,
// "white" and rgba(r,g,b,a). Anything else draws white.
func cssColor(s string) color.Color {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	switch {
	case s == "white":
		return color.White
	case strings.HasPrefix(s, "rgba("):
		var r, g, b int
		var a float64
		if _, err := fmt.Sscanf(s, "rgba(%d,%d,%d,%g)", &r, &g, &b, &a); err == nil {
			return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(math.Round(clamp01(a) * 255))}
		}
	default:
		if c, err := palette.Parse(s); err == nil {
			return c.Clamped()
		}
	}
	return color.White
}

func stopOffset(s string) float64 {
	var v float64
	if strings.HasSuffix(s, "%") {
		if _, err := fmt.Sscanf(s, "%g%%", &v); err == nil {
			return clamp01(v / 100)
		}
		return 0
	}
	if _, err := fmt.Sscanf(s, "%g", &v); err == nil {
		return clamp01(v)
	}
	return 0
}

func rotate(pts []mark.Point, deg float64, c mark.Point) []mark.Point {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	out := make([]mark.Point, len(pts))
	for i, p := range pts {
		dx, dy := p.X-c.X, p.Y-c.Y
		out[i] = mark.Point{X: c.X + dx*cos - dy*sin, Y: c.Y + dx*sin + dy*cos}
	}
	return out
}

func bounds(pts []mark.Point) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

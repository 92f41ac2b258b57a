package mark

import (
	"math"

	"github.com/matzehuels/brandmark/pkg/errors"
)

const (
	originX = 140.0
	originY = 140.0

	rowStep     = 48.0 // 0.6 of an 80px unit
	stackStep   = 44.0 // 0.55 of an 80px unit
	clusterSpan = 60.0

	minimalistScaleStep = 0.10
	baseScaleStep       = 0.12
	scaleStepSpread     = 0.05

	baseOpacity    = 0.9
	opacityFalloff = 0.18
)

// Placement is the per-layer transform shared by every shape.
type Placement struct {
	X, Y    float64
	Scale   float64
	Rotate  float64 // degrees
	Opacity float64
}

// Glyph emits the primitives of one layer. Each shape is its own type
// carrying only the constants its geometry needs.
type Glyph interface {
	Elements(p Placement) []Element
}

// Circle is a single circle of radius R*scale.
type Circle struct{ R float64 }

// Triangle is an isosceles triangle rotated about the layer center.
type Triangle struct {
	Apex     float64 // distance from center to the top vertex
	HalfBase float64 // half the base width
	Base     float64 // distance from center to the base
}

// Diamond is a square standing on a vertex, rotated about the layer center.
type Diamond struct{ R float64 }

// Hex is a regular hexagon with the rotation baked into the vertex angles.
type Hex struct{ R float64 }

// Swoosh is an open cubic curve. Its control points do not scale.
type Swoosh struct{ Width float64 }

// Spark is a four-pointed star made of two cardinal and two diagonal strokes.
type Spark struct {
	Arm           float64
	DiagonalRatio float64
	CardinalWidth float64
	DiagonalWidth float64
}

// GlyphFor returns the geometry for shape.
func GlyphFor(shape Shape) (Glyph, error) {
	switch shape {
	case ShapeCircle:
		return Circle{R: 50}, nil
	case ShapeTriangle:
		return Triangle{Apex: 56, HalfBase: 48, Base: 40}, nil
	case ShapeDiamond:
		return Diamond{R: 60}, nil
	case ShapeHex:
		return Hex{R: 56}, nil
	case ShapeSwoosh:
		return Swoosh{Width: 18}, nil
	case ShapeSpark:
		return Spark{Arm: 70, DiagonalRatio: 0.7, CardinalWidth: 12, DiagonalWidth: 8}, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported shape: %q", shape)
}

func (g Circle) Elements(p Placement) []Element {
	return []Element{{
		Type:    ElementCircle,
		Circle:  &CircleGeom{Center: Point{p.X, p.Y}, R: g.R * p.Scale},
		Opacity: p.Opacity,
	}}
}

func (g Triangle) Elements(p Placement) []Element {
	s := p.Scale
	return []Element{polygon(p, []Point{
		{p.X, p.Y - g.Apex*s},
		{p.X - g.HalfBase*s, p.Y + g.Base*s},
		{p.X + g.HalfBase*s, p.Y + g.Base*s},
	}, true)}
}

func (g Diamond) Elements(p Placement) []Element {
	r := g.R * p.Scale
	return []Element{polygon(p, []Point{
		{p.X, p.Y - r},
		{p.X + r, p.Y},
		{p.X, p.Y + r},
		{p.X - r, p.Y},
	}, true)}
}

func (g Hex) Elements(p Placement) []Element {
	r := g.R * p.Scale
	pts := make([]Point, 6)
	for k := range pts {
		a := (math.Pi*2)/6*float64(k) + p.Rotate*math.Pi/180
		pts[k] = Point{p.X + math.Cos(a)*r, p.Y + math.Sin(a)*r}
	}
	return []Element{polygon(p, pts, false)}
}

func (g Swoosh) Elements(p Placement) []Element {
	return []Element{{
		Type: ElementPath,
		Path: &PathGeom{
			Start: Point{p.X - 60, p.Y},
			C1:    Point{p.X - 20, p.Y - 80},
			C2:    Point{p.X + 40, p.Y + 80},
			End:   Point{p.X + 90, p.Y},
			Width: g.Width * p.Scale,
		},
		Opacity: p.Opacity,
	}}
}

func (g Spark) Elements(p Placement) []Element {
	l := g.Arm * p.Scale
	d := l * g.DiagonalRatio
	cw := g.CardinalWidth * p.Scale
	dw := g.DiagonalWidth * p.Scale
	return []Element{
		line(p, Point{p.X - l, p.Y}, Point{p.X + l, p.Y}, cw),
		line(p, Point{p.X, p.Y - l}, Point{p.X, p.Y + l}, cw),
		line(p, Point{p.X - d, p.Y - d}, Point{p.X + d, p.Y + d}, dw),
		line(p, Point{p.X - d, p.Y + d}, Point{p.X + d, p.Y - d}, dw),
	}
}

func polygon(p Placement, pts []Point, rotated bool) Element {
	geom := &PolygonGeom{Points: pts}
	if rotated {
		geom.Rotation = &Rotation{Angle: p.Rotate, Center: Point{p.X, p.Y}}
	}
	return Element{Type: ElementPolygon, Polygon: geom, Opacity: p.Opacity}
}

func line(p Placement, from, to Point, width float64) Element {
	return Element{
		Type:    ElementLine,
		Line:    &LineGeom{From: from, To: to, Width: width},
		Opacity: p.Opacity,
	}
}

// Build emits the glyph primitives for every layer of d. Each layer draws,
// in order: jitter-x, jitter-y, the two cluster offsets (cluster layout
// only), the scale step (all styles but Minimalist) and the rotation.
func Build(s *Stream, style Style, d Decision) ([]Element, error) {
	glyph, err := GlyphFor(d.Shape)
	if err != nil {
		return nil, err
	}

	var elems []Element
	for i := range d.Layers {
		p := place(s, style, d.Layout, i)
		elems = append(elems, glyph.Elements(p)...)
	}
	return elems, nil
}

func place(s *Stream, style Style, layout Layout, i int) Placement {
	jitterAmp := 6.0
	if style == StylePlayful {
		jitterAmp = 14
	}
	jx := (s.next("jitter-x", i) - 0.5) * jitterAmp
	jy := (s.next("jitter-y", i) - 0.5) * jitterAmp

	var offX, offY float64
	switch layout {
	case LayoutRow:
		offX = float64(i) * rowStep
	case LayoutStack:
		offY = float64(i) * stackStep
	case LayoutCluster:
		offX = (s.next("cluster-x", i) - 0.5) * clusterSpan
		offY = (s.next("cluster-y", i) - 0.5) * clusterSpan
	}

	step := minimalistScaleStep
	if style != StyleMinimalist {
		step = baseScaleStep + s.next("scale", i)*scaleStepSpread
	}

	rotAmp := 22.0
	if style == StyleCorporate {
		rotAmp = 6
	}
	rotate := (s.next("rotate", i) - 0.5) * rotAmp

	return Placement{
		X:       originX + offX + jx,
		Y:       originY + offY + jy,
		Scale:   1 - float64(i)*step,
		Rotate:  rotate,
		Opacity: baseOpacity - float64(i)*opacityFalloff,
	}
}

package mark

import (
	"strconv"
	"strings"
)

// ElementType is the primitive kind of an [Element].
type ElementType string

// Element types.
const (
	ElementCircle  ElementType = "circle"
	ElementPolygon ElementType = "polygon"
	ElementPath    ElementType = "path"
	ElementLine    ElementType = "line"
)

// Point is a 2D coordinate in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Element is one rendered primitive. Exactly one geometry field is set,
// matching Type. Paint fields are filled in by [Compose]: Stroke is a
// gradient id and Fill is a gradient id or [PaintNone].
type Element struct {
	Type    ElementType  `json:"type"`
	Circle  *CircleGeom  `json:"circle,omitempty"`
	Polygon *PolygonGeom `json:"polygon,omitempty"`
	Path    *PathGeom    `json:"path,omitempty"`
	Line    *LineGeom    `json:"line,omitempty"`

	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Opacity     float64 `json:"opacity"`
}

// CircleGeom is a circle.
type CircleGeom struct {
	Center Point   `json:"center"`
	R      float64 `json:"r"`
}

// PolygonGeom is a closed polygon, optionally rotated about a point.
type PolygonGeom struct {
	Points   []Point   `json:"points"`
	Rotation *Rotation `json:"rotation,omitempty"`
}

// Rotation rotates a primitive by Angle degrees about Center.
type Rotation struct {
	Angle  float64 `json:"angle"`
	Center Point   `json:"center"`
}

// PathGeom is an open cubic Bézier segment.
type PathGeom struct {
	Start Point   `json:"start"`
	C1    Point   `json:"c1"`
	C2    Point   `json:"c2"`
	End   Point   `json:"end"`
	Width float64 `json:"width"`
}

// LineGeom is a straight stroke.
type LineGeom struct {
	From  Point   `json:"from"`
	To    Point   `json:"to"`
	Width float64 `json:"width"`
}

// PointsAttr formats the polygon vertices as an SVG points attribute.
func (g *PolygonGeom) PointsAttr() string {
	parts := make([]string, len(g.Points))
	for i, p := range g.Points {
		parts[i] = Num(p.X) + "," + Num(p.Y)
	}
	return strings.Join(parts, " ")
}

// D formats the path as an SVG path command.
func (g *PathGeom) D() string {
	return "M " + Num(g.Start.X) + " " + Num(g.Start.Y) +
		" C " + Num(g.C1.X) + " " + Num(g.C1.Y) +
		", " + Num(g.C2.X) + " " + Num(g.C2.Y) +
		", " + Num(g.End.X) + " " + Num(g.End.Y)
}

// Transform formats the rotation as an SVG transform attribute.
func (r *Rotation) Transform() string {
	return "rotate(" + Num(r.Angle) + " " + Num(r.Center.X) + " " + Num(r.Center.Y) + ")"
}

// Num formats v with the shortest representation that round-trips, so the
// same scene always serializes to the same bytes.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package mark

// Layout is the spatial arrangement of the glyph layers.
type Layout string

// Layout archetypes.
const (
	LayoutStack   Layout = "stack"
	LayoutRow     Layout = "row"
	LayoutCluster Layout = "cluster"
)

// Shape is the primitive family drawn on every layer.
type Shape string

// Glyph shapes.
const (
	ShapeCircle   Shape = "circle"
	ShapeTriangle Shape = "triangle"
	ShapeDiamond  Shape = "diamond"
	ShapeHex      Shape = "hex"
	ShapeSwoosh   Shape = "swoosh"
	ShapeSpark    Shape = "spark"
)

// The order of these lists decides which option a draw selects.
var (
	layouts = []Layout{LayoutStack, LayoutRow, LayoutCluster}
	shapes  = []Shape{ShapeCircle, ShapeTriangle, ShapeDiamond, ShapeHex, ShapeSwoosh, ShapeSpark}
)

// Decision is the outcome of planning a mark.
type Decision struct {
	Layout Layout `json:"layout"`
	Shape  Shape  `json:"shape"`
	Layers int    `json:"layers"`
}

// Plan consumes exactly two draws, layout first and shape second. The layer
// count depends on style only.
func Plan(s *Stream, style Style) Decision {
	layout := pick(s, "layout", -1, layouts)
	shape := pick(s, "shape", -1, shapes)
	return Decision{Layout: layout, Shape: shape, Layers: LayerCount(style)}
}

// LayerCount returns the number of layers drawn for style.
func LayerCount(style Style) int {
	switch style {
	case StyleFuturistic:
		return 4
	case StylePlayful:
		return 5
	default:
		return 3
	}
}

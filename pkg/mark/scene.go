package mark

import (
	"github.com/matzehuels/brandmark/pkg/errors"
)

// Gradient ids referenced by element paint.
const (
	GradientPrimary   = "g1"
	GradientSecondary = "g2"

	// PaintNone disables fill on stroke-only primitives.
	PaintNone = "none"
)

// Fallback copy used when a LogoSpec leaves a text field empty.
const (
	FallbackHeadline = "Your Campaign"
	FallbackSubline  = "High-impact Meta creative"
)

const (
	defaultStrokeWidth = 10.0

	contentOffsetX = 0.08
	contentOffsetY = 0.16

	headlineColor = "white"
	sublineColor  = "rgba(226,232,240,0.9)"
)

// Canvas is the output size in canvas units.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CanvasFor returns the canvas size for aspect. Unknown aspects fail rather
// than falling back to square.
func CanvasFor(aspect Aspect) (Canvas, error) {
	switch aspect {
	case Aspect1x1:
		return Canvas{Width: 1000, Height: 1000}, nil
	case Aspect4x5:
		return Canvas{Width: 800, Height: 1000}, nil
	case Aspect9x16:
		return Canvas{Width: 900, Height: 1600}, nil
	}
	return Canvas{}, errors.New(errors.ErrCodeInvalidAspect, "unsupported aspect: %q", aspect)
}

// Stop is a gradient color stop.
type Stop struct {
	Offset string `json:"offset"`
	Color  string `json:"color"`
}

// Gradient is a linear gradient in objectBoundingBox units.
type Gradient struct {
	ID    string  `json:"id"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Stops []Stop  `json:"stops"`
}

// Text is a positioned text block in content-group coordinates.
type Text struct {
	Content       string  `json:"content"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	FontFamily    string  `json:"fontFamily"`
	FontSize      float64 `json:"fontSize"`
	FontWeight    int     `json:"fontWeight"`
	Fill          string  `json:"fill"`
	LetterSpacing string  `json:"letterSpacing,omitempty"`
}

// Scene is the generator output. Elements and Text live in a content group
// translated by Offset; gradients are defined once at the document level.
type Scene struct {
	Seed      string     `json:"seed"`
	Canvas    Canvas     `json:"canvas"`
	Offset    Point      `json:"offset"`
	Decision  Decision   `json:"decision"`
	Gradients []Gradient `json:"gradients"`
	Elements  []Element  `json:"elements"`
	Text      []Text     `json:"text"`
}

// Headline returns the first text block.
func (s Scene) Headline() Text { return s.Text[0] }

// Subline returns the second text block.
func (s Scene) Subline() Text { return s.Text[1] }

// Gradient returns the gradient with the given id.
func (s Scene) Gradient(id string) (Gradient, bool) {
	for _, g := range s.Gradients {
		if g.ID == id {
			return g, true
		}
	}
	return Gradient{}, false
}

// Validate checks that every gradient referenced by an element is defined.
func (s Scene) Validate() error {
	for i, e := range s.Elements {
		for _, ref := range []string{e.Stroke, e.Fill} {
			if ref == PaintNone {
				continue
			}
			if _, ok := s.Gradient(ref); !ok {
				return errors.New(errors.ErrCodeInternal, "element %d references undefined gradient %q", i, ref)
			}
		}
	}
	return nil
}

// Compose sizes the canvas, defines the gradients, paints elements and lays
// out the typography. Elements are copied; the input slice is not modified.
func Compose(spec LogoSpec, elements []Element, fonts FontTable) (Scene, error) {
	canvas, err := CanvasFor(spec.Aspect)
	if err != nil {
		return Scene{}, err
	}
	if !spec.Style.Valid() {
		return Scene{}, errors.New(errors.ErrCodeInvalidStyle, "unsupported style: %q", spec.Style)
	}

	painted := make([]Element, len(elements))
	for i, e := range elements {
		painted[i] = paint(e, i)
	}

	family := fonts.Family(spec.Style)
	scene := Scene{
		Seed:   spec.Seed,
		Canvas: canvas,
		Offset: Point{X: canvas.Width * contentOffsetX, Y: canvas.Height * contentOffsetY},
		Gradients: []Gradient{
			linearGradient(GradientPrimary, 0, 0, 1, 1, spec.Primary, spec.Accent),
			linearGradient(GradientSecondary, 1, 0, 0, 1, spec.Secondary, spec.Primary),
		},
		Elements: painted,
		Text: []Text{
			{
				Content:       orDefault(spec.CampaignName, FallbackHeadline),
				X:             240,
				Y:             220,
				FontFamily:    family,
				FontSize:      78,
				FontWeight:    700,
				Fill:          headlineColor,
				LetterSpacing: "0.5px",
			},
			{
				Content:    orDefault(spec.Tagline, FallbackSubline),
				X:          240,
				Y:          260,
				FontFamily: family,
				FontSize:   24,
				FontWeight: 400,
				Fill:       sublineColor,
			},
		},
	}
	return scene, nil
}

// paint assigns gradients by index parity. Paths and lines are stroke-only,
// and only lines carry their own stroke width.
func paint(e Element, i int) Element {
	stroke := GradientPrimary
	if i%2 == 1 {
		stroke = GradientSecondary
	}
	e.Stroke = stroke
	e.Fill = stroke
	e.StrokeWidth = defaultStrokeWidth

	switch e.Type {
	case ElementPath:
		e.Fill = PaintNone
	case ElementLine:
		e.Fill = PaintNone
		e.StrokeWidth = e.Line.Width
	}
	return e
}

func linearGradient(id string, x1, y1, x2, y2 float64, from, to string) Gradient {
	return Gradient{
		ID: id,
		X1: x1, Y1: y1,
		X2: x2, Y2: y2,
		Stops: []Stop{
			{Offset: "0%", Color: from},
			{Offset: "100%", Color: to},
		},
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

package mark

import (
	"reflect"
	"strconv"
	"sync"
	"testing"

	"github.com/matzehuels/brandmark/pkg/errors"
)

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same spec produced different scenes")
	}
}

func TestGenerateConcurrent(t *testing.T) {
	g := New()
	want, err := g.Generate(testSpec())
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := g.Generate(testSpec())
			if err != nil || !reflect.DeepEqual(got, want) {
				t.Error("concurrent Generate diverged")
			}
		}()
	}
	wg.Wait()
}

var elementsPerLayer = map[Shape]int{
	ShapeCircle:   1,
	ShapeTriangle: 1,
	ShapeDiamond:  1,
	ShapeHex:      1,
	ShapeSwoosh:   1,
	ShapeSpark:    4,
}

func TestGenerateElementCount(t *testing.T) {
	for _, style := range Styles {
		for i := range 40 {
			spec := testSpec()
			spec.Style = style
			spec.Seed = "count-" + strconv.Itoa(i)

			scene, err := Generate(spec)
			if err != nil {
				t.Fatal(err)
			}
			d := scene.Decision
			if d.Layers != LayerCount(style) {
				t.Fatalf("%s layers = %d, want %d", style, d.Layers, LayerCount(style))
			}
			if got, want := len(scene.Elements), d.Layers*elementsPerLayer[d.Shape]; got != want {
				t.Errorf("%s/%s produced %d elements, want %d", style, d.Shape, got, want)
			}
		}
	}
}

func TestGenerateReferenceDecisions(t *testing.T) {
	tests := []struct {
		seed   string
		style  Style
		layout Layout
		shape  Shape
		layers int
	}{
		{"s1", StyleFuturistic, LayoutCluster, ShapeCircle, 4},
		{"s2", StyleMinimalist, LayoutRow, ShapeCircle, 3},
		{"s9", StyleCorporate, LayoutStack, ShapeCircle, 3},
	}
	for _, tt := range tests {
		spec := testSpec()
		spec.Seed = tt.seed
		spec.Style = tt.style
		scene, err := Generate(spec)
		if err != nil {
			t.Fatal(err)
		}
		want := Decision{Layout: tt.layout, Shape: tt.shape, Layers: tt.layers}
		if scene.Decision != want {
			t.Errorf("%s/%s decision = %+v, want %+v", tt.seed, tt.style, scene.Decision, want)
		}
		if len(scene.Elements) != tt.layers {
			t.Errorf("%s/%s produced %d circles, want %d", tt.seed, tt.style, len(scene.Elements), tt.layers)
		}
	}
}

func TestGenerateTrace(t *testing.T) {
	scene, trace, err := New().GenerateTrace(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	plain, _ := Generate(testSpec())
	if !reflect.DeepEqual(scene, plain) {
		t.Error("tracing changed the scene")
	}
	if trace.Composite != "A-1OrbitPayFuturistic" {
		t.Errorf("composite = %q", trace.Composite)
	}
	if trace.Hash != Hash(trace.Composite) || trace.Coerced() {
		t.Errorf("hash = %d, coerced = %v", trace.Hash, trace.Coerced())
	}
	// Two planning draws, then six per cluster layer.
	if got := len(trace.Draws); got != 2+4*6 {
		t.Errorf("draws = %d, want 26", got)
	}
	if trace.Draws[0].Stage != "layout" || trace.Draws[1].Stage != "shape" {
		t.Errorf("planning stages = %s, %s", trace.Draws[0].Stage, trace.Draws[1].Stage)
	}
	stages := []string{"jitter-x", "jitter-y", "cluster-x", "cluster-y", "scale", "rotate"}
	for i, d := range trace.Layer(2) {
		if d.Stage != stages[i] {
			t.Errorf("layer 2 draw %d stage = %s, want %s", i, d.Stage, stages[i])
		}
	}
	if trace.Elements != 4 {
		t.Errorf("elements = %d, want 4", trace.Elements)
	}
}

func TestGenerateDegenerateSeed(t *testing.T) {
	spec := testSpec()
	spec.Seed = "wvnsanuy"
	_, trace, err := New().GenerateTrace(spec)
	if err != nil {
		t.Fatal(err)
	}
	if !trace.Coerced() || trace.InitialState != 1 {
		t.Errorf("hash = %d, state = %d; want coerced to 1", trace.Hash, trace.InitialState)
	}
	if trace.Decision.Layout != LayoutStack || trace.Decision.Shape != ShapeHex {
		t.Errorf("decision = %+v, want stack hex", trace.Decision)
	}
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*LogoSpec)
		code errors.Code
	}{
		{"style", func(s *LogoSpec) { s.Style = "Retro" }, errors.ErrCodeInvalidStyle},
		{"aspect", func(s *LogoSpec) { s.Aspect = "2:3" }, errors.ErrCodeInvalidAspect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec()
			tt.mut(&spec)
			_, err := Generate(spec)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestWithFonts(t *testing.T) {
	g := New(WithFonts(FontTable{StyleFuturistic: {"Eurostile", "sans-serif"}}))
	scene, err := g.Generate(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	if got := scene.Headline().FontFamily; got != "Eurostile, sans-serif" {
		t.Errorf("family = %q", got)
	}
	if got := g.Fonts().Family(StyleCorporate); got != DefaultFonts().Family(StyleCorporate) {
		t.Errorf("corporate family = %q, want default", got)
	}
	if err := g.Fonts().Validate(); err != nil {
		t.Errorf("merged table invalid: %v", err)
	}
}

func TestParseStyle(t *testing.T) {
	got, err := ParseStyle(" futuristic ")
	if err != nil || got != StyleFuturistic {
		t.Errorf("ParseStyle = %q, %v", got, err)
	}
	if _, err := ParseStyle("grunge"); errors.GetCode(err) != errors.ErrCodeInvalidStyle {
		t.Errorf("ParseStyle(grunge) err = %v", err)
	}
	if _, err := ParseAspect("3:2"); errors.GetCode(err) != errors.ErrCodeInvalidAspect {
		t.Errorf("ParseAspect(3:2) err = %v", err)
	}
}

func TestGenerateGradientParity(t *testing.T) {
	seen := make(map[Shape]int)
	g := New()

	for _, style := range Styles {
		for _, aspect := range Aspects {
			for i := range 80 {
				spec := testSpec()
				spec.Style, spec.Aspect = style, aspect
				spec.Seed = "P-" + strconv.Itoa(i)

				scene, err := g.Generate(spec)
				if err != nil {
					t.Fatal(err)
				}
				seen[scene.Decision.Shape]++

				if err := scene.Validate(); err != nil {
					t.Errorf("%s/%s/%s: %v", style, aspect, spec.Seed, err)
				}
				for j, e := range scene.Elements {
					want := GradientPrimary
					if j%2 == 1 {
						want = GradientSecondary
					}
					if e.Stroke != want {
						t.Errorf("%s/%s/%s %s element %d stroke = %q, want %q",
							style, aspect, spec.Seed, scene.Decision.Shape, j, e.Stroke, want)
					}
					wantFill := want
					if e.Type == ElementPath || e.Type == ElementLine {
						wantFill = PaintNone
					}
					if e.Fill != wantFill {
						t.Errorf("%s/%s/%s element %d fill = %q, want %q", style, aspect, spec.Seed, j, e.Fill, wantFill)
					}
				}
			}
		}
	}

	for _, shape := range shapes {
		if seen[shape] == 0 {
			t.Errorf("shape %s never generated", shape)
		}
	}
}

package render

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/brandmark/pkg/errors"
	"github.com/matzehuels/brandmark/pkg/mark"
)

func testScene(t *testing.T, seed string, aspect mark.Aspect) mark.Scene {
	t.Helper()
	scene, err := mark.Generate(mark.LogoSpec{
		CampaignName: "Orbit & <Pay>",
		Tagline:      "Frictionless payments",
		Primary:      "#6366f1",
		Secondary:    "#22d3ee",
		Accent:       "#f472b6",
		Style:        mark.StylePlayful,
		Seed:         seed,
		Aspect:       aspect,
	})
	if err != nil {
		t.Fatal(err)
	}
	return scene
}

func TestRenderSVGWellFormed(t *testing.T) {
	svg := RenderSVG(testScene(t, "A-1", mark.Aspect4x5))

	dec := xml.NewDecoder(bytes.NewReader(svg))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("invalid XML: %v\n%s", err, svg)
		}
	}

	s := string(svg)
	for _, want := range []string{
		`xmlns="http://www.w3.org/2000/svg"`,
		`viewBox="0 0 800 1000"`,
		`<linearGradient id="g1-A-1" x1="0" y1="0" x2="1" y2="1">`,
		`<linearGradient id="g2-A-1" x1="1" y1="0" x2="0" y2="1">`,
		`<stop offset="0%" stop-color="#6366f1"/>`,
		`<g transform="translate(64, 160)">`,
		`Orbit &amp; &lt;Pay&gt;</text>`,
		`letter-spacing="0.5px"`,
		`url(#g1-A-1)`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGStable(t *testing.T) {
	scene := testScene(t, "stable", mark.Aspect1x1)
	if !bytes.Equal(RenderSVG(scene), RenderSVG(scene)) {
		t.Error("RenderSVG is not byte-stable")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	scene := testScene(t, "A-2", mark.Aspect1x1)
	s := string(RenderSVG(scene, WithIDSuffix("x")))
	if !strings.Contains(s, `id="g1-x"`) || strings.Contains(s, "g1-A-2") {
		t.Error("WithIDSuffix not applied")
	}
	if !strings.Contains(s, `id="svg-A-2"`) || !strings.Contains(s, `width="1000" height="1000" viewBox="0 0 1000 1000"`) {
		t.Error("root attributes changed")
	}

	s = string(RenderSVG(scene, WithIDSuffix("")))
	if !strings.Contains(s, `id="g1"`) || !strings.Contains(s, `url(#g1)`) {
		t.Error("empty suffix should keep bare gradient ids")
	}
}

func TestRenderSVGBackground(t *testing.T) {
	tests := []struct {
		aspect mark.Aspect
		want   string
	}{
		{mark.Aspect1x1, `<rect x="0" y="0" width="1000" height="1000" fill="transparent"/>`},
		{mark.Aspect4x5, `<rect x="0" y="0" width="800" height="1000" fill="transparent"/>`},
		{mark.Aspect9x16, `<rect x="0" y="0" width="900" height="1600" fill="transparent"/>`},
	}
	for _, tt := range tests {
		s := string(RenderSVG(testScene(t, "bg", tt.aspect)))
		if !strings.Contains(s, tt.want) {
			t.Errorf("%s: missing %s", tt.aspect, tt.want)
		}
	}
}

func TestRenderSVGElementCount(t *testing.T) {
	scene := testScene(t, "count", mark.Aspect1x1)
	s := string(RenderSVG(scene))
	n := 0
	for _, tag := range []string{"<circle ", "<polygon ", "<path ", "<line "} {
		n += strings.Count(s, tag)
	}
	if n != len(scene.Elements) {
		t.Errorf("SVG has %d shapes, scene has %d elements", n, len(scene.Elements))
	}
}

func TestRenderPNG(t *testing.T) {
	scene := testScene(t, "A-1", mark.Aspect9x16)
	data, err := RenderPNG(scene, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 450 || b.Dy() != 800 {
		t.Errorf("size = %dx%d, want 450x800", b.Dx(), b.Dy())
	}

	_, _, _, a := img.At(0, 0).RGBA()
	if a != 0 {
		t.Error("background should be transparent")
	}
	painted := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("nothing was painted")
	}
}

func TestRenderThumbnail(t *testing.T) {
	data, err := RenderThumbnail(testScene(t, "thumb", mark.Aspect4x5), 100)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 100 {
		t.Errorf("size = %dx%d, want 80x100", b.Dx(), b.Dy())
	}
}

func TestRenderJSON(t *testing.T) {
	scene := testScene(t, "json", mark.Aspect1x1)
	data, err := RenderJSON(scene)
	if err != nil {
		t.Fatal(err)
	}
	var back mark.Scene
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Seed != "json" || len(back.Elements) != len(scene.Elements) || back.Decision != scene.Decision {
		t.Errorf("round trip lost data: %+v", back.Decision)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range Formats {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%s): %v", f, err)
		}
	}
	err := ValidateFormats([]string{"svg", "gif"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
	if ContentType(FormatPNG) != "image/png" {
		t.Error("unexpected PNG content type")
	}
}

func TestCSSColor(t *testing.T) {
	r, g, b, a := cssColor("rgba(226,232,240,0.9)").RGBA()
	if r>>8 == 0 || g>>8 == 0 || b>>8 == 0 || a>>8 != 230 {
		t.Errorf("rgba parse = %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
	if _, _, _, a := cssColor("white").RGBA(); a != 0xffff {
		t.Error("white should be opaque")
	}
	if stopOffset("100%") != 1 || stopOffset("0%") != 0 || stopOffset("0.5") != 0.5 {
		t.Error("stopOffset parse")
	}
}

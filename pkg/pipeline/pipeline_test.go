package pipeline

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/brandmark/pkg/cache"
	"github.com/matzehuels/brandmark/pkg/errors"
	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/render"
)

// memCache is a map-backed cache that counts writes.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{CampaignName: "OrbitPay"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Style != string(DefaultStyle) {
		t.Errorf("Style = %q, want %q", opts.Style, DefaultStyle)
	}
	if opts.Aspect != string(DefaultAspect) {
		t.Errorf("Aspect = %q, want %q", opts.Aspect, DefaultAspect)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %q, want %q", opts.Seed, DefaultSeed)
	}
	if opts.Count != DefaultCount {
		t.Errorf("Count = %d, want %d", opts.Count, DefaultCount)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != render.FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.PixelRatio != DefaultPixelRatio {
		t.Errorf("PixelRatio = %v, want %v", opts.PixelRatio, DefaultPixelRatio)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call: %v", err)
	}
}

func TestValidateAndSetDefaultsKeepsWhitespaceSeed(t *testing.T) {
	for _, seed := range []string{" ", "\t", "  A  "} {
		opts := Options{CampaignName: "OrbitPay", Seed: seed, Count: 2}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if opts.Seed != seed {
			t.Errorf("Seed %q replaced with %q", seed, opts.Seed)
		}
		if got := opts.Specs()[0].Seed; got != seed+"-1" {
			t.Errorf("first variation seed = %q, want %q", got, seed+"-1")
		}
	}
}

func TestValidateAndSetDefaultsCanonicalStyle(t *testing.T) {
	opts := Options{CampaignName: "OrbitPay", Style: "playful"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Style != "Playful" {
		t.Errorf("Style = %q, want Playful", opts.Style)
	}
	if got := opts.Specs()[0].Style; got != mark.StylePlayful {
		t.Errorf("spec style = %q", got)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"style", Options{Style: "Baroque"}, errors.ErrCodeInvalidStyle},
		{"aspect", Options{Aspect: "16:9"}, errors.ErrCodeInvalidAspect},
		{"format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"count", Options{Count: MaxCount + 1}, errors.ErrCodeInvalidInput},
		{"negative count", Options{Count: -1}, errors.ErrCodeInvalidInput},
		{"pixel ratio", Options{PixelRatio: MaxPixelRatio * 2}, errors.ErrCodeInvalidInput},
		{"campaign control chars", Options{CampaignName: "a\x00b"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSpecs(t *testing.T) {
	opts := Options{CampaignName: "OrbitPay", Seed: "A", Count: 3, Primary: "#ABCDEF"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	specs := opts.Specs()
	if len(specs) != 3 {
		t.Fatalf("got %d specs, want 3", len(specs))
	}
	for i, want := range []string{"A-1", "A-2", "A-3"} {
		if specs[i].Seed != want {
			t.Errorf("specs[%d].Seed = %q, want %q", i, specs[i].Seed, want)
		}
		if specs[i].Primary != "#abcdef" {
			t.Errorf("specs[%d].Primary = %q, want normalized #abcdef", i, specs[i].Primary)
		}
		if specs[i].Secondary == "" || specs[i].Accent == "" {
			t.Errorf("specs[%d] missing derived colors", i)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{PixelRatio: 2}
	if got := opts.ArtifactKeyOpts(render.FormatSVG); got.PixelRatio != 0 {
		t.Errorf("svg key carries pixel ratio %v", got.PixelRatio)
	}
	if got := opts.ArtifactKeyOpts(render.FormatPNG); got.PixelRatio != 2 {
		t.Errorf("png key pixel ratio = %v, want 2", got.PixelRatio)
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		CampaignName: "OrbitPay",
		Tagline:      "Frictionless payments",
		Count:        4,
		Formats:      []string{render.FormatSVG, render.FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(result.Variations) != 4 {
		t.Fatalf("got %d variations, want 4", len(result.Variations))
	}
	if result.Stats.Variations != 4 || result.Stats.Elements == 0 {
		t.Errorf("unexpected stats %+v", result.Stats)
	}
	for i, v := range result.Variations {
		if v.SceneHash == "" {
			t.Errorf("variation %d has no scene hash", i)
		}
		if !bytes.HasPrefix(v.Artifacts[render.FormatSVG], []byte("<svg")) {
			t.Errorf("variation %d svg does not start with <svg", i)
		}
		if len(v.Artifacts[render.FormatJSON]) == 0 {
			t.Errorf("variation %d missing json", i)
		}
		if v.Scene.Seed != v.Spec.Seed {
			t.Errorf("variation %d scene seed %q != spec seed %q", i, v.Scene.Seed, v.Spec.Seed)
		}
	}
	if len(result.Specs()) != 4 || len(result.Scenes()) != 4 {
		t.Error("Specs/Scenes accessors should cover every variation")
	}
}

func TestExecuteMatchesGenerator(t *testing.T) {
	opts := Options{CampaignName: "OrbitPay", Count: 2}
	result, err := NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range result.Variations {
		want, err := mark.Generate(v.Spec)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(render.RenderSVG(want), v.Artifacts[render.FormatSVG]) {
			t.Errorf("seed %s: pipeline svg differs from direct generation", v.Spec.Seed)
		}
	}
}

func TestExecuteCaching(t *testing.T) {
	c := newMemCache()
	runner := NewRunner(c, nil, nil)
	opts := Options{CampaignName: "OrbitPay", Count: 3, Formats: []string{render.FormatSVG, render.FormatJSON}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.SceneHits != 0 || first.CacheInfo.ArtifactHits != 0 {
		t.Errorf("cold run hit cache: %+v", first.CacheInfo)
	}
	// 3 scenes + 3*2 artifacts
	if c.sets != 9 {
		t.Errorf("cache writes = %d, want 9", c.sets)
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.GenerateHit || !second.CacheInfo.RenderHit {
		t.Errorf("warm run missed cache: %+v", second.CacheInfo)
	}
	if second.CacheInfo.SceneHits != 3 || second.CacheInfo.ArtifactHits != 6 {
		t.Errorf("warm hits = %+v", second.CacheInfo)
	}
	for i := range first.Variations {
		if !bytes.Equal(first.Variations[i].Artifacts["svg"], second.Variations[i].Artifacts["svg"]) {
			t.Errorf("variation %d: cached svg differs", i)
		}
	}

	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.SceneHits != 0 || third.CacheInfo.ArtifactHits != 0 {
		t.Errorf("refresh run read cache: %+v", third.CacheInfo)
	}
}

func TestExecuteFontsChangeSceneKey(t *testing.T) {
	c := newMemCache()
	runner := NewRunner(c, nil, nil)
	base := Options{CampaignName: "OrbitPay", Count: 1}

	if _, err := runner.Execute(context.Background(), base); err != nil {
		t.Fatal(err)
	}
	custom := base
	custom.Fonts = mark.FontTable{mark.StyleFuturistic: {"Exo 2"}}
	result, err := runner.Execute(context.Background(), custom)
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.SceneHits != 0 {
		t.Error("a different font table must not reuse cached scenes")
	}
	if got := result.Variations[0].Scene.Headline().FontFamily; got != "Exo 2" {
		t.Errorf("font family = %q, want Exo 2", got)
	}
}

func TestExecuteFileCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{CampaignName: "Nimbus", Style: "Minimalist", Aspect: "9:16", Count: 2}
	if _, err := runner.Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !result.CacheInfo.GenerateHit {
		t.Errorf("file cache did not serve scenes: %+v", result.CacheInfo)
	}
	if w := result.Variations[0].Scene.Canvas.Width; w != 900 {
		t.Errorf("canvas width = %v, want 900", w)
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRunner(nil, nil, nil).Execute(ctx, Options{CampaignName: "OrbitPay"}); err == nil {
		t.Error("expected error on cancelled context")
	}
}

func TestRenderFormat(t *testing.T) {
	scene, err := mark.Generate(mark.LogoSpec{
		CampaignName: "OrbitPay", Primary: "#6366f1", Secondary: "#22d3ee", Accent: "#f472b6",
		Style: mark.StyleCorporate, Seed: "A-1", Aspect: mark.Aspect4x5,
	})
	if err != nil {
		t.Fatal(err)
	}

	png, err := RenderFormat(scene, render.FormatPNG, 0.25)
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("png output lacks PNG signature")
	}

	if _, err := RenderFormat(scene, "gif", 1); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("gif: err = %v, want INVALID_FORMAT", err)
	}

	artifacts, err := Render(scene, []string{render.FormatSVG, render.FormatJSON}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(artifacts) != 2 {
		t.Errorf("got %d artifacts, want 2", len(artifacts))
	}
}

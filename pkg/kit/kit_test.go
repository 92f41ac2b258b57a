package kit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/matzehuels/brandmark/pkg/errors"
	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/variation"
)

func fixedClock() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

func testOptions(t *testing.T, n int) Options {
	t.Helper()
	specs := variation.Expand(variation.Request{
		CampaignName: "Orbit Pay",
		Tagline:      "Frictionless payments",
		Style:        mark.StyleMinimalist,
		Aspect:       mark.Aspect1x1,
		Seed:         "kit",
	}, n)
	scenes, err := variation.Generate(context.Background(), nil, specs, 2)
	if err != nil {
		t.Fatal(err)
	}
	return Options{
		Specs:      specs,
		Scenes:     scenes,
		PixelRatio: 0.25,
		Now:        fixedClock,
		NewID:      func() string { return "kit-id" },
	}
}

func TestBuild(t *testing.T) {
	k, err := Build(context.Background(), testOptions(t, 6))
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"brand.json", "logo-1.png", "logo-1.svg", "logo-2.png", "logo-2.svg", "logo-3.png", "logo-3.svg", "preview.png"}
	files, err := Unpack(k.Archive)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != len(want) {
		t.Fatalf("archive has %d entries, want %d", len(files), len(want))
	}
	for i, f := range files {
		if f.Name != want[i] {
			t.Errorf("entry %d = %s, want %s", i, f.Name, want[i])
		}
	}

	var meta Metadata
	if err := json.Unmarshal(files[0].Data, &meta); err != nil {
		t.Fatal(err)
	}
	if meta.ID != "kit-id" || meta.CampaignName != "Orbit Pay" || meta.Style != mark.StyleMinimalist {
		t.Errorf("metadata = %+v", meta)
	}
	if !meta.GeneratedAt.Equal(fixedClock()) {
		t.Errorf("generatedAt = %v", meta.GeneratedAt)
	}
	if len(meta.Seeds) != 6 || meta.Seeds[0] != "kit-1" {
		t.Errorf("seeds = %v", meta.Seeds)
	}
	if meta.Colors.Primary == "" {
		t.Error("colors missing")
	}

	if !bytes.HasPrefix(files[2].Data, []byte("<svg")) {
		t.Error("logo-1.svg is not SVG")
	}
	if !bytes.HasPrefix(files[1].Data, []byte("\x89PNG")) {
		t.Error("logo-1.png is not PNG")
	}
	if k.FileName() != "Orbit-Pay-brand-kit.zip" || k.Size() != len(k.Archive) {
		t.Errorf("FileName = %q", k.FileName())
	}
}

func TestBuildFewerScenesThanLogos(t *testing.T) {
	k, err := Build(context.Background(), testOptions(t, 2))
	if err != nil {
		t.Fatal(err)
	}
	// brand.json, two logo pairs, preview.
	if len(k.Files) != 6 {
		t.Errorf("got %d files, want 6", len(k.Files))
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, err := Build(context.Background(), testOptions(t, 3))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(context.Background(), testOptions(t, 3))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Archive, b.Archive) {
		t.Error("same input produced different archives")
	}
}

func TestBuildInvalid(t *testing.T) {
	opts := testOptions(t, 2)
	opts.Scenes = opts.Scenes[:1]
	if _, err := Build(context.Background(), opts); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestPackDuplicate(t *testing.T) {
	_, err := Pack([]File{{Name: "a"}, {Name: "a"}})
	if err == nil {
		t.Error("Pack should reject duplicate names")
	}
}

func TestPackUnsafeNames(t *testing.T) {
	for _, name := range []string{"", "../escape.txt", "/abs.txt", "a\\b.txt"} {
		_, err := Pack([]File{{Name: name}})
		if !errors.Is(err, errors.ErrCodeInvalidPath) {
			t.Errorf("Pack(%q) err = %v, want INVALID_PATH", name, err)
		}
	}
}

func TestPackRoundTrip(t *testing.T) {
	in := []File{{Name: "b.txt", Data: []byte("bee")}, {Name: "a.txt", Data: []byte("ay")}}
	data, err := Pack(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Unpack(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].Name != "b.txt" || string(out[1].Data) != "ay" {
		t.Errorf("round trip = %+v", out)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"OrbitPay", "OrbitPay-brand-kit.zip"},
		{"Orbit  Pay\tNow", "Orbit-Pay-Now-brand-kit.zip"},
		{"  ", "brand-kit.zip"},
		{"a/b", "a-b-brand-kit.zip"},
	}
	for _, tt := range tests {
		if got := FileName(tt.in); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

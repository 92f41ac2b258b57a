package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/brandmark/pkg/errors"
	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/pipeline"
)

const sample = `
[defaults]
style = "playful"
aspect = "4:5"
count = 4
formats = ["svg", "png"]
pixel_ratio = 2

[defaults.palette]
primary = "#0EA5E9"

[fonts]
Playful = ["Baloo 2", "Poppins"]

[cache]
backend = "redis"
redis_addr = "localhost:6379"
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample), "sample.toml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Defaults.Count != 4 || f.Defaults.Aspect != "4:5" {
		t.Errorf("defaults = %+v", f.Defaults)
	}
	if f.Cache.Backend != CacheRedis || f.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", f.Cache)
	}

	fonts, err := f.FontTable()
	if err != nil {
		t.Fatal(err)
	}
	if got := fonts[mark.StylePlayful]; len(got) != 2 || got[0] != "Baloo 2" {
		t.Errorf("Playful fonts = %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[defaults"},
		{"unknown key", "[defaults]\ncolour = 1"},
		{"style", "[defaults]\nstyle = \"Baroque\""},
		{"aspect", "[defaults]\naspect = \"2:1\""},
		{"color", "[defaults.palette]\naccent = \"nope\""},
		{"font style", "[fonts]\nGothic = [\"X\"]"},
		{"backend", "[cache]\nbackend = \"memcached\""},
		{"redis without addr", "[cache]\nbackend = \"redis\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data), "bad.toml"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Path != path {
		t.Errorf("Path = %q, want %q", f.Path, path)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing explicit file: err = %v", err)
	}
}

func TestLoadDefaultMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	f, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Path != "" || f.Defaults.Count != 0 {
		t.Errorf("expected empty config, got %+v", f)
	}
}

func TestApply(t *testing.T) {
	f, err := Parse([]byte(sample), "sample.toml")
	if err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{CampaignName: "OrbitPay", Count: 2}
	f.Apply(&opts)

	if opts.Style != "playful" || opts.Aspect != "4:5" {
		t.Errorf("style/aspect = %q/%q", opts.Style, opts.Aspect)
	}
	if opts.Count != 2 {
		t.Errorf("explicit count overridden: %d", opts.Count)
	}
	if strings.Join(opts.Formats, ",") != "svg,png" {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.PixelRatio != 2 || opts.Primary != "#0EA5E9" {
		t.Errorf("ratio/primary = %v/%q", opts.PixelRatio, opts.Primary)
	}
	if opts.Fonts == nil {
		t.Error("fonts not applied")
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("applied options should validate: %v", err)
	}
	if opts.Specs()[0].Primary != "#0ea5e9" {
		t.Errorf("primary not normalized: %q", opts.Specs()[0].Primary)
	}
}

func TestLoadServer(t *testing.T) {
	t.Setenv("BRANDMARK_ADDR", ":9090")
	t.Setenv("BRANDMARK_WORKERS", "3")
	t.Setenv("BRANDMARK_REQUEST_TIMEOUT", "5s")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.Workers != 3 || cfg.RequestTimeout != 5*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.MongoDB != "brandmark" {
		t.Errorf("MongoDB default = %q", cfg.MongoDB)
	}
}

func TestLoadServerInvalid(t *testing.T) {
	t.Setenv("BRANDMARK_WORKERS", "many")
	_, err := LoadServer()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("err = %v, want parse env error", err)
	}
}

// Package pipeline provides the core generation pipeline for brandmark.
//
// This package implements the complete expand → generate → render pipeline
// used by the CLI and the API server. Centralizing it keeps defaults, caching
// and validation identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Expand: derive one [mark.LogoSpec] per variation from the request
//  2. Generate: build the scenes, in parallel, with scene caching
//  3. Render: produce every requested format for every scene, with artifact
//     caching
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    CampaignName: "OrbitPay",
//	    Style:        "Futuristic",
//	    Formats:      []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Variations[0].Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/brandmark/pkg/cache"
	"github.com/matzehuels/brandmark/pkg/errors"
	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/palette"
	"github.com/matzehuels/brandmark/pkg/render"
	"github.com/matzehuels/brandmark/pkg/variation"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultStyle is the style used when none is given.
	DefaultStyle = mark.StyleFuturistic

	// DefaultAspect is the aspect ratio used when none is given.
	DefaultAspect = mark.Aspect1x1

	// DefaultSeed is the base seed used when Options.Seed is empty.
	// Any other text, whitespace included, is used as given.
	DefaultSeed = "A"

	// DefaultCount is the number of variations.
	DefaultCount = variation.DefaultCount

	// MaxCount bounds the number of variations per request.
	MaxCount = 64

	// DefaultPixelRatio is the PNG device pixel ratio.
	DefaultPixelRatio = render.DefaultPixelRatio

	// MaxPixelRatio bounds PNG size.
	MaxPixelRatio = 8.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Request options
	CampaignName string `json:"campaignName"`
	Tagline      string `json:"tagline,omitempty"`
	Primary      string `json:"primary,omitempty"`
	Secondary    string `json:"secondary,omitempty"`
	Accent       string `json:"accent,omitempty"`
	Style        string `json:"style,omitempty"`
	Aspect       string `json:"aspect,omitempty"`
	Seed         string `json:"seed,omitempty"` // empty means DefaultSeed
	Count        int    `json:"count,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	PixelRatio float64  `json:"pixelRatio,omitempty"`

	// Runtime options (not serialized)
	Workers int            `json:"-"`
	Refresh bool           `json:"-"` // skip cache reads
	Fonts   mark.FontTable `json:"-"` // overrides merged over the defaults
	Logger  *log.Logger    `json:"-"`

	style  mark.Style
	aspect mark.Aspect

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Variation is one generated mark and its rendered artifacts.
type Variation struct {
	Spec      mark.LogoSpec
	Scene     mark.Scene
	SceneHash string
	Artifacts map[string][]byte
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Variations []Variation
	Stats      Stats
	CacheInfo  CacheInfo
}

// Specs returns the spec of every variation.
func (r *Result) Specs() []mark.LogoSpec {
	out := make([]mark.LogoSpec, len(r.Variations))
	for i, v := range r.Variations {
		out[i] = v.Spec
	}
	return out
}

// Scenes returns the scene of every variation.
func (r *Result) Scenes() []mark.Scene {
	out := make([]mark.Scene, len(r.Variations))
	for i, v := range r.Variations {
		out[i] = v.Scene
	}
	return out
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Variations   int
	Elements     int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHits    int
	ArtifactHits int
	GenerateHit  bool // every scene came from cache
	RenderHit    bool // every artifact came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Revalidate validates again after fields of validated options changed.
func (o *Options) Revalidate() error {
	o.validated = false
	return o.ValidateAndSetDefaults()
}

// ValidateForGenerate checks the request fields and applies their defaults.
func (o *Options) ValidateForGenerate() error {
	if err := errors.ValidateCampaignName(o.CampaignName); err != nil {
		return err
	}
	if err := errors.ValidateCampaignName(o.Tagline); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid tagline")
	}

	if o.Style == "" {
		o.Style = string(DefaultStyle)
	}
	style, err := mark.ParseStyle(o.Style)
	if err != nil {
		return err
	}
	o.style, o.Style = style, string(style)

	if o.Aspect == "" {
		o.Aspect = string(DefaultAspect)
	}
	aspect, err := mark.ParseAspect(o.Aspect)
	if err != nil {
		return err
	}
	o.aspect, o.Aspect = aspect, string(aspect)

	if o.Seed == "" {
		o.Seed = DefaultSeed
	}
	if o.Count == 0 {
		o.Count = DefaultCount
	}
	if o.Count < 0 || o.Count > MaxCount {
		return errors.New(errors.ErrCodeInvalidInput, "count must be between 1 and %d", MaxCount)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForRender checks the render fields and applies their defaults.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.PixelRatio == 0 {
		o.PixelRatio = DefaultPixelRatio
	}
	if o.PixelRatio < 0 || o.PixelRatio > MaxPixelRatio {
		return errors.New(errors.ErrCodeInvalidInput, "pixel ratio must be in (0, %g]", MaxPixelRatio)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Request returns the variation request described by the options. Call
// ValidateAndSetDefaults first.
func (o *Options) Request() variation.Request {
	return variation.Request{
		CampaignName: o.CampaignName,
		Tagline:      o.Tagline,
		Palette:      palette.Palette{Primary: o.Primary, Secondary: o.Secondary, Accent: o.Accent},
		Style:        o.style,
		Aspect:       o.aspect,
		Seed:         o.Seed,
	}
}

// Specs expands the options into one spec per variation.
func (o *Options) Specs() []mark.LogoSpec {
	return variation.Expand(o.Request(), o.Count)
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == render.FormatPNG {
		opts.PixelRatio = o.PixelRatio
	}
	return opts
}

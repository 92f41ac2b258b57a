// Package pkg provides the core libraries for Brandmark logo generation.
//
// # Overview
//
// Brandmark turns a campaign name, tagline, style, palette and seed into a
// deterministic logo mark. The same inputs always yield the same scene, so
// marks can be regenerated, cached and shared by seed alone. The pkg
// directory is organized into these areas:
//
//  1. [mark] - Domain logic (seed hashing, the pseudo-random stream, layout
//     planning, glyph construction, scene assembly)
//  2. [palette] and [variation] - Color derivation and seed fan-out
//  3. [render] - Output formats (SVG, PNG, PDF, JSON) and [render/explain]
//     for derivation traces
//  4. [pipeline] - Orchestration (expand → generate → render) with caching
//  5. [cache], [store] and [kit] - Infrastructure and brand kit packaging
//  6. [server] and [config] - HTTP API and configuration
//
// # Architecture
//
// The typical data flow through Brandmark:
//
//	Campaign request (name, tagline, style, colors, seed)
//	         ↓
//	    [variation] package (seeds <seed>-1 ... <seed>-N)
//	         ↓
//	    [mark] package (hash → stream → plan → glyph → scene)
//	         ↓
//	    [render] package (SVG/PNG/PDF/JSON)
//	         ↓
//	    [kit] package (zip with brand.json, logos and preview)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/brandmark/pkg/mark"
//	    "github.com/matzehuels/brandmark/pkg/render"
//	)
//
//	gen := mark.New()
//	scene, err := gen.Generate(mark.LogoSpec{
//	    CampaignName: "OrbitPay",
//	    Style:        mark.StyleFuturistic,
//	    Seed:         "A-1",
//	    Aspect:       mark.Aspect1x1,
//	})
//	if err != nil {
//	    return err
//	}
//	svg := render.RenderSVG(scene)
//
// Most callers use [pipeline] instead, which validates options, expands
// variations, consults the cache and renders every requested format:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    CampaignName: "OrbitPay",
//	    Formats:      []string{"svg", "png"},
//	})
//
// # Determinism
//
// Every draw in [mark] comes from a stream seeded by the hash of the seed
// composite (seed + campaign name + style). Palette derivation in [palette]
// hashes the campaign name and style the same way. Nothing reads the clock
// or a global random source; only [variation.RandomSeed] does, and only when
// asked for a fresh seed.
//
// [mark]: https://pkg.go.dev/github.com/matzehuels/brandmark/pkg/mark
// [palette]: https://pkg.go.dev/github.com/matzehuels/brandmark/pkg/palette
// [variation]: https://pkg.go.dev/github.com/matzehuels/brandmark/pkg/variation
// [variation.RandomSeed]: https://pkg.go.dev/github.com/matzehuels/brandmark/pkg/variation#RandomSeed
// [render]: https://pkg.go.dev/github.com/matzehuels/brandmark/pkg/render
// [render/explain]: https://pkg.go.dev/github.com/matzehuels/brandmark/pkg/render/explain
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/brandmark/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/brandmark/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/brandmark/pkg/store
// [kit]: https://pkg.go.dev/github.com/matzehuels/brandmark/pkg/kit
// [server]: https://pkg.go.dev/github.com/matzehuels/brandmark/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/brandmark/pkg/config
package pkg

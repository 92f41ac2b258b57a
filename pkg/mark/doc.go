// Package mark implements the deterministic brand-mark generator.
//
// # Overview
//
// A [LogoSpec] (campaign name, tagline, three colors, a style, a seed and an
// aspect ratio) is turned into a [Scene]: canvas size, two linear gradients,
// an ordered list of glyph primitives and two text blocks. The scene is a
// plain value that the render package serializes to SVG, PNG or JSON.
//
// Generation is a strictly linear pipeline:
//
//	LogoSpec → Hash → Stream → Plan → Build → Compose → Scene
//
//   - [Hash] maps text to a 32-bit word (FNV-1a over UTF-16 code units)
//   - [Stream] is an xorshift generator seeded from the hash of the seed
//     composite (seed + campaign name + style)
//   - [Plan] draws the layout archetype and glyph shape
//   - [Build] draws per-layer jitter, offsets, scale and rotation and emits
//     the shape geometry
//   - [Compose] sizes the canvas and assigns gradients and typography
//
// # Determinism
//
// For a fixed LogoSpec the generator produces an identical Scene on every
// call, on any machine. Nothing in the pipeline reads the clock, host
// entropy or map iteration order. The order in which draws are consumed is
// part of the contract: reordering any draw changes every scene generated
// from existing seeds.
//
// # Concurrency
//
// A [Stream] mutates on every draw and must be owned by a single generation.
// [Generator.Generate] creates a private stream per call, so a Generator is
// safe for concurrent use and variations can be generated in parallel.
//
// # Usage
//
//	gen := mark.New()
//	scene, err := gen.Generate(mark.LogoSpec{
//	    CampaignName: "OrbitPay",
//	    Tagline:      "Frictionless payments",
//	    Primary:      "#6366f1",
//	    Secondary:    "#0ea5e9",
//	    Accent:       "#f97316",
//	    Style:        mark.StyleFuturistic,
//	    Seed:         "A-1",
//	    Aspect:       mark.Aspect1x1,
//	})
package mark

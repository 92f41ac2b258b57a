package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/brandmark/pkg/cache"
	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/observability"
	"github.com/matzehuels/brandmark/pkg/variation"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete expand → generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	specs := opts.Specs()
	result := &Result{Variations: make([]Variation, len(specs))}

	// Stage 1: Generate
	genStart := time.Now()
	scenes, hits, err := r.GenerateWithCacheInfo(ctx, specs, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Stats.GenerateTime = time.Since(genStart)
	result.CacheInfo.SceneHits = hits
	result.CacheInfo.GenerateHit = hits == len(specs)

	for i, scene := range scenes {
		result.Variations[i] = Variation{Spec: specs[i], Scene: scene}
		result.Stats.Elements += len(scene.Elements)
	}
	result.Stats.Variations = len(scenes)

	r.Logger.Info("generated variations",
		"count", len(scenes),
		"cached", hits,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, scenes, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.ArtifactHits = hits
	result.CacheInfo.RenderHit = hits == len(scenes)*len(opts.Formats)

	for i := range result.Variations {
		result.Variations[i].Artifacts = artifacts[i].Artifacts
		result.Variations[i].SceneHash = artifacts[i].SceneHash
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo produces one scene per spec, reading and filling the
// scene cache. It returns the number of scenes served from cache.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, specs []mark.LogoSpec, opts Options) ([]mark.Scene, int, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, 0, err
	}

	gen := r.generator(opts)
	scenes := make([]mark.Scene, len(specs))
	keys := make([]string, len(specs))
	var missing []int

	for i, spec := range specs {
		specHash, err := cache.HashJSON(struct {
			Spec  mark.LogoSpec  `json:"spec"`
			Fonts mark.FontTable `json:"fonts"`
		}{spec, gen.Fonts()})
		if err != nil {
			return nil, 0, fmt.Errorf("hash spec: %w", err)
		}
		keys[i] = r.Keyer.SceneKey(specHash)

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, keys[i]); err == nil && hit {
				if err := json.Unmarshal(data, &scenes[i]); err == nil {
					observability.Cache().OnCacheHit(ctx, "scene")
					continue
				}
				// If deserialization fails, fall through to regenerate
			}
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
		missing = append(missing, i)
	}

	if len(missing) == 0 {
		return scenes, len(specs), nil
	}

	todo := make([]mark.LogoSpec, len(missing))
	for j, i := range missing {
		todo[j] = specs[i]
	}
	fresh, err := variation.Generate(ctx, gen, todo, opts.Workers)
	if err != nil {
		return nil, 0, err
	}

	for j, i := range missing {
		scenes[i] = fresh[j]
		if data, err := json.Marshal(fresh[j]); err == nil {
			if err := r.Cache.Set(ctx, keys[i], data, cache.TTLScene); err == nil {
				observability.Cache().OnCacheSet(ctx, "scene", len(data))
			} else {
				opts.Logger.Debug("scene cache write failed", "seed", specs[i].Seed, "err", err)
			}
		}
	}

	return scenes, len(specs) - len(missing), nil
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, specs []mark.LogoSpec, opts Options) ([]mark.Scene, error) {
	scenes, _, err := r.GenerateWithCacheInfo(ctx, specs, opts)
	return scenes, err
}

// RenderedScene holds the artifacts of one scene.
type RenderedScene struct {
	SceneHash string
	Artifacts map[string][]byte
	Hits      int // artifacts served from cache
}

// RenderWithCacheInfo renders every requested format for every scene,
// reading and filling the artifact cache. Scenes are rendered concurrently.
// It returns the number of artifacts served from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scenes []mark.Scene, opts Options) ([]RenderedScene, int, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, 0, err
	}

	start := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Formats)

	out := make([]RenderedScene, len(scenes))
	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, scene := range scenes {
		g.Go(func() error {
			res, err := r.renderScene(gctx, scene, opts)
			if err != nil {
				return fmt.Errorf("variation %d: %w", i+1, err)
			}
			out[i] = res
			return nil
		})
	}
	err := g.Wait()

	observability.Render().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, 0, err
	}

	hits := 0
	for _, res := range out {
		hits += res.Hits
	}
	return out, hits, nil
}

// RenderScene renders one scene in every requested format, with caching.
func (r *Runner) RenderScene(ctx context.Context, scene mark.Scene, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	res, err := r.renderScene(ctx, scene, opts)
	if err != nil {
		return nil, err
	}
	return res.Artifacts, nil
}

func (r *Runner) renderScene(ctx context.Context, scene mark.Scene, opts Options) (RenderedScene, error) {
	if err := ctx.Err(); err != nil {
		return RenderedScene{}, err
	}

	sceneData, err := json.Marshal(scene)
	if err != nil {
		return RenderedScene{}, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	res := RenderedScene{
		SceneHash: cache.Hash(sceneData),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(res.SceneHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				res.Artifacts[format] = data
				res.Hits++
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")

		data, err := RenderFormat(scene, format, opts.PixelRatio)
		if err != nil {
			return RenderedScene{}, err
		}
		res.Artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		} else {
			opts.Logger.Debug("artifact cache write failed", "format", format, "err", err)
		}
	}
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) generator(opts Options) *mark.Generator {
	if opts.Fonts == nil {
		return mark.New()
	}
	return mark.New(mark.WithFonts(opts.Fonts))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Package variation expands one base request into a family of related logo
// specs and generates their scenes in parallel.
package variation

import (
	"context"
	"crypto/rand"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/observability"
	"github.com/matzehuels/brandmark/pkg/palette"
)

// DefaultCount is the number of variations produced when none is requested.
const DefaultCount = 6

// SeedLength is the length of seeds produced by [RandomSeed].
const SeedLength = 6

// Request is the user-facing input shared by every variation.
type Request struct {
	CampaignName string
	Tagline      string
	Palette      palette.Palette
	Style        mark.Style
	Aspect       mark.Aspect
	Seed         string
}

// DefaultPalette returns the palette derived from the campaign and style.
func (r Request) DefaultPalette() palette.Palette {
	return palette.FromSeed(r.CampaignName + string(r.Style))
}

// Expand returns n specs that share everything with base except the seed,
// which becomes "<seed>-1" through "<seed>-n". Colors are normalized and any
// missing color is taken from the derived palette. n <= 0 means
// [DefaultCount].
func Expand(base Request, n int) []mark.LogoSpec {
	if n <= 0 {
		n = DefaultCount
	}
	colors := base.Palette.Normalized(base.DefaultPalette())

	specs := make([]mark.LogoSpec, n)
	for i := range specs {
		specs[i] = mark.LogoSpec{
			CampaignName: base.CampaignName,
			Tagline:      base.Tagline,
			Primary:      colors.Primary,
			Secondary:    colors.Secondary,
			Accent:       colors.Accent,
			Style:        base.Style,
			Seed:         SeedFor(base.Seed, i),
			Aspect:       base.Aspect,
		}
	}
	return specs
}

// SeedFor returns the seed of the variation at zero-based index i.
func SeedFor(base string, i int) string {
	return base + "-" + strconv.Itoa(i+1)
}

// Generate produces one scene per spec, running at most workers generations
// at a time. Results keep the input order. The first error cancels the
// remaining work and is returned. workers <= 0 means GOMAXPROCS.
func Generate(ctx context.Context, gen *mark.Generator, specs []mark.LogoSpec, workers int) ([]mark.Scene, error) {
	if gen == nil {
		gen = mark.New()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	observability.Generator().OnGenerateStart(ctx, len(specs))

	scenes := make([]mark.Scene, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, spec := range specs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scene, err := gen.Generate(spec)
			if err != nil {
				return err
			}
			scenes[i] = scene
			return nil
		})
	}
	err := g.Wait()

	observability.Generator().OnGenerateComplete(ctx, len(specs), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return scenes, nil
}

const seedAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomSeed returns a fresh lowercase base36 seed of [SeedLength]
// characters.
func RandomSeed() string {
	out := make([]byte, 0, SeedLength)
	buf := make([]byte, 16)
	for len(out) < SeedLength {
		_, _ = rand.Read(buf)
		for _, b := range buf {
			// 252 is the largest multiple of 36 below 256; rejecting the
			// rest keeps every symbol equally likely.
			if b >= 252 || len(out) == SeedLength {
				continue
			}
			out = append(out, seedAlphabet[b%36])
		}
	}
	return string(out)
}

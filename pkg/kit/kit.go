// Package kit bundles generated marks into a downloadable brand kit.
//
// A kit is a zip archive holding:
//
//   - brand.json: campaign metadata and the palette
//   - logo-N.png and logo-N.svg for the first three variations
//   - preview.png: a thumbnail of the first variation
//
// Archives are deterministic: entries are written in a fixed order with a
// fixed modification time, so the same scenes and metadata always produce
// the same bytes.
package kit

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/brandmark/pkg/errors"
	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/palette"
	"github.com/matzehuels/brandmark/pkg/render"
)

// DefaultLogos is the number of variations exported as logo files.
const DefaultLogos = 3

// File names inside the archive.
const (
	MetadataFile = "brand.json"
	PreviewFile  = "preview.png"
)

// Metadata is written to brand.json.
type Metadata struct {
	ID           string          `json:"id" bson:"_id"`
	CampaignName string          `json:"campaignName" bson:"campaign_name"`
	Tagline      string          `json:"tagline" bson:"tagline"`
	Style        mark.Style      `json:"style" bson:"style"`
	Colors       palette.Palette `json:"colors" bson:"colors"`
	Aspect       mark.Aspect     `json:"aspect" bson:"aspect"`
	Seeds        []string        `json:"seeds" bson:"seeds"`
	GeneratedAt  time.Time       `json:"generatedAt" bson:"generated_at"`
}

// Options configures [Build].
type Options struct {
	// Specs and Scenes are the generated variations in display order, one
	// spec per scene. Metadata is taken from the first spec.
	Specs  []mark.LogoSpec
	Scenes []mark.Scene

	// Logos is the number of variations exported as files (default 3).
	Logos int

	// PixelRatio for logo PNGs (default render.DefaultPixelRatio).
	PixelRatio float64

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// Kit is a built brand kit.
type Kit struct {
	Metadata Metadata
	Files    []File
	Archive  []byte
}

// FileName returns the archive's download name.
func (k *Kit) FileName() string { return FileName(k.Metadata.CampaignName) }

// Size returns the archive size in bytes.
func (k *Kit) Size() int { return len(k.Archive) }

// Build renders the logo files, writes the metadata and packs the archive.
func Build(ctx context.Context, opts Options) (*Kit, error) {
	if len(opts.Scenes) == 0 || len(opts.Scenes) != len(opts.Specs) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "kit needs one spec per scene (got %d specs, %d scenes)", len(opts.Specs), len(opts.Scenes))
	}
	if opts.Logos <= 0 {
		opts.Logos = DefaultLogos
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	first := opts.Specs[0]
	meta := Metadata{
		ID:           opts.NewID(),
		CampaignName: first.CampaignName,
		Tagline:      first.Tagline,
		Style:        first.Style,
		Colors:       palette.Palette{Primary: first.Primary, Secondary: first.Secondary, Accent: first.Accent},
		Aspect:       first.Aspect,
		GeneratedAt:  opts.Now().UTC(),
	}
	for _, s := range opts.Specs {
		meta.Seeds = append(meta.Seeds, s.Seed)
	}

	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	files := []File{{Name: MetadataFile, Data: metaJSON}}

	for i, scene := range opts.Scenes[:min(opts.Logos, len(opts.Scenes))] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := strconv.Itoa(i + 1)
		png, err := render.RenderPNG(scene, opts.PixelRatio)
		if err != nil {
			return nil, fmt.Errorf("render logo-%s.png: %w", n, err)
		}
		files = append(files,
			File{Name: "logo-" + n + ".png", Data: png},
			File{Name: "logo-" + n + ".svg", Data: render.RenderSVG(scene)},
		)
	}

	preview, err := render.RenderThumbnail(opts.Scenes[0], render.DefaultThumbnailSide)
	if err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	files = append(files, File{Name: PreviewFile, Data: preview})

	archive, err := Pack(files)
	if err != nil {
		return nil, err
	}
	return &Kit{Metadata: meta, Files: files, Archive: archive}, nil
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// FileName returns "<campaign>-brand-kit.zip" with whitespace runs and path
// separators replaced by '-'. An empty campaign yields "brand-kit.zip".
func FileName(campaign string) string {
	name := strings.TrimSpace(campaign)
	name = whitespaceRe.ReplaceAllString(name, "-")
	name = strings.NewReplacer("/", "-", `\`, "-").Replace(name)
	if name == "" {
		return "brand-kit.zip"
	}
	return name + "-brand-kit.zip"
}

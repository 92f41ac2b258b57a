package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brandmark/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      requestFlags
		formatsStr string
		outDir     string
		index      int
	)

	cmd := &cobra.Command{
		Use:   "render [campaign]",
		Short: "Render variations to SVG, PNG, PDF or JSON files",
		Long: `Render the variations for a campaign to files.

Files are named <campaign>-<seed>.<format> in the output directory, or
<campaign>.<format> when a single variation is selected with --index.
PNG output is rasterized in-process; PDF output needs rsvg-convert (librsvg).

Results are cached locally for faster subsequent runs.`,
		Example: `  brandmark render OrbitPay -f svg,png
  brandmark render OrbitPay --index 2 -f png --pixel-ratio 2 -o out/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.opts.Formats = parseFormats(formatsStr)
			if index > 0 && flags.opts.Count < index {
				flags.opts.Count = index
			}
			opts, err := c.options(&flags, args)
			if err != nil {
				return err
			}
			if index > opts.Count {
				return fmt.Errorf("--index %d is beyond --count %d", index, opts.Count)
			}
			return c.runRender(cmd.Context(), opts, flags.noCache, outDir, index)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&flags.opts.PixelRatio, "pixel-ratio", 0, "PNG device pixel ratio (default 3)")
	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "output directory")
	cmd.Flags().IntVar(&index, "index", 0, "render only this variation (1-based)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, noCache bool, outDir string, index int) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d variations...", opts.Count))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	variations := result.Variations
	if index > 0 {
		variations = variations[index-1 : index]
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	var written []string
	for _, v := range variations {
		formats := make([]string, 0, len(v.Artifacts))
		for f := range v.Artifacts {
			formats = append(formats, f)
		}
		sort.Strings(formats)
		for _, f := range formats {
			path := outputPath(outDir, v.Spec.CampaignName, v.Spec.Seed, f, index > 0)
			if err := os.WriteFile(path, v.Artifacts[f], 0o644); err != nil {
				return err
			}
			written = append(written, path)
		}
	}

	printSuccess("Rendered %d files", len(written))
	for _, p := range written {
		printFile(p)
	}
	printStats(len(variations), result.Stats.Elements, result.CacheInfo.RenderHit)
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/palette"
	"github.com/matzehuels/brandmark/pkg/pipeline"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags  requestFlags
		output string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "generate [campaign]",
		Short: "Generate variations and summarize them",
		Long: `Generate the variations for a campaign and print what each one is made of.

With --json (or -o) the generated scenes are written as JSON instead. Scenes
are cached locally so repeated runs are instant.`,
		Example: `  brandmark generate OrbitPay --tagline "Frictionless payments"
  brandmark generate OrbitPay -s Playful -n 3 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(&flags, args)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, flags.noCache, output, asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write scenes as JSON to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print scenes as JSON")

	return cmd
}

// generatedScenes is the JSON document written by generate.
type generatedScenes struct {
	Specs  []mark.LogoSpec `json:"specs"`
	Scenes []mark.Scene    `json:"scenes"`
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, noCache bool, output string, asJSON bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	specs := opts.Specs()
	scenes, hits, err := runner.GenerateWithCacheInfo(ctx, specs, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d variations", len(scenes)))

	if asJSON || output != "" {
		data, err := json.MarshalIndent(generatedScenes{Specs: specs, Scenes: scenes}, "", "  ")
		if err != nil {
			return err
		}
		if output == "" {
			_, err = stdout.Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return err
		}
		printSuccess("Scenes written")
		printFile(output)
		return nil
	}

	gen := mark.New(mark.WithFonts(opts.Fonts))
	rows := make([][]string, len(specs))
	elements := 0
	for i, spec := range specs {
		_, trace, err := gen.GenerateTrace(spec)
		if err != nil {
			return err
		}
		d := trace.Decision
		rows[i] = []string{
			fmt.Sprint(i + 1), spec.Seed, string(d.Layout), string(d.Shape),
			fmt.Sprint(d.Layers), fmt.Sprint(len(scenes[i].Elements)),
		}
		elements += len(scenes[i].Elements)
	}

	first := specs[0]
	printKeyValue("campaign", first.CampaignName)
	printKeyValue("style", string(first.Style))
	printKeyValue("aspect", string(first.Aspect))
	printPalette(palette.Palette{Primary: first.Primary, Secondary: first.Secondary, Accent: first.Accent})
	printNewline()
	fmt.Fprintln(stdout, variationTable(rows))
	printStats(len(scenes), elements, hits == len(scenes))
	printNewline()
	printNextStep("Render them", fmt.Sprintf("brandmark render %q -s %s --seed %s", first.CampaignName, first.Style, opts.Seed))
	return nil
}

func variationTable(rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Seed", "Layout", "Shape", "Layers", "Elements").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 1 {
				return StyleHighlight.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		}).
		Render()
}

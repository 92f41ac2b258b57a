package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/pipeline"
	"github.com/matzehuels/brandmark/pkg/render/explain"
)

// Explain output formats.
const (
	explainText = "text"
	explainDOT  = "dot"
	explainSVG  = "svg"
	explainPDF  = "pdf"
)

// explainCommand creates the explain command.
func (c *CLI) explainCommand() *cobra.Command {
	var (
		flags  requestFlags
		index  int
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "explain [campaign]",
		Short: "Show how a variation was derived from its seed",
		Long: `Trace one variation from its seed composite to its elements: the hash,
the initial stream state, the layout and shape picks, and every draw consumed
by each layer.

Formats: text (default), dot (Graphviz source), svg and pdf (rendered with
the embedded Graphviz).`,
		Example: `  brandmark explain OrbitPay --index 1
  brandmark explain OrbitPay -f svg -o trace.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if index < 1 {
				return fmt.Errorf("--index must be at least 1")
			}
			flags.opts.Count = max(flags.opts.Count, index)
			opts, err := c.options(&flags, args)
			if err != nil {
				return err
			}
			return c.runExplain(cmd.Context(), opts, index, format, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&index, "index", 1, "variation to explain (1-based)")
	cmd.Flags().StringVarP(&format, "format", "f", explainText, "output format: text, dot, svg, pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *CLI) runExplain(ctx context.Context, opts pipeline.Options, index int, format, output string) error {
	spec := opts.Specs()[index-1]
	_, trace, err := mark.New(mark.WithFonts(opts.Fonts)).GenerateTrace(spec)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("traced variation", "seed", spec.Seed, "draws", len(trace.Draws))

	var data []byte
	switch format {
	case explainText:
		if output == "" {
			return explain.Text(stdout, trace)
		}
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		if err := explain.Text(f, trace); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case explainDOT:
		data = []byte(explain.ToDOT(trace))
	case explainSVG:
		data, err = explain.RenderSVG(ctx, explain.ToDOT(trace))
	case explainPDF:
		data, err = explain.RenderPDF(ctx, explain.ToDOT(trace))
	default:
		return fmt.Errorf("invalid format: %q (must be one of: text, dot, svg, pdf)", format)
	}
	if err != nil {
		return err
	}

	if output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	printSuccess("Trace written")
	printFile(output)
	return nil
}

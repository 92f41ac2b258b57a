package cli

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/palette"
)

// paletteCommand creates the palette command.
func (c *CLI) paletteCommand() *cobra.Command {
	var (
		style  string
		p      palette.Palette
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "palette [campaign]",
		Short: "Show the palette a campaign resolves to",
		Long: `Show the palette used for a campaign. Colors not given with --primary,
--secondary or --accent are derived from the campaign name and style; given
colors are normalized to lowercase #rrggbb (unreadable input becomes ` + palette.Fallback + `).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if style == "" {
				style = cfg.Defaults.Style
			}
			if style == "" {
				style = string(mark.StyleFuturistic)
			}
			st, err := mark.ParseStyle(style)
			if err != nil {
				return err
			}
			if p.IsZero() {
				p = cfg.Defaults.Palette
			}

			campaign := strings.Join(args, " ")
			resolved := p.Normalized(palette.FromSeed(campaign + string(st)))

			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(resolved)
			}
			printPalette(resolved)
			return nil
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", "", "style the palette is derived with")
	cmd.Flags().StringVar(&p.Primary, "primary", "", "primary color override")
	cmd.Flags().StringVar(&p.Secondary, "secondary", "", "secondary color override")
	cmd.Flags().StringVar(&p.Accent, "accent", "", "accent color override")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

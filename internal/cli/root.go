package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/brandmark/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Logging goes to stderr; --verbose (set up by main) switches to debug.
// Every command reads the optional TOML config named by --config.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Brandmark generates deterministic logo marks for campaigns",
		Long: `Brandmark generates deterministic logo marks from a campaign name, tagline,
style, palette and seed. The same inputs always produce the same mark.

Each request yields several variations (seeds <seed>-1 ... <seed>-N) that can
be rendered to SVG, PNG, PDF or JSON, bundled into a brand kit, or served
over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/brandmark/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.kitCommand())
	root.AddCommand(c.explainCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

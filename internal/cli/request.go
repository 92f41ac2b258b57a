package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/pipeline"
	"github.com/matzehuels/brandmark/pkg/variation"
)

// requestFlags are the generation inputs shared by every command that
// produces marks.
type requestFlags struct {
	opts       pipeline.Options
	randomSeed bool
	noCache    bool
	refresh    bool
}

// register adds the request flags to cmd.
func (f *requestFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.opts.Tagline, "tagline", "", "tagline under the campaign name")
	fl.StringVarP(&f.opts.Style, "style", "s", "", "style: "+joinStyles()+" (default "+string(pipeline.DefaultStyle)+")")
	fl.StringVarP(&f.opts.Aspect, "aspect", "a", "", "aspect ratio: 1:1 (default), 4:5, 9:16")
	fl.StringVar(&f.opts.Seed, "seed", "", "base seed; variations use <seed>-1 ... <seed>-N (default \""+pipeline.DefaultSeed+"\")")
	fl.BoolVar(&f.randomSeed, "random-seed", false, "pick a fresh random base seed")
	fl.IntVarP(&f.opts.Count, "count", "n", 0, "number of variations (default 6)")
	fl.StringVar(&f.opts.Primary, "primary", "", "primary color (#rgb or #rrggbb; derived from campaign and style if empty)")
	fl.StringVar(&f.opts.Secondary, "secondary", "", "secondary color")
	fl.StringVar(&f.opts.Accent, "accent", "", "accent color")
	fl.IntVar(&f.opts.Workers, "workers", 0, "parallel generations (default GOMAXPROCS)")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached results and regenerate")

	_ = cmd.RegisterFlagCompletionFunc("style", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, len(mark.Styles))
		for i, s := range mark.Styles {
			out[i] = string(s)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("aspect", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, len(mark.Aspects))
		for i, a := range mark.Aspects {
			out[i] = string(a)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

// options resolves the final pipeline options: the campaign argument, the
// config file and a random seed when requested. The result is validated.
func (c *CLI) options(f *requestFlags, args []string) (pipeline.Options, error) {
	opts := f.opts
	if len(args) > 0 {
		opts.CampaignName = strings.Join(args, " ")
	}
	if f.randomSeed {
		opts.Seed = variation.RandomSeed()
	}
	opts.Refresh = f.refresh
	if err := c.applyConfig(&opts); err != nil {
		return pipeline.Options{}, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func joinStyles() string {
	names := make([]string, len(mark.Styles))
	for i, s := range mark.Styles {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/brandmark/pkg/kit"
	"github.com/matzehuels/brandmark/pkg/pipeline"
	"github.com/matzehuels/brandmark/pkg/store"
)

const defaultMongoDB = "brandmark"

// kitCommand creates the kit command.
func (c *CLI) kitCommand() *cobra.Command {
	var (
		flags    requestFlags
		output   string
		logos    int
		mongoURI string
		mongoDB  string
	)

	cmd := &cobra.Command{
		Use:   "kit [campaign]",
		Short: "Build a brand kit zip",
		Long: `Build a brand kit: a zip archive with brand.json (campaign, palette, style,
aspect, seeds and timestamp), logo-N.png and logo-N.svg for the first
variations, and a preview thumbnail.

With --mongo-uri the kit record is also saved to MongoDB.`,
		Example: `  brandmark kit "Orbit Pay" --tagline "Frictionless payments"
  brandmark kit OrbitPay --logos 6 -o kits/orbitpay.zip`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(&flags, args)
			if err != nil {
				return err
			}
			return c.runKit(cmd.Context(), opts, flags.noCache, kitParams{
				output:   output,
				logos:    logos,
				mongoURI: mongoURI,
				mongoDB:  mongoDB,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&flags.opts.PixelRatio, "pixel-ratio", 0, "PNG device pixel ratio (default 3)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "archive path (default <campaign>-brand-kit.zip)")
	cmd.Flags().IntVar(&logos, "logos", kit.DefaultLogos, "number of variations exported as logo files")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", os.Getenv("BRANDMARK_MONGO_URI"), "save the kit record to this MongoDB")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", defaultMongoDB, "MongoDB database")

	cmd.AddCommand(c.kitListCommand())
	return cmd
}

type kitParams struct {
	output   string
	logos    int
	mongoURI string
	mongoDB  string
}

func (c *CLI) runKit(ctx context.Context, opts pipeline.Options, noCache bool, p kitParams) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Building brand kit...")
	spinner.Start()

	specs := opts.Specs()
	scenes, err := runner.Generate(ctx, specs, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	k, err := kit.Build(ctx, kit.Options{
		Specs:      specs,
		Scenes:     scenes,
		Logos:      p.logos,
		PixelRatio: opts.PixelRatio,
	})
	if err != nil {
		spinner.StopWithError("Kit failed")
		return err
	}
	spinner.Stop()

	path := p.output
	if path == "" {
		path = k.FileName()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, k.Archive, 0o644); err != nil {
		return err
	}

	printSuccess("Brand kit written (%d files, %d bytes)", len(k.Files), k.Size())
	printFile(path)

	if p.mongoURI != "" {
		st, err := store.NewMongoStore(ctx, p.mongoURI, p.mongoDB)
		if err != nil {
			return fmt.Errorf("connect store: %w", err)
		}
		defer st.Close(context.WithoutCancel(ctx))
		if err := st.Save(ctx, store.NewRecord(k)); err != nil {
			return fmt.Errorf("save kit record: %w", err)
		}
		printDetail("Saved record %s", k.Metadata.ID)
	}
	return nil
}

// kitListCommand creates the "kit ls" subcommand.
func (c *CLI) kitListCommand() *cobra.Command {
	var (
		mongoURI string
		mongoDB  string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List saved kit records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if mongoURI == "" {
				return fmt.Errorf("--mongo-uri (or BRANDMARK_MONGO_URI) is required")
			}
			st, err := store.NewMongoStore(cmd.Context(), mongoURI, mongoDB)
			if err != nil {
				return fmt.Errorf("connect store: %w", err)
			}
			defer st.Close(context.WithoutCancel(cmd.Context()))
			return listKits(cmd.Context(), st, limit)
		},
	}
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", os.Getenv("BRANDMARK_MONGO_URI"), "MongoDB connection string")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", defaultMongoDB, "MongoDB database")
	cmd.Flags().IntVar(&limit, "limit", store.DefaultListLimit, "maximum records")
	return cmd
}

func listKits(ctx context.Context, st store.Store, limit int) error {
	records, err := st.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		printInfo("No kits saved")
		return nil
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.ID, r.CampaignName, string(r.Style), r.GeneratedAt.Format("2006-01-02 15:04"), fmt.Sprint(r.Size)}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	fmt.Fprintln(stdout, table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Campaign", "Style", "Generated", "Bytes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		}).
		Render())
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/palette"
	"github.com/matzehuels/brandmark/pkg/pipeline"
	"github.com/matzehuels/brandmark/pkg/render"
	"github.com/matzehuels/brandmark/pkg/variation"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		flags  requestFlags
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "browse [campaign]",
		Short: "Browse variations interactively",
		Long: `Browse the variations for a campaign in the terminal.

Keys: ↑/↓ select, r new random seed, s next style, a next aspect,
enter export the selected variation as SVG and PNG, q quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(&flags, args)
			if err != nil {
				return err
			}
			m, err := NewBrowseModel(cmd.Context(), opts, outDir)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if bm, ok := final.(BrowseModel); ok {
				for _, p := range bm.Exported {
					printFile(p)
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "export directory")
	return cmd
}

// =============================================================================
// BrowseModel - Interactive variation browser
// =============================================================================

// BrowseModel is the bubbletea model for browsing variations.
type BrowseModel struct {
	ctx    context.Context
	opts   pipeline.Options
	outDir string

	Specs     []mark.LogoSpec
	Scenes    []mark.Scene
	Decisions []mark.Decision
	Cursor    int
	Exported  []string
	Status    string
	Err       error
}

// generatedMsg carries a fresh set of variations.
type generatedMsg struct {
	opts      pipeline.Options
	specs     []mark.LogoSpec
	scenes    []mark.Scene
	decisions []mark.Decision
	err       error
}

// exportedMsg reports written files.
type exportedMsg struct {
	paths []string
	err   error
}

// NewBrowseModel generates the initial variations. opts must be validated.
func NewBrowseModel(ctx context.Context, opts pipeline.Options, outDir string) (BrowseModel, error) {
	msg := generate(ctx, opts)
	if msg.err != nil {
		return BrowseModel{}, msg.err
	}
	m := BrowseModel{ctx: ctx, outDir: outDir}
	return m.apply(msg), nil
}

func generate(ctx context.Context, opts pipeline.Options) generatedMsg {
	specs := opts.Specs()
	gen := mark.New(mark.WithFonts(opts.Fonts))
	scenes, err := variation.Generate(ctx, gen, specs, opts.Workers)
	if err != nil {
		return generatedMsg{err: err}
	}
	decisions := make([]mark.Decision, len(specs))
	for i, spec := range specs {
		_, trace, err := gen.GenerateTrace(spec)
		if err != nil {
			return generatedMsg{err: err}
		}
		decisions[i] = trace.Decision
	}
	return generatedMsg{opts: opts, specs: specs, scenes: scenes, decisions: decisions}
}

func (m BrowseModel) apply(msg generatedMsg) BrowseModel {
	m.opts = msg.opts
	m.Specs, m.Scenes, m.Decisions = msg.specs, msg.scenes, msg.decisions
	if m.Cursor >= len(m.Specs) {
		m.Cursor = 0
	}
	return m
}

// regenerate returns a command producing variations for opts with one
// field changed by edit.
func (m BrowseModel) regenerate(edit func(*pipeline.Options)) tea.Cmd {
	opts := m.opts
	edit(&opts)
	ctx := m.ctx
	return func() tea.Msg {
		if err := opts.Revalidate(); err != nil {
			return generatedMsg{err: err}
		}
		return generate(ctx, opts)
	}
}

func (m BrowseModel) export() tea.Cmd {
	scene := m.Scenes[m.Cursor]
	spec := m.Specs[m.Cursor]
	dir, ratio := m.outDir, m.opts.PixelRatio
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportedMsg{err: err}
		}
		svgPath := outputPath(dir, spec.CampaignName, spec.Seed, render.FormatSVG, false)
		if err := os.WriteFile(svgPath, render.RenderSVG(scene), 0o644); err != nil {
			return exportedMsg{err: err}
		}
		png, err := render.RenderPNG(scene, ratio)
		if err != nil {
			return exportedMsg{err: err}
		}
		pngPath := outputPath(dir, spec.CampaignName, spec.Seed, render.FormatPNG, false)
		if err := os.WriteFile(pngPath, png, 0o644); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{paths: []string{svgPath, pngPath}}
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Specs)-1 {
				m.Cursor++
			}
		case "r":
			m.Status = "generating..."
			return m, m.regenerate(func(o *pipeline.Options) { o.Seed = variation.RandomSeed() })
		case "s":
			m.Status = "generating..."
			return m, m.regenerate(func(o *pipeline.Options) { o.Style = string(next(mark.Styles, mark.Style(o.Style))) })
		case "a":
			m.Status = "generating..."
			return m, m.regenerate(func(o *pipeline.Options) { o.Aspect = string(next(mark.Aspects, mark.Aspect(o.Aspect))) })
		case "enter":
			if len(m.Scenes) == 0 {
				return m, nil
			}
			m.Status = "exporting..."
			return m, m.export()
		}
	case generatedMsg:
		if msg.err != nil {
			m.Err, m.Status = msg.err, ""
			return m, nil
		}
		m = m.apply(msg)
		m.Err, m.Status = nil, ""
	case exportedMsg:
		if msg.err != nil {
			m.Err, m.Status = msg.err, ""
			return m, nil
		}
		m.Exported = append(m.Exported, msg.paths...)
		m.Err = nil
		m.Status = "exported " + filepath.Base(msg.paths[0])
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	title := m.opts.CampaignName
	if title == "" {
		title = mark.FallbackHeadline
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s · %s · seed %s", m.opts.Style, m.opts.Aspect, m.opts.Seed)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  r reseed  s style  a aspect  ⏎ export  q quit"))
	b.WriteString("\n\n")

	if len(m.Specs) > 0 {
		first := m.Specs[0]
		p := palette.Palette{Primary: first.Primary, Secondary: first.Secondary, Accent: first.Accent}
		b.WriteString(swatch(p.Primary) + " " + swatch(p.Secondary) + " " + swatch(p.Accent) + "  ")
		b.WriteString(listDimStyle.Render(p.Primary + " " + p.Secondary + " " + p.Accent))
		b.WriteString("\n\n")
	}

	rows := make([][]string, len(m.Specs))
	for i, spec := range m.Specs {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		d := m.Decisions[i]
		rows[i] = []string{cursor, spec.Seed, string(d.Layout), string(d.Shape), fmt.Sprint(d.Layers), fmt.Sprint(len(m.Scenes[i].Elements))}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Seed", "Layout", "Shape", "Layers", "Elements").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Specs))))

	switch {
	case m.Err != nil:
		b.WriteString("  " + styleIconError.Render(iconError+" "+m.Err.Error()))
	case m.Status != "":
		b.WriteString("  " + StyleSuccess.Render(m.Status))
	}
	b.WriteString("\n")

	return b.String()
}

// next returns the element after cur in list, wrapping around.
func next[T comparable](list []T, cur T) T {
	i := slices.Index(list, cur)
	return list[(i+1)%len(list)]
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bleviet/ipcraft/pkg/errors"
	"github.com/bleviet/ipcraft/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path (or base path for multiple formats)
	view     string // visualization type: "strip" or "hierarchy"
	formats  string // comma-separated output formats
	mapIndex int
	block    string
	register string
	width    float64
	detailed bool
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Generate SVG, PNG, or DOT visualizations",
		Long: `Render an address-map document as a diagram.

The strip view draws a single address block (or, with --register, that
register's bit fields) as a horizontal strip. The hierarchy view draws
the whole map as a node-link diagram via Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			view := opts.view
			if view == "" {
				view = c.Config.View
			}
			width := opts.width
			if width == 0 {
				width = c.Config.Width
			}

			pOpts := pipeline.Options{
				Path:     args[0],
				MapIndex: opts.mapIndex,
				Block:    opts.block,
				Register: opts.register,
				View:     view,
				Formats:  parseFormats(opts.formats),
				Width:    width,
				Detailed: opts.detailed,
				Refresh:  opts.refresh,
				Logger:   c.Logger,
			}

			spinner := newSpinnerWithContext(cmd.Context(), "rendering "+filepath.Base(args[0]))
			spinner.Start()
			result, err := runner.Execute(cmd.Context(), pOpts)
			spinner.Stop()
			if err != nil {
				return err
			}

			for _, v := range result.Violations {
				printWarning("%s", errors.UserMessage(v))
			}

			tracker := newProgress(c.Logger)
			written, err := writeArtifacts(result.Artifacts, opts.output, args[0])
			if err != nil {
				return err
			}
			tracker.done(fmt.Sprintf("Rendered %d artifacts", len(written)))

			printSuccess("rendered %s", filepath.Base(args[0]))
			printStats(result.Stats.BlockCount, result.Stats.RegisterCount, result.CacheInfo.RenderHit)
			for _, path := range written {
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path (default: document name with format extension)")
	cmd.Flags().StringVar(&opts.view, "view", "", "visualization type: strip or hierarchy")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "comma-separated formats: svg,png,dot")
	cmd.Flags().IntVar(&opts.mapIndex, "map", 0, "memory map index")
	cmd.Flags().StringVar(&opts.block, "block", "", "address block to render (strip view)")
	cmd.Flags().StringVar(&opts.register, "register", "", "render this register's bit fields (strip view)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "strip drawing width in pixels")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include offsets and sizes in hierarchy labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if a cached artifact exists")
	return cmd
}

// writeArtifacts stores each rendered artifact next to the document (or at
// the explicit output path) and returns the written file paths.
func writeArtifacts(artifacts map[string][]byte, output, docPath string) ([]string, error) {
	base := output
	if base == "" {
		base = strings.TrimSuffix(docPath, filepath.Ext(docPath))
	}

	written := make([]string, 0, len(artifacts))
	for format, data := range artifacts {
		path := base
		if !strings.HasSuffix(path, "."+format) {
			path += "." + format
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

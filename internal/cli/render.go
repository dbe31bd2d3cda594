package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/provgraph/provgraph/pkg/pipeline"
)

// renderCommand creates the render command, a convert + visualize
// shortcut that goes straight from PROV-JSON to images.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noLabels   bool
		noCache    bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render [document.json]",
		Short: "Convert and render a PROV-JSON document in one step",
		Long: `Convert and render a PROV-JSON document in one step.

The render command chains 'convert' and 'visualize': the PROV-JSON input
is translated to PROV-JSONLD, projected onto the visual graph, and
rendered into the requested image formats. Use the separate commands
when you need the intermediate PROV-JSONLD or DOT text.

Every stage is cached locally, so repeated renders of the same document
are fast.

Examples:
  provgraph render document.json                  # document.svg
  provgraph render document.json -f svg,png       # document.svg + document.png
  provgraph render document.json -f pdf -o out.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			if noLabels {
				opts.ShowRelationLabels = false
			}
			opts.Formats = parseFormats(formatsStr)
			if !cmd.Flags().Changed("format") && len(c.Config.Defaults.Formats) > 0 {
				opts.Formats = c.Config.Defaults.Formats
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateDirection(opts.Direction); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Graph flags
	cmd.Flags().StringVar(&opts.Direction, "direction", opts.Direction, "layout direction: LR (default), RL, TB, BT")
	cmd.Flags().BoolVar(&opts.ShowAttributes, "show-attr", opts.ShowAttributes, "include attribute lists in node labels")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "omit relation labels from edges")
	cmd.Flags().BoolVar(&opts.Strict, "strict", opts.Strict, "fail on relations with unresolvable endpoints")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")

	return cmd
}

// runRender runs the full pipeline on the input document and writes the
// rendered artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	data, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering document...")
	spinner.Start()

	result, warning, err := renderWithFallback(opts, func(o pipeline.Options) (*pipeline.Result, error) {
		return runner.Render(ctx, data, o)
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	formats := opts.Formats
	if warning != "" {
		printWarning("Image rendering failed: %s", warning)
		formats = []string{pipeline.FormatDOT}
		if output != "" {
			output = artifactBase(output, input) + "." + pipeline.FormatDOT
		}
	}

	written, err := writeRendered(result, formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}

	skipped := ""
	if result.Stats.Skipped > 0 {
		skipped = fmt.Sprintf("%d skipped", result.Stats.Skipped)
	}
	cached := result.CacheInfo.ConvertHit && result.CacheInfo.DOTHit
	printStats(cached,
		statCount(result.Stats.Nodes, "node"),
		statCount(result.Stats.Edges, "edge"),
		skipped)
	return nil
}

// writeRendered writes the requested artifacts. With a single format
// and an explicit output path the artifact goes to that exact file;
// otherwise each format becomes <base>.<format> next to the output (or
// input) path.
func writeRendered(result *pipeline.Result, formats []string, input, output string) ([]string, error) {
	if len(formats) == 1 && output != "" {
		format := formats[0]
		data, ok := result.Artifacts[format]
		if !ok {
			return nil, fmt.Errorf("no %s artifact was produced", format)
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", output, err)
		}
		return []string{output}, nil
	}

	base := artifactBase(output, input)
	var written []string
	for _, format := range formats {
		data, ok := result.Artifacts[format]
		if !ok {
			printWarning("No %s artifact was produced", format)
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			printWarning("Write %s: %v", path, err)
			continue
		}
		written = append(written, path)
	}
	if len(written) == 0 {
		return nil, fmt.Errorf("no artifacts were written")
	}
	return written, nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provgraph/provgraph/pkg/errors"
	"github.com/provgraph/provgraph/pkg/pipeline"
)

// visualizeCommand creates the visualize command for building a
// Graphviz DOT graph from PROV-JSONLD.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output    string
		renderStr string
		noLabels  bool
		noCache   bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "visualize [document.jsonld]",
		Short: "Build a Graphviz DOT graph from a PROV-JSONLD document",
		Long: `Build a Graphviz DOT graph from a PROV-JSONLD document.

The visualize command takes a PROV-JSONLD document (produced by
'convert') and emits Graphviz DOT text: entities as yellow ellipses,
activities as blue boxes, agents as orange houses, and one styled edge
per relation. Pass --render to also write image files next to the DOT
output; a failed image render is reported as a warning and the DOT
output still succeeds.

Results are cached locally for faster subsequent runs.

Use 'render' as a shortcut to go directly from PROV-JSON to images.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			if noLabels {
				opts.ShowRelationLabels = false
			}
			opts.Formats = append([]string{pipeline.FormatDOT}, parseRenderFormats(renderStr)...)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateDirection(opts.Direction); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output DOT file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Graph flags
	cmd.Flags().StringVar(&opts.Direction, "direction", opts.Direction, "layout direction: LR (default), RL, TB, BT")
	cmd.Flags().BoolVar(&opts.ShowAttributes, "show-attr", opts.ShowAttributes, "include attribute lists in node labels")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "omit relation labels from edges")
	cmd.Flags().BoolVar(&opts.Strict, "strict", opts.Strict, "fail on relations with unresolvable endpoints")
	cmd.Flags().StringVar(&renderStr, "render", "", "also render image format(s): svg, png, pdf (comma-separated)")

	return cmd
}

// runVisualize loads the document, builds the DOT graph, and writes the
// outputs.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinnerWithContext(ctx, "Building graph...")
	spinner.Start()

	result, warning, err := renderWithFallback(opts, func(o pipeline.Options) (*pipeline.Result, error) {
		return runner.Visualize(ctx, data, o)
	})
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if warning != "" {
		printWarning("Image rendering failed: %s", warning)
	}

	formats := opts.Formats
	if warning != "" {
		formats = []string{pipeline.FormatDOT}
	}
	return c.writeArtifacts(artifactWriteParams{
		result:  result,
		formats: formats,
		input:   input,
		output:  output,
	})
}

// renderWithFallback runs the pipeline via run and downgrades a
// rasterization failure to a DOT-only result: the DOT stage has already
// succeeded (and is cached), so the command can still deliver it. The
// returned warning is empty when every requested format rendered.
func renderWithFallback(opts pipeline.Options, run func(pipeline.Options) (*pipeline.Result, error)) (*pipeline.Result, string, error) {
	result, err := run(opts)
	if err == nil || !errors.Is(err, errors.ErrCodeRenderFailed) {
		return result, "", err
	}

	warning := errors.UserMessage(err)
	fallback := opts
	fallback.Formats = []string{pipeline.FormatDOT}
	result, dotErr := run(fallback)
	if dotErr != nil {
		return nil, "", err
	}
	return result, warning, nil
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	result  *pipeline.Result
	formats []string
	input   string
	output  string
}

// writeArtifacts writes the DOT output and any rendered image
// artifacts. The DOT text goes to params.output (stdout when empty);
// image formats become sibling files of the DOT output, or of the input
// when the DOT went to stdout. A missing or unwritable image is a
// warning, not a failure.
func (c *CLI) writeArtifacts(params artifactWriteParams) error {
	dot := params.result.Artifacts[pipeline.FormatDOT]
	if err := writeOutput(dot, params.output); err != nil {
		return fmt.Errorf("write output %s: %w", params.output, err)
	}

	base := artifactBase(params.output, params.input)
	var written []string
	for _, format := range params.formats {
		if format == pipeline.FormatDOT {
			continue
		}
		data, ok := params.result.Artifacts[format]
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

	// With the DOT on stdout, status lines would corrupt the stream;
	// report sibling images through the logger instead.
	if params.output == "" {
		for _, path := range written {
			c.Logger.Infof("Wrote %s", path)
		}
		return nil
	}

	printSuccess("Visualization complete")
	printFile(params.output)
	for _, path := range written {
		printFile(path)
	}

	skipped := ""
	if params.result.Stats.Skipped > 0 {
		skipped = fmt.Sprintf("%d skipped", params.result.Stats.Skipped)
	}
	printStats(params.result.CacheInfo.DOTHit,
		statCount(params.result.Stats.Nodes, "node"),
		statCount(params.result.Stats.Edges, "edge"),
		skipped)

	if len(written) == 0 {
		printNewline()
		printNextStep("Render images", "provgraph visualize "+params.input+" --render svg")
	}
	return nil
}

// artifactBase returns the path prefix for sibling image files: the
// output path when set, else the input path, with its extension
// stripped.
func artifactBase(output, input string) string {
	path := output
	if path == "" {
		path = input
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if base == "" || base == "-" {
		return appName
	}
	return base
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/provgraph/provgraph/pkg/pipeline"
)

// convertCommand creates the convert command for translating PROV-JSON
// into PROV-JSONLD.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		output  string
		compact bool
		noCache bool
	)
	opts := pipeline.Options{Pretty: true}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a PROV-JSON document to PROV-JSONLD",
		Long: `Convert a PROV-JSON document to PROV-JSONLD.

The convert command reads a PROV-JSON document from the given file (or
from standard input when the argument is "-" or omitted) and writes the
equivalent PROV-JSONLD document. Statement order, namespace
declarations, and bundles are preserved.

Results are cached locally for faster subsequent runs.

Examples:
  provgraph convert document.json                 # To stdout
  provgraph convert document.json -o document.jsonld
  cat document.json | provgraph convert --compact`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			if compact {
				opts.Pretty = false
			}
			opts.CacheTTL = c.Config.Cache.TTL.Duration
			return c.runConvert(cmd.Context(), input, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Pretty, "pretty", opts.Pretty, "indent the PROV-JSONLD output")
	cmd.Flags().BoolVar(&compact, "compact", false, "emit single-line JSON (overrides --pretty)")

	return cmd
}

// runConvert reads the input document, runs the conversion, and writes
// the PROV-JSONLD output.
func (c *CLI) runConvert(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinnerWithContext(ctx, "Converting document...")
	spinner.Start()

	result, err := runner.Convert(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Conversion failed")
		return err
	}
	spinner.Stop()

	if err := writeOutput(result.Data, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	if output != "" {
		printSuccess("Conversion complete")
		printFile(output)
		printStats(result.CacheInfo.ConvertHit,
			statCount(result.Stats.Elements, "element"),
			statCount(result.Stats.Relations, "relation"),
			statCount(result.Stats.Bundles, "bundle"))
		printNewline()
		printNextStep("Visualize", "provgraph visualize "+output)
	}
	return nil
}

// =============================================================================
// Input / Output
// =============================================================================

// readInput reads the document from path, or from standard input when
// path is empty or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// writeOutput writes data to path, or to standard output when path is
// empty, always ending with a newline.
func writeOutput(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		if _, err := out.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// Package cli implements the provgraph command-line interface.
//
// This package provides commands for converting W3C PROV documents
// between PROV-JSON and PROV-JSONLD, rendering them as Graphviz
// visualizations, browsing their statements, and serving the same
// pipeline over HTTP. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - convert: Translate PROV-JSON into PROV-JSONLD
//   - visualize: Build a Graphviz DOT graph from PROV-JSONLD
//   - render: Convert and render a PROV-JSON document in one step
//   - inspect: Browse the statements of a PROV-JSON document
//   - serve: Expose the conversion pipeline as an HTTP API
//   - cache: Manage the local conversion cache
//
// # Configuration
//
// Built-in defaults, the optional TOML config file, and command-line
// flags layer in that order: the file overrides the defaults, flags
// override the file. The file location follows the XDG convention
// ($XDG_CONFIG_HOME/provgraph/config.toml) unless --config points
// elsewhere.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/provgraph/provgraph/pkg/buildinfo"
	"github.com/provgraph/provgraph/pkg/cache"
	"github.com/provgraph/provgraph/pkg/config"
	"github.com/provgraph/provgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "provgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config carries the layered file defaults. It starts as the
	// built-in defaults and is replaced by the loaded file in the root
	// command's PersistentPreRunE, before any subcommand runs.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and built-in
// configuration defaults.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "provgraph",
		Short:        "Provgraph converts and visualizes W3C PROV documents",
		Long:         `Provgraph is a CLI tool for translating W3C PROV provenance documents between the PROV-JSON and PROV-JSONLD serializations and for rendering them as Graphviz graphs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/provgraph/config.toml)")

	// Register all subcommands
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file into c.Config. A missing user-level
// file keeps the built-in defaults; a missing --config file is an error.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// applyConfig overlays config file values onto opts for settings the
// user did not pin with a flag on the command line.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if !changed("direction") && c.Config.Defaults.Direction != "" {
		opts.Direction = c.Config.Defaults.Direction
	}
	if c.Config.Defaults.Font != "" {
		opts.Font = c.Config.Defaults.Font
	}
	if !changed("show-attr") {
		opts.ShowAttributes = c.Config.Defaults.ShowAttributes
	}
	if !changed("no-labels") {
		opts.ShowRelationLabels = c.Config.Defaults.ShowLabels
	}
	opts.CacheTTL = c.Config.Cache.TTL.Duration
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, c.Logger), nil
}

// newCache picks the cache backend: a null cache when caching is off,
// otherwise a file cache under the configured (or XDG default)
// directory.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || !c.Config.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.resolveCacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// resolveCacheDir returns the configured cache directory, falling back
// to the XDG default.
func (c *CLI) resolveCacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/provgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// setCLIDefaults applies CLI-specific defaults on top of pipeline defaults.
func setCLIDefaults(opts *pipeline.Options) {
	opts.SetVisualizeDefaults()
	// CLI-specific preferences (override pipeline defaults)
	opts.ShowRelationLabels = true
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parseRenderFormats parses the --render flag value. Unlike
// parseFormats an empty value means no extra formats at all.
func parseRenderFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

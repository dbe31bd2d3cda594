// Package pipeline provides the core translation pipeline for provgraph.
//
// This package implements the conversion stages shared by the CLI and the
// HTTP API. By centralizing this logic, we ensure consistent behavior
// across all entry points and avoid code duplication.
//
// # Architecture
//
// Two independent pipelines share the statement registry:
//
//  1. Convert: PROV-JSON → canonical model → PROV-JSONLD
//  2. Visualize: PROV-JSONLD → visual graph → DOT (→ SVG/PNG/PDF)
//
// Render chains them: PROV-JSON in, DOT and raster artifacts out.
//
// # Usage
//
// Create a Runner and execute a stage:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Pretty: true}
//	result, err := runner.Convert(ctx, input, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	jsonld := result.Data
//
// Conversion stages are pure and synchronous; the only operation that
// leaves the process is rasterization, and its failures are reported as
// warnings without affecting the DOT output that already succeeded.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/provgraph/provgraph/pkg/cache"
	"github.com/provgraph/provgraph/pkg/errors"
	"github.com/provgraph/provgraph/pkg/visual"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultDirection is the default graph layout direction.
	DefaultDirection = visual.DefaultDirection

	// DefaultFont is the default node and edge font.
	DefaultFont = visual.DefaultFont
)

// Format constants for visualization outputs.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the translation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Convert options
	Pretty bool `json:"pretty,omitempty"` // indent the PROV-JSONLD output

	// Visualize options
	Direction          string `json:"direction,omitempty"` // LR, RL, TB, BT
	Font               string `json:"font,omitempty"`
	ShowAttributes     bool   `json:"show_attributes,omitempty"`
	ShowRelationLabels bool   `json:"show_relation_labels,omitempty"`
	Strict             bool   `json:"strict,omitempty"` // dropped relations become errors

	// Render options
	Formats []string `json:"formats,omitempty"` // dot, svg, png, pdf

	// Runtime options (not serialized)
	CacheTTL time.Duration `json:"-"` // overrides the per-stage default TTLs when positive
	Logger   *log.Logger   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Data is the primary output: PROV-JSONLD bytes from Convert, DOT
	// text from Visualize and Render.
	Data []byte

	// Artifacts contains visualization outputs keyed by format. The
	// "dot" artifact is always present after Visualize; raster formats
	// appear when requested and successfully rendered.
	Artifacts map[string][]byte

	// Diagnostics lists @graph items that contributed nothing to the
	// visual graph, in input order. Empty after Convert.
	Diagnostics []string

	// Stats contains counts and timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Elements  int // canonical element statements (Convert)
	Relations int // canonical relation statements (Convert)
	Bundles   int // bundles (Convert)
	Nodes     int // drawable nodes (Visualize)
	Edges     int // drawable edges (Visualize)
	Skipped   int // @graph items that produced no node or edge (Visualize)

	ConvertTime   time.Duration
	VisualizeTime time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ConvertHit bool // Whether the PROV-JSONLD output came from cache
	DOTHit     bool // Whether the DOT text came from cache
	RenderHit  bool // Whether all raster artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateDirection checks that a layout direction is valid.
func ValidateDirection(dir string) error {
	return errors.ValidateDirection(dir)
}

// ValidateFormat checks that a visualization format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	return errors.ValidateFormats(formats)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times
// has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetVisualizeDefaults()
	o.SetRenderDefaults()
	if err := ValidateDirection(o.Direction); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetVisualizeDefaults sets default values for graph building.
func (o *Options) SetVisualizeDefaults() {
	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if o.Font == "" {
		o.Font = DefaultFont
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for artifact rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDOT}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// RasterFormats returns the requested formats that need rasterization,
// in request order: everything except "dot".
func (o *Options) RasterFormats() []string {
	var out []string
	for _, f := range o.Formats {
		if f != FormatDOT {
			out = append(out, f)
		}
	}
	return out
}

// BuildOptions translates the pipeline options into visual builder
// options.
func (o *Options) BuildOptions() visual.Options {
	return visual.Options{
		Direction:          o.Direction,
		Font:               o.Font,
		ShowAttributes:     o.ShowAttributes,
		ShowRelationLabels: o.ShowRelationLabels,
	}
}

// ConvertKeyOpts returns cache key options for the conversion stage.
func (o *Options) ConvertKeyOpts() cache.ConvertKeyOpts {
	return cache.ConvertKeyOpts{Pretty: o.Pretty}
}

// DOTKeyOpts returns cache key options for DOT emission.
func (o *Options) DOTKeyOpts() cache.DOTKeyOpts {
	return cache.DOTKeyOpts{
		Direction:      o.Direction,
		Font:           o.Font,
		ShowAttributes: o.ShowAttributes,
		ShowLabels:     o.ShowRelationLabels,
		Strict:         o.Strict,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}

// ttl returns the cache expiry for a stage, honoring the override.
func (o *Options) ttl(def time.Duration) time.Duration {
	if o.CacheTTL > 0 {
		return o.CacheTTL
	}
	return def
}

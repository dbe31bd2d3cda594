package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/provgraph/provgraph/pkg/cache"
	"github.com/provgraph/provgraph/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Convert translates a PROV-JSON document into PROV-JSONLD with caching.
func (r *Runner) Convert(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}
	start := time.Now()
	observability.Pipeline().OnConvertStart(ctx, len(input))

	key := r.Keyer.ConvertKey(cache.Hash(input), opts.ConvertKeyOpts())

	out := &convertOutput{}
	hit := r.getEntry(ctx, key, "convert", out)
	if !hit {
		var err error
		out, err = convert(input, opts)
		if err != nil {
			observability.Pipeline().OnConvertComplete(ctx, 0, time.Since(start), err)
			return nil, err
		}
		r.setEntry(ctx, key, "convert", out, opts.ttl(cache.TTLConvert))
	}

	result.Data = out.Output
	result.Stats.Elements = out.Elements
	result.Stats.Relations = out.Relations
	result.Stats.Bundles = out.Bundles
	result.Stats.ConvertTime = time.Since(start)
	result.CacheInfo.ConvertHit = hit

	observability.Pipeline().OnConvertComplete(ctx, out.Elements+out.Relations, result.Stats.ConvertTime, nil)
	opts.Logger.Info("converted document",
		"elements", out.Elements,
		"relations", out.Relations,
		"bundles", out.Bundles,
		"cached", hit,
		"duration", result.Stats.ConvertTime)
	return result, nil
}

// Visualize translates a PROV-JSONLD document into DOT text, plus any
// requested raster formats, with per-stage caching.
func (r *Runner) Visualize(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{Artifacts: make(map[string][]byte)}
	start := time.Now()
	observability.Pipeline().OnVisualizeStart(ctx, len(input))

	key := r.Keyer.DOTKey(cache.Hash(input), opts.DOTKeyOpts())

	out := &visualizeOutput{}
	hit := r.getEntry(ctx, key, "dot", out)
	if !hit {
		var err error
		out, err = visualize(input, opts)
		if err != nil {
			observability.Pipeline().OnVisualizeComplete(ctx, 0, 0, time.Since(start), err)
			return nil, err
		}
		r.setEntry(ctx, key, "dot", out, opts.ttl(cache.TTLDOT))
	}

	result.Data = []byte(out.DOT)
	result.Artifacts[FormatDOT] = []byte(out.DOT)
	result.Diagnostics = out.Diagnostics
	result.Stats.Nodes = out.Nodes
	result.Stats.Edges = out.Edges
	result.Stats.Skipped = len(out.Diagnostics)
	result.Stats.VisualizeTime = time.Since(start)
	result.CacheInfo.DOTHit = hit

	observability.Pipeline().OnVisualizeComplete(ctx, out.Nodes, out.Edges, result.Stats.VisualizeTime, nil)
	opts.Logger.Info("built visual graph",
		"nodes", out.Nodes,
		"edges", out.Edges,
		"skipped", len(out.Diagnostics),
		"cached", hit,
		"duration", result.Stats.VisualizeTime)

	if err := r.renderArtifacts(ctx, out.DOT, opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Render runs the full forward chain: PROV-JSON in, DOT and raster
// artifacts out. Conversion statistics and cache info are merged into
// the visualization result.
func (r *Runner) Render(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	converted, err := r.Convert(ctx, input, opts)
	if err != nil {
		return nil, err
	}

	result, err := r.Visualize(ctx, converted.Data, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.Elements = converted.Stats.Elements
	result.Stats.Relations = converted.Stats.Relations
	result.Stats.Bundles = converted.Stats.Bundles
	result.Stats.ConvertTime = converted.Stats.ConvertTime
	result.CacheInfo.ConvertHit = converted.CacheInfo.ConvertHit
	return result, nil
}

// renderArtifacts rasterizes the DOT text into the requested raster
// formats, trying the artifact cache first. Like the DOT stage, a
// partial cache hit re-renders everything so the formats stay
// consistent with each other.
func (r *Runner) renderArtifacts(ctx context.Context, dot string, opts Options, result *Result) error {
	formats := opts.RasterFormats()
	if len(formats) == 0 {
		return nil
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, formats)

	dotHash := cache.Hash([]byte(dot))

	allCached := true
	for _, format := range formats {
		key := r.Keyer.ArtifactKey(dotHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		result.Artifacts[format] = data
	}

	if !allCached {
		rendered, err := rasterize(ctx, dot, formats)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, formats, time.Since(start), err)
			return err
		}
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(dotHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, opts.ttl(cache.TTLArtifact)); err == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
			result.Artifacts[format] = data
		}
	}

	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = allCached

	observability.Pipeline().OnRenderComplete(ctx, formats, result.Stats.RenderTime, nil)
	opts.Logger.Info("rendered artifacts",
		"formats", formats,
		"cached", allCached,
		"duration", result.Stats.RenderTime)
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// getEntry loads and decodes one stage's cached output into out.
// Undecodable entries count as misses and are recomputed.
func (r *Runner) getEntry(ctx context.Context, key, keyType string, out any) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

// setEntry encodes and stores one stage's output. Cache write failures
// are silent: caching is an optimization, never a correctness concern.
func (r *Runner) setEntry(ctx context.Context, key, keyType string, out any, ttl time.Duration) {
	data, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, keyType, len(data))
	}
}

package pipeline

import (
	"context"

	"github.com/provgraph/provgraph/pkg/errors"
	"github.com/provgraph/provgraph/pkg/jsonld"
	"github.com/provgraph/provgraph/pkg/render"
	"github.com/provgraph/provgraph/pkg/visual"
)

// visualizeOutput is the DOT emission stage result and its cache entry:
// the DOT text, the drawable counts, and the diagnostics for skipped
// @graph items.
type visualizeOutput struct {
	DOT         string   `json:"dot"`
	Nodes       int      `json:"nodes"`
	Edges       int      `json:"edges"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// visualize runs the reverse translation without caching: parse the
// PROV-JSONLD input, project it onto the visual graph, and emit DOT.
//
// In strict mode a relation whose endpoints do not resolve is an error
// instead of a silently dropped edge. Other skipped items (unknown
// types, bundles, non-objects) stay diagnostics in either mode.
func visualize(input []byte, opts Options) (*visualizeOutput, error) {
	doc, err := jsonld.Parse(input)
	if err != nil {
		return nil, errors.Wrap(decodeCode(err), err, "invalid PROV-JSONLD")
	}

	g, diags := visual.Build(doc, opts.BuildOptions())

	out := &visualizeOutput{
		Nodes: g.NodeCount(),
		Edges: g.EdgeCount(),
	}
	for _, d := range diags {
		if opts.Strict && d.Kind == visual.DiagUnresolvedEndpoint {
			return nil, errors.New(errors.ErrCodeUnresolvedEndpoint, "%s", d.String())
		}
		out.Diagnostics = append(out.Diagnostics, d.String())
	}

	out.DOT = visual.ToDOT(g)
	return out, nil
}

// rasterize renders the DOT text into every requested raster format.
// The returned map holds one entry per successfully rendered format.
func rasterize(ctx context.Context, dot string, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, name := range formats {
		format, err := render.ParseFormat(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse format %q", name)
		}
		data, err := render.Render(ctx, dot, format)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", name)
		}
		artifacts[name] = data
	}
	return artifacts, nil
}

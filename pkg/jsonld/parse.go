package jsonld

import (
	"errors"
	"fmt"

	"github.com/provgraph/provgraph/pkg/namespace"
	"github.com/provgraph/provgraph/pkg/ordered"
	"github.com/provgraph/provgraph/pkg/prov"
)

// ErrNotArray is returned by [Parse] when @graph holds something other
// than a JSON array.
var ErrNotArray = errors.New("must be a JSON array")

// Doc is a parsed PROV-JSONLD document, reduced to what the visual
// pipeline consumes.
type Doc struct {
	// Namespaces merges every prefix object found in the @context
	// array. A string, object, or absent @context contributes nothing.
	Namespaces *namespace.Map

	// Graph holds the @graph items as decoded: statement objects are
	// *ordered.Map, anything else is carried as-is for the builder to
	// skip.
	Graph []any
}

// Parse reads a PROV-JSONLD document. The top level must be a JSON
// object; a missing @graph member yields an empty graph.
func Parse(data []byte) (*Doc, error) {
	root, err := ordered.DecodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	d := &Doc{Namespaces: namespace.New()}
	if ctx, ok := root.Get(prov.KeyContext); ok {
		if list, ok := ctx.([]any); ok {
			d.Namespaces = namespace.FromContext(list)
		}
	}
	if raw, ok := root.Get(prov.KeyGraph); ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%s: %w", prov.KeyGraph, ErrNotArray)
		}
		d.Graph = list
	}
	return d, nil
}

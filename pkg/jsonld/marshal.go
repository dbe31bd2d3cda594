package jsonld

import (
	"encoding/json"
	"fmt"

	"github.com/provgraph/provgraph/pkg/document"
	"github.com/provgraph/provgraph/pkg/namespace"
	"github.com/provgraph/provgraph/pkg/ordered"
	"github.com/provgraph/provgraph/pkg/prov"
)

// Marshal serializes a canonical document as compact PROV-JSONLD.
func Marshal(d *document.Document) ([]byte, error) {
	out, err := json.Marshal(build(d))
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return out, nil
}

// MarshalIndent is like [Marshal] with indented output.
func MarshalIndent(d *document.Document, prefix, indent string) ([]byte, error) {
	out, err := json.MarshalIndent(build(d), prefix, indent)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return out, nil
}

func build(d *document.Document) *ordered.Map {
	root := ordered.NewMap()
	root.Set(prov.KeyContext, buildContext(d.Prefixes()))

	graph := []any{}
	for _, b := range d.Bundles() {
		graph = append(graph, buildBundle(b))
	}
	graph = append(graph, statements(&d.Graph)...)
	root.Set(prov.KeyGraph, graph)
	return root
}

// buildContext assembles an @context array: the declared prefixes when
// any exist, then the canonical context IRI.
func buildContext(m *namespace.Map) []any {
	ctx := []any{}
	if m != nil && m.Len() > 0 {
		ctx = append(ctx, m)
	}
	return append(ctx, prov.ContextIRI)
}

// buildBundle emits a bundle object. The bundle @context carries only
// the bundle's own declarations; inherited prefixes stay at the top
// level of the output.
func buildBundle(b *document.Bundle) *ordered.Map {
	om := ordered.NewMap()
	om.Set(prov.KeyType, prov.TypeBundle)
	om.Set(prov.KeyID, b.ID())
	om.Set(prov.KeyContext, buildContext(b.Prefixes()))
	om.Set(prov.KeyGraph, statements(&b.Graph))
	return om
}

// statements emits one scope's statements grouped by registry category
// in registry order, keeping declaration order within each category.
func statements(g *document.Graph) []any {
	out := []any{}
	for _, schema := range prov.Schemas() {
		if schema.Kind == prov.KindElement {
			for _, n := range g.NodesByCategory(schema.Category) {
				out = append(out, buildElement(schema, n))
			}
			continue
		}
		for _, r := range g.RelationsByCategory(schema.Category) {
			out = append(out, buildRelation(schema, r))
		}
	}
	return out
}

func buildElement(schema *prov.Schema, n *document.Node) *ordered.Map {
	om := ordered.NewMap()
	om.Set(prov.KeyType, schema.Type)
	om.Set(prov.KeyID, n.ID)
	for _, key := range n.Attrs.Keys() {
		values, _ := n.Attrs.Get(key)
		om.Set(key, buildValues(values))
	}
	if n.StartTime != nil {
		om.Set(prov.KeyStartTime, n.StartTime)
	}
	if n.EndTime != nil {
		om.Set(prov.KeyEndTime, n.EndTime)
	}
	return om
}

// buildRelation emits a relation object: @type, the optional verbatim
// @id, the schema-table properties carried raw, then the remaining
// attributes.
func buildRelation(schema *prov.Schema, r *document.Relation) *ordered.Map {
	om := ordered.NewMap()
	om.Set(prov.KeyType, schema.Type)
	if r.ID != "" {
		om.Set(prov.KeyID, r.ID)
	}
	for _, p := range r.Props {
		om.Set(p.Role, p.Value)
	}
	for _, key := range r.Attrs.Keys() {
		values, _ := r.Attrs.Get(key)
		om.Set(key, buildValues(values))
	}
	return om
}

func buildValues(values []document.Value) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, buildValue(v))
	}
	return out
}

// buildValue renders one attribute value: opaque values pass through,
// literals become a JSON-LD value object with @value, @type, and
// @language in that order, each only when present.
func buildValue(v document.Value) any {
	if v.IsRaw() {
		return v.Raw
	}
	om := ordered.NewMap()
	if v.HasValue {
		om.Set(prov.KeyValue, v.Literal)
	}
	if v.Datatype != "" {
		om.Set(prov.KeyType, v.Datatype)
	}
	if v.Lang != "" {
		om.Set(prov.KeyLanguage, v.Lang)
	}
	return om
}

package provjson

import (
	"errors"
	"fmt"
	"strings"

	"github.com/provgraph/provgraph/pkg/document"
	"github.com/provgraph/provgraph/pkg/namespace"
	"github.com/provgraph/provgraph/pkg/ordered"
	"github.com/provgraph/provgraph/pkg/prov"
)

// ErrNotObject is returned by [Decode] when a part of the document that
// must be a JSON object (the prefix block, a category block, a bundle,
// or a statement body) holds some other JSON value.
var ErrNotObject = errors.New("must be a JSON object")

// Decode parses a PROV-JSON document into the canonical model.
//
// The top level must be a JSON object. The "prefix" member becomes the
// document namespace map, each member of "bundle" becomes a
// [document.Bundle], and each recognized category block contributes one
// statement per member. Decode returns an error for malformed JSON and
// for structurally invalid documents; it never returns a partial result.
func Decode(data []byte) (*document.Document, error) {
	root, err := ordered.DecodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	doc := document.New()

	if raw, ok := root.Get(prov.KeyPrefix); ok {
		m, err := prefixMap(raw)
		if err != nil {
			return nil, err
		}
		doc.SetPrefixes(m)
	}

	if raw, ok := root.Get(prov.KeyBundle); ok {
		block, ok := raw.(*ordered.Map)
		if !ok {
			return nil, fmt.Errorf("bundle block: %w", ErrNotObject)
		}
		for pair := block.Oldest(); pair != nil; pair = pair.Next() {
			body, ok := pair.Value.(*ordered.Map)
			if !ok {
				return nil, fmt.Errorf("bundle %s: %w", pair.Key, ErrNotObject)
			}
			b, err := decodeBundle(pair.Key, body)
			if err != nil {
				return nil, err
			}
			doc.AddBundle(b)
		}
	}

	if err := decodeStatements(&doc.Graph, root); err != nil {
		return nil, err
	}
	return doc, nil
}

func prefixMap(raw any) (*namespace.Map, error) {
	decl, ok := raw.(*ordered.Map)
	if !ok {
		return nil, fmt.Errorf("prefix block: %w", ErrNotObject)
	}
	m := namespace.New()
	m.Merge(decl)
	return m, nil
}

// decodeBundle builds one named bundle. Bundles carry their own prefix
// block and category blocks; nested bundle blocks are ignored because
// PROV allows only one level of nesting.
func decodeBundle(id string, body *ordered.Map) (*document.Bundle, error) {
	var prefixes *namespace.Map
	if raw, ok := body.Get(prov.KeyPrefix); ok {
		m, err := prefixMap(raw)
		if err != nil {
			return nil, fmt.Errorf("bundle %s: %w", id, err)
		}
		if m.Len() > 0 {
			prefixes = m
		}
	}

	b := document.NewBundle(id, prefixes)
	if err := decodeStatements(&b.Graph, body); err != nil {
		return nil, fmt.Errorf("bundle %s: %w", id, err)
	}
	return b, nil
}

// decodeStatements walks the registry categories present in one scope
// and adds a statement per member. Category blocks absent from the
// registry are left alone.
func decodeStatements(g *document.Graph, scope *ordered.Map) error {
	for _, schema := range prov.Schemas() {
		raw, ok := scope.Get(schema.Category)
		if !ok {
			continue
		}
		block, ok := raw.(*ordered.Map)
		if !ok {
			return fmt.Errorf("%s block: %w", schema.Category, ErrNotObject)
		}
		for pair := block.Oldest(); pair != nil; pair = pair.Next() {
			body, ok := pair.Value.(*ordered.Map)
			if !ok {
				return fmt.Errorf("%s %s: %w", schema.Category, pair.Key, ErrNotObject)
			}
			if schema.Kind == prov.KindElement {
				if err := g.AddNode(decodeElement(pair.Key, schema, body)); err != nil {
					return fmt.Errorf("%s %s: %w", schema.Category, pair.Key, err)
				}
			} else {
				if err := g.AddRelation(decodeRelation(pair.Key, schema, body)); err != nil {
					return fmt.Errorf("%s %s: %w", schema.Category, pair.Key, err)
				}
			}
		}
	}
	return nil
}

// decodeElement converts one entity, activity, or agent. Attribute keys
// keep their input order; keys without a namespace prefix are dropped.
// Activities additionally lift prov:startTime and prov:endTime into the
// node's time fields while keeping them as ordinary attributes.
func decodeElement(id string, schema *prov.Schema, body *ordered.Map) *document.Node {
	n := &document.Node{ID: id, Category: schema.Category, Attrs: document.NewAttributes()}
	for pair := body.Oldest(); pair != nil; pair = pair.Next() {
		switch {
		case pair.Key == prov.AttrLabel:
			n.Attrs.Set(pair.Key, labelValues(pair.Value))
		case strings.Contains(pair.Key, ":"):
			n.Attrs.Set(pair.Key, attrValues(pair.Value))
		}
	}
	if schema.Category == prov.CategoryActivity {
		if v, ok := body.Get(prov.AttrStartTime); ok {
			n.StartTime = v
		}
		if v, ok := body.Get(prov.AttrEndTime); ok {
			n.EndTime = v
		}
	}
	return n
}

// decodeRelation converts one relation statement. Properties named in
// the schema table are carried raw in table order; the remaining keys
// become ordinary attributes in input order.
func decodeRelation(id string, schema *prov.Schema, body *ordered.Map) *document.Relation {
	r := &document.Relation{ID: id, Category: schema.Category, Attrs: document.NewAttributes()}
	for _, p := range schema.Properties {
		if v, ok := body.Get(p.JSONKey); ok {
			r.Props = append(r.Props, document.Prop{Role: p.Role, Value: v})
		}
	}
	for pair := body.Oldest(); pair != nil; pair = pair.Next() {
		if schema.HasJSONKey(pair.Key) {
			continue
		}
		switch {
		case pair.Key == prov.AttrLabel:
			r.Attrs.Set(pair.Key, labelValues(pair.Value))
		case strings.Contains(pair.Key, ":"):
			r.Attrs.Set(pair.Key, attrValues(pair.Value))
		}
	}
	return r
}

// attrValues normalizes one attribute's values. Single values and lists
// of values are both accepted.
func attrValues(raw any) []document.Value {
	items, ok := raw.([]any)
	if !ok {
		items = []any{raw}
	}
	out := make([]document.Value, 0, len(items))
	for _, item := range items {
		out = append(out, attrValue(item))
	}
	return out
}

// attrValue converts one PROV-JSON attribute value. Typed literals use
// the {"$": ..., "type": ..., "lang": ...} form and keep their "$"
// payload untouched; bare scalars become plain string literals; any
// other object passes through opaquely.
func attrValue(item any) document.Value {
	om, ok := item.(*ordered.Map)
	if !ok {
		return document.NewLiteral(ordered.FormatScalar(item))
	}
	dollar, hasDollar := om.Get("$")
	typ, hasType := om.Get("type")
	if !hasDollar && !hasType {
		return document.Value{Raw: om}
	}
	v := document.Value{Literal: dollar, HasValue: hasDollar}
	if hasType {
		v.Datatype = ordered.FormatScalar(typ)
	}
	if lang, ok := om.Get("lang"); ok {
		v.Lang = ordered.FormatScalar(lang)
	}
	return v
}

// labelValues normalizes prov:label values. Labels never carry a
// datatype: an object form contributes its "$" payload (defaulting to
// the empty string) and optional language tag.
func labelValues(raw any) []document.Value {
	items, ok := raw.([]any)
	if !ok {
		items = []any{raw}
	}
	out := make([]document.Value, 0, len(items))
	for _, item := range items {
		om, ok := item.(*ordered.Map)
		if !ok {
			out = append(out, document.NewLiteral(ordered.FormatScalar(item)))
			continue
		}
		v := document.Value{Literal: "", HasValue: true}
		if dollar, ok := om.Get("$"); ok {
			v.Literal = dollar
		}
		if lang, ok := om.Get("lang"); ok {
			v.Lang = ordered.FormatScalar(lang)
		}
		out = append(out, v)
	}
	return out
}


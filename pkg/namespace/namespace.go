// Package namespace implements the prefix table used to compact IRIs
// into qualified names.
//
// Namespace declarations are order-sensitive: when two declared IRIs both
// prefix an input, the first declaration wins, not the longest. The Map
// therefore preserves insertion order exactly as declarations appear in
// the source document, and re-declaring a prefix overwrites its value
// without moving its position.
package namespace

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is an insertion-ordered table of namespace declarations. Values are
// kept as decoded, so malformed declarations (non-string expansions) are
// carried through but never match during compaction.
type Map struct {
	entries *orderedmap.OrderedMap[string, any]
}

// New returns an empty namespace map.
func New() *Map {
	return &Map{entries: orderedmap.New[string, any]()}
}

// FromContext builds a namespace map from a JSON-LD @context array,
// merging every object member in order. String members (context IRIs)
// and other non-object values are ignored.
func FromContext(context []any) *Map {
	m := New()
	for _, entry := range context {
		if om, ok := entry.(*orderedmap.OrderedMap[string, any]); ok {
			m.Merge(om)
		}
	}
	return m
}

// Merge folds a declaration object into the map. Later declarations win
// on prefix collisions but keep the prefix's original position.
func (m *Map) Merge(decl *orderedmap.OrderedMap[string, any]) {
	if decl == nil {
		return
	}
	for pair := decl.Oldest(); pair != nil; pair = pair.Next() {
		m.entries.Set(pair.Key, pair.Value)
	}
}

// Set declares a single prefix.
func (m *Map) Set(prefix string, iri any) {
	m.entries.Set(prefix, iri)
}

// Lookup returns the IRI declared for prefix. Declarations with
// non-string values report as absent.
func (m *Map) Lookup(prefix string) (string, bool) {
	v, ok := m.entries.Get(prefix)
	if !ok {
		return "", false
	}
	iri, ok := v.(string)
	return iri, ok
}

// Len returns the number of declarations.
func (m *Map) Len() int {
	return m.entries.Len()
}

// Compact rewrites a full IRI into prefix:local form using the first
// declared namespace that prefixes it. Inputs that are empty, contain no
// colon, or do not use an http or https scheme pass through unchanged,
// which makes Compact idempotent: an already-compacted name never
// compacts again.
func (m *Map) Compact(iri string) string {
	if iri == "" || !strings.Contains(iri, ":") {
		return iri
	}
	if !strings.HasPrefix(iri, "http://") && !strings.HasPrefix(iri, "https://") {
		return iri
	}
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		ns, ok := pair.Value.(string)
		if !ok {
			continue
		}
		if strings.HasPrefix(iri, ns) {
			return pair.Key + ":" + iri[len(ns):]
		}
	}
	return iri
}

// MarshalJSON serializes the declarations as a JSON object in insertion
// order, letting a Map stand directly inside an exported @context array.
func (m *Map) MarshalJSON() ([]byte, error) {
	return m.entries.MarshalJSON()
}

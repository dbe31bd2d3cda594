package visual

import (
	"fmt"
	"strings"

	"github.com/provgraph/provgraph/pkg/jsonld"
	"github.com/provgraph/provgraph/pkg/namespace"
	"github.com/provgraph/provgraph/pkg/ordered"
	"github.com/provgraph/provgraph/pkg/prov"
)

// Options configures graph building.
type Options struct {
	// Direction is the layout direction: LR, RL, TB, or BT.
	// Empty means [DefaultDirection].
	Direction string

	// Font is the node and edge font name. Empty means [DefaultFont].
	Font string

	// ShowAttributes appends attribute lines to node labels.
	ShowAttributes bool

	// ShowRelationLabels puts the relation name (plus role and time
	// annotations) on edges.
	ShowRelationLabels bool
}

// DefaultOptions returns the options used by the command line when no
// flags are given: plain node labels, labeled edges.
func DefaultOptions() Options {
	return Options{Direction: DefaultDirection, ShowRelationLabels: true}
}

// Diagnostic kinds reported by [Build].
const (
	DiagNotObject          = "not_object"
	DiagUnknownType        = "unknown_type"
	DiagUnresolvedEndpoint = "unresolved_endpoint"
)

// Diagnostic describes one @graph item that contributed nothing to the
// visual graph.
type Diagnostic struct {
	Kind  string
	Index int    // position in the @graph array
	Type  string // the item's @type, when it had one
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagNotObject:
		return fmt.Sprintf("@graph[%d]: not an object", d.Index)
	case DiagUnknownType:
		return fmt.Sprintf("@graph[%d]: no drawable statement for type %q", d.Index, d.Type)
	case DiagUnresolvedEndpoint:
		return fmt.Sprintf("@graph[%d]: %s dropped, endpoint reference missing", d.Index, d.Type)
	}
	return fmt.Sprintf("@graph[%d]: skipped", d.Index)
}

// Build projects a parsed PROV-JSONLD document onto a visual graph.
//
// Elements become nodes keyed by @id (a re-declared @id replaces the
// node in place; a missing @id gets a generated anon_N identifier).
// Relations become edges when both endpoint references resolve to
// strings; otherwise they are skipped. Bundle objects and statements of
// unknown type are skipped. Every skip is reported as a [Diagnostic] in
// @graph order.
func Build(doc *jsonld.Doc, opts Options) (*Graph, []Diagnostic) {
	g := NewGraph(opts.Direction, opts.Font)
	var diags []Diagnostic

	for i, raw := range doc.Graph {
		item, ok := raw.(*ordered.Map)
		if !ok {
			diags = append(diags, Diagnostic{Kind: DiagNotObject, Index: i})
			continue
		}
		typ, _ := stringAt(item, prov.KeyType)
		schema, ok := prov.LookupType(typ)
		if !ok {
			diags = append(diags, Diagnostic{Kind: DiagUnknownType, Index: i, Type: typ})
			continue
		}
		if schema.Kind == prov.KindElement {
			g.SetNode(buildNode(item, schema, doc.Namespaces, opts, g.NodeCount()))
			continue
		}
		edge, ok := buildEdge(item, schema, opts)
		if !ok {
			diags = append(diags, Diagnostic{Kind: DiagUnresolvedEndpoint, Index: i, Type: typ})
			continue
		}
		g.AddEdge(edge)
	}
	return g, diags
}

func buildNode(item *ordered.Map, schema *prov.Schema, ns *namespace.Map, opts Options, nodesSoFar int) *Node {
	id, ok := stringAt(item, prov.KeyID)
	if !ok {
		id = fmt.Sprintf("anon_%d", nodesSoFar)
	}

	label := displayLabel(item)
	if opts.ShowAttributes {
		if lines := attributeLines(item, ns); len(lines) > 0 {
			if len(lines) > 5 {
				lines = lines[:5]
			}
			label += `\n` + strings.Join(lines, `\n`)
		}
	}

	return &Node{
		ID:        id,
		Label:     label,
		Shape:     schema.Node.Shape,
		FillColor: schema.Node.FillColor,
	}
}

// fallbackLabelKeys are consulted in order when a statement has no
// usable prov:label. The bare name and title keys also show up as
// attribute lines; only the namespaced forms are label-exclusive.
var fallbackLabelKeys = []string{prov.RDFSLabel, prov.FOAFName, prov.DCTermsTitle, "name", "title"}

// displayLabel resolves a node's label. prov:label only counts when its
// first value is a value object; the fallback keys also accept a plain
// string. Failing all of those, the @id loses its prefix, and a missing
// @id labels the node "anonymous".
func displayLabel(item *ordered.Map) string {
	if raw, ok := item.Get(prov.AttrLabel); ok {
		if list, ok := raw.([]any); ok && len(list) > 0 {
			if om, ok := list[0].(*ordered.Map); ok {
				if v, ok := om.Get(prov.KeyValue); ok {
					return ordered.FormatScalar(v)
				}
			}
		}
	}

	for _, key := range fallbackLabelKeys {
		raw, ok := item.Get(key)
		if !ok {
			continue
		}
		list, ok := raw.([]any)
		if !ok || len(list) == 0 {
			continue
		}
		switch first := list[0].(type) {
		case *ordered.Map:
			if v, ok := first.Get(prov.KeyValue); ok {
				return ordered.FormatScalar(v)
			}
		case string:
			return first
		}
	}

	if id, ok := stringAt(item, prov.KeyID); ok && id != "" {
		if i := strings.Index(id, ":"); i >= 0 {
			return id[i+1:]
		}
		return id
	}
	return "anonymous"
}

// skipDisplayKeys are never shown as attribute lines: structural
// keywords, the label keys already folded into the node label, and
// (checked separately) reference roles.
var skipDisplayKeys = map[string]struct{}{
	prov.KeyType:      {},
	prov.KeyID:        {},
	prov.KeyContext:   {},
	prov.KeyGraph:     {},
	prov.AttrLabel:    {},
	prov.RDFSLabel:    {},
	prov.FOAFName:     {},
	prov.DCTermsTitle: {},
}

func skipAttr(key string) bool {
	if _, ok := skipDisplayKeys[key]; ok {
		return true
	}
	return prov.IsReferenceRole(key)
}

// attributeLines renders key=value lines for a node label: at most
// three values per key, string values and value objects only, long
// values truncated. Keys are compacted against the namespace map.
func attributeLines(item *ordered.Map, ns *namespace.Map) []string {
	var lines []string
	for pair := item.Oldest(); pair != nil; pair = pair.Next() {
		if skipAttr(pair.Key) {
			continue
		}
		key := pair.Key
		if strings.Contains(key, ":") {
			key = ns.Compact(key)
		}

		switch value := pair.Value.(type) {
		case []any:
			shown := value
			if len(shown) > 3 {
				shown = shown[:3]
			}
			for _, member := range shown {
				switch v := member.(type) {
				case *ordered.Map:
					if payload, ok := v.Get(prov.KeyValue); ok {
						lines = append(lines, key+"="+truncate(ordered.FormatScalar(payload)))
					}
				case string:
					lines = append(lines, key+"="+truncate(v))
				}
			}
		case string:
			lines = append(lines, key+"="+truncate(value))
		}
	}
	return lines
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= 30 {
		return s
	}
	return string(runes[:27]) + "..."
}

func buildEdge(item *ordered.Map, schema *prov.Schema, opts Options) (*Edge, bool) {
	sourceRole, targetRole := schema.Endpoints()
	source, _ := stringAt(item, sourceRole)
	target, _ := stringAt(item, targetRole)
	if source == "" || target == "" {
		return nil, false
	}

	e := &Edge{
		Source:    source,
		Target:    target,
		Style:     schema.Edge.Style,
		Dir:       schema.Edge.Dir,
		Color:     schema.Edge.Color,
		Arrowhead: schema.Edge.Arrowhead,
	}
	if e.Style == "" {
		e.Style = "solid"
	}
	if e.Dir == "" {
		e.Dir = "forward"
	}
	if e.Arrowhead == "" {
		e.Arrowhead = "normal"
	}
	if opts.ShowRelationLabels {
		e.Label = edgeLabel(item, schema)
	}
	return e, true
}

// edgeLabel builds the edge caption: the relation's human label plus a
// parenthesized annotation line when the statement carries a role or a
// qualified time.
func edgeLabel(item *ordered.Map, schema *prov.Schema) string {
	label := schema.Edge.Label

	var extra []string
	if raw, ok := item.Get(prov.AttrRole); ok {
		if list, ok := raw.([]any); ok && len(list) > 0 {
			if om, ok := list[0].(*ordered.Map); ok {
				if v, ok := om.Get(prov.KeyValue); ok {
					extra = append(extra, "role:"+ordered.FormatScalar(v))
				}
			}
		}
	}
	if clock, ok := timeOf(item); ok {
		extra = append(extra, "@"+clock)
	}

	if len(extra) > 0 {
		label += `\n(` + strings.Join(extra, ", ") + ")"
	}
	return label
}

// timeOf extracts the clock part of a qualified time. The bare time key
// wins over prov:time even when unusable; only date-time strings with a
// T separator yield an annotation, trimmed of date and fraction.
func timeOf(item *ordered.Map) (string, bool) {
	raw, ok := item.Get(prov.KeyTime)
	if !ok {
		raw, ok = item.Get(prov.AttrTime)
	}
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok || !strings.Contains(s, "T") {
		return "", false
	}
	clock := strings.Split(s, "T")[1]
	return strings.Split(clock, ".")[0], true
}

func stringAt(item *ordered.Map, key string) (string, bool) {
	raw, ok := item.Get(key)
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

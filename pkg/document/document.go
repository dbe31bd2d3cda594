package document

import (
	"errors"
	"strings"

	"github.com/provgraph/provgraph/pkg/namespace"
	"github.com/provgraph/provgraph/pkg/ordered"
	"github.com/provgraph/provgraph/pkg/prov"
)

var (
	// ErrInvalidID is returned by [Graph.AddNode] when the node ID is
	// empty. Statement identifiers must be non-empty.
	ErrInvalidID = errors.New("statement ID must not be empty")

	// ErrDuplicateNode is returned by [Graph.AddNode] when a node with
	// the same category and ID already exists in the scope. The same ID
	// may appear under different categories (an identifier can name both
	// an entity and an agent), but not twice under one category.
	ErrDuplicateNode = errors.New("duplicate node ID in category")

	// ErrUnknownCategory is returned by [Graph.AddNode] and
	// [Graph.AddRelation] when the statement category is not registered,
	// or is registered for the other statement kind.
	ErrUnknownCategory = errors.New("unknown statement category")
)

// Node is one element statement: an entity, activity, or agent.
type Node struct {
	ID       string
	Category string // entity, activity, or agent
	Attrs    *Attributes

	// StartTime and EndTime carry the raw prov:startTime and
	// prov:endTime values lifted for activities. They hold whatever the
	// source document declared (normally an xsd:dateTime string) and are
	// nil when absent.
	StartTime any
	EndTime   any
}

// Prop is one table-mapped relation property: an endpoint reference or a
// qualifier such as time or plan. Values are carried raw; endpoint
// references are node identifier strings in well-formed documents.
type Prop struct {
	Role  string
	Value any
}

// Relation is one relation statement. ID is optional and kept verbatim,
// including blank node labels such as "_:n1".
type Relation struct {
	ID       string
	Category string
	Props    []Prop
	Attrs    *Attributes
}

// Ref returns the string value of the named role, if present and
// string-typed.
func (r *Relation) Ref(role string) (string, bool) {
	for _, p := range r.Props {
		if p.Role == role {
			s, ok := p.Value.(string)
			return s, ok
		}
	}
	return "", false
}

// Graph is one statement scope: the top level of a document or the
// inside of a bundle. Statements keep insertion order; nodes are indexed
// by (category, ID).
type Graph struct {
	nodes     []*Node
	relations []*Relation
	index     map[nodeKey]*Node
}

type nodeKey struct {
	category string
	id       string
}

func newGraph() Graph {
	return Graph{index: make(map[nodeKey]*Node)}
}

// AddNode appends an element statement to the scope. Returns
// ErrInvalidID for an empty ID, ErrUnknownCategory when the category is
// not an element category, or ErrDuplicateNode when the (category, ID)
// pair is already taken. The node's Attrs field is initialized to an
// empty multimap if nil.
func (g *Graph) AddNode(n *Node) error {
	if n.ID == "" {
		return ErrInvalidID
	}
	schema, ok := prov.Lookup(n.Category)
	if !ok || schema.Kind != prov.KindElement {
		return ErrUnknownCategory
	}
	key := nodeKey{category: n.Category, id: n.ID}
	if _, exists := g.index[key]; exists {
		return ErrDuplicateNode
	}
	if n.Attrs == nil {
		n.Attrs = NewAttributes()
	}
	g.nodes = append(g.nodes, n)
	g.index[key] = n
	return nil
}

// AddRelation appends a relation statement to the scope. Returns
// ErrUnknownCategory when the category is not a relation category. The
// relation's Attrs field is initialized to an empty multimap if nil.
// Endpoint references are not resolved here; unresolved references are a
// visual-graph concern.
func (g *Graph) AddRelation(r *Relation) error {
	schema, ok := prov.Lookup(r.Category)
	if !ok || schema.Kind != prov.KindRelation {
		return ErrUnknownCategory
	}
	if r.Attrs == nil {
		r.Attrs = NewAttributes()
	}
	g.relations = append(g.relations, r)
	return nil
}

// Nodes returns all element statements in insertion order. The slice is
// shared with the graph and must not be modified.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Relations returns all relation statements in insertion order. The
// slice is shared with the graph and must not be modified.
func (g *Graph) Relations() []*Relation { return g.relations }

// Node returns the node declared under the given category and ID.
func (g *Graph) Node(category, id string) (*Node, bool) {
	n, ok := g.index[nodeKey{category: category, id: id}]
	return n, ok
}

// NodesByCategory returns the nodes of one category in insertion order.
func (g *Graph) NodesByCategory(category string) []*Node {
	var out []*Node
	for _, n := range g.nodes {
		if n.Category == category {
			out = append(out, n)
		}
	}
	return out
}

// RelationsByCategory returns the relations of one category in insertion
// order.
func (g *Graph) RelationsByCategory(category string) []*Relation {
	var out []*Relation
	for _, r := range g.relations {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// NodeCount returns the number of element statements in the scope.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// RelationCount returns the number of relation statements in the scope.
func (g *Graph) RelationCount() int { return len(g.relations) }

// StatementCount returns the total number of statements in the scope.
func (g *Graph) StatementCount() int { return len(g.nodes) + len(g.relations) }

// Bundle is a named sub-graph with its own namespace declarations. PROV
// allows one level of bundle nesting; bundles never contain bundles.
type Bundle struct {
	Graph

	id       string
	prefixes *namespace.Map
	parent   *Document
}

// NewBundle creates an empty bundle. A nil prefix map means the bundle
// declared no namespaces of its own and inherits the enclosing
// document's.
func NewBundle(id string, prefixes *namespace.Map) *Bundle {
	return &Bundle{Graph: newGraph(), id: id, prefixes: prefixes}
}

// ID returns the bundle identifier.
func (b *Bundle) ID() string { return b.id }

// Prefixes returns the bundle's own namespace declarations, or nil when
// it declared none.
func (b *Bundle) Prefixes() *namespace.Map { return b.prefixes }

// Namespaces returns the namespace map in effect inside the bundle: its
// own declarations when present, otherwise the enclosing document's.
func (b *Bundle) Namespaces() *namespace.Map {
	if b.prefixes != nil {
		return b.prefixes
	}
	if b.parent != nil {
		return b.parent.Prefixes()
	}
	return namespace.New()
}

// Document is a complete canonical PROV document: top-level namespace
// declarations, named bundles, and top-level statements.
type Document struct {
	Graph

	prefixes *namespace.Map
	bundles  []*Bundle
}

// New creates an empty document.
func New() *Document {
	return &Document{
		Graph:    newGraph(),
		prefixes: namespace.New(),
	}
}

// SetPrefixes replaces the document's namespace declarations. A nil map
// resets to an empty one.
func (d *Document) SetPrefixes(m *namespace.Map) {
	if m == nil {
		m = namespace.New()
	}
	d.prefixes = m
}

// Prefixes returns the document's namespace declarations. Never nil.
func (d *Document) Prefixes() *namespace.Map { return d.prefixes }

// AddBundle appends a bundle to the document in declaration order.
func (d *Document) AddBundle(b *Bundle) {
	b.parent = d
	d.bundles = append(d.bundles, b)
}

// Bundles returns the document's bundles in declaration order.
func (d *Document) Bundles() []*Bundle { return d.bundles }

// Totals returns the node and relation counts across the top level and
// every bundle.
func (d *Document) Totals() (nodes, relations int) {
	nodes, relations = d.NodeCount(), d.RelationCount()
	for _, b := range d.bundles {
		nodes += b.NodeCount()
		relations += b.RelationCount()
	}
	return nodes, relations
}

// labelAttrs lists the attribute keys consulted for display labels, in
// priority order.
var labelAttrs = []string{prov.AttrLabel, prov.RDFSLabel, prov.FOAFName, prov.DCTermsTitle}

// DisplayLabel derives a human-readable label for the node: the first
// literal among its label attributes, else the local part of its ID
// after the first colon, else the ID itself.
func (n *Node) DisplayLabel() string {
	for _, key := range labelAttrs {
		values, ok := n.Attrs.Get(key)
		if !ok {
			continue
		}
		for _, v := range values {
			if v.HasValue {
				return ordered.FormatScalar(v.Literal)
			}
		}
	}
	if n.ID != "" && strings.Contains(n.ID, ":") {
		return n.ID[strings.Index(n.ID, ":")+1:]
	}
	if n.ID != "" {
		return n.ID
	}
	return "anonymous"
}

package prov

// Kind distinguishes the two families of PROV statements.
type Kind string

const (
	// KindElement marks entities, activities, and agents: statements
	// that become nodes in the visual graph.
	KindElement Kind = "element"
	// KindRelation marks the fourteen edge-producing statement kinds.
	KindRelation Kind = "relation"
)

// Property maps one PROV-JSON relation key to its PROV-JSONLD role name.
// The per-relation property tables are ordered; exporters emit roles in
// table order regardless of input order.
type Property struct {
	JSONKey string // PROV-JSON key, e.g. "prov:usedEntity"
	Role    string // PROV-JSONLD role, e.g. "usedEntity"
}

// NodeStyle is the Graphviz presentation of an element kind.
type NodeStyle struct {
	Shape     string
	FillColor string
}

// EdgeStyle is the Graphviz presentation of a relation kind. Zero-valued
// fields fall back to solid/forward/normal at draw time; Color is omitted
// from the output when empty.
type EdgeStyle struct {
	Label     string
	Style     string
	Dir       string
	Color     string
	Arrowhead string
}

// Schema describes one PROV statement kind across all three
// representations handled by provgraph.
type Schema struct {
	Category string // PROV-JSON category key
	Type     string // PROV-JSONLD @type
	Kind     Kind

	// Relation fields. Properties is the ordered PROV-JSON to PROV-JSONLD
	// property table; Source and Target name the roles whose values become
	// the edge endpoints.
	Properties []Property
	Source     string
	Target     string
	Edge       EdgeStyle

	// Element field.
	Node NodeStyle
}

// Endpoints returns the source and target role names for a relation
// schema. Both are empty for element schemas.
func (s *Schema) Endpoints() (source, target string) {
	return s.Source, s.Target
}

// HasJSONKey reports whether key appears in the relation's property table.
func (s *Schema) HasJSONKey(key string) bool {
	for _, p := range s.Properties {
		if p.JSONKey == key {
			return true
		}
	}
	return false
}

// Role returns the PROV-JSONLD role name for a PROV-JSON key, or ""
// when the key is not part of the property table.
func (s *Schema) Role(jsonKey string) string {
	for _, p := range s.Properties {
		if p.JSONKey == jsonKey {
			return p.Role
		}
	}
	return ""
}

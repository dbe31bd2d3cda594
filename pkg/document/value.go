package document

import (
	"github.com/provgraph/provgraph/pkg/ordered"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Value is one attribute value. A literal carries an optional @value
// payload plus optional datatype and language qualifiers; anything that
// is not a literal (an arbitrary object from the source document) is
// kept opaque in Raw and serialized back verbatim.
type Value struct {
	Literal  any    // @value payload: string, number, or bool
	HasValue bool   // whether the literal carries an @value at all
	Datatype string // optional datatype qualifier, e.g. "xsd:dateTime"
	Lang     string // optional language tag, e.g. "en"
	Raw      any    // opaque non-literal value, set instead of the above
}

// NewLiteral builds a plain literal value.
func NewLiteral(v any) Value {
	return Value{Literal: v, HasValue: true}
}

// IsRaw reports whether the value is an opaque passthrough.
func (v Value) IsRaw() bool { return v.Raw != nil }

// String renders the literal payload as text. Opaque values and literals
// without a payload render as the empty string.
func (v Value) String() string {
	if !v.HasValue {
		return ""
	}
	return ordered.FormatScalar(v.Literal)
}

// Attributes is an insertion-ordered multimap from attribute keys to
// value lists. Re-setting a key replaces its values without moving the
// key's position.
type Attributes struct {
	om *orderedmap.OrderedMap[string, []Value]
}

// NewAttributes returns an empty attribute multimap.
func NewAttributes() *Attributes {
	return &Attributes{om: orderedmap.New[string, []Value]()}
}

// Set stores the values for a key, replacing any previous values.
func (a *Attributes) Set(key string, values []Value) {
	a.om.Set(key, values)
}

// Get returns the values stored for a key.
func (a *Attributes) Get(key string) ([]Value, bool) {
	return a.om.Get(key)
}

// Has reports whether the key is present.
func (a *Attributes) Has(key string) bool {
	_, ok := a.om.Get(key)
	return ok
}

// Len returns the number of distinct keys.
func (a *Attributes) Len() int { return a.om.Len() }

// Keys returns the attribute keys in insertion order.
func (a *Attributes) Keys() []string {
	keys := make([]string, 0, a.om.Len())
	for pair := a.om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}


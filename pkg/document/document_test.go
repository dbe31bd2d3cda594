package document

import (
	"errors"
	"testing"

	"github.com/provgraph/provgraph/pkg/namespace"
)

func TestAddNode(t *testing.T) {
	tests := []struct {
		name    string
		node    *Node
		wantErr error
	}{
		{name: "entity", node: &Node{ID: "ex:e1", Category: "entity"}},
		{name: "activity", node: &Node{ID: "ex:a1", Category: "activity"}},
		{name: "agent", node: &Node{ID: "ex:ag1", Category: "agent"}},
		{name: "empty ID", node: &Node{ID: "", Category: "entity"}, wantErr: ErrInvalidID},
		{name: "unknown category", node: &Node{ID: "ex:x", Category: "thing"}, wantErr: ErrUnknownCategory},
		{name: "relation category", node: &Node{ID: "ex:x", Category: "wasGeneratedBy"}, wantErr: ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			err := d.AddNode(tt.node)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddNode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddNodeDuplicates(t *testing.T) {
	d := New()
	if err := d.AddNode(&Node{ID: "ex:n1", Category: "entity"}); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}

	// Same ID in the same category is rejected.
	err := d.AddNode(&Node{ID: "ex:n1", Category: "entity"})
	if !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("AddNode(dup) error = %v, want ErrDuplicateNode", err)
	}

	// Same ID under another category is legal PROV: an identifier can
	// name both an entity and an agent.
	if err := d.AddNode(&Node{ID: "ex:n1", Category: "agent"}); err != nil {
		t.Errorf("AddNode(other category) error = %v, want nil", err)
	}

	if d.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", d.NodeCount())
	}
}

func TestAddRelation(t *testing.T) {
	d := New()

	rel := &Relation{
		Category: "wasGeneratedBy",
		Props: []Prop{
			{Role: "entity", Value: "ex:e1"},
			{Role: "activity", Value: "ex:a1"},
		},
	}
	if err := d.AddRelation(rel); err != nil {
		t.Fatalf("AddRelation() error = %v", err)
	}
	if rel.Attrs == nil {
		t.Error("Attrs not initialized by AddRelation")
	}

	if err := d.AddRelation(&Relation{Category: "entity"}); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("AddRelation(element category) error = %v, want ErrUnknownCategory", err)
	}
	if err := d.AddRelation(&Relation{Category: "wasQuotedFrom"}); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("AddRelation(unknown) error = %v, want ErrUnknownCategory", err)
	}
}

func TestRelationRef(t *testing.T) {
	rel := &Relation{
		Category: "wasDerivedFrom",
		Props: []Prop{
			{Role: "generatedEntity", Value: "ex:e2"},
			{Role: "usedEntity", Value: "ex:e1"},
			{Role: "time", Value: "2024-01-01T10:00:00"},
			{Role: "odd", Value: 42.0},
		},
	}

	if got, ok := rel.Ref("usedEntity"); !ok || got != "ex:e1" {
		t.Errorf("Ref(usedEntity) = %q, %v; want %q, true", got, ok, "ex:e1")
	}
	if _, ok := rel.Ref("missing"); ok {
		t.Error("Ref(missing) = ok, want miss")
	}
	if _, ok := rel.Ref("odd"); ok {
		t.Error("Ref(odd) = ok, want miss for non-string value")
	}
}

func TestCategoryViews(t *testing.T) {
	d := New()
	for _, n := range []*Node{
		{ID: "ex:e1", Category: "entity"},
		{ID: "ex:a1", Category: "activity"},
		{ID: "ex:e2", Category: "entity"},
	} {
		if err := d.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s) error = %v", n.ID, err)
		}
	}

	entities := d.NodesByCategory("entity")
	if len(entities) != 2 {
		t.Fatalf("NodesByCategory(entity) = %d nodes, want 2", len(entities))
	}
	if entities[0].ID != "ex:e1" || entities[1].ID != "ex:e2" {
		t.Errorf("entity order = %s, %s; want ex:e1, ex:e2", entities[0].ID, entities[1].ID)
	}

	if n, ok := d.Node("activity", "ex:a1"); !ok || n.Category != "activity" {
		t.Errorf("Node(activity, ex:a1) = %v, %v", n, ok)
	}
	if _, ok := d.Node("entity", "ex:a1"); ok {
		t.Error("Node(entity, ex:a1) = ok, want miss")
	}
}

func TestBundleNamespaces(t *testing.T) {
	d := New()
	top := namespace.New()
	top.Set("ex", "http://example.org/")
	d.SetPrefixes(top)

	own := namespace.New()
	own.Set("sub", "http://sub.example/")
	withOwn := NewBundle("ex:b1", own)
	d.AddBundle(withOwn)

	inherits := NewBundle("ex:b2", nil)
	d.AddBundle(inherits)

	if got := withOwn.Namespaces().Compact("http://sub.example/x"); got != "sub:x" {
		t.Errorf("own namespaces Compact = %q, want %q", got, "sub:x")
	}
	if got := inherits.Namespaces().Compact("http://example.org/e1"); got != "ex:e1" {
		t.Errorf("inherited namespaces Compact = %q, want %q", got, "ex:e1")
	}

	if len(d.Bundles()) != 2 {
		t.Errorf("len(Bundles()) = %d, want 2", len(d.Bundles()))
	}
	if d.Bundles()[0].ID() != "ex:b1" {
		t.Errorf("bundle order: first = %q, want ex:b1", d.Bundles()[0].ID())
	}
}

func TestTotals(t *testing.T) {
	d := New()
	if err := d.AddNode(&Node{ID: "ex:e1", Category: "entity"}); err != nil {
		t.Fatal(err)
	}
	if err := d.AddRelation(&Relation{Category: "used"}); err != nil {
		t.Fatal(err)
	}

	b := NewBundle("ex:b", nil)
	if err := b.AddNode(&Node{ID: "ex:e1", Category: "entity"}); err != nil {
		t.Fatalf("bundle AddNode error = %v (bundle scope is independent)", err)
	}
	if err := b.AddRelation(&Relation{Category: "wasAttributedTo"}); err != nil {
		t.Fatal(err)
	}
	d.AddBundle(b)

	nodes, relations := d.Totals()
	if nodes != 2 || relations != 2 {
		t.Errorf("Totals() = (%d, %d), want (2, 2)", nodes, relations)
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "prov label",
			node: func() *Node {
				n := &Node{ID: "ex:e1", Category: "entity", Attrs: NewAttributes()}
				n.Attrs.Set("prov:label", []Value{NewLiteral("The Label")})
				return n
			}(),
			want: "The Label",
		},
		{
			name: "rdfs label fallback",
			node: func() *Node {
				n := &Node{ID: "ex:e1", Category: "entity", Attrs: NewAttributes()}
				n.Attrs.Set("rdfs:label", []Value{NewLiteral("Fallback")})
				return n
			}(),
			want: "Fallback",
		},
		{
			name: "local part of qualified ID",
			node: &Node{ID: "ex:report", Category: "entity", Attrs: NewAttributes()},
			want: "report",
		},
		{
			name: "plain ID",
			node: &Node{ID: "report", Category: "entity", Attrs: NewAttributes()},
			want: "report",
		},
		{
			name: "no ID",
			node: &Node{Category: "entity", Attrs: NewAttributes()},
			want: "anonymous",
		},
		{
			name: "numeric label",
			node: func() *Node {
				n := &Node{ID: "ex:e1", Category: "entity", Attrs: NewAttributes()}
				n.Attrs.Set("prov:label", []Value{NewLiteral(2024.0)})
				return n
			}(),
			want: "2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.DisplayLabel(); got != tt.want {
				t.Errorf("DisplayLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAttributesOrder(t *testing.T) {
	a := NewAttributes()
	a.Set("z:last", []Value{NewLiteral("1")})
	a.Set("a:first", []Value{NewLiteral("2")})
	a.Set("m:mid", []Value{NewLiteral("3")})
	// Replacing keeps the original position.
	a.Set("z:last", []Value{NewLiteral("4")})

	want := []string{"z:last", "a:first", "m:mid"}
	got := a.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	values, ok := a.Get("z:last")
	if !ok || len(values) != 1 || values[0].String() != "4" {
		t.Errorf("Get(z:last) = %v, %v; want replaced value", values, ok)
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"string literal", NewLiteral("text"), "text"},
		{"bool literal", NewLiteral(true), "true"},
		{"whole float", NewLiteral(5.0), "5"},
		{"fractional float", NewLiteral(1.5), "1.5"},
		{"large whole float", NewLiteral(1000000.0), "1000000"},
		{"null literal", NewLiteral(nil), "null"},
		{"no payload", Value{Datatype: "xsd:QName"}, ""},
		{"raw passthrough", Value{Raw: map[string]any{"k": "v"}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

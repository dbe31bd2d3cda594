package provjson

import (
	"errors"
	"testing"

	"github.com/provgraph/provgraph/pkg/document"
	"github.com/provgraph/provgraph/pkg/prov"
)

func mustDecode(t *testing.T, src string) *document.Document {
	t.Helper()
	doc, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return doc
}

func TestDecodeCounts(t *testing.T) {
	doc := mustDecode(t, `{
		"prefix": {"ex": "https://example.org/"},
		"entity": {"ex:report": {}, "ex:draft": {}},
		"activity": {"ex:compile": {}},
		"agent": {"ex:alice": {}},
		"wasGeneratedBy": {"_:g1": {"prov:entity": "ex:report", "prov:activity": "ex:compile"}},
		"wasAttributedTo": {"_:a1": {"prov:entity": "ex:report", "prov:agent": "ex:alice"}}
	}`)

	if got := doc.NodeCount(); got != 4 {
		t.Errorf("NodeCount() = %d, want 4", got)
	}
	if got := doc.RelationCount(); got != 2 {
		t.Errorf("RelationCount() = %d, want 2", got)
	}
	if got := len(doc.NodesByCategory(prov.CategoryEntity)); got != 2 {
		t.Errorf("entities = %d, want 2", got)
	}
	if got := len(doc.NodesByCategory(prov.CategoryActivity)); got != 1 {
		t.Errorf("activities = %d, want 1", got)
	}
	if got := len(doc.NodesByCategory(prov.CategoryAgent)); got != 1 {
		t.Errorf("agents = %d, want 1", got)
	}
	if ns, _ := doc.Prefixes().Lookup("ex"); ns != "https://example.org/" {
		t.Errorf("prefix ex = %q, want https://example.org/", ns)
	}
}

func TestDecodeStatementOrder(t *testing.T) {
	doc := mustDecode(t, `{
		"entity": {"ex:zulu": {}, "ex:alpha": {}, "ex:mike": {}}
	}`)

	want := []string{"ex:zulu", "ex:alpha", "ex:mike"}
	nodes := doc.Nodes()
	if len(nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(nodes), len(want))
	}
	for i, n := range nodes {
		if n.ID != want[i] {
			t.Errorf("node[%d] = %q, want %q", i, n.ID, want[i])
		}
	}
}

func TestDecodeAttributeForms(t *testing.T) {
	doc := mustDecode(t, `{
		"entity": {"ex:e1": {
			"ex:str": "plain",
			"ex:num": 7,
			"ex:typed": {"$": 3.14, "type": "xsd:double"},
			"ex:lang": {"$": "hola", "lang": "es"},
			"ex:ref": {"@id": "ex:other"},
			"ex:list": ["a", {"$": "b", "type": "xsd:string"}],
			"nocolon": "dropped"
		}}
	}`)

	n, ok := doc.Node(prov.CategoryEntity, "ex:e1")
	if !ok {
		t.Fatal("missing node ex:e1")
	}

	wantKeys := []string{"ex:str", "ex:num", "ex:typed", "ex:lang", "ex:ref", "ex:list"}
	gotKeys := n.Attrs.Keys()
	if len(gotKeys) != len(wantKeys) {
		t.Fatalf("attr keys = %v, want %v", gotKeys, wantKeys)
	}
	for i := range wantKeys {
		if gotKeys[i] != wantKeys[i] {
			t.Errorf("key[%d] = %q, want %q", i, gotKeys[i], wantKeys[i])
		}
	}

	str, _ := n.Attrs.Get("ex:str")
	if len(str) != 1 || !str[0].HasValue || str[0].Literal != "plain" {
		t.Errorf("ex:str = %+v, want plain literal", str)
	}

	num, _ := n.Attrs.Get("ex:num")
	if len(num) != 1 || num[0].Literal != "7" {
		t.Errorf("ex:num = %+v, want stringified 7", num)
	}

	typed, _ := n.Attrs.Get("ex:typed")
	if len(typed) != 1 || typed[0].Literal != 3.14 || typed[0].Datatype != "xsd:double" {
		t.Errorf("ex:typed = %+v, want raw 3.14 with xsd:double", typed)
	}

	lang, _ := n.Attrs.Get("ex:lang")
	if len(lang) != 1 || lang[0].Literal != "hola" || lang[0].Lang != "es" {
		t.Errorf("ex:lang = %+v, want hola@es", lang)
	}

	ref, _ := n.Attrs.Get("ex:ref")
	if len(ref) != 1 || !ref[0].IsRaw() {
		t.Errorf("ex:ref = %+v, want opaque passthrough", ref)
	}

	list, _ := n.Attrs.Get("ex:list")
	if len(list) != 2 {
		t.Fatalf("ex:list has %d values, want 2", len(list))
	}
	if list[0].Literal != "a" || list[1].Literal != "b" || list[1].Datatype != "xsd:string" {
		t.Errorf("ex:list = %+v", list)
	}
}

func TestDecodeLabels(t *testing.T) {
	doc := mustDecode(t, `{
		"entity": {
			"ex:a": {"prov:label": "Simple"},
			"ex:b": {"prov:label": {"$": "Tagged", "lang": "en"}},
			"ex:c": {"prov:label": {"lang": "en"}},
			"ex:d": {"prov:label": 42}
		}
	}`)

	tests := []struct {
		id      string
		literal any
		lang    string
	}{
		{"ex:a", "Simple", ""},
		{"ex:b", "Tagged", "en"},
		{"ex:c", "", "en"},
		{"ex:d", "42", ""},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n, ok := doc.Node(prov.CategoryEntity, tt.id)
			if !ok {
				t.Fatalf("missing node %s", tt.id)
			}
			values, ok := n.Attrs.Get(prov.AttrLabel)
			if !ok || len(values) != 1 {
				t.Fatalf("label values = %+v, want one", values)
			}
			v := values[0]
			if !v.HasValue || v.Literal != tt.literal || v.Lang != tt.lang {
				t.Errorf("label = %+v, want literal %v lang %q", v, tt.literal, tt.lang)
			}
			if v.Datatype != "" {
				t.Errorf("label carries datatype %q, want none", v.Datatype)
			}
		})
	}
}

func TestDecodeActivityTimes(t *testing.T) {
	doc := mustDecode(t, `{
		"activity": {"ex:compile": {
			"prov:startTime": "2024-01-01T10:00:00",
			"prov:endTime": "2024-01-01T11:30:00"
		}},
		"entity": {"ex:odd": {"prov:startTime": "2024-01-01T10:00:00"}}
	}`)

	act, ok := doc.Node(prov.CategoryActivity, "ex:compile")
	if !ok {
		t.Fatal("missing activity ex:compile")
	}
	if act.StartTime != "2024-01-01T10:00:00" {
		t.Errorf("StartTime = %v, want raw string", act.StartTime)
	}
	if act.EndTime != "2024-01-01T11:30:00" {
		t.Errorf("EndTime = %v, want raw string", act.EndTime)
	}
	if !act.Attrs.Has(prov.AttrStartTime) || !act.Attrs.Has(prov.AttrEndTime) {
		t.Error("lifted times must stay as attributes too")
	}

	ent, _ := doc.Node(prov.CategoryEntity, "ex:odd")
	if ent.StartTime != nil {
		t.Errorf("entity StartTime = %v, want nil (only activities lift times)", ent.StartTime)
	}
	if !ent.Attrs.Has(prov.AttrStartTime) {
		t.Error("entity keeps prov:startTime as a plain attribute")
	}
}

func TestDecodeRelationTableOrder(t *testing.T) {
	doc := mustDecode(t, `{
		"wasDerivedFrom": {"_:d1": {
			"ex:note": "shuffled on purpose",
			"prov:activity": "ex:compile",
			"prov:generatedEntity": "ex:new",
			"prov:usedEntity": "ex:old"
		}}
	}`)

	rels := doc.Relations()
	if len(rels) != 1 {
		t.Fatalf("got %d relations, want 1", len(rels))
	}
	r := rels[0]
	if r.ID != "_:d1" {
		t.Errorf("ID = %q, want blank label kept verbatim", r.ID)
	}
	if r.Category != prov.CategoryDerivation {
		t.Errorf("Category = %q, want %q", r.Category, prov.CategoryDerivation)
	}

	wantRoles := []string{"generatedEntity", "usedEntity", "activity"}
	if len(r.Props) != len(wantRoles) {
		t.Fatalf("props = %+v, want roles %v", r.Props, wantRoles)
	}
	for i, role := range wantRoles {
		if r.Props[i].Role != role {
			t.Errorf("prop[%d].Role = %q, want %q", i, r.Props[i].Role, role)
		}
	}

	if used, ok := r.Ref("usedEntity"); !ok || used != "ex:old" {
		t.Errorf("Ref(usedEntity) = %q, %v", used, ok)
	}
	if r.Attrs.Has("prov:activity") {
		t.Error("table property leaked into attributes")
	}
	note, ok := r.Attrs.Get("ex:note")
	if !ok || len(note) != 1 || note[0].Literal != "shuffled on purpose" {
		t.Errorf("ex:note = %+v", note)
	}
}

func TestDecodeRelationOptionalID(t *testing.T) {
	doc := mustDecode(t, `{
		"used": {"": {"prov:entity": "ex:in", "prov:activity": "ex:run"}}
	}`)

	rels := doc.Relations()
	if len(rels) != 1 {
		t.Fatalf("got %d relations, want 1", len(rels))
	}
	if rels[0].ID != "" {
		t.Errorf("ID = %q, want empty", rels[0].ID)
	}
}

func TestDecodeBundles(t *testing.T) {
	doc := mustDecode(t, `{
		"prefix": {"ex": "https://example.org/"},
		"entity": {"ex:top": {}},
		"bundle": {
			"ex:run1": {
				"prefix": {"run": "https://example.org/run/"},
				"entity": {"run:out": {}},
				"wasGeneratedBy": {"_:g": {"prov:entity": "run:out", "prov:activity": "run:act"}}
			},
			"ex:run2": {
				"entity": {"ex:other": {}}
			}
		}
	}`)

	bundles := doc.Bundles()
	if len(bundles) != 2 {
		t.Fatalf("got %d bundles, want 2", len(bundles))
	}

	run1 := bundles[0]
	if run1.ID() != "ex:run1" {
		t.Errorf("bundle[0].ID() = %q, want ex:run1", run1.ID())
	}
	if run1.Prefixes() == nil {
		t.Fatal("ex:run1 must carry its own prefixes")
	}
	if ns, _ := run1.Prefixes().Lookup("run"); ns != "https://example.org/run/" {
		t.Errorf("bundle prefix run = %q", ns)
	}
	if run1.NodeCount() != 1 || run1.RelationCount() != 1 {
		t.Errorf("run1 counts = %d nodes, %d relations", run1.NodeCount(), run1.RelationCount())
	}

	run2 := bundles[1]
	if run2.Prefixes() != nil {
		t.Error("ex:run2 declared no prefixes, want nil")
	}
	if got := run2.Namespaces().Compact("https://example.org/thing"); got != "ex:thing" {
		t.Errorf("inherited Compact = %q, want ex:thing", got)
	}

	nodes, relations := doc.Totals()
	if nodes != 3 || relations != 1 {
		t.Errorf("Totals() = %d, %d, want 3, 1", nodes, relations)
	}
}

func TestDecodeEmptyBundlePrefixInherits(t *testing.T) {
	doc := mustDecode(t, `{
		"bundle": {"ex:b": {"prefix": {}, "entity": {"ex:e": {}}}}
	}`)

	if doc.Bundles()[0].Prefixes() != nil {
		t.Error("empty prefix block must behave like an absent one")
	}
}

func TestDecodeIgnoresUnknownCategories(t *testing.T) {
	doc := mustDecode(t, `{
		"entity": {"ex:e": {}},
		"wasRevisionOf": {"_:x": {"prov:entity": "ex:e"}},
		"mentionOf": "not even an object"
	}`)

	if doc.NodeCount() != 1 || doc.RelationCount() != 0 {
		t.Errorf("counts = %d, %d, want 1, 0", doc.NodeCount(), doc.RelationCount())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"malformed syntax", `{"entity": `},
		{"array root", `[]`},
		{"category not object", `{"entity": ["ex:e"]}`},
		{"statement not object", `{"entity": {"ex:e": 5}}`},
		{"prefix not object", `{"prefix": "ex"}`},
		{"bundle not object", `{"bundle": {"ex:b": 1}}`},
		{"bundle block not object", `{"bundle": []}`},
		{"empty element id", `{"entity": {"": {}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.src)); err == nil {
				t.Error("Decode() error = nil, want failure")
			}
		})
	}
}

func TestDecodeStructuralErrorIs(t *testing.T) {
	_, err := Decode([]byte(`{"entity": {"ex:e": 5}}`))
	if !errors.Is(err, ErrNotObject) {
		t.Errorf("error = %v, want ErrNotObject", err)
	}

	_, err = Decode([]byte(`{"entity": {"": {}}}`))
	if !errors.Is(err, document.ErrInvalidID) {
		t.Errorf("error = %v, want document.ErrInvalidID", err)
	}
}

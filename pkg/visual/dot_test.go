package visual

import (
	"strings"
	"testing"
)

func TestToDOT(t *testing.T) {
	g := NewGraph("LR", "")
	g.SetNode(&Node{ID: "ex:report", Label: "report", Shape: "ellipse", FillColor: "#FFFC87"})
	g.SetNode(&Node{ID: "ex:compile", Label: "compile", Shape: "box", FillColor: "#9FB1FC"})
	g.AddEdge(&Edge{
		Source: "ex:compile", Target: "ex:report",
		Label: "wasGeneratedBy", Style: "solid", Dir: "back", Color: "#006400", Arrowhead: "normal",
	})

	want := `digraph PROV {
  rankdir=LR;
  node [fontname="Helvetica"];
  edge [fontname="Helvetica"];

  ex_report [label="report", shape="ellipse", fillcolor="#FFFC87", style="filled"];
  ex_compile [label="compile", shape="box", fillcolor="#9FB1FC", style="filled"];

  ex_compile -> ex_report [label="wasGeneratedBy", style=solid, dir=back, color="#006400", arrowhead=normal];
}`
	if got := ToDOT(g); got != want {
		t.Errorf("ToDOT() =\n%s\nwant\n%s", got, want)
	}
}

func TestToDOTFromDocument(t *testing.T) {
	doc := parseDoc(t, `{
		"@context": [{"ex": "https://example.org/"}, "https://openprovenance.org/prov-jsonld/context.json"],
		"@graph": [
			{"@type": "prov:Entity", "@id": "ex:data", "prov:label": [{"@value": "Data"}]},
			{"@type": "prov:Activity", "@id": "ex:run"},
			{"@type": "prov:Usage", "entity": "ex:data", "activity": "ex:run"}
		]
	}`)
	g, diags := Build(doc, DefaultOptions())
	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v", diags)
	}

	want := `digraph PROV {
  rankdir=LR;
  node [fontname="Helvetica"];
  edge [fontname="Helvetica"];

  ex_data [label="Data", shape="ellipse", fillcolor="#FFFC87", style="filled"];
  ex_run [label="run", shape="box", fillcolor="#9FB1FC", style="filled"];

  ex_run -> ex_data [label="used", style=solid, dir=forward, color="#8b0101", arrowhead=normal];
}`
	if got := ToDOT(g); got != want {
		t.Errorf("ToDOT() =\n%s\nwant\n%s", got, want)
	}
}

func TestSanitizeID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"ex:report", "ex_report"},
		{"a.b-c/d#e", "a_b_c_d_e"},
		{"_:blank1", "__blank1"},
		{"entity1", "entity1"},
		{"café", "café"},
		{"a b", `"a b"`},
		{"ex:n%40", `"ex:n%40"`},
		{"", `""`},
	}
	for _, tt := range tests {
		if got := sanitizeID(tt.raw); got != tt.want {
			t.Errorf("sanitizeID(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestToDOTIdentifierCollision(t *testing.T) {
	g := NewGraph("", "")
	g.SetNode(&Node{ID: "a:b", Label: "x", Shape: "ellipse", FillColor: "#FFFC87"})
	g.SetNode(&Node{ID: "a.b", Label: "y", Shape: "ellipse", FillColor: "#FFFC87"})
	g.AddEdge(&Edge{Source: "a.b", Target: "a:b", Style: "solid", Dir: "forward", Arrowhead: "normal"})

	out := ToDOT(g)
	if !strings.Contains(out, "\n  a_b [label=\"x\"") {
		t.Errorf("first identifier not sanitized in place:\n%s", out)
	}
	if !strings.Contains(out, "\n  \"a.b\" [label=\"y\"") {
		t.Errorf("colliding identifier not quoted:\n%s", out)
	}
	if !strings.Contains(out, "\n  \"a.b\" -> a_b ") {
		t.Errorf("edge endpoints not consistent with node identifiers:\n%s", out)
	}
}

func TestToDOTQuoting(t *testing.T) {
	g := NewGraph("", "")
	g.SetNode(&Node{ID: "n", Label: `say "hi"`, Shape: "box", FillColor: "#9FB1FC"})
	g.SetNode(&Node{ID: "m", Label: `line1\nline2`, Shape: "box", FillColor: "#9FB1FC"})

	out := ToDOT(g)
	if !strings.Contains(out, `label="say \"hi\""`) {
		t.Errorf("embedded quotes not escaped:\n%s", out)
	}
	if !strings.Contains(out, `label="line1\nline2"`) {
		t.Errorf("label line breaks must pass through unescaped:\n%s", out)
	}

	g.SetNode(&Node{ID: "o", Label: "raw\nnewline", Shape: "box", FillColor: "#9FB1FC"})
	if out := ToDOT(g); !strings.Contains(out, `label="raw\nnewline"`) {
		t.Errorf("raw newlines must be converted to the escape sequence:\n%s", out)
	}
}

func TestToDOTBareEdge(t *testing.T) {
	g := NewGraph("TB", "Courier")
	g.SetNode(&Node{ID: "a", Shape: "ellipse", FillColor: "#FFFC87"})
	g.SetNode(&Node{ID: "b", Shape: "ellipse", FillColor: "#FFFC87"})
	g.AddEdge(&Edge{Source: "a", Target: "b"})

	out := ToDOT(g)
	if !strings.Contains(out, "rankdir=TB;") {
		t.Errorf("direction missing:\n%s", out)
	}
	if !strings.Contains(out, `node [fontname="Courier"];`) {
		t.Errorf("font missing:\n%s", out)
	}
	if !strings.Contains(out, "\n  a -> b;\n") {
		t.Errorf("edge without attributes must omit the bracket list:\n%s", out)
	}
}

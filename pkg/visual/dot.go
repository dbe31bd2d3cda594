package visual

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
)

// ToDOT renders the graph as Graphviz DOT text: a digraph with the
// layout direction, Helvetica fonts, one line per node, then one line
// per edge, all in insertion order.
func ToDOT(g *Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph PROV {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", g.Direction())
	fmt.Fprintf(&buf, "  node [fontname=%s];\n", quote(g.Font()))
	fmt.Fprintf(&buf, "  edge [fontname=%s];\n", quote(g.Font()))
	buf.WriteString("\n")

	ids := newIDTable()
	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %s [label=%s, shape=%s, fillcolor=%s, style=%s];\n",
			ids.safe(n.ID), quote(n.Label), quote(n.Shape), quote(n.FillColor), quote("filled"))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		source, target := ids.safe(e.Source), ids.safe(e.Target)

		var attrs []string
		if e.Label != "" {
			attrs = append(attrs, "label="+quote(e.Label))
		}
		if e.Style != "" {
			attrs = append(attrs, "style="+e.Style)
		}
		if e.Dir != "" {
			attrs = append(attrs, "dir="+e.Dir)
		}
		if e.Color != "" {
			attrs = append(attrs, "color="+quote(e.Color))
		}
		if e.Arrowhead != "" {
			attrs = append(attrs, "arrowhead="+e.Arrowhead)
		}

		if len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %s -> %s [%s];\n", source, target, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %s -> %s;\n", source, target)
		}
	}

	buf.WriteString("}")
	return buf.String()
}

// quote wraps a value as a DOT double-quoted string. Embedded quotes
// are escaped and raw newlines become the two-character \n sequence;
// backslashes pass through untouched so label line breaks written as
// backslash-n keep working.
func quote(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}

var idSanitizer = strings.NewReplacer(":", "_", "/", "_", "-", "_", ".", "_", "#", "_")

// idTable maps raw statement identifiers to DOT identifiers. The same
// raw identifier always yields the same DOT identifier, and two
// distinct raw identifiers never yield the same one: when sanitization
// would collide, the later identifier falls back to its quoted form.
type idTable struct {
	owner map[string]string // DOT identifier to the raw identifier holding it
}

func newIDTable() *idTable {
	return &idTable{owner: make(map[string]string)}
}

func (t *idTable) safe(raw string) string {
	id := sanitizeID(raw)
	if held, ok := t.owner[id]; ok && held != raw {
		id = quote(raw)
	}
	if _, ok := t.owner[id]; !ok {
		t.owner[id] = raw
	}
	return id
}

// sanitizeID rewrites an identifier for DOT: the characters : / - . #
// become underscores. If anything else but letters, digits, and
// underscores remains, the original identifier is quoted instead.
func sanitizeID(raw string) string {
	safe := idSanitizer.Replace(raw)
	if !bareName(safe) {
		return quote(raw)
	}
	return safe
}

func bareName(s string) bool {
	stripped := strings.ReplaceAll(s, "_", "")
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

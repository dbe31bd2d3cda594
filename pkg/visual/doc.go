// Package visual turns parsed PROV-JSONLD into a drawable graph and
// renders it as Graphviz DOT.
//
// # Overview
//
// The visual pipeline is a projection, not a conversion: element
// statements become styled nodes, relation statements become styled
// edges between their two semantic endpoints, and everything else in
// the @graph (bundles, foreign types, malformed items) contributes
// nothing. [Build] reports what it skipped as diagnostics so callers
// can surface them or fail hard; by default skipping is silent, which
// matches how provenance fragments are usually inspected.
//
// Statement styling comes from the registry in [pkg/prov]: shapes and
// fill colors per element kind, line style, direction, arrowhead, and
// color per relation kind.
//
// # DOT Output
//
//	digraph PROV {
//	  rankdir=LR;
//	  node [fontname="Helvetica"];
//	  edge [fontname="Helvetica"];
//
//	  ex_report [label="report", shape="ellipse", fillcolor="#FFFC87", style="filled"];
//	  ...
//	  ex_compile -> ex_report [label="wasGeneratedBy", style=solid, dir=back, color="#006400", arrowhead=normal];
//	}
//
// Node identifiers are sanitized for DOT; identifiers that cannot be
// expressed as bare names are emitted as quoted literals, and two
// distinct identifiers never collapse into the same DOT name.
//
// [pkg/prov]: github.com/provgraph/provgraph/pkg/prov
package visual

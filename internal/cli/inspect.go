package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/provgraph/provgraph/pkg/document"
	"github.com/provgraph/provgraph/pkg/prov"
	"github.com/provgraph/provgraph/pkg/provjson"
)

// inspectCommand creates the inspect command for browsing the
// statements of a PROV-JSON document.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [document.json]",
		Short: "Browse the statements of a PROV-JSON document",
		Long: `Browse the statements of a PROV-JSON document.

The inspect command parses the document and lists every element and
relation statement: its kind, identifier, display label or endpoints,
and attribute count. In a terminal the list is interactive; press enter
on a statement to see its attributes. When output is piped the full
table is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0])
		},
	}
}

// runInspect parses the document and shows the statement browser, or a
// plain table when stdout is not a terminal.
func (c *CLI) runInspect(input string) error {
	data, err := readInput(input)
	if err != nil {
		return err
	}
	doc, err := provjson.Decode(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", input, err)
	}

	rows := statementRows(doc)
	if len(rows) == 0 {
		printInfo("Document contains no statements")
		return nil
	}

	if !isTerminal(os.Stdout) {
		fmt.Println(renderStatementTable(rows, -1))
		return nil
	}

	m := newInspectModel(input, rows)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(inspectModel)
	if ok && fm.Detail {
		printStatementDetail(fm.Rows[fm.Cursor])
	}
	return nil
}

// =============================================================================
// Statement Rows
// =============================================================================

// statementRow is one line of the statement browser.
type statementRow struct {
	Scope string // bundle id, or "—" at the top level
	Kind  string // statement category (entity, wasGeneratedBy, ...)
	ID    string
	Label string // display label for elements, endpoints for relations

	node     *document.Node
	relation *document.Relation
}

// attrCount returns the number of attribute keys on the statement.
func (r statementRow) attrCount() int {
	switch {
	case r.node != nil:
		return r.node.Attrs.Len()
	case r.relation != nil:
		return r.relation.Attrs.Len()
	}
	return 0
}

// statementRows flattens the document into browser rows: top-level
// elements, top-level relations, then each bundle's statements.
func statementRows(doc *document.Document) []statementRow {
	rows := scopeRows(&doc.Graph, "—")
	for _, b := range doc.Bundles() {
		rows = append(rows, scopeRows(&b.Graph, b.ID())...)
	}
	return rows
}

func scopeRows(g *document.Graph, scope string) []statementRow {
	rows := make([]statementRow, 0, g.StatementCount())
	for _, n := range g.Nodes() {
		rows = append(rows, statementRow{
			Scope: scope,
			Kind:  n.Category,
			ID:    n.ID,
			Label: n.DisplayLabel(),
			node:  n,
		})
	}
	for _, r := range g.Relations() {
		id := r.ID
		if id == "" {
			id = "—"
		}
		rows = append(rows, statementRow{
			Scope:    scope,
			Kind:     r.Category,
			ID:       id,
			Label:    relationEndpoints(r),
			relation: r,
		})
	}
	return rows
}

// relationEndpoints summarizes a relation as "source → target" using
// the registry's endpoint roles. Missing endpoints show as "?".
func relationEndpoints(r *document.Relation) string {
	schema, ok := prov.Lookup(r.Category)
	if !ok {
		return ""
	}
	source, target := schema.Endpoints()
	from, ok := r.Ref(source)
	if !ok || from == "" {
		from = "?"
	}
	to, ok := r.Ref(target)
	if !ok || to == "" {
		to = "?"
	}
	return from + " " + iconArrow + " " + to
}

// =============================================================================
// Detail Output
// =============================================================================

// printStatementDetail prints the selected statement's roles and
// attributes after the browser exits.
func printStatementDetail(row statementRow) {
	printNewline()
	printKeyValue("Kind", row.Kind)
	printKeyValue("ID", row.ID)
	printKeyValue("Scope", row.Scope)

	switch {
	case row.node != nil:
		printKeyValue("Label", row.node.DisplayLabel())
		for _, key := range row.node.Attrs.Keys() {
			values, _ := row.node.Attrs.Get(key)
			printKeyValue(key, formatValues(values))
		}
	case row.relation != nil:
		for _, p := range row.relation.Props {
			printKeyValue(p.Role, formatPropValue(p.Value))
		}
		for _, key := range row.relation.Attrs.Keys() {
			values, _ := row.relation.Attrs.Get(key)
			printKeyValue(key, formatValues(values))
		}
	}
}

// formatValues renders an attribute value list for display.
func formatValues(values []document.Value) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v.IsRaw() {
			parts = append(parts, "(object)")
			continue
		}
		s := v.String()
		if v.Datatype != "" {
			s += " (" + v.Datatype + ")"
		}
		if v.Lang != "" {
			s += " @" + v.Lang
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// formatPropValue renders a relation property value for display.
func formatPropValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return "—"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

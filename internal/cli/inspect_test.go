package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/provgraph/provgraph/pkg/provjson"
)

func inspectRows(t *testing.T) []statementRow {
	t.Helper()
	doc, err := provjson.Decode([]byte(sampleProvJSON))
	if err != nil {
		t.Fatalf("decode sample: %v", err)
	}
	return statementRows(doc)
}

func TestStatementRows(t *testing.T) {
	rows := inspectRows(t)

	// Two elements, then one relation
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	if rows[0].Kind != "entity" || rows[0].ID != "ex:report" {
		t.Errorf("rows[0] = %s %s, want entity ex:report", rows[0].Kind, rows[0].ID)
	}
	if rows[0].Label != "Report" {
		t.Errorf("rows[0].Label = %q, want display label", rows[0].Label)
	}
	if rows[1].Kind != "activity" {
		t.Errorf("rows[1].Kind = %q, want activity", rows[1].Kind)
	}

	rel := rows[2]
	if rel.Kind != "wasGeneratedBy" || rel.ID != "_:g1" {
		t.Errorf("rows[2] = %s %s, want wasGeneratedBy _:g1", rel.Kind, rel.ID)
	}
	if !strings.Contains(rel.Label, "ex:compile") || !strings.Contains(rel.Label, "ex:report") {
		t.Errorf("relation label %q should name both endpoints", rel.Label)
	}
}

func TestStatementRowAttrCount(t *testing.T) {
	rows := inspectRows(t)

	if got := rows[0].attrCount(); got != 1 {
		t.Errorf("entity attrCount = %d, want 1 (prov:label)", got)
	}
	if got := rows[1].attrCount(); got != 0 {
		t.Errorf("activity attrCount = %d, want 0", got)
	}
}

func TestInspectModelNavigation(t *testing.T) {
	m := newInspectModel("doc.json", inspectRows(t))

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}

	next, _ := m.Update(down)
	m = next.(inspectModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor after down = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(down)
	m = next.(inspectModel)
	next, _ = m.Update(down) // Already at the last row
	m = next.(inspectModel)
	if m.Cursor != 2 {
		t.Errorf("Cursor should stop at the last row, got %d", m.Cursor)
	}

	next, _ = m.Update(up)
	m = next.(inspectModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor after up = %d, want 1", m.Cursor)
	}
}

func TestInspectModelSelect(t *testing.T) {
	m := newInspectModel("doc.json", inspectRows(t))

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	next, cmd := m.Update(enter)
	m = next.(inspectModel)

	if !m.Detail {
		t.Error("enter should mark the selection for detail output")
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestInspectModelQuit(t *testing.T) {
	m := newInspectModel("doc.json", inspectRows(t))

	quit := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	next, cmd := m.Update(quit)
	m = next.(inspectModel)

	if m.Detail {
		t.Error("q should not mark a selection")
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestRenderStatementTable(t *testing.T) {
	rows := inspectRows(t)
	out := renderStatementTable(rows, -1)

	for _, want := range []string{"Kind", "ID", "ex:report", "wasGeneratedBy"} {
		if !strings.Contains(out, want) {
			t.Errorf("table should contain %q", want)
		}
	}
	if strings.Contains(out, "▸") {
		t.Error("non-interactive table should not contain a cursor marker")
	}
}

func TestInspectModelView(t *testing.T) {
	m := newInspectModel("doc.json", inspectRows(t))
	view := m.View()

	if !strings.Contains(view, "Statements") {
		t.Error("view should contain the title")
	}
	if !strings.Contains(view, "[1/3]") {
		t.Error("view should contain the position footer")
	}
	if !strings.Contains(view, "▸") {
		t.Error("view should mark the cursor row")
	}
}

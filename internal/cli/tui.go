package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// inspectModel - Interactive statement browser
// =============================================================================

// inspectModel is the bubbletea model for browsing PROV statements.
type inspectModel struct {
	Input  string
	Rows   []statementRow
	Cursor int
	Height int
	Offset int

	// Detail is set when the user selected a statement with enter; the
	// CLI prints the statement's attributes after the program exits.
	Detail bool
}

// newInspectModel creates a statement browser over the given rows.
func newInspectModel(input string, rows []statementRow) inspectModel {
	return inspectModel{
		Input:  input,
		Rows:   rows,
		Height: 15,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Detail = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Statements"))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render(m.Input))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ attributes  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	b.WriteString(renderStatementTable(m.Rows[m.Offset:end], m.Cursor-m.Offset))

	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// =============================================================================
// Table Rendering
// =============================================================================

// renderStatementTable renders rows as a bordered table. cursor is the
// highlighted index within rows, or -1 for the non-interactive listing.
func renderStatementTable(rows []statementRow, cursor int) string {
	cells := make([][]string, 0, len(rows))
	for i, row := range rows {
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		cells = append(cells, []string{
			marker,
			row.Kind,
			row.ID,
			row.Label,
			strconv.Itoa(row.attrCount()),
			row.Scope,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Kind", "ID", "Label", "Attrs", "Scope").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			if row >= len(rows) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col == 4 || col == 5 {
				base = base.Foreground(colorDim)
			}
			isRelation := rows[row].relation != nil
			if row == cursor {
				if col == 1 || col == 2 || col == 3 {
					return base.Foreground(colorCyan).Bold(true)
				}
				return base.Bold(true)
			}
			if isRelation && col == 1 {
				return base.Foreground(colorGray)
			}
			return base
		})

	return t.Render()
}

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// View composes the editor and AST panes, the prompt bar and the status bar.
// A pending dialog replaces everything.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if d, ok := m.Dialog(); ok {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, d.View(m.width))
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderEditorPane(leftWidth),
		m.renderASTPane(rightWidth),
	)

	parts := []string{body}
	if m.promptKind != promptNone {
		parts = append(parts, m.renderPromptBar())
	}
	parts = append(parts, m.statusBar.View(m.width))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) pane(focused bool, width int) lipgloss.Style {
	style := paneStyle
	if focused {
		style = focusedPaneStyle
	}
	return style.Width(width - 2)
}

func (m Model) renderEditorPane(width int) string {
	title := paneTitleStyle.Render("JavaScript Code")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.editor.View())
	return m.pane(m.focus == focusEditor, width).Render(content)
}

func (m Model) renderASTPane(width int) string {
	tabs := []string{paneTitleStyle.Render("Abstract Syntax Tree"), "  "}
	for _, t := range []Tab{TabTree, TabJSON} {
		style := inactiveTabStyle
		if t == m.tab {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(t.String()), " ")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	focused := m.focus == focusOutput
	var content string
	if m.tab == TabJSON {
		content = m.jsonView.View()
		if !m.session.HasAST() {
			content = dimStyle.Render("No AST yet. Press F5 to parse.")
		}
	} else {
		content = m.tree.View(focused)
	}
	return m.pane(focused, width).Render(lipgloss.JoinVertical(lipgloss.Left, header, content))
}

func (m Model) renderPromptBar() string {
	label := "Open file: "
	hint := "Enter to open | Esc to cancel"
	if m.promptKind == promptSave {
		label = "Save AST as: "
		hint = "Enter to save | Esc to cancel"
	}
	content := label + m.prompt.View() + " " + dimStyle.Render(hint)
	return promptBarStyle.Width(m.width).Render(content)
}

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// Init fulfills the Bubble Tea Model interface.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update applies incoming Bubble Tea messages to mutate the Model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if len(m.dialogs) > 0 {
			m.dialogs = m.dialogs[1:]
			return m, nil
		}
		if m.promptKind != promptNone {
			return m.handlePrompt(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch {
	case m.promptKind != promptNone:
		m.prompt, cmd = m.prompt.Update(msg)
	case m.focus == focusEditor:
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

// handleResize splits the screen into the editor and AST panes above the
// status bar.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.layout()
	return m, nil
}

func (m *Model) layout() {
	const (
		statusBarHeight = 1
		frame           = 2 // border
		gutter          = 2 // horizontal padding
		titleHeight     = 1
	)
	bodyHeight := m.height - statusBarHeight
	if m.promptKind != promptNone {
		bodyHeight--
	}
	inner := max(1, bodyHeight-frame-titleHeight)

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	m.editor.SetWidth(max(10, leftWidth-frame-gutter))
	m.editor.SetHeight(inner)
	m.tree.SetSize(max(10, rightWidth-frame-gutter), inner)
	m.jsonView.Width = max(10, rightWidth-frame-gutter)
	m.jsonView.Height = inner
	m.prompt.Width = max(10, m.width-30)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+q":
		return m, tea.Quit
	case "f5", "ctrl+r":
		return m.parse(), nil
	case "ctrl+o":
		return m.openPrompt(promptOpen, "")
	case "ctrl+s":
		if !m.session.HasAST() {
			_, err := m.session.SaveAST("")
			m.showError(err)
			return m, nil
		}
		return m.openPrompt(promptSave, "ast.json")
	case "ctrl+l":
		m.session.Clear()
		m.editor.SetValue("")
		m.syncViews()
		m.statusBar.failed = false
		return m, nil
	case "f2":
		m.session.InsertExample()
		m.editor.SetValue(m.session.Source())
		m.statusBar.status = m.session.Status()
		return m, nil
	case "f4":
		if m.tab == TabTree {
			m.tab = TabJSON
		} else {
			m.tab = TabTree
		}
		return m, nil
	case "tab":
		if m.focus == focusEditor {
			m.setFocus(focusOutput)
		} else {
			m.setFocus(focusEditor)
		}
		return m, nil
	case "f1":
		m.dialogs = append(m.dialogs, infoDialog(m.session.About()))
		return m, nil
	case "f3":
		m.dialogs = append(m.dialogs, infoDialog(m.session.InstallHelp()))
		return m, nil
	}

	if m.focus == focusEditor {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	if m.tab == TabJSON {
		var cmd tea.Cmd
		m.jsonView, cmd = m.jsonView.Update(msg)
		return m, cmd
	}
	return m.handleTreeKey(msg)
}

func (m Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := max(1, m.tree.height-1)
	switch msg.String() {
	case "up", "k":
		m.tree.MoveUp(1)
	case "down", "j":
		m.tree.MoveDown(1)
	case "pgup":
		m.tree.MoveUp(page)
	case "pgdown":
		m.tree.MoveDown(page)
	case "home", "g":
		m.tree.Home()
	case "end", "G":
		m.tree.End()
	case "enter", " ", "space":
		m.tree.Toggle()
	case "right", "l":
		m.tree.Expand()
	case "left", "h":
		m.tree.Collapse()
	case "e":
		m.tree.ExpandAll()
	case "c":
		m.tree.CollapseAll()
	}
	return m, nil
}

// parse runs the session parser over the editor text. A parse runs to
// completion; there is no deadline.
func (m Model) parse() Model {
	m.session.SetSource(m.editor.Value())

	if err := m.session.Parse(context.Background()); err != nil {
		m.showError(err)
		return m
	}
	m.syncViews()
	m.statusBar.failed = false
	return m
}

func (m Model) openPrompt(kind promptKind, value string) (tea.Model, tea.Cmd) {
	m.promptKind = kind
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	switch kind {
	case promptOpen:
		m.prompt.Placeholder = "path/to/file.js"
	case promptSave:
		m.prompt.Placeholder = "ast.json"
	}
	m.editor.Blur()
	m.layout()
	return m, m.prompt.Focus()
}

func (m Model) closePrompt() Model {
	m.promptKind = promptNone
	m.prompt.Blur()
	m.prompt.SetValue("")
	m.setFocus(m.focus)
	m.layout()
	return m
}

func (m Model) handlePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closePrompt(), nil
	case "enter":
		kind := m.promptKind
		path := strings.TrimSpace(m.prompt.Value())
		m = m.closePrompt()
		if path == "" {
			return m, nil
		}
		switch kind {
		case promptOpen:
			if err := m.session.OpenFile(path); err != nil {
				m.showError(err)
				return m, nil
			}
			m.editor.SetValue(m.session.Source())
			m.statusBar.failed = false
		case promptSave:
			if _, err := m.session.SaveAST(path); err != nil {
				m.showError(err)
				return m, nil
			}
			m.statusBar.failed = false
		}
		m.statusBar.status = m.session.Status()
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

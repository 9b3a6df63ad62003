package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/soyuz43/jsast-go/internal/session"
)

// Run starts the full screen UI and blocks until the user quits.
func Run(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return errors.New("session is required")
	}
	program := tea.NewProgram(
		NewModel(sess),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

type focusArea int

const (
	focusEditor focusArea = iota
	focusOutput
)

// Tab is the active view of the AST pane.
type Tab int

const (
	TabTree Tab = iota
	TabJSON
)

func (t Tab) String() string {
	if t == TabJSON {
		return "JSON View"
	}
	return "Tree View"
}

type promptKind int

const (
	promptNone promptKind = iota
	promptOpen
	promptSave
)

// Model implements tea.Model for the editor, the two AST views, the status bar
// and the modal dialogs.
type Model struct {
	session *session.Session

	editor   textarea.Model
	tree     TreeView
	jsonView viewport.Model
	prompt   textinput.Model

	promptKind promptKind
	dialogs    []Dialog
	focus      focusArea
	tab        Tab
	statusBar  StatusBar

	width  int
	height int
	ready  bool
}

// NewModel builds the UI state around sess. The editor starts with the
// session source, and a missing parser queues the startup warning.
func NewModel(sess *session.Session) Model {
	editor := textarea.New()
	editor.Placeholder = "Type or paste JavaScript here"
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.SetValue(sess.Source())
	editor.Focus()

	prompt := textinput.New()
	prompt.Prompt = ""

	m := Model{
		session:  sess,
		editor:   editor,
		tree:     NewTreeView(),
		jsonView: viewport.New(0, 0),
		prompt:   prompt,
		focus:    focusEditor,
		tab:      TabTree,
		statusBar: StatusBar{
			backend: sess.Backend(),
			status:  sess.Status(),
			failed:  !sess.HasParser(),
		},
	}
	if !sess.HasParser() {
		w := session.MissingParserWarning()
		m.dialogs = append(m.dialogs, Dialog{Kind: DialogWarning, Title: w.Title, Body: w.Body})
	}
	m.syncViews()
	return m
}

// Dialog returns the dialog on screen, if any.
func (m Model) Dialog() (Dialog, bool) {
	if len(m.dialogs) == 0 {
		return Dialog{}, false
	}
	return m.dialogs[0], true
}

// ActiveTab returns the visible AST view.
func (m Model) ActiveTab() Tab { return m.tab }

// EditorValue returns the editor text.
func (m Model) EditorValue() string { return m.editor.Value() }

// syncViews copies the session views into the widgets.
func (m *Model) syncViews() {
	m.tree.SetRoot(m.session.Outline())
	m.jsonView.SetContent(m.session.JSON())
	m.jsonView.GotoTop()

	m.statusBar.status = m.session.Status()
	m.statusBar.nodes = 0
	if root := m.session.Outline(); root != nil {
		m.statusBar.nodes = root.Count()
	}
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusEditor {
		m.editor.Focus()
	} else {
		m.editor.Blur()
	}
}

func (m *Model) showError(err error) {
	m.dialogs = append(m.dialogs, dialogsFor(m.session, err)...)
	m.statusBar.status = m.session.Status()
	m.statusBar.failed = !session.IsInformational(err)
}

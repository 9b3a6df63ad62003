package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/soyuz43/jsast-go/internal/session"
)

// DialogKind selects the look of a modal dialog.
type DialogKind int

const (
	DialogInfo DialogKind = iota
	DialogWarning
	DialogError
)

// Dialog is a modal message. Any key dismisses it.
type Dialog struct {
	Kind  DialogKind
	Title string
	Body  string
}

func infoDialog(d session.Dialog) Dialog {
	return Dialog{Kind: DialogInfo, Title: d.Title, Body: d.Body}
}

// dialogsFor turns a failed action into the dialogs to show, in order.
func dialogsFor(s *session.Session, err error) []Dialog {
	title := session.Kind(err)
	body := sentence(err.Error())
	switch {
	case session.IsInformational(err):
		return []Dialog{{Kind: DialogInfo, Title: title, Body: body}}
	case errors.Is(err, session.ErrMissingParser):
		return []Dialog{
			{Kind: DialogError, Title: title, Body: "No JavaScript parser library installed."},
			infoDialog(s.InstallHelp()),
		}
	default:
		return []Dialog{{Kind: DialogError, Title: title, Body: body}}
	}
}

// sentence capitalizes msg and ends it with a period.
func sentence(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return msg
	}
	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if !strings.HasSuffix(msg, ".") && !strings.HasSuffix(msg, "!") {
		msg += "."
	}
	return msg
}

func (d Dialog) View(maxWidth int) string {
	width := maxWidth - 8
	if width > 72 {
		width = 72
	}
	if width < 20 {
		width = 20
	}
	title := dialogTitleStyle.Foreground(dialogColor(d.Kind)).Render(d.Title)
	body := lipgloss.NewStyle().Width(width).Render(d.Body)
	hint := dimStyle.Render("Press any key to continue")
	content := lipgloss.JoinVertical(lipgloss.Left, title, body, "", hint)
	return dialogStyle.BorderForeground(dialogColor(d.Kind)).Render(content)
}

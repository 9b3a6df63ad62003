package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/soyuz43/jsast-go/internal/utils"
)

// StatusBar shows the backend, the last status message and key hints.
type StatusBar struct {
	backend string
	status  string
	failed  bool
	nodes   int
}

func (s StatusBar) View(width int) string {
	status := s.status
	switch {
	case s.failed:
		status = statusErrorStyle.Render(status)
	case s.nodes > 0:
		status = statusOKStyle.Render(status)
	}
	left := fmt.Sprintf("parser: %s | %s", s.backend, status)
	if s.nodes > 0 {
		left += fmt.Sprintf(" | %d nodes", s.nodes)
	}
	right := dimStyle.Render("F5 parse  ^O open  ^S save  ^L clear  F2 example  F4 view  F1 about  ^Q quit")

	padding := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		right = ""
		padding = width - 2 - lipgloss.Width(left)
		if padding < 0 {
			padding = 0
			left = utils.Truncate(left, width-2)
		}
	}
	return statusStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

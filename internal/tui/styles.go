package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("39")
	colorSecondary = lipgloss.Color("86")
	colorSuccess   = lipgloss.Color("42")
	colorWarning   = lipgloss.Color("220")
	colorError     = lipgloss.Color("196")
	colorDim       = lipgloss.Color("241")

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.
				BorderForeground(colorPrimary)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(colorPrimary)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("0")).
				Background(colorPrimary)

	markerStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(colorError)

	promptBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(1, 2)

	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				MarginBottom(1)
)

// dialogColor picks the border color for a dialog kind.
func dialogColor(kind DialogKind) lipgloss.Color {
	switch kind {
	case DialogWarning:
		return colorWarning
	case DialogError:
		return colorError
	default:
		return colorPrimary
	}
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	settledStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	enterStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	enterActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	leaveStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	leaveActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Strikethrough(true)
)

// styleFor maps a phase tag to the style rendering that stage of the
// lifecycle. The empty tag is the settled state.
func styleFor(phase, prefix string) lipgloss.Style {
	switch strings.TrimPrefix(phase, prefix+"-") {
	case "enter":
		return enterStyle
	case "enter-active":
		return enterActiveStyle
	case "leave":
		return leaveStyle
	case "leave-active":
		return leaveActiveStyle
	default:
		return settledStyle
	}
}

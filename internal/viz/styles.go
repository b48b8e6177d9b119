package viz

import "github.com/charmbracelet/lipgloss"

var (
	// HeadColor is bright white.
	HeadColor = lipgloss.Color("15")
	// BodyColor is the terminal's green.
	BodyColor = lipgloss.Color("2")

	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle   = lipgloss.NewStyle().Foreground(BodyColor).Padding(1, 0)
)

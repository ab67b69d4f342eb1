package cli

import "github.com/charmbracelet/lipgloss"

// Shared palette and styles for CLI output.
var (
	colorCyan  = lipgloss.Color("6")
	colorGreen = lipgloss.Color("2")
	colorRed   = lipgloss.Color("1")
	colorDim   = lipgloss.Color("240")

	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSuccess  = lipgloss.NewStyle().Foreground(colorGreen)
	styleError    = lipgloss.NewStyle().Foreground(colorRed)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleEditing  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
)

package sim

import "github.com/charmbracelet/lipgloss"

var (
	colorPanel = lipgloss.Color("#5FAFFF")
	colorBlue  = lipgloss.Color("#3A7BFF")
	colorRed   = lipgloss.Color("#FF4040")
	colorGreen = lipgloss.Color("#3AFF6A")
	colorDim   = lipgloss.Color("#555555")
)

var (
	styleScreen = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPanel).
			Foreground(lipgloss.Color("#E0F0FF"))

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPanel).
			Bold(true)

	styleBlue  = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	styleRed   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleGreen = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleDim   = lipgloss.NewStyle().Foreground(colorDim)
	styleError = lipgloss.NewStyle().Foreground(colorRed)

	styleHelp = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)
)

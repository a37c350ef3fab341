package dropdown

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSurface0 lipgloss.Color = "#313244"
	colorDisabled lipgloss.Color = "#6c7086"
)

var (
	triggerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Foreground(colorText).
			Padding(0, 1)
	triggerFocusedStyle = triggerStyle.BorderForeground(colorAccent)
	triggerDisabledStyle = triggerStyle.
				BorderForeground(colorSurface0).
				Foreground(colorDisabled)

	placeholderStyle = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle       = lipgloss.NewStyle().Foreground(colorText)
	indicatorStyle   = lipgloss.NewStyle().Foreground(colorMuted)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	optionStyle         = lipgloss.NewStyle().Foreground(colorText)
	optionSelectedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	optionCursorStyle   = lipgloss.NewStyle().Background(colorSurface0)
)

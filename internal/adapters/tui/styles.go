package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen11/console-settings/internal/app/panel"
)

const (
	colorText    lipgloss.Color = "#cdd6f4"
	colorSubtext lipgloss.Color = "#a6adc8"
	colorOverlay lipgloss.Color = "#6c7086"
	colorFocus   lipgloss.Color = "#b4befe"
	colorBlue    lipgloss.Color = "#89b4fa"
	colorGreen   lipgloss.Color = "#a6e3a1"
	colorRed     lipgloss.Color = "#f38ba8"
	colorYellow  lipgloss.Color = "#f9e2af"
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorOverlay).
			Padding(0, 1)
	focusedPaneStyle = paneStyle.BorderForeground(colorFocus)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	helpStyle     = lipgloss.NewStyle().Foreground(colorSubtext)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorOverlay)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	loadingStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	primaryStyle  = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	disabledStyle = lipgloss.NewStyle().Foreground(colorOverlay).Strikethrough(true)
)

func bannerStyle(tone panel.Tone) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).MarginTop(1)
	switch tone {
	case panel.ToneSuccess:
		return base.Foreground(colorGreen)
	case panel.ToneDanger:
		return base.Foreground(colorRed).Bold(true)
	default:
		return base.Foreground(colorBlue)
	}
}

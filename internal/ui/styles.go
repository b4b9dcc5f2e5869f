package ui

import "github.com/charmbracelet/lipgloss"

// Fado colour palette 🎶
var (
	// Stage colours (dark to bright)
	candleAmber = lipgloss.Color("#FFB454") // Candlelight amber
	guitarGold  = lipgloss.Color("#D4A017") // Guitarra brass
	wineRed     = lipgloss.Color("#9B2D43") // Port wine
	azulejoBlue = lipgloss.Color("#2D6A9B") // Tile blue

	// Accent colours
	mistGray = lipgloss.Color("#8A8FA3") // Lisbon mist
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(candleAmber)

	faintStyle = lipgloss.NewStyle().
			Foreground(mistGray)

	stateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(guitarGold)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(wineRed)

	waveStyle = lipgloss.NewStyle().
			Foreground(candleAmber)

	spectrumStyle = lipgloss.NewStyle().
			Foreground(azulejoBlue)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(candleAmber)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(wineRed).
			Padding(1, 2)

	browserPanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(azulejoBlue).
				Padding(1, 2)
)

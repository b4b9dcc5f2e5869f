package cli

import "github.com/charmbracelet/lipgloss"

// Fado colour palette 🎶
// Shared theme colours for consistent branding across CLI and TUI
var (
	// Stage colours (dark to bright)
	CandleAmber = lipgloss.Color("#FFB454") // Candlelight amber
	GuitarGold  = lipgloss.Color("#D4A017") // Guitarra brass
	WineRed     = lipgloss.Color("#9B2D43") // Port wine
	AzulejoBlue = lipgloss.Color("#2D6A9B") // Tile blue

	// Accent colours
	MistGray = lipgloss.Color("#8A8FA3") // Lisbon mist
)

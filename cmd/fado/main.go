package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/2pipopolam/fado/internal/cli"
	"github.com/2pipopolam/fado/internal/config"
	"github.com/2pipopolam/fado/internal/host"
	"github.com/2pipopolam/fado/internal/player"
	"github.com/2pipopolam/fado/internal/playlist"
	"github.com/2pipopolam/fado/internal/ui"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	Paths   []string `arg:"" name:"paths" help:"Audio files or directories to queue" optional:"" type:"path"`
	Browse  bool     `help:"Open the file browser on startup"`
	LogFile string   `help:"Write the log here instead of the default location" type:"path"`
	Debug   bool     `help:"Log debug detail"`
	Version bool     `help:"Show version information"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("fado"),
		kong.Description("Play your MP3s in the terminal with live amplitude and frequency visualisers."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	setupLogging()

	// No device means no player; nothing to fall back to.
	h, err := host.Open()
	if err != nil {
		cli.PrintError(fmt.Sprintf("audio host unavailable: %v", err))
		os.Exit(1)
	}
	defer h.Close()

	eng := player.New(h)
	defer eng.Close()

	list := playlist.Load(CLI.Paths)
	log.Info().Int("tracks", list.Len()).Msg("playlist ready")

	browse := CLI.Browse || list.Empty()
	startDir := "."
	if len(CLI.Paths) > 0 {
		if info, err := os.Stat(CLI.Paths[0]); err == nil {
			if info.IsDir() {
				startDir = CLI.Paths[0]
			} else {
				startDir = filepath.Dir(CLI.Paths[0])
			}
		}
	}

	prog := tea.NewProgram(ui.New(eng, list, browse, startDir, version), tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		cli.PrintError(fmt.Sprintf("running UI: %v", err))
		os.Exit(1)
	}
}

// setupLogging sends the log to a file; stdout belongs to the TUI.
// When no log file can be opened, logging is disabled rather than
// letting it corrupt the screen.
func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	path := CLI.LogFile
	if path == "" {
		path = config.DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
}

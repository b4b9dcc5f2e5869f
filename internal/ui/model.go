// Package ui is the Bubbletea front end: one player screen with live
// visualizers and a file browser overlay.
package ui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2pipopolam/fado/internal/audio"
	"github.com/2pipopolam/fado/internal/config"
	"github.com/2pipopolam/fado/internal/host"
	"github.com/2pipopolam/fado/internal/player"
	"github.com/2pipopolam/fado/internal/playlist"
)

// tickMsg drives the visualizer refresh.
type tickMsg time.Time

// trackLoadedMsg reports the outcome of an asynchronous load.
type trackLoadedMsg struct {
	path string
	err  error
}

// Model is the Bubbletea model for the whole player screen.
type Model struct {
	player *player.Player
	list   *playlist.Playlist

	progressBar progress.Model
	picker      filepicker.Model
	help        help.Model
	keys        keyMap

	width    int
	height   int
	browsing bool
	spectrum bool
	status   string
	version  string

	// levels carries spectrum bars across ticks so they fall smoothly
	// instead of flickering.
	levels []float64
}

// New assembles the player screen. When browse is true the file
// browser opens first, rooted at startDir.
func New(p *player.Player, list *playlist.Playlist, browse bool, startDir, version string) Model {
	bar := progress.New(
		progress.WithGradient(string(wineRed), string(candleAmber)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	picker := filepicker.New()
	picker.AllowedTypes = config.AudioExtensions()
	picker.CurrentDirectory = startDir

	return Model{
		player:      p,
		list:        list,
		progressBar: bar,
		picker:      picker,
		help:        help.New(),
		keys:        defaultKeyMap(),
		browsing:    browse,
		version:     version,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Duration(config.TickMillis)*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadCmd decodes and starts a track off the UI goroutine; decoding a
// long file must not freeze the screen.
func (m Model) loadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return trackLoadedMsg{path: path, err: m.player.LoadAndPlay(path)}
	}
}

// Init starts the visualizer tick, the picker when browsing, and
// playback of the playlist's selected track if there is one.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick()}
	if m.browsing {
		cmds = append(cmds, m.picker.Init())
	}
	if e, ok := m.list.Current(); ok {
		cmds = append(cmds, m.loadCmd(e.Path))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = min(msg.Width-26, 60)
		m.picker.Height = max(msg.Height-9, 3)
		return m, nil

	case tickMsg:
		m.levels = decayLevels(m.levels, m.player.Spectrum(config.SpectrumBars))
		return m, tick()

	case trackLoadedMsg:
		if msg.err != nil {
			m.status = playbackError(msg.err)
		} else {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.browsing {
			return m.updateBrowser(msg)
		}
		return m.updatePlayer(msg)
	}

	// The picker's own messages (directory reads) arrive untyped here.
	if m.browsing {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePlayer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		if err := m.player.Toggle(); err != nil {
			m.status = playbackError(err)
		} else {
			m.status = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.Play):
		if e, ok := m.list.Current(); ok {
			m.status = ""
			return m, m.loadCmd(e.Path)
		}
		return m, nil

	case key.Matches(msg, m.keys.Stop):
		if err := m.player.Stop(); err != nil {
			m.status = playbackError(err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if e, ok := m.list.Next(); ok {
			m.status = ""
			return m, m.loadCmd(e.Path)
		}
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		if e, ok := m.list.Prev(); ok {
			m.status = ""
			return m, m.loadCmd(e.Path)
		}
		return m, nil

	case key.Matches(msg, m.keys.Shuffle):
		m.list.Shuffle()
		return m, nil

	case key.Matches(msg, m.keys.Visual):
		m.spectrum = !m.spectrum
		return m, nil

	case key.Matches(msg, m.keys.ClearCache):
		m.player.ClearCache()
		m.status = "cache cleared"
		return m, nil

	case key.Matches(msg, m.keys.Browse):
		m.browsing = true
		return m, m.picker.Init()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func (m Model) updateBrowser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.browsing = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.browsing = false
		m.list.Add(path)
		m.list.Select(m.list.Len() - 1)
		return m, tea.Batch(cmd, m.loadCmd(path))
	}
	return m, cmd
}

// decayLevels merges a fresh spectrum reading with the falling
// remainder of the previous one: each bar shows whichever is higher,
// the new level or the old one scaled by the decay factor.
func decayLevels(prev, next []float64) []float64 {
	if next == nil {
		if prev == nil {
			return nil
		}
		next = make([]float64, len(prev))
	}
	for i := range next {
		if i >= len(prev) {
			break
		}
		if fallen := prev[i] * config.SpectrumDecay; fallen > next[i] {
			next[i] = fallen
		}
	}
	return next
}

// playbackError maps engine errors onto short status-line text.
func playbackError(err error) string {
	switch {
	case errors.Is(err, player.ErrNoAudioLoaded):
		return "nothing loaded, pick a track first"
	case errors.Is(err, audio.ErrUnsupported):
		return "unsupported file format"
	case errors.Is(err, audio.ErrFileAccess):
		return "cannot read file"
	case errors.Is(err, audio.ErrResourceExhausted):
		return "track too large to buffer"
	case errors.Is(err, audio.ErrDecode):
		return "file holds no decodable audio"
	case errors.Is(err, host.ErrStreamOpen):
		return "audio device refused the stream"
	default:
		return err.Error()
	}
}

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/2pipopolam/fado/internal/player"
)

// waveRows is the bar-grid height of the visualizer panel.
const waveRows = 6

// playlistRows caps how many playlist lines show at once.
const playlistRows = 7

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "starting..."
	}
	if m.browsing {
		return m.browserView()
	}
	return m.playerView()
}

func (m Model) playerView() string {
	var s strings.Builder
	inner := min(m.width-6, 76)
	if inner < 20 {
		inner = 20
	}

	s.WriteString(titleStyle.Render("Fado 🎶"))
	s.WriteString("  ")
	s.WriteString(faintStyle.Render(m.version))
	s.WriteString("\n\n")

	// Track line with state badge.
	name := "no track loaded"
	if e, ok := m.list.Current(); ok {
		name = e.Display()
	}
	s.WriteString(truncate(name, inner-12))
	s.WriteString("  ")
	s.WriteString(stateStyle.Render("[" + m.player.State().String() + "]"))
	if n := m.player.CacheLen(); n > 0 {
		s.WriteString(faintStyle.Render(fmt.Sprintf("  cache %d", n)))
	}
	s.WriteString("\n\n")

	// Transport: progress bar and position.
	var percent float64
	pos, dur := m.player.Position(), m.player.Duration()
	if dur > 0 {
		percent = float64(pos) / float64(dur)
	}
	s.WriteString(m.progressBar.ViewAs(percent))
	s.WriteString(faintStyle.Render(fmt.Sprintf("  %s / %s", formatTime(pos), formatTime(dur))))
	s.WriteString("\n\n")

	// Visualizer panel: amplitude around the cursor, or frequency bars
	// when v has flipped the mode.
	if m.spectrum {
		if len(m.levels) > 0 {
			s.WriteString(spectrumStyle.Render(levelGrid(m.levels, inner, waveRows)))
			s.WriteString("\n")
		}
	} else if heights := m.player.Waveform(inner, waveRows); heights != nil {
		s.WriteString(waveStyle.Render(waveGrid(heights, waveRows)))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.playlistView(inner))
	s.WriteString("\n\n")

	status := m.status
	if m.player.State() == player.StatePlaying && !m.player.IsPlaying() {
		status = "playback aborted, audio device lost"
	}
	if status != "" {
		s.WriteString(errorStyle.Render(status))
	} else {
		s.WriteString(m.help.View(m.keys))
	}

	return panelStyle.Render(s.String())
}

func (m Model) browserView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Fado 🎶"))
	s.WriteString("\n")
	s.WriteString(faintStyle.Render("Pick a track"))
	s.WriteString("\n\n")
	s.WriteString(m.picker.View())
	s.WriteString("\n")
	s.WriteString(faintStyle.Render("enter: play  │  esc: back  │  q: quit"))

	return browserPanelStyle.Render(s.String())
}

func (m Model) playlistView(width int) string {
	entries := m.list.Entries()
	if len(entries) == 0 {
		return faintStyle.Render("playlist empty, press b to browse")
	}

	start := 0
	if len(entries) > playlistRows {
		start = m.list.Index() - playlistRows/2
		if start > len(entries)-playlistRows {
			start = len(entries) - playlistRows
		}
		if start < 0 {
			start = 0
		}
	}
	end := min(start+playlistRows, len(entries))

	var b strings.Builder
	b.WriteString(faintStyle.Render(fmt.Sprintf("Playlist (%d/%d)", m.list.Index()+1, len(entries))))
	b.WriteByte('\n')
	for i := start; i < end; i++ {
		line := truncate(entries[i].Display(), width-4)
		if i == m.list.Index() {
			b.WriteString(selectedStyle.Render("▶ " + line))
		} else {
			b.WriteString("  " + line)
		}
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// waveGrid draws bar heights as a rows-deep block grid, top row first.
func waveGrid(heights []int, rows int) string {
	var b strings.Builder
	for row := rows; row >= 1; row-- {
		for _, h := range heights {
			if h >= row {
				b.WriteRune('█')
			} else {
				b.WriteRune(' ')
			}
		}
		if row > 1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// levelGrid draws normalized levels as a rows-deep bar field, full
// blocks capped with an eighth-block remainder, striding when there
// are more levels than columns. The bottom row keeps a ▁ baseline so
// silence still anchors the panel.
func levelGrid(levels []float64, width, rows int) string {
	if len(levels) == 0 || width <= 0 || rows <= 0 {
		return ""
	}
	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	stride := len(levels) / width
	if stride == 0 {
		stride = 1
	}

	cols := make([]int, 0, width)
	for i := 0; i < len(levels) && len(cols) < width; i += stride {
		eighths := int(levels[i] * float64(rows*8))
		if eighths > rows*8 {
			eighths = rows * 8
		}
		cols = append(cols, eighths)
	}

	var b strings.Builder
	for row := rows; row >= 1; row-- {
		for _, eighths := range cols {
			filled := eighths - (row-1)*8
			switch {
			case filled >= 8:
				b.WriteRune('█')
			case filled > 0:
				b.WriteRune(blocks[filled-1])
			case row == 1:
				b.WriteRune('▁')
			default:
				b.WriteRune(' ')
			}
		}
		if row > 1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// truncate cuts a line to max cells, ellipsizing the tail.
func truncate(s string, max int) string {
	if max <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// formatTime renders a duration as m:ss for the transport line.
func formatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

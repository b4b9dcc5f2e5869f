package player

import "github.com/2pipopolam/fado/internal/config"

// Waveform samples amplitude around the playback cursor and returns
// one bar height per column, each in [0, maxHeight]. It reads the
// descriptor with a single atomic load and mutates nothing, so a
// cursor moving underneath just means a slightly stale picture.
// Returns nil when no track is bound or the window cannot be split
// into columns.
func (p *Player) Waveform(columns, maxHeight int) []int {
	if columns <= 0 || maxHeight <= 0 {
		return nil
	}
	buf := p.active.Load()
	if buf == nil || len(buf.samples) == 0 {
		return nil
	}

	samples := buf.samples
	total := int64(len(samples))
	cursor := buf.cursor.Load()

	start := cursor - config.WaveWindow/2
	if start < 0 {
		start = 0
	}
	end := start + config.WaveWindow
	if end > total {
		end = total
	}

	perColumn := config.WaveWindow / columns
	if perColumn == 0 {
		return nil
	}

	heights := make([]int, columns)
	for col := range heights {
		colStart := start + int64(col*perColumn)
		colEnd := colStart + int64(perColumn)
		if colEnd > end {
			colEnd = end
		}

		var sum float64
		var count int
		for i := colStart; i+1 < colEnd; i += 2 {
			l, r := samples[i], samples[i+1]
			if l < 0 {
				l = -l
			}
			if r < 0 {
				r = -r
			}
			sum += float64(l+r) / 2
			count++
		}
		if count == 0 {
			continue
		}
		h := int(sum / float64(count) * float64(maxHeight) * config.WaveGain)
		if h > maxHeight {
			h = maxHeight
		}
		heights[col] = h
	}
	return heights
}

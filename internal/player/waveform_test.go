package player

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/2pipopolam/fado/internal/audio"
	"github.com/2pipopolam/fado/internal/config"
)

// loadedPlayer binds tr and returns the player ready for sampling.
func loadedPlayer(t *testing.T, tr *audio.Track) *Player {
	t.Helper()
	p := New(&fakeHost{})
	p.decode = func(string) (*audio.Track, error) {
		return tr.Clone(), nil
	}
	path := filepath.Join(t.TempDir(), "track.wav")
	if err := os.WriteFile(path, []byte("placeholder"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := p.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p
}

// flatTrack returns a stereo track of n interleaved samples all set to
// v.
func flatTrack(n int, v float32) *audio.Track {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = v
	}
	return &audio.Track{Samples: samples, SampleRate: 44100, Channels: 2}
}

// TestWaveformSilence checks that a silent track renders as zero-height
// bars, not an empty slice.
func TestWaveformSilence(t *testing.T) {
	p := loadedPlayer(t, flatTrack(config.WaveWindow*2, 0))

	heights := p.Waveform(32, 10)
	if len(heights) != 32 {
		t.Fatalf("len(heights) = %d, want 32", len(heights))
	}
	for i, h := range heights {
		if h != 0 {
			t.Errorf("heights[%d] = %d, want 0", i, h)
		}
	}
}

// TestWaveformColumnMeans pins the per-column arithmetic: amplitudes
// are rectified, averaged per column, scaled by the gain and the max
// height, and truncated to an int.
func TestWaveformColumnMeans(t *testing.T) {
	samples := make([]float32, config.WaveWindow)
	half := config.WaveWindow / 2
	for i := 0; i < half; i++ {
		v := float32(0.2)
		if i%2 == 1 {
			v = -v // rectification must cancel the sign
		}
		samples[i] = v
	}
	for i := half; i < len(samples); i++ {
		samples[i] = -0.25
	}
	tr := &audio.Track{Samples: samples, SampleRate: 44100, Channels: 2}
	p := loadedPlayer(t, tr)

	heights := p.Waveform(2, 10)
	if len(heights) != 2 {
		t.Fatalf("len(heights) = %d, want 2", len(heights))
	}
	// 0.2 * 10 * 3 = 6; 0.25 * 10 * 3 = 7.5, truncated to 7.
	if heights[0] != 6 {
		t.Errorf("heights[0] = %d, want 6", heights[0])
	}
	if heights[1] != 7 {
		t.Errorf("heights[1] = %d, want 7", heights[1])
	}
}

// TestWaveformClampsToMaxHeight verifies loud audio cannot push a bar
// past maxHeight.
func TestWaveformClampsToMaxHeight(t *testing.T) {
	p := loadedPlayer(t, flatTrack(config.WaveWindow, 0.9))

	for _, h := range p.Waveform(16, 8) {
		if h != 8 {
			t.Errorf("height = %d, want clamp at 8", h)
		}
	}
}

// TestWaveformWindowFollowsCursor moves the cursor into a loud region
// surrounded by silence and checks the window picks it up.
func TestWaveformWindowFollowsCursor(t *testing.T) {
	samples := make([]float32, config.WaveWindow*3)
	lo := int64(config.WaveWindow*3/2) - config.WaveWindow/2
	hi := lo + config.WaveWindow
	for i := lo; i < hi; i++ {
		samples[i] = 0.2
	}
	tr := &audio.Track{Samples: samples, SampleRate: 44100, Channels: 2}
	p := loadedPlayer(t, tr)

	// Cursor at the start: the window sees only silence.
	for i, h := range p.Waveform(8, 10) {
		if h != 0 {
			t.Errorf("heights[%d] = %d at track start, want 0", i, h)
		}
	}

	// Cursor mid-track: the window covers exactly the loud region.
	p.active.Load().cursor.Store(int64(config.WaveWindow * 3 / 2))
	for i, h := range p.Waveform(8, 10) {
		if h != 6 {
			t.Errorf("heights[%d] = %d at loud region, want 6", i, h)
		}
	}
}

// TestWaveformDegenerateInputs checks the no-output conditions: no
// track, zero columns, and more columns than window samples.
func TestWaveformDegenerateInputs(t *testing.T) {
	if got := New(&fakeHost{}).Waveform(32, 10); got != nil {
		t.Errorf("Waveform with no track = %v, want nil", got)
	}

	p := loadedPlayer(t, flatTrack(config.WaveWindow, 0.5))
	if got := p.Waveform(0, 10); got != nil {
		t.Errorf("Waveform(0, 10) = %v, want nil", got)
	}
	if got := p.Waveform(32, 0); got != nil {
		t.Errorf("Waveform(32, 0) = %v, want nil", got)
	}
	if got := p.Waveform(config.WaveWindow+1, 10); got != nil {
		t.Errorf("Waveform with samples-per-column 0 = %v, want nil", got)
	}
}

// TestWaveformUnevenColumns checks a column count that does not divide
// the window: every bar must still land inside [0, maxHeight].
func TestWaveformUnevenColumns(t *testing.T) {
	p := loadedPlayer(t, flatTrack(config.WaveWindow/2, 0.3))

	heights := p.Waveform(13, 10)
	if len(heights) != 13 {
		t.Fatalf("len(heights) = %d, want 13", len(heights))
	}
	for i, h := range heights {
		if h < 0 || h > 10 {
			t.Errorf("heights[%d] = %d, out of [0, 10]", i, h)
		}
	}
}

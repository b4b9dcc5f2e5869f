package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Playback settings
const (
	// FramesPerBuffer is the output stream period size in frames.
	FramesPerBuffer = 1024

	// MaxTrackSamples caps a decoded track at 2^30 interleaved samples
	// (4 GiB of float32, roughly three hours of 48 kHz stereo). Decodes
	// that would exceed it fail instead of exhausting memory.
	MaxTrackSamples = 1 << 30

	// PCMExpansion estimates decoded samples per compressed byte when
	// pre-sizing the pipeline's output buffer. A 128 kbps stereo MP3
	// expands to ~5.5 samples/byte; 12 covers low-bitrate mono sources.
	// Performance hint only.
	PCMExpansion = 12
)

// Visualizer settings
const (
	WaveWindow = 4096 // interleaved samples inspected around the cursor
	WaveGain   = 3.0  // empirical visual-amplitude boost
	TickMillis = 33   // UI refresh period (~30 fps)
)

// Spectrum settings
const (
	FFTSize       = 2048
	SpectrumBars  = 48
	SpectrumScale = 0.0075 // base scaling for raw FFT magnitudes
	SpectrumDecay = 0.82   // per-tick bar fall factor
	NoiseGate     = 0.01
)

// audioExtensions lists the file extensions the decoders accept.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
}

// IsAudioPath reports whether path has a decodable audio extension.
func IsAudioPath(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// AudioExtensions returns the accepted extensions, dot included.
func AudioExtensions() []string {
	exts := make([]string, 0, len(audioExtensions))
	for ext := range audioExtensions {
		exts = append(exts, ext)
	}
	return exts
}

// DefaultLogPath places the log under $XDG_STATE_HOME/fado (or
// ~/.local/state/fado), falling back to the temp dir when no home
// directory is resolvable. Stdout belongs to the TUI, so the log
// always goes to a file.
func DefaultLogPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "state")
		}
	}
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "fado", "fado.log")
}

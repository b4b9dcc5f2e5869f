package player

import (
	"math"

	"github.com/argusdusty/gofft"

	"github.com/2pipopolam/fado/internal/config"
)

// Spectrum computes frequency-bar levels in [0, 1] from the audio just
// behind the cursor. It runs on the UI tick, never on the audio
// thread, so allocating here is fine. Returns nil when no track is
// bound or bars is not positive.
func (p *Player) Spectrum(bars int) []float64 {
	if bars <= 0 {
		return nil
	}
	buf := p.active.Load()
	if buf == nil || len(buf.samples) == 0 {
		return nil
	}

	samples := buf.samples
	cursor := buf.cursor.Load()

	// Mono-mix the FFTSize frames ending at the cursor, zero-padding
	// near the start of the track.
	window := make([]float64, config.FFTSize)
	idx := cursor - int64(config.FFTSize)*2
	for i := range window {
		if idx >= 0 && idx+1 < int64(len(samples)) {
			window[i] = float64(samples[idx]+samples[idx+1]) / 2
		}
		idx += 2
	}

	applyHann(window)
	coeffs := gofft.Float64ToComplex128Array(window)
	if err := gofft.FFT(coeffs); err != nil {
		return nil
	}

	out := make([]float64, bars)
	binBars(coeffs, out)
	return out
}

// applyHann applies a Hann window in place to reduce spectral leakage.
func applyHann(data []float64) {
	n := len(data)
	if n < 2 {
		return
	}
	for i := range data {
		data[i] *= 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
}

// binBars averages FFT magnitudes into len(out) bars over the lower
// three quarters of the positive-frequency range, where music actually
// lives, then log-scales each bar to roughly [0, 1] behind a noise
// gate.
func binBars(coeffs []complex128, out []float64) {
	maxBin := len(coeffs) / 2 * 3 / 4
	perBar := maxBin / len(out)
	if perBar == 0 {
		return
	}
	for bar := range out {
		binStart := bar * perBar
		binEnd := binStart + perBar
		if binEnd > maxBin {
			binEnd = maxBin
		}
		var sum float64
		for i := binStart; i < binEnd; i++ {
			sum += math.Hypot(real(coeffs[i]), imag(coeffs[i]))
		}
		scaled := sum / float64(perBar) * config.SpectrumScale
		if scaled < config.NoiseGate {
			continue
		}
		v := math.Log10(1 + scaled*9)
		if v > 1 {
			v = 1
		}
		out[bar] = v
	}
}

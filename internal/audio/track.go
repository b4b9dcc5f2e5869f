package audio

import "time"

// Track is one fully decoded audio file. Samples are always stored
// stereo-interleaved [L0,R0,L1,R1,...] whatever the source layout;
// Channels records the source channel count (1 for mono input even
// though storage is duplicated into pairs). A Track is immutable once
// produced; components that need a private buffer take one with Clone.
type Track struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// SampleCount returns the interleaved sample count. Always even.
func (t *Track) SampleCount() int {
	return len(t.Samples)
}

// Duration derives the playing time from the stereo pair count.
func (t *Track) Duration() time.Duration {
	if t.SampleRate <= 0 {
		return 0
	}
	frames := len(t.Samples) / 2
	return time.Duration(frames) * time.Second / time.Duration(t.SampleRate)
}

// Clone returns a deep copy sharing no storage with the receiver.
func (t *Track) Clone() *Track {
	c := *t
	c.Samples = make([]float32, len(t.Samples))
	copy(c.Samples, t.Samples)
	return &c
}

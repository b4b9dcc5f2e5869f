// Package host abstracts the audio output device: the playback engine
// is handed a Host explicitly, so tests drive it with a fake while the
// binary wires in PortAudio.
package host

import "errors"

var (
	// ErrHostInit means the audio host could not initialize. Fatal:
	// no playback is possible for the process lifetime.
	ErrHostInit = errors.New("host: audio host initialization failed")

	// ErrStreamOpen means the device refused a stream (unavailable or
	// format unsupported). Recoverable; surfaced to the Play caller.
	ErrStreamOpen = errors.New("host: output stream open failed")
)

// Callback fills one period of interleaved float32 output; the frame
// count is len(out) divided by the channel count. It runs on the
// host's real-time thread and must never block, allocate, or take a
// contended lock. Returning false aborts the stream: the host emits
// silence from then on and the control side notices through its own
// queries.
type Callback func(out []float32) bool

// Stream is one open output stream.
type Stream interface {
	Start() error
	Stop() error
	Close() error
}

// Host opens output streams on the default device. Close releases the
// process-wide host state and must be called exactly once, after all
// streams are closed.
type Host interface {
	OpenStream(sampleRate, channels, framesPerBuffer int, cb Callback) (Stream, error)
	Close() error
}

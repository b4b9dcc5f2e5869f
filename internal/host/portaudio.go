package host

import (
	"fmt"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
)

type portAudioHost struct{}

// Open initializes PortAudio and returns the device host. Failures are
// wrapped in ErrHostInit so callers can treat them as fatal.
func Open() (Host, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHostInit, err)
	}
	return &portAudioHost{}, nil
}

// OpenStream opens an output-only stream on the default device.
// PortAudio keeps invoking the callback until the stream is stopped
// from the control side, so an abort (cb returning false) latches: the
// wrapper writes silence for every later period.
func (h *portAudioHost) OpenStream(sampleRate, channels, framesPerBuffer int, cb Callback) (Stream, error) {
	var dead atomic.Bool
	s, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), framesPerBuffer,
		func(out []float32) {
			if dead.Load() {
				zero(out)
				return
			}
			if !cb(out) {
				dead.Store(true)
				zero(out)
			}
		})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStreamOpen, err)
	}
	return &portAudioStream{s: s}, nil
}

func (h *portAudioHost) Close() error {
	return portaudio.Terminate()
}

func zero(out []float32) {
	for i := range out {
		out[i] = 0
	}
}

type portAudioStream struct {
	s *portaudio.Stream
}

func (s *portAudioStream) Start() error { return s.s.Start() }
func (s *portAudioStream) Stop() error  { return s.s.Stop() }
func (s *portAudioStream) Close() error { return s.s.Close() }

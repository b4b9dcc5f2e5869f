package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/2pipopolam/fado/internal/config"
)

// DecodeVorbis decodes an in-memory Ogg Vorbis file into a Track. The
// reader already yields interleaved float32 in [-1, 1], so no integer
// scaling applies.
func DecodeVorbis(data []byte) (*Track, error) {
	r, err := oggvorbis.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: vorbis stream: %v", ErrDecode, err)
	}

	channels := r.Channels()
	rate := r.SampleRate()
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupported, channels)
	}

	outEst := int(r.Length()) * 2
	if outEst > config.MaxTrackSamples {
		return nil, fmt.Errorf("%w: over %d samples", ErrResourceExhausted, config.MaxTrackSamples)
	}
	if outEst < 0 {
		outEst = 0
	}

	samples := make([]float32, 0, outEst)
	buf := make([]float32, 4096*channels)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			if len(samples)+2*(n/channels) > config.MaxTrackSamples {
				return nil, fmt.Errorf("%w: over %d samples", ErrResourceExhausted, config.MaxTrackSamples)
			}
			if channels == 1 {
				for i := 0; i < n; i++ {
					samples = append(samples, buf[i], buf[i])
				}
			} else {
				samples = append(samples, buf[:n]...)
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			if len(samples) == 0 {
				return nil, fmt.Errorf("%w: vorbis read: %v", ErrDecode, err)
			}
			break
		}
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: empty vorbis stream", ErrDecode)
	}
	return &Track{Samples: samples, SampleRate: rate, Channels: channels}, nil
}

package audio

import (
	"bytes"
	"fmt"
	"io"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/2pipopolam/fado/internal/config"
)

// DecodeWAV decodes an in-memory WAV file into a Track.
func DecodeWAV(data []byte) (*Track, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid wav file", ErrDecode)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: seek to pcm data: %v", ErrDecode, err)
	}

	channels := int(dec.NumChans)
	rate := int(dec.SampleRate)
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupported, channels)
	}

	maxVal := float32(gaudio.IntMaxSignedValue(int(dec.BitDepth)))
	if maxVal == 0 {
		return nil, fmt.Errorf("%w: bit depth %d", ErrDecode, dec.BitDepth)
	}

	// PCMLen sizes the output exactly from the data chunk header.
	totalInts := int(dec.PCMLen()) / (int(dec.BitDepth) / 8)
	outEst := totalInts
	if channels == 1 {
		outEst = 2 * totalInts
	}
	if outEst > config.MaxTrackSamples {
		return nil, fmt.Errorf("%w: over %d samples", ErrResourceExhausted, config.MaxTrackSamples)
	}
	if outEst < 0 {
		outEst = 0
	}

	samples := make([]float32, 0, outEst)
	buf := &gaudio.IntBuffer{
		Data:   make([]int, 4096*channels),
		Format: &gaudio.Format{NumChannels: channels, SampleRate: rate},
	}

	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil && err != io.EOF {
			if len(samples) == 0 {
				return nil, fmt.Errorf("%w: read pcm: %v", ErrDecode, err)
			}
			break
		}
		if n == 0 {
			break
		}
		if len(samples)+2*(n/channels) > config.MaxTrackSamples {
			return nil, fmt.Errorf("%w: over %d samples", ErrResourceExhausted, config.MaxTrackSamples)
		}
		if channels == 1 {
			for i := 0; i < n; i++ {
				v := float32(buf.Data[i]) / maxVal
				samples = append(samples, v, v)
			}
		} else {
			for i := 0; i+1 < n; i += 2 {
				samples = append(samples, float32(buf.Data[i])/maxVal, float32(buf.Data[i+1])/maxVal)
			}
		}
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: empty wav data chunk", ErrDecode)
	}
	return &Track{Samples: samples, SampleRate: rate, Channels: channels}, nil
}

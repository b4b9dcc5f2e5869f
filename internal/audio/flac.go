package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/2pipopolam/fado/internal/config"
)

// DecodeFLAC decodes an in-memory FLAC file into a Track. Frames are
// parsed one at a time; subframe samples arrive with inter-channel
// decorrelation already undone.
func DecodeFLAC(data []byte) (*Track, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: flac stream: %v", ErrDecode, err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	rate := int(info.SampleRate)
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupported, channels)
	}

	// NSamples may be zero for streams written without a length; the
	// per-frame guard below still enforces the ceiling.
	outEst := int(info.NSamples) * 2
	if outEst > config.MaxTrackSamples {
		return nil, fmt.Errorf("%w: over %d samples", ErrResourceExhausted, config.MaxTrackSamples)
	}
	samples := make([]float32, 0, outEst)

	for {
		fr, err := stream.ParseNext()
		if err != nil {
			if err == io.EOF {
				break
			}
			if len(samples) == 0 {
				return nil, fmt.Errorf("%w: flac frame: %v", ErrDecode, err)
			}
			break
		}

		scale := float32(int64(1) << (fr.BitsPerSample - 1))
		n := len(fr.Subframes[0].Samples)
		if len(samples)+2*n > config.MaxTrackSamples {
			return nil, fmt.Errorf("%w: over %d samples", ErrResourceExhausted, config.MaxTrackSamples)
		}
		if channels == 1 {
			for i := 0; i < n; i++ {
				v := float32(fr.Subframes[0].Samples[i]) / scale
				samples = append(samples, v, v)
			}
		} else {
			left := fr.Subframes[0].Samples
			right := fr.Subframes[1].Samples
			for i := 0; i < n && i < len(right); i++ {
				samples = append(samples, float32(left[i])/scale, float32(right[i])/scale)
			}
		}
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no flac frames", ErrDecode)
	}
	return &Track{Samples: samples, SampleRate: rate, Channels: channels}, nil
}

package audio

import (
	"fmt"

	"github.com/2pipopolam/fado/internal/config"
)

// framePCM sizes the per-call output buffer at one MPEG1 frame of
// stereo samples.
const framePCM = 2304

// DecodeMP3 runs the frame decoder over a whole compressed stream and
// assembles the Track.
func DecodeMP3(data []byte) (*Track, error) {
	dec, err := NewMP3FrameDecoder(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return decodeFrames(dec, len(data)*config.PCMExpansion, config.MaxTrackSamples)
}

// decodeFrames drives a FrameDecoder until it reports a zero-byte
// call, accumulating stereo-interleaved float32 samples. The first
// frame that carries a channel count fixes the track format; later
// frames are assumed consistent. Mono frames are duplicated into both
// output channels. sizeHint pre-sizes the output and is a performance
// hint only; maxSamples is the hard ceiling the output may not cross.
func decodeFrames(dec FrameDecoder, sizeHint, maxSamples int) (*Track, error) {
	if sizeHint < 2*framePCM {
		sizeHint = 2 * framePCM
	}
	if sizeHint > maxSamples {
		sizeHint = maxSamples
	}

	track := &Track{}
	samples := make([]float32, 0, sizeHint)
	pcm := make([]int16, framePCM)

	for {
		n, info, err := dec.DecodeFrame(pcm)
		if err != nil {
			if len(samples) == 0 {
				return nil, fmt.Errorf("%w: %v", ErrDecode, err)
			}
			// A damaged tail should not discard the playable head.
			break
		}
		if info.Channels > 0 && track.Channels == 0 {
			track.Channels = info.Channels
			track.SampleRate = info.SampleRate
		}
		if n > 0 && info.Channels > 0 {
			if n*info.Channels > len(pcm) {
				n = len(pcm) / info.Channels
			}
			if len(samples)+2*n > maxSamples {
				return nil, fmt.Errorf("%w: over %d samples", ErrResourceExhausted, maxSamples)
			}
			if info.Channels == 1 {
				for i := 0; i < n; i++ {
					v := float32(pcm[i]) / 32768
					samples = append(samples, v, v)
				}
			} else {
				for i := 0; i < 2*n; i += 2 {
					samples = append(samples, float32(pcm[i])/32768, float32(pcm[i+1])/32768)
				}
			}
		}
		if info.BytesConsumed == 0 {
			break
		}
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no frames produced samples", ErrDecode)
	}
	track.Samples = samples
	return track, nil
}

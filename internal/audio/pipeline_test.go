package audio

import (
	"errors"
	"math"
	"testing"
)

// scriptedFrame is one canned DecodeFrame response.
type scriptedFrame struct {
	pcm  []int16
	n    int
	info FrameInfo
	err  error
}

// scriptedDecoder replays canned frames, then reports end of stream
// via a zero-byte call. It stands in for the MP3 backend so pipeline
// behaviour can be pinned without real compressed audio.
type scriptedDecoder struct {
	frames []scriptedFrame
	calls  int
}

func (d *scriptedDecoder) DecodeFrame(pcm []int16) (int, FrameInfo, error) {
	if d.calls >= len(d.frames) {
		return 0, FrameInfo{}, nil
	}
	f := d.frames[d.calls]
	d.calls++
	copy(pcm, f.pcm)
	return f.n, f.info, f.err
}

const testMaxSamples = 1 << 20

// TestDecodeFrames_MonoDuplication verifies that mono PCM is duplicated
// into both output channels, that values are scaled by 1/32768, and
// that the source channel count survives into the Track. This is the
// invariant the playback callback relies on: pairs, always.
func TestDecodeFrames_MonoDuplication(t *testing.T) {
	dec := &scriptedDecoder{frames: []scriptedFrame{
		{
			pcm:  []int16{16384, -16384, 32767},
			n:    3,
			info: FrameInfo{BytesConsumed: 417, Channels: 1, SampleRate: 44100},
		},
	}}

	track, err := decodeFrames(dec, 0, testMaxSamples)
	if err != nil {
		t.Fatalf("decodeFrames() error = %v", err)
	}

	if track.Channels != 1 {
		t.Errorf("Channels = %d, want 1", track.Channels)
	}
	if track.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", track.SampleRate)
	}
	if len(track.Samples) != 6 {
		t.Fatalf("len(Samples) = %d, want 6", len(track.Samples))
	}
	if len(track.Samples)%2 != 0 {
		t.Errorf("len(Samples) = %d, want even", len(track.Samples))
	}

	want := []float32{0.5, 0.5, -0.5, -0.5, 32767.0 / 32768, 32767.0 / 32768}
	for i, w := range want {
		if math.Abs(float64(track.Samples[i]-w)) > 1e-6 {
			t.Errorf("Samples[%d] = %v, want %v", i, track.Samples[i], w)
		}
	}
	for i := 0; i < len(track.Samples); i += 2 {
		if track.Samples[i] != track.Samples[i+1] {
			t.Errorf("pair %d: left %v != right %v", i/2, track.Samples[i], track.Samples[i+1])
		}
	}
}

// TestDecodeFrames_StereoPassthrough verifies stereo PCM keeps its
// interleaved order with no duplication.
func TestDecodeFrames_StereoPassthrough(t *testing.T) {
	dec := &scriptedDecoder{frames: []scriptedFrame{
		{
			pcm:  []int16{1000, -1000, 2000, -2000},
			n:    2,
			info: FrameInfo{BytesConsumed: 417, Channels: 2, SampleRate: 48000},
		},
	}}

	track, err := decodeFrames(dec, 0, testMaxSamples)
	if err != nil {
		t.Fatalf("decodeFrames() error = %v", err)
	}

	if track.Channels != 2 {
		t.Errorf("Channels = %d, want 2", track.Channels)
	}
	want := []float32{1000.0 / 32768, -1000.0 / 32768, 2000.0 / 32768, -2000.0 / 32768}
	if len(track.Samples) != len(want) {
		t.Fatalf("len(Samples) = %d, want %d", len(track.Samples), len(want))
	}
	for i, w := range want {
		if track.Samples[i] != w {
			t.Errorf("Samples[%d] = %v, want %v", i, track.Samples[i], w)
		}
	}
}

// TestDecodeFrames_HeaderOnlyFrame verifies that a call yielding zero
// samples but nonzero consumed bytes is not an error and does not fix
// the track format; the first frame with real channels does.
func TestDecodeFrames_HeaderOnlyFrame(t *testing.T) {
	dec := &scriptedDecoder{frames: []scriptedFrame{
		{
			n:    0,
			info: FrameInfo{BytesConsumed: 128},
		},
		{
			pcm:  []int16{100, 200},
			n:    2,
			info: FrameInfo{BytesConsumed: 417, Channels: 1, SampleRate: 22050},
		},
	}}

	track, err := decodeFrames(dec, 0, testMaxSamples)
	if err != nil {
		t.Fatalf("decodeFrames() error = %v", err)
	}
	if track.Channels != 1 || track.SampleRate != 22050 {
		t.Errorf("format = %d ch @ %d Hz, want 1 ch @ 22050 Hz", track.Channels, track.SampleRate)
	}
	if len(track.Samples) != 4 {
		t.Errorf("len(Samples) = %d, want 4", len(track.Samples))
	}
}

// TestDecodeFrames_ZeroBytesTerminates verifies the loop stops on the
// first zero-byte call instead of spinning, and never asks the decoder
// for another frame afterwards.
func TestDecodeFrames_ZeroBytesTerminates(t *testing.T) {
	dec := &scriptedDecoder{frames: []scriptedFrame{
		{
			pcm:  []int16{500},
			n:    1,
			info: FrameInfo{BytesConsumed: 417, Channels: 1, SampleRate: 44100},
		},
		{
			n:    0,
			info: FrameInfo{BytesConsumed: 0, Channels: 1, SampleRate: 44100},
		},
		{
			pcm:  []int16{999},
			n:    1,
			info: FrameInfo{BytesConsumed: 417, Channels: 1, SampleRate: 44100},
		},
	}}

	track, err := decodeFrames(dec, 0, testMaxSamples)
	if err != nil {
		t.Fatalf("decodeFrames() error = %v", err)
	}
	if dec.calls != 2 {
		t.Errorf("decoder calls = %d, want 2 (loop must stop at the zero-byte call)", dec.calls)
	}
	if len(track.Samples) != 2 {
		t.Errorf("len(Samples) = %d, want 2", len(track.Samples))
	}
}

// TestDecodeFrames_NoAudio verifies an immediately-exhausted stream is
// a decode error rather than an empty track.
func TestDecodeFrames_NoAudio(t *testing.T) {
	dec := &scriptedDecoder{}
	_, err := decodeFrames(dec, 0, testMaxSamples)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("decodeFrames() error = %v, want ErrDecode", err)
	}
}

// TestDecodeFrames_ErrorBeforeAudio verifies a decoder failure with
// nothing accumulated surfaces as ErrDecode.
func TestDecodeFrames_ErrorBeforeAudio(t *testing.T) {
	dec := &scriptedDecoder{frames: []scriptedFrame{
		{err: errors.New("bad sync")},
	}}
	_, err := decodeFrames(dec, 0, testMaxSamples)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("decodeFrames() error = %v, want ErrDecode", err)
	}
}

// TestDecodeFrames_DamagedTailKeepsHead verifies a decoder failure
// after audio has accumulated keeps the playable head instead of
// discarding the track.
func TestDecodeFrames_DamagedTailKeepsHead(t *testing.T) {
	dec := &scriptedDecoder{frames: []scriptedFrame{
		{
			pcm:  []int16{100, 200},
			n:    2,
			info: FrameInfo{BytesConsumed: 417, Channels: 1, SampleRate: 44100},
		},
		{err: errors.New("truncated frame")},
	}}

	track, err := decodeFrames(dec, 0, testMaxSamples)
	if err != nil {
		t.Fatalf("decodeFrames() error = %v, want playable head", err)
	}
	if len(track.Samples) != 4 {
		t.Errorf("len(Samples) = %d, want 4", len(track.Samples))
	}
}

// TestDecodeFrames_CeilingExceeded verifies the sample ceiling aborts
// the decode with ErrResourceExhausted instead of growing without
// bound.
func TestDecodeFrames_CeilingExceeded(t *testing.T) {
	frame := scriptedFrame{
		pcm:  make([]int16, 1000),
		n:    1000,
		info: FrameInfo{BytesConsumed: 417, Channels: 1, SampleRate: 44100},
	}
	dec := &scriptedDecoder{frames: []scriptedFrame{frame, frame, frame}}

	_, err := decodeFrames(dec, 0, 3000)
	if !errors.Is(err, ErrResourceExhausted) {
		t.Errorf("decodeFrames() error = %v, want ErrResourceExhausted", err)
	}
}

// TestDecodeFrames_OverlongCountClamped verifies a backend claiming
// more samples than the transfer buffer holds cannot push the pipeline
// out of bounds.
func TestDecodeFrames_OverlongCountClamped(t *testing.T) {
	dec := &scriptedDecoder{frames: []scriptedFrame{
		{
			pcm:  []int16{1, 2, 3},
			n:    framePCM + 500,
			info: FrameInfo{BytesConsumed: 417, Channels: 2, SampleRate: 44100},
		},
	}}

	track, err := decodeFrames(dec, 0, testMaxSamples)
	if err != nil {
		t.Fatalf("decodeFrames() error = %v", err)
	}
	if len(track.Samples) != framePCM {
		t.Errorf("len(Samples) = %d, want clamp to %d", len(track.Samples), framePCM)
	}
}

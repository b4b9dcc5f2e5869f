package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// encodeWAV writes a 16-bit PCM WAV through the real encoder and
// returns the file bytes, so decode tests run against honest RIFF
// structure instead of hand-assembled headers.
func encodeWAV(t *testing.T, rate, channels int, data []int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &gaudio.IntBuffer{
		Data:           data,
		Format:         &gaudio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("finalize fixture: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return out
}

// TestDecodeWAV_Mono verifies mono WAV input is duplicated into stereo
// pairs with 1/32767 scaling and the source channel count preserved.
func TestDecodeWAV_Mono(t *testing.T) {
	data := encodeWAV(t, 8000, 1, []int{0, 16384, -16384, 32767})

	track, err := DecodeWAV(data)
	if err != nil {
		t.Fatalf("DecodeWAV() error = %v", err)
	}

	if track.Channels != 1 {
		t.Errorf("Channels = %d, want 1", track.Channels)
	}
	if track.SampleRate != 8000 {
		t.Errorf("SampleRate = %d, want 8000", track.SampleRate)
	}
	if len(track.Samples) != 8 {
		t.Fatalf("len(Samples) = %d, want 8", len(track.Samples))
	}
	for i := 0; i < len(track.Samples); i += 2 {
		if track.Samples[i] != track.Samples[i+1] {
			t.Errorf("pair %d: left %v != right %v", i/2, track.Samples[i], track.Samples[i+1])
		}
	}
	if got, want := float64(track.Samples[2]), 16384.0/32767.0; math.Abs(got-want) > 1e-4 {
		t.Errorf("Samples[2] = %v, want ~%v", got, want)
	}
	if got, want := float64(track.Samples[6]), 1.0; math.Abs(got-want) > 1e-4 {
		t.Errorf("Samples[6] = %v, want ~%v", got, want)
	}
}

// TestDecodeWAV_Stereo verifies stereo stays interleaved in order.
func TestDecodeWAV_Stereo(t *testing.T) {
	data := encodeWAV(t, 44100, 2, []int{100, -100, 200, -200})

	track, err := DecodeWAV(data)
	if err != nil {
		t.Fatalf("DecodeWAV() error = %v", err)
	}

	if track.Channels != 2 {
		t.Errorf("Channels = %d, want 2", track.Channels)
	}
	if len(track.Samples) != 4 {
		t.Fatalf("len(Samples) = %d, want 4", len(track.Samples))
	}
	want := []float64{100.0 / 32767, -100.0 / 32767, 200.0 / 32767, -200.0 / 32767}
	for i, w := range want {
		if math.Abs(float64(track.Samples[i])-w) > 1e-4 {
			t.Errorf("Samples[%d] = %v, want ~%v", i, track.Samples[i], w)
		}
	}
}

// TestDecodeWAV_Invalid verifies junk input surfaces ErrDecode.
func TestDecodeWAV_Invalid(t *testing.T) {
	_, err := DecodeWAV([]byte("RIFFnope"))
	if !errors.Is(err, ErrDecode) {
		t.Errorf("DecodeWAV(junk) error = %v, want ErrDecode", err)
	}
}

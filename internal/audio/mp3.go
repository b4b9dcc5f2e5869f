package audio

import (
	"bytes"
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// frameBytes is one MPEG1 Layer III frame of decoded PCM as go-mp3
// emits it: 1152 samples x 2 channels x 2 bytes.
const frameBytes = 4608

// countingReader tracks how many compressed bytes the decoder has
// pulled. It deliberately hides the underlying Seek method: without a
// seeker go-mp3 reads strictly forward on demand, so position deltas
// attribute consumed bytes to individual frame calls.
type countingReader struct {
	r *bytes.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// mp3FrameDecoder adapts go-mp3 to the FrameDecoder contract. go-mp3
// upmixes every source to interleaved stereo, so the source channel
// count comes from the first frame header's mode bits, and mono
// sources are compacted back to true mono PCM before they leave the
// adapter.
type mp3FrameDecoder struct {
	dec      *mp3.Decoder
	src      *countingReader
	lastPos  int64
	channels int
	buf      [frameBytes]byte
	eof      bool
}

// NewMP3FrameDecoder initializes a decoder over a whole compressed
// stream. The bytes go-mp3 reads during construction (tag skip plus
// first frame probe) are attributed to the first DecodeFrame call.
func NewMP3FrameDecoder(data []byte) (FrameDecoder, error) {
	channels := 2
	if mpegMono(data) {
		channels = 1
	}
	src := &countingReader{r: bytes.NewReader(data)}
	dec, err := mp3.NewDecoder(src)
	if err != nil {
		return nil, fmt.Errorf("mp3 decoder init: %w", err)
	}
	return &mp3FrameDecoder{dec: dec, src: src, channels: channels}, nil
}

func (d *mp3FrameDecoder) DecodeFrame(pcm []int16) (int, FrameInfo, error) {
	info := FrameInfo{Channels: d.channels, SampleRate: d.dec.SampleRate()}
	if d.eof || len(pcm) == 0 {
		return 0, info, nil
	}

	// go-mp3 hands back 4 bytes per frame position (stereo int16).
	// Mono compaction keeps only the left slot, so one output sample
	// costs 4 input bytes instead of 2.
	bytesPerOut := 2
	if d.channels == 1 {
		bytesPerOut = 4
	}
	limit := len(pcm) * bytesPerOut
	if limit > frameBytes {
		limit = frameBytes
	}

	n, err := d.dec.Read(d.buf[:limit])
	info.BytesConsumed = int(d.src.n - d.lastPos)
	d.lastPos = d.src.n
	if err != nil {
		if err != io.EOF && err != io.ErrUnexpectedEOF {
			return 0, info, fmt.Errorf("mp3 frame decode: %w", err)
		}
		d.eof = true
		if n == 0 {
			// Trailing tag bytes may have been read while searching
			// for a frame; the stream is over either way.
			info.BytesConsumed = 0
			return 0, info, nil
		}
	}

	// go-mp3 guarantees whole 4-byte positions per read.
	pairs := n / 4
	if d.channels == 1 {
		for i := 0; i < pairs; i++ {
			pcm[i] = int16(d.buf[i*4]) | int16(d.buf[i*4+1])<<8
		}
	} else {
		for i := 0; i < pairs; i++ {
			pcm[2*i] = int16(d.buf[i*4]) | int16(d.buf[i*4+1])<<8
			pcm[2*i+1] = int16(d.buf[i*4+2]) | int16(d.buf[i*4+3])<<8
		}
	}
	return pairs, info, nil
}

// mpegMono reports whether the first MPEG audio frame header declares
// single-channel mode. go-mp3 hides the source layout behind its
// stereo upmix, but the mode bits sit in plain sight in the header.
func mpegMono(data []byte) bool {
	data = skipID3v2(data)
	for i := 0; i+3 < len(data); i++ {
		if data[i] != 0xFF || data[i+1]&0xE0 != 0xE0 {
			continue
		}
		version := data[i+1] >> 3 & 0x3
		layer := data[i+1] >> 1 & 0x3
		bitrate := data[i+2] >> 4
		rate := data[i+2] >> 2 & 0x3
		if version == 1 || layer == 0 || bitrate == 0xF || rate == 3 {
			// Reserved field values: a sync-like byte pair inside tag
			// padding or junk, not a real frame header.
			continue
		}
		return data[i+3]>>6 == 3
	}
	return false
}

// skipID3v2 drops a leading ID3v2 tag: "ID3", version and flag bytes,
// then a 4-byte syncsafe length.
func skipID3v2(data []byte) []byte {
	if len(data) < 10 || data[0] != 'I' || data[1] != 'D' || data[2] != '3' {
		return data
	}
	size := int(data[6]&0x7F)<<21 | int(data[7]&0x7F)<<14 | int(data[8]&0x7F)<<7 | int(data[9]&0x7F)
	if 10+size > len(data) {
		return data
	}
	return data[10+size:]
}

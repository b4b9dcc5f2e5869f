package audio

// FrameInfo describes a single frame-decode call: the compressed bytes
// the decoder consumed, plus the stream format it detected.
type FrameInfo struct {
	BytesConsumed int
	Channels      int
	SampleRate    int
}

// A FrameDecoder decodes one batch of PCM per call from the compressed
// input it was constructed over, advancing its own input cursor. pcm
// receives interleaved 16-bit samples laid out with info.Channels
// channels; the return value counts samples per channel and never
// exceeds the capacity of pcm.
//
// A call reporting zero bytes consumed signals end of stream or an
// unrecoverable desync: the caller must stop looping. A call yielding
// zero samples with nonzero bytes consumed is valid (headers, skipped
// junk) and is not an error.
type FrameDecoder interface {
	DecodeFrame(pcm []int16) (int, FrameInfo, error)
}

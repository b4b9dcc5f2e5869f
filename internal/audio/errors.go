package audio

import "errors"

// Decode failures are classified by sentinel so callers can tell a
// missing file from a corrupt one with errors.Is.
var (
	// ErrFileAccess covers open, read and path resolution failures.
	ErrFileAccess = errors.New("audio: file access failed")

	// ErrDecode means the file produced no usable audio.
	ErrDecode = errors.New("audio: no decodable audio")

	// ErrResourceExhausted means decoding was abandoned because the
	// output would exceed the configured track size ceiling.
	ErrResourceExhausted = errors.New("audio: decoded track too large")

	// ErrUnsupported marks formats and channel layouts the decoders
	// do not handle.
	ErrUnsupported = errors.New("audio: unsupported format")
)

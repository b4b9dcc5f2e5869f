package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DecodeFile reads path into memory and decodes it by extension.
func DecodeFile(path string) (*Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileAccess, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return DecodeMP3(data)
	case ".wav":
		return DecodeWAV(data)
	case ".flac":
		return DecodeFLAC(data)
	case ".ogg":
		return DecodeVorbis(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, filepath.Ext(path))
	}
}

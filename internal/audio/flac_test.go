package audio

import (
	"errors"
	"testing"
)

// TestDecodeFLAC_Invalid verifies junk and truncated input surface
// ErrDecode rather than a panic or a silent empty track.
func TestDecodeFLAC_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not flac", []byte("definitely not a flac stream")},
		{"magic only", []byte("fLaC")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeFLAC(tc.data)
			if !errors.Is(err, ErrDecode) {
				t.Errorf("DecodeFLAC(%s) error = %v, want ErrDecode", tc.name, err)
			}
		})
	}
}

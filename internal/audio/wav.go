// Package audio decodes the WAV input an invocation hands to the engines.
// The tool does no format conversion: audio outside the supported PCM shape
// is rejected with a clear error instead of being resampled or downmixed.
package audio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

var (
	ErrUnsupportedWAV = errors.New("unsupported wav format")
	ErrInvalidWAV     = errors.New("invalid wav file")
)

// ReadWAV decodes a 16-bit PCM mono WAV file into float32 samples normalized
// to [-1, 1] and returns the source sample rate.
func ReadWAV(path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %s", ErrInvalidWAV, path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode wav %s: %w", path, err)
	}

	if decoder.WavAudioFormat != 1 {
		return nil, 0, fmt.Errorf("%w: audio format %d is not PCM", ErrUnsupportedWAV, decoder.WavAudioFormat)
	}
	if decoder.BitDepth != 16 {
		return nil, 0, fmt.Errorf("%w: %d-bit samples (expected 16-bit)", ErrUnsupportedWAV, decoder.BitDepth)
	}
	if decoder.NumChans != 1 {
		return nil, 0, fmt.Errorf("%w: %d channels (expected mono)", ErrUnsupportedWAV, decoder.NumChans)
	}

	samples := make([]float32, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = float32(s) / 32768
	}

	return samples, int(decoder.SampleRate), nil
}

// ABOUTME: Audio file sources producing planar 8-bit frames
// ABOUTME: Picks an MP3, FLAC, WAV or ASIF reader by file extension
package transcode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Resonate-Protocol/asif-go/pkg/audio"
)

// FrameSamples is the per-channel sample count sources aim for per frame
const FrameSamples = 8000

// Source yields planar unsigned 8-bit frames until io.EOF
type Source interface {
	// ReadFrame returns the next frame. It returns io.EOF once the input is
	// exhausted; a frame is never returned together with an error.
	ReadFrame() (audio.Frame, error)
	// SampleRate returns the sample rate of the audio
	SampleRate() int
	// Channels returns the number of channels
	Channels() int
	// Close closes the underlying file
	Close() error
}

// OpenSource opens path with a reader chosen by its extension
func OpenSource(path string) (Source, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var (
		src Source
		err error
	)
	switch ext {
	case ".mp3":
		src, err = NewMP3Source(path)
	case ".flac":
		src, err = NewFLACSource(path)
	case ".wav":
		src, err = NewWAVSource(path)
	case ".asif":
		src, err = NewASIFSource(path)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .flac, .wav, .asif)", ext)
	}
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", path).
		Int("sample_rate", src.SampleRate()).
		Int("channels", src.Channels()).
		Msg("opened source")

	return src, nil
}

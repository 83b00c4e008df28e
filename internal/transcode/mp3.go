// ABOUTME: MP3 file source
// ABOUTME: Streams decoded MP3 audio as planar 8-bit frames
package transcode

import (
	"fmt"
	"os"

	"github.com/Resonate-Protocol/asif-go/pkg/audio"
	"github.com/Resonate-Protocol/asif-go/pkg/audio/decode"
)

// MP3Source reads from an MP3 file. MP3 audio always decodes to stereo.
type MP3Source struct {
	file    *os.File
	decoder *decode.MP3Decoder
	buf     []int32
}

// NewMP3Source opens an MP3 file
func NewMP3Source(path string) (*MP3Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}

	dec, err := decode.NewMP3(audio.Format{Codec: "mp3"})
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := dec.Open(f); err != nil {
		f.Close()
		return nil, err
	}

	return &MP3Source{
		file:    f,
		decoder: dec,
		buf:     make([]int32, FrameSamples*dec.Format().Channels),
	}, nil
}

func (s *MP3Source) ReadFrame() (audio.Frame, error) {
	n, err := s.decoder.ReadSamples(s.buf)
	if err != nil {
		return audio.Frame{}, err
	}
	return audio.Deinterleave(s.buf[:n], s.SampleRate(), s.Channels()), nil
}

func (s *MP3Source) SampleRate() int { return s.decoder.SampleRate() }
func (s *MP3Source) Channels() int   { return s.decoder.Format().Channels }

func (s *MP3Source) Close() error {
	s.decoder.Close()
	return s.file.Close()
}

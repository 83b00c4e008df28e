// ABOUTME: FLAC file source
// ABOUTME: Streams decoded FLAC blocks as planar 8-bit frames
package transcode

import (
	"fmt"
	"os"

	"github.com/Resonate-Protocol/asif-go/pkg/audio"
	"github.com/Resonate-Protocol/asif-go/pkg/audio/decode"
)

// FLACSource reads from a FLAC file
type FLACSource struct {
	file    *os.File
	decoder *decode.FLACDecoder
}

// NewFLACSource opens a FLAC file
func NewFLACSource(path string) (*FLACSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FLAC file: %w", err)
	}

	dec, err := decode.NewFLAC(audio.Format{Codec: "flac"})
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := dec.Open(f); err != nil {
		f.Close()
		return nil, err
	}

	return &FLACSource{file: f, decoder: dec}, nil
}

// ReadFrame returns one FLAC block per call
func (s *FLACSource) ReadFrame() (audio.Frame, error) {
	block, err := s.decoder.ReadBlock()
	if err != nil {
		return audio.Frame{}, err
	}
	return audio.Deinterleave(block, s.SampleRate(), s.Channels()), nil
}

func (s *FLACSource) SampleRate() int { return s.decoder.Format().SampleRate }
func (s *FLACSource) Channels() int   { return s.decoder.Format().Channels }

func (s *FLACSource) Close() error {
	s.decoder.Close()
	return s.file.Close()
}

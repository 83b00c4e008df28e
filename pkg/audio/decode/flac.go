// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes FLAC streams block by block or complete buffers to int32 samples
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/Resonate-Protocol/asif-go/pkg/audio"
)

// FLACDecoder decodes FLAC audio
type FLACDecoder struct {
	format audio.Format
	stream *flac.Stream
}

// NewFLAC creates a new FLAC decoder
func NewFLAC(format audio.Format) (*FLACDecoder, error) {
	if format.Codec != "flac" {
		return nil, fmt.Errorf("invalid codec for FLAC decoder: %s", format.Codec)
	}

	return &FLACDecoder{
		format: format,
	}, nil
}

// Open parses the FLAC metadata in r and prepares block decoding
func (d *FLACDecoder) Open(r io.Reader) error {
	stream, err := flac.New(r)
	if err != nil {
		return fmt.Errorf("failed to decode FLAC: %w", err)
	}

	d.stream = stream
	d.format = audio.Format{
		Codec:        "flac",
		SampleRate:   int(stream.Info.SampleRate),
		Channels:     int(stream.Info.NChannels),
		BitDepth:     int(stream.Info.BitsPerSample),
		SampleFormat: audio.SampleFormatS24,
	}
	return nil
}

// ReadBlock decodes the next FLAC frame to interleaved samples in 24-bit
// range. It returns io.EOF after the last frame.
func (d *FLACDecoder) ReadBlock() ([]int32, error) {
	if d.stream == nil {
		return nil, errors.New("flac decoder not opened")
	}

	frame, err := d.stream.ParseNext()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("flac frame decode error: %w", err)
	}

	channels := d.format.Channels
	n := int(frame.BlockSize)
	samples := make([]int32, n*channels)
	for ch := 0; ch < channels; ch++ {
		sub := frame.Subframes[ch].Samples
		for i := 0; i < n; i++ {
			samples[i*channels+ch] = audio.ScaleTo24Bit(sub[i], d.format.BitDepth)
		}
	}
	return samples, nil
}

// Decode converts a complete FLAC stream to interleaved int32 samples
func (d *FLACDecoder) Decode(data []byte) ([]int32, error) {
	if err := d.Open(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	defer d.Close()

	var samples []int32
	for {
		block, err := d.ReadBlock()
		if err == io.EOF {
			return samples, nil
		}
		if err != nil {
			return nil, err
		}
		samples = append(samples, block...)
	}
}

// Format returns the format of the open or last decoded stream
func (d *FLACDecoder) Format() audio.Format {
	return d.format
}

// Close drops the open stream. The reader passed to Open is left to the caller.
func (d *FLACDecoder) Close() error {
	d.stream = nil
	return nil
}

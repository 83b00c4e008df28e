// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes MP3 streams or complete buffers to int32 samples
package decode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"github.com/Resonate-Protocol/asif-go/pkg/audio"
)

// MP3 decoder output is always 16-bit stereo
const mp3Channels = 2

// mp3ChunkSamples sizes the scratch buffer used by Decode
const mp3ChunkSamples = 4096

// MP3Decoder decodes MP3 audio
type MP3Decoder struct {
	sampleRate int
	stream     *mp3.Decoder
	pcm        []byte
}

// NewMP3 creates a new MP3 decoder
func NewMP3(format audio.Format) (*MP3Decoder, error) {
	if format.Codec != "mp3" {
		return nil, fmt.Errorf("invalid codec for MP3 decoder: %s", format.Codec)
	}
	return &MP3Decoder{sampleRate: format.SampleRate}, nil
}

// Open starts decoding the MP3 stream in r
func (d *MP3Decoder) Open(r io.Reader) error {
	stream, err := mp3.NewDecoder(r)
	if err != nil {
		return fmt.Errorf("failed to create mp3 decoder: %w", err)
	}
	d.stream = stream
	d.sampleRate = stream.SampleRate()
	return nil
}

// ReadSamples fills dst with interleaved stereo samples in 24-bit range and
// returns how many were written. It returns io.EOF once the stream is done.
func (d *MP3Decoder) ReadSamples(dst []int32) (int, error) {
	if d.stream == nil {
		return 0, errors.New("mp3 decoder not opened")
	}
	frames := len(dst) / mp3Channels
	if frames == 0 {
		return 0, fmt.Errorf("buffer of %d samples holds no stereo frame", len(dst))
	}

	need := frames * mp3Channels * 2
	if cap(d.pcm) < need {
		d.pcm = make([]byte, need)
	}
	buf := d.pcm[:need]

	n, err := io.ReadFull(d.stream, buf)
	if err == io.EOF {
		return 0, io.EOF
	}
	if err != nil && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("mp3 decode error: %w", err)
	}

	n -= n % (mp3Channels * 2)
	if n == 0 {
		return 0, io.EOF
	}
	for i := 0; i < n/2; i++ {
		dst[i] = audio.SampleFromInt16(int16(binary.LittleEndian.Uint16(buf[i*2:])))
	}
	return n / 2, nil
}

// Decode converts a complete MP3 stream to interleaved stereo int32 samples
func (d *MP3Decoder) Decode(data []byte) ([]int32, error) {
	if err := d.Open(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	defer d.Close()

	var samples []int32
	chunk := make([]int32, mp3ChunkSamples)
	for {
		n, err := d.ReadSamples(chunk)
		if err == io.EOF {
			return samples, nil
		}
		if err != nil {
			return nil, err
		}
		samples = append(samples, chunk[:n]...)
	}
}

// SampleRate returns the sample rate of the open or last decoded stream
func (d *MP3Decoder) SampleRate() int {
	return d.sampleRate
}

// Format returns the format of the last decoded stream
func (d *MP3Decoder) Format() audio.Format {
	return audio.Format{
		Codec:        "mp3",
		SampleRate:   d.sampleRate,
		Channels:     mp3Channels,
		BitDepth:     16,
		SampleFormat: audio.SampleFormatS16,
	}
}

// Close drops the open stream. The reader passed to Open is left to the caller.
func (d *MP3Decoder) Close() error {
	d.stream = nil
	return nil
}

// ABOUTME: RIFF/WAVE reading and writing for PCM audio
// ABOUTME: Reads 8 to 32-bit PCM sources and writes unsigned 8-bit output
package transcode

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/Resonate-Protocol/asif-go/pkg/audio"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// ErrNotWAV is returned for input without a RIFF/WAVE header
var ErrNotWAV = errors.New("not a RIFF/WAVE file")

// WAVSource reads PCM frames from a WAV file
type WAVSource struct {
	file       *os.File
	decoder    *wav.Decoder
	buf        *goaudio.IntBuffer
	sampleRate int
	channels   int
	bitDepth   int
}

// NewWAVSource opens a PCM WAV file. Plain and extensible PCM headers are
// accepted; float and compressed formats are not.
func NewWAVSource(path string) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}

	d := wav.NewDecoder(f)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w: %v", path, ErrNotWAV, err)
	}
	if d.NumChans == 0 || d.BitDepth == 0 {
		f.Close()
		return nil, fmt.Errorf("%s: %w: missing fmt chunk", path, ErrNotWAV)
	}
	if err := checkWAVFormat(d); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := d.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: missing data chunk: %w", path, err)
	}

	channels := int(d.NumChans)
	return &WAVSource{
		file:    f,
		decoder: d,
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: channels, SampleRate: int(d.SampleRate)},
			Data:   make([]int, FrameSamples*channels),
		},
		sampleRate: int(d.SampleRate),
		channels:   channels,
		bitDepth:   int(d.BitDepth),
	}, nil
}

func checkWAVFormat(d *wav.Decoder) error {
	if d.WavAudioFormat != wavFormatPCM && d.WavAudioFormat != wavFormatExtensible {
		return fmt.Errorf("unsupported WAV format %d (PCM only)", d.WavAudioFormat)
	}
	switch d.BitDepth {
	case 8, 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("unsupported WAV bit depth: %d", d.BitDepth)
	}
}

func (s *WAVSource) ReadFrame() (audio.Frame, error) {
	n, err := s.decoder.PCMBuffer(s.buf)
	if err != nil {
		return audio.Frame{}, fmt.Errorf("wav read error: %w", err)
	}
	n -= n % s.channels
	if n == 0 {
		return audio.Frame{}, io.EOF
	}

	frame := audio.NewFrame(s.sampleRate, s.channels, n/s.channels)
	for i, v := range s.buf.Data[:n] {
		frame.Planes[i%s.channels][i/s.channels] = wavSampleToUint8(v, s.bitDepth)
	}
	return frame, nil
}

// wavSampleToUint8 converts one decoded WAV sample. 8-bit WAV data is
// already unsigned; wider samples are signed.
func wavSampleToUint8(v, bitDepth int) uint8 {
	if bitDepth == 8 {
		return uint8(v)
	}
	return audio.SampleToUint8(audio.ScaleTo24Bit(int32(v), bitDepth))
}

func (s *WAVSource) SampleRate() int { return s.sampleRate }
func (s *WAVSource) Channels() int   { return s.channels }
func (s *WAVSource) Close() error    { return s.file.Close() }

// WriteWAV writes frame as an unsigned 8-bit PCM WAV file. The header sizes
// are patched on completion, so out must be seekable.
func WriteWAV(out io.WriteSeeker, frame audio.Frame) error {
	channels := frame.Channels()
	if channels == 0 {
		return errors.New("cannot write WAV without channels")
	}

	data := make([]int, 0, frame.Samples()*channels)
	for i := 0; i < frame.Samples(); i++ {
		for ch := 0; ch < channels; ch++ {
			data = append(data, int(frame.Planes[ch][i]))
		}
	}

	enc := wav.NewEncoder(out, frame.SampleRate, 8, channels, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: frame.SampleRate},
		Data:           data,
		SourceBitDepth: 8,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finish WAV file: %w", err)
	}
	return nil
}

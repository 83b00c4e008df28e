// ABOUTME: ASIF file reading and writing
// ABOUTME: Demux + decode to a frame, and encode + mux from any source
package transcode

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Resonate-Protocol/asif-go/pkg/audio"
	"github.com/Resonate-Protocol/asif-go/pkg/audio/asif"
	"github.com/Resonate-Protocol/asif-go/pkg/audio/decode"
	"github.com/Resonate-Protocol/asif-go/pkg/audio/encode"
)

// ReadASIF demuxes and decodes a complete ASIF stream from rs
func ReadASIF(rs io.ReadSeeker) (audio.Frame, error) {
	demux := asif.NewDemuxer(asif.NewFileTransport(rs), asif.NewRegistry())
	if _, err := demux.ReadHeader(); err != nil {
		return audio.Frame{}, err
	}

	packet, err := demux.ReadPacket()
	if err != nil {
		if errors.Is(err, asif.ErrExhausted) {
			return audio.Frame{}, fmt.Errorf("%w: empty input", asif.ErrFormatMismatch)
		}
		return audio.Frame{}, err
	}

	dec, err := decode.NewASIF(audio.Format{Codec: asif.CodecName})
	if err != nil {
		return audio.Frame{}, err
	}
	defer dec.Close()

	return dec.DecodeFrame(packet.Data)
}

// DecodeFile reads and decodes the ASIF file at path
func DecodeFile(path string) (audio.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return audio.Frame{}, fmt.Errorf("failed to open ASIF file: %w", err)
	}
	defer f.Close()

	frame, err := ReadASIF(f)
	if err != nil {
		return audio.Frame{}, fmt.Errorf("%s: %w", path, err)
	}
	return frame, nil
}

// ASIFSource replays a decoded ASIF file as a single frame
type ASIFSource struct {
	frame audio.Frame
	done  bool
}

// NewASIFSource decodes the ASIF file at path
func NewASIFSource(path string) (*ASIFSource, error) {
	frame, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return &ASIFSource{frame: frame}, nil
}

func (s *ASIFSource) ReadFrame() (audio.Frame, error) {
	if s.done {
		return audio.Frame{}, io.EOF
	}
	s.done = true
	return s.frame, nil
}

func (s *ASIFSource) SampleRate() int { return s.frame.SampleRate }
func (s *ASIFSource) Channels() int   { return s.frame.Channels() }
func (s *ASIFSource) Close() error    { return nil }

// Stats summarises an encode run
type Stats struct {
	SampleRate int
	Channels   int
	Samples    int
	Frames     int
	Bytes      int64
}

// Encode feeds every frame of src into a new ASIF session and writes the
// resulting packet to w
func Encode(src Source, w io.Writer) (Stats, error) {
	stats := Stats{SampleRate: src.SampleRate(), Channels: src.Channels()}

	enc, err := encode.NewASIFSession(encode.ASIFConfig{
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
	})
	if err != nil {
		return stats, err
	}
	defer enc.Close()

	for {
		frame, err := src.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, err
		}
		if err := enc.Ingest(frame); err != nil {
			return stats, err
		}
		stats.Frames++
	}

	enc.SignalEnd()
	packet, err := enc.Finalize()
	if err != nil {
		return stats, err
	}
	stats.Samples = enc.Samples()

	mux := asif.NewMuxer(w)
	if err := mux.WritePacket(&asif.Packet{Data: packet}); err != nil {
		return stats, err
	}
	stats.Bytes = mux.Written()

	log.Debug().
		Str("session", enc.ID().String()).
		Int("frames", stats.Frames).
		Int("samples", stats.Samples).
		Int64("bytes", stats.Bytes).
		Msg("encoded asif stream")

	return stats, nil
}

// EncodeFile converts the audio file at srcPath to ASIF at dstPath
func EncodeFile(srcPath, dstPath string) (Stats, error) {
	src, err := OpenSource(srcPath)
	if err != nil {
		return Stats{}, err
	}
	defer src.Close()

	out, err := os.Create(dstPath)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to create output: %w", err)
	}

	stats, err := Encode(src, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close output: %w", cerr)
	}
	if err != nil {
		os.Remove(dstPath)
		return stats, err
	}
	return stats, nil
}

// DecodeFileToWAV converts the ASIF file at srcPath to an 8-bit WAV at dstPath
func DecodeFileToWAV(srcPath, dstPath string) (audio.Frame, error) {
	frame, err := DecodeFile(srcPath)
	if err != nil {
		return audio.Frame{}, err
	}

	out, err := os.Create(dstPath)
	if err != nil {
		return audio.Frame{}, fmt.Errorf("failed to create output: %w", err)
	}
	if err := WriteWAV(out, frame); err != nil {
		out.Close()
		os.Remove(dstPath)
		return audio.Frame{}, err
	}
	if err := out.Close(); err != nil {
		return audio.Frame{}, fmt.Errorf("failed to close output: %w", err)
	}
	return frame, nil
}

// ProbeFile scores the file at path as ASIF
func ProbeFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, len(asif.Magic))
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return 0, err
	}
	return asif.Probe(buf[:n]), nil
}

// ReadInfo returns the header of the ASIF file at path
func ReadInfo(path string) (asif.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return asif.Header{}, err
	}
	defer f.Close()

	buf := make([]byte, asif.HeaderSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return asif.Header{}, err
	}

	h, err := asif.ParseHeader(buf[:n])
	if err != nil {
		return asif.Header{}, err
	}
	return h, h.Validate()
}

// ABOUTME: ASIF audio decoder
// ABOUTME: Rebuilds planar 8-bit samples from a complete ASIF packet
package decode

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Resonate-Protocol/asif-go/pkg/audio"
	"github.com/Resonate-Protocol/asif-go/pkg/audio/asif"
)

// ASIFDecoder decodes whole ASIF packets. Every packet carries its own
// header, so the decoder holds no state between calls.
type ASIFDecoder struct{}

// NewASIF creates a new ASIF decoder. Sample rate and channel count come from
// each packet's header, so only the codec is checked.
func NewASIF(format audio.Format) (*ASIFDecoder, error) {
	if format.Codec != asif.CodecName {
		return nil, fmt.Errorf("invalid codec for ASIF decoder: %s", format.Codec)
	}
	return &ASIFDecoder{}, nil
}

// DecodeFrame parses the header and reconstructs every channel. No partial
// frame is returned on error.
func (d *ASIFDecoder) DecodeFrame(packet []byte) (audio.Frame, error) {
	h, planes, err := asif.DecodePacket(packet)
	if err != nil {
		return audio.Frame{}, fmt.Errorf("asif decode failed: %w", err)
	}

	log.Debug().
		Uint32("sample_rate", h.SampleRate).
		Uint16("channels", h.ChannelCount).
		Uint32("samples", h.SampleCount).
		Msg("decoded asif packet")

	return audio.Frame{SampleRate: int(h.SampleRate), Planes: planes}, nil
}

// Decode converts an ASIF packet to interleaved int32 samples in 24-bit range
func (d *ASIFDecoder) Decode(data []byte) ([]int32, error) {
	frame, err := d.DecodeFrame(data)
	if err != nil {
		return nil, err
	}
	return frame.Interleave(), nil
}

// Format describes the decoder's output. Sample rate and channel count are
// per packet and come back on the decoded frame.
func (d *ASIFDecoder) Format() audio.Format {
	return audio.Format{
		Codec:        asif.CodecName,
		BitDepth:     8,
		SampleFormat: audio.SampleFormatU8P,
	}
}

// Close releases decoder resources
func (d *ASIFDecoder) Close() error {
	return nil
}

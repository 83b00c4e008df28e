// ABOUTME: PCM audio encoder
// ABOUTME: Encodes int32 samples to unsigned 8-bit, 16-bit or 24-bit PCM bytes
package encode

import (
	"encoding/binary"
	"fmt"

	"github.com/Resonate-Protocol/asif-go/pkg/audio"
)

// PCMEncoder encodes interleaved PCM audio
type PCMEncoder struct {
	bitDepth int
}

// NewPCM creates a new PCM encoder
func NewPCM(format audio.Format) (Encoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM encoder: %s", format.Codec)
	}

	switch format.BitDepth {
	case 8, 16, 24:
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 8, 16, 24)", format.BitDepth)
	}

	return &PCMEncoder{
		bitDepth: format.BitDepth,
	}, nil
}

// Encode converts int32 samples to PCM bytes
func (e *PCMEncoder) Encode(samples []int32) ([]byte, error) {
	switch e.bitDepth {
	case 8:
		// unsigned, one byte per sample, as WAV stores it
		output := make([]byte, len(samples))
		for i, sample := range samples {
			output[i] = audio.SampleToUint8(sample)
		}
		return output, nil
	case 24:
		output := make([]byte, len(samples)*3)
		for i, sample := range samples {
			b := audio.SampleTo24Bit(sample)
			copy(output[i*3:], b[:])
		}
		return output, nil
	default:
		output := make([]byte, len(samples)*2)
		for i, sample := range samples {
			binary.LittleEndian.PutUint16(output[i*2:], uint16(audio.SampleToInt16(sample)))
		}
		return output, nil
	}
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}

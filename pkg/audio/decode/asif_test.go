// ABOUTME: Tests for the ASIF decoder
// ABOUTME: Cumulative wraparound reconstruction and failure modes
package decode

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Resonate-Protocol/asif-go/pkg/audio"
	"github.com/Resonate-Protocol/asif-go/pkg/audio/asif"
)

func newASIFDecoder(t *testing.T) *ASIFDecoder {
	t.Helper()
	d, err := NewASIF(audio.Format{Codec: "asif"})
	if err != nil {
		t.Fatalf("NewASIF() failed: %v", err)
	}
	return d
}

func TestNewASIF_InvalidCodec(t *testing.T) {
	if _, err := NewASIF(audio.Format{Codec: "pcm"}); err == nil {
		t.Fatal("expected error for invalid codec, got nil")
	}
}

func TestASIFDecodeFrame(t *testing.T) {
	d := newASIFDecoder(t)

	packet := append(asif.EncodeHeader(44100, 1, 3), 10, 5, 250)
	frame, err := d.DecodeFrame(packet)
	if err != nil {
		t.Fatalf("DecodeFrame() failed: %v", err)
	}

	if frame.SampleRate != 44100 || frame.Channels() != 1 {
		t.Errorf("unexpected frame layout: rate %d channels %d", frame.SampleRate, frame.Channels())
	}
	if !bytes.Equal(frame.Planes[0], []uint8{10, 15, 9}) {
		t.Errorf("expected [10 15 9], got %v", frame.Planes[0])
	}

	f := d.Format()
	if f.Codec != asif.CodecName || f.BitDepth != 8 || f.SampleFormat != audio.SampleFormatU8P {
		t.Errorf("unexpected format %+v", f)
	}
}

func TestASIFDecodeMultiChannel(t *testing.T) {
	d := newASIFDecoder(t)

	// channel 0 rises by one, channel 1 wraps down past zero
	packet := append(asif.EncodeHeader(8000, 2, 3), 0, 1, 1, 1, 0xFF, 0xFF)
	frame, err := d.DecodeFrame(packet)
	if err != nil {
		t.Fatalf("DecodeFrame() failed: %v", err)
	}

	if !bytes.Equal(frame.Planes[0], []uint8{0, 1, 2}) {
		t.Errorf("channel 0: expected [0 1 2], got %v", frame.Planes[0])
	}
	if !bytes.Equal(frame.Planes[1], []uint8{1, 0, 255}) {
		t.Errorf("channel 1: expected [1 0 255], got %v", frame.Planes[1])
	}
}

func TestASIFDecodeInterleaved(t *testing.T) {
	d := newASIFDecoder(t)

	packet := append(asif.EncodeHeader(8000, 2, 2), 128, 1, 0, 255)
	samples, err := d.Decode(packet)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	expected := []int32{
		audio.SampleFromUint8(128), audio.SampleFromUint8(0),
		audio.SampleFromUint8(129), audio.SampleFromUint8(255),
	}
	if len(samples) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(samples))
	}
	for i := range expected {
		if samples[i] != expected[i] {
			t.Errorf("sample %d: expected %d, got %d", i, expected[i], samples[i])
		}
	}
}

func TestASIFDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		packet []byte
		want   error
	}{
		{"empty", nil, asif.ErrFormatMismatch},
		{"wrong magic", append([]byte("RIFF"), make([]byte, 20)...), asif.ErrFormatMismatch},
		{"zero channels", asif.EncodeHeader(8000, 0, 1), asif.ErrFormatMismatch},
		{"too many channels", asif.EncodeHeader(8000, 17, 0), asif.ErrFormatMismatch},
		{"short body", append(asif.EncodeHeader(8000, 2, 4), 1, 2, 3), asif.ErrTruncatedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newASIFDecoder(t)
			frame, err := d.DecodeFrame(tt.packet)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if frame.Planes != nil {
				t.Error("expected no partial output")
			}
		})
	}
}

func TestASIFDecodeIsStateless(t *testing.T) {
	d := newASIFDecoder(t)
	before := d.Format()

	first := append(asif.EncodeHeader(8000, 1, 2), 50, 50)
	second := append(asif.EncodeHeader(16000, 1, 2), 7, 1)

	if _, err := d.DecodeFrame(first); err != nil {
		t.Fatalf("DecodeFrame() failed: %v", err)
	}
	frame, err := d.DecodeFrame(second)
	if err != nil {
		t.Fatalf("DecodeFrame() failed: %v", err)
	}
	if !bytes.Equal(frame.Planes[0], []uint8{7, 8}) || frame.SampleRate != 16000 {
		t.Errorf("expected independent decode [7 8] at 16000, got %v at %d", frame.Planes[0], frame.SampleRate)
	}

	if d.Format() != before {
		t.Errorf("decoding changed the decoder format: %+v -> %+v", before, d.Format())
	}
}

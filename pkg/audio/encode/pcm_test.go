// ABOUTME: Unit tests for PCM encoder
// ABOUTME: Tests 8-bit, 16-bit and 24-bit PCM encoding
package encode

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/Resonate-Protocol/asif-go/pkg/audio"
)

func TestNewPCM(t *testing.T) {
	tests := []struct {
		name        string
		format      audio.Format
		wantErr     bool
		errContains string
	}{
		{
			name:   "valid 8-bit PCM",
			format: audio.Format{Codec: "pcm", SampleRate: 8000, Channels: 1, BitDepth: 8},
		},
		{
			name:   "valid 16-bit PCM",
			format: audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 16},
		},
		{
			name:   "valid 24-bit PCM",
			format: audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 24},
		},
		{
			name:        "invalid codec",
			format:      audio.Format{Codec: "asif", SampleRate: 48000, Channels: 2, BitDepth: 8},
			wantErr:     true,
			errContains: "invalid codec",
		},
		{
			name:        "unsupported bit depth",
			format:      audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 32},
			wantErr:     true,
			errContains: "unsupported bit depth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoder, err := NewPCM(tt.format)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewPCM() expected error, got nil")
				} else if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("NewPCM() error = %v, want error containing %v", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Errorf("NewPCM() unexpected error = %v", err)
			}
			if encoder == nil {
				t.Errorf("NewPCM() returned nil encoder")
			}
		})
	}
}

func TestPCMEncoder_Encode8Bit(t *testing.T) {
	encoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 8000, Channels: 1, BitDepth: 8})
	if err != nil {
		t.Fatalf("NewPCM() failed: %v", err)
	}
	defer encoder.Close()

	output, err := encoder.Encode([]int32{0, audio.Max24Bit, audio.Min24Bit})
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	expected := []byte{128, 255, 0}
	if string(output) != string(expected) {
		t.Errorf("Encode() = %v, want %v", output, expected)
	}
}

func TestPCMEncoder_Encode16Bit(t *testing.T) {
	encoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 48000, Channels: 2, BitDepth: 16})
	if err != nil {
		t.Fatalf("NewPCM() failed: %v", err)
	}
	defer encoder.Close()

	samples := []int32{0, 0x7FFF00, -0x800000, 0x123400}
	output, err := encoder.Encode(samples)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	if len(output) != len(samples)*2 {
		t.Fatalf("Encode() output size = %d, want %d", len(output), len(samples)*2)
	}
	for i, sample := range samples {
		expected := audio.SampleToInt16(sample)
		actual := int16(binary.LittleEndian.Uint16(output[i*2:]))
		if actual != expected {
			t.Errorf("Sample %d: got %d, want %d", i, actual, expected)
		}
	}
}

func TestPCMEncoder_Encode24Bit(t *testing.T) {
	encoder, err := NewPCM(audio.Format{Codec: "pcm", SampleRate: 96000, Channels: 2, BitDepth: 24})
	if err != nil {
		t.Fatalf("NewPCM() failed: %v", err)
	}
	defer encoder.Close()

	samples := []int32{0x123456, -0x567890}
	output, err := encoder.Encode(samples)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	for i, sample := range samples {
		expected := audio.SampleTo24Bit(sample)
		actual := [3]byte{output[i*3], output[i*3+1], output[i*3+2]}
		if actual != expected {
			t.Errorf("Sample %d: got %v, want %v", i, actual, expected)
		}
	}
}

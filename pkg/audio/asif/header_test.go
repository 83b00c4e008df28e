// ABOUTME: Tests for the ASIF header codec
// ABOUTME: Round trip, layout and rejection of foreign input
package asif

import (
	"bytes"
	"errors"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	data := EncodeHeader(44100, 2, 5)
	if len(data) != HeaderSize {
		t.Fatalf("expected %d bytes, got %d", HeaderSize, len(data))
	}

	h, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader() failed: %v", err)
	}
	if h.SampleRate != 44100 || h.ChannelCount != 2 || h.SampleCount != 5 {
		t.Errorf("expected (44100, 2, 5), got (%d, %d, %d)", h.SampleRate, h.ChannelCount, h.SampleCount)
	}
}

func TestHeaderLayout(t *testing.T) {
	data := EncodeHeader(0x0000AC44, 0x0102, 0x0A0B0C0D)
	expected := []byte{
		'a', 's', 'i', 'f',
		0x44, 0xAC, 0x00, 0x00,
		0x02, 0x01,
		0x0D, 0x0C, 0x0B, 0x0A,
	}
	if !bytes.Equal(data, expected) {
		t.Errorf("expected %v, got %v", expected, data)
	}
}

func TestHeaderBinaryMarshaler(t *testing.T) {
	in := Header{SampleRate: 8000, ChannelCount: 16, SampleCount: 1}
	data, err := in.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() failed: %v", err)
	}

	var out Header
	if err := out.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() failed: %v", err)
	}
	if out != in {
		t.Errorf("expected %+v, got %+v", in, out)
	}
}

func TestParseHeaderRejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte("asif\x40\x1f\x00\x00\x01\x00\x00\x00\x00")},
		{"bad magic", append([]byte("aiff"), make([]byte, 10)...)},
		{"upper case magic", append([]byte("ASIF"), make([]byte, 10)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.data)
			if !errors.Is(err, ErrFormatMismatch) {
				t.Errorf("expected ErrFormatMismatch, got %v", err)
			}
		})
	}
}

func TestHeaderValidate(t *testing.T) {
	tests := []struct {
		channels uint16
		wantErr  bool
	}{
		{0, true},
		{1, false},
		{MaxChannels, false},
		{MaxChannels + 1, true},
	}

	for _, tt := range tests {
		err := Header{SampleRate: 8000, ChannelCount: tt.channels}.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("channels=%d: expected error=%v, got %v", tt.channels, tt.wantErr, err)
		}
		if err != nil && !errors.Is(err, ErrFormatMismatch) {
			t.Errorf("channels=%d: expected ErrFormatMismatch, got %v", tt.channels, err)
		}
	}
}

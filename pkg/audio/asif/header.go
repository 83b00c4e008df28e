// ABOUTME: ASIF stream header serialisation
// ABOUTME: Fixed 14-byte little-endian header preceding the channel blocks
package asif

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	// Magic identifies an ASIF stream
	Magic = "asif"

	// HeaderSize is the encoded header length in bytes
	HeaderSize = 14

	// MaxChannels is the largest channel count the format carries
	MaxChannels = 16

	// Extension is the file extension used by the muxer and demuxer
	Extension = "asif"
)

// Header is the fixed stream header.
//
//	offset 0  : "asif"
//	offset 4  : sample rate    (uint32 LE)
//	offset 8  : channel count  (uint16 LE)
//	offset 10 : sample count   (uint32 LE, per channel)
type Header struct {
	SampleRate   uint32
	ChannelCount uint16
	SampleCount  uint32
}

// BodySize is the number of body bytes that follow the header
func (h Header) BodySize() int {
	return int(h.ChannelCount) * int(h.SampleCount)
}

// EncodeHeader serialises the header fields
func EncodeHeader(sampleRate uint32, channelCount uint16, sampleCount uint32) []byte {
	buf := make([]byte, HeaderSize)
	putHeader(buf, Header{SampleRate: sampleRate, ChannelCount: channelCount, SampleCount: sampleCount})
	return buf
}

// MarshalBinary implements encoding.BinaryMarshaler
func (h Header) MarshalBinary() ([]byte, error) {
	return EncodeHeader(h.SampleRate, h.ChannelCount, h.SampleCount), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (h *Header) UnmarshalBinary(data []byte) error {
	parsed, err := ParseHeader(data)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func putHeader(buf []byte, h Header) {
	copy(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.SampleRate)
	binary.LittleEndian.PutUint16(buf[8:10], h.ChannelCount)
	binary.LittleEndian.PutUint32(buf[10:14], h.SampleCount)
}

// ParseHeader reads the header from the start of data. It does not check the
// channel count; see Header.Validate.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: need %d header bytes, got %d", ErrFormatMismatch, HeaderSize, len(data))
	}
	if !bytes.Equal(data[0:4], []byte(Magic)) {
		return Header{}, fmt.Errorf("%w: bad magic %q", ErrFormatMismatch, data[0:4])
	}

	return Header{
		SampleRate:   binary.LittleEndian.Uint32(data[4:8]),
		ChannelCount: binary.LittleEndian.Uint16(data[8:10]),
		SampleCount:  binary.LittleEndian.Uint32(data[10:14]),
	}, nil
}

// Validate rejects channel counts the format cannot carry
func (h Header) Validate() error {
	if h.ChannelCount == 0 {
		return fmt.Errorf("%w: zero channels", ErrFormatMismatch)
	}
	if h.ChannelCount > MaxChannels {
		return fmt.Errorf("%w: %d channels (max %d)", ErrFormatMismatch, h.ChannelCount, MaxChannels)
	}
	return nil
}

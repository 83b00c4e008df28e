// ABOUTME: ASIF demuxer
// ABOUTME: Registers one u8p audio stream and reads the whole source as one packet
package asif

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

// Packet is one unit of encoded data. An ASIF stream is always a single packet
// holding the header and every channel block.
type Packet struct {
	Data        []byte
	StreamIndex int
	Pos         int64
}

// Demuxer reads ASIF packets from a transport
type Demuxer struct {
	r        TransportReader
	registry StreamRegistry
	stream   *Stream
	done     bool
}

// NewDemuxer creates a demuxer over r reporting into registry
func NewDemuxer(r TransportReader, registry StreamRegistry) *Demuxer {
	return &Demuxer{r: r, registry: registry}
}

// ReadHeader registers the single audio stream and returns its handle
func (d *Demuxer) ReadHeader() (*Stream, error) {
	if d.stream != nil {
		return d.stream, nil
	}
	st, err := d.registry.NewStream(audioStreamParams())
	if err != nil {
		return nil, fmt.Errorf("failed to register stream: %w", err)
	}
	d.stream = st
	return st, nil
}

// Stream returns the registered stream, or nil before ReadHeader
func (d *Demuxer) Stream() *Stream {
	return d.stream
}

// ReadPacket reads everything from the current position to the end of the
// transport. A short read yields ErrTruncatedInput and no packet; once the
// packet has been returned further calls yield ErrExhausted.
func (d *Demuxer) ReadPacket() (*Packet, error) {
	if d.done {
		return nil, ErrExhausted
	}
	if d.stream == nil {
		if _, err := d.ReadHeader(); err != nil {
			return nil, err
		}
	}

	size, err := d.r.Size()
	if err != nil {
		return nil, fmt.Errorf("failed to get transport size: %w", err)
	}
	pos, err := d.r.Position()
	if err != nil {
		return nil, fmt.Errorf("failed to get transport position: %w", err)
	}

	remaining := size - pos
	if remaining <= 0 {
		d.done = true
		return nil, ErrExhausted
	}

	data := make([]byte, remaining)
	n, err := io.ReadFull(d.r, data)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: read %d of %d bytes", ErrTruncatedInput, n, remaining)
		}
		return nil, fmt.Errorf("transport read failed: %w", err)
	}

	d.done = true

	log.Debug().
		Int64("pos", pos).
		Int("size", len(data)).
		Msg("read asif packet")

	return &Packet{Data: data, StreamIndex: d.stream.Index, Pos: pos}, nil
}

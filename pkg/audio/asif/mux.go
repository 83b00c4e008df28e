// ABOUTME: ASIF muxer
// ABOUTME: Writes encoded packets to the output verbatim
package asif

import (
	"fmt"
	"io"
)

// MuxerFlags describe container capabilities
type MuxerFlags uint32

const (
	// FlagNoTimestamps marks containers that carry no timestamps
	FlagNoTimestamps MuxerFlags = 1 << iota
)

// Muxer writes ASIF packets to a sequential writer
type Muxer struct {
	w       io.Writer
	written int64
}

// NewMuxer creates a muxer writing to w
func NewMuxer(w io.Writer) *Muxer {
	return &Muxer{w: w}
}

// Flags reports the muxer's container flags
func (m *Muxer) Flags() MuxerFlags {
	return FlagNoTimestamps
}

// WritePacket writes p.Data as-is
func (m *Muxer) WritePacket(p *Packet) error {
	n, err := m.w.Write(p.Data)
	m.written += int64(n)
	if err != nil {
		return fmt.Errorf("failed to write packet: %w", err)
	}
	return nil
}

// Written returns the number of bytes written so far
func (m *Muxer) Written() int64 {
	return m.written
}

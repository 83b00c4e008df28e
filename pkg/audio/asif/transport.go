// ABOUTME: Byte transports used by the ASIF demuxer
// ABOUTME: Adapts io.ReadSeeker to a sized, positioned sequential reader
package asif

import (
	"fmt"
	"io"
)

// TransportReader is a sequential byte source that knows its total size and
// current position.
type TransportReader interface {
	io.Reader
	Size() (int64, error)
	Position() (int64, error)
}

// FileTransport adapts an io.ReadSeeker such as *os.File or *bytes.Reader
type FileTransport struct {
	rs io.ReadSeeker
}

// NewFileTransport wraps rs
func NewFileTransport(rs io.ReadSeeker) *FileTransport {
	return &FileTransport{rs: rs}
}

func (t *FileTransport) Read(p []byte) (int, error) {
	return t.rs.Read(p)
}

// Size returns the total length of the underlying source
func (t *FileTransport) Size() (int64, error) {
	cur, err := t.rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("failed to read position: %w", err)
	}
	end, err := t.rs.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("failed to seek to end: %w", err)
	}
	if _, err := t.rs.Seek(cur, io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed to restore position: %w", err)
	}
	return end, nil
}

// Position returns the current read offset
func (t *FileTransport) Position() (int64, error) {
	return t.rs.Seek(0, io.SeekCurrent)
}

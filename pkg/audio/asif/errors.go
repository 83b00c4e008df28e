// ABOUTME: Error values for the ASIF codec and container
// ABOUTME: Sentinels matched with errors.Is by callers
package asif

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrFormatMismatch means the input is not ASIF: the magic is missing or
	// the input is shorter than a header.
	ErrFormatMismatch = errors.New("asif: format mismatch")

	// ErrTruncatedInput means fewer bytes were available than declared.
	ErrTruncatedInput = errors.New("asif: truncated input")

	// ErrAllocation means a channel buffer could not grow. The encoding
	// session that returned it is no longer usable.
	ErrAllocation = errors.New("asif: buffer allocation failed")

	// ErrExhausted is returned once the single packet of a stream has
	// already been produced. It matches io.EOF.
	ErrExhausted = fmt.Errorf("asif: stream exhausted: %w", io.EOF)

	// ErrNotReady is returned by Finalize before end of stream was signalled.
	ErrNotReady = errors.New("asif: end of stream not signalled")

	// ErrTooManyChannels is returned for channel counts above the limit.
	ErrTooManyChannels = errors.New("asif: too many channels")

	// ErrChannelMismatch is returned when a frame's layout differs from the
	// session's channel count or its planes differ in length.
	ErrChannelMismatch = errors.New("asif: channel layout mismatch")

	// ErrSessionEnded is returned by Ingest after end of stream.
	ErrSessionEnded = errors.New("asif: session already ended")
)

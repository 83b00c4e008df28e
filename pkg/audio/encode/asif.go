// ABOUTME: ASIF audio encoder
// ABOUTME: Accumulates planar 8-bit frames and emits one delta-coded packet at end of stream
package encode

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Resonate-Protocol/asif-go/pkg/audio"
	"github.com/Resonate-Protocol/asif-go/pkg/audio/asif"
)

const (
	// DefaultInitialCapacity is the starting buffer size per channel in bytes
	DefaultInitialCapacity = 8000

	// DefaultMaxBufferBytes caps a single channel buffer
	DefaultMaxBufferBytes = math.MaxInt32
)

// ASIFConfig configures an ASIF encoding session
type ASIFConfig struct {
	SampleRate int
	Channels   int

	// InitialCapacity is the starting per-channel buffer size. Zero means
	// DefaultInitialCapacity.
	InitialCapacity int

	// MaxChannels limits Channels. Zero means asif.MaxChannels; larger
	// values are clamped to it since the header cannot describe more.
	MaxChannels int

	// MaxBufferBytes limits growth of a channel buffer. Zero means
	// DefaultMaxBufferBytes.
	MaxBufferBytes int
}

type sessionState int

const (
	stateOpen sessionState = iota
	stateEnded
	stateFlushed
	stateFailed
)

func (s sessionState) String() string {
	switch s {
	case stateOpen:
		return "open"
	case stateEnded:
		return "ended"
	case stateFlushed:
		return "flushed"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// channelBuffer is one channel's samples. len(data) is the capacity, used
// counts the valid prefix.
type channelBuffer struct {
	data []byte
	used int
}

// ASIFEncoder is a single encoding session. It is not safe for concurrent use.
type ASIFEncoder struct {
	id         uuid.UUID
	sampleRate int
	channels   int
	buffers    []*channelBuffer
	capacity   int
	maxBytes   int
	samples    int
	state      sessionState
	logger     zerolog.Logger
}

// NewASIF creates an ASIF encoder for format
func NewASIF(format audio.Format) (*ASIFEncoder, error) {
	if format.Codec != asif.CodecName {
		return nil, fmt.Errorf("invalid codec for ASIF encoder: %s", format.Codec)
	}
	if format.BitDepth != 0 && format.BitDepth != 8 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 8)", format.BitDepth)
	}

	return NewASIFSession(ASIFConfig{
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
	})
}

// NewASIFSession creates an encoding session from cfg
func NewASIFSession(cfg ASIFConfig) (*ASIFEncoder, error) {
	maxChannels := cfg.MaxChannels
	if maxChannels <= 0 || maxChannels > asif.MaxChannels {
		maxChannels = asif.MaxChannels
	}
	if cfg.Channels < 1 {
		return nil, fmt.Errorf("%w: need at least one channel", asif.ErrChannelMismatch)
	}
	if cfg.Channels > maxChannels {
		return nil, fmt.Errorf("%w: %d (max %d)", asif.ErrTooManyChannels, cfg.Channels, maxChannels)
	}
	if cfg.SampleRate < 0 || int64(cfg.SampleRate) > math.MaxUint32 {
		return nil, fmt.Errorf("invalid sample rate: %d", cfg.SampleRate)
	}

	capacity := cfg.InitialCapacity
	if capacity <= 0 {
		capacity = DefaultInitialCapacity
	}
	maxBytes := cfg.MaxBufferBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBufferBytes
	}
	if capacity > maxBytes {
		return nil, fmt.Errorf("%w: initial capacity %d exceeds limit %d", asif.ErrAllocation, capacity, maxBytes)
	}

	id := uuid.New()
	e := &ASIFEncoder{
		id:         id,
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
		buffers:    make([]*channelBuffer, cfg.Channels),
		capacity:   capacity,
		maxBytes:   maxBytes,
		logger:     log.With().Str("session", id.String()).Logger(),
	}
	for ch := range e.buffers {
		e.buffers[ch] = &channelBuffer{data: make([]byte, capacity)}
	}

	e.logger.Debug().
		Int("sample_rate", cfg.SampleRate).
		Int("channels", cfg.Channels).
		Int("capacity", capacity).
		Msg("asif session created")

	return e, nil
}

// ID identifies the session in logs
func (e *ASIFEncoder) ID() uuid.UUID { return e.id }

// Channels returns the session's fixed channel count
func (e *ASIFEncoder) Channels() int { return e.channels }

// Samples returns the per-channel sample count ingested so far
func (e *ASIFEncoder) Samples() int { return e.samples }

// Capacity returns the current per-channel buffer capacity
func (e *ASIFEncoder) Capacity() int { return e.capacity }

// Ended reports whether end of stream has been signalled
func (e *ASIFEncoder) Ended() bool { return e.state == stateEnded || e.state == stateFlushed }

// Ingest appends one planar frame. The frame must carry one plane per
// session channel, all of equal length. A rejected frame leaves the session
// unchanged.
func (e *ASIFEncoder) Ingest(frame audio.Frame) error {
	if err := e.checkOpen(); err != nil {
		return err
	}

	if frame.Channels() != e.channels {
		return fmt.Errorf("%w: frame has %d channels, session has %d", asif.ErrChannelMismatch, frame.Channels(), e.channels)
	}
	n := frame.Samples()
	for ch, plane := range frame.Planes {
		if len(plane) != n {
			return fmt.Errorf("%w: channel %d holds %d samples, expected %d", asif.ErrChannelMismatch, ch, len(plane), n)
		}
	}
	if n == 0 {
		return nil
	}

	if err := e.reserve(n); err != nil {
		e.logger.Debug().Err(err).Stringer("state", e.state).Msg("asif session failed")
		e.state = stateFailed
		e.buffers = nil
		return err
	}

	for ch, plane := range frame.Planes {
		buf := e.buffers[ch]
		copy(buf.data[buf.used:], plane)
		buf.used += n
	}
	e.samples += n

	return nil
}

func (e *ASIFEncoder) checkOpen() error {
	switch e.state {
	case stateFailed:
		return asif.ErrAllocation
	case stateEnded, stateFlushed:
		return asif.ErrSessionEnded
	}
	return nil
}

// reserve doubles the capacity of every channel until n more samples fit
func (e *ASIFEncoder) reserve(n int) error {
	need := e.samples + n
	if need < e.samples || int64(need) > math.MaxUint32 {
		return fmt.Errorf("%w: %d samples overflow the sample counter", asif.ErrAllocation, need)
	}
	if need <= e.capacity {
		return nil
	}

	newCap := e.capacity
	for newCap < need {
		if newCap > e.maxBytes/2 {
			return fmt.Errorf("%w: cannot grow past %d bytes for %d samples", asif.ErrAllocation, e.maxBytes, need)
		}
		newCap *= 2
	}

	for _, buf := range e.buffers {
		grown, err := growBuffer(buf.data[:buf.used], newCap)
		if err != nil {
			return err
		}
		buf.data = grown
	}

	e.logger.Debug().
		Int("from", e.capacity).
		Int("to", newCap).
		Msg("asif buffers grown")
	e.capacity = newCap

	return nil
}

func growBuffer(used []byte, capacity int) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", asif.ErrAllocation, r)
		}
	}()
	data = make([]byte, capacity)
	copy(data, used)
	return data, nil
}

// SignalEnd marks end of stream. Calling it again has no further effect.
func (e *ASIFEncoder) SignalEnd() {
	if e.state == stateOpen {
		e.state = stateEnded
		e.logger.Debug().Int("samples", e.samples).Msg("asif end of stream")
	}
}

// Finalize returns the complete stream: header plus one delta block per
// channel. It returns asif.ErrNotReady before SignalEnd and asif.ErrExhausted
// once the packet has been produced.
func (e *ASIFEncoder) Finalize() ([]byte, error) {
	switch e.state {
	case stateOpen:
		return nil, asif.ErrNotReady
	case stateFlushed:
		return nil, asif.ErrExhausted
	case stateFailed:
		return nil, asif.ErrAllocation
	}

	planes := make([][]uint8, len(e.buffers))
	for ch, buf := range e.buffers {
		planes[ch] = buf.data[:buf.used]
	}

	packet, err := asif.EncodePacket(uint32(e.sampleRate), planes, e.samples)
	if err != nil {
		return nil, fmt.Errorf("failed to encode asif packet: %w", err)
	}

	e.state = stateFlushed
	e.buffers = nil

	e.logger.Debug().
		Int("samples", e.samples).
		Int("bytes", len(packet)).
		Msg("asif packet finalized")

	return packet, nil
}

// Encode de-interleaves samples in 24-bit range and ingests them. ASIF emits
// nothing until Flush, so the returned data is always empty.
func (e *ASIFEncoder) Encode(samples []int32) ([]byte, error) {
	if err := e.checkOpen(); err != nil {
		return nil, err
	}
	frame := audio.Deinterleave(samples, e.sampleRate, e.channels)
	if frame.Samples()*e.channels != len(samples) {
		return nil, fmt.Errorf("%w: %d samples do not fill whole frames of %d channels", asif.ErrChannelMismatch, len(samples), e.channels)
	}
	if err := e.Ingest(frame); err != nil {
		return nil, err
	}
	return nil, nil
}

// Flush signals end of stream and returns the finalized packet
func (e *ASIFEncoder) Flush() ([]byte, error) {
	e.SignalEnd()
	return e.Finalize()
}

// Close releases the session's buffers
func (e *ASIFEncoder) Close() error {
	e.buffers = nil
	if e.state == stateOpen || e.state == stateEnded {
		e.state = stateFlushed
	}
	return nil
}

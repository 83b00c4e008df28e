// ABOUTME: ASIF delta coding for unsigned 8-bit channel blocks
// ABOUTME: Clipping encoder with deferred catchup and wraparound decoder
package asif

import (
	"fmt"
)

const (
	maxDelta = 127
	minDelta = -128
)

// deltaState carries the clipping overflow from one delta to the next.
type deltaState struct {
	pending bool
	catchup int
}

// next returns the delta byte for cur given the previous absolute sample.
//
// The difference is always taken between the original samples. A pending
// catchup is only applied when prev sits at 127 (added) or -128 (subtracted)
// and is cleared either way. prev is an unsigned sample, so the -128 branch
// never fires; streams written by other encoders depend on that.
func (s *deltaState) next(prev, cur uint8) byte {
	p := int(prev)
	d := int(cur) - p

	if s.pending {
		s.pending = false
		if p == 127 {
			d += s.catchup
		}
		if p == -128 {
			d -= s.catchup
		}
	}

	switch {
	case d > maxDelta:
		s.pending = true
		s.catchup = d - maxDelta
		d = maxDelta
	case d < minDelta:
		s.pending = true
		s.catchup = d + 128
		d = minDelta
	}

	return byte(int8(d))
}

// EncodeDeltas writes the delta stream for one channel into dst, which must
// hold len(samples) bytes. The first byte is the raw first sample.
func EncodeDeltas(dst []byte, samples []uint8) {
	if len(samples) == 0 {
		return
	}
	dst[0] = samples[0]

	var st deltaState
	for i := 1; i < len(samples); i++ {
		dst[i] = st.next(samples[i-1], samples[i])
	}
}

// DecodeDeltas rebuilds absolute samples from one channel's delta stream
// by plain 8-bit wraparound accumulation.
func DecodeDeltas(dst []uint8, deltas []byte) {
	if len(deltas) == 0 {
		return
	}
	value := deltas[0]
	dst[0] = value
	for i := 1; i < len(deltas); i++ {
		value += deltas[i]
		dst[i] = value
	}
}

// EncodePacket builds a complete stream: the header followed by one delta
// block per channel, channel 0 first. Every plane must hold sampleCount
// samples.
func EncodePacket(sampleRate uint32, planes [][]uint8, sampleCount int) ([]byte, error) {
	if len(planes) == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrChannelMismatch)
	}
	if len(planes) > MaxChannels {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyChannels, len(planes), MaxChannels)
	}
	for ch, plane := range planes {
		if len(plane) < sampleCount {
			return nil, fmt.Errorf("%w: channel %d holds %d of %d samples", ErrChannelMismatch, ch, len(plane), sampleCount)
		}
	}

	h := Header{
		SampleRate:   sampleRate,
		ChannelCount: uint16(len(planes)),
		SampleCount:  uint32(sampleCount),
	}
	out := make([]byte, HeaderSize+h.BodySize())
	putHeader(out, h)

	body := out[HeaderSize:]
	for ch, plane := range planes {
		EncodeDeltas(body[ch*sampleCount:(ch+1)*sampleCount], plane[:sampleCount])
	}
	return out, nil
}

// DecodeBody reconstructs every channel from a body laid out as sequential
// channel blocks of h.SampleCount bytes.
func DecodeBody(h Header, body []byte) ([][]uint8, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	n := int(h.SampleCount)
	if len(body) < h.BodySize() {
		return nil, fmt.Errorf("%w: body holds %d of %d bytes", ErrTruncatedInput, len(body), h.BodySize())
	}

	planes := make([][]uint8, h.ChannelCount)
	for ch := range planes {
		planes[ch] = make([]uint8, n)
		DecodeDeltas(planes[ch], body[ch*n:(ch+1)*n])
	}
	return planes, nil
}

// DecodePacket parses the header and reconstructs every channel
func DecodePacket(data []byte) (Header, [][]uint8, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Header{}, nil, err
	}
	planes, err := DecodeBody(h, data[HeaderSize:])
	if err != nil {
		return Header{}, nil, err
	}
	return h, planes, nil
}

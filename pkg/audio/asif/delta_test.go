// ABOUTME: Tests for ASIF delta coding
// ABOUTME: Covers clipping, catchup gating, wraparound decoding and body layout
package asif

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeDeltasWraparound(t *testing.T) {
	out := make([]uint8, 3)
	DecodeDeltas(out, []byte{10, 5, 250})

	expected := []uint8{10, 15, 9}
	if !bytes.Equal(out, expected) {
		t.Errorf("expected %v, got %v", expected, out)
	}
}

func TestEncodeDeltasSmallSteps(t *testing.T) {
	samples := []uint8{128, 130, 120, 120, 0}
	out := make([]byte, len(samples))
	EncodeDeltas(out, samples)

	expected := []byte{128, 2, 0xF6, 0, 0x88} // +2, -10, 0, -120
	if !bytes.Equal(out, expected) {
		t.Fatalf("expected %v, got %v", expected, out)
	}

	decoded := make([]uint8, len(out))
	DecodeDeltas(decoded, out)
	if !bytes.Equal(decoded, samples) {
		t.Errorf("expected exact reconstruction %v, got %v", samples, decoded)
	}
}

func TestDeltaStateClipsPositive(t *testing.T) {
	var st deltaState
	b := st.next(0, 200)

	if b != 127 {
		t.Errorf("expected delta 127, got %d", b)
	}
	if !st.pending {
		t.Fatal("expected catchup to be pending")
	}
	if st.catchup != 200-127 {
		t.Errorf("expected catchup %d, got %d", 200-127, st.catchup)
	}
}

func TestDeltaStateClipsNegative(t *testing.T) {
	var st deltaState
	b := st.next(255, 0)

	if int8(b) != -128 {
		t.Errorf("expected delta -128, got %d", int8(b))
	}
	if !st.pending || st.catchup != -255+128 {
		t.Errorf("expected pending catchup %d, got pending=%v catchup=%d", -255+128, st.pending, st.catchup)
	}
}

func TestDeltaStateCatchupAtUpperBoundary(t *testing.T) {
	st := deltaState{pending: true, catchup: 5}
	b := st.next(127, 130)

	if b != 8 {
		t.Errorf("expected 3+5=8, got %d", b)
	}
	if st.pending {
		t.Error("expected catchup to be cleared")
	}
}

func TestDeltaStateCatchupCanOverflowAgain(t *testing.T) {
	st := deltaState{pending: true, catchup: 100}
	b := st.next(127, 200)

	if b != 127 {
		t.Errorf("expected clipped 127, got %d", b)
	}
	if !st.pending || st.catchup != 73+100-127 {
		t.Errorf("expected pending catchup %d, got pending=%v catchup=%d", 73+100-127, st.pending, st.catchup)
	}
}

func TestDeltaStateCatchupDroppedOffBoundary(t *testing.T) {
	st := deltaState{pending: true, catchup: 5}
	b := st.next(100, 110)

	if b != 10 {
		t.Errorf("expected unadjusted 10, got %d", b)
	}
	if st.pending {
		t.Error("expected catchup to be cleared even without a boundary match")
	}
}

// Samples are unsigned, so a previous value of -128 never occurs and a
// negative-side catchup is never subtracted. This pins that behaviour.
func TestDeltaStateLowerBoundaryNeverMatches(t *testing.T) {
	for prev := 0; prev < 256; prev++ {
		if prev == 127 {
			continue
		}
		st := deltaState{pending: true, catchup: -50}
		b := st.next(uint8(prev), uint8(prev))
		if b != 0 {
			t.Fatalf("prev=%d: expected untouched zero delta, got %d", prev, int8(b))
		}
	}
}

func TestEncodeUsesTrueDifferences(t *testing.T) {
	samples := []uint8{0, 200, 255}
	out := make([]byte, len(samples))
	EncodeDeltas(out, samples)

	// second delta is 255-200, not 255-127
	expected := []byte{0, 127, 55}
	if !bytes.Equal(out, expected) {
		t.Fatalf("expected %v, got %v", expected, out)
	}

	// the decoder does not know about clipping, so the step is lost
	decoded := make([]uint8, len(out))
	DecodeDeltas(decoded, out)
	if !bytes.Equal(decoded, []uint8{0, 127, 182}) {
		t.Errorf("expected lossy reconstruction [0 127 182], got %v", decoded)
	}
}

func TestEncodeDeltasEmptyAndSingle(t *testing.T) {
	EncodeDeltas(nil, nil)

	out := make([]byte, 1)
	EncodeDeltas(out, []uint8{42})
	if out[0] != 42 {
		t.Errorf("expected raw first sample 42, got %d", out[0])
	}
}

func TestEncodePacketBodyLayout(t *testing.T) {
	planes := [][]uint8{
		{10, 11, 12, 13},
		{50, 40, 30, 20},
	}
	packet, err := EncodePacket(8000, planes, 4)
	if err != nil {
		t.Fatalf("EncodePacket() failed: %v", err)
	}

	body := packet[HeaderSize:]
	if len(body) != 8 {
		t.Fatalf("expected 8 body bytes, got %d", len(body))
	}

	expected := []byte{10, 1, 1, 1, 50, 0xF6, 0xF6, 0xF6}
	if !bytes.Equal(body, expected) {
		t.Errorf("expected planar body %v, got %v", expected, body)
	}

	h, decoded, err := DecodePacket(packet)
	if err != nil {
		t.Fatalf("DecodePacket() failed: %v", err)
	}
	if h.ChannelCount != 2 || h.SampleCount != 4 || h.SampleRate != 8000 {
		t.Errorf("unexpected header %+v", h)
	}
	for ch := range planes {
		if !bytes.Equal(decoded[ch], planes[ch]) {
			t.Errorf("channel %d: expected %v, got %v", ch, planes[ch], decoded[ch])
		}
	}
}

func TestEncodePacketRejectsBadLayout(t *testing.T) {
	if _, err := EncodePacket(8000, nil, 0); !errors.Is(err, ErrChannelMismatch) {
		t.Errorf("expected ErrChannelMismatch for no channels, got %v", err)
	}

	tooMany := make([][]uint8, MaxChannels+1)
	if _, err := EncodePacket(8000, tooMany, 0); !errors.Is(err, ErrTooManyChannels) {
		t.Errorf("expected ErrTooManyChannels, got %v", err)
	}

	short := [][]uint8{{1, 2, 3}, {1}}
	if _, err := EncodePacket(8000, short, 3); !errors.Is(err, ErrChannelMismatch) {
		t.Errorf("expected ErrChannelMismatch, got %v", err)
	}
}

func TestDecodeBodyTruncated(t *testing.T) {
	h := Header{SampleRate: 8000, ChannelCount: 2, SampleCount: 4}
	_, err := DecodeBody(h, make([]byte, 7))
	if !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("expected ErrTruncatedInput, got %v", err)
	}
}

func TestDecodeBodyZeroSamples(t *testing.T) {
	h := Header{SampleRate: 8000, ChannelCount: 3, SampleCount: 0}
	planes, err := DecodeBody(h, nil)
	if err != nil {
		t.Fatalf("DecodeBody() failed: %v", err)
	}
	if len(planes) != 3 {
		t.Fatalf("expected 3 planes, got %d", len(planes))
	}
	for ch, p := range planes {
		if len(p) != 0 {
			t.Errorf("channel %d: expected empty plane, got %d samples", ch, len(p))
		}
	}
}

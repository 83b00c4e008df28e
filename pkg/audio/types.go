// ABOUTME: Audio type definitions
// ABOUTME: Defines audio formats, planar 8-bit frames and sample conversions
package audio

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23

	// Unsigned 8-bit PCM is centred on 128
	U8Center = 128
)

// Sample format names used in Format.SampleFormat
const (
	SampleFormatU8P = "u8p" // unsigned 8-bit, planar
	SampleFormatS16 = "s16" // signed 16-bit, interleaved
	SampleFormatS24 = "s24" // signed 24-bit, interleaved
)

// Format describes audio stream format
type Format struct {
	Codec        string
	SampleRate   int
	Channels     int
	BitDepth     int
	SampleFormat string
}

// Frame holds planar unsigned 8-bit audio: one plane per channel, every
// plane the same length.
type Frame struct {
	SampleRate int
	Planes     [][]uint8
}

// NewFrame allocates a frame with the given channel and sample counts
func NewFrame(sampleRate, channels, samples int) Frame {
	planes := make([][]uint8, channels)
	for ch := range planes {
		planes[ch] = make([]uint8, samples)
	}
	return Frame{SampleRate: sampleRate, Planes: planes}
}

// Channels returns the number of planes
func (f Frame) Channels() int {
	return len(f.Planes)
}

// Samples returns the per-channel sample count
func (f Frame) Samples() int {
	if len(f.Planes) == 0 {
		return 0
	}
	return len(f.Planes[0])
}

// Interleave converts the frame to interleaved int32 samples in 24-bit range
func (f Frame) Interleave() []int32 {
	channels := f.Channels()
	n := f.Samples()
	out := make([]int32, n*channels)
	for i := 0; i < n; i++ {
		for ch := 0; ch < channels; ch++ {
			out[i*channels+ch] = SampleFromUint8(f.Planes[ch][i])
		}
	}
	return out
}

// Deinterleave splits interleaved int32 samples into a planar 8-bit frame.
// Trailing samples that do not fill a whole sample frame are dropped.
func Deinterleave(samples []int32, sampleRate, channels int) Frame {
	if channels <= 0 {
		return Frame{SampleRate: sampleRate}
	}
	n := len(samples) / channels
	f := NewFrame(sampleRate, channels, n)
	for i := 0; i < n; i++ {
		for ch := 0; ch < channels; ch++ {
			f.Planes[ch][i] = SampleToUint8(samples[i*channels+ch])
		}
	}
	return f
}

// SampleToInt16 converts int32 sample to int16 (for 16-bit playback)
func SampleToInt16(sample int32) int16 {
	// Right-shift to convert 24-bit (or 16-bit) to 16-bit range
	return int16(sample >> 8)
}

// SampleFromInt16 converts int16 sample to int32 (left-justified in 24-bit)
func SampleFromInt16(sample int16) int32 {
	return int32(sample) << 8
}

// SampleToUint8 converts a 24-bit int32 sample to unsigned 8-bit PCM
func SampleToUint8(sample int32) uint8 {
	if sample > Max24Bit {
		sample = Max24Bit
	} else if sample < Min24Bit {
		sample = Min24Bit
	}
	return uint8((sample >> 16) + U8Center)
}

// SampleFromUint8 converts unsigned 8-bit PCM to int32 in 24-bit range
func SampleFromUint8(sample uint8) int32 {
	return (int32(sample) - U8Center) << 16
}

// ScaleTo24Bit moves a signed sample of the given bit depth into 24-bit range
func ScaleTo24Bit(sample int32, bitDepth int) int32 {
	shift := bitDepth - 24
	if shift > 0 {
		return sample >> shift
	}
	return sample << -shift
}

// SampleTo24Bit converts int32 to 24-bit packed bytes (little-endian)
func SampleTo24Bit(sample int32) [3]byte {
	return [3]byte{
		byte(sample),
		byte(sample >> 8),
		byte(sample >> 16),
	}
}

// SampleFrom24Bit converts 24-bit packed bytes to int32 (little-endian)
func SampleFrom24Bit(b [3]byte) int32 {
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign extend from 24-bit to 32-bit
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF
	}
	return val
}

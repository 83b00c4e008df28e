// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Frame types and sample conversion functions
// Package audio provides fundamental audio types shared by the ASIF codec,
// the PCM codecs and the playback backends.
//
//   - Format: Describes an audio stream (codec, sample rate, channels, bit depth)
//   - Frame: Planar unsigned 8-bit samples, one plane per channel
//
// Conversions between unsigned 8-bit, 16-bit and 24-bit samples keep int32
// in the 24-bit range as the common interchange representation.
//
// Example:
//
//	frame := audio.NewFrame(8000, 2, 160)
//	interleaved := frame.Interleave()
//	back := audio.Deinterleave(interleaved, 8000, 2)
package audio

// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Output interface and oto implementation
// Package output provides audio playback.
//
// The oto backend plays unsigned 8-bit PCM natively, which is what ASIF
// decodes to; other bit depths are played as signed 16-bit.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(8000, 1, 8)
//	err = out.Write(frame.Interleave())
package output

// ABOUTME: Audio decoder package for multiple codec support
// ABOUTME: Provides Decoder interface and implementations for PCM, ASIF, FLAC, MP3
// Package decode provides audio decoders for various codecs.
//
// Supports: PCM (8-bit unsigned, 16-bit and 24-bit), ASIF, FLAC, MP3
//
// All decoders implement the Decoder interface and output interleaved int32
// samples in 24-bit range. The ASIF decoder additionally exposes the planar
// 8-bit frame through DecodeFrame.
//
// Example:
//
//	decoder, err := decode.NewASIF(audio.Format{Codec: "asif"})
//	frame, err := decoder.DecodeFrame(packet)
package decode

// ABOUTME: Audio encoder package for encoding PCM to various formats
// ABOUTME: Provides Encoder interface and implementations for PCM and ASIF
// Package encode provides audio encoders.
//
// Supports: PCM (8-bit unsigned, 16-bit and 24-bit) and ASIF.
//
// The ASIF encoder is a session: planar 8-bit frames are ingested until end
// of stream is signalled, then Finalize returns the whole stream as one
// packet. Later Finalize calls return asif.ErrExhausted.
//
// Example:
//
//	enc, err := encode.NewASIF(audio.Format{Codec: "asif", SampleRate: 8000, Channels: 1})
//	err = enc.Ingest(frame)
//	enc.SignalEnd()
//	packet, err := enc.Finalize()
package encode

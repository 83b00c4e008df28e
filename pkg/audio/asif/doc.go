// ABOUTME: ASIF format package: header, delta coding and container plumbing
// ABOUTME: Shared by the ASIF encoder, decoder and the transcoding tools
// Package asif implements the ASIF differential 8-bit PCM exchange format.
//
// An ASIF stream is a 14-byte header followed by one block per channel.
// Each block holds the channel's first sample verbatim and then one signed
// 8-bit delta per remaining sample:
//
//	"asif" | rate u32 | channels u16 | samples u32 | ch0 block | ch1 block | ...
//
// The encoder clips deltas to [-128, 127] and carries a catchup amount that
// is only re-applied at one boundary value, while the decoder accumulates
// deltas with plain 8-bit wraparound. The two are not exact inverses for
// signals with steps larger than 127.
//
// The package also provides the container pieces: Probe, a Demuxer that
// returns the whole source as one packet, and a Muxer that writes packets
// verbatim.
package asif

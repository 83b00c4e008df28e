// Package transcode converts between common audio files and ASIF.
//
// Sources decode MP3, FLAC, WAV and ASIF files into planar 8-bit frames;
// Encode streams them through one ASIF session and muxes the packet.
package transcode

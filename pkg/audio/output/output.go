// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends
package output

// Output represents an audio output device
type Output interface {
	// Open initializes the output device
	Open(sampleRate, channels, bitDepth int) error

	// Write outputs interleaved samples in 24-bit range (blocks until written)
	Write(samples []int32) error

	// Close releases output resources
	Close() error
}

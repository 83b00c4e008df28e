// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for all audio encoders
package encode

// Encoder encodes PCM int32 samples to various formats
type Encoder interface {
	// Encode converts interleaved PCM samples to encoded audio data. Delayed
	// codecs such as ASIF may return no data until flushed.
	Encode(samples []int32) ([]byte, error)

	// Close releases encoder resources
	Close() error
}

// Flusher is implemented by encoders that hold data until end of stream
type Flusher interface {
	Flush() ([]byte, error)
}

var (
	_ Encoder = (*PCMEncoder)(nil)
	_ Encoder = (*ASIFEncoder)(nil)
	_ Flusher = (*ASIFEncoder)(nil)
)

// ABOUTME: Stream descriptors and the registry the demuxer reports into
// ABOUTME: In-memory registry handing out stream handles
package asif

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Resonate-Protocol/asif-go/pkg/audio"
)

// CodecName is the codec identifier reported for ASIF streams
const CodecName = "asif"

// MediaType of a registered stream
type MediaType string

// MediaTypeAudio is the only media type an ASIF source carries
const MediaTypeAudio MediaType = "audio"

// StreamParams describes a stream being registered. ASIF streams carry no
// start time or timestamps.
type StreamParams struct {
	MediaType    MediaType
	Codec        string
	SampleFormat string
	Planar       bool
}

// Stream is the handle returned by a registry
type Stream struct {
	Index  int
	Params StreamParams
}

// StreamRegistry accepts stream registrations from a demuxer
type StreamRegistry interface {
	NewStream(params StreamParams) (*Stream, error)
}

// Registry is an in-memory StreamRegistry
type Registry struct {
	mu      sync.Mutex
	streams []*Stream
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// NewStream registers a stream and returns its handle
func (r *Registry) NewStream(params StreamParams) (*Stream, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := &Stream{Index: len(r.streams), Params: params}
	r.streams = append(r.streams, st)

	log.Debug().
		Int("index", st.Index).
		Str("codec", params.Codec).
		Str("sample_format", params.SampleFormat).
		Msg("stream registered")

	return st, nil
}

// Streams returns the registered streams in registration order
func (r *Registry) Streams() []*Stream {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Stream, len(r.streams))
	copy(out, r.streams)
	return out
}

// audioStreamParams is what the demuxer registers for every ASIF source
func audioStreamParams() StreamParams {
	return StreamParams{
		MediaType:    MediaTypeAudio,
		Codec:        CodecName,
		SampleFormat: audio.SampleFormatU8P,
		Planar:       true,
	}
}

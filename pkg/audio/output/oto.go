// ABOUTME: Oto-based audio output implementation
// ABOUTME: Plays unsigned 8-bit or signed 16-bit PCM with software volume control
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog/log"

	"github.com/Resonate-Protocol/asif-go/pkg/audio"
)

// Oto output implementation using oto library
type Oto struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	bitDepth   int
	volume     int
	muted      bool
	ready      bool
}

// NewOto creates a new Oto output
func NewOto() *Oto {
	return &Oto{
		volume: 100,
	}
}

// otoFormat maps a bit depth to the oto sample format and its byte width
func otoFormat(bitDepth int) (oto.Format, int) {
	if bitDepth == 8 {
		return oto.FormatUnsignedInt8, 1
	}
	return oto.FormatSignedInt16LE, 2
}

// Open initializes the output device
func (o *Oto) Open(sampleRate, channels, bitDepth int) error {
	if bitDepth != 8 && bitDepth != 16 {
		log.Warn().Int("bit_depth", bitDepth).Msg("oto plays 8 or 16-bit only, using 16-bit")
		bitDepth = 16
	}

	// oto allows one context per process
	if o.otoCtx != nil {
		if o.sampleRate != sampleRate || o.channels != channels || o.bitDepth != bitDepth {
			return fmt.Errorf("output already open at %dHz %dch %d-bit", o.sampleRate, o.channels, o.bitDepth)
		}
		return nil
	}

	format, _ := otoFormat(bitDepth)
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       format,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels
	o.bitDepth = bitDepth

	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()

	o.ready = true

	log.Info().
		Int("sample_rate", sampleRate).
		Int("channels", channels).
		Int("bit_depth", bitDepth).
		Msg("audio output initialized")

	return nil
}

// Write outputs audio samples (blocks until written)
func (o *Oto) Write(samples []int32) error {
	if !o.ready {
		return fmt.Errorf("output not initialized")
	}

	data := encodeSamples(applyVolume(samples, o.volume, o.muted), o.bitDepth)
	if _, err := o.pipeWriter.Write(data); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// Drain waits until the player has consumed everything written so far
func (o *Oto) Drain() {
	if !o.ready {
		return
	}
	o.pipeWriter.Close()
	for o.player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
}

// Close releases output resources
func (o *Oto) Close() error {
	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
	}
	o.ready = false
	return nil
}

// SetVolume sets the volume (0-100)
func (o *Oto) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	o.volume = volume
}

// SetMuted sets mute state
func (o *Oto) SetMuted(muted bool) {
	o.muted = muted
}

// encodeSamples packs 24-bit range samples into the oto wire format
func encodeSamples(samples []int32, bitDepth int) []byte {
	_, width := otoFormat(bitDepth)
	out := make([]byte, len(samples)*width)
	for i, s := range samples {
		if width == 1 {
			out[i] = audio.SampleToUint8(s)
		} else {
			binary.LittleEndian.PutUint16(out[i*2:], uint16(audio.SampleToInt16(s)))
		}
	}
	return out
}

// applyVolume applies volume and mute to samples with clipping protection
func applyVolume(samples []int32, volume int, muted bool) []int32 {
	multiplier := float64(volume) / 100.0
	if muted {
		multiplier = 0
	}

	result := make([]int32, len(samples))
	for i, sample := range samples {
		scaled := int64(float64(sample) * multiplier)
		if scaled > audio.Max24Bit {
			scaled = audio.Max24Bit
		} else if scaled < audio.Min24Bit {
			scaled = audio.Min24Bit
		}
		result[i] = int32(scaled)
	}

	return result
}

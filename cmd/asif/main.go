// ABOUTME: Entry point for the asif command line tool
// ABOUTME: Dispatches encode, decode, probe, info and play subcommands
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/Resonate-Protocol/asif-go/internal/transcode"
	"github.com/Resonate-Protocol/asif-go/internal/version"
	"github.com/Resonate-Protocol/asif-go/pkg/audio"
	"github.com/Resonate-Protocol/asif-go/pkg/audio/output"
	"github.com/Resonate-Protocol/asif-go/pkg/logger"
)

// playChunk is the per-channel sample count handed to the output per write
const playChunk = 4000

const usage = `usage: asif <command> [flags]

commands:
  encode -in FILE -out FILE.asif   convert MP3, FLAC, WAV or ASIF to ASIF
  decode -in FILE.asif -out FILE   convert ASIF to 8-bit WAV
  probe FILE...                    score files as ASIF (100 or 0)
  info FILE                        print an ASIF header
  play FILE                        play an ASIF file
  version                          print version
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		log.Error().Err(err).Msg("asif failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "encode":
		return runEncode(rest, stdout)
	case "decode":
		return runDecode(rest, stdout)
	case "probe":
		return runProbe(rest, stdout)
	case "info":
		return runInfo(rest, stdout)
	case "play":
		return runPlay(ctx, rest)
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "%s %s (%s)\n", version.Product, version.Version, version.Manufacturer)
		return nil
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// newFlagSet returns a subcommand flag set carrying the shared -log-level flag
func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	level := fs.String("log-level", "", "Log level: debug, info, warn, error (default $LOG_LEVEL or info)")
	return fs, level
}

func parse(fs *flag.FlagSet, level *string, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	logger.Init(*level, nil)
	return nil
}

func runEncode(args []string, stdout io.Writer) error {
	fs, level := newFlagSet("encode")
	in := fs.String("in", "", "Input audio file (MP3, FLAC, WAV, ASIF)")
	out := fs.String("out", "", "Output ASIF file (default: input with .asif extension)")
	if err := parse(fs, level, args); err != nil {
		return err
	}
	if *in == "" && fs.NArg() > 0 {
		*in = fs.Arg(0)
	}
	if *in == "" {
		return fmt.Errorf("%w: encode needs -in", errUsage)
	}
	if *out == "" {
		*out = replaceExt(*in, ".asif")
	}

	stats, err := transcode.EncodeFile(*in, *out)
	if err != nil {
		return err
	}

	log.Info().
		Str("in", *in).
		Str("out", *out).
		Int("sample_rate", stats.SampleRate).
		Int("channels", stats.Channels).
		Int("samples", stats.Samples).
		Msg("encoded")
	fmt.Fprintf(stdout, "%s: %d Hz, %d channels, %d samples, %d bytes\n",
		*out, stats.SampleRate, stats.Channels, stats.Samples, stats.Bytes)
	return nil
}

func runDecode(args []string, stdout io.Writer) error {
	fs, level := newFlagSet("decode")
	in := fs.String("in", "", "Input ASIF file")
	out := fs.String("out", "", "Output WAV file (default: input with .wav extension)")
	if err := parse(fs, level, args); err != nil {
		return err
	}
	if *in == "" && fs.NArg() > 0 {
		*in = fs.Arg(0)
	}
	if *in == "" {
		return fmt.Errorf("%w: decode needs -in", errUsage)
	}
	if *out == "" {
		*out = replaceExt(*in, ".wav")
	}

	frame, err := transcode.DecodeFileToWAV(*in, *out)
	if err != nil {
		return err
	}

	log.Info().Str("in", *in).Str("out", *out).Msg("decoded")
	fmt.Fprintf(stdout, "%s: %d Hz, %d channels, %d samples\n",
		*out, frame.SampleRate, frame.Channels(), frame.Samples())
	return nil
}

func runProbe(args []string, stdout io.Writer) error {
	fs, level := newFlagSet("probe")
	if err := parse(fs, level, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: probe needs at least one file", errUsage)
	}

	for _, path := range fs.Args() {
		score, err := transcode.ProbeFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s\t%d\n", path, score)
	}
	return nil
}

func runInfo(args []string, stdout io.Writer) error {
	fs, level := newFlagSet("info")
	if err := parse(fs, level, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: info needs one file", errUsage)
	}

	h, err := transcode.ReadInfo(fs.Arg(0))
	if err != nil {
		return err
	}

	var seconds float64
	if h.SampleRate > 0 {
		seconds = float64(h.SampleCount) / float64(h.SampleRate)
	}
	fmt.Fprintf(stdout, "sample_rate: %d\nchannels: %d\nsamples: %d\nduration: %.3fs\nbody_bytes: %d\n",
		h.SampleRate, h.ChannelCount, h.SampleCount, seconds, h.BodySize())
	return nil
}

func runPlay(ctx context.Context, args []string) error {
	fs, level := newFlagSet("play")
	volume := fs.Int("volume", 100, "Playback volume 0-100")
	if err := parse(fs, level, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: play needs one file", errUsage)
	}

	frame, err := transcode.DecodeFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if frame.Samples() == 0 {
		log.Info().Str("file", fs.Arg(0)).Msg("nothing to play")
		return nil
	}

	out := output.NewOto()
	if err := out.Open(frame.SampleRate, frame.Channels(), 8); err != nil {
		return err
	}
	defer out.Close()
	out.SetVolume(*volume)

	log.Info().
		Str("file", fs.Arg(0)).
		Int("sample_rate", frame.SampleRate).
		Int("channels", frame.Channels()).
		Msg("playing, press Ctrl-C to stop")

	return play(ctx, out, frame)
}

// player is an output that can wait for queued audio to finish
type player interface {
	output.Output
	Drain()
}

// play writes frame to out in chunks, stopping early when ctx is cancelled
func play(ctx context.Context, out player, frame audio.Frame) error {
	n := frame.Samples()
	for start := 0; start < n; start += playChunk {
		select {
		case <-ctx.Done():
			log.Info().Msg("playback interrupted")
			return nil
		default:
		}

		end := min(start+playChunk, n)
		chunk := audio.Frame{SampleRate: frame.SampleRate, Planes: make([][]uint8, frame.Channels())}
		for ch, plane := range frame.Planes {
			chunk.Planes[ch] = plane[start:end]
		}
		if err := out.Write(chunk.Interleave()); err != nil {
			return err
		}
	}

	out.Drain()
	return nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

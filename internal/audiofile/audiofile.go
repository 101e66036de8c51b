package audiofile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/cwbudde/algo-modfx/dsp/core"
)

// Errors returned by the registry and decoders.
var (
	ErrUnknownFormat       = errors.New("audiofile: unknown format")
	ErrUnsupportedFormat   = errors.New("audiofile: unsupported sample format")
	ErrInvalidStream       = errors.New("audiofile: invalid stream")
	ErrInvalidClip         = errors.New("audiofile: clip needs channels >= 1 and a positive sample rate")
	ErrUnsupportedBitDepth = errors.New("audiofile: bit depth must be 16, 24 or 32")
)

// Source is a decoded PCM stream.
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels count, 1 = mono, 2 = stereo.
	Channels() int
	// ReadSamples fills dst with interleaved samples and returns the number
	// of values written. It returns 0, io.EOF once the stream is done.
	ReadSamples(dst []float32) (int, error)
	Close() error
}

// Decoder opens a Source from an encoded stream.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format names to decoders. It is safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	codecs map[string]Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// DefaultRegistry returns a registry with every built-in decoder.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(WAVDecoder{}, "wav", "wave")
	r.Register(AIFFDecoder{}, "aiff", "aif")
	r.Register(MP3Decoder{}, "mp3")
	r.Register(VorbisDecoder{}, "ogg", "oga")

	return r
}

// Register binds d to each of formats.
func (r *Registry) Register(d Decoder, formats ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range formats {
		r.codecs[strings.ToLower(f)] = d
	}
}

// Get returns the decoder for format.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.codecs[strings.ToLower(format)]

	return d, ok
}

// Formats lists the registered format names, sorted.
func (r *Registry) Formats() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.codecs))
	for f := range r.codecs {
		out = append(out, f)
	}

	slices.Sort(out)

	return out
}

// FormatOf returns the format name implied by path's extension.
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Decode picks a decoder by format and decodes r.
func (r *Registry) Decode(format string, rd io.Reader) (Source, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return d.Decode(rd)
}

// ReadFile decodes the whole file at path into a Clip.
func (r *Registry) ReadFile(path string) (Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return Clip{}, err
	}
	defer f.Close()

	src, err := r.Decode(FormatOf(path), f)
	if err != nil {
		return Clip{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	return ReadAll(src)
}

// Clip is a fully decoded signal with interleaved samples.
type Clip struct {
	SampleRate int
	Channels   int
	Samples    []float64
}

// Frames returns the number of complete frames in c.
func (c Clip) Frames() int {
	if c.Channels <= 0 {
		return 0
	}

	return len(c.Samples) / c.Channels
}

// Planar splits c into one slice per channel.
func (c Clip) Planar() [][]float64 {
	planes := core.Planes(c.Channels, c.Frames())
	core.Deinterleave(planes, c.Samples)

	return planes
}

// ClipFromPlanar interleaves the first frames samples of planes.
func ClipFromPlanar(planes [][]float64, frames, sampleRate int) Clip {
	clip := Clip{
		SampleRate: sampleRate,
		Channels:   len(planes),
		Samples:    make([]float64, len(planes)*max(frames, 0)),
	}

	n := core.Interleave(clip.Samples, planes, frames)
	clip.Samples = clip.Samples[:n*len(planes)]

	return clip
}

const readChunk = 4096

// ReadAll drains src into a Clip.
func ReadAll(src Source) (Clip, error) {
	channels := src.Channels()
	if channels < 1 || src.SampleRate() <= 0 {
		return Clip{}, ErrInvalidStream
	}

	clip := Clip{SampleRate: src.SampleRate(), Channels: channels}
	buf := make([]float32, readChunk*channels)

	for {
		n, err := src.ReadSamples(buf)
		for _, v := range buf[:n] {
			clip.Samples = append(clip.Samples, float64(v))
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return Clip{}, err
		}

		if n == 0 {
			break
		}
	}

	clip.Samples = clip.Samples[:clip.Frames()*channels]

	return clip, nil
}

// pcmScale returns the full-scale value of signed integer PCM at bitDepth.
func pcmScale(bitDepth int) (float32, error) {
	switch bitDepth {
	case 16, 24, 32:
		return float32(int64(1) << (bitDepth - 1)), nil
	default:
		return 0, ErrUnsupportedBitDepth
	}
}

package audiofile

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type vorbisSource struct {
	dec oggReader
}

func (s *vorbisSource) SampleRate() int { return s.dec.SampleRate() }
func (s *vorbisSource) Channels() int   { return s.dec.Channels() }
func (s *vorbisSource) Close() error    { return nil }

// ReadSamples reads whole frames only; oggvorbis returns a value count.
func (s *vorbisSource) ReadSamples(dst []float32) (int, error) {
	channels := s.dec.Channels()
	frames := len(dst) / channels
	if frames == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:frames*channels])
	if n == 0 && err == nil {
		return 0, io.EOF
	}

	if err == io.EOF && n > 0 {
		err = nil
	}

	return n, err
}

// VorbisDecoder decodes Ogg Vorbis streams.
type VorbisDecoder struct{}

// Decode implements Decoder.
func (VorbisDecoder) Decode(r io.Reader) (Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}

	if dec.Channels() < 1 {
		return nil, ErrInvalidStream
	}

	return &vorbisSource{dec: dec}, nil
}

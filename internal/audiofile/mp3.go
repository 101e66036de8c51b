package audiofile

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// go-mp3 always yields 16-bit little-endian stereo.
const mp3Channels = 2

type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type mp3Source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
}

func (s *mp3Source) SampleRate() int { return s.sampleRate }
func (s *mp3Source) Channels() int   { return mp3Channels }
func (s *mp3Source) Close() error    { return nil }

func (s *mp3Source) ReadSamples(dst []float32) (int, error) {
	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}

	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.dec, s.buf)
	samples := n / 2

	for i := range samples {
		v := int16(uint16(s.buf[2*i]) | uint16(s.buf[2*i+1])<<8)
		dst[i] = float32(v) / 32768
	}

	switch {
	case samples == 0 && (err == io.EOF || err == io.ErrUnexpectedEOF):
		return 0, io.EOF
	case err == io.ErrUnexpectedEOF:
		return samples, nil
	default:
		return samples, err
	}
}

// MP3Decoder decodes MPEG-1/2 layer III streams.
type MP3Decoder struct{}

// Decode implements Decoder.
func (MP3Decoder) Decode(r io.Reader) (Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}

	return &mp3Source{dec: dec, sampleRate: dec.SampleRate()}, nil
}

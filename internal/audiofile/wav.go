package audiofile

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// WAVDecoder decodes integer PCM WAV files at 16, 24 or 32 bits.
type WAVDecoder struct{}

// Decode implements Decoder.
func (WAVDecoder) Decode(r io.Reader) (Source, error) {
	rs, err := seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a wav file", ErrInvalidStream)
	}

	dec.ReadInfo()

	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("reading wav header: %w", err)
	}

	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: wav audio format %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	return newPCMSource(dec, int(dec.BitDepth))
}

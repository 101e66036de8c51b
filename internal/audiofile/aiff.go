package audiofile

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
)

// AIFFDecoder decodes uncompressed AIFF files at 16, 24 or 32 bits.
type AIFFDecoder struct{}

// Decode implements Decoder.
func (AIFFDecoder) Decode(r io.Reader) (Source, error) {
	rs, err := seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not an aiff file", ErrInvalidStream)
	}

	dec.ReadInfo()

	return newPCMSource(dec, int(dec.BitDepth))
}

package audiofile

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes clip as integer PCM WAV at bitDepth bits. Samples are
// clipped to [-1, 1].
func WriteWAV(w io.WriteSeeker, clip Clip, bitDepth int) error {
	if clip.Channels < 1 || clip.SampleRate <= 0 {
		return ErrInvalidClip
	}

	scale, err := pcmScale(bitDepth)
	if err != nil {
		return fmt.Errorf("%w: %d", err, bitDepth)
	}

	peak := float64(scale) - 1
	data := make([]int, clip.Frames()*clip.Channels)

	for i := range data {
		v := min(max(clip.Samples[i], -1), 1)
		data[i] = int(v * peak)
	}

	enc := wav.NewEncoder(w, clip.SampleRate, bitDepth, clip.Channels, wavFormatPCM)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: clip.Channels, SampleRate: clip.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}

// WriteWAVFile creates path and writes clip to it.
func WriteWAVFile(path string, clip Clip, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteWAV(f, clip, bitDepth)
}

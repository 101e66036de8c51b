package host

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/cwbudde/algo-modfx/dsp/core"
	"github.com/cwbudde/algo-modfx/dsp/effects/modulation"
	"github.com/cwbudde/algo-modfx/internal/audiofile"
)

const defaultBlockSize = 512

// Offline renders whole clips through an engine block by block.
type Offline struct {
	Engine     *modulation.Engine
	BlockSize  int
	MaxDelayMs float64
	// Tail appends this many seconds of silence so the delay lines drain.
	Tail float64
	// Logger receives progress lines; nil disables logging.
	Logger *log.Logger
}

// NewOffline returns an offline host for e with the variant's default
// maximum delay.
func NewOffline(e *modulation.Engine, blockSize int) *Offline {
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}

	return &Offline{
		Engine:     e,
		BlockSize:  blockSize,
		MaxDelayMs: e.Variant().DefaultMaxDelayMs,
	}
}

// Process configures the engine for clip and renders it with schedule.
// Events stamped past the end of the rendered signal are applied once the
// last block is done.
func (o *Offline) Process(ctx context.Context, clip audiofile.Clip, schedule Schedule) (audiofile.Clip, error) {
	if clip.Channels < 1 || clip.SampleRate <= 0 {
		return audiofile.Clip{}, audiofile.ErrInvalidClip
	}

	sampleRate := float64(clip.SampleRate)
	if err := o.Engine.Configure(clip.Channels, sampleRate, o.BlockSize, o.MaxDelayMs); err != nil {
		return audiofile.Clip{}, fmt.Errorf("configuring engine: %w", err)
	}

	frames := clip.Frames()
	total := frames + int(math.Ceil(max(o.Tail, 0)*sampleRate))

	in := core.Planes(clip.Channels, total)
	core.Deinterleave(in, clip.Samples)
	out := core.Planes(clip.Channels, total)

	inBlock := make([][]float64, clip.Channels)
	outBlock := make([][]float64, clip.Channels)
	events := make([]modulation.Event, 0, len(schedule))

	for start := 0; start < total; start += o.BlockSize {
		if err := ctx.Err(); err != nil {
			return audiofile.Clip{}, err
		}

		n := min(o.BlockSize, total-start)
		for c := range in {
			inBlock[c] = in[c][start : start+n]
			outBlock[c] = out[c][start : start+n]
		}

		events = schedule.Slice(events[:0], start, n)
		o.Engine.Render(inBlock, outBlock, n, events)
	}

	for _, ev := range schedule.Remaining(total) {
		o.Engine.SetParameter(ev.ID, ev.Value, ev.RampFrames)
	}

	if o.Logger != nil {
		o.Logger.Printf("rendered %d frames (%d ch, %d Hz) with %s, %d automation events",
			total, clip.Channels, clip.SampleRate, o.Engine.Variant(), len(schedule))
	}

	return audiofile.ClipFromPlanar(out, total, clip.SampleRate), nil
}

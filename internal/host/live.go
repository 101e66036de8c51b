package host

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"sync/atomic"

	"github.com/gen2brain/malgo"

	"github.com/cwbudde/algo-modfx/dsp/effects/modulation"
)

const (
	liveBufferFrames = 4096
	liveEventQueue   = 256
	bytesPerSample   = 4
)

// Live runs an engine inside the callback of the default duplex device.
// Control changes are queued with Send and picked up at the start of the
// next callback, so the callback never blocks.
type Live struct {
	engine     *modulation.Engine
	channels   int
	sampleRate int
	maxDelayMs float64
	logger     *log.Logger

	events  chan modulation.Event
	pending []modulation.Event
	in      [][]float64
	out     [][]float64
	dropped atomic.Int64
}

// NewLive prepares a live host. The engine is configured for channels at
// sampleRate with room for liveBufferFrames per callback.
func NewLive(e *modulation.Engine, channels, sampleRate int, maxDelayMs float64, logger *log.Logger) (*Live, error) {
	if err := e.Configure(channels, float64(sampleRate), liveBufferFrames, maxDelayMs); err != nil {
		return nil, fmt.Errorf("configuring engine: %w", err)
	}

	l := &Live{
		engine:     e,
		channels:   channels,
		sampleRate: sampleRate,
		maxDelayMs: maxDelayMs,
		logger:     logger,
		events:     make(chan modulation.Event, liveEventQueue),
		pending:    make([]modulation.Event, 0, liveEventQueue),
		in:         make([][]float64, channels),
		out:        make([][]float64, channels),
	}

	for c := range channels {
		l.in[c] = make([]float64, liveBufferFrames)
		l.out[c] = make([]float64, liveBufferFrames)
	}

	return l, nil
}

// Send queues a control change for the next callback. It reports false
// when the queue is full.
func (l *Live) Send(ev modulation.Event) bool {
	select {
	case l.events <- ev:
		return true
	default:
		return false
	}
}

// Run opens the default duplex device and processes audio until ctx is
// cancelled.
func (l *Live) Run(ctx context.Context) error {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		if l.logger != nil {
			l.logger.Print(msg)
		}
	})
	if err != nil {
		return fmt.Errorf("initializing audio context: %w", err)
	}

	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()

	cfg := malgo.DefaultDeviceConfig(malgo.Duplex)
	cfg.Capture.Format = malgo.FormatF32
	cfg.Capture.Channels = uint32(l.channels)
	cfg.Playback.Format = malgo.FormatF32
	cfg.Playback.Channels = uint32(l.channels)
	cfg.SampleRate = uint32(l.sampleRate)
	cfg.PeriodSizeInFrames = liveBufferFrames / 4

	device, err := malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{
		Data: l.process,
	})
	if err != nil {
		return fmt.Errorf("initializing duplex device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("starting duplex device: %w", err)
	}

	if l.logger != nil {
		l.logger.Printf("live %s: %d ch at %d Hz", l.engine.Variant(), l.channels, l.sampleRate)
	}

	<-ctx.Done()

	if n := l.Dropped(); l.logger != nil && n > 0 {
		l.logger.Printf("dropped %d oversized callbacks", n)
	}

	return nil
}

// Dropped returns how many callbacks were silenced for exceeding the
// scratch size. Safe to call while Run is active.
func (l *Live) Dropped() int64 { return l.dropped.Load() }

// process is the device data callback: interleaved float32 in and out.
func (l *Live) process(out, in []byte, framecount uint32) {
	frames := int(framecount)
	if frames == 0 {
		return
	}

	if frames > liveBufferFrames {
		l.dropped.Add(1)
		clear(out)

		return
	}

	frameSize := bytesPerSample * l.channels
	frames = min(frames, len(in)/frameSize, len(out)/frameSize)

	for f := range frames {
		base := f * frameSize
		for c := range l.channels {
			bits := binary.LittleEndian.Uint32(in[base+c*bytesPerSample:])
			l.in[c][f] = float64(math.Float32frombits(bits))
		}
	}

	l.pending = l.pending[:0]

drain:
	for len(l.pending) < cap(l.pending) {
		select {
		case ev := <-l.events:
			ev.Frame = 0
			l.pending = append(l.pending, ev)
		default:
			break drain
		}
	}

	l.engine.Render(l.in, l.out, frames, l.pending)

	for f := range frames {
		base := f * frameSize
		for c := range l.channels {
			bits := math.Float32bits(float32(l.out[c][f]))
			binary.LittleEndian.PutUint32(out[base+c*bytesPerSample:], bits)
		}
	}
}

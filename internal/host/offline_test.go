package host

import (
	"context"
	"errors"
	"testing"

	"github.com/cwbudde/algo-modfx/dsp/effects/modulation"
	"github.com/cwbudde/algo-modfx/internal/audiofile"
	"github.com/cwbudde/algo-modfx/internal/testutil"
)

func TestOfflineMatchesSingleRender(t *testing.T) {
	const frames = 1000

	left := testutil.DeterministicNoise(1, 1, frames)
	right := testutil.DeterministicSine(330, 48000, 1, frames)
	clip := audiofile.ClipFromPlanar([][]float64{left, right}, frames, 48000)

	schedule := NewSchedule(
		modulation.Event{Frame: 100, ID: modulation.Depth, Value: 0.9, RampFrames: 300},
		modulation.Event{Frame: 700, ID: modulation.Odd90, Value: 1},
		modulation.Event{Frame: 5000, ID: modulation.Wet, Value: 0.1},
	)

	blocked, err := modulation.NewFlanger()
	if err != nil {
		t.Fatalf("NewFlanger() error = %v", err)
	}

	got, err := NewOffline(blocked, 128).Process(context.Background(), clip, schedule)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	whole, err := modulation.NewFlanger()
	if err != nil {
		t.Fatalf("NewFlanger() error = %v", err)
	}

	if err := whole.Configure(2, 48000, frames, modulation.Flange.DefaultMaxDelayMs); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	want := [][]float64{make([]float64, frames), make([]float64, frames)}
	whole.Render([][]float64{left, right}, want, frames, schedule)

	planes := got.Planar()
	for c := range want {
		testutil.RequireSliceNearlyEqual(t, planes[c], want[c], 1e-12)
	}

	if w := blocked.GetParameter(modulation.Wet); w != 0.1 {
		t.Fatalf("late event not applied: wet = %g", w)
	}
}

func TestOfflineAppendsTail(t *testing.T) {
	e, err := modulation.NewChorus()
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	h := NewOffline(e, 64)
	h.Tail = 0.01

	clip := audiofile.Clip{SampleRate: 1000, Channels: 1, Samples: testutil.Ones(20)}

	got, err := h.Process(context.Background(), clip, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if got.Frames() != 30 {
		t.Fatalf("frames = %d, want 30", got.Frames())
	}
}

func TestOfflineHonoursContext(t *testing.T) {
	e, err := modulation.NewChorus()
	if err != nil {
		t.Fatalf("NewChorus() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	clip := audiofile.Clip{SampleRate: 48000, Channels: 1, Samples: make([]float64, 100)}
	if _, err := NewOffline(e, 32).Process(ctx, clip, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("Process() error = %v, want context.Canceled", err)
	}

	if _, err := NewOffline(e, 32).Process(context.Background(), audiofile.Clip{}, nil); !errors.Is(err, audiofile.ErrInvalidClip) {
		t.Fatalf("Process() error = %v, want ErrInvalidClip", err)
	}
}

package comb

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-modfx/dsp/effects/modulation"
	"github.com/cwbudde/algo-modfx/internal/testutil"
)

func TestFlangeNotchesAtOddMultiples(t *testing.T) {
	const sampleRate = 48000

	e, err := modulation.NewFlanger(modulation.WithDefaults(modulation.Settings{
		Rate: 2, Delay: 1, Depth: 0.5, Dry: 0.5, Wet: 0.5,
	}))
	if err != nil {
		t.Fatalf("NewFlanger() error = %v", err)
	}

	if err := e.Configure(1, sampleRate, 1024, 10); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	a := NewAnalyzer(8192)

	res, err := a.Measure(e)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	want := ExpectedNotches(1, sampleRate/2)
	if len(want) != 24 {
		t.Fatalf("ExpectedNotches() returned %d notches, want 24", len(want))
	}

	if len(res.Notches) != len(want) {
		t.Fatalf("found %d notches, want %d: %v", len(res.Notches), len(want), res.Notches)
	}

	for i, f := range want {
		if diff := math.Abs(res.Notches[i] - f); diff > res.BinHz {
			t.Fatalf("notch %d at %.1f Hz, want %.1f Hz (bin %.2f Hz)", i, res.Notches[i], f, res.BinHz)
		}
	}

	if math.Abs(res.PeakDB) > 1e-6 {
		t.Fatalf("peak = %g dB, want 0 dB", res.PeakDB)
	}

	if got := e.GetParameter(modulation.Rate); got != 2 {
		t.Fatalf("rate after Measure = %g, want 2", got)
	}
}

func TestResponseOfImpulseIsFlat(t *testing.T) {
	res, err := NewAnalyzer(256).Response(testutil.Impulse(64, 0), 1000)
	if err != nil {
		t.Fatalf("Response() error = %v", err)
	}

	for k, v := range res.MagnitudeDB {
		if math.Abs(v) > 1e-6 {
			t.Fatalf("bin %d = %g dB, want 0", k, v)
		}
	}

	if len(res.Notches) != 0 {
		t.Fatalf("flat response reported notches: %v", res.Notches)
	}
}

func TestAnalyzerValidation(t *testing.T) {
	a := NewAnalyzer(1000)

	if _, err := a.Response([]float64{1}, 48000); !errors.Is(err, ErrInvalidFFTSize) {
		t.Fatalf("err = %v, want ErrInvalidFFTSize", err)
	}

	a = NewAnalyzer(0)
	if a.FFTSize != defaultFFTSize {
		t.Fatalf("default FFT size = %d", a.FFTSize)
	}

	if _, err := a.Response(nil, 48000); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("err = %v, want ErrEmptyResponse", err)
	}

	if _, err := a.Response([]float64{1}, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("err = %v, want ErrInvalidSampleRate", err)
	}

	e, err := modulation.NewFlanger()
	if err != nil {
		t.Fatalf("NewFlanger() error = %v", err)
	}

	if _, err := a.Measure(e); !errors.Is(err, modulation.ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestToDBFloor(t *testing.T) {
	if got := toDB(0); got != floorDB {
		t.Fatalf("toDB(0) = %g, want %g", got, floorDB)
	}

	if got := toDB(0.1); math.Abs(got+20) > 1e-6 {
		t.Fatalf("toDB(0.1) = %g, want -20", got)
	}
}

package lfo

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-modfx/dsp/param"
)

// Waveform selects the oscillator shape.
type Waveform int

const (
	// Sinusoid is sin(2*pi*phase).
	Sinusoid Waveform = iota
	// Triangle rises from 0 at phase 0 to +1 at 0.25, falls to -1 at 0.75.
	Triangle
	// Sawtooth ramps from -1 to +1 over one cycle.
	Sawtooth
	// Square is +1 for the first half cycle and -1 for the second.
	Square
)

// String returns the waveform name.
func (w Waveform) String() string {
	switch w {
	case Sinusoid:
		return "sinusoid"
	case Triangle:
		return "triangle"
	case Sawtooth:
		return "sawtooth"
	case Square:
		return "square"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// Valid reports whether w is a known waveform.
func (w Waveform) Valid() bool { return w >= Sinusoid && w <= Square }

// ParseWaveform maps a waveform name to its value.
func ParseWaveform(name string) (Waveform, error) {
	switch name {
	case "sinusoid", "sine", "sin":
		return Sinusoid, nil
	case "triangle", "tri":
		return Triangle, nil
	case "sawtooth", "saw":
		return Sawtooth, nil
	case "square", "sqr":
		return Square, nil
	default:
		return Sinusoid, fmt.Errorf("lfo waveform is unknown: %q", name)
	}
}

const quarterCycle = 0.25

// Option configures an Oscillator at construction time.
type Option func(*Oscillator) error

// WithFrequency sets the initial rate in Hz. Zero freezes the phase.
func WithFrequency(hz float64) Option {
	return func(o *Oscillator) error {
		if math.IsNaN(hz) || math.IsInf(hz, 0) {
			return fmt.Errorf("lfo frequency must be finite: %f", hz)
		}

		o.increment = param.NewRamped(hz / o.sampleRate)

		return nil
	}
}

// WithWaveform sets the oscillator shape.
func WithWaveform(w Waveform) Option {
	return func(o *Oscillator) error {
		if !w.Valid() {
			return fmt.Errorf("lfo waveform is unknown: %v", w)
		}

		o.waveform = w

		return nil
	}
}

// WithPhase sets the starting phase in cycles; it is wrapped into [0, 1).
func WithPhase(phase float64) Option {
	return func(o *Oscillator) error {
		if math.IsNaN(phase) || math.IsInf(phase, 0) {
			return fmt.Errorf("lfo phase must be finite: %f", phase)
		}

		o.phase = wrap(phase)

		return nil
	}
}

// Oscillator is a phase-accumulating periodic signal generator whose
// frequency can be ramped.
type Oscillator struct {
	sampleRate float64
	waveform   Waveform
	phase      float64
	increment  param.Ramped
}

// New returns an oscillator at sampleRate. Without options it is a
// sinusoid at phase 0 with a frequency of 0 Hz.
func New(sampleRate float64, opts ...Option) (*Oscillator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("lfo sample rate must be > 0 and finite: %f", sampleRate)
	}

	o := &Oscillator{sampleRate: sampleRate}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// SetFrequency changes the rate in Hz. With rampFrames > 0 the per-sample
// phase increment moves linearly to its new value over that many calls to
// Increment.
func (o *Oscillator) SetFrequency(hz float64, rampFrames int) {
	o.increment.Set(hz/o.sampleRate, rampFrames)
}

// Frequency returns the current rate in Hz.
func (o *Oscillator) Frequency() float64 {
	return o.increment.Get() * o.sampleRate
}

// Ramping reports whether a frequency ramp is in progress.
func (o *Oscillator) Ramping() bool { return o.increment.Ramping() }

// SetPhase moves the oscillator to phase (in cycles, wrapped into [0, 1)).
func (o *Oscillator) SetPhase(phase float64) { o.phase = wrap(phase) }

// Phase returns the current phase in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// Waveform returns the oscillator shape.
func (o *Oscillator) Waveform() Waveform { return o.waveform }

// SampleRate returns the sample rate in Hz.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// Value returns the waveform at the current phase, in [-1, 1].
func (o *Oscillator) Value() float64 {
	return o.waveform.At(o.phase)
}

// QuadPhaseValue returns the waveform a quarter cycle ahead of the current
// phase.
func (o *Oscillator) QuadPhaseValue() float64 {
	return o.waveform.At(wrap(o.phase + quarterCycle))
}

// Increment advances the phase by one sample.
func (o *Oscillator) Increment() {
	o.phase += o.increment.FrameValue()
	if o.phase >= 1 || o.phase < 0 {
		o.phase = wrap(o.phase)
	}
}

// At evaluates the waveform at phase, which must lie in [0, 1).
func (w Waveform) At(phase float64) float64 {
	switch w {
	case Triangle:
		return 1 - 4*math.Abs(wrap(phase+quarterCycle)-0.5)
	case Sawtooth:
		return 2*phase - 1
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

func wrap(phase float64) float64 {
	phase -= math.Floor(phase)
	if phase >= 1 {
		phase = 0
	}

	return phase
}

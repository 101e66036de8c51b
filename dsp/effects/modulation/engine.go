package modulation

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-modfx/dsp/core"
	"github.com/cwbudde/algo-modfx/dsp/delay"
	"github.com/cwbudde/algo-modfx/dsp/lfo"
	"github.com/cwbudde/algo-modfx/dsp/param"
)

// ErrNotConfigured is returned by operations that need a configured format.
var ErrNotConfigured = errors.New("modulation engine is not configured")

// Engine is a multi-channel modulated-delay processor. A bank of
// oscillators drives a set of fractional taps into one delay line per
// channel; the tap mean is mixed with the dry input.
//
// Configure allocates everything. Render, SetParameter and GetParameter
// never allocate and must be called from a single goroutine.
type Engine struct {
	variant Variant
	cfg     config

	rate  param.Ramped
	delay param.Ramped
	depth param.Ramped
	dry   param.Ramped
	wet   param.Ramped
	odd90 param.Bool

	configured   bool
	channels     int
	sampleRate   float64
	maxFrames    int
	maxDelayMs   float64
	samplesPerMs float64
	maxDelay     float64
	minDelay     float64
	maxOffset    float64

	lines []DelayLine
	oscs  []*lfo.Oscillator
	even  []float64
	odd   []float64
	scale float64

	wetBlock [][]float64
	dryBlock []float64
}

// New creates an unconfigured engine for variant v.
func New(v Variant, opts ...Option) (*Engine, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	cfg := defaultConfig(v)

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.taps > v.MaxTaps {
		return nil, fmt.Errorf("modulation %s tap count must be in [1, %d]: %d", v.Name, v.MaxTaps, cfg.taps)
	}

	e := &Engine{variant: v, cfg: cfg}
	e.setAll(cfg.defaults)

	return e, nil
}

func (e *Engine) setAll(s Settings) {
	e.rate = param.NewRamped(s.Rate)
	e.delay = param.NewRamped(s.Delay)
	e.depth = param.NewRamped(s.Depth)
	e.dry = param.NewRamped(s.Dry)
	e.wet = param.NewRamped(s.Wet)
	e.odd90 = param.NewBool(s.Odd90)
}

// Configure sizes the engine for a stream format. Delay lines, oscillators
// and scratch buffers are rebuilt; control values are kept and any ramp in
// flight jumps to its target.
func (e *Engine) Configure(channels int, sampleRate float64, maxFrames int, maxDelayMs float64) error {
	if channels < 1 {
		return fmt.Errorf("modulation channel count must be >= 1: %d", channels)
	}

	if !core.PositiveFinite(sampleRate) {
		return fmt.Errorf("modulation sample rate must be > 0 and finite: %f", sampleRate)
	}

	if maxFrames < 1 {
		return fmt.Errorf("modulation max frames must be >= 1: %d", maxFrames)
	}

	if !core.PositiveFinite(maxDelayMs) {
		return fmt.Errorf("modulation max delay must be > 0 and finite: %f", maxDelayMs)
	}

	capacity := delay.CapacityFor(maxDelayMs, sampleRate)
	factory := e.cfg.lineFactory()

	lines := make([]DelayLine, channels)
	for c := range lines {
		line, err := factory(capacity)
		if err != nil {
			return fmt.Errorf("modulation delay line for channel %d: %w", c, err)
		}

		lines[c] = line
	}

	settings := e.Settings()
	taps := e.cfg.taps
	oscs := make([]*lfo.Oscillator, taps)

	for i := range oscs {
		osc, err := lfo.New(sampleRate,
			lfo.WithWaveform(e.cfg.waveform),
			lfo.WithFrequency(e.cfg.rates(settings.Rate, i)),
			lfo.WithPhase(e.cfg.phases(i, taps)),
		)
		if err != nil {
			return fmt.Errorf("modulation oscillator %d: %w", i, err)
		}

		oscs[i] = osc
	}

	e.setAll(settings)

	e.channels = channels
	e.sampleRate = sampleRate
	e.maxFrames = maxFrames
	e.maxDelayMs = maxDelayMs
	e.samplesPerMs = core.MsToSamples(1, sampleRate)
	e.maxDelay = maxDelayMs * e.samplesPerMs
	e.minDelay = minTapDelayMs * e.samplesPerMs
	e.maxOffset = float64(capacity - 1)

	e.lines = lines
	e.oscs = oscs
	e.even = make([]float64, taps)
	e.odd = make([]float64, taps)
	e.scale = 1 / float64(taps)

	e.wetBlock = core.Planes(channels, maxFrames)
	e.dryBlock = make([]float64, maxFrames)
	e.configured = true

	return nil
}

// Reset clears the delay lines and returns every oscillator to its start
// phase. Control values are unchanged.
func (e *Engine) Reset() {
	for _, line := range e.lines {
		line.Reset()
	}

	for i, osc := range e.oscs {
		osc.SetPhase(e.cfg.phases(i, len(e.oscs)))
	}
}

// SetParameter moves control id to value over rampFrames frames. A zero
// ramp is immediate. Unknown ids are ignored. Values are not validated.
func (e *Engine) SetParameter(id ParameterID, value float64, rampFrames int) {
	switch id {
	case Rate:
		e.rate.Set(value, rampFrames)

		for i, osc := range e.oscs {
			osc.SetFrequency(e.cfg.rates(value, i), rampFrames)
		}
	case Delay:
		e.delay.Set(value, rampFrames)
	case Depth:
		e.depth.Set(value, rampFrames)
	case Dry:
		e.dry.Set(value, rampFrames)
	case Wet:
		e.wet.Set(value, rampFrames)
	case Odd90:
		e.odd90.Set(value, rampFrames)
	}
}

// GetParameter returns the current value of control id, 0 for unknown ids.
func (e *Engine) GetParameter(id ParameterID) float64 {
	switch id {
	case Rate:
		return e.rate.Get()
	case Delay:
		return e.delay.Get()
	case Depth:
		return e.depth.Get()
	case Dry:
		return e.dry.Get()
	case Wet:
		return e.wet.Get()
	case Odd90:
		return e.odd90.Get()
	default:
		return 0
	}
}

// Settings returns the targets of all controls.
func (e *Engine) Settings() Settings {
	return Settings{
		Rate:  e.rate.Target(),
		Delay: e.delay.Target(),
		Depth: e.depth.Target(),
		Dry:   e.dry.Target(),
		Wet:   e.wet.Target(),
		Odd90: e.odd90.Enabled(),
	}
}

// Apply moves every control to s over rampFrames frames.
func (e *Engine) Apply(s Settings, rampFrames int) {
	for id := ParameterID(0); id < parameterCount; id++ {
		e.SetParameter(id, s.Value(id), rampFrames)
	}
}

// ProcessMIDI accepts host MIDI bytes. The engine has no MIDI-controlled
// behaviour, so the message is dropped.
func (e *Engine) ProcessMIDI([]byte) {}

// Variant returns the variant the engine was built with.
func (e *Engine) Variant() Variant { return e.variant }

// Configured reports whether Configure has succeeded.
func (e *Engine) Configured() bool { return e.configured }

// Channels returns the configured channel count.
func (e *Engine) Channels() int { return e.channels }

// SampleRate returns the configured sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// MaxFrames returns the largest frame count a single Render processes.
func (e *Engine) MaxFrames() int { return e.maxFrames }

// MaxDelayMs returns the configured maximum delay in milliseconds.
func (e *Engine) MaxDelayMs() float64 { return e.maxDelayMs }

// TapCount returns the number of oscillators and taps.
func (e *Engine) TapCount() int { return e.cfg.taps }

// Oscillator returns oscillator i, or nil before Configure.
func (e *Engine) Oscillator(i int) *lfo.Oscillator {
	if i < 0 || i >= len(e.oscs) {
		return nil
	}

	return e.oscs[i]
}

package modulation

import (
	"fmt"

	"github.com/cwbudde/algo-modfx/dsp/delay"
	"github.com/cwbudde/algo-modfx/dsp/interp"
	"github.com/cwbudde/algo-modfx/dsp/lfo"
)

// DelayLine is the per-channel storage the engine writes into and taps
// from. *delay.Line satisfies it.
type DelayLine interface {
	Write(sample float64)
	ReadFractional(offset float64) float64
	Reset()
}

// DelayLineFactory builds one line with room for capacity samples.
type DelayLineFactory func(capacity int) (DelayLine, error)

// Option mutates engine construction parameters.
type Option func(*config) error

type config struct {
	taps     int
	rates    RateRule
	phases   PhaseRule
	waveform lfo.Waveform
	mode     interp.Mode
	defaults Settings
	newLine  DelayLineFactory
}

func defaultConfig(v Variant) config {
	return config{
		taps:     v.DefaultTaps,
		rates:    v.Rates,
		phases:   v.Phases,
		waveform: lfo.Sinusoid,
		mode:     interp.Hermite,
		defaults: v.Defaults,
	}
}

// WithTapCount sets the number of oscillators and taps. The variant bounds
// the accepted range.
func WithTapCount(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("modulation tap count must be >= 1: %d", n)
		}

		cfg.taps = n

		return nil
	}
}

// WithRateRule replaces the variant's rate rule.
func WithRateRule(rule RateRule) Option {
	return func(cfg *config) error {
		if rule == nil {
			return fmt.Errorf("modulation rate rule must not be nil")
		}

		cfg.rates = rule

		return nil
	}
}

// WithPhaseRule replaces the variant's start-phase rule.
func WithPhaseRule(rule PhaseRule) Option {
	return func(cfg *config) error {
		if rule == nil {
			return fmt.Errorf("modulation phase rule must not be nil")
		}

		cfg.phases = rule

		return nil
	}
}

// WithWaveform selects the oscillator shape.
func WithWaveform(w lfo.Waveform) Option {
	return func(cfg *config) error {
		if !w.Valid() {
			return fmt.Errorf("modulation waveform is invalid: %d", int(w))
		}

		cfg.waveform = w

		return nil
	}
}

// WithInterpolation selects the fractional read kernel of the delay lines.
func WithInterpolation(mode interp.Mode) Option {
	return func(cfg *config) error {
		if !mode.Valid() {
			return fmt.Errorf("modulation interpolation mode is invalid: %d", int(mode))
		}

		cfg.mode = mode

		return nil
	}
}

// WithDefaults sets the control values the engine starts with.
func WithDefaults(s Settings) Option {
	return func(cfg *config) error {
		cfg.defaults = s
		return nil
	}
}

// WithDelayLineFactory replaces the delay line implementation.
func WithDelayLineFactory(factory DelayLineFactory) Option {
	return func(cfg *config) error {
		if factory == nil {
			return fmt.Errorf("modulation delay line factory must not be nil")
		}

		cfg.newLine = factory

		return nil
	}
}

func (cfg *config) lineFactory() DelayLineFactory {
	if cfg.newLine != nil {
		return cfg.newLine
	}

	mode := cfg.mode

	return func(capacity int) (DelayLine, error) {
		return delay.New(capacity, delay.WithMode(mode))
	}
}

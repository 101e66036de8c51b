package modulation

import (
	"errors"
	"fmt"
)

// RateRule derives the frequency of oscillator index from the base rate.
type RateRule func(baseHz float64, index int) float64

// PhaseRule returns the start phase in [0, 1) of oscillator index out of count.
type PhaseRule func(index, count int) float64

// DisplacementFunc returns the tap swing around the nominal delay. All
// arguments and the result are in samples; depth is a fraction.
type DisplacementFunc func(delay, depth, maxDelay, minDelay float64) float64

// Variant bundles the policies that distinguish one modulated-delay effect
// from another. Policies are resolved once at construction; the render loop
// calls them through plain function values.
type Variant struct {
	Name string

	DefaultTaps int
	MaxTaps     int

	// DefaultMaxDelayMs is a host suggestion for Configure.
	DefaultMaxDelayMs float64

	Rates        RateRule
	Phases       PhaseRule
	Displacement DisplacementFunc

	// Bypass passes the input through untouched when the nominal delay
	// or the swing is zero.
	Bypass bool

	Defaults Settings
}

// Validate checks that all policies are present and the tap limits make sense.
func (v Variant) Validate() error {
	if v.Name == "" {
		return errors.New("modulation variant needs a name")
	}

	if v.Rates == nil || v.Phases == nil || v.Displacement == nil {
		return fmt.Errorf("modulation variant %q is missing a policy", v.Name)
	}

	if v.MaxTaps < 1 || v.DefaultTaps < 1 || v.DefaultTaps > v.MaxTaps {
		return fmt.Errorf("modulation variant %q tap counts must satisfy 1 <= default <= max: default=%d max=%d",
			v.Name, v.DefaultTaps, v.MaxTaps)
	}

	return nil
}

// String returns the variant name.
func (v Variant) String() string { return v.Name }

// FractionalRates spaces oscillator rates at tenths of the base rate:
// index 0 is frozen, index i runs at base*i/10.
func FractionalRates(baseHz float64, index int) float64 {
	return baseHz * float64(index) * 0.1
}

// HarmonicRates runs oscillator i at (i+1) times the base rate.
func HarmonicRates(baseHz float64, index int) float64 {
	return baseHz * float64(index+1)
}

// UniformRates runs every oscillator at the base rate.
func UniformRates(baseHz float64, _ int) float64 {
	return baseHz
}

// ZeroPhases starts every oscillator at phase 0.
func ZeroPhases(_, _ int) float64 { return 0 }

// SpreadPhases distributes oscillators evenly around the cycle.
func SpreadPhases(index, count int) float64 {
	if count <= 0 {
		return 0
	}

	return float64(index) / float64(count)
}

// Variants lists the built-in variants.
func Variants() []Variant {
	return []Variant{Flange, Chorus}
}

// LookupVariant returns the built-in variant called name.
func LookupVariant(name string) (Variant, error) {
	for _, v := range Variants() {
		if v.Name == name {
			return v, nil
		}
	}

	return Variant{}, fmt.Errorf("modulation: unknown variant %q", name)
}

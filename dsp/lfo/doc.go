// Package lfo implements the low-frequency oscillators that drive delay
// modulation.
//
// An [Oscillator] keeps a normalised phase in [0, 1). Reading ([Oscillator.Value],
// [Oscillator.QuadPhaseValue]) is separate from advancing
// ([Oscillator.Increment]) so that several consumers can observe the same
// modulation instant before the phase moves on.
package lfo

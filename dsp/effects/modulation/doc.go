// Package modulation implements a real-time modulated-delay engine that
// renders both flange and chorus effects.
//
// An Engine owns one delay line per channel and a bank of low-frequency
// oscillators. Every frame each oscillator yields a tap offset around the
// nominal delay; a channel's wet signal is the mean of its taps and the
// output is wet*tap + dry*input. With the odd90 control on, odd channels
// read their taps a quarter cycle ahead for a wider stereo image.
//
// The two built-in variants differ only in policy:
//   - Flange: a few taps at fractional multiples of the base rate, swing
//     proportional to the delay with a small floor, bypass at zero swing.
//   - Chorus: many equal-rate taps with evenly spread phases, swing
//     proportional to the headroom below the maximum delay.
//
// Controls change through SetParameter or timestamped Events passed to
// Render, optionally ramped linearly over a number of frames. Configure
// allocates; Render does not.
package modulation

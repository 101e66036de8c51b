// Package delay provides a circular delay line with fractional,
// interpolated reads for modulated-delay effects.
//
// A Line never grows: its capacity is fixed at construction and every
// Write and read is allocation-free, so it is safe to use from an audio
// callback. Use [CapacityFor] to size a line for a maximum delay.
package delay

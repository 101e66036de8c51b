// Package comb measures the frequency response of a modulated-delay engine
// with its oscillators frozen.
//
// A frozen flange with dry and wet at equal gain is a feed-forward comb
// filter: h[n] = dry*δ[n] + wet*δ[n-D]. Its notches sit at odd multiples of
// 1/(2D). The analyzer renders an impulse through the engine, transforms
// the response and reports the magnitude in dB and the notch frequencies.
//
// # Usage
//
//	analyzer := comb.NewAnalyzer(8192)
//	res, err := analyzer.Measure(engine)
//	fmt.Println(res.Notches)
package comb

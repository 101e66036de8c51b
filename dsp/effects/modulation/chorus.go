package modulation

const (
	defaultChorusTaps       = 10
	maxChorusTaps           = 50
	defaultChorusMaxDelayMs = 50.0
)

// Chorus spreads many equal-rate taps evenly around the LFO cycle. The
// swing is proportional to the headroom left between the nominal delay
// and the configured maximum.
var Chorus = Variant{
	Name:              "chorus",
	DefaultTaps:       defaultChorusTaps,
	MaxTaps:           maxChorusTaps,
	DefaultMaxDelayMs: defaultChorusMaxDelayMs,
	Rates:             UniformRates,
	Phases:            SpreadPhases,
	Displacement:      ChorusDisplacement,
	Defaults: Settings{
		Rate:  1.68,
		Delay: 8.3,
		Depth: 1,
		Dry:   0.5,
		Wet:   1,
	},
}

// ChorusDisplacement returns (maxDelay-delay)*depth.
func ChorusDisplacement(delay, depth, maxDelay, _ float64) float64 {
	return (maxDelay - delay) * depth
}

// NewChorus creates an unconfigured chorus engine.
func NewChorus(opts ...Option) (*Engine, error) {
	return New(Chorus, opts...)
}

package modulation

const (
	defaultFlangeTaps       = 5
	maxFlangeTaps           = 7
	defaultFlangeMaxDelayMs = 10.0
)

// Flange is a short modulated delay. Taps run at fractions of the base
// rate and swing down from the nominal delay towards a small floor, so a
// full-depth sweep reaches the comb's highest notch without crossing zero.
var Flange = Variant{
	Name:              "flange",
	DefaultTaps:       defaultFlangeTaps,
	MaxTaps:           maxFlangeTaps,
	DefaultMaxDelayMs: defaultFlangeMaxDelayMs,
	Rates:             FractionalRates,
	Phases:            ZeroPhases,
	Displacement:      FlangeDisplacement,
	Bypass:            true,
	Defaults: Settings{
		Rate:  0.64,
		Delay: 1.1,
		Depth: 0.5,
		Dry:   0.5,
		Wet:   0.5,
	},
}

// FlangeDisplacement scales the nominal delay by depth and then shrinks the
// swing until the lowest tap stays at or above minDelay.
func FlangeDisplacement(delay, depth, _, minDelay float64) float64 {
	displacement := depth * delay
	if delay-displacement < minDelay {
		displacement = delay - minDelay
	}

	return displacement
}

// NewFlanger creates an unconfigured flange engine.
func NewFlanger(opts ...Option) (*Engine, error) {
	return New(Flange, opts...)
}

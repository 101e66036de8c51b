package preset

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-modfx/dsp/effects/modulation"
)

// Preset is a named snapshot of engine controls.
type Preset struct {
	Name     string
	Settings modulation.Settings
}

// Factory preset names, shared by both variants.
const (
	Cadet     = "Cadet"
	WideCadet = "Wide Cadet"
	Wavy      = "Wavy"
	WavyPong  = "Wavy Pong"
	Shimmer   = "Shimmer"
	Disturbed = "Disturbed"
)

// pct converts a percentage to a fraction, clamped to [0, 1].
func pct(v float64) float64 {
	return min(max(v/100, 0), 1)
}

func settings(rate, delayMs, depth, dry, wet float64, odd90 bool) modulation.Settings {
	return modulation.Settings{
		Rate:  rate,
		Delay: delayMs,
		Depth: pct(depth),
		Dry:   pct(dry),
		Wet:   pct(wet),
		Odd90: odd90,
	}
}

var factory = map[string][]Preset{
	modulation.Flange.Name: {
		{Cadet, settings(0.64, 1.1, 50, 50, 50, false)},
		{WideCadet, settings(0.64, 1.1, 50, 50, 50, true)},
		{Wavy, settings(3.0, 3.2, 14, 50, 50, false)},
		{WavyPong, settings(0.4, 1.2, 100, 0, 100, true)},
		{Shimmer, settings(11.0, 1.75, 5, 50, 100, true)},
		{Disturbed, settings(3.0, 6, 180, 50, 100, true)},
	},
	modulation.Chorus.Name: {
		{Cadet, settings(1.68, 8.3, 100, 50, 100, false)},
		{WideCadet, settings(1.68, 8.3, 100, 50, 100, true)},
		{Wavy, settings(5.1, 8.3, 100, 50, 100, false)},
		{WavyPong, settings(5.1, 8.3, 100, 50, 100, true)},
		{Shimmer, settings(10.0, 1.75, 1.4, 50, 100, true)},
		{Disturbed, settings(5.0, 50.0, 100, 50, 100, true)},
	},
}

// For returns the factory presets of variant v in display order.
func For(v modulation.Variant) []Preset {
	return append([]Preset(nil), factory[v.Name]...)
}

// Names returns the preset names of variant v in display order.
func Names(v modulation.Variant) []string {
	presets := factory[v.Name]

	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}

	return names
}

// Lookup finds a preset of variant v by name, ignoring case.
func Lookup(v modulation.Variant, name string) (Preset, error) {
	for _, p := range factory[v.Name] {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}

	return Preset{}, fmt.Errorf("preset %q not found for %s", name, v.Name)
}

// Apply moves e to p over rampFrames frames.
func Apply(e *modulation.Engine, p Preset, rampFrames int) {
	e.Apply(p.Settings, rampFrames)
}

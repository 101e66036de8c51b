package modulation

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-modfx/dsp/core"
)

// ParameterID addresses one engine control. Values follow the host
// parameter address order and must stay stable.
type ParameterID uint64

const (
	// Rate is the base oscillator rate in Hz.
	Rate ParameterID = iota
	// Delay is the nominal tap delay in milliseconds.
	Delay
	// Depth is the modulation depth as a fraction in [0, 1].
	Depth
	// Dry is the input gain in the output mix.
	Dry
	// Wet is the delayed-signal gain in the output mix.
	Wet
	// Odd90 puts odd channels in quadrature with even channels when >= 0.5.
	Odd90

	parameterCount
)

// Limits for the host-facing parameter ranges.
const (
	MinRateHz  = 0.01
	MaxRateHz  = 8.0
	MinDelayMs = 0.01
)

// minTapDelayMs is the shortest delay a flange tap may swing down to.
const minTapDelayMs = 1e-3

// ParameterInfo describes a control for hosts that display or clamp values.
type ParameterInfo struct {
	ID         ParameterID
	Identifier string
	Name       string
	Unit       string
	Min        float64
	Max        float64
}

var parameterInfos = [parameterCount]ParameterInfo{
	{ID: Rate, Identifier: "rate", Name: "Rate", Unit: "Hz", Min: MinRateHz, Max: MaxRateHz},
	{ID: Delay, Identifier: "delay", Name: "Delay", Unit: "ms", Min: MinDelayMs},
	{ID: Depth, Identifier: "depth", Name: "Depth", Unit: "%", Min: 0, Max: 1},
	{ID: Dry, Identifier: "dry", Name: "Dry", Unit: "%", Min: 0, Max: 1},
	{ID: Wet, Identifier: "wet", Name: "Wet", Unit: "%", Min: 0, Max: 1},
	{ID: Odd90, Identifier: "odd90", Name: "Odd 90°", Unit: "bool", Min: 0, Max: 1},
}

// String returns the identifier used in automation files and flags.
func (id ParameterID) String() string {
	if id < parameterCount {
		return parameterInfos[id].Identifier
	}

	return fmt.Sprintf("ParameterID(%d)", uint64(id))
}

// Valid reports whether id names a known control.
func (id ParameterID) Valid() bool { return id < parameterCount }

// ParseParameterID resolves an identifier such as "depth" to its id.
func ParseParameterID(name string) (ParameterID, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, info := range parameterInfos {
		if info.Identifier == key {
			return info.ID, nil
		}
	}

	return 0, fmt.Errorf("modulation: unknown parameter %q", name)
}

// Info returns the metadata for id. The delay maximum is filled with
// maxDelayMs since it depends on how the engine was configured.
func (id ParameterID) Info(maxDelayMs float64) (ParameterInfo, bool) {
	if id >= parameterCount {
		return ParameterInfo{}, false
	}

	info := parameterInfos[id]
	if id == Delay {
		info.Max = maxDelayMs
	}

	return info, true
}

// Range returns the inclusive host range for id.
func (id ParameterID) Range(maxDelayMs float64) (lo, hi float64) {
	info, ok := id.Info(maxDelayMs)
	if !ok {
		return 0, 0
	}

	return info.Min, info.Max
}

// Clamp limits value to the host range of id. Unknown ids pass through.
func (id ParameterID) Clamp(value, maxDelayMs float64) float64 {
	if !id.Valid() {
		return value
	}

	lo, hi := id.Range(maxDelayMs)

	return core.Clamp(value, lo, hi)
}

// Parameters lists the metadata of every control in address order.
func Parameters(maxDelayMs float64) []ParameterInfo {
	out := make([]ParameterInfo, 0, parameterCount)
	for id := ParameterID(0); id < parameterCount; id++ {
		info, _ := id.Info(maxDelayMs)
		out = append(out, info)
	}

	return out
}

// Settings is a full snapshot of the engine controls. Depth, Dry and Wet
// are fractions.
type Settings struct {
	Rate  float64 `json:"rate"`
	Delay float64 `json:"delay"`
	Depth float64 `json:"depth"`
	Dry   float64 `json:"dry"`
	Wet   float64 `json:"wet"`
	Odd90 bool    `json:"odd90"`
}

// Value returns the setting addressed by id, 0 for unknown ids.
func (s Settings) Value(id ParameterID) float64 {
	switch id {
	case Rate:
		return s.Rate
	case Delay:
		return s.Delay
	case Depth:
		return s.Depth
	case Dry:
		return s.Dry
	case Wet:
		return s.Wet
	case Odd90:
		if s.Odd90 {
			return 1
		}
	}

	return 0
}

// Events returns one event per control that sets the engine to s at frame.
func (s Settings) Events(frame, rampFrames int) []Event {
	events := make([]Event, 0, parameterCount)
	for id := ParameterID(0); id < parameterCount; id++ {
		events = append(events, Event{Frame: frame, ID: id, Value: s.Value(id), RampFrames: rampFrames})
	}

	return events
}

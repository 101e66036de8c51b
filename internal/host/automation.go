package host

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-modfx/dsp/core"
	"github.com/cwbudde/algo-modfx/dsp/effects/modulation"
)

// Point is one automation entry as stored in JSON. Times are in seconds.
//
//	[{"time": 0.5, "param": "depth", "value": 0.8, "ramp": 0.25}]
type Point struct {
	Time  float64 `json:"time"`
	Param string  `json:"param"`
	Value float64 `json:"value"`
	Ramp  float64 `json:"ramp,omitempty"`
}

// Schedule is a list of events stamped with absolute frame positions,
// sorted by frame.
type Schedule []modulation.Event

// NewSchedule sorts a copy of events into a Schedule.
func NewSchedule(events ...modulation.Event) Schedule {
	s := append(Schedule(nil), events...)
	modulation.SortEvents(s)

	return s
}

// ParsePoints converts points to a schedule at sampleRate.
func ParsePoints(points []Point, sampleRate float64) (Schedule, error) {
	events := make([]modulation.Event, 0, len(points))

	for i, p := range points {
		id, err := modulation.ParseParameterID(p.Param)
		if err != nil {
			return nil, fmt.Errorf("automation point %d: %w", i, err)
		}

		if p.Time < 0 || p.Ramp < 0 || !core.IsFinite(p.Time) || !core.IsFinite(p.Ramp) || !core.IsFinite(p.Value) {
			return nil, fmt.Errorf("automation point %d: time and ramp must be >= 0 and values finite", i)
		}

		events = append(events, modulation.Event{
			Frame:      int(math.Round(p.Time * sampleRate)),
			ID:         id,
			Value:      p.Value,
			RampFrames: int(math.Round(p.Ramp * sampleRate)),
		})
	}

	return NewSchedule(events...), nil
}

// ReadAutomation decodes a JSON array of points from r.
func ReadAutomation(r io.Reader, sampleRate float64) (Schedule, error) {
	var points []Point
	if err := json.NewDecoder(r).Decode(&points); err != nil {
		return nil, fmt.Errorf("decoding automation: %w", err)
	}

	return ParsePoints(points, sampleRate)
}

// LoadAutomation reads a JSON automation file.
func LoadAutomation(path string, sampleRate float64) (Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadAutomation(f, sampleRate)
}

// Slice appends to dst the events stamped in [start, start+frames),
// re-stamped relative to start, and returns the extended slice.
func (s Schedule) Slice(dst []modulation.Event, start, frames int) []modulation.Event {
	end := start + frames

	for _, ev := range s {
		if ev.Frame >= end {
			break
		}

		if ev.Frame < start {
			continue
		}

		ev.Frame -= start
		dst = append(dst, ev)
	}

	return dst
}

// Remaining returns the events stamped at or after frame.
func (s Schedule) Remaining(frame int) Schedule {
	for i, ev := range s {
		if ev.Frame >= frame {
			return s[i:]
		}
	}

	return nil
}

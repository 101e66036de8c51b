package modulation

import (
	"slices"

	"github.com/cwbudde/algo-modfx/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Event is a timestamped control change inside one Render call. Frame is
// relative to the start of the block.
type Event struct {
	Frame      int
	ID         ParameterID
	Value      float64
	RampFrames int
}

// SortEvents orders events by frame, keeping the order of equal stamps.
func SortEvents(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		return a.Frame - b.Frame
	})
}

// frameControls holds the control values of one frame, delay in samples.
type frameControls struct {
	delay        float64
	displacement float64
	dry          float64
	wet          float64
	odd90        bool
}

// Render processes frameCount frames from in to out. Events must be sorted
// by frame; each is applied before the frame it is stamped with, and events
// stamped at or past frameCount are applied once the block is done.
//
// frameCount is clamped to the configured maximum and to the shortest
// channel slice; channels beyond the configured count are left alone. An
// unconfigured engine writes silence. in and out may alias.
func (e *Engine) Render(in, out [][]float64, frameCount int, events []Event) {
	if !e.configured {
		for _, ch := range out {
			core.Zero(ch[:max(min(frameCount, len(ch)), 0)])
		}

		e.applyEvents(events)

		return
	}

	channels := min(e.channels, len(in), len(out))
	frameCount = min(frameCount, e.maxFrames)

	for c := range channels {
		frameCount = min(frameCount, len(in[c]), len(out[c]))
	}

	next := 0
	frame := 0

	for frame < frameCount {
		for next < len(events) && events[next].Frame <= frame {
			e.applyEvent(events[next])
			next++
		}

		end := frameCount
		if next < len(events) && events[next].Frame < end {
			end = events[next].Frame
		}

		if e.ramping() {
			e.renderFrame(in, out, channels, frame)
			frame++

			continue
		}

		e.renderSteady(in, out, channels, frame, end)
		frame = end
	}

	e.applyEvents(events[next:])
}

func (e *Engine) applyEvent(ev Event) {
	e.SetParameter(ev.ID, ev.Value, ev.RampFrames)
}

func (e *Engine) applyEvents(events []Event) {
	for _, ev := range events {
		e.applyEvent(ev)
	}
}

func (e *Engine) ramping() bool {
	return e.rate.Ramping() || e.delay.Ramping() || e.depth.Ramping() ||
		e.dry.Ramping() || e.wet.Ramping()
}

// nextControls advances every control by one frame.
func (e *Engine) nextControls() frameControls {
	e.rate.FrameValue()

	delay := e.delay.FrameValue() * e.samplesPerMs
	depth := e.depth.FrameValue()

	return frameControls{
		delay:        delay,
		displacement: e.variant.Displacement(delay, depth, e.maxDelay, e.minDelay),
		dry:          e.dry.FrameValue(),
		wet:          e.wet.FrameValue(),
		odd90:        e.odd90.Enabled(),
	}
}

func (e *Engine) bypassed(fc frameControls) bool {
	return e.variant.Bypass && (fc.delay == 0 || fc.displacement == 0)
}

// computeTaps fills the even and odd tap offsets for one frame and then
// advances every oscillator once.
func (e *Engine) computeTaps(fc frameControls) {
	for i, osc := range e.oscs {
		e.even[i] = e.clampOffset(fc.delay + osc.Value()*fc.displacement)
		if fc.odd90 {
			e.odd[i] = e.clampOffset(fc.delay + osc.QuadPhaseValue()*fc.displacement)
		} else {
			e.odd[i] = e.even[i]
		}
	}

	for _, osc := range e.oscs {
		osc.Increment()
	}
}

func (e *Engine) clampOffset(offset float64) float64 {
	if offset < 0 {
		return 0
	}

	if offset > e.maxOffset {
		return e.maxOffset
	}

	return offset
}

// tapWet writes x into channel c's line and returns the mean of its taps.
func (e *Engine) tapWet(c int, x float64) float64 {
	line := e.lines[c]
	line.Write(x)

	taps := e.even
	if c&1 == 1 {
		taps = e.odd
	}

	sum := 0.0
	for _, offset := range taps {
		sum += line.ReadFractional(offset)
	}

	return sum * e.scale
}

func (e *Engine) renderFrame(in, out [][]float64, channels, frame int) {
	fc := e.nextControls()
	if e.bypassed(fc) {
		for c := range channels {
			out[c][frame] = in[c][frame]
		}

		return
	}

	e.computeTaps(fc)

	for c := range channels {
		x := in[c][frame]
		out[c][frame] = fc.wet*e.tapWet(c, x) + fc.dry*x
	}
}

// renderSteady handles [start, end) while no control is ramping. Taps are
// still computed per frame; the mix is applied block-wise.
func (e *Engine) renderSteady(in, out [][]float64, channels, start, end int) {
	n := end - start
	if n <= 0 {
		return
	}

	var fc frameControls
	for i := range n {
		fc = e.nextControls()
		if e.bypassed(fc) {
			break
		}

		e.computeTaps(fc)

		for c := range channels {
			e.wetBlock[c][i] = e.tapWet(c, in[c][start+i])
		}
	}

	if e.bypassed(fc) {
		for c := range channels {
			copy(out[c][start:end], in[c][start:end])
		}

		return
	}

	dry := e.dryBlock[:n]

	for c := range channels {
		dst := out[c][start:end]
		vecmath.ScaleBlock(dry, in[c][start:end], fc.dry)
		vecmath.ScaleBlock(dst, e.wetBlock[c][:n], fc.wet)
		vecmath.AddBlockInPlace(dst, dry)
	}
}

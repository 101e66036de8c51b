package param

// Ramped is a scalar control that moves linearly towards its target over a
// fixed number of frames. The zero value is a parameter at 0 with no ramp.
type Ramped struct {
	value     float64
	target    float64
	step      float64
	remaining int
}

// NewRamped returns a parameter initialised to value.
func NewRamped(value float64) Ramped {
	return Ramped{value: value, target: value}
}

// Set changes the parameter. With rampFrames <= 0 the value changes
// immediately; otherwise it moves linearly from the current value to target
// over exactly rampFrames calls to FrameValue. A Set during a ramp abandons
// it and starts a new one from wherever the old ramp had got to.
func (p *Ramped) Set(target float64, rampFrames int) {
	p.target = target

	if rampFrames <= 0 {
		p.value = target
		p.step = 0
		p.remaining = 0

		return
	}

	p.step = (target - p.value) / float64(rampFrames)
	p.remaining = rampFrames
}

// FrameValue advances the ramp by one frame and returns the value for that
// frame. The final ramp step lands on the target exactly.
func (p *Ramped) FrameValue() float64 {
	if p.remaining > 0 {
		p.remaining--
		if p.remaining == 0 {
			p.value = p.target
		} else {
			p.value += p.step
		}
	}

	return p.value
}

// Get returns the current value without advancing the ramp.
func (p *Ramped) Get() float64 { return p.value }

// Target returns the value the parameter is heading to.
func (p *Ramped) Target() float64 { return p.target }

// Ramping reports whether ramp frames remain.
func (p *Ramped) Ramping() bool { return p.remaining > 0 }

// Remaining returns the number of ramp frames left.
func (p *Ramped) Remaining() int { return p.remaining }

// Bool is an on/off control. Ramps do not apply: any Set takes effect
// immediately, and values >= 0.5 switch it on.
type Bool struct {
	on bool
}

// NewBool returns a Bool in the given state.
func NewBool(on bool) Bool {
	return Bool{on: on}
}

// Set switches the control; rampFrames is ignored.
func (b *Bool) Set(value float64, _ int) {
	b.on = value >= 0.5
}

// Get returns 1 when on and 0 when off.
func (b Bool) Get() float64 {
	if b.on {
		return 1
	}

	return 0
}

// FrameValue is Get; it exists so a Bool can be sampled like a Ramped.
func (b Bool) FrameValue() float64 { return b.Get() }

// Enabled reports whether the control is on.
func (b Bool) Enabled() bool { return b.on }

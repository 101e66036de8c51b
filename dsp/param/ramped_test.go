package param

import "testing"

func TestRampedImmediateSet(t *testing.T) {
	p := NewRamped(0.25)
	p.Set(0.75, 0)

	if got := p.Get(); got != 0.75 {
		t.Fatalf("Get() = %v, want 0.75", got)
	}

	if p.Ramping() {
		t.Fatal("immediate set should not ramp")
	}

	if got := p.FrameValue(); got != 0.75 {
		t.Fatalf("FrameValue() = %v, want 0.75", got)
	}
}

func TestRampedCompletesExactlyOnTarget(t *testing.T) {
	for _, frames := range []int{1, 3, 7, 100, 4801} {
		p := NewRamped(0.1)
		p.Set(0.3, frames)

		for i := 0; i < frames; i++ {
			p.FrameValue()
		}

		if got := p.Get(); got != 0.3 {
			t.Fatalf("frames=%d: Get() = %v, want exactly 0.3", frames, got)
		}

		if p.Ramping() {
			t.Fatalf("frames=%d: still ramping after %d frames", frames, frames)
		}

		if got := p.FrameValue(); got != 0.3 {
			t.Fatalf("frames=%d: value after ramp = %v, want 0.3", frames, got)
		}
	}
}

func TestRampedPartialRampIsMonotonic(t *testing.T) {
	tests := []struct {
		name  string
		from  float64
		to    float64
		steps int
	}{
		{name: "rising", from: 0, to: 1, steps: 10},
		{name: "falling", from: 8, to: -2, steps: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewRamped(tt.from)
			p.Set(tt.to, tt.steps)

			prev := tt.from
			for i := 0; i < tt.steps-1; i++ {
				v := p.FrameValue()

				lo, hi := tt.from, tt.to
				if lo > hi {
					lo, hi = hi, lo
				}

				if v <= lo || v >= hi {
					t.Fatalf("step %d: value %v not strictly inside (%v, %v)", i, v, lo, hi)
				}

				if (tt.to > tt.from && v <= prev) || (tt.to < tt.from && v >= prev) {
					t.Fatalf("step %d: value %v did not move past %v", i, v, prev)
				}

				prev = v
			}
		})
	}
}

func TestRampedLinearSteps(t *testing.T) {
	p := NewRamped(0)
	p.Set(1, 4)

	want := []float64{0.25, 0.5, 0.75, 1}
	for i, w := range want {
		if got := p.FrameValue(); got != w {
			t.Fatalf("frame %d: got %v want %v", i, got, w)
		}
	}
}

func TestRampedRestartFromCurrentValue(t *testing.T) {
	p := NewRamped(0)
	p.Set(1, 4)
	p.FrameValue()
	p.FrameValue() // 0.5

	p.Set(0, 2)

	if got := p.FrameValue(); got != 0.25 {
		t.Fatalf("first frame of new ramp = %v, want 0.25", got)
	}

	if got := p.FrameValue(); got != 0 {
		t.Fatalf("second frame of new ramp = %v, want 0", got)
	}

	if p.Target() != 0 {
		t.Fatalf("Target() = %v, want 0", p.Target())
	}
}

func TestRampedGetDoesNotAdvance(t *testing.T) {
	p := NewRamped(0)
	p.Set(10, 10)

	for i := 0; i < 5; i++ {
		if got := p.Get(); got != 0 {
			t.Fatalf("Get() = %v, want 0", got)
		}
	}

	if p.Remaining() != 10 {
		t.Fatalf("Remaining() = %d, want 10", p.Remaining())
	}
}

func TestBool(t *testing.T) {
	var b Bool
	if b.Enabled() || b.Get() != 0 {
		t.Fatal("zero Bool should be off")
	}

	b.Set(1, 512)
	if !b.Enabled() || b.FrameValue() != 1 {
		t.Fatal("Set(1) should switch on immediately")
	}

	b.Set(0.49, 0)
	if b.Enabled() {
		t.Fatal("Set(0.49) should switch off")
	}

	if !NewBool(true).Enabled() {
		t.Fatal("NewBool(true) should be on")
	}
}

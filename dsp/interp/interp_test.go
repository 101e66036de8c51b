package interp

import (
	"math"
	"testing"
)

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestKernelsHitEndpointsExactly(t *testing.T) {
	xm1, x0, x1, x2 := 0.3, -0.7, 0.9, 0.1

	for _, m := range []Mode{Hermite, Linear, Lagrange3} {
		if got := m.Interpolate(0, xm1, x0, x1, x2); got != x0 {
			t.Fatalf("%v at t=0: got %v want %v", m, got, x0)
		}

		if got := m.Interpolate(1, xm1, x0, x1, x2); math.Abs(got-x1) > 1e-12 {
			t.Fatalf("%v at t=1: got %v want %v", m, got, x1)
		}
	}
}

func TestLagrange4ExactOnCubic(t *testing.T) {
	cubic := func(x float64) float64 { return 0.5*x*x*x - x*x + 2*x - 3 }

	for _, frac := range []float64{0.1, 0.37, 0.5, 0.93} {
		got := Lagrange4(frac, cubic(-1), cubic(0), cubic(1), cubic(2))
		if want := cubic(frac); math.Abs(got-want) > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", frac, got, want)
		}
	}
}

func TestLinear2(t *testing.T) {
	if got := Linear2(0.25, 2, 4); got != 2.5 {
		t.Fatalf("got %v want 2.5", got)
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Hermite, "hermite"},
		{Linear, "linear"},
		{Lagrange3, "lagrange3"},
		{Mode(42), "Mode(42)"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}

	if Mode(42).Valid() {
		t.Fatal("Mode(42) should be invalid")
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{Hermite, Linear, Lagrange3} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}

	if _, err := ParseMode("sinc"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

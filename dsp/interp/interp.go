package interp

import "fmt"

// Mode selects the fractional interpolation kernel used by delay-based blocks.
type Mode int

const (
	// Hermite is 4-point cubic Hermite (Catmull-Rom) interpolation.
	Hermite Mode = iota
	// Linear is 2-point linear interpolation.
	Linear
	// Lagrange3 is 4-point third-order Lagrange interpolation.
	Lagrange3
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Hermite:
		return "hermite"
	case Linear:
		return "linear"
	case Lagrange3:
		return "lagrange3"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= Hermite && m <= Lagrange3
}

// ParseMode maps a mode name to its value.
func ParseMode(name string) (Mode, error) {
	for m := Hermite; m <= Lagrange3; m++ {
		if m.String() == name {
			return m, nil
		}
	}

	return Hermite, fmt.Errorf("interp mode is unknown: %q", name)
}

// Interpolate evaluates the kernel selected by m at fraction t in [0,1]
// between x0 and x1. xm1 and x2 are ignored by Linear.
func (m Mode) Interpolate(t, xm1, x0, x1, x2 float64) float64 {
	switch m {
	case Linear:
		return Linear2(t, x0, x1)
	case Lagrange3:
		return Lagrange4(t, xm1, x0, x1, x2)
	default:
		return Hermite4(t, xm1, x0, x1, x2)
	}
}

// Linear2 computes 2-point linear interpolation from x0 to x1.
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// Lagrange4 computes third-order Lagrange interpolation through the points
// at positions -1, 0, 1 and 2, evaluated at t.
func Lagrange4(t, xm1, x0, x1, x2 float64) float64 {
	tp1 := t + 1
	tm1 := t - 1
	tm2 := t - 2

	return -xm1*t*tm1*tm2/6 +
		x0*tp1*tm1*tm2/2 -
		x1*tp1*t*tm2/2 +
		x2*tp1*t*tm1/6
}

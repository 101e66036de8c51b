package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-modfx/dsp/interp"
)

// Option configures a Line at construction time.
type Option func(*Line) error

// WithMode selects the fractional interpolation kernel. The default is
// interp.Hermite.
func WithMode(mode interp.Mode) Option {
	return func(d *Line) error {
		if !mode.Valid() {
			return fmt.Errorf("delay interpolation mode is unknown: %v", mode)
		}

		d.mode = mode

		return nil
	}
}

// Line is a fixed-capacity circular delay line.
//
// Offsets are counted back from the most recent write: offset 0 is the
// sample written last, offset 1 the one before it. Neighbours used by the
// interpolation kernels wrap around the buffer.
type Line struct {
	buffer   []float64
	writePos int
	mode     interp.Mode
}

// New returns a delay line of fixed size.
func New(size int, opts ...Option) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}

	d := &Line{buffer: make([]float64, size), mode: interp.Hermite}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// CapacityFor returns the number of samples needed to read a bipolar swing
// of up to maxDelayMs around a nominal delay of at most maxDelayMs:
// 2 x maxDelayMs x sampleRate/1000 + 1, rounded up.
func CapacityFor(maxDelayMs, sampleRate float64) int {
	if maxDelayMs <= 0 || sampleRate <= 0 {
		return 1
	}

	return int(math.Ceil(2*maxDelayMs*sampleRate/1000)) + 1
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Mode returns the interpolation kernel.
func (d *Line) Mode() interp.Mode {
	return d.mode
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads the sample written offset writes ago.
func (d *Line) Read(offset int) float64 {
	return d.buffer[d.index(offset)]
}

// ReadFractional reads at a fractional offset using the configured kernel.
// offset must lie in [0, Len()-1]; the caller bounds it.
func (d *Line) ReadFractional(offset float64) float64 {
	p := int(offset)
	t := offset - float64(p)

	x0 := d.buffer[d.index(p)]
	if t == 0 {
		return x0
	}

	x1 := d.buffer[d.index(p+1)]
	if d.mode == interp.Linear {
		return interp.Linear2(t, x0, x1)
	}

	xm1 := d.buffer[d.index(p-1)]
	x2 := d.buffer[d.index(p+2)]

	return d.mode.Interpolate(t, xm1, x0, x1, x2)
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// index maps an offset in [-1, Len()+1] to a buffer position.
func (d *Line) index(offset int) int {
	size := len(d.buffer)

	i := d.writePos - 1 - offset
	for i < 0 {
		i += size
	}
	for i >= size {
		i -= size
	}

	return i
}

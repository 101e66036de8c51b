package comb

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-modfx/dsp/core"
	"github.com/cwbudde/algo-modfx/dsp/effects/modulation"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the analyzer.
var (
	ErrEmptyResponse     = errors.New("comb: impulse response is empty")
	ErrInvalidSampleRate = errors.New("comb: sample rate must be positive")
	ErrInvalidFFTSize    = errors.New("comb: FFT size must be a power of two >= 16")
)

const (
	defaultFFTSize      = 8192
	defaultNotchDepthDB = 20.0
	defaultFadeFraction = 0.125

	// floorDB bounds the magnitude of exact zeros.
	floorDB = -240.0
	dbPerLn = 20 / math.Ln10
)

// Result holds a measured response.
type Result struct {
	SampleRate  float64
	BinHz       float64
	MagnitudeDB []float64 // bins 0..FFTSize/2
	PeakDB      float64
	Notches     []float64 // Hz, ascending
}

// Analyzer turns impulse responses into magnitude spectra.
type Analyzer struct {
	FFTSize int
	// NotchDepthDB is how far below the peak a local minimum must sit to
	// count as a notch.
	NotchDepthDB float64
	// FadeFraction is the share of the frame, at its end, faded out with a
	// half cosine before the transform.
	FadeFraction float64
}

// NewAnalyzer creates an analyzer with the given transform length.
func NewAnalyzer(fftSize int) *Analyzer {
	if fftSize <= 0 {
		fftSize = defaultFFTSize
	}

	return &Analyzer{
		FFTSize:      fftSize,
		NotchDepthDB: defaultNotchDepthDB,
		FadeFraction: defaultFadeFraction,
	}
}

// Measure renders an impulse through channel 0 of e with the oscillators
// frozen at their start phases and analyses the result. Any ramp in flight
// is completed first. e is reset before and after; its rate is restored.
func (a *Analyzer) Measure(e *modulation.Engine) (Result, error) {
	if !e.Configured() {
		return Result{}, modulation.ErrNotConfigured
	}

	if err := a.validate(); err != nil {
		return Result{}, err
	}

	rate := e.GetParameter(modulation.Rate)
	e.Apply(e.Settings(), 0)
	e.SetParameter(modulation.Rate, 0, 0)
	e.Reset()

	defer func() {
		e.SetParameter(modulation.Rate, rate, 0)
		e.Reset()
	}()

	channels := e.Channels()
	block := e.MaxFrames()
	in := core.Planes(channels, block)
	out := core.Planes(channels, block)
	response := make([]float64, a.FFTSize)

	for start := 0; start < a.FFTSize; start += block {
		n := min(block, a.FFTSize-start)
		if start == 0 {
			in[0][0] = 1
		} else {
			in[0][0] = 0
		}

		e.Render(in, out, n, nil)
		copy(response[start:start+n], out[0][:n])
	}

	return a.Response(response, e.SampleRate())
}

// Response analyses an impulse response sampled at sampleRate. Responses
// longer than FFTSize are truncated; shorter ones are zero padded.
func (a *Analyzer) Response(ir []float64, sampleRate float64) (Result, error) {
	if len(ir) == 0 {
		return Result{}, ErrEmptyResponse
	}

	if !core.PositiveFinite(sampleRate) {
		return Result{}, ErrInvalidSampleRate
	}

	if err := a.validate(); err != nil {
		return Result{}, err
	}

	n := a.FFTSize
	frame := make([]float64, n)
	copy(frame, ir)
	a.fadeTail(frame)

	src := make([]complex128, n)
	for i, v := range frame {
		src[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Result{}, fmt.Errorf("comb: FFT plan: %w", err)
	}

	spec := make([]complex128, n)
	if err := plan.Forward(spec, src); err != nil {
		return Result{}, fmt.Errorf("comb: FFT: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(spec[k])
		im[k] = imag(spec[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	res := Result{
		SampleRate:  sampleRate,
		BinHz:       sampleRate / float64(n),
		MagnitudeDB: make([]float64, bins),
		PeakDB:      floorDB,
	}

	for k, m := range mag {
		res.MagnitudeDB[k] = toDB(m)
		res.PeakDB = math.Max(res.PeakDB, res.MagnitudeDB[k])
	}

	res.Notches = a.findNotches(res)

	return res, nil
}

func (a *Analyzer) validate() error {
	n := a.FFTSize
	if n < 16 || n&(n-1) != 0 {
		return ErrInvalidFFTSize
	}

	return nil
}

// fadeTail applies a half-cosine fade to the last FadeFraction of frame.
func (a *Analyzer) fadeTail(frame []float64) {
	fade := int(core.Clamp(a.FadeFraction, 0, 1) * float64(len(frame)))
	if fade < 2 {
		return
	}

	coeffs := make([]float64, fade)
	for i := range coeffs {
		coeffs[i] = 0.5 * (1 + math.Cos(math.Pi*float64(i)/float64(fade-1)))
	}

	vecmath.MulBlockInPlace(frame[len(frame)-fade:], coeffs)
}

func (a *Analyzer) findNotches(res Result) []float64 {
	db := res.MagnitudeDB
	threshold := res.PeakDB - a.NotchDepthDB

	var notches []float64

	for k := 1; k < len(db)-1; k++ {
		if db[k] < db[k-1] && db[k] <= db[k+1] && db[k] < threshold {
			notches = append(notches, float64(k)*res.BinHz)
		}
	}

	return notches
}

func toDB(m float64) float64 {
	if m <= 0 {
		return floorDB
	}

	return math.Max(dbPerLn*mathLog(m), floorDB)
}

// ExpectedNotches returns the notch frequencies of a two-tap comb with
// delay delayMs, up to maxHz: (2k+1)/(2*delay).
func ExpectedNotches(delayMs, maxHz float64) []float64 {
	if !core.PositiveFinite(delayMs) {
		return nil
	}

	first := 1000 / (2 * delayMs)

	var out []float64
	for k := 0; ; k++ {
		f := float64(2*k+1) * first
		if f > maxHz {
			return out
		}

		out = append(out, f)
	}
}

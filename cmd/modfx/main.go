// Command modfx runs the flange and chorus engines over audio files, on the
// default duplex audio device, or through a comb-response analysis.
//
// Usage:
//
//	modfx [flags] file ...
//
// Examples:
//
//	modfx -variant flange -preset "wide cadet" guitar.wav
//	modfx -variant chorus -depth 0.4 -wet 0.7 -o out vox.mp3 pad.ogg
//	modfx -automation sweep.json -tail 0.5 drums.aiff
//	modfx -analyze -delay 1 -depth 0.5
//	modfx -live -preset shimmer
//	modfx -list-presets
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-modfx/dsp/effects/modulation"
	"github.com/cwbudde/algo-modfx/dsp/effects/modulation/preset"
	"github.com/cwbudde/algo-modfx/dsp/interp"
	"github.com/cwbudde/algo-modfx/dsp/lfo"
	"github.com/cwbudde/algo-modfx/internal/audiofile"
	"github.com/cwbudde/algo-modfx/internal/host"
	"github.com/cwbudde/algo-modfx/measure/comb"
)

type options struct {
	variant     modulation.Variant
	presetName  string
	overrides   map[modulation.ParameterID]float64
	taps        int
	waveform    lfo.Waveform
	mode        interp.Mode
	maxDelayMs  float64
	block       int
	tail        float64
	bits        int
	automation  string
	outDir      string
	sampleRate  int
	channels    int
	analyzeSize int
}

var errUsage = errors.New("usage")

func main() {
	log.SetFlags(0)
	log.SetPrefix("modfx: ")

	fs := flag.NewFlagSet("modfx", flag.ExitOnError)
	variantName := fs.String("variant", modulation.Flange.Name, "effect variant: flange or chorus")
	presetName := fs.String("preset", "", "factory preset to start from (see -list-presets)")
	rate := fs.Float64("rate", math.NaN(), "oscillator base rate in Hz")
	delayMs := fs.Float64("delay", math.NaN(), "nominal delay in ms")
	depth := fs.Float64("depth", math.NaN(), "modulation depth in [0, 1]")
	dry := fs.Float64("dry", math.NaN(), "dry gain in [0, 1]")
	wet := fs.Float64("wet", math.NaN(), "wet gain in [0, 1]")
	odd90 := fs.Bool("odd90", false, "put odd channels in quadrature")
	taps := fs.Int("taps", 0, "number of taps (0 = variant default)")
	waveform := fs.String("waveform", lfo.Sinusoid.String(), "oscillator waveform: sinusoid, triangle, sawtooth or square")
	mode := fs.String("interp", interp.Hermite.String(), "delay interpolation: hermite, linear or lagrange3")
	maxDelay := fs.Float64("max-delay", 0, "maximum delay in ms (0 = variant default)")
	block := fs.Int("block", 512, "render block size in frames")
	tail := fs.Float64("tail", 0, "seconds of silence appended to each file")
	bits := fs.Int("bits", 16, "output WAV bit depth: 16, 24 or 32")
	automation := fs.String("automation", "", "JSON automation file applied to every input")
	outDir := fs.String("o", ".", "output directory")
	analyze := fs.Bool("analyze", false, "print the frozen comb response instead of processing files")
	analyzeSize := fs.Int("fft", 8192, "FFT size for -analyze")
	live := fs.Bool("live", false, "process the default duplex audio device until interrupted")
	sampleRate := fs.Int("sample-rate", 48000, "sample rate for -live and -analyze")
	channels := fs.Int("channels", 2, "channel count for -live")
	listPresets := fs.Bool("list-presets", false, "list factory presets and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: modfx [flags] file ...\n\n")
		fmt.Fprintf(os.Stderr, "Renders audio files through a flange or chorus and writes WAV files.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	_ = fs.Parse(os.Args[1:])

	if *listPresets {
		if err := printPresets(os.Stdout); err != nil {
			log.Fatal(err)
		}

		return
	}

	opts, err := resolveOptions(*variantName, *waveform, *mode)
	if err != nil {
		log.Fatal(err)
	}

	opts.presetName = *presetName
	opts.taps = *taps
	opts.block = *block
	opts.tail = *tail
	opts.bits = *bits
	opts.automation = *automation
	opts.outDir = *outDir
	opts.sampleRate = *sampleRate
	opts.channels = *channels
	opts.analyzeSize = *analyzeSize

	opts.maxDelayMs = *maxDelay
	if opts.maxDelayMs <= 0 {
		opts.maxDelayMs = opts.variant.DefaultMaxDelayMs
	}

	for id, v := range map[modulation.ParameterID]float64{
		modulation.Rate: *rate, modulation.Delay: *delayMs, modulation.Depth: *depth,
		modulation.Dry: *dry, modulation.Wet: *wet,
	} {
		if !math.IsNaN(v) {
			opts.overrides[id] = v
		}
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "odd90" {
			opts.overrides[modulation.Odd90] = boolValue(*odd90)
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *analyze:
		err = runAnalyze(opts)
	case *live:
		err = runLive(ctx, opts)
	default:
		err = runFiles(ctx, opts, fs.Args())
	}

	if errors.Is(err, errUsage) {
		fs.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func resolveOptions(variantName, waveformName, modeName string) (options, error) {
	v, err := modulation.LookupVariant(strings.ToLower(variantName))
	if err != nil {
		return options{}, err
	}

	w, err := lfo.ParseWaveform(strings.ToLower(waveformName))
	if err != nil {
		return options{}, err
	}

	m, err := interp.ParseMode(strings.ToLower(modeName))
	if err != nil {
		return options{}, err
	}

	return options{
		variant:   v,
		waveform:  w,
		mode:      m,
		overrides: make(map[modulation.ParameterID]float64),
	}, nil
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

// settingsFor starts from the variant defaults, applies the preset and then
// the per-parameter overrides, clamping everything to the host ranges.
func settingsFor(opts options) (modulation.Settings, error) {
	s := opts.variant.Defaults

	if opts.presetName != "" {
		p, err := preset.Lookup(opts.variant, opts.presetName)
		if err != nil {
			return modulation.Settings{}, err
		}

		s = p.Settings
	}

	values := make(map[modulation.ParameterID]float64)
	for _, info := range modulation.Parameters(opts.maxDelayMs) {
		values[info.ID] = s.Value(info.ID)
	}

	for id, v := range opts.overrides {
		values[id] = v
	}

	for id, v := range values {
		values[id] = id.Clamp(v, opts.maxDelayMs)
	}

	return modulation.Settings{
		Rate:  values[modulation.Rate],
		Delay: values[modulation.Delay],
		Depth: values[modulation.Depth],
		Dry:   values[modulation.Dry],
		Wet:   values[modulation.Wet],
		Odd90: values[modulation.Odd90] >= 0.5,
	}, nil
}

func newEngine(opts options) (*modulation.Engine, error) {
	s, err := settingsFor(opts)
	if err != nil {
		return nil, err
	}

	engineOpts := []modulation.Option{
		modulation.WithDefaults(s),
		modulation.WithWaveform(opts.waveform),
		modulation.WithInterpolation(opts.mode),
	}

	if opts.taps > 0 {
		engineOpts = append(engineOpts, modulation.WithTapCount(opts.taps))
	}

	return modulation.New(opts.variant, engineOpts...)
}

// outputPath names the rendered file after the input and the variant.
func outputPath(dir, input string, v modulation.Variant) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, fmt.Sprintf("%s-%s.wav", base, v.Name))
}

func runFiles(ctx context.Context, opts options, files []string) error {
	if len(files) == 0 {
		return errUsage
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return err
	}

	registry := audiofile.DefaultRegistry()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, file := range files {
		g.Go(func() error {
			return renderFile(ctx, opts, registry, file)
		})
	}

	return g.Wait()
}

func renderFile(ctx context.Context, opts options, registry *audiofile.Registry, file string) error {
	clip, err := registry.ReadFile(file)
	if err != nil {
		return err
	}

	var schedule host.Schedule
	if opts.automation != "" {
		schedule, err = host.LoadAutomation(opts.automation, float64(clip.SampleRate))
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}

	e, err := newEngine(opts)
	if err != nil {
		return err
	}

	h := host.NewOffline(e, opts.block)
	h.MaxDelayMs = opts.maxDelayMs
	h.Tail = opts.tail
	h.Logger = log.New(os.Stderr, "modfx: "+filepath.Base(file)+": ", 0)

	out, err := h.Process(ctx, clip, schedule)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	path := outputPath(opts.outDir, file, opts.variant)
	if err := audiofile.WriteWAVFile(path, out, opts.bits); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	log.Printf("wrote %s", path)

	return nil
}

func runLive(ctx context.Context, opts options) error {
	e, err := newEngine(opts)
	if err != nil {
		return err
	}

	l, err := host.NewLive(e, opts.channels, opts.sampleRate, opts.maxDelayMs, log.Default())
	if err != nil {
		return err
	}

	return l.Run(ctx)
}

func runAnalyze(opts options) error {
	e, err := newEngine(opts)
	if err != nil {
		return err
	}

	if err := e.Configure(1, float64(opts.sampleRate), opts.block, opts.maxDelayMs); err != nil {
		return err
	}

	res, err := comb.NewAnalyzer(opts.analyzeSize).Measure(e)
	if err != nil {
		return err
	}

	s := e.Settings()
	fmt.Printf("%s: delay=%.3f ms depth=%.2f dry=%.2f wet=%.2f, %d notches below %.1f dB peak\n",
		opts.variant, s.Delay, s.Depth, s.Dry, s.Wet, len(res.Notches), res.PeakDB)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Notch\tFrequency [Hz]\tLevel [dB]\n")

	for i, f := range res.Notches {
		bin := int(math.Round(f / res.BinHz))
		fmt.Fprintf(tw, "%d\t%.1f\t%.1f\n", i+1, f, res.MagnitudeDB[bin])
	}

	return tw.Flush()
}

func printPresets(w *os.File) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Variant\tPreset\tRate [Hz]\tDelay [ms]\tDepth\tDry\tWet\tOdd90\n")

	for _, v := range modulation.Variants() {
		for _, p := range preset.For(v) {
			s := p.Settings
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.3f\t%.2f\t%.2f\t%t\n",
				v.Name, p.Name, s.Rate, s.Delay, s.Depth, s.Dry, s.Wet, s.Odd90)
		}
	}

	return tw.Flush()
}

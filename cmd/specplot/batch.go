package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-spectro/internal/config"
	"github.com/cwbudde/algo-spectro/internal/metrics"
	"github.com/cwbudde/algo-spectro/spectro/render"
	"github.com/cwbudde/algo-spectro/spectro/spectrum"
)

var errNoSpectra = errors.New("no spectra given: pass files as arguments or list them in --config")

// loaderFlags are the flags every batch command shares. Flags set on the
// command line override the --config file.
type loaderFlags struct {
	configPath  string
	basePath    string
	waveUnit    string
	noRestFrame bool
	normalize   bool
	normWindow  []float64
	statistic   string
	minPoints   int
	scale       float64
	waveCol     string
	fluxCol     string
}

func (f *loaderFlags) register(fs *pflag.FlagSet) {
	def := config.Default().Loader

	fs.StringVarP(&f.configPath, "config", "c", "", "TOML batch file")
	fs.StringVar(&f.basePath, "base-path", "", "directory relative file names are resolved against")
	fs.StringVar(&f.waveUnit, "wave-unit", def.WaveUnit, "wavelength unit of the input (um or A)")
	fs.BoolVar(&f.noRestFrame, "no-restframe", !def.RestFrame, "keep the observed frame even when z is known")
	fs.BoolVar(&f.normalize, "normalize", def.Normalize, "divide by the continuum level in --norm-window")
	fs.Float64SliceVar(&f.normWindow, "norm-window", def.NormWindow, "continuum window min,max in rest-frame wave units")
	fs.StringVar(&f.statistic, "statistic", def.NormStatistic, "continuum estimator (median or mean)")
	fs.IntVar(&f.minPoints, "min-points", def.MinPoints, "minimum finite samples in the continuum window")
	fs.Float64Var(&f.scale, "scale", 0, "multiply the final flux by this factor")
	fs.StringVar(&f.waveCol, "wave-col", def.WaveColumn, "wavelength column name")
	fs.StringVar(&f.fluxCol, "flux-col", def.FluxColumn, "flux column name")
}

// batch builds the batch from --config, changed flags and file arguments,
// in that order of precedence from lowest to highest.
func (f *loaderFlags) batch(cmd *cobra.Command, args []string) (config.Batch, error) {
	b := config.Default()
	if f.configPath != "" {
		var err error
		if b, err = config.Load(f.configPath); err != nil {
			return config.Batch{}, err
		}
	}

	fs := cmd.Flags()
	l := &b.Loader
	if fs.Changed("base-path") {
		b.BasePath = f.basePath
	}
	if fs.Changed("wave-unit") {
		l.WaveUnit = f.waveUnit
	}
	if fs.Changed("no-restframe") {
		l.RestFrame = !f.noRestFrame
	}
	if fs.Changed("normalize") {
		l.Normalize = f.normalize
	}
	if fs.Changed("norm-window") {
		l.NormWindow = f.normWindow
	}
	if fs.Changed("statistic") {
		l.NormStatistic = f.statistic
	}
	if fs.Changed("min-points") {
		l.MinPoints = f.minPoints
	}
	if fs.Changed("scale") {
		scale := f.scale
		l.OutputFluxScale = &scale
	}
	if fs.Changed("wave-col") {
		l.WaveColumn = f.waveCol
	}
	if fs.Changed("flux-col") {
		l.FluxColumn = f.fluxCol
	}

	for _, arg := range args {
		e, err := parseEntry(arg)
		if err != nil {
			return config.Batch{}, err
		}
		b.Spectra = append(b.Spectra, e)
	}
	if len(b.Spectra) == 0 {
		return config.Batch{}, errNoSpectra
	}
	return b, nil
}

// parseEntry splits "file@z" into its parts. The redshift is optional.
func parseEntry(arg string) (config.Entry, error) {
	i := strings.LastIndex(arg, "@")
	if i < 0 {
		return config.Entry{File: arg}, nil
	}
	file, zs := arg[:i], arg[i+1:]
	if file == "" {
		return config.Entry{}, fmt.Errorf("missing file name in %q", arg)
	}
	z, err := strconv.ParseFloat(zs, 64)
	if err != nil {
		return config.Entry{}, fmt.Errorf("invalid redshift in %q: %w", arg, err)
	}
	return config.Entry{File: file, Z: &z}, nil
}

// load validates b and loads its spectra, counting every outcome.
func (a *app) load(b config.Batch) ([]spectrum.Spectrum, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	opts, err := b.LoaderOptions()
	if err != nil {
		return nil, err
	}

	specs, skips := render.LoadBatch(b.Entries(), b.BasePath, a.logger, opts...)
	a.record(specs, skips)
	return specs, nil
}

func (a *app) record(specs []spectrum.Spectrum, skips []render.Skip) {
	m := a.metrics
	for _, s := range specs {
		m.SamplesRead.Add(float64(s.Len()))
		if s.NormalizationFailed() {
			m.SpectraLoaded.WithLabelValues(metrics.OutcomeNormFailed).Inc()
			m.NormalizationFailures.Inc()
			m.SpectraSkipped.WithLabelValues(metrics.ReasonNormFailed).Inc()
			continue
		}
		m.SpectraLoaded.WithLabelValues(metrics.OutcomeOK).Inc()
	}
	for range skips {
		m.SpectraLoaded.WithLabelValues(metrics.OutcomeError).Inc()
		m.SpectraSkipped.WithLabelValues(metrics.ReasonLoadError).Inc()
	}
}

// figureFlags are the drawing flags shared by panel and overlay.
type figureFlags struct {
	output string
	xlim   []float64
	ylim   []float64
	step   bool
	smooth float64
}

func (f *figureFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.output, "output", "o", "", "output image; format from extension (png, svg, pdf, eps, jpg, tif)")
	fs.Float64SliceVar(&f.xlim, "xlim", nil, "x axis limits min,max")
	fs.Float64SliceVar(&f.ylim, "ylim", nil, "y axis limits min,max")
	fs.BoolVar(&f.step, "step", false, "draw mid-step lines")
	fs.Float64Var(&f.smooth, "smooth", 0, "Gaussian smoothing sigma in samples (0 disables)")
}

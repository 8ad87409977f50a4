package spectrum

import (
	"github.com/cwbudde/algo-spectro/spectro/continuum"
	"github.com/cwbudde/algo-spectro/spectro/table"
	"github.com/cwbudde/algo-spectro/spectro/units"
)

// Config defines how a spectrum is loaded and processed.
type Config struct {
	Redshift        *float64
	InputFluxUnit   units.FluxUnit
	WaveUnit        units.WaveUnit
	RestFrame       bool
	Normalize       bool
	NormWindow      continuum.Window
	NormStatistic   continuum.Statistic
	NormMinPoints   int
	OutputFluxScale *float64
	WaveColumn      string
	FluxColumn      string
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns μJy input with wavelengths in microns, rest-frame
// conversion enabled and normalization disabled.
func DefaultConfig() Config {
	cc := continuum.DefaultConfig()
	return Config{
		InputFluxUnit: units.MicroJansky,
		WaveUnit:      units.Micron,
		RestFrame:     true,
		NormWindow:    cc.Window,
		NormStatistic: cc.Statistic,
		NormMinPoints: cc.MinPoints,
		WaveColumn:    table.DefaultWaveColumn,
		FluxColumn:    table.DefaultFluxColumn,
	}
}

// WithRedshift sets the source redshift.
func WithRedshift(z float64) Option {
	return func(cfg *Config) {
		cfg.Redshift = &z
	}
}

// WithOptionalRedshift sets the redshift when z is non-nil and clears it
// otherwise.
func WithOptionalRedshift(z *float64) Option {
	return func(cfg *Config) {
		if z == nil {
			cfg.Redshift = nil
			return
		}
		v := *z
		cfg.Redshift = &v
	}
}

// WithInputFluxUnit sets the unit of the flux column.
func WithInputFluxUnit(u units.FluxUnit) Option {
	return func(cfg *Config) {
		cfg.InputFluxUnit = u
	}
}

// WithWaveUnit sets the unit of the wavelength column.
func WithWaveUnit(u units.WaveUnit) Option {
	return func(cfg *Config) {
		cfg.WaveUnit = u
	}
}

// WithRestFrame toggles the rest-frame shift. It has no effect unless a
// redshift is also set.
func WithRestFrame(on bool) Option {
	return func(cfg *Config) {
		cfg.RestFrame = on
	}
}

// WithNormalize toggles continuum normalization.
func WithNormalize(on bool) Option {
	return func(cfg *Config) {
		cfg.Normalize = on
	}
}

// WithNormWindow sets the normalization window, in the wavelength unit.
func WithNormWindow(w continuum.Window) Option {
	return func(cfg *Config) {
		cfg.NormWindow = w
	}
}

// WithNormStatistic sets the continuum estimator.
func WithNormStatistic(s continuum.Statistic) Option {
	return func(cfg *Config) {
		cfg.NormStatistic = s
	}
}

// WithNormMinPoints sets the minimum window population. Values below 1 are
// ignored.
func WithNormMinPoints(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.NormMinPoints = n
		}
	}
}

// WithOutputFluxScale multiplies the final flux by scale.
func WithOutputFluxScale(scale float64) Option {
	return func(cfg *Config) {
		cfg.OutputFluxScale = &scale
	}
}

// WithColumns sets the FITS column names. Empty names keep the current value.
func WithColumns(wave, flux string) Option {
	return func(cfg *Config) {
		if wave != "" {
			cfg.WaveColumn = wave
		}
		if flux != "" {
			cfg.FluxColumn = flux
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

package continuum

// Config defines how the continuum level is estimated.
type Config struct {
	Window    Window
	Statistic Statistic
	MinPoints int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the median over [DefaultWindow] with at least
// [DefaultMinPoints] samples.
func DefaultConfig() Config {
	return Config{
		Window:    DefaultWindow(),
		Statistic: Median,
		MinPoints: DefaultMinPoints,
	}
}

// WithWindow sets the wavelength window.
func WithWindow(w Window) Option {
	return func(cfg *Config) {
		cfg.Window = w
	}
}

// WithStatistic sets the continuum estimator.
func WithStatistic(s Statistic) Option {
	return func(cfg *Config) {
		cfg.Statistic = s
	}
}

// WithMinPoints sets the minimum number of samples required in the window.
// Values below 1 are ignored.
func WithMinPoints(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MinPoints = n
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

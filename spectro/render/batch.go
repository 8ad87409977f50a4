package render

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-spectro/spectro/spectrum"
)

// Errors returned by batch handling and figure construction.
var (
	ErrMixedNormalization = errors.New("render: batch mixes normalized and unnormalized spectra")
	ErrMixedFluxScale     = errors.New("render: batch mixes output flux scales")
	ErrNoSpectra          = errors.New("render: no spectra to draw")
	ErrInvalidGrid        = errors.New("render: invalid panel grid")
	ErrInvalidRange       = errors.New("render: invalid axis range")
	ErrUnsupportedFormat  = errors.New("render: unsupported image format")
)

// Entry names one spectrum file of a batch and its optional redshift.
type Entry struct {
	File string
	Z    *float64
}

// Skip records a batch entry that could not be loaded.
type Skip struct {
	Entry
	Err error
}

// CheckBatch verifies that all spectra share the same normalization state
// and output flux scale.
func CheckBatch(specs []spectrum.Spectrum) error {
	if len(specs) == 0 {
		return nil
	}
	first := specs[0]
	for _, s := range specs[1:] {
		if s.Normalized != first.Normalized {
			return fmt.Errorf("%w: %s normalized=%t, %s normalized=%t",
				ErrMixedNormalization, first.File, first.Normalized, s.File, s.Normalized)
		}
		if !sameScale(s.OutputFluxScale, first.OutputFluxScale) {
			return fmt.Errorf("%w: %s has %s, %s has %s",
				ErrMixedFluxScale, first.File, formatScale(first.OutputFluxScale),
				s.File, formatScale(s.OutputFluxScale))
		}
	}
	return nil
}

func sameScale(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func formatScale(s *float64) string {
	if s == nil {
		return "no scale"
	}
	return fmt.Sprintf("scale %g", *s)
}

// Usable drops spectra whose normalization was requested but failed,
// logging each one. A nil logger discards the diagnostics.
func Usable(specs []spectrum.Spectrum, logger *zap.Logger) []spectrum.Spectrum {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make([]spectrum.Spectrum, 0, len(specs))
	for _, s := range specs {
		if s.NormalizationFailed() {
			logger.Warn("skipping spectrum: normalization failed",
				zap.String("file", s.File),
				zap.Float64p("z", s.Z),
				zap.String("error", s.NormError),
			)
			continue
		}
		out = append(out, s)
	}
	return out
}

// LoadBatch loads every entry relative to basePath. Entries that fail to
// load are logged and returned as skips; the batch continues. The entry's
// redshift overrides any redshift among opts.
func LoadBatch(entries []Entry, basePath string, logger *zap.Logger, opts ...spectrum.Option) ([]spectrum.Spectrum, []Skip) {
	if logger == nil {
		logger = zap.NewNop()
	}

	specs := make([]spectrum.Spectrum, 0, len(entries))
	var skips []Skip
	for _, e := range entries {
		path := e.File
		if basePath != "" && !filepath.IsAbs(path) {
			path = filepath.Join(basePath, path)
		}

		entryOpts := append(append([]spectrum.Option(nil), opts...), spectrum.WithOptionalRedshift(e.Z))
		s, err := spectrum.Load(path, entryOpts...)
		if err != nil {
			logger.Error("skipping spectrum: load failed",
				zap.String("file", path),
				zap.Float64p("z", e.Z),
				zap.Error(err),
			)
			skips = append(skips, Skip{Entry: e, Err: err})
			continue
		}
		logger.Debug("loaded spectrum",
			zap.String("file", path),
			zap.Int("samples", s.Len()),
			zap.Bool("normalized", s.Normalized),
		)
		specs = append(specs, s)
	}
	return specs, skips
}

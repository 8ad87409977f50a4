// Package metrics counts batch outcomes for the specplot command and
// exports them in the Prometheus text format.
//
// Batches are short-lived, so there is no HTTP listener: counters are
// written with [Recorder.WriteTextfile] for the node_exporter textfile
// collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeNormFailed = "norm_failed"
	OutcomeError      = "error"
)

// Skip reasons.
const (
	ReasonLoadError  = "load_error"
	ReasonNormFailed = "norm_failed"
)

// Recorder holds the batch counters on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	SpectraLoaded         *prometheus.CounterVec
	NormalizationFailures prometheus.Counter
	SpectraSkipped        *prometheus.CounterVec
	SamplesRead           prometheus.Counter
}

// NewRecorder registers all counters on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		SpectraLoaded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spectra_loaded_total",
				Help: "Spectra processed, by outcome",
			},
			[]string{"outcome"},
		),
		NormalizationFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "spectra_normalization_failures_total",
				Help: "Spectra whose continuum normalization was requested and failed",
			},
		),
		SpectraSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spectra_skipped_total",
				Help: "Spectra left out of a figure, by reason",
			},
			[]string{"reason"},
		),
		SamplesRead: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "spectra_samples_read_total",
				Help: "Wavelength samples read from spectrum files",
			},
		),
	}
}

// Registry exposes the underlying registry as a gatherer.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all counters to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

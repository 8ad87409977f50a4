package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-spectro/internal/logging"
	"github.com/cwbudde/algo-spectro/internal/metrics"
)

// app carries state shared by all subcommands of one invocation.
type app struct {
	logLevel    string
	logFormat   string
	metricsFile string

	logger  *zap.Logger
	metrics *metrics.Recorder
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "specplot",
		Short:         "Convert, normalize and plot astronomical spectra",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.teardown()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", "console", "log format (console or json)")
	pf.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus counters to this textfile on exit")

	root.AddCommand(
		newInfoCmd(a),
		newPanelCmd(a),
		newOverlayCmd(a),
		newSynthCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg := logging.DefaultConfig()
	cfg.Level = a.logLevel
	cfg.Format = a.logFormat

	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	a.logger = logger
	a.metrics = metrics.NewRecorder()
	return nil
}

func (a *app) teardown() error {
	if a.logger != nil {
		// Syncing stderr fails on some platforms; nothing to recover.
		_ = a.logger.Sync()
	}
	if a.metricsFile == "" || a.metrics == nil {
		return nil
	}
	return a.metrics.WriteTextfile(a.metricsFile)
}

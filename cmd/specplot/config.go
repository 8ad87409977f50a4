package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spectro/internal/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print a batch file with every default filled in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b := config.Default()
			b.BasePath = "spectra"
			b.Output = "panel.png"
			z := 2.0
			b.Spectra = []config.Entry{{File: "example.fits", Z: &z}}
			return config.Encode(cmd.OutOrStdout(), b)
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spectro/spectro/spectrum"
	"github.com/cwbudde/algo-spectro/stats/nanstat"
)

func newInfoCmd(a *app) *cobra.Command {
	var (
		lf       loaderFlags
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "info [flags] file[@z]...",
		Short: "Load spectra and summarize the processed records",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := lf.batch(cmd, args)
			if err != nil {
				return err
			}
			specs, err := a.load(b)
			if err != nil {
				return err
			}
			if jsonMode {
				return printInfoJSON(cmd, specs)
			}
			return printInfoTable(cmd, specs)
		},
	}

	lf.register(cmd.Flags())
	cmd.Flags().BoolVar(&jsonMode, "json", false, "print records as JSON without the sample arrays")
	return cmd
}

func printInfoTable(cmd *cobra.Command, specs []spectrum.Spectrum) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSAMPLES\tZ\tWAVE RANGE\tMEDIAN FLUX\tNORMALIZED\tFACTOR\tERROR")
	for _, s := range specs {
		ws := nanstat.Calculate(s.Wave)
		z, factor := "-", "-"
		if s.Z != nil {
			z = fmt.Sprintf("%.4f", *s.Z)
		}
		if s.NormFactor != nil {
			factor = fmt.Sprintf("%.4g", *s.NormFactor)
		}
		errText := s.NormError
		if errText == "" {
			errText = "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.4f–%.4f\t%.4g\t%t\t%s\t%s\n",
			s.File, s.Len(), z, ws.Min, ws.Max, nanstat.Median(s.Flux), s.Normalized, factor, errText)
	}
	return tw.Flush()
}

func printInfoJSON(cmd *cobra.Command, specs []spectrum.Spectrum) error {
	out := make([]map[string]any, len(specs))
	for i, s := range specs {
		m := s.Map()
		delete(m, "wave")
		delete(m, "flux")
		m["samples"] = s.Len()
		m["finite_flux"] = nanstat.CountFinite(s.Flux)
		out[i] = m
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	service "github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/probe"
)

func newProbeCmd(opts *rootOptions) *cobra.Command {
	var (
		url     string
		workers int
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Cross-check a running service against the local calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := probe.Run(cmd.Context(), probe.Config{
				BaseURL:    url,
				Workers:    workers,
				Timeout:    timeout,
				Calculator: service.CalculatorFromConfig(opts.cfg),
			})
			out := cmd.OutOrStdout()
			for _, m := range stats.Mismatches {
				fmt.Fprintf(out, "%d\tremote %.1f %s\tlocal %.1f %s\n",
					m.Year, m.Remote, m.RemoteStatus, m.Local, m.LocalStatus)
			}
			fmt.Fprintf(out, "checked %d, matched %d, mismatched %d, failed %d in %s\n",
				stats.Checked, stats.Matched, stats.Mismatched, stats.Failed, stats.Duration.Round(time.Millisecond))
			return err
		},
	}
	cmd.Flags().StringVar(&url, "url", probe.DefaultBaseURL, "base URL of the service")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "concurrent year fetches")
	cmd.Flags().DurationVar(&timeout, "timeout", probe.DefaultTimeout, "HTTP request timeout")
	return cmd
}

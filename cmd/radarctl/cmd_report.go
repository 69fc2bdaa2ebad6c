package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	service "github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/report"
	"github.com/okian/radar/pkg/logger"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	var (
		year    int
		noColor bool
		asJSON  bool
		width   int
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the dashboard for one year in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc := service.New(append(service.OptionsFromConfig(opts.cfg), service.WithLogger(logger.Get()))...)
			if err := svc.Start(ctx); err != nil {
				return err
			}
			defer svc.Stop()

			if year == 0 {
				latest, err := svc.Latest(ctx)
				if err != nil {
					return err
				}
				year = latest.Year
			}
			view, err := svc.View(ctx, year)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			ropts := []report.Option{report.WithWidth(width)}
			if noColor {
				ropts = append(ropts, report.WithNoColor())
			}
			return report.New(ropts...).Write(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "year to render (default: latest)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the view model as JSON")
	cmd.Flags().IntVar(&width, "width", 80, "wrap width for prose, 0 to disable")
	return cmd
}

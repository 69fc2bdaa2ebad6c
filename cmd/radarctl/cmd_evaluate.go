package main

import (
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/radar/internal/app"
	"github.com/okian/radar/internal/domain/model"
)

func newEvaluateCmd(opts *rootOptions) *cobra.Command {
	var (
		year int
		mi   float64
		ttm  float64
		di   float64
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a single set of indicators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw := model.RawRecord{Year: &year}
			flags := cmd.Flags()
			if flags.Changed("mi") {
				raw.MarketIntelligenceIndex = &mi
			}
			if flags.Changed("ttm") {
				raw.TimeToMarketWeeks = &ttm
			}
			if flags.Changed("di") {
				raw.DecentralizationIndex = &di
			}
			rec, err := model.NewMetricRecord(raw)
			if err != nil {
				return err
			}
			res := service.CalculatorFromConfig(opts.cfg).Compute(rec)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%.1f\t%s\n", rec.Year, res.Score, res.Status)
			return err
		},
	}
	cmd.Flags().IntVar(&year, "year", 1, "year label for the record")
	cmd.Flags().Float64Var(&mi, "mi", 0, "market intelligence index (0-100)")
	cmd.Flags().Float64Var(&ttm, "ttm", 0, "time-to-market in weeks (> 0)")
	cmd.Flags().Float64Var(&di, "di", 0, "decentralization index (0-100)")
	return cmd
}

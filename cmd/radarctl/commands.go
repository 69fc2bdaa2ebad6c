package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/okian/radar/internal/config"
	"github.com/okian/radar/pkg/logger"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	cfg      *config.Config
	dataset  string
	seed     int64
	from, to int
	weights  []float64
	strong   float64
	moderate float64
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	defaults := config.New()

	root := &cobra.Command{
		Use:           "radarctl",
		Short:         "Strategic alignment radar toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.dataset, "dataset", "", "JSON, YAML or CSV dataset (default: synthetic series)")
	pf.Int64Var(&opts.seed, "seed", defaults.Seed, "seed for the synthetic series")
	pf.IntVar(&opts.from, "from", defaults.StartYear, "first synthetic year")
	pf.IntVar(&opts.to, "to", defaults.EndYear, "last synthetic year")
	pf.Float64SliceVar(&opts.weights, "weights",
		[]float64{defaults.WeightSensing, defaults.WeightSeizing, defaults.WeightConfiguring},
		"sensing,seizing,configuring weights")
	pf.Float64Var(&opts.strong, "strong", defaults.ThresholdStrong, "lower bound of the Strong tier")
	pf.Float64Var(&opts.moderate, "moderate", defaults.ThresholdModerate, "lower bound of the Moderate tier")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newReportCmd(opts),
		newEvaluateCmd(opts),
		newGenerateCmd(opts),
		newProbeCmd(opts),
		newVersionCmd(),
	)
	return root
}

// load layers the environment and config file under the changed flags.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("dataset") {
		cfg.DatasetPath = o.dataset
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("from") {
		cfg.StartYear = o.from
	}
	if flags.Changed("to") {
		cfg.EndYear = o.to
	}
	if flags.Changed("weights") {
		if len(o.weights) != 3 {
			return fmt.Errorf("%w: --weights needs three values, got %d", config.ErrInvalidConfig, len(o.weights))
		}
		cfg.WeightSensing, cfg.WeightSeizing, cfg.WeightConfiguring = o.weights[0], o.weights[1], o.weights[2]
	}
	if flags.Changed("strong") {
		cfg.ThresholdStrong = o.strong
	}
	if flags.Changed("moderate") {
		cfg.ThresholdModerate = o.moderate
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// CLI output goes to stdout; logs go to stderr.
	if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
		return err
	}
	if err := logger.SetLevelString(o.logLevel); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the radarctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), "radarctl "+version+"\n")
			return err
		},
	}
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/radar/internal/adapters/dataset"
	"github.com/okian/radar/internal/domain/generator"
)

const outputFilePermission = 0o600

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the seeded synthetic series as a dataset file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			f, err := resolveFormat(format, output)
			if err != nil {
				return err
			}
			records, err := generator.NewSynthetic(
				generator.WithSeed(opts.cfg.Seed),
				generator.WithYears(opts.cfg.StartYear, opts.cfg.EndYear),
			).Records(ctx)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			toFile := output != "" && output != "-"
			if toFile {
				file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePermission)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer func() { _ = file.Close() }()
				w = file
			}
			if err := dataset.Encode(ctx, w, f, records); err != nil {
				return err
			}
			if toFile {
				_, err = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d records to %s\n", len(records), output)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "json, yaml or csv (default: from --output extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	return cmd
}

// resolveFormat prefers an explicit format, then the output extension.
func resolveFormat(format, output string) (dataset.Format, error) {
	if format != "" {
		return dataset.ParseFormat(format)
	}
	if output == "" || output == "-" {
		return dataset.ParseFormat("json")
	}
	return dataset.FormatFromPath(output)
}
